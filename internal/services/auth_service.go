package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/buildtrack/construct-api/internal/auth"
	"github.com/buildtrack/construct-api/internal/constants"
	"github.com/buildtrack/construct-api/internal/models"
	"github.com/buildtrack/construct-api/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
)

// AuthService verifies credentials and issues bearer tokens.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *auth.Manager
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.Manager) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and returns the user with a token pair.
// Unknown usernames and wrong passwords are indistinguishable.
func (s *AuthService) Login(input LoginInput) (*models.User, auth.TokenPair, error) {
	user, err := s.userRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.TokenPair{}, ErrInvalidCredentials
		}
		return nil, auth.TokenPair{}, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, auth.TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, auth.TokenPair{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return user, pair, nil
}

// Refresh exchanges a refresh token for a fresh access token. Access
// tokens are rejected here.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	claims, err := s.tokens.Parse(refreshToken, constants.TokenTypeRefresh)
	if err != nil {
		return "", ErrInvalidRefresh
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidRefresh
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	access, err := s.tokens.IssueAccess(user)
	if err != nil {
		return "", fmt.Errorf("failed to issue access token: %w", err)
	}

	return access, nil
}
