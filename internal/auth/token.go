package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/buildtrack/construct-api/internal/constants"
	"github.com/buildtrack/construct-api/internal/models"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token expired")
	ErrWrongTokenType = errors.New("wrong token type")
)

// Claims carries the identity attributes embedded in issued tokens.
type Claims struct {
	jwt.RegisteredClaims
	UserID    uint64      `json:"user_id"`
	Role      models.Role `json:"role"`
	TokenType string      `json:"typ"`
}

// TokenPair is an access/refresh token set returned on login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Manager signs and verifies HS256 tokens.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewManager creates a token manager with the default lifetimes.
func NewManager(secret string) *Manager {
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  constants.AccessTokenLifetime,
		refreshTTL: constants.RefreshTokenLifetime,
		now:        time.Now,
	}
}

func (m *Manager) sign(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	now := m.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    constants.TokenIssuer,
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    user.ID,
		Role:      user.Role,
		TokenType: tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// IssueAccess mints a fresh access token for the user.
func (m *Manager) IssueAccess(user *models.User) (string, error) {
	return m.sign(user, constants.TokenTypeAccess, m.accessTTL)
}

// IssuePair mints an access/refresh token pair for the user.
func (m *Manager) IssuePair(user *models.User) (TokenPair, error) {
	access, err := m.sign(user, constants.TokenTypeAccess, m.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := m.sign(user, constants.TokenTypeRefresh, m.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{Access: access, Refresh: refresh}, nil
}

// Parse verifies the signature and lifetime of a token and checks
// that it carries the expected type claim.
func (m *Manager) Parse(tokenString, tokenType string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(constants.TokenIssuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims.TokenType != tokenType {
		return nil, ErrWrongTokenType
	}

	return &claims, nil
}
