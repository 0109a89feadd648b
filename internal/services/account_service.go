package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/buildtrack/construct-api/internal/models"
	"github.com/buildtrack/construct-api/internal/repository"
)

var (
	ErrUsernameTaken        = errors.New("username already exists")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// ValidationError carries per-field messages for malformed input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// AccountService owns the user account lifecycle: credential validation,
// password hashing, profile persistence, and the derived project
// association view.
type AccountService struct {
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(
	userRepo repository.UserRepository,
	projectRepo repository.ProjectRepository,
	taskRepo repository.TaskRepository,
) *AccountService {
	return &AccountService{
		userRepo:    userRepo,
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
	}
}

// CreateUserInput holds the fields accepted on user creation.
type CreateUserInput struct {
	Username        string
	Email           string
	FirstName       string
	LastName        string
	Password        string
	ConfirmPassword string
	Role            models.Role
	Phone           *string
	Status          string
}

// UpdateUserInput holds the fields accepted on user update. Nil pointers
// mean the field was not supplied and stays untouched.
type UpdateUserInput struct {
	Username        *string
	Email           *string
	FirstName       *string
	LastName        *string
	Password        *string
	ConfirmPassword *string
	Role            *models.Role
	Phone           *string
	Status          *string
}

// ValidateCreate checks credential input for user creation. It has no
// side effects.
func ValidateCreate(input CreateUserInput) error {
	if input.Password == "" {
		return newValidationError("password", "Password is required.")
	}
	if input.Password != input.ConfirmPassword {
		return newValidationError("confirm_password", "Passwords do not match.")
	}
	if !input.Role.Valid() {
		return newValidationError("role", "Invalid role.")
	}
	return nil
}

// ValidateUpdate checks credential input for user update. A supplied
// password requires a matching confirmation; an absent password means
// no credential change and the confirmation is ignored.
func ValidateUpdate(input UpdateUserInput) error {
	if input.Password != nil && *input.Password != "" {
		if input.ConfirmPassword == nil || *input.ConfirmPassword == "" {
			return newValidationError("confirm_password", "Password confirmation is required.")
		}
		if *input.Password != *input.ConfirmPassword {
			return newValidationError("confirm_password", "Passwords do not match.")
		}
	}
	if input.Role != nil && !input.Role.Valid() {
		return newValidationError("role", "Invalid role.")
	}
	return nil
}

// CreateUser validates input, hashes the password, and persists a new
// user. The confirmation value is discarded and never stored.
func (s *AccountService) CreateUser(input CreateUserInput) (*models.User, error) {
	if err := ValidateCreate(input); err != nil {
		return nil, err
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, newValidationError("username", "Username is required.")
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	status := input.Status
	if status == "" {
		status = "active"
	}

	user := &models.User{
		Username:     username,
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: string(hashedPassword),
		Role:         input.Role,
		Phone:        input.Phone,
		Status:       status,
	}

	if err := s.userRepo.Create(user); err != nil {
		// whichever concurrent create commits first wins the unique constraint
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// UpdateUser validates input and applies the supplied fields onto the
// existing user. The stored hash is replaced only when a password is
// supplied.
func (s *AccountService) UpdateUser(existing *models.User, input UpdateUserInput) (*models.User, error) {
	if err := ValidateUpdate(input); err != nil {
		return nil, err
	}

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username == "" {
			return nil, newValidationError("username", "Username is required.")
		}
		if username != existing.Username {
			if _, err := s.userRepo.FindByUsername(username); err == nil {
				return nil, ErrUsernameTaken
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check username: %w", err)
			}
		}
		existing.Username = username
	}
	if input.Email != nil {
		existing.Email = *input.Email
	}
	if input.FirstName != nil {
		existing.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		existing.LastName = *input.LastName
	}
	if input.Role != nil {
		existing.Role = *input.Role
	}
	if input.Phone != nil {
		existing.Phone = input.Phone
	}
	if input.Status != nil {
		existing.Status = *input.Status
	}

	if input.Password != nil && *input.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrFailedToHashPassword
		}
		existing.PasswordHash = string(hashedPassword)
	}

	if err := s.userRepo.Update(existing); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return existing, nil
}

// GetUser retrieves a user by ID.
func (s *AccountService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// ListUsers returns all users.
func (s *AccountService) ListUsers() ([]models.User, error) {
	return s.userRepo.List()
}

// DeleteUser removes a user; weak references held by projects and tasks
// become absent.
func (s *AccountService) DeleteUser(id uint64) error {
	if _, err := s.GetUser(id); err != nil {
		return err
	}
	return s.userRepo.Delete(id)
}

// ProjectRef is the minimal projection returned by AssociatedProjects.
type ProjectRef struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// AssociatedProjects returns the projects having at least one task
// assigned to the user, ordered by project ID.
//
// Projects where the user is only the manager are excluded. An earlier
// revision of the association also counted managed projects; whether
// that narrowing is intended is still pending product clarification.
func (s *AccountService) AssociatedProjects(userID uint64) ([]ProjectRef, error) {
	if _, err := s.GetUser(userID); err != nil {
		return nil, err
	}

	ids, err := s.taskRepo.ProjectIDsAssignedTo(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve assigned projects: %w", err)
	}

	projects, err := s.projectRepo.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	refs := make([]ProjectRef, len(projects))
	for i, p := range projects {
		refs[i] = ProjectRef{ID: p.ID, Name: p.Name}
	}
	return refs, nil
}
