package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/buildtrack/construct-api/internal/dto"
	apierrors "github.com/buildtrack/construct-api/internal/errors"
	"github.com/buildtrack/construct-api/internal/models"
	"github.com/buildtrack/construct-api/internal/services"
)

// UserHandler exposes the admin-gated user management endpoints. All
// account mutations run through the AccountService, never through a raw
// model passthrough.
type UserHandler struct {
	accountService *services.AccountService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(accountService *services.AccountService) *UserHandler {
	return &UserHandler{
		accountService: accountService,
	}
}

func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid ID")
		return 0, false
	}
	return id, true
}

func respondAccountError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		apierrors.ValidationFailed(c, validationErr.Fields)
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrFailedToHashPassword):
		apierrors.InternalError(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

// ListUsers returns all users.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.accountService.ListUsers()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

// GetUser returns a single user by ID.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := h.accountService.GetUser(id)
	if err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// CreateUser creates a new user account.
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		Username        string      `json:"username" binding:"required"`
		Email           string      `json:"email"`
		FirstName       string      `json:"first_name"`
		LastName        string      `json:"last_name"`
		Password        string      `json:"password"`
		ConfirmPassword string      `json:"confirm_password"`
		Role            models.Role `json:"role"`
		Phone           *string     `json:"phone"`
		Status          string      `json:"status"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.accountService.CreateUser(services.CreateUserInput{
		Username:        req.Username,
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Role:            req.Role,
		Phone:           req.Phone,
		Status:          req.Status,
	})
	if err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// UpdateUser partially updates an existing user. PUT and PATCH share
// this handler; absent fields stay untouched.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	existing, err := h.accountService.GetUser(id)
	if err != nil {
		respondAccountError(c, err)
		return
	}

	type UpdateUserRequest struct {
		Username        *string      `json:"username"`
		Email           *string      `json:"email"`
		FirstName       *string      `json:"first_name"`
		LastName        *string      `json:"last_name"`
		Password        *string      `json:"password"`
		ConfirmPassword *string      `json:"confirm_password"`
		Role            *models.Role `json:"role"`
		Phone           *string      `json:"phone"`
		Status          *string      `json:"status"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.accountService.UpdateUser(existing, services.UpdateUserInput{
		Username:        req.Username,
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Role:            req.Role,
		Phone:           req.Phone,
		Status:          req.Status,
	})
	if err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeleteUser removes a user.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.accountService.DeleteUser(id); err != nil {
		respondAccountError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetAssociatedProjects returns the projects that have at least one
// task assigned to the user.
func (h *UserHandler) GetAssociatedProjects(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	refs, err := h.accountService.AssociatedProjects(id)
	if err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, refs)
}
