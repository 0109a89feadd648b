package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/buildtrack/construct-api/internal/constants"
	apierrors "github.com/buildtrack/construct-api/internal/errors"
	"github.com/buildtrack/construct-api/internal/models"
	"github.com/buildtrack/construct-api/internal/repository"
)

// ProjectHandler exposes plain CRUD over projects.
type ProjectHandler struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *ProjectHandler {
	return &ProjectHandler{
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

func (h *ProjectHandler) validateManager(c *gin.Context, managerID *uint64) bool {
	if managerID == nil {
		return true
	}
	if _, err := h.userRepo.FindByID(*managerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.ValidationFailed(c, map[string]string{"manager_id": "Manager not found."})
			return false
		}
		apierrors.InternalError(c, "")
		return false
	}
	return true
}

func validProgress(p int) bool {
	return p >= constants.MinProgress && p <= constants.MaxProgress
}

// ListProjects returns all projects.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectRepo.List()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch projects")
		return
	}

	c.JSON(http.StatusOK, projects)
}

// GetProject returns a project by ID.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	project, err := h.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Project not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, project)
}

// CreateProject creates a new project.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	type CreateProjectRequest struct {
		Name        string               `json:"name" binding:"required"`
		Location    string               `json:"location"`
		Client      string               `json:"client"`
		StartDate   time.Time            `json:"start_date"`
		EndDate     time.Time            `json:"end_date"`
		Buildings   int                  `json:"buildings"`
		Floors      int                  `json:"floors"`
		Units       int                  `json:"units"`
		ManagerID   *uint64              `json:"manager_id"`
		Progress    int                  `json:"progress"`
		Status      models.ProjectStatus `json:"status"`
		Description *string              `json:"description"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Status == "" {
		req.Status = models.ProjectStatusPlanning
	}
	if !req.Status.Valid() {
		apierrors.ValidationFailed(c, map[string]string{"status": "Invalid status."})
		return
	}
	if !validProgress(req.Progress) {
		apierrors.ValidationFailed(c, map[string]string{"progress": "Progress must be between 0 and 100."})
		return
	}
	if !h.validateManager(c, req.ManagerID) {
		return
	}

	project := models.Project{
		Name:        req.Name,
		Location:    req.Location,
		Client:      req.Client,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Buildings:   req.Buildings,
		Floors:      req.Floors,
		Units:       req.Units,
		ManagerID:   req.ManagerID,
		Progress:    req.Progress,
		Status:      req.Status,
		Description: req.Description,
	}

	if err := h.projectRepo.Create(&project); err != nil {
		apierrors.InternalError(c, "Failed to create project")
		return
	}

	c.JSON(http.StatusCreated, project)
}

// UpdateProject partially updates a project. PUT and PATCH share this
// handler.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	project, err := h.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Project not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	type UpdateProjectRequest struct {
		Name        *string               `json:"name"`
		Location    *string               `json:"location"`
		Client      *string               `json:"client"`
		StartDate   *time.Time            `json:"start_date"`
		EndDate     *time.Time            `json:"end_date"`
		Buildings   *int                  `json:"buildings"`
		Floors      *int                  `json:"floors"`
		Units       *int                  `json:"units"`
		ManagerID   *uint64               `json:"manager_id"`
		Progress    *int                  `json:"progress"`
		Status      *models.ProjectStatus `json:"status"`
		Description *string               `json:"description"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Status != nil && !req.Status.Valid() {
		apierrors.ValidationFailed(c, map[string]string{"status": "Invalid status."})
		return
	}
	if req.Progress != nil && !validProgress(*req.Progress) {
		apierrors.ValidationFailed(c, map[string]string{"progress": "Progress must be between 0 and 100."})
		return
	}
	if req.ManagerID != nil && !h.validateManager(c, req.ManagerID) {
		return
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Location != nil {
		project.Location = *req.Location
	}
	if req.Client != nil {
		project.Client = *req.Client
	}
	if req.StartDate != nil {
		project.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = *req.EndDate
	}
	if req.Buildings != nil {
		project.Buildings = *req.Buildings
	}
	if req.Floors != nil {
		project.Floors = *req.Floors
	}
	if req.Units != nil {
		project.Units = *req.Units
	}
	if req.ManagerID != nil {
		project.ManagerID = req.ManagerID
	}
	if req.Progress != nil {
		project.Progress = *req.Progress
	}
	if req.Status != nil {
		project.Status = *req.Status
	}
	if req.Description != nil {
		project.Description = req.Description
	}

	if err := h.projectRepo.Update(project); err != nil {
		apierrors.InternalError(c, "Failed to update project")
		return
	}

	c.JSON(http.StatusOK, project)
}

// DeleteProject removes a project and its tasks.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if _, err := h.projectRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Project not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	if err := h.projectRepo.Delete(id); err != nil {
		apierrors.InternalError(c, "Failed to delete project")
		return
	}

	c.Status(http.StatusNoContent)
}
