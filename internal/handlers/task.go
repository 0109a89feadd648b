package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	apierrors "github.com/buildtrack/construct-api/internal/errors"
	"github.com/buildtrack/construct-api/internal/models"
	"github.com/buildtrack/construct-api/internal/repository"
)

// TaskHandler exposes plain CRUD over tasks.
type TaskHandler struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *TaskHandler {
	return &TaskHandler{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

func (h *TaskHandler) validateUserRef(c *gin.Context, field string, id *uint64) bool {
	if id == nil {
		return true
	}
	if _, err := h.userRepo.FindByID(*id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.ValidationFailed(c, map[string]string{field: "User not found."})
			return false
		}
		apierrors.InternalError(c, "")
		return false
	}
	return true
}

// ListTasks returns all tasks.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskRepo.List()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// GetTask returns a task by ID.
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	task, err := h.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Task not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, task)
}

// CreateTask creates a new task under an existing project.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Title        string              `json:"title" binding:"required"`
		Description  *string             `json:"description"`
		ProjectID    uint64              `json:"project_id" binding:"required"`
		AssignedToID *uint64             `json:"assigned_to_id"`
		AssignedByID *uint64             `json:"assigned_by_id"`
		Status       models.TaskStatus   `json:"status"`
		Progress     int                 `json:"progress"`
		Priority     models.TaskPriority `json:"priority"`
		DueDate      *time.Time          `json:"due_date"`
		Building     *string             `json:"building"`
		Floor        *string             `json:"floor"`
		Unit         *string             `json:"unit"`
		UnitType     *string             `json:"unit_type"`
		UnitsData    map[string]any      `json:"units_data"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.DueDate == nil {
		apierrors.ValidationFailed(c, map[string]string{"due_date": "Due date is required."})
		return
	}
	if req.Status == "" {
		req.Status = models.TaskStatusNotStarted
	}
	if !req.Status.Valid() {
		apierrors.ValidationFailed(c, map[string]string{"status": "Invalid status."})
		return
	}
	if req.Priority == "" {
		req.Priority = models.TaskPriorityMedium
	}
	if !req.Priority.Valid() {
		apierrors.ValidationFailed(c, map[string]string{"priority": "Invalid priority."})
		return
	}
	if !validProgress(req.Progress) {
		apierrors.ValidationFailed(c, map[string]string{"progress": "Progress must be between 0 and 100."})
		return
	}

	if _, err := h.projectRepo.FindByID(req.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Project not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	if !h.validateUserRef(c, "assigned_to_id", req.AssignedToID) {
		return
	}
	if !h.validateUserRef(c, "assigned_by_id", req.AssignedByID) {
		return
	}

	unitsData := req.UnitsData
	if unitsData == nil {
		unitsData = map[string]any{}
	}

	task := models.Task{
		Title:        req.Title,
		Description:  req.Description,
		ProjectID:    req.ProjectID,
		AssignedToID: req.AssignedToID,
		AssignedByID: req.AssignedByID,
		Status:       req.Status,
		Progress:     req.Progress,
		Priority:     req.Priority,
		DueDate:      *req.DueDate,
		Building:     req.Building,
		Floor:        req.Floor,
		Unit:         req.Unit,
		UnitType:     req.UnitType,
		UnitsData:    datatypes.JSONMap(unitsData),
	}

	if err := h.taskRepo.Create(&task); err != nil {
		apierrors.InternalError(c, "Failed to create task")
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask partially updates a task. PUT and PATCH share this handler.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	task, err := h.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Task not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	type UpdateTaskRequest struct {
		Title        *string              `json:"title"`
		Description  *string              `json:"description"`
		ProjectID    *uint64              `json:"project_id"`
		AssignedToID *uint64              `json:"assigned_to_id"`
		AssignedByID *uint64              `json:"assigned_by_id"`
		Status       *models.TaskStatus   `json:"status"`
		Progress     *int                 `json:"progress"`
		Priority     *models.TaskPriority `json:"priority"`
		DueDate      *time.Time           `json:"due_date"`
		Building     *string              `json:"building"`
		Floor        *string              `json:"floor"`
		Unit         *string              `json:"unit"`
		UnitType     *string              `json:"unit_type"`
		UnitsData    map[string]any       `json:"units_data"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Status != nil && !req.Status.Valid() {
		apierrors.ValidationFailed(c, map[string]string{"status": "Invalid status."})
		return
	}
	if req.Priority != nil && !req.Priority.Valid() {
		apierrors.ValidationFailed(c, map[string]string{"priority": "Invalid priority."})
		return
	}
	if req.Progress != nil && !validProgress(*req.Progress) {
		apierrors.ValidationFailed(c, map[string]string{"progress": "Progress must be between 0 and 100."})
		return
	}

	if req.ProjectID != nil {
		if _, err := h.projectRepo.FindByID(*req.ProjectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apierrors.NotFound(c, "Project not found")
				return
			}
			apierrors.InternalError(c, "")
			return
		}
		task.ProjectID = *req.ProjectID
	}
	if req.AssignedToID != nil {
		if !h.validateUserRef(c, "assigned_to_id", req.AssignedToID) {
			return
		}
		task.AssignedToID = req.AssignedToID
	}
	if req.AssignedByID != nil {
		if !h.validateUserRef(c, "assigned_by_id", req.AssignedByID) {
			return
		}
		task.AssignedByID = req.AssignedByID
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Progress != nil {
		task.Progress = *req.Progress
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		task.DueDate = *req.DueDate
	}
	if req.Building != nil {
		task.Building = req.Building
	}
	if req.Floor != nil {
		task.Floor = req.Floor
	}
	if req.Unit != nil {
		task.Unit = req.Unit
	}
	if req.UnitType != nil {
		task.UnitType = req.UnitType
	}
	if req.UnitsData != nil {
		task.UnitsData = datatypes.JSONMap(req.UnitsData)
	}

	if err := h.taskRepo.Update(task); err != nil {
		apierrors.InternalError(c, "Failed to update task")
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask removes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if _, err := h.taskRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Task not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	if err := h.taskRepo.Delete(id); err != nil {
		apierrors.InternalError(c, "Failed to delete task")
		return
	}

	c.Status(http.StatusNoContent)
}
