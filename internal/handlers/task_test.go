package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/buildtrack/construct-api/internal/models"
)

func TestTaskHandler_CreateTask(t *testing.T) {
	env := setupTestEnv(t)
	assigner, token := env.createUser(t, "bob", models.RoleManager)
	assignee, _ := env.createUser(t, "alice", models.RoleExecutive)
	project := env.createProject(t, "Riverside Towers")

	w := env.request(t, http.MethodPost, "/api/tasks", token, map[string]any{
		"title":          "Pour foundation",
		"project_id":     project.ID,
		"assigned_to_id": assignee.ID,
		"assigned_by_id": assigner.ID,
		"priority":       "high",
		"due_date":       "2024-06-01T00:00:00Z",
		"building":       "B1",
		"unit_type":      "2BHK",
		"units_data":     map[string]any{"flooring": "granite", "coats": 2},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var task models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	require.NotZero(t, task.ID)
	require.Equal(t, models.TaskStatusNotStarted, task.Status)
	require.Equal(t, models.TaskPriorityHigh, task.Priority)
	require.False(t, task.CreatedDate.IsZero())
	require.Equal(t, "granite", task.UnitsData["flooring"])

	stored, err := env.taskRepo.FindByID(task.ID)
	require.NoError(t, err)
	require.Equal(t, assignee.ID, *stored.AssignedToID)
	require.Equal(t, assigner.ID, *stored.AssignedByID)
}

func TestTaskHandler_CreateTask_UnknownProject(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.createUser(t, "bob", models.RoleManager)

	w := env.request(t, http.MethodPost, "/api/tasks", token, map[string]any{
		"title":      "Pour foundation",
		"project_id": 999,
		"due_date":   "2024-06-01T00:00:00Z",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaskHandler_CreateTask_MissingDueDate(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.createUser(t, "bob", models.RoleManager)
	project := env.createProject(t, "Riverside Towers")

	w := env.request(t, http.MethodPost, "/api/tasks", token, map[string]any{
		"title":      "Pour foundation",
		"project_id": project.ID,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var response struct {
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Contains(t, response.Details, "due_date")
}

func TestTaskHandler_CreateTask_DefaultUnitsData(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.createUser(t, "bob", models.RoleManager)
	project := env.createProject(t, "Riverside Towers")

	w := env.request(t, http.MethodPost, "/api/tasks", token, map[string]any{
		"title":      "Pour foundation",
		"project_id": project.ID,
		"due_date":   "2024-06-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var task models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	require.NotNil(t, task.UnitsData)
	require.Empty(t, task.UnitsData)
}

func TestTaskHandler_GetTask_OmitsUnloadedRelations(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.createUser(t, "bob", models.RoleManager)
	project := env.createProject(t, "Riverside Towers")

	task := &models.Task{
		Title:     "Pour foundation",
		ProjectID: project.ID,
		Status:    models.TaskStatusNotStarted,
		Priority:  models.TaskPriorityMedium,
		DueDate:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, env.taskRepo.Create(task))

	w := env.request(t, http.MethodGet, fmt.Sprintf("/api/tasks/%d", task.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// relations that were not loaded must not appear as zero-valued objects
	var raw map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	require.Equal(t, "Pour foundation", raw["title"])
	require.NotContains(t, raw, "project")
	require.NotContains(t, raw, "assigned_to")
	require.NotContains(t, raw, "assigned_by")

	w = env.request(t, http.MethodGet, "/api/tasks", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var rawList []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rawList))
	require.Len(t, rawList, 1)
	require.NotContains(t, rawList[0], "project")
}

func TestTaskHandler_UpdateTask(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.createUser(t, "bob", models.RoleManager)
	project := env.createProject(t, "Riverside Towers")

	task := &models.Task{
		Title:     "Pour foundation",
		ProjectID: project.ID,
		Status:    models.TaskStatusNotStarted,
		Priority:  models.TaskPriorityMedium,
		DueDate:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, env.taskRepo.Create(task))

	w := env.request(t, http.MethodPatch, fmt.Sprintf("/api/tasks/%d", task.ID), token, map[string]any{
		"status":   "in-progress",
		"progress": 40,
	})
	require.Equal(t, http.StatusOK, w.Code)

	stored, err := env.taskRepo.FindByID(task.ID)
	require.NoError(t, err)
	require.Equal(t, models.TaskStatusInProgress, stored.Status)
	require.Equal(t, 40, stored.Progress)
	require.Equal(t, "Pour foundation", stored.Title)
}

func TestTaskHandler_UpdateTask_InvalidPriority(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.createUser(t, "bob", models.RoleManager)
	project := env.createProject(t, "Riverside Towers")

	task := &models.Task{
		Title:     "Pour foundation",
		ProjectID: project.ID,
		Status:    models.TaskStatusNotStarted,
		Priority:  models.TaskPriorityMedium,
		DueDate:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, env.taskRepo.Create(task))

	w := env.request(t, http.MethodPatch, fmt.Sprintf("/api/tasks/%d", task.ID), token, map[string]any{
		"priority": "urgent",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.createUser(t, "bob", models.RoleManager)
	project := env.createProject(t, "Riverside Towers")

	task := &models.Task{
		Title:     "Pour foundation",
		ProjectID: project.ID,
		Status:    models.TaskStatusNotStarted,
		Priority:  models.TaskPriorityMedium,
		DueDate:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, env.taskRepo.Create(task))

	w := env.request(t, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", task.ID), token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = env.request(t, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", task.ID), token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaskHandler_RequiresAuth(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/tasks", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
