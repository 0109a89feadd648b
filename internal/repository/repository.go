package repository

import (
	"github.com/buildtrack/construct-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user; the join date is assigned here
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// List returns all users ordered by ID
	List() ([]models.User, error)

	// Update persists changes to an existing user
	Update(user *models.User) error

	// Delete removes a user and nulls out references held by
	// projects and tasks within the same transaction
	Delete(id uint64) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Create(project *models.Project) error
	FindByID(id uint64) (*models.Project, error)

	// FindByIDs returns the projects with the given IDs ordered by ID
	FindByIDs(ids []uint64) ([]models.Project, error)

	// List returns all projects ordered by ID
	List() ([]models.Project, error)

	Update(project *models.Project) error

	// Delete removes a project together with its tasks
	Delete(id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task; the created date is assigned here
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List returns all tasks ordered by ID
	List() ([]models.Task, error)

	Update(task *models.Task) error
	Delete(id uint64) error

	// ProjectIDsAssignedTo returns the distinct project IDs of tasks
	// assigned to the given user
	ProjectIDsAssignedTo(userID uint64) ([]uint64, error)
}
