package repository

import (
	"gorm.io/gorm"

	"github.com/buildtrack/construct-api/internal/models"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByIDs returns the projects with the given IDs ordered by ID
func (r *GormProjectRepository) FindByIDs(ids []uint64) ([]models.Project, error) {
	if len(ids) == 0 {
		return []models.Project{}, nil
	}

	var projects []models.Project
	if err := r.db.Where("id IN ?", ids).Order("id").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// List returns all projects ordered by ID
func (r *GormProjectRepository) List() ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.Order("id").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Update persists changes to an existing project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete removes a project and all of its tasks in a transaction
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}
