package models

import "time"

type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "planning"
	ProjectStatusInProgress ProjectStatus = "in-progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusOnHold     ProjectStatus = "on-hold"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusInProgress, ProjectStatusCompleted, ProjectStatusOnHold:
		return true
	}
	return false
}

type Project struct {
	ID          uint64        `gorm:"primarykey" json:"id"`
	Name        string        `gorm:"type:varchar(200);not null" json:"name"`
	Location    string        `gorm:"type:varchar(200)" json:"location"`
	Client      string        `gorm:"type:varchar(200)" json:"client"`
	StartDate   time.Time     `gorm:"type:date" json:"start_date"`
	EndDate     time.Time     `gorm:"type:date" json:"end_date"`
	Buildings   int           `json:"buildings"`
	Floors      int           `json:"floors"`
	Units       int           `json:"units"`
	ManagerID   *uint64       `json:"manager_id"`
	Progress    int           `gorm:"not null;default:0" json:"progress"`
	Status      ProjectStatus `gorm:"type:varchar(20);not null;default:'planning'" json:"status"`
	Description *string       `gorm:"type:text" json:"description"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// Relations
	Manager *User  `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
	Tasks   []Task `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}
