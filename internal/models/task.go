package models

import (
	"time"

	"gorm.io/datatypes"
)

type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "not-started"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusOnHold     TaskStatus = "on-hold"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusNotStarted, TaskStatusInProgress, TaskStatusCompleted, TaskStatusOnHold:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID           uint64            `gorm:"primarykey" json:"id"`
	Title        string            `gorm:"type:varchar(200);not null" json:"title"`
	Description  *string           `gorm:"type:text" json:"description"`
	ProjectID    uint64            `gorm:"not null" json:"project_id"`
	AssignedToID *uint64           `json:"assigned_to_id"`
	AssignedByID *uint64           `json:"assigned_by_id"`
	Status       TaskStatus        `gorm:"type:varchar(20);not null;default:'not-started'" json:"status"`
	Progress     int               `gorm:"not null;default:0" json:"progress"`
	Priority     TaskPriority      `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	DueDate      time.Time         `gorm:"type:date;not null" json:"due_date"`
	CreatedDate  time.Time         `gorm:"type:date" json:"created_date"`
	Building     *string           `gorm:"type:varchar(100)" json:"building"`
	Floor        *string           `gorm:"type:varchar(100)" json:"floor"`
	Unit         *string           `gorm:"type:varchar(100)" json:"unit"`
	UnitType     *string           `gorm:"type:varchar(20)" json:"unit_type"`
	UnitsData    datatypes.JSONMap `json:"units_data"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`

	// Relations
	Project    *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	AssignedTo *User    `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
	AssignedBy *User    `gorm:"foreignKey:AssignedByID" json:"assigned_by,omitempty"`
}
