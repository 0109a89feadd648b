package models

import "time"

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleManager   Role = "manager"
	RoleIncharge  Role = "incharge"
	RoleExecutive Role = "executive"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleIncharge, RoleExecutive:
		return true
	}
	return false
}

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(255)" json:"email"`
	FirstName    string    `gorm:"type:varchar(150)" json:"first_name"`
	LastName     string    `gorm:"type:varchar(150)" json:"last_name"`
	PasswordHash string    `gorm:"type:varchar(128);not null" json:"-"`
	Role         Role      `gorm:"type:varchar(20);not null" json:"role"`
	Phone        *string   `gorm:"type:varchar(20)" json:"phone"`
	Status       string    `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	JoinDate     time.Time `gorm:"type:date" json:"join_date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	ManagedProjects []Project `gorm:"foreignKey:ManagerID" json:"-"`
	AssignedTasks   []Task    `gorm:"foreignKey:AssignedToID" json:"-"`
}
