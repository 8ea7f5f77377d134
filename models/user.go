package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a back-office user (tenant, manager, owner, admin, ...)
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Auth0ID   string         `gorm:"uniqueIndex;not null" json:"auth0_id"` // Auth0 user ID (from 'sub' claim)
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string         `json:"phone"`                                 // E.164, empty when the user has no phone on file
	Role      string         `gorm:"not null;default:'tenant'" json:"role"` // raw role label, normalized by the roles package on every use
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
