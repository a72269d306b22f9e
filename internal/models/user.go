package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a department account. Department is the closed access-control
// dimension; Role is a display label only and carries no permissions.
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string         `gorm:"not null" json:"-"`
	FullName     string         `gorm:"not null" json:"full_name"`
	Email        string         `json:"email"`
	Department   string         `gorm:"index;not null" json:"department"`
	Role         string         `json:"role"`
	Status       string         `gorm:"default:'active'" json:"status"`
	TokenVersion uint64         `gorm:"not null;default:0" json:"-"`
	LastLoginAt  *time.Time     `json:"last_login_at"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}
