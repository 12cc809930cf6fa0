package model

import (
	"time"

	"gorm.io/gorm"
)

// Roles a user can hold within their tenant.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User represents the user model stored in the database. A user belongs
// to exactly one tenant; the association never changes after creation.
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Email     string         `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Password  string         `json:"-" gorm:"type:varchar(255);not null"`
	Role      string         `json:"role" gorm:"type:varchar(50);not null;default:'member'"`
	TenantID  uint           `json:"tenant_id" gorm:"index;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
