package model

import (
	"time"

	"gorm.io/gorm"
)

// Plan tiers available to a tenant. FREE tenants are limited in how
// many notes they may create; PRO tenants are uncapped.
const (
	PlanFree = "free"
	PlanPro  = "pro"
)

// Tenant represents an isolated organization sharing this deployment.
// All users and notes belong to exactly one tenant.
type Tenant struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"type:varchar(100);not null"`
	Slug      string         `json:"slug" gorm:"type:varchar(100);uniqueIndex;not null"`
	Plan      string         `json:"plan" gorm:"type:varchar(20);not null;default:'free'"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
