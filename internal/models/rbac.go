package models

import "time"

type Role struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	DisplayName string    `json:"display_name" db:"display_name"`
	Description string    `json:"description" db:"description"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type UserRole struct {
	ID         int     `json:"id" db:"id"`
	UserID     string  `json:"user_id" db:"user_id"`
	RoleID     int     `json:"role_id" db:"role_id"`
	AssignedBy *string `json:"assigned_by" db:"assigned_by"`
	AssignedAt int64   `json:"assigned_at" db:"assigned_at"`
	IsActive   bool    `json:"is_active" db:"is_active"`
}

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

// ElevatedRoles may decide pending approvals and edit site content.
var ElevatedRoles = []string{RoleManager, RoleAdmin}
