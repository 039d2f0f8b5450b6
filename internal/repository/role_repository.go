package repository

import (
	"fmt"
	"time"

	"marketing-service/internal/models"

	"github.com/jmoiron/sqlx"
)

type IRoleRepository interface {
	CreateRole(role *models.Role) error
	GetRoleByName(name string) (*models.Role, error)
	GetRoles(activeOnly bool) ([]*models.Role, error)
	AssignRoleToUser(userID string, roleID int, assignedBy *string) error
	RemoveRoleFromUser(userID string, roleID int) error
	GetUserRoleNames(userID string) ([]string, error)
}

type roleRepository struct {
	db *sqlx.DB
}

func NewRoleRepository(db *sqlx.DB) IRoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) CreateRole(role *models.Role) error {
	query := `
		INSERT INTO roles (name, display_name, description, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(query, role.Name, role.DisplayName, role.Description, role.IsActive).
		Scan(&role.ID, &role.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create role: %w", err)
	}
	return nil
}

func (r *roleRepository) GetRoleByName(name string) (*models.Role, error) {
	var role models.Role
	query := `SELECT id, name, display_name, description, is_active, created_at FROM roles WHERE name = $1`
	if err := r.db.Get(&role, query, name); err != nil {
		return nil, fmt.Errorf("failed to get role by name: %w", err)
	}
	return &role, nil
}

func (r *roleRepository) GetRoles(activeOnly bool) ([]*models.Role, error) {
	var roles []*models.Role
	query := `SELECT id, name, display_name, description, is_active, created_at FROM roles`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY id`
	if err := r.db.Select(&roles, query); err != nil {
		return nil, fmt.Errorf("failed to get roles: %w", err)
	}
	return roles, nil
}

func (r *roleRepository) AssignRoleToUser(userID string, roleID int, assignedBy *string) error {
	query := `
		INSERT INTO user_roles (user_id, role_id, assigned_by, assigned_at, is_active)
		VALUES ($1, $2, $3, $4, true)
		ON CONFLICT (user_id, role_id) DO UPDATE SET is_active = true, assigned_by = $3, assigned_at = $4
	`
	if _, err := r.db.Exec(query, userID, roleID, assignedBy, time.Now().Unix()); err != nil {
		return fmt.Errorf("failed to assign role to user: %w", err)
	}
	return nil
}

func (r *roleRepository) RemoveRoleFromUser(userID string, roleID int) error {
	query := `UPDATE user_roles SET is_active = false WHERE user_id = $1 AND role_id = $2`
	result, err := r.db.Exec(query, userID, roleID)
	if err != nil {
		return fmt.Errorf("failed to remove role from user: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("role assignment not found")
	}
	return nil
}

func (r *roleRepository) GetUserRoleNames(userID string) ([]string, error) {
	var names []string
	query := `
		SELECT r.name
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1 AND ur.is_active = true AND r.is_active = true
		ORDER BY r.id
	`
	if err := r.db.Select(&names, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get user roles: %w", err)
	}
	return names, nil
}
