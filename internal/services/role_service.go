package services

import (
	"fmt"

	"marketing-service/internal/models"
	"marketing-service/internal/repository"
)

// RoleService provides business logic for role management
type RoleService struct {
	roleRepo repository.IRoleRepository
}

func NewRoleService(roleRepo repository.IRoleRepository) *RoleService {
	return &RoleService{
		roleRepo: roleRepo,
	}
}

// CreateRole creates a new role with validation
func (s *RoleService) CreateRole(name, displayName, description string) (*models.Role, error) {
	if name == "" {
		return nil, fmt.Errorf("role name cannot be empty")
	}
	if displayName == "" {
		return nil, fmt.Errorf("role display name cannot be empty")
	}

	existing, err := s.roleRepo.GetRoleByName(name)
	if err == nil && existing != nil {
		return existing, nil
	}

	role := &models.Role{
		Name:        name,
		DisplayName: displayName,
		Description: description,
		IsActive:    true,
	}

	if err := s.roleRepo.CreateRole(role); err != nil {
		return nil, fmt.Errorf("failed to create role: %w", err)
	}
	return role, nil
}

func (s *RoleService) GetRoleByName(name string) (*models.Role, error) {
	return s.roleRepo.GetRoleByName(name)
}

func (s *RoleService) GetAllRoles(activeOnly bool) ([]*models.Role, error) {
	return s.roleRepo.GetRoles(activeOnly)
}

// AssignRoleToUser assigns a role to a user
func (s *RoleService) AssignRoleToUser(userID, roleName string, assignedBy *string) error {
	role, err := s.roleRepo.GetRoleByName(roleName)
	if err != nil {
		return fmt.Errorf("role not found: %w", err)
	}
	if !role.IsActive {
		return fmt.Errorf("cannot assign inactive role")
	}
	return s.roleRepo.AssignRoleToUser(userID, role.ID, assignedBy)
}

func (s *RoleService) RemoveRoleFromUser(userID, roleName string) error {
	role, err := s.roleRepo.GetRoleByName(roleName)
	if err != nil {
		return fmt.Errorf("role not found: %w", err)
	}
	return s.roleRepo.RemoveRoleFromUser(userID, role.ID)
}

func (s *RoleService) GetUserRoles(userID string) ([]string, error) {
	return s.roleRepo.GetUserRoleNames(userID)
}

// InitDefaultRoles creates the built-in role set on first boot.
func (s *RoleService) InitDefaultRoles() error {
	defaults := []struct {
		name, display, description string
	}{
		{models.RoleEmployee, "Employee", "Default role for marketing staff"},
		{models.RoleManager, "Manager", "May approve or reject project activities"},
		{models.RoleAdmin, "Admin", "Full administrative access"},
	}
	for _, d := range defaults {
		if _, err := s.CreateRole(d.name, d.display, d.description); err != nil {
			return fmt.Errorf("default role %s creation failed: %w", d.name, err)
		}
	}
	return nil
}
