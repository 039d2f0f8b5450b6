package services

import (
	"context"
	"errors"
	"fmt"

	"marketing-service/internal/models"
	"marketing-service/internal/repository"
)

// ErrNotAuthorized marks a permission failure, as opposed to a data failure,
// so callers can report the two distinctly.
var ErrNotAuthorized = errors.New("not authorized")

// Authorizer is the single entry point for caller verification: it parses the
// signed token, looks up the subject's role set, and optionally enforces a
// role allow-list. Every workflow transition goes through here instead of
// re-implementing the check at its own call site.
type Authorizer struct {
	jwtService *JWTService
	roleRepo   repository.IRoleRepository
}

func NewAuthorizer(jwtService *JWTService, roleRepo repository.IRoleRepository) *Authorizer {
	return &Authorizer{
		jwtService: jwtService,
		roleRepo:   roleRepo,
	}
}

// Authorize verifies the token and returns the caller identity. When
// requiredRoles is non-empty the caller must hold at least one of them.
func (a *Authorizer) Authorize(ctx context.Context, token string, requiredRoles ...string) (*models.Identity, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: missing token", ErrNotAuthorized)
	}

	claims, err := a.jwtService.VerifyToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAuthorized, err)
	}

	roles, err := a.roleRepo.GetUserRoleNames(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up roles for user %s: %w", claims.UserID, err)
	}

	identity := &models.Identity{
		UserID:      claims.UserID,
		Email:       claims.Email,
		DisplayName: claims.DisplayName,
		Roles:       roles,
	}
	if claims.AvatarURL != "" {
		avatar := claims.AvatarURL
		identity.AvatarURL = &avatar
	}

	if len(requiredRoles) > 0 && !identity.HasAnyRole(requiredRoles...) {
		return nil, fmt.Errorf("%w: requires one of roles %v", ErrNotAuthorized, requiredRoles)
	}

	return identity, nil
}
