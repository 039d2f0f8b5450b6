package services

import (
	"context"
	"testing"

	"marketing-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizeReturnsIdentityWithRoles(t *testing.T) {
	jwtService := NewJWTService("test-secret")
	roles := &fakeRoleRepo{roles: map[string][]string{"U-1": {models.RoleEmployee, models.RoleManager}}}
	authorizer := NewAuthorizer(jwtService, roles)

	token, err := jwtService.GenerateNewToken(&models.User{ID: "U-1", Email: "deniz@alibey.com", DisplayName: "Deniz"})
	require.NoError(t, err)

	identity, err := authorizer.Authorize(context.Background(), token)

	require.NoError(t, err)
	assert.Equal(t, "U-1", identity.UserID)
	assert.Equal(t, "deniz@alibey.com", identity.Email)
	assert.True(t, identity.HasAnyRole(models.RoleManager))
	assert.False(t, identity.HasAnyRole(models.RoleAdmin))
}

func TestAuthorizeRejectsMissingToken(t *testing.T) {
	authorizer := NewAuthorizer(NewJWTService("test-secret"), &fakeRoleRepo{roles: map[string][]string{}})

	_, err := authorizer.Authorize(context.Background(), "")

	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestAuthorizeRejectsForgedToken(t *testing.T) {
	forger := NewJWTService("other-secret")
	token, err := forger.GenerateNewToken(&models.User{ID: "U-1", Email: "x@example.com", DisplayName: "X"})
	require.NoError(t, err)

	authorizer := NewAuthorizer(NewJWTService("test-secret"), &fakeRoleRepo{roles: map[string][]string{}})

	_, err = authorizer.Authorize(context.Background(), token)

	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestAuthorizeEnforcesRequiredRoles(t *testing.T) {
	jwtService := NewJWTService("test-secret")
	roles := &fakeRoleRepo{roles: map[string][]string{"U-1": {models.RoleEmployee}}}
	authorizer := NewAuthorizer(jwtService, roles)

	token, err := jwtService.GenerateNewToken(&models.User{ID: "U-1", Email: "deniz@alibey.com", DisplayName: "Deniz"})
	require.NoError(t, err)

	_, err = authorizer.Authorize(context.Background(), token, models.ElevatedRoles...)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	roles.roles["U-1"] = []string{models.RoleEmployee, models.RoleAdmin}
	identity, err := authorizer.Authorize(context.Background(), token, models.ElevatedRoles...)
	require.NoError(t, err)
	assert.Equal(t, "U-1", identity.UserID)
}
