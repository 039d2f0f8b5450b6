package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"marketing-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	byEmail map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*models.User{}}
}

func (f *fakeUserRepo) Create(user *models.User) error {
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*models.User, error) {
	for _, user := range f.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, fmt.Errorf("failed to get user by id: not found")
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("failed to get user by email: not found")
	}
	return user, nil
}

func (f *fakeUserRepo) Update(user *models.User) error { return nil }

func (f *fakeUserRepo) UpdateLoginAttempts(userID string, attempts int, lockedUntil int64) error {
	for _, user := range f.byEmail {
		if user.ID == userID {
			user.LoginAttempts = attempts
			user.LockedUntil = lockedUntil
		}
	}
	return nil
}

func (f *fakeUserRepo) RecordLogin(userID string, at time.Time) error { return nil }

func (f *fakeUserRepo) GetAll(limit, offset int) ([]*models.User, error) { return nil, nil }

type fakeSessionRepo struct {
	sessions map[string]*models.UserSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*models.UserSession{}}
}

func (f *fakeSessionRepo) CreateSession(_ context.Context, session *models.UserSession) error {
	session.IsActive = true
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionRepo) GetSession(_ context.Context, sessionID string) (*models.UserSession, error) {
	session, ok := f.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session not found")
	}
	return session, nil
}

func (f *fakeSessionRepo) DeleteSession(_ context.Context, sessionID string) error {
	delete(f.sessions, sessionID)
	return nil
}

func (f *fakeSessionRepo) DeleteUserSessions(_ context.Context, userID string) error {
	for id, session := range f.sessions {
		if session.UserID == userID {
			delete(f.sessions, id)
		}
	}
	return nil
}

func (f *fakeSessionRepo) GetUserSessions(_ context.Context, userID string) ([]*models.UserSession, error) {
	var sessions []*models.UserSession
	for _, session := range f.sessions {
		if session.UserID == userID {
			sessions = append(sessions, session)
		}
	}
	return sessions, nil
}

func newUserServiceFixture() (IUserService, *fakeUserRepo, *SessionService) {
	userRepo := newFakeUserRepo()
	sessionService := NewSessionService(newFakeSessionRepo())
	roleService := NewRoleService(&fakeRoleRepo{roles: map[string][]string{}})
	jwtService := NewJWTService("test-secret")
	return NewUserService(userRepo, sessionService, jwtService, roleService), userRepo, sessionService
}

func TestRegisterNewUserHashesPassword(t *testing.T) {
	svc, repo, _ := newUserServiceFixture()

	user, err := svc.RegisterNewUser("Deniz@Alibey.com", "Deniz", "correct horse", "")

	require.NoError(t, err)
	assert.Equal(t, "deniz@alibey.com", user.Email)
	assert.NotEqual(t, "correct horse", user.PasswordHash)
	assert.Equal(t, models.UserStatusActive, user.Status)

	stored, err := repo.GetByEmail("deniz@alibey.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
}

func TestRegisterNewUserValidation(t *testing.T) {
	svc, _, _ := newUserServiceFixture()

	_, err := svc.RegisterNewUser("not-an-email", "Deniz", "correct horse", "")
	assert.Error(t, err)

	_, err = svc.RegisterNewUser("deniz@alibey.com", "", "correct horse", "")
	assert.Error(t, err)

	_, err = svc.RegisterNewUser("deniz@alibey.com", "Deniz", "short", "")
	assert.Error(t, err)
}

func TestRegisterNewUserRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newUserServiceFixture()

	_, err := svc.RegisterNewUser("deniz@alibey.com", "Deniz", "correct horse", "")
	require.NoError(t, err)

	_, err = svc.RegisterNewUser("deniz@alibey.com", "Other", "correct horse", "")
	assert.Error(t, err)
}

func TestLoginIssuesVerifiableTokenAndSession(t *testing.T) {
	svc, _, sessionService := newUserServiceFixture()
	_, err := svc.RegisterNewUser("deniz@alibey.com", "Deniz", "correct horse", "")
	require.NoError(t, err)

	user, session, token, err := svc.Login(context.Background(), "deniz@alibey.com", "correct horse", nil, nil)

	require.NoError(t, err)
	require.NotNil(t, session)
	assert.NotEmpty(t, token)

	claims, err := NewJWTService("test-secret").VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	active, err := sessionService.HasActiveTokenSession(context.Background(), user.ID, token)
	require.NoError(t, err)
	assert.True(t, active)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newUserServiceFixture()
	_, err := svc.RegisterNewUser("deniz@alibey.com", "Deniz", "correct horse", "")
	require.NoError(t, err)

	_, _, _, err = svc.Login(context.Background(), "deniz@alibey.com", "wrong", nil, nil)
	assert.Error(t, err)
}

func TestLoginLocksAfterRepeatedFailures(t *testing.T) {
	svc, repo, _ := newUserServiceFixture()
	_, err := svc.RegisterNewUser("deniz@alibey.com", "Deniz", "correct horse", "")
	require.NoError(t, err)

	for i := 0; i < maxLoginAttempts; i++ {
		_, _, _, err = svc.Login(context.Background(), "deniz@alibey.com", "wrong", nil, nil)
		assert.Error(t, err)
	}

	stored, err := repo.GetByEmail("deniz@alibey.com")
	require.NoError(t, err)
	assert.Greater(t, stored.LockedUntil, time.Now().Unix())

	// Even the right password is refused while the lockout holds.
	_, _, _, err = svc.Login(context.Background(), "deniz@alibey.com", "correct horse", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locked")
}
