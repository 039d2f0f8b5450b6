package services

import (
	"context"
	"fmt"
	"time"

	"marketing-service/internal/models"
	"marketing-service/internal/repository"

	"github.com/google/uuid"
)

type SessionService struct {
	sessionRepo repository.SessionRepository
}

func NewSessionService(sessionRepo repository.SessionRepository) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
	}
}

func (s *SessionService) CreateSession(ctx context.Context, userID, tokenHash string, deviceInfo, ipAddress *string) (*models.UserSession, error) {
	session := &models.UserSession{
		ID:         uuid.New().String(),
		UserID:     userID,
		TokenHash:  tokenHash,
		DeviceInfo: deviceInfo,
		IPAddress:  ipAddress,
		CreatedAt:  time.Now(),
	}

	if err := s.sessionRepo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*models.UserSession, error) {
	return s.sessionRepo.GetSession(ctx, sessionID)
}

func (s *SessionService) GetUserSessions(ctx context.Context, userID string) ([]*models.UserSession, error) {
	return s.sessionRepo.GetUserSessions(ctx, userID)
}

// HasActiveTokenSession reports whether the given token belongs to a live
// session for the user.
func (s *SessionService) HasActiveTokenSession(ctx context.Context, userID, token string) (bool, error) {
	sessions, err := s.sessionRepo.GetUserSessions(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, session := range sessions {
		if session.TokenHash == token && session.IsActive {
			return true, nil
		}
	}
	return false, nil
}

func (s *SessionService) InvalidateSession(ctx context.Context, sessionID string) error {
	return s.sessionRepo.DeleteSession(ctx, sessionID)
}

func (s *SessionService) InvalidateUserSessions(ctx context.Context, userID string) error {
	return s.sessionRepo.DeleteUserSessions(ctx, userID)
}
