package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"marketing-service/internal/models"
	"marketing-service/internal/repository"
	"marketing-service/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxLoginAttempts = 5
	lockoutDuration  = 15 * time.Minute
)

type IUserService interface {
	RegisterNewUser(email, displayName, password, roleName string) (*models.User, error)
	Login(ctx context.Context, email, password string, deviceInfo, ipAddress *string) (*models.User, *models.UserSession, string, error)
	GetUserByID(userID string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetAllUsers(limit, offset int) ([]*models.User, error)
}

type UserService struct {
	userRepo       repository.IUserRepository
	sessionService *SessionService
	jwtService     *JWTService
	roleService    *RoleService
}

func NewUserService(
	userRepo repository.IUserRepository,
	sessionService *SessionService,
	jwtService *JWTService,
	roleService *RoleService,
) IUserService {
	return &UserService{
		userRepo:       userRepo,
		sessionService: sessionService,
		jwtService:     jwtService,
		roleService:    roleService,
	}
}

func (s *UserService) RegisterNewUser(email, displayName, password, roleName string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if ok, err := utils.ValidateEmail(email); !ok {
		return nil, fmt.Errorf("invalid email: %w", err)
	}
	if displayName == "" {
		return nil, fmt.Errorf("display name cannot be empty")
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	if existing, _ := s.userRepo.GetByEmail(email); existing != nil {
		return nil, fmt.Errorf("user with email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           "U-" + uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: string(hash),
		Status:       models.UserStatusActive,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if roleName == "" {
		roleName = models.RoleEmployee
	}
	if err := s.roleService.AssignRoleToUser(user.ID, roleName, nil); err != nil {
		log.Printf("failed to assign role %s to new user %s: %v", roleName, user.ID, err)
	}

	return user, nil
}

func (s *UserService) Login(ctx context.Context, email, password string, deviceInfo, ipAddress *string) (*models.User, *models.UserSession, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, nil, "", fmt.Errorf("invalid credentials")
	}

	if user.Status != models.UserStatusActive {
		return nil, nil, "", fmt.Errorf("account is %s", user.Status)
	}
	if user.LockedUntil > time.Now().Unix() {
		return nil, nil, "", fmt.Errorf("account locked, try again later")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		attempts := user.LoginAttempts + 1
		lockedUntil := user.LockedUntil
		if attempts >= maxLoginAttempts {
			lockedUntil = time.Now().Add(lockoutDuration).Unix()
			attempts = 0
		}
		if err := s.userRepo.UpdateLoginAttempts(user.ID, attempts, lockedUntil); err != nil {
			log.Printf("failed to update login attempts for %s: %v", user.ID, err)
		}
		return nil, nil, "", fmt.Errorf("invalid credentials")
	}

	token, err := s.jwtService.GenerateNewToken(user)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	session, err := s.sessionService.CreateSession(ctx, user.ID, token, deviceInfo, ipAddress)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to create session: %w", err)
	}

	if err := s.userRepo.RecordLogin(user.ID, time.Now()); err != nil {
		log.Printf("failed to record login for %s: %v", user.ID, err)
	}

	return user, session, token, nil
}

func (s *UserService) GetUserByID(userID string) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

func (s *UserService) GetUserByEmail(email string) (*models.User, error) {
	return s.userRepo.GetByEmail(email)
}

func (s *UserService) GetAllUsers(limit, offset int) ([]*models.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.userRepo.GetAll(limit, offset)
}
