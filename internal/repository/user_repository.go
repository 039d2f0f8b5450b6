package repository

import (
	"fmt"
	"time"

	"marketing-service/internal/models"

	"github.com/jmoiron/sqlx"
)

type IUserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	UpdateLoginAttempts(userID string, attempts int, lockedUntil int64) error
	RecordLogin(userID string, at time.Time) error
	GetAll(limit, offset int) ([]*models.User, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) IUserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, display_name, avatar_url, password_hash, status,
	created_at, updated_at, last_login, login_attempts, locked_until`

func (r *userRepository) Create(user *models.User) error {
	query := `
		INSERT INTO users (id, email, display_name, avatar_url, password_hash, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
	`
	_, err := r.db.Exec(query, user.ID, user.Email, user.DisplayName, user.AvatarURL, user.PasswordHash, user.Status)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	if err := r.db.Get(&user, query, id); err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	if err := r.db.Get(&user, query, email); err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) Update(user *models.User) error {
	query := `
		UPDATE users
		SET display_name = $2, avatar_url = $3, status = $4, updated_at = now()
		WHERE id = $1
	`
	result, err := r.db.Exec(query, user.ID, user.DisplayName, user.AvatarURL, user.Status)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user not found")
	}
	return nil
}

func (r *userRepository) UpdateLoginAttempts(userID string, attempts int, lockedUntil int64) error {
	query := `UPDATE users SET login_attempts = $2, locked_until = $3 WHERE id = $1`
	if _, err := r.db.Exec(query, userID, attempts, lockedUntil); err != nil {
		return fmt.Errorf("failed to update login attempts: %w", err)
	}
	return nil
}

func (r *userRepository) RecordLogin(userID string, at time.Time) error {
	query := `UPDATE users SET last_login = $2, login_attempts = 0 WHERE id = $1`
	if _, err := r.db.Exec(query, userID, at); err != nil {
		return fmt.Errorf("failed to record login: %w", err)
	}
	return nil
}

func (r *userRepository) GetAll(limit, offset int) ([]*models.User, error) {
	var users []*models.User
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`, userColumns)
	if err := r.db.Select(&users, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	return users, nil
}
