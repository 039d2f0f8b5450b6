package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID            string     `json:"id" db:"id"`
	Email         string     `json:"email" db:"email"`
	DisplayName   string     `json:"display_name" db:"display_name"`
	AvatarURL     *string    `json:"avatar_url" db:"avatar_url"`
	PasswordHash  string     `json:"-" db:"password_hash"`
	Status        UserStatus `json:"status" db:"status"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
	LastLogin     *time.Time `json:"last_login" db:"last_login"`
	LoginAttempts int        `json:"login_attempts" db:"login_attempts"`
	LockedUntil   int64      `json:"locked_until" db:"locked_until"`
}

type UserStatus string

const (
	UserStatusActive      UserStatus = "active"
	UserStatusSuspended   UserStatus = "suspended"
	UserStatusDeactivated UserStatus = "deactivated"
)

type UserSession struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	TokenHash  string    `json:"-" db:"token_hash"`
	DeviceInfo *string   `json:"device_info" db:"device_info"`
	IPAddress  *string   `json:"ip_address" db:"ip_address"`
	ExpiresAt  time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	IsActive   bool      `json:"is_active" db:"is_active"`
}

type Claims struct {
	jwt.RegisteredClaims
	Id          string
	UserID      string
	Email       string
	DisplayName string
	AvatarURL   string
}

// Identity is the verified caller extracted from a signed token plus the role
// set looked up for its subject. Transition entry points consume this, never a
// client-supplied user id.
type Identity struct {
	UserID      string   `json:"user_id"`
	Email       string   `json:"email"`
	DisplayName string   `json:"display_name"`
	AvatarURL   *string  `json:"avatar_url,omitempty"`
	Roles       []string `json:"roles"`
}

func (i *Identity) HasAnyRole(required ...string) bool {
	for _, want := range required {
		for _, have := range i.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
