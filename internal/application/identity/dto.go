package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/identity"
	"github.com/orgdesk/backend/internal/infrastructure/auth"
)

// RegisterInput is the sign-up form
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Name     string `json:"name" validate:"required,max=200" sanitize:"text"`
	Password string `json:"password" validate:"required,min=8,max=72" sanitize:"-"`
}

// LoginInput holds credentials
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required" sanitize:"-"`
}

// RefreshInput carries the refresh token to rotate
type RefreshInput struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutInput optionally carries the refresh token to revoke with the access token
type LogoutInput struct {
	RefreshToken string `json:"refresh_token"`
}

// ChangePasswordInput replaces the current user's password
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required" sanitize:"-"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72,nefield=CurrentPassword" sanitize:"-"`
}

// UserResponse is a user in API responses
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// AuthResult is returned by register, login and refresh
type AuthResult struct {
	User   UserResponse    `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// ToUserResponse converts a domain user
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
