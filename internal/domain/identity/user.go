package identity

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

const (
	// AggregateTypeUser is the aggregate type for users
	AggregateTypeUser = "user"

	bcryptCost = 12
)

// User is a person who can sign in and belong to organizations
type User struct {
	shared.BaseAggregateRoot
	Email          string
	Name           string
	PasswordHash   string
	LastLoginAt    *time.Time
	FailedAttempts int
	LockedUntil    *time.Time
}

// NewUser creates a user with a hashed password
func NewUser(email, name, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := shared.ValidateEmail(email); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if err := shared.ValidateRequiredName("name", name, 200); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		Name:              name,
		PasswordHash:      string(hash),
	}
	u.AddDomainEvent(shared.NewLifecycleEvent(AggregateTypeUser, "registered", u.ID, uuid.Nil))
	return u, nil
}

// VerifyPassword compares a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword replaces the password after checking the current one
func (u *User) ChangePassword(current, next string) error {
	if !u.VerifyPassword(current) {
		return shared.NewFieldError("INVALID_PASSWORD", "current_password", "Current password is incorrect")
	}
	if err := validatePassword(next); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = string(hash)
	u.IncrementVersion()
	return nil
}

// IsLocked reports whether sign-in is temporarily blocked
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}

// RecordLoginSuccess resets the failure counter
func (u *User) RecordLoginSuccess(now time.Time) {
	u.LastLoginAt = &now
	u.FailedAttempts = 0
	u.LockedUntil = nil
	u.IncrementVersion()
}

// RecordLoginFailure counts a failed attempt and locks the account once maxAttempts is reached.
// Returns true when the account became locked.
func (u *User) RecordLoginFailure(now time.Time, maxAttempts int, lockFor time.Duration) bool {
	u.FailedAttempts++
	u.IncrementVersion()
	if maxAttempts > 0 && u.FailedAttempts >= maxAttempts {
		until := now.Add(lockFor)
		u.LockedUntil = &until
		u.FailedAttempts = 0
		return true
	}
	return false
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewFieldError("INVALID_PASSWORD", "password", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewFieldError("INVALID_PASSWORD", "password", "Password cannot exceed 72 characters")
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return shared.NewFieldError("INVALID_PASSWORD", "password", "Password must contain at least one letter and one number")
	}
	return nil
}
