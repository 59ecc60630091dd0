package models

import (
	"time"

	"github.com/orgdesk/backend/internal/domain/identity"
)

// UserModel is the persistence model for users
type UserModel struct {
	AggregateModel
	Email          string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Name           string `gorm:"type:varchar(200);not null"`
	PasswordHash   string `gorm:"type:varchar(255);not null"`
	LastLoginAt    *time.Time
	FailedAttempts int `gorm:"not null;default:0"`
	LockedUntil    *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the model to a domain user
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.AggregateRoot(),
		Email:             m.Email,
		Name:              m.Name,
		PasswordHash:      m.PasswordHash,
		LastLoginAt:       m.LastLoginAt,
		FailedAttempts:    m.FailedAttempts,
		LockedUntil:       m.LockedUntil,
	}
}

// UserFromDomain converts a domain user to its model
func UserFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Email:          u.Email,
		Name:           u.Name,
		PasswordHash:   u.PasswordHash,
		LastLoginAt:    u.LastLoginAt,
		FailedAttempts: u.FailedAttempts,
		LockedUntil:    u.LockedUntil,
	}
	m.FromAggregateRoot(u.BaseAggregateRoot)
	return m
}
