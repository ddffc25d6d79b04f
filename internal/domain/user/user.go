// Package user provides the owner registry backing key issuance.
package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a registered key owner.
type User struct {
	ID        string
	Email     string
	Name      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository defines storage operations for users.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	Upsert(ctx context.Context, u *User) (*User, error)
	Count(ctx context.Context) (int64, error)
}

// ErrInvalidEmail indicates the registration payload carried no usable email.
var ErrInvalidEmail = errors.New("invalid email")

// Service persists and resolves owners.
type Service struct {
	repo Repository
}

// NewService constructs a Service with required dependencies.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// EnsureUser registers the owner if new and returns the stored record.
// Emails are compared case-insensitively, so re-registration with a
// different casing resolves to the existing owner.
func (s *Service) EnsureUser(ctx context.Context, email string, name *string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	u := &User{
		ID:    uuid.NewString(),
		Email: email,
		Name:  name,
	}
	return s.repo.Upsert(ctx, u)
}

// FindByEmail resolves a registered owner.
func (s *Service) FindByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// Count reports how many owners are registered.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
