// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers
// and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"zerowaste/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer depends on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their document ID.
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// FindAll retrieves the full user population. The proximity scanner
	// walks this once per new post; the user universe is expected to be small.
	FindAll(ctx context.Context) ([]*entity.User, error)

	// ClearPushToken removes a stale push token from the user record.
	ClearPushToken(ctx context.Context, id string) error
}
