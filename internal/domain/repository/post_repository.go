// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"zerowaste/internal/domain/entity"
)

// ErrPostNotFound is returned when a post does not exist.
var ErrPostNotFound = errors.New("post not found")

// PostRepository defines read and lifecycle operations on food posts.
type PostRepository interface {
	// FindByID retrieves a single post by its document ID.
	FindByID(ctx context.Context, id string) (*entity.Post, error)

	// MarkExpired transitions an available post to the expired status.
	MarkExpired(ctx context.Context, id string) error
}
