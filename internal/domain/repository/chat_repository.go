// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"zerowaste/internal/domain/entity"
)

// ErrChatNotFound is returned when a chat does not exist.
var ErrChatNotFound = errors.New("chat not found")

// ChatRepository defines read operations on chat conversations.
type ChatRepository interface {
	// FindByID retrieves a single chat by its document ID.
	FindByID(ctx context.Context, id string) (*entity.Chat, error)
}
