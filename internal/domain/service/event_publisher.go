package service

import (
	"context"
	"encoding/json"
)

// MutationKind describes how a document changed.
type MutationKind string

const (
	MutationCreated MutationKind = "created"
	MutationUpdated MutationKind = "updated"
)

// ChangeEvent is a Firestore document mutation forwarded through Pub/Sub.
// Before is empty for created documents. The payloads are the raw document
// bodies; trigger handlers decode and validate the fields they need.
type ChangeEvent struct {
	RequestID  string       `json:"request_id,omitempty"` // For distributed tracing.
	Collection string       `json:"collection"`
	Kind       MutationKind `json:"kind"`
	DocumentID string       `json:"document_id"`
	// ParentID carries the owning document for subcollections,
	// e.g. the chat ID for chats/{chatId}/messages/{messageId}.
	ParentID string          `json:"parent_id,omitempty"`
	Before   json.RawMessage `json:"before,omitempty"`
	After    json.RawMessage `json:"after"`
}

// EventPublisher defines the interface for publishing change events to a
// message queue for async processing.
type EventPublisher interface {
	// PublishChangeEvent publishes a document change event.
	PublishChangeEvent(ctx context.Context, event *ChangeEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
