// Package service defines interfaces for external collaborators.
package service

import (
	"context"
	"errors"
)

// ErrStaleToken indicates the recipient's push token is no longer registered
// with the push platform. Callers may react by clearing the token; this
// service performs no automatic remediation unless configured to.
var ErrStaleToken = errors.New("push token is invalid or unregistered")

// PushService defines the interface for push notification delivery.
type PushService interface {
	// Send delivers a single push notification and returns the
	// platform-assigned message ID. A stale or unregistered token is
	// reported as an error matching ErrStaleToken via errors.Is.
	Send(ctx context.Context, token, title, body string, data map[string]string) (string, error)
}
