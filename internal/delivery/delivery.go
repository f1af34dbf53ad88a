// Package delivery defines the contract for transport servers.
package delivery

import "context"

// Delivery is a long-running transport (HTTP worker, queue consumer) managed
// by the application lifecycle.
type Delivery interface {
	// Serve blocks until the transport stops or fails.
	Serve(ctx context.Context) error
}
