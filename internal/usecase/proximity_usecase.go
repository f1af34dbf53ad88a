// Package usecase defines the application-layer interfaces.
package usecase

import (
	"context"
	"fmt"

	"zerowaste/internal/domain/entity"
)

// Recipient is a user eligible for a proximity notification, together with
// their distance from the post.
type Recipient struct {
	User       *entity.User
	DistanceKm float64
}

// DisplayDistance renders the distance with one decimal for message bodies.
func (r Recipient) DisplayDistance() string {
	return fmt.Sprintf("%.1f", r.DistanceKm)
}

// ProximityUsecase selects the users to notify about a newly shared post.
type ProximityUsecase interface {
	// NearbyRecipients returns the post author together with every user
	// within the configured radius of the post that has a push token and a
	// known location, excluding the author. The result order is unspecified.
	// A missing author record aborts the scan with an error; an empty result
	// is not an error. The author is returned so callers building message
	// content do not repeat the lookup.
	NearbyRecipients(ctx context.Context, post *entity.Post) (*entity.User, []Recipient, error)
}
