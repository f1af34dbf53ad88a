package usecase

import (
	"context"

	"zerowaste/internal/domain/entity"
)

// NotifyUsecase reacts to document mutations by sending push notifications.
// Every method corresponds to one trigger route; the delivery layer decodes
// the triggering document and swallows returned errors after logging them.
type NotifyUsecase interface {
	// NotifyNearbyFood notifies users near a newly created post.
	NotifyNearbyFood(ctx context.Context, post *entity.Post) error

	// NotifyFoodClaimed notifies the post author about a new claim.
	NotifyFoodClaimed(ctx context.Context, claim *entity.Claim) error

	// NotifyClaimUpdate notifies the claimant when their claim transitions
	// to accepted or rejected. Other transitions are ignored.
	NotifyClaimUpdate(ctx context.Context, before, after *entity.Claim) error

	// NotifyNewMessage notifies the other chat participant about a message.
	NotifyNewMessage(ctx context.Context, msg *entity.Message) error

	// NotifyNewRating notifies a user about a rating they received.
	NotifyNewRating(ctx context.Context, rating *entity.Rating) error

	// SendTestNotification sends a canned notification to a raw token.
	SendTestNotification(ctx context.Context, token string) error

	// ExpirePostIfDue marks an available post as expired once its expiry
	// timestamp has passed.
	ExpirePostIfDue(ctx context.Context, post *entity.Post) error
}
