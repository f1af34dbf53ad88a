// Package impl provides implementations of the application use cases.
package impl

import (
	"context"
	"log/slog"

	"zerowaste/config"
	"zerowaste/internal/domain/entity"
	"zerowaste/internal/domain/repository"
	"zerowaste/internal/errors"
	"zerowaste/internal/geo"
	"zerowaste/internal/usecase"
)

type proximityService struct {
	logger   *slog.Logger
	userRepo repository.UserRepository
	radiusKm float64
}

// NewProximityService creates a new proximity scanner instance.
func NewProximityService(logger *slog.Logger, userRepo repository.UserRepository, cfg *config.Config) usecase.ProximityUsecase {
	return &proximityService{
		logger:   logger,
		userRepo: userRepo,
		radiusKm: cfg.Notify.RadiusKm,
	}
}

// NearbyRecipients scans the user population and returns everyone eligible
// to hear about the post. A single linear pass is acceptable here: the user
// universe is small and fetched fresh per post, so a spatial index would be
// rebuilt on every scan anyway.
func (s *proximityService) NearbyRecipients(ctx context.Context, post *entity.Post) (*entity.User, []usecase.Recipient, error) {
	// An unlocatable author aborts the scan; no notifications are sent for
	// posts whose author record is gone.
	author, err := s.userRepo.FindByID(ctx, post.PostedBy)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "lookup author %s", post.PostedBy)
	}

	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "list users")
	}

	recipients := make([]usecase.Recipient, 0)
	for _, user := range users {
		// Cheapest predicates first; distance only for real candidates.
		if user.ID == post.PostedBy {
			continue
		}
		if !user.Notifiable() || !user.Locatable() {
			continue
		}

		distance := geo.Haversine(
			post.Location.Latitude, post.Location.Longitude,
			user.Location.Latitude, user.Location.Longitude,
		)
		if distance > s.radiusKm {
			continue
		}

		recipients = append(recipients, usecase.Recipient{User: user, DistanceKm: distance})
	}

	s.logger.Info("proximity scan completed",
		slog.String("post_id", post.ID),
		slog.Int("population", len(users)),
		slog.Int("eligible", len(recipients)),
	)

	return author, recipients, nil
}
