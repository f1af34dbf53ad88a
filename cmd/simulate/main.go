// Command simulate publishes sample document change events through the
// configured publisher, so the worker can be exercised end to end without a
// Firestore deployment. Point config at the local provider and a running
// worker, then pick a scenario with -scenario.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"zerowaste/config"
	"zerowaste/internal/domain/constants"
	"zerowaste/internal/domain/service"
	logs "zerowaste/internal/infra/log"
	"zerowaste/internal/infra/pubsub"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type simulateParams struct {
	fx.In
	fx.Shutdowner

	Logger    *slog.Logger
	Publisher service.EventPublisher
}

func main() {
	scenario := flag.String("scenario", "post", "scenario to publish: post, claim, claim-update, message, rating, test")
	token := flag.String("token", "", "FCM token for the test scenario")
	flag.Parse()

	fx.New(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
		),
		pubsub.Module,
		fx.Invoke(func(params simulateParams) {
			go func() {
				if err := publish(context.Background(), params, *scenario, *token); err != nil {
					params.Logger.Error("Failed to publish scenario", slog.Any("error", err))
				}

				if err := params.Shutdown(); err != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", err))
					os.Exit(1)
				}
			}()
		}),
	).Run()
}

func publish(ctx context.Context, params simulateParams, scenario, token string) error {
	event, err := buildEvent(scenario, token)
	if err != nil {
		return err
	}

	params.Logger.Info("Publishing change event",
		slog.String("scenario", scenario),
		slog.String("collection", event.Collection),
		slog.String("kind", string(event.Kind)),
		slog.String("document_id", event.DocumentID),
	)

	return params.Publisher.PublishChangeEvent(ctx, event)
}

func buildEvent(scenario, token string) (*service.ChangeEvent, error) {
	requestID := uuid.New().String()

	switch scenario {
	case "post":
		return &service.ChangeEvent{
			RequestID:  requestID,
			Collection: constants.CollectionPosts,
			Kind:       service.MutationCreated,
			DocumentID: "sim-post-1",
			After: mustJSON(map[string]any{
				"title":    "Leftover vegetable curry",
				"postedBy": "sim-user-author",
				"location": map[string]float64{"latitude": 40.0, "longitude": -75.0},
				"status":   "available",
				"expiry":   time.Now().Add(4 * time.Hour).Format(time.RFC3339),
			}),
		}, nil
	case "claim":
		return &service.ChangeEvent{
			RequestID:  requestID,
			Collection: constants.CollectionClaims,
			Kind:       service.MutationCreated,
			DocumentID: "sim-claim-1",
			After: mustJSON(map[string]any{
				"postId":    "sim-post-1",
				"creatorId": "sim-user-author",
				"claimerId": "sim-user-claimer",
				"status":    "pending",
			}),
		}, nil
	case "claim-update":
		return &service.ChangeEvent{
			RequestID:  requestID,
			Collection: constants.CollectionClaims,
			Kind:       service.MutationUpdated,
			DocumentID: "sim-claim-1",
			Before: mustJSON(map[string]any{
				"postId":    "sim-post-1",
				"creatorId": "sim-user-author",
				"claimerId": "sim-user-claimer",
				"status":    "pending",
			}),
			After: mustJSON(map[string]any{
				"postId":    "sim-post-1",
				"creatorId": "sim-user-author",
				"claimerId": "sim-user-claimer",
				"status":    "accepted",
			}),
		}, nil
	case "message":
		return &service.ChangeEvent{
			RequestID:  requestID,
			Collection: constants.CollectionMessages,
			Kind:       service.MutationCreated,
			DocumentID: "sim-message-1",
			ParentID:   "sim-chat-1",
			After: mustJSON(map[string]any{
				"senderId": "sim-user-claimer",
				"content":  "Hi! Is the curry still available for pickup tonight?",
			}),
		}, nil
	case "rating":
		return &service.ChangeEvent{
			RequestID:  requestID,
			Collection: constants.CollectionRatings,
			Kind:       service.MutationCreated,
			DocumentID: "sim-rating-1",
			After: mustJSON(map[string]any{
				"fromUserId": "sim-user-claimer",
				"toUserId":   "sim-user-author",
				"postId":     "sim-post-1",
				"rating":     4.5,
				"review":     "Delicious, thank you!",
			}),
		}, nil
	case "test":
		if token == "" {
			return nil, fmt.Errorf("the test scenario requires -token")
		}

		return &service.ChangeEvent{
			RequestID:  requestID,
			Collection: constants.CollectionTestNotifications,
			Kind:       service.MutationCreated,
			DocumentID: "sim-test-1",
			After:      mustJSON(map[string]string{"fcmToken": token}),
		}, nil
	default:
		return nil, fmt.Errorf("unknown scenario: %s", scenario)
	}
}

func mustJSON(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}

	return data
}
