package trigger

import (
	"context"
	"encoding/json"
	"time"

	"zerowaste/internal/domain/constants"
	"zerowaste/internal/domain/entity"
	"zerowaste/internal/domain/service"
	"zerowaste/internal/errors"
	"zerowaste/internal/usecase"

	"github.com/go-playground/validator/v10"
)

//nolint:gochecknoglobals // validator instances are designed to be shared.
var validate = validator.New()

// coordinatePayload uses pointers so that 0 degrees still counts as present.
type coordinatePayload struct {
	Latitude  *float64 `json:"latitude" validate:"required"`
	Longitude *float64 `json:"longitude" validate:"required"`
}

type postPayload struct {
	Title     string             `json:"title" validate:"required"`
	PostedBy  string             `json:"postedBy" validate:"required"`
	Location  *coordinatePayload `json:"location" validate:"required"`
	Status    string             `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
	Expiry    time.Time          `json:"expiry"`
}

type claimPayload struct {
	PostID    string `json:"postId" validate:"required"`
	CreatorID string `json:"creatorId" validate:"required"`
	ClaimerID string `json:"claimerId" validate:"required"`
	Status    string `json:"status"`
}

type messagePayload struct {
	SenderID string `json:"senderId"`
	Sender   string `json:"sender"` // Legacy field name still written by old clients.
	Content  string `json:"content"`
}

type ratingPayload struct {
	FromUserID string  `json:"fromUserId" validate:"required"`
	ToUserID   string  `json:"toUserId" validate:"required"`
	PostID     string  `json:"postId"`
	Rating     float64 `json:"rating"`
	Review     string  `json:"review"`
}

type testPayload struct {
	FCMToken string `json:"fcmToken"`
}

// decodePayload unmarshals and validates a trigger document body. A document
// that fails either step is malformed and aborts the handler invocation.
func decodePayload[T any](data json.RawMessage) (*T, error) {
	payload := new(T)
	if err := json.Unmarshal(data, payload); err != nil {
		return nil, errors.Wrap(err, "malformed trigger payload")
	}
	if err := validate.Struct(payload); err != nil {
		return nil, errors.Wrap(err, "trigger payload missing required fields")
	}

	return payload, nil
}

// RegisterRoutes wires every trigger route to the notification use cases.
func RegisterRoutes(router *Router, notify usecase.NotifyUsecase) {
	router.Handle(constants.CollectionPosts, service.MutationCreated, onPostCreated(notify))
	router.Handle(constants.CollectionPosts, service.MutationUpdated, onPostUpdated(notify))
	router.Handle(constants.CollectionClaims, service.MutationCreated, onClaimCreated(notify))
	router.Handle(constants.CollectionClaims, service.MutationUpdated, onClaimUpdated(notify))
	router.Handle(constants.CollectionMessages, service.MutationCreated, onMessageCreated(notify))
	router.Handle(constants.CollectionRatings, service.MutationCreated, onRatingCreated(notify))
	router.Handle(constants.CollectionTestNotifications, service.MutationCreated, onTestNotificationCreated(notify))
}

func toPost(documentID string, payload *postPayload) *entity.Post {
	return &entity.Post{
		ID:       documentID,
		Title:    payload.Title,
		PostedBy: payload.PostedBy,
		Location: entity.Coordinate{
			Latitude:  *payload.Location.Latitude,
			Longitude: *payload.Location.Longitude,
		},
		Status:    entity.PostStatus(payload.Status),
		CreatedAt: payload.CreatedAt,
		Expiry:    payload.Expiry,
	}
}

func toClaim(documentID string, payload *claimPayload) *entity.Claim {
	return &entity.Claim{
		ID:        documentID,
		PostID:    payload.PostID,
		CreatorID: payload.CreatorID,
		ClaimerID: payload.ClaimerID,
		Status:    entity.ClaimStatus(payload.Status),
	}
}

func onPostCreated(notify usecase.NotifyUsecase) HandlerFunc {
	return func(ctx context.Context, event *service.ChangeEvent) error {
		payload, err := decodePayload[postPayload](event.After)
		if err != nil {
			return err
		}

		return notify.NotifyNearbyFood(ctx, toPost(event.DocumentID, payload))
	}
}

func onPostUpdated(notify usecase.NotifyUsecase) HandlerFunc {
	return func(ctx context.Context, event *service.ChangeEvent) error {
		payload, err := decodePayload[postPayload](event.After)
		if err != nil {
			return err
		}

		return notify.ExpirePostIfDue(ctx, toPost(event.DocumentID, payload))
	}
}

func onClaimCreated(notify usecase.NotifyUsecase) HandlerFunc {
	return func(ctx context.Context, event *service.ChangeEvent) error {
		payload, err := decodePayload[claimPayload](event.After)
		if err != nil {
			return err
		}

		return notify.NotifyFoodClaimed(ctx, toClaim(event.DocumentID, payload))
	}
}

func onClaimUpdated(notify usecase.NotifyUsecase) HandlerFunc {
	return func(ctx context.Context, event *service.ChangeEvent) error {
		before, err := decodePayload[claimPayload](event.Before)
		if err != nil {
			return err
		}
		after, err := decodePayload[claimPayload](event.After)
		if err != nil {
			return err
		}

		return notify.NotifyClaimUpdate(ctx, toClaim(event.DocumentID, before), toClaim(event.DocumentID, after))
	}
}

func onMessageCreated(notify usecase.NotifyUsecase) HandlerFunc {
	return func(ctx context.Context, event *service.ChangeEvent) error {
		payload, err := decodePayload[messagePayload](event.After)
		if err != nil {
			return err
		}

		senderID := payload.SenderID
		if senderID == "" {
			senderID = payload.Sender
		}
		if senderID == "" {
			return errors.Errorf("message %s has no sender", event.DocumentID)
		}
		if event.ParentID == "" {
			return errors.Errorf("message %s has no chat id", event.DocumentID)
		}

		return notify.NotifyNewMessage(ctx, &entity.Message{
			ID:       event.DocumentID,
			ChatID:   event.ParentID,
			SenderID: senderID,
			Content:  payload.Content,
		})
	}
}

func onRatingCreated(notify usecase.NotifyUsecase) HandlerFunc {
	return func(ctx context.Context, event *service.ChangeEvent) error {
		payload, err := decodePayload[ratingPayload](event.After)
		if err != nil {
			return err
		}

		return notify.NotifyNewRating(ctx, &entity.Rating{
			ID:         event.DocumentID,
			FromUserID: payload.FromUserID,
			ToUserID:   payload.ToUserID,
			PostID:     payload.PostID,
			Rating:     payload.Rating,
			Review:     payload.Review,
		})
	}
}

func onTestNotificationCreated(notify usecase.NotifyUsecase) HandlerFunc {
	return func(ctx context.Context, event *service.ChangeEvent) error {
		payload, err := decodePayload[testPayload](event.After)
		if err != nil {
			return err
		}

		return notify.SendTestNotification(ctx, payload.FCMToken)
	}
}
