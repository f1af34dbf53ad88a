package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"zerowaste/config"
	"zerowaste/internal/domain/entity"
	"zerowaste/internal/domain/service"
	mockRepo "zerowaste/internal/mocks/repository"
	mockSvc "zerowaste/internal/mocks/service"
	"zerowaste/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// createTestNotifyService wires the orchestrator with the real proximity and
// dispatch implementations so the flows run end to end against mocked
// repositories and push delivery.
func createTestNotifyService(t *testing.T, clearStaleTokens bool) (
	usecase.NotifyUsecase,
	*mockRepo.MockUserRepository,
	*mockRepo.MockPostRepository,
	*mockRepo.MockChatRepository,
	*mockSvc.MockPushService,
) {
	userRepo := mockRepo.NewMockUserRepository(t)
	postRepo := mockRepo.NewMockPostRepository(t)
	chatRepo := mockRepo.NewMockChatRepository(t)
	pushSvc := mockSvc.NewMockPushService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cfg := &config.Config{Notify: &config.NotifyConfig{RadiusKm: 20.0, ClearStaleTokens: clearStaleTokens}}

	notifySvc := NewNotifyService(
		logger,
		userRepo,
		postRepo,
		chatRepo,
		NewProximityService(logger, userRepo, cfg),
		NewDispatchService(logger, pushSvc),
		cfg,
	)

	return notifySvc, userRepo, postRepo, chatRepo, pushSvc
}

func TestNotifyService_NotifyNearbyFood_NotifiesEligibleUsersOnly(t *testing.T) {
	notifySvc, userRepo, _, _, pushSvc := createTestNotifyService(t, false)

	ctx := context.Background()
	post := &entity.Post{
		ID:       "post-1",
		Title:    "Veggie curry",
		PostedBy: "user-a",
		Location: entity.Coordinate{Latitude: 40.0, Longitude: -75.0},
	}

	author := &entity.User{ID: "user-a", Name: "Alice", FCMToken: "token-a", Location: coordinate(40.0, -75.0)}
	nearby := &entity.User{ID: "user-b", Name: "Bob", FCMToken: "token-b", Location: coordinate(40.05, -75.0)}
	far := &entity.User{ID: "user-c", Name: "Carol", FCMToken: "token-c", Location: coordinate(41.0, -75.0)}
	noToken := &entity.User{ID: "user-d", Name: "Dave", Location: coordinate(40.01, -75.0)}

	userRepo.EXPECT().FindByID(ctx, "user-a").Return(author, nil)
	userRepo.EXPECT().FindAll(ctx).Return([]*entity.User{author, nearby, far, noToken}, nil)

	pushSvc.EXPECT().
		Send(ctx, "token-b", "New food nearby! 📍", `Alice shared "Veggie curry" 5.6km away`, mock.Anything).
		Run(func(ctx context.Context, token, title, body string, data map[string]string) {
			assert.Equal(t, "new_food_nearby", data["type"])
			assert.Equal(t, "post-1", data["postId"])
			assert.Equal(t, "5.6", data["distance"])
		}).
		Return("msg-1", nil)

	err := notifySvc.NotifyNearbyFood(ctx, post)

	require.NoError(t, err)
	pushSvc.AssertNumberOfCalls(t, "Send", 1)
	// The scanner's author lookup is reused for the message content; the
	// fan-out must not read the author record twice.
	userRepo.AssertNumberOfCalls(t, "FindByID", 1)
}

func TestNotifyService_NotifyNearbyFood_NoRecipients(t *testing.T) {
	notifySvc, userRepo, _, _, pushSvc := createTestNotifyService(t, false)

	ctx := context.Background()
	post := &entity.Post{ID: "post-1", PostedBy: "user-a", Location: entity.Coordinate{Latitude: 40.0, Longitude: -75.0}}
	author := &entity.User{ID: "user-a", Name: "Alice", FCMToken: "token-a", Location: coordinate(40.0, -75.0)}

	userRepo.EXPECT().FindByID(ctx, "user-a").Return(author, nil)
	userRepo.EXPECT().FindAll(ctx).Return([]*entity.User{author}, nil)

	err := notifySvc.NotifyNearbyFood(ctx, post)

	require.NoError(t, err)
	pushSvc.AssertNotCalled(t, "Send")
}

func TestNotifyService_NotifyFoodClaimed_NotifiesPoster(t *testing.T) {
	notifySvc, userRepo, postRepo, _, pushSvc := createTestNotifyService(t, false)

	ctx := context.Background()
	claim := &entity.Claim{ID: "claim-1", PostID: "post-1", CreatorID: "user-a", ClaimerID: "user-b", Status: entity.ClaimStatusPending}

	postRepo.EXPECT().FindByID(ctx, "post-1").Return(&entity.Post{ID: "post-1", Title: "Veggie curry"}, nil)
	userRepo.EXPECT().FindByID(ctx, "user-a").Return(&entity.User{ID: "user-a", Name: "Alice", FCMToken: "token-a"}, nil)
	userRepo.EXPECT().FindByID(ctx, "user-b").Return(&entity.User{ID: "user-b", Name: "Bob"}, nil)

	pushSvc.EXPECT().
		Send(ctx, "token-a", "Someone claimed your food! 🍽️", `Bob wants to claim "Veggie curry"`, mock.Anything).
		Return("msg-1", nil)

	err := notifySvc.NotifyFoodClaimed(ctx, claim)

	require.NoError(t, err)
}

func TestNotifyService_NotifyFoodClaimed_PosterWithoutToken(t *testing.T) {
	notifySvc, userRepo, postRepo, _, pushSvc := createTestNotifyService(t, false)

	ctx := context.Background()
	claim := &entity.Claim{ID: "claim-1", PostID: "post-1", CreatorID: "user-a", ClaimerID: "user-b"}

	postRepo.EXPECT().FindByID(ctx, "post-1").Return(&entity.Post{ID: "post-1", Title: "Veggie curry"}, nil)
	userRepo.EXPECT().FindByID(ctx, "user-a").Return(&entity.User{ID: "user-a", Name: "Alice"}, nil)
	userRepo.EXPECT().FindByID(ctx, "user-b").Return(&entity.User{ID: "user-b", Name: "Bob"}, nil)

	err := notifySvc.NotifyFoodClaimed(ctx, claim)

	require.NoError(t, err)
	pushSvc.AssertNotCalled(t, "Send")
}

func TestNotifyService_NotifyClaimUpdate_Accepted(t *testing.T) {
	notifySvc, userRepo, postRepo, _, pushSvc := createTestNotifyService(t, false)

	ctx := context.Background()
	before := &entity.Claim{ID: "claim-1", PostID: "post-1", CreatorID: "user-a", ClaimerID: "user-b", Status: entity.ClaimStatusPending}
	after := &entity.Claim{ID: "claim-1", PostID: "post-1", CreatorID: "user-a", ClaimerID: "user-b", Status: entity.ClaimStatusAccepted}

	postRepo.EXPECT().FindByID(ctx, "post-1").Return(&entity.Post{ID: "post-1", Title: "Veggie curry"}, nil)
	userRepo.EXPECT().FindByID(ctx, "user-b").Return(&entity.User{ID: "user-b", Name: "Bob", FCMToken: "token-b"}, nil)
	userRepo.EXPECT().FindByID(ctx, "user-a").Return(&entity.User{ID: "user-a", Name: "Alice"}, nil)

	pushSvc.EXPECT().
		Send(ctx, "token-b", "Claim Accepted! 🎉", `Alice accepted your claim for "Veggie curry"!`, mock.Anything).
		Return("msg-1", nil)

	err := notifySvc.NotifyClaimUpdate(ctx, before, after)

	require.NoError(t, err)
}

func TestNotifyService_NotifyClaimUpdate_IgnoresOtherTransitions(t *testing.T) {
	notifySvc, userRepo, postRepo, _, pushSvc := createTestNotifyService(t, false)

	ctx := context.Background()
	pending := &entity.Claim{ID: "claim-1", PostID: "post-1", ClaimerID: "user-b", Status: entity.ClaimStatusPending}
	stillPending := &entity.Claim{ID: "claim-1", PostID: "post-1", ClaimerID: "user-b", Status: entity.ClaimStatusPending}

	// No status change at all.
	require.NoError(t, notifySvc.NotifyClaimUpdate(ctx, pending, stillPending))

	// A transition that is neither accepted nor rejected.
	reopened := &entity.Claim{ID: "claim-1", PostID: "post-1", ClaimerID: "user-b", Status: entity.ClaimStatus("cancelled")}
	require.NoError(t, notifySvc.NotifyClaimUpdate(ctx, pending, reopened))

	postRepo.AssertNotCalled(t, "FindByID")
	userRepo.AssertNotCalled(t, "FindByID")
	pushSvc.AssertNotCalled(t, "Send")
}

func TestNotifyService_NotifyNewMessage_TruncatesLongContent(t *testing.T) {
	notifySvc, userRepo, _, chatRepo, pushSvc := createTestNotifyService(t, false)

	ctx := context.Background()
	content := strings.Repeat("a", 60)
	msg := &entity.Message{ID: "msg-1", ChatID: "chat-1", SenderID: "user-a", Content: content}

	chatRepo.EXPECT().FindByID(ctx, "chat-1").Return(&entity.Chat{
		ID:           "chat-1",
		Participants: []string{"user-a", "user-b"},
		PostID:       "post-1",
		PostTitle:    "Veggie curry",
	}, nil)
	userRepo.EXPECT().FindByID(ctx, "user-a").Return(&entity.User{ID: "user-a", Name: "Alice"}, nil)
	userRepo.EXPECT().FindByID(ctx, "user-b").Return(&entity.User{ID: "user-b", Name: "Bob", FCMToken: "token-b"}, nil)

	expectedBody := strings.Repeat("a", 50) + "..."
	pushSvc.EXPECT().
		Send(ctx, "token-b", "New message from Alice 💬", expectedBody, mock.Anything).
		Return("msg-id", nil)

	err := notifySvc.NotifyNewMessage(ctx, msg)

	require.NoError(t, err)
}

func TestNotifyService_NotifyNewRating_WithReview(t *testing.T) {
	notifySvc, userRepo, postRepo, _, pushSvc := createTestNotifyService(t, false)

	ctx := context.Background()
	rating := &entity.Rating{
		ID:         "rating-1",
		FromUserID: "user-b",
		ToUserID:   "user-a",
		PostID:     "post-1",
		Rating:     4.5,
		Review:     "Delicious!",
	}

	userRepo.EXPECT().FindByID(ctx, "user-b").Return(&entity.User{ID: "user-b", Name: "Bob"}, nil)
	userRepo.EXPECT().FindByID(ctx, "user-a").Return(&entity.User{ID: "user-a", Name: "Alice", FCMToken: "token-a"}, nil)
	postRepo.EXPECT().FindByID(ctx, "post-1").Return(&entity.Post{ID: "post-1", Title: "Veggie curry"}, nil)

	// 4.5 floors to four stars and the review rides along.
	expectedBody := `Bob rated you 4.5/5 ⭐⭐⭐⭐ for "Veggie curry": "Delicious!"`
	pushSvc.EXPECT().
		Send(ctx, "token-a", "You received a new rating! ⭐", expectedBody, mock.Anything).
		Return("msg-1", nil)

	err := notifySvc.NotifyNewRating(ctx, rating)

	require.NoError(t, err)
}

func TestNotifyService_SendTestNotification(t *testing.T) {
	notifySvc, _, _, _, pushSvc := createTestNotifyService(t, false)

	ctx := context.Background()

	pushSvc.EXPECT().
		Send(ctx, "token-test", "Test Notification 🧪", mock.Anything, mock.Anything).
		Return("msg-1", nil)

	require.NoError(t, notifySvc.SendTestNotification(ctx, "token-test"))
}

func TestNotifyService_SendTestNotification_EmptyToken(t *testing.T) {
	notifySvc, _, _, _, pushSvc := createTestNotifyService(t, false)

	require.NoError(t, notifySvc.SendTestNotification(context.Background(), ""))
	pushSvc.AssertNotCalled(t, "Send")
}

func TestNotifyService_ExpirePostIfDue(t *testing.T) {
	notifySvc, _, postRepo, _, _ := createTestNotifyService(t, false)

	ctx := context.Background()
	due := &entity.Post{
		ID:     "post-1",
		Status: entity.PostStatusAvailable,
		Expiry: time.Now().Add(-time.Hour),
	}

	postRepo.EXPECT().MarkExpired(ctx, "post-1").Return(nil)

	require.NoError(t, notifySvc.ExpirePostIfDue(ctx, due))
}

func TestNotifyService_ExpirePostIfDue_NotDue(t *testing.T) {
	notifySvc, _, postRepo, _, _ := createTestNotifyService(t, false)

	ctx := context.Background()
	fresh := &entity.Post{
		ID:     "post-1",
		Status: entity.PostStatusAvailable,
		Expiry: time.Now().Add(time.Hour),
	}
	claimed := &entity.Post{
		ID:     "post-2",
		Status: entity.PostStatusClaimed,
		Expiry: time.Now().Add(-time.Hour),
	}

	require.NoError(t, notifySvc.ExpirePostIfDue(ctx, fresh))
	require.NoError(t, notifySvc.ExpirePostIfDue(ctx, claimed))
	postRepo.AssertNotCalled(t, "MarkExpired")
}

func TestNotifyService_StaleTokenClearedWhenConfigured(t *testing.T) {
	notifySvc, userRepo, postRepo, _, pushSvc := createTestNotifyService(t, true)

	ctx := context.Background()
	claim := &entity.Claim{ID: "claim-1", PostID: "post-1", CreatorID: "user-a", ClaimerID: "user-b"}

	postRepo.EXPECT().FindByID(ctx, "post-1").Return(&entity.Post{ID: "post-1", Title: "Veggie curry"}, nil)
	userRepo.EXPECT().FindByID(ctx, "user-a").Return(&entity.User{ID: "user-a", Name: "Alice", FCMToken: "token-a"}, nil)
	userRepo.EXPECT().FindByID(ctx, "user-b").Return(&entity.User{ID: "user-b", Name: "Bob"}, nil)

	staleErr := errors.Wrap(service.ErrStaleToken, "send to token failed")
	pushSvc.EXPECT().
		Send(ctx, "token-a", mock.Anything, mock.Anything, mock.Anything).
		Return("", staleErr)

	userRepo.EXPECT().ClearPushToken(ctx, "user-a").Return(nil)

	require.NoError(t, notifySvc.NotifyFoodClaimed(ctx, claim))
}
