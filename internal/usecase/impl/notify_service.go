package impl

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"zerowaste/config"
	"zerowaste/internal/domain/entity"
	"zerowaste/internal/domain/repository"
	"zerowaste/internal/errors"
	"zerowaste/internal/usecase"
)

const messagePreviewLimit = 50

type notifyService struct {
	logger           *slog.Logger
	userRepo         repository.UserRepository
	postRepo         repository.PostRepository
	chatRepo         repository.ChatRepository
	proximity        usecase.ProximityUsecase
	dispatcher       usecase.DispatchUsecase
	clearStaleTokens bool
}

// NewNotifyService creates the notification orchestrator behind the trigger routes.
func NewNotifyService(
	logger *slog.Logger,
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	chatRepo repository.ChatRepository,
	proximity usecase.ProximityUsecase,
	dispatcher usecase.DispatchUsecase,
	cfg *config.Config,
) usecase.NotifyUsecase {
	return &notifyService{
		logger:           logger,
		userRepo:         userRepo,
		postRepo:         postRepo,
		chatRepo:         chatRepo,
		proximity:        proximity,
		dispatcher:       dispatcher,
		clearStaleTokens: cfg.Notify != nil && cfg.Notify.ClearStaleTokens,
	}
}

// NotifyNearbyFood fans a new post out to every eligible user within the
// configured radius.
func (s *notifyService) NotifyNearbyFood(ctx context.Context, post *entity.Post) error {
	author, recipients, err := s.proximity.NearbyRecipients(ctx, post)
	if err != nil {
		return errors.Wrap(err, "scan nearby users")
	}

	if len(recipients) == 0 {
		s.logger.Info("no nearby users for post", slog.String("post_id", post.ID))

		return nil
	}

	jobs := make([]entity.NotificationJob, 0, len(recipients))
	tokenOwners := make(map[string]string, len(recipients))
	for _, rec := range recipients {
		distance := rec.DisplayDistance()
		jobs = append(jobs, entity.NotificationJob{
			Token: rec.User.FCMToken,
			Title: "New food nearby! 📍",
			Body:  fmt.Sprintf("%s shared \"%s\" %skm away", author.Name, post.Title, distance),
			Data: map[string]string{
				"type":      "new_food_nearby",
				"postId":    post.ID,
				"distance":  distance,
				"posterId":  post.PostedBy,
				"postTitle": post.Title,
			},
		})
		tokenOwners[rec.User.FCMToken] = rec.User.ID
	}

	result := s.dispatcher.Dispatch(ctx, jobs)
	s.handleStaleTokens(ctx, result, tokenOwners)

	s.logger.Info("nearby food notifications settled",
		slog.String("post_id", post.ID),
		slog.Int("delivered", result.Delivered),
		slog.Int("failed", result.Failed),
	)

	return nil
}

// NotifyFoodClaimed tells the post author that someone wants their food.
func (s *notifyService) NotifyFoodClaimed(ctx context.Context, claim *entity.Claim) error {
	post, err := s.postRepo.FindByID(ctx, claim.PostID)
	if err != nil {
		return errors.Wrapf(err, "lookup post %s", claim.PostID)
	}

	poster, err := s.userRepo.FindByID(ctx, claim.CreatorID)
	if err != nil {
		return errors.Wrapf(err, "lookup poster %s", claim.CreatorID)
	}

	claimant, err := s.userRepo.FindByID(ctx, claim.ClaimerID)
	if err != nil {
		return errors.Wrapf(err, "lookup claimant %s", claim.ClaimerID)
	}

	if !poster.Notifiable() {
		s.logger.Info("poster has no push token, skipping claim notification",
			slog.String("claim_id", claim.ID),
		)

		return nil
	}

	job := entity.NotificationJob{
		Token: poster.FCMToken,
		Title: "Someone claimed your food! 🍽️",
		Body:  fmt.Sprintf("%s wants to claim \"%s\"", claimant.Name, post.Title),
		Data: map[string]string{
			"type":         "food_claimed",
			"postId":       claim.PostID,
			"claimId":      claim.ID,
			"claimantId":   claim.ClaimerID,
			"claimantName": claimant.Name,
		},
	}

	result := s.dispatcher.Dispatch(ctx, []entity.NotificationJob{job})
	s.handleStaleTokens(ctx, result, map[string]string{poster.FCMToken: poster.ID})

	return nil
}

// NotifyClaimUpdate tells the claimant about an accept/reject decision.
func (s *notifyService) NotifyClaimUpdate(ctx context.Context, before, after *entity.Claim) error {
	if before.Status == after.Status {
		return nil
	}
	if after.Status != entity.ClaimStatusAccepted && after.Status != entity.ClaimStatusRejected {
		return nil
	}

	post, err := s.postRepo.FindByID(ctx, after.PostID)
	if err != nil {
		return errors.Wrapf(err, "lookup post %s", after.PostID)
	}

	claimant, err := s.userRepo.FindByID(ctx, after.ClaimerID)
	if err != nil {
		return errors.Wrapf(err, "lookup claimant %s", after.ClaimerID)
	}

	// A missing poster only degrades the message, it doesn't block it.
	posterName := "Food poster"
	if poster, posterErr := s.userRepo.FindByID(ctx, after.CreatorID); posterErr == nil {
		posterName = poster.Name
	}

	if !claimant.Notifiable() {
		s.logger.Info("claimant has no push token, skipping claim update",
			slog.String("claim_id", after.ID),
		)

		return nil
	}

	accepted := after.Status == entity.ClaimStatusAccepted
	title := "Claim Accepted! 🎉"
	body := fmt.Sprintf("%s accepted your claim for \"%s\"!", posterName, post.Title)
	notificationType := "claim_accepted"
	if !accepted {
		title = "Claim Declined 😔"
		body = fmt.Sprintf("%s declined your claim for \"%s\".", posterName, post.Title)
		notificationType = "claim_rejected"
	}

	job := entity.NotificationJob{
		Token: claimant.FCMToken,
		Title: title,
		Body:  body,
		Data: map[string]string{
			"type":      notificationType,
			"postId":    after.PostID,
			"claimId":   after.ID,
			"status":    string(after.Status),
			"postTitle": post.Title,
		},
	}

	result := s.dispatcher.Dispatch(ctx, []entity.NotificationJob{job})
	s.handleStaleTokens(ctx, result, map[string]string{claimant.FCMToken: claimant.ID})

	return nil
}

// NotifyNewMessage tells the other chat participant about a new message.
func (s *notifyService) NotifyNewMessage(ctx context.Context, msg *entity.Message) error {
	chat, err := s.chatRepo.FindByID(ctx, msg.ChatID)
	if err != nil {
		return errors.Wrapf(err, "lookup chat %s", msg.ChatID)
	}

	receiverID := chat.OtherParticipant(msg.SenderID)
	if receiverID == "" {
		return errors.Errorf("could not determine receiver for chat %s", msg.ChatID)
	}

	sender, err := s.userRepo.FindByID(ctx, msg.SenderID)
	if err != nil {
		return errors.Wrapf(err, "lookup sender %s", msg.SenderID)
	}

	receiver, err := s.userRepo.FindByID(ctx, receiverID)
	if err != nil {
		return errors.Wrapf(err, "lookup receiver %s", receiverID)
	}

	if !receiver.Notifiable() {
		s.logger.Info("receiver has no push token, skipping message notification",
			slog.String("chat_id", msg.ChatID),
		)

		return nil
	}

	job := entity.NotificationJob{
		Token: receiver.FCMToken,
		Title: fmt.Sprintf("New message from %s 💬", sender.Name),
		Body:  previewContent(msg.Content),
		Data: map[string]string{
			"type":       "new_message",
			"chatId":     msg.ChatID,
			"senderId":   msg.SenderID,
			"senderName": sender.Name,
			"postId":     chat.PostID,
			"postTitle":  chat.PostTitle,
			"messageId":  msg.ID,
		},
	}

	result := s.dispatcher.Dispatch(ctx, []entity.NotificationJob{job})
	s.handleStaleTokens(ctx, result, map[string]string{receiver.FCMToken: receiver.ID})

	return nil
}

// NotifyNewRating tells a user they received a rating.
func (s *notifyService) NotifyNewRating(ctx context.Context, rating *entity.Rating) error {
	fromUser, err := s.userRepo.FindByID(ctx, rating.FromUserID)
	if err != nil {
		return errors.Wrapf(err, "lookup rating giver %s", rating.FromUserID)
	}

	toUser, err := s.userRepo.FindByID(ctx, rating.ToUserID)
	if err != nil {
		return errors.Wrapf(err, "lookup rating receiver %s", rating.ToUserID)
	}

	// A missing post only degrades the message context.
	postTitle := "a food post"
	if post, postErr := s.postRepo.FindByID(ctx, rating.PostID); postErr == nil {
		postTitle = post.Title
	}

	if !toUser.Notifiable() {
		s.logger.Info("rating receiver has no push token, skipping",
			slog.String("rating_id", rating.ID),
		)

		return nil
	}

	stars := strings.Repeat("⭐", int(math.Floor(rating.Rating)))
	ratingValue := strconv.FormatFloat(rating.Rating, 'f', -1, 64)
	body := fmt.Sprintf("%s rated you %s/5 %s for \"%s\"", fromUser.Name, ratingValue, stars, postTitle)
	if rating.Review != "" {
		body = fmt.Sprintf("%s: \"%s\"", body, rating.Review)
	}

	job := entity.NotificationJob{
		Token: toUser.FCMToken,
		Title: "You received a new rating! ⭐",
		Body:  body,
		Data: map[string]string{
			"type":         "new_rating",
			"ratingId":     rating.ID,
			"fromUserId":   rating.FromUserID,
			"fromUserName": fromUser.Name,
			"rating":       ratingValue,
			"postId":       rating.PostID,
			"postTitle":    postTitle,
		},
	}

	result := s.dispatcher.Dispatch(ctx, []entity.NotificationJob{job})
	s.handleStaleTokens(ctx, result, map[string]string{toUser.FCMToken: toUser.ID})

	return nil
}

// SendTestNotification sends a canned notification straight to a token.
func (s *notifyService) SendTestNotification(ctx context.Context, token string) error {
	if token == "" {
		s.logger.Warn("test notification without a token, skipping")

		return nil
	}

	job := entity.NotificationJob{
		Token: token,
		Title: "Test Notification 🧪",
		Body:  "This is a test notification from the ZeroWaste notifier!",
		Data: map[string]string{
			"type":      "test",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	}

	s.dispatcher.Dispatch(ctx, []entity.NotificationJob{job})

	return nil
}

// ExpirePostIfDue marks an available post as expired once its expiry passes.
func (s *notifyService) ExpirePostIfDue(ctx context.Context, post *entity.Post) error {
	if post.Status != entity.PostStatusAvailable || !post.Expired(time.Now()) {
		return nil
	}

	if err := s.postRepo.MarkExpired(ctx, post.ID); err != nil {
		return errors.Wrapf(err, "expire post %s", post.ID)
	}

	s.logger.Info("post expired", slog.String("post_id", post.ID))

	return nil
}

// handleStaleTokens logs stale tokens from a dispatch batch and, when
// configured, clears them from the owning user records.
func (s *notifyService) handleStaleTokens(ctx context.Context, result *usecase.DispatchResult, tokenOwners map[string]string) {
	for _, token := range result.StaleTokens() {
		userID := tokenOwners[token]
		s.logger.Warn("stale push token detected",
			slog.String("user_id", userID),
			slog.String("token_prefix", tokenPrefix(token)),
		)

		if !s.clearStaleTokens || userID == "" {
			continue
		}
		if err := s.userRepo.ClearPushToken(ctx, userID); err != nil {
			s.logger.Warn("failed to clear stale push token",
				slog.String("user_id", userID),
				slog.Any("error", err),
			)
		}
	}
}

// previewContent truncates a chat message for the notification body.
func previewContent(content string) string {
	runes := []rune(content)
	if len(runes) <= messagePreviewLimit {
		return content
	}

	return string(runes[:messagePreviewLimit]) + "..."
}
