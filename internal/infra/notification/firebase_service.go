// Package notification implements push delivery through Firebase Cloud Messaging.
package notification

import (
	"context"

	"zerowaste/config"
	"zerowaste/internal/domain/service"
	"zerowaste/internal/errors"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// androidChannelID is the notification channel created by the mobile client.
const androidChannelID = "zerowaste_channel"

type firebaseService struct {
	client *messaging.Client
}

// NewFirebaseService creates a new Firebase push service instance.
func NewFirebaseService(ctx context.Context, cfg *config.Config) (service.PushService, error) {
	if cfg.Firebase == nil {
		return nil, errors.New("firebase configuration is required")
	}

	var opts []option.ClientOption
	if cfg.Firebase.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firebase.ProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get messaging client")
	}

	return &firebaseService{
		client: client,
	}, nil
}

// Send delivers a push notification to a single device token. Stale or
// unregistered tokens are reported as service.ErrStaleToken so callers can
// schedule cleanup.
func (s *firebaseService) Send(ctx context.Context, token, title, body string, data map[string]string) (string, error) {
	badge := 1
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: androidChannelID,
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Badge: &badge,
					Sound: "default",
				},
			},
		},
	}

	messageID, err := s.client.Send(ctx, message)
	if err != nil {
		if messaging.IsUnregistered(err) || messaging.IsInvalidArgument(err) {
			return "", errors.Wrapf(service.ErrStaleToken, "send to token failed: %v", err)
		}

		return "", errors.Wrap(err, "failed to send notification")
	}

	return messageID, nil
}
