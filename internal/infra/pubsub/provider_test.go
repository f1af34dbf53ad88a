package pubsub

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"zerowaste/config"
	"zerowaste/internal/domain/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func createPublisherParams(t *testing.T, cfg *config.Config) PublisherParams {
	return PublisherParams{
		Lc:     fxtest.NewLifecycle(t),
		Ctx:    context.Background(),
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}
}

func TestNewEventPublisher_NoConfigIsNoop(t *testing.T) {
	cfg := &config.Config{}

	publisher, err := NewEventPublisher(createPublisherParams(t, cfg))

	require.NoError(t, err)
	assert.IsType(t, &noopPublisher{}, publisher)
}

func TestNewEventPublisher_LocalProvider(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.Env = constants.EnvDevelop
	cfg.PubSub = &config.PubSubConfig{
		Provider:      constants.PubSubProviderLocal,
		LocalEndpoint: "http://localhost:8081/push",
	}

	publisher, err := NewEventPublisher(createPublisherParams(t, cfg))

	require.NoError(t, err)
	assert.IsType(t, &localHTTPPublisher{}, publisher)
}

func TestNewEventPublisher_LocalProviderRejectedInProduction(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.Env = constants.EnvProduction
	cfg.PubSub = &config.PubSubConfig{
		Provider:      constants.PubSubProviderLocal,
		LocalEndpoint: "http://localhost:8081/push",
	}

	_, err := NewEventPublisher(createPublisherParams(t, cfg))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowed in production")
}

func TestNewEventPublisher_LocalProviderRequiresEndpoint(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.Env = constants.EnvDevelop
	cfg.PubSub = &config.PubSubConfig{Provider: constants.PubSubProviderLocal}

	_, err := NewEventPublisher(createPublisherParams(t, cfg))

	require.Error(t, err)
}

func TestNewEventPublisher_UnknownProvider(t *testing.T) {
	cfg := &config.Config{}
	cfg.PubSub = &config.PubSubConfig{Provider: "kafka"}

	_, err := NewEventPublisher(createPublisherParams(t, cfg))

	require.Error(t, err)
}
