package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"zerowaste/config"
	"zerowaste/internal/delivery/trigger"
	"zerowaste/internal/domain/constants"
	"zerowaste/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPushHandler(t *testing.T) (*PushHandler, *trigger.Router) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cfg := &config.Config{}
	cfg.Env.Env = constants.EnvDevelop
	cfg.PubSub = &config.PubSubConfig{Provider: constants.PubSubProviderLocal}

	router := trigger.NewRouter(logger)
	handler := NewPushHandler(PushHandlerParams{
		Config: cfg,
		Logger: logger,
		Router: router,
	})

	return handler, router
}

func postPush(t *testing.T, handler *PushHandler, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.HandlePush(c))

	return rec
}

func envelope(t *testing.T, event *service.ChangeEvent) string {
	data, err := json.Marshal(event)
	require.NoError(t, err)

	body, err := json.Marshal(map[string]any{
		"message": map[string]any{
			"data":      base64.StdEncoding.EncodeToString(data),
			"messageId": "m-1",
		},
		"subscription": "projects/test/subscriptions/test",
	})
	require.NoError(t, err)

	return string(body)
}

func TestPushHandler_HandlePush_DispatchesEvent(t *testing.T) {
	handler, router := createTestPushHandler(t)

	var handled *service.ChangeEvent
	router.Handle(constants.CollectionPosts, service.MutationCreated, func(ctx context.Context, event *service.ChangeEvent) error {
		handled = event

		return nil
	})

	event := &service.ChangeEvent{
		Collection: constants.CollectionPosts,
		Kind:       service.MutationCreated,
		DocumentID: "post-1",
		After:      json.RawMessage(`{"title":"Bread"}`),
	}

	rec := postPush(t, handler, envelope(t, event))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, handled)
	assert.Equal(t, "post-1", handled.DocumentID)
}

func TestPushHandler_HandlePush_HandlerFailureStillAcked(t *testing.T) {
	handler, router := createTestPushHandler(t)

	router.Handle(constants.CollectionClaims, service.MutationCreated, func(ctx context.Context, event *service.ChangeEvent) error {
		return echo.ErrInternalServerError
	})

	event := &service.ChangeEvent{
		Collection: constants.CollectionClaims,
		Kind:       service.MutationCreated,
		DocumentID: "claim-1",
		After:      json.RawMessage(`{}`),
	}

	rec := postPush(t, handler, envelope(t, event))

	// The broker must not retry notification triggers.
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPushHandler_HandlePush_BadEnvelope(t *testing.T) {
	handler, _ := createTestPushHandler(t)

	rec := postPush(t, handler, `{"message": `)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPushHandler_HandlePush_BadBase64(t *testing.T) {
	handler, _ := createTestPushHandler(t)

	rec := postPush(t, handler, `{"message": {"data": "not-base64!!", "messageId": "m-1"}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPushHandler_HandlePush_UnknownRouteAcked(t *testing.T) {
	handler, _ := createTestPushHandler(t)

	event := &service.ChangeEvent{
		Collection: "unknown",
		Kind:       service.MutationCreated,
		DocumentID: "doc-1",
		After:      json.RawMessage(`{}`),
	}

	rec := postPush(t, handler, envelope(t, event))

	assert.Equal(t, http.StatusOK, rec.Code)
}
