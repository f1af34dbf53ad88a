// Package trigger routes document change events to their notification
// handlers. The routing table replaces the path-pattern callbacks the push
// platform would otherwise manage, so routes stay explicit and testable.
package trigger

import (
	"context"
	"log/slog"

	deliverycontext "zerowaste/internal/delivery/context"
	"zerowaste/internal/domain/service"
)

// Route identifies a trigger: which collection changed and how.
type Route struct {
	Collection string
	Kind       service.MutationKind
}

// HandlerFunc reacts to a single change event. Returned errors are logged
// and swallowed by the router: the write already happened and the trigger
// mechanism has no caller to propagate to.
type HandlerFunc func(ctx context.Context, event *service.ChangeEvent) error

// Router maps routes to handlers.
type Router struct {
	logger *slog.Logger
	routes map[Route]HandlerFunc
}

// NewRouter creates an empty routing table.
func NewRouter(logger *slog.Logger) *Router {
	return &Router{
		logger: logger,
		routes: make(map[Route]HandlerFunc),
	}
}

// Handle registers a handler for a (collection, mutation-kind) pair.
// Registering the same route twice replaces the previous handler.
func (r *Router) Handle(collection string, kind service.MutationKind, fn HandlerFunc) {
	r.routes[Route{Collection: collection, Kind: kind}] = fn
}

// Routes returns the number of registered routes.
func (r *Router) Routes() int {
	return len(r.routes)
}

// Dispatch invokes the handler registered for the event's route.
// Every failure is absorbed here: an unknown route is skipped and a handler
// error is logged through the request-scoped logger. Re-delivered events are
// processed again; deduplication is left to consumers that need it.
func (r *Router) Dispatch(ctx context.Context, event *service.ChangeEvent) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, r.logger)

	fn, ok := r.routes[Route{Collection: event.Collection, Kind: event.Kind}]
	if !ok {
		logger.Debug("no trigger route for event",
			slog.String("collection", event.Collection),
			slog.String("kind", string(event.Kind)),
		)

		return
	}

	if err := fn(ctx, event); err != nil {
		logger.Error("trigger handler failed",
			slog.String("collection", event.Collection),
			slog.String("kind", string(event.Kind)),
			slog.String("document_id", event.DocumentID),
			slog.Any("error", err),
		)

		return
	}

	logger.Info("trigger handled",
		slog.String("collection", event.Collection),
		slog.String("kind", string(event.Kind)),
		slog.String("document_id", event.DocumentID),
	)
}
