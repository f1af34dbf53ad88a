package main

import (
	"context"
	"log/slog"
	"os"

	"zerowaste/config"
	"zerowaste/internal/delivery"
	"zerowaste/internal/delivery/trigger"
	"zerowaste/internal/delivery/worker"
	"zerowaste/internal/delivery/worker/handler"
	logs "zerowaste/internal/infra/log"
	"zerowaste/internal/infra/notification"
	"zerowaste/internal/infra/persistence/firestore"
	"zerowaste/internal/usecase"
	"zerowaste/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		firestore.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			firestore.NewUserRepository,
			firestore.NewPostRepository,
			firestore.NewChatRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			notification.NewFirebaseService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewProximityService,
			impl.NewDispatchService,
			impl.NewNotifyService,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			newTriggerRouter,
			handler.NewPushHandler,
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// newTriggerRouter builds the routing table with every trigger route bound.
func newTriggerRouter(logger *slog.Logger, notify usecase.NotifyUsecase) *trigger.Router {
	router := trigger.NewRouter(logger)
	trigger.RegisterRoutes(router, notify)

	return router
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
