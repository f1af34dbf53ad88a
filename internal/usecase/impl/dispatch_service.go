package impl

import (
	"context"
	"log/slog"
	"sync"

	"zerowaste/internal/domain/entity"
	"zerowaste/internal/domain/service"
	"zerowaste/internal/usecase"
)

type dispatchService struct {
	logger  *slog.Logger
	pushSvc service.PushService
}

// NewDispatchService creates a new notification dispatcher instance.
func NewDispatchService(logger *slog.Logger, pushSvc service.PushService) usecase.DispatchUsecase {
	return &dispatchService{
		logger:  logger,
		pushSvc: pushSvc,
	}
}

// Dispatch fans every job out to the push service concurrently and waits for
// all sends to settle. A failed send is recorded in its outcome slot and
// never aborts the siblings; the batch itself cannot fail.
func (s *dispatchService) Dispatch(ctx context.Context, jobs []entity.NotificationJob) *usecase.DispatchResult {
	result := &usecase.DispatchResult{
		Outcomes: make([]usecase.Outcome, len(jobs)),
	}
	if len(jobs) == 0 {
		return result
	}

	var wg sync.WaitGroup
	for idx, job := range jobs {
		wg.Add(1)
		go func(idx int, job entity.NotificationJob) {
			defer wg.Done()

			messageID, err := s.pushSvc.Send(ctx, job.Token, job.Title, job.Body, job.Data)
			result.Outcomes[idx] = usecase.Outcome{
				Job:       job,
				MessageID: messageID,
				Err:       err,
			}
		}(idx, job)
	}
	wg.Wait()

	for _, outcome := range result.Outcomes {
		if outcome.Delivered() {
			result.Delivered++

			continue
		}

		result.Failed++
		s.logger.Warn("notification send failed",
			slog.String("token_prefix", tokenPrefix(outcome.Job.Token)),
			slog.Bool("stale_token", outcome.StaleToken()),
			slog.Any("error", outcome.Err),
		)
	}

	s.logger.Info("dispatch batch settled",
		slog.Int("jobs", len(jobs)),
		slog.Int("delivered", result.Delivered),
		slog.Int("failed", result.Failed),
	)

	return result
}

func tokenPrefix(token string) string {
	const n = 10
	if len(token) <= n {
		return token
	}

	return token[:n]
}
