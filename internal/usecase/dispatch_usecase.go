package usecase

import (
	"context"
	"errors"

	"zerowaste/internal/domain/entity"
	"zerowaste/internal/domain/service"
)

// Outcome is the settlement of a single notification job.
type Outcome struct {
	Job       entity.NotificationJob
	MessageID string // Platform-assigned message ID when delivered.
	Err       error  // Non-nil when the send failed.
}

// Delivered reports whether the job's send succeeded.
func (o Outcome) Delivered() bool {
	return o.Err == nil
}

// StaleToken reports whether the failure was a stale or unregistered token.
func (o Outcome) StaleToken() bool {
	return errors.Is(o.Err, service.ErrStaleToken)
}

// DispatchResult aggregates the settlements of a dispatch batch.
// Outcomes is index-aligned with the submitted jobs.
type DispatchResult struct {
	Outcomes  []Outcome
	Delivered int
	Failed    int
}

// StaleTokens collects the tokens that failed with a stale-token error,
// exposed so callers can decide on cleanup.
func (r *DispatchResult) StaleTokens() []string {
	var tokens []string
	for _, o := range r.Outcomes {
		if o.StaleToken() {
			tokens = append(tokens, o.Job.Token)
		}
	}

	return tokens
}

// DispatchUsecase fans out notification jobs to the push service.
type DispatchUsecase interface {
	// Dispatch submits every job concurrently and waits for all of them to
	// settle. Individual failures never abort the batch and no retries are
	// performed; per-job errors are reported in the result, not returned.
	Dispatch(ctx context.Context, jobs []entity.NotificationJob) *DispatchResult
}
