package worker

import (
	"context"
	"errors"
	"fmt"
	"pen/internal/subscription"
	"pen/pkg/logger"
	"pen/pkg/metrics"
	"pen/pkg/serrors"

	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// ActivateSubscriptionWorker completes a simulated payment by turning the
// premium flag of the job's user on. Activations of deleted users are
// cancelled; other failures are retried by river.
type ActivateSubscriptionWorker struct {
	river.WorkerDefaults[subscription.ActivateArgs]

	subscriptions subscription.Service
	metrics       *metrics.Recorder
}

// NewActivateSubscriptionWorker creates the worker. recorder may be nil.
func NewActivateSubscriptionWorker(subscriptions subscription.Service,
	recorder *metrics.Recorder) *ActivateSubscriptionWorker {
	return &ActivateSubscriptionWorker{
		subscriptions: subscriptions,
		metrics:       recorder,
	}
}

func (w *ActivateSubscriptionWorker) Work(ctx context.Context, job *river.Job[subscription.ActivateArgs]) error {
	ctx = logger.WithFields(ctx,
		zap.Int64("jobID", job.ID),
		zap.Stringer("userId", job.Args.Owner()),
		zap.Int("attempt", job.Attempt))

	_, err := w.subscriptions.Activate(ctx, job.Args.Owner())
	w.metrics.Job(ctx, job.Kind, err != nil)
	if err != nil {
		if errors.Is(err, serrors.ErrNotFound) {
			logger.Warn(ctx, "cancelling activation of unknown user", zap.Error(err))

			return river.JobCancel(err) //nolint: wrapcheck
		}

		logger.Error(ctx, "could not activate subscription", zap.Error(err))

		return fmt.Errorf("could not activate subscription: %w", err)
	}

	logger.Info(ctx, "subscription activated")

	return nil
}
