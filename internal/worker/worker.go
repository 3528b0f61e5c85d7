// Package worker runs the river background jobs of the service.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"pen/internal/config"
	"pen/internal/subscription"
	"pen/pkg/logger"
	"pen/pkg/metrics"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"go.uber.org/zap/exp/zapslog"
)

// Options configure the job runner.
type Options struct {
	MaxWorkers int
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{MaxWorkers: cfg.Worker.MaxWorkers}
}

// Deps are the services jobs call into.
type Deps struct {
	Subscriptions subscription.Service
	Metrics       *metrics.Recorder
}

// Start registers every worker and starts processing the default queue.
// The returned client must be stopped by the caller.
func Start(ctx context.Context, dbPool *pgxpool.Pool, deps Deps, options Options) (*river.Client[pgx.Tx], error) {
	maxWorkers := options.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 10
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewActivateSubscriptionWorker(deps.Subscriptions, deps.Metrics))

	riverClient, err := river.NewClient(riverpgxv5.New(dbPool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: maxWorkers},
		},
		Workers: workers,
		Logger:  slog.New(zapslog.NewHandler(logger.Get(ctx).Core())),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create river queue client: %w", err)
	}

	if err := riverClient.Start(ctx); err != nil {
		return nil, fmt.Errorf("could not start river queue client: %w", err)
	}

	return riverClient, nil
}
