// Package scanner orchestrates a scan action: input validation, the per
// device in-flight guard, the cosmetic analysis delay, evaluation and the
// history append.
package scanner

import (
	"context"
	"fmt"
	"pen/internal/config"
	"pen/internal/history"
	"pen/internal/risk"
	"pen/pkg/domain"
	"pen/pkg/logger"
	"pen/pkg/metrics"
	"pen/pkg/serrors"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "pen/internal/scanner"

// Options configure the scan choreography.
type Options struct {
	// Delay is waited before evaluating, mimicking the analysis progress bar.
	Delay time.Duration
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Delay: cfg.Scanner.Delay,
	}
}

type scanner struct {
	options   Options
	evaluator risk.Evaluator
	history   history.Store
	metrics   *metrics.Recorder
	tracer    trace.Tracer
	now       func() time.Time

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func (s *scanner) Scan(ctx context.Context, deviceID string, url string) (*domain.ScanVerdict, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "url is required")
	}

	if deviceID != "" {
		if !s.acquire(deviceID) {
			return nil, serrors.With(serrors.ErrConflict, "a scan is already running for this device")
		}
		defer s.release(deviceID)
	}

	ctx, span := s.tracer.Start(ctx, "scanner.Scan", trace.WithAttributes(
		attribute.String("scan.evaluator", s.evaluator.Name()),
		attribute.Bool("scan.device", deviceID != ""),
	))
	defer span.End()

	if err := s.wait(ctx); err != nil {
		span.SetStatus(codes.Error, "cancelled")

		return nil, err
	}

	start := s.now()
	verdict, err := s.evaluator.Evaluate(ctx, url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "evaluation failed")

		return nil, fmt.Errorf("could not evaluate url: %w", err)
	}
	s.metrics.ScanDuration(ctx, s.evaluator.Name(), s.now().Sub(start))

	// a caller that went away must not get a verdict persisted on its behalf
	if err := ctx.Err(); err != nil {
		return nil, serrors.Wrap(serrors.ErrTimeout, err, "scan cancelled")
	}

	verdict.ScannedAt = s.now().UTC()
	span.SetAttributes(attribute.String("scan.status", string(verdict.Status)))
	s.metrics.Verdict(ctx, string(verdict.Status))

	if deviceID != "" {
		if err := s.history.Append(ctx, deviceID, verdict); err != nil {
			logger.Warn(ctx, "could not append scan to history",
				zap.String("deviceId", deviceID),
				zap.Error(err))
		}
	}

	return &verdict, nil
}

func (s *scanner) History(ctx context.Context, deviceID string) ([]domain.ScanVerdict, error) {
	if deviceID == "" {
		return []domain.ScanVerdict{}, nil
	}

	entries, err := s.history.List(ctx, deviceID)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrUnavailable, err, "could not load scan history")
	}

	return entries, nil
}

func (s *scanner) wait(ctx context.Context) error {
	if s.options.Delay <= 0 {
		return nil
	}

	timer := time.NewTimer(s.options.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return serrors.Wrap(serrors.ErrTimeout, ctx.Err(), "scan cancelled")
	case <-timer.C:
		return nil
	}
}

func (s *scanner) acquire(deviceID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.inFlight[deviceID]; ok {
		return false
	}
	s.inFlight[deviceID] = struct{}{}

	return true
}

func (s *scanner) release(deviceID string) {
	s.mu.Lock()
	delete(s.inFlight, deviceID)
	s.mu.Unlock()
}

// New creates a Scanner. recorder may be nil.
func New(options Options, evaluator risk.Evaluator, store history.Store, recorder *metrics.Recorder) Scanner {
	return &scanner{
		options:   options,
		evaluator: evaluator,
		history:   store,
		metrics:   recorder,
		tracer:    otel.Tracer(tracerName),
		now:       time.Now,
		inFlight:  make(map[string]struct{}),
	}
}
