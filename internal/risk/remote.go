package risk

import (
	"context"
	"errors"
	"fmt"
	"pen/pkg/domain"
	"pen/pkg/logger"
	"pen/pkg/serrors"
	"pen/pkg/urlscanner"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Remote asks a reputation provider for a report and maps it onto the same
// three statuses and score bands as the heuristic.
type Remote struct {
	client       urlscanner.Client
	limiter      *limiter
	pollInterval time.Duration
	timeout      time.Duration
}

// NewRemote creates a Remote evaluator. Non-positive durations fall back to
// 2s polling and a 20s overall timeout.
func NewRemote(client urlscanner.Client, pollInterval, timeout time.Duration) *Remote {
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	return &Remote{client: client, limiter: newLimiter(), pollInterval: pollInterval, timeout: timeout}
}

func (r *Remote) Name() string { return KindRemote }

// Evaluate submits url and polls until the report is ready, the timeout
// elapses or ctx is done. Submissions share the provider's rate limit
// budget. Provider failures are reported as ErrUnavailable.
func (r *Remote) Evaluate(ctx context.Context, url string) (domain.ScanVerdict, error) {
	trimmed := strings.TrimSpace(url)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.limiter.reserve(ctx); err != nil {
		return domain.ScanVerdict{}, serrors.Wrap(serrors.ErrRateLimited, err, "reputation service is busy")
	}
	sub, rl, err := r.client.SubmitURL(ctx, trimmed)
	r.limiter.release(rl)
	if err != nil {
		if errors.Is(err, serrors.ErrBadRequest) || errors.Is(err, serrors.ErrRateLimited) {
			return domain.ScanVerdict{}, err
		}

		return domain.ScanVerdict{}, serrors.Wrap(serrors.ErrUnavailable, err, "reputation service unavailable")
	}
	logger.Debug(ctx, "url submitted to reputation service",
		zap.String("scanId", sub.ID),
		zap.Int("rateLimitRemaining", rl.Remaining))

	report, err := r.poll(ctx, sub.ID)
	if err != nil {
		return domain.ScanVerdict{}, err
	}

	return fromReport(trimmed, report), nil
}

func (r *Remote) poll(ctx context.Context, scanID string) (*urlscanner.Report, error) {
	timer := time.NewTimer(r.pollInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, serrors.Wrap(serrors.ErrTimeout, ctx.Err(), "reputation report not ready")
		case <-timer.C:
		}

		report, err := r.client.Result(ctx, scanID)
		switch {
		case err == nil:
			return report, nil
		case errors.Is(err, serrors.ErrNotFound):
			timer.Reset(r.pollInterval)
		default:
			return nil, serrors.Wrap(serrors.ErrUnavailable, err, "could not fetch reputation report")
		}
	}
}

func fromReport(trimmed string, report *urlscanner.Report) domain.ScanVerdict {
	phishing := report.HasCategory("phishing")
	malware := report.HasCategory("malware")

	var v domain.ScanVerdict
	switch {
	case report.Malicious || phishing || malware:
		v = newVerdict(trimmed, domain.VerdictDanger, ScoreDanger)
	case report.Score > 0 || !report.Secure || !strings.HasPrefix(trimmed, securePrefix):
		v = newVerdict(trimmed, domain.VerdictWarning, ScoreWarning)
	default:
		v = newVerdict(trimmed, domain.VerdictSafe, ScoreSafe)
	}
	v.Phishing = phishing
	v.Malware = malware

	return v
}

var _ Evaluator = (*Remote)(nil)

// errNoClient is returned when the remote evaluator is selected without a
// reputation client.
var errNoClient = fmt.Errorf("remote evaluator requires a reputation client: %w", serrors.ErrInternal)
