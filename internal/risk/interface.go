package risk

import (
	"context"
	"pen/pkg/domain"
)

// Evaluator produces a verdict for a trimmed, non-empty URL. Implementations
// never stamp ScannedAt.
//
//go:generate mockgen -package mockrisk -source=interface.go -destination=mock/mockrisk.go *
type Evaluator interface {
	Evaluate(ctx context.Context, url string) (domain.ScanVerdict, error)
	// Name identifies the evaluator in logs and metrics.
	Name() string
}
