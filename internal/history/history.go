// Package history keeps the most recent scan verdicts of a device.
package history

import (
	"context"
	"pen/pkg/domain"
)

// Capacity is the number of verdicts kept per device.
const Capacity = 10

// Prepend returns a new slice with verdict first followed by the newest
// entries, never longer than Capacity. entries is not modified.
func Prepend(entries []domain.ScanVerdict, verdict domain.ScanVerdict) []domain.ScanVerdict {
	keep := min(len(entries), Capacity-1)

	out := make([]domain.ScanVerdict, 0, keep+1)
	out = append(out, verdict)

	return append(out, entries[:keep]...)
}

// Store persists per-device histories. Implementations keep at most
// Capacity entries, newest first.
//
//go:generate mockgen -package mockhistory -source=history.go -destination=mock/mockhistory.go *
type Store interface {
	Append(ctx context.Context, deviceID string, verdict domain.ScanVerdict) error
	List(ctx context.Context, deviceID string) ([]domain.ScanVerdict, error)
	Clear(ctx context.Context, deviceID string) error
}
