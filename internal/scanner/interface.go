package scanner

import (
	"context"
	"pen/pkg/domain"
)

// Scanner runs scan actions for devices. deviceID may be empty, in which
// case the verdict is returned but neither guarded nor persisted.
//
//go:generate mockgen -package mockscanner -source=interface.go -destination=mock/mockscanner.go *
type Scanner interface {
	Scan(ctx context.Context, deviceID string, url string) (*domain.ScanVerdict, error)
	History(ctx context.Context, deviceID string) ([]domain.ScanVerdict, error)
}
