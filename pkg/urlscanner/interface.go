// Package urlscanner defines the reputation provider consulted by the remote
// risk evaluator: submit a URL, then poll for its report.
package urlscanner

import (
	"context"
	"time"
)

// RateLimitStatus describes the current API rate‑limit status returned by the
// underlying provider.
type RateLimitStatus struct {
	Limit     int       // Limit is the total number of allowed requests in the current window.
	Remaining int       // Remaining indicates how many requests are left in the current window.
	ResetAt   time.Time // ResetAt is when the rate‑limit window resets. Zero when unknown.
}

// SubmitRes represents the response of a successful URL submission.
type SubmitRes struct {
	ID string // ID is the provider job identifier.
}

// Report is the provider-neutral subset of a finished scan.
type Report struct {
	URL     string
	Domain  string
	Country string
	// Malicious is the provider's overall verdict.
	Malicious bool
	// Score is the provider's overall score, higher is worse.
	Score int
	// Categories are provider tags such as "phishing" or "malware".
	Categories []string
	// Secure reports whether the final page was served over TLS.
	Secure bool
}

// HasCategory reports whether the report is tagged with category.
func (r Report) HasCategory(category string) bool {
	for _, c := range r.Categories {
		if c == category {
			return true
		}
	}

	return false
}

// Client submits URLs and fetches their reports. Result returns an
// serrors.ErrNotFound error while the report is not ready.
//
//go:generate mockgen -package mockurlscanner -source=interface.go -destination=mock/mockurlscanner.go *
type Client interface {
	SubmitURL(ctx context.Context, URL string) (SubmitRes, RateLimitStatus, error)
	Result(ctx context.Context, scanID string) (*Report, error)
}
