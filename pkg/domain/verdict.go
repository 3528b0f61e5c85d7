package domain

import "time"

// VerdictStatus is the safety classification of a scanned URL.
type VerdictStatus string

const (
	// VerdictSafe means no risk indicator was found.
	VerdictSafe VerdictStatus = "safe"
	// VerdictWarning means the link deserves caution (e.g. no TLS).
	VerdictWarning VerdictStatus = "warning"
	// VerdictDanger means the link matched a known-bad indicator.
	VerdictDanger VerdictStatus = "danger"
)

// Reputation is a coarse reputation label shown next to a verdict.
type Reputation string

const (
	ReputationGood    Reputation = "good"
	ReputationUnknown Reputation = "unknown"
	ReputationBad     Reputation = "bad"
)

// ScanVerdict is the outcome of evaluating one submitted URL.
type ScanVerdict struct {
	// URL is the trimmed input as submitted.
	URL string `json:"url"`
	// Score ranges from 0 (dangerous) to 100 (safe).
	Score int `json:"score"`
	// Status is the safety classification.
	Status VerdictStatus `json:"status"`
	// SSL reports whether the input starts with the secure scheme prefix.
	SSL        bool       `json:"ssl"`
	Reputation Reputation `json:"reputation"`
	Phishing   bool       `json:"phishing"`
	Malware    bool       `json:"malware"`
	// Recommendations is an ordered list of advice for the user.
	Recommendations []string `json:"recommendations"`
	// ScannedAt is stamped by the caller, never by the evaluator.
	ScannedAt time.Time `json:"scannedAt"`
}
