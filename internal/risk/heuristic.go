// Package risk classifies submitted URLs into safe, warning or danger
// verdicts.
package risk

import (
	"context"
	"pen/pkg/domain"
	"slices"
	"strings"
)

// Scores attached to each status by the heuristic.
const (
	ScoreDanger  = 15
	ScoreWarning = 55
	ScoreSafe    = 92
)

const (
	// securePrefix is matched literally and case-sensitively against the
	// trimmed input, so "HTTPS://" counts as insecure.
	securePrefix = "https"
	warningToken = "warning"
)

var dangerTokens = []string{"suspicious", "malware", "hack"} //nolint: gochecknoglobals

var recommendations = map[domain.VerdictStatus][]string{ //nolint: gochecknoglobals
	domain.VerdictDanger: {
		"N'accédez pas à ce site",
		"Signalez ce lien",
		"Vérifiez l'URL officielle",
	},
	domain.VerdictWarning: {
		"Vérifiez le certificat SSL",
		"Soyez prudent avec vos données",
		"Utilisez un VPN",
	},
	domain.VerdictSafe: {
		"Ce site semble fiable",
		"Restez vigilant",
		"Mettez à jour votre navigateur",
	},
}

var reputations = map[domain.VerdictStatus]domain.Reputation{ //nolint: gochecknoglobals
	domain.VerdictDanger:  domain.ReputationBad,
	domain.VerdictWarning: domain.ReputationUnknown,
	domain.VerdictSafe:    domain.ReputationGood,
}

// Recommendations returns a fresh copy of the advice shown for status.
func Recommendations(status domain.VerdictStatus) []string {
	return slices.Clone(recommendations[status])
}

// Heuristic is the deterministic keyword classifier. It performs no network
// access and holds no state.
type Heuristic struct{}

// Classify applies the rules in order: danger tokens, then the warning token
// or a missing secure prefix, then safe. Token matching is case-insensitive.
func (Heuristic) Classify(url string) domain.ScanVerdict {
	trimmed := strings.TrimSpace(url)
	lowered := strings.ToLower(trimmed)

	var (
		status domain.VerdictStatus
		score  int
	)
	switch {
	case slices.ContainsFunc(dangerTokens, func(tok string) bool { return strings.Contains(lowered, tok) }):
		status, score = domain.VerdictDanger, ScoreDanger
	case strings.Contains(lowered, warningToken) || !strings.HasPrefix(trimmed, securePrefix):
		status, score = domain.VerdictWarning, ScoreWarning
	default:
		status, score = domain.VerdictSafe, ScoreSafe
	}

	return newVerdict(trimmed, status, score)
}

func (h Heuristic) Evaluate(_ context.Context, url string) (domain.ScanVerdict, error) {
	return h.Classify(url), nil
}

func (Heuristic) Name() string { return KindHeuristic }

func newVerdict(trimmed string, status domain.VerdictStatus, score int) domain.ScanVerdict {
	return domain.ScanVerdict{
		URL:             trimmed,
		Score:           score,
		Status:          status,
		SSL:             strings.HasPrefix(trimmed, securePrefix),
		Reputation:      reputations[status],
		Phishing:        status == domain.VerdictDanger,
		Malware:         status == domain.VerdictDanger,
		Recommendations: Recommendations(status),
	}
}
