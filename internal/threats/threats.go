// Package threats serves the live threats map of the home page.
package threats

import (
	"context"
	"math"
	"pen/pkg/domain"
	"pen/pkg/logger"
	"pen/pkg/storage"

	"go.uber.org/zap"
)

// UnavailableNotice accompanies an empty map when the reports could not be read.
const UnavailableNotice = "Impossible de charger la carte des menaces pour le moment"

// Share is the weight of one threat kind across all reports.
type Share struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
	Total int    `json:"total"`
	// Percentage is rounded to the nearest integer.
	Percentage int `json:"percentage"`
}

// Map is what the home page renders.
type Map struct {
	Reports   []domain.ThreatReport `json:"reports"`
	Breakdown []Share               `json:"breakdown"`
	Total     int                   `json:"total"`
	Notice    string                `json:"notice,omitempty"`
}

// kinds orders the breakdown and names each kind.
var kinds = []struct{ kind, label string }{ //nolint: gochecknoglobals
	{"phishing", "Phishing"},
	{"malware", "Malware"},
	{"ransomware", "Ransomware"},
	{"ddos", "DDoS"},
}

// Service reads the threats map.
type Service interface {
	// Map never fails: a read error yields an empty map with a notice.
	Map(ctx context.Context) Map
}

type service struct {
	storage storage.ThreatStorage
}

func (s *service) Map(ctx context.Context) Map {
	reports, err := s.storage.ThreatReports(ctx)
	if err != nil {
		logger.Warn(ctx, "could not read threat reports", zap.Error(err))

		return Map{
			Reports:   []domain.ThreatReport{},
			Breakdown: breakdown(nil, 0),
			Notice:    UnavailableNotice,
		}
	}
	if reports == nil {
		reports = []domain.ThreatReport{}
	}

	total := 0
	for _, r := range reports {
		total += r.Count
	}

	return Map{
		Reports:   reports,
		Breakdown: breakdown(reports, total),
		Total:     total,
	}
}

func breakdown(reports []domain.ThreatReport, total int) []Share {
	out := make([]Share, 0, len(kinds))
	for _, k := range kinds {
		share := Share{Kind: k.kind, Label: k.label}
		for _, r := range reports {
			if r.Kind == k.kind {
				share.Total += r.Count
			}
		}
		if total > 0 {
			share.Percentage = int(math.Round(float64(share.Total) * 100 / float64(total)))
		}
		out = append(out, share)
	}

	return out
}

func New(st storage.ThreatStorage) Service {
	return &service{storage: st}
}
