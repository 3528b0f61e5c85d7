// Package feed serves the vulnerability and threat alerts of the news page.
// Alerts are baked into the binary and filtered in memory.
package feed

import (
	_ "embed"
	"fmt"
	"pen/pkg/serrors"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed alerts.yaml
var embeddedAlerts []byte

// Severity ranks an alert.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Severities lists every severity, most severe first.
func Severities() []Severity {
	return []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}
}

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	return slices.Contains(Severities(), s)
}

// Label is the French display name of s.
func (s Severity) Label() string {
	switch s {
	case SeverityCritical:
		return "Critique"
	case SeverityHigh:
		return "Élevée"
	case SeverityMedium:
		return "Modérée"
	case SeverityLow:
		return "Faible"
	default:
		return string(s)
	}
}

// Scope restricts alerts by geography.
type Scope string

const (
	ScopeAll Scope = "all"
	// ScopeLocal keeps alerts concerning Cameroon.
	ScopeLocal  Scope = "local"
	ScopeGlobal Scope = "global"
)

// Alert is one entry of the feed.
type Alert struct {
	ID          int      `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Severity    Severity `json:"severity" yaml:"severity"`
	// Date is the publication day, formatted YYYY-MM-DD.
	Date     string   `json:"date" yaml:"date"`
	Category string   `json:"category" yaml:"category"`
	Affected []string `json:"affected" yaml:"affected"`
	Solution string   `json:"solution" yaml:"solution"`
	Local    bool     `json:"local" yaml:"local"`
}

// Filter narrows a listing. Zero values match everything.
type Filter struct {
	// Query matches title or description, case-insensitively.
	Query    string
	Severity Severity
	Scope    Scope
}

// Validate rejects unknown severities and scopes.
func (f Filter) Validate() error {
	if f.Severity != "" && !f.Severity.Valid() {
		return serrors.With(serrors.ErrBadRequest, "unknown severity %q", f.Severity)
	}
	switch f.Scope {
	case "", ScopeAll, ScopeLocal, ScopeGlobal:
		return nil
	default:
		return serrors.With(serrors.ErrBadRequest, "unknown scope %q", f.Scope)
	}
}

func (f Filter) match(a Alert) bool {
	if q := strings.ToLower(f.Query); q != "" &&
		!strings.Contains(strings.ToLower(a.Title), q) &&
		!strings.Contains(strings.ToLower(a.Description), q) {
		return false
	}
	if f.Severity != "" && a.Severity != f.Severity {
		return false
	}
	switch f.Scope {
	case ScopeLocal:
		return a.Local
	case ScopeGlobal:
		return !a.Local
	default:
		return true
	}
}

// Feed lists alerts.
type Feed interface {
	// List returns the alerts matching filter, newest first.
	List(filter Filter) ([]Alert, error)
}

type feed struct {
	alerts []Alert
}

func (f *feed) List(filter Filter) ([]Alert, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	out := make([]Alert, 0, len(f.alerts))
	for _, a := range f.alerts {
		if filter.match(a) {
			out = append(out, a)
		}
	}

	return out, nil
}

// Parse builds a Feed from a YAML list of alerts.
func Parse(data []byte) (Feed, error) {
	var alerts []Alert
	if err := yaml.Unmarshal(data, &alerts); err != nil {
		return nil, fmt.Errorf("could not parse alerts: %w", err)
	}

	for _, a := range alerts {
		if !a.Severity.Valid() {
			return nil, fmt.Errorf("alert %d: unknown severity %q", a.ID, a.Severity)
		}
	}

	// ISO dates sort lexically.
	slices.SortStableFunc(alerts, func(a, b Alert) int {
		return strings.Compare(b.Date, a.Date)
	})

	return &feed{alerts: alerts}, nil
}

// New returns the feed of the embedded alerts.
func New() (Feed, error) {
	return Parse(embeddedAlerts)
}
