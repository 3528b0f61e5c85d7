package risk

import (
	"fmt"
	"pen/internal/config"
	"pen/pkg/urlscanner"
	"time"
)

// Evaluator kinds accepted by the scanner.evaluator setting.
const (
	KindHeuristic = "heuristic"
	KindRemote    = "remote"
)

// Options select and tune the evaluator.
type Options struct {
	Kind         string
	PollInterval time.Duration
	Timeout      time.Duration
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Kind:         cfg.Scanner.Evaluator,
		PollInterval: cfg.Scanner.PollInterval,
		Timeout:      cfg.Scanner.RemoteTimeout,
	}
}

// New returns the evaluator selected by options. client is only used by the
// remote evaluator and may be nil otherwise.
func New(options Options, client urlscanner.Client) (Evaluator, error) {
	switch options.Kind {
	case "", KindHeuristic:
		return Heuristic{}, nil
	case KindRemote:
		if client == nil {
			return nil, errNoClient
		}

		return NewRemote(client, options.PollInterval, options.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown evaluator %q", options.Kind)
	}
}
