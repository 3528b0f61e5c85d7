// Package assistant implements the keyword based security assistant.
package assistant

import (
	"context"
	_ "embed"
	"fmt"
	"pen/internal/config"
	"pen/pkg/serrors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed replies.yaml
var embeddedReplies []byte

// MaxQuestionLength bounds a question, in characters.
const MaxQuestionLength = 1000

// Options configure the assistant.
type Options struct {
	// ReplyDelay simulates the time spent composing an answer.
	ReplyDelay time.Duration
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		ReplyDelay: cfg.Assistant.ReplyDelay,
	}
}

// Script is the content the assistant speaks from.
type Script struct {
	Greeting    string   `yaml:"greeting"`
	Suggestions []string `yaml:"suggestions"`
	Replies     []struct {
		Keyword string `yaml:"keyword"`
		Answer  string `yaml:"answer"`
	} `yaml:"replies"`
	Fallback string `yaml:"fallback"`
}

// ParseScript reads a Script from YAML. Keywords are lowercased.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("could not parse replies: %w", err)
	}
	if s.Fallback == "" {
		return nil, fmt.Errorf("replies: fallback is required")
	}
	for i := range s.Replies {
		s.Replies[i].Keyword = strings.ToLower(s.Replies[i].Keyword)
		if s.Replies[i].Keyword == "" {
			return nil, fmt.Errorf("replies: entry %d has no keyword", i)
		}
	}

	return &s, nil
}

// Answer returns the reply of the first keyword contained in question,
// ignoring case, or the fallback.
func (s *Script) Answer(question string) string {
	q := strings.ToLower(question)
	for _, r := range s.Replies {
		if strings.Contains(q, r.Keyword) {
			return r.Answer
		}
	}

	return s.Fallback
}

type assistant struct {
	options Options
	script  *Script
	now     func() time.Time
}

func (a *assistant) Greeting() Message {
	return a.message(a.script.Greeting)
}

func (a *assistant) Suggestions() []string {
	out := make([]string, len(a.script.Suggestions))
	copy(out, a.script.Suggestions)

	return out
}

func (a *assistant) Reply(ctx context.Context, question string) (Message, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Message{}, serrors.With(serrors.ErrBadRequest, "question is required")
	}
	if len([]rune(question)) > MaxQuestionLength {
		return Message{}, serrors.With(serrors.ErrBadRequest, "question is longer than %d characters", MaxQuestionLength)
	}

	if a.options.ReplyDelay > 0 {
		timer := time.NewTimer(a.options.ReplyDelay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return Message{}, serrors.Wrap(serrors.ErrTimeout, ctx.Err(), "reply cancelled")
		case <-timer.C:
		}
	}

	return a.message(a.script.Answer(question)), nil
}

func (a *assistant) message(content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Content:   content,
		Timestamp: a.now().UTC(),
	}
}

// New creates an Assistant speaking from script. A nil script selects the
// embedded one.
func New(options Options, script *Script) (Assistant, error) {
	if script == nil {
		var err error
		if script, err = ParseScript(embeddedReplies); err != nil {
			return nil, err
		}
	}

	return &assistant{options: options, script: script, now: time.Now}, nil
}
