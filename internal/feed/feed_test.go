package feed_test

import (
	"pen/internal/feed"
	"pen/pkg/serrors"
	"testing"

	"github.com/stretchr/testify/require"
)

func ids(alerts []feed.Alert) []int {
	out := make([]int, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, a.ID)
	}

	return out
}

func TestList(t *testing.T) {
	f, err := feed.New()
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter feed.Filter
		want   []int
	}{
		{name: "everything newest first", filter: feed.Filter{}, want: []int{1, 2, 3, 4, 5, 6}},
		{name: "explicit all scope", filter: feed.Filter{Scope: feed.ScopeAll}, want: []int{1, 2, 3, 4, 5, 6}},
		{name: "local", filter: feed.Filter{Scope: feed.ScopeLocal}, want: []int{2, 3, 4, 6}},
		{name: "global", filter: feed.Filter{Scope: feed.ScopeGlobal}, want: []int{1, 5}},
		{name: "severity", filter: feed.Filter{Severity: feed.SeverityCritical}, want: []int{1, 3}},
		{name: "title search ignores case", filter: feed.Filter{Query: "ORANGE"}, want: []int{2}},
		{name: "description search", filter: feed.Filter{Query: "déni de service"}, want: []int{6}},
		{name: "combined", filter: feed.Filter{Query: "ransomware", Severity: feed.SeverityCritical, Scope: feed.ScopeLocal}, want: []int{3}},
		{name: "combined excludes", filter: feed.Filter{Query: "exchange", Scope: feed.ScopeLocal}, want: []int{}},
		{name: "no low alerts", filter: feed.Filter{Severity: feed.SeverityLow}, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.List(tt.filter)
			require.NoError(t, err)
			require.Equal(t, tt.want, ids(got))
		})
	}
}

func TestList_InvalidFilter(t *testing.T) {
	f, err := feed.New()
	require.NoError(t, err)

	_, err = f.List(feed.Filter{Severity: "urgent"})
	require.ErrorIs(t, err, serrors.ErrBadRequest)

	_, err = f.List(feed.Filter{Scope: "mars"})
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}

func TestParse(t *testing.T) {
	f, err := feed.Parse([]byte(`
- id: 1
  title: old
  severity: low
  date: "2023-05-01"
- id: 2
  title: new
  severity: high
  date: "2024-02-01"
`))
	require.NoError(t, err)

	got, err := f.List(feed.Filter{})
	require.NoError(t, err)
	require.Equal(t, []int{2, 1}, ids(got))

	_, err = feed.Parse([]byte(`- {id: 1, severity: extreme}`))
	require.Error(t, err)

	_, err = feed.Parse([]byte(`not: [a list`))
	require.Error(t, err)
}

func TestSeverityLabel(t *testing.T) {
	require.Equal(t, "Critique", feed.SeverityCritical.Label())
	require.Equal(t, "Élevée", feed.SeverityHigh.Label())
	require.Equal(t, "Modérée", feed.SeverityMedium.Label())
	require.Equal(t, "Faible", feed.SeverityLow.Label())
}
