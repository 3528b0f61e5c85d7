package v1handler

import (
	"net/http"
	"pen/internal/feed"
)

// Threats returns the live threats map. It always answers 200; a degraded
// map carries a notice.
func (h *Handler) Threats(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, h.deps.Threats.Map(r.Context()))
}

type SeverityOption struct {
	Value feed.Severity `json:"value"`
	Label string        `json:"label"`
}

type AlertsResponse struct {
	Items      []feed.Alert     `json:"items"`
	Severities []SeverityOption `json:"severities"`
}

// Alerts lists the vulnerability feed filtered by ?q=, ?severity= and ?scope=.
func (h *Handler) Alerts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	items, err := h.deps.Feed.List(feed.Filter{
		Query:    q.Get("q"),
		Severity: feed.Severity(q.Get("severity")),
		Scope:    feed.Scope(q.Get("scope")),
	})
	if err != nil {
		h.WriteError(w, r, err)

		return
	}

	severities := make([]SeverityOption, 0, len(feed.Severities()))
	for _, s := range feed.Severities() {
		severities = append(severities, SeverityOption{Value: s, Label: s.Label()})
	}

	writeJSON(r.Context(), w, http.StatusOK, AlertsResponse{Items: items, Severities: severities})
}
