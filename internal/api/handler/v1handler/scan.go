package v1handler

import (
	"net/http"
	"pen/pkg/domain"
)

type ScanRequest struct {
	URL string `json:"url" validate:"max=2048"`
}

type ScanHistoryResponse struct {
	Items []domain.ScanVerdict `json:"items"`
}

// Scan evaluates a URL. The verdict is recorded under the X-Device-ID
// header when present.
func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := h.decode(w, r, &req); err != nil {
		h.WriteError(w, r, err)

		return
	}

	verdict, err := h.deps.Scanner.Scan(r.Context(), r.Header.Get(DeviceIDHeader), req.URL)
	if err != nil {
		h.WriteError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, verdict)
}

// ScanHistory returns the latest verdicts of the calling device.
func (h *Handler) ScanHistory(w http.ResponseWriter, r *http.Request) {
	items, err := h.deps.Scanner.History(r.Context(), r.Header.Get(DeviceIDHeader))
	if err != nil {
		h.WriteError(w, r, err)

		return
	}
	if items == nil {
		items = []domain.ScanVerdict{}
	}

	writeJSON(r.Context(), w, http.StatusOK, ScanHistoryResponse{Items: items})
}
