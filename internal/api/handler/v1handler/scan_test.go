package v1handler_test

import (
	"net/http"
	"pen/internal/api/handler/v1handler"
	"pen/pkg/domain"
	"pen/pkg/serrors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestScan(t *testing.T) {
	f := newFixture(t)

	verdict := &domain.ScanVerdict{
		URL:             "http://example.cm",
		Score:           55,
		Status:          domain.VerdictWarning,
		Reputation:      domain.ReputationUnknown,
		Recommendations: []string{"a", "b", "c"},
		ScannedAt:       time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	f.scanner.EXPECT().Scan(gomock.Any(), "device-1", "http://example.cm").Return(verdict, nil)

	rec := f.do(t, http.MethodPost, "/scans", "", `{"url":"http://example.cm"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, *verdict, decodeBody[domain.ScanVerdict](t, rec))
}

func TestScan_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "blank", err: serrors.With(serrors.ErrBadRequest, "url is required"), status: http.StatusBadRequest},
		{name: "in flight", err: serrors.With(serrors.ErrConflict, "a scan is already running"), status: http.StatusConflict},
		{name: "cancelled", err: serrors.KindOnly(serrors.ErrTimeout), status: http.StatusGatewayTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.scanner.EXPECT().Scan(gomock.Any(), "device-1", gomock.Any()).Return(nil, tt.err)

			rec := f.do(t, http.MethodPost, "/scans", "", `{"url":"  "}`)
			require.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestScanHistory(t *testing.T) {
	f := newFixture(t)
	f.scanner.EXPECT().History(gomock.Any(), "device-1").Return(nil, nil)

	rec := f.do(t, http.MethodGet, "/scans/history", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"items":[]}`, rec.Body.String())

	f.scanner.EXPECT().History(gomock.Any(), "device-1").
		Return([]domain.ScanVerdict{{URL: "https://a.cm", Status: domain.VerdictSafe}}, nil)

	rec = f.do(t, http.MethodGet, "/scans/history", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeBody[v1handler.ScanHistoryResponse](t, rec).Items, 1)
}
