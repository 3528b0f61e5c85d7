package api_test

import (
	"net/http"
	"net/http/httptest"
	"pen/internal/access"
	"pen/internal/api"
	"pen/internal/api/handler/v1handler"
	"pen/internal/feed"
	"pen/pkg/domain"
	"pen/pkg/metrics"
	"testing"
	"time"

	mocksession "pen/internal/session/mock"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newHandler(t *testing.T) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	sessions := mocksession.NewMockStore(ctrl)
	sessions.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(domain.AnonymousIdentity()).AnyTimes()

	alerts, err := feed.New()
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	mp, err := metrics.NewMeterProvider(reg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mp.Shutdown(t.Context()) })
	recorder, err := metrics.NewRecorder(mp)
	require.NoError(t, err)

	return api.NewHandler(api.Deps{
		Deps: v1handler.Deps{
			Sessions: sessions,
			Access:   access.New(access.Options{AdminEmail: "admin@pen.cm"}),
			Feed:     alerts,
			Metrics:  recorder,
		},
		Gatherer: reg,
	}, api.Options{
		V1:             v1handler.Options{RequestTimeout: time.Second, RetryAfter: time.Second},
		MetricsPath:    "/metrics",
		AllowedOrigins: []string{"https://pen.cm"},
	})
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	return rec
}

func TestNewHandler_Routes(t *testing.T) {
	h := newHandler(t)

	rec := get(t, h, "/specs/v1.yaml")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), "openapi:")

	rec = get(t, h, "/v1/docs/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "/specs/v1.yaml")

	rec = get(t, h, "/v1/alerts?scope=global")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = get(t, h, "/debug/pprof/")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestNewHandler_Metrics(t *testing.T) {
	h := newHandler(t)

	// a route decision feeds the access decision counter
	rec := get(t, h, "/v1/me")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "pen_access_decisions")
}

func TestNewHandler_CORSPreflight(t *testing.T) {
	h := newHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/v1/scans", nil)
	req.Header.Set("Origin", "https://pen.cm")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://pen.cm", rec.Header().Get("Access-Control-Allow-Origin"))
}
