package v1handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"pen/internal/access"
	"pen/internal/api/handler/v1handler"
	"pen/internal/assistant"
	"pen/internal/feed"
	"pen/internal/threats"
	"pen/pkg/domain"
	"pen/pkg/logger"
	"pen/pkg/serrors"
	"strings"
	"testing"
	"time"

	mockcatalog "pen/internal/catalog/mock"
	mockscanner "pen/internal/scanner/mock"
	mocksession "pen/internal/session/mock"
	mocksubscription "pen/internal/subscription/mock"
	mockstorage "pen/pkg/storage/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	adminEmail = "admin@pen.cm"
	userToken  = "user-token"
	adminToken = "admin-token"
	// pendingToken resolves to an identity whose session lookup failed.
	pendingToken = "pending-token"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.TestEnvironment)
	m.Run()
}

var (
	userID  = domain.UserID(uuid.MustParse("7d1f0c62-3f56-4a39-9a47-3c3b1d1a8a10"))
	adminID = domain.UserID(uuid.MustParse("0b8b8e58-8f0e-4c6e-9a30-5d0c0f8f2e11"))
)

type fixture struct {
	sessions      *mocksession.MockStore
	catalog       *mockcatalog.MockCatalog
	scanner       *mockscanner.MockScanner
	subscriptions *mocksubscription.MockService
	threatStore   *mockstorage.MockThreatStorage
	handler       *v1handler.Handler
	routes        http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &fixture{
		sessions:      mocksession.NewMockStore(ctrl),
		catalog:       mockcatalog.NewMockCatalog(ctrl),
		scanner:       mockscanner.NewMockScanner(ctrl),
		subscriptions: mocksubscription.NewMockService(ctrl),
		threatStore:   mockstorage.NewMockThreatStorage(ctrl),
	}

	f.sessions.EXPECT().Resolve(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, token string) domain.Identity {
			switch token {
			case userToken:
				return domain.AuthenticatedIdentity(userID, "awa@pen.cm")
			case adminToken:
				return domain.AuthenticatedIdentity(adminID, adminEmail)
			case pendingToken:
				return domain.PendingIdentity()
			default:
				return domain.AnonymousIdentity()
			}
		}).AnyTimes()

	alerts, err := feed.New()
	require.NoError(t, err)
	bot, err := assistant.New(assistant.Options{}, nil)
	require.NoError(t, err)

	f.handler = v1handler.New(v1handler.Deps{
		Sessions:      f.sessions,
		Access:        access.New(access.Options{AdminEmail: adminEmail}),
		Catalog:       f.catalog,
		Scanner:       f.scanner,
		Subscriptions: f.subscriptions,
		Threats:       threats.New(f.threatStore),
		Feed:          alerts,
		Assistant:     bot,
	}, v1handler.Options{
		RequestTimeout: 5 * time.Second,
		RetryAfter:     2 * time.Second,
		AllowedOrigins: []string{"*"},
	})
	f.routes = f.handler.Routes()

	return f
}

func (f *fixture) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set(v1handler.DeviceIDHeader, "device-1")
	rec := httptest.NewRecorder()

	f.routes.ServeHTTP(rec, req)

	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())

	return out
}

func TestNewError_InternalOnPlainError(t *testing.T) {
	h := v1handler.New(v1handler.Deps{}, v1handler.Options{})

	res := h.NewError(context.Background(), errors.New("boom"))
	require.Equal(t, http.StatusInternalServerError, res.StatusCode)
	require.Equal(t, serrors.ErrInternal.Error(), res.Response.Code)
	require.Equal(t, "internal error", res.Response.Message)
}

func TestNewError_KindSentinelDirect_NotFound(t *testing.T) {
	h := v1handler.New(v1handler.Deps{}, v1handler.Options{})

	res := h.NewError(context.Background(), serrors.ErrNotFound)
	require.Equal(t, http.StatusNotFound, res.StatusCode)
	require.Equal(t, serrors.ErrNotFound.Error(), res.Response.Code)
	require.Equal(t, "resource not found", res.Response.Message)
}

func TestNewError_SemanticWithMessage_BadRequest(t *testing.T) {
	h := v1handler.New(v1handler.Deps{}, v1handler.Options{})

	res := h.NewError(context.Background(), serrors.With(serrors.ErrBadRequest, "url is required"))
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.Equal(t, serrors.ErrBadRequest.Error(), res.Response.Code)
	require.Equal(t, "url is required", res.Response.Message)
}

func TestNewError_SemanticWrap_Unauthorized(t *testing.T) {
	h := v1handler.New(v1handler.Deps{}, v1handler.Options{})

	err := serrors.Wrap(serrors.ErrUnauthorized, errors.New("bad token"), "unauthorized")
	res := h.NewError(context.Background(), err)
	require.Equal(t, http.StatusUnauthorized, res.StatusCode)
	// the message, not the cause
	require.Equal(t, "unauthorized", res.Response.Message)
	require.Equal(t, domain.LoginPath, res.Response.Redirect)
}

func TestNewError_InternalKind_GeneratesInternal(t *testing.T) {
	h := v1handler.New(v1handler.Deps{}, v1handler.Options{})

	res := h.NewError(context.Background(), serrors.KindOnly(serrors.ErrInternal))
	require.Equal(t, http.StatusInternalServerError, res.StatusCode)
	require.Equal(t, "internal error", res.Response.Message)
}

func TestNewError_StatusTable(t *testing.T) {
	h := v1handler.New(v1handler.Deps{}, v1handler.Options{})

	tests := []struct {
		kind   serrors.Kind
		status int
	}{
		{serrors.ErrForbidden, http.StatusForbidden},
		{serrors.ErrPaymentRequired, http.StatusPaymentRequired},
		{serrors.ErrConflict, http.StatusConflict},
		{serrors.ErrTimeout, http.StatusGatewayTimeout},
		{serrors.ErrUnavailable, http.StatusServiceUnavailable},
		{serrors.ErrRateLimited, http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.kind.Error(), func(t *testing.T) {
			res := h.NewError(context.Background(), serrors.KindOnly(tt.kind))
			require.Equal(t, tt.status, res.StatusCode)
			require.Equal(t, tt.kind.Error(), res.Response.Code)
		})
	}
}

func TestRoutes_NotFound(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/nope", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "NOT_FOUND", decodeBody[v1handler.ErrorBody](t, rec).Code)
}
