package v1handler_test

import (
	"net/http"
	"net/http/httptest"
	"pen/internal/api/handler/v1handler"
	"pen/pkg/domain"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{header: "Bearer abc", want: "abc"},
		{header: "bearer  abc ", want: "abc"},
		{header: "Basic abc", want: ""},
		{header: "abc", want: ""},
		{header: "", want: ""},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", tt.header)
		require.Equal(t, tt.want, v1handler.BearerToken(req), tt.header)
	}
}

func TestIdentityFromContext_DefaultsToAnonymous(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.Equal(t, domain.AnonymousIdentity(), v1handler.IdentityFromContext(req.Context()))
}

func TestRequireRoute_Protected(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		status     int
		decision   domain.DecisionKind
		redirect   string
		retryAfter string
	}{
		{name: "anonymous", token: "", status: http.StatusUnauthorized,
			decision: domain.DecisionRedirectToLogin, redirect: domain.LoginPath},
		{name: "invalid token", token: "garbage", status: http.StatusUnauthorized,
			decision: domain.DecisionRedirectToLogin, redirect: domain.LoginPath},
		{name: "pending", token: pendingToken, status: http.StatusServiceUnavailable,
			decision: domain.DecisionPending, retryAfter: "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			rec := f.do(t, http.MethodGet, "/me", tt.token, "")
			require.Equal(t, tt.status, rec.Code)
			require.Equal(t, tt.retryAfter, rec.Header().Get("Retry-After"))

			body := decodeBody[domain.AccessDecision](t, rec)
			require.Equal(t, tt.decision, body.Kind)
			require.Equal(t, tt.redirect, body.Redirect)
		})
	}
}

func TestRequireRoute_Admin(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/admin/guides", userToken, `{"title":"x","resourceUrl":"https://pen.cm"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)

	body := decodeBody[domain.AccessDecision](t, rec)
	require.Equal(t, domain.DecisionRedirectToDashboard, body.Kind)
	require.Equal(t, domain.DashboardPath, body.Redirect)

	rec = f.do(t, http.MethodDelete, "/admin/tools/"+"not-a-uuid", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMe(t *testing.T) {
	f := newFixture(t)
	f.subscriptions.EXPECT().Get(gomock.Any(), adminID).
		Return(domain.Subscription{OwnerID: adminID, IsSubscribed: true}, nil)

	rec := f.do(t, http.MethodGet, "/me", adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[v1handler.MeResponse](t, rec)
	require.True(t, body.IsAdmin)
	require.Equal(t, domain.AdminPath, body.Landing)
	require.Equal(t, adminEmail, body.Identity.Email)
	require.NotNil(t, body.Subscription)
	require.True(t, body.Subscription.IsSubscribed)
	require.Empty(t, body.Notice)
}

func TestMe_SubscriptionUnavailable(t *testing.T) {
	f := newFixture(t)
	f.subscriptions.EXPECT().Get(gomock.Any(), userID).Return(domain.Subscription{}, http.ErrHandlerTimeout)

	rec := f.do(t, http.MethodGet, "/me", userToken, "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[v1handler.MeResponse](t, rec)
	require.False(t, body.IsAdmin)
	require.Equal(t, domain.DashboardPath, body.Landing)
	require.Nil(t, body.Subscription)
	require.NotEmpty(t, body.Notice)
}

func TestRouteAccess(t *testing.T) {
	tests := []struct {
		path     string
		token    string
		decision domain.DecisionKind
	}{
		{path: "/", token: "", decision: domain.DecisionGranted},
		{path: "/dashboard", token: "", decision: domain.DecisionRedirectToLogin},
		{path: "/dashboard", token: pendingToken, decision: domain.DecisionPending},
		{path: "/admin", token: userToken, decision: domain.DecisionRedirectToDashboard},
		{path: "/admin", token: adminToken, decision: domain.DecisionGranted},
	}

	for _, tt := range tests {
		t.Run(tt.path+" "+tt.token, func(t *testing.T) {
			f := newFixture(t)

			rec := f.do(t, http.MethodGet, "/access/route?path="+tt.path, tt.token, "")
			require.Equal(t, http.StatusOK, rec.Code)

			body := decodeBody[v1handler.RouteAccessResponse](t, rec)
			require.Equal(t, tt.path, body.Path)
			require.Equal(t, tt.decision, body.Kind)
		})
	}
}
