package v1handler_test

import (
	"net/http"
	"pen/internal/api/handler/v1handler"
	"pen/internal/session"
	"pen/pkg/domain"
	"pen/pkg/serrors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSignIn(t *testing.T) {
	f := newFixture(t)

	expiresAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	f.sessions.EXPECT().SignIn(gomock.Any(), "awa@pen.cm", "s3cret-pass").Return(&session.Session{
		Token:     userToken,
		ExpiresAt: expiresAt,
		Identity:  domain.AuthenticatedIdentity(userID, "awa@pen.cm"),
		Landing:   domain.DashboardPath,
	}, nil)

	rec := f.do(t, http.MethodPost, "/session", "", `{"email":"awa@pen.cm","password":"s3cret-pass"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[session.Session](t, rec)
	require.Equal(t, userToken, body.Token)
	require.Equal(t, domain.DashboardPath, body.Landing)
	require.True(t, expiresAt.Equal(body.ExpiresAt))
}

func TestSignIn_Rejected(t *testing.T) {
	f := newFixture(t)
	f.sessions.EXPECT().SignIn(gomock.Any(), "awa@pen.cm", "wrong").
		Return(nil, serrors.With(serrors.ErrUnauthorized, "Email ou mot de passe incorrect"))

	rec := f.do(t, http.MethodPost, "/session", "", `{"email":"awa@pen.cm","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	body := decodeBody[v1handler.ErrorBody](t, rec)
	require.Equal(t, "UNAUTHORIZED", body.Code)
	require.Equal(t, "Email ou mot de passe incorrect", body.Message)
}

func TestSignIn_InvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty", body: ""},
		{name: "not json", body: "email=x"},
		{name: "bad email", body: `{"email":"nope","password":"x"}`},
		{name: "missing password", body: `{"email":"awa@pen.cm"}`},
		{name: "unknown field", body: `{"email":"awa@pen.cm","password":"x","role":"admin"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			rec := f.do(t, http.MethodPost, "/session", "", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Equal(t, "BAD_REQUEST", decodeBody[v1handler.ErrorBody](t, rec).Code)
		})
	}
}

func TestSignOut(t *testing.T) {
	f := newFixture(t)
	f.sessions.EXPECT().SignOut(gomock.Any(), userToken).Return(nil)

	rec := f.do(t, http.MethodDelete, "/session", userToken, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSignOut_Unavailable(t *testing.T) {
	f := newFixture(t)
	f.sessions.EXPECT().SignOut(gomock.Any(), userToken).
		Return(serrors.KindOnly(serrors.ErrUnavailable))

	rec := f.do(t, http.MethodDelete, "/session", userToken, "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "2", rec.Header().Get("Retry-After"))
}
