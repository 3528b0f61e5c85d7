package v1handler_test

import (
	"net/http"
	"pen/internal/api/handler/v1handler"
	"pen/internal/subscription"
	"pen/pkg/domain"
	"pen/pkg/serrors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSubscription(t *testing.T) {
	f := newFixture(t)
	f.subscriptions.EXPECT().Get(gomock.Any(), userID).Return(domain.Subscription{OwnerID: userID}, nil)

	rec := f.do(t, http.MethodGet, "/subscription", userToken, "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[domain.Subscription](t, rec)
	require.Equal(t, userID, body.OwnerID)
	require.False(t, body.IsSubscribed)
}

func TestCheckout(t *testing.T) {
	f := newFixture(t)

	activatesAt := time.Date(2026, 3, 1, 10, 0, 2, 0, time.UTC)
	f.subscriptions.EXPECT().Checkout(gomock.Any(), domain.AuthenticatedIdentity(userID, "awa@pen.cm")).
		Return(&subscription.Checkout{
			Status:      subscription.CheckoutStatusPending,
			ActivatesAt: activatesAt,
			Redirect:    domain.DashboardPath,
		}, nil)

	rec := f.do(t, http.MethodPost, "/subscription/checkout", userToken, "")
	require.Equal(t, http.StatusAccepted, rec.Code)

	body := decodeBody[subscription.Checkout](t, rec)
	require.Equal(t, subscription.CheckoutStatusPending, body.Status)
	require.True(t, activatesAt.Equal(body.ActivatesAt))
}

func TestCheckout_AlreadySubscribed(t *testing.T) {
	f := newFixture(t)
	f.subscriptions.EXPECT().Checkout(gomock.Any(), gomock.Any()).
		Return(nil, serrors.With(serrors.ErrConflict, subscription.AlreadySubscribedNotice))

	rec := f.do(t, http.MethodPost, "/subscription/checkout", userToken, "")
	require.Equal(t, http.StatusConflict, rec.Code)

	body := decodeBody[v1handler.ErrorBody](t, rec)
	require.Equal(t, subscription.AlreadySubscribedNotice, body.Message)
	require.Equal(t, domain.DashboardPath, body.Redirect)
}

func TestCheckout_Anonymous(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/subscription/checkout", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, domain.LoginPath, decodeBody[domain.AccessDecision](t, rec).Redirect)
}
