package v1handler

import (
	"errors"
	"net/http"
	"pen/pkg/domain"
	"pen/pkg/serrors"
)

// Subscription returns the premium state of the caller.
func (h *Handler) Subscription(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sub, err := h.deps.Subscriptions.Get(ctx, IdentityFromContext(ctx).ID)
	if err != nil {
		h.WriteError(w, r, err)

		return
	}

	writeJSON(ctx, w, http.StatusOK, sub)
}

// Checkout starts the simulated payment. An active subscription is reported
// as a conflict sending the client back to the dashboard.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	checkout, err := h.deps.Subscriptions.Checkout(ctx, IdentityFromContext(ctx))
	if err != nil {
		if errors.Is(err, serrors.ErrConflict) {
			res := h.NewError(ctx, err)
			res.Response.Redirect = domain.DashboardPath
			writeJSON(ctx, w, res.StatusCode, res.Response)

			return
		}
		h.WriteError(w, r, err)

		return
	}

	writeJSON(ctx, w, http.StatusAccepted, checkout)
}
