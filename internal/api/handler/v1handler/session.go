package v1handler

import (
	"net/http"
	"pen/internal/catalog"
	"pen/pkg/domain"
	"pen/pkg/logger"

	"go.uber.org/zap"
)

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignIn exchanges credentials for a session token.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := h.decode(w, r, &req); err != nil {
		h.WriteError(w, r, err)

		return
	}

	s, err := h.deps.Sessions.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		h.WriteError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, s)
}

// SignOut revokes the bearer token. It succeeds without a token.
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Sessions.SignOut(r.Context(), BearerToken(r)); err != nil {
		h.WriteError(w, r, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type RouteAccessResponse struct {
	Path string `json:"path"`
	domain.AccessDecision
}

// RouteAccess tells the client how to handle a navigation to ?path=.
func (h *Handler) RouteAccess(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		path = "/"
	}

	decision := h.deps.Access.DecideRoute(path, IdentityFromContext(r.Context()))
	h.deps.Metrics.Decision(r.Context(), "route", string(decision.Kind))

	writeJSON(r.Context(), w, http.StatusOK, RouteAccessResponse{Path: path, AccessDecision: decision})
}

type MeResponse struct {
	Identity     domain.Identity      `json:"identity"`
	IsAdmin      bool                 `json:"isAdmin"`
	Landing      string               `json:"landing"`
	Subscription *domain.Subscription `json:"subscription"`
	Notice       string               `json:"notice,omitempty"`
}

// Me describes the signed-in caller.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := IdentityFromContext(ctx)

	res := MeResponse{
		Identity: identity,
		IsAdmin:  h.deps.Access.IsAdmin(identity),
		Landing:  h.deps.Access.LandingPath(identity),
	}

	sub, err := h.deps.Subscriptions.Get(ctx, identity.ID)
	if err != nil {
		logger.Warn(ctx, "could not read subscription", zap.Error(err))
		res.Notice = catalog.SubscriptionUnknownNotice
	} else {
		res.Subscription = &sub
	}

	writeJSON(ctx, w, http.StatusOK, res)
}
