package v1handler

import (
	"context"
	"net/http"
	"pen/pkg/domain"
	"pen/pkg/logger"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// CtxKey is the type of context keys set by this package.
type CtxKey string

const (
	// IdentityKey is the context key under which the resolved caller is stored.
	IdentityKey CtxKey = "identity"

	// DeviceIDHeader carries the anonymous device id scans are recorded under.
	DeviceIDHeader = "X-Device-ID"
)

// IdentityFromContext returns the caller resolved by Identify. Requests that
// did not go through it are anonymous.
func IdentityFromContext(ctx context.Context) domain.Identity {
	if identity, ok := ctx.Value(IdentityKey).(domain.Identity); ok {
		return identity
	}

	return domain.AnonymousIdentity()
}

// WithIdentity stores identity in ctx.
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

// BearerToken extracts the token of an "Authorization: Bearer" header.
func BearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}

	return strings.TrimSpace(token)
}

// Identify resolves the bearer token of every request into an identity.
// It never rejects a request; gating is left to RequireRoute and the
// services.
func (h *Handler) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		identity := h.deps.Sessions.Resolve(ctx, BearerToken(r))
		if identity.IsAuthenticated() {
			ctx = logger.WithFields(ctx, zap.Stringer("userId", identity.ID))
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, identity)))
	})
}

// RequireRoute gates protected routes. Anything but a granted decision is
// answered with the decision itself.
func (h *Handler) RequireRoute(requiresAdmin bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := h.deps.Access.DecideRouteAccess(IdentityFromContext(r.Context()), requiresAdmin)
			h.deps.Metrics.Decision(r.Context(), "route", string(decision.Kind))
			if !decision.Granted() {
				h.writeDecision(w, r, decision, decision)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// decisionStatus is the HTTP status a decision is served with when it
// blocks the request.
func decisionStatus(kind domain.DecisionKind) int {
	switch kind {
	case domain.DecisionPending:
		return http.StatusServiceUnavailable
	case domain.DecisionRedirectToLogin:
		return http.StatusUnauthorized
	case domain.DecisionRedirectToDashboard:
		return http.StatusForbidden
	case domain.DecisionRedirectToPricing:
		return http.StatusPaymentRequired
	default:
		return http.StatusOK
	}
}

func (h *Handler) writeDecision(w http.ResponseWriter, r *http.Request, decision domain.AccessDecision, body any) {
	status := decisionStatus(decision.Kind)
	if status == http.StatusServiceUnavailable {
		h.setRetryAfter(w)
	}
	writeJSON(r.Context(), w, status, body)
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || slices.Contains(h.options.AllowedOrigins, "*") {
		return true
	}

	return slices.ContainsFunc(h.options.AllowedOrigins, func(o string) bool {
		return strings.EqualFold(o, origin)
	})
}
