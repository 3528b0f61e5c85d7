package v1handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"pen/internal/access"
	"pen/internal/assistant"
	"pen/internal/catalog"
	"pen/internal/config"
	"pen/internal/feed"
	"pen/internal/scanner"
	"pen/internal/session"
	"pen/internal/subscription"
	"pen/internal/threats"
	"pen/pkg/domain"
	"pen/pkg/logger"
	"pen/pkg/metrics"
	"pen/pkg/serrors"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// Deps are the services behind the v1 API.
type Deps struct {
	Sessions      session.Store
	Access        access.Controller
	Catalog       catalog.Catalog
	Scanner       scanner.Scanner
	Subscriptions subscription.Service
	Threats       threats.Service
	Feed          feed.Feed
	Assistant     assistant.Assistant
	// Metrics may be nil.
	Metrics *metrics.Recorder
}

// Options configure the v1 handler.
type Options struct {
	// RequestTimeout bounds every route except the assistant websocket.
	RequestTimeout time.Duration
	// RetryAfter is advertised while an identity cannot be resolved.
	RetryAfter time.Duration
	// AllowedOrigins gates websocket upgrades. "*" allows any origin.
	AllowedOrigins []string
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		RequestTimeout: cfg.HTTP.RequestTimeout,
		RetryAfter:     cfg.HTTP.RetryAfter,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	}
}

type Handler struct {
	deps     Deps
	options  Options
	validate *validator.Validate
	upgrader websocket.Upgrader
}

// Routes returns the v1 router, to be mounted under /v1.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(h.Identify)

	// long lived, must not inherit the request timeout
	r.Get("/assistant/ws", h.AssistantChat)

	r.Group(func(r chi.Router) {
		if h.options.RequestTimeout > 0 {
			r.Use(middleware.Timeout(h.options.RequestTimeout))
		}

		r.Post("/session", h.SignIn)
		r.Delete("/session", h.SignOut)

		r.Get("/access/route", h.RouteAccess)

		r.Get("/guides", h.ListContent(domain.ContentKindGuide))
		r.Get("/guides/{id}/access", h.ContentAccess(domain.ContentKindGuide))
		r.Get("/tools", h.ListContent(domain.ContentKindTool))
		r.Get("/tools/{id}/access", h.ContentAccess(domain.ContentKindTool))

		r.Post("/scans", h.Scan)
		r.Get("/scans/history", h.ScanHistory)

		r.Get("/threats", h.Threats)
		r.Get("/alerts", h.Alerts)

		r.Get("/assistant", h.AssistantIntro)
		r.Post("/assistant/messages", h.AssistantMessage)

		r.Post("/lab/strength", h.PasswordStrength)
		r.Post("/lab/generate", h.GeneratePassword)

		r.Group(func(r chi.Router) {
			r.Use(h.RequireRoute(false))

			r.Get("/me", h.Me)
			r.Get("/subscription", h.Subscription)
			r.Post("/subscription/checkout", h.Checkout)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(h.RequireRoute(true))

			r.Post("/guides", h.CreateContent(domain.ContentKindGuide))
			r.Delete("/guides/{id}", h.DeleteContent(domain.ContentKindGuide))
			r.Post("/tools", h.CreateContent(domain.ContentKindTool))
			r.Delete("/tools/{id}", h.DeleteContent(domain.ContentKindTool))
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.WriteError(w, r, serrors.With(serrors.ErrNotFound, "no route for %s %s", r.Method, r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(r.Context(), w, http.StatusMethodNotAllowed, ErrorBody{
			Code:    "METHOD_NOT_ALLOWED",
			Message: "method not allowed",
		})
	})

	return r
}

// ErrorBody is the payload of every failed request.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Redirect is the site route the client should navigate to, if any.
	Redirect string `json:"redirect,omitempty"`
}

// ErrorResponse pairs an ErrorBody with its status code.
type ErrorResponse struct {
	StatusCode int
	Response   ErrorBody
}

type kindInfo struct {
	status   int
	message  string
	redirect string
}

var kinds = map[serrors.Kind]kindInfo{ //nolint: gochecknoglobals
	serrors.ErrNotFound:        {http.StatusNotFound, "resource not found", ""},
	serrors.ErrUnauthorized:    {http.StatusUnauthorized, "unauthorized", domain.LoginPath},
	serrors.ErrForbidden:       {http.StatusForbidden, "forbidden", domain.DashboardPath},
	serrors.ErrPaymentRequired: {http.StatusPaymentRequired, domain.PremiumRequiredNotice, domain.PricingPath},
	serrors.ErrBadRequest:      {http.StatusBadRequest, "bad request", ""},
	serrors.ErrConflict:        {http.StatusConflict, "conflict", ""},
	serrors.ErrTimeout:         {http.StatusGatewayTimeout, "request timed out", ""},
	serrors.ErrUnavailable:     {http.StatusServiceUnavailable, "service unavailable", ""},
	serrors.ErrRateLimited:     {http.StatusTooManyRequests, "too many requests", ""},
}

// NewError maps err to a response. Errors without a kind, and ErrInternal,
// are logged and hidden behind a generic 500.
func (h *Handler) NewError(ctx context.Context, err error) *ErrorResponse {
	kind := serrors.KindOf(err)
	info, ok := kinds[kind]
	if !ok {
		logger.Error(ctx, "request failed", zap.Error(err))

		return &ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Response: ErrorBody{
				Code:    serrors.ErrInternal.Error(),
				Message: "internal error",
			},
		}
	}

	msg := serrors.MessageOf(err)
	if msg == "" {
		msg = info.message
	}
	if info.status >= http.StatusInternalServerError {
		logger.Warn(ctx, "request failed", zap.Error(err))
	}

	return &ErrorResponse{
		StatusCode: info.status,
		Response: ErrorBody{
			Code:     kind.Error(),
			Message:  msg,
			Redirect: info.redirect,
		},
	}
}

// WriteError renders err with NewError.
func (h *Handler) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	res := h.NewError(r.Context(), err)
	if res.StatusCode == http.StatusServiceUnavailable {
		h.setRetryAfter(w)
	}
	writeJSON(r.Context(), w, res.StatusCode, res.Response)
}

func (h *Handler) setRetryAfter(w http.ResponseWriter) {
	secs := int(h.options.RetryAfter.Round(time.Second) / time.Second)
	w.Header().Set("Retry-After", strconv.Itoa(max(secs, 1)))
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Debug(ctx, "could not write response", zap.Error(err))
	}
}

// decode reads a JSON body into dst and validates it.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return serrors.With(serrors.ErrBadRequest, "request body is required")
		}

		return serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body")
	}

	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return serrors.Wrap(serrors.ErrBadRequest, err,
				"invalid field %s: %s", verrs[0].Field(), describe(verrs[0]))
		}

		return fmt.Errorf("could not validate request: %w", err)
	}

	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "max":
		return "is longer than " + fe.Param()
	case "min":
		return "is shorter than " + fe.Param()
	default:
		return "failed " + fe.Tag()
	}
}

// New creates a Handler.
func New(deps Deps, options Options) *Handler {
	h := &Handler{
		deps:     deps,
		options:  options,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	h.upgrader = websocket.Upgrader{
		CheckOrigin: h.checkOrigin,
	}

	return h
}
