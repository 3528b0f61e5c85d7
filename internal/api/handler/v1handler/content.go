package v1handler

import (
	"net/http"
	"pen/internal/catalog"
	"pen/pkg/domain"
	"pen/pkg/serrors"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func contentID(r *http.Request) (domain.ContentID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return domain.ContentID{}, serrors.Wrap(serrors.ErrBadRequest, err, "invalid id")
	}

	return domain.ContentID(id), nil
}

// ListContent lists a catalog with the caller's decision on every item.
// ?q= filters on title and description.
func (h *Handler) ListContent(kind domain.ContentKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		listing, err := h.deps.Catalog.List(ctx, kind, r.URL.Query().Get("q"), IdentityFromContext(ctx))
		if err != nil {
			h.WriteError(w, r, err)

			return
		}

		writeJSON(ctx, w, http.StatusOK, listing)
	}
}

// ContentAccess re-validates a click on a catalog item. Blocking decisions
// are served with a non-2xx status but the same body.
func (h *Handler) ContentAccess(kind domain.ContentKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := contentID(r)
		if err != nil {
			h.WriteError(w, r, err)

			return
		}

		res, err := h.deps.Catalog.Access(ctx, kind, id, IdentityFromContext(ctx))
		if err != nil {
			h.WriteError(w, r, err)

			return
		}

		h.writeDecision(w, r, res.Decision, res)
	}
}

type CreateContentRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	ResourceURL string `json:"resourceUrl" validate:"required,max=2048"`
	IsPremium   bool   `json:"isPremium"`
}

// CreateContent adds a guide or a tool.
func (h *Handler) CreateContent(kind domain.ContentKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req CreateContentRequest
		if err := h.decode(w, r, &req); err != nil {
			h.WriteError(w, r, err)

			return
		}

		item, err := h.deps.Catalog.Create(ctx, IdentityFromContext(ctx), catalog.NewItem{
			Kind:        kind,
			Title:       req.Title,
			Description: req.Description,
			ResourceURL: req.ResourceURL,
			IsPremium:   req.IsPremium,
		})
		if err != nil {
			h.WriteError(w, r, err)

			return
		}

		writeJSON(ctx, w, http.StatusCreated, item)
	}
}

// DeleteContent removes a guide or a tool.
func (h *Handler) DeleteContent(kind domain.ContentKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := contentID(r)
		if err != nil {
			h.WriteError(w, r, err)

			return
		}

		if err := h.deps.Catalog.Delete(ctx, IdentityFromContext(ctx), kind, id); err != nil {
			h.WriteError(w, r, err)

			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
