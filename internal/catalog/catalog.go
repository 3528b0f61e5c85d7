// Package catalog serves the guides and tools catalogs and gates premium
// items. Decisions are recomputed on every listing and again on every click.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"pen/internal/access"
	"pen/internal/subscription"
	"pen/pkg/domain"
	"pen/pkg/logger"
	"pen/pkg/metrics"
	"pen/pkg/serrors"
	"pen/pkg/storage"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Notices shown with degraded listings.
const (
	UnavailableNotice         = "Impossible de charger le catalogue pour le moment"
	SubscriptionUnknownNotice = "Impossible de vérifier votre abonnement"
)

const decisionScope = "content"

type catalog struct {
	storage       storage.ContentStorage
	subscriptions subscription.Service
	access        access.Controller
	metrics       *metrics.Recorder
	validate      *validator.Validate
}

func (c *catalog) List(ctx context.Context,
	kind domain.ContentKind,
	query string,
	identity domain.Identity) (*Listing, error) {
	if !kind.Valid() {
		return nil, serrors.With(serrors.ErrBadRequest, "unknown catalog %q", kind)
	}

	items, err := c.storage.ListContent(ctx, storage.ContentFilter{Kind: kind, Query: query})
	if err != nil {
		logger.Warn(ctx, "could not list catalog", zap.String("kind", string(kind)), zap.Error(err))

		return &Listing{Items: []ListedItem{}, Notice: UnavailableNotice}, nil
	}

	listing := &Listing{Items: make([]ListedItem, 0, len(items))}
	sub, err := c.subscription(ctx, identity, items)
	if err != nil {
		logger.Warn(ctx, "could not read subscription for listing", zap.Error(err))
		listing.Notice = SubscriptionUnknownNotice
	}

	for _, item := range items {
		decision := c.access.DecideContentAccess(item, identity, sub)
		c.metrics.Decision(ctx, decisionScope, string(decision.Kind))
		listing.Items = append(listing.Items, ListedItem{ContentItem: item, Access: decision})
	}

	return listing, nil
}

// subscription is only read when it can change a decision: a signed-in
// caller and at least one premium item.
func (c *catalog) subscription(ctx context.Context,
	identity domain.Identity,
	items []domain.ContentItem) (domain.Subscription, error) {
	if !identity.IsAuthenticated() {
		return domain.Subscription{}, nil
	}

	for _, item := range items {
		if item.IsPremium {
			return c.subscriptions.Get(ctx, identity.ID) //nolint: wrapcheck
		}
	}

	return domain.Subscription{OwnerID: identity.ID}, nil
}

func (c *catalog) Access(ctx context.Context,
	kind domain.ContentKind,
	id domain.ContentID,
	identity domain.Identity) (*AccessResult, error) {
	if !kind.Valid() {
		return nil, serrors.With(serrors.ErrBadRequest, "unknown catalog %q", kind)
	}

	item, err := c.storage.ContentByID(ctx, kind, id)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrUnavailable, err, "could not load %s", kind)
	}
	if item == nil {
		return nil, serrors.With(serrors.ErrNotFound, "%s not found", kind)
	}

	var decision domain.AccessDecision
	switch {
	case item.IsPremium && identity.IsPending():
		decision = domain.Pending()
	default:
		sub, err := c.subscription(ctx, identity, []domain.ContentItem{*item})
		if err != nil {
			return nil, serrors.Wrap(serrors.ErrUnavailable, err, "could not verify subscription")
		}
		decision = c.access.DecideContentAccess(*item, identity, sub)
	}
	c.metrics.Decision(ctx, decisionScope, string(decision.Kind))

	res := &AccessResult{Decision: decision}
	if decision.Granted() {
		res.ResourceURL = item.ResourceURL
	}

	return res, nil
}

func (c *catalog) Create(ctx context.Context, identity domain.Identity, item NewItem) (*domain.ContentItem, error) {
	if err := c.requireAdmin(identity); err != nil {
		return nil, err
	}

	item.Title = strings.TrimSpace(item.Title)
	item.Description = strings.TrimSpace(item.Description)
	if err := c.validate.StructCtx(ctx, item); err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid %s", item.Kind)
	}

	resourceURL, err := NormalizeResourceURL(item.ResourceURL)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid resource url")
	}

	stored, err := c.storage.StoreContent(ctx, domain.ContentItem{
		Kind:        item.Kind,
		Title:       item.Title,
		Description: item.Description,
		ResourceURL: resourceURL,
		IsPremium:   item.IsPremium,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, serrors.Wrap(serrors.ErrConflict, err, "%s already exists", item.Kind)
		}

		return nil, fmt.Errorf("could not store %s: %w", item.Kind, err)
	}

	logger.Info(ctx, "catalog item created",
		zap.String("kind", string(stored.Kind)),
		zap.Stringer("id", stored.ID))

	return stored, nil
}

func (c *catalog) Delete(ctx context.Context,
	identity domain.Identity,
	kind domain.ContentKind,
	id domain.ContentID) error {
	if err := c.requireAdmin(identity); err != nil {
		return err
	}
	if !kind.Valid() {
		return serrors.With(serrors.ErrBadRequest, "unknown catalog %q", kind)
	}

	deleted, err := c.storage.DeleteContent(ctx, kind, id)
	if err != nil {
		return fmt.Errorf("could not delete %s: %w", kind, err)
	}
	if deleted == nil {
		return serrors.With(serrors.ErrNotFound, "%s not found", kind)
	}

	logger.Info(ctx, "catalog item deleted", zap.String("kind", string(kind)), zap.Stringer("id", id))

	return nil
}

func (c *catalog) requireAdmin(identity domain.Identity) error {
	switch decision := c.access.DecideRouteAccess(identity, true); decision.Kind {
	case domain.DecisionGranted:
		return nil
	case domain.DecisionPending:
		return serrors.With(serrors.ErrUnavailable, "identity is not resolved yet")
	case domain.DecisionRedirectToLogin:
		return serrors.With(serrors.ErrUnauthorized, "sign in required")
	default:
		return serrors.With(serrors.ErrForbidden, "admin privilege required")
	}
}

// New creates a Catalog. recorder may be nil.
func New(st storage.ContentStorage,
	subscriptions subscription.Service,
	controller access.Controller,
	recorder *metrics.Recorder) Catalog {
	return &catalog{
		storage:       st,
		subscriptions: subscriptions,
		access:        controller,
		metrics:       recorder,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
	}
}
