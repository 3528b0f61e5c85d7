package catalog

import (
	"context"
	"pen/pkg/domain"
)

// ListedItem is a catalog entry with the caller's affordance: open the
// resource or go to the paywall.
type ListedItem struct {
	domain.ContentItem
	Access domain.AccessDecision `json:"access"`
}

// Listing is one catalog page. Notice is set when the listing is degraded,
// e.g. empty because the store could not be read.
type Listing struct {
	Items  []ListedItem `json:"items"`
	Notice string       `json:"notice,omitempty"`
}

// AccessResult is the click-time decision. ResourceURL is only set when the
// decision grants access.
type AccessResult struct {
	Decision    domain.AccessDecision `json:"access"`
	ResourceURL string                `json:"resourceUrl,omitempty"`
}

// NewItem is an admin submission.
type NewItem struct {
	Kind        domain.ContentKind `validate:"required,oneof=guide tool"`
	Title       string             `validate:"required,max=200"`
	Description string             `validate:"max=2000"`
	ResourceURL string             `validate:"required,max=2048"`
	IsPremium   bool
}

// Catalog serves guides and tools.
//
//go:generate mockgen -package mockcatalog -source=interface.go -destination=mock/mockcatalog.go *
type Catalog interface {
	// List returns the items of kind matching query, newest first, each with
	// the decision for identity. Store failures give an empty listing with a
	// notice instead of an error.
	List(ctx context.Context, kind domain.ContentKind, query string, identity domain.Identity) (*Listing, error)
	// Access re-validates one item at click time.
	Access(ctx context.Context, kind domain.ContentKind, id domain.ContentID, identity domain.Identity) (*AccessResult, error)
	// Create adds an item. Only the admin may call it.
	Create(ctx context.Context, identity domain.Identity, item NewItem) (*domain.ContentItem, error)
	// Delete removes an item. Only the admin may call it.
	Delete(ctx context.Context, identity domain.Identity, kind domain.ContentKind, id domain.ContentID) error
}
