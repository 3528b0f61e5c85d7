package domain

import (
	"time"

	"github.com/google/uuid"
)

// ContentID uniquely identifies a guide or a tool.
type ContentID uuid.UUID

// String returns the canonical UUID representation.
func (id ContentID) String() string { return uuid.UUID(id).String() }

// MarshalText encodes id in its canonical form so JSON carries a string.
func (id ContentID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *ContentID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

// ContentKind distinguishes the two catalogs. Both kinds are structurally
// identical for access control purposes.
type ContentKind string

const (
	// ContentKindGuide is a downloadable practical guide.
	ContentKindGuide ContentKind = "guide"
	// ContentKindTool is a downloadable security tool.
	ContentKindTool ContentKind = "tool"
)

// Valid reports whether k is a known content kind.
func (k ContentKind) Valid() bool {
	return k == ContentKindGuide || k == ContentKindTool
}

// ContentItem is a catalog entry. Premium items require an active
// subscription to be opened.
type ContentItem struct {
	ID          ContentID   `json:"id"`
	Kind        ContentKind `json:"kind"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	ResourceURL string      `json:"resourceUrl"`
	IsPremium   bool        `json:"isPremium"`
	CreatedAt   time.Time   `json:"createdAt"`
}
