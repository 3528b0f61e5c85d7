package access

import "pen/pkg/domain"

// Controller decides whether the current caller may reach a route or open a
// catalog item. Decisions are computed from their inputs alone and are never
// cached.
type Controller interface {
	// IsAdmin reports whether identity holds the admin privilege.
	IsAdmin(identity domain.Identity) bool
	// DecideRouteAccess gates a protected route.
	DecideRouteAccess(identity domain.Identity, requiresAdmin bool) domain.AccessDecision
	// DecideRoute looks path up in the route table and gates it.
	DecideRoute(path string, identity domain.Identity) domain.AccessDecision
	// DecideContentAccess gates one catalog item.
	DecideContentAccess(item domain.ContentItem,
		identity domain.Identity,
		subscription domain.Subscription) domain.AccessDecision
	// LandingPath is where a freshly signed-in identity is sent.
	LandingPath(identity domain.Identity) string
}
