// Package access implements the route and content gates of the site.
package access

import (
	"pen/internal/config"
	"pen/pkg/domain"
)

// Options configure the access controller.
type Options struct {
	// AdminEmail is the single identity holding the admin privilege. The
	// comparison is exact and case-sensitive.
	AdminEmail string
	// Routes is the route policy table.
	Routes RouteTable
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		AdminEmail: cfg.Auth.AdminEmail,
		Routes:     DefaultRoutes(),
	}
}

type controller struct {
	options Options
}

func (c controller) IsAdmin(identity domain.Identity) bool {
	return identity.IsAuthenticated() && c.options.AdminEmail != "" && identity.Email == c.options.AdminEmail
}

// DecideRouteAccess checks, in order: identity resolution, sign-in, then
// the admin privilege when requiresAdmin is set.
func (c controller) DecideRouteAccess(identity domain.Identity, requiresAdmin bool) domain.AccessDecision {
	switch {
	case identity.IsPending():
		return domain.Pending()
	case !identity.IsAuthenticated():
		return domain.RedirectToLogin()
	case requiresAdmin && !c.IsAdmin(identity):
		return domain.RedirectToDashboard()
	default:
		return domain.Grant()
	}
}

func (c controller) DecideRoute(path string, identity domain.Identity) domain.AccessDecision {
	switch c.options.Routes.Lookup(path) {
	case PolicyProtected:
		return c.DecideRouteAccess(identity, false)
	case PolicyAdmin:
		return c.DecideRouteAccess(identity, true)
	default:
		return domain.Grant()
	}
}

// DecideContentAccess lets free items through. Premium items need a signed-in
// user with an active subscription. A pending identity is treated as not
// signed in here: content gating happens on click, after resolution.
func (c controller) DecideContentAccess(item domain.ContentItem,
	identity domain.Identity,
	subscription domain.Subscription) domain.AccessDecision {
	if !item.IsPremium {
		return domain.Grant()
	}
	if !identity.IsAuthenticated() || !subscription.IsSubscribed {
		return domain.RedirectToPricing()
	}

	return domain.Grant()
}

func (c controller) LandingPath(identity domain.Identity) string {
	if c.IsAdmin(identity) {
		return domain.AdminPath
	}

	return domain.DashboardPath
}

// New creates a Controller configured with options. A nil route table falls
// back to DefaultRoutes.
func New(options Options) Controller {
	if options.Routes == nil {
		options.Routes = DefaultRoutes()
	}

	return &controller{options: options}
}
