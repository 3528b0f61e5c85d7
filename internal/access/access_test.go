package access_test

import (
	"pen/internal/access"
	"pen/pkg/domain"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const adminEmail = "admin@pen.cm"

func newController() access.Controller {
	return access.New(access.Options{AdminEmail: adminEmail})
}

func user(email string) domain.Identity {
	return domain.AuthenticatedIdentity(domain.UserID(uuid.New()), email)
}

func TestDecideRouteAccess(t *testing.T) {
	c := newController()

	tests := []struct {
		name          string
		identity      domain.Identity
		requiresAdmin bool
		want          domain.AccessDecision
	}{
		{name: "pending never redirects", identity: domain.PendingIdentity(), want: domain.Pending()},
		{name: "pending on admin route", identity: domain.PendingIdentity(), requiresAdmin: true, want: domain.Pending()},
		{name: "anonymous goes to login", identity: domain.AnonymousIdentity(), want: domain.RedirectToLogin()},
		{name: "anonymous on admin route goes to login",
			identity: domain.AnonymousIdentity(), requiresAdmin: true, want: domain.RedirectToLogin()},
		{name: "user on protected route", identity: user("awa@pen.cm"), want: domain.Grant()},
		{name: "user on admin route goes to dashboard",
			identity: user("awa@pen.cm"), requiresAdmin: true, want: domain.RedirectToDashboard()},
		{name: "admin on admin route", identity: user(adminEmail), requiresAdmin: true, want: domain.Grant()},
		{name: "admin email differing in case is not admin",
			identity: user("Admin@pen.cm"), requiresAdmin: true, want: domain.RedirectToDashboard()},
		{name: "admin email with padding is not admin",
			identity: user(" admin@pen.cm"), requiresAdmin: true, want: domain.RedirectToDashboard()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.DecideRouteAccess(tt.identity, tt.requiresAdmin)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDecideRouteAccess_Redirects(t *testing.T) {
	c := newController()

	d := c.DecideRouteAccess(domain.AnonymousIdentity(), false)
	require.Equal(t, domain.LoginPath, d.Redirect)

	d = c.DecideRouteAccess(user("awa@pen.cm"), true)
	require.Equal(t, domain.DashboardPath, d.Redirect)

	d = c.DecideRouteAccess(domain.PendingIdentity(), true)
	require.Empty(t, d.Redirect)
	require.False(t, d.Granted())
}

func TestDecideContentAccess(t *testing.T) {
	c := newController()
	member := user("awa@pen.cm")

	free := domain.ContentItem{Title: "Guide gratuit"}
	premium := domain.ContentItem{Title: "Guide premium", IsPremium: true}
	subscribed := domain.Subscription{OwnerID: member.ID, IsSubscribed: true}

	tests := []struct {
		name         string
		item         domain.ContentItem
		identity     domain.Identity
		subscription domain.Subscription
		want         domain.AccessDecision
	}{
		{name: "free item anonymous", item: free, identity: domain.AnonymousIdentity(), want: domain.Grant()},
		{name: "free item pending", item: free, identity: domain.PendingIdentity(), want: domain.Grant()},
		{name: "premium anonymous", item: premium, identity: domain.AnonymousIdentity(), want: domain.RedirectToPricing()},
		{name: "premium anonymous with a stray subscription",
			item: premium, identity: domain.AnonymousIdentity(), subscription: subscribed, want: domain.RedirectToPricing()},
		{name: "premium unsubscribed user", item: premium, identity: member, want: domain.RedirectToPricing()},
		{name: "premium subscribed user", item: premium, identity: member, subscription: subscribed, want: domain.Grant()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.DecideContentAccess(tt.item, tt.identity, tt.subscription)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDecideContentAccess_PricingNotice(t *testing.T) {
	d := newController().DecideContentAccess(domain.ContentItem{IsPremium: true},
		domain.AnonymousIdentity(), domain.Subscription{})

	require.Equal(t, domain.PricingPath, d.Redirect)
	require.Equal(t, "Accès Premium requis", d.Notice)
}

func TestIsAdmin(t *testing.T) {
	c := newController()

	require.True(t, c.IsAdmin(user(adminEmail)))
	require.False(t, c.IsAdmin(user("ADMIN@PEN.CM")))
	require.False(t, c.IsAdmin(domain.AnonymousIdentity()))

	// an unresolved identity never holds the privilege, even with a stale email
	require.False(t, c.IsAdmin(domain.Identity{Email: adminEmail, State: domain.IdentityPending}))

	// without a configured admin nobody is admin
	require.False(t, access.New(access.Options{}).IsAdmin(user("")))
}

func TestDecideRoute(t *testing.T) {
	c := newController()
	member := user("awa@pen.cm")
	admin := user(adminEmail)

	tests := []struct {
		path     string
		identity domain.Identity
		want     domain.DecisionKind
	}{
		{path: "/", identity: domain.AnonymousIdentity(), want: domain.DecisionGranted},
		{path: "/guides", identity: domain.PendingIdentity(), want: domain.DecisionGranted},
		{path: "/scanner?url=x", identity: domain.AnonymousIdentity(), want: domain.DecisionGranted},
		{path: "/dashboard", identity: domain.AnonymousIdentity(), want: domain.DecisionRedirectToLogin},
		{path: "/dashboard/", identity: member, want: domain.DecisionGranted},
		{path: "/dashboard", identity: domain.PendingIdentity(), want: domain.DecisionPending},
		{path: "/admin", identity: member, want: domain.DecisionRedirectToDashboard},
		{path: "/admin/guides/new", identity: member, want: domain.DecisionRedirectToDashboard},
		{path: "/admin", identity: admin, want: domain.DecisionGranted},
		{path: "admin", identity: domain.AnonymousIdentity(), want: domain.DecisionRedirectToLogin},
		{path: "/administration", identity: domain.AnonymousIdentity(), want: domain.DecisionGranted},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			require.Equal(t, tt.want, c.DecideRoute(tt.path, tt.identity).Kind)
		})
	}
}

func TestLandingPath(t *testing.T) {
	c := newController()

	require.Equal(t, "/admin", c.LandingPath(user(adminEmail)))
	require.Equal(t, "/dashboard", c.LandingPath(user("awa@pen.cm")))
}

func TestRouteTable_Lookup(t *testing.T) {
	table := access.RouteTable{"/a/b": access.PolicyAdmin, "/a": access.PolicyProtected}

	require.Equal(t, access.PolicyAdmin, table.Lookup("/a/b/c"))
	require.Equal(t, access.PolicyProtected, table.Lookup("/a/x"))
	require.Equal(t, access.PolicyPublic, table.Lookup("/b"))
	require.Equal(t, access.PolicyProtected, table.Lookup("/a/b/../x"))
	require.Equal(t, "admin", access.PolicyAdmin.String())
}
