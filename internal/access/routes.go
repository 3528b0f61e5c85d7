package access

import (
	"path"
	"strings"
)

// Policy is the protection level of a site route.
type Policy int

const (
	// PolicyPublic routes are reachable by anyone.
	PolicyPublic Policy = iota
	// PolicyProtected routes require a signed-in user.
	PolicyProtected
	// PolicyAdmin routes require the admin identity.
	PolicyAdmin
)

func (p Policy) String() string {
	switch p {
	case PolicyProtected:
		return "protected"
	case PolicyAdmin:
		return "admin"
	default:
		return "public"
	}
}

// RouteTable maps site paths to their policy. A path inherits the policy of
// its closest listed ancestor; unlisted paths are public.
type RouteTable map[string]Policy

// DefaultRoutes is the route policy of the site.
func DefaultRoutes() RouteTable {
	return RouteTable{
		"/dashboard": PolicyProtected,
		"/admin":     PolicyAdmin,
	}
}

// Lookup returns the policy for p.
func (t RouteTable) Lookup(p string) Policy {
	p = clean(p)
	for {
		if policy, ok := t[p]; ok {
			return policy
		}
		if p == "/" {
			return PolicyPublic
		}
		p = path.Dir(p)
	}
}

func clean(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}

	return path.Clean(p)
}
