package domain

// DecisionKind enumerates the outcomes of an access check.
type DecisionKind string

const (
	// DecisionPending means the identity is not resolved yet; render a
	// loading placeholder and do not navigate.
	DecisionPending DecisionKind = "pending"
	// DecisionGranted means the caller may proceed.
	DecisionGranted DecisionKind = "granted"
	// DecisionRedirectToLogin means the caller must sign in first.
	DecisionRedirectToLogin DecisionKind = "redirect_login"
	// DecisionRedirectToDashboard means the caller is signed in but lacks
	// admin privilege.
	DecisionRedirectToDashboard DecisionKind = "redirect_dashboard"
	// DecisionRedirectToPricing means premium content requires a subscription.
	DecisionRedirectToPricing DecisionKind = "redirect_pricing"
)

// Site paths used as redirect targets.
const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
	PricingPath   = "/pricing"
	AdminPath     = "/admin"
)

// PremiumRequiredNotice is shown to the user when premium content is gated.
const PremiumRequiredNotice = "Accès Premium requis"

// AccessDecision is an ephemeral, never persisted result of an access check.
type AccessDecision struct {
	Kind     DecisionKind `json:"decision"`
	Redirect string       `json:"redirect,omitempty"`
	Notice   string       `json:"notice,omitempty"`
}

// Granted reports whether the decision lets the caller through.
func (d AccessDecision) Granted() bool { return d.Kind == DecisionGranted }

// Pending returns the decision used while the identity is unresolved.
func Pending() AccessDecision { return AccessDecision{Kind: DecisionPending} }

// Grant returns an allowing decision.
func Grant() AccessDecision { return AccessDecision{Kind: DecisionGranted} }

// RedirectToLogin returns the decision for unauthenticated callers.
func RedirectToLogin() AccessDecision {
	return AccessDecision{Kind: DecisionRedirectToLogin, Redirect: LoginPath}
}

// RedirectToDashboard returns the decision for non-admin users on admin routes.
func RedirectToDashboard() AccessDecision {
	return AccessDecision{Kind: DecisionRedirectToDashboard, Redirect: DashboardPath}
}

// RedirectToPricing returns the paywall decision with its user-visible notice.
func RedirectToPricing() AccessDecision {
	return AccessDecision{Kind: DecisionRedirectToPricing, Redirect: PricingPath, Notice: PremiumRequiredNotice}
}
