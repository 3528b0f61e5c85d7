package subscription

import (
	"context"
	"pen/pkg/domain"
	"time"
)

// CheckoutStatusPending is reported while the simulated payment runs.
const CheckoutStatusPending = "pending"

// Checkout describes an accepted checkout.
type Checkout struct {
	Status string `json:"status"`
	// ActivatesAt is when the premium flag is expected to flip.
	ActivatesAt time.Time `json:"activatesAt"`
	// Redirect is where the client goes once the payment went through.
	Redirect string `json:"redirect"`
}

// Service reads and changes the premium flag of users.
//
//go:generate mockgen -package mocksubscription -source=interface.go -destination=mock/mocksubscription.go *
type Service interface {
	// Get returns the current subscription. A user without a profile is
	// not subscribed.
	Get(ctx context.Context, userID domain.UserID) (domain.Subscription, error)
	// Checkout starts a simulated payment for identity.
	Checkout(ctx context.Context, identity domain.Identity) (*Checkout, error)
	// Activate turns the premium flag on. It is called by the activation job.
	Activate(ctx context.Context, userID domain.UserID) (domain.Subscription, error)
}
