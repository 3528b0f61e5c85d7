package domain

import "time"

// Subscription is the premium flag of a user. It is owned by the profile
// store and may be stale relative to a concurrent update.
type Subscription struct {
	OwnerID      UserID    `json:"ownerId"`
	IsSubscribed bool      `json:"isSubscribed"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty"`
}
