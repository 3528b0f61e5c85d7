package domain

import "github.com/google/uuid"

// UserID uniquely identifies a user within the system.
// It is a thin wrapper around uuid.UUID to provide type safety at the domain layer.
type UserID uuid.UUID

// String returns the canonical UUID representation.
func (id UserID) String() string { return uuid.UUID(id).String() }

// MarshalText encodes id in its canonical form so JSON carries a string.
func (id UserID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *UserID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

// IdentityState tells whether the current caller's identity is known yet.
type IdentityState int

const (
	// IdentityPending means the session lookup has not completed (or failed
	// transiently). Callers render a loading state and must not redirect.
	IdentityPending IdentityState = iota
	// IdentityAnonymous means there is no signed-in user.
	IdentityAnonymous
	// IdentityAuthenticated means a user is signed in.
	IdentityAuthenticated
)

// Identity is the caller as seen by the session store. It is read once per
// decision and never mutated by the core.
type Identity struct {
	ID    UserID        `json:"id"`
	Email string        `json:"email"`
	State IdentityState `json:"-"`
}

// IsPending reports whether the identity is still being resolved.
func (i Identity) IsPending() bool { return i.State == IdentityPending }

// IsAuthenticated reports whether a user is signed in.
func (i Identity) IsAuthenticated() bool { return i.State == IdentityAuthenticated }

// PendingIdentity returns the identity used while the session is unresolved.
func PendingIdentity() Identity { return Identity{State: IdentityPending} }

// AnonymousIdentity returns the identity of a caller without a session.
func AnonymousIdentity() Identity { return Identity{State: IdentityAnonymous} }

// AuthenticatedIdentity returns the identity of a signed-in user.
func AuthenticatedIdentity(id UserID, email string) Identity {
	return Identity{ID: id, Email: email, State: IdentityAuthenticated}
}

// User is a stored account able to sign in.
type User struct {
	ID           UserID
	Email        string
	PasswordHash []byte
}
