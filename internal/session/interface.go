package session

import (
	"context"
	"pen/pkg/domain"
	"time"
)

// Session is a signed-in session handed to the client.
type Session struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	Identity  domain.Identity `json:"identity"`
	// Landing is the route the client navigates to after sign-in.
	Landing string `json:"landing"`
}

// Revoker remembers signed-out token ids until they expire.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Store signs users in and resolves bearer tokens into identities.
//
//go:generate mockgen -package mocksession -source=interface.go -destination=mock/mocksession.go *
type Store interface {
	// SignIn checks credentials. Unknown emails and wrong passwords both
	// yield serrors.ErrUnauthorized.
	SignIn(ctx context.Context, email, password string) (*Session, error)
	// SignOut revokes token. Invalid or expired tokens are ignored.
	SignOut(ctx context.Context, token string) error
	// Resolve never fails: an unusable token gives an anonymous identity and
	// an unreachable revocation list gives a pending one.
	Resolve(ctx context.Context, token string) domain.Identity
	// Issue signs a session for user without checking a password.
	Issue(user domain.User) (*Session, error)
	CreateUser(ctx context.Context, email, password string) (*domain.User, error)
}
