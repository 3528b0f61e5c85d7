// Package storage defines the persistence interfaces the services rely on.
// Backends (PostgreSQL under pkg/storage/postgres) implement them; services
// group writes with WithTx so that jobs are enqueued atomically with the rows
// they depend on.
//
//go:generate mockgen -package mockstorage -source=interface.go -destination=mock/mockstorage.go *
package storage

import (
	"context"
	"pen/pkg/domain"

	"github.com/riverqueue/river"
)

// AllStorage gathers every domain-specific storage capability.
type AllStorage interface {
	UserStorage
	ProfileStorage
	ContentStorage
	ThreatStorage
	JobStorage
}

// TxStorage is an AllStorage bound to a database transaction. It becomes
// unusable after Commit or Rollback.
type TxStorage interface {
	AllStorage

	Commit() error
	Rollback() error
}

// Storage is a non-transactional handle able to start transactions.
type Storage interface {
	AllStorage

	// Close releases the underlying connection pool.
	Close() error
	// Ping checks that the backend answers.
	Ping(ctx context.Context) error

	Begin(ctx context.Context) (TxStorage, error)
	// WithTx runs cb inside a transaction, committing when cb returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, cb func(storage AllStorage) error) error
}

// UserStorage persists accounts.
type UserStorage interface {
	// StoreUser inserts user and returns the stored row. A taken email yields
	// ErrDuplicate.
	StoreUser(ctx context.Context, user domain.User) (*domain.User, error)
	// UserByEmail returns nil when no account matches email exactly.
	UserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// ProfileStorage persists the premium flag of users.
type ProfileStorage interface {
	// Subscription returns nil when the user has no profile yet.
	Subscription(ctx context.Context, userID domain.UserID) (*domain.Subscription, error)
	// LockSubscription creates the profile when missing and locks it for the
	// rest of the surrounding transaction.
	LockSubscription(ctx context.Context, userID domain.UserID) (*domain.Subscription, error)
	// SetSubscribed creates or updates the profile with the given flag.
	SetSubscribed(ctx context.Context, userID domain.UserID, subscribed bool) (*domain.Subscription, error)
}

// ContentFilter narrows a catalog listing.
type ContentFilter struct {
	Kind domain.ContentKind
	// Query, when set, matches title or description case-insensitively.
	Query string
}

// ContentStorage persists guides and tools.
type ContentStorage interface {
	// ListContent returns matching items, newest first.
	ListContent(ctx context.Context, filter ContentFilter) ([]domain.ContentItem, error)
	// ContentByID returns nil when no item of kind has id.
	ContentByID(ctx context.Context, kind domain.ContentKind, id domain.ContentID) (*domain.ContentItem, error)
	StoreContent(ctx context.Context, item domain.ContentItem) (*domain.ContentItem, error)
	// DeleteContent returns the deleted item, or nil when it did not exist.
	DeleteContent(ctx context.Context, kind domain.ContentKind, id domain.ContentID) (*domain.ContentItem, error)
}

// ThreatStorage reads the live threats map.
type ThreatStorage interface {
	// ThreatReports returns every report, highest count first.
	ThreatReports(ctx context.Context) ([]domain.ThreatReport, error)
}

// JobStorage enqueues background jobs. Inside a transaction the job becomes
// visible only on commit.
type JobStorage interface {
	// AddJob returns false when a unique job with the same arguments already
	// exists.
	AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error)
}
