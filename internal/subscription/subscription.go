// Package subscription runs the simulated premium checkout. A checkout locks
// the profile and schedules an activation job in the same transaction; the
// job flips the premium flag once the payment delay has elapsed.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"pen/internal/config"
	"pen/pkg/domain"
	"pen/pkg/logger"
	"pen/pkg/serrors"
	"pen/pkg/storage"
	"time"

	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// AlreadySubscribedNotice is shown when a subscriber opens the checkout.
const AlreadySubscribedNotice = "Déjà abonné"

// Options configure the simulated payment.
type Options struct {
	// PaymentDelay is how far in the future the activation is scheduled.
	PaymentDelay time.Duration
	// MaxAttempts bounds the retries of an activation job.
	MaxAttempts int
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		PaymentDelay: cfg.Subscription.PaymentDelay,
		MaxAttempts:  cfg.Subscription.MaxAttempts,
	}
}

type service struct {
	options Options
	storage storage.Storage
	now     func() time.Time
}

func (s *service) Get(ctx context.Context, userID domain.UserID) (domain.Subscription, error) {
	sub, err := s.storage.Subscription(ctx, userID)
	if err != nil {
		return domain.Subscription{OwnerID: userID}, serrors.Wrap(serrors.ErrUnavailable, err, "could not read subscription")
	}
	if sub == nil {
		return domain.Subscription{OwnerID: userID}, nil
	}

	return *sub, nil
}

func (s *service) Checkout(ctx context.Context, identity domain.Identity) (*Checkout, error) {
	switch {
	case identity.IsPending():
		return nil, serrors.With(serrors.ErrUnavailable, "identity is not resolved yet")
	case !identity.IsAuthenticated():
		return nil, serrors.With(serrors.ErrUnauthorized, "sign in to subscribe")
	}

	activatesAt := s.now().Add(s.options.PaymentDelay).UTC()
	err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		sub, err := tx.LockSubscription(ctx, identity.ID)
		if err != nil {
			return fmt.Errorf("could not lock subscription: %w", err)
		}
		if sub.IsSubscribed {
			return serrors.With(serrors.ErrConflict, AlreadySubscribedNotice)
		}

		args := ActivateArgs{UserID: uuid.UUID(identity.ID), maxAttempts: s.options.MaxAttempts}
		opts := args.InsertOpts()
		opts.ScheduledAt = activatesAt

		added, err := tx.AddJob(ctx, args, &opts)
		if err != nil {
			return fmt.Errorf("could not schedule activation: %w", err)
		}
		if !added {
			// a previous checkout is still being processed
			logger.Info(ctx, "activation already scheduled", zap.Stringer("userId", identity.ID))
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, serrors.ErrConflict) {
			return nil, err
		}

		return nil, serrors.Wrap(serrors.ErrUnavailable, err, "could not start checkout")
	}

	return &Checkout{
		Status:      CheckoutStatusPending,
		ActivatesAt: activatesAt,
		Redirect:    domain.DashboardPath,
	}, nil
}

func (s *service) Activate(ctx context.Context, userID domain.UserID) (domain.Subscription, error) {
	sub, err := s.storage.SetSubscribed(ctx, userID, true)
	if err != nil {
		if errors.Is(err, storage.ErrMissingReference) {
			return domain.Subscription{}, serrors.Wrap(serrors.ErrNotFound, err, "user %s does not exist", userID)
		}

		return domain.Subscription{}, fmt.Errorf("could not activate subscription: %w", err)
	}

	return *sub, nil
}

// New creates a Service backed by st.
func New(options Options, st storage.Storage) Service {
	return &service{
		options: options,
		storage: st,
		now:     time.Now,
	}
}

var _ river.JobArgsWithInsertOpts = ActivateArgs{}
