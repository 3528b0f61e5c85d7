package postgres

import (
	"context"
	"fmt"
	"pen/pkg/domain"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
)

const profilesTable = "profiles"

func (p *PgSQL) Subscription(ctx context.Context, userID domain.UserID) (*domain.Subscription, error) {
	var row PgProfile
	found, err := p.Builder.From(profilesTable).
		Where(goqu.I("id").Eq(uuid.UUID(userID))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch profile: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// LockSubscription inserts a default profile when missing, then selects it
// FOR UPDATE. The lock is only meaningful inside a transaction.
func (p *PgSQL) LockSubscription(ctx context.Context, userID domain.UserID) (*domain.Subscription, error) {
	if _, err := p.Builder.Insert(profilesTable).
		Rows(goqu.Record{"id": uuid.UUID(userID)}).
		OnConflict(goqu.DoNothing()).
		Executor().ExecContext(ctx); err != nil {
		return nil, fmt.Errorf("could not ensure profile: %w", translate(err))
	}

	var row PgProfile
	found, err := p.Builder.From(profilesTable).
		Where(goqu.I("id").Eq(uuid.UUID(userID))).
		ForUpdate(exp.Wait).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not lock profile: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("profile %s vanished while locking", userID)
	}

	return row.ToDomain(), nil
}

func (p *PgSQL) SetSubscribed(ctx context.Context,
	userID domain.UserID,
	subscribed bool) (*domain.Subscription, error) {
	var row PgProfile
	if _, err := p.Builder.Insert(profilesTable).
		Rows(goqu.Record{"id": uuid.UUID(userID), "is_subscribed": subscribed}).
		OnConflict(goqu.DoUpdate("id", goqu.Record{
			"is_subscribed": goqu.L("EXCLUDED.is_subscribed"),
			"updated_at":    goqu.L("CURRENT_TIMESTAMP"),
		})).
		Returning(&PgProfile{}).
		Executor().ScanStructContext(ctx, &row); err != nil {
		return nil, fmt.Errorf("could not update profile: %w", translate(err))
	}

	return row.ToDomain(), nil
}
