package postgres

import (
	"context"
	"fmt"
	"pen/pkg/domain"

	"github.com/doug-martin/goqu/v9"
)

const usersTable = "users"

func (p *PgSQL) StoreUser(ctx context.Context, user domain.User) (*domain.User, error) {
	var row PgUser
	row.FromDomain(user)

	var stored PgUser
	if _, err := p.Builder.Insert(usersTable).
		Rows(row).
		Returning(&PgUser{}).
		Executor().ScanStructContext(ctx, &stored); err != nil {
		return nil, fmt.Errorf("could not store user into pg: %w", translate(err))
	}

	return stored.ToDomain(), nil
}

func (p *PgSQL) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var row PgUser
	found, err := p.Builder.From(usersTable).
		Where(goqu.I("email").Eq(email)).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch user by email: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}
