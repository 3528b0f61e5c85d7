package postgres

import (
	"context"
	"fmt"
	"pen/pkg/domain"
	"pen/pkg/storage"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const contentsTable = "contents"

func (p *PgSQL) ListContent(ctx context.Context, filter storage.ContentFilter) ([]domain.ContentItem, error) {
	w := []goqu.Expression{goqu.I("kind").Eq(string(filter.Kind))}
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + escapeLike(q) + "%"
		w = append(w, goqu.Or(
			goqu.I("title").ILike(pattern),
			goqu.I("description").ILike(pattern),
		))
	}

	var rows []PgContent
	if err := p.Builder.From(contentsTable).
		Where(w...).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not list %s items from pg: %w", filter.Kind, err)
	}

	out := make([]domain.ContentItem, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}

	return out, nil
}

func (p *PgSQL) ContentByID(ctx context.Context,
	kind domain.ContentKind,
	id domain.ContentID) (*domain.ContentItem, error) {
	var row PgContent
	found, err := p.Builder.From(contentsTable).
		Where(
			goqu.I("id").Eq(uuid.UUID(id)),
			goqu.I("kind").Eq(string(kind)),
		).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch %s by id: %w", kind, err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

func (p *PgSQL) StoreContent(ctx context.Context, item domain.ContentItem) (*domain.ContentItem, error) {
	var row PgContent
	row.FromDomain(item)

	rec := goqu.Record{
		"kind":         row.Kind,
		"title":        row.Title,
		"description":  row.Description,
		"resource_url": row.ResourceURL,
		"is_premium":   row.IsPremium,
	}
	if item.ID != (domain.ContentID{}) {
		rec["id"] = row.ID
	}

	var stored PgContent
	if _, err := p.Builder.Insert(contentsTable).
		Rows(rec).
		Returning(&PgContent{}).
		Executor().ScanStructContext(ctx, &stored); err != nil {
		return nil, fmt.Errorf("could not store %s into pg: %w", item.Kind, translate(err))
	}

	return stored.ToDomain(), nil
}

func (p *PgSQL) DeleteContent(ctx context.Context,
	kind domain.ContentKind,
	id domain.ContentID) (*domain.ContentItem, error) {
	var row PgContent
	found, err := p.Builder.Delete(contentsTable).
		Where(
			goqu.I("id").Eq(uuid.UUID(id)),
			goqu.I("kind").Eq(string(kind)),
		).
		Returning(&PgContent{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not delete %s in pg: %w", kind, err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`) //nolint: gochecknoglobals

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
