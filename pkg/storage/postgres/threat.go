package postgres

import (
	"context"
	"fmt"
	"pen/pkg/domain"

	"github.com/doug-martin/goqu/v9"
)

const threatReportsTable = "threat_reports"

func (p *PgSQL) ThreatReports(ctx context.Context) ([]domain.ThreatReport, error) {
	var rows []PgThreatReport
	if err := p.Builder.From(threatReportsTable).
		Order(goqu.I("count").Desc(), goqu.I("id").Asc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not list threat reports from pg: %w", err)
	}

	out := make([]domain.ThreatReport, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}

	return out, nil
}
