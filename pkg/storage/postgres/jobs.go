package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverdatabasesql"
	"github.com/riverqueue/river/rivertype"
)

// AddJob enqueues a river job on the current handle. Inside a transaction
// the job is inserted with InsertTx and shows up only once the surrounding
// transaction commits, so a checkout never schedules an activation for a
// rolled back profile lock.
func (p *PgSQL) AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error) {
	var (
		res *rivertype.JobInsertResult
		err error
	)

	switch db := p.DB.(type) {
	case *sql.Tx:
		var client *river.Client[*sql.Tx]
		client, err = river.NewClient[*sql.Tx](riverdatabasesql.New(nil), &river.Config{})
		if err != nil {
			return false, fmt.Errorf("could not create river insert client: %w", err)
		}
		res, err = client.InsertTx(ctx, db, args, opts)
	case *sql.DB:
		var client *river.Client[*sql.Tx]
		client, err = river.NewClient(riverdatabasesql.New(db), &river.Config{})
		if err != nil {
			return false, fmt.Errorf("could not create river insert client: %w", err)
		}
		res, err = client.Insert(ctx, args, opts)
	default:
		return false, fmt.Errorf("unsupported db handle %T", p.DB)
	}
	if err != nil {
		return false, fmt.Errorf("could not insert %s job: %w", args.Kind(), err)
	}

	return !res.UniqueSkippedAsDuplicate, nil
}
