package postgres_test

import (
	"context"
	"pen/pkg/domain"
	"pen/pkg/storage"
	"pen/pkg/storage/postgres"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func newMockPgSQL(t *testing.T) (*postgres.PgSQL, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return postgres.NewWithDB(db, nil), mock
}

func TestStoreUser_DuplicateEmail(t *testing.T) {
	pg, mock := newMockPgSQL(t)

	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"})

	_, err := pg.StoreUser(context.Background(), domain.User{Email: "awa@pen.cm", PasswordHash: []byte("h")})
	require.ErrorIs(t, err, storage.ErrDuplicate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserByEmail_Missing(t *testing.T) {
	pg, mock := newMockPgSQL(t)

	mock.ExpectQuery(`SELECT .* FROM "users" WHERE \("email" = 'ghost@pen.cm'\) LIMIT 1`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "email", "id", "password_hash"}))

	user, err := pg.UserByEmail(context.Background(), "ghost@pen.cm")
	require.NoError(t, err)
	require.Nil(t, user)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestThreatReports_OrderedByCount(t *testing.T) {
	pg, mock := newMockPgSQL(t)

	rows := sqlmock.NewRows([]string{"count", "city", "id", "kind", "pos_lat", "pos_left"}).
		AddRow(23, "Douala", 1, "phishing", 35, 48).
		AddRow(18, "Yaoundé", 2, "malware", 40, 52)
	mock.ExpectQuery(`SELECT .* FROM "threat_reports" ORDER BY "count" DESC, "id" ASC`).
		WillReturnRows(rows)

	reports, err := pg.ThreatReports(context.Background())
	require.NoError(t, err)
	require.Equal(t, []domain.ThreatReport{
		{ID: 1, City: "Douala", Kind: "phishing", Count: 23, Lat: 35, Left: 48},
		{ID: 2, City: "Yaoundé", Kind: "malware", Count: 18, Lat: 40, Left: 52},
	}, reports)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListContent_EscapesQuery(t *testing.T) {
	pg, mock := newMockPgSQL(t)

	mock.ExpectQuery(`FROM "contents" WHERE .*"kind" = 'tool'.*"title" ILIKE '%100.{1,2}%%'.*"description" ILIKE '%100.{1,2}%%'.* ORDER BY "created_at" DESC, "id" DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "description", "id", "is_premium", "kind", "resource_url", "title"}))

	items, err := pg.ListContent(context.Background(), storage.ContentFilter{Kind: domain.ContentKindTool, Query: " 100% "})
	require.NoError(t, err)
	require.Empty(t, items)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteContent_Missing(t *testing.T) {
	pg, mock := newMockPgSQL(t)
	id := domain.ContentID(uuid.New())

	mock.ExpectQuery(`DELETE FROM "contents" WHERE .* RETURNING`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "description", "id", "is_premium", "kind", "resource_url", "title"}))

	item, err := pg.DeleteContent(context.Background(), domain.ContentKindGuide, id)
	require.NoError(t, err)
	require.Nil(t, item)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPing_InsideTxIsRejected(t *testing.T) {
	pg, mock := newMockPgSQL(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	tx, err := pg.Begin(context.Background())
	require.NoError(t, err)

	require.ErrorIs(t, tx.(*postgres.PgSQL).Ping(context.Background()), storage.ErrAlreadyInTx)
	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}
