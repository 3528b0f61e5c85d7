package postgres_test

import (
	"context"
	"database/sql"
	"pen"
	"pen/pkg/storage/postgres"
	"testing"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testUser     = "pen"
	testPassword = "pen"
	testDB       = "pen_test"
)

// startPostgres runs a throwaway PostgreSQL and returns its host and port.
// The container is terminated when t ends.
func startPostgres(t *testing.T) (string, int) {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       testDB,
			},
			// the entrypoint restarts the server once after init
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err, "could not start postgres container")
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return host, port.Int()
}

// newTestStorage connects to a fresh database with the schema and the seed
// data applied.
func newTestStorage(t *testing.T) *postgres.PgSQL {
	t.Helper()
	ctx := context.Background()

	host, port := startPostgres(t)
	pg, err := postgres.New(ctx, postgres.Options{
		Username:           testUser,
		Password:           testPassword,
		Host:               host,
		Port:               port,
		Database:           testDB,
		SslMode:            "disable",
		ConnMaxLifetime:    time.Minute,
		ConnMaxIdleTime:    time.Minute,
		MaxOpenConnections: 4,
		MaxIdleConnections: 2,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Close() })

	require.NoError(t, pg.Ping(ctx))

	goose.SetBaseFS(pen.Migrations)
	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(pg.DB.(*sql.DB), "migrations"))

	return pg
}

func TestPgSQL_MigrationsRoundTrip(t *testing.T) {
	pg := newTestStorage(t)
	db := pg.DB.(*sql.DB)

	version, err := goose.GetDBVersion(db)
	require.NoError(t, err)
	require.EqualValues(t, 2, version)

	require.NoError(t, goose.DownTo(db, "migrations", 0))
	require.NoError(t, goose.Up(db, "migrations"))

	reports, err := pg.ThreatReports(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, reports)
}
