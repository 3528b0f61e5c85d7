package main

import (
	"context"
	"database/sql"
	"fmt"
	root "pen"
	"pen/internal/config"
	"pen/pkg/logger"

	"github.com/pressly/goose/v3"
	"github.com/riverqueue/river/riverdriver/riverdatabasesql"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateRiver brings the river queue tables to the latest version and
// returns the version reached.
func migrateRiver(ctx context.Context, db *sql.DB) (int, error) {
	migrator, err := rivermigrate.New(riverdatabasesql.New(db), nil)
	if err != nil {
		return 0, fmt.Errorf("could not create river queue migrator: %w", err)
	}

	migrations := migrator.AllVersions()
	latestVersion := migrations[len(migrations)-1].Version
	currentVersion := 0
	currentMigrations, err := migrator.ExistingVersions(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not get existing river queue migrations: %w", err)
	}
	if len(currentMigrations) > 0 {
		currentVersion = currentMigrations[len(currentMigrations)-1].Version
	}
	if latestVersion <= currentVersion {
		return currentVersion, nil
	}

	_, err = migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{
		TargetVersion: latestVersion,
	})
	if err != nil {
		return 0, fmt.Errorf("could not migrate river queue tables: %w", err)
	}

	return latestVersion, nil
}

// migrateCommand constructs the 'migrate' subcommand that applies the schema
// and seed migrations with goose, then the river queue migrations.
func migrateCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrates database to the latest version",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			skipRiver, _ := cmd.Flags().GetBool("skip-river")

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			db, ok := strg.DB.(*sql.DB)
			if !ok {
				logger.Fatal(ctx, "migrations need a plain database handle")
			}

			// goose migrations (schema and seed data)
			goose.SetBaseFS(root.Migrations)

			if err := goose.SetDialect("postgres"); err != nil {
				logger.Fatal(ctx, "could not set goose dialect to postgres", zap.Error(err))
			}
			if err := goose.Up(db, "migrations"); err != nil {
				logger.Fatal(ctx, "could not migrate pgsql", zap.Error(err))
			}
			version, err := goose.GetDBVersion(db)
			if err != nil {
				logger.Warn(ctx, "could not read schema version", zap.Error(err))
			}
			logger.Info(ctx, "schema migrated", zap.Int64("version", version))

			if skipRiver {
				return
			}

			riverVersion, err := migrateRiver(ctx, db)
			if err != nil {
				logger.Fatal(ctx, "could not migrate river queue", zap.Error(err))
			}
			logger.Info(ctx, "river queue migrated", zap.Int("version", riverVersion))
		},
	}

	cmd.Flags().Bool("skip-river", false, "Only apply the application migrations")

	return cmd
}
