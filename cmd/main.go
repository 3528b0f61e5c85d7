// Package main provides the CLI entrypoint of the PEN backend.
// It wires subcommands (serve, migrate, user, token), loads configuration, and initializes logging.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"pen/internal/config"
	"pen/pkg/logger"
	"pen/pkg/storage/postgres"
	"pen/pkg/storage/redisstore"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// getPostgres creates a PostgreSQL client using configuration values and returns it
// along with a cleanup function to close the connection pool.
func getPostgres(ctx context.Context, cfg *config.Config) (*postgres.PgSQL, func()) {
	pgsql, err := postgres.New(ctx, postgres.Options{
		Username:           cfg.Database.Username,
		Password:           cfg.Database.Password,
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		Database:           cfg.Database.DatabaseName,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime:    cfg.Database.ConnMaxIdleTime,
		MaxOpenConnections: cfg.Database.MaxOpenConnections,
		MaxIdleConnections: cfg.Database.MaxIdleConnections,
		SslMode:            cfg.Database.SslMode,
	})
	if err != nil {
		logger.Fatal(ctx, "could not create postgres storage", zap.Error(err))
	}

	return pgsql, func() {
		logger.Info(ctx, "closing postgres client...")
		if err = pgsql.Close(); err != nil {
			logger.Warn(ctx, "could not close postgres connection", zap.Error(err))
		}
	}
}

// getRedis connects to the scan history and revocation store.
func getRedis(ctx context.Context, cfg *config.Config) (*redisstore.Redis, func()) {
	rds, err := redisstore.New(ctx, redisstore.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		KeyPrefix:    cfg.Redis.KeyPrefix,
		HistoryTTL:   cfg.History.TTL,
	})
	if err != nil {
		logger.Fatal(ctx, "could not create redis storage", zap.Error(err))
	}

	return rds, func() {
		logger.Info(ctx, "closing redis client...")
		if err = rds.Close(); err != nil {
			logger.Warn(ctx, "could not close redis connection", zap.Error(err))
		}
	}
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use:   "pen",
		Short: "Backend of the PEN cybersecurity awareness site",
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	configPath := flags.String("c", "config.yml", "The config file path")
	_ = flags.Parse(configArgs(os.Args[1:]))

	// a missing .env file is fine, real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		log.Println("loaded .env")
	}

	log.Println("loading config ...")
	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal("could not load config file", err)
	}

	logger.Setup(cfg.Environment)

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			logger.Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		serveCommand(cfg),
		migrateCommand(cfg),
		userCommand(cfg),
		tokenCommand(cfg),
	)

	err = rootCmd.Execute()
	logger.Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}

// loadConfig reads path when it exists and falls back to defaults and
// environment variables otherwise.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); err != nil {
		return config.LoadEnv()
	}

	return config.Load(path)
}

// configArgs keeps only the -c/--config flag and its value so the standard
// flag package does not choke on subcommand flags.
func configArgs(args []string) []string {
	for i, arg := range args {
		switch {
		case arg == "-c" || arg == "--config" || arg == "-config":
			if i+1 < len(args) {
				return []string{"-c", args[i+1]}
			}
		case len(arg) > 3 && arg[:3] == "-c=":
			return []string{arg}
		case len(arg) > 9 && arg[:9] == "--config=":
			return []string{"-c=" + arg[9:]}
		}
	}

	return nil
}
