package main

import (
	"context"
	"fmt"
	"pen/internal/access"
	"pen/internal/config"
	"pen/internal/session"
	"pen/pkg/logger"
	"pen/pkg/storage"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// offlineRevocations serves CLI commands, which never resolve tokens.
type offlineRevocations struct{}

func (offlineRevocations) Revoke(context.Context, string, time.Time) error { return nil }

func (offlineRevocations) IsRevoked(context.Context, string) (bool, error) { return false, nil }

func newSessionStore(ctx context.Context, cfg *config.Config, users storage.UserStorage) session.Store {
	sessions, err := session.New(session.NewOptions(cfg), users, offlineRevocations{}, access.New(access.NewOptions(cfg)))
	if err != nil {
		logger.Fatal(ctx, "could not create session store", zap.Error(err))
	}

	return sessions
}

// userCommand groups account management subcommands.
func userCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manages user accounts",
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Creates an account with the given email and password",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			user, err := newSessionStore(ctx, cfg, strg).CreateUser(ctx, email, password)
			if err != nil {
				logger.Fatal(ctx, "could not create user", zap.Error(err))
			}

			fmt.Println(user.ID) //nolint: forbidigo
		},
	}
	create.Flags().String("email", "", "Account email")
	create.Flags().String("password", "", "Account password")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("password")

	cmd.AddCommand(create)

	return cmd
}
