package main

import (
	"context"
	"fmt"
	"pen/internal/config"
	"pen/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// tokenCommand constructs the 'token' subcommand that signs a session token
// for an existing account without asking for its password.
func tokenCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Generates a session token for the given account email",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			email, _ := cmd.Flags().GetString("email")

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			user, err := strg.UserByEmail(ctx, email)
			if err != nil {
				logger.Fatal(ctx, "could not look up user", zap.Error(err))
			}
			if user == nil {
				logger.Fatal(ctx, "no account with this email", zap.String("email", email))
			}

			sess, err := newSessionStore(ctx, cfg, strg).Issue(*user)
			if err != nil {
				logger.Fatal(ctx, "could not sign session token", zap.Error(err))
			}

			fmt.Println(sess.Token) //nolint: forbidigo
		},
	}

	cmd.Flags().String("email", "", "Account email")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
