package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/msomdec/lamenar/internal/logger"
)

// tokenCommand constructs the 'token' subcommand that issues an access token
// for an existing user.
func tokenCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Generates an access token for the user with the given email",
		Run: func(cmd *cobra.Command, args []string) {
			email, _ := cmd.Flags().GetString("email")
			ttl, _ := cmd.Flags().GetDuration("ttl")

			ctx := context.Background()

			db, closeDB := a.openDatabase(ctx)
			defer closeDB()

			auth := a.authService(ctx, db)

			user, err := auth.GetUserByEmail(ctx, email)
			if err != nil {
				logger.Fatal(ctx, "could not find user", zap.Error(err), zap.String("email", email))
			}

			if ttl <= 0 {
				ttl = auth.TokenTTL()
			}
			signed, err := auth.IssueToken(user, ttl)
			if err != nil {
				logger.Fatal(ctx, "could not sign JWT", zap.Error(err))
			}

			fmt.Fprintln(cmd.OutOrStdout(), signed)
		},
	}

	cmd.Flags().String("email", "", "Email of the user to issue the token for")
	cmd.Flags().Duration("ttl", 0, "Token TTL (e.g., 30s, 15m, 1h); defaults to the configured expiry")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
