// Package main provides the CLI entrypoint for the Lamenar backend.
// It wires subcommands (serve, migrate, token), loads configuration, and
// initializes logging.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/msomdec/lamenar/internal/config"
	"github.com/msomdec/lamenar/internal/logger"
	"github.com/msomdec/lamenar/internal/repository/sqlite"
	"github.com/msomdec/lamenar/internal/service"
)

// app carries state shared by subcommands once the root command has loaded it.
type app struct {
	cfg *config.Config
}

// openDatabase opens and migrates the sqlite database and returns it along
// with a cleanup function that closes it.
func (a *app) openDatabase(ctx context.Context) (*sqlite.DB, func()) {
	db, err := sqlite.New(a.cfg.Database.Path)
	if err != nil {
		logger.Fatal(ctx, "could not open database", zap.Error(err), zap.String("path", a.cfg.Database.Path))
	}

	if err := db.Migrate(ctx); err != nil {
		logger.Fatal(ctx, "could not run migrations", zap.Error(err))
	}

	return db, func() {
		logger.Info(ctx, "closing database...")
		if err := db.Close(); err != nil {
			logger.Warn(ctx, "could not close database", zap.Error(err))
		}
	}
}

// authService builds the AuthService from configuration.
func (a *app) authService(ctx context.Context, db *sqlite.DB) *service.AuthService {
	auth, err := service.NewAuthService(db.Users(), service.AuthOptions{
		JWTSecret:  a.cfg.JWT.Secret,
		Algorithm:  a.cfg.JWT.Algorithm,
		TokenTTL:   a.cfg.AccessTokenTTL(),
		BcryptCost: a.cfg.BcryptCost,
	})
	if err != nil {
		logger.Fatal(ctx, "could not create auth service", zap.Error(err))
	}

	return auth
}

// newRootCommand builds the cobra command tree. Configuration is loaded and
// logging set up before any subcommand runs.
func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lamenar",
		Short:         "Lamenar backend API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("could not load config: %w", err)
			}
			if err := logger.Setup(cfg.Environment); err != nil {
				return fmt.Errorf("could not set up logger: %w", err)
			}
			a.cfg = cfg

			return nil
		},
	}
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	rootCmd.AddCommand(
		serveCommand(a),
		migrateCommand(a),
		tokenCommand(a),
	)

	return rootCmd
}

func main() {
	rootCmd := newRootCommand(&app{})

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			logger.Sync()

			panic(p)
		}
	}()

	err := rootCmd.Execute()
	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1) //nolint: gocritic
	}
}
