package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/msomdec/lamenar/internal/handler"
	"github.com/msomdec/lamenar/internal/logger"
	"github.com/msomdec/lamenar/internal/service"
)

// serveCommand constructs the 'serve' subcommand that migrates the database
// and runs the HTTP API until interrupted.
func serveCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the HTTP API server",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			db, closeDB := a.openDatabase(ctx)
			defer closeDB()

			auth := a.authService(ctx, db)
			limiter := service.NewTokenBucket(ctx, a.cfg.RateLimit.PerSecond, a.cfg.RateLimit.Burst)

			cfg := a.cfg
			srv := &http.Server{
				Addr: cfg.HTTP.Addr,
				Handler: handler.NewHandler(auth, limiter, handler.Options{
					MetricsPath:       cfg.HTTP.MetricsPath,
					CORSOrigins:       cfg.CORSOriginList(),
					CookieSecure:      cfg.HTTP.CookieSecure,
					TrustProxyHeaders: cfg.HTTP.TrustProxyHeaders,
				}),
				ReadTimeout:       cfg.HTTP.ReadTimeout,
				ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
				WriteTimeout:      cfg.HTTP.WriteTimeout,
				IdleTimeout:       cfg.HTTP.IdleTimeout,
				MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
			}

			go func() {
				logger.Info(ctx, "starting webserver...", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error(ctx, "could not start webserver", zap.Error(err))
					stop()
				}
			}()

			// wait for interrupt
			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			logger.Info(shutdownCtx, "stopping webserver...")
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error(shutdownCtx, "could not stop webserver", zap.Error(err))
			}
		},
	}

	return cmd
}
