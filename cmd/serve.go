package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/seo-optimizer/contentquality/analyzer"
	"github.com/seo-optimizer/contentquality/api"
	"github.com/seo-optimizer/contentquality/config"
	"github.com/seo-optimizer/contentquality/logging"
	"github.com/seo-optimizer/contentquality/middleware"
)

const (
	shutdownTimeout = 10 * time.Second
	limiterIdle     = 10 * time.Minute
)

func newServeCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the audit HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}

	cmd.Flags().StringP("port", "p", "8082", "port to listen on")

	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	gin.SetMode(cfg.GinMode)

	a, err := analyzer.New(cfg.DataDir, cfg.AnalyzerOptions())
	if err != nil {
		return fmt.Errorf("failed to start analyzer: %w", err)
	}
	defer func() {
		if err := a.Shutdown(); err != nil {
			log.Error().Err(err).Msg("Failed to stop analyzer")
		}
	}()

	stats := logging.Initialize(cfg.DataDir)
	defer func() {
		if err := stats.Save(); err != nil {
			log.Error().Err(err).Msg("Failed to save statistics")
		}
	}()

	limiter := middleware.NewRateLimiter(cfg.RateLimit.Rate, cfg.RateLimit.Burst)
	go forgetIdleClients(ctx, limiter)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(a, stats, limiter),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", "http://localhost:"+cfg.Port).Str("data_dir", cfg.DataDir).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

func forgetIdleClients(ctx context.Context, limiter *middleware.RateLimiter) {
	ticker := time.NewTicker(limiterIdle)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := limiter.Forget(limiterIdle); removed > 0 {
				log.Debug().Int("clients", removed).Msg("Dropped idle rate limit buckets")
			}
		}
	}
}
