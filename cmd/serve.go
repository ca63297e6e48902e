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

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/headcheck/headcheck/internal/api"
	"github.com/headcheck/headcheck/internal/notify"
	"github.com/headcheck/headcheck/internal/scanner"
	"github.com/headcheck/headcheck/internal/waitlist"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run headcheck as a REST API service",
	RunE: func(cmd *cobra.Command, args []string) error {
		userAgent, _ := cmd.Flags().GetString("user-agent")
		srvCfg := cliConfig.Server

		// Initialize structured logger
		logger, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer func() {
			if err := logger.Sync(); err != nil {
				fmt.Fprintf(os.Stderr, "failed to sync logger: %v\n", err)
			}
		}()

		sc := scanner.New(scanner.Config{
			Timeout:   time.Duration(cliConfig.Scan.TimeoutSecs) * time.Second,
			UserAgent: userAgent,
			Logger:    logger,
		})

		var store waitlist.Store
		if srvCfg.DBPath != "" {
			sqlStore, err := waitlist.NewSQLiteStore(srvCfg.DBPath)
			if err != nil {
				return fmt.Errorf("open waitlist store: %w", err)
			}
			defer func() {
				if err := sqlStore.Close(); err != nil {
					logger.Warn("failed to close waitlist store", zap.Error(err))
				}
			}()
			store = sqlStore
		}

		var notifier waitlist.Notifier
		if srvCfg.WebhookURL != "" {
			notifier = notify.NewWebhookNotifier(srvCfg.WebhookURL, logger)
		}

		signups := waitlist.NewService(store, notifier, logger)

		server := api.NewServer(api.Config{
			Scans:       sc,
			Waitlist:    signups,
			Health:      &healthAPIService{store: store},
			AuthToken:   srvCfg.AuthToken,
			Logger:      logger,
			CORSOrigins: srvCfg.CORSOrigins,
			RateLimit:   srvCfg.RateLimit,
			RateBurst:   srvCfg.RateBurst,
		})

		httpServer := &http.Server{
			Addr:         srvCfg.Addr,
			Handler:      server,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		}

		// Channel to listen for errors from the server
		serverErrors := make(chan error, 1)

		// Start server in a goroutine
		go func() {
			fmt.Printf("%s API server listening on %s\n", colorInfo("→"), srvCfg.Addr)
			fmt.Printf("%s Press Ctrl+C to gracefully shutdown\n", colorInfo("→"))
			serverErrors <- httpServer.ListenAndServe()
		}()

		// Channel to listen for interrupt signals
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Block until we receive a signal or an error
		select {
		case err := <-serverErrors:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server error: %w", err)
			}
		case sig := <-shutdown:
			fmt.Printf("\n%s Received signal %v, initiating graceful shutdown...\n", colorInfo("→"), sig)

			// Create context with timeout for shutdown
			ctx, cancel := context.WithTimeout(context.Background(), srvCfg.ShutdownTimeout)
			defer cancel()

			// Attempt graceful shutdown
			if err := httpServer.Shutdown(ctx); err != nil {
				// Force close if graceful shutdown fails
				if closeErr := httpServer.Close(); closeErr != nil {
					return fmt.Errorf("failed to gracefully shutdown server: %w (close error: %v)", err, closeErr)
				}
				return fmt.Errorf("failed to gracefully shutdown server: %w", err)
			}

			fmt.Printf("%s Server shutdown complete\n", colorInfo("✓"))
		}

		return nil
	},
}

func init() {
	flags := serveCmd.Flags()
	flags.StringVar(&cliConfig.Server.Addr, "addr", cliConfig.Server.Addr, "Address for the API server")
	flags.StringVar(&cliConfig.Server.AuthToken, "auth-token", "", "Optional shared secret for API requests")
	flags.DurationVar(&cliConfig.Server.ShutdownTimeout, "shutdown-timeout", cliConfig.Server.ShutdownTimeout, "Graceful shutdown timeout")
	flags.StringSliceVar(&cliConfig.Server.CORSOrigins, "cors-origins", []string{}, "Allowed CORS origins (empty = allow all)")
	flags.IntVar(&cliConfig.Server.RateLimit, "rate-limit", cliConfig.Server.RateLimit, "Rate limit per IP (requests/second, 0 = disabled)")
	flags.IntVar(&cliConfig.Server.RateBurst, "rate-burst", cliConfig.Server.RateBurst, "Rate limit burst size")
	flags.StringVar(&cliConfig.Server.DBPath, "db", "", "SQLite database path for waitlist signups (empty = no persistence)")
	flags.StringVar(&cliConfig.Server.WebhookURL, "webhook-url", "", "Webhook URL for signup notifications (empty = disabled)")
	flags.String("user-agent", "", "User-Agent header for outbound scan requests")
	rootCmd.AddCommand(serveCmd)
}

// healthAPIService reports liveness unconditionally and readiness based on the
// waitlist store when one is configured.
type healthAPIService struct {
	store waitlist.Store
}

func (s *healthAPIService) Check(ctx context.Context) error {
	return nil
}

func (s *healthAPIService) Ready(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	if _, err := s.store.CountSignups(ctx); err != nil {
		return fmt.Errorf("waitlist store not ready: %w", err)
	}
	return nil
}
