package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pratik-mahalle/userdata/internal/api/handlers"
	"github.com/pratik-mahalle/userdata/internal/api/router"
	"github.com/pratik-mahalle/userdata/internal/config"
	"github.com/pratik-mahalle/userdata/internal/pkg/logger"
	"github.com/pratik-mahalle/userdata/internal/pkg/metrics"
	"github.com/pratik-mahalle/userdata/internal/repository/memory"
)

func newServeCmd() *cobra.Command {
	var (
		addr     string
		dataFile string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a mock users endpoint from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appConfig.Server
			if addr != "" {
				cfg.Addr = addr
			}
			if dataFile != "" {
				cfg.DataFile = dataFile
			}

			repo, err := memory.LoadFile(cfg.DataFile)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", cfg.Addr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", cfg.Addr, err)
			}

			appLogger.WithFields(map[string]interface{}{
				"addr":  ln.Addr().String(),
				"data":  cfg.DataFile,
				"users": repo.Count(),
			}).Info("Mock users server listening")

			return serveUsers(ctx, ln, cfg, repo, appLogger, appMetrics)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from MOCK_SERVER_ADDR or :3000)")
	cmd.Flags().StringVar(&dataFile, "data", "", "users JSON file (default from MOCK_SERVER_DATA or data/users.json)")

	return cmd
}

// serveUsers serves the mock API on ln until ctx is cancelled, then drains
// in-flight requests for at most cfg.ShutdownTimeout.
func serveUsers(ctx context.Context, ln net.Listener, cfg config.ServerConfig, repo *memory.UserRepository, log *logger.Logger, m *metrics.Metrics) error {
	handler := router.New(cfg, log, m, &router.Handlers{
		Health: handlers.NewHealthHandler(repo),
		User:   handlers.NewUserHandler(repo, log),
	})

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down mock users server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
