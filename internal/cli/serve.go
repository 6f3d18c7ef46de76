package cli

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eshaffer321/cart-bundle-transforms/internal/api"
	"github.com/eshaffer321/cart-bundle-transforms/internal/infrastructure/logging"
	"github.com/eshaffer321/cart-bundle-transforms/internal/transform"
)

func newServeCommand(global *GlobalFlags) *cobra.Command {
	var flags ServeFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the transforms over HTTP for local preview.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunServe(cmd.Context(), global, &flags)
		},
	}

	cmd.Flags().IntVarP(&flags.Port, "port", "p", 0, "Port to listen on (default: server.port from config)")
	return cmd
}

// RunServe runs the preview server until SIGINT, SIGTERM or ctx is done.
func RunServe(ctx context.Context, global *GlobalFlags, flags *ServeFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := global.loadConfig()
	if err != nil {
		return err
	}
	logger := logging.NewLoggerWithSystem(global.loggingConfig(cfg), "api")

	registry, err := transform.NewDefaultRegistry(cfg.Transforms, logger)
	if err != nil {
		return err
	}

	apiCfg := api.ConfigFrom(cfg.Server)
	if flags.Port > 0 {
		apiCfg.Port = flags.Port
	}

	server := api.NewServer(apiCfg, registry, logger)

	// Handle graceful shutdown
	done := make(chan struct{})
	quit, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		defer close(done)
		<-quit.Done()
		logger.Info("received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", slog.Any("error", err))
		}
	}()

	// Start server (blocks until shutdown)
	if err := server.Start(); err != nil {
		stop()
		<-done
		return err
	}

	<-done
	logger.Info("server stopped")
	return nil
}
