package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/marmos91/sharefs/internal/logger"
	"github.com/marmos91/sharefs/internal/telemetry"
	"github.com/marmos91/sharefs/pkg/api"
	"github.com/marmos91/sharefs/pkg/config"

	// Import prometheus metrics to register init() functions
	_ "github.com/marmos91/sharefs/pkg/metrics/prometheus"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the share over HTTP",
	Long: `Connect to the share and serve it through the HTTP gateway until
interrupted. When metrics are enabled a Prometheus endpoint is served on
its own port.

The configuration file is watched; changes to logging.level and
logging.format apply without a restart. Other settings need one.

Examples:
  sharefs serve --share //fileserver/docs --user alice
  SHAREFS_API_PORT=9000 sharefs serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !cfg.API.Enabled {
		return errors.New("the HTTP gateway is disabled (api.enabled: false)")
	}
	if err := promptPassword(&cfg.Share); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Init(ctx, telemetryConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			logger.Error("telemetry shutdown error", logger.Err(err))
		}
	}()

	logger.Info("sharefs starting", "version", Version, "source", configSource())
	if telemetry.IsEnabled() {
		logger.Info("Telemetry enabled", "endpoint", cfg.Telemetry.Endpoint, "sample_rate", cfg.Telemetry.SampleRate)
	}

	metricsResult := config.InitializeMetrics(cfg)

	conn, err := connectShare(ctx, cfg, metricsResult.Share)
	if err != nil {
		return err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logger.Warn("share close failed", logger.Err(err))
		}
	}()
	logger.Info("share connected", logger.Share(conn.Root()), logger.Username(cfg.Share.Principal()))

	apiServer, err := api.NewServer(cfg.API.ServerConfig(), conn, metricsResult.API)
	if err != nil {
		return fmt.Errorf("failed to create API server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return apiServer.Start(gctx) })
	if metricsResult.Server != nil {
		g.Go(func() error { return metricsResult.Server.Start(gctx) })
	} else {
		logger.Info("Metrics collection disabled")
	}
	if path := configSource(); path != "" {
		g.Go(func() error {
			return config.Watch(gctx, path, 0, applyReload)
		})
	}

	logger.Info("Server is running. Press Ctrl+C to stop.")
	return waitWithTimeout(ctx, g, cfg.ShutdownTimeout)
}

// waitWithTimeout waits for g. Once ctx is done the group gets timeout to
// wind down before waitWithTimeout gives up on it.
func waitWithTimeout(ctx context.Context, g *errgroup.Group, timeout time.Duration) error {
	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		logger.Info("Shutdown signal received, initiating graceful shutdown")
	}

	select {
	case err := <-done:
		if err == nil {
			logger.Info("Server stopped gracefully")
		}
		return err
	case <-time.After(timeout):
		return fmt.Errorf("shutdown did not complete within %s", timeout)
	}
}

// applyReload applies the hot-reloadable settings of a changed config.
func applyReload(cfg *config.Config) {
	if Flags.Verbose {
		cfg.Logging.Level = "DEBUG"
	}
	logger.SetLevel(cfg.Logging.Level)
	logger.SetFormat(cfg.Logging.Format)
	logger.Info("configuration reloaded", "level", cfg.Logging.Level, "format", cfg.Logging.Format)
}

// configSource returns the config file in use, or "" when running on
// defaults and environment only.
func configSource() string {
	if Flags.ConfigFile != "" {
		return Flags.ConfigFile
	}
	if config.DefaultConfigExists() {
		return config.GetDefaultConfigPath()
	}
	return ""
}
