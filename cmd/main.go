package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"github.com/okian/iplboard/internal/adapters/http/api"
	"github.com/okian/iplboard/internal/adapters/http/site"
	"github.com/okian/iplboard/internal/adapters/http/swagger"
	service "github.com/okian/iplboard/internal/app"
	"github.com/okian/iplboard/internal/config"
	"github.com/okian/iplboard/internal/domain/venue"
	"github.com/okian/iplboard/pkg/logger"
	"github.com/okian/iplboard/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

// defaultExportPath is where export writes without --out.
const defaultExportPath = "ipl_analytics.xlsx"

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "iplboard",
		Short:         "IPL analytics dashboard",
		Long:          `Loads IPL match and delivery records and serves aggregate charts, a JSON API and an XLSX export.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv(config.EnvConfigPath), "YAML config file")

	rootCmd.AddCommand(createServeCmd(&configPath))
	rootCmd.AddCommand(createExportCmd(&configPath))
	return rootCmd
}

// createServeCmd creates the serve subcommand, also the root default.
func createServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard, API and websocket channel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), *configPath)
		},
	}
}

// createExportCmd creates the export subcommand.
func createExportCmd(configPath *string) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every view to an XLSX workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd.Context(), *configPath, out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", defaultExportPath, "output file")
	return cmd
}

// setup loads configuration (defaults -> optional file -> env) and initializes logging.
func setup(ctx context.Context, configPath string) (*config.Config, logger.Logger, error) {
	cfg, err := config.LoadFile(ctx, configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.InitWith(logger.Options{Format: cfg.LogFormat}); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return nil, nil, fmt.Errorf("failed to set log level: %w", err)
	}
	return cfg, logger.Get(), nil
}

// startService builds and starts the service from configuration.
func startService(ctx context.Context, cfg *config.Config, log logger.Logger) (*service.Service, error) {
	mapping := venue.Default()
	if cfg.VenueMappingPath != "" {
		m, err := venue.LoadFile(ctx, cfg.VenueMappingPath)
		if err != nil {
			return nil, err
		}
		mapping = m
	}

	metrics.Configure(
		metrics.WithRefreshInterval(cfg.MetricsRefreshInterval),
		metrics.WithConstLabels(map[string]string{"venue_mapping": mapping.Version()}),
	)

	svc := service.New(
		service.WithLogger(log),
		service.WithDataPaths(cfg.MatchesPath, cfg.DeliveriesPath),
		service.WithVenueMapping(mapping),
		service.WithSeasonRange(cfg.SeasonFrom, cfg.SeasonTo),
		service.WithTopN(cfg.TopN),
		service.WithVenueTopN(cfg.VenueTopN),
		service.WithChartSize(cfg.ChartWidth, cfg.ChartHeight),
	)
	if err := svc.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start service: %w", err)
	}
	return svc, nil
}

// newRouter wires the page, the API and the docs onto one router.
func newRouter(ctx context.Context, cfg *config.Config, svc *service.Service, log logger.Logger) (*mux.Router, error) {
	page, err := site.New(svc,
		site.WithLogoPath(cfg.LogoPath),
		site.WithSeasonRange(cfg.SeasonFrom, cfg.SeasonTo),
		site.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter()
	router.Use(api.RequestIDMiddleware)

	swagger.Register(ctx, router)

	apiServer := api.NewServer(svc, svc,
		api.WithMaxTopLimit(cfg.MaxTopLimit),
		api.WithDefaultTopLimit(cfg.TopN),
		api.WithSelectors(func() api.Selector { return service.NewSession(svc) }),
		api.WithFragments(page),
		api.WithLogger(log),
	)
	apiServer.Register(ctx, router)

	page.Register(ctx, router)
	return router, nil
}

func runServe(ctx context.Context, configPath string) error {
	cfg, log, err := setup(ctx, configPath)
	if err != nil {
		return err
	}

	svc, err := startService(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer svc.Stop()

	router, err := newRouter(ctx, cfg, svc, log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Wait for shutdown signal or a listener failure.
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
	}
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
	return nil
}

func runExport(ctx context.Context, configPath, out string) error {
	cfg, log, err := setup(ctx, configPath)
	if err != nil {
		return err
	}

	svc, err := startService(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer svc.Stop()

	if err := writeFile(out, func(w io.Writer) error { return svc.Export(ctx, w) }); err != nil {
		return err
	}

	log.Info(ctx, "export written", logger.String("path", out))
	return nil
}

// writeFile creates path and fills it with write. A failed write removes the
// partial file.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
