package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mcoot/duelroom/internal/api"
	"github.com/mcoot/duelroom/internal/config"
	"github.com/mcoot/duelroom/internal/factory"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var configFile string

	cmd := &cobra.Command{
		Use:          "duelroom-server",
		Short:        "Run the duelroom game server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(); err != nil {
				return err
			}
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "Config file (default: config.yaml in . or ./config)")
	flags.String("host", "", "Listen host")
	flags.Int("port", 8080, "Listen port")
	flags.String("storage", config.StorageMemory, "Storage backend: memory, redis")
	flags.String("redis-url", "", "Redis URL when --storage=redis")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")

	bindings := map[string]string{
		"server.host":  "host",
		"server.port":  "port",
		"storage.type": "storage",
		"redis.url":    "redis-url",
		"log.level":    "log-level",
	}
	for key, flag := range bindings {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	factoryCfg, err := factory.FromConfig(cfg, logger)
	if err != nil {
		return err
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("close failed", slog.String("error", err.Error()))
		}
	}()

	if cfg.Janitor.Enabled {
		if err := app.Janitor.Start(); err != nil {
			return fmt.Errorf("start janitor: %w", err)
		}
	}

	server := api.NewServer(app.Router(), api.ServerConfig{
		Addr:            cfg.Addr(),
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, logger)
	server.OnShutdown(app.Gateway.Close)
	if err := server.Listen(); err != nil {
		return err
	}

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", factoryCfg.StorageType))

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			return err
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			return err
		}
	}

	logger.Info("server stopped")
	return nil
}
