package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	clientcmd "github.com/sifthq/minthook/internal/cmd/client"
	serverrun "github.com/sifthq/minthook/internal/cmd/server"
	cfgpkg "github.com/sifthq/minthook/internal/config"
	pebblestore "github.com/sifthq/minthook/internal/storage/pebble"
	logpkg "github.com/sifthq/minthook/pkg/log"
)

func main() {
	// Respect MINTHOOK_LOG_LEVEL for CLI output as well as server start.
	level := os.Getenv("MINTHOOK_LOG_LEVEL")
	parsed, err := logpkg.ParseLevel(level)
	if err != nil {
		parsed = logpkg.InfoLevel
	}
	logger := logpkg.NewLogger(logpkg.WithLevel(parsed))
	logpkg.RedirectStdLog(logger)

	rootCmd := &cobra.Command{
		Use:   "minthook",
		Short: "Webhook ingestion and token analysis runtime",
		Long:  "minthook ingests provider webhooks, deduplicates token events, and drives security analysis through a worker pool. This CLI manages the server and basic operations.",
	}

	serverCmd := &cobra.Command{Use: "server", Short: "Server commands"}
	serverStartCmd := &cobra.Command{
		Use:     "start",
		Short:   "Start the minthook server",
		Aliases: []string{"run"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			dataDir, _ := cmd.Flags().GetString("data-dir")
			httpAddr, _ := cmd.Flags().GetString("http")
			configPath, _ := cmd.Flags().GetString("config")
			fsyncMode, _ := cmd.Flags().GetString("fsync")
			workers, _ := cmd.Flags().GetInt("workers")
			analyzerURL, _ := cmd.Flags().GetString("analyzer-url")
			filter, _ := cmd.Flags().GetString("filter")
			logLevel, _ := cmd.Flags().GetString("log-level")
			logFormat, _ := cmd.Flags().GetString("log-format")

			mode := pebblestore.FsyncModeAlways
			switch fsyncMode {
			case "never":
				mode = pebblestore.FsyncModeNever
			case "always":
				mode = pebblestore.FsyncModeAlways
			default:
				return fmt.Errorf("invalid --fsync; use always|never")
			}

			cfg, err := cfgpkg.Load(configPath)
			if err != nil {
				return err
			}
			cfgpkg.FromEnv(&cfg)
			if workers > 0 {
				cfg.Workers = workers
			}
			if analyzerURL != "" {
				cfg.Analyzer.URL = analyzerURL
			}
			if filter != "" {
				cfg.Filter = filter
			}
			if logLevel != "" {
				_ = os.Setenv("MINTHOOK_LOG_LEVEL", logLevel)
			}
			if logFormat != "" {
				_ = os.Setenv("MINTHOOK_LOG_FORMAT", logFormat)
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := serverrun.Run(ctx, serverrun.Options{
				DataDir:  dataDir,
				HTTPAddr: httpAddr,
				Fsync:    mode,
				Config:   cfg,
			}); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			// brief delay to allow logs flush
			time.Sleep(100 * time.Millisecond)
			return nil
		},
	}
	serverStartCmd.Flags().String("data-dir", "", "Data directory (if not specified, uses OS-specific application data directory)")
	serverStartCmd.Flags().String("http", ":8080", "HTTP listen address")
	serverStartCmd.Flags().String("config", "", "Config file (JSON or YAML)")
	serverStartCmd.Flags().String("fsync", "always", "Fsync mode: always|never")
	serverStartCmd.Flags().Int("workers", 0, "Worker count (overrides config)")
	serverStartCmd.Flags().String("analyzer-url", "", "Security analyzer base URL (overrides config)")
	serverStartCmd.Flags().String("filter", "", "CEL ingest filter expression (overrides config)")
	serverStartCmd.Flags().String("log-level", os.Getenv("MINTHOOK_LOG_LEVEL"), "Log level: debug|info|warn|error")
	serverStartCmd.Flags().String("log-format", os.Getenv("MINTHOOK_LOG_FORMAT"), "Log format: text|json (default text)")
	serverCmd.AddCommand(serverStartCmd)
	rootCmd.AddCommand(serverCmd)

	// client commands (internal/cmd/client)
	rootCmd.AddCommand(clientcmd.NewWebhookCommand(clientcmd.BaseURLFromEnv))
	rootCmd.AddCommand(clientcmd.NewStatsCommand(clientcmd.BaseURLFromEnv))
	rootCmd.AddCommand(clientcmd.NewStatusCommand(clientcmd.BaseURLFromEnv))
	rootCmd.AddCommand(clientcmd.NewEventsCommand(clientcmd.BaseURLFromEnv))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
