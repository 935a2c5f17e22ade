// Package cli defines the cgtop command line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/cgtop/internal/app"
	"github.com/rileyhilliard/cgtop/internal/config"
	"github.com/rileyhilliard/cgtop/internal/logger"
)

// Root command flags
var (
	pathFlag     string
	intervalFlag time.Duration
	mockFlag     bool
	verboseFlag  bool
)

// rootCmd is the top-level command. cgtop is a single-purpose tool, so
// running it with no subcommand starts the monitor.
var rootCmd = &cobra.Command{
	Use:   "cgtop",
	Short: "Real-time terminal monitor for cgroup v2 hierarchies",
	Long: `cgtop shows a live, navigable tree of a cgroup v2 hierarchy with
per-group memory, CPU, IO, and pid usage.

When the hierarchy cannot be read (no cgroup v2, a container without the
mount, macOS), cgtop switches to deterministic synthetic data so the UI
stays explorable. Set CGTOP_USE_MOCK=1 to force that mode.

Examples:
  cgtop
  cgtop --path /sys/fs/cgroup/user.slice
  cgtop --interval 1s --verbose`,
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		return monitorCommand()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&pathFlag, "path", "p", "",
		"cgroup hierarchy root to monitor (default /sys/fs/cgroup)")
	rootCmd.PersistentFlags().DurationVarP(&intervalFlag, "interval", "i", 0,
		"collection interval (default 2s)")
	rootCmd.PersistentFlags().BoolVar(&mockFlag, "mock", false,
		"use synthetic data instead of reading the hierarchy")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"enable debug logging")
}

// monitorCommand resolves configuration, validates the root, and runs the
// monitor until the user quits or a signal arrives.
func monitorCommand() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Flags override environment and defaults.
	if pathFlag != "" {
		cfg.Root = pathFlag
	}
	if intervalFlag > 0 {
		cfg.CollectInterval = intervalFlag
	}
	if mockFlag {
		cfg.ForceFallback = true
	}
	if verboseFlag {
		cfg.Verbose = true
	}

	// A root the user asked for but that does not exist is a fatal typo,
	// not a fallback case. Runtime disappearance is handled gracefully;
	// startup absence is not. Skipped in mock mode, which never reads it.
	if !cfg.ForceFallback {
		if _, err := os.Stat(cfg.Root); os.IsNotExist(err) {
			return fmt.Errorf("cgroup root path does not exist: %s", cfg.Root)
		}
	}

	// A monitor without a log file is still a monitor; fall back to a
	// no-op logger rather than refusing to start.
	log, logPath, err := logger.NewFileLogger(cfg.Verbose)
	if err != nil {
		log = logger.Noop()
	} else {
		log.Debug("logging to %s", logPath)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return app.New(cfg, log).Run(ctx)
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
