package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/san-kum/lorenz/internal/logging"
)

var (
	logLevel  string
	logFormat string

	logger = logging.NewNop()
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		logger.Debug("command failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lorenz",
		Short:         "Lorenz attractor simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			l, err := logging.New(cmd.ErrOrStderr(), level, logFormat)
			if err != nil {
				return err
			}
			logger = l
			slog.SetDefault(l)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text|json)")

	rootCmd.AddCommand(
		newRunCmd(),
		newPlotCmd(),
		newPlayCmd(),
		newExportCmd(),
		newSweepCmd(),
		newLyapunovCmd(),
		newSpectrumCmd(),
		newBifurcationCmd(),
		newPresetsCmd(),
		newBenchCmd(),
	)
	return rootCmd
}

func usageError(format string, args ...any) error {
	return fmt.Errorf("usage: "+format, args...)
}
