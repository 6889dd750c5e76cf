package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/berrythewa/clipdeck/internal/daemon"
	"github.com/berrythewa/clipdeck/internal/inject"
	"github.com/berrythewa/clipdeck/internal/platform"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRunCmd() *cobra.Command {
	var duration time.Duration

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the clipboard daemon in the foreground",
		Long: `Run the clipboard daemon which watches the clipboard, keeps the
history in memory and serves the other commands over a local socket.

You can specify a duration for testing purposes, otherwise it will run
until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
				logger.Info("Running for test duration", zap.Duration("duration", duration))
			}

			chain, err := inject.New(cfg.Inject, logger.Named("inject"))
			if err != nil {
				return err
			}
			sys := platform.NewClipboard(logger)

			return daemon.New(cfg, sys, chain, logger).Run(ctx)
		},
	}

	cmd.Flags().DurationVar(&duration, "duration", 0, "stop after this long (0 = until interrupted)")
	return cmd
}
