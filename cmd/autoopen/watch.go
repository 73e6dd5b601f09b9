package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"autoopen/internal/config"
	"autoopen/internal/monitor"
	"autoopen/internal/tui/styles"
	"autoopen/internal/watch"

	"github.com/spf13/cobra"
)

// NewWatchCmd creates the headless watch command
func NewWatchCmd(opts *rootOptions) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the folder without a window",
		Long: `Start monitoring immediately with the --editor and --dir values (or the
defaults file) and print the activity log to stdout. Runs until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.setupLogging(cmd.ErrOrStderr())
			defaults := opts.defaults(cmd.ErrOrStderr())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runWatch(ctx, cmd.OutOrStdout(), defaults.WatchConfig(), !plain)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print log lines without colors")
	return cmd
}

// runWatch prints the activity log to out until ctx is done. It fails if
// monitoring cannot start.
func runWatch(ctx context.Context, out io.Writer, cfg config.WatchConfig, color bool, opts ...monitor.Option) error {
	ctrl := monitor.NewController(opts...)

	var mu sync.Mutex
	ctrl.Journal().Subscribe(func(e watch.LogEntry) {
		line := e.String()
		if color {
			line = styles.RenderLogLine(line)
		}
		mu.Lock()
		fmt.Fprintln(out, line)
		mu.Unlock()
	})

	if err := ctrl.StartMonitoring(cfg); err != nil {
		return err
	}

	<-ctx.Done()
	return ctrl.Close()
}
