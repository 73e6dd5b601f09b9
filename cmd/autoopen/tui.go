package main

import (
	"fmt"
	"io"

	"autoopen/internal/monitor"
	"autoopen/internal/tui"

	"github.com/spf13/cobra"
)

// NewTUICmd creates the terminal shell command
func NewTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the terminal user interface",
		Long:  `Start the terminal version of the window: the same two inputs, start key, status and log.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The screen belongs to the TUI; diagnostics only go to --log-file
			opts.setupLogging(io.Discard)
			defaults := opts.defaults(cmd.ErrOrStderr())

			ctrl := monitor.NewController()
			defer ctrl.Close()
			if err := tui.Run(ctrl, defaults); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
}
