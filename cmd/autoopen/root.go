package main

import (
	"fmt"
	"io"

	"autoopen/internal/config"
	"autoopen/internal/gui"
	"autoopen/internal/log"
	"autoopen/internal/monitor"

	"github.com/spf13/cobra"
)

// rootOptions are the persistent flags shared by every command
type rootOptions struct {
	editor  string
	dir     string
	cfgFile string
	debug   bool
	logJSON bool
	logFile string
}

// NewRootCmd creates the root command. Without a subcommand it opens the
// desktop window.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "autoopen",
		Short: "Open new images from a folder in your editor",
		Long: `autoopen watches one folder and opens every file created or renamed
into it with the editor you choose. Temporary *.tmp files are skipped and
changes to .png files are logged.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			log.Shutdown()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.setupLogging(cmd.ErrOrStderr())
			defaults := opts.defaults(cmd.ErrOrStderr())

			ctrl := monitor.NewController()
			defer ctrl.Close()
			if err := gui.StartGUI(ctrl, defaults); err != nil {
				return fmt.Errorf("error launching GUI: %w", err)
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.editor, "editor", "", "editor executable to prefill")
	flags.StringVar(&opts.dir, "dir", "", "folder to watch to prefill")
	flags.StringVar(&opts.cfgFile, "config", "", "defaults file (default is $HOME/.config/autoopen/config.yaml)")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug diagnostics")
	flags.BoolVar(&opts.logJSON, "log-json", false, "write diagnostics as JSON")
	flags.StringVar(&opts.logFile, "log-file", "", "also append diagnostics to this file")

	rootCmd.AddCommand(NewTUICmd(opts))
	rootCmd.AddCommand(NewWatchCmd(opts))

	return rootCmd
}

// setupLogging points the diagnostic log at out and applies the log flags
func (o *rootOptions) setupLogging(out io.Writer) {
	logOpts := []log.Option{log.WithOutput(out)}
	if o.logJSON {
		logOpts = append(logOpts, log.WithJSON())
	}
	if o.logFile != "" {
		logOpts = append(logOpts, log.WithFile(o.logFile))
	}
	log.Configure(logOpts...)
	log.SetDebug(o.debug)
}

// defaults resolves the input prefill: flags over the defaults file over
// built-in values. A broken defaults file is reported and skipped.
func (o *rootOptions) defaults(warn io.Writer) config.Defaults {
	path := o.cfgFile
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			log.LogWithError(err).Debug("No home directory for defaults file")
		}
	}

	var d config.Defaults
	if path != "" {
		var err error
		d, err = config.LoadDefaults(path)
		if err != nil {
			fmt.Fprintf(warn, "Warning: %v\n", err)
			log.LogWithFields(log.F("path", path)).WithError(err).Warn("Ignoring defaults file")
		}
	}
	return d.Override(o.editor, o.dir)
}
