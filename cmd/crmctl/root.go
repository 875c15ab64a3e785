package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yadhurtech/leadquote/internal/app"
	"github.com/yadhurtech/leadquote/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DataFile string
	Backend  string
	Format   string // "json" | "text"
	Verbose  bool

	logger *zap.Logger
}

var ValidFormats = []string{"text", "json"}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "crmctl",
		Short: "Manage the lead CRM from the command line",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			level := "warn"
			if opts.Verbose {
				level = "debug"
			}
			logger, err := app.NewLogger(level)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.DataFile, "data-file", "", "JSON data file (overrides DATA_FILE)")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", "", "primary store: file, postgres or sheets (overrides STORE_BACKEND)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewStagesCommand(opts))
	cmd.AddCommand(NewSyncCommand(opts))

	return cmd
}

func (o *RootOptions) openStore(ctx context.Context) (*app.Store, error) {
	cfg := config.Load()
	if o.DataFile != "" {
		cfg.DataFile = o.DataFile
	}
	if o.Backend != "" {
		cfg.StoreBackend = o.Backend
	}
	logger := o.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return app.OpenStore(ctx, cfg, logger)
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
