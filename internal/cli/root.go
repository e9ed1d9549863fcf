package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/app"
	"github.com/mamadbah2/stockroom/internal/config"
	"github.com/mamadbah2/stockroom/pkg/logger"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	EnvFile string
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command of the stockctl CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "stockctl",
		Short: "stockctl - inventory dashboard operator tool",
		Long:  "Query inventory records and produce reports from the configured data source.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env", "", "path to a .env file")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewItemsCommand(opts))
	cmd.AddCommand(NewMovementsCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))

	return cmd
}

// openApp loads the configuration and the stores. The caller closes the app.
func openApp(ctx context.Context, opts *RootOptions) (*app.App, *zap.Logger, error) {
	cfg, err := config.Load(opts.EnvFile)
	if err != nil {
		return nil, nil, err
	}

	base, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return nil, nil, err
	}

	a, err := app.New(ctx, cfg, base)
	if err != nil {
		_ = base.Sync()
		return nil, nil, err
	}
	return a, base, nil
}

// withApp runs fn against a freshly opened app and releases it afterwards.
func withApp(cmd *cobra.Command, opts *RootOptions, fn func(a *app.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, base, err := openApp(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		_ = a.Close(ctx)
		_ = base.Sync()
	}()

	return fn(a)
}
