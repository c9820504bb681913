package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"stockpick/internal/app"
)

var (
	catalogPath string
	ceiling     string
	size        int
	maxResults  int
	logLevel    string
	logFormat   string

	appCtx *app.App
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRoot().ExecuteContext(ctx)
}

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "stockpick",
		Short:        "Find product bundles that fit under a price limit",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			if err := applyFlags(cmd, &cfg); err != nil {
				return err
			}
			log, err := app.NewLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			appCtx, err = app.Wire(cmd.Context(), cfg, log)
			return err
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&catalogPath, "catalog", "", "catalog file, .json or .xlsx (env STOCKPICK_CATALOG)")
	pf.StringVar(&ceiling, "ceiling", "", "price limit per combination (default 13)")
	pf.IntVar(&size, "size", 0, "items per combination (default 5)")
	pf.IntVar(&maxResults, "max-results", 0, "stop after this many combinations (0 = all)")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", "", "log format: text or json")

	root.AddCommand(catalogCmd(), combosCmd(), shellCmd(), versionCmd())
	return root
}

// applyFlags overrides cfg with every flag set on the command line.
func applyFlags(cmd *cobra.Command, cfg *app.Config) error {
	flags := cmd.Flags()
	if flags.Changed("catalog") {
		cfg.Catalog = catalogPath
	}
	if flags.Changed("ceiling") {
		d, err := decimal.NewFromString(ceiling)
		if err != nil {
			return errors.Wrapf(err, "--ceiling %q", ceiling)
		}
		cfg.Ceiling = d
	}
	if flags.Changed("size") {
		cfg.Size = size
	}
	if flags.Changed("max-results") {
		cfg.MaxResults = maxResults
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = logFormat
	}
	return nil
}
