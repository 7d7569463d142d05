// Package app wires the command-line interface to the pipeline service.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"repoanalysis/config"
	"repoanalysis/logger"
	"repoanalysis/service"
)

// runner holds the state shared by the commands of one invocation.
type runner struct {
	v          *viper.Viper
	configFile string
	svc        *service.Service
}

// NewRootCmd builds the repoanalysis command tree. Running the root command
// without a subcommand runs the whole pipeline.
func NewRootCmd() *cobra.Command {
	r := &runner{v: viper.New()}

	root := &cobra.Command{
		Use:   "repoanalysis",
		Short: "Scrape saved GitHub pages and analyse repository popularity",
		Long: `repoanalysis reads saved GitHub search result pages and repository
detail pages, writes one row per repository to a CSV table, and then
analyses that table: summary statistics, a correlation heatmap, a
scatterplot matrix and two least squares models of stars.

Examples:
  # Extract and analyse with defaults (./data, ./project_info.csv)
  repoanalysis

  # Only build the table
  repoanalysis extract --data-dir pages --output repos.csv

  # Re-run the analysis on an existing table
  repoanalysis analyze --output repos.csv`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: r.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.svc.Run(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&r.configFile, "config", "", "config file (default: ./repoanalysis.yaml if present)")
	flags.String("data-dir", "", "directory holding the saved search and detail pages (default: data)")
	flags.String("output", "", "path of the repository table (default: project_info.csv)")
	flags.String("log-level", "", "log level: debug, info, warn or error (default: info)")

	_ = r.v.BindPFlag(config.KeyDataPath, flags.Lookup("data-dir"))
	_ = r.v.BindPFlag(config.KeyTablePath, flags.Lookup("output"))
	_ = r.v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))

	root.SuggestionsMinimumDistance = 2
	root.AddCommand(
		&cobra.Command{
			Use:   "extract",
			Short: "Build the repository table from the saved pages",
			RunE: func(cmd *cobra.Command, args []string) error {
				return r.svc.Extract(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "analyze",
			Short: "Analyse an existing repository table",
			RunE: func(cmd *cobra.Command, args []string) error {
				return r.svc.Analyze(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "run",
			Short: "Extract then analyse",
			RunE: func(cmd *cobra.Command, args []string) error {
				return r.svc.Run(cmd.Context())
			},
		},
	)

	return root
}

// setup loads the configuration, starts the logger and builds the service.
func (r *runner) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(r.v, r.configFile)
	if err != nil {
		return err
	}

	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	svc, err := service.NewService(cfg)
	if err != nil {
		return err
	}

	r.svc = svc
	return nil
}

// Execute runs the root command, cancelling the pipeline on SIGINT or
// SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}
