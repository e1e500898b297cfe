package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ipam-migrator/core/config"
	"ipam-migrator/core/logger"
	"ipam-migrator/core/source"
	"ipam-migrator/core/target"
	"ipam-migrator/feature/sites"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var dryRunSites bool

// sitesCmd bootstraps target sites from source sections.
var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "Create target sites from source sections",
	Long: `Create a NetBox site for every phpIPAM section that does not already have
one, matched by display name. Run this once before the first migration so
prefix scope resolution finds its sites.

Examples:
  # Preview
  ipam-migrator sites --dry-run

  # Create missing sites
  ipam-migrator sites`,
	RunE: runSites,
}

func init() {
	sitesCmd.Flags().BoolVar(&dryRunSites, "dry-run", false, "Preview changes without applying them")
	RootCmd.AddCommand(sitesCmd)
}

func runSites(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if dryRunSites {
		cfg.Migrate.DryRun = true
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()
	l = logger.WithRunID(l)

	l.Info("creating sites from sections",
		zap.Bool("dry_run", cfg.Migrate.DryRun),
		zap.String("source", cfg.Source.URL),
		zap.String("target", cfg.Target.URL),
	)

	svc := sites.NewService(
		source.NewClient(cfg.Source, newLimiter(cfg.Migrate.RequestDelayMS)),
		target.NewClient(cfg.Target, newLimiter(cfg.Migrate.RequestDelayMS)),
		cfg.Migrate.DryRun,
		l,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	counters, runErr := svc.Bootstrap(ctx)
	l.Info("summary",
		zap.Int("created", counters.Created),
		zap.Int("skipped", counters.Skipped),
		zap.Int("errors", counters.Errors),
	)

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			l.Warn("bootstrap interrupted")
			l.Info("you can safely re-run the command - existing items are skipped")
			os.Exit(exitInterrupted)
		}
		return runErr
	}
	return nil
}
