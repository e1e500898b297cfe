package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ipam-migrator/core/config"
	"ipam-migrator/core/logger"
	"ipam-migrator/core/source"
	"ipam-migrator/core/target"
	"ipam-migrator/feature/migration"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// exitInterrupted is the process status for a user-initiated interruption,
// distinct from fatal failures.
const exitInterrupted = 130

var dryRunMigrate bool

// migrateCmd runs the full migration in dependency order.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate all entities from the source to the target inventory",
	Long: `Migrate routing domains, VLAN groups, VLANs, prefixes, and IP addresses,
in that order, from phpIPAM to NetBox.

Every record is checked against the target by natural key before creation,
so the command is safe to interrupt and re-run. Run "ipam-migrator sites"
first so prefix scopes can be resolved against existing sites.

Examples:
  # Preview without making changes
  ipam-migrator migrate --dry-run

  # Live migration
  ipam-migrator migrate`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&dryRunMigrate, "dry-run", false, "Preview changes without applying them")
	RootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if dryRunMigrate {
		cfg.Migrate.DryRun = true
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()
	l = logger.WithRunID(l)

	mode := "live"
	if cfg.Migrate.DryRun {
		mode = "dry-run"
	}
	l.Info("starting migration",
		zap.String("mode", mode),
		zap.String("source", cfg.Source.URL),
		zap.String("target", cfg.Target.URL),
		zap.Int("request_delay_ms", cfg.Migrate.RequestDelayMS),
		zap.Int("retry_attempts", cfg.Migrate.RetryAttempts),
	)

	sectionMap, err := migration.LoadSectionMap(cfg.Migrate.SectionMapFile)
	if err != nil {
		return err
	}

	engine := migration.NewEngine(migration.Params{
		Source:     source.NewClient(cfg.Source, newLimiter(cfg.Migrate.RequestDelayMS)),
		Store:      target.NewClient(cfg.Target, newLimiter(cfg.Migrate.RequestDelayMS)),
		Config:     cfg.Migrate,
		Logger:     l,
		SectionMap: sectionMap,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, runErr := engine.Run(ctx)
	reportSummary(l, summary)

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			l.Warn("migration interrupted")
			l.Info("you can safely re-run the command - existing items are skipped")
			os.Exit(exitInterrupted)
		}
		return runErr
	}
	return nil
}

// newLimiter builds the shared minimum-interval rate limiter for one client.
func newLimiter(delayMS int) *rate.Limiter {
	if delayMS <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(time.Duration(delayMS)*time.Millisecond), 1)
}

// reportSummary prints the per-kind counters of a (possibly partial) run.
func reportSummary(l *zap.Logger, s *migration.Summary) {
	kinds := []struct {
		name string
		c    migration.Counters
	}{
		{"routing_domains", s.VRFs},
		{"vlan_groups", s.VLANGroups},
		{"vlans", s.VLANs},
		{"prefixes", s.Prefixes},
		{"addresses", s.Addresses},
	}
	for _, kind := range kinds {
		l.Info("summary",
			zap.String("kind", kind.name),
			zap.Int("created", kind.c.Created),
			zap.Int("skipped", kind.c.Skipped),
			zap.Int("errors", kind.c.Errors),
		)
	}
}
