package migration

import (
	"context"
	"fmt"
	"time"

	"ipam-migrator/core/remote"
	"ipam-migrator/core/retry"
	"ipam-migrator/core/target"

	"go.uber.org/zap"
)

// Engine runs the full migration: it builds the identity cache and then
// executes the per-kind migrators in dependency order. It owns the run's
// dry-run flag and all memoized reference resolutions; there is no
// process-wide mutable state.
type Engine struct {
	src   Source
	store Store
	cache *Cache
	exec  *retry.Executor
	cfg   Config
	log   *zap.Logger

	// sectionMap maps source section names to target site names.
	// nil means identity mapping.
	sectionMap map[string]string

	// Memoized reference resolutions, one lookup-or-create per key per run.
	// A present nil value means "resolved to nothing"; re-resolution is
	// never attempted.
	vrfIDs   map[string]*int
	groupIDs map[string]*int
	scopes   map[string]*scopeRef

	// sites is the target's existing scope table, loaded once on first use.
	sites       map[string]int
	sitesLoaded bool
}

// scopeRef is a resolved target scope assignment.
type scopeRef struct {
	scopeType string
	id        int
}

// Params bundles the collaborators an Engine needs.
type Params struct {
	Source     Source
	Store      Store
	Config     Config
	Logger     *zap.Logger
	SectionMap map[string]string
}

// NewEngine creates an Engine. The retry executor is derived from the
// configuration; retry_all selects the legacy retry-everything behavior.
func NewEngine(p Params) *Engine {
	opts := []retry.Option{}
	if p.Config.RetryAll {
		opts = append(opts, retry.WithRetryAll())
	}
	exec := retry.New(
		p.Config.RetryAttempts,
		time.Duration(p.Config.RetryDelaySeconds)*time.Second,
		p.Logger,
		opts...,
	)

	return &Engine{
		src:        p.Source,
		store:      p.Store,
		cache:      NewCache(),
		exec:       exec,
		cfg:        p.Config,
		log:        p.Logger,
		sectionMap: p.SectionMap,
		vrfIDs:     make(map[string]*int),
		groupIDs:   make(map[string]*int),
		scopes:     make(map[string]*scopeRef),
	}
}

// Run executes the migration in fixed dependency order: routing domains,
// VLAN groups, VLANs, prefixes, addresses. Later kinds reference earlier
// ones, so the order is not configurable. A per-record failure never stops
// a kind; the partial summary is returned alongside any aborting error.
func (e *Engine) Run(ctx context.Context) (*Summary, error) {
	if e.cfg.DryRun {
		e.log.Info("dry-run mode: no changes will be made")
	}

	summary := &Summary{}

	if err := e.cache.Build(ctx, e.src, e.log); err != nil {
		return summary, fmt.Errorf("building caches: %w", err)
	}

	phases := []struct {
		kind string
		run  func(context.Context) (Counters, error)
		dst  *Counters
	}{
		{"routing domains", e.migrateVRFs, &summary.VRFs},
		{"vlan groups", e.migrateVLANGroups, &summary.VLANGroups},
		{"vlans", e.migrateVLANs, &summary.VLANs},
		{"prefixes", e.migratePrefixes, &summary.Prefixes},
		{"addresses", e.migrateAddresses, &summary.Addresses},
	}

	for _, phase := range phases {
		e.log.Info("migrating", zap.String("kind", phase.kind))

		counters, err := phase.run(ctx)
		*phase.dst = counters
		if err != nil {
			return summary, fmt.Errorf("migrating %s: %w", phase.kind, err)
		}

		e.log.Info("kind complete",
			zap.String("kind", phase.kind),
			zap.Int("created", counters.Created),
			zap.Int("skipped", counters.Skipped),
			zap.Int("errors", counters.Errors),
		)
	}

	total := summary.Total()
	e.log.Info("migration complete",
		zap.Int("created", total.Created),
		zap.Int("skipped", total.Skipped),
		zap.Int("errors", total.Errors),
	)
	return summary, nil
}

// createRecord performs the guarded create for one record: the caller has
// already established that no natural-key match exists. Returns the created
// record, or nil when nothing was created (dry-run, benign duplicate race,
// or a counted error).
func (e *Engine) createRecord(ctx context.Context, collection, kind, key string, payload map[string]any, c *Counters) target.Record {
	if e.cfg.DryRun {
		e.log.Debug("[dry-run] would create",
			zap.String("kind", kind),
			zap.String("key", key),
		)
		c.Created++
		return nil
	}

	var created target.Record
	err := e.exec.Do(ctx, fmt.Sprintf("create %s %s", kind, key), func() error {
		rec, err := e.store.Create(ctx, collection, payload)
		if err != nil {
			return err
		}
		created = rec
		return nil
	})
	if err != nil {
		// Another actor creating the same record concurrently surfaces
		// here as a duplicate; the record exists, which is what we wanted.
		if remote.IsDuplicate(err) {
			c.Skipped++
			return nil
		}
		e.recordError(ctx, kind, key, err, c)
		return nil
	}

	c.Created++
	e.log.Debug("created", zap.String("kind", kind), zap.String("key", key))
	return created
}

// recordError counts one record's failure and logs it, up to the per-kind
// cap. The error counter keeps incrementing past the cap so a systemic
// misconfiguration does not flood the output. An interrupted run is not a
// record failure: the failure that surfaces when the run context is done is
// left uncounted, and the kind's own context check aborts the loop.
func (e *Engine) recordError(ctx context.Context, kind, key string, err error, c *Counters) {
	if ctx.Err() != nil {
		return
	}
	c.Errors++
	if e.cfg.ErrorLogCap > 0 && c.Errors > e.cfg.ErrorLogCap {
		return
	}
	e.log.Error("record failed",
		zap.String("kind", kind),
		zap.String("key", key),
		zap.Error(err),
	)
}

// progress emits a progress line every BatchSize records within a kind.
func (e *Engine) progress(kind string, processed, total int, c *Counters) {
	if e.cfg.BatchSize <= 0 || processed == 0 || processed%e.cfg.BatchSize != 0 {
		return
	}
	e.log.Info("progress",
		zap.String("kind", kind),
		zap.Int("processed", processed),
		zap.Int("total", total),
		zap.Int("created", c.Created),
		zap.Int("skipped", c.Skipped),
		zap.Int("errors", c.Errors),
	)
}
