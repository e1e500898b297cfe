package sites

import (
	"context"
	"fmt"

	"ipam-migrator/core/remote"
	"ipam-migrator/core/slug"
	"ipam-migrator/core/source"
	"ipam-migrator/core/target"
	"ipam-migrator/feature/migration"

	"go.uber.org/zap"
)

const (
	maxNameLen     = 100
	maxDescription = 200

	defaultDescription = "Imported from phpIPAM"
)

// Service creates target sites from the source's sections. This is the
// one-time bootstrap the migration engine expects to have run already:
// prefix scope resolution looks sites up by name and never creates them.
type Service struct {
	src    migration.Source
	store  migration.Store
	dryRun bool
	log    *zap.Logger
}

// NewService creates a sites bootstrap service.
func NewService(src migration.Source, store migration.Store, dryRun bool, log *zap.Logger) *Service {
	return &Service{src: src, store: store, dryRun: dryRun, log: log}
}

// Bootstrap fetches all source sections and creates a site for every one
// missing from the target, with a run-unique slug. Existing sites are
// skipped by display name; a per-section failure never stops the loop.
func (s *Service) Bootstrap(ctx context.Context) (migration.Counters, error) {
	var c migration.Counters

	sections, err := s.src.Fetch(ctx, source.CollectionSections, true)
	if err != nil {
		return c, fmt.Errorf("fetching sections: %w", err)
	}
	s.log.Info("found sections in source", zap.Int("count", len(sections)))

	existing, err := s.store.ListAll(ctx, target.CollectionSites)
	if err != nil {
		return c, fmt.Errorf("listing target sites: %w", err)
	}
	byName := make(map[string]struct{}, len(existing))
	for _, site := range existing {
		byName[site.Name()] = struct{}{}
	}

	slugs := slug.NewGenerator()

	for _, section := range sections {
		if err := ctx.Err(); err != nil {
			return c, err
		}

		name := section.Str("name")
		if name == "" {
			c.Skipped++
			continue
		}
		if _, ok := byName[name]; ok {
			s.log.Debug("site exists", zap.String("name", name))
			c.Skipped++
			continue
		}

		description := section.Str("description")
		if description == "" {
			description = defaultDescription
		}

		payload := map[string]any{
			"name":        truncate(name, maxNameLen),
			"slug":        slugs.Slug(name),
			"status":      "active",
			"description": truncate(description, maxDescription),
		}

		if s.dryRun {
			s.log.Info("[dry-run] would create site", zap.String("name", name))
			c.Created++
			continue
		}

		created, err := s.store.Create(ctx, target.CollectionSites, payload)
		if err != nil {
			if remote.IsDuplicate(err) {
				c.Skipped++
				continue
			}
			c.Errors++
			s.log.Error("site failed", zap.String("name", name), zap.Error(err))
			continue
		}

		byName[created.Name()] = struct{}{}
		c.Created++
		s.log.Info("created site", zap.String("name", name))
	}

	return c, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
