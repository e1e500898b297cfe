package migration

import (
	"context"
	"net/url"

	"ipam-migrator/core/slug"
	"ipam-migrator/core/source"
	"ipam-migrator/core/target"

	"go.uber.org/zap"
)

// migrateVLANGroups migrates L2 domains as VLAN groups. Natural key: name.
func (e *Engine) migrateVLANGroups(ctx context.Context) (Counters, error) {
	var c Counters

	domains, err := e.src.Fetch(ctx, source.CollectionL2Domains, false)
	if err != nil {
		return c, err
	}
	if len(domains) == 0 {
		e.log.Info("no vlan groups to migrate")
		return c, nil
	}

	slugs := slug.NewGenerator()

	for i, d := range domains {
		if err := ctx.Err(); err != nil {
			return c, err
		}
		e.progress("vlan groups", i, len(domains), &c)

		name := d.Str("name")
		if name == "" {
			continue
		}

		existing, err := e.store.Filter(ctx, target.CollectionVLANGroups, url.Values{"name": {name}})
		if err != nil {
			e.recordError(ctx, "vlan group", name, err, &c)
			continue
		}
		if len(existing) > 0 {
			id := existing[0].ID()
			e.groupIDs[name] = &id
			c.Skipped++
			continue
		}

		payload := map[string]any{
			"name":        truncate(name, maxNameLen),
			"slug":        slugs.Slug(name),
			"description": truncate(d.Str("description"), maxDescription),
		}

		if created := e.createRecord(ctx, target.CollectionVLANGroups, "vlan group", name, payload, &c); created != nil {
			id := created.ID()
			e.groupIDs[name] = &id
			e.log.Info("created vlan group", zap.String("name", name))
		}
	}

	return c, nil
}
