package migration

import (
	"context"
	"net/url"

	"ipam-migrator/core/source"
	"ipam-migrator/core/target"

	"go.uber.org/zap"
)

// migrateVRFs migrates routing domains. Natural key: name. Existing domains
// are skipped; the engine memoizes each outcome so prefix and address
// migration resolve the same names without extra calls.
func (e *Engine) migrateVRFs(ctx context.Context) (Counters, error) {
	var c Counters

	vrfs, err := e.src.Fetch(ctx, source.CollectionVRFs, false)
	if err != nil {
		return c, err
	}
	if len(vrfs) == 0 {
		e.log.Info("no routing domains to migrate")
		return c, nil
	}

	for i, v := range vrfs {
		if err := ctx.Err(); err != nil {
			return c, err
		}
		e.progress("routing domains", i, len(vrfs), &c)

		name := v.Str("name")
		if name == "" {
			continue
		}

		existing, err := e.store.Filter(ctx, target.CollectionVRFs, url.Values{"name": {name}})
		if err != nil {
			e.recordError(ctx, "routing domain", name, err, &c)
			continue
		}
		if len(existing) > 0 {
			id := existing[0].ID()
			e.vrfIDs[name] = &id
			c.Skipped++
			continue
		}

		payload := map[string]any{
			"name": truncate(name, maxNameLen),
		}
		if rd := v.Str("rd"); rd != "" {
			payload["rd"] = rd
		}

		if created := e.createRecord(ctx, target.CollectionVRFs, "routing domain", name, payload, &c); created != nil {
			id := created.ID()
			e.vrfIDs[name] = &id
			e.log.Info("created routing domain", zap.String("name", name))
		}
	}

	return c, nil
}
