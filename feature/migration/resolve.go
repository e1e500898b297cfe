package migration

import (
	"context"
	"net/url"

	"ipam-migrator/core/target"

	"go.uber.org/zap"
)

// resolveVRF returns the target id for a routing domain name, creating the
// domain when it does not exist yet. Each name triggers at most one
// lookup-or-create per run; every later reference is served from the memo.
// Returns nil when the name is empty or resolution failed.
func (e *Engine) resolveVRF(ctx context.Context, name string) *int {
	if name == "" {
		return nil
	}
	if id, ok := e.vrfIDs[name]; ok {
		return id
	}

	var resolved *int
	defer func() { e.vrfIDs[name] = resolved }()

	existing, err := e.store.Filter(ctx, target.CollectionVRFs, url.Values{"name": {name}})
	if err != nil {
		e.log.Error("routing domain lookup failed", zap.String("name", name), zap.Error(err))
		return resolved
	}
	if len(existing) > 0 {
		id := existing[0].ID()
		resolved = &id
		return resolved
	}

	if e.cfg.DryRun {
		e.log.Debug("[dry-run] would create routing domain", zap.String("name", name))
		return resolved
	}

	var created target.Record
	err = e.exec.Do(ctx, "create vrf "+name, func() error {
		rec, err := e.store.Create(ctx, target.CollectionVRFs, map[string]any{
			"name": truncate(name, maxNameLen),
		})
		if err != nil {
			return err
		}
		created = rec
		return nil
	})
	if err != nil {
		e.log.Error("routing domain create failed", zap.String("name", name), zap.Error(err))
		return resolved
	}

	e.log.Info("created routing domain", zap.String("name", name))
	id := created.ID()
	resolved = &id
	return resolved
}

// resolveVLANGroup returns the target id of a VLAN group by name. Misses are
// memoized too; an unresolved group degrades to "no group" at the caller.
func (e *Engine) resolveVLANGroup(ctx context.Context, name string) *int {
	if name == "" {
		return nil
	}
	if id, ok := e.groupIDs[name]; ok {
		return id
	}

	var resolved *int
	groups, err := e.store.Filter(ctx, target.CollectionVLANGroups, url.Values{"name": {name}})
	if err != nil {
		e.log.Warn("vlan group lookup failed", zap.String("name", name), zap.Error(err))
	} else if len(groups) > 0 {
		id := groups[0].ID()
		resolved = &id
	}
	e.groupIDs[name] = resolved
	return resolved
}

// resolveScope maps a source section to a target scope by display name,
// through the externally supplied mapping table (identity when absent).
// Returns nil when the section is unknown or no matching scope exists.
func (e *Engine) resolveScope(ctx context.Context, sectionName string) *scopeRef {
	if sectionName == "" {
		return nil
	}

	siteName := sectionName
	if e.sectionMap != nil {
		siteName = e.sectionMap[sectionName]
		if siteName == "" {
			return nil
		}
	}

	if ref, ok := e.scopes[siteName]; ok {
		return ref
	}

	// A failed listing is not memoized, so a later record retries it.
	e.loadSites(ctx)
	if !e.sitesLoaded {
		return nil
	}

	var resolved *scopeRef
	if id, ok := e.sites[siteName]; ok {
		resolved = &scopeRef{scopeType: e.cfg.ScopeType, id: id}
	} else {
		e.log.Warn("scope not found in target", zap.String("site", siteName))
	}
	e.scopes[siteName] = resolved
	return resolved
}

// loadSites fetches the target's scope table once per run. A failed listing
// leaves sitesLoaded false so the next scope resolution tries again.
func (e *Engine) loadSites(ctx context.Context) {
	if e.sitesLoaded {
		return
	}

	sites, err := e.store.ListAll(ctx, target.CollectionSites)
	if err != nil {
		e.log.Error("listing target sites failed", zap.Error(err))
		return
	}

	e.sites = make(map[string]int, len(sites))
	for _, s := range sites {
		if name := s.Name(); name != "" {
			e.sites[name] = s.ID()
		}
	}
	e.sitesLoaded = true
	e.log.Info("loaded target sites", zap.Int("count", len(e.sites)))
}
