package migration

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"ipam-migrator/core/source"
	"ipam-migrator/core/target"
)

// migrateVLANs migrates VLANs. Natural key: (tag, group). Each migrated
// VLAN's target id is recorded in the identity cache so prefix migration
// can resolve source VLAN references later in the run.
func (e *Engine) migrateVLANs(ctx context.Context) (Counters, error) {
	var c Counters

	vlans, err := e.src.Fetch(ctx, source.CollectionVLANs, false)
	if err != nil {
		return c, err
	}
	if len(vlans) == 0 {
		e.log.Info("no vlans to migrate")
		return c, nil
	}

	// Domain id -> name table for resolving each VLAN's optional group.
	domains := make(map[string]string)
	domainRecords, err := e.src.Fetch(ctx, source.CollectionL2Domains, false)
	if err != nil {
		return c, err
	}
	for _, d := range domainRecords {
		if id := d.Str("id"); id != "" {
			domains[id] = d.Str("name")
		}
	}

	for i, v := range vlans {
		if err := ctx.Err(); err != nil {
			return c, err
		}
		e.progress("vlans", i, len(vlans), &c)

		vid, ok := vlanTag(v)
		if !ok {
			continue
		}

		name := v.Str("name")
		if name == "" {
			name = fmt.Sprintf("vlan-%d", vid)
		}

		sourceID := v.Str("id")
		if sourceID == "" {
			sourceID = strconv.Itoa(vid)
		}

		// Unresolvable group degrades to "no group" rather than failing
		// the record.
		var groupID *int
		if groupName := domains[v.Str("domainId")]; groupName != "" {
			groupID = e.resolveVLANGroup(ctx, groupName)
		}

		key := fmt.Sprintf("vlan %d", vid)
		params := url.Values{"vid": {strconv.Itoa(vid)}}
		if groupID != nil {
			params.Set("group_id", strconv.Itoa(*groupID))
		}

		existing, err := e.store.Filter(ctx, target.CollectionVLANs, params)
		if err != nil {
			e.recordError(ctx, "vlan", key, err, &c)
			continue
		}
		if len(existing) > 0 {
			e.cache.PutVLAN(sourceID, existing[0].ID())
			c.Skipped++
			continue
		}

		payload := map[string]any{
			"vid":         vid,
			"name":        truncate(name, maxVLANName),
			"status":      "active",
			"description": truncate(v.Str("description"), maxDescription),
		}
		if groupID != nil {
			payload["group"] = *groupID
		}

		if created := e.createRecord(ctx, target.CollectionVLANs, "vlan", key, payload, &c); created != nil {
			e.cache.PutVLAN(sourceID, created.ID())
		}
	}

	return c, nil
}

// vlanTag extracts the numeric VLAN tag, trying the source's field variants
// in order. Records without a parseable tag in the valid 802.1Q range are
// skipped entirely.
func vlanTag(v source.Record) (int, bool) {
	for _, field := range []string{"number", "vlanId", "id"} {
		if tag, ok := v.Int(field); ok {
			if tag < 1 || tag > 4094 {
				return 0, false
			}
			return tag, true
		}
	}
	return 0, false
}
