package migration

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"ipam-migrator/core/source"
	"ipam-migrator/core/target"
)

// maskSentinel sorts subnets with an unparseable mask after everything else.
const maskSentinel = 999

// migratePrefixes migrates subnets as prefixes. Natural key: (prefix,
// routing domain). The snapshot is sorted ascending by mask length first so
// broader networks exist in the target before any narrower sibling, which is
// what makes scope and parent resolution come out right.
func (e *Engine) migratePrefixes(ctx context.Context) (Counters, error) {
	var c Counters

	subnets, err := e.src.Fetch(ctx, source.CollectionSubnets, false)
	if err != nil {
		return c, err
	}
	if len(subnets) == 0 {
		e.log.Info("no prefixes to migrate")
		return c, nil
	}

	sort.SliceStable(subnets, func(i, j int) bool {
		return maskLength(subnets[i]) < maskLength(subnets[j])
	})

	for i, s := range subnets {
		if err := ctx.Err(); err != nil {
			return c, err
		}
		e.progress("prefixes", i, len(subnets), &c)

		subnet := s.Str("subnet")
		mask := s.Str("mask")
		if subnet == "" || mask == "" {
			continue
		}
		prefix := subnet + "/" + mask

		// Resolve references before any write.
		var vrfID *int
		if vrfName, ok := e.cache.VRFName(s.Str("vrfId")); ok {
			vrfID = e.resolveVRF(ctx, vrfName)
		}

		var scope *scopeRef
		if sectionName, ok := e.cache.SectionName(s.Str("sectionId")); ok {
			scope = e.resolveScope(ctx, sectionName)
		}

		payload := map[string]any{
			"prefix":        prefix,
			"status":        "active",
			"description":   truncate(s.Str("description"), maxDescription),
			"is_pool":       s.Bool("isPool") || s.Bool("isFull"),
			"mark_utilized": s.Bool("isFull"),
		}
		if vrfID != nil {
			payload["vrf"] = *vrfID
		}
		if scope != nil {
			if e.cfg.LegacySiteField {
				payload["site"] = scope.id
			} else {
				payload["scope_type"] = scope.scopeType
				payload["scope_id"] = scope.id
			}
		}
		if vlanID, ok := e.cache.VLANID(s.Str("vlanId")); ok {
			payload["vlan"] = vlanID
		}

		params := url.Values{"prefix": {prefix}}
		if vrfID != nil {
			params.Set("vrf_id", strconv.Itoa(*vrfID))
		}

		existing, err := e.store.Filter(ctx, target.CollectionPrefixes, params)
		if err != nil {
			e.recordError(ctx, "prefix", prefix, err, &c)
			continue
		}
		if len(existing) > 0 {
			c.Skipped++
			if e.cfg.UpdatePrefixes {
				e.updatePrefix(ctx, existing[0].ID(), prefix, payload, &c)
			}
			continue
		}

		e.createRecord(ctx, target.CollectionPrefixes, "prefix", prefix, payload, &c)
	}

	return c, nil
}

// updatePrefix applies the freshly computed payload to an existing prefix.
// Update failures count as errors but the match is still a skip.
func (e *Engine) updatePrefix(ctx context.Context, id int, prefix string, payload map[string]any, c *Counters) {
	if e.cfg.DryRun {
		return
	}
	err := e.exec.Do(ctx, fmt.Sprintf("update prefix %s", prefix), func() error {
		_, err := e.store.Update(ctx, target.CollectionPrefixes, id, payload)
		return err
	})
	if err != nil {
		e.recordError(ctx, "prefix", prefix, err, c)
	}
}

// maskLength parses the subnet's mask field, sorting unparseable masks last.
func maskLength(s source.Record) int {
	if mask, ok := s.Int("mask"); ok {
		return mask
	}
	return maskSentinel
}
