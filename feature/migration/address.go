package migration

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"ipam-migrator/core/source"
	"ipam-migrator/core/target"
)

// migrateAddresses migrates individual IP addresses. Natural key: (address,
// routing domain). The hostname feeds two fields with different rules: the
// description keeps the raw text, the dns field is filtered to the target's
// hostname character set.
func (e *Engine) migrateAddresses(ctx context.Context) (Counters, error) {
	var c Counters

	addresses, err := e.src.Fetch(ctx, source.CollectionAddresses, false)
	if err != nil {
		return c, err
	}
	if len(addresses) == 0 {
		e.log.Info("no addresses to migrate")
		return c, nil
	}

	for i, a := range addresses {
		if err := ctx.Err(); err != nil {
			return c, err
		}
		e.progress("addresses", i, len(addresses), &c)

		ip := a.Str("ip")
		if ip == "" {
			continue
		}

		maskBits := "32"
		if strings.Contains(ip, ":") {
			maskBits = "128"
		}
		address := ip + "/" + maskBits

		var vrfID *int
		if vrfName, ok := e.cache.VRFName(a.Str("vrfId")); ok {
			vrfID = e.resolveVRF(ctx, vrfName)
		}

		hostname := a.Str("hostname")
		description := a.Str("description")
		if description == "" {
			description = hostname
		}

		payload := map[string]any{
			"address":     address,
			"status":      "active",
			"description": truncate(description, maxDescription),
			"dns_name":    sanitizeDNS(hostname),
		}
		if vrfID != nil {
			payload["vrf"] = *vrfID
		}

		params := url.Values{"address": {ip}}
		if vrfID != nil {
			params.Set("vrf_id", strconv.Itoa(*vrfID))
		}

		existing, err := e.store.Filter(ctx, target.CollectionAddresses, params)
		if err != nil {
			e.recordError(ctx, "address", address, err, &c)
			continue
		}
		if len(existing) > 0 {
			c.Skipped++
			continue
		}

		e.createRecord(ctx, target.CollectionAddresses, "address", address, payload, &c)
	}

	return c, nil
}
