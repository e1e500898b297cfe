package migration

import (
	"context"
	"net/url"

	"ipam-migrator/core/source"
	"ipam-migrator/core/target"
)

// Source is the read-only accessor over the source inventory.
// *source.Client satisfies it; tests substitute an in-memory snapshot.
type Source interface {
	// Fetch returns a full snapshot of one collection. A missing optional
	// collection yields an empty snapshot rather than an error.
	Fetch(ctx context.Context, collection string, required bool) ([]source.Record, error)
}

// Store is the mutable accessor over the target inventory.
// *target.Client satisfies it; tests substitute an in-memory store.
type Store interface {
	// Filter returns the records matching a natural-key query.
	Filter(ctx context.Context, collection string, params url.Values) ([]target.Record, error)
	// ListAll returns every record of a collection.
	ListAll(ctx context.Context, collection string) ([]target.Record, error)
	// Create inserts a new record and returns it.
	Create(ctx context.Context, collection string, payload map[string]any) (target.Record, error)
	// Update applies a partial update to an existing record.
	Update(ctx context.Context, collection string, id int, payload map[string]any) (target.Record, error)
}

// Counters aggregates per-kind outcomes. Under dry-run, Created counts the
// records that would have been created.
type Counters struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

// Add accumulates other into c.
func (c *Counters) Add(other Counters) {
	c.Created += other.Created
	c.Skipped += other.Skipped
	c.Errors += other.Errors
}

// Summary holds the counters of a full run, one set per entity kind.
type Summary struct {
	VRFs       Counters `json:"vrfs"`
	VLANGroups Counters `json:"vlan_groups"`
	VLANs      Counters `json:"vlans"`
	Prefixes   Counters `json:"prefixes"`
	Addresses  Counters `json:"addresses"`
}

// Total returns the summary collapsed across kinds.
func (s *Summary) Total() Counters {
	var t Counters
	t.Add(s.VRFs)
	t.Add(s.VLANGroups)
	t.Add(s.VLANs)
	t.Add(s.Prefixes)
	t.Add(s.Addresses)
	return t
}
