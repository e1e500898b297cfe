package migration

import (
	"context"

	"ipam-migrator/core/source"

	"go.uber.org/zap"
)

// Cache holds the process-lifetime identity lookup tables mapping source
// identifiers to target-resolvable names and ids. It is populated once at
// the start of a run and grown opportunistically as VLANs are migrated.
// Entries are write-once per source id; it is never persisted.
type Cache struct {
	sections map[string]string // source section id -> section name
	vrfs     map[string]string // source vrf id -> vrf name
	vlans    map[string]int    // source vlan id -> target vlan id
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{
		sections: make(map[string]string),
		vrfs:     make(map[string]string),
		vlans:    make(map[string]int),
	}
}

// Build populates the section and routing-domain tables from one snapshot
// each. Either collection being entirely absent leaves its table empty; it
// is not a failure.
func (c *Cache) Build(ctx context.Context, src Source, log *zap.Logger) error {
	log.Info("building lookup caches")

	sections, err := src.Fetch(ctx, source.CollectionSections, false)
	if err != nil {
		return err
	}
	for _, s := range sections {
		if id := s.Str("id"); id != "" {
			c.putSection(id, s.Str("name"))
		}
	}
	log.Info("cached sections", zap.Int("count", len(c.sections)))

	vrfs, err := src.Fetch(ctx, source.CollectionVRFs, false)
	if err != nil {
		return err
	}
	for _, v := range vrfs {
		if id := v.Str("vrfId"); id != "" {
			c.putVRF(id, v.Str("name"))
		}
	}
	if len(c.vrfs) == 0 {
		log.Info("no routing domains found in source")
	} else {
		log.Info("cached routing domains", zap.Int("count", len(c.vrfs)))
	}

	return nil
}

// SectionName resolves a source section id to its display name.
func (c *Cache) SectionName(id string) (string, bool) {
	if id == "" {
		return "", false
	}
	name, ok := c.sections[id]
	return name, ok
}

// VRFName resolves a source routing-domain id to its display name.
func (c *Cache) VRFName(id string) (string, bool) {
	if id == "" {
		return "", false
	}
	name, ok := c.vrfs[id]
	return name, ok
}

// VLANID resolves a source VLAN id to the target VLAN id recorded earlier
// in the run.
func (c *Cache) VLANID(sourceID string) (int, bool) {
	if sourceID == "" {
		return 0, false
	}
	id, ok := c.vlans[sourceID]
	return id, ok
}

// PutVLAN records the target id a source VLAN migrated to. First write wins.
func (c *Cache) PutVLAN(sourceID string, targetID int) {
	if sourceID == "" || targetID == 0 {
		return
	}
	if _, exists := c.vlans[sourceID]; exists {
		return
	}
	c.vlans[sourceID] = targetID
}

func (c *Cache) putSection(id, name string) {
	if _, exists := c.sections[id]; exists {
		return
	}
	c.sections[id] = name
}

func (c *Cache) putVRF(id, name string) {
	if _, exists := c.vrfs[id]; exists {
		return
	}
	c.vrfs[id] = name
}
