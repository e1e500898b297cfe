package target

import "ipam-migrator/core/utils"

// Record represents a generic target API resource.
type Record map[string]any

// ID returns the record's numeric identifier, 0 when absent.
func (r Record) ID() int {
	v, ok := r["id"]
	if !ok {
		return 0
	}
	return utils.ToInt(v)
}

// Name returns the record's display name, "" when absent.
func (r Record) Name() string {
	v, ok := r["name"]
	if !ok || v == nil {
		return ""
	}
	return utils.ToString(v)
}
