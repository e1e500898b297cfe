package source

import (
	"strconv"
	"strings"

	"ipam-migrator/core/utils"
)

// Record is a single source inventory entity. The source API is loosely
// typed (numbers frequently arrive as strings), so all field access goes
// through converting accessors.
type Record map[string]any

// Str returns the named field as a trimmed string, "" when absent or null.
func (r Record) Str(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(utils.ToString(v))
}

// Int returns the named field as an int, reporting whether it parsed.
func (r Record) Int(key string) (int, bool) {
	s := r.Str(key)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Bool interprets the source's "0"/"1" flags (and real booleans).
func (r Record) Bool(key string) bool {
	v, ok := r[key]
	if !ok || v == nil {
		return false
	}
	return utils.ToBool(v)
}
