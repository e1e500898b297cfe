package slug

import (
	"fmt"
	"strings"
)

// MaxLength is the target system's slug field limit.
const MaxLength = 50

// DefaultToken is substituted when normalization leaves nothing usable.
const DefaultToken = "default"

// Make normalizes a display name into a valid slug: lowercase, whitespace
// and underscores become hyphens, everything outside [a-z0-9-] is dropped,
// hyphen runs are collapsed, and the result is trimmed and capped at
// MaxLength. An empty result falls back to DefaultToken.
func Make(name string) string {
	s := strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '_' || r == '-':
			b.WriteByte('-')
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		}
	}

	s = collapseHyphens(b.String())
	s = strings.Trim(s, "-")
	if s == "" {
		s = DefaultToken
	}
	return truncate(s, MaxLength)
}

// Generator produces slugs that are unique for the lifetime of one run.
// Collisions are resolved with a numeric suffix, re-truncated to MaxLength.
// Not safe for concurrent use.
type Generator struct {
	used map[string]struct{}
}

// NewGenerator creates an empty Generator.
func NewGenerator() *Generator {
	return &Generator{used: make(map[string]struct{})}
}

// Slug returns a unique slug for name, remembering it for the rest of the run.
func (g *Generator) Slug(name string) string {
	base := Make(name)
	candidate := base
	for n := 1; ; n++ {
		if _, taken := g.used[candidate]; !taken {
			break
		}
		// Shorten the base so the suffix always survives re-truncation.
		suffix := fmt.Sprintf("-%d", n)
		candidate = truncate(base, MaxLength-len(suffix)) + suffix
	}
	g.used[candidate] = struct{}{}
	return candidate
}

func collapseHyphens(s string) string {
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
