package slug_test

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"ipam-migrator/core/slug"

	"github.com/stretchr/testify/assert"
)

var validSlug = regexp.MustCompile(`^[a-z0-9-]{1,50}$`)

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Simple", "Corp", "corp"},
		{"Spaces", "Data Center 1", "data-center-1"},
		{"Underscores", "lab_network", "lab-network"},
		{"MixedSeparators", "DMZ _ External", "dmz-external"},
		{"InvalidChars", "Büro (München)", "bro-mnchen"},
		{"CollapseHyphens", "a---b", "a-b"},
		{"TrimHyphens", "-edge-", "edge"},
		{"Empty", "", "default"},
		{"AllSymbols", "!!!", "default"},
		{"Truncated", strings.Repeat("a", 80), strings.Repeat("a", 50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slug.Make(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Regexp(t, validSlug, got)
		})
	}
}

func TestGenerator_UniqueAcrossRun(t *testing.T) {
	g := slug.NewGenerator()

	seen := make(map[string]struct{})
	inputs := []string{
		"Core", "Core", "core", "CORE",
		"", "", "***",
		strings.Repeat("x", 60), strings.Repeat("x", 60), strings.Repeat("x", 60),
	}

	for _, in := range inputs {
		s := g.Slug(in)
		assert.Regexp(t, validSlug, s)
		_, dup := seen[s]
		assert.False(t, dup, "duplicate slug %q for input %q", s, in)
		seen[s] = struct{}{}
	}
}

func TestGenerator_NumericSuffix(t *testing.T) {
	g := slug.NewGenerator()

	assert.Equal(t, "office", g.Slug("Office"))
	assert.Equal(t, "office-1", g.Slug("office"))
	assert.Equal(t, "office-2", g.Slug("OFFICE"))
}

func TestGenerator_SuffixSurvivesTruncation(t *testing.T) {
	g := slug.NewGenerator()
	long := strings.Repeat("z", 55)

	first := g.Slug(long)
	assert.Len(t, first, 50)

	// Collisions on a max-length base must still terminate and stay unique.
	for i := 1; i <= 12; i++ {
		s := g.Slug(long)
		assert.Regexp(t, validSlug, s)
		assert.True(t, strings.HasSuffix(s, fmt.Sprintf("-%d", i)), "got %q", s)
		assert.LessOrEqual(t, len(s), 50)
	}
}
