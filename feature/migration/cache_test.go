package migration

import (
	"context"
	"testing"

	"ipam-migrator/core/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_Build(t *testing.T) {
	src := &fakeSource{collections: map[string][]source.Record{
		source.CollectionSections: {
			{"id": "1", "name": "DC1"},
			{"id": "2", "name": "DC2"},
			{"name": "no id, ignored"},
		},
		source.CollectionVRFs: {
			{"vrfId": "7", "name": "CORP"},
		},
	}}

	c := NewCache()
	require.NoError(t, c.Build(context.Background(), src, testLogger()))

	name, ok := c.SectionName("1")
	assert.True(t, ok)
	assert.Equal(t, "DC1", name)

	name, ok = c.VRFName("7")
	assert.True(t, ok)
	assert.Equal(t, "CORP", name)

	_, ok = c.SectionName("99")
	assert.False(t, ok)
	_, ok = c.VRFName("")
	assert.False(t, ok)
}

func TestCache_BuildTolerantOfAbsentCollections(t *testing.T) {
	src := &fakeSource{collections: map[string][]source.Record{}}

	c := NewCache()
	require.NoError(t, c.Build(context.Background(), src, testLogger()))

	_, ok := c.SectionName("1")
	assert.False(t, ok)
}

func TestCache_VLANWriteOnce(t *testing.T) {
	c := NewCache()

	_, ok := c.VLANID("12")
	assert.False(t, ok)

	c.PutVLAN("12", 77)
	id, ok := c.VLANID("12")
	assert.True(t, ok)
	assert.Equal(t, 77, id)

	// First write wins.
	c.PutVLAN("12", 99)
	id, _ = c.VLANID("12")
	assert.Equal(t, 77, id)

	// Zero ids and empty keys are never stored.
	c.PutVLAN("13", 0)
	_, ok = c.VLANID("13")
	assert.False(t, ok)
	c.PutVLAN("", 5)
	_, ok = c.VLANID("")
	assert.False(t, ok)
}
