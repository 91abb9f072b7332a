package merge

import (
	"testing"

	"laim/feature/inventory/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_Priority(t *testing.T) {
	t.Run("Serial wins over MAC", func(t *testing.T) {
		key, ok := Key(models.Device{SerialNumber: "SN1", MACAddress: "00:1A:2B:3C:4D:01"})
		require.True(t, ok)
		assert.Equal(t, "serial:SN1", key)
	})

	t.Run("MAC wins over hostname and IP", func(t *testing.T) {
		key, ok := Key(models.Device{MACAddress: "00:1A:2B:3C:4D:01", Hostname: "h", IPAddress: "10.0.0.1"})
		require.True(t, ok)
		assert.Equal(t, "mac:00:1A:2B:3C:4D:01", key)
	})

	t.Run("Hostname and IP both required", func(t *testing.T) {
		key, ok := Key(models.Device{Hostname: "h", IPAddress: "10.0.0.1"})
		require.True(t, ok)
		assert.Equal(t, "host_ip:h:10.0.0.1", key)

		_, ok = Key(models.Device{Hostname: "h"})
		assert.False(t, ok)
		_, ok = Key(models.Device{IPAddress: "10.0.0.1"})
		assert.False(t, ok)
	})

	t.Run("Whitespace-only serial falls through", func(t *testing.T) {
		key, ok := Key(models.Device{SerialNumber: "  ", MACAddress: "00:1A:2B:3C:4D:01"})
		require.True(t, ok)
		assert.Equal(t, "mac:00:1A:2B:3C:4D:01", key)
	})

	t.Run("No identity at all", func(t *testing.T) {
		_, ok := Key(models.Device{Model: "PowerEdge"})
		assert.False(t, ok)
	})
}

func TestMerge_FieldPriority(t *testing.T) {
	base := []models.Device{{
		SerialNumber: "SN1",
		Vendor:       "Dell",
		Model:        "R750",
		Source:       "netdisco",
	}}
	overlay := []models.Device{{
		SerialNumber: "SN1",
		Vendor:       "", // empty must not clobber base's value
		Model:        "PowerEdge",
		Source:       "librenms",
	}}

	merged := Merge(base, overlay)
	require.Len(t, merged, 1)

	got := merged["serial:SN1"]
	assert.Equal(t, "Dell", got.Vendor)
	assert.Equal(t, "PowerEdge", got.Model)
	assert.Equal(t, models.SourceMerged, got.Source)
}

func TestMerge_HostIPFallbackDedupes(t *testing.T) {
	base := []models.Device{{Hostname: "edge-fw", IPAddress: "10.0.0.1", Source: "netdisco"}}
	overlay := []models.Device{{Hostname: "edge-fw", IPAddress: "10.0.0.1", Source: "librenms"}}

	merged := Merge(base, overlay)
	assert.Len(t, merged, 1)
	assert.Equal(t, models.SourceMerged, merged["host_ip:edge-fw:10.0.0.1"].Source)
}

func TestMerge_DisjointKeysKeepBothSources(t *testing.T) {
	base := []models.Device{{SerialNumber: "SN1", Source: "netdisco"}}
	overlay := []models.Device{{SerialNumber: "SN2", Source: "librenms"}}

	merged := Merge(base, overlay)
	require.Len(t, merged, 2)
	assert.Equal(t, "netdisco", merged["serial:SN1"].Source)
	assert.Equal(t, "librenms", merged["serial:SN2"].Source)
}

func TestMerge_KeylessDevicesAreDropped(t *testing.T) {
	base := []models.Device{{Model: "mystery box", Source: "netdisco"}}
	overlay := []models.Device{{Hostname: "only-a-name", Source: "librenms"}}

	assert.Empty(t, Merge(base, overlay))
}

func TestMerge_IsOrderDependent(t *testing.T) {
	a := []models.Device{{SerialNumber: "SN1", Vendor: "Dell", Model: "R750"}}
	b := []models.Device{{SerialNumber: "SN1", Vendor: "EMC", Model: "PowerEdge"}}

	// The overlay always wins on conflict, so swapping the argument order
	// changes the result. This asymmetry is intentional.
	assert.Equal(t, "EMC", Merge(a, b)["serial:SN1"].Vendor)
	assert.Equal(t, "Dell", Merge(b, a)["serial:SN1"].Vendor)
}
