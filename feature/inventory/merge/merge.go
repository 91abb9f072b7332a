package merge

import (
	"strings"

	"laim/feature/inventory/models"
)

// Key derives the deduplication key for a device. Priority order:
//
//  1. serial:<serial_number>
//  2. mac:<mac_address>
//  3. host_ip:<hostname>:<ip_address> (both required)
//
// A device with none of these carries no usable identity; ok is false and it
// must be dropped from merging.
func Key(d models.Device) (key string, ok bool) {
	if serial := strings.TrimSpace(d.SerialNumber); serial != "" {
		return "serial:" + serial, true
	}
	if mac := strings.TrimSpace(d.MACAddress); mac != "" {
		return "mac:" + mac, true
	}
	if d.Hostname != "" && d.IPAddress != "" {
		return "host_ip:" + d.Hostname + ":" + d.IPAddress, true
	}
	return "", false
}

// Merge deduplicates and combines two device lists into one keyed set.
//
// All of base is inserted first; overlay devices then either claim new keys
// or collide, in which case the records are combined field-wise with
// overlay's non-empty values winning and Source set to "merged". The
// operation is deliberately not commutative: the overlay list is the
// higher-trust source and always wins conflicts.
func Merge(base, overlay []models.Device) map[string]models.Device {
	merged := make(map[string]models.Device, len(base)+len(overlay))

	for _, device := range base {
		if key, ok := Key(device); ok {
			merged[key] = device
		}
	}

	for _, device := range overlay {
		key, ok := Key(device)
		if !ok {
			continue
		}
		if existing, exists := merged[key]; exists {
			merged[key] = combine(existing, device)
		} else {
			merged[key] = device
		}
	}

	return merged
}

// combine merges two records for the same key, preferring winner's non-empty
// fields and falling back to base's.
func combine(base, winner models.Device) models.Device {
	return models.Device{
		Hostname:        coalesce(winner.Hostname, base.Hostname),
		SerialNumber:    coalesce(winner.SerialNumber, base.SerialNumber),
		MACAddress:      coalesce(winner.MACAddress, base.MACAddress),
		IPAddress:       coalesce(winner.IPAddress, base.IPAddress),
		Model:           coalesce(winner.Model, base.Model),
		Vendor:          coalesce(winner.Vendor, base.Vendor),
		FirmwareVersion: coalesce(winner.FirmwareVersion, base.FirmwareVersion),
		Location:        coalesce(winner.Location, base.Location),
		Source:          models.SourceMerged,
		SourceID:        coalesce(winner.SourceID, base.SourceID),
	}
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
