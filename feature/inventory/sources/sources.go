package sources

import (
	"context"
	"strings"

	"laim/feature/inventory/models"
)

// Source is a discovery integration against one external device-inventory
// API. Implementations own their authentication and wire formats and emit
// normalized Device records.
type Source interface {
	// Name returns the unique source name stamped on emitted devices.
	Name() string

	// Authenticate validates credentials against the upstream API. It
	// returns false when the source is unconfigured or the probe fails.
	Authenticate(ctx context.Context) bool

	// TestConnection reports whether the API is reachable with valid
	// credentials.
	TestConnection(ctx context.Context) bool

	// GetDevices fetches and normalizes all devices. Authentication and
	// listing-level failures yield an empty slice, not an error: a discovery
	// outage contributes zero devices instead of aborting a sync run. An
	// error is returned only for failures that escape that recovery, such as
	// transport retries exhausted mid-enumeration.
	GetDevices(ctx context.Context) ([]models.Device, error)

	// Close releases the source's connection pool. Safe to call even if the
	// source was never used.
	Close()
}

// NormalizeMAC canonicalizes a MAC address to XX:XX:XX:XX:XX:XX. Separators
// (colons, dashes, dots) are stripped and the result must be exactly 12 hex
// characters; anything else yields "" so callers never see a partial or
// garbage value. Non-canonical input therefore reads as "no MAC" for
// identity purposes.
func NormalizeMAC(mac string) string {
	cleaned := strings.ToUpper(mac)
	for _, sep := range []string{"-", ":", "."} {
		cleaned = strings.ReplaceAll(cleaned, sep, "")
	}

	if len(cleaned) != 12 {
		return ""
	}
	for _, r := range cleaned {
		if (r < '0' || r > '9') && (r < 'A' || r > 'F') {
			return ""
		}
	}

	var b strings.Builder
	b.Grow(17)
	for i := 0; i < 12; i += 2 {
		if i > 0 {
			b.WriteByte(':')
		}
		b.WriteString(cleaned[i : i+2])
	}
	return b.String()
}

// FirstMAC returns the first value in macs that normalizes to a canonical
// MAC, in list order.
func FirstMAC(macs []string) string {
	for _, mac := range macs {
		if normalized := NormalizeMAC(mac); normalized != "" {
			return normalized
		}
	}
	return ""
}
