package classify

import (
	"testing"

	"laim/feature/inventory/models"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		model    string
		vendor   string
		hostname string
		want     models.ItemType
	}{
		{"Catalyst is a switch", "Catalyst 9300", "Cisco", "core-sw-01", models.TypeSwitch},
		{"FortiGate is a firewall", "FortiGate 60F", "", "", models.TypeFirewall},
		{"PowerEdge is a server", "PowerEdge R750", "Dell", "", models.TypeServer},
		{"UniFi AP", "U6-Pro", "Ubiquiti", "", models.TypeWAP},
		{"Laptop by model", "ThinkPad X1 Carbon", "Lenovo", "", models.TypeLaptop},
		{"Desktop by model", "OptiPlex 7090", "Dell", "", models.TypeDesktop},
		{"Smart display", "", "", "lobby-tv", models.TypeSmartDisplay},
		{"Hostname only", "", "", "edge-firewall", models.TypeFirewall},
		{"Empty input defaults to server", "", "", "", models.TypeServer},
		{"Unmatched input defaults to server", "Frobnicator 9000", "Acme", "frob-1", models.TypeServer},
		// Table order is the tie-break: firewall patterns are checked before
		// switch patterns, so a "router switch" combo lands on firewall.
		{"Firewall wins over switch", "EdgeRouter Switch Module", "", "", models.TypeFirewall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.model, tt.vendor, tt.hostname)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetect_Deterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.Equal(t, models.TypeSwitch, Detect("Catalyst 9300", "", ""))
	}
}
