package librenms

import "strings"

// vendorPatterns is a fixed, ordered table mapping hardware-string substrings
// to vendor names. Order matters: the first matching vendor wins, so e.g.
// "aruba" resolves to Aruba before the HP-era patterns see it.
var vendorPatterns = []struct {
	vendor   string
	patterns []string
}{
	{"Cisco", []string{"cisco", "catalyst", "nexus", "asa", "meraki"}},
	{"Juniper", []string{"juniper", "junos", "srx", "ex-", "qfx"}},
	{"Aruba", []string{"aruba", "arubaos"}},
	{"Hp", []string{"hp ", "hewlett", "procurve", "aruba"}},
	{"Dell", []string{"dell", "force10", "powerconnect"}},
	{"Ubiquiti", []string{"ubiquiti", "unifi", "edgeswitch", "edgerouter"}},
	{"Fortinet", []string{"fortinet", "fortigate", "fortios"}},
	{"Palo Alto", []string{"palo alto", "pan-os"}},
	{"Arista", []string{"arista", "eos"}},
	{"Mikrotik", []string{"mikrotik", "routeros"}},
	{"Netgear", []string{"netgear"}},
	{"Tp-Link", []string{"tp-link", "tplink"}},
	{"Vmware", []string{"vmware", "esxi"}},
	{"Linux", []string{"linux", "ubuntu", "centos", "debian", "rhel"}},
	{"Windows", []string{"windows", "microsoft"}},
}

// vendorFromHardware infers a vendor name from a free-text hardware string.
// Returns "" when nothing matches.
func vendorFromHardware(hardware string) string {
	if hardware == "" {
		return ""
	}

	hardwareLower := strings.ToLower(hardware)
	for _, entry := range vendorPatterns {
		for _, pattern := range entry.patterns {
			if strings.Contains(hardwareLower, pattern) {
				return entry.vendor
			}
		}
	}

	return ""
}
