package classify

import (
	"strings"

	"laim/feature/inventory/models"
)

// typePatterns maps each category to the substrings that identify it. The
// table is walked in order and the first match wins, so overlapping patterns
// (e.g. "aruba" appearing under several vendors) resolve predictably.
var typePatterns = []struct {
	itemType models.ItemType
	patterns []string
}{
	{models.TypeFirewall, []string{
		"firewall", "router", "isr", "asr", "cisco router", "juniper router",
		"mikrotik router", "edgerouter", "routeros", "vyos",
		"pfsense", "opnsense", "fortigate", "srx", "udm", "usg",
		"dream machine", "security gateway", "sonicwall",
		"asa", "fortinet", "sophos", "watchguard", "netgate",
		"pa-", "palo alto", "pa-3", "pa-4", "pa-5", "pa-7",
	}},
	{models.TypeSwitch, []string{
		"switch", "catalyst", "nexus", "arista", "juniper switch",
		"dell switch", "powerswitch", "procurve", "comware",
		"edgeswitch", "unifi switch", "usw-", "usw ", "meraki ms",
		"brocade", "icx", "fas", "s4048", "s5048", "z9100",
		"us-", "us-8", "us-16", "us-24", "us-48", "usl-",
		"cisco sg", "sg300", "sg500", "ws-c", "ws-c4506", "ws-c3",
		"ws-c2", "c9300", "c9200", "c3850", "c3750", "c2960",
	}},
	{models.TypeWAP, []string{
		"wap", "wireless", "wifi", "access point", "aruba ap",
		"unifi ap", "uap-", "uap ", "iap-", "aironet", "meraki mr",
		"u6-", "u6 ", "u7-", "u7 ", "u-xg", "unifi 6", "unifi 7",
		"ubiquiti u6", "ubiquiti u7", "nanostation", "litebeam",
		"powerbeam", "nanobeam", "ubiquiti ap", "ac-pro", "ac-lite",
		"ac-lr", "ac-hd", "ac-shd", "flexhd", "nanohd",
	}},
	{models.TypeServer, []string{
		"server", "poweredge", "proliant", "blade", "esxi", "vmware",
		"vcenter", "dell r", "hp dl", "supermicro", "rackmount",
		"hypervisor", "proxmox", "xenserver", "hyper-v",
	}},
	{models.TypeDesktop, []string{
		"optiplex", "prodesk", "thinkcentre", "desktop", "workstation",
		"precision", "elitedesk", "compaq", "imac", "mac mini",
	}},
	{models.TypeLaptop, []string{
		"latitude", "elitebook", "thinkpad", "laptop", "notebook",
		"macbook", "probook", "zbook", "inspiron", "xps",
		"surface", "chromebook", "pavilion",
	}},
	{models.TypeSmartDisplay, []string{
		"tv", "display", "samsung tv", "lg tv", "sony tv",
		"smart display", "signage", "monitor", "roku", "fire tv",
		"chromecast", "apple tv", "shield",
	}},
}

// Detect maps free-text model, vendor, and hostname strings to a hardware
// category. Absent inputs are skipped; matching is case-insensitive substring
// lookup against the ordered pattern table. Anything unmatched defaults to
// Server, the most common device class on a lab network.
func Detect(model, vendor, hostname string) models.ItemType {
	parts := make([]string, 0, 3)
	for _, s := range []string{model, vendor, hostname} {
		if s != "" {
			parts = append(parts, s)
		}
	}

	searchText := strings.ToLower(strings.Join(parts, " "))
	if searchText == "" {
		return models.TypeServer
	}

	for _, entry := range typePatterns {
		for _, pattern := range entry.patterns {
			if strings.Contains(searchText, pattern) {
				return entry.itemType
			}
		}
	}

	return models.TypeServer
}
