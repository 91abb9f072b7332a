// Package sources defines the discovery source contract and the helpers its
// implementations share.
//
// A Source wraps one external device-discovery API (LibreNMS, Netdisco) and
// turns its payloads into normalized Device records. Sources are forgiving:
// credential or listing failures log and contribute zero devices rather than
// failing a whole sync run.
//
// NormalizeMAC returns either a canonical XX:XX:XX:XX:XX:XX string or "",
// never a partially cleaned value, so the merge and reconciliation layers can
// treat any non-empty MAC as a trustworthy identity key.
package sources
