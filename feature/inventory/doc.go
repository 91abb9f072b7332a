// Package inventory implements the device inventory synchronization feature.
//
// It pulls device facts from network discovery systems and reconciles them
// into the inventory database:
//  1. Netdisco: layer-2 discovery (switch ports, node MAC tables).
//  2. LibreNMS: SNMP monitoring (serials, hardware models, firmware).
//
// # Components
//
//   - sources: shared Source interface plus the LibreNMS and Netdisco adapters.
//   - merge: deduplicates and unifies device records across sources.
//   - classify: infers an inventory item type from model/vendor/hostname.
//   - sync: the reconciliation engine and its run ledger.
//   - Handler: exposes HTTP endpoints for triggering syncs and reading logs.
//   - Loader: registers the feature with the application.
//
// # HTTP Endpoints
//
//   - POST /sync/:source : Run a sync against 'all', 'librenms' or 'netdisco'.
//   - GET /sync/logs : List recent sync runs, newest first.
package inventory
