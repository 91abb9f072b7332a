// Package models defines the persistent inventory entities and the transient
// unified device record.
//
// InventoryItem and SyncLog are GORM models backing the inventory store and
// the sync-run ledger. Device is the normalized, source-agnostic record the
// discovery sources emit before merging; it never touches the database
// directly.
package models
