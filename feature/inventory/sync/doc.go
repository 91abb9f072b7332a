// Package sync implements the reconciliation engine.
//
// It pulls device lists from the configured discovery sources, unifies them
// through the merge package, and creates any inventory items the store does
// not already have. Every run is recorded as a SyncLog row that is created
// in the RUNNING state before any network traffic and always finalized as
// COMPLETED or FAILED with counts and per-device errors.
package sync
