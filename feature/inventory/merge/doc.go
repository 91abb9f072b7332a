// Package merge deduplicates and combines device records from multiple
// discovery sources into one keyed set.
//
// Identity is resolved by Key in strict priority order (serial number, MAC
// address, hostname+IP); devices without any usable identifier never reach
// reconciliation. Merge is a pure function over its inputs and is not
// commutative: on key collision, the overlay list's non-empty field values
// always win, encoding which source is trusted more.
package merge
