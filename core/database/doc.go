// Package database provides the GORM connection setup for the inventory store.
//
// Connect builds a connection from the Config struct. MySQL is the production
// driver; a sqlite driver is supported for small installs and for in-memory
// databases in tests (Driver: "sqlite", Name: ":memory:").
//
// Connection pool limits and I/O timeouts are applied on the underlying
// sql.DB, and the connection is verified with a ping before it is returned.
package database
