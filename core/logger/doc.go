// Package logger provides the zap-based structured logging setup.
//
// The logger is configured via the Config struct (level and encoding format).
// Debug level selects zap's development config with ISO8601 timestamps; every
// other level selects the production config.
//
// # Usage
//
//	l, err := logger.New(&cfg.Log)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	l.Info("ready")
//
// WithRayID decorates a logger with the per-request ray_id field injected by
// the rayid middleware, so all log lines for one request can be correlated.
package logger
