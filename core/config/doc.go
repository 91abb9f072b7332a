// Package config provides configuration management for LAIM.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: MySQL or SQLite connection details
//   - Log: Logging level and format
//   - Sync: Periodic sync scheduler settings
//   - LibreNMS: LibreNMS API endpoint and token
//   - Netdisco: Netdisco API endpoint and credentials
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
