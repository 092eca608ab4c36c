// Package config provides configuration management for the stock counting service.
//
// It utilizes Viper for loading configuration from environment variables
// and .env files.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: MySQL/SQLite connection details for snapshot persistence
//   - Storage: S3/MinIO credentials and the export bucket
//   - Log: Logging level and format
//   - Product: catalog lookup endpoint, retry policy and cache TTL
//   - Detection: recognizer endpoint, device class and capture cadence
//   - Inventory: snapshot key and schema version
//   - Export: report header fields and CSV delimiter
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
