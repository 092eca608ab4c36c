// Package database handles database connections.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly
// configure MySQL or SQLite connections based on the application's configuration.
//
// # Connect
//
// The generic Connect function establishes a connection to the database. The
// connection is optional: the inventory snapshot layer degrades to memory-only
// operation when the database is unreachable at startup.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Snapshot persistence disabled", err)
//	}
package database
