// Package database handles SQL database connections for the database store.
//
// It provides a wrapper around GORM to configure MySQL connections (and
// SQLite, used for local projects and tests) from the application's
// configuration.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
