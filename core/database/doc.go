// Package database handles connections to the test-management database and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL (production) or SQLite (local and
// test) connections based on the application's configuration.
//
// # Connect
//
// Connect opens the configured dialect, applies pool settings and verifies the
// connection with a bounded ping. It knows nothing about the test-management schema.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table for both dialects. The repository
// schema check (testrepo.CheckSchema) uses it to compare the live tables against the
// GORM models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//
//	columns, err := database.GetTableColumns(db, "test_instances")
package database
