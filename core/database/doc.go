// Package database opens the inventory database and inspects its tables.
//
// It wraps GORM so that every command (start, reconcile, limits, evaluate,
// assets) connects the same way from the database section of the config.
//
// # Connect
//
// DATABASE_DRIVER picks sqlite (default, file brain.sqlite), mysql or postgres;
// anything else fails with ErrUnknownDriver. The GORM logger is silenced and
// implicit per-statement transactions are off, because the reconciler and the
// limit writes open their own. SQLite gets a single pooled connection so
// concurrent writers queue instead of failing with "database is locked". The
// connection is pinged within DATABASE_TIMEOUT_SECONDS before Connect returns.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a live table and MissingColumns compares
// them against a required set. The inventory store runs this after AutoMigrate
// so the bridge refuses to start against a table it cannot fully write.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logg.Fatal("Failed to connect to database", zap.Error(err))
//	}
//
//	missing, err := database.MissingColumns(db, "stored_items", []string{"fingerprint", "amount"})
package database
