package database

import (
	"database/sql"
	"fmt"
	"strings"
)

// QuoteIdent quotes a table or column name for SQLite
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// EnsureActivitySchema creates the activity table and its region index
func EnsureActivitySchema(db *sql.DB, table string) error {
	t := QuoteIdent(table)
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ` + t + ` (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			region TEXT NOT NULL,
			startTime TEXT NOT NULL,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			location TEXT NOT NULL DEFAULT '',
			count INTEGER NOT NULL DEFAULT 0 CHECK (count >= 0)
		)`,
		`CREATE INDEX IF NOT EXISTS ` + QuoteIdent("idx_"+table+"_region") + ` ON ` + t + ` (region, id)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema for %s: %w", table, err)
		}
	}
	return nil
}
