package storage

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Schema DDL. Statements are idempotent so an existing database keeps its data.
const (
	createLocalStorage = `CREATE TABLE IF NOT EXISTS local_storage (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`

	createQuotes = `CREATE TABLE IF NOT EXISTS quotes (
    quote_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    company TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL,
    phone TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT '',
    submitted_at TEXT NOT NULL
);`

	createQuoteItems = `CREATE TABLE IF NOT EXISTS quote_items (
    quote_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    product_id TEXT NOT NULL,
    product_name TEXT NOT NULL,
    quantity INTEGER NOT NULL,
    PRIMARY KEY (quote_id, position),
    FOREIGN KEY (quote_id) REFERENCES quotes(quote_id) ON DELETE CASCADE
);`

	idxQuotesSubmitted = `CREATE INDEX IF NOT EXISTS idx_quotes_submitted ON quotes(submitted_at);`
)

// schemaDDL lists all statements in dependency order.
var schemaDDL = []string{
	createLocalStorage,
	createQuotes,
	createQuoteItems,
	idxQuotesSubmitted,
}

// openDB opens the SQLite database at path and applies the schema.
func openDB(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite allows one writer; a single connection avoids SQLITE_BUSY
	// between the cart channel and the quote archive.
	db.SetMaxOpenConns(1)

	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return db, nil
}
