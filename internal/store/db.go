package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Open creates the SQLite handle and bootstraps the schema. Safe to call
// against an existing database file; schema creation is idempotent.
func Open(dbPath string) (*sqlx.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func migrate(db *sqlx.DB) error {
	schema := `
	-- Timestamp columns are declared TEXT: values are fixed-format
	-- "YYYY-MM-DD HH:MM:SS" strings on the wire and in the file, and the
	-- sqlite3 driver must not coerce them into time.Time on scan.
	CREATE TABLE IF NOT EXISTS persons (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		name              TEXT NOT NULL,
		email             TEXT NOT NULL UNIQUE,
		phone             TEXT,
		department        TEXT,
		registration_date TEXT DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS lab_records (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		person_id  INTEGER,
		lab_name   TEXT NOT NULL,
		entry_time TEXT,
		exit_time  TEXT,
		FOREIGN KEY (person_id) REFERENCES persons (id)
	);

	CREATE INDEX IF NOT EXISTS idx_lab_records_person ON lab_records(person_id);
	CREATE INDEX IF NOT EXISTS idx_lab_records_entry  ON lab_records(entry_time);
	`
	_, err := db.Exec(schema)
	return err
}
