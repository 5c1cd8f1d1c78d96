package storage

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// It enables foreign keys and sets connection pool settings.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys (disabled by default in SQLite)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate creates the snapshot schema. It is idempotent and can be run
// multiple times safely.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			file_type TEXT NOT NULL,
			functionality TEXT NOT NULL,
			description TEXT,
			file_path TEXT NOT NULL,
			line_numbers TEXT NOT NULL,
			is_favorite INTEGER NOT NULL DEFAULT 0,
			position INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_records_file_type ON records(file_type);`,
		`CREATE INDEX IF NOT EXISTS idx_records_file_path ON records(file_path);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

// MigrateFavorites creates the favorites schema. Favorites live in a
// separate user-scoped database so favorite status does not round-trip
// through the shared snapshot.
func MigrateFavorites(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS favorites (
		key TEXT PRIMARY KEY,
		is_favorite INTEGER NOT NULL
	);`)
	return err
}
