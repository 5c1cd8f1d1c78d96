package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_snapshot_store.go -package=mocks groupscope/internal/storage SnapshotStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"groupscope/internal/groups"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// SnapshotStore persists and restores the full index snapshot: a mapping
// from file type to an ordered list of group records.
type SnapshotStore interface {
	// Save replaces the stored snapshot with the given one.
	Save(ctx context.Context, snapshot map[string][]groups.Record) error
	// Load returns the stored snapshot; an empty map when nothing is stored.
	Load(ctx context.Context) (map[string][]groups.Record, error)
}

// SnapshotRepo provides SQLite-backed snapshot persistence.
// It implements the SnapshotStore interface.
type SnapshotRepo struct {
	db *sql.DB
}

// NewSnapshotRepo creates a new SnapshotRepo.
func NewSnapshotRepo(db *sql.DB) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

// Save replaces the stored snapshot inside a single transaction, preserving
// per-bucket record order via the position column.
func (r *SnapshotRepo) Save(ctx context.Context, snapshot map[string][]groups.Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM records"); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (file_type, functionality, description, file_path, line_numbers, is_favorite, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for fileType, records := range snapshot {
		for position, rec := range records {
			lineNumbers, err := json.Marshal(rec.LineNumbers)
			if err != nil {
				return fmt.Errorf("failed to encode line numbers: %w", err)
			}
			if _, err := stmt.ExecContext(ctx,
				fileType, rec.Functionality, rec.Description, rec.FilePath,
				string(lineNumbers), rec.IsFavorite, position,
			); err != nil {
				return fmt.Errorf("failed to insert record: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// Load returns the stored snapshot keyed by file type, with per-bucket
// order restored from the position column.
func (r *SnapshotRepo) Load(ctx context.Context) (map[string][]groups.Record, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT file_type, functionality, description, file_path, line_numbers, is_favorite
		 FROM records ORDER BY file_type, position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	snapshot := make(map[string][]groups.Record)
	for rows.Next() {
		var fileType, lineNumbers string
		var description sql.NullString
		var rec groups.Record
		if err := rows.Scan(&fileType, &rec.Functionality, &description, &rec.FilePath, &lineNumbers, &rec.IsFavorite); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		rec.Description = description.String
		if err := json.Unmarshal([]byte(lineNumbers), &rec.LineNumbers); err != nil {
			return nil, fmt.Errorf("failed to decode line numbers: %w", err)
		}
		snapshot[fileType] = append(snapshot[fileType], rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}

	return snapshot, nil
}
