package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_favorite_store.go -package=mocks groupscope/internal/storage FavoriteStore

import (
	"context"
	"database/sql"
	"fmt"
)

// FavoriteStore persists favorite flags keyed by "filePath::functionality",
// scoped to the local user rather than the shared project snapshot.
type FavoriteStore interface {
	// Save replaces the stored favorite keys with the given set.
	Save(ctx context.Context, keys map[string]bool) error
	// Load returns all stored favorite keys.
	Load(ctx context.Context) (map[string]bool, error)
}

// FavoriteRepo provides SQLite-backed favorite persistence.
// It implements the FavoriteStore interface.
type FavoriteRepo struct {
	db *sql.DB
}

// NewFavoriteRepo creates a new FavoriteRepo.
func NewFavoriteRepo(db *sql.DB) *FavoriteRepo {
	return &FavoriteRepo{db: db}
}

// Save replaces the stored favorites in a single transaction.
func (r *FavoriteRepo) Save(ctx context.Context, keys map[string]bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM favorites"); err != nil {
		return fmt.Errorf("failed to clear favorites: %w", err)
	}

	for key, fav := range keys {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO favorites (key, is_favorite) VALUES (?, ?)", key, fav); err != nil {
			return fmt.Errorf("failed to insert favorite: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit favorites: %w", err)
	}
	return nil
}

// Load returns all stored favorite keys.
func (r *FavoriteRepo) Load(ctx context.Context) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT key, is_favorite FROM favorites")
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	keys := make(map[string]bool)
	for rows.Next() {
		var key string
		var fav bool
		if err := rows.Scan(&key, &fav); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		keys[key] = fav
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favorites: %w", err)
	}
	return keys, nil
}
