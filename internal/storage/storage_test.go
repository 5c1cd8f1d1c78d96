package storage

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"groupscope/internal/groups"
)

func newTestDB(t *testing.T) *SnapshotRepo {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "snapshot.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := Migrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return NewSnapshotRepo(db)
}

func newTestFavoriteRepo(t *testing.T) *FavoriteRepo {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "favorites.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := MigrateFavorites(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return NewFavoriteRepo(db)
}

func TestSnapshotRepo_SaveLoad(t *testing.T) {
	repo := newTestDB(t)
	ctx := context.Background()

	snapshot := map[string][]groups.Record{
		"go": {
			{Functionality: "Auth", Description: "token checks", FilePath: "/src/auth.go", LineNumbers: []int{3, 4}, IsFavorite: true},
			{Functionality: "Billing", FilePath: "/src/billing.go", LineNumbers: []int{10}},
		},
		"typescript": {
			{Functionality: "Auth > Login", FilePath: "/src/login.ts", LineNumbers: []int{1}},
		},
	}

	if err := repo.Save(ctx, snapshot); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(loaded, snapshot) {
		t.Errorf("loaded = %+v, want %+v", loaded, snapshot)
	}
}

func TestSnapshotRepo_SaveReplaces(t *testing.T) {
	repo := newTestDB(t)
	ctx := context.Background()

	first := map[string][]groups.Record{
		"go": {{Functionality: "Auth", FilePath: "/src/auth.go", LineNumbers: []int{1}}},
	}
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("Save: %v", err)
	}

	second := map[string][]groups.Record{
		"python": {{Functionality: "Billing", FilePath: "/src/bill.py", LineNumbers: []int{2}}},
	}
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(loaded, second) {
		t.Errorf("loaded = %+v, want the second snapshot only", loaded)
	}
}

func TestSnapshotRepo_LoadEmpty(t *testing.T) {
	repo := newTestDB(t)

	loaded, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("loaded = %+v, want empty map", loaded)
	}
}

func TestSnapshotRepo_PreservesOrder(t *testing.T) {
	repo := newTestDB(t)
	ctx := context.Background()

	records := make([]groups.Record, 0, 10)
	for i := 0; i < 10; i++ {
		records = append(records, groups.Record{
			Functionality: "Auth",
			FilePath:      "/src/auth.go",
			LineNumbers:   []int{i + 1},
		})
	}
	if err := repo.Save(ctx, map[string][]groups.Record{"go": records}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(loaded["go"], records) {
		t.Errorf("record order not preserved: %+v", loaded["go"])
	}
}

func TestFavoriteRepo_SaveLoad(t *testing.T) {
	repo := newTestFavoriteRepo(t)
	ctx := context.Background()

	keys := map[string]bool{
		"/src/auth.go::auth":       true,
		"/src/billing.go::billing": false,
	}
	if err := repo.Save(ctx, keys); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(loaded, keys) {
		t.Errorf("loaded = %v, want %v", loaded, keys)
	}

	// A later save replaces, never merges.
	if err := repo.Save(ctx, map[string]bool{"/src/new.go::new": true}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err = repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 1 || !loaded["/src/new.go::new"] {
		t.Errorf("loaded = %v, want the replacement set", loaded)
	}
}
