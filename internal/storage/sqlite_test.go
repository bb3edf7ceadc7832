package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustSave(t *testing.T, store *Store, r Run) int64 {
	t.Helper()
	id, err := store.SaveRun(r)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	return id
}

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "runs.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreOpenExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.tetris/runs.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".tetris", "runs.db")); err != nil {
		t.Errorf("expected database under HOME: %v", err)
	}
}

func TestStoreSaveAndRecent(t *testing.T) {
	store := openTestStore(t)

	first := mustSave(t, store, Run{Variant: "tetris", Seed: 1, Width: 10, Height: 19, Lines: 4, Pieces: 30, GameOver: true})
	mustSave(t, store, Run{Variant: "tetris_t", Seed: 2, Width: 10, Height: 19, Lines: 1, Pieces: 12})
	last := mustSave(t, store, Run{Variant: "tetris", Seed: 3, Width: 10, Height: 19, Lines: 9, Pieces: 41, Level: 0, Ticks: 800})

	runs, err := store.RecentRuns("tetris", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 tetris runs, got %d", len(runs))
	}
	if runs[0].ID != last || runs[1].ID != first {
		t.Errorf("Expected newest first, got IDs %d, %d", runs[0].ID, runs[1].ID)
	}

	got := runs[0]
	if got.Seed != 3 || got.Lines != 9 || got.Pieces != 41 || got.Ticks != 800 || got.GameOver {
		t.Errorf("Round-tripped run mismatch: %+v", got)
	}
	if !runs[1].GameOver {
		t.Error("GameOver flag was not stored")
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set by the database")
	}

	all, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatalf("RecentRuns(all) failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 runs across variants, got %d", len(all))
	}
}

func TestStoreSaveRunNeedsVariant(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(Run{Lines: 3}); err == nil {
		t.Error("SaveRun() without variant should fail")
	}
}

func TestStoreBestRuns(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []Run{
		{Variant: "tetris", Lines: 5, Pieces: 40},
		{Variant: "tetris", Lines: 12, Pieces: 70},
		{Variant: "tetris", Lines: 5, Pieces: 35},
		{Variant: "tetris", Lines: 0, Pieces: 9},
		{Variant: "tetris_t", Lines: 50, Pieces: 200},
	} {
		mustSave(t, store, r)
	}

	best, err := store.BestRuns("tetris", 3)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(best) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(best))
	}

	expected := []struct{ lines, pieces int }{{12, 70}, {5, 40}, {5, 35}}
	for i, e := range expected {
		if best[i].Lines != e.lines || best[i].Pieces != e.pieces {
			t.Errorf("best[%d] = %d lines / %d pieces, expected %d / %d",
				i, best[i].Lines, best[i].Pieces, e.lines, e.pieces)
		}
	}

	high, err := store.BestLines("tetris")
	if err != nil {
		t.Fatalf("BestLines() failed: %v", err)
	}
	if high != 12 {
		t.Errorf("BestLines() = %d, expected 12", high)
	}

	none, err := store.BestLines("nothing")
	if err != nil {
		t.Fatalf("BestLines() failed: %v", err)
	}
	if none != 0 {
		t.Errorf("BestLines() for unknown variant = %d, expected 0", none)
	}
}

func TestStoreVariantStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.VariantStats("tetris")
	if err != nil {
		t.Fatalf("VariantStats() failed: %v", err)
	}
	if empty.Runs != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	mustSave(t, store, Run{Variant: "tetris", Lines: 2, Pieces: 10})
	mustSave(t, store, Run{Variant: "tetris", Lines: 6, Pieces: 30})
	mustSave(t, store, Run{Variant: "tetris_t", Lines: 1, Pieces: 5})

	stats, err := store.VariantStats("tetris")
	if err != nil {
		t.Fatalf("VariantStats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.BestLines != 6 || stats.TotalLines != 8 || stats.Pieces != 40 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.AvgLines != 4 {
		t.Errorf("AvgLines = %v, expected 4", stats.AvgLines)
	}

	all, err := store.AllVariantStats()
	if err != nil {
		t.Fatalf("AllVariantStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 variants, got %d", len(all))
	}
	if all["tetris_t"].Runs != 1 {
		t.Errorf("tetris_t runs = %d, expected 1", all["tetris_t"].Runs)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Run{Variant: "tetris", Lines: 1})
	mustSave(t, store, Run{Variant: "tetris_t", Lines: 2})

	if err := store.ClearRuns("tetris"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.RecentRuns("tetris", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 tetris runs after clear, got %d", len(runs))
	}
	others, _ := store.RecentRuns("tetris_t", 10)
	if len(others) != 1 {
		t.Error("tetris_t runs should not be affected by clearing tetris")
	}
}
