package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
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

func sampleReplay() ReplayRecord {
	return ReplayRecord{
		GameID:   "blockdrop",
		Seed:     42,
		TickRate: 60,
		Config:   "board:\n  width: 12\n",
		Score:    3,
		Status:   "game_over",
		Ticks:    900,
		Inputs: []InputRecord{
			{Tick: 5, Actions: "Left"},
			{Tick: 17, Actions: "Rotate,Drop"},
			{Tick: 2, Actions: "Cycle"},
		},
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	id, err := store.SaveReplay(sampleReplay())
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}
	store.Close()

	// Migrations must be idempotent
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if _, err := store.Replay(id); err != nil {
		t.Errorf("Replay() after reopen failed: %v", err)
	}
}

func TestSaveAndLoadReplay(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveReplay(sampleReplay())
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("generated ID %q is not a UUID: %v", id, err)
	}

	rec, err := store.Replay(id)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}

	want := sampleReplay()
	if rec.GameID != want.GameID || rec.Seed != want.Seed || rec.TickRate != want.TickRate {
		t.Errorf("header mismatch: got %+v", rec)
	}
	if rec.Config != want.Config || rec.Score != want.Score || rec.Status != want.Status || rec.Ticks != want.Ticks {
		t.Errorf("outcome mismatch: got %+v", rec)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	// Inputs come back ordered by tick
	if len(rec.Inputs) != 3 {
		t.Fatalf("expected 3 inputs, got %d", len(rec.Inputs))
	}
	wantTicks := []uint64{2, 5, 17}
	for i, in := range rec.Inputs {
		if in.Tick != wantTicks[i] {
			t.Errorf("input %d tick = %d, want %d", i, in.Tick, wantTicks[i])
		}
	}
	if rec.Inputs[2].Actions != "Rotate,Drop" {
		t.Errorf("actions = %q", rec.Inputs[2].Actions)
	}
}

func TestSaveReplayKeepsGivenID(t *testing.T) {
	store := openTestStore(t)

	rec := sampleReplay()
	rec.ID = "fixed-id"
	id, err := store.SaveReplay(rec)
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}
	if id != "fixed-id" {
		t.Errorf("id = %q, want fixed-id", id)
	}

	// Duplicate IDs are rejected and leave nothing behind
	rec.Inputs = []InputRecord{{Tick: 99, Actions: "Left"}}
	if _, err := store.SaveReplay(rec); err == nil {
		t.Error("expected error for duplicate ID")
	}
	got, err := store.Replay("fixed-id")
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if len(got.Inputs) != 3 {
		t.Errorf("inputs = %d, want 3", len(got.Inputs))
	}
}

func TestReplayNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Replay("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Replay() err = %v, want ErrNotFound", err)
	}

	err = store.DeleteReplay("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteReplay() err = %v, want ErrNotFound", err)
	}
}

func TestRecentReplays(t *testing.T) {
	store := openTestStore(t)

	var ids []string
	for i := 0; i < 5; i++ {
		rec := sampleReplay()
		rec.Score = i
		id, err := store.SaveReplay(rec)
		if err != nil {
			t.Fatalf("SaveReplay() failed: %v", err)
		}
		ids = append(ids, id)
	}

	recent, err := store.RecentReplays(3)
	if err != nil {
		t.Fatalf("RecentReplays() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 replays, got %d", len(recent))
	}

	// Newest first
	for i, rec := range recent {
		if rec.ID != ids[4-i] {
			t.Errorf("recent[%d] = %s, want %s", i, rec.ID, ids[4-i])
		}
		if len(rec.Inputs) != 0 {
			t.Errorf("listing should not load inputs")
		}
	}
}

func TestDeleteReplay(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveReplay(sampleReplay())
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}
	if err := store.DeleteReplay(id); err != nil {
		t.Fatalf("DeleteReplay() failed: %v", err)
	}
	if _, err := store.Replay(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted replay still found: %v", err)
	}

	recent, err := store.RecentReplays(10)
	if err != nil {
		t.Fatalf("RecentReplays() failed: %v", err)
	}
	if len(recent) != 0 {
		t.Errorf("expected no replays, got %d", len(recent))
	}
}
