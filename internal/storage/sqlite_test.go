package storage

import (
	"errors"
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

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("breakout", 70); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("breakout")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 70 {
		t.Errorf("Expected 70 after reopen, got %d", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("breakout", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("other", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("breakout", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, w)
		}
	}

	limited, err := store.TopScores("breakout", 2)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 scores with limit, got %d", len(limited))
	}
}

func TestStoreHighScoreAndClear(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("breakout")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty table, got %d", high)
	}

	store.SaveScore("breakout", 30)
	store.SaveScore("breakout", 90)

	high, _ = store.HighScore("breakout")
	if high != 90 {
		t.Errorf("Expected high score 90, got %d", high)
	}

	if err := store.ClearScores("breakout"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	scores, _ := store.TopScores("breakout", 10)
	if len(scores) != 0 {
		t.Errorf("Expected no scores after clear, got %d", len(scores))
	}
}

func TestSessionResults(t *testing.T) {
	store := openTestStore(t)

	runID, err := store.SaveSessionResult(SessionResult{
		GameID:        "breakout",
		Player:        "local",
		Outcome:       "won",
		BricksCleared: 60,
		BricksTotal:   60,
		Ticks:         1800,
	})
	if err != nil {
		t.Fatalf("SaveSessionResult() failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected a generated run ID")
	}

	got, err := store.SessionResultByRunID(runID)
	if err != nil {
		t.Fatalf("SessionResultByRunID() failed: %v", err)
	}
	if got.Outcome != "won" || got.BricksCleared != 60 || got.Ticks != 1800 || got.Player != "local" {
		t.Errorf("unexpected result: %+v", got)
	}

	explicit, err := store.SaveSessionResult(SessionResult{
		RunID:         "fixed-run",
		GameID:        "breakout",
		Outcome:       "lost",
		BricksCleared: 12,
		BricksTotal:   60,
	})
	if err != nil {
		t.Fatalf("SaveSessionResult() failed: %v", err)
	}
	if explicit != "fixed-run" {
		t.Errorf("explicit run ID should be kept, got %q", explicit)
	}

	if _, err := store.SaveSessionResult(SessionResult{RunID: "fixed-run", GameID: "breakout", Outcome: "lost"}); err == nil {
		t.Error("duplicate run ID should fail")
	}

	recent, err := store.RecentSessionResults("breakout", 10)
	if err != nil {
		t.Fatalf("RecentSessionResults() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(recent))
	}
	if recent[0].RunID != "fixed-run" {
		t.Errorf("newest result should come first, got %q", recent[0].RunID)
	}

	counts, err := store.OutcomeCounts("breakout")
	if err != nil {
		t.Fatalf("OutcomeCounts() failed: %v", err)
	}
	if counts["won"] != 1 || counts["lost"] != 1 {
		t.Errorf("unexpected outcome counts: %v", counts)
	}
}

func TestSessionResultNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SessionResultByRunID("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
