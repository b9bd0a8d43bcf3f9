package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/badski/internal/games/ski"
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
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

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

func TestStoreReopenKeepsProfile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.AddPoints(120); err != nil {
		t.Fatalf("AddPoints() failed: %v", err)
	}
	store.Close()

	// Migrations must not reset the profile row
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	p, err := store.LoadProfile()
	if err != nil {
		t.Fatalf("LoadProfile() failed: %v", err)
	}
	if p.Points != 120 {
		t.Errorf("Points = %d, want 120", p.Points)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("ski", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	// Different mode
	if _, err := store.SaveScore("ski_free", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("ski", 10)
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
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
	}

	freeScores, err := store.TopScores("ski_free", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(freeScores) != 1 {
		t.Errorf("Expected 1 free ski score, got %d", len(freeScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("ski", (i+1)*100)
	}

	scores, err := store.TopScores("ski", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("ski")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty mode, got %d", high)
	}

	store.SaveScore("ski", 100)
	store.SaveScore("ski", 300)
	store.SaveScore("ski", 200)

	high, err = store.HighScore("ski")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("ski", 100)
	store.SaveScore("ski", 200)
	store.SaveScore("ski_free", 300)

	if err := store.ClearScores("ski"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	missionScores, _ := store.TopScores("ski", 10)
	if len(missionScores) != 0 {
		t.Errorf("Expected 0 mission scores after clear, got %d", len(missionScores))
	}

	freeScores, _ := store.TopScores("ski_free", 10)
	if len(freeScores) != 1 {
		t.Errorf("Free ski scores should not be affected by clearing missions")
	}

	// Clearing history leaves points alone
	if err := store.RunEnded(ski.RunEnd{Mode: ski.ModeMission, FinalScore: 50}); err != nil {
		t.Fatalf("RunEnded() failed: %v", err)
	}
	if err := store.ClearScores("ski"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if runs, _ := store.RecentRuns("ski", 10); len(runs) != 0 {
		t.Errorf("runs after clear = %d, want 0", len(runs))
	}
	if p, _ := store.LoadProfile(); p.Points != 50 {
		t.Errorf("Points = %d, want 50 after clear", p.Points)
	}
}

func TestStoreSchemaVersion(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 2; i++ {
		store, err := Open(dbPath)
		if err != nil {
			t.Fatalf("Open() #%d failed: %v", i+1, err)
		}
		v, err := store.SchemaVersion()
		store.Close()
		if err != nil {
			t.Fatalf("SchemaVersion() failed: %v", err)
		}
		if v != len(migrations) {
			t.Errorf("open #%d: version = %d, want %d", i+1, v, len(migrations))
		}
	}
}

func TestStoreTopScoresTiesKeepOrder(t *testing.T) {
	store := openTestStore(t)

	first, _ := store.SaveScore("ski", 500)
	second, _ := store.SaveScore("ski", 500)

	scores, err := store.TopScores("ski", 2)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 2 || scores[0].ID != first || scores[1].ID != second {
		t.Errorf("scores = %+v, want the earlier tie first", scores)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	ends := []ski.RunEnd{
		{Mode: ski.ModeMission, Won: true, FinalScore: 300, DistanceTraveled: 1000, Duration: 40 * time.Second, CloseCalls: 2},
		{Mode: ski.ModeMission, FinalScore: 100, DistanceTraveled: 400, Duration: 20 * time.Second, CloseCalls: 1},
		{Mode: ski.ModeMission, Exited: true, FinalScore: 10, DistanceTraveled: 100, Duration: 5 * time.Second},
		{Mode: ski.ModeRoadTest, FinalScore: 999, DistanceTraveled: 5000},
	}
	for _, e := range ends {
		if err := store.RunEnded(e); err != nil {
			t.Fatalf("RunEnded() failed: %v", err)
		}
	}

	st, err := store.Stats("ski")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Runs != 3 || st.Wins != 1 || st.Crashes != 1 || st.Abandoned != 1 {
		t.Errorf("outcomes = %d runs %d/%d/%d, want 3 runs 1/1/1", st.Runs, st.Wins, st.Crashes, st.Abandoned)
	}
	if st.BestScore != 300 || st.BestDistance != 1000 || st.CloseCalls != 3 {
		t.Errorf("stats = %+v", st)
	}
	if st.AvgDistance() != 500 {
		t.Errorf("AvgDistance() = %v, want 500", st.AvgDistance())
	}
	if st.TotalTime != 65*time.Second {
		t.Errorf("TotalTime = %v, want 65s", st.TotalTime)
	}
	if st.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	empty, err := store.Stats("ski_free")
	if err != nil {
		t.Fatalf("Stats() on empty mode failed: %v", err)
	}
	if empty.Runs != 0 || empty.AvgDistance() != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
