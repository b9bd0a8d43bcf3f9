package main

import (
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/badski/internal/games/ski"
	"github.com/vovakirdan/badski/internal/storage"
)

type brokenStore struct{}

func (brokenStore) LoadProfile() (ski.Profile, error)         { return ski.Profile{}, errors.New("disk gone") }
func (brokenStore) RunEnded(ski.RunEnd) error                 { return nil }
func (brokenStore) InventoryChanged(ski.InventoryDelta) error { return nil }

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestSimulateTallies(t *testing.T) {
	opts := simOptions{Mode: ski.ModeMission, Runs: 3, BaseSeed: 7, TickRate: 60, MaxTime: time.Second}
	sum, err := simulate(opts, nil, quietLogger())
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	if sum.Runs != 3 || sum.Won+sum.Lost+sum.Left != 3 {
		t.Errorf("summary = %+v, want 3 runs tallied", sum)
	}
}

func TestSimulateReturnsProfileError(t *testing.T) {
	opts := simOptions{Mode: ski.ModeFree, Runs: 2, BaseSeed: 1, MaxTime: time.Second}
	sum, err := simulate(opts, brokenStore{}, quietLogger())
	if err == nil {
		t.Fatal("simulate() should return the profile error instead of exiting")
	}
	if sum.Runs != 0 {
		t.Errorf("Runs = %d, want 0", sum.Runs)
	}
}

func TestSimulateSavesRuns(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "sim.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	opts := simOptions{Mode: ski.ModeFree, Runs: 2, BaseSeed: 3, TickRate: 60, MaxTime: 2 * time.Second}
	if _, err := simulate(opts, store, quietLogger()); err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	runs, err := store.RecentRuns("ski_free", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("saved %d runs, want 2", len(runs))
	}
}
