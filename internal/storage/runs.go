package storage

import (
	"fmt"
	"time"

	"github.com/vovakirdan/badski/internal/games/ski"
)

// RunRecord is one finished run in the history table.
type RunRecord struct {
	ID           int64
	GameID       string
	MissionID    string
	Won          bool
	Exited       bool
	Score        int
	Distance     float64
	Duration     time.Duration
	CloseCalls   int
	BoundaryHits int
	CreatedAt    time.Time
}

// RunEnded records a finished run: history row, score, points earned and
// the free-ski personal best.
func (s *Store) RunEnded(end ski.RunEnd) error {
	gameID := end.Mode.GameID()
	score := max(end.FinalScore, 0)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin run save: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.Exec(
		`INSERT INTO runs
		 (game_id, mission_id, won, exited, score, distance, duration_ms, close_calls, boundary_hits)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		gameID, end.MissionID, end.Won, end.Exited, score, end.DistanceTraveled,
		end.Duration.Milliseconds(), end.CloseCalls, end.BoundaryHits,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save run: %w", err)
	}

	if score > 0 {
		if _, err := saveScore(tx, gameID, score); err != nil {
			return err
		}
	}

	best := 0.0
	if end.Distance != nil {
		best = *end.Distance
	}
	_, err = tx.Exec(
		`UPDATE profile SET
		   points = points + ?,
		   total_earned = total_earned + ?,
		   best_free_distance = MAX(best_free_distance, ?)
		 WHERE id = 1`,
		score, score, best,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot credit points: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return nil
}

// RecentRuns returns the latest runs, newest first. An empty gameID
// returns runs of every mode.
func (s *Store) RecentRuns(gameID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, mission_id, won, exited, score, distance,
		        duration_ms, close_calls, boundary_hits, created_at
		 FROM runs
		 WHERE ? = '' OR game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var durationMs int64
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.GameID, &r.MissionID, &r.Won, &r.Exited, &r.Score, &r.Distance,
			&durationMs, &r.CloseCalls, &r.BoundaryHits, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan run: %w", err)
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// ModeStats aggregates the run history of one mode.
type ModeStats struct {
	GameID        string
	Runs          int
	Wins          int
	Crashes       int
	Abandoned     int
	BestScore     int
	BestDistance  float64
	TotalDistance float64
	TotalTime     time.Duration
	CloseCalls    int
	LastPlayed    time.Time
}

// AvgDistance returns the mean distance per run.
func (m ModeStats) AvgDistance() float64 {
	if m.Runs == 0 {
		return 0
	}
	return m.TotalDistance / float64(m.Runs)
}

// Stats aggregates the run history of a mode.
func (s *Store) Stats(gameID string) (ModeStats, error) {
	st := ModeStats{GameID: gameID}
	var totalMs int64
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(won), 0),
		        COALESCE(SUM(CASE WHEN won = 0 AND exited = 0 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(exited), 0),
		        COALESCE(MAX(score), 0),
		        COALESCE(MAX(distance), 0),
		        COALESCE(SUM(distance), 0),
		        COALESCE(SUM(duration_ms), 0),
		        COALESCE(SUM(close_calls), 0),
		        MAX(created_at)
		 FROM runs WHERE game_id = ?`,
		gameID,
	).Scan(
		&st.Runs, &st.Wins, &st.Crashes, &st.Abandoned,
		&st.BestScore, &st.BestDistance, &st.TotalDistance,
		&totalMs, &st.CloseCalls, &lastPlayed,
	)
	if err != nil {
		return ModeStats{}, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	st.TotalTime = time.Duration(totalMs) * time.Millisecond
	st.LastPlayed = parseTime(lastPlayed)
	return st, nil
}

// Ensure Store can back a ski game
var _ ski.Store = (*Store)(nil)
