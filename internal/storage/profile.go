package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/vovakirdan/badski/internal/config"
	"github.com/vovakirdan/badski/internal/games/ski"
)

// ErrNotEnoughPoints is returned when a purchase costs more than the
// player has.
var ErrNotEnoughPoints = errors.New("storage: not enough points")

// ErrMaxLevel is returned when an upgrade cannot be bought again.
var ErrMaxLevel = errors.New("storage: upgrade already at max level")

// querier is the subset of *sql.DB and *sql.Tx used by profile reads.
type querier interface {
	QueryRow(query string, args ...any) *sql.Row
}

func loadProfile(q querier) (ski.Profile, error) {
	var p ski.Profile
	u := &p.Upgrades
	err := q.QueryRow(
		`SELECT speed_level, jump_level, good_spawn_level, bad_spawn_level,
		        rockets, extra_lives, start_ghost_seconds,
		        points, total_earned, best_free_distance
		 FROM profile WHERE id = 1`,
	).Scan(
		&u.SpeedLevel, &u.JumpLevel, &u.GoodSpawnLevel, &u.BadSpawnLevel,
		&u.Rockets, &u.ExtraLives, &u.StartGhostSeconds,
		&p.Points, &p.TotalEarned, &p.BestFreeDistance,
	)
	if err != nil {
		return ski.Profile{}, fmt.Errorf("storage: cannot load profile: %w", err)
	}
	return p, nil
}

// LoadProfile returns the persisted upgrades, inventory and points.
func (s *Store) LoadProfile() (ski.Profile, error) {
	return loadProfile(s.db)
}

// SaveUpgrades overwrites the upgrade levels and inventory.
func (s *Store) SaveUpgrades(u config.Upgrades) error {
	_, err := s.db.Exec(
		`UPDATE profile SET
		   speed_level = ?, jump_level = ?, good_spawn_level = ?, bad_spawn_level = ?,
		   rockets = ?, extra_lives = ?, start_ghost_seconds = ?
		 WHERE id = 1`,
		u.SpeedLevel, u.JumpLevel, u.GoodSpawnLevel, u.BadSpawnLevel,
		u.Rockets, u.ExtraLives, u.StartGhostSeconds,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save upgrades: %w", err)
	}
	return nil
}

// AddPoints credits spendable points without touching lifetime earnings.
func (s *Store) AddPoints(points int) error {
	_, err := s.db.Exec(`UPDATE profile SET points = MAX(points + ?, 0) WHERE id = 1`, points)
	if err != nil {
		return fmt.Errorf("storage: cannot add points: %w", err)
	}
	return nil
}

// Purchase buys one level or item of kind with points, atomically.
func (s *Store) Purchase(kind string, cfg config.UpgradeConfig) (ski.Profile, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return ski.Profile{}, fmt.Errorf("storage: cannot begin purchase: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	p, err := loadProfile(tx)
	if err != nil {
		return ski.Profile{}, err
	}
	cost, ok := p.Upgrades.Cost(kind, cfg)
	if !ok {
		return p, fmt.Errorf("%w: %s", ErrMaxLevel, kind)
	}
	if p.Points < cost {
		return p, fmt.Errorf("%w: %s costs %d, have %d", ErrNotEnoughPoints, kind, cost, p.Points)
	}

	p.Points -= cost
	p.Upgrades = p.Upgrades.Apply(kind, cfg)
	u := p.Upgrades
	_, err = tx.Exec(
		`UPDATE profile SET
		   speed_level = ?, jump_level = ?, good_spawn_level = ?, bad_spawn_level = ?,
		   rockets = ?, extra_lives = ?, start_ghost_seconds = ?, points = ?
		 WHERE id = 1`,
		u.SpeedLevel, u.JumpLevel, u.GoodSpawnLevel, u.BadSpawnLevel,
		u.Rockets, u.ExtraLives, u.StartGhostSeconds, p.Points,
	)
	if err != nil {
		return ski.Profile{}, fmt.Errorf("storage: cannot save purchase: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return ski.Profile{}, fmt.Errorf("storage: cannot commit purchase: %w", err)
	}
	return p, nil
}

// InventoryChanged applies an inventory delta reported by a run.
// Counts never go below zero.
func (s *Store) InventoryChanged(d ski.InventoryDelta) error {
	query := `UPDATE profile SET
	            rockets = MAX(rockets + ?, 0),
	            extra_lives = MAX(extra_lives + ?, 0)
	          WHERE id = 1`
	if d.GhostStartUsed {
		query = `UPDATE profile SET
		           rockets = MAX(rockets + ?, 0),
		           extra_lives = MAX(extra_lives + ?, 0),
		           start_ghost_seconds = 0
		         WHERE id = 1`
	}
	if _, err := s.db.Exec(query, d.Rockets, d.ExtraLives); err != nil {
		return fmt.Errorf("storage: cannot update inventory: %w", err)
	}
	return nil
}
