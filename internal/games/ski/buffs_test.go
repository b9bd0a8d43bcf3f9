package ski

import (
	"testing"
	"time"
)

func TestBuffsBoostRefundedOnce(t *testing.T) {
	tests := []struct {
		name   string
		cancel bool
	}{
		{"natural expiry", false},
		{"cancelled by bad item", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffs()
			b.AddBoost(12, 10*time.Second)

			total := 0.0
			if tt.cancel {
				total += b.CancelGood()
			}
			total += b.Expire(5 * time.Second)
			total += b.Expire(10 * time.Second)
			total += b.Expire(20 * time.Second)
			total += b.CancelGood()

			if total != 12 {
				t.Errorf("total refunded = %v, want 12", total)
			}
		})
	}
}

func TestBuffsStackBoost(t *testing.T) {
	b := NewBuffs()
	b.AddBoost(10, 3*time.Second)
	b.AddBoost(5, 2*time.Second)

	if b.BoostAmount != 15 {
		t.Errorf("BoostAmount = %v, want 15", b.BoostAmount)
	}
	if got := b.Expire(2500 * time.Millisecond); got != 0 {
		t.Errorf("Expire before latest deadline refunded %v", got)
	}
	if got := b.Expire(3 * time.Second); got != 15 {
		t.Errorf("Expire at deadline refunded %v, want 15", got)
	}
}

func TestBuffsCancelGoodKeepsInvulnerability(t *testing.T) {
	b := NewBuffs()
	b.GhostUntil = 5 * time.Second
	b.SuperUntil = 5 * time.Second
	b.InvulnerableUntil = 2 * time.Second

	b.CancelGood()

	now := time.Second
	if b.Ghost(now) || b.Super(now) {
		t.Error("ghost and super-speed should be cancelled")
	}
	if !b.Invulnerable(now) {
		t.Error("invulnerability should survive a bad item")
	}
	if !b.Protected(now) {
		t.Error("Protected() should hold while invulnerable")
	}
}

func TestBuffsMultiplier(t *testing.T) {
	b := NewBuffs()
	b.SuperUntil = 2 * time.Second
	b.BadMultiplier = 0.5
	b.BadUntil = time.Second

	tests := []struct {
		now  time.Duration
		want float64
	}{
		{500 * time.Millisecond, 1.0},
		{1500 * time.Millisecond, 2.0},
		{3 * time.Second, 1.0},
	}
	for _, tt := range tests {
		if got := b.Multiplier(tt.now, 2); got != tt.want {
			t.Errorf("Multiplier(%v) = %v, want %v", tt.now, got, tt.want)
		}
	}

	b.Expire(time.Second)
	if b.BadMultiplier != 1 {
		t.Errorf("BadMultiplier after expiry = %v, want 1", b.BadMultiplier)
	}
}

func TestBuffsRemaining(t *testing.T) {
	b := NewBuffs()
	b.GhostUntil = 2500 * time.Millisecond
	b.AddBoost(3, 10*time.Second)

	got := b.Remaining(time.Second)
	if got.Ghost != 2 {
		t.Errorf("Ghost = %d, want 2 (rounded up)", got.Ghost)
	}
	if got.SpeedBoost != 9 {
		t.Errorf("SpeedBoost = %d, want 9", got.SpeedBoost)
	}
	if got.SuperSpeed != 0 || got.Slowed != 0 || got.Invulnerable != 0 {
		t.Errorf("inactive buffs should report 0, got %+v", got)
	}
}

func TestBuffsQueriesOnSnapshot(t *testing.T) {
	snapshot := func() RunState {
		s := RunState{Buffs: NewBuffs()}
		s.Buffs.GhostUntil = 2 * time.Second
		s.Buffs.InvulnerableUntil = time.Second
		return s
	}

	// Queries work on values returned by accessors, not only on fields.
	if !snapshot().Buffs.Ghost(0) || !snapshot().Buffs.Protected(time.Second) {
		t.Error("ghost should protect until its deadline")
	}
	if snapshot().Buffs.Invulnerable(time.Second) {
		t.Error("invulnerability deadline is exclusive")
	}
	if got := snapshot().Buffs.Remaining(500 * time.Millisecond).Ghost; got != 2 {
		t.Errorf("Remaining().Ghost = %d, want 2", got)
	}
	if snapshot().Paused() {
		t.Error("a fresh snapshot is not paused")
	}
}
