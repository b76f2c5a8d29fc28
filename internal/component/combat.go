package component

import (
	"github.com/antitower/server/internal/core/ecs"
	"github.com/antitower/server/internal/core/timer"
)

type Health struct {
	Value float64
}

// Dead reports whether the entity is due for the despawn sweep.
func (h *Health) Dead() bool { return h.Value <= 0 }

// Tracker gives an entity a detection range.
type Tracker struct {
	Vision float64
}

// Target makes an entity visible to trackers.
type Target struct{}

// Attack is the static damage-per-hit and cadence of an attacker.
type Attack struct {
	Amount float64
	Rate   *timer.Timer
}

// CombatState is the per-attacker engagement state.
type CombatState uint8

const (
	Idle CombatState = iota
	Engaged
)

func (s CombatState) String() string {
	if s == Engaged {
		return "engaged"
	}
	return "idle"
}

// Combat holds the attacker→target pairing. Target is only meaningful
// while State is Engaged.
type Combat struct {
	State  CombatState
	Target ecs.EntityID
}

func (c *Combat) Engage(target ecs.EntityID) {
	c.State = Engaged
	c.Target = target
}

func (c *Combat) Disengage() {
	c.State = Idle
	c.Target = ecs.None
}

func (c *Combat) Engaged() bool { return c.State == Engaged }
