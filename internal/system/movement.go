package system

import (
	"math"
	"time"

	"github.com/antitower/server/internal/component"
	"github.com/antitower/server/internal/core/ecs"
	coresys "github.com/antitower/server/internal/core/system"
	"github.com/antitower/server/internal/input"
	"github.com/antitower/server/internal/world"
)

// MovementSystem integrates every kinematic body with semi-implicit Euler:
// velocity first, then position with the new velocity. Phase 2 (Movement).
type MovementSystem struct {
	world *world.State
}

func NewMovementSystem(ws *world.State) *MovementSystem {
	return &MovementSystem{world: ws}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseMovement }

func (s *MovementSystem) Update(dt time.Duration) {
	sec := dt.Seconds()
	ecs.Each2(s.world.Accelerations, s.world.Velocities, func(_ ecs.EntityID, a *component.Acceleration, v *component.Velocity) {
		v.Value = v.Value.Add(a.Value.Scale(sec))
	})
	ecs.Each2(s.world.Velocities, s.world.Transforms, func(_ ecs.EntityID, v *component.Velocity, t *component.Transform) {
		t.Position = t.Position.Add(v.Value.Scale(sec))
	})
}

// BubbleDriftSystem wobbles bubbles on a circle driven by total elapsed
// time. The offset is per tick, not scaled by dt. Phase 2 (Movement).
type BubbleDriftSystem struct {
	world *world.State
}

const bubbleDrift = 0.4

func NewBubbleDriftSystem(ws *world.State) *BubbleDriftSystem {
	return &BubbleDriftSystem{world: ws}
}

func (s *BubbleDriftSystem) Phase() coresys.Phase { return coresys.PhaseMovement }

func (s *BubbleDriftSystem) Update(_ time.Duration) {
	elapsed := s.world.Elapsed().Seconds()
	ecs.Each2(s.world.Bubbles, s.world.Transforms, func(_ ecs.EntityID, b *component.Bubble, t *component.Transform) {
		t.Position.X += bubbleDrift * math.Cos(elapsed*b.Speed)
		t.Position.Y += bubbleDrift * math.Sin(elapsed*b.Speed)
	})
}

// PlayerMoveSystem moves the player with the held arrow keys at Speed
// units per second. Phase 0 (Input), after InputSystem.
type PlayerMoveSystem struct {
	world *world.State
	keys  *input.State
}

func NewPlayerMoveSystem(ws *world.State, keys *input.State) *PlayerMoveSystem {
	return &PlayerMoveSystem{world: ws, keys: keys}
}

func (s *PlayerMoveSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *PlayerMoveSystem) Update(dt time.Duration) {
	ecs.Each2(s.world.Players, s.world.Transforms, func(_ ecs.EntityID, p *component.Player, t *component.Transform) {
		step := p.Speed * dt.Seconds()
		if s.keys.Pressed(input.KeyUp) {
			t.Position.Y += step
		}
		if s.keys.Pressed(input.KeyDown) {
			t.Position.Y -= step
		}
		if s.keys.Pressed(input.KeyRight) {
			t.Position.X += step
		}
		if s.keys.Pressed(input.KeyLeft) {
			t.Position.X -= step
		}
	})
}
