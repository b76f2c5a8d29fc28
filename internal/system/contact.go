package system

import (
	"time"

	"github.com/antitower/server/internal/component"
	"github.com/antitower/server/internal/core/ecs"
	"github.com/antitower/server/internal/core/event"
	coresys "github.com/antitower/server/internal/core/system"
	"github.com/antitower/server/internal/scripting"
	"github.com/antitower/server/internal/vmath"
	"github.com/antitower/server/internal/world"
)

// CollisionDamageSystem applies the Other side's CollisionDamage to the
// Entity side's Health for every Collision this tick. A Fragile source is
// removed once it has dealt damage. Phase 4 (EntityUpdates), first.
type CollisionDamageSystem struct {
	world *world.State
	lua   *scripting.Engine
}

func NewCollisionDamageSystem(ws *world.State, lua *scripting.Engine) *CollisionDamageSystem {
	return &CollisionDamageSystem{world: ws, lua: lua}
}

func (s *CollisionDamageSystem) Phase() coresys.Phase { return coresys.PhaseEntityUpdates }

func (s *CollisionDamageSystem) Update(_ time.Duration) {
	ws := s.world
	for _, ev := range event.Read[event.Collision](ws.Bus) {
		dmg, ok := ws.CollisionDamages.Get(ev.Other)
		if !ok {
			continue
		}
		h, ok := ws.Healths.Get(ev.Entity)
		if !ok {
			continue
		}
		h.Value -= s.lua.CalcCollisionDamage(scripting.CollisionContext{
			SourceKind: ws.KindOf(ev.Other).String(),
			TargetKind: ws.KindOf(ev.Entity).String(),
			Base:       dmg.Amount,
		})
		if ws.Fragiles.Has(ev.Other) {
			ws.Despawn(ev.Other)
		}
	}
}

// SeparationSystem pushes solid bodies out of whatever they overlap.
// Only the Entity side of each event moves, and only when it carries
// Velocity and is not Static. Bodies with Bounce are left to BounceSystem.
// Phase 4 (EntityUpdates), after damage.
type SeparationSystem struct {
	world *world.State
}

func NewSeparationSystem(ws *world.State) *SeparationSystem {
	return &SeparationSystem{world: ws}
}

func (s *SeparationSystem) Phase() coresys.Phase { return coresys.PhaseEntityUpdates }

func (s *SeparationSystem) Update(_ time.Duration) {
	for _, ev := range event.Read[event.Collision](s.world.Bus) {
		if s.world.Bounces.Has(ev.Entity) {
			continue
		}
		if c, ok := contactOf(s.world, ev.Entity, ev.Other); ok {
			c.push(s.world)
		}
	}
}

// BounceSystem separates bouncing bodies and reflects the normal component
// of their velocity, v += -(1+e)(v·n)n, for every contact event of the
// body. Phase 4 (EntityUpdates), after separation.
type BounceSystem struct {
	world *world.State
}

func NewBounceSystem(ws *world.State) *BounceSystem {
	return &BounceSystem{world: ws}
}

func (s *BounceSystem) Phase() coresys.Phase { return coresys.PhaseEntityUpdates }

func (s *BounceSystem) Update(_ time.Duration) {
	ws := s.world
	for _, ev := range event.Read[event.Collision](ws.Bus) {
		b, ok := ws.Bounces.Get(ev.Entity)
		if !ok {
			continue
		}
		c, ok := contactOf(ws, ev.Entity, ev.Other)
		if !ok {
			continue
		}
		// the push depends on what overlap is left, the impulse does not:
		// both sides of a head-on pair reflect even after the first push
		c.push(ws)
		v, _ := ws.Velocities.Get(ev.Entity)
		v.Value = Reflect(v.Value, c.normal, b.Restitution)
	}
}

// Reflect applies a restitution impulse along the unit normal n. Velocities
// already leaving the contact are returned unchanged.
func Reflect(v, n vmath.Vec3, restitution float64) vmath.Vec3 {
	vn := v.Dot(n)
	if vn >= 0 {
		return v
	}
	return v.Add(n.Scale(-(1 + restitution) * vn))
}

// contact is the planar relation of a movable body e to the body o it hit.
type contact struct {
	body    *component.Transform
	normal  vmath.Vec3 // unit, from o towards e, Z = 0
	overlap float64    // rE + rO - planar distance, <= 0 once clear
}

// contactOf measures e against o. It fails when e is immovable, either
// side lost its transform or collider, or the centres coincide on the plane.
func contactOf(ws *world.State, e, o ecs.EntityID) (contact, bool) {
	if !ws.Velocities.Has(e) || ws.Statics.Has(e) {
		return contact{}, false
	}
	te, ok := ws.Transforms.Get(e)
	if !ok {
		return contact{}, false
	}
	to, ok := ws.Transforms.Get(o)
	if !ok {
		return contact{}, false
	}
	ce, ok := ws.Colliders.Get(e)
	if !ok {
		return contact{}, false
	}
	co, ok := ws.Colliders.Get(o)
	if !ok {
		return contact{}, false
	}

	delta := te.Position.Sub(to.Position.WithZ(te.Position.Z))
	dist := delta.Len()
	if dist == 0 {
		return contact{}, false
	}
	return contact{
		body:    te,
		normal:  delta.Scale(1 / dist),
		overlap: ce.Radius + co.Radius - dist,
	}, true
}

// push moves the body clear by the remaining overlap plus the separation
// buffer. A pair that no longer overlaps is left alone.
func (c contact) push(ws *world.State) {
	if c.overlap <= 0 {
		return
	}
	c.body.Position = c.body.Position.Add(c.normal.Scale(c.overlap + ws.Settings.SeparationBuffer))
}
