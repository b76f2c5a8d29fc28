package system

import (
	"slices"
	"time"

	"github.com/antitower/server/internal/component"
	"github.com/antitower/server/internal/core/ecs"
	"github.com/antitower/server/internal/core/event"
	coresys "github.com/antitower/server/internal/core/system"
	"github.com/antitower/server/internal/group"
	"github.com/antitower/server/internal/world"
)

// CollisionRegistrySystem rebuilds every Collider.Colliding list from the
// current positions. Phase 3 (Collision), first.
//
// A pair overlaps when distance < rA + rB. Coincident centres (distance 0)
// never overlap. When both sides carry CollisionGroups the mask check runs
// before any distance math.
type CollisionRegistrySystem struct {
	world   *world.State
	grid    *world.Grid // nil = brute force
	scratch map[ecs.EntityID][]ecs.EntityID
}

func NewCollisionRegistrySystem(ws *world.State) *CollisionRegistrySystem {
	s := &CollisionRegistrySystem{
		world:   ws,
		scratch: make(map[ecs.EntityID][]ecs.EntityID, 64),
	}
	if ws.Settings.BroadphaseCell > 0 {
		s.grid = world.NewGrid(ws.Settings.BroadphaseCell)
	}
	return s
}

func (s *CollisionRegistrySystem) Phase() coresys.Phase { return coresys.PhaseCollision }

func (s *CollisionRegistrySystem) Update(_ time.Duration) {
	for k, v := range s.scratch {
		s.scratch[k] = v[:0]
	}

	ids := s.world.Colliders.IDs()
	if s.grid == nil {
		for _, a := range ids {
			for _, b := range ids {
				s.test(a, b)
			}
		}
	} else {
		s.broadphase(ids)
	}

	// clear-then-extend so each list holds exactly this tick's contacts
	s.world.Colliders.Each(func(id ecs.EntityID, c *component.Collider) {
		c.Colliding = append(c.Colliding[:0], s.scratch[id]...)
	})
}

func (s *CollisionRegistrySystem) broadphase(ids []ecs.EntityID) {
	s.grid.Reset()
	var maxRadius float64
	for _, id := range ids {
		t, ok := s.world.Transforms.Get(id)
		if !ok {
			continue
		}
		c, _ := s.world.Colliders.Get(id)
		maxRadius = max(maxRadius, c.Radius)
		s.grid.Add(id, t.Position.X, t.Position.Y)
	}

	var candidates []ecs.EntityID
	for _, a := range ids {
		t, ok := s.world.Transforms.Get(a)
		if !ok {
			continue
		}
		c, _ := s.world.Colliders.Get(a)
		candidates = append(candidates[:0], s.grid.Nearby(t.Position.X, t.Position.Y, c.Radius+maxRadius)...)
		// same order as the brute-force walk
		slices.Sort(candidates)
		for _, b := range candidates {
			s.test(a, b)
		}
	}
}

func (s *CollisionRegistrySystem) test(a, b ecs.EntityID) {
	if a == b {
		return
	}
	ga, okA := s.world.CollisionGroups.Get(a)
	gb, okB := s.world.CollisionGroups.Get(b)
	if okA && okB && !group.Interacts(group.Groups(*ga), group.Groups(*gb), s.world.Settings.Policy) {
		return
	}

	ta, ok := s.world.Transforms.Get(a)
	if !ok {
		return
	}
	tb, ok := s.world.Transforms.Get(b)
	if !ok {
		return
	}
	ca, _ := s.world.Colliders.Get(a)
	cb, _ := s.world.Colliders.Get(b)

	d := ta.Position.Distance(tb.Position)
	if d == 0 {
		return
	}
	if d < ca.Radius+cb.Radius {
		s.scratch[a] = append(s.scratch[a], b)
	}
}

// CollisionEventSystem turns the registry into directional Collision events
// and maintains the start/end latch. Phase 3 (Collision), after the registry.
//
// Pairs of the same Kind are ignored.
type CollisionEventSystem struct {
	world *world.State
}

func NewCollisionEventSystem(ws *world.State) *CollisionEventSystem {
	return &CollisionEventSystem{world: ws}
}

func (s *CollisionEventSystem) Phase() coresys.Phase { return coresys.PhaseCollision }

func (s *CollisionEventSystem) Update(_ time.Duration) {
	ws := s.world
	ws.Colliders.Each(func(id ecs.EntityID, c *component.Collider) {
		if !ws.Alive(id) {
			return
		}
		kind := ws.KindOf(id)
		for _, other := range c.Colliding {
			if ws.KindOf(other) == kind || !ws.Alive(other) {
				continue
			}
			event.Emit(ws.Bus, event.Collision{Entity: id, Other: other})
			if ws.Records.Observe(world.Pair{Entity: id, Other: other}) {
				event.Emit(ws.Bus, event.CollisionStarted{Entity: id, Other: other})
			}
		}
	})
	for _, p := range ws.Records.EndTick() {
		event.Emit(ws.Bus, event.CollisionEnded{Entity: p.Entity, Other: p.Other})
	}
}
