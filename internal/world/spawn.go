package world

import (
	"go.uber.org/zap"

	"github.com/antitower/server/internal/component"
	"github.com/antitower/server/internal/core/ecs"
	"github.com/antitower/server/internal/core/event"
	"github.com/antitower/server/internal/core/timer"
	"github.com/antitower/server/internal/vmath"
)

// Spawn creates an entity of the given kind at pos with the archetype's full
// component bundle. The archetype's layer replaces pos.Z. It returns false
// when the archetype table has no entry for kind.
func (s *State) Spawn(kind component.Kind, pos vmath.Vec3) (ecs.EntityID, bool) {
	a := s.Archetypes.Get(kind)
	if a == nil {
		s.log.Warn("spawn: unknown archetype", zap.Stringer("kind", kind))
		return ecs.None, false
	}

	id := s.ECS.CreateEntity()
	k := kind
	s.Kinds.Set(id, &k)
	s.Names.Set(id, &component.Name{Value: a.Name})
	if a.Texture != "" {
		s.Sprites.Set(id, &component.Sprite{Texture: a.Texture})
	}
	s.Transforms.Set(id, &component.Transform{Position: pos.WithZ(a.Layer)})

	if a.Radius > 0 {
		s.Colliders.Set(id, &component.Collider{Radius: a.Radius})
	}
	if a.HasCollisionGroups() {
		g := component.CollisionGroups(a.CollisionGroups())
		s.CollisionGroups.Set(id, &g)
	}
	if a.HasDetectionGroups() {
		g := component.DetectionGroups(a.DetectionGroups())
		s.DetectionGroups.Set(id, &g)
	}
	if a.CollisionDamage > 0 {
		s.CollisionDamages.Set(id, &component.CollisionDamage{Amount: a.CollisionDamage})
	}
	if a.Restitution != nil {
		s.Bounces.Set(id, &component.Bounce{Restitution: *a.Restitution})
	}
	if a.Fragile {
		s.Fragiles.Set(id, &component.Fragile{})
	}
	if a.Static {
		s.Statics.Set(id, &component.Static{})
	}
	if a.Target {
		s.Targets.Set(id, &component.Target{})
	}
	if a.Health > 0 {
		s.Healths.Set(id, &component.Health{Value: a.Health})
	}
	if a.Vision > 0 {
		s.Trackers.Set(id, &component.Tracker{Vision: a.Vision})
	}
	if a.AccelRate > 0 {
		s.Steerings.Set(id, &component.Steering{AccelRate: a.AccelRate})
	}
	if a.Attack != nil {
		s.Attacks.Set(id, &component.Attack{
			Amount: a.Attack.Amount,
			Rate:   timer.New(a.AttackRate(), timer.Repeating),
		})
		s.Combats.Set(id, &component.Combat{})
	}
	if a.Kinematic {
		s.Velocities.Set(id, &component.Velocity{})
		s.Accelerations.Set(id, &component.Acceleration{})
	}
	if a.LifetimeSeconds > 0 {
		s.Lifetimes.Set(id, &component.Lifetime{Timer: timer.New(a.Lifetime(), timer.Once)})
	}

	switch kind {
	case component.KindPlayer:
		s.Players.Set(id, &component.Player{Speed: s.Settings.PlayerSpeed})
	case component.KindTower:
		s.Towers.Set(id, &component.Tower{Rate: timer.New(a.SpawnRate(), timer.Repeating)})
		if banner, ok := s.Spawn(component.KindTowerBanner, pos); ok {
			s.ECS.SetParent(banner, id)
		}
	case component.KindBubbleSpawner:
		s.BubbleSpawners.Set(id, &component.BubbleSpawner{Rate: timer.New(a.SpawnRate(), timer.Repeating)})
	case component.KindBubble:
		s.Bubbles.Set(id, &component.Bubble{Speed: a.Speed})
	case component.KindHarvester:
		s.Harvesters.Set(id, &component.Harvester{GenerationRate: a.GenerationRate, Max: a.MaxStored})
	case component.KindPotion:
		s.Potions.Set(id, &component.Potion{Value: a.Value})
	case component.KindPotionShelf:
		s.PotionShelves.Set(id, &component.PotionShelf{})
	}

	event.Emit(s.Bus, event.Spawned{Entity: id, Kind: kind})
	s.log.Debug("spawned", zap.Stringer("kind", kind), zap.Uint64("entity", uint64(id)))
	return id, true
}

// SpawnFrom creates kind offset from origin by the archetype's spawn offset.
func (s *State) SpawnFrom(kind component.Kind, origin vmath.Vec3) (ecs.EntityID, bool) {
	a := s.Archetypes.Get(kind)
	if a == nil {
		return s.Spawn(kind, origin)
	}
	return s.Spawn(kind, origin.Add(a.Offset()))
}

// Despawn queues id and its descendants for removal at the end of the tick.
func (s *State) Despawn(id ecs.EntityID) {
	s.ECS.MarkForDestructionRecursive(id)
}

// First returns the lowest-id entity of kind, if any.
func (s *State) First(kind component.Kind) (ecs.EntityID, bool) {
	for _, id := range s.Kinds.IDs() {
		if k, _ := s.Kinds.Get(id); *k == kind && s.Alive(id) {
			return id, true
		}
	}
	return ecs.None, false
}

// Position returns the transform position of id.
func (s *State) Position(id ecs.EntityID) (vmath.Vec3, bool) {
	t, ok := s.Transforms.Get(id)
	if !ok {
		return vmath.Vec3{}, false
	}
	return t.Position, true
}
