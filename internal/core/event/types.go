package event

import (
	"github.com/antitower/server/internal/component"
	"github.com/antitower/server/internal/core/ecs"
)

// Collision is emitted once per directional overlapping pair per tick.
// Entity's collider overlaps Other's; the consequences are applied to Entity.
type Collision struct {
	Entity ecs.EntityID
	Other  ecs.EntityID
}

// CollisionStarted fires on the first tick an ordered pair overlaps.
type CollisionStarted struct {
	Entity ecs.EntityID
	Other  ecs.EntityID
}

// CollisionEnded fires on the first tick a recorded pair no longer overlaps.
type CollisionEnded struct {
	Entity ecs.EntityID
	Other  ecs.EntityID
}

// Detection is a tracker seeing a target inside its vision but outside
// attack range.
type Detection struct {
	Tracker  ecs.EntityID
	Target   ecs.EntityID
	Distance float64
}

type Engaged struct {
	Attacker ecs.EntityID
	Target   ecs.EntityID
}

type Disengaged struct {
	Attacker ecs.EntityID
	Target   ecs.EntityID
}

// Died is published when an attack hit takes Health from above zero to
// zero or below. It precedes the despawn of Entity.
type Died struct {
	Entity ecs.EntityID
	Killer ecs.EntityID
}

type Spawned struct {
	Entity ecs.EntityID
	Kind   component.Kind
}

// Despawned is queued when the despawn sweep removes a zero-health entity.
type Despawned struct {
	Entity ecs.EntityID
	Kind   component.Kind
}

// Expired is queued when a lifetime timer removes an entity.
type Expired struct {
	Entity ecs.EntityID
	Kind   component.Kind
}

// ManaChanged reports every debit or credit of the mana pool.
type ManaChanged struct {
	Reason  string
	Delta   float64
	Balance float64
}
