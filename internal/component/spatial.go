package component

import (
	"github.com/antitower/server/internal/core/ecs"
	"github.com/antitower/server/internal/group"
	"github.com/antitower/server/internal/vmath"
)

// Transform is the world-space position. Z is the render layer.
type Transform struct {
	Position vmath.Vec3
}

// Collider is a circle of Radius around the transform. Colliding is
// rebuilt from scratch by the collision registry every tick.
type Collider struct {
	Radius    float64
	Colliding []ecs.EntityID
}

// CollisionGroups filters which colliders interact.
type CollisionGroups group.Groups

// DetectionGroups filters which targets a tracker sees.
type DetectionGroups group.Groups

// CollisionDamage is dealt to whatever this entity touches.
type CollisionDamage struct {
	Amount float64
}

// Bounce marks a body that reflects its radial velocity on contact.
type Bounce struct {
	Restitution float64
}

// Fragile entities are removed after dealing contact damage.
type Fragile struct{}

// Static bodies are never pushed by separation even if they carry Velocity.
type Static struct{}
