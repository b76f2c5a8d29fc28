package system

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/antitower/server/internal/component"
	"github.com/antitower/server/internal/config"
	"github.com/antitower/server/internal/core/ecs"
	"github.com/antitower/server/internal/data"
	"github.com/antitower/server/internal/vmath"
	"github.com/antitower/server/internal/world"
)

func newTestState(t *testing.T, tweak ...func(*config.Config)) *world.State {
	t.Helper()
	cfg := config.Defaults()
	for _, fn := range tweak {
		fn(cfg)
	}
	return world.NewState(data.DefaultArchetypes(), world.NewSettings(cfg), zaptest.NewLogger(t))
}

// body creates a bare collider of the given kind.
func body(ws *world.State, kind component.Kind, pos vmath.Vec3, radius float64) ecs.EntityID {
	id := ws.ECS.CreateEntity()
	k := kind
	ws.Kinds.Set(id, &k)
	ws.Transforms.Set(id, &component.Transform{Position: pos})
	ws.Colliders.Set(id, &component.Collider{Radius: radius})
	return id
}

func kinematic(ws *world.State, id ecs.EntityID, v vmath.Vec3) {
	ws.Velocities.Set(id, &component.Velocity{Value: v})
	ws.Accelerations.Set(id, &component.Acceleration{})
}

func position(ws *world.State, id ecs.EntityID) vmath.Vec3 {
	p, _ := ws.Position(id)
	return p
}

func countKind(ws *world.State, kind component.Kind) int {
	n := 0
	ws.Kinds.Each(func(id ecs.EntityID, k *component.Kind) {
		if *k == kind && ws.Alive(id) {
			n++
		}
	})
	return n
}
