package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/antitower/server/internal/component"
	"github.com/antitower/server/internal/input"
	"github.com/antitower/server/internal/vmath"
)

func TestMovementSemiImplicitEuler(t *testing.T) {
	ws := newTestState(t)
	id := body(ws, component.KindFootman, vmath.V3(0, 0, 0), 8)
	kinematic(ws, id, vmath.Vec3{})
	a, _ := ws.Accelerations.Get(id)
	a.Value = vmath.V3(10, 0, 0)
	sys := NewMovementSystem(ws)

	sys.Update(time.Second)
	v, _ := ws.Velocities.Get(id)
	assert.Equal(t, vmath.V3(10, 0, 0), v.Value)
	assert.Equal(t, vmath.V3(10, 0, 0), position(ws, id), "position uses the updated velocity")

	sys.Update(time.Second)
	assert.Equal(t, vmath.V3(20, 0, 0), v.Value)
	assert.Equal(t, vmath.V3(30, 0, 0), position(ws, id))
}

func TestMovementIgnoresBodiesWithoutVelocity(t *testing.T) {
	ws := newTestState(t)
	id := body(ws, component.KindTower, vmath.V3(1, 2, 0), 8)

	NewMovementSystem(ws).Update(time.Second)

	assert.Equal(t, vmath.V3(1, 2, 0), position(ws, id))
}

func TestBubbleDrift(t *testing.T) {
	ws := newTestState(t)
	id := spawn(t, ws, component.KindBubble, 0, 0)

	NewBubbleDriftSystem(ws).Update(time.Second / 60)

	p := position(ws, id)
	assert.InDelta(t, 0.4, p.X, 1e-9, "cos(0) at elapsed zero")
	assert.InDelta(t, 0, p.Y, 1e-9)
}

func TestPlayerMove(t *testing.T) {
	ws := newTestState(t)
	player := spawn(t, ws, component.KindPlayer, 0, 0)
	keys := input.NewState()
	keys.Press(input.KeyRight | input.KeyUp)

	NewPlayerMoveSystem(ws, keys).Update(500 * time.Millisecond)

	assert.Equal(t, vmath.V3(50, 50, 0), position(ws, player))

	keys.Release(input.KeyRight | input.KeyUp)
	keys.Press(input.KeyLeft)
	NewPlayerMoveSystem(ws, keys).Update(100 * time.Millisecond)
	assert.InDelta(t, 40, position(ws, player).X, 1e-9)
}
