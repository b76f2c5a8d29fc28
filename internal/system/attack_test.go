package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antitower/server/internal/component"
	"github.com/antitower/server/internal/core/ecs"
	"github.com/antitower/server/internal/core/event"
	"github.com/antitower/server/internal/core/timer"
	"github.com/antitower/server/internal/vmath"
	"github.com/antitower/server/internal/world"
)

// duel sets up an attacker already engaged with a 12 health target.
func duel(t *testing.T) (ws *world.State, attacker, target ecs.EntityID) {
	t.Helper()
	ws = newTestState(t)
	attacker = body(ws, component.KindFootman, vmath.V3(0, 0, 0), 16)
	kinematic(ws, attacker, vmath.V3(3, 4, 0))
	ws.Attacks.Set(attacker, &component.Attack{Amount: 5, Rate: timer.New(time.Second, timer.Repeating)})
	c := &component.Combat{}
	ws.Combats.Set(attacker, c)

	target = body(ws, component.KindHarvester, vmath.V3(50, 0, 0), 48)
	ws.Healths.Set(target, &component.Health{Value: 12})
	c.Engage(target)
	return ws, attacker, target
}

func health(ws *world.State, id ecs.EntityID) float64 {
	h, _ := ws.Healths.Get(id)
	return h.Value
}

func TestAttackKillSequence(t *testing.T) {
	ws, attacker, target := duel(t)
	atk := NewAttackSystem(ws, nil)
	removal := NewAttackRemovalSystem(ws)

	var died []event.Died
	step := func() {
		atk.Update(time.Second)
		removal.Update(time.Second)
		died = append(died, event.Read[event.Died](ws.Bus)...)
		ws.Bus.EndTick()
	}

	step()
	assert.Equal(t, 7.0, health(ws, target))
	v, _ := ws.Velocities.Get(attacker)
	assert.True(t, v.Value.IsZero(), "engaged attackers hold still")

	step()
	assert.Equal(t, 2.0, health(ws, target))
	assert.Empty(t, died)

	step()
	assert.Equal(t, -3.0, health(ws, target))
	require.Len(t, died, 1)
	assert.Equal(t, event.Died{Entity: target, Killer: attacker}, died[0])

	c, _ := ws.Combats.Get(attacker)
	assert.False(t, c.Engaged(), "removal idles the attacker after the kill")
}

func TestDiedFiresOnlyOnCrossing(t *testing.T) {
	ws, _, target := duel(t)
	atk := NewAttackSystem(ws, nil)

	deaths := 0
	for range 4 {
		atk.Update(time.Second)
		deaths += event.Count[event.Died](ws.Bus)
		ws.Bus.EndTick()
	}

	assert.Equal(t, -8.0, health(ws, target))
	assert.Equal(t, 1, deaths)
}

func TestAttackLandsOneHitPerTick(t *testing.T) {
	ws, _, target := duel(t)

	NewAttackSystem(ws, nil).Update(3500 * time.Millisecond)

	assert.Equal(t, 7.0, health(ws, target))
}

func TestAttackDisengagesFromMissingTarget(t *testing.T) {
	ws, attacker, target := duel(t)
	ws.Despawn(target)
	ws.ECS.FlushDestroyQueue()

	NewAttackSystem(ws, nil).Update(time.Second)

	c, _ := ws.Combats.Get(attacker)
	assert.False(t, c.Engaged())
	assert.Equal(t, ecs.None, c.Target)
	assert.Equal(t, []event.Disengaged{{Attacker: attacker, Target: target}}, event.Read[event.Disengaged](ws.Bus))
	assert.Empty(t, event.Read[event.Died](ws.Bus))
}

func TestIdleAttackerIsLeftAlone(t *testing.T) {
	ws, attacker, target := duel(t)
	c, _ := ws.Combats.Get(attacker)
	c.Disengage()

	NewAttackSystem(ws, nil).Update(time.Second)

	assert.Equal(t, 12.0, health(ws, target))
	v, _ := ws.Velocities.Get(attacker)
	assert.Equal(t, vmath.V3(3, 4, 0), v.Value)
}
