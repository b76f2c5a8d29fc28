package scripting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newEngine(t *testing.T, chunks ...string) *Engine {
	t.Helper()
	e, err := NewEngineFromSource(zaptest.NewLogger(t), chunks...)
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func TestAttackDamageHook(t *testing.T) {
	e := newEngine(t, `
		function calc_attack_damage(ctx)
			if ctx.target == "harvester" then return ctx.base * 2 end
			return ctx.base
		end`)

	assert.Equal(t, 10.0, e.CalcAttackDamage(AttackContext{AttackerKind: "footman", TargetKind: "harvester", Base: 5, TargetHealth: 200}))
	assert.Equal(t, 5.0, e.CalcAttackDamage(AttackContext{AttackerKind: "footman", TargetKind: "tower", Base: 5, TargetHealth: 200}))
}

func TestCollisionDamageHook(t *testing.T) {
	e := newEngine(t, `
		function calc_collision_damage(ctx)
			if ctx.source == "bubble" and ctx.target == "footman" then return 3 end
			return ctx.base
		end`)

	assert.Equal(t, 3.0, e.CalcCollisionDamage(CollisionContext{SourceKind: "bubble", TargetKind: "footman", Base: 4}))
	assert.Equal(t, 4.0, e.CalcCollisionDamage(CollisionContext{SourceKind: "bubble", TargetKind: "tower", Base: 4}))
}

func TestDamageFallbacks(t *testing.T) {
	e := newEngine(t, `
		function calc_attack_damage(ctx) error("boom") end
		function calc_collision_damage(ctx) return "lots" end`)

	assert.Equal(t, 5.0, e.CalcAttackDamage(AttackContext{Base: 5}), "script error")
	assert.Equal(t, 4.0, e.CalcCollisionDamage(CollisionContext{Base: 4}), "non-number result")

	empty := newEngine(t)
	assert.Equal(t, 5.0, empty.CalcAttackDamage(AttackContext{Base: 5}), "missing function")
	assert.False(t, empty.HasFunction("calc_attack_damage"))
}

func TestNegativeDamageClampsToZero(t *testing.T) {
	e := newEngine(t, `function calc_attack_damage(ctx) return -7 end`)

	assert.Zero(t, e.CalcAttackDamage(AttackContext{Base: 5}))
}

func TestNilEngine(t *testing.T) {
	var e *Engine

	assert.Equal(t, 5.0, e.CalcAttackDamage(AttackContext{Base: 5}))
	assert.Equal(t, 4.0, e.CalcCollisionDamage(CollisionContext{Base: 4}))
	assert.Nil(t, e.PlayerInput(1))
	assert.False(t, e.HasFunction("player_input"))
	e.Close()
}

func TestPlayerInput(t *testing.T) {
	e := newEngine(t, `
		function player_input(tick)
			if tick == 0 then return {} end
			if tick == 1 then return {"space", "left"} end
			return nil
		end`)

	assert.Empty(t, e.PlayerInput(0))
	assert.Equal(t, []string{"space", "left"}, e.PlayerInput(1))
	assert.Nil(t, e.PlayerInput(2))
}

func TestBadChunkFailsToLoad(t *testing.T) {
	_, err := NewEngineFromSource(zaptest.NewLogger(t), `function broken(`)
	assert.Error(t, err)
}

func TestShippedScripts(t *testing.T) {
	e, err := NewEngine("../../scripts", zaptest.NewLogger(t))
	require.NoError(t, err)
	defer e.Close()

	for _, fn := range []string{"clamp", "calc_attack_damage", "calc_collision_damage", "player_input"} {
		assert.True(t, e.HasFunction(fn), fn)
	}

	assert.Equal(t, 5.0, e.CalcAttackDamage(AttackContext{Base: 5, TargetHealth: 12}))
	assert.Equal(t, 4.0, e.CalcCollisionDamage(CollisionContext{Base: 4}))
	assert.Contains(t, e.PlayerInput(1), "space")
	assert.NotContains(t, e.PlayerInput(2), "space")
}

func TestMissingScriptDirIsEmpty(t *testing.T) {
	e, err := NewEngine(t.TempDir(), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer e.Close()

	assert.False(t, e.HasFunction("player_input"))
	assert.Equal(t, 5.0, e.CalcAttackDamage(AttackContext{Base: 5}))
}
