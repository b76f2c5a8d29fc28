package system

import (
	coresys "github.com/antitower/server/internal/core/system"
	"github.com/antitower/server/internal/input"
	"github.com/antitower/server/internal/scripting"
	"github.com/antitower/server/internal/world"
)

// Options are the optional collaborators of the simulation pipeline.
type Options struct {
	Lua    *scripting.Engine // nil = built-in damage rules
	Driver input.Driver      // nil = no player input
	Keys   *input.State
	Rules  []Rule // nil = derived from the archetype table

	// Extra systems run in their own phase ahead of the cleanup flush,
	// e.g. PersistenceSystem.
	Extra []coresys.System
}

// NewPipeline registers every simulation system on a fresh runner in the
// order one tick must run them.
func NewPipeline(ws *world.State, opts Options) *coresys.Runner {
	r := coresys.NewRunner()
	rules := opts.Rules
	if rules == nil {
		rules = RulesFromArchetypes(ws.Archetypes)
	}

	// Phase 0: Input
	r.Register(NewClockSystem(ws))
	if opts.Driver != nil {
		keys := opts.Keys
		if keys == nil {
			keys = input.NewState()
		}
		r.Register(
			NewInputSystem(opts.Driver, keys),
			NewPlayerMoveSystem(ws, keys),
			NewPlacementSystem(ws, keys),
		)
	}

	// Phase 1: Detection
	r.Register(
		NewDetectionSystem(ws, rules),
		NewSteeringSystem(ws),
	)

	// Phase 2: Movement
	r.Register(
		NewMovementSystem(ws),
		NewBubbleDriftSystem(ws),
	)

	// Phase 3: Collision
	r.Register(
		NewCollisionRegistrySystem(ws),
		NewCollisionEventSystem(ws),
	)

	// Phase 4: EntityUpdates
	r.Register(
		NewCollisionDamageSystem(ws, opts.Lua),
		NewSeparationSystem(ws),
		NewBounceSystem(ws),
		NewAttackSystem(ws, opts.Lua),
		NewAttackRemovalSystem(ws),
		NewTowerSpawnSystem(ws),
		NewBubbleSpawnSystem(ws),
		NewHarvesterSystem(ws),
		NewLifetimeSystem(ws),
	)

	// Phase 5: Despawn
	r.Register(NewDespawnSystem(ws))

	r.Register(opts.Extra...)

	// Phase 6: Cleanup
	r.Register(NewCleanupSystem(ws))
	return r
}
