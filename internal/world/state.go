package world

import (
	"time"

	"go.uber.org/zap"

	"github.com/antitower/server/internal/component"
	"github.com/antitower/server/internal/core/ecs"
	"github.com/antitower/server/internal/core/event"
	"github.com/antitower/server/internal/data"
	"github.com/antitower/server/internal/group"
)

// Settings are the simulation constants systems read every tick.
type Settings struct {
	AttackRange      float64
	SeparationBuffer float64
	Policy           group.Policy
	MaxEntities      int // 0 = unlimited
	BroadphaseCell   float64
	StartingMana     float64
	PlayerSpeed      float64
	DrainRadius      float64
	DrainRate        float64 // mana per second
}

// State is the simulation context threaded through every system: the ECS
// world, every component store, the event bus and the process-wide
// resources (mana pool, collision records, ledger buffer).
// Single-goroutine access only (game loop).
type State struct {
	ECS        *ecs.World
	Bus        *event.Bus
	Archetypes *data.ArchetypeTable
	Settings   Settings

	Kinds            *ecs.Store[component.Kind]
	Names            *ecs.Store[component.Name]
	Sprites          *ecs.Store[component.Sprite]
	Transforms       *ecs.Store[component.Transform]
	Velocities       *ecs.Store[component.Velocity]
	Accelerations    *ecs.Store[component.Acceleration]
	Steerings        *ecs.Store[component.Steering]
	Colliders        *ecs.Store[component.Collider]
	CollisionGroups  *ecs.Store[component.CollisionGroups]
	DetectionGroups  *ecs.Store[component.DetectionGroups]
	CollisionDamages *ecs.Store[component.CollisionDamage]
	Bounces          *ecs.Store[component.Bounce]
	Fragiles         *ecs.Store[component.Fragile]
	Statics          *ecs.Store[component.Static]
	Healths          *ecs.Store[component.Health]
	Trackers         *ecs.Store[component.Tracker]
	Targets          *ecs.Store[component.Target]
	Attacks          *ecs.Store[component.Attack]
	Combats          *ecs.Store[component.Combat]
	Players          *ecs.Store[component.Player]
	Towers           *ecs.Store[component.Tower]
	BubbleSpawners   *ecs.Store[component.BubbleSpawner]
	Bubbles          *ecs.Store[component.Bubble]
	Harvesters       *ecs.Store[component.Harvester]
	Lifetimes        *ecs.Store[component.Lifetime]
	Potions          *ecs.Store[component.Potion]
	PotionShelves    *ecs.Store[component.PotionShelf]

	Records *CollisionRecords
	Ledger  *Ledger

	mana    float64
	elapsed time.Duration
	tick    uint64
	log     *zap.Logger
}

// NewState builds an empty simulation with every store registered.
func NewState(archetypes *data.ArchetypeTable, settings Settings, log *zap.Logger) *State {
	w := ecs.NewWorld()
	r := w.Registry()
	return &State{
		ECS:        w,
		Bus:        event.NewBus(),
		Archetypes: archetypes,
		Settings:   settings,

		Kinds:            ecs.Register[component.Kind](r),
		Names:            ecs.Register[component.Name](r),
		Sprites:          ecs.Register[component.Sprite](r),
		Transforms:       ecs.Register[component.Transform](r),
		Velocities:       ecs.Register[component.Velocity](r),
		Accelerations:    ecs.Register[component.Acceleration](r),
		Steerings:        ecs.Register[component.Steering](r),
		Colliders:        ecs.Register[component.Collider](r),
		CollisionGroups:  ecs.Register[component.CollisionGroups](r),
		DetectionGroups:  ecs.Register[component.DetectionGroups](r),
		CollisionDamages: ecs.Register[component.CollisionDamage](r),
		Bounces:          ecs.Register[component.Bounce](r),
		Fragiles:         ecs.Register[component.Fragile](r),
		Statics:          ecs.Register[component.Static](r),
		Healths:          ecs.Register[component.Health](r),
		Trackers:         ecs.Register[component.Tracker](r),
		Targets:          ecs.Register[component.Target](r),
		Attacks:          ecs.Register[component.Attack](r),
		Combats:          ecs.Register[component.Combat](r),
		Players:          ecs.Register[component.Player](r),
		Towers:           ecs.Register[component.Tower](r),
		BubbleSpawners:   ecs.Register[component.BubbleSpawner](r),
		Bubbles:          ecs.Register[component.Bubble](r),
		Harvesters:       ecs.Register[component.Harvester](r),
		Lifetimes:        ecs.Register[component.Lifetime](r),
		Potions:          ecs.Register[component.Potion](r),
		PotionShelves:    ecs.Register[component.PotionShelf](r),

		Records: NewCollisionRecords(),
		Ledger:  NewLedger(),

		mana: settings.StartingMana,
		log:  log,
	}
}

func (s *State) Log() *zap.Logger { return s.log }

// KindOf returns the archetype tag of id, KindNone if it has none.
func (s *State) KindOf(id ecs.EntityID) component.Kind {
	if k, ok := s.Kinds.Get(id); ok {
		return *k
	}
	return component.KindNone
}

// Alive reports whether id is live and not already queued for removal.
func (s *State) Alive(id ecs.EntityID) bool {
	return s.ECS.Alive(id) && !s.ECS.PendingDestruction(id)
}

// Elapsed is the simulated time since the first tick.
func (s *State) Elapsed() time.Duration { return s.elapsed }

// Tick is the number of completed ticks.
func (s *State) Tick() uint64 { return s.tick }

// Advance moves the simulation clock. Called once per tick by the clock system.
func (s *State) Advance(dt time.Duration) {
	s.elapsed += dt
	s.tick++
}

// EntityCount is the number of live entities.
func (s *State) EntityCount() int { return s.ECS.Pool().Len() }

// AtCapacity reports whether spawners must hold off.
func (s *State) AtCapacity() bool {
	return s.Settings.MaxEntities > 0 && s.EntityCount() >= s.Settings.MaxEntities
}
