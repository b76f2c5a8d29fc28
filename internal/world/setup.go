package world

import (
	"go.uber.org/zap"

	"github.com/antitower/server/internal/config"
	"github.com/antitower/server/internal/data"
)

// NewSettings copies the simulation constants out of the loaded config.
func NewSettings(cfg *config.Config) Settings {
	return Settings{
		AttackRange:      cfg.Simulation.AttackRange,
		SeparationBuffer: cfg.Simulation.SeparationBuffer,
		Policy:           cfg.Policy(),
		MaxEntities:      cfg.Simulation.MaxEntities,
		BroadphaseCell:   cfg.Simulation.BroadphaseCell,
		StartingMana:     cfg.Simulation.StartingMana,
		PlayerSpeed:      cfg.Player.Speed,
		DrainRadius:      cfg.Player.DrainRadius,
		DrainRate:        cfg.Player.DrainRate,
	}
}

// Populate spawns the startup placements. The potion shelf and towers are
// placed like any other archetype. Returns the number spawned.
func (s *State) Populate(entries []data.SpawnEntry) int {
	n := 0
	for _, e := range entries {
		kind, ok := e.KindID()
		if !ok {
			continue
		}
		if _, ok := s.Spawn(kind, e.Position()); ok {
			n++
		}
	}
	s.log.Info("world populated", zap.Int("placements", n), zap.Int("entities", s.EntityCount()))
	return n
}
