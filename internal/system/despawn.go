package system

import (
	"time"

	"github.com/antitower/server/internal/component"
	"github.com/antitower/server/internal/core/ecs"
	"github.com/antitower/server/internal/core/event"
	coresys "github.com/antitower/server/internal/core/system"
	"github.com/antitower/server/internal/world"
)

// DespawnSystem 掃描生命值歸零的實體，連同子實體排入移除佇列。
// Phase 5（Despawn）。
type DespawnSystem struct {
	world *world.State
}

func NewDespawnSystem(ws *world.State) *DespawnSystem {
	return &DespawnSystem{world: ws}
}

func (s *DespawnSystem) Phase() coresys.Phase { return coresys.PhaseDespawn }

func (s *DespawnSystem) Update(_ time.Duration) {
	ws := s.world
	ws.Healths.Each(func(id ecs.EntityID, h *component.Health) {
		if !h.Dead() || !ws.Alive(id) {
			return
		}
		event.Emit(ws.Bus, event.Despawned{Entity: id, Kind: ws.KindOf(id)})
		ws.Despawn(id)
	})
}
