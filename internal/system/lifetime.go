package system

import (
	"time"

	"github.com/antitower/server/internal/component"
	"github.com/antitower/server/internal/core/ecs"
	"github.com/antitower/server/internal/core/event"
	coresys "github.com/antitower/server/internal/core/system"
	"github.com/antitower/server/internal/world"
)

// LifetimeSystem 移除壽命耗盡的實體（連同子實體），不論生命值。
// 藥水到期時把價值存入魔力池。
// Phase 4（EntityUpdates），最後執行。
type LifetimeSystem struct {
	world *world.State
}

func NewLifetimeSystem(ws *world.State) *LifetimeSystem {
	return &LifetimeSystem{world: ws}
}

func (s *LifetimeSystem) Phase() coresys.Phase { return coresys.PhaseEntityUpdates }

func (s *LifetimeSystem) Update(dt time.Duration) {
	ws := s.world
	ws.Lifetimes.Each(func(id ecs.EntityID, l *component.Lifetime) {
		if !ws.Alive(id) {
			return
		}
		l.Timer.Advance(dt)
		if !l.Timer.JustFinished() {
			return
		}
		if p, ok := ws.Potions.Get(id); ok {
			ws.CreditMana(p.Value, world.ReasonPotionSale)
		}
		event.Emit(ws.Bus, event.Expired{Entity: id, Kind: ws.KindOf(id)})
		ws.Despawn(id)
	})
}
