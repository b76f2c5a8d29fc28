package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/antitower/server/internal/component"
	coresys "github.com/antitower/server/internal/core/system"
	"github.com/antitower/server/internal/input"
	"github.com/antitower/server/internal/vmath"
	"github.com/antitower/server/internal/world"
)

// PlacementSystem 在按鍵按下的瞬間購買建築：
// W 在玩家旁放置泡泡產生器，Space 放置採集器，E 在架上釀一瓶藥水。
// 魔力池不足時什麼都不做。Phase 0（Input）。
type PlacementSystem struct {
	world *world.State
	keys  *input.State
}

func NewPlacementSystem(ws *world.State, keys *input.State) *PlacementSystem {
	return &PlacementSystem{world: ws, keys: keys}
}

func (s *PlacementSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *PlacementSystem) Update(_ time.Duration) {
	ws := s.world
	player, ok := ws.First(component.KindPlayer)
	if !ok {
		return
	}
	pos, _ := ws.Position(player)

	if s.keys.JustPressed(input.KeyW) {
		s.buy(component.KindBubbleSpawner, pos)
	}
	if s.keys.JustPressed(input.KeySpace) {
		s.buy(component.KindHarvester, pos)
	}
	if s.keys.JustPressed(input.KeyE) {
		s.brew()
	}
}

func (s *PlacementSystem) buy(kind component.Kind, origin vmath.Vec3) {
	ws := s.world
	a := ws.Archetypes.Get(kind)
	if a == nil || ws.AtCapacity() {
		return
	}
	if !ws.SpendMana(a.Cost, world.ReasonPurchase+":"+kind.String()) {
		ws.Log().Debug("purchase rejected",
			zap.Stringer("kind", kind), zap.Float64("cost", a.Cost), zap.Float64("mana", ws.Mana()))
		return
	}
	ws.SpawnFrom(kind, origin)
}

func (s *PlacementSystem) brew() {
	ws := s.world
	shelf, ok := ws.First(component.KindPotionShelf)
	if !ok {
		return
	}
	pos, _ := ws.Position(shelf)
	a := ws.Archetypes.Get(component.KindPotion)
	if a == nil || ws.AtCapacity() {
		return
	}
	if !ws.SpendMana(a.Cost, world.ReasonPurchase+":"+component.KindPotion.String()) {
		return
	}
	if potion, ok := ws.SpawnFrom(component.KindPotion, pos); ok {
		ws.ECS.SetParent(potion, shelf)
	}
}
