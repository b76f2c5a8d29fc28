package system

import (
	"time"

	"github.com/antitower/server/internal/component"
	"github.com/antitower/server/internal/core/ecs"
	coresys "github.com/antitower/server/internal/core/system"
	"github.com/antitower/server/internal/world"
)

// TowerSpawnSystem 每當塔的計時器完成時產生一名步兵。
// Phase 4（EntityUpdates）。
type TowerSpawnSystem struct {
	world *world.State
}

func NewTowerSpawnSystem(ws *world.State) *TowerSpawnSystem {
	return &TowerSpawnSystem{world: ws}
}

func (s *TowerSpawnSystem) Phase() coresys.Phase { return coresys.PhaseEntityUpdates }

func (s *TowerSpawnSystem) Update(dt time.Duration) {
	ws := s.world
	ecs.Each2(ws.Towers, ws.Transforms, func(id ecs.EntityID, t *component.Tower, tr *component.Transform) {
		if !ws.Alive(id) {
			return
		}
		t.Rate.Advance(dt)
		if t.Rate.JustFinished() && !ws.AtCapacity() {
			ws.SpawnFrom(component.KindFootman, tr.Position)
		}
	})
}

// BubbleSpawnSystem 讓玩家放置的產生器每個週期吐出一顆泡泡。
// Phase 4（EntityUpdates）。
type BubbleSpawnSystem struct {
	world *world.State
}

func NewBubbleSpawnSystem(ws *world.State) *BubbleSpawnSystem {
	return &BubbleSpawnSystem{world: ws}
}

func (s *BubbleSpawnSystem) Phase() coresys.Phase { return coresys.PhaseEntityUpdates }

func (s *BubbleSpawnSystem) Update(dt time.Duration) {
	ws := s.world
	ecs.Each2(ws.BubbleSpawners, ws.Transforms, func(id ecs.EntityID, b *component.BubbleSpawner, tr *component.Transform) {
		if !ws.Alive(id) {
			return
		}
		b.Rate.Advance(dt)
		if b.Rate.JustFinished() && !ws.AtCapacity() {
			ws.SpawnFrom(component.KindBubble, tr.Position)
		}
	})
}

// HarvesterSystem 依產出速率累積魔力直到上限；
// 玩家站在汲取半徑內時，把儲存的魔力轉進魔力池。
// Phase 4（EntityUpdates）。
type HarvesterSystem struct {
	world *world.State
}

func NewHarvesterSystem(ws *world.State) *HarvesterSystem {
	return &HarvesterSystem{world: ws}
}

func (s *HarvesterSystem) Phase() coresys.Phase { return coresys.PhaseEntityUpdates }

func (s *HarvesterSystem) Update(dt time.Duration) {
	ws := s.world
	sec := dt.Seconds()
	player, hasPlayer := ws.First(component.KindPlayer)
	playerPos, _ := ws.Position(player)

	ecs.Each2(ws.Harvesters, ws.Transforms, func(id ecs.EntityID, h *component.Harvester, tr *component.Transform) {
		if !ws.Alive(id) {
			return
		}
		if h.Stored < h.Max {
			h.Stored = min(h.Max, h.Stored+h.GenerationRate*sec)
		}
		if !hasPlayer || playerPos.Distance(tr.Position) >= ws.Settings.DrainRadius {
			return
		}
		drain := min(h.Stored, ws.Settings.DrainRate*sec)
		h.Stored -= drain
		ws.CreditMana(drain, world.ReasonHarvest)
	})
}
