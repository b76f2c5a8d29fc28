package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antitower/server/internal/component"
	"github.com/antitower/server/internal/core/ecs"
	"github.com/antitower/server/internal/core/event"
	"github.com/antitower/server/internal/input"
	"github.com/antitower/server/internal/vmath"
	"github.com/antitower/server/internal/world"
)

func TestTowerSpawnsFootmanEachPeriod(t *testing.T) {
	ws := newTestState(t)
	spawn(t, ws, component.KindTower, 400, 0)
	sys := NewTowerSpawnSystem(ws)

	sys.Update(5 * time.Second)
	assert.Zero(t, countKind(ws, component.KindFootman))

	sys.Update(5 * time.Second)
	require.Equal(t, 1, countKind(ws, component.KindFootman))
	footman, _ := ws.First(component.KindFootman)
	assert.Equal(t, vmath.V3(400, -40, 0), position(ws, footman))
}

func TestSpawnersHoldAtCapacity(t *testing.T) {
	ws := newTestState(t)
	spawn(t, ws, component.KindTower, 400, 0)
	spawn(t, ws, component.KindBubbleSpawner, 0, 0)
	ws.Settings.MaxEntities = ws.EntityCount()

	NewTowerSpawnSystem(ws).Update(10 * time.Second)
	NewBubbleSpawnSystem(ws).Update(2 * time.Second)

	assert.Zero(t, countKind(ws, component.KindFootman))
	assert.Zero(t, countKind(ws, component.KindBubble))
}

func TestBubbleSpawner(t *testing.T) {
	ws := newTestState(t)
	spawn(t, ws, component.KindBubbleSpawner, 0, 0)

	NewBubbleSpawnSystem(ws).Update(2 * time.Second)

	require.Equal(t, 1, countKind(ws, component.KindBubble))
	bubble, _ := ws.First(component.KindBubble)
	assert.Equal(t, vmath.V3(0, 6, 1), position(ws, bubble))
}

func TestHarvesterGeneratesAndDrains(t *testing.T) {
	ws := newTestState(t)
	player := spawn(t, ws, component.KindPlayer, 0, 0)
	harvester := spawn(t, ws, component.KindHarvester, 50, 0)
	sys := NewHarvesterSystem(ws)
	h, _ := ws.Harvesters.Get(harvester)

	sys.Update(time.Second)
	assert.Zero(t, h.Stored)
	assert.Equal(t, 104.0, ws.Mana())

	tr, _ := ws.Transforms.Get(player)
	tr.Position = vmath.V3(500, 0, 0)
	sys.Update(30 * time.Second)
	assert.Equal(t, 100.0, h.Stored, "generation caps at max")
	assert.Equal(t, 104.0, ws.Mana())

	entries := ws.Ledger.Drain()
	require.Len(t, entries, 1)
	assert.Equal(t, world.ReasonHarvest, entries[0].Reason)
}

func TestPlacementBuysOnKeyEdge(t *testing.T) {
	ws := newTestState(t)
	spawn(t, ws, component.KindPlayer, 0, 0)
	keys := input.NewState()
	sys := NewPlacementSystem(ws, keys)

	keys.Press(input.KeyW)
	sys.Update(0)
	keys.EndFrame()
	sys.Update(0) // still held, no new edge

	require.Equal(t, 1, countKind(ws, component.KindBubbleSpawner))
	sp, _ := ws.First(component.KindBubbleSpawner)
	assert.Equal(t, vmath.V3(0, 32, -1), position(ws, sp))
	assert.Equal(t, 80.0, ws.Mana())

	entries := ws.Ledger.Drain()
	require.Len(t, entries, 1)
	assert.Equal(t, "purchase:bubble_spawner", entries[0].Reason)
	assert.Equal(t, -20.0, entries[0].Delta)
}

func TestPlacementRejectedWhenShort(t *testing.T) {
	ws := newTestState(t)
	spawn(t, ws, component.KindPlayer, 0, 0)
	require.True(t, ws.SpendMana(85, "test"))
	ws.Bus.EndTick()
	keys := input.NewState()
	keys.Press(input.KeyW | input.KeySpace)

	NewPlacementSystem(ws, keys).Update(0)

	assert.Zero(t, countKind(ws, component.KindBubbleSpawner))
	assert.Zero(t, countKind(ws, component.KindHarvester))
	assert.Equal(t, 15.0, ws.Mana())
	assert.Empty(t, event.Read[event.ManaChanged](ws.Bus))
}

func TestPlacementBrewsPotionOnShelf(t *testing.T) {
	ws := newTestState(t)
	spawn(t, ws, component.KindPlayer, 100, 100)
	shelf := spawn(t, ws, component.KindPotionShelf, 0, 0)
	keys := input.NewState()
	keys.Press(input.KeyE)

	NewPlacementSystem(ws, keys).Update(0)

	potion, ok := ws.First(component.KindPotion)
	require.True(t, ok)
	assert.Equal(t, []ecs.EntityID{potion}, ws.ECS.Children(shelf))
	assert.Equal(t, 90.0, ws.Mana())
}

func TestPotionPaysOnExpiry(t *testing.T) {
	ws := newTestState(t)
	shelf := spawn(t, ws, component.KindPotionShelf, 0, 0)
	potion := spawn(t, ws, component.KindPotion, 0, 0)
	ws.ECS.SetParent(potion, shelf)
	sys := NewLifetimeSystem(ws)

	sys.Update(time.Second)
	assert.True(t, ws.Alive(potion))

	sys.Update(time.Second)
	assert.Equal(t, 115.0, ws.Mana())
	assert.Equal(t, []event.Expired{{Entity: potion, Kind: component.KindPotion}}, event.Read[event.Expired](ws.Bus))
	assert.False(t, ws.Alive(potion))

	ws.ECS.FlushDestroyQueue()
	assert.Empty(t, ws.ECS.Children(shelf))
	assert.True(t, ws.Alive(shelf))
}

func TestDespawnSweep(t *testing.T) {
	ws := newTestState(t)
	tower := spawn(t, ws, component.KindTower, 0, 0)
	harvester := spawn(t, ws, component.KindHarvester, 200, 0)
	banner := ws.ECS.Children(tower)
	require.Len(t, banner, 1)
	h, _ := ws.Healths.Get(tower)
	h.Value = 0
	ws.Bus.EndTick()

	NewDespawnSystem(ws).Update(0)
	ws.ECS.FlushDestroyQueue()

	assert.Equal(t, []event.Despawned{{Entity: tower, Kind: component.KindTower}}, event.Read[event.Despawned](ws.Bus))
	assert.False(t, ws.ECS.Alive(tower))
	assert.False(t, ws.ECS.Alive(banner[0]), "children go with their parent")
	assert.True(t, ws.ECS.Alive(harvester))
}
