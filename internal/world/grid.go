package world

import (
	"math"

	"github.com/antitower/server/internal/core/ecs"
)

// Grid is a uniform cell grid used as the collision broad phase. It is
// rebuilt from scratch every tick, so there is no Move: Reset then Add.
// Accessed only from the game loop goroutine, no locks.
type Grid struct {
	cellSize float64
	cells    map[cellKey][]ecs.EntityID
	buf      []ecs.EntityID
}

type cellKey struct {
	cx int32
	cy int32
}

func NewGrid(cellSize float64) *Grid {
	return &Grid{
		cellSize: cellSize,
		cells:    make(map[cellKey][]ecs.EntityID),
	}
}

func (g *Grid) toCell(v float64) int32 {
	return int32(math.Floor(v / g.cellSize))
}

// Reset empties every cell while keeping the allocations.
func (g *Grid) Reset() {
	for k, c := range g.cells {
		g.cells[k] = c[:0]
	}
}

// Add places an entity in the cell containing (x, y).
func (g *Grid) Add(id ecs.EntityID, x, y float64) {
	k := cellKey{cx: g.toCell(x), cy: g.toCell(y)}
	g.cells[k] = append(g.cells[k], id)
}

// Nearby returns every entity in the cells overlapping the square of
// half-width reach around (x, y). Caller does fine-grained distance
// filtering. The returned slice is reused by the next call.
func (g *Grid) Nearby(x, y, reach float64) []ecs.EntityID {
	g.buf = g.buf[:0]
	minX, maxX := g.toCell(x-reach), g.toCell(x+reach)
	minY, maxY := g.toCell(y-reach), g.toCell(y+reach)
	for cx := minX; cx <= maxX; cx++ {
		for cy := minY; cy <= maxY; cy++ {
			g.buf = append(g.buf, g.cells[cellKey{cx: cx, cy: cy}]...)
		}
	}
	return g.buf
}
