package world

import (
	"sort"

	"github.com/antitower/server/internal/core/ecs"
)

// Pair is an ordered entity pair.
type Pair struct {
	Entity ecs.EntityID
	Other  ecs.EntityID
}

// CollisionRecords is an edge-triggered latch over ordered pairs. A pair is
// inserted the first tick it overlaps and stays recorded, without being
// re-announced, until a tick passes in which it no longer overlaps.
type CollisionRecords struct {
	active map[Pair]struct{}
	seen   map[Pair]struct{}
}

func NewCollisionRecords() *CollisionRecords {
	return &CollisionRecords{
		active: make(map[Pair]struct{}),
		seen:   make(map[Pair]struct{}),
	}
}

// Observe notes that p overlaps this tick and reports whether it is new.
func (r *CollisionRecords) Observe(p Pair) bool {
	r.seen[p] = struct{}{}
	if _, ok := r.active[p]; ok {
		return false
	}
	r.active[p] = struct{}{}
	return true
}

// EndTick removes every recorded pair that was not observed since the last
// call and returns them in a stable order.
func (r *CollisionRecords) EndTick() []Pair {
	var ended []Pair
	for p := range r.active {
		if _, ok := r.seen[p]; !ok {
			ended = append(ended, p)
		}
	}
	for _, p := range ended {
		delete(r.active, p)
	}
	clear(r.seen)
	sort.Slice(ended, func(i, j int) bool {
		if ended[i].Entity != ended[j].Entity {
			return ended[i].Entity < ended[j].Entity
		}
		return ended[i].Other < ended[j].Other
	})
	return ended
}

// Active reports whether p is currently latched.
func (r *CollisionRecords) Active(p Pair) bool {
	_, ok := r.active[p]
	return ok
}

func (r *CollisionRecords) Len() int { return len(r.active) }
