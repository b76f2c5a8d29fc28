package ecs

// World is the top-level ECS container. It owns the entity pool, the component
// registry, the parent/child links and a deferred destruction queue flushed
// by the cleanup system each tick.
type World struct {
	pool         *EntityPool
	registry     *Registry
	destroyQueue []EntityID
	queued       map[EntityID]struct{}
	parents      map[EntityID]EntityID
	children     map[EntityID][]EntityID
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		destroyQueue: make([]EntityID, 0, 64),
		queued:       make(map[EntityID]struct{}, 64),
		parents:      make(map[EntityID]EntityID),
		children:     make(map[EntityID][]EntityID),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// SetParent attaches child under parent. A child has at most one parent;
// re-parenting detaches it from the previous one.
func (w *World) SetParent(child, parent EntityID) {
	if old, ok := w.parents[child]; ok {
		w.detach(child, old)
	}
	w.parents[child] = parent
	w.children[parent] = append(w.children[parent], child)
}

// Parent returns the parent of id, if any.
func (w *World) Parent(id EntityID) (EntityID, bool) {
	p, ok := w.parents[id]
	return p, ok
}

// Children returns a copy of id's direct children.
func (w *World) Children(id EntityID) []EntityID {
	c := w.children[id]
	if len(c) == 0 {
		return nil
	}
	out := make([]EntityID, len(c))
	copy(out, c)
	return out
}

// RemoveChild detaches child from its parent without destroying either.
func (w *World) RemoveChild(parent, child EntityID) {
	if p, ok := w.parents[child]; ok && p == parent {
		w.detach(child, parent)
	}
}

func (w *World) detach(child, parent EntityID) {
	delete(w.parents, child)
	siblings := w.children[parent]
	for i, c := range siblings {
		if c == child {
			siblings = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	if len(siblings) == 0 {
		delete(w.children, parent)
	} else {
		w.children[parent] = siblings
	}
}

// MarkForDestruction queues an entity for end-of-tick cleanup.
// Queuing the same entity twice in one tick is a no-op.
func (w *World) MarkForDestruction(id EntityID) {
	if !w.pool.Alive(id) {
		return
	}
	if _, ok := w.queued[id]; ok {
		return
	}
	w.queued[id] = struct{}{}
	w.destroyQueue = append(w.destroyQueue, id)
}

// MarkForDestructionRecursive queues id and all of its descendants.
func (w *World) MarkForDestructionRecursive(id EntityID) {
	for _, c := range w.children[id] {
		w.MarkForDestructionRecursive(c)
	}
	w.MarkForDestruction(id)
}

// PendingDestruction reports whether id is queued for this tick's flush.
func (w *World) PendingDestruction(id EntityID) bool {
	_, ok := w.queued[id]
	return ok
}

// FlushDestroyQueue destroys all queued entities and clears their components.
// Called by the cleanup system at the end of each tick.
func (w *World) FlushDestroyQueue() int {
	n := len(w.destroyQueue)
	for _, id := range w.destroyQueue {
		if p, ok := w.parents[id]; ok {
			w.detach(id, p)
		}
		for _, c := range w.children[id] {
			delete(w.parents, c)
		}
		delete(w.children, id)
		w.registry.RemoveAll(id)
		w.pool.Destroy(id)
	}
	w.destroyQueue = w.destroyQueue[:0]
	clear(w.queued)
	return n
}
