package ecs

// World owns the entity pool, the registered component stores and a
// deferred destruction queue. Systems mark entities while iterating and the
// cleanup phase flushes the queue, so no store is mutated mid-iteration.
type World struct {
	pool         *EntityPool
	stores       []Removable
	destroyQueue []EntityID
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		destroyQueue: make([]EntityID, 0, 64),
	}
}

// Register attaches a store to the world so destroyed entities are removed
// from it, and returns it for one-line store construction.
func Register[T any](w *World, s *Store[T]) *Store[T] {
	w.stores = append(w.stores, s)
	return s
}

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Live returns the number of entities not yet destroyed.
func (w *World) Live() int {
	return w.pool.Live()
}

// MarkForDestruction queues an entity for end-of-tick cleanup.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// Pending returns how many entities are queued for destruction.
func (w *World) Pending() int {
	return len(w.destroyQueue)
}

// FlushDestroyQueue destroys all queued entities and clears their
// components. Duplicate marks are harmless.
func (w *World) FlushDestroyQueue() int {
	n := 0
	for _, id := range w.destroyQueue {
		if !w.pool.Destroy(id) {
			continue
		}
		for _, s := range w.stores {
			s.Remove(id)
		}
		n++
	}
	w.destroyQueue = w.destroyQueue[:0]
	return n
}
