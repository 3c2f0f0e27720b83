package ecs

// Removable is implemented by all component stores so the World can
// drop an entity from every store at once.
type Removable interface {
	Remove(id EntityID)
}

// Store is a sparse-set component store: components sit densely in
// insertion order, removal swaps the last element into the hole. Iteration
// order is deterministic for a given sequence of inserts and removals.
type Store[T any] struct {
	dense []T
	ids   []EntityID
	index map[EntityID]int
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		dense: make([]T, 0, 64),
		ids:   make([]EntityID, 0, 64),
		index: make(map[EntityID]int, 64),
	}
}

// Set inserts or overwrites the component for id.
func (s *Store[T]) Set(id EntityID, c T) {
	if i, ok := s.index[id]; ok {
		s.dense[i] = c
		return
	}
	s.index[id] = len(s.dense)
	s.dense = append(s.dense, c)
	s.ids = append(s.ids, id)
}

// Get returns a pointer into the store, valid until the next Set or Remove.
func (s *Store[T]) Get(id EntityID) (*T, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return &s.dense[i], true
}

func (s *Store[T]) Remove(id EntityID) {
	i, ok := s.index[id]
	if !ok {
		return
	}
	last := len(s.dense) - 1
	if i != last {
		s.dense[i] = s.dense[last]
		s.ids[i] = s.ids[last]
		s.index[s.ids[i]] = i
	}
	var zero T
	s.dense[last] = zero
	s.dense = s.dense[:last]
	s.ids = s.ids[:last]
	delete(s.index, id)
}

func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.index[id]
	return ok
}

func (s *Store[T]) Len() int {
	return len(s.dense)
}

// Each visits components in dense order. fn must not add or remove.
func (s *Store[T]) Each(fn func(EntityID, *T)) {
	for i := range s.dense {
		fn(s.ids[i], &s.dense[i])
	}
}
