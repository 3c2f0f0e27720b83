package ecs

// Each2 visits entities that have both A and B, in A's dense order.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(EntityID, *A, *B)) {
	for i := range sa.dense {
		id := sa.ids[i]
		if b, ok := sb.Get(id); ok {
			fn(id, &sa.dense[i], b)
		}
	}
}
