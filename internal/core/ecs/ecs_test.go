package ecs

import "testing"

func TestPoolRecyclesWithNewGeneration(t *testing.T) {
	p := NewEntityPool()
	a := p.Create()
	if !p.Destroy(a) {
		t.Fatal("destroy live entity")
	}
	if p.Destroy(a) {
		t.Fatal("double destroy must be ignored")
	}
	b := p.Create()
	if b.Index() != a.Index() || b.Generation() != a.Generation()+1 {
		t.Fatalf("recycled id %v from %v", b, a)
	}
	if p.Alive(a) || !p.Alive(b) {
		t.Fatal("stale id reported alive")
	}
	if p.Live() != 1 {
		t.Fatalf("live = %d", p.Live())
	}
}

func TestStoreSwapRemove(t *testing.T) {
	s := NewStore[int]()
	ids := []EntityID{NewEntityID(0, 0), NewEntityID(1, 0), NewEntityID(2, 0)}
	for i, id := range ids {
		s.Set(id, i*10)
	}
	s.Remove(ids[0])
	if s.Has(ids[0]) || s.Len() != 2 {
		t.Fatal("remove failed")
	}
	if v, ok := s.Get(ids[2]); !ok || *v != 20 {
		t.Fatalf("moved element lost: %v %v", v, ok)
	}
	var order []int
	s.Each(func(_ EntityID, v *int) { order = append(order, *v) })
	if len(order) != 2 || order[0] != 20 || order[1] != 10 {
		t.Fatalf("order = %v", order)
	}
}

func TestWorldDeferredDestruction(t *testing.T) {
	w := NewWorld()
	life := Register(w, NewStore[float64]())
	tag := Register(w, NewStore[string]())

	for i := 0; i < 4; i++ {
		id := w.CreateEntity()
		life.Set(id, float64(i))
		if i%2 == 0 {
			tag.Set(id, "even")
		}
	}

	visited := 0
	Each2(life, tag, func(id EntityID, l *float64, _ *string) {
		visited++
		w.MarkForDestruction(id)
		w.MarkForDestruction(id)
	})
	if visited != 2 || life.Len() != 4 {
		t.Fatalf("visited %d, stores mutated during iteration: %d", visited, life.Len())
	}
	if n := w.FlushDestroyQueue(); n != 2 {
		t.Fatalf("flushed %d", n)
	}
	if life.Len() != 2 || tag.Len() != 0 || w.Live() != 2 || w.Pending() != 0 {
		t.Fatalf("after flush: life=%d tag=%d live=%d", life.Len(), tag.Len(), w.Live())
	}
}
