package event

import "testing"

type ping struct{ n int }
type pong struct{ s string }

func TestBusDeliversNextSwapInOrder(t *testing.T) {
	b := NewBus()
	var got []int
	Subscribe(b, func(p ping) { got = append(got, p.n) })
	var pongs int
	Subscribe(b, func(pong) { pongs++ })

	Emit(b, ping{1})
	Emit(b, pong{"x"})
	Emit(b, ping{2})
	b.DispatchAll()
	if len(got) != 0 {
		t.Fatal("events delivered before swap")
	}
	if b.Queued() != 3 {
		t.Fatalf("queued = %d", b.Queued())
	}

	b.Flush()
	if len(got) != 2 || got[0] != 1 || got[1] != 2 || pongs != 1 {
		t.Fatalf("got %v pongs %d", got, pongs)
	}
	if len(b.Delivered()) != 3 {
		t.Fatalf("delivered log = %v", b.Delivered())
	}
	if _, ok := b.Delivered()[1].(pong); !ok {
		t.Fatal("delivered log lost emit order")
	}

	b.Flush()
	if len(got) != 2 || len(b.Delivered()) != 0 {
		t.Fatal("events delivered twice")
	}
}
