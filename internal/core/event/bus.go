package event

import (
	"reflect"
	"sync"
)

// Bus is a double-buffered event queue. Events emitted during tick N (or by
// commands between ticks) are delivered at the start of tick N+1, when
// SwapBuffers moves them to the front buffer. The front buffer keeps emit
// order, so pollers can read it as a log.
type Bus struct {
	mu       sync.Mutex // only protects handler registration
	front    []any
	back     []any
	handlers map[reflect.Type][]func(any)
}

func NewBus() *Bus {
	return &Bus{
		front:    make([]any, 0, 32),
		back:     make([]any, 0, 32),
		handlers: make(map[reflect.Type][]func(any)),
	}
}

// Emit queues an event into the back buffer.
func Emit[T any](b *Bus, event T) {
	b.back = append(b.back, event)
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.handlers[t] = append(b.handlers[t], func(ev any) {
		// Emit and Subscribe key on the same concrete type.
		fn(ev.(T))
	})
}

// SwapBuffers rotates back to front and clears the new back buffer.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front[:0]
}

// DispatchAll delivers front-buffer events to their handlers in emit order.
func (b *Bus) DispatchAll() {
	for _, ev := range b.front {
		for _, h := range b.handlers[reflect.TypeOf(ev)] {
			h(ev)
		}
	}
}

// Flush swaps and dispatches in one step, for callers that drive the bus
// outside the tick loop.
func (b *Bus) Flush() {
	b.SwapBuffers()
	b.DispatchAll()
}

// Delivered returns the events delivered by the last swap. The slice is
// reused on the next swap.
func (b *Bus) Delivered() []any {
	return b.front
}

// Queued returns how many events wait in the back buffer.
func (b *Bus) Queued() int {
	return len(b.back)
}
