// Package gauge implements the clamped value used for every quantity that
// fills or drains: fuel, cooldowns, lifetimes, drill power slots.
package gauge

// Number is the set of types a Bounded can hold.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Bounded keeps min <= value <= max after every operation.
type Bounded[T Number] struct {
	value T
	min   T
	max   T
}

// New clamps value into [min, max]. An inverted range collapses to min.
func New[T Number](value, min, max T) Bounded[T] {
	if max < min {
		max = min
	}
	b := Bounded[T]{min: min, max: max}
	b.Set(value)
	return b
}

func NewMin[T Number](min, max T) Bounded[T] { return New(min, min, max) }
func NewMax[T Number](min, max T) Bounded[T] { return New(max, min, max) }

// NewZero returns a gauge over [0, max] starting empty.
func NewZero[T Number](max T) Bounded[T] {
	var zero T
	return New(zero, zero, max)
}

// Full returns a gauge over [0, max] starting full.
func Full[T Number](max T) Bounded[T] {
	var zero T
	return New(max, zero, max)
}

func (b Bounded[T]) Value() T { return b.value }
func (b Bounded[T]) Min() T   { return b.min }
func (b Bounded[T]) Max() T   { return b.max }

func (b *Bounded[T]) Set(v T) {
	switch {
	case v < b.min:
		b.value = b.min
	case v > b.max:
		b.value = b.max
	default:
		b.value = v
	}
}

// Change adds delta and clamps. Integer overflow saturates at the bound
// it was heading for.
func (b *Bounded[T]) Change(delta T) {
	var zero T
	next := b.value + delta
	switch {
	case delta > zero && next < b.value:
		b.value = b.max
	case delta < zero && next > b.value:
		b.value = b.min
	default:
		b.Set(next)
	}
}

// SetRatio places the value at r of the way from min to max; r is clamped
// into [0, 1].
func (b *Bounded[T]) SetRatio(r float64) {
	if r < 0 {
		r = 0
	} else if r > 1 {
		r = 1
	}
	b.Set(b.min + T(float64(b.max-b.min)*r))
	if r == 1 {
		b.value = b.max
	}
}

// Ratio is the fill fraction in [0, 1]. A degenerate range reports full.
func (b Bounded[T]) Ratio() float64 {
	if b.max == b.min {
		return 1
	}
	return float64(b.value-b.min) / float64(b.max-b.min)
}

func (b Bounded[T]) IsMin() bool      { return b.value == b.min }
func (b Bounded[T]) IsMax() bool      { return b.value == b.max }
func (b Bounded[T]) IsAboveMin() bool { return b.value > b.min }
