// Package geom holds the small 2D math shared by the simulation: vectors,
// axis-aligned boxes and heading angles. World Y grows upward; the drill
// descends toward negative Y.
package geom

import "math"

type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2        { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2        { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(k float64) Vec2   { return Vec2{v.X * k, v.Y * k} }
func (v Vec2) Len() float64           { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dot(o Vec2) float64     { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Rotate(a float64) Vec2 {
	s, c := math.Sincos(a)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// UnitVec returns the heading vector for an angle in radians.
func UnitVec(angle float64) Vec2 {
	s, c := math.Sincos(angle)
	return Vec2{c, s}
}

// ReflectVertical mirrors a heading about the vertical axis (θ → π − θ),
// normalized to (−π, π].
func ReflectVertical(angle float64) float64 {
	return NormalizeAngle(math.Pi - angle)
}

func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

func Degrees(d float64) float64 { return d * math.Pi / 180 }

// Aabb is an axis-aligned rectangle. Min is the bottom-left corner.
type Aabb struct {
	Min, Max Vec2
}

// PointBox returns a box centered on c with the given full size.
func PointBox(c Vec2, size Vec2) Aabb {
	h := size.Scale(0.5)
	return Aabb{Min: c.Sub(h), Max: c.Add(h)}
}

func FromCorners(a, b Vec2) Aabb {
	return Aabb{
		Min: Vec2{math.Min(a.X, b.X), math.Min(a.Y, b.Y)},
		Max: Vec2{math.Max(a.X, b.X), math.Max(a.Y, b.Y)},
	}
}

func (b Aabb) Width() float64  { return b.Max.X - b.Min.X }
func (b Aabb) Height() float64 { return b.Max.Y - b.Min.Y }
func (b Aabb) Size() Vec2      { return Vec2{b.Width(), b.Height()} }
func (b Aabb) Center() Vec2    { return b.Min.Add(b.Max).Scale(0.5) }

func (b Aabb) Translate(d Vec2) Aabb {
	return Aabb{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

func (b Aabb) Contains(p Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Within reports whether b lies fully inside outer.
func (b Aabb) Within(outer Aabb) bool {
	return b.Min.X >= outer.Min.X && b.Min.Y >= outer.Min.Y &&
		b.Max.X <= outer.Max.X && b.Max.Y <= outer.Max.Y
}

// AlignPos maps a relative offset in [0,1]² onto the box.
func (b Aabb) AlignPos(offset Vec2) Vec2 {
	return Vec2{b.Min.X + b.Width()*offset.X, b.Min.Y + b.Height()*offset.Y}
}

// ClampInto shifts b so it is contained in outer. The min edge wins when b
// is larger than outer.
func (b Aabb) ClampInto(outer Aabb) Aabb {
	var d Vec2
	if over := outer.Max.X - b.Max.X; over < 0 {
		d.X = over
	}
	if over := outer.Max.Y - b.Max.Y; over < 0 {
		d.Y = over
	}
	b = b.Translate(d)
	d = Vec2{}
	if under := outer.Min.X - b.Min.X; under > 0 {
		d.X = under
	}
	if under := outer.Min.Y - b.Min.Y; under > 0 {
		d.Y = under
	}
	return b.Translate(d)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
