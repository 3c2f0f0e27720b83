// Package collider provides the two shapes the simulation needs (circles for
// the drill and minerals, rectangles for anything boxy) and exact overlap
// predicates between them.
package collider

import (
	"math"

	"github.com/deepdrill/drillsim/internal/geom"
)

type ShapeKind uint8

const (
	ShapeCircle ShapeKind = iota
	ShapeRectangle
)

// Shape is a circle (Radius) or a rectangle (Width x Height) centered on the
// collider position.
type Shape struct {
	Kind   ShapeKind
	Radius float64
	Width  float64
	Height float64
}

type Collider struct {
	Position geom.Vec2
	Rotation float64 // radians
	Shape    Shape
}

func Circle(pos geom.Vec2, radius float64) Collider {
	return Collider{Position: pos, Shape: Shape{Kind: ShapeCircle, Radius: radius}}
}

func Rectangle(pos geom.Vec2, width, height float64) Collider {
	return Collider{Position: pos, Shape: Shape{Kind: ShapeRectangle, Width: width, Height: height}}
}

// AABB returns the axis-aligned box enclosing the rotated shape.
func (c Collider) AABB() geom.Aabb {
	switch c.Shape.Kind {
	case ShapeRectangle:
		s, co := math.Sincos(c.Rotation)
		s, co = math.Abs(s), math.Abs(co)
		hw, hh := c.Shape.Width/2, c.Shape.Height/2
		ex := hw*co + hh*s
		ey := hw*s + hh*co
		return geom.Aabb{
			Min: geom.V(c.Position.X-ex, c.Position.Y-ey),
			Max: geom.V(c.Position.X+ex, c.Position.Y+ey),
		}
	default:
		r := c.Shape.Radius
		return geom.Aabb{
			Min: geom.V(c.Position.X-r, c.Position.Y-r),
			Max: geom.V(c.Position.X+r, c.Position.Y+r),
		}
	}
}

// Check reports whether the two shapes overlap. Touching counts as overlap.
func (c Collider) Check(o Collider) bool {
	switch {
	case c.Shape.Kind == ShapeCircle && o.Shape.Kind == ShapeCircle:
		return c.Position.Sub(o.Position).Len() <= c.Shape.Radius+o.Shape.Radius
	case c.Shape.Kind == ShapeCircle:
		return circleRect(c, o)
	case o.Shape.Kind == ShapeCircle:
		return circleRect(o, c)
	default:
		return rectRect(c, o)
	}
}

func circleRect(circle, rect Collider) bool {
	local := circle.Position.Sub(rect.Position).Rotate(-rect.Rotation)
	hw, hh := rect.Shape.Width/2, rect.Shape.Height/2
	closest := geom.V(geom.Clamp(local.X, -hw, hw), geom.Clamp(local.Y, -hh, hh))
	return local.Sub(closest).Len() <= circle.Shape.Radius
}

// rectRect is a separating-axis test over both rectangles' edge normals.
func rectRect(a, b Collider) bool {
	ca, cb := corners(a), corners(b)
	axes := [4]geom.Vec2{
		geom.UnitVec(a.Rotation), geom.UnitVec(a.Rotation + math.Pi/2),
		geom.UnitVec(b.Rotation), geom.UnitVec(b.Rotation + math.Pi/2),
	}
	for _, axis := range axes {
		amin, amax := project(ca, axis)
		bmin, bmax := project(cb, axis)
		if amax < bmin || bmax < amin {
			return false
		}
	}
	return true
}

func corners(c Collider) [4]geom.Vec2 {
	hw, hh := c.Shape.Width/2, c.Shape.Height/2
	local := [4]geom.Vec2{{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh}}
	var out [4]geom.Vec2
	for i, p := range local {
		out[i] = p.Rotate(c.Rotation).Add(c.Position)
	}
	return out
}

func project(pts [4]geom.Vec2, axis geom.Vec2) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		d := p.Dot(axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}
