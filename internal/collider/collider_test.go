package collider

import (
	"math"
	"testing"

	"github.com/deepdrill/drillsim/internal/geom"
)

func TestCircleCircle(t *testing.T) {
	a := Circle(geom.V(0, 0), 0.5)
	if !a.Check(Circle(geom.V(0.9, 0), 0.4)) {
		t.Fatal("touching circles should overlap")
	}
	if a.Check(Circle(geom.V(1.0, 0), 0.4)) {
		t.Fatal("separated circles should not overlap")
	}
}

func TestCircleRectangleRotated(t *testing.T) {
	r := Rectangle(geom.V(0, 0), 4, 0.2)
	c := Circle(geom.V(0, 1.5), 0.2)
	if r.Check(c) {
		t.Fatal("flat bar should miss circle above it")
	}
	r.Rotation = math.Pi / 2
	if !r.Check(c) || !c.Check(r) {
		t.Fatal("upright bar should hit circle above its center")
	}
}

func TestRectangleRectangle(t *testing.T) {
	a := Rectangle(geom.V(0, 0), 1, 1)
	b := Rectangle(geom.V(1.2, 0), 1, 1)
	if a.Check(b) {
		t.Fatal("axis aligned boxes 1.2 apart should not overlap")
	}
	b.Rotation = math.Pi / 4
	if !a.Check(b) {
		t.Fatal("rotated box corner should reach the first box")
	}
}

func TestAABB(t *testing.T) {
	box := Rectangle(geom.V(1, 1), 2, 2)
	box.Rotation = math.Pi / 4
	bb := box.AABB()
	want := math.Sqrt2
	if math.Abs(bb.Width()-2*want) > 1e-9 {
		t.Fatalf("rotated aabb width %v, want %v", bb.Width(), 2*want)
	}
	c := Circle(geom.V(0, 0), 0.3).AABB()
	if c.Min.X != -0.3 || c.Max.Y != 0.3 {
		t.Fatalf("circle aabb %v", c)
	}
}
