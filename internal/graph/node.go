// Package graph holds the player-wired power/resource graph. Nodes live in a
// dense slice and connections are (node, slot) index pairs, so cycles and
// dangling references cost nothing to represent.
package graph

import (
	"github.com/deepdrill/drillsim/internal/data"
	"github.com/deepdrill/drillsim/internal/gauge"
	"github.com/deepdrill/drillsim/internal/geom"
)

// ConnectionKind restricts which slots may be wired together: only slots of
// equal kind connect.
type ConnectionKind uint8

const (
	ConnNormal ConnectionKind = iota
	ConnFuel
	ConnUpgrade
	ConnDrill
)

func (k ConnectionKind) String() string {
	switch k {
	case ConnNormal:
		return "normal"
	case ConnFuel:
		return "fuel"
	case ConnUpgrade:
		return "upgrade"
	case ConnDrill:
		return "drill"
	}
	return "unknown"
}

// SlotRef is a weak reference to a connection slot on some node.
type SlotRef struct {
	Node int
	Slot int
}

type Connection struct {
	Offset geom.Vec2 // relative position inside the node rect, [0,1]²
	Kind   ConnectionKind
	Peer   *SlotRef // nil when unwired
}

// NodeKind is the closed set of node behaviors. Every implementation is a
// pointer type declared in this file; consumers dispatch with a type switch.
type NodeKind interface {
	isNodeKind()
}

// Power is the graph root. Exactly one exists, at index 0.
type Power struct{}

type Fuel struct {
	Gauge gauge.Bounded[float64]
}

// CoalFuel is a fuel tank that mined coal refills.
type CoalFuel struct {
	Gauge gauge.Bounded[float64]
}

// Shop level is the number of upgrades chained to the shop node.
type Shop struct {
	Level int
}

// Drill level is the resource tier derived from chained upgrades. Power
// counts reachable batteries against one slot per upgrade.
type Drill struct {
	Level data.ResourceKind
	Power gauge.Bounded[int]
}

type TurnLeft struct{}
type TurnRight struct{}

type Sprint struct {
	Cooldown gauge.Bounded[float64]
}

type Upgrade struct{}
type Battery struct{}

type Vision struct {
	Level int
}

type Speed struct {
	Level int
}

func (*Power) isNodeKind()     {}
func (*Fuel) isNodeKind()      {}
func (*CoalFuel) isNodeKind()  {}
func (*Shop) isNodeKind()      {}
func (*Drill) isNodeKind()     {}
func (*TurnLeft) isNodeKind()  {}
func (*TurnRight) isNodeKind() {}
func (*Sprint) isNodeKind()    {}
func (*Upgrade) isNodeKind()   {}
func (*Battery) isNodeKind()   {}
func (*Vision) isNodeKind()    {}
func (*Speed) isNodeKind()     {}

// KindName is a stable lowercase name for logs and renderers.
func KindName(k NodeKind) string {
	switch k.(type) {
	case *Power:
		return "power"
	case *Fuel:
		return "fuel"
	case *CoalFuel:
		return "coal_fuel"
	case *Shop:
		return "shop"
	case *Drill:
		return "drill"
	case *TurnLeft:
		return "turn_left"
	case *TurnRight:
		return "turn_right"
	case *Sprint:
		return "sprint"
	case *Upgrade:
		return "upgrade"
	case *Battery:
		return "battery"
	case *Vision:
		return "vision"
	case *Speed:
		return "speed"
	}
	return "unknown"
}

// FuelGauge returns the gauge of a Fuel or CoalFuel node.
func FuelGauge(k NodeKind) (*gauge.Bounded[float64], bool) {
	switch k := k.(type) {
	case *Fuel:
		return &k.Gauge, true
	case *CoalFuel:
		return &k.Gauge, true
	}
	return nil, false
}

type Node struct {
	Powered     bool
	Position    geom.Aabb
	Kind        NodeKind
	Connections []Connection
}

// NodeSize is the edge length of every node rect.
const NodeSize = 1.0

// NewNode builds an unwired node centered on center with the slot layout
// fixed for its kind.
func NewNode(kind NodeKind, center geom.Vec2) Node {
	return Node{
		Position:    geom.PointBox(center, geom.V(NodeSize, NodeSize)),
		Kind:        kind,
		Connections: slotTemplate(kind),
	}
}

type slotSpec struct {
	x, y float64
	kind ConnectionKind
}

func slotTemplate(kind NodeKind) []Connection {
	var specs []slotSpec
	switch kind.(type) {
	case *Power:
		specs = []slotSpec{{0.5, 0, ConnFuel}, {1, 0.5, ConnNormal}, {0.5, 1, ConnNormal}}
	case *Shop:
		specs = []slotSpec{{0.5, 0, ConnUpgrade}}
	case *Drill:
		specs = []slotSpec{{0, 0.5, ConnNormal}, {1, 0.5, ConnDrill}, {0.5, 1, ConnDrill}, {0.5, 0, ConnUpgrade}}
	case *Fuel, *CoalFuel:
		specs = []slotSpec{{0, 0.5, ConnFuel}}
	case *TurnLeft, *TurnRight:
		specs = []slotSpec{{0, 0.5, ConnNormal}, {0.5, 1, ConnDrill}, {1, 0.5, ConnNormal}}
	case *Battery, *Sprint:
		specs = []slotSpec{{0, 0.5, ConnNormal}, {1, 0.5, ConnNormal}}
	case *Upgrade:
		specs = []slotSpec{{0.5, 0, ConnUpgrade}, {0.5, 1, ConnUpgrade}}
	case *Speed, *Vision:
		specs = []slotSpec{{0, 0.5, ConnDrill}, {0.5, 1, ConnUpgrade}, {1, 0.5, ConnFuel}}
	}
	conns := make([]Connection, len(specs))
	for i, s := range specs {
		conns[i] = Connection{Offset: geom.V(s.x, s.y), Kind: s.kind}
	}
	return conns
}

// SlotPosition returns the world position of a slot on this node.
func (n *Node) SlotPosition(slot int) (geom.Vec2, bool) {
	if slot < 0 || slot >= len(n.Connections) {
		return geom.Vec2{}, false
	}
	return n.Position.AlignPos(n.Connections[slot].Offset), true
}
