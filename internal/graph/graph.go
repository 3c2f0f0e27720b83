package graph

import "github.com/deepdrill/drillsim/internal/geom"

// RootIndex is the index of the Power node, the root of every power query.
const RootIndex = 0

// Graph owns the nodes and the editable area they must stay inside.
// Accessed only from the simulation goroutine.
type Graph struct {
	Bounds geom.Aabb
	Nodes  []Node
}

func New(bounds geom.Aabb) *Graph {
	return &Graph{Bounds: bounds, Nodes: make([]Node, 0, 16)}
}

// Insert appends n, clamps it into bounds and returns its index.
func (g *Graph) Insert(n Node) int {
	n.Position = n.Position.ClampInto(g.Bounds)
	g.Nodes = append(g.Nodes, n)
	return len(g.Nodes) - 1
}

// Node returns the node at i, or false for a stale index.
func (g *Graph) Node(i int) (*Node, bool) {
	if i < 0 || i >= len(g.Nodes) {
		return nil, false
	}
	return &g.Nodes[i], true
}

// Slot resolves a weak slot reference.
func (g *Graph) Slot(ref SlotRef) (*Connection, bool) {
	n, ok := g.Node(ref.Node)
	if !ok || ref.Slot < 0 || ref.Slot >= len(n.Connections) {
		return nil, false
	}
	return &n.Connections[ref.Slot], true
}

// Find returns the index of the first node whose kind satisfies match.
func (g *Graph) Find(match func(NodeKind) bool) (int, bool) {
	for i := range g.Nodes {
		if match(g.Nodes[i].Kind) {
			return i, true
		}
	}
	return 0, false
}

// Connect wires slot a to slot b. Both slots must exist on different nodes
// and share a ConnectionKind. Whatever either slot was wired to before is
// detached first, so links stay symmetric.
func (g *Graph) Connect(a, b SlotRef) bool {
	if a.Node == b.Node {
		return false
	}
	ca, ok := g.Slot(a)
	if !ok {
		return false
	}
	cb, ok := g.Slot(b)
	if !ok || ca.Kind != cb.Kind {
		return false
	}
	g.Disconnect(a)
	g.Disconnect(b)
	ra, rb := a, b
	ca.Peer = &rb
	cb.Peer = &ra
	return true
}

// Disconnect clears slot ref and its peer's back reference. Reports whether
// anything was wired.
func (g *Graph) Disconnect(ref SlotRef) bool {
	c, ok := g.Slot(ref)
	if !ok || c.Peer == nil {
		return false
	}
	peer := *c.Peer
	c.Peer = nil
	if pc, ok := g.Slot(peer); ok && pc.Peer != nil && *pc.Peer == ref {
		pc.Peer = nil
	}
	return true
}

// Move recenters node i on center and clamps it back into bounds.
func (g *Graph) Move(i int, center geom.Vec2) bool {
	n, ok := g.Node(i)
	if !ok {
		return false
	}
	n.Position = n.Position.Translate(center.Sub(n.Position.Center())).ClampInto(g.Bounds)
	return true
}

// ClampAll pushes every node rect back inside Bounds.
func (g *Graph) ClampAll() {
	for i := range g.Nodes {
		g.Nodes[i].Position = g.Nodes[i].Position.ClampInto(g.Bounds)
	}
}

// Normalize drops dangling or one-sided links. Returns how many slots were
// cleared.
func (g *Graph) Normalize() int {
	cleared := 0
	for i := range g.Nodes {
		for s := range g.Nodes[i].Connections {
			c := &g.Nodes[i].Connections[s]
			if c.Peer == nil {
				continue
			}
			self := SlotRef{Node: i, Slot: s}
			pc, ok := g.Slot(*c.Peer)
			if ok && pc.Peer != nil && *pc.Peer == self && c.Peer.Node != i {
				continue
			}
			c.Peer = nil
			cleared++
		}
	}
	return cleared
}

// Symmetric reports whether every link is reciprocated.
func (g *Graph) Symmetric() bool {
	for i := range g.Nodes {
		for s, c := range g.Nodes[i].Connections {
			if c.Peer == nil {
				continue
			}
			pc, ok := g.Slot(*c.Peer)
			if !ok || pc.Peer == nil || *pc.Peer != (SlotRef{Node: i, Slot: s}) {
				return false
			}
		}
	}
	return true
}
