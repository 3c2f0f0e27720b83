package graph

// Visit is called once per reached node in breadth-first order. expand
// controls whether the node's links are followed; stop ends the walk.
type Visit func(i int, n *Node) (expand, stop bool)

// Walk runs a breadth-first traversal from start over wired slots, with a
// visited set so player-built loops terminate. Links to missing nodes are
// skipped. A stale start index visits nothing.
func (g *Graph) Walk(start int, visit Visit) {
	if _, ok := g.Node(start); !ok {
		return
	}
	visited := make([]bool, len(g.Nodes))
	queue := make([]int, 0, len(g.Nodes))
	queue = append(queue, start)
	visited[start] = true
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		n := &g.Nodes[i]
		expand, stop := visit(i, n)
		if stop {
			return
		}
		if !expand {
			continue
		}
		for _, c := range n.Connections {
			if c.Peer == nil {
				continue
			}
			j := c.Peer.Node
			if j < 0 || j >= len(g.Nodes) || visited[j] {
				continue
			}
			visited[j] = true
			queue = append(queue, j)
		}
	}
}

// Reachable returns the indices reachable from start, start included.
func (g *Graph) Reachable(start int) []int {
	var out []int
	g.Walk(start, func(i int, _ *Node) (bool, bool) {
		out = append(out, i)
		return true, false
	})
	return out
}

// ResolvePower sets Powered on every node reachable from the Power root and
// clears it everywhere else.
func (g *Graph) ResolvePower() {
	for i := range g.Nodes {
		g.Nodes[i].Powered = false
	}
	g.Walk(RootIndex, func(_ int, n *Node) (bool, bool) {
		n.Powered = true
		return true, false
	})
}

// CountPolicy selects how far a capability count looks.
type CountPolicy uint8

const (
	// CountAll follows every link from every reached node.
	CountAll CountPolicy = iota
	// CountChained follows links only out of the start node and out of
	// matching nodes, so it counts the chain of matching nodes hanging off
	// start rather than every match in the graph.
	CountChained
)

// Count returns how many nodes reachable from start satisfy match. The start
// node itself counts if it matches.
func (g *Graph) Count(start int, match func(NodeKind) bool, policy CountPolicy) int {
	count := 0
	g.Walk(start, func(i int, n *Node) (bool, bool) {
		ok := match(n.Kind)
		if ok {
			count++
		}
		return policy == CountAll || i == start || ok, false
	})
	return count
}

// CountUpgrades counts the Upgrade chain attached to start.
func (g *Graph) CountUpgrades(start int) int {
	return g.Count(start, IsUpgrade, CountChained)
}

// CountBatteries counts every Battery reachable from start.
func (g *Graph) CountBatteries(start int) int {
	return g.Count(start, IsBattery, CountAll)
}

// ReachesKind reports whether any node reachable from start satisfies match.
func (g *Graph) ReachesKind(start int, match func(NodeKind) bool) bool {
	found := false
	g.Walk(start, func(_ int, n *Node) (bool, bool) {
		if match(n.Kind) {
			found = true
			return false, true
		}
		return true, false
	})
	return found
}

// FirstFuel returns the first node, in traversal order from the root, holding
// a non-empty Fuel or CoalFuel gauge.
func (g *Graph) FirstFuel() (int, bool) {
	idx, found := 0, false
	g.Walk(RootIndex, func(i int, n *Node) (bool, bool) {
		if fg, ok := FuelGauge(n.Kind); ok && fg.IsAboveMin() {
			idx, found = i, true
			return false, true
		}
		return true, false
	})
	return idx, found
}

func IsPower(k NodeKind) bool {
	_, ok := k.(*Power)
	return ok
}

func IsUpgrade(k NodeKind) bool {
	_, ok := k.(*Upgrade)
	return ok
}

func IsBattery(k NodeKind) bool {
	_, ok := k.(*Battery)
	return ok
}

func IsDrill(k NodeKind) bool {
	_, ok := k.(*Drill)
	return ok
}

func IsShop(k NodeKind) bool {
	_, ok := k.(*Shop)
	return ok
}

// IsFuelSource matches Fuel and CoalFuel regardless of fill.
func IsFuelSource(k NodeKind) bool {
	_, ok := FuelGauge(k)
	return ok
}
