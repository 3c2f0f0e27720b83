package main

import (
	"math"

	"github.com/deepdrill/drillsim/internal/data"
	"github.com/deepdrill/drillsim/internal/graph"
	"github.com/deepdrill/drillsim/internal/sim"
	"github.com/deepdrill/drillsim/internal/world"
	"go.uber.org/zap"
)

// buyOrder is what the autopilot spends money on, most wanted first.
var buyOrder = []data.ShopNode{
	data.ShopBattery,
	data.ShopFuel,
	data.ShopCoalFuel,
	data.ShopFuelSmall,
	data.ShopUpgrade,
	data.ShopSpeed,
	data.ShopLight,
}

// autopilot plays the setup phase: it relaunches when it can, otherwise
// buys the most wanted affordable item and wires it onto the powered graph.
type autopilot struct {
	s     *sim.Sim
	log   *zap.Logger
	stuck bool
}

func newAutopilot(s *sim.Sim, log *zap.Logger) *autopilot {
	return &autopilot{s: s, log: log}
}

func (a *autopilot) step() {
	if a.s.Phase() != world.PhaseSetup {
		return
	}
	if a.s.Launch() {
		a.stuck = false
		return
	}
	if idx, ok := a.buy(); ok {
		a.wire(idx)
		return
	}
	if !a.stuck {
		a.log.Warn("cannot launch and nothing affordable", zap.Int64("money", a.s.Money()))
		a.stuck = true
	}
}

// buy purchases the first affordable offer in buyOrder and returns the new
// node's index.
func (a *autopilot) buy() (int, bool) {
	offers := a.s.Offers()
	for _, want := range buyOrder {
		for i, o := range offers {
			if o.Item.Node != want || o.Item.Cost > a.s.Money() {
				continue
			}
			if a.s.PurchaseItem(i) {
				return len(a.s.Nodes()) - 1, true
			}
		}
	}
	return 0, false
}

// wire connects one free slot of node idx to the nearest free slot of the
// same kind on a powered node.
func (a *autopilot) wire(idx int) bool {
	nodes := a.s.Nodes()
	for slot, c := range nodes[idx].Connections {
		if c.Peer != nil {
			continue
		}
		if peer, ok := nearestFreeSlot(nodes, idx, slot); ok && a.s.Connect(peer.Node, peer.Slot, idx, slot) {
			return true
		}
	}
	return false
}

// nearestFreeSlot finds the unwired slot on another powered node that
// matches the kind of nodes[idx] slot and sits closest to it.
func nearestFreeSlot(nodes []graph.Node, idx, slot int) (graph.SlotRef, bool) {
	from, ok := nodes[idx].SlotPosition(slot)
	if !ok {
		return graph.SlotRef{}, false
	}
	kind := nodes[idx].Connections[slot].Kind
	var best graph.SlotRef
	bestDist := math.Inf(1)
	for j := range nodes {
		if j == idx || !nodes[j].Powered {
			continue
		}
		for k, pc := range nodes[j].Connections {
			if pc.Peer != nil || pc.Kind != kind {
				continue
			}
			at, _ := nodes[j].SlotPosition(k)
			if d := at.Sub(from).Len(); d < bestDist {
				best, bestDist = graph.SlotRef{Node: j, Slot: k}, d
			}
		}
	}
	return best, !math.IsInf(bestDist, 1)
}
