package system

import (
	"time"

	"github.com/deepdrill/drillsim/internal/core/event"
	coresys "github.com/deepdrill/drillsim/internal/core/system"
	"github.com/deepdrill/drillsim/internal/data"
	"github.com/deepdrill/drillsim/internal/graph"
	"github.com/deepdrill/drillsim/internal/world"
	"go.uber.org/zap"
)

// ShopSystem keeps the offer list in sync with the shop level and handles
// purchases. Phase 2 (Update).
type ShopSystem struct {
	state *world.State
	bus   *event.Bus
	log   *zap.Logger
}

func NewShopSystem(ws *world.State, bus *event.Bus, log *zap.Logger) *ShopSystem {
	return &ShopSystem{state: ws, bus: bus, log: log}
}

func (s *ShopSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *ShopSystem) Update(_ time.Duration) {
	s.Refresh()
}

// UnlockedTier is the highest tier whose pool is on offer.
func (s *ShopSystem) UnlockedTier() int {
	level := 0
	if i, ok := s.state.Graph.Find(graph.IsShop); ok {
		level = s.state.Graph.Nodes[i].Kind.(*graph.Shop).Level
	}
	return min(level, data.TierCount-1)
}

// Refresh rebuilds the offers: unsold items of every unlocked tier in tier
// order, cut to the slot count of the highest unlocked tier.
func (s *ShopSystem) Refresh() {
	ws := s.state
	unlocked := s.UnlockedTier()
	ws.Offers = ws.Offers[:0]
	for t := 0; t <= unlocked; t++ {
		for i, item := range ws.Shop.Tiers[t].Items {
			if item.SoldOut {
				continue
			}
			ws.Offers = append(ws.Offers, world.ShopOffer{Tier: t, Index: i, Item: item})
		}
	}
	if slots := ws.Shop.Tiers[unlocked].Slots; len(ws.Offers) > slots {
		ws.Offers = ws.Offers[:slots]
	}
}

// Purchase buys the offer at index. It fails without side effects outside
// the setup phase, for a stale index or when money is short.
func (s *ShopSystem) Purchase(index int) bool {
	ws := s.state
	if ws.Phase != world.PhaseSetup {
		s.log.Debug("purchase rejected", zap.String("reason", "not in setup"))
		return false
	}
	if index < 0 || index >= len(ws.Offers) {
		s.log.Debug("purchase rejected", zap.String("reason", "no such offer"), zap.Int("index", index))
		return false
	}
	offer := ws.Offers[index]
	if offer.Item.Cost > ws.Money {
		s.log.Debug("purchase rejected",
			zap.String("reason", "insufficient funds"),
			zap.Int64("cost", offer.Item.Cost),
			zap.Int64("money", ws.Money),
		)
		return false
	}
	kind := ws.NewShopNode(offer.Item.Node)
	if kind == nil {
		s.log.Warn("shop item has no node kind", zap.Stringer("node", offer.Item.Node))
		return false
	}

	ws.Money -= offer.Item.Cost
	ws.Shop.Tiers[offer.Tier].Items[offer.Index].SoldOut = true
	idx := ws.Graph.Insert(graph.NewNode(kind, ws.Graph.Bounds.Center()))
	event.Emit(s.bus, event.ItemPurchased{
		Node:      offer.Item.Node,
		Cost:      offer.Item.Cost,
		Tier:      offer.Tier,
		NodeIndex: idx,
	})
	s.Refresh()
	return true
}
