package data

import "fmt"

// ResourceKind is a collectible tier. The order matters: a drill of tier T
// collects every resource whose tier is <= T.
type ResourceKind uint8

const (
	Coal ResourceKind = iota
	Iron
	Bronze
	Silver
	Gold
)

var resourceNames = [...]string{"coal", "iron", "bronze", "silver", "gold"}

func (k ResourceKind) String() string {
	if int(k) < len(resourceNames) {
		return resourceNames[k]
	}
	return fmt.Sprintf("resource(%d)", uint8(k))
}

// DrillTier maps a chained upgrade count onto the drill's resource tier.
func DrillTier(upgrades int) ResourceKind {
	switch {
	case upgrades <= 0:
		return Iron
	case upgrades == 1:
		return Bronze
	case upgrades == 2:
		return Silver
	default:
		return Gold
	}
}

// MineralKind is either Rock or a Resource of some tier.
type MineralKind struct {
	Rock bool
	Tier ResourceKind
}

func Resource(k ResourceKind) MineralKind { return MineralKind{Tier: k} }
func Rock() MineralKind                  { return MineralKind{Rock: true} }

func (m MineralKind) String() string {
	if m.Rock {
		return "rock"
	}
	return m.Tier.String()
}

// AllMinerals lists every mineral kind in generation order.
func AllMinerals() []MineralKind {
	return []MineralKind{Resource(Coal), Resource(Iron), Resource(Bronze), Resource(Silver), Resource(Gold), Rock()}
}

func ParseMineralKind(s string) (MineralKind, error) {
	if s == "rock" {
		return Rock(), nil
	}
	for i, n := range resourceNames {
		if n == s {
			return Resource(ResourceKind(i)), nil
		}
	}
	return MineralKind{}, fmt.Errorf("unknown mineral kind %q", s)
}

// ShopNode is the node a shop item produces when bought.
type ShopNode uint8

const (
	ShopFuelSmall ShopNode = iota
	ShopFuel
	ShopCoalFuel
	ShopTurnLeft
	ShopTurnRight
	ShopBattery
	ShopUpgrade
	ShopSpeed
	ShopLight
	ShopSprint
)

var shopNodeNames = [...]string{
	"fuel_small", "fuel", "coal_fuel", "turn_left", "turn_right",
	"battery", "upgrade", "speed", "light", "sprint",
}

func (n ShopNode) String() string {
	if int(n) < len(shopNodeNames) {
		return shopNodeNames[n]
	}
	return fmt.Sprintf("shop_node(%d)", uint8(n))
}

func ParseShopNode(s string) (ShopNode, error) {
	for i, n := range shopNodeNames {
		if n == s {
			return ShopNode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown shop node %q", s)
}
