package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TierCount is the number of shop tiers. Tier t unlocks once the Shop node
// has t chained upgrades.
const TierCount = 3

// ShopItem holds one purchasable node.
type ShopItem struct {
	Cost    int64
	Node    ShopNode
	SoldOut bool // set on purchase, lasts for the rest of the run
}

// ShopTier is one pool of items plus how many offers the shop shows while
// this is the highest unlocked tier.
type ShopTier struct {
	Slots int
	Items []ShopItem
}

// ShopTable holds the three tier pools.
type ShopTable struct {
	Tiers [TierCount]ShopTier
}

// Clone returns a deep copy so sold-out flags can be tracked per run.
func (t *ShopTable) Clone() *ShopTable {
	c := &ShopTable{}
	for i, tier := range t.Tiers {
		c.Tiers[i] = ShopTier{
			Slots: tier.Slots,
			Items: append([]ShopItem(nil), tier.Items...),
		}
	}
	return c
}

// Count returns the total number of items across all tiers.
func (t *ShopTable) Count() int {
	n := 0
	for _, tier := range t.Tiers {
		n += len(tier.Items)
	}
	return n
}

type shopYAMLItem struct {
	Cost int64  `yaml:"cost"`
	Node string `yaml:"node"`
}

type shopYAMLTier struct {
	Slots int            `yaml:"slots"`
	Items []shopYAMLItem `yaml:"items"`
}

type shopListFile struct {
	Tiers []shopYAMLTier `yaml:"tiers"`
}

// LoadShopTable loads the tiered shop pools from a YAML file.
func LoadShopTable(path string) (*ShopTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read shop_list: %w", err)
	}
	return parseShopTable(raw)
}

func parseShopTable(raw []byte) (*ShopTable, error) {
	var f shopListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse shop_list: %w", err)
	}
	if len(f.Tiers) != TierCount {
		return nil, fmt.Errorf("shop_list: want %d tiers, got %d", TierCount, len(f.Tiers))
	}

	t := &ShopTable{}
	for i, tier := range f.Tiers {
		if tier.Slots <= 0 {
			return nil, fmt.Errorf("shop_list: tier %d: slots must be positive", i)
		}
		st := ShopTier{Slots: tier.Slots, Items: make([]ShopItem, 0, len(tier.Items))}
		for _, item := range tier.Items {
			node, err := ParseShopNode(item.Node)
			if err != nil {
				return nil, fmt.Errorf("shop_list: tier %d: %w", i, err)
			}
			if item.Cost < 0 {
				return nil, fmt.Errorf("shop_list: tier %d: negative cost for %s", i, node)
			}
			st.Items = append(st.Items, ShopItem{Cost: item.Cost, Node: node})
		}
		t.Tiers[i] = st
	}
	return t, nil
}
