package data

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const mineralYAML = `
minerals:
  - kind: coal
    value: 1
    generation:
      - range: [0, -40]
        density: 0.3
  - kind: iron
    value: 2
    generation:
      - range: [-5, -80]
        density: 0.2
  - kind: bronze
    value: 4
  - kind: silver
    value: 8
  - kind: gold
    value: 16
  - kind: rock
    value: 0
    generation:
      - range: [-1, -1000]
        density: 0.1
`

func TestLoadMineralTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "minerals.yaml")
	if err := os.WriteFile(path, []byte(mineralYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	tbl, err := LoadMineralTable(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tbl.Count() != 6 {
		t.Fatalf("count = %d", tbl.Count())
	}
	coal := tbl.Get(Resource(Coal))
	if coal == nil || coal.Value != 1 {
		t.Fatalf("coal = %+v", coal)
	}
	rule := coal.Generation[0]
	if rule.Low != -40 || rule.High != 0 {
		t.Fatalf("range not normalized: %+v", rule)
	}
	if !rule.Contains(-20) || rule.Contains(1) {
		t.Fatal("contains")
	}

	var order []string
	tbl.Each(func(m *MineralInfo) { order = append(order, m.Kind.String()) })
	if strings.Join(order, ",") != "coal,iron,bronze,silver,gold,rock" {
		t.Fatalf("order = %v", order)
	}
}

func TestLoadMineralTableMissingKind(t *testing.T) {
	raw := strings.Replace(mineralYAML, "  - kind: gold\n    value: 16\n", "", 1)
	if _, err := parseMineralTable([]byte(raw)); err == nil || !strings.Contains(err.Error(), "gold") {
		t.Fatalf("want missing gold error, got %v", err)
	}
	if _, err := parseMineralTable([]byte("minerals:\n  - kind: mithril\n")); err == nil {
		t.Fatal("want unknown kind error")
	}
}

const shopYAML = `
tiers:
  - slots: 2
    items:
      - {cost: 3, node: fuel_small}
      - {cost: 5, node: battery}
      - {cost: 8, node: upgrade}
  - slots: 3
    items:
      - {cost: 12, node: turn_left}
  - slots: 4
    items:
      - {cost: 30, node: sprint}
`

func TestLoadShopTable(t *testing.T) {
	tbl, err := parseShopTable([]byte(shopYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tbl.Count() != 5 {
		t.Fatalf("count = %d", tbl.Count())
	}
	if tbl.Tiers[0].Items[1].Node != ShopBattery || tbl.Tiers[2].Slots != 4 {
		t.Fatalf("tiers = %+v", tbl.Tiers)
	}

	c := tbl.Clone()
	c.Tiers[0].Items[0].SoldOut = true
	if tbl.Tiers[0].Items[0].SoldOut {
		t.Fatal("clone shares item storage")
	}
}

func TestLoadShopTableErrors(t *testing.T) {
	if _, err := parseShopTable([]byte("tiers:\n  - slots: 1\n")); err == nil {
		t.Fatal("want tier count error")
	}
	bad := strings.Replace(shopYAML, "sprint", "teleporter", 1)
	if _, err := parseShopTable([]byte(bad)); err == nil {
		t.Fatal("want unknown node error")
	}
}

func TestDrillTier(t *testing.T) {
	want := []ResourceKind{Iron, Bronze, Silver, Gold, Gold}
	for n, w := range want {
		if got := DrillTier(n); got != w {
			t.Errorf("DrillTier(%d) = %s, want %s", n, got, w)
		}
	}
	if Resource(Coal).Tier > DrillTier(0) {
		t.Fatal("coal must be collectible by the base drill")
	}
}

func TestShippedCatalogs(t *testing.T) {
	minerals, err := LoadMineralTable("../../data/yaml/mineral_list.yaml")
	if err != nil {
		t.Fatalf("minerals: %v", err)
	}
	if minerals.Count() != len(AllMinerals()) {
		t.Fatalf("mineral kinds = %d", minerals.Count())
	}
	shop, err := LoadShopTable("../../data/yaml/shop_list.yaml")
	if err != nil {
		t.Fatalf("shop: %v", err)
	}
	if len(shop.Tiers[0].Items) == 0 {
		t.Fatal("tier 0 has nothing to buy")
	}
}
