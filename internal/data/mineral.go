package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GenerationRule spawns a mineral at Density per square unit inside the
// depth band [Low, High].
type GenerationRule struct {
	Low     float64
	High    float64
	Density float64
}

func (r GenerationRule) Contains(y float64) bool {
	return y >= r.Low && y <= r.High
}

// MineralInfo holds the value and generation rules for one mineral kind.
type MineralInfo struct {
	Kind       MineralKind
	Value      int64 // money per unit of amount
	Generation []GenerationRule
}

// MineralTable holds every mineral kind, iterated in AllMinerals order so
// generation consumes random numbers deterministically.
type MineralTable struct {
	minerals map[MineralKind]*MineralInfo
	order    []MineralKind
}

// NewMineralTable builds a table from in-memory entries. Later duplicates
// replace earlier ones.
func NewMineralTable(infos ...MineralInfo) *MineralTable {
	t := &MineralTable{minerals: make(map[MineralKind]*MineralInfo, len(infos))}
	for i := range infos {
		info := infos[i]
		info.Generation = append([]GenerationRule(nil), info.Generation...)
		for j, rule := range info.Generation {
			if rule.Low > rule.High {
				info.Generation[j].Low, info.Generation[j].High = rule.High, rule.Low
			}
		}
		t.minerals[info.Kind] = &info
	}
	for _, k := range AllMinerals() {
		if _, ok := t.minerals[k]; ok {
			t.order = append(t.order, k)
		}
	}
	return t
}

// Get returns a mineral entry, or nil if the kind is not configured.
func (t *MineralTable) Get(kind MineralKind) *MineralInfo {
	return t.minerals[kind]
}

// Each visits every configured mineral in generation order.
func (t *MineralTable) Each(fn func(*MineralInfo)) {
	for _, k := range t.order {
		fn(t.minerals[k])
	}
}

// Count returns the number of mineral kinds loaded.
func (t *MineralTable) Count() int {
	return len(t.minerals)
}

type mineralYAMLRule struct {
	Range   [2]float64 `yaml:"range"`
	Density float64    `yaml:"density"`
}

type mineralYAMLEntry struct {
	Kind       string            `yaml:"kind"`
	Value      int64             `yaml:"value"`
	Generation []mineralYAMLRule `yaml:"generation"`
}

type mineralListFile struct {
	Minerals []mineralYAMLEntry `yaml:"minerals"`
}

// LoadMineralTable loads mineral values and generation rules from a YAML
// file. Every mineral kind must be present.
func LoadMineralTable(path string) (*MineralTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mineral_list: %w", err)
	}
	return parseMineralTable(raw)
}

func parseMineralTable(raw []byte) (*MineralTable, error) {
	var f mineralListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse mineral_list: %w", err)
	}

	infos := make([]MineralInfo, 0, len(f.Minerals))
	for _, entry := range f.Minerals {
		kind, err := ParseMineralKind(entry.Kind)
		if err != nil {
			return nil, fmt.Errorf("mineral_list: %w", err)
		}
		info := MineralInfo{Kind: kind, Value: entry.Value}
		for _, r := range entry.Generation {
			if r.Density < 0 {
				return nil, fmt.Errorf("mineral_list: %s: negative density %v", kind, r.Density)
			}
			info.Generation = append(info.Generation, GenerationRule{
				Low: r.Range[0], High: r.Range[1], Density: r.Density,
			})
		}
		infos = append(infos, info)
	}

	t := NewMineralTable(infos...)
	for _, k := range AllMinerals() {
		if t.Get(k) == nil {
			return nil, fmt.Errorf("mineral_list: missing entry for %s", k)
		}
	}
	return t, nil
}

// ValueContext is everything a valuation hook sees about one collection.
type ValueContext struct {
	Kind      MineralKind
	Amount    int64
	UnitValue int64
	Depth     float64 // distance below ground level
}

// Valuer prices a collected mineral.
type Valuer interface {
	MineralValue(ctx ValueContext) int64
}

// UnitValuer prices a mineral at amount × unit value.
type UnitValuer struct{}

func (UnitValuer) MineralValue(ctx ValueContext) int64 {
	return ctx.Amount * ctx.UnitValue
}
