package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/deepdrill/drillsim/internal/data"
	"go.uber.org/zap"
)

func writeScript(t *testing.T, dir, sub, name, src string) {
	t.Helper()
	p := filepath.Join(dir, sub)
	if err := os.MkdirAll(p, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(p, name), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newEngine(t *testing.T, dir string) *Engine {
	t.Helper()
	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func TestMineralValueHook(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "core", "util.lua", `function depth_bonus(d) return math.floor(d / 10) end`)
	writeScript(t, dir, "economy", "value.lua", `
function mineral_value(ctx)
  if ctx.rock then return 0 end
  return ctx.amount * ctx.unit_value + depth_bonus(ctx.depth)
end`)
	e := newEngine(t, dir)
	if !e.HasValuation() {
		t.Fatal("hook not found")
	}
	got := e.MineralValue(data.ValueContext{Kind: data.Resource(data.Gold), Amount: 2, UnitValue: 50, Depth: 35})
	if got != 103 {
		t.Fatalf("value = %d, want 103", got)
	}
}

func TestMineralValueFallback(t *testing.T) {
	ctx := data.ValueContext{Kind: data.Resource(data.Iron), Amount: 3, UnitValue: 4}

	e := newEngine(t, t.TempDir())
	if e.HasValuation() {
		t.Fatal("empty dir defines a hook")
	}
	if got := e.MineralValue(ctx); got != 12 {
		t.Fatalf("value = %d, want amount × unit", got)
	}

	dir := t.TempDir()
	writeScript(t, dir, "economy", "bad.lua", `function mineral_value(ctx) error("boom") end`)
	if got := newEngine(t, dir).MineralValue(ctx); got != 12 {
		t.Fatalf("failing hook value = %d, want fallback", got)
	}

	dir = t.TempDir()
	writeScript(t, dir, "economy", "str.lua", `function mineral_value(ctx) return "lots" end`)
	if got := newEngine(t, dir).MineralValue(ctx); got != 12 {
		t.Fatalf("non-number hook value = %d, want fallback", got)
	}
}

func TestNewEngineSyntaxError(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "economy", "broken.lua", `function mineral_value(`)
	if _, err := NewEngine(dir, zap.NewNop()); err == nil {
		t.Fatal("expected load error")
	}
}

func TestShippedValuationScript(t *testing.T) {
	e := newEngine(t, "../../scripts")
	if !e.HasValuation() {
		t.Fatal("shipped scripts define no mineral_value")
	}
	gold := data.ValueContext{Kind: data.Resource(data.Gold), Amount: 3, UnitValue: 30, Depth: 100}
	if got := e.MineralValue(gold); got != 90 {
		t.Fatalf("gold at depth 100 = %d, want amount × unit", got)
	}
	if got := e.MineralValue(data.ValueContext{Kind: data.Rock(), Amount: 1, UnitValue: 5}); got != 0 {
		t.Fatalf("rock = %d", got)
	}
}

func TestDepthBonusExampleScript(t *testing.T) {
	src, err := os.ReadFile("../../scripts/examples/depth_bonus.lua")
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	writeScript(t, dir, "economy", "mineral_value.lua", string(src))
	e := newEngine(t, dir)

	gold := data.ValueContext{Kind: data.Resource(data.Gold), Amount: 1, UnitValue: 30, Depth: 100}
	if got := e.MineralValue(gold); got != 36 {
		t.Fatalf("gold at depth 100 = %d, want 36", got)
	}
	gold.Depth = -3
	if got := e.MineralValue(gold); got != 30 {
		t.Fatalf("gold above ground = %d, want 30", got)
	}
}
