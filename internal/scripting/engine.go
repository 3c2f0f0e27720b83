package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/deepdrill/drillsim/internal/data"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM holding the economy hooks.
// Single-goroutine access only (tick loop).
type Engine struct {
	vm       *lua.LState
	log      *zap.Logger
	fallback data.Valuer
}

// NewEngine creates a Lua engine and loads every script under the core and
// economy subdirectories of scriptsDir. Missing directories are skipped.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log, fallback: data.UnitValuer{}}
	for _, sub := range []string{"core", "economy"} {
		if err := e.loadDir(filepath.Join(scriptsDir, sub)); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// HasValuation reports whether a script defined mineral_value.
func (e *Engine) HasValuation() bool {
	return e.vm.GetGlobal("mineral_value") != lua.LNil
}

// MineralValue calls the Lua mineral_value(ctx) hook. Without the hook, or
// when it fails or returns a non-number, the mineral is priced at
// amount × unit value.
func (e *Engine) MineralValue(ctx data.ValueContext) int64 {
	fn := e.vm.GetGlobal("mineral_value")
	if fn == lua.LNil {
		return e.fallback.MineralValue(ctx)
	}

	t := e.vm.NewTable()
	t.RawSetString("kind", lua.LString(ctx.Kind.String()))
	t.RawSetString("rock", lua.LBool(ctx.Kind.Rock))
	t.RawSetString("tier", lua.LNumber(ctx.Kind.Tier))
	t.RawSetString("amount", lua.LNumber(ctx.Amount))
	t.RawSetString("unit_value", lua.LNumber(ctx.UnitValue))
	t.RawSetString("depth", lua.LNumber(ctx.Depth))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua mineral_value error", zap.Error(err))
		return e.fallback.MineralValue(ctx)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua mineral_value returned non-number", zap.String("type", result.Type().String()))
		return e.fallback.MineralValue(ctx)
	}
	if n < 0 {
		return 0
	}
	return int64(n)
}

// Close releases the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
