package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for tunable game rules.
// Single-goroutine access only (game loop).
//
// A nil *Engine is valid: every hook returns its built-in fallback.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	// core first so helpers exist for the rest
	for _, sub := range []string{"core", "combat", "input"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

// NewEngineFromSource builds an engine from in-memory chunks, in order.
func NewEngineFromSource(log *zap.Logger, chunks ...string) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	for i, src := range chunks {
		if err := vm.DoString(src); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load chunk %d: %w", i, err)
		}
	}
	return &Engine{vm: vm, log: log}, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
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

// AttackContext is passed to calc_attack_damage on every landed hit.
type AttackContext struct {
	AttackerKind string
	TargetKind   string
	Base         float64 // Attack.Amount
	TargetHealth float64 // before the hit
}

// CalcAttackDamage calls the Lua calc_attack_damage function. Missing
// function, script error or a bad return value fall back to Base.
func (e *Engine) CalcAttackDamage(ctx AttackContext) float64 {
	if e == nil {
		return ctx.Base
	}
	t := e.vm.NewTable()
	t.RawSetString("attacker", lua.LString(ctx.AttackerKind))
	t.RawSetString("target", lua.LString(ctx.TargetKind))
	t.RawSetString("base", lua.LNumber(ctx.Base))
	t.RawSetString("target_health", lua.LNumber(ctx.TargetHealth))
	return e.callDamage("calc_attack_damage", t, ctx.Base)
}

// CollisionContext is passed to calc_collision_damage for every contact.
type CollisionContext struct {
	SourceKind string // carries CollisionDamage
	TargetKind string // takes the damage
	Base       float64
}

// CalcCollisionDamage calls the Lua calc_collision_damage function with the
// same fallbacks as CalcAttackDamage.
func (e *Engine) CalcCollisionDamage(ctx CollisionContext) float64 {
	if e == nil {
		return ctx.Base
	}
	t := e.vm.NewTable()
	t.RawSetString("source", lua.LString(ctx.SourceKind))
	t.RawSetString("target", lua.LString(ctx.TargetKind))
	t.RawSetString("base", lua.LNumber(ctx.Base))
	return e.callDamage("calc_collision_damage", t, ctx.Base)
}

func (e *Engine) callDamage(name string, arg *lua.LTable, base float64) float64 {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		return base
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, arg); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return base
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua function returned non-number", zap.String("func", name))
		return base
	}
	if n < 0 {
		return 0
	}
	return float64(n)
}

// PlayerInput calls the Lua player_input(tick) function and returns the
// names of the keys held on that tick.
func (e *Engine) PlayerInput(tick uint64) []string {
	if e == nil {
		return nil
	}
	fn := e.vm.GetGlobal("player_input")
	if fn == lua.LNil {
		return nil
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(tick)); err != nil {
		e.log.Error("lua player_input error", zap.Error(err))
		return nil
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return nil
	}
	keys := make([]string, 0, rt.Len())
	for i := 1; i <= rt.Len(); i++ {
		keys = append(keys, lua.LVAsString(rt.RawGetInt(i)))
	}
	return keys
}

// HasFunction reports whether a global Lua function is defined.
func (e *Engine) HasFunction(name string) bool {
	if e == nil {
		return false
	}
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	e.vm.Close()
}
