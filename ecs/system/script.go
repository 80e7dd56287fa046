package system

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/scenecore/ecs"
	"github.com/milk9111/scenecore/ecs/component"
)

const scriptMaxAllocs = 1 << 14

// ScriptSystem runs each entity's tengo script once per frame. Scripts read and
// write the globals translation, scale and rotation (XYZ euler, radians) and
// read frame, time and dt. A script that fails to compile or run is disabled
// until its source changes.
type ScriptSystem struct {
	log   *slog.Logger
	dt    float64
	frame int
	cache map[ecs.Entity]*scriptRuntime
}

type scriptRuntime struct {
	path     string
	source   []byte
	compiled *tengo.Compiled
	euler    mgl32.Vec3
	failed   bool
}

func NewScriptSystem(dt float64, logger *slog.Logger) *ScriptSystem {
	if dt <= 0 {
		dt = 1.0 / 60.0
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ScriptSystem{log: logger, dt: dt, cache: map[ecs.Entity]*scriptRuntime{}}
}

func (ss *ScriptSystem) Update(s *ecs.Scene) {
	live := make(map[ecs.Entity]bool, len(ss.cache))
	ecs.ForEach(s, component.ScriptComponent, func(e ecs.Entity, sc *component.Script) {
		live[e] = true
		t, ok := s.Transform(e)
		if !ok {
			return
		}
		rt := ss.runtime(e, sc)
		if rt.failed {
			return
		}
		if err := rt.step(t, ss.frame, ss.dt); err != nil {
			rt.failed = true
			ss.log.Warn("script: disabled after error", "entity", e.String(), "path", rt.path, "err", err)
		}
	})
	for e := range ss.cache {
		if !live[e] {
			delete(ss.cache, e)
		}
	}
	ss.frame++
}

func (ss *ScriptSystem) runtime(e ecs.Entity, sc *component.Script) *scriptRuntime {
	if rt, ok := ss.cache[e]; ok && rt.path == sc.Path && bytes.Equal(rt.source, sc.Source) {
		return rt
	}
	rt := &scriptRuntime{path: sc.Path, source: sc.Source}
	compiled, err := compileScript(sc.Source)
	if err != nil {
		rt.failed = true
		ss.log.Warn("script: compile failed", "entity", e.String(), "path", sc.Path, "err", err)
	}
	rt.compiled = compiled
	ss.cache[e] = rt
	return rt
}

func compileScript(src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	script.SetMaxAllocs(scriptMaxAllocs)
	for name, v := range map[string]any{
		"frame":       0,
		"time":        0.0,
		"dt":          0.0,
		"translation": vecToArray(mgl32.Vec3{}),
		"scale":       vecToArray(mgl32.Vec3{1, 1, 1}),
		"rotation":    vecToArray(mgl32.Vec3{}),
	} {
		if err := script.Add(name, v); err != nil {
			return nil, err
		}
	}
	return script.Compile()
}

func (rt *scriptRuntime) step(t *ecs.Transform, frame int, dt float64) error {
	c := rt.compiled
	inputs := map[string]any{
		"frame":       frame,
		"time":        float64(frame) * dt,
		"dt":          dt,
		"translation": vecToArray(t.Translation),
		"scale":       vecToArray(t.Scale),
		"rotation":    vecToArray(rt.euler),
	}
	for name, v := range inputs {
		if err := c.Set(name, v); err != nil {
			return err
		}
	}
	if err := c.Run(); err != nil {
		return err
	}

	translation, err := arrayToVec(c.Get("translation").Value())
	if err != nil {
		return fmt.Errorf("translation: %w", err)
	}
	scale, err := arrayToVec(c.Get("scale").Value())
	if err != nil {
		return fmt.Errorf("scale: %w", err)
	}
	euler, err := arrayToVec(c.Get("rotation").Value())
	if err != nil {
		return fmt.Errorf("rotation: %w", err)
	}

	t.Translation = translation
	t.Scale = scale
	if euler != rt.euler {
		rt.euler = euler
		t.Rotation = mgl32.AnglesToQuat(euler.X(), euler.Y(), euler.Z(), mgl32.XYZ)
	}
	return nil
}

func vecToArray(v mgl32.Vec3) []any {
	return []any{float64(v.X()), float64(v.Y()), float64(v.Z())}
}

func arrayToVec(raw any) (mgl32.Vec3, error) {
	arr, ok := raw.([]any)
	if !ok || len(arr) != 3 {
		return mgl32.Vec3{}, fmt.Errorf("expected array of 3 numbers, got %T", raw)
	}
	var out mgl32.Vec3
	for i, el := range arr {
		switch n := el.(type) {
		case float64:
			out[i] = float32(n)
		case int64:
			out[i] = float32(n)
		case int:
			out[i] = float32(n)
		default:
			return mgl32.Vec3{}, fmt.Errorf("element %d is %T", i, el)
		}
	}
	return out, nil
}
