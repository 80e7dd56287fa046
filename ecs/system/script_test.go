package system

import (
	"io"
	"log/slog"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/scenecore/ecs"
	"github.com/milk9111/scenecore/ecs/component"
)

func quietScriptSystem() *ScriptSystem {
	return NewScriptSystem(0.5, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func scripted(t *testing.T, s *ecs.Scene, src string) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(s, ecs.TransformAt(1, 2, 3))
	if err := ecs.Add(s, e, component.ScriptComponent, component.Script{Path: t.Name(), Source: []byte(src)}); err != nil {
		t.Fatal(err)
	}
	return e
}

func TestScriptSystemMovesEntity(t *testing.T) {
	s := ecs.NewScene()
	e := scripted(t, s, `translation = [translation[0] + 1, translation[1], time]`)
	ss := quietScriptSystem()

	ss.Update(s)
	ss.Update(s)

	tr, _ := s.Transform(e)
	if want := (mgl32.Vec3{3, 2, 0.5}); !tr.Translation.ApproxEqual(want) {
		t.Fatalf("translation = %v, want %v", tr.Translation, want)
	}
}

func TestScriptSystemRotation(t *testing.T) {
	s := ecs.NewScene()
	untouched := scripted(t, s, `scale = [2, 2, 2]`)
	spun := scripted(t, s, `
math := import("math")
rotation = [0, math.pi / 2, 0]
`)
	ut, _ := s.Transform(untouched)
	ut.Rotation = mgl32.QuatRotate(1, mgl32.Vec3{1, 0, 0})

	quietScriptSystem().Update(s)

	ut, _ = s.Transform(untouched)
	if !ut.Rotation.ApproxEqual(mgl32.QuatRotate(1, mgl32.Vec3{1, 0, 0})) {
		t.Fatalf("script without rotation writes overwrote rotation: %v", ut.Rotation)
	}
	if ut.Scale != (mgl32.Vec3{2, 2, 2}) {
		t.Fatalf("scale = %v", ut.Scale)
	}
	st, _ := s.Transform(spun)
	if want := mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0}); !st.Rotation.ApproxEqualThreshold(want, 1e-5) {
		t.Fatalf("rotation = %v, want %v", st.Rotation, want)
	}
}

func TestScriptSystemDisablesBrokenScripts(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"compile_error", `translation = [`},
		{"wrong_shape", `translation = "up"`},
		{"runtime_error", `x := 1 / 0`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := ecs.NewScene()
			e := scripted(t, s, tc.src)
			ss := quietScriptSystem()
			ss.Update(s)
			ss.Update(s)

			tr, _ := s.Transform(e)
			if tr.Translation != (mgl32.Vec3{1, 2, 3}) {
				t.Fatalf("broken script moved entity to %v", tr.Translation)
			}
			if rt := ss.cache[e]; rt == nil || !rt.failed {
				t.Fatalf("expected runtime to be marked failed")
			}
		})
	}
}

func TestScriptSystemDropsDestroyedEntities(t *testing.T) {
	s := ecs.NewScene()
	e := scripted(t, s, `frame = frame`)
	ss := quietScriptSystem()
	ss.Update(s)
	ecs.DestroyEntity(s, e)
	ss.Update(s)
	if len(ss.cache) != 0 {
		t.Fatalf("cache kept %d runtimes", len(ss.cache))
	}
}
