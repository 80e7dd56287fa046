package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/scenecore/ecs"
	"github.com/milk9111/scenecore/ecs/component"
)

func TestCameraSystemTracksViewport(t *testing.T) {
	s := ecs.NewScene()
	e := ecs.CreateEntity(s, ecs.NewTransform())
	if err := ecs.Add(s, e, component.CameraComponent, component.NewCamera(mgl32.DegToRad(60), 1, 0.1, 100)); err != nil {
		t.Fatal(err)
	}
	cs := NewCameraSystem(1280, 720)
	cs.Update(s)

	cam, _ := ecs.Get(s, e, component.CameraComponent)
	want := mgl32.Perspective(mgl32.DegToRad(60), 1280.0/720.0, 0.1, 100)
	if !cam.Projection().ApproxEqual(want) {
		t.Fatalf("projection not refreshed after viewport change")
	}

	cs.SetViewport(0, 0)
	cs.Update(s)
	if cam.Aspect() != float32(1280)/float32(720) {
		t.Fatalf("zero viewport should be ignored, aspect=%v", cam.Aspect())
	}
}
