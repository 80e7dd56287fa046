package system

import (
	"github.com/milk9111/scenecore/ecs"
	"github.com/milk9111/scenecore/ecs/component"
)

// CameraSystem keeps every camera's aspect ratio in sync with the viewport.
type CameraSystem struct {
	width, height int
}

func NewCameraSystem(width, height int) *CameraSystem {
	return &CameraSystem{width: width, height: height}
}

// SetViewport records a new surface size; cameras pick it up on the next Update.
func (cs *CameraSystem) SetViewport(width, height int) {
	cs.width, cs.height = width, height
}

func (cs *CameraSystem) Update(s *ecs.Scene) {
	if cs.width <= 0 || cs.height <= 0 {
		return
	}
	aspect := float32(cs.width) / float32(cs.height)
	ecs.ForEach(s, component.CameraComponent, func(_ ecs.Entity, cam *component.Camera) {
		if cam.Aspect() != aspect {
			cam.SetAspect(aspect)
		}
	})
}
