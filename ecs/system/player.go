package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/scenecore/ecs"
	"github.com/milk9111/scenecore/ecs/component"
)

const maxPitch = math.Pi/2 - 0.01

// PlayerSystem turns each player's Intent into local rotation and translation.
// It runs before the transform system so the change is visible the same frame.
type PlayerSystem struct{}

func NewPlayerSystem() *PlayerSystem {
	return &PlayerSystem{}
}

func (ps *PlayerSystem) Update(s *ecs.Scene) {
	for _, e := range s.Query(component.PlayerComponent.Kind(), component.IntentComponent.Kind()) {
		p, _ := ecs.Get(s, e, component.PlayerComponent)
		in, _ := ecs.Get(s, e, component.IntentComponent)
		t, ok := s.Transform(e)
		if !ok {
			continue
		}

		p.Yaw -= in.LookX * p.TurnSpeed
		p.Pitch = mgl32.Clamp(p.Pitch-in.LookY*p.TurnSpeed, -maxPitch, maxPitch)

		rot := mgl32.QuatRotate(p.Yaw, mgl32.Vec3{0, 1, 0}).Mul(mgl32.QuatRotate(p.Pitch, mgl32.Vec3{1, 0, 0}))
		t.Rotation = rot.Normalize()

		// -Z is forward in a right-handed view space.
		step := mgl32.Vec3{in.MoveX * p.MoveSpeed, 0, -in.MoveZ * p.MoveSpeed}
		t.Translation = t.Translation.Add(t.Rotation.Rotate(step))
	}
}
