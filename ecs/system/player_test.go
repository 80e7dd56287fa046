package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/scenecore/ecs"
	"github.com/milk9111/scenecore/ecs/component"
)

func TestPlayerSystemAppliesIntent(t *testing.T) {
	tests := []struct {
		name    string
		player  component.Player
		intent  component.Intent
		wantPos mgl32.Vec3
	}{
		{
			name:    "forward",
			player:  component.Player{MoveSpeed: 2, TurnSpeed: 1},
			intent:  component.Intent{MoveZ: 1},
			wantPos: mgl32.Vec3{0, 0, -2},
		},
		{
			name:    "strafe",
			player:  component.Player{MoveSpeed: 1, TurnSpeed: 1},
			intent:  component.Intent{MoveX: 1},
			wantPos: mgl32.Vec3{1, 0, 0},
		},
		{
			name:    "turned_quarter_then_forward",
			player:  component.Player{Yaw: -mgl32.DegToRad(90), MoveSpeed: 1, TurnSpeed: 1},
			intent:  component.Intent{MoveZ: 1},
			wantPos: mgl32.Vec3{1, 0, 0},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := ecs.NewScene()
			e := ecs.CreateEntity(s, ecs.NewTransform())
			if err := ecs.Add(s, e, component.PlayerComponent, tc.player); err != nil {
				t.Fatal(err)
			}
			if err := ecs.Add(s, e, component.IntentComponent, tc.intent); err != nil {
				t.Fatal(err)
			}

			NewPlayerSystem().Update(s)

			tr, _ := s.Transform(e)
			if !tr.Translation.ApproxEqualThreshold(tc.wantPos, 1e-5) {
				t.Fatalf("translation = %v, want %v", tr.Translation, tc.wantPos)
			}
		})
	}
}

func TestPlayerPitchIsClamped(t *testing.T) {
	s := ecs.NewScene()
	e := ecs.CreateEntity(s, ecs.NewTransform())
	if err := ecs.Add(s, e, component.PlayerComponent, component.Player{TurnSpeed: 10}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(s, e, component.IntentComponent, component.Intent{LookY: -1}); err != nil {
		t.Fatal(err)
	}
	ps := NewPlayerSystem()
	for i := 0; i < 5; i++ {
		ps.Update(s)
	}
	p, _ := ecs.Get(s, e, component.PlayerComponent)
	if p.Pitch > maxPitch {
		t.Fatalf("pitch %v above clamp %v", p.Pitch, maxPitch)
	}
}
