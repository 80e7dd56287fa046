package main

import (
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/scenecore/common"
	"github.com/milk9111/scenecore/ecs"
	"github.com/milk9111/scenecore/ecs/component"
)

const (
	stickDeadzone = 0.2
	stickLookRate = 12
	// fraction of the remaining gap kept after one second
	moveSmoothing = 0.001
)

// Input polls keyboard, mouse and the first gamepad and writes the result into
// every Intent in the scene.
type Input struct {
	moveX, moveZ float32
	lastX, lastY int
	dragging     bool
}

func NewInput() *Input {
	return &Input{}
}

func (i *Input) Update(s *ecs.Scene) {
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		os.Exit(0)
	}

	var moveX, moveZ float32
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		moveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		moveZ += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		moveZ -= 1
	}

	// Look while the right mouse button is held.
	var lookX, lookY float32
	mx, my := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		if i.dragging {
			lookX = float32(mx - i.lastX)
			lookY = float32(my - i.lastY)
		}
		i.dragging = true
	} else {
		i.dragging = false
	}
	i.lastX, i.lastY = mx, my

	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		id := ids[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			moveX, moveZ = float32(lx), float32(-ly)
		}
		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		if math.Hypot(rx, ry) > stickDeadzone {
			lookX, lookY = float32(rx)*stickLookRate, float32(ry)*stickLookRate
		}
	}

	dt := float32(1.0 / float64(ebiten.TPS()))
	i.moveX = common.Damp(i.moveX, moveX, moveSmoothing, dt)
	i.moveZ = common.Damp(i.moveZ, moveZ, moveSmoothing, dt)

	ecs.ForEach(s, component.IntentComponent, func(_ ecs.Entity, in *component.Intent) {
		in.MoveX = i.moveX
		in.MoveZ = i.moveZ
		in.LookX = lookX
		in.LookY = lookY
	})
}
