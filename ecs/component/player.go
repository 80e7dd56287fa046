package component

// Player is a first-person controller. Yaw and Pitch accumulate look input in
// radians.
type Player struct {
	Yaw       float32
	Pitch     float32
	MoveSpeed float32
	TurnSpeed float32
}

var PlayerComponent = NewComponent[Player]()
