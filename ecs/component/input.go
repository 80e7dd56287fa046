package component

// Intent is the per-frame input produced outside the core. MoveX strafes, MoveZ
// walks forward, LookX/LookY rotate.
type Intent struct {
	MoveX float32
	MoveZ float32
	LookX float32
	LookY float32
}

var IntentComponent = NewComponent[Intent]()
