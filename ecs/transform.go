package ecs

import "github.com/go-gl/mathgl/mgl32"

// Transform is the spatial record every entity carries. Local and World are
// derived each frame by the transform system; Parent is a weak lookup key.
type Transform struct {
	Translation mgl32.Vec3
	Scale       mgl32.Vec3
	Rotation    mgl32.Quat

	Local mgl32.Mat4
	World mgl32.Mat4

	Parent Entity
}

// NewTransform returns an identity transform with no parent.
func NewTransform() Transform {
	return Transform{
		Scale:    mgl32.Vec3{1, 1, 1},
		Rotation: mgl32.QuatIdent(),
		Local:    mgl32.Ident4(),
		World:    mgl32.Ident4(),
	}
}

// TransformAt is NewTransform translated to (x, y, z).
func TransformAt(x, y, z float32) Transform {
	t := NewTransform()
	t.Translation = mgl32.Vec3{x, y, z}
	return t
}

func (t *Transform) SetParent(p Entity) {
	t.Parent = p
}

func (t *Transform) ClearParent() {
	t.Parent = 0
}

func (t *Transform) HasParent() bool {
	return t.Parent.Valid()
}

// ComposeLocal returns T * R * S: scale first, then rotate, then translate.
func (t *Transform) ComposeLocal() mgl32.Mat4 {
	tr := mgl32.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z())
	sc := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return tr.Mul4(t.Rotation.Mat4()).Mul4(sc)
}
