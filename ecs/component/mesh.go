package component

import "github.com/go-gl/mathgl/mgl32"

// GeometryHandle, PipelineHandle and TextureHandle are opaque keys into the
// renderer's resource tables. Zero is never a registered handle.
type (
	GeometryHandle uint32
	PipelineHandle uint32
	TextureHandle  uint32
)

// Material is either an inline base color or a base color modulating a texture.
type Material struct {
	BaseColor mgl32.Vec4
	Texture   TextureHandle
}

// Textured reports whether the material samples a real texture.
func (m Material) Textured() bool {
	return m.Texture != 0
}

// Primitive is one draw of a mesh.
type Primitive struct {
	Geometry GeometryHandle
	Pipeline PipelineHandle
	Material Material
}

// Mesh is the ordered primitive list of a visible entity. Grafted copies own
// their Primitives slice, so editing one instance never reaches the prefab.
type Mesh struct {
	Primitives []Primitive
}

// Clone returns a Mesh with its own copy of the primitive list.
func (m Mesh) Clone() Mesh {
	return Mesh{Primitives: append([]Primitive(nil), m.Primitives...)}
}

// NewMesh copies prims so later edits by the caller do not leak into the scene.
func NewMesh(prims ...Primitive) Mesh {
	return Mesh{Primitives: append([]Primitive(nil), prims...)}
}

var MeshComponent = NewComponent[Mesh]()
