package render

import "github.com/go-gl/mathgl/mgl32"

// Quad returns a unit quad in the XY plane facing +Z, spanning -1..1.
func Quad() Geometry {
	n := mgl32.Vec3{0, 0, 1}
	return Geometry{
		Vertices: []Vertex{
			{Position: mgl32.Vec3{-1, 1, 0}, UV: mgl32.Vec2{0, 0}, Normal: n},
			{Position: mgl32.Vec3{1, 1, 0}, UV: mgl32.Vec2{1, 0}, Normal: n},
			{Position: mgl32.Vec3{1, -1, 0}, UV: mgl32.Vec2{1, 1}, Normal: n},
			{Position: mgl32.Vec3{-1, -1, 0}, UV: mgl32.Vec2{0, 1}, Normal: n},
		},
		Indices: []uint32{0, 1, 2, 2, 3, 0},
	}
}

// Cube returns a cube spanning -1..1 on every axis with per-face normals.
func Cube() Geometry {
	faces := []struct {
		normal, up, right mgl32.Vec3
	}{
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{-1, 0, 0}},
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{1, 0, 0}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}},
	}
	var g Geometry
	for _, f := range faces {
		base := uint32(len(g.Vertices))
		corners := [4]struct {
			u, v float32
		}{{-1, 1}, {1, 1}, {1, -1}, {-1, -1}}
		for _, c := range corners {
			pos := f.normal.Add(f.right.Mul(c.u)).Add(f.up.Mul(c.v))
			g.Vertices = append(g.Vertices, Vertex{
				Position: pos,
				UV:       mgl32.Vec2{(c.u + 1) / 2, (1 - c.v) / 2},
				Normal:   f.normal,
			})
		}
		g.Indices = append(g.Indices, base, base+1, base+2, base+2, base+3, base)
	}
	return g
}

// RegisterBuiltins adds the "quad" and "cube" geometries and the "unlit" and
// "wireframe" pipelines to r.
func RegisterBuiltins(r *Resources) {
	r.AddGeometry("quad", Quad())
	r.AddGeometry("cube", Cube())
	r.AddPipeline("unlit", Pipeline{})
	r.AddPipeline("wireframe", Pipeline{Wireframe: true})
}
