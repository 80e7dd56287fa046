package render

import (
	"image"
	"testing"

	"github.com/milk9111/scenecore/ecs/component"
)

func TestResourcesHandles(t *testing.T) {
	r := NewResources()
	RegisterBuiltins(r)

	if _, ok := r.Texture(r.Placeholder()); !ok {
		t.Fatalf("placeholder not resolvable")
	}
	if img, _ := r.Texture(r.Placeholder()); img.Bounds().Dx() != 1 || img.Bounds().Dy() != 1 {
		t.Fatalf("placeholder bounds = %v, want 1x1", img.Bounds())
	}

	cube, ok := r.GeometryByName("cube")
	if !ok {
		t.Fatalf("cube not registered")
	}
	g, ok := r.Geometry(cube)
	if !ok || len(g.Vertices) != 24 || g.IndexCount() != 36 {
		t.Fatalf("cube geometry = %d vertices, %d indices", len(g.Vertices), g.IndexCount())
	}
	wire, _ := r.PipelineByName("wireframe")
	if p, _ := r.Pipeline(wire); !p.Wireframe || p.Name != "wireframe" {
		t.Fatalf("wireframe pipeline = %+v", p)
	}

	tests := []struct {
		name string
		ok   bool
	}{
		{"zero_geometry", false},
		{"unknown_geometry", false},
		{"registered", true},
	}
	handles := []component.GeometryHandle{0, 42, cube}
	for i, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := r.Geometry(handles[i]); ok != tc.ok {
				t.Fatalf("Geometry(%d) ok = %v, want %v", handles[i], ok, tc.ok)
			}
		})
	}

	if h := r.AddTexture("nil", nil); h != 0 {
		t.Fatalf("nil texture got handle %d", h)
	}
	h := r.AddTexture("tile", image.NewRGBA(image.Rect(0, 0, 4, 4)))
	if got, ok := r.TextureByName("tile"); !ok || got != h {
		t.Fatalf("TextureByName = %d, %v; want %d", got, ok, h)
	}
}

func TestDecodeRejectsShortBuffers(t *testing.T) {
	if _, ok := DecodeTransform(make([]byte, TransformUniformSize-1)); ok {
		t.Fatalf("short transform decoded")
	}
	if _, ok := DecodePrimitive(nil); ok {
		t.Fatalf("nil primitive decoded")
	}
	b := TransformUniform{}.AppendBytes(nil)
	if len(b) != TransformUniformSize {
		t.Fatalf("transform payload = %d bytes, want %d", len(b), TransformUniformSize)
	}
	if b := (PrimitiveUniform{}).AppendBytes(nil); len(b) != PrimitiveUniformSize {
		t.Fatalf("primitive payload = %d bytes, want %d", len(b), PrimitiveUniformSize)
	}
}
