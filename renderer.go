package main

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/scenecore/ecs/component"
	"github.com/milk9111/scenecore/ecs/render"
)

// Renderer consumes packed batches by reading their uniform slots back from
// the memory device and rasterizing the geometry with ebiten, back to front.
type Renderer struct {
	dev    *render.MemoryDevice
	res    *render.Resources
	images map[component.TextureHandle]*ebiten.Image
	tris   []triangle
	width  float32
	height float32
}

type triangle struct {
	verts [3]ebiten.Vertex
	depth float32
	img   *ebiten.Image
	wire  bool
}

var triangleIndices = []uint16{0, 1, 2}

func NewRenderer(dev *render.MemoryDevice, res *render.Resources) *Renderer {
	return &Renderer{dev: dev, res: res, images: map[component.TextureHandle]*ebiten.Image{}}
}

// Begin starts a frame for a target of the given size.
func (r *Renderer) Begin(width, height int) {
	r.tris = r.tris[:0]
	r.width, r.height = float32(width), float32(height)
}

// Collect is the packer's flush hook: the batch's uniform slots are still
// resident when it runs.
func (r *Renderer) Collect(b render.Batch) error {
	cam, ok := render.DecodeCamera(r.dev.Bytes(render.CameraBuffer, 0, render.CameraUniformSize))
	if !ok {
		return fmt.Errorf("renderer: camera slot unreadable")
	}
	for _, d := range b.Draws {
		model, ok := render.DecodeTransform(r.dev.Bytes(render.TransformBuffer, d.TransformOffset, render.TransformUniformSize))
		if !ok {
			return fmt.Errorf("renderer: transform slot %d unreadable", d.TransformOffset)
		}
		prim, ok := render.DecodePrimitive(r.dev.Bytes(render.PrimitiveBuffer, d.PrimitiveOffset, render.PrimitiveUniformSize))
		if !ok {
			return fmt.Errorf("renderer: primitive slot %d unreadable", d.PrimitiveOffset)
		}
		geom, _ := r.res.Geometry(d.Geometry)
		pipe, _ := r.res.Pipeline(d.Pipeline)
		img, err := r.image(d.Texture)
		if err != nil {
			return err
		}
		r.rasterize(cam.ViewProj.Mul4(model.Model), geom, prim.BaseColor, img, pipe.Wireframe)
	}
	return nil
}

func (r *Renderer) rasterize(mvp mgl32.Mat4, g render.Geometry, base mgl32.Vec4, img *ebiten.Image, wire bool) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	for i := 0; i+2 < len(g.Indices); i += 3 {
		t := triangle{img: img, wire: wire}
		visible := true
		for k := 0; k < 3; k++ {
			v := g.Vertices[g.Indices[i+k]]
			clip := mvp.Mul4x1(v.Position.Vec4(1))
			if clip.W() <= 1e-4 {
				visible = false
				break
			}
			ndc := clip.Vec3().Mul(1 / clip.W())
			t.depth += ndc.Z() / 3
			t.verts[k] = ebiten.Vertex{
				DstX:   (ndc.X() + 1) / 2 * r.width,
				DstY:   (1 - ndc.Y()) / 2 * r.height,
				SrcX:   v.UV.X() * float32(w),
				SrcY:   v.UV.Y() * float32(h),
				ColorR: base.X(),
				ColorG: base.Y(),
				ColorB: base.Z(),
				ColorA: base.W(),
			}
		}
		if visible {
			r.tris = append(r.tris, t)
		}
	}
}

func (r *Renderer) image(h component.TextureHandle) (*ebiten.Image, error) {
	if img, ok := r.images[h]; ok {
		return img, nil
	}
	src, ok := r.res.Texture(h)
	if !ok {
		return nil, fmt.Errorf("renderer: texture %d not registered", h)
	}
	img := ebiten.NewImageFromImage(src)
	r.images[h] = img
	return img, nil
}

// Draw paints everything collected since Begin.
func (r *Renderer) Draw(screen *ebiten.Image) {
	sort.SliceStable(r.tris, func(i, j int) bool {
		return r.tris[i].depth > r.tris[j].depth
	})
	for i := range r.tris {
		t := &r.tris[i]
		if t.wire {
			c := color.NRGBA{
				R: uint8(t.verts[0].ColorR * 255),
				G: uint8(t.verts[0].ColorG * 255),
				B: uint8(t.verts[0].ColorB * 255),
				A: uint8(t.verts[0].ColorA * 255),
			}
			for k := 0; k < 3; k++ {
				a, b := t.verts[k], t.verts[(k+1)%3]
				vector.StrokeLine(screen, a.DstX, a.DstY, b.DstX, b.DstY, 1, c, true)
			}
			continue
		}
		screen.DrawTriangles(t.verts[:], triangleIndices, t.img, nil)
	}
}
