package render

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/scenecore/ecs/component"
)

// Vertex is one corner of a geometry.
type Vertex struct {
	Position mgl32.Vec3
	UV       mgl32.Vec2
	Normal   mgl32.Vec3
}

// Geometry is an indexed triangle list.
type Geometry struct {
	Vertices []Vertex
	Indices  []uint32
}

// IndexCount returns the number of indices drawn for g.
func (g Geometry) IndexCount() int {
	return len(g.Indices)
}

// Pipeline describes how primitives bound to it are rasterized.
type Pipeline struct {
	Name      string
	Wireframe bool
}

// Resources maps handles to the geometries, pipelines and textures a renderer
// has registered. Handles start at 1; zero never resolves. A 1x1 white
// placeholder texture is registered by NewResources.
type Resources struct {
	geometries []Geometry
	pipelines  []Pipeline
	textures   []image.Image

	geometryNames map[string]component.GeometryHandle
	pipelineNames map[string]component.PipelineHandle
	textureNames  map[string]component.TextureHandle

	placeholder component.TextureHandle
}

// PlaceholderTextureName is the name the placeholder texture is registered under.
const PlaceholderTextureName = "placeholder"

func NewResources() *Resources {
	r := &Resources{
		geometryNames: map[string]component.GeometryHandle{},
		pipelineNames: map[string]component.PipelineHandle{},
		textureNames:  map[string]component.TextureHandle{},
	}
	white := image.NewRGBA(image.Rect(0, 0, 1, 1))
	white.Set(0, 0, color.White)
	r.placeholder = r.AddTexture(PlaceholderTextureName, white)
	return r
}

// AddGeometry registers g. Registering a name twice replaces the name binding;
// handles already handed out stay valid.
func (r *Resources) AddGeometry(name string, g Geometry) component.GeometryHandle {
	r.geometries = append(r.geometries, g)
	h := component.GeometryHandle(len(r.geometries))
	if name != "" {
		r.geometryNames[name] = h
	}
	return h
}

func (r *Resources) AddPipeline(name string, p Pipeline) component.PipelineHandle {
	if p.Name == "" {
		p.Name = name
	}
	r.pipelines = append(r.pipelines, p)
	h := component.PipelineHandle(len(r.pipelines))
	if name != "" {
		r.pipelineNames[name] = h
	}
	return h
}

func (r *Resources) AddTexture(name string, img image.Image) component.TextureHandle {
	if img == nil {
		return 0
	}
	r.textures = append(r.textures, img)
	h := component.TextureHandle(len(r.textures))
	if name != "" {
		r.textureNames[name] = h
	}
	return h
}

func (r *Resources) Geometry(h component.GeometryHandle) (Geometry, bool) {
	if r == nil || h == 0 || int(h) > len(r.geometries) {
		return Geometry{}, false
	}
	return r.geometries[h-1], true
}

func (r *Resources) Pipeline(h component.PipelineHandle) (Pipeline, bool) {
	if r == nil || h == 0 || int(h) > len(r.pipelines) {
		return Pipeline{}, false
	}
	return r.pipelines[h-1], true
}

func (r *Resources) Texture(h component.TextureHandle) (image.Image, bool) {
	if r == nil || h == 0 || int(h) > len(r.textures) {
		return nil, false
	}
	return r.textures[h-1], true
}

// Placeholder returns the handle of the 1x1 white texture.
func (r *Resources) Placeholder() component.TextureHandle {
	return r.placeholder
}

func (r *Resources) GeometryByName(name string) (component.GeometryHandle, bool) {
	h, ok := r.geometryNames[name]
	return h, ok
}

func (r *Resources) PipelineByName(name string) (component.PipelineHandle, bool) {
	h, ok := r.pipelineNames[name]
	return h, ok
}

func (r *Resources) TextureByName(name string) (component.TextureHandle, bool) {
	h, ok := r.textureNames[name]
	return h, ok
}

// bindTexture resolves the texture a primitive samples. ok is false when the
// material names a texture that was never registered.
func (r *Resources) bindTexture(m component.Material) (h component.TextureHandle, placeholder, ok bool) {
	if !m.Textured() {
		return r.placeholder, true, true
	}
	if _, found := r.Texture(m.Texture); !found {
		return 0, false, false
	}
	return m.Texture, false, true
}
