package prefabs

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/scenecore/ecs"
	"github.com/milk9111/scenecore/ecs/component"
)

var (
	ErrUnknownComponent = errors.New("prefabs: no builder for component")
	ErrUnknownResource  = errors.New("prefabs: unknown resource")
	ErrEmptyPrefab      = errors.New("prefabs: node does not define components")
)

// ResourceLookup resolves resource names used in prefab files to handles.
type ResourceLookup interface {
	GeometryByName(name string) (component.GeometryHandle, bool)
	PipelineByName(name string) (component.PipelineHandle, bool)
	TextureByName(name string) (component.TextureHandle, bool)
}

type buildContext struct {
	PrefabPath string
	Resources  ResourceLookup
	LoadScript func(name string) ([]byte, error)
}

type componentBuildFn func(s *ecs.Scene, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"transform":  addTransform,
	"player_tag": addPlayerTag,
	"camera_tag": addCameraTag,
	"player":     addPlayer,
	"input":      addInput,
	"mesh":       addMesh,
	"camera":     addCamera,
	"script":     addScript,
}

var componentBuildOrder = []string{
	"transform",
	"player_tag",
	"camera_tag",
	"player",
	"input",
	"mesh",
	"camera",
	"script",
}

// BuildPrefab builds spec into a fresh scene and returns it as a prefab rooted
// at the spec's top node. Entities are created parents first.
func BuildPrefab(spec NodeSpec, prefabPath string, res ResourceLookup) (*ecs.Prefab, error) {
	ctx := &buildContext{PrefabPath: prefabPath, Resources: res, LoadScript: LoadScript}
	return buildPrefab(spec, ctx)
}

func buildPrefab(spec NodeSpec, ctx *buildContext) (*ecs.Prefab, error) {
	s := ecs.NewScene()
	root, err := buildNode(s, spec, 0, ctx)
	if err != nil {
		return nil, err
	}
	return ecs.NewPrefab(s, root)
}

func buildNode(s *ecs.Scene, spec NodeSpec, parent ecs.Entity, ctx *buildContext) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build prefab: %q node %q: %w", ctx.PrefabPath, spec.Name, ErrEmptyPrefab)
	}

	t := ecs.NewTransform()
	t.SetParent(parent)
	e := ecs.CreateEntity(s, t)

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](s, e, raw, ctx); err != nil {
			return 0, fmt.Errorf("build prefab: %q: add %q: %w", ctx.PrefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		return 0, fmt.Errorf("build prefab: %q: %w %q", ctx.PrefabPath, ErrUnknownComponent, names[0])
	}

	for _, child := range spec.Children {
		if _, err := buildNode(s, child, e, ctx); err != nil {
			return 0, err
		}
	}
	return e, nil
}

func addTransform(s *ecs.Scene, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := DecodeComponentSpec[TransformComponentSpec](raw)
	if err != nil {
		return err
	}
	t, _ := s.Transform(e)
	if t.Translation, err = vec3(spec.Translation, mgl32.Vec3{}); err != nil {
		return fmt.Errorf("translation: %w", err)
	}
	if t.Scale, err = vec3(spec.Scale, mgl32.Vec3{1, 1, 1}); err != nil {
		return fmt.Errorf("scale: %w", err)
	}
	euler, err := vec3(spec.Rotation, mgl32.Vec3{})
	if err != nil {
		return fmt.Errorf("rotation: %w", err)
	}
	t.Rotation = mgl32.AnglesToQuat(
		mgl32.DegToRad(euler.X()),
		mgl32.DegToRad(euler.Y()),
		mgl32.DegToRad(euler.Z()),
		mgl32.XYZ,
	)
	return nil
}

func addPlayerTag(s *ecs.Scene, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(s, e, component.PlayerTagComponent, component.PlayerTag{})
}

func addCameraTag(s *ecs.Scene, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(s, e, component.CameraTagComponent, component.CameraTag{})
}

func addInput(s *ecs.Scene, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(s, e, component.IntentComponent, component.Intent{})
}

func addPlayer(s *ecs.Scene, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := DecodeComponentSpec[PlayerComponentSpec](raw)
	if err != nil {
		return err
	}
	p := component.Player{MoveSpeed: spec.MoveSpeed, TurnSpeed: spec.TurnSpeed}
	if p.MoveSpeed == 0 {
		p.MoveSpeed = 0.1
	}
	if p.TurnSpeed == 0 {
		p.TurnSpeed = 0.005
	}
	return ecs.Add(s, e, component.PlayerComponent, p)
}

func addCamera(s *ecs.Scene, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := DecodeComponentSpec[CameraComponentSpec](raw)
	if err != nil {
		return err
	}
	if spec.Fov == 0 {
		spec.Fov = 60
	}
	if spec.Aspect == 0 {
		spec.Aspect = 16.0 / 9.0
	}
	if spec.Near == 0 {
		spec.Near = 0.1
	}
	if spec.Far == 0 {
		spec.Far = 1000
	}
	cam := component.NewCamera(mgl32.DegToRad(spec.Fov), spec.Aspect, spec.Near, spec.Far)
	return ecs.Add(s, e, component.CameraComponent, cam)
}

func addMesh(s *ecs.Scene, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := DecodeComponentSpec[MeshComponentSpec](raw)
	if err != nil {
		return err
	}
	if ctx.Resources == nil {
		return fmt.Errorf("mesh: %w: no resource tables", ErrUnknownResource)
	}
	prims := make([]component.Primitive, 0, len(spec.Primitives))
	for i, ps := range spec.Primitives {
		geometry, ok := ctx.Resources.GeometryByName(ps.Geometry)
		if !ok {
			return fmt.Errorf("primitive %d: geometry %q: %w", i, ps.Geometry, ErrUnknownResource)
		}
		pipelineName := ps.Pipeline
		if pipelineName == "" {
			pipelineName = "unlit"
		}
		pipeline, ok := ctx.Resources.PipelineByName(pipelineName)
		if !ok {
			return fmt.Errorf("primitive %d: pipeline %q: %w", i, pipelineName, ErrUnknownResource)
		}
		var texture component.TextureHandle
		if ps.Texture != "" {
			if texture, ok = ctx.Resources.TextureByName(ps.Texture); !ok {
				return fmt.Errorf("primitive %d: texture %q: %w", i, ps.Texture, ErrUnknownResource)
			}
		}
		prims = append(prims, component.Primitive{
			Geometry: geometry,
			Pipeline: pipeline,
			Material: component.Material{BaseColor: ps.Color.Vec4(), Texture: texture},
		})
	}
	return ecs.Add(s, e, component.MeshComponent, component.NewMesh(prims...))
}

func addScript(s *ecs.Scene, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := DecodeComponentSpec[ScriptComponentSpec](raw)
	if err != nil {
		return err
	}
	if spec.Path == "" {
		return fmt.Errorf("script: empty path")
	}
	src, err := ctx.LoadScript(spec.Path)
	if err != nil {
		return fmt.Errorf("script %q: %w", spec.Path, err)
	}
	return ecs.Add(s, e, component.ScriptComponent, component.Script{Path: spec.Path, Source: src})
}
