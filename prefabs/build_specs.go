package prefabs

import "gopkg.in/yaml.v3"

// NodeSpec is one entity of a prefab file. Children are parented to it.
type NodeSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
	Children   []NodeSpec     `yaml:"children"`
}

// Len returns the number of entities the node and its descendants build.
func (n NodeSpec) Len() int {
	total := 1
	for _, c := range n.Children {
		total += c.Len()
	}
	return total
}

func LoadNodeSpec(filename string) (NodeSpec, error) {
	return LoadSpec[NodeSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// TransformComponentSpec angles are XYZ euler degrees.
type TransformComponentSpec struct {
	Translation []float32 `yaml:"translation"`
	Rotation    []float32 `yaml:"rotation"`
	Scale       []float32 `yaml:"scale"`
}

type PrimitiveComponentSpec struct {
	Geometry string     `yaml:"geometry"`
	Pipeline string     `yaml:"pipeline"`
	Texture  string     `yaml:"texture"`
	Color    *YAMLColor `yaml:"color"`
}

type MeshComponentSpec struct {
	Primitives []PrimitiveComponentSpec `yaml:"primitives"`
}

// CameraComponentSpec fov is vertical, in degrees.
type CameraComponentSpec struct {
	Fov    float32 `yaml:"fov"`
	Aspect float32 `yaml:"aspect"`
	Near   float32 `yaml:"near"`
	Far    float32 `yaml:"far"`
}

type PlayerComponentSpec struct {
	MoveSpeed float32 `yaml:"move_speed"`
	TurnSpeed float32 `yaml:"turn_speed"`
}

type ScriptComponentSpec struct {
	Path string `yaml:"path"`
}
