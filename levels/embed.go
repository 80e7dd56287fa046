package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
)

//go:embed *.json
var LevelsFS embed.FS

var (
	ErrUnknownPrefab = errors.New("levels: node references an unknown prefab")
	ErrInvalidNode   = errors.New("levels: invalid node")
)

// Map is a level file: the prefabs it uses and a tree of placed nodes.
type Map struct {
	Prefabs []string `json:"prefabs"`
	Root    Node     `json:"root"`
}

// Node places an optional prefab instance. Rotation is a quaternion (x, y, z,
// w); Euler is XYZ degrees. At most one of them may be set.
type Node struct {
	Name        string      `json:"name,omitempty"`
	PrefabID    *int        `json:"prefab_id,omitempty"`
	Translation *[3]float32 `json:"translation,omitempty"`
	Rotation    *[4]float32 `json:"rotation,omitempty"`
	Euler       *[3]float32 `json:"euler,omitempty"`
	Scale       *[3]float32 `json:"scale,omitempty"`
	Children    []Node      `json:"children,omitempty"`
}

// Validate checks every node's prefab reference and rotation fields.
func (m *Map) Validate() error {
	return m.Root.validate(len(m.Prefabs), "root")
}

func (n *Node) validate(prefabs int, path string) error {
	if n.PrefabID != nil && (*n.PrefabID < 0 || *n.PrefabID >= prefabs) {
		return fmt.Errorf("%w: %s uses prefab %d of %d", ErrUnknownPrefab, path, *n.PrefabID, prefabs)
	}
	if n.Rotation != nil && n.Euler != nil {
		return fmt.Errorf("%w: %s sets both rotation and euler", ErrInvalidNode, path)
	}
	if n.Rotation != nil {
		q := mgl32.Quat{W: n.Rotation[3], V: mgl32.Vec3{n.Rotation[0], n.Rotation[1], n.Rotation[2]}}
		if q.Len() == 0 {
			return fmt.Errorf("%w: %s has a zero rotation", ErrInvalidNode, path)
		}
	}
	for i := range n.Children {
		child := &n.Children[i]
		name := child.Name
		if name == "" {
			name = fmt.Sprintf("%d", i)
		}
		if err := child.validate(prefabs, path+"/"+name); err != nil {
			return err
		}
	}
	return nil
}

// LoadMapFromFS reads and validates a map from fsys.
func LoadMapFromFS(fsys fs.FS, name string) (*Map, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return parseMap(data)
}

// LoadMap reads name from the levels directory on disk, falling back to the
// embedded copy.
func LoadMap(name string) (*Map, error) {
	clean := filepath.Base(name)
	if data, err := os.ReadFile(filepath.Join("levels", clean)); err == nil {
		return parseMap(data)
	}
	return LoadMapFromFS(LevelsFS, clean)
}

func parseMap(data []byte) (*Map, error) {
	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}
