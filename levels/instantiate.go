package levels

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/scenecore/ecs"
)

// PrefabSource resolves the prefab names listed by a Map.
type PrefabSource interface {
	Get(name string) (*ecs.Prefab, error)
}

// Instantiate adds one entity per node of m to s and grafts each node's prefab
// under it. Every prefab is resolved before s is touched. It returns the
// entity of the root node.
func Instantiate(s *ecs.Scene, m *Map, src PrefabSource) (ecs.Entity, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}
	prefabs := make([]*ecs.Prefab, len(m.Prefabs))
	for i, name := range m.Prefabs {
		p, err := src.Get(name)
		if err != nil {
			return 0, fmt.Errorf("levels: prefab %q: %w", name, err)
		}
		prefabs[i] = p
	}
	return instantiateNode(s, &m.Root, 0, prefabs)
}

func instantiateNode(s *ecs.Scene, n *Node, parent ecs.Entity, prefabs []*ecs.Prefab) (ecs.Entity, error) {
	t := n.transform()
	t.SetParent(parent)
	e := ecs.CreateEntity(s, t)

	if n.PrefabID != nil {
		root, err := ecs.Graft(s, prefabs[*n.PrefabID])
		if err != nil {
			return 0, err
		}
		rt, _ := s.Transform(root)
		rt.SetParent(e)
	}

	for i := range n.Children {
		if _, err := instantiateNode(s, &n.Children[i], e, prefabs); err != nil {
			return 0, err
		}
	}
	return e, nil
}

func (n *Node) transform() ecs.Transform {
	t := ecs.NewTransform()
	if v := n.Translation; v != nil {
		t.Translation = mgl32.Vec3{v[0], v[1], v[2]}
	}
	if v := n.Scale; v != nil {
		t.Scale = mgl32.Vec3{v[0], v[1], v[2]}
	}
	switch {
	case n.Rotation != nil:
		q := n.Rotation
		t.Rotation = mgl32.Quat{W: q[3], V: mgl32.Vec3{q[0], q[1], q[2]}}.Normalize()
	case n.Euler != nil:
		v := n.Euler
		t.Rotation = mgl32.AnglesToQuat(mgl32.DegToRad(v[0]), mgl32.DegToRad(v[1]), mgl32.DegToRad(v[2]), mgl32.XYZ)
	}
	return t
}
