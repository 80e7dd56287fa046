package ecs

import (
	"errors"
	"fmt"
)

var (
	ErrNilPrefab              = errors.New("ecs: nil prefab")
	ErrPrefabNotSelfContained = errors.New("ecs: prefab references an entity outside itself")
	ErrPrefabCycle            = errors.New("ecs: prefab parent graph has a cycle")
	ErrEntityNotInScene       = errors.New("ecs: entity not in scene")
)

// Prefab is a self-contained scene fragment used as a template. It is never
// mutated after NewPrefab; Graft copies it into other scenes.
type Prefab struct {
	Root  Entity
	Scene *Scene
}

// NewPrefab validates that root is alive in scene and that every parent
// reference stays inside scene.
func NewPrefab(scene *Scene, root Entity) (*Prefab, error) {
	if scene == nil {
		return nil, ErrNilPrefab
	}
	if !scene.IsAlive(root) {
		return nil, fmt.Errorf("prefab root %s: %w", root, ErrEntityNotInScene)
	}
	if _, err := graftOrder(scene); err != nil {
		return nil, err
	}
	return &Prefab{Root: root, Scene: scene}, nil
}

// Len returns the number of entities a graft creates.
func (p *Prefab) Len() int {
	if p == nil {
		return 0
	}
	return p.Scene.Len()
}

// Graft copies the prefab subtree into dst and returns the key of the new root.
// dst is left untouched when the prefab is malformed.
func Graft(dst *Scene, p *Prefab) (Entity, error) {
	if p == nil || p.Scene == nil {
		return 0, ErrNilPrefab
	}
	mapping, err := dst.CopyFrom(p.Scene)
	if err != nil {
		return 0, fmt.Errorf("graft: %w", err)
	}
	root, ok := mapping[p.Root]
	if !ok {
		return 0, fmt.Errorf("graft: root %s: %w", p.Root, ErrEntityNotInScene)
	}
	return root, nil
}

// CopyFrom appends every entity of src to s, remapping parent references and
// copying all component tables. It returns the src -> s key mapping.
func (s *Scene) CopyFrom(src *Scene) (map[Entity]Entity, error) {
	order, err := graftOrder(src)
	if err != nil {
		return nil, err
	}

	mapping := make(map[Entity]Entity, len(order))
	for _, from := range order {
		t, _ := src.Transform(from)
		copied := *t
		if t.HasParent() {
			copied.Parent = mapping[t.Parent]
		}
		to := CreateEntity(s, copied)
		mapping[from] = to

		for _, id := range src.tableOrder {
			srcTable := src.tables[id]
			if !srcTable.has(from) {
				continue
			}
			srcTable.copyEntry(s.ensureTable(id, srcTable), from, to)
		}
	}
	return mapping, nil
}

// graftOrder returns src's entities ordered so that every parent precedes its
// children. It is the insertion order whenever that order is already valid.
func graftOrder(src *Scene) ([]Entity, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]uint8, src.Len())
	order := make([]Entity, 0, src.Len())

	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("%w at %s", ErrPrefabCycle, src.order[i])
		}
		state[i] = visiting
		t := &src.transforms[i]
		if t.HasParent() {
			pi, ok := src.Slot(t.Parent)
			if !ok {
				return fmt.Errorf("%w: %s -> %s", ErrPrefabNotSelfContained, src.order[i], t.Parent)
			}
			if err := visit(pi); err != nil {
				return err
			}
		}
		state[i] = done
		order = append(order, src.order[i])
		return nil
	}

	for i := range src.order {
		if err := visit(i); err != nil {
			return nil, err
		}
	}
	return order, nil
}
