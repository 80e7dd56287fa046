package ecs

import "github.com/milk9111/scenecore/ecs/component"

// Scene owns entities, their transforms and every component table. Transforms
// are stored densely in insertion order, which is also the iteration order of
// every system.
type Scene struct {
	entities entityStore

	order      []Entity
	transforms []Transform
	slots      []int // id-1 -> index into order, -1 when dead

	tables     map[component.ComponentID]table
	tableOrder []component.ComponentID

	events EventQueue
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{tables: map[component.ComponentID]table{}}
}

// CreateEntity allocates a new entity carrying t and appends it to the
// insertion order.
func CreateEntity(s *Scene, t Transform) Entity {
	e := s.entities.create()
	id := int(e.id())
	for len(s.slots) < id {
		s.slots = append(s.slots, -1)
	}
	s.slots[id-1] = len(s.order)
	s.order = append(s.order, e)
	s.transforms = append(s.transforms, t)
	return e
}

// DestroyEntity removes e from every component table and from the insertion
// order, then retires its key. Children keep their parent key and are detached
// by the transform system on the next frame.
func DestroyEntity(s *Scene, e Entity) bool {
	if s == nil || !s.entities.isAlive(e) {
		return false
	}
	for _, id := range s.tableOrder {
		s.tables[id].remove(e)
	}

	idx := s.slots[e.id()-1]
	copy(s.order[idx:], s.order[idx+1:])
	s.order = s.order[:len(s.order)-1]
	copy(s.transforms[idx:], s.transforms[idx+1:])
	s.transforms = s.transforms[:len(s.transforms)-1]
	for i := idx; i < len(s.order); i++ {
		s.slots[s.order[i].id()-1] = i
	}
	s.slots[e.id()-1] = -1

	return s.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(s *Scene, e Entity) bool {
	return s != nil && s.entities.isAlive(e)
}

// IsAlive reports whether an entity handle is valid.
func (s *Scene) IsAlive(e Entity) bool {
	return IsAlive(s, e)
}

// Len returns the number of live entities.
func (s *Scene) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Entities returns live entities in insertion order. The slice is owned by the
// scene and must not be modified.
func (s *Scene) Entities() []Entity {
	if s == nil {
		return nil
	}
	return s.order
}

// Slot returns the insertion-order index of e.
func (s *Scene) Slot(e Entity) (int, bool) {
	if !s.IsAlive(e) {
		return -1, false
	}
	return s.slots[e.id()-1], true
}

// Transform returns the transform record of e. The pointer is valid until the
// next CreateEntity or DestroyEntity.
func (s *Scene) Transform(e Entity) (*Transform, bool) {
	idx, ok := s.Slot(e)
	if !ok {
		return nil, false
	}
	return &s.transforms[idx], true
}

// TransformAt returns the transform at insertion-order index i.
func (s *Scene) TransformAt(i int) *Transform {
	return &s.transforms[i]
}

// Events returns the scene event queue.
func (s *Scene) Events() *EventQueue {
	if s == nil {
		return nil
	}
	return &s.events
}

func (s *Scene) table(id component.ComponentID) table {
	if s == nil {
		return nil
	}
	return s.tables[id]
}

func (s *Scene) ensureTable(id component.ComponentID, like table) table {
	if t, ok := s.tables[id]; ok {
		return t
	}
	t := like.empty()
	s.tables[id] = t
	s.tableOrder = append(s.tableOrder, id)
	return t
}
