package ecs

// SparseSet stores one value per entity. Values live in a dense slice so
// iteration is cache friendly; the sparse slice maps entity ids to dense indices.
// Pointers returned by Get stay valid until the next Set or Remove.
type SparseSet[T any] struct {
	denseEntities []Entity
	denseValues   []T
	sparse        []int
}

// Has reports whether e (including its generation) has a value.
func (s *SparseSet[T]) Has(e Entity) bool {
	idx, ok := s.index(e)
	return ok && idx >= 0
}

func (s *SparseSet[T]) index(e Entity) (int, bool) {
	if s == nil || !e.Valid() {
		return -1, false
	}
	id := int(e.id())
	if id-1 >= len(s.sparse) {
		return -1, false
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.denseEntities) || s.denseEntities[idx] != e {
		return -1, false
	}
	return idx, true
}

// Get returns the value for e, or nil.
func (s *SparseSet[T]) Get(e Entity) *T {
	idx, ok := s.index(e)
	if !ok {
		return nil
	}
	return &s.denseValues[idx]
}

// Set inserts or replaces the value for e.
func (s *SparseSet[T]) Set(e Entity, v T) {
	if s == nil || !e.Valid() {
		return
	}
	id := int(e.id())
	for len(s.sparse) < id {
		s.sparse = append(s.sparse, -1)
	}
	if idx, ok := s.index(e); ok {
		s.denseValues[idx] = v
		return
	}
	// A stale generation of the same id may still be present.
	if old := s.sparse[id-1]; old >= 0 && old < len(s.denseEntities) && s.denseEntities[old].id() == e.id() {
		s.Remove(s.denseEntities[old])
	}
	s.denseEntities = append(s.denseEntities, e)
	s.denseValues = append(s.denseValues, v)
	s.sparse[id-1] = len(s.denseEntities) - 1
}

// Remove deletes the value for e if present.
func (s *SparseSet[T]) Remove(e Entity) bool {
	idx, ok := s.index(e)
	if !ok {
		return false
	}
	last := len(s.denseEntities) - 1
	lastEntity := s.denseEntities[last]

	s.denseEntities[idx] = lastEntity
	s.denseValues[idx] = s.denseValues[last]
	s.sparse[lastEntity.id()-1] = idx

	var zero T
	s.denseValues[last] = zero
	s.denseEntities = s.denseEntities[:last]
	s.denseValues = s.denseValues[:last]
	s.sparse[e.id()-1] = -1
	return true
}

// Len returns the number of stored values.
func (s *SparseSet[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.denseEntities)
}

// Entities returns the dense entity list. The order is storage order, not
// scene insertion order.
func (s *SparseSet[T]) Entities() []Entity {
	if s == nil {
		return nil
	}
	return s.denseEntities
}

// table is the type-erased view the Scene needs to cascade deletes and to copy
// entries between scenes.
type table interface {
	has(e Entity) bool
	remove(e Entity) bool
	copyEntry(dst table, from, to Entity) bool
	empty() table
}

func (s *SparseSet[T]) has(e Entity) bool    { return s.Has(e) }
func (s *SparseSet[T]) remove(e Entity) bool { return s.Remove(e) }
func (s *SparseSet[T]) empty() table         { return &SparseSet[T]{} }

func (s *SparseSet[T]) copyEntry(dst table, from, to Entity) bool {
	v := s.Get(from)
	if v == nil {
		return false
	}
	d, ok := dst.(*SparseSet[T])
	if !ok {
		return false
	}
	val := *v
	if c, ok := any(val).(interface{ Clone() T }); ok {
		val = c.Clone()
	}
	d.Set(to, val)
	return true
}
