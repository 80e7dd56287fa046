package ecs

import (
	"fmt"

	"github.com/milk9111/scenecore/ecs/component"
)

func sparseSet[T any](s *Scene, kind component.ComponentKind[T]) *SparseSet[T] {
	t, ok := s.table(kind.ID()).(*SparseSet[T])
	if !ok {
		return nil
	}
	return t
}

// Add attaches value to e, replacing any previous value of the same kind.
func Add[T any](s *Scene, e Entity, handle component.ComponentHandle[T], value T) error {
	kind := handle.Kind()
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if !IsAlive(s, e) {
		return fmt.Errorf("add component to %s: %w", e, component.ErrEntityNotAlive)
	}
	set := sparseSet(s, kind)
	if set == nil {
		set = s.ensureTable(kind.ID(), &SparseSet[T]{}).(*SparseSet[T])
	}
	set.Set(e, value)
	return nil
}

// Remove detaches the component from e.
func Remove[T any](s *Scene, e Entity, handle component.ComponentHandle[T]) bool {
	return sparseSet(s, handle.Kind()).Remove(e)
}

// Has reports whether e carries the component.
func Has[T any](s *Scene, e Entity, handle component.ComponentHandle[T]) bool {
	return IsAlive(s, e) && sparseSet(s, handle.Kind()).Has(e)
}

// Get returns a mutable pointer to e's component, or false when e does not
// carry it. A missing component is not an error.
func Get[T any](s *Scene, e Entity, handle component.ComponentHandle[T]) (*T, bool) {
	if !IsAlive(s, e) {
		return nil, false
	}
	v := sparseSet(s, handle.Kind()).Get(e)
	return v, v != nil
}

// ForEach visits every entity carrying the component in insertion order.
func ForEach[T any](s *Scene, handle component.ComponentHandle[T], fn func(Entity, *T)) {
	set := sparseSet(s, handle.Kind())
	if set.Len() == 0 {
		return
	}
	for _, e := range s.Entities() {
		if v := set.Get(e); v != nil {
			fn(e, v)
		}
	}
}
