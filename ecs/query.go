package ecs

import "github.com/milk9111/scenecore/ecs/component"

type kindID interface {
	ID() component.ComponentID
}

// Query returns live entities carrying every listed kind, in insertion order.
func (s *Scene) Query(kinds ...kindID) []Entity {
	if s == nil || len(kinds) == 0 {
		return nil
	}
	tables := make([]table, 0, len(kinds))
	for _, k := range kinds {
		t := s.table(k.ID())
		if t == nil {
			return nil
		}
		tables = append(tables, t)
	}
	var out []Entity
	for _, e := range s.order {
		match := true
		for _, t := range tables {
			if !t.has(e) {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first entity in insertion order carrying kind.
func (s *Scene) First(kind kindID) (Entity, bool) {
	t := s.table(kind.ID())
	if t == nil {
		return 0, false
	}
	for _, e := range s.order {
		if t.has(e) {
			return e, true
		}
	}
	return 0, false
}
