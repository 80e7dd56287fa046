package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/scenecore/ecs/component"
)

func TestSceneEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewScene()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(s, NewTransform()))
			}
			if s.Len() != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, s.Len())
			}
			if c.destroyIndex < 0 {
				return
			}
			if !DestroyEntity(s, ents[c.destroyIndex]) {
				t.Fatalf("DestroyEntity should return true for alive entity")
			}
			if IsAlive(s, ents[c.destroyIndex]) {
				t.Fatalf("entity should not be alive after destruction")
			}
			if s.Len() != c.create-1 {
				t.Fatalf("expected %d entities after destroy, got %d", c.create-1, s.Len())
			}
			for i, e := range s.Entities() {
				slot, ok := s.Slot(e)
				if !ok || slot != i {
					t.Fatalf("slot of %s = %d,%v want %d", e, slot, ok, i)
				}
			}
		})
	}
}

func TestSceneInsertionOrder(t *testing.T) {
	s := NewScene()
	var want []Entity
	for i := 0; i < 5; i++ {
		want = append(want, CreateEntity(s, TransformAt(float32(i), 0, 0)))
	}
	got := s.Entities()
	if len(got) != len(want) {
		t.Fatalf("expected %d entities, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order[%d] = %s, want %s", i, got[i], want[i])
		}
		tr, ok := s.Transform(got[i])
		if !ok || tr.Translation.X() != float32(i) {
			t.Fatalf("transform of %s not stored in insertion order", got[i])
		}
	}
}

func TestRecycledKeyDoesNotAlias(t *testing.T) {
	s := NewScene()
	old := CreateEntity(s, NewTransform())
	if err := Add(s, old, component.PlayerTagComponent, component.PlayerTag{}); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(s, old)

	fresh := CreateEntity(s, NewTransform())
	if fresh.id() != old.id() {
		t.Fatalf("expected id reuse, got %s after %s", fresh, old)
	}
	if fresh == old {
		t.Fatalf("recycled key must differ from the destroyed one")
	}
	if IsAlive(s, old) {
		t.Fatalf("stale key reported alive")
	}
	if _, ok := s.Transform(old); ok {
		t.Fatalf("stale key resolved to a transform")
	}
	if Has(s, fresh, component.PlayerTagComponent) {
		t.Fatalf("component leaked from destroyed entity to recycled id")
	}
}

func TestEntityKeyLayout(t *testing.T) {
	tests := []struct {
		name  string
		e     Entity
		str   string
		valid bool
	}{
		{"zero", 0, "0v0", false},
		{"first", makeEntity(1, 0), "1v0", true},
		{"recycled", makeEntity(3, 2), "3v2", true},
		{"generation_only", Entity(1) << entityIDBits, "0v1", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.e.String(); got != tc.str {
				t.Fatalf("String() = %q, want %q", got, tc.str)
			}
			if got := tc.e.Valid(); got != tc.valid {
				t.Fatalf("Valid() = %v, want %v", got, tc.valid)
			}
		})
	}

	s := NewScene()
	e := CreateEntity(s, NewTransform())
	DestroyEntity(s, e)
	if !e.Valid() || s.IsAlive(e) {
		t.Fatalf("destroyed key %s should stay valid but not alive", e)
	}
}

func TestComponentTables(t *testing.T) {
	s := NewScene()
	e1 := CreateEntity(s, NewTransform())
	e2 := CreateEntity(s, NewTransform())

	tests := []struct {
		name  string
		setup func() error
		check func(t *testing.T)
	}{
		{
			name: "missing_component_is_not_an_error",
			setup: func() error {
				return nil
			},
			check: func(t *testing.T) {
				if v, ok := Get(s, e1, component.MeshComponent); ok || v != nil {
					t.Fatalf("expected no mesh, got %v", v)
				}
			},
		},
		{
			name: "add_and_mutate_through_pointer",
			setup: func() error {
				return Add(s, e1, component.PlayerComponent, component.Player{MoveSpeed: 1})
			},
			check: func(t *testing.T) {
				p, ok := Get(s, e1, component.PlayerComponent)
				if !ok {
					t.Fatalf("expected player component")
				}
				p.MoveSpeed = 5
				again, _ := Get(s, e1, component.PlayerComponent)
				if again.MoveSpeed != 5 {
					t.Fatalf("expected mutation to persist, got %v", again.MoveSpeed)
				}
			},
		},
		{
			name: "reattach_replaces",
			setup: func() error {
				if err := Add(s, e2, component.MeshComponent, component.NewMesh(component.Primitive{Geometry: 1}, component.Primitive{Geometry: 2})); err != nil {
					return err
				}
				return Add(s, e2, component.MeshComponent, component.NewMesh(component.Primitive{Geometry: 3}))
			},
			check: func(t *testing.T) {
				m, _ := Get(s, e2, component.MeshComponent)
				if len(m.Primitives) != 1 || m.Primitives[0].Geometry != 3 {
					t.Fatalf("expected replaced primitive list, got %+v", m.Primitives)
				}
			},
		},
		{
			name: "add_to_dead_entity_fails",
			setup: func() error {
				dead := CreateEntity(s, NewTransform())
				DestroyEntity(s, dead)
				err := Add(s, dead, component.PlayerTagComponent, component.PlayerTag{})
				if !errors.Is(err, component.ErrEntityNotAlive) {
					t.Fatalf("expected ErrEntityNotAlive, got %v", err)
				}
				return nil
			},
			check: func(t *testing.T) {},
		},
		{
			name: "invalid_kind",
			setup: func() error {
				err := Add(s, e1, component.ComponentHandle[int]{}, 1)
				if !errors.Is(err, component.ErrInvalidComponentKind) {
					t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
				}
				return nil
			},
			check: func(t *testing.T) {},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
		})
	}
}

func TestDestroyCascadesThroughTables(t *testing.T) {
	s := NewScene()
	e := CreateEntity(s, NewTransform())
	other := CreateEntity(s, NewTransform())
	for _, ent := range []Entity{e, other} {
		if err := Add(s, ent, component.MeshComponent, component.NewMesh(component.Primitive{Geometry: 1})); err != nil {
			t.Fatal(err)
		}
		if err := Add(s, ent, component.CameraComponent, component.NewCamera(1, 1, 0.1, 10)); err != nil {
			t.Fatal(err)
		}
	}

	DestroyEntity(s, e)

	if got := s.Query(component.MeshComponent.Kind(), component.CameraComponent.Kind()); len(got) != 1 || got[0] != other {
		t.Fatalf("expected only %s left, got %v", other, got)
	}
	if sparseSet(s, component.MeshComponent.Kind()).Len() != 1 {
		t.Fatalf("mesh table still holds the destroyed entity")
	}
}

func TestForEachAndQuery(t *testing.T) {
	s := NewScene()
	e1 := CreateEntity(s, NewTransform())
	CreateEntity(s, NewTransform())
	e3 := CreateEntity(s, NewTransform())

	// Attach in reverse so dense storage order differs from insertion order.
	for _, e := range []Entity{e3, e1} {
		if err := Add(s, e, component.PlayerTagComponent, component.PlayerTag{}); err != nil {
			t.Fatal(err)
		}
	}
	if err := Add(s, e3, component.CameraTagComponent, component.CameraTag{}); err != nil {
		t.Fatal(err)
	}

	var seen []Entity
	ForEach(s, component.PlayerTagComponent, func(e Entity, _ *component.PlayerTag) { seen = append(seen, e) })
	if len(seen) != 2 || seen[0] != e1 || seen[1] != e3 {
		t.Fatalf("expected [%s %s] in insertion order, got %v", e1, e3, seen)
	}

	both := s.Query(component.PlayerTagComponent.Kind(), component.CameraTagComponent.Kind())
	if len(both) != 1 || both[0] != e3 {
		t.Fatalf("expected only %s, got %v", e3, both)
	}
	if got := s.Query(component.ScriptComponent.Kind()); got != nil {
		t.Fatalf("expected nil for a kind without a table, got %v", got)
	}
	if first, ok := s.First(component.PlayerTagComponent.Kind()); !ok || first != e1 {
		t.Fatalf("First = %s,%v want %s", first, ok, e1)
	}
}
