package system

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/scenecore/ecs"
	"github.com/willf/bitset"
)

// DefaultMaxTransformDepth bounds the length of any parent chain.
const DefaultMaxTransformDepth = 64

// TransformStats counts what the last Update had to repair.
type TransformStats struct {
	Resolved       int
	Cycles         int
	MissingParents int
	DepthExceeded  int
}

// Detached returns the number of parent links cut by the last Update.
func (s TransformStats) Detached() int {
	return s.Cycles + s.MissingParents + s.DepthExceeded
}

type TransformOption func(*TransformSystem)

// WithMaxDepth sets the parent chain ceiling. Values below 1 are ignored.
func WithMaxDepth(n int) TransformOption {
	return func(ts *TransformSystem) {
		if n > 0 {
			ts.maxDepth = n
		}
	}
}

func WithLogger(l *slog.Logger) TransformOption {
	return func(ts *TransformSystem) {
		if l != nil {
			ts.log = l
		}
	}
}

// TransformSystem computes Local and World matrices for every entity.
//
// World matrices are written to a scratch array while parents are only read,
// then committed once per entity. Broken hierarchy (a cycle, a dead parent or a
// chain deeper than the ceiling) is repaired by detaching the offending entity
// so that it becomes a root for this and every following frame.
type TransformSystem struct {
	maxDepth int
	log      *slog.Logger

	world     []mgl32.Mat4
	depth     []int
	detached  []detach
	resolving *bitset.BitSet
	resolved  *bitset.BitSet

	stats TransformStats
}

type detach struct {
	index  int
	parent ecs.Entity
	reason ecs.DetachReason
}

func NewTransformSystem(opts ...TransformOption) *TransformSystem {
	ts := &TransformSystem{
		maxDepth:  DefaultMaxTransformDepth,
		log:       slog.Default(),
		resolving: bitset.New(0),
		resolved:  bitset.New(0),
	}
	for _, opt := range opts {
		opt(ts)
	}
	return ts
}

// ResolveTransforms runs a default TransformSystem once over s.
func ResolveTransforms(s *ecs.Scene) TransformStats {
	ts := NewTransformSystem()
	ts.Update(s)
	return ts.Stats()
}

// Stats returns the counters of the last Update.
func (ts *TransformSystem) Stats() TransformStats {
	return ts.stats
}

func (ts *TransformSystem) Update(s *ecs.Scene) {
	if ts == nil || s == nil {
		return
	}
	n := s.Len()
	ts.stats = TransformStats{Resolved: n}

	for i := 0; i < n; i++ {
		t := s.TransformAt(i)
		t.Local = t.ComposeLocal()
	}

	ts.reset(n)
	for i := 0; i < n; i++ {
		ts.resolve(s, i, 0)
	}

	for i := 0; i < n; i++ {
		s.TransformAt(i).World = ts.world[i]
	}
	for _, d := range ts.detached {
		e := s.Entities()[d.index]
		s.TransformAt(d.index).ClearParent()
		ts.report(s, e, d)
	}
}

func (ts *TransformSystem) reset(n int) {
	if cap(ts.world) < n {
		ts.world = make([]mgl32.Mat4, n)
		ts.depth = make([]int, n)
	}
	ts.world = ts.world[:n]
	ts.depth = ts.depth[:n]
	ts.detached = ts.detached[:0]
	ts.resolving.ClearAll()
	ts.resolved.ClearAll()
}

// resolve memoizes the world matrix of slot i. callDepth is the recursion depth,
// which never exceeds the hierarchy depth of i.
func (ts *TransformSystem) resolve(s *ecs.Scene, i, callDepth int) mgl32.Mat4 {
	if ts.resolved.Test(uint(i)) {
		return ts.world[i]
	}
	ts.resolving.Set(uint(i))

	t := s.TransformAt(i)
	world, depth := t.Local, 0

	if t.HasParent() {
		pi, ok := s.Slot(t.Parent)
		switch {
		case !ok:
			ts.detach(i, t.Parent, ecs.DetachMissingParent)
		case ts.resolving.Test(uint(pi)):
			ts.detach(i, t.Parent, ecs.DetachCycle)
		case callDepth+1 > ts.maxDepth:
			ts.detach(i, t.Parent, ecs.DetachDepthExceeded)
		default:
			parentWorld := ts.resolve(s, pi, callDepth+1)
			if ts.depth[pi]+1 > ts.maxDepth {
				ts.detach(i, t.Parent, ecs.DetachDepthExceeded)
				break
			}
			world, depth = parentWorld.Mul4(t.Local), ts.depth[pi]+1
		}
	}

	ts.world[i] = world
	ts.depth[i] = depth
	ts.resolving.Clear(uint(i))
	ts.resolved.Set(uint(i))
	return world
}

func (ts *TransformSystem) detach(i int, parent ecs.Entity, reason ecs.DetachReason) {
	ts.detached = append(ts.detached, detach{index: i, parent: parent, reason: reason})
	switch reason {
	case ecs.DetachCycle:
		ts.stats.Cycles++
	case ecs.DetachMissingParent:
		ts.stats.MissingParents++
	case ecs.DetachDepthExceeded:
		ts.stats.DepthExceeded++
	}
}

func (ts *TransformSystem) report(s *ecs.Scene, e ecs.Entity, d detach) {
	ts.log.Warn("transform: detached entity from parent",
		"entity", e.String(),
		"parent", d.parent.String(),
		"reason", d.reason.String(),
	)
	s.Events().Push(ecs.Event{
		Type: ecs.EventTransformDetached,
		Data: ecs.DetachEvent{Entity: e, Parent: d.parent, Reason: d.reason},
	})
}
