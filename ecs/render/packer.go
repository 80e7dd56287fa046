package render

import (
	"fmt"
	"log/slog"

	"github.com/milk9111/scenecore/ecs"
	"github.com/milk9111/scenecore/ecs/component"
)

// OverflowPolicy decides what happens when a frame needs more uniform slots
// than the device offers.
type OverflowPolicy uint8

const (
	// OverflowFlush closes the current batch and restarts the slot counters.
	OverflowFlush OverflowPolicy = iota
	// OverflowDrop refuses the excess primitives and counts them.
	OverflowDrop
)

func (p OverflowPolicy) String() string {
	if p == OverflowDrop {
		return "drop"
	}
	return "flush"
}

// DrawDescriptor is one draw call for the renderer. The offsets are dynamic
// offsets into the transform and primitive buffers of the batch it belongs to.
type DrawDescriptor struct {
	Entity          ecs.Entity
	Pipeline        component.PipelineHandle
	Geometry        component.GeometryHandle
	TransformOffset uint64
	PrimitiveOffset uint64
	Texture         component.TextureHandle
	Placeholder     bool
}

// Batch is a run of draws whose uniform data is resident at the same time.
type Batch struct {
	Index          int
	Draws          []DrawDescriptor
	TransformSlots uint32
	PrimitiveSlots uint32
}

// Result is what one Pack produced.
type Result struct {
	Batches []Batch
	// Skipped counts primitives referencing unregistered resources.
	Skipped int
	// Dropped counts primitives refused by OverflowDrop.
	Dropped int
}

// Draws returns every draw of every batch in submission order.
func (r Result) Draws() []DrawDescriptor {
	n := 0
	for _, b := range r.Batches {
		n += len(b.Draws)
	}
	out := make([]DrawDescriptor, 0, n)
	for _, b := range r.Batches {
		out = append(out, b.Draws...)
	}
	return out
}

// Overflowed reports whether the frame did not fit one batch.
func (r Result) Overflowed() bool {
	return r.Dropped > 0 || len(r.Batches) > 1
}

type PackerOption func(*Packer)

func WithOverflowPolicy(p OverflowPolicy) PackerOption {
	return func(pk *Packer) {
		pk.policy = p
	}
}

// WithFlush registers fn to receive every batch after its last upload and
// before any of its slots are written again. A non-nil error aborts Pack.
func WithFlush(fn func(Batch) error) PackerOption {
	return func(pk *Packer) {
		pk.flush = fn
	}
}

func WithPackerLogger(l *slog.Logger) PackerOption {
	return func(pk *Packer) {
		if l != nil {
			pk.log = l
		}
	}
}

// Packer writes per-draw uniform data for a scene into a Device and returns
// the draw list. It is the only writer of the device's uniform buffers.
type Packer struct {
	dev    Device
	res    *Resources
	policy OverflowPolicy
	flush  func(Batch) error
	log    *slog.Logger

	transforms slotAllocator
	primitives slotAllocator
	camera     ecs.Entity
	scratch    []byte
}

func NewPacker(dev Device, res *Resources, opts ...PackerOption) (*Packer, error) {
	if dev == nil {
		return nil, ErrNilDevice
	}
	align := dev.MinUniformAlignment()
	if !validAlignment(align) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidAlignment, align)
	}
	slots := dev.MaxUniformSlots()
	if slots == 0 {
		return nil, ErrNoCapacity
	}
	if res == nil {
		res = NewResources()
	}
	pk := &Packer{
		dev:        dev,
		res:        res,
		log:        slog.Default(),
		transforms: newSlotAllocator(TransformUniformSize, align, slots),
		primitives: newSlotAllocator(PrimitiveUniformSize, align, slots),
		scratch:    make([]byte, 0, MaxUniformSize),
	}
	for _, opt := range opts {
		opt(pk)
	}
	return pk, nil
}

// Resources returns the tables draws are validated against.
func (pk *Packer) Resources() *Resources {
	return pk.res
}

// SetCamera pins the camera used for the view-projection upload. Zero restores
// the default of the first entity carrying a Camera.
func (pk *Packer) SetCamera(e ecs.Entity) {
	pk.camera = e
}

// Stride returns the byte distance between consecutive transform and
// primitive slots.
func (pk *Packer) Stride() (transform, primitive uint64) {
	return pk.transforms.stride, pk.primitives.stride
}

// Pack uploads the camera, then every mesh primitive in insertion order.
func (pk *Packer) Pack(s *ecs.Scene) (Result, error) {
	var res Result
	pk.transforms.reset()
	pk.primitives.reset()

	if err := pk.uploadCamera(s); err != nil {
		return res, err
	}

	batch := Batch{}
	for _, e := range s.Query(component.MeshComponent) {
		mesh, _ := ecs.Get(s, e, component.MeshComponent)
		t, ok := s.Transform(e)
		if !ok {
			continue
		}

		var transformOffset uint64
		haveTransform := false
		for i, prim := range mesh.Primitives {
			tex, placeholder, ok := pk.bind(prim)
			if !ok {
				res.Skipped++
				pk.log.Debug("render: skipped primitive with unregistered resource",
					"entity", e.String(), "primitive", i)
				continue
			}

			if !pk.fits(haveTransform) {
				if pk.policy == OverflowDrop {
					res.Dropped++
					pk.log.Warn("render: uniform slots exhausted, dropping primitive",
						"entity", e.String(), "primitive", i)
					continue
				}
				if err := pk.emit(&res, &batch); err != nil {
					return res, err
				}
				haveTransform = false
			}

			if !haveTransform {
				off, err := pk.uploadTransform(t)
				if err != nil {
					return res, err
				}
				transformOffset, haveTransform = off, true
			}
			primitiveOffset, err := pk.uploadPrimitive(prim.Material)
			if err != nil {
				return res, err
			}

			batch.Draws = append(batch.Draws, DrawDescriptor{
				Entity:          e,
				Pipeline:        prim.Pipeline,
				Geometry:        prim.Geometry,
				TransformOffset: transformOffset,
				PrimitiveOffset: primitiveOffset,
				Texture:         tex,
				Placeholder:     placeholder,
			})
		}
	}

	if len(batch.Draws) > 0 {
		if err := pk.emit(&res, &batch); err != nil {
			return res, err
		}
	}
	if res.Dropped > 0 {
		pk.log.Warn("render: frame exceeded uniform capacity",
			"dropped", res.Dropped, "slots", pk.primitives.capacity)
	}
	return res, nil
}

func (pk *Packer) bind(prim component.Primitive) (component.TextureHandle, bool, bool) {
	if _, ok := pk.res.Geometry(prim.Geometry); !ok {
		return 0, false, false
	}
	if _, ok := pk.res.Pipeline(prim.Pipeline); !ok {
		return 0, false, false
	}
	return pk.res.bindTexture(prim.Material)
}

// fits reports whether one more primitive, plus a transform slot when the
// entity has none in this batch yet, can be allocated.
func (pk *Packer) fits(haveTransform bool) bool {
	if pk.primitives.remaining() == 0 {
		return false
	}
	return haveTransform || pk.transforms.remaining() > 0
}

func (pk *Packer) emit(res *Result, batch *Batch) error {
	batch.Index = len(res.Batches)
	batch.TransformSlots = pk.transforms.used()
	batch.PrimitiveSlots = pk.primitives.used()
	if pk.flush != nil {
		if err := pk.flush(*batch); err != nil {
			return fmt.Errorf("render: flush batch %d: %w", batch.Index, err)
		}
	}
	res.Batches = append(res.Batches, *batch)
	*batch = Batch{}
	pk.transforms.reset()
	pk.primitives.reset()
	return nil
}

func (pk *Packer) uploadCamera(s *ecs.Scene) error {
	e := pk.camera
	if e == 0 || !ecs.Has(s, e, component.CameraComponent) {
		var ok bool
		if e, ok = s.First(component.CameraComponent); !ok {
			return nil
		}
	}
	cam, _ := ecs.Get(s, e, component.CameraComponent)
	t, ok := s.Transform(e)
	if !ok {
		return nil
	}
	u := CameraUniform{ViewProj: cam.Projection().Mul4(t.World.Inv())}
	pk.scratch = u.AppendBytes(pk.scratch[:0])
	if err := pk.dev.Upload(CameraBuffer, 0, pk.scratch); err != nil {
		return fmt.Errorf("render: upload camera: %w", err)
	}
	return nil
}

func (pk *Packer) uploadTransform(t *ecs.Transform) (uint64, error) {
	off, _ := pk.transforms.alloc()
	pk.scratch = TransformUniform{Model: t.World}.AppendBytes(pk.scratch[:0])
	if err := pk.dev.Upload(TransformBuffer, off, pk.scratch); err != nil {
		return 0, fmt.Errorf("render: upload transform: %w", err)
	}
	return off, nil
}

func (pk *Packer) uploadPrimitive(m component.Material) (uint64, error) {
	off, _ := pk.primitives.alloc()
	pk.scratch = PrimitiveUniform{BaseColor: m.BaseColor}.AppendBytes(pk.scratch[:0])
	if err := pk.dev.Upload(PrimitiveBuffer, off, pk.scratch); err != nil {
		return 0, fmt.Errorf("render: upload primitive: %w", err)
	}
	return off, nil
}
