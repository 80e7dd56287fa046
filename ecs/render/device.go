package render

import (
	"errors"
	"fmt"
)

var (
	ErrNilDevice        = errors.New("render: nil device")
	ErrInvalidAlignment = errors.New("render: uniform alignment must be a non-zero power of two")
	ErrNoCapacity       = errors.New("render: device reports zero uniform slots")
	ErrUnknownBuffer    = errors.New("render: unknown buffer")
	ErrOutOfRange       = errors.New("render: upload out of buffer range")
)

// BufferKind selects one of the uniform buffers a Device exposes.
type BufferKind uint8

const (
	CameraBuffer BufferKind = iota
	TransformBuffer
	PrimitiveBuffer

	bufferKinds
)

func (b BufferKind) String() string {
	switch b {
	case CameraBuffer:
		return "camera"
	case TransformBuffer:
		return "transform"
	case PrimitiveBuffer:
		return "primitive"
	default:
		return fmt.Sprintf("buffer(%d)", uint8(b))
	}
}

// Device is the part of a graphics device the packer writes through.
type Device interface {
	Upload(buf BufferKind, offset uint64, data []byte) error
	MinUniformAlignment() uint32
	MaxUniformSlots() uint32
}

func validAlignment(a uint32) bool {
	return a != 0 && a&(a-1) == 0
}

func alignUp(n, alignment uint64) uint64 {
	return (n + alignment - 1) &^ (alignment - 1)
}

// MemoryDevice is a Device backed by CPU byte slices. Each buffer holds
// MaxUniformSlots slots of the largest uniform payload padded to the alignment.
type MemoryDevice struct {
	alignment uint32
	slots     uint32
	buffers   [bufferKinds][]byte
	uploads   int
}

func NewMemoryDevice(alignment, slots uint32) *MemoryDevice {
	d := &MemoryDevice{alignment: alignment, slots: slots}
	if validAlignment(alignment) {
		size := uint64(slots) * alignUp(MaxUniformSize, uint64(alignment))
		for i := range d.buffers {
			d.buffers[i] = make([]byte, size)
		}
	}
	return d
}

func (d *MemoryDevice) MinUniformAlignment() uint32 { return d.alignment }
func (d *MemoryDevice) MaxUniformSlots() uint32     { return d.slots }

func (d *MemoryDevice) Upload(buf BufferKind, offset uint64, data []byte) error {
	if buf >= bufferKinds {
		return fmt.Errorf("%w: %s", ErrUnknownBuffer, buf)
	}
	if !validAlignment(d.alignment) || offset%uint64(d.alignment) != 0 {
		return fmt.Errorf("%w: offset %d in %s buffer", ErrInvalidAlignment, offset, buf)
	}
	b := d.buffers[buf]
	if offset+uint64(len(data)) > uint64(len(b)) {
		return fmt.Errorf("%w: %d+%d > %d in %s buffer", ErrOutOfRange, offset, len(data), len(b), buf)
	}
	copy(b[offset:], data)
	d.uploads++
	return nil
}

// Bytes returns a view of n bytes of buf starting at offset, or nil when the
// range is outside the buffer.
func (d *MemoryDevice) Bytes(buf BufferKind, offset uint64, n int) []byte {
	if buf >= bufferKinds {
		return nil
	}
	b := d.buffers[buf]
	if offset+uint64(n) > uint64(len(b)) {
		return nil
	}
	return b[offset : offset+uint64(n)]
}

// Uploads returns the number of successful uploads so far.
func (d *MemoryDevice) Uploads() int {
	return d.uploads
}
