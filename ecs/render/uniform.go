package render

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Payload sizes of the uniform structs as laid out in device memory.
const (
	CameraUniformSize    = 64
	TransformUniformSize = 64
	PrimitiveUniformSize = 16

	MaxUniformSize = TransformUniformSize
)

// CameraUniform is bound once per frame.
type CameraUniform struct {
	ViewProj mgl32.Mat4
}

// TransformUniform is bound per entity.
type TransformUniform struct {
	Model mgl32.Mat4
}

// PrimitiveUniform is bound per primitive.
type PrimitiveUniform struct {
	BaseColor mgl32.Vec4
}

func (u CameraUniform) AppendBytes(b []byte) []byte {
	return appendFloats(b, u.ViewProj[:])
}

func (u TransformUniform) AppendBytes(b []byte) []byte {
	return appendFloats(b, u.Model[:])
}

func (u PrimitiveUniform) AppendBytes(b []byte) []byte {
	return appendFloats(b, u.BaseColor[:])
}

// DecodeCamera reads a CameraUniform written by the packer.
func DecodeCamera(b []byte) (CameraUniform, bool) {
	var u CameraUniform
	ok := readFloats(b, u.ViewProj[:])
	return u, ok
}

// DecodeTransform reads a TransformUniform written by the packer.
func DecodeTransform(b []byte) (TransformUniform, bool) {
	var u TransformUniform
	ok := readFloats(b, u.Model[:])
	return u, ok
}

// DecodePrimitive reads a PrimitiveUniform written by the packer.
func DecodePrimitive(b []byte) (PrimitiveUniform, bool) {
	var u PrimitiveUniform
	ok := readFloats(b, u.BaseColor[:])
	return u, ok
}

func appendFloats(b []byte, fs []float32) []byte {
	for _, f := range fs {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(f))
	}
	return b
}

func readFloats(b []byte, dst []float32) bool {
	if len(b) < 4*len(dst) {
		return false
	}
	for i := range dst {
		dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return true
}
