package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// LoadSpec reads filename through Load and unmarshals it into T.
func LoadSpec[T any](filename string) (T, error) {
	return loadSpecWith[T](Load, filename)
}

func loadSpecWith[T any](load func(string) ([]byte, error), filename string) (T, error) {
	var zero T
	data, err := load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or a CSS color name.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(strings.TrimSpace(value.Value))]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Vec4 returns the color as straight RGBA in 0..1. A nil color is opaque white.
func (c *YAMLColor) Vec4() mgl32.Vec4 {
	if c == nil || c.Color == nil {
		return mgl32.Vec4{1, 1, 1, 1}
	}
	n := color.NRGBAModel.Convert(c.Color).(color.NRGBA)
	return mgl32.Vec4{
		float32(n.R) / 255,
		float32(n.G) / 255,
		float32(n.B) / 255,
		float32(n.A) / 255,
	}
}

func vec3(v []float32, def mgl32.Vec3) (mgl32.Vec3, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 3:
		return mgl32.Vec3{v[0], v[1], v[2]}, nil
	default:
		return mgl32.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(v))
	}
}
