package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/milk9111/anim8/anim"
	"gopkg.in/yaml.v3"
)

// SheetSpec declares one sprite sheet and the animations cut from it.
type SheetSpec struct {
	Name       string                   `yaml:"name"`
	Image      string                   `yaml:"image"`
	Grid       GridSpec                 `yaml:"grid"`
	Tint       *YAMLColor               `yaml:"tint"`
	Animations map[string]AnimationSpec `yaml:"animations"`
}

type GridSpec struct {
	FrameW int `yaml:"frame_w"`
	FrameH int `yaml:"frame_h"`
	SheetW int `yaml:"sheet_w"`
	SheetH int `yaml:"sheet_h"`
	Left   int `yaml:"left"`
	Top    int `yaml:"top"`
	Border int `yaml:"border"`
}

type AnimationSpec struct {
	// Frames holds column/row selector pairs, e.g. ["1-3", 1, 2, 1].
	Frames    []any        `yaml:"frames"`
	Durations DurationSpec `yaml:"durations"`
	OnLoop    string       `yaml:"on_loop"`
	FlipH     bool         `yaml:"flip_h"`
	FlipV     bool         `yaml:"flip_v"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadSheetSpec loads a sheet spec from prefabs/ on disk or the embedded copy.
func LoadSheetSpec(filename string) (*SheetSpec, error) {
	spec, err := LoadSpec[SheetSpec](filename)
	if err != nil {
		return nil, err
	}
	if spec.Name == "" {
		spec.Name = strings.TrimSuffix(cleanPrefabPath(filename), ".yaml")
	}
	return &spec, nil
}

// ParseSheetSpec decodes a sheet spec from raw YAML.
func ParseSheetSpec(data []byte) (*SheetSpec, error) {
	var spec SheetSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal sheet: %w", err)
	}
	return &spec, nil
}

// DurationSpec accepts a single duration, a list of per-frame durations or
// a map from frame selectors to durations. Plain numbers are seconds;
// strings use time.ParseDuration syntax ("150ms").
type DurationSpec struct {
	Uniform  time.Duration
	PerFrame []time.Duration
	Ranged   map[string]time.Duration
	set      bool
}

func (d *DurationSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		v, err := parseDuration(value.Value)
		if err != nil {
			return err
		}
		*d = DurationSpec{Uniform: v, set: true}
	case yaml.SequenceNode:
		out := make([]time.Duration, 0, len(value.Content))
		for _, n := range value.Content {
			if n.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: duration list entries must be scalars", n.Line)
			}
			v, err := parseDuration(n.Value)
			if err != nil {
				return err
			}
			out = append(out, v)
		}
		*d = DurationSpec{PerFrame: out, set: true}
	case yaml.MappingNode:
		out := make(map[string]time.Duration, len(value.Content)/2)
		for i := 0; i+1 < len(value.Content); i += 2 {
			key, val := value.Content[i], value.Content[i+1]
			v, err := parseDuration(val.Value)
			if err != nil {
				return err
			}
			out[key.Value] = v
		}
		*d = DurationSpec{Ranged: out, set: true}
	default:
		return fmt.Errorf("line %d: durations must be a number, list or map", value.Line)
	}
	return nil
}

// Durations converts the spec into the form anim.NewAnimation expects.
func (d DurationSpec) Durations() (anim.Durations, error) {
	switch {
	case !d.set:
		return nil, fmt.Errorf("missing durations")
	case d.PerFrame != nil:
		return anim.PerFrame(d.PerFrame), nil
	case d.Ranged != nil:
		return anim.Ranged(d.Ranged), nil
	default:
		return anim.Uniform(d.Uniform), nil
	}
}

// maxDurationSeconds keeps the float to time.Duration conversion inside int64.
const maxDurationSeconds = float64(math.MaxInt64/int64(time.Second)) - 1

func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.ParseFloat(s, 64); err == nil || errors.Is(err, strconv.ErrRange) {
		if math.IsNaN(secs) || math.Abs(secs) > maxDurationSeconds {
			return 0, fmt.Errorf("duration %q out of range", s)
		}
		return time.Duration(math.Round(secs * float64(time.Second))), nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return v, nil
}

// YAMLColor is a "#rrggbb" or "#rrggbbaa" color.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(strings.TrimSpace(value.Value), "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	rgb, err := colorful.Hex("#" + s[:6])
	if err != nil {
		return fmt.Errorf("invalid color %s: %w", value.Value, err)
	}

	a := uint8(255)
	if len(s) == 8 {
		v, err := strconv.ParseUint(s[6:], 16, 8)
		if err != nil {
			return fmt.Errorf("invalid alpha in %s: %w", value.Value, err)
		}
		a = uint8(v)
	}

	r, g, b := rgb.RGB255()
	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
