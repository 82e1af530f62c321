package flatqa

import (
	"fmt"
	"math"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// SplitKind selects which train/test distribution shift a run uses.
type SplitKind string

// Supported split kinds.
const (
	// SplitNone places no restriction on (shape, color) pairs.
	SplitNone SplitKind = "none"
	// SplitCoGenT assigns disjoint color sets to squares and triangles,
	// swapped between training and evaluation.
	SplitCoGenT SplitKind = "CoGenT"
	// SplitDiagonal withholds pairs whose shape and color share the same
	// canonical index from training.
	SplitDiagonal SplitKind = "diagonal"
	// SplitLeaveOneOut withholds a single designated pair from training.
	SplitLeaveOneOut SplitKind = "leave1out"
)

// Config carries every knob of a dataset generation run. It replaces any
// implicit global state: each component receives the configuration it
// needs explicitly.
type Config struct {
	// TrainExamples, ValExamples, and TestExamples are the number of
	// examples per split.
	TrainExamples int `yaml:"train" validate:"gte=0"`
	ValExamples   int `yaml:"val" validate:"gte=0"`
	TestExamples  int `yaml:"test" validate:"gte=0"`

	// NumShapes and NumColors select prefixes of the canonical Shapes and
	// Colors lists as the active universe.
	NumShapes int `yaml:"num_shapes" validate:"gte=1"`
	NumColors int `yaml:"num_colors" validate:"gte=1"`

	// NumObjects is the number of objects placed in every scene.
	NumObjects int `yaml:"num_objects" validate:"gte=1"`

	// ImageSize is the side of the square canvas in pixels.
	ImageSize int `yaml:"image_size" validate:"gte=1"`

	// MinObjectSize and MaxObjectSize bound the base object dimension.
	MinObjectSize int `yaml:"min_obj_size" validate:"gte=1"`
	MaxObjectSize int `yaml:"max_obj_size" validate:"gte=1"`

	// Rotate enables random object rotation in [0, 360) degrees.
	Rotate bool `yaml:"rotate"`

	// Split selects the admissibility policy family.
	Split SplitKind `yaml:"split" validate:"oneof=none CoGenT diagonal leave1out"`

	// RestrictScene, for the leave-one-out split, also keeps the held-out
	// pair out of generated training scenes rather than only out of
	// training questions.
	RestrictScene bool `yaml:"restrict_scene"`

	// TrainSeed, ValSeed, and TestSeed seed the per-split random streams.
	TrainSeed int64 `yaml:"train_seed"`
	ValSeed   int64 `yaml:"val_seed"`
	TestSeed  int64 `yaml:"test_seed"`
}

// DefaultConfig returns the configuration used when no overrides are given:
// 1000/100/100 examples, the full shape and color universes, five objects
// per scene on a 64-pixel canvas, object sizes 10..15, rotation enabled,
// no split restriction, and per-split seeds 1/2/3.
func DefaultConfig() Config {
	return Config{
		TrainExamples: 1000,
		ValExamples:   100,
		TestExamples:  100,
		NumShapes:     len(Shapes),
		NumColors:     len(Colors),
		NumObjects:    5,
		ImageSize:     64,
		MinObjectSize: 10,
		MaxObjectSize: 15,
		Rotate:        true,
		Split:         SplitNone,
		RestrictScene: true,
		TrainSeed:     1,
		ValSeed:       2,
		TestSeed:      3,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration and returns an error wrapping
// ErrInvalidConfig describing the first violation found. Beyond the tag
// rules it enforces the cross-field constraints: the size range must be
// ordered, the universes must fit the canonical lists, and the worst-case
// rotated object must leave a non-empty center range on the canvas.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.MaxObjectSize < c.MinObjectSize {
		return fmt.Errorf("%w: max_obj_size %d < min_obj_size %d",
			ErrInvalidConfig, c.MaxObjectSize, c.MinObjectSize)
	}
	if c.NumShapes > len(Shapes) {
		return fmt.Errorf("%w: num_shapes %d exceeds %d available shapes",
			ErrInvalidConfig, c.NumShapes, len(Shapes))
	}
	if c.NumColors > len(Colors) {
		return fmt.Errorf("%w: num_colors %d exceeds %d available colors",
			ErrInvalidConfig, c.NumColors, len(Colors))
	}
	worst := c.MaxObjectSize
	if c.Rotate {
		// A 45-degree rotation maximizes the bounding square.
		worst = int(math.Ceil(float64(c.MaxObjectSize) * math.Sqrt2))
	}
	if c.ImageSize-worst/2-1 < worst/2+1 {
		return fmt.Errorf("%w: image_size %d cannot fit an object of rotated size %d",
			ErrInvalidConfig, c.ImageSize, worst)
	}
	return nil
}

// ShapeUniverse returns the active shapes for this run.
func (c Config) ShapeUniverse() []Shape {
	return Shapes[:c.NumShapes]
}

// ColorUniverse returns the active colors for this run.
func (c Config) ColorUniverse() []Color {
	return Colors[:c.NumColors]
}

// LoadConfig reads a YAML configuration file on top of DefaultConfig.
// Fields absent from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return cfg, fmt.Errorf("flatqa: read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Save writes the effective configuration as YAML, so a dataset directory
// records exactly how it was produced.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
