package bench

import (
	"errors"
	"fmt"
	"math"
	"os"
	"slices"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidConfig is returned by Validate and LoadConfig for unusable settings.
	ErrInvalidConfig = errors.New("bench: invalid config")

	// ErrMismatch is returned by Run when a strategy disagrees with Naive
	// beyond Config.Tolerance.
	ErrMismatch = errors.New("bench: product mismatch")

	// ErrLeak is returned by Run when bytes are still in use after every
	// matrix of the run has been freed.
	ErrLeak = errors.New("bench: tracker not balanced after run")
)

// Fill selects how operands are populated.
type Fill string

const (
	// FillSequential sets value[i][j] = i*size + j + 1.
	FillSequential Fill = "sequential"
	// FillRandom draws uniform values in [0,1) from Config.Seed.
	FillRandom Fill = "random"
)

// Defaults mirror the original course benchmark.
const (
	DefaultSize           = 1000
	DefaultRepeat         = 3
	DefaultOutput         = "performance.txt"
	DefaultMinTileSpeedup = 1.25
	DefaultTolerance      = 1e-6
)

// DefaultTileSizes are the tile edges tried when none are configured.
var DefaultTileSizes = []int{16, 32, 64, 128}

// Config describes one benchmark run.
type Config struct {
	Size           int     `yaml:"size"`
	TileSizes      []int   `yaml:"tile_sizes"`
	Repeat         int     `yaml:"repeat"`
	Seed           int64   `yaml:"seed"`
	Fill           Fill    `yaml:"fill"`
	Output         string  `yaml:"output"`
	MinTileSpeedup float64 `yaml:"min_tile_speedup"`
	Tolerance      float64 `yaml:"tolerance"`
}

// DefaultConfig returns the configuration of the original benchmark.
func DefaultConfig() Config {
	return Config{
		Size:           DefaultSize,
		TileSizes:      slices.Clone(DefaultTileSizes),
		Repeat:         DefaultRepeat,
		Fill:           FillSequential,
		Output:         DefaultOutput,
		MinTileSpeedup: DefaultMinTileSpeedup,
		Tolerance:      DefaultTolerance,
	}
}

// LoadConfig reads a YAML file over DefaultConfig; keys absent from the file
// keep their defaults. The result is validated.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("bench: read config %q: %w", path, err)
	}
	if err = yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("bench: parse config %q: %w: %v", path, ErrInvalidConfig, err)
	}
	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks every field and normalises TileSizes (sorted, deduplicated).
func (c *Config) Validate() error {
	switch {
	case c.Size <= 0:
		return fmt.Errorf("%w: size must be > 0, got %d", ErrInvalidConfig, c.Size)
	case c.Repeat <= 0:
		return fmt.Errorf("%w: repeat must be > 0, got %d", ErrInvalidConfig, c.Repeat)
	case len(c.TileSizes) == 0:
		return fmt.Errorf("%w: at least one tile size is required", ErrInvalidConfig)
	case c.Fill != FillSequential && c.Fill != FillRandom:
		return fmt.Errorf("%w: unknown fill %q", ErrInvalidConfig, c.Fill)
	case !(c.Tolerance >= 0) || math.IsInf(c.Tolerance, 0):
		return fmt.Errorf("%w: tolerance must be finite and >= 0, got %g", ErrInvalidConfig, c.Tolerance)
	case !(c.MinTileSpeedup >= 0) || math.IsInf(c.MinTileSpeedup, 0):
		return fmt.Errorf("%w: min_tile_speedup must be finite and >= 0, got %g", ErrInvalidConfig, c.MinTileSpeedup)
	}
	if bad, found := lo.Find(c.TileSizes, func(t int) bool { return t <= 0 }); found {
		return fmt.Errorf("%w: tile size must be > 0, got %d", ErrInvalidConfig, bad)
	}
	c.TileSizes = lo.Uniq(c.TileSizes)
	slices.Sort(c.TileSizes)

	return nil
}
