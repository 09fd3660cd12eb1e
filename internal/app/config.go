package app

import (
	"errors"
	"flag"
	"fmt"
	"runtime"
	"strconv"

	"lifesim/internal/control"
	"lifesim/internal/core"
	"lifesim/internal/sims/life"
)

var (
	// ErrBadSize is returned for non-positive grid dimensions.
	ErrBadSize = errors.New("app: grid dimensions must be positive")
	// ErrBadDensity is returned for densities outside [0,1].
	ErrBadDensity = errors.New("app: density must be within [0,1]")
)

// Config represents the command-line parameters for the application.
type Config struct {
	Store   string
	Width   int
	Height  int
	Seed    int64
	Density float64
	Level   int
	Rule    string
	Workers int
	TPS     int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Store:   "grid",
		Width:   160,
		Height:  100,
		Seed:    42,
		Density: 0.5,
		Level:   1,
		Rule:    "life",
		Workers: runtime.NumCPU(),
		TPS:     60,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Store, "store", c.Store, "cell storage backend")
	fs.IntVar(&c.Width, "cols", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "rows", c.Height, "grid height in cells")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the initial random fill")
	fs.Float64Var(&c.Density, "density", c.Density, "fraction of cells alive at start")
	fs.IntVar(&c.Level, "speed", c.Level, "initial speed level (0 = unlimited, 1 = lockstep, 2.. = limited)")
	fs.StringVar(&c.Rule, "rule", c.Rule, "rule name or B/S notation")
	fs.IntVar(&c.Workers, "workers", c.Workers, "goroutines used per tick")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")
}

// FromMap returns the defaults overridden by flag-style key/value pairs.
// Unparseable values keep the default.
func FromMap(cfg map[string]string) *Config {
	c := NewConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["store"]; ok && v != "" {
		c.Store = v
	}
	if v, ok := cfg["cols"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["rows"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Density = parsed
		}
	}
	if v, ok := cfg["speed"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed < len(control.Levels) {
			c.Level = parsed
		}
	}
	if v, ok := cfg["rule"]; ok && v != "" {
		c.Rule = v
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Workers = parsed
		}
	}
	if v, ok := cfg["tps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.TPS = parsed
		}
	}
	return c
}

// Size returns the configured grid size.
func (c *Config) Size() core.Size { return core.Size{W: c.Width, H: c.Height} }

// Validate checks the configuration and resolves its rule.
func (c *Config) Validate() (life.Rule, error) {
	if c.Width <= 0 || c.Height <= 0 {
		return life.Rule{}, fmt.Errorf("%w: %dx%d", ErrBadSize, c.Width, c.Height)
	}
	if c.Density < 0 || c.Density > 1 {
		return life.Rule{}, fmt.Errorf("%w: %v", ErrBadDensity, c.Density)
	}
	if _, ok := core.Stores()[c.Store]; !ok {
		return life.Rule{}, fmt.Errorf("app: unknown store %q (have %v)", c.Store, core.StoreNames())
	}
	rule, err := life.LookupRule(c.Rule)
	if err != nil {
		return life.Rule{}, fmt.Errorf("app: rule %q: %w", c.Rule, err)
	}
	return rule, nil
}
