package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/lorenz/internal/lorenz"
)

// Defaults match the values the desktop front end prefilled.
const (
	DefaultDt       = 0.01
	DefaultDuration = 40.0
	DefaultX        = 1.0
	DefaultY        = 1.0
	DefaultZ        = 1.0
	DefaultRho      = 28.0
	DefaultSigma    = 10.0
	DefaultBeta     = 2.666667
	DefaultSolver   = "rk4"
	DefaultFPS      = 60
)

type Config struct {
	Solver    string          `yaml:"solver"`
	Tolerance float64         `yaml:"tolerance,omitempty"`
	Dt        float64         `yaml:"dt"`
	Duration  float64         `yaml:"duration"`
	InitState InitStateConfig `yaml:"init_state"`
	Params    lorenz.Params   `yaml:"params"`
	Display   DisplayConfig   `yaml:"display"`
}

type InitStateConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// DisplayConfig controls playback. Animate selects the player over a
// static plot.
type DisplayConfig struct {
	Animate bool   `yaml:"animate"`
	FPS     int    `yaml:"fps"`
	Theme   string `yaml:"theme"`
}

func DefaultConfig() *Config {
	return &Config{
		Solver:   DefaultSolver,
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		InitState: InitStateConfig{
			X: DefaultX,
			Y: DefaultY,
			Z: DefaultZ,
		},
		Params: lorenz.Params{
			Rho:   DefaultRho,
			Sigma: DefaultSigma,
			Beta:  DefaultBeta,
		},
		Display: DisplayConfig{
			Animate: true,
			FPS:     DefaultFPS,
			Theme:   "default",
		},
	}
}

// Load reads a YAML file over the defaults, so omitted keys keep their
// default values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.Overlay(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overlay decodes the YAML file at path into c. Keys absent from the file
// leave the current values untouched.
func (c *Config) Overlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func (c *Config) GetInitState() lorenz.State {
	return lorenz.State{c.InitState.X, c.InitState.Y, c.InitState.Z}
}

func (c *Config) SetInitState(s lorenz.State) {
	c.InitState = InitStateConfig{X: s[0], Y: s[1], Z: s[2]}
}

// Options translates the solver settings into integration options.
func (c *Config) Options() []lorenz.Option {
	opts := []lorenz.Option{lorenz.WithSolver(c.Solver)}
	if c.Tolerance > 0 {
		opts = append(opts, lorenz.WithTolerance(c.Tolerance))
	}
	return opts
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
