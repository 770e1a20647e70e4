package config

import (
	"sort"

	"github.com/san-kum/lorenz/internal/lorenz"
)

var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	"standard": {
		Solver: "rk4", Dt: 0.01, Duration: 50.0,
		InitState: InitStateConfig{X: 0, Y: 1, Z: 1.05},
		Params:    lorenz.DefaultParams(),
	},
	"precise": {
		Solver: "rk45", Tolerance: 1e-10, Dt: 0.01, Duration: 40.0,
		InitState: InitStateConfig{X: 1, Y: 1, Z: 1},
		Params:    lorenz.DefaultParams(),
	},
	"periodic": {
		Solver: "rk4", Dt: 0.005, Duration: 30.0,
		InitState: InitStateConfig{X: 1, Y: 1, Z: 1},
		Params:    lorenz.Params{Rho: 160, Sigma: 10, Beta: 8.0 / 3.0},
	},
	"transient": {
		Solver: "rk4", Dt: 0.01, Duration: 80.0,
		InitState: InitStateConfig{X: 1, Y: 1, Z: 1},
		Params:    lorenz.Params{Rho: 21, Sigma: 10, Beta: 8.0 / 3.0},
	},
	"stable": {
		Solver: "rk4", Dt: 0.01, Duration: 30.0,
		InitState: InitStateConfig{X: 1, Y: 1, Z: 1},
		Params:    lorenz.Params{Rho: 14, Sigma: 10, Beta: 8.0 / 3.0},
	},
	"origin": {
		Solver: "rk4", Dt: 0.01, Duration: 10.0,
		InitState: InitStateConfig{X: 0, Y: 0, Z: 0},
		Params:    lorenz.DefaultParams(),
	},
}

func init() {
	for _, cfg := range Presets {
		if cfg.Display.FPS == 0 {
			cfg.Display = DisplayConfig{Animate: true, FPS: DefaultFPS, Theme: "default"}
		}
	}
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
