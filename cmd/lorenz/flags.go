package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/san-kum/lorenz/internal/config"
	"github.com/san-kum/lorenz/internal/lorenz"
)

// Shared by every command that integrates a trajectory.
var (
	initX, initY, initZ float64
	rho, sigma, beta    float64
	duration, dt        float64
	solver              string
	tolerance           float64
	configFile          string
	preset              string
)

func addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&initX, "x", config.DefaultX, "initial x")
	f.Float64Var(&initY, "y", config.DefaultY, "initial y")
	f.Float64Var(&initZ, "z", config.DefaultZ, "initial z")
	f.Float64Var(&rho, "rho", config.DefaultRho, "rho")
	f.Float64Var(&sigma, "sigma", config.DefaultSigma, "sigma")
	f.Float64Var(&beta, "beta", config.DefaultBeta, "beta")
	f.Float64Var(&duration, "time", config.DefaultDuration, "duration")
	f.Float64Var(&dt, "dt", config.DefaultDt, "sample spacing")
	f.StringVar(&solver, "solver", config.DefaultSolver, "solver (euler|rk4|rk45)")
	f.Float64Var(&tolerance, "tol", 0, "relative tolerance for rk45 (0 = default)")
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers defaults, then a preset, then a config file, then any
// flag set explicitly on the command line. Each layer only replaces the keys
// it sets.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		if err := cfg.Overlay(configFile); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	f := cmd.Flags()
	overrides := []struct {
		name string
		dst  *float64
		val  float64
	}{
		{"x", &cfg.InitState.X, initX},
		{"y", &cfg.InitState.Y, initY},
		{"z", &cfg.InitState.Z, initZ},
		{"rho", &cfg.Params.Rho, rho},
		{"sigma", &cfg.Params.Sigma, sigma},
		{"beta", &cfg.Params.Beta, beta},
		{"time", &cfg.Duration, duration},
		{"dt", &cfg.Dt, dt},
		{"tol", &cfg.Tolerance, tolerance},
	}
	for _, o := range overrides {
		if f.Changed(o.name) {
			*o.dst = o.val
		}
	}
	if f.Changed("solver") {
		cfg.Solver = solver
	}

	logger.Debug("resolved config",
		"preset", preset,
		"config", configFile,
		"solver", cfg.Solver,
		"dt", cfg.Dt,
		"duration", cfg.Duration,
		"params", cfg.Params.String(),
	)
	return cfg, nil
}

// integrate runs the configured trajectory, logging progress at debug level.
func integrate(cmd *cobra.Command, cfg *config.Config) (*lorenz.Trajectory, error) {
	opts := cfg.Options()
	every := max(int(1/cfg.Dt), 1)
	opts = append(opts, lorenz.WithObserver(func(i int, t float64, s lorenz.State) {
		if i%every == 0 {
			logger.Debug("sample", "i", i, "t", t, "x", s[0], "y", s[1], "z", s[2])
		}
	}))

	tr, err := lorenz.IntegrateContext(cmd.Context(), cfg.GetInitState(), cfg.Duration, cfg.Dt, cfg.Params, opts...)
	if err != nil {
		return nil, fmt.Errorf("integrate: %w", err)
	}
	return tr, nil
}
