package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/lorenz/internal/config"
	"github.com/san-kum/lorenz/internal/integrators"
	"github.com/san-kum/lorenz/internal/lorenz"
)

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSOLVER\tPARAMS\tINITIAL\tDURATION\tDT")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%g\t%g\n",
					name, cfg.Solver, cfg.Params.String(), cfg.GetInitState(), cfg.Duration, cfg.Dt)
			}
			return w.Flush()
		},
	}
}

func newBenchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bench",
		Short: "benchmark each solver",
		Args:  cobra.NoArgs,
		RunE:  benchSolvers,
	}
}

func benchSolvers(cmd *cobra.Command, args []string) error {
	durations := []float64{10.0, 40.0}
	dts := []float64{0.001, 0.01}
	start := lorenz.State{1, 1, 1}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOLVER\tDURATION\tDT\tSAMPLES\tTIME\tSAMPLES/SEC\tACCEPTED\tREJECTED")

	for _, name := range integrators.Names() {
		for _, dur := range durations {
			for _, step := range dts {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				began := time.Now()
				tr, err := lorenz.IntegrateContext(cmd.Context(), start, dur, step, lorenz.DefaultParams(), lorenz.WithSolver(name))
				if err != nil {
					return err
				}
				elapsed := time.Since(began)

				accepted, rejected := "-", "-"
				if tr.Stats.Evaluations > 0 {
					accepted = strconv.Itoa(tr.Stats.Accepted)
					rejected = strconv.Itoa(tr.Stats.Rejected)
				}
				fmt.Fprintf(w, "%s\t%.0f\t%g\t%d\t%v\t%.0f\t%s\t%s\n",
					name, dur, step, tr.Len(), elapsed.Round(time.Microsecond), float64(tr.Len())/elapsed.Seconds(),
					accepted, rejected)
			}
		}
	}
	return w.Flush()
}
