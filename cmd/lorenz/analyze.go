package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/lorenz/internal/analysis"
	"github.com/san-kum/lorenz/internal/lorenz"
)

var (
	sweepParam   string
	sweepFrom    float64
	sweepTo      float64
	sweepSteps   int
	parallelism  int
	perturbation float64
	axisName     string

	rhoFrom, rhoTo  float64
	rhoSteps        int
	transient       float64
	bifurcationCols int
	bifurcationRows int
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "integrate over a range of one parameter in parallel",
		Args:  cobra.NoArgs,
		RunE:  sweepParams,
	}
	addRunFlags(cmd)
	cmd.Flags().StringVar(&sweepParam, "param", "rho", "parameter to sweep ("+strings.Join(lorenz.ParamNames, "|")+")")
	cmd.Flags().Float64Var(&sweepFrom, "from", 0.5, "first value")
	cmd.Flags().Float64Var(&sweepTo, "to", 30, "last value")
	cmd.Flags().IntVar(&sweepSteps, "steps", 8, "number of values")
	cmd.Flags().IntVar(&parallelism, "parallel", 0, "concurrent runs (0 = GOMAXPROCS)")
	return cmd
}

func linspace(from, to float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = from
		if n > 1 {
			out[i] += float64(i) * (to - from) / float64(n-1)
		}
	}
	return out
}

func sweepParams(cmd *cobra.Command, args []string) error {
	if sweepSteps < 1 {
		return usageError("--steps must be at least 1")
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	values := linspace(sweepFrom, sweepTo, sweepSteps)
	sets := make([]lorenz.Params, len(values))
	for i, v := range values {
		if sets[i], err = cfg.Params.With(sweepParam, v); err != nil {
			return err
		}
	}

	logger.Info("sweeping", "param", sweepParam, "from", sweepFrom, "to", sweepTo, "steps", sweepSteps)
	opts := append(cfg.Options(), lorenz.WithParallelism(parallelism))
	trs, err := lorenz.Sweep(cmd.Context(), cfg.GetInitState(), cfg.Duration, cfg.Dt, sets, opts...)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tX RANGE\tZ RANGE\tFINAL\tNON-FINITE\n", sweepParam)
	for i, tr := range trs {
		env := analysis.Measure(tr)
		final, _ := tr.Final()
		fmt.Fprintf(w, "%.4g\t[%.2f, %.2f]\t[%.2f, %.2f]\t(%.3f, %.3f, %.3f)\t%d\n",
			values[i], env.Lo[0], env.Hi[0], env.Lo[2], env.Hi[2], final[0], final[1], final[2], env.NonFinite)
	}
	return w.Flush()
}

func newLyapunovCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lyapunov",
		Short: "estimate the largest Lyapunov exponent",
		Args:  cobra.NoArgs,
		RunE:  estimateLyapunov,
	}
	addRunFlags(cmd)
	cmd.Flags().Float64Var(&perturbation, "perturb", 1e-8, "initial separation")
	return cmd
}

func estimateLyapunov(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logger.Info("estimating lyapunov exponent", "solver", cfg.Solver, "duration", cfg.Duration, "dt", cfg.Dt)
	lambda, err := analysis.LyapunovExponent(cmd.Context(), cfg.GetInitState(), cfg.Params, cfg.Dt, cfg.Duration, perturbation, cfg.Options()...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "largest lyapunov exponent: %.4f\n", lambda)
	switch {
	case lambda > 0.01:
		fmt.Fprintf(out, "chaotic (predictability horizon ~%.1f time units)\n", 1/lambda)
	case lambda < -0.01:
		fmt.Fprintln(out, "stable: trajectories converge")
	default:
		fmt.Fprintln(out, "marginal: periodic or quasi-periodic")
	}
	return nil
}

func axisIndex(name string) (int, error) {
	switch name {
	case "x":
		return 0, nil
	case "y":
		return 1, nil
	case "z":
		return 2, nil
	}
	return 0, usageError("unknown axis %q (want x, y or z)", name)
}

func newSpectrumCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spectrum",
		Short: "frequency analysis of one axis",
		Args:  cobra.NoArgs,
		RunE:  analyzeSpectrum,
	}
	addRunFlags(cmd)
	cmd.Flags().StringVar(&axisName, "axis", "x", "axis to analyze (x|y|z)")
	return cmd
}

func analyzeSpectrum(cmd *cobra.Command, args []string) error {
	axis, err := axisIndex(axisName)
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	tr, err := integrate(cmd, cfg)
	if err != nil {
		return err
	}

	series := tr.Axes[axis]
	ps := analysis.PowerSpectrum(series)
	if len(ps) < 2 {
		return fmt.Errorf("spectrum: need at least two finite samples on %s", axisName)
	}

	out := cmd.OutOrStdout()
	plotData := ps[:max(len(ps)/4, 2)]
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (%s)", axisName)),
	)
	fmt.Fprintln(out, graph)
	fmt.Fprintln(out)

	freq, mag := analysis.DominantFrequency(series, cfg.Dt)
	fmt.Fprintf(out, "dominant frequency: %.4f (magnitude %.2f)\n", freq, mag)
	if freq > 0 {
		fmt.Fprintf(out, "period: %.4f\n", 1/freq)
	}
	return nil
}

func newBifurcationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bifurcation",
		Short: "plot z maxima against rho",
		Args:  cobra.NoArgs,
		RunE:  bifurcationDiagram,
	}
	addRunFlags(cmd)
	cmd.Flags().Float64Var(&rhoFrom, "from", 1, "first rho")
	cmd.Flags().Float64Var(&rhoTo, "to", 200, "last rho")
	cmd.Flags().IntVar(&rhoSteps, "steps", 80, "number of rho values")
	cmd.Flags().Float64Var(&transient, "transient", 20, "time discarded before recording")
	cmd.Flags().IntVar(&bifurcationCols, "width", 80, "plot width")
	cmd.Flags().IntVar(&bifurcationRows, "height", 24, "plot height")
	return cmd
}

func bifurcationDiagram(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	spec := analysis.BifurcationSpec{
		Base:      cfg.Params,
		RhoMin:    rhoFrom,
		RhoMax:    rhoTo,
		Steps:     rhoSteps,
		Initial:   cfg.GetInitState(),
		Dt:        cfg.Dt,
		Transient: transient,
		Record:    cfg.Duration,
	}
	points, err := analysis.Bifurcation(cmd.Context(), spec, cfg.Options()...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "z maxima for rho in [%g, %g]\n", rhoFrom, rhoTo)
	fmt.Fprint(out, analysis.BifurcationToASCII(points, bifurcationCols, bifurcationRows))
	return nil
}
