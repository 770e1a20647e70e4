package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/lorenz/internal/analysis"
	"github.com/san-kum/lorenz/internal/config"
	"github.com/san-kum/lorenz/internal/export"
	"github.com/san-kum/lorenz/internal/lorenz"
	"github.com/san-kum/lorenz/internal/viz"
)

var (
	frameRate  int
	stride     int
	static     bool
	theme      string
	format     string
	phase      bool
	plotWidth  int
	plotHeight int
	saveConfig string
)

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ccff"))

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "integrate a trajectory and print a summary",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addRunFlags(cmd)
	cmd.Flags().StringVar(&saveConfig, "save-config", "", "write the resolved config to this yaml file")
	return cmd
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	if saveConfig != "" {
		if err := config.Save(saveConfig, cfg); err != nil {
			return err
		}
		logger.Info("saved config", "path", saveConfig)
	}

	logger.Info("running simulation", "solver", cfg.Solver, "params", cfg.Params.String(), "duration", cfg.Duration, "dt", cfg.Dt)
	start := time.Now()
	tr, err := integrate(cmd, cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	logger.Info("simulation finished", "points", tr.Len(), "elapsed", elapsed)

	out := cmd.OutOrStdout()
	viz.DetectColorProfile(out)
	fmt.Fprintln(out, titleStyle.Render("lorenz "+cfg.Params.String()))
	return printSummary(out, cfg, tr, elapsed)
}

func printSummary(out io.Writer, cfg *config.Config, tr *lorenz.Trajectory, elapsed time.Duration) error {
	env := analysis.Measure(tr)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "solver\t%s\n", cfg.Solver)
	fmt.Fprintf(w, "initial\t%v\n", cfg.GetInitState())
	fmt.Fprintf(w, "points\t%d\n", tr.Len())
	fmt.Fprintf(w, "elapsed\t%v\n", elapsed)
	if final, ok := tr.Final(); ok {
		fmt.Fprintf(w, "final\t(%.6f, %.6f, %.6f)\n", final[0], final[1], final[2])
	}
	for d, name := range []string{"x", "y", "z"} {
		fmt.Fprintf(w, "%s range\t[%.4f, %.4f]\n", name, env.Lo[d], env.Hi[d])
	}
	if env.Diverged() {
		fmt.Fprintf(w, "non-finite\t%d of %d samples\n", env.NonFinite, env.Samples)
	}
	if st := tr.Stats; st.Evaluations > 0 {
		fmt.Fprintf(w, "steps\t%d accepted, %d rejected, %d forced\n", st.Accepted, st.Rejected, st.Forced)
		fmt.Fprintf(w, "evaluations\t%d\n", st.Evaluations)
	}
	return w.Flush()
}

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "plot each axis against time",
		Args:  cobra.NoArgs,
		RunE:  plotTrajectory,
	}
	addRunFlags(cmd)
	cmd.Flags().BoolVar(&phase, "phase", false, "also draw the x-z phase portrait")
	cmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	cmd.Flags().IntVar(&plotHeight, "height", 10, "plot height")
	return cmd
}

func plotTrajectory(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	tr, err := integrate(cmd, cfg)
	if err != nil {
		return err
	}
	if tr.Len() == 0 {
		return usageError("nothing to plot: --time must be positive")
	}

	out := cmd.OutOrStdout()
	for d, name := range []string{"x", "y", "z"} {
		data := finiteOnly(tr.Axes[d])
		if len(data) == 0 {
			fmt.Fprintf(out, "%s: no finite samples\n\n", name)
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(plotHeight),
			asciigraph.Width(plotWidth),
			asciigraph.Caption(fmt.Sprintf("%s(t), t in [0, %g)", name, cfg.Duration)),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}

	if phase {
		pts, err := analysis.Project(tr, 0, 2)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "x-z phase portrait")
		fmt.Fprint(out, analysis.PhasePortrait(pts, plotWidth, plotHeight*2))
	}
	return nil
}

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "animate the trajectory in the terminal",
		Args:  cobra.NoArgs,
		RunE:  playTrajectory,
	}
	addRunFlags(cmd)
	cmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	cmd.Flags().IntVar(&stride, "stride", 4, "samples advanced per frame")
	cmd.Flags().BoolVar(&static, "static", false, "show the whole trajectory without animating")
	cmd.Flags().StringVar(&theme, "theme", "", "color theme ("+strings.Join(viz.ThemeNames(), "|")+")")
	return cmd
}

func playTrajectory(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("fps") {
		cfg.Display.FPS = frameRate
	}
	if cmd.Flags().Changed("static") {
		cfg.Display.Animate = !static
	}
	if cmd.Flags().Changed("theme") {
		cfg.Display.Theme = theme
	}

	tr, err := integrate(cmd, cfg)
	if err != nil {
		return err
	}

	viz.DetectColorProfile(os.Stdout)
	title := "LORENZ"
	if preset != "" {
		title += " · " + preset
	}
	player := viz.NewPlayer(tr, viz.PlayerOptions{
		Title:   title,
		Params:  cfg.Params,
		FPS:     cfg.Display.FPS,
		Stride:  stride,
		Animate: cfg.Display.Animate,
		Theme:   cfg.Display.Theme,
	})
	logger.Debug("starting player", "points", tr.Len(), "fps", cfg.Display.FPS, "stride", stride)
	return viz.Run(player)
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "write the trajectory to stdout as csv, json or svg",
		Args:  cobra.NoArgs,
		RunE:  exportTrajectory,
	}
	addRunFlags(cmd)
	cmd.Flags().StringVar(&format, "format", "csv", "output format (csv|json|svg)")
	return cmd
}

func exportTrajectory(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	tr, err := integrate(cmd, cfg)
	if err != nil {
		return err
	}

	meta := export.Metadata{
		Solver:   cfg.Solver,
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Initial:  cfg.GetInitState(),
		Params:   cfg.Params,
	}
	if err := export.Write(cmd.OutOrStdout(), format, meta, tr); err != nil {
		return err
	}
	logger.Info("exported trajectory", "format", format, "points", tr.Len())
	return nil
}

func finiteOnly(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}
