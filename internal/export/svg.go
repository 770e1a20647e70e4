package export

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/san-kum/lorenz/internal/lorenz"
)

type SVGOptions struct {
	Width, Height int
	// Horizontal and Vertical select the projected axes (0=x, 1=y, 2=z).
	Horizontal, Vertical int
	Stroke               string
	Background           string
}

// DefaultSVGOptions draws the x-z projection, the butterfly view.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Width:      800,
		Height:     600,
		Horizontal: 0,
		Vertical:   2,
		Stroke:     "#00ff00",
		Background: "#0a0a0a",
	}
}

// WriteSVG draws the trajectory as a polyline. Non-finite samples break
// the line; the path resumes at the next finite sample.
func WriteSVG(w io.Writer, tr *lorenz.Trajectory, opts SVGOptions) error {
	if opts.Horizontal < 0 || opts.Horizontal > 2 || opts.Vertical < 0 || opts.Vertical > 2 {
		return fmt.Errorf("export: axis out of range: %d, %d", opts.Horizontal, opts.Vertical)
	}
	xs, ys := tr.Axes[opts.Horizontal], tr.Axes[opts.Vertical]

	lo, hi := tr.Bounds()
	minX, maxX := lo[opts.Horizontal], hi[opts.Horizontal]
	minY, maxY := lo[opts.Vertical], hi[opts.Vertical]
	if math.IsNaN(minX) || math.IsNaN(minY) {
		minX, maxX, minY, maxY = 0, 1, 0, 1
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	width, height := float64(opts.Width), float64(opts.Height)

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="`,
		opts.Width, opts.Height, opts.Width, opts.Height, opts.Background, opts.Stroke)

	penDown := false
	for i := range xs {
		if !finite(xs[i]) || !finite(ys[i]) {
			penDown = false
			continue
		}
		x := (xs[i] - minX) / rangeX * width
		y := height - (ys[i]-minY)/rangeY*height

		cmd := "L"
		if !penDown {
			cmd = "M"
			penDown = true
		}
		if i > 0 {
			bw.WriteByte(' ')
		}
		fmt.Fprintf(bw, "%s%.1f,%.1f", cmd, x, y)
	}

	bw.WriteString("\"/>\n</svg>\n")
	return bw.Flush()
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
