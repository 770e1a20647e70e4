package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/lorenz/internal/lorenz"
)

// Point2 is a sample projected onto two axes.
type Point2 struct{ X, Y float64 }

// Project pairs axes a and b (0=x, 1=y, 2=z) of tr, skipping samples where
// either value is non-finite.
func Project(tr *lorenz.Trajectory, a, b int) ([]Point2, error) {
	if a < 0 || a > 2 || b < 0 || b > 2 {
		return nil, fmt.Errorf("analysis: axis out of range: %d, %d", a, b)
	}
	pts := make([]Point2, 0, tr.Len())
	for i := 0; i < tr.Len(); i++ {
		x, y := tr.Axes[a][i], tr.Axes[b][i]
		if !finite(x) || !finite(y) {
			continue
		}
		pts = append(pts, Point2{x, y})
	}
	return pts, nil
}

// PhasePortrait renders points as an ASCII scatter of width by height cells,
// with the zero axes drawn where they cross the view.
func PhasePortrait(points []Point2, width, height int) string {
	if len(points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.05
	minY -= rangeY * 0.05
	rangeX *= 1.1
	rangeY *= 1.1

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	if minX <= 0 && minX+rangeX >= 0 {
		col := int(-minX / rangeX * float64(width-1))
		for row := range grid {
			grid[row][col] = '│'
		}
	}
	if minY <= 0 && minY+rangeY >= 0 {
		row := height - 1 - int(-minY/rangeY*float64(height-1))
		for col := range grid[row] {
			if grid[row][col] == '│' {
				grid[row][col] = '┼'
			} else {
				grid[row][col] = '─'
			}
		}
	}

	for _, p := range points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			grid[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// PoincareSection records where tr crosses axis cross = threshold in the
// increasing direction, linearly interpolating axes a and b to the crossing.
func PoincareSection(tr *lorenz.Trajectory, cross int, threshold float64, a, b int) ([]Point2, error) {
	if cross < 0 || cross > 2 {
		return nil, fmt.Errorf("analysis: axis out of range: %d", cross)
	}
	if _, err := Project(tr, a, b); err != nil {
		return nil, err
	}

	var pts []Point2
	c := tr.Axes[cross]
	for i := 1; i < len(c); i++ {
		prev, cur := c[i-1], c[i]
		if !(prev < threshold && cur >= threshold) {
			continue
		}
		frac := (threshold - prev) / (cur - prev)
		p := Point2{
			X: lerp(tr.Axes[a][i-1], tr.Axes[a][i], frac),
			Y: lerp(tr.Axes[b][i-1], tr.Axes[b][i], frac),
		}
		if finite(p.X) && finite(p.Y) {
			pts = append(pts, p)
		}
	}
	return pts, nil
}

func lerp(a, b, f float64) float64 { return a + (b-a)*f }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
