package viz

import (
	"math"

	"github.com/san-kum/lorenz/internal/lorenz"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Camera projects phase-space points onto the canvas. Fit centers the
// attractor and scales it into the unit cube; the view distance is fixed.
type Camera struct {
	Distance   float64
	RotX, RotY float64
	Zoom       float64

	center Vec3
	unit   float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 5, RotX: -0.35, Zoom: 1.0, unit: 1}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// Fit frames the box [lo, hi]. Axes with NaN bounds are left uncentered.
func (c *Camera) Fit(lo, hi lorenz.State) {
	var center lorenz.State
	span := 0.0
	for d := range lo {
		if math.IsNaN(lo[d]) || math.IsNaN(hi[d]) {
			continue
		}
		center[d] = (lo[d] + hi[d]) / 2
		span = math.Max(span, hi[d]-lo[d])
	}
	c.center = world(center)
	c.unit = 1
	if span > 0 {
		c.unit = 2 / span
	}
}

// world maps (x, y, z) to screen-oriented axes with z pointing up.
func world(s lorenz.State) Vec3 { return Vec3{s[0], s[2], s[1]} }

func (c *Camera) rotate(p Vec3) Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	return p
}

// Project maps s to dot coordinates on a sw by sh surface. The bool is false
// when the point is behind the viewer or off the surface.
func (c *Camera) Project(s lorenz.State, sw, sh int) (int, int, bool) {
	p := c.rotate(world(s).Sub(c.center).Scale(c.unit * c.Zoom))
	if p.Z >= c.Distance-0.1 {
		return 0, 0, false
	}
	scale := c.Distance / (c.Distance - p.Z)
	pScale := float64(min(sw, sh)) / 3.0
	sx := int(p.X*scale*pScale) + sw/2
	sy := int(-p.Y*scale*pScale) + sh/2
	return sx, sy, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

// RenderTrajectory draws samples [0, n) of tr as connected segments and
// returns the number of samples plotted. Non-finite samples are skipped and
// break the line.
func RenderTrajectory(c *Canvas, tr *lorenz.Trajectory, n int, cam *Camera) int {
	if c == nil || tr == nil || cam == nil {
		return 0
	}
	n = min(n, tr.Len())
	sw, sh := c.Dots()

	drawn := 0
	havePrev := false
	var px, py int
	for i := 0; i < n; i++ {
		s := tr.At(i)
		if !s.IsFinite() {
			havePrev = false
			continue
		}
		x, y, ok := cam.Project(s, sw, sh)
		if !ok {
			havePrev = false
			continue
		}
		if havePrev {
			c.DrawLine(px, py, x, y)
		} else {
			c.Set(x, y)
		}
		px, py, havePrev = x, y, true
		drawn++
	}
	return drawn
}
