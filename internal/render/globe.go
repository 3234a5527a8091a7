package render

import (
	"math"

	"itinglobe/internal/geo"

	"github.com/gdamore/tcell/v2"
	"github.com/golang/geo/r2"
)

// pinRune marks a waypoint cell
const pinRune = '●'

// GlobeRenderer is the terminal drawing backend. It keeps the latest
// primitives pushed by the render loop and rasterizes them onto a Canvas,
// one braille dot per projected pixel.
type GlobeRenderer struct {
	radius    float64
	borders   []geo.Path
	waypoints []geo.Path
}

// NewGlobeRenderer creates a new terminal globe renderer
func NewGlobeRenderer() *GlobeRenderer {
	return &GlobeRenderer{}
}

// Allocate creates one slot per border and waypoint
func (m *GlobeRenderer) Allocate(borders, waypoints int) {
	m.borders = make([]geo.Path, borders)
	m.waypoints = make([]geo.Path, waypoints)
}

// SetGlobeRadius updates the background disc radius
func (m *GlobeRenderer) SetGlobeRadius(r float64) {
	m.radius = r
}

// SetBorderPath updates the geometry of border i
func (m *GlobeRenderer) SetBorderPath(i int, p geo.Path) {
	if i >= 0 && i < len(m.borders) {
		m.borders[i] = p
	}
}

// SetWaypointPath updates the geometry of waypoint i
func (m *GlobeRenderer) SetWaypointPath(i int, p geo.Path) {
	if i >= 0 && i < len(m.waypoints) {
		m.waypoints[i] = p
	}
}

// Radius returns the current disc radius in dots
func (m *GlobeRenderer) Radius() float64 {
	return m.radius
}

// WaypointVisible reports whether waypoint i was drawn in the last pass
func (m *GlobeRenderer) WaypointVisible(i int) bool {
	return i >= 0 && i < len(m.waypoints) && !m.waypoints[i].Empty()
}

// VisibleWaypoints returns how many waypoints were drawn in the last pass
func (m *GlobeRenderer) VisibleWaypoints() int {
	n := 0
	for _, p := range m.waypoints {
		if !p.Empty() {
			n++
		}
	}
	return n
}

// Draw rasterizes the globe onto the canvas: disc, border outlines, pins
func (m *GlobeRenderer) Draw(canvas *Canvas) {
	center := r2.Point{X: float64(canvas.PixelWidth()) / 2, Y: float64(canvas.PixelHeight()) / 2}

	m.drawDisc(canvas, center)

	for _, p := range m.borders {
		for _, ring := range p.Rings {
			m.drawRing(canvas, ring, StyleBorder)
		}
	}

	for _, p := range m.waypoints {
		for _, c := range p.Circles {
			m.drawPin(canvas, c)
		}
	}
}

// drawDisc fills the cells inside the globe radius with the ocean color,
// shading toward the horizon color near the rim
func (m *GlobeRenderer) drawDisc(canvas *Canvas, center r2.Point) {
	if m.radius <= 0 {
		return
	}
	for y := 0; y < canvas.Height(); y++ {
		for x := 0; x < canvas.Width(); x++ {
			cellCenter := r2.Point{
				X: (float64(x) + 0.5) * DotsX,
				Y: (float64(y) + 0.5) * DotsY,
			}
			d := cellCenter.Sub(center).Norm() / m.radius
			if d > 1 {
				continue
			}
			t := 0.0
			if d > 0.8 {
				t = (d - 0.8) / 0.2
			}
			canvas.SetBackground(x, y, Blend(ColorOcean, ColorHorizon, t))
		}
	}
}

func (m *GlobeRenderer) drawRing(canvas *Canvas, ring []r2.Point, style tcell.Style) {
	n := len(ring)
	for i := 0; i < n; i++ {
		a := ring[i]
		b := ring[(i+1)%n]
		m.DrawLine(canvas, a, b, style)
	}
}

// drawPin marks the cell under a waypoint, keeping the cell background
func (m *GlobeRenderer) drawPin(canvas *Canvas, c geo.Circle) {
	x := int(math.Floor(c.Center.X / DotsX))
	y := int(math.Floor(c.Center.Y / DotsY))
	_, bg, _ := canvas.Get(x, y).Style.Decompose()
	canvas.Set(x, y, pinRune, StylePin.Background(bg))
}

// DrawLine implements Bresenham's line algorithm on the dot grid
func (m *GlobeRenderer) DrawLine(canvas *Canvas, from, to r2.Point, style tcell.Style) {
	w, h := float64(canvas.PixelWidth()), float64(canvas.PixelHeight())
	// Skip segments entirely off one side of the canvas
	if (from.X < 0 && to.X < 0) || (from.Y < 0 && to.Y < 0) ||
		(from.X >= w && to.X >= w) || (from.Y >= h && to.Y >= h) {
		return
	}

	x0, y0 := int(math.Round(from.X)), int(math.Round(from.Y))
	x1, y1 := int(math.Round(to.X)), int(math.Round(to.Y))

	dx := abs(x1 - x0)
	dy := abs(y1 - y0)

	sx := -1
	if x0 < x1 {
		sx = 1
	}

	sy := -1
	if y0 < y1 {
		sy = 1
	}

	err := dx - dy

	for {
		canvas.SetDot(x0, y0, style)

		if x0 == x1 && y0 == y1 {
			break
		}

		e2 := 2 * err

		if e2 > -dy {
			err -= dy
			x0 += sx
		}

		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// abs returns the absolute value of an integer
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
