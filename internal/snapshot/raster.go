package snapshot

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"itinglobe/internal/geo"

	"github.com/golang/geo/r2"
	"golang.org/x/image/vector"
)

// circleSegments is the number of edges used to approximate a circle
const circleSegments = 24

// outlineWidth is the border stroke width in pixels
const outlineWidth = 0.7

// Palette of the raster snapshot, matching the SVG export
var (
	colorBackground = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorGlobe      = color.RGBA{A: 0xff}
	colorLand       = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorOutline    = color.RGBA{A: 0xff}
	colorPin        = color.RGBA{R: 0xff, A: 0xff}
)

// Raster is a drawing backend that rasterizes the globe into an RGBA image
type Raster struct {
	width, height int
	radius        float64
	borders       []geo.Path
	waypoints     []geo.Path
}

// NewRaster creates a raster backend of the given pixel size
func NewRaster(width, height int) *Raster {
	return &Raster{width: width, height: height}
}

// Allocate creates one slot per border and waypoint
func (r *Raster) Allocate(borders, waypoints int) {
	r.borders = make([]geo.Path, borders)
	r.waypoints = make([]geo.Path, waypoints)
}

// SetGlobeRadius updates the globe disc radius
func (r *Raster) SetGlobeRadius(radius float64) {
	r.radius = radius
}

// SetBorderPath updates border i
func (r *Raster) SetBorderPath(i int, p geo.Path) {
	if i >= 0 && i < len(r.borders) {
		r.borders[i] = p
	}
}

// SetWaypointPath updates waypoint i
func (r *Raster) SetWaypointPath(i int, p geo.Path) {
	if i >= 0 && i < len(r.waypoints) {
		r.waypoints[i] = p
	}
}

// Image rasterizes the current primitives: disc, filled and outlined
// borders, then pins
func (r *Raster) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)
	if r.width <= 0 || r.height <= 0 {
		return img
	}

	center := r2.Point{X: float64(r.width) / 2, Y: float64(r.height) / 2}
	if r.radius > 0 && !math.IsInf(r.radius, 0) {
		z := vector.NewRasterizer(r.width, r.height)
		addCircle(z, geo.Circle{Center: center, Radius: r.radius})
		fill(img, z, colorGlobe)
	}

	for _, p := range r.borders {
		if p.Empty() {
			continue
		}
		z := vector.NewRasterizer(r.width, r.height)
		for _, ring := range p.Rings {
			addRing(z, ring)
		}
		fill(img, z, colorLand)

		z.Reset(r.width, r.height)
		for _, ring := range p.Rings {
			for i := range ring {
				addSegment(z, ring[i], ring[(i+1)%len(ring)], outlineWidth)
			}
		}
		fill(img, z, colorOutline)
	}

	for _, p := range r.waypoints {
		if len(p.Circles) == 0 {
			continue
		}
		z := vector.NewRasterizer(r.width, r.height)
		for _, c := range p.Circles {
			addCircle(z, c)
		}
		fill(img, z, colorPin)
	}

	return img
}

func fill(img *image.RGBA, z *vector.Rasterizer, c color.RGBA) {
	z.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
}

func addRing(z *vector.Rasterizer, ring []r2.Point) {
	if len(ring) < 3 {
		return
	}
	z.MoveTo(float32(ring[0].X), float32(ring[0].Y))
	for _, pt := range ring[1:] {
		z.LineTo(float32(pt.X), float32(pt.Y))
	}
	z.ClosePath()
}

// addCircle adds a regular polygon approximating c
func addCircle(z *vector.Rasterizer, c geo.Circle) {
	ring := make([]r2.Point, circleSegments)
	for i := range ring {
		a := 2 * math.Pi * float64(i) / circleSegments
		ring[i] = r2.Point{
			X: c.Center.X + c.Radius*math.Cos(a),
			Y: c.Center.Y + c.Radius*math.Sin(a),
		}
	}
	addRing(z, ring)
}

// addSegment adds the rectangle covering a stroke of width w from a to b
func addSegment(z *vector.Rasterizer, a, b r2.Point, w float64) {
	d := b.Sub(a)
	n := d.Norm()
	if n == 0 {
		return
	}
	off := d.Ortho().Mul(w / 2 / n)
	addRing(z, []r2.Point{a.Add(off), b.Add(off), b.Sub(off), a.Sub(off)})
}
