package svgview

import (
	"fmt"
	"io"
	"math"

	"itinglobe/internal/geo"

	svg "github.com/ajstarks/svgo"
	"github.com/golang/geo/r2"
)

// Element styles of the exported document
const (
	globeStyle    = "fill:#000;stroke:#000;stroke-width:0.2"
	borderStyle   = "fill:#fff;stroke:#000;stroke-width:0.35"
	waypointStyle = "fill:red"
)

// Document is a drawing backend that keeps one SVG element per primitive
// and writes them out as a standalone document. Empty paths are kept as
// elements with an empty "d" attribute, so indexes stay stable between
// passes.
type Document struct {
	width, height int
	center        r2.Point
	radius        float64
	borders       []geo.Path
	waypoints     []geo.Path
}

// NewDocument creates a document of the given pixel size
func NewDocument(width, height int) *Document {
	return &Document{
		width:  width,
		height: height,
		center: r2.Point{X: float64(width) / 2, Y: float64(height) / 2},
	}
}

// Allocate creates one element per border and waypoint
func (d *Document) Allocate(borders, waypoints int) {
	d.borders = make([]geo.Path, borders)
	d.waypoints = make([]geo.Path, waypoints)
}

// SetGlobeRadius updates the radius of the globe disc
func (d *Document) SetGlobeRadius(r float64) {
	d.radius = r
}

// SetBorderPath updates border element i
func (d *Document) SetBorderPath(i int, p geo.Path) {
	if i >= 0 && i < len(d.borders) {
		d.borders[i] = p
	}
}

// SetWaypointPath updates waypoint element i
func (d *Document) SetWaypointPath(i int, p geo.Path) {
	if i >= 0 && i < len(d.waypoints) {
		d.waypoints[i] = p
	}
}

// Render writes the document: the globe disc, then borders, then pins
func (d *Document) Render(w io.Writer) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(d.width, d.height)

	if d.radius > 0 && !math.IsInf(d.radius, 0) {
		disc := geo.Path{Circles: []geo.Circle{{Center: d.center, Radius: d.radius}}}
		canvas.Path(disc.String(), `id="globe"`, globeStyle)
	}

	canvas.Gid("borders")
	for i, p := range d.borders {
		canvas.Path(p.String(), fmt.Sprintf(`id="border-%d"`, i), borderStyle)
	}
	canvas.Gend()

	canvas.Gid("waypoints")
	for i, p := range d.waypoints {
		canvas.Path(p.String(), fmt.Sprintf(`id="waypoint-%d"`, i), waypointStyle)
	}
	canvas.Gend()

	canvas.End()
	return ew.err
}

// errWriter remembers the first write error; svgo does not report them
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
