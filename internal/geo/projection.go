package geo

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
)

// MaxTilt is the largest absolute latitude rotation a State may hold. Keeping
// the view off the exact pole keeps the rotation well conditioned.
const MaxTilt = 89.0

// State is the rotation and scale of an orthographic globe view.
// Lon, Lat and Roll are the rotation angles in degrees (d3 convention: the
// point at (-Lon, -Lat) faces the viewer). Scale is the globe radius in pixels.
type State struct {
	Lon   float64
	Lat   float64
	Roll  float64
	Scale float64
}

// Rotate returns the state rotated by the given deltas, normalized
func (s State) Rotate(dLon, dLat float64) State {
	s.Lon += dLon
	s.Lat += dLat
	return s.Normalize()
}

// Normalize wraps Lon and Roll into [-180, 180) and clamps Lat to MaxTilt
func (s State) Normalize() State {
	s.Lon = wrapDegrees(s.Lon)
	s.Roll = wrapDegrees(s.Roll)
	s.Lat = ClampTilt(s.Lat)
	return s
}

// Valid reports whether the state can be projected
func (s State) Valid() bool {
	finite := func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
	return finite(s.Lon) && finite(s.Lat) && finite(s.Roll) && finite(s.Scale) &&
		s.Scale > 0 && math.Abs(s.Lat) <= MaxTilt
}

// ClampTilt limits a latitude rotation to [-MaxTilt, MaxTilt]
func ClampTilt(lat float64) float64 {
	if math.IsNaN(lat) {
		return 0
	}
	return math.Max(-MaxTilt, math.Min(MaxTilt, lat))
}

func wrapDegrees(d float64) float64 {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0
	}
	d = math.Mod(d+180, 360)
	if d < 0 {
		d += 360
	}
	return d - 180
}

// rotator applies the three-axis rotation of a State to unit vectors.
// Lon turns about the polar axis, Lat about the y axis, Roll about the x axis
// (the viewing direction).
type rotator struct {
	cosLon, sinLon   float64
	cosLat, sinLat   float64
	cosRoll, sinRoll float64
}

func newRotator(s State) rotator {
	lon := s.Lon * math.Pi / 180.0
	lat := s.Lat * math.Pi / 180.0
	roll := s.Roll * math.Pi / 180.0
	return rotator{
		cosLon: math.Cos(lon), sinLon: math.Sin(lon),
		cosLat: math.Cos(lat), sinLat: math.Sin(lat),
		cosRoll: math.Cos(roll), sinRoll: math.Sin(roll),
	}
}

func (r rotator) rotate(v r3.Vector) r3.Vector {
	x := v.X*r.cosLon - v.Y*r.sinLon
	y := v.X*r.sinLon + v.Y*r.cosLon
	z := v.Z

	x, z = x*r.cosLat-z*r.sinLat, z*r.cosLat+x*r.sinLat
	y, z = y*r.cosRoll-z*r.sinRoll, z*r.cosRoll+y*r.sinRoll

	return r3.Vector{X: x, Y: y, Z: z}
}

// unitVector converts a coordinate to a point on the unit sphere
func unitVector(p LatLon) r3.Vector {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat, p.Lon)).Vector
}

// Rotated returns the coordinate that p is moved to by the state's rotation
func Rotated(p LatLon, s State) LatLon {
	v := newRotator(s).rotate(unitVector(p))
	ll := s2.LatLngFromPoint(s2.Point{Vector: v})
	return LatLon{Lat: ll.Lat.Degrees(), Lon: ll.Lng.Degrees()}
}

// Visible reports whether p lies on the hemisphere facing the viewer
func Visible(p LatLon, s State) bool {
	return newRotator(s).rotate(unitVector(p)).X > 0
}

// Center returns the coordinate currently facing the viewer
func (s State) Center() LatLon {
	return LatLon{Lat: -s.Lat, Lon: wrapDegrees(-s.Lon)}
}

// Projector maps geometry to screen space for a given State.
// It holds only view constants and is safe to share.
type Projector struct {
	Center    r2.Point // Pixel position of the globe center
	PinRadius float64  // On-screen radius of waypoint pins
}

// NewProjector creates a projector centered in a width x height container
func NewProjector(width, height, pinRadius float64) Projector {
	return Projector{
		Center:    r2.Point{X: width / 2, Y: height / 2},
		PinRadius: pinRadius,
	}
}

// toScreen maps a rotated unit vector to pixel coordinates
// Screen Y grows downward, so z is negated.
func (pr Projector) toScreen(v r3.Vector, scale float64) r2.Point {
	return r2.Point{
		X: pr.Center.X + scale*v.Y,
		Y: pr.Center.Y - scale*v.Z,
	}
}

// ProjectPoint projects a single coordinate to screen space, returning false
// when it is behind the globe
func (pr Projector) ProjectPoint(p LatLon, s State) (r2.Point, bool) {
	v := newRotator(s).rotate(unitVector(p))
	if v.X <= 0 {
		return r2.Point{}, false
	}
	return pr.toScreen(v, s.Scale), true
}

// ProjectWaypoint returns the pin path for a waypoint, or an empty path when
// the waypoint is on the far hemisphere
func (pr Projector) ProjectWaypoint(p LatLon, s State) Path {
	c, ok := pr.ProjectPoint(p, s)
	if !ok {
		return Path{}
	}
	return Path{Circles: []Circle{{Center: c, Radius: pr.PinRadius}}}
}

// ProjectFeature projects every ring of a border feature, clipped to the
// visible hemisphere. Rings entirely behind the globe are dropped.
func (pr Projector) ProjectFeature(f *Feature, s State) Path {
	if f == nil {
		return Path{}
	}
	rot := newRotator(s)
	var out Path
	for _, poly := range f.Polygons {
		for _, ring := range poly {
			if pts := pr.projectRing(rot, ring, s.Scale); len(pts) >= 3 {
				out.Rings = append(out.Rings, pts)
			}
		}
	}
	return out
}

// ProjectRing clips and projects one ring
func (pr Projector) ProjectRing(ring Ring, s State) []r2.Point {
	return pr.projectRing(newRotator(s), ring, s.Scale)
}

// horizonStep is the angular spacing of interpolated horizon vertices
const horizonStep = math.Pi / 36

func (pr Projector) projectRing(rot rotator, ring Ring, scale float64) []r2.Point {
	n := len(ring)
	if n > 1 && ring[0] == ring[n-1] {
		n--
	}
	if n == 0 {
		return nil
	}

	vs := make([]r3.Vector, n)
	start := -1
	for i := 0; i < n; i++ {
		vs[i] = rot.rotate(unitVector(ring[i]))
		if start < 0 && vs[i].X > 0 {
			start = i
		}
	}
	if start < 0 {
		return nil
	}

	out := make([]r2.Point, 0, n+1)
	out = append(out, pr.toScreen(vs[start], scale))

	var exit r3.Vector
	for k := 1; k <= n; k++ {
		a := vs[(start+k-1)%n]
		b := vs[(start+k)%n]
		aVis, bVis := a.X > 0, b.X > 0

		switch {
		case aVis && bVis:
			if k < n {
				out = append(out, pr.toScreen(b, scale))
			}
		case aVis && !bVis:
			exit = horizonCrossing(a, b)
			out = append(out, pr.toScreen(exit, scale))
		case !aVis && bVis:
			entry := horizonCrossing(b, a)
			out = pr.appendHorizonArc(out, exit, entry, scale)
			out = append(out, pr.toScreen(entry, scale))
			if k < n {
				out = append(out, pr.toScreen(b, scale))
			}
		}
	}
	return out
}

// horizonCrossing returns where the great circle arc from the visible vertex
// in to the hidden vertex out crosses the horizon plane x = 0
func horizonCrossing(in, out r3.Vector) r3.Vector {
	t := in.X / (in.X - out.X)
	p := in.Add(out.Sub(in).Mul(t))
	p.X = 0
	if p.Norm() == 0 {
		return r3.Vector{Y: in.Y, Z: in.Z}.Normalize()
	}
	return p.Normalize()
}

// appendHorizonArc walks the horizon circle from one crossing to the next,
// taking the shorter way round. The end point itself is not appended.
// Ring winding is not consulted: a polygon whose visible part spans more
// than half the horizon, such as a cap bounded by a parallel, is closed
// along the other side. Border loaders mix winding conventions (GeoJSON
// counterclockwise, shapefiles clockwise), so orientation cannot be trusted.
func (pr Projector) appendHorizonArc(out []r2.Point, from, to r3.Vector, scale float64) []r2.Point {
	a0 := math.Atan2(from.Z, from.Y)
	a1 := math.Atan2(to.Z, to.Y)
	delta := math.Remainder(a1-a0, 2*math.Pi)

	steps := int(math.Abs(delta) / horizonStep)
	for i := 1; i <= steps; i++ {
		a := a0 + delta*float64(i)/float64(steps+1)
		v := r3.Vector{Y: math.Cos(a), Z: math.Sin(a)}
		out = append(out, pr.toScreen(v, scale))
	}
	return out
}
