package geo

// LatLon represents a geographic coordinate in degrees
type LatLon struct {
	Lat float64
	Lon float64
}

// Valid reports whether the coordinate lies within [-90,90] x [-180,180]
func (p LatLon) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// Ring is a closed sequence of coordinates. The closing vertex may or may not
// repeat the first one.
type Ring []LatLon

// Polygon is an outer ring followed by zero or more holes
type Polygon []Ring

// Feature represents a country border (polygon or multipolygon)
type Feature struct {
	Name     string    // Label from the source dataset, may be empty
	Polygons []Polygon // One entry per polygon of a multipolygon
}

// NewFeature creates a new border feature
func NewFeature(name string, polygons []Polygon) *Feature {
	return &Feature{
		Name:     name,
		Polygons: polygons,
	}
}

// NumVertices returns the total vertex count across all rings
func (f *Feature) NumVertices() int {
	n := 0
	for _, poly := range f.Polygons {
		for _, ring := range poly {
			n += len(ring)
		}
	}
	return n
}

// Waypoint is one stop of the itinerary
type Waypoint struct {
	LatLon
	Date string // YYYY-MM-DD, empty if the source had none
}

// Dataset holds everything the globe draws. It is loaded once and never
// mutated afterwards.
type Dataset struct {
	Borders   []*Feature
	Waypoints []Waypoint
}
