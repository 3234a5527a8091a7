package globe

import (
	"itinglobe/internal/geo"
)

// Backend receives drawing updates. Allocate is called once with the number
// of primitives; afterwards every pass updates those primitives in place.
// Indexes match the order of Dataset.Borders and Dataset.Waypoints.
type Backend interface {
	Allocate(borders, waypoints int)
	SetGlobeRadius(r float64)
	SetBorderPath(i int, p geo.Path)
	SetWaypointPath(i int, p geo.Path)
}

// Render performs one full redraw pass. s is taken by value, so the whole
// pass sees a single snapshot of the state.
func Render(s geo.State, data *geo.Dataset, pr geo.Projector, b Backend) {
	b.SetGlobeRadius(s.Scale)
	if data == nil {
		return
	}

	for i, f := range data.Borders {
		b.SetBorderPath(i, pr.ProjectFeature(f, s))
	}

	for i, wp := range data.Waypoints {
		b.SetWaypointPath(i, pr.ProjectWaypoint(wp.LatLon, s))
	}
}

// Draw allocates primitives on b and renders s into it. It is used for
// one-off exports of a state into a fresh backend.
func Draw(s geo.State, data *geo.Dataset, pr geo.Projector, b Backend) {
	allocate(data, b)
	Render(s, data, pr, b)
}

func allocate(data *geo.Dataset, b Backend) {
	if data == nil {
		b.Allocate(0, 0)
		return
	}
	b.Allocate(len(data.Borders), len(data.Waypoints))
}
