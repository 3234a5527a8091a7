package globe

import (
	"itinglobe/internal/geo"
)

// DefaultSensitivity converts pixels to degrees at scale 1
const DefaultSensitivity = 75.0

// Gesture turns pointer drag deltas into rotation
type Gesture struct {
	Sensitivity float64
}

// Factor returns the degrees-per-pixel factor for a given state. Dividing by
// scale keeps the apparent rotation per pixel constant across zoom levels.
func (g Gesture) Factor(s geo.State) float64 {
	return g.Sensitivity / s.Scale
}

// Apply returns the state after a drag of (dx, dy) pixels. Dragging right
// turns longitude forward; dragging down tilts the visible pole away.
// Latitude is clamped away from the poles.
func (g Gesture) Apply(dx, dy float64, s geo.State) geo.State {
	k := g.Factor(s)
	return s.Rotate(dx*k, -dy*k)
}

// Spin returns the state after one auto-rotation step: longitude decreases
// by the same factor a one-pixel drag would apply
func (g Gesture) Spin(s geo.State) geo.State {
	return s.Rotate(-g.Factor(s), 0)
}
