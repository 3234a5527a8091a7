package globe

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidScale is returned for NaN, infinite or non-positive scales
var ErrInvalidScale = errors.New("scale must be a positive finite number")

// ScaleControl holds the bounds of the scale control
type ScaleControl struct {
	Min float64
	Max float64
}

// Validate checks that the bounds form a finite, positive range
func (c ScaleControl) Validate() error {
	if !finite(c.Min) || !finite(c.Max) || !(c.Min > 0) || !(c.Max >= c.Min) {
		return fmt.Errorf("invalid scale bounds [%v, %v]", c.Min, c.Max)
	}
	return nil
}

// Clamp validates v and limits it to [Min, Max]
func (c ScaleControl) Clamp(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidScale, v)
	}
	return math.Max(c.Min, math.Min(c.Max, v)), nil
}

// Step multiplies v by factor (zoom in for factor > 1) and clamps the result
func (c ScaleControl) Step(v, factor float64) float64 {
	next, err := c.Clamp(v * factor)
	if err != nil {
		return v
	}
	return next
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ScaleDisplay is an external control showing the current scale value,
// such as a slider. ResetScale keeps it in sync.
type ScaleDisplay interface {
	ShowScale(v float64)
}
