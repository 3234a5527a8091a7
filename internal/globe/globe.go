package globe

import (
	"context"
	"fmt"
	"math"
	"time"

	"itinglobe/internal/debug"
	"itinglobe/internal/geo"
)

// Options configures a Globe
type Options struct {
	Sensitivity float64       // Degrees per pixel at scale 1 (default 75)
	Scale       ScaleControl  // Bounds of the scale control
	PinRadius   float64       // Waypoint pin radius in pixels
	Interval    time.Duration // Auto-rotation tick interval (default 200ms)
	Display     ScaleDisplay  // Optional external scale control to keep in sync
}

// Globe owns the projection state of one view and is its only writer.
// Drag, SetScale, ResetScale and Tick mutate the state and then redraw the
// whole dataset into the backend before returning. All of them, and Resize,
// must be called from the goroutine that consumes the globe's Loop.
type Globe struct {
	state        geo.State
	initialScale float64

	data      *geo.Dataset
	projector geo.Projector
	backend   Backend

	gesture Gesture
	scale   ScaleControl
	display ScaleDisplay

	loop    *Loop
	rotator *AutoRotator

	redraws int
}

// New creates a globe showing data in a width x height container, allocates
// the backend's primitives and draws the first frame. The initial state's
// scale, after clamping to the scale bounds, becomes the reset value.
func New(initial geo.State, data *geo.Dataset, width, height float64, backend Backend, loop *Loop, opts Options) (*Globe, error) {
	if opts.Sensitivity == 0 {
		opts.Sensitivity = DefaultSensitivity
	}
	if err := opts.Scale.Validate(); err != nil {
		return nil, err
	}
	if data == nil {
		data = &geo.Dataset{}
	}
	if loop == nil {
		loop = NewLoop(0)
	}

	scale, err := opts.Scale.Clamp(initial.Scale)
	if err != nil {
		return nil, fmt.Errorf("initial state: %w", err)
	}
	initial.Scale = scale

	g := &Globe{
		state:        initial.Normalize(),
		initialScale: scale,
		data:         data,
		projector:    geo.NewProjector(width, height, opts.PinRadius),
		backend:      backend,
		gesture:      Gesture{Sensitivity: opts.Sensitivity},
		scale:        opts.Scale,
		display:      opts.Display,
		loop:         loop,
	}
	g.rotator = NewAutoRotator(loop, opts.Interval, g.Tick)

	allocate(data, backend)
	g.redraw()

	debug.Log("globe created: %d borders, %d waypoints, scale %.1f", len(data.Borders), len(data.Waypoints), scale)
	return g, nil
}

// redraw re-projects everything for the current state
func (g *Globe) redraw() {
	Render(g.state, g.data, g.projector, g.backend)
	g.redraws++
}

// Drag rotates the globe by a pointer drag of (dx, dy) pixels
func (g *Globe) Drag(dx, dy float64) {
	g.state = g.gesture.Apply(dx, dy, g.state)
	g.redraw()
}

// Tick applies one auto-rotation step
func (g *Globe) Tick() {
	g.state = g.gesture.Spin(g.state)
	g.redraw()
}

// SetScale sets the globe scale. Invalid values are rejected and leave the
// state unchanged; values outside the control's bounds are clamped.
func (g *Globe) SetScale(v float64) error {
	scale, err := g.scale.Clamp(v)
	if err != nil {
		return err
	}
	g.state.Scale = scale
	g.redraw()
	debug.Log("globe scale changed to %.1f", scale)
	return nil
}

// StepScale multiplies the scale by factor within the control's bounds
func (g *Globe) StepScale(factor float64) {
	_ = g.SetScale(g.scale.Step(g.state.Scale, factor))
}

// ResetScale restores the scale captured at creation and syncs the display
func (g *Globe) ResetScale() {
	g.state.Scale = g.initialScale
	if g.display != nil {
		g.display.ShowScale(g.initialScale)
	}
	g.redraw()
	debug.Log("globe scale reset to %.1f", g.initialScale)
}

// Resize recenters the projection in a new container size and redraws
func (g *Globe) Resize(width, height float64) {
	g.projector = geo.NewProjector(width, height, g.projector.PinRadius)
	g.redraw()
}

// StartAutoRotate starts the auto-rotation timer
func (g *Globe) StartAutoRotate(ctx context.Context) {
	g.rotator.Start(ctx)
	debug.Log("auto-rotation started (interval %v)", g.rotator.Interval())
}

// StopAutoRotate stops the auto-rotation timer
func (g *Globe) StopAutoRotate() {
	g.rotator.Stop()
	debug.Log("auto-rotation stopped")
}

// ToggleAutoRotate starts or stops the timer and reports whether it now runs
func (g *Globe) ToggleAutoRotate(ctx context.Context) bool {
	if g.rotator.Running() {
		g.StopAutoRotate()
		return false
	}
	g.StartAutoRotate(ctx)
	return true
}

// SetAutoRotateInterval changes the tick interval
func (g *Globe) SetAutoRotateInterval(ctx context.Context, d time.Duration) error {
	if err := g.rotator.SetInterval(ctx, d); err != nil {
		return err
	}
	debug.Log("auto-rotation interval set to %v", d)
	return nil
}

// AutoRotating reports whether the timer is running
func (g *Globe) AutoRotating() bool {
	return g.rotator.Running()
}

// AutoRotateInterval returns the tick interval
func (g *Globe) AutoRotateInterval() time.Duration {
	return g.rotator.Interval()
}

// Close stops the timer. The globe must not be used afterwards.
func (g *Globe) Close() {
	g.rotator.Stop()
}

// Export draws the current view into a fresh backend, such as an SVG
// document, without touching the globe's own backend. The export container
// is width x height; the scale is adjusted so the globe fills the same share
// of it as it does of the live view.
func (g *Globe) Export(b Backend, width, height float64) {
	s := g.state
	if live := g.projector.Center; live.X > 0 && live.Y > 0 {
		s.Scale *= math.Min(width, height) / (2 * math.Min(live.X, live.Y))
	}
	Draw(s, g.data, geo.NewProjector(width, height, g.projector.PinRadius), b)
}

// State returns a copy of the current projection state
func (g *Globe) State() geo.State {
	return g.state
}

// InitialScale returns the scale restored by ResetScale
func (g *Globe) InitialScale() float64 {
	return g.initialScale
}

// Data returns the dataset the globe draws
func (g *Globe) Data() *geo.Dataset {
	return g.data
}

// Projector returns the current projector
func (g *Globe) Projector() geo.Projector {
	return g.projector
}

// Loop returns the event queue timer ticks are posted to
func (g *Globe) Loop() *Loop {
	return g.loop
}

// Redraws returns how many render passes have run
func (g *Globe) Redraws() int {
	return g.redraws
}
