package globe

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"itinglobe/internal/geo"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type fakeBackend struct {
	allocations int
	radius      float64
	borders     []geo.Path
	waypoints   []geo.Path
}

func (b *fakeBackend) Allocate(borders, waypoints int) {
	b.allocations++
	b.borders = make([]geo.Path, borders)
	b.waypoints = make([]geo.Path, waypoints)
}

func (b *fakeBackend) SetGlobeRadius(r float64)          { b.radius = r }
func (b *fakeBackend) SetBorderPath(i int, p geo.Path)   { b.borders[i] = p }
func (b *fakeBackend) SetWaypointPath(i int, p geo.Path) { b.waypoints[i] = p }

type fakeDisplay struct {
	values []float64
}

func (d *fakeDisplay) ShowScale(v float64) { d.values = append(d.values, v) }

var testBounds = ScaleControl{Min: 50, Max: 2000}

func testDataset() *geo.Dataset {
	return &geo.Dataset{
		Borders: []*geo.Feature{
			geo.NewFeature("front", []geo.Polygon{{geo.Ring{
				{Lat: -10, Lon: -10}, {Lat: -10, Lon: 10}, {Lat: 10, Lon: 10}, {Lat: 10, Lon: -10},
			}}}),
			geo.NewFeature("back", []geo.Polygon{{geo.Ring{
				{Lat: -10, Lon: 170}, {Lat: -10, Lon: -170}, {Lat: 10, Lon: -170}, {Lat: 10, Lon: 170},
			}}}),
		},
		Waypoints: []geo.Waypoint{
			{LatLon: geo.LatLon{Lat: 0, Lon: 0}},
			{LatLon: geo.LatLon{Lat: 0, Lon: 180}},
		},
	}
}

func mustNewGlobe(t *testing.T, initial geo.State, data *geo.Dataset, opts Options) (*Globe, *fakeBackend) {
	t.Helper()
	if opts.Scale == (ScaleControl{}) {
		opts.Scale = testBounds
	}
	b := &fakeBackend{}
	g, err := New(initial, data, 960, 600, b, NewLoop(0), opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(g.Close)
	return g, b
}

// Gesture

func TestGlobe_DragExample(t *testing.T) {
	g, _ := mustNewGlobe(t, geo.State{Lon: 0, Lat: -30, Scale: 250}, testDataset(), Options{Sensitivity: 75})

	if got := g.gesture.Factor(g.State()); math.Abs(got-0.3) > 1e-12 {
		t.Errorf("Factor() = %v, want 0.3", got)
	}

	g.Drag(75, 0)

	want := geo.State{Lon: 22.5, Lat: -30, Scale: 250}
	if diff := cmp.Diff(want, g.State(), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("State() after Drag(75, 0) mismatch (-want +got):\n%v", diff)
	}
}

func TestGesture_SensitivityInvariance(t *testing.T) {
	gesture := Gesture{Sensitivity: 75}
	tests := []struct {
		name   string
		dx, dy float64
	}{
		{"horizontal", 40, 0},
		{"vertical", 0, 25},
		{"diagonal", -30, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := geo.State{Lon: 10, Lat: -20}

			small := base
			small.Scale = 250
			large := base
			large.Scale = 500

			a := gesture.Apply(tt.dx, tt.dy, small)
			b := gesture.Apply(tt.dx, tt.dy, large)

			dLonA, dLatA := a.Lon-base.Lon, a.Lat-base.Lat
			dLonB, dLatB := b.Lon-base.Lon, b.Lat-base.Lat
			if math.Abs(dLonA-2*dLonB) > 1e-9 || math.Abs(dLatA-2*dLatB) > 1e-9 {
				t.Errorf("deltas at scale 250 (%v, %v) are not twice those at 500 (%v, %v)",
					dLonA, dLatA, dLonB, dLatB)
			}
		})
	}
}

func TestGesture_VerticalDirection(t *testing.T) {
	s := Gesture{Sensitivity: 75}.Apply(0, 10, geo.State{Scale: 75})
	if s.Lat != -10 {
		t.Errorf("Lat after downward drag = %v, want -10", s.Lat)
	}
}

func TestGlobe_PoleSafety(t *testing.T) {
	g, b := mustNewGlobe(t, geo.State{Lat: -30, Scale: 250}, testDataset(), Options{})

	for _, dy := range []float64{-400, 400} {
		for i := 0; i < 50; i++ {
			g.Drag(3, dy)
			s := g.State()
			if math.Abs(s.Lat) >= 90 || !s.Valid() {
				t.Fatalf("state %+v is not valid after drag", s)
			}
			for _, p := range append(append([]geo.Path{}, b.borders...), b.waypoints...) {
				for _, ring := range p.Rings {
					for _, pt := range ring {
						if math.IsNaN(pt.X) || math.IsNaN(pt.Y) {
							t.Fatalf("NaN vertex at state %+v", s)
						}
					}
				}
			}
		}
	}
}

// Scale

func TestGlobe_SetScale(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		want    float64
		wantErr bool
	}{
		{"in range", 400, 400, false},
		{"clamped high", 1e6, 2000, false},
		{"clamped low", 1, 50, false},
		{"zero", 0, 250, true},
		{"negative", -10, 250, true},
		{"nan", math.NaN(), 250, true},
		{"inf", math.Inf(1), 250, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, b := mustNewGlobe(t, geo.State{Lat: -30, Scale: 250}, testDataset(), Options{})
			before := g.Redraws()

			err := g.SetScale(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SetScale(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidScale) {
					t.Errorf("SetScale(%v) error = %v, want ErrInvalidScale", tt.value, err)
				}
				if g.Redraws() != before {
					t.Errorf("rejected SetScale(%v) redrew the globe", tt.value)
				}
			}
			if got := g.State().Scale; got != tt.want {
				t.Errorf("Scale after SetScale(%v) = %v, want %v", tt.value, got, tt.want)
			}
			if b.radius != g.State().Scale {
				t.Errorf("globe radius = %v, want %v", b.radius, g.State().Scale)
			}
		})
	}
}

func TestGlobe_ResetScale(t *testing.T) {
	display := &fakeDisplay{}
	g, b := mustNewGlobe(t, geo.State{Lat: -30, Scale: 250}, testDataset(), Options{Display: display})

	for _, v := range []float64{100, 1234.5, 60, 999} {
		if err := g.SetScale(v); err != nil {
			t.Fatalf("SetScale(%v) error = %v", v, err)
		}
	}
	g.StepScale(1.25)
	g.ResetScale()

	if got := g.State().Scale; got != 250 {
		t.Errorf("Scale after ResetScale() = %v, want 250", got)
	}
	if b.radius != 250 {
		t.Errorf("globe radius after ResetScale() = %v, want 250", b.radius)
	}
	if diff := cmp.Diff([]float64{250}, display.values); diff != "" {
		t.Errorf("display values mismatch (-want +got):\n%v", diff)
	}

	g.ResetScale()
	if got := g.State().Scale; got != g.InitialScale() {
		t.Errorf("Scale after second ResetScale() = %v, want %v", got, g.InitialScale())
	}
}

func TestScaleControl_Step(t *testing.T) {
	c := ScaleControl{Min: 50, Max: 2000}
	tests := []struct {
		name   string
		v      float64
		factor float64
		want   float64
	}{
		{"zoom in", 200, 1.25, 250},
		{"zoom out", 200, 0.8, 160},
		{"upper bound", 1900, 1.25, 2000},
		{"lower bound", 55, 0.5, 50},
		{"invalid factor keeps value", 200, 0, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Step(tt.v, tt.factor); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Step(%v, %v) = %v, want %v", tt.v, tt.factor, got, tt.want)
			}
		})
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		initial geo.State
		bounds  ScaleControl
	}{
		{"zero scale", geo.State{}, testBounds},
		{"bad bounds", geo.State{Scale: 250}, ScaleControl{Min: 10, Max: 5}},
		{"zero min", geo.State{Scale: 250}, ScaleControl{Min: 0, Max: 5}},
		{"NaN max", geo.State{Scale: 250}, ScaleControl{Min: 10, Max: math.NaN()}},
		{"NaN min", geo.State{Scale: 250}, ScaleControl{Min: math.NaN(), Max: 2000}},
		{"infinite max", geo.State{Scale: 250}, ScaleControl{Min: 10, Max: math.Inf(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.initial, nil, 100, 100, &fakeBackend{}, nil, Options{Scale: tt.bounds})
			if err == nil {
				t.Errorf("New(%+v, bounds %+v) error = nil, want non-nil", tt.initial, tt.bounds)
			}
		})
	}
}

// Render loop

func TestGlobe_RenderCoherence(t *testing.T) {
	data := testDataset()
	g, b := mustNewGlobe(t, geo.State{Scale: 250}, data, Options{PinRadius: 1.3})

	if b.allocations != 1 {
		t.Fatalf("Allocate called %d times, want 1", b.allocations)
	}

	check := func(step string) {
		t.Helper()
		s := g.State()
		pr := g.Projector()
		if b.radius != s.Scale {
			t.Errorf("%s: radius = %v, want %v", step, b.radius, s.Scale)
		}
		for i, f := range data.Borders {
			if diff := cmp.Diff(pr.ProjectFeature(f, s), b.borders[i]); diff != "" {
				t.Errorf("%s: border %d mismatch (-want +got):\n%v", step, i, diff)
			}
		}
		for i, wp := range data.Waypoints {
			if diff := cmp.Diff(pr.ProjectWaypoint(wp.LatLon, s), b.waypoints[i]); diff != "" {
				t.Errorf("%s: waypoint %d mismatch (-want +got):\n%v", step, i, diff)
			}
		}
	}

	check("initial")
	if !b.borders[1].Empty() || !b.waypoints[1].Empty() {
		t.Errorf("far side geometry drawn in initial frame")
	}

	g.Drag(120, -40)
	check("drag")
	g.Tick()
	check("tick")
	_ = g.SetScale(400)
	check("set scale")
	g.ResetScale()
	check("reset")
	g.Resize(300, 200)
	check("resize")

	if b.allocations != 1 {
		t.Errorf("Allocate called %d times after redraws, want 1", b.allocations)
	}
	if got := g.Redraws(); got != 6 {
		t.Errorf("Redraws() = %d, want 6", got)
	}
}

func TestGlobe_EmptyDataset(t *testing.T) {
	g, b := mustNewGlobe(t, geo.State{Scale: 250}, &geo.Dataset{}, Options{})
	g.Drag(10, 10)
	g.Tick()
	if len(b.borders) != 0 || len(b.waypoints) != 0 {
		t.Errorf("got %d borders and %d waypoints, want none", len(b.borders), len(b.waypoints))
	}
	if b.radius != 250 {
		t.Errorf("radius = %v, want 250", b.radius)
	}
}

func TestGlobe_Export(t *testing.T) {
	g, _ := mustNewGlobe(t, geo.State{Lat: -30, Scale: 250}, testDataset(), Options{})
	g.Drag(30, 0)

	out := &fakeBackend{}
	g.Export(out, 960, 600)
	if out.allocations != 1 || len(out.borders) != 2 || len(out.waypoints) != 2 {
		t.Fatalf("Export allocated %d times with %d borders, %d waypoints", out.allocations, len(out.borders), len(out.waypoints))
	}
	if out.radius != 250 {
		t.Errorf("exported radius = %v, want 250", out.radius)
	}

	// Half-size container halves the radius and leaves the state alone
	small := &fakeBackend{}
	g.Export(small, 480, 300)
	if small.radius != 125 {
		t.Errorf("exported radius = %v, want 125", small.radius)
	}
	if g.State().Scale != 250 {
		t.Errorf("Export changed the scale to %v", g.State().Scale)
	}
}

// Auto-rotation

func TestGlobe_Tick(t *testing.T) {
	g, _ := mustNewGlobe(t, geo.State{Lon: 0, Lat: -30, Scale: 250}, testDataset(), Options{Sensitivity: 75})
	g.Tick()
	g.Tick()
	if got := g.State().Lon; math.Abs(got-(-0.6)) > 1e-9 {
		t.Errorf("Lon after two ticks = %v, want -0.6", got)
	}
}

func TestGlobe_AutoRotateCancellation(t *testing.T) {
	g, _ := mustNewGlobe(t, geo.State{Scale: 250}, testDataset(), Options{Interval: 2 * time.Millisecond})
	ctx := context.Background()

	g.StartAutoRotate(ctx)
	if !g.AutoRotating() {
		t.Fatalf("AutoRotating() = false after start")
	}

	deadline := time.Now().Add(2 * time.Second)
	for g.State().Lon == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
		g.Loop().Drain()
	}
	if g.State().Lon == 0 {
		t.Fatalf("no rotation observed while the timer was running")
	}

	g.StopAutoRotate()
	if g.AutoRotating() {
		t.Fatalf("AutoRotating() = true after stop")
	}

	g.Loop().Drain()
	stopped := g.State().Lon
	for i := 0; i < 10; i++ {
		time.Sleep(5 * time.Millisecond)
		g.Loop().Drain()
		if got := g.State().Lon; got != stopped {
			t.Fatalf("Lon changed from %v to %v after the timer was stopped", stopped, got)
		}
	}
}

func TestAutoRotator_SetInterval(t *testing.T) {
	loop := NewLoop(0)
	ticks := 0
	a := NewAutoRotator(loop, 0, func() { ticks++ })
	defer a.Stop()

	if got := a.Interval(); got != DefaultInterval {
		t.Errorf("Interval() = %v, want %v", got, DefaultInterval)
	}
	if err := a.SetInterval(context.Background(), 0); err == nil {
		t.Errorf("SetInterval(0) error = nil, want non-nil")
	}

	a.Start(context.Background())
	a.Start(context.Background())
	if err := a.SetInterval(context.Background(), time.Millisecond); err != nil {
		t.Fatalf("SetInterval() error = %v", err)
	}
	if !a.Running() {
		t.Fatalf("Running() = false after SetInterval on a running rotator")
	}

	deadline := time.Now().Add(2 * time.Second)
	for ticks == 0 && time.Now().Before(deadline) {
		time.Sleep(2 * time.Millisecond)
		loop.Drain()
	}
	if ticks == 0 {
		t.Errorf("no ticks after SetInterval restart")
	}
}

func TestAutoRotator_ContextCancel(t *testing.T) {
	loop := NewLoop(0)
	a := NewAutoRotator(loop, time.Millisecond, func() {})
	ctx, cancel := context.WithCancel(context.Background())
	a.Start(ctx)
	cancel()
	a.Stop()
	if a.Running() {
		t.Errorf("Running() = true after Stop")
	}
}

func TestAutoRotator_RestartAfterParentCancel(t *testing.T) {
	loop := NewLoop(0)
	ticks := 0
	a := NewAutoRotator(loop, time.Millisecond, func() { ticks++ })
	t.Cleanup(a.Stop)

	ctx, cancel := context.WithCancel(context.Background())
	a.Start(ctx)
	cancel()

	deadline := time.Now().Add(time.Second)
	for a.Running() {
		if time.Now().After(deadline) {
			t.Fatalf("Running() = true after the parent context was cancelled")
		}
		time.Sleep(time.Millisecond)
	}
	loop.Drain()

	a.Start(context.Background())
	if !a.Running() {
		t.Fatalf("Running() = false after restart")
	}
	for ticks == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("no ticks after restart")
		}
		select {
		case task := <-loop.Tasks():
			task()
		case <-time.After(10 * time.Millisecond):
		}
	}
}

// Loop

func TestLoop_PostDropsWhenFull(t *testing.T) {
	loop := NewLoop(2)
	ran := 0
	for i := 0; i < 5; i++ {
		loop.Post(func() { ran++ })
	}
	if got := loop.Drain(); got != 2 {
		t.Errorf("Drain() = %d, want 2", got)
	}
	if ran != 2 {
		t.Errorf("ran %d callbacks, want 2", ran)
	}
	if got := loop.Drain(); got != 0 {
		t.Errorf("second Drain() = %d, want 0", got)
	}
}
