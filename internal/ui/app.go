package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"itinglobe/internal/config"
	"itinglobe/internal/debug"
	"itinglobe/internal/geo"
	"itinglobe/internal/globe"
	"itinglobe/internal/render"
	"itinglobe/internal/svgview"

	"github.com/gdamore/tcell/v2"
)

// Panel sizes in cells
const (
	panelWidth   = 44
	statusHeight = 9
	listHeight   = 12
)

// keyStep is the drag distance, in dots, of one rotation key press
const keyStep = 8

// App is the main application controller. Every globe mutation happens on
// the Run goroutine: input events and timer ticks are both consumed there.
type App struct {
	screen     tcell.Screen
	globe      *globe.Globe
	globeView  *GlobeView
	listView   *ListView
	statusView *StatusView
	cfg        *config.Config

	quit     chan struct{}
	quitOnce sync.Once
	ctx      context.Context
	cancel   context.CancelFunc

	dragging     bool
	lastX, lastY int

	exports   int
	exportDir string
}

// NewApp creates a new application on the terminal
func NewApp(data *geo.Dataset, cfg *config.Config) (*App, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}

	app, err := newApp(screen, data, cfg)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return app, nil
}

// newApp builds the views and the globe on an initialized screen
func newApp(screen tcell.Screen, data *geo.Dataset, cfg *config.Config) (*App, error) {
	screen.SetStyle(tcell.StyleDefault)
	screen.EnableMouse()
	screen.Clear()

	width, height := screen.Size()

	globeView := NewGlobeView(width, height)
	statusView := NewStatusView(0, 0, panelWidth, statusHeight)
	listView := NewListView(0, height-listHeight-1, panelWidth, listHeight)

	scale := globeView.FitScale()
	if scale <= 0 {
		scale = cfg.Scale.Min
	}

	pw, ph := globeView.PixelSize()
	initial := geo.State{
		Lon:   cfg.Globe.RotateLon,
		Lat:   cfg.Globe.RotateLat,
		Roll:  cfg.Globe.RotateRoll,
		Scale: scale,
	}
	g, err := globe.New(initial, data, pw, ph, globeView.Renderer(), globe.NewLoop(0), globe.Options{
		Sensitivity: cfg.Globe.Sensitivity,
		Scale:       globe.ScaleControl{Min: cfg.Scale.Min, Max: cfg.Scale.Max},
		PinRadius:   cfg.Globe.PinRadius,
		Interval:    cfg.AutoRotate.Interval,
		Display:     statusView,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create globe: %w", err)
	}
	statusView.ShowScale(g.InitialScale())

	ctx, cancel := context.WithCancel(context.Background())

	app := &App{
		screen:     screen,
		globe:      g,
		globeView:  globeView,
		listView:   listView,
		statusView: statusView,
		cfg:        cfg,
		quit:       make(chan struct{}),
		ctx:        ctx,
		cancel:     cancel,
		exportDir:  ".",
	}
	app.update()

	return app, nil
}

// Run starts the application main loop
func (a *App) Run() error {
	defer a.cleanup()

	if a.cfg.AutoRotate.Enabled {
		a.globe.StartAutoRotate(a.ctx)
	}

	events := make(chan tcell.Event, 16)
	go a.screen.ChannelEvents(events, a.quit)

	a.render()
	for {
		select {
		case <-a.quit:
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !a.handleEvent(ev) {
				return nil // Quit requested
			}

		case task := <-a.globe.Loop().Tasks():
			task()
		}

		a.update()
		a.render()
	}
}

// update copies the globe state into the panels
func (a *App) update() {
	renderer := a.globeView.Renderer()
	a.listView.Update(a.globe.Data().Waypoints, renderer.WaypointVisible)
	a.statusView.SetState(a.globe.State(), a.globe.AutoRotating(), a.globe.AutoRotateInterval())
	a.statusView.SetVisible(renderer.VisibleWaypoints(), len(a.globe.Data().Waypoints))
}

// render renders the current view to the screen
func (a *App) render() {
	a.screen.Clear()

	width, height := a.screen.Size()
	a.globeView.Draw(a.screen)
	a.statusView.Draw(a.screen)
	if len(a.globe.Data().Waypoints) > 0 && height >= statusHeight+listHeight+1 {
		a.listView.Draw(a.screen)
	}
	a.statusView.DrawHelp(a.screen, height-1, width)

	a.screen.Show()
}

// handleEvent processes keyboard, mouse and resize events
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		a.handleMouse(ev)

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape:
			a.stop()
			return false

		case tcell.KeyLeft:
			a.globe.Drag(-keyStep, 0)
		case tcell.KeyRight:
			a.globe.Drag(keyStep, 0)
		case tcell.KeyUp:
			a.globe.Drag(0, -keyStep)
		case tcell.KeyDown:
			a.globe.Drag(0, keyStep)

		case tcell.KeyTab:
			a.listView.SelectNext()
		case tcell.KeyBacktab:
			a.listView.SelectPrev()

		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				a.stop()
				return false

			case 'h':
				a.globe.Drag(-keyStep, 0)
			case 'l':
				a.globe.Drag(keyStep, 0)
			case 'k':
				a.globe.Drag(0, -keyStep)
			case 'j':
				a.globe.Drag(0, keyStep)

			case '+', '=':
				a.stepScale(a.cfg.Scale.Step)
			case '-', '_':
				a.stepScale(1 / a.cfg.Scale.Step)
			case '0':
				a.globe.ResetScale()

			case ' ':
				a.globe.ToggleAutoRotate(a.ctx)
			case '[':
				a.setInterval(a.globe.AutoRotateInterval() / 2)
			case ']':
				a.setInterval(a.globe.AutoRotateInterval() * 2)

			case 'e', 'E':
				a.export()
			}
		}

	case *tcell.EventResize:
		a.handleResize()
	}

	return true
}

// handleMouse turns a button-1 drag into globe drag deltas. Cell motion is
// converted to dots, the globe's pixel unit.
func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	if ev.Buttons()&tcell.Button1 == 0 {
		a.dragging = false
		return
	}
	if a.dragging {
		dx := float64((x - a.lastX) * render.DotsX)
		dy := float64((y - a.lastY) * render.DotsY)
		if dx != 0 || dy != 0 {
			a.globe.Drag(dx, dy)
		}
	}
	a.dragging = true
	a.lastX, a.lastY = x, y
}

// stepScale moves the scale control and applies its new value
func (a *App) stepScale(factor float64) {
	a.globe.StepScale(factor)
	a.statusView.ShowScale(a.globe.State().Scale)
}

func (a *App) setInterval(d time.Duration) {
	if err := a.globe.SetAutoRotateInterval(a.ctx, d); err != nil {
		a.statusView.SetMessage(fmt.Sprintf("Interval: %v", err))
	}
}

// export writes the current view as an SVG document
func (a *App) export() {
	a.exports++
	name := filepath.Join(a.exportDir, fmt.Sprintf("itinglobe-%d.svg", a.exports))

	doc := svgview.NewDocument(a.cfg.Export.Width, a.cfg.Export.Height)
	a.globe.Export(doc, float64(a.cfg.Export.Width), float64(a.cfg.Export.Height))

	f, err := os.Create(name)
	if err != nil {
		a.statusView.SetMessage(fmt.Sprintf("Export failed: %v", err))
		debug.Log("export failed: %v", err)
		return
	}
	defer f.Close()

	if err := doc.Render(f); err != nil {
		a.statusView.SetMessage(fmt.Sprintf("Export failed: %v", err))
		debug.Log("export failed: %v", err)
		return
	}
	a.statusView.SetMessage("Saved " + name)
	debug.Log("exported view to %s", name)
}

// handleResize handles terminal resize events
func (a *App) handleResize() {
	a.screen.Sync()
	width, height := a.screen.Size()

	a.globeView.UpdateDimensions(width, height)
	pw, ph := a.globeView.PixelSize()
	a.globe.Resize(pw, ph)

	a.statusView.UpdateDimensions(0, 0, panelWidth, statusHeight)
	a.listView.UpdateDimensions(0, height-listHeight-1, panelWidth, listHeight)
}

// stop signals the main loop to exit
func (a *App) stop() {
	a.quitOnce.Do(func() { close(a.quit) })
}

// cleanup performs cleanup before exit
func (a *App) cleanup() {
	a.stop()

	if a.cancel != nil {
		a.cancel()
	}

	if a.globe != nil {
		a.globe.Close()
	}

	if a.screen != nil {
		a.screen.Fini()
	}
}
