package ui

import (
	"fmt"
	"time"

	"itinglobe/internal/geo"
	"itinglobe/internal/render"

	"github.com/gdamore/tcell/v2"
)

// helpText lists the key bindings shown at the bottom of the status panel
const helpText = "drag/hjkl rotate  +/- zoom  0 reset  space spin  [ ] speed  e export  q quit"

// StatusView shows the projection state and the scale control. It is the
// globe's scale display: ShowScale moves the displayed control value.
type StatusView struct {
	state     geo.State
	scale     float64
	rotating  bool
	interval  time.Duration
	visible   int
	waypoints int
	message   string
	x, y      int
	width     int
	height    int
}

// NewStatusView creates a new status view
func NewStatusView(x, y, width, height int) *StatusView {
	return &StatusView{
		x:      x,
		y:      y,
		width:  width,
		height: height,
	}
}

// ShowScale sets the value shown by the scale control
func (s *StatusView) ShowScale(v float64) {
	s.scale = v
}

// Scale returns the value shown by the scale control
func (s *StatusView) Scale() float64 {
	return s.scale
}

// SetState updates the projection and timer state shown in the panel
func (s *StatusView) SetState(state geo.State, rotating bool, interval time.Duration) {
	s.state = state
	s.rotating = rotating
	s.interval = interval
}

// SetVisible updates the visible waypoint count
func (s *StatusView) SetVisible(visible, total int) {
	s.visible = visible
	s.waypoints = total
}

// SetMessage sets a one-line notice, such as the result of an export
func (s *StatusView) SetMessage(msg string) {
	s.message = msg
}

// Lines returns the panel body
func (s *StatusView) Lines() []string {
	spin := "off"
	if s.rotating {
		spin = fmt.Sprintf("on (%v)", s.interval)
	}
	center := s.state.Center()
	lines := []string{
		fmt.Sprintf("Rotate:  %7.2f %7.2f %7.2f", s.state.Lon, s.state.Lat, s.state.Roll),
		fmt.Sprintf("Center:  %7.2f,%8.2f", center.Lat, center.Lon),
		fmt.Sprintf("Scale:   %.1f", s.scale),
		fmt.Sprintf("Spin:    %s", spin),
		fmt.Sprintf("Visible: %d/%d waypoints", s.visible, s.waypoints),
	}
	if s.message != "" {
		lines = append(lines, s.message)
	}
	return lines
}

// Draw renders the status view to the screen
func (s *StatusView) Draw(screen tcell.Screen) {
	if s.width < 3 || s.height < 3 {
		return
	}
	clearPanel(screen, s.x, s.y, s.width, s.height)
	drawBorder(screen, s.x, s.y, s.width, s.height)
	drawTitle(screen, s.x, s.y, s.width, "Globe")

	for i, line := range s.Lines() {
		row := s.y + 1 + i
		if row >= s.y+s.height-1 {
			break
		}
		drawString(screen, s.x+2, row, truncate(line, s.width-4), render.StyleLabel)
	}
}

// DrawHelp renders the key bindings on the given screen row
func (s *StatusView) DrawHelp(screen tcell.Screen, row, width int) {
	drawString(screen, 0, row, truncate(helpText, width), render.StyleLabel.Dim(true))
}

// UpdateDimensions updates the view dimensions
func (s *StatusView) UpdateDimensions(x, y, width, height int) {
	s.x = x
	s.y = y
	s.width = width
	s.height = height
}
