package render

import (
	"testing"

	"itinglobe/internal/geo"

	"github.com/gdamore/tcell/v2"
	"github.com/golang/geo/r2"
)

func TestGlobeRenderer_Draw(t *testing.T) {
	canvas := NewCanvas(20, 10) // 40x40 dots, center (20,20)
	m := NewGlobeRenderer()
	m.Allocate(1, 2)
	m.SetGlobeRadius(16)
	m.SetBorderPath(0, geo.Path{Rings: [][]r2.Point{{
		{X: 12, Y: 12}, {X: 28, Y: 12}, {X: 28, Y: 28}, {X: 12, Y: 28},
	}}})
	m.SetWaypointPath(0, geo.Path{Circles: []geo.Circle{{Center: r2.Point{X: 21, Y: 21}, Radius: 1.3}}})
	m.SetWaypointPath(1, geo.Path{})

	m.Draw(canvas)

	_, bg, _ := canvas.Get(10, 5).Style.Decompose()
	if bg != ColorOcean {
		t.Errorf("center cell background = %v, want ocean", bg)
	}
	_, bg, _ = canvas.Get(0, 0).Style.Decompose()
	if bg == ColorOcean {
		t.Errorf("corner cell background is ocean, want outside the disc")
	}

	// Top edge of the square runs through dot row 12, cell row 3
	if canvas.Get(8, 3).Dots == 0 {
		t.Errorf("no border dots in cell (8,3)")
	}

	pin := canvas.Get(10, 5)
	if pin.Rune() != pinRune {
		t.Errorf("pin cell rune = %q, want %q", pin.Rune(), pinRune)
	}
	fg, bg, _ := pin.Style.Decompose()
	if fg != ColorPin || bg != ColorOcean {
		t.Errorf("pin style fg=%v bg=%v, want pin on ocean", fg, bg)
	}

	if got := m.VisibleWaypoints(); got != 1 {
		t.Errorf("VisibleWaypoints() = %d, want 1", got)
	}
	if !m.WaypointVisible(0) || m.WaypointVisible(1) || m.WaypointVisible(5) {
		t.Errorf("WaypointVisible reports wrong visibility")
	}
}

func TestGlobeRenderer_IgnoresOutOfRangeIndexes(t *testing.T) {
	m := NewGlobeRenderer()
	m.Allocate(1, 1)
	m.SetBorderPath(3, geo.Path{Circles: []geo.Circle{{}}})
	m.SetWaypointPath(-1, geo.Path{Circles: []geo.Circle{{}}})
	if m.VisibleWaypoints() != 0 {
		t.Errorf("VisibleWaypoints() = %d, want 0", m.VisibleWaypoints())
	}
}

func TestGlobeRenderer_DrawLineOffCanvas(t *testing.T) {
	canvas := NewCanvas(4, 4)
	m := NewGlobeRenderer()
	m.DrawLine(canvas, r2.Point{X: -100, Y: 2}, r2.Point{X: -5, Y: 9}, StyleBorder)
	m.DrawLine(canvas, r2.Point{X: 0, Y: 0}, r2.Point{X: 7, Y: 0}, StyleBorder)
	if canvas.Get(0, 1).Dots != 0 {
		t.Errorf("off-canvas segment drew dots")
	}
	for x := 0; x < 4; x++ {
		if canvas.Get(x, 0).Dots == 0 {
			t.Errorf("cell (%d,0) missing dots for horizontal line", x)
		}
	}
}

func TestBlend(t *testing.T) {
	if got := Blend(ColorOcean, ColorHorizon, 0); got != ColorOcean {
		t.Errorf("Blend(a, b, 0) = %v, want a", got)
	}
	if got := Blend(ColorOcean, ColorHorizon, 1); got != ColorHorizon {
		t.Errorf("Blend(a, b, 1) = %v, want b", got)
	}
	if hexColor("not a color") != tcell.ColorDefault {
		t.Errorf("hexColor(invalid) is not ColorDefault")
	}
}
