package ui

import (
	"fmt"

	"itinglobe/internal/geo"
	"itinglobe/internal/render"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// ListView displays a scrollable list of itinerary waypoints, marking the
// ones currently on the visible hemisphere
type ListView struct {
	waypoints     []geo.Waypoint
	visible       func(i int) bool
	selectedIndex int
	scrollOffset  int
	maxVisible    int
	x, y          int
	width, height int
}

// NewListView creates a new itinerary list view
func NewListView(x, y, width, height int) *ListView {
	l := &ListView{}
	l.UpdateDimensions(x, y, width, height)
	return l
}

// Update sets the waypoints and the visibility lookup
func (l *ListView) Update(waypoints []geo.Waypoint, visible func(i int) bool) {
	l.waypoints = waypoints
	l.visible = visible

	if l.selectedIndex >= len(l.waypoints) {
		l.selectedIndex = len(l.waypoints) - 1
	}
	if l.selectedIndex < 0 {
		l.selectedIndex = 0
	}

	l.adjustScroll()
}

// SelectNext moves selection down
func (l *ListView) SelectNext() {
	if l.selectedIndex < len(l.waypoints)-1 {
		l.selectedIndex++
		l.adjustScroll()
	}
}

// SelectPrev moves selection up
func (l *ListView) SelectPrev() {
	if l.selectedIndex > 0 {
		l.selectedIndex--
		l.adjustScroll()
	}
}

// adjustScroll adjusts scroll offset to keep selected item visible
func (l *ListView) adjustScroll() {
	if l.selectedIndex >= l.scrollOffset+l.maxVisible {
		l.scrollOffset = l.selectedIndex - l.maxVisible + 1
	}
	if l.selectedIndex < l.scrollOffset {
		l.scrollOffset = l.selectedIndex
	}
	if l.scrollOffset < 0 {
		l.scrollOffset = 0
	}
}

// Selected returns the index of the selected waypoint, or -1
func (l *ListView) Selected() int {
	if l.selectedIndex >= 0 && l.selectedIndex < len(l.waypoints) {
		return l.selectedIndex
	}
	return -1
}

// itemText formats one list row
func (l *ListView) itemText(i int) string {
	wp := l.waypoints[i]
	mark := "( )"
	if l.visible != nil && l.visible(i) {
		mark = "(+)"
	}
	label := wp.Date
	if label == "" {
		label = fmt.Sprintf("#%d", i+1)
	}
	return fmt.Sprintf("%s %s %7.2f,%8.2f", mark, label, wp.Lat, wp.Lon)
}

// Draw renders the list view to the screen
func (l *ListView) Draw(screen tcell.Screen) {
	if l.width < 3 || l.height < 3 {
		return
	}
	clearPanel(screen, l.x, l.y, l.width, l.height)
	drawBorder(screen, l.x, l.y, l.width, l.height)
	drawTitle(screen, l.x, l.y, l.width, "Itinerary")

	inner := l.width - 2
	visibleCount := min(l.maxVisible, len(l.waypoints)-l.scrollOffset)
	for i := 0; i < visibleCount; i++ {
		idx := l.scrollOffset + i

		style := render.StyleListHidden
		if l.visible != nil && l.visible(idx) {
			style = render.StyleListItem
		}
		if idx == l.selectedIndex {
			style = render.StyleListSelected
		}

		text := runewidth.FillRight(runewidth.Truncate(l.itemText(idx), inner, "…"), inner)
		drawString(screen, l.x+1, l.y+i+1, text, style)
	}

	if len(l.waypoints) > l.maxVisible {
		screen.SetContent(l.x+l.width-2, l.y, '↕', nil, render.StyleLabel)
	}
}

// UpdateDimensions updates the view dimensions
func (l *ListView) UpdateDimensions(x, y, width, height int) {
	l.x = x
	l.y = y
	l.width = width
	l.height = height
	l.maxVisible = height - 2 // Account for border
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
	l.adjustScroll()
}
