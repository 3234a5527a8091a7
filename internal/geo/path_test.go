package geo

import (
	"testing"

	"github.com/golang/geo/r2"
)

func TestPath_String(t *testing.T) {
	tests := []struct {
		name string
		path Path
		want string
	}{
		{"empty", Path{}, ""},
		{
			"triangle",
			Path{Rings: [][]r2.Point{{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}}},
			"M0,0L10,0L10,10Z",
		},
		{
			"decimals trimmed",
			Path{Rings: [][]r2.Point{{{X: 1.5, Y: 2.25}, {X: 3.12349, Y: -0.0001}, {X: 100, Y: 7}}}},
			"M1.5,2.25L3.123,0L100,7Z",
		},
		{
			"pin",
			Path{Circles: []Circle{{Center: r2.Point{X: 5, Y: 5}, Radius: 1.5}}},
			"M5,5m0,1.5a1.5,1.5 0 1,1 0,-3a1.5,1.5 0 1,1 0,3Z",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.path.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPath_Empty(t *testing.T) {
	if !(Path{}).Empty() {
		t.Errorf("Path{}.Empty() = false, want true")
	}
	p := Path{Circles: []Circle{{Radius: 1}}}
	if p.Empty() {
		t.Errorf("Path with circle Empty() = true, want false")
	}
}
