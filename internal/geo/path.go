package geo

import (
	"strconv"

	"github.com/golang/geo/r2"
)

// Circle is a pin drawn at a fixed pixel radius
type Circle struct {
	Center r2.Point
	Radius float64
}

// Path is projected screen geometry: closed rings and circles.
// The zero Path is the empty (null) path.
type Path struct {
	Rings   [][]r2.Point
	Circles []Circle
}

// Empty reports whether the path draws nothing
func (p Path) Empty() bool {
	return len(p.Rings) == 0 && len(p.Circles) == 0
}

// NumPoints returns the number of ring vertices in the path
func (p Path) NumPoints() int {
	n := 0
	for _, r := range p.Rings {
		n += len(r)
	}
	return n
}

// String returns the path as SVG path data. Rings are written as
// "M x,y L x,y ... Z"; circles as two half arcs, the form d3 emits for points.
// An empty path returns "".
func (p Path) String() string {
	if p.Empty() {
		return ""
	}
	buf := make([]byte, 0, 16*(p.NumPoints()+4*len(p.Circles)))

	for _, ring := range p.Rings {
		for i, pt := range ring {
			if i == 0 {
				buf = append(buf, 'M')
			} else {
				buf = append(buf, 'L')
			}
			buf = appendPair(buf, pt.X, pt.Y)
		}
		buf = append(buf, 'Z')
	}

	for _, c := range p.Circles {
		r := c.Radius
		buf = append(buf, 'M')
		buf = appendPair(buf, c.Center.X, c.Center.Y)
		buf = append(buf, 'm')
		buf = appendPair(buf, 0, r)
		buf = append(buf, 'a')
		buf = appendPair(buf, r, r)
		buf = append(buf, " 0 1,1 "...)
		buf = appendPair(buf, 0, -2*r)
		buf = append(buf, 'a')
		buf = appendPair(buf, r, r)
		buf = append(buf, " 0 1,1 "...)
		buf = appendPair(buf, 0, 2*r)
		buf = append(buf, 'Z')
	}
	return string(buf)
}

// pathPrecision is the number of decimals written per coordinate
const pathPrecision = 3

func appendPair(buf []byte, x, y float64) []byte {
	buf = appendCoord(buf, x)
	buf = append(buf, ',')
	return appendCoord(buf, y)
}

func appendCoord(buf []byte, v float64) []byte {
	s := strconv.FormatFloat(v, 'f', pathPrecision, 64)
	end := len(s)
	for end > 0 && s[end-1] == '0' {
		end--
	}
	if end > 0 && s[end-1] == '.' {
		end--
	}
	s = s[:end]
	// Tiny negatives round to "-0"; print them as "0".
	if s == "-0" {
		s = "0"
	}
	return append(buf, s...)
}
