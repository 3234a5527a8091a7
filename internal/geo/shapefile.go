package geo

import (
	"fmt"
	"strings"

	"github.com/jonas-p/go-shp"
)

// nameFields are the attribute columns checked, in order, for a feature label
var nameFields = []string{"NAME", "NAME_EN", "ADMIN", "NAME_LONG"}

// LoadShapefile loads country borders from an ESRI shapefile such as Natural
// Earth's ne_110m_admin_0_countries.shp. Polygon parts become rings; other
// shape types are skipped.
func LoadShapefile(path string) ([]*Feature, error) {
	shape, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open shapefile: %w", err)
	}
	defer shape.Close()

	nameIdx := -1
	fields := shape.Fields()
	for _, want := range nameFields {
		for i, field := range fields {
			// Field names are fixed-size byte arrays padded with nulls
			fieldName := strings.TrimRight(string(field.Name[:]), "\x00 ")
			if strings.EqualFold(fieldName, want) {
				nameIdx = i
				break
			}
		}
		if nameIdx >= 0 {
			break
		}
	}

	features := make([]*Feature, 0)

	for shape.Next() {
		n, p := shape.Shape()

		geom, ok := p.(*shp.Polygon)
		if !ok {
			continue
		}

		rings := splitParts(geom.Parts, geom.Points)
		if len(rings) == 0 {
			continue
		}

		name := ""
		if nameIdx >= 0 {
			name = strings.TrimSpace(shape.ReadAttribute(n, nameIdx))
		}

		// Shapefiles do not group holes with their outer ring, so every part
		// is kept as its own polygon. Clipping and outlines treat them alike.
		polygons := make([]Polygon, len(rings))
		for i, ring := range rings {
			polygons[i] = Polygon{ring}
		}
		features = append(features, NewFeature(name, polygons))
	}

	return features, nil
}

// splitParts cuts a shapefile point array into rings at the part offsets
func splitParts(parts []int32, points []shp.Point) []Ring {
	rings := make([]Ring, 0, len(parts))
	for i, start := range parts {
		end := len(points)
		if i+1 < len(parts) {
			end = int(parts[i+1])
		}
		if int(start) >= end || end > len(points) {
			continue
		}

		ring := make(Ring, 0, end-int(start))
		for _, point := range points[start:end] {
			ll := LatLon{Lat: point.Y, Lon: point.X}
			if ll.Valid() {
				ring = append(ring, ll)
			}
		}
		if len(ring) >= 3 {
			rings = append(rings, ring)
		}
	}
	return rings
}
