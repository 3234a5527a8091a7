package geo

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// LoadGeoJSON loads country borders from a GeoJSON FeatureCollection file
func LoadGeoJSON(path string) ([]*Feature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read GeoJSON: %w", err)
	}
	return ParseGeoJSON(data)
}

// ParseGeoJSON converts the Polygon and MultiPolygon features of a
// FeatureCollection into border features. Other geometry types are skipped.
func ParseGeoJSON(data []byte) ([]*Feature, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GeoJSON: %w", err)
	}

	features := make([]*Feature, 0, len(fc.Features))
	for _, f := range fc.Features {
		var polygons []Polygon

		switch g := f.Geometry.(type) {
		case orb.Polygon:
			if p := convertPolygon(g); len(p) > 0 {
				polygons = append(polygons, p)
			}
		case orb.MultiPolygon:
			for _, poly := range g {
				if p := convertPolygon(poly); len(p) > 0 {
					polygons = append(polygons, p)
				}
			}
		default:
			continue
		}

		if len(polygons) == 0 {
			continue
		}

		name := f.Properties.MustString("name", "")
		if name == "" {
			name = f.Properties.MustString("NAME", "")
		}
		features = append(features, NewFeature(name, polygons))
	}

	return features, nil
}

func convertPolygon(poly orb.Polygon) Polygon {
	out := make(Polygon, 0, len(poly))
	for _, ring := range poly {
		r := make(Ring, 0, len(ring))
		for _, pt := range ring {
			ll := LatLon{Lat: pt.Lat(), Lon: pt.Lon()}
			if ll.Valid() {
				r = append(r, ll)
			}
		}
		if len(r) >= 3 {
			out = append(out, r)
		}
	}
	return out
}
