package geo

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ItineraryLoader loads waypoints from a JSON or CSV itinerary file
type ItineraryLoader struct {
	path string
}

// NewItineraryLoader creates a new itinerary loader
func NewItineraryLoader(path string) *ItineraryLoader {
	return &ItineraryLoader{
		path: path,
	}
}

// Load reads the itinerary. Files ending in .csv are read as CSV, anything
// else as JSON. Entries with out-of-range coordinates are skipped.
func (l *ItineraryLoader) Load() ([]Waypoint, error) {
	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open itinerary: %w", err)
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(l.path), ".csv") {
		return ReadItineraryCSV(file)
	}
	return ReadItineraryJSON(file)
}

// itineraryEntry is one element of the JSON itinerary array:
// [{"date": "2023-03-25", "lat": 48.85, "lon": 2.35}, ...]
type itineraryEntry struct {
	Date string   `json:"date"`
	Lat  *float64 `json:"lat"`
	Lon  *float64 `json:"lon"`
}

// ReadItineraryJSON decodes a JSON itinerary array
func ReadItineraryJSON(r io.Reader) ([]Waypoint, error) {
	var entries []itineraryEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode itinerary JSON: %w", err)
	}

	waypoints := make([]Waypoint, 0, len(entries))
	for _, e := range entries {
		if e.Lat == nil || e.Lon == nil {
			continue
		}
		wp := Waypoint{LatLon: LatLon{Lat: *e.Lat, Lon: *e.Lon}, Date: e.Date}
		if !wp.Valid() {
			continue
		}
		waypoints = append(waypoints, wp)
	}

	return waypoints, nil
}

// ReadItineraryCSV reads a CSV itinerary with a header row containing at
// least "lat" and "lon" columns, and optionally "date"
func ReadItineraryCSV(r io.Reader) ([]Waypoint, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIndices := make(map[string]int)
	for i, col := range header {
		colIndices[strings.ToLower(strings.TrimSpace(col))] = i
	}

	for _, col := range []string{"lat", "lon"} {
		if _, ok := colIndices[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}
	dateIdx, hasDate := colIndices["date"]

	var waypoints []Waypoint

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		lat, err := parseField(record, colIndices["lat"])
		if err != nil {
			continue
		}

		lon, err := parseField(record, colIndices["lon"])
		if err != nil {
			continue
		}

		wp := Waypoint{LatLon: LatLon{Lat: lat, Lon: lon}}
		if hasDate && dateIdx < len(record) {
			wp.Date = strings.TrimSpace(record[dateIdx])
		}
		if !wp.Valid() {
			continue
		}

		waypoints = append(waypoints, wp)
	}

	return waypoints, nil
}

func parseField(record []string, idx int) (float64, error) {
	if idx >= len(record) {
		return 0, fmt.Errorf("column %d missing", idx)
	}
	return strconv.ParseFloat(strings.TrimSpace(record[idx]), 64)
}

// LoadBorders loads borders from a shapefile (.shp) or GeoJSON file
func LoadBorders(path string) ([]*Feature, error) {
	if strings.EqualFold(filepath.Ext(path), ".shp") {
		return LoadShapefile(path)
	}
	return LoadGeoJSON(path)
}

// LoadDataset loads borders and itinerary. A dataset that fails to load is
// reported through warn and left empty, so the globe can still be shown.
func LoadDataset(bordersPath, itineraryPath string, warn func(format string, args ...interface{})) *Dataset {
	ds := &Dataset{
		Borders:   []*Feature{},
		Waypoints: []Waypoint{},
	}

	if bordersPath != "" {
		borders, err := LoadBorders(bordersPath)
		if err != nil {
			warn("failed to load borders: %v", err)
		} else {
			ds.Borders = borders
		}
	}

	if itineraryPath != "" {
		waypoints, err := NewItineraryLoader(itineraryPath).Load()
		if err != nil {
			warn("failed to load itinerary: %v", err)
		} else {
			ds.Waypoints = waypoints
		}
	}

	return ds
}
