package grid

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// document is the on-disk JSON shape described in the spec's external grid
// interface: ascending lat/lon axes, an optional time_hours axis, an
// informational shape, and an open set of named variable arrays.
type document struct {
	Lat       []float64            `json:"lat"`
	Lon       []float64            `json:"lon"`
	TimeHours []float64            `json:"time_hours"`
	Shape     []int                `json:"shape"`
	Vars      map[string][]float64 `json:"-"`
}

// UnmarshalJSON captures the fixed keys (lat/lon/time_hours/shape) and
// treats every other top-level key as a named variable array, matching the
// spec's "the name→array map is open" design note.
func (d *document) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	for _, key := range []string{"lat", "lon", "time_hours", "shape"} {
		v, ok := raw[key]
		if !ok {
			continue
		}
		switch key {
		case "lat":
			if err := json.Unmarshal(v, &d.Lat); err != nil {
				return fmt.Errorf("decoding lat: %w", err)
			}
		case "lon":
			if err := json.Unmarshal(v, &d.Lon); err != nil {
				return fmt.Errorf("decoding lon: %w", err)
			}
		case "time_hours":
			if err := json.Unmarshal(v, &d.TimeHours); err != nil {
				return fmt.Errorf("decoding time_hours: %w", err)
			}
		case "shape":
			if err := json.Unmarshal(v, &d.Shape); err != nil {
				return fmt.Errorf("decoding shape: %w", err)
			}
		}
		delete(raw, key)
	}
	d.Vars = make(map[string][]float64, len(raw))
	for name, v := range raw {
		var arr []float64
		if err := json.Unmarshal(v, &arr); err != nil {
			// Non-numeric-array top-level keys are ignored rather than
			// rejected: the document format is open-ended.
			continue
		}
		d.Vars[name] = arr
	}
	return nil
}

// sanitize replaces non-finite values: 0 everywhere except in the land
// mask, where missing values become 1.0 ("land"), per the spec's FieldGrid
// invariant.
func sanitize(data []float64, isLandMask bool) {
	fill := 0.0
	if isLandMask {
		fill = 1.0
	}
	for i, v := range data {
		if !isFinite(v) {
			data[i] = fill
		}
	}
}

// fromDocument validates and builds a Grid from a parsed document. isLandMask
// controls the NaN-fill convention (see sanitize).
func fromDocument(d *document, isLandMask bool) (*Grid, error) {
	if err := validateAxis("lat", d.Lat); err != nil {
		return nil, err
	}
	if err := validateAxis("lon", d.Lon); err != nil {
		return nil, err
	}
	if len(d.TimeHours) > 0 {
		if err := validateAxis("time_hours", d.TimeHours); err != nil {
			return nil, err
		}
	}

	nLat, nLon := len(d.Lat), len(d.Lon)
	want := nLat * nLon
	if len(d.TimeHours) > 0 {
		want *= len(d.TimeHours)
	}

	for name, data := range d.Vars {
		sanitize(data, isLandMask)
		if err := validateVar(name, data, want); err != nil {
			return nil, err
		}
	}

	return New(d.Lat, d.Lon, d.TimeHours, d.Vars), nil
}

// Names of the four grid files consumed when present, and whether each is
// the land mask (for NaN-fill convention purposes).
var gridFiles = []struct {
	field      string
	file       string
	isLandMask bool
}{
	{"wind", "wind_grid.json", false},
	{"current", "current_grid.json", false},
	{"temperature", "temperature_grid.json", false},
	{"landmask", "landmask_grid.json", true},
}

// Set holds the four named grids the engine consumes, any of which may be
// nil when absent or rejected at load.
type Set struct {
	Wind        *Grid
	Current     *Grid
	Temperature *Grid
	LandMask    *Grid
}

// Any reports whether at least one grid in the set was loaded.
func (s *Set) Any() bool {
	return s.Wind != nil || s.Current != nil || s.Temperature != nil || s.LandMask != nil
}

// LoadDir attempts to load wind_grid.json, current_grid.json,
// temperature_grid.json, and landmask_grid.json from dir. A missing file is
// not an error: the corresponding slot stays nil. A malformed file (bad
// axes, length mismatch, NaN after sanitization) is logged and its slot
// also stays nil, per the spec's "malformed grid" error-taxonomy entry —
// the engine proceeds in scalar or partial-grid mode either way.
func LoadDir(dir string) (*Set, error) {
	set := &Set{}
	for _, gf := range gridFiles {
		path := filepath.Join(dir, gf.file)
		g, err := loadOne(path, gf.isLandMask)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			slog.Warn("grid: rejecting malformed file", "file", path, "error", err)
			continue
		}
		switch gf.field {
		case "wind":
			set.Wind = g
		case "current":
			set.Current = g
		case "temperature":
			set.Temperature = g
		case "landmask":
			set.LandMask = g
		}
	}
	return set, nil
}

func loadOne(path string, isLandMask bool) (*Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return fromDocument(&doc, isLandMask)
}
