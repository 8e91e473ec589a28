package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"oilspill/config"
	"oilspill/simulate"
)

// StatsRow is one on_update's raw (unwindowed) Statistics snapshot, written
// to stats.csv.
type StatsRow struct {
	TimeSeconds float64 `csv:"time_seconds"`

	Beached     int     `csv:"beached"`
	CentroidLat float64 `csv:"centroid_lat"`
	CentroidLon float64 `csv:"centroid_lon"`
	AreaKm2     float64 `csv:"area_km2"`
	MaxDriftKm  float64 `csv:"max_drift_km"`

	EvaporatedPct float64 `csv:"evaporated_pct"`
	DispersedPct  float64 `csv:"dispersed_pct"`
	EmulsionPct   float64 `csv:"emulsion_pct"`
	RemainingPct  float64 `csv:"remaining_pct"`
	ViscosityMPas float64 `csv:"viscosity_mpas"`
}

// NewStatsRow converts a simulate.Statistics snapshot at timeSeconds into
// its CSV row form.
func NewStatsRow(timeSeconds float64, s simulate.Statistics) StatsRow {
	return StatsRow{
		TimeSeconds:   timeSeconds,
		Beached:       s.Beached,
		CentroidLat:   s.CentroidLat,
		CentroidLon:   s.CentroidLon,
		AreaKm2:       s.AreaKm2,
		MaxDriftKm:    s.MaxDriftKm,
		EvaporatedPct: s.EvaporatedPct,
		DispersedPct:  s.DispersedPct,
		EmulsionPct:   s.EmulsionPct,
		RemainingPct:  s.RemainingPct,
		ViscosityMPas: s.Viscosity,
	}
}

// TrajectoryRow is one centroid sample, written to trajectory.csv.
type TrajectoryRow struct {
	TimeSeconds float64 `csv:"time_seconds"`
	CentroidLat float64 `csv:"centroid_lat"`
	CentroidLon float64 `csv:"centroid_lon"`
}

// OutputManager handles structured run output: stats.csv (one row per
// on_update), trajectory.csv (written once, at the end of a run), and a
// config.yaml snapshot of the run's configuration.
type OutputManager struct {
	dir       string
	statsFile *os.File

	statsHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output
// directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	statsPath := filepath.Join(dir, "stats.csv")
	f, err := os.Create(statsPath)
	if err != nil {
		return nil, fmt.Errorf("creating stats.csv: %w", err)
	}

	return &OutputManager{dir: dir, statsFile: f}, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

// WriteStats appends one raw Statistics row to stats.csv.
func (om *OutputManager) WriteStats(row StatsRow) error {
	if om == nil {
		return nil
	}

	records := []StatsRow{row}

	if !om.statsHeaderWritten {
		if err := gocsv.Marshal(records, om.statsFile); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
		om.statsHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.statsFile); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
	}

	return nil
}

// WriteTrajectory writes the full trajectory to trajectory.csv in one pass,
// intended to be called once a run completes.
func (om *OutputManager) WriteTrajectory(points []simulate.TrajectoryPoint) error {
	if om == nil {
		return nil
	}

	rows := make([]TrajectoryRow, len(points))
	for i, p := range points {
		rows[i] = TrajectoryRow{TimeSeconds: p.TimeSeconds, CentroidLat: p.CentroidLat, CentroidLon: p.CentroidLon}
	}

	trajectoryPath := filepath.Join(om.dir, "trajectory.csv")
	f, err := os.Create(trajectoryPath)
	if err != nil {
		return fmt.Errorf("creating trajectory.csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal(rows, f); err != nil {
		return fmt.Errorf("writing trajectory: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes the stats file.
func (om *OutputManager) Close() error {
	if om == nil || om.statsFile == nil {
		return nil
	}
	return om.statsFile.Close()
}
