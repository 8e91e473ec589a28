// Package telemetry aggregates per-tick simulation statistics into fixed
// windows for structured logging, and exports the raw per-tick statistics,
// the centroid trajectory, and a config snapshot as files.
package telemetry

import (
	"log/slog"

	"oilspill/simulate"
)

// WindowStats holds the averaged statistics for one stats window.
type WindowStats struct {
	WindowEndSec float64 `csv:"window_end_sec"`
	SimTimeSec   float64 `csv:"sim_time_sec"`

	RemainingPct  float64 `csv:"remaining_pct"`
	EvaporatedPct float64 `csv:"evaporated_pct"`
	DispersedPct  float64 `csv:"dispersed_pct"`
	EmulsionPct   float64 `csv:"emulsion_pct"`
	ViscosityMPas float64 `csv:"viscosity_mpas"`

	Beached     int     `csv:"beached"`
	AreaKm2     float64 `csv:"area_km2"`
	MaxDriftKm  float64 `csv:"max_drift_km"`
	CentroidLat float64 `csv:"centroid_lat"`
	CentroidLon float64 `csv:"centroid_lon"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("window_end_sec", s.WindowEndSec),
		slog.Float64("sim_time_sec", s.SimTimeSec),
		slog.Float64("remaining_pct", s.RemainingPct),
		slog.Float64("evaporated_pct", s.EvaporatedPct),
		slog.Float64("dispersed_pct", s.DispersedPct),
		slog.Float64("emulsion_pct", s.EmulsionPct),
		slog.Float64("viscosity_mpas", s.ViscosityMPas),
		slog.Int("beached", s.Beached),
		slog.Float64("area_km2", s.AreaKm2),
		slog.Float64("max_drift_km", s.MaxDriftKm),
		slog.Float64("centroid_lat", s.CentroidLat),
		slog.Float64("centroid_lon", s.CentroidLon),
	)
}

// LogStats logs the window stats via slog at Info level.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end_sec", s.WindowEndSec,
		"sim_time_sec", s.SimTimeSec,
		"remaining_pct", s.RemainingPct,
		"evaporated_pct", s.EvaporatedPct,
		"dispersed_pct", s.DispersedPct,
		"emulsion_pct", s.EmulsionPct,
		"viscosity_mpas", s.ViscosityMPas,
		"beached", s.Beached,
		"area_km2", s.AreaKm2,
		"max_drift_km", s.MaxDriftKm,
		"centroid_lat", s.CentroidLat,
		"centroid_lon", s.CentroidLon,
	)
}

// Collector accumulates per-tick Statistics samples within a time window and
// flushes their average as one WindowStats record.
type Collector struct {
	windowDurationSec float64
	windowStartSec    float64

	n int

	sumRemaining, sumEvaporated, sumDispersed, sumEmulsion, sumViscosity float64
	sumArea, sumMaxDrift, sumCentroidLat, sumCentroidLon                float64
	lastBeached                                                         int
}

// NewCollector creates a Collector that flushes every windowDurationSec
// simulation seconds.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 3600
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// Record folds one tick's Statistics snapshot into the current window.
func (c *Collector) Record(stats simulate.Statistics) {
	c.n++
	c.sumRemaining += stats.RemainingPct
	c.sumEvaporated += stats.EvaporatedPct
	c.sumDispersed += stats.DispersedPct
	c.sumEmulsion += stats.EmulsionPct
	c.sumViscosity += stats.Viscosity
	c.sumArea += stats.AreaKm2
	c.sumMaxDrift += stats.MaxDriftKm
	c.sumCentroidLat += stats.CentroidLat
	c.sumCentroidLon += stats.CentroidLon
	c.lastBeached = stats.Beached
}

// ShouldFlush reports whether enough simulation time has elapsed since the
// last flush (or since construction) to close out the current window.
func (c *Collector) ShouldFlush(timeSeconds float64) bool {
	return timeSeconds-c.windowStartSec >= c.windowDurationSec
}

// Flush produces a WindowStats averaging every sample recorded since the
// last flush (Beached is the latest recorded count, not an average), and
// resets the accumulator for the next window.
func (c *Collector) Flush(timeSeconds float64) WindowStats {
	n := float64(c.n)
	if n == 0 {
		n = 1
	}
	stats := WindowStats{
		WindowEndSec:  timeSeconds,
		SimTimeSec:    timeSeconds,
		RemainingPct:  c.sumRemaining / n,
		EvaporatedPct: c.sumEvaporated / n,
		DispersedPct:  c.sumDispersed / n,
		EmulsionPct:   c.sumEmulsion / n,
		ViscosityMPas: c.sumViscosity / n,
		Beached:       c.lastBeached,
		AreaKm2:       c.sumArea / n,
		MaxDriftKm:    c.sumMaxDrift / n,
		CentroidLat:   c.sumCentroidLat / n,
		CentroidLon:   c.sumCentroidLon / n,
	}

	c.windowStartSec = timeSeconds
	c.n = 0
	c.sumRemaining, c.sumEvaporated, c.sumDispersed, c.sumEmulsion, c.sumViscosity = 0, 0, 0, 0, 0
	c.sumArea, c.sumMaxDrift, c.sumCentroidLat, c.sumCentroidLon = 0, 0, 0, 0

	return stats
}
