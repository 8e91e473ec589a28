// Command oilspill runs the oil-spill drift and weathering simulation
// headlessly, ticking the engine to completion and optionally exporting
// per-tick stats, the centroid trajectory, and a config snapshot.
package main

import (
	"flag"
	"log/slog"
	"os"

	"oilspill/config"
	"oilspill/grid"
	"oilspill/simulate"
	"oilspill/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	gridDir := flag.String("grid-dir", "", "Directory containing *_grid.json files (empty = use config.environment.grid_dir)")
	outputDir := flag.String("output-dir", "", "Output directory for telemetry CSV and config snapshot (empty = use config.telemetry.output_dir)")
	seed := flag.Int64("seed", 0, "RNG seed override (0 = use config.engine.seed)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = run to max_time_seconds)")
	stepsPerTick := flag.Int("steps-per-tick", 0, "Integrator steps per tick (0 = use config.engine.playback_speed)")
	logStats := flag.Bool("log-stats", false, "Log windowed stats via slog (0 = use config.telemetry.log_stats)")

	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *seed != 0 {
		cfg.Engine.Seed = *seed
	}
	if *stepsPerTick > 0 {
		cfg.Engine.PlaybackSpeed = *stepsPerTick
	}
	dir := cfg.Environment.GridDir
	if *gridDir != "" {
		dir = *gridDir
	}
	outDir := cfg.Telemetry.OutputDir
	if *outputDir != "" {
		outDir = *outputDir
	}
	logStatsEnabled := cfg.Telemetry.LogStats || *logStats

	var grids *grid.Set
	if cfg.Environment.UseGridData && dir != "" {
		g, err := grid.LoadDir(dir)
		if err != nil {
			slog.Error("failed to load grids", "dir", dir, "error", err)
			os.Exit(1)
		}
		grids = g
		slog.Info("loaded grid set", "dir", dir,
			"wind", grids.Wind != nil, "current", grids.Current != nil,
			"temperature", grids.Temperature != nil, "landmask", grids.LandMask != nil)
	}

	out, err := telemetry.NewOutputManager(outDir)
	if err != nil {
		slog.Error("failed to initialize output", "error", err)
		os.Exit(1)
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		slog.Warn("failed to write config snapshot", "error", err)
	}

	collector := telemetry.NewCollector(cfg.Telemetry.StatsWindowSeconds)

	driver := simulate.NewDriver(cfg, grids)

	tick := 0
	driver.OnComplete(func() {
		slog.Info("simulation completed", "tick", tick, "time_seconds", driver.State().Time)
	})

	if err := driver.Start(); err != nil {
		slog.Error("failed to start simulation", "error", err)
		os.Exit(1)
	}

	slog.Info("starting headless simulation",
		"seed", cfg.Engine.Seed,
		"particle_count", cfg.Engine.ParticleCount,
		"spill_mode", cfg.Spill.Mode,
		"max_time_seconds", cfg.Engine.MaxTimeSeconds,
		"steps_per_tick", cfg.Engine.PlaybackSpeed,
	)

	for driver.Phase() != simulate.Completed {
		driver.Tick()
		tick++

		st := driver.State()
		if err := out.WriteStats(telemetry.NewStatsRow(st.Time, st.Stats)); err != nil {
			slog.Warn("failed to write stats", "error", err)
		}

		collector.Record(st.Stats)
		if collector.ShouldFlush(st.Time) {
			window := collector.Flush(st.Time)
			if logStatsEnabled {
				window.LogStats()
			}
		}

		if *maxTicks > 0 && tick >= *maxTicks {
			slog.Info("max ticks reached", "tick", tick)
			break
		}
	}

	if err := out.WriteTrajectory(driver.State().Trajectory); err != nil {
		slog.Warn("failed to write trajectory", "error", err)
	}
}
