package simulate

import (
	"fmt"

	"oilspill/config"
	"oilspill/grid"
	"oilspill/particle"
)

// Phase is the driver's run state.
type Phase int

const (
	Idle Phase = iota
	Running
	Paused
	Completed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Driver owns the simulation state machine: idle -> running -> (paused <->
// running) -> completed. It builds the particle population on first Start,
// advances it tick by tick, and notifies registered callbacks.
type Driver struct {
	cfg   *config.Config
	grids *grid.Set

	integrator *Integrator
	rng        *rngSource

	phase     Phase
	started   bool
	simState  State
	onUpdate  func(particles []particle.Particle, stats Statistics, timeSeconds float64)
	onComplete func()
}

// NewDriver builds a Driver for the given (already-validated) config and
// grid set. grids may be nil.
func NewDriver(cfg *config.Config, grids *grid.Set) *Driver {
	rng := newRNG(cfg.Engine.Seed)
	return &Driver{
		cfg:        cfg,
		grids:      grids,
		integrator: NewIntegrator(cfg, grids, rng),
		rng:        rng,
		phase:      Idle,
	}
}

// OnUpdate registers the callback fired once per Tick with the current
// particle snapshot and statistics.
func (d *Driver) OnUpdate(fn func(particles []particle.Particle, stats Statistics, timeSeconds float64)) {
	d.onUpdate = fn
}

// OnComplete registers the callback fired once when the driver transitions
// to Completed.
func (d *Driver) OnComplete(fn func()) {
	d.onComplete = fn
}

// Phase reports the driver's current run state.
func (d *Driver) Phase() Phase { return d.phase }

// State returns the current simulation state. The returned pointer aliases
// internal storage and must not be mutated by the caller.
func (d *Driver) State() *State { return &d.simState }

// Initialize builds the particle population according to the configured
// spill mode. Instant spills release every particle immediately at an
// area-uniform disk sample around the spill point; continuous spills start
// every particle inactive, colocated at the spill point, to be released by
// the integrator's release schedule.
func (d *Driver) Initialize() error {
	n := d.cfg.Engine.ParticleCount
	if n <= 0 {
		return fmt.Errorf("simulate: particle_count must be positive, got %d", n)
	}

	particles := make([]particle.Particle, n)
	switch d.cfg.Spill.Mode {
	case "instant":
		for i := range particles {
			lat, lon := d.rng.diskSample(d.cfg.Spill.Lat, d.cfg.Spill.Lng, instantReleaseRadiusMeters)
			particles[i] = particle.Particle{
				Lat: lat, Lon: lon,
				Active: true, Released: true,
			}
		}
	case "continuous":
		for i := range particles {
			particles[i] = particle.Particle{
				Lat: d.cfg.Spill.Lat, Lon: d.cfg.Spill.Lng,
			}
		}
	default:
		return fmt.Errorf("simulate: unknown spill mode %q", d.cfg.Spill.Mode)
	}

	released := 0
	if d.cfg.Spill.Mode == "instant" {
		released = n
	}

	d.simState = State{
		Time:              0,
		Particles:         particles,
		ParticlesReleased: released,
		Trajectory:        nil,
		Stats:             initialStatistics(d.cfg.Spill.Lat, d.cfg.Spill.Lng),
	}
	d.phase = Idle
	d.started = true
	return nil
}

// Start transitions the driver to Running, initializing the particle
// population first if this is the first Start call.
func (d *Driver) Start() error {
	if !d.started {
		if err := d.Initialize(); err != nil {
			return err
		}
	}
	if d.phase == Completed {
		return nil
	}
	d.phase = Running
	return nil
}

// Pause transitions Running to Paused; a no-op in any other phase.
func (d *Driver) Pause() {
	if d.phase == Running {
		d.phase = Paused
	}
}

// Resume transitions Paused back to Running; a no-op in any other phase.
func (d *Driver) Resume() {
	if d.phase == Paused {
		d.phase = Running
	}
}

// Reset returns the driver to Idle with an empty simulation state,
// regardless of current phase. The next Start re-initializes the particle
// population.
func (d *Driver) Reset() {
	d.phase = Idle
	d.started = false
	d.simState = State{}
}

// Tick advances the simulation by up to playback_speed integrator steps and
// fires exactly one on_update callback, unless the driver is not Running or
// is already Completed. Completion is detected at the start of a tick: if
// elapsed time has already reached max_time_seconds, the driver transitions
// to Completed and fires on_complete instead of advancing further.
func (d *Driver) Tick() {
	if d.phase != Running {
		return
	}

	maxTime := float64(d.cfg.Engine.MaxTimeSeconds)
	if d.simState.Time >= maxTime {
		d.phase = Completed
		if d.onComplete != nil {
			d.onComplete()
		}
		return
	}

	steps := d.cfg.Engine.PlaybackSpeed
	for i := 0; i < steps; i++ {
		if d.simState.Time >= maxTime {
			break
		}
		d.integrator.Step(&d.simState)
		d.simState.Stats = computeStatistics(d.simState.Particles, d.cfg.Spill.Lat, d.cfg.Spill.Lng, d.simState.Stats)
	}

	if d.onUpdate != nil {
		d.onUpdate(d.simState.Particles, d.simState.Stats, d.simState.Time)
	}
}

// RunUntil ticks the driver until it reaches Completed, calling Tick
// repeatedly. maxTicks bounds iteration as a safety net against a
// misconfigured driver that never completes.
func (d *Driver) RunUntil(maxTicks int) {
	for i := 0; i < maxTicks && d.phase != Completed; i++ {
		d.Tick()
	}
}
