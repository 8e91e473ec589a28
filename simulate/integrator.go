package simulate

import (
	"math"

	"oilspill/config"
	"oilspill/grid"
	"oilspill/oil"
	"oilspill/particle"
	"oilspill/weathering"
)

// scalarField bundles the three quantities the per-particle drift step needs
// when either grid mode is disabled or a particle falls outside grid
// coverage.
type scalarField struct {
	TotalU, TotalV float64 // m/s, east/north
	D              float64 // m^2/s diffusivity
}

// Integrator advances particle state one time step at a time: release
// scheduling, global weathering, the scalar-field fallback precompute, and
// the per-particle drift/diffusion/grounding update.
type Integrator struct {
	cfg   *config.Config
	grids *grid.Set
	rng   *rngSource
}

// NewIntegrator builds an Integrator bound to the given configuration, grid
// set (may be nil or empty), and RNG source.
func NewIntegrator(cfg *config.Config, grids *grid.Set, rng *rngSource) *Integrator {
	return &Integrator{cfg: cfg, grids: grids, rng: rng}
}

func (in *Integrator) usingGrid() bool {
	return in.cfg.Environment.UseGridData && in.grids != nil && in.grids.Any()
}

// scalarWindSpeed is the time-perturbed scalar wind used both by the scalar
// drift fallback and, in non-grid mode, by global weathering.
func (in *Integrator) scalarWindSpeed(timeSeconds float64) float64 {
	return in.cfg.Environment.WindSpeed * (1 + 0.1*math.Sin(timeSeconds*0.0002))
}

// representativeWeatheringWind picks the wind speed fed to the global
// weathering computation: a fixed representative value in grid mode (§9:
// weathering does not see spatial wind variability), else the perturbed
// scalar wind.
func (in *Integrator) representativeWeatheringWind(timeSeconds float64) float64 {
	if in.usingGrid() {
		return representativeGridWindSpeed
	}
	return in.scalarWindSpeed(timeSeconds)
}

// scalarPrecompute computes the fallback drift/diffusivity field shared by
// every particle that has no grid coverage this step.
func (in *Integrator) scalarPrecompute(timeSeconds float64) scalarField {
	env := in.cfg.Environment

	ws := in.scalarWindSpeed(timeSeconds)
	wd := env.WindDir + 5*math.Sin(timeSeconds*0.0003)
	cs := env.CurrentSpeed * (1 + 0.05*math.Sin(timeSeconds*0.0005))
	cd := env.CurrentDir + 3*math.Cos(timeSeconds*0.0004)

	thetaWind := (wd + 180) * deg2rad
	driftU := ws * 0.03 * math.Sin(thetaWind+ekmanDeflectionRad)
	driftV := ws * 0.03 * math.Cos(thetaWind+ekmanDeflectionRad)

	uc := cs * math.Sin(cd*deg2rad)
	vc := cs * math.Cos(cd*deg2rad)

	return scalarField{
		TotalU: driftU + uc,
		TotalV: driftV + vc,
		D:      1 + 0.5*ws,
	}
}

// gridPrecompute samples the wind/current grids at p's position, if either
// covers it, and derives the same drift/diffusivity shape as the scalar
// path. ok is false when neither grid covers p, meaning the caller should
// fall back to the scalar field.
func (in *Integrator) gridPrecompute(lat, lon, gridTimeHours float64) (field scalarField, ok bool) {
	var u10, v10, uo, vo float64
	var windHit, currentHit bool

	if in.grids.Wind != nil && in.grids.Wind.Contains(lat, lon) {
		u10 = in.grids.Wind.Sample("u10", lat, lon, gridTimeHours)
		v10 = in.grids.Wind.Sample("v10", lat, lon, gridTimeHours)
		windHit = true
	}
	if in.grids.Current != nil && in.grids.Current.Contains(lat, lon) {
		uo = in.grids.Current.Sample("uo", lat, lon, gridTimeHours)
		vo = in.grids.Current.Sample("vo", lat, lon, gridTimeHours)
		currentHit = true
	}
	if !windHit && !currentHit {
		return scalarField{}, false
	}

	wp := math.Hypot(u10, v10)
	theta := math.Atan2(u10, v10)
	driftU := wp * 0.03 * math.Sin(theta+ekmanDeflectionRad)
	driftV := wp * 0.03 * math.Cos(theta+ekmanDeflectionRad)

	return scalarField{
		TotalU: driftU + uo,
		TotalV: driftV + vo,
		D:      1 + 0.5*wp,
	}, true
}

// Step advances st by one integrator time step: release, global weathering,
// per-particle drift/diffusion/grounding, time advancement, and trajectory
// sampling.
func (in *Integrator) Step(st *State) {
	dt := float64(in.cfg.Engine.TimeStepSeconds)

	in.release(st, dt)

	elapsedHours := st.Time / 3600
	w := in.representativeWeatheringWind(st.Time)
	props := in.cfg.Derived.OilProperties
	ws := weathering.Compute(elapsedHours, in.cfg.Environment.WaterTemp, w, props.EvapRate, props.VolatileFrac, props.Dispersibility)

	useGrid := in.usingGrid()
	fallback := in.scalarPrecompute(st.Time)
	gridTimeHours := st.Time/3600 + in.cfg.Environment.GridTimeOffsetHours

	oilMassTotalKg := in.cfg.Spill.OilVolume * 1000
	n := float64(in.cfg.Engine.ParticleCount)
	massPerParticle := oilMassTotalKg / n

	for i := range st.Particles {
		p := &st.Particles[i]
		if !p.Active {
			continue
		}
		in.stepParticle(p, dt, ws, props, massPerParticle, useGrid, fallback, gridTimeHours)
	}

	st.Time += dt
	in.sampleTrajectory(st, dt)
}

// stepParticle applies weathering bookkeeping, mass/thickness update, drift,
// turbulent diffusion, and grounding to one active particle.
func (in *Integrator) stepParticle(p *particle.Particle, dt float64, ws weathering.State, props oil.Properties, massPerParticle float64, useGrid bool, fallback scalarField, gridTimeHours float64) {
	p.Age += dt

	p.Evaporated = math.Min(ws.Evaporated, props.VolatileFrac)
	p.Dispersed = ws.Dispersed
	p.EmulsionWater = ws.EmulsionWater
	p.Viscosity = props.ViscosityMPaS * weathering.ViscosityMultiplier(p.Evaporated, p.EmulsionWater)

	remaining := 1 - p.Evaporated - p.Dispersed
	if remaining < minResidualFraction {
		p.Active = false
		return
	}
	p.Mass = massPerParticle * remaining
	if p.Age > 0 {
		p.Thickness = 0.01 * math.Pow(p.Age/3600, -1.0/3.0)
	}

	field := fallback
	if useGrid {
		if f, ok := in.gridPrecompute(p.Lat, p.Lon, gridTimeHours); ok {
			field = f
		}
	}

	xiU := in.rng.standardNormal()
	xiV := in.rng.standardNormal()
	spread := math.Sqrt(2 * field.D * dt)
	ru := xiU * spread
	rv := xiV * spread

	du := field.TotalU*dt + ru
	dv := field.TotalV*dt + rv

	dLat := (dv / earthRadiusMeters) * rad2deg
	dLon := (du / (earthRadiusMeters * math.Cos(clampLat(p.Lat)*deg2rad))) * rad2deg

	p.Lat += dLat
	p.Lon += dLon

	if in.grids != nil && in.grids.LandMask != nil && in.grids.LandMask.Contains(p.Lat, p.Lon) {
		lsm := in.grids.LandMask.Sample("lsm", p.Lat, p.Lon, 0)
		if lsm > 0.5 {
			p.Lat -= dLat
			p.Lon -= dLon
			p.Active = false
			p.Beached = true
		}
	}
}

// release activates newly due particles under the continuous release
// schedule. It is a no-op for instant spills, which release everything at
// Initialize.
func (in *Integrator) release(st *State, dt float64) {
	if in.cfg.Spill.Mode != "continuous" {
		return
	}
	n := in.cfg.Engine.ParticleCount
	if st.ParticlesReleased >= n {
		return
	}
	durationSeconds := in.cfg.Spill.DurationHour * 3600
	if st.Time >= durationSeconds {
		return
	}

	target := int(math.Floor((st.Time + dt) / durationSeconds * float64(n)))
	if target > n {
		target = n
	}
	for i := st.ParticlesReleased; i < target; i++ {
		p := &st.Particles[i]
		lat, lon := in.rng.diskSample(in.cfg.Spill.Lat, in.cfg.Spill.Lng, continuousReleaseRadiusMeters)
		p.Lat = lat
		p.Lon = lon
		p.Age = 0
		p.Active = true
		p.Released = true
	}
	if target > st.ParticlesReleased {
		st.ParticlesReleased = target
	}
}

// sampleTrajectory appends one centroid point whenever st.Time crosses an
// hour boundary this step. It compares floor(time/3600) before and after the
// step instead of testing time mod 3600 < dt, so it also holds when dt does
// not divide 3600 (see SPEC_FULL.md §9).
func (in *Integrator) sampleTrajectory(st *State, dt float64) {
	prevHour := math.Floor((st.Time - dt) / 3600)
	curHour := math.Floor(st.Time / 3600)
	if curHour <= prevHour {
		return
	}

	var sumLat, sumLon float64
	var n float64
	for i := range st.Particles {
		p := &st.Particles[i]
		if !p.Active {
			continue
		}
		sumLat += p.Lat
		sumLon += p.Lon
		n++
	}
	if n == 0 {
		return
	}
	st.Trajectory = append(st.Trajectory, TrajectoryPoint{
		TimeSeconds: st.Time,
		CentroidLat: sumLat / n,
		CentroidLon: sumLon / n,
	})
}
