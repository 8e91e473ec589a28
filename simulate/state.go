package simulate

import "oilspill/particle"

// TrajectoryPoint is one centroid sample recorded at an hour boundary.
type TrajectoryPoint struct {
	TimeSeconds              float64
	CentroidLat, CentroidLon float64
}

// State is the full mutable simulation state advanced by the Integrator and
// read by Statistics and the telemetry layer.
type State struct {
	Time              float64
	Particles         []particle.Particle
	ParticlesReleased int
	Trajectory        []TrajectoryPoint
	Stats             Statistics
}
