// Package particle defines the per-parcel state mutated by the integrator.
package particle

// Particle is a single tagged oil parcel.
//
// Invariants: Evaporated+Dispersed <= 1; EmulsionWater <= 0.7; Beached implies
// !Active; Active implies !Beached.
type Particle struct {
	Lat, Lon float64

	Mass      float64 // kg, current residual mass
	Age       float64 // seconds since release
	Thickness float64 // meters, Fay film thickness

	Evaporated    float64 // fraction in [0,1]
	Dispersed     float64 // fraction in [0,1]
	EmulsionWater float64 // fraction in [0,0.7]

	Viscosity float64 // mPa·s

	Active  bool
	Beached bool

	// Released is true once the release schedule has activated this
	// particle for the first time. It stays true afterward, including
	// once the particle deactivates from low residual mass or beaches,
	// so the driver can distinguish "not yet released" from "released
	// then deactivated" (both have Active=false, Beached=false).
	Released bool
}

// Deactivated reports whether the particle was taken out of advection
// because its residual mass dropped below threshold, as opposed to beaching
// or simply not having been released yet (continuous mode).
func (p *Particle) Deactivated() bool {
	return p.Released && !p.Active && !p.Beached
}
