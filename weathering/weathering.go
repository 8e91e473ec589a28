// Package weathering implements the pure, global-over-all-parcels oil
// weathering curves: evaporation, natural dispersion, emulsification, and
// the viscosity multiplier they induce.
package weathering

import "math"

// Evaporation returns the evaporated mass fraction after h elapsed hours,
// given water temperature T (°C), representative wind speed w (m/s), the
// oil's base evaporation rate evapRate, and its volatile fraction cap.
func Evaporation(h, t, w, evapRate, volatileFrac float64) float64 {
	if h <= 0 {
		return 0
	}
	k := evapRate * (1 + 0.045*(t-15))
	return math.Min(k*math.Sqrt(h)*(1+0.01*w), volatileFrac)
}

// Dispersion returns the naturally dispersed mass fraction after h elapsed
// hours, given representative wind speed w (m/s) and the oil's
// dispersibility.
func Dispersion(h, w, dispersibility float64) float64 {
	if h <= 0 || w < 5 {
		return 0
	}
	return math.Min(0.0034*dispersibility*(w*w*0.001)*h, 0.3)
}

// Emulsion returns the water-uptake fraction after h elapsed hours, given
// representative wind speed w (m/s).
func Emulsion(h, w float64) float64 {
	if h <= 0 || w < 3 {
		return 0
	}
	ka := 2e-6 * (w + 1) * (w + 1)
	return math.Min(0.7*(1-math.Exp(-ka*h*3600)), 0.7)
}

// ViscosityMultiplier returns the multiplicative factor applied to base
// viscosity given evaporated fraction fe and emulsion water fraction y.
func ViscosityMultiplier(fe, y float64) float64 {
	return math.Exp(5*fe) * math.Pow(1-y, -2.5)
}

// State bundles the three global weathering fractions computed once per
// integrator step.
type State struct {
	Evaporated    float64
	Dispersed     float64
	EmulsionWater float64
}

// Compute evaluates all three curves at once for elapsed hours h, water
// temperature t, representative wind w, base evaporation rate evapRate,
// volatile fraction volatileFrac, and dispersibility.
func Compute(h, t, w, evapRate, volatileFrac, dispersibility float64) State {
	return State{
		Evaporated:    Evaporation(h, t, w, evapRate, volatileFrac),
		Dispersed:     Dispersion(h, w, dispersibility),
		EmulsionWater: Emulsion(h, w),
	}
}
