// Package oil holds the static catalog of oil-kind physical properties
// consumed by the weathering submodel and the integrator.
package oil

import "fmt"

// Kind identifies one of the supported oil types.
type Kind string

const (
	Crude    Kind = "crude"
	Fuel     Kind = "fuel"
	Diesel   Kind = "diesel"
	Gasoline Kind = "gasoline"
)

// Properties holds the physical constants for one oil kind.
type Properties struct {
	Kind            Kind
	DensityKgM3     float64
	ViscosityMPaS   float64
	API             float64
	EvapRate        float64
	PourPointC      float64
	VolatileFrac    float64
	Dispersibility  float64
}

// table is the mandatory, no-rounding-latitude catalog from the spec.
var table = map[Kind]Properties{
	Crude: {
		Kind: Crude, DensityKgM3: 860, ViscosityMPaS: 12, API: 33,
		EvapRate: 0.042, PourPointC: -15, VolatileFrac: 0.25, Dispersibility: 0.5,
	},
	Fuel: {
		Kind: Fuel, DensityKgM3: 950, ViscosityMPaS: 180, API: 17,
		EvapRate: 0.015, PourPointC: 10, VolatileFrac: 0.08, Dispersibility: 0.2,
	},
	Diesel: {
		Kind: Diesel, DensityKgM3: 840, ViscosityMPaS: 4, API: 37,
		EvapRate: 0.065, PourPointC: -30, VolatileFrac: 0.45, Dispersibility: 0.7,
	},
	Gasoline: {
		Kind: Gasoline, DensityKgM3: 740, ViscosityMPaS: 0.6, API: 60,
		EvapRate: 0.12, PourPointC: -60, VolatileFrac: 0.80, Dispersibility: 0.9,
	},
}

// Lookup returns the properties for kind, or an error if kind is unknown.
func Lookup(kind Kind) (Properties, error) {
	p, ok := table[kind]
	if !ok {
		return Properties{}, fmt.Errorf("oil: unknown oil kind %q", kind)
	}
	return p, nil
}

// Valid reports whether kind is one of the catalogued oil types.
func Valid(kind Kind) bool {
	_, ok := table[kind]
	return ok
}
