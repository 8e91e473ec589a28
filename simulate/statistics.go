package simulate

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"oilspill/particle"
)

// Statistics is a snapshot aggregated from the active particle population
// after a single integrator step.
type Statistics struct {
	Beached int

	CentroidLat, CentroidLon float64
	AreaKm2                  float64
	MaxDriftKm               float64

	EvaporatedPct float64
	DispersedPct  float64
	EmulsionPct   float64
	RemainingPct  float64
	Viscosity     float64
}

// initialStatistics is the snapshot a freshly initialized driver reports,
// per the spec's Initialize contract.
func initialStatistics(spillLat, spillLon float64) Statistics {
	return Statistics{
		RemainingPct: 100,
		CentroidLat:  spillLat,
		CentroidLon:  spillLon,
	}
}

// computeStatistics scans particles and produces a new Statistics snapshot.
// When no particle is active, centroid/area/maxDrift are carried over from
// prev and only Beached is refreshed.
func computeStatistics(particles []particle.Particle, spillLat, spillLon float64, prev Statistics) Statistics {
	beached := 0
	var active []*particle.Particle
	for i := range particles {
		p := &particles[i]
		if p.Beached {
			beached++
		}
		if p.Active {
			active = append(active, p)
		}
	}

	if len(active) == 0 {
		stats := prev
		stats.Beached = beached
		return stats
	}

	lats := make([]float64, len(active))
	lons := make([]float64, len(active))
	for i, p := range active {
		lats[i] = p.Lat
		lons[i] = p.Lon
	}
	centroidLat := stat.Mean(lats, nil)
	centroidLon := stat.Mean(lons, nil)

	n := float64(len(active))
	var varLat, varLon float64
	for _, p := range active {
		dLat := p.Lat - centroidLat
		dLon := p.Lon - centroidLon
		varLat += dLat * dLat
		varLon += dLon * dLon
	}
	sigmaLat := math.Sqrt(varLat / n)
	sigmaLon := math.Sqrt(varLon / n)

	const kmPerDegLat = 111.32
	latKm := sigmaLat * kmPerDegLat
	lonKm := sigmaLon * kmPerDegLat * math.Cos(centroidLat*deg2rad)
	area := math.Pi * (2 * latKm) * (2 * lonKm)

	maxDriftKm := 0.0
	for _, p := range active {
		d := haversineMeters(spillLat, spillLon, p.Lat, p.Lon) / 1000
		if d > maxDriftKm {
			maxDriftKm = d
		}
	}

	rep := active[0]
	return Statistics{
		Beached:       beached,
		CentroidLat:   centroidLat,
		CentroidLon:   centroidLon,
		AreaKm2:       area,
		MaxDriftKm:    maxDriftKm,
		EvaporatedPct: rep.Evaporated * 100,
		DispersedPct:  rep.Dispersed * 100,
		EmulsionPct:   rep.EmulsionWater * 100,
		RemainingPct:  (1 - rep.Evaporated - rep.Dispersed) * 100,
		Viscosity:     rep.Viscosity,
	}
}

// haversineMeters returns the great-circle distance between two lat/lon
// points in meters, using Earth radius 6,371,000 m.
func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * deg2rad
	phi2 := lat2 * deg2rad
	dPhi := (lat2 - lat1) * deg2rad
	dLambda := (lon2 - lon1) * deg2rad

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}
