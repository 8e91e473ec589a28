// Package grid implements FieldGrid, a spatio-temporal bilinear interpolator
// over a gridded scalar field.
package grid

import "math"

// Grid stores one or more named scalar fields over a shared ascending
// lat/lon axis pair, with an optional ascending time axis. Index layout and
// interpolation follow the row-major `t*nLat*nLon + i*nLon + j` convention.
type Grid struct {
	lat       []float64
	lon       []float64
	timeHours []float64 // nil for a static grid

	latMin, latMax, dLat float64
	lonMin, lonMax, dLon float64

	vars map[string][]float64
}

// New builds a Grid from axes and named variable arrays. New itself does not
// validate; grids read through LoadDir are checked first by the axis and
// variable validators in validate.go.
func New(lat, lon, timeHours []float64, vars map[string][]float64) *Grid {
	g := &Grid{
		lat:       lat,
		lon:       lon,
		timeHours: timeHours,
		vars:      vars,
	}
	nLat := len(lat)
	nLon := len(lon)
	g.latMin, g.latMax = lat[0], lat[nLat-1]
	g.lonMin, g.lonMax = lon[0], lon[nLon-1]
	if nLat > 1 {
		g.dLat = (g.latMax - g.latMin) / float64(nLat-1)
	}
	if nLon > 1 {
		g.dLon = (g.lonMax - g.lonMin) / float64(nLon-1)
	}
	return g
}

// Contains reports whether (lat, lon) falls within the grid's bounding box.
func (g *Grid) Contains(lat, lon float64) bool {
	return lat >= g.latMin && lat <= g.latMax && lon >= g.lonMin && lon <= g.lonMax
}

// IsTimeVarying reports whether the grid carries a time axis.
func (g *Grid) IsTimeVarying() bool {
	return len(g.timeHours) > 0
}

// Sample returns the bilinearly (and, for time-varying grids, linearly in
// time) interpolated value of var at (lat, lon, timeHours). Missing
// variables yield 0; out-of-axis coordinates clamp to the nearest edge.
func (g *Grid) Sample(name string, lat, lon, timeHours float64) float64 {
	data, ok := g.vars[name]
	if !ok {
		return 0
	}

	nLat, nLon := len(g.lat), len(g.lon)
	i0, i1, di := g.latCell(lat)
	j0, j1, dj := g.lonCell(lon)

	if !g.IsTimeVarying() {
		return bilinear(data, nLon, i0, i1, j0, j1, di, dj)
	}

	t0, t1, dtFrac := g.timeCell(timeHours)
	stride := nLat * nLon
	v0 := bilinear(data[t0*stride:], nLon, i0, i1, j0, j1, di, dj)
	v1 := bilinear(data[t1*stride:], nLon, i0, i1, j0, j1, di, dj)
	return (1-dtFrac)*v0 + dtFrac*v1
}

// latCell returns the bracketing row indices and fractional offset for lat.
func (g *Grid) latCell(lat float64) (i0, i1 int, di float64) {
	nLat := len(g.lat)
	fi := 0.0
	if g.dLat != 0 {
		fi = (lat - g.latMin) / g.dLat
	}
	fi = clamp(fi, 0, float64(nLat-1))
	i0 = int(math.Floor(fi))
	if i0 > nLat-2 {
		i0 = nLat - 2
	}
	if i0 < 0 {
		i0 = 0
	}
	i1 = i0 + 1
	di = fi - float64(i0)
	return
}

// lonCell returns the bracketing column indices and fractional offset for lon.
func (g *Grid) lonCell(lon float64) (j0, j1 int, dj float64) {
	nLon := len(g.lon)
	fj := 0.0
	if g.dLon != 0 {
		fj = (lon - g.lonMin) / g.dLon
	}
	fj = clamp(fj, 0, float64(nLon-1))
	j0 = int(math.Floor(fj))
	if j0 > nLon-2 {
		j0 = nLon - 2
	}
	if j0 < 0 {
		j0 = 0
	}
	j1 = j0 + 1
	dj = fj - float64(j0)
	return
}

// timeCell locates the bracketing time-axis indices and interpolation
// fraction for timeHours via linear scan (nT is small, typically <= 100).
func (g *Grid) timeCell(timeHours float64) (t0, t1 int, dtFrac float64) {
	times := g.timeHours
	nT := len(times)

	if nT < 2 {
		return 0, 0, 0
	}

	if timeHours <= times[0] {
		return 0, min(1, nT-1), 0
	}
	if timeHours >= times[nT-1] {
		return nT - 2, nT - 1, 1
	}

	for t := 0; t < nT-1; t++ {
		if timeHours >= times[t] && timeHours <= times[t+1] {
			span := times[t+1] - times[t]
			if span == 0 {
				return t, t + 1, 0
			}
			return t, t + 1, (timeHours - times[t]) / span
		}
	}
	return nT - 2, nT - 1, 0
}

// bilinear combines the four corner values of data (row-major with row
// stride nLon) around (i0,i1,di)x(j0,j1,dj).
func bilinear(data []float64, nLon, i0, i1, j0, j1 int, di, dj float64) float64 {
	v00 := data[i0*nLon+j0]
	v01 := data[i0*nLon+j1]
	v10 := data[i1*nLon+j0]
	v11 := data[i1*nLon+j1]
	return (1-di)*(1-dj)*v00 + (1-di)*dj*v01 + di*(1-dj)*v10 + di*dj*v11
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
