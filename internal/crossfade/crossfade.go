// Package crossfade maps a position on the tuning axis to per-station volumes.
//
// Between two neighbouring stations the volumes form a tent: a station is at
// full volume when the dial sits exactly on its vfreq and falls linearly to
// silence at its neighbour's vfreq. Stations outside the neighbouring pair
// are silent.
package crossfade

import "math"

// scaleMax is the peak of the tent on the interpolation scale.
const scaleMax = 100

// Boundaries returns the indexes of the adjacent stations enclosing vfreq.
// Below the first station the first pair is used, above the last station
// the last pair. With one station both indexes are 0. vfreqs must be
// non-empty and non-decreasing.
func Boundaries(vfreq float64, vfreqs []float64) (lower, upper int) {
	n := len(vfreqs)
	if n == 1 {
		return 0, 0
	}
	for i := 0; i < n-1; i++ {
		if vfreq >= vfreqs[i] && vfreq <= vfreqs[i+1] {
			return i, i + 1
		}
	}
	if vfreq < vfreqs[0] {
		return 0, 1
	}
	return n - 2, n - 1
}

// VolumesFor returns one volume in [0,1] per station for the dial at vfreq.
// The boundary pair is computed once and shared by every station.
func VolumesFor(vfreq float64, vfreqs []float64) []float64 {
	lower, upper := Boundaries(vfreq, vfreqs)
	lo, hi := vfreqs[lower], vfreqs[upper]

	out := make([]float64, len(vfreqs))
	for i, s := range vfreqs {
		out[i] = stationVolume(vfreq, s, lo, hi)
	}
	return out
}

// Tuned reports whether some station is at full volume.
func Tuned(volumes []float64) bool {
	for _, v := range volumes {
		if v >= 1 {
			return true
		}
	}
	return false
}

func stationVolume(vfreq, s, lo, hi float64) float64 {
	if s < lo || s > hi {
		return 0
	}
	if lo == hi {
		return 1
	}

	var from, to float64
	switch s {
	case lo:
		from, to = 0, scaleMax
	case hi:
		from, to = -scaleMax, 0
	default:
		from, to = -scaleMax, scaleMax
	}
	x := interp(vfreq, lo, hi, from, to)
	return (scaleMax - math.Abs(x)) / scaleMax
}

// interp maps x from [x0,x1] onto [y0,y1]. Outside the domain it clamps to
// the nearest end, and at the ends it returns y0 or y1 exactly.
func interp(x, x0, x1, y0, y1 float64) float64 {
	if x <= x0 {
		return y0
	}
	if x >= x1 {
		return y1
	}
	return y0 + (x-x0)*(y1-y0)/(x1-x0)
}
