// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phase

import (
	"math"
)

// Offset is the rotation applied to the analytic phase so that phase 0 is
// the ascending zero-crossing of a sine
const Offset = -3 * math.Pi / 2

// InstPhase returns the instantaneous phase in [0, 2pi) of analytic signal as:
// atan2 of the signal, shifted into [0, 2pi), rotated by Offset and re-wrapped.
func InstPhase(as []complex128) []float64 {
	ph := make([]float64, len(as))
	for i, c := range as {
		p := math.Atan2(imag(c), real(c))
		if p < 0 {
			p += 2 * math.Pi
		}
		p += Offset
		if p < 0 {
			p += 2 * math.Pi
		}
		ph[i] = p
	}
	return ph
}

// CycleBoundaries returns the steps at which phase wraps around: every
// index i+1 such that phase[i+1] < phase[i].  The boundary is the first
// step of the new cycle, one after the index i of the negative difference,
// so a spike exactly at the wrap step belongs to the new cycle.  The result
// is strictly increasing, and its length is the number of cycles minus one.
func CycleBoundaries(phase []float64) []int {
	var bnds []int
	for i := 0; i+1 < len(phase); i++ {
		if phase[i+1]-phase[i] < 0 {
			bnds = append(bnds, i+1)
		}
	}
	return bnds
}

// CycleOf returns the cycle index of step given the cycle boundaries:
// 0 for steps before the first boundary, c for b[c-1] <= step < b[c],
// and len(bnds) for steps at or after the last boundary.
func CycleOf(bnds []int, step int) int {
	lo, hi := 0, len(bnds)
	for lo < hi {
		mid := (lo + hi) / 2
		if bnds[mid] <= step {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// Unwrap returns phase with multiples of 2pi added so that no step changes
// by more than pi from the previous one.
func Unwrap(phase []float64) []float64 {
	uw := make([]float64, len(phase))
	if len(phase) == 0 {
		return uw
	}
	uw[0] = phase[0]
	corr := 0.0
	for i := 1; i < len(phase); i++ {
		d := phase[i] - phase[i-1]
		// map d into [-pi, pi), keeping +pi when d itself is positive
		dm := math.Mod(d+math.Pi, 2*math.Pi)
		if dm < 0 {
			dm += 2 * math.Pi
		}
		dm -= math.Pi
		if dm == -math.Pi && d > 0 {
			dm = math.Pi
		}
		if math.Abs(d) >= math.Pi {
			corr += dm - d
		}
		uw[i] = phase[i] + corr
	}
	return uw
}

// NearestIndex returns the index of the value in series closest to v,
// the first one in case of ties.  Returns -1 for an empty series.
func NearestIndex(series []float64, v float64) int {
	idx := -1
	best := math.Inf(1)
	for i, s := range series {
		if d := math.Abs(v - s); d < best {
			best = d
			idx = i
		}
	}
	return idx
}
