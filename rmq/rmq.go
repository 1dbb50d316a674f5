// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package rmq computes the regime quantification (RMQ) of a mesh: for every
cell, the mean backward difference of its per-cycle spike phase over the
most recent cycles, each difference being the phase at one cycle minus the
phase at the cycle after it.  Consistently negative values over a mesh are
classified as precession, positive as recession, and values near zero as
locking.  The ground-truth regime follows from the two driving frequencies
alone (GroundTruth), and the RMQ is meant to corroborate it.
*/
package rmq

import (
	"fmt"
	"math"

	"github.com/emer/etable/v2/etensor"
	"github.com/emer/etable/v2/minmax"
	"github.com/emer/saslif/phase"
	"github.com/goki/ki/kit"
)

// AllCycles selects every available cycle in Compute
const AllCycles = 0

// Compute returns the RMQ of every cell of cb as a tensor of shape [Nx, Ny].
// Only the last nCycles cycles are used, or all of them if nCycles <= 0 or
// exceeds the number available.  The cycle order is reversed and the first
// difference taken, giving earlier-minus-later phase differences between
// consecutive cycles.  A difference is valid only if both of its cycles are
// valid.  The RMQ is the mean of the valid differences, and NaN if there
// are none.
func Compute(cb *phase.CycleBlock, nCycles int) *etensor.Float64 {
	nx, ny := cb.Mesh()
	ncyc := cb.NCycles()
	if nCycles <= 0 || nCycles > ncyc {
		nCycles = ncyc
	}
	rm := etensor.NewFloat64([]int{nx, ny}, nil, []string{"Axis1", "Axis2"})
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			phs, vld := cb.CellPhases(i, j)
			rm.Values[i*ny+j] = cellRMQ(phs[ncyc-nCycles:], vld[ncyc-nCycles:])
		}
	}
	return rm
}

// cellRMQ averages the differences of the reversed sequence: element k of
// the reversed sequence is phs[n-1-k], so each difference is
// phs[n-2-k] - phs[n-1-k], the earlier cycle minus the later one.
func cellRMQ(phs []float64, vld []bool) float64 {
	sum := 0.0
	n := 0
	for c := len(phs) - 1; c >= 1; c-- {
		if !vld[c] || !vld[c-1] {
			continue
		}
		sum += phs[c-1] - phs[c]
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// Regimes are the phase-drift regimes of a cell
type Regimes int32

//go:generate stringer -type=Regimes

var KiT_Regimes = kit.Enums.AddEnum(RegimesN, kit.NotBitFlag, nil)

func (ev Regimes) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Regimes) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The regimes
const (
	// NoRegime means there was not enough data to decide
	NoRegime Regimes = iota

	// Locking is an RMQ near zero: the spike phase stays put over cycles
	Locking

	// Precession is a negative RMQ
	Precession

	// Recession is a positive RMQ
	Recession

	RegimesN
)

// GroundTruth returns the regime expected from the two driving frequencies:
// an interference oscillator faster than theta drives precession, a slower
// one recession, and equal frequencies locking.
func GroundTruth(thetaFreq, interfFreq float32) Regimes {
	switch {
	case thetaFreq < interfFreq:
		return Precession
	case thetaFreq > interfFreq:
		return Recession
	}
	return Locking
}

// Classify returns the regime of one RMQ value: Locking within tol of 0,
// otherwise Precession if negative and Recession if positive.  NaN gives NoRegime.
func Classify(v, tol float64) Regimes {
	switch {
	case math.IsNaN(v):
		return NoRegime
	case math.Abs(v) <= tol:
		return Locking
	case v < 0:
		return Precession
	}
	return Recession
}

// Summary describes the distribution of RMQ values over a mesh
type Summary struct {

	// number of cells with a defined RMQ
	NValid int

	// number of cells with NaN RMQ
	NNaN int

	// mean of the defined values -- NaN if none
	Mean float64

	// range of the defined values
	Range minmax.F64

	// number of cells classified in each regime
	Counts [RegimesN]int

	// regime with the most cells, ignoring NoRegime -- NoRegime if none
	Majority Regimes
}

// Summarize classifies every cell of rm with tolerance tol and collects the counts
func Summarize(rm *etensor.Float64, tol float64) Summary {
	sm := Summary{Range: minmax.F64{Min: math.Inf(1), Max: math.Inf(-1)}}
	sum := 0.0
	for _, v := range rm.Values {
		sm.Counts[Classify(v, tol)]++
		if math.IsNaN(v) {
			sm.NNaN++
			continue
		}
		sm.NValid++
		sum += v
		sm.Range.Min = min(sm.Range.Min, v)
		sm.Range.Max = max(sm.Range.Max, v)
	}
	if sm.NValid == 0 {
		sm.Mean = math.NaN()
		sm.Range = minmax.F64{}
		return sm
	}
	sm.Mean = sum / float64(sm.NValid)
	best := 0
	for r := Locking; r < RegimesN; r++ {
		if sm.Counts[r] > best {
			best = sm.Counts[r]
			sm.Majority = r
		}
	}
	return sm
}

// Agrees returns the fraction of cells with a defined RMQ whose regime
// matches the given ground truth -- NaN if none are defined
func (sm Summary) Agrees(truth Regimes) float64 {
	if sm.NValid == 0 {
		return math.NaN()
	}
	return float64(sm.Counts[truth]) / float64(sm.NValid)
}

func (sm Summary) String() string {
	return fmt.Sprintf("valid: %d  nan: %d  mean: %g  range: [%g, %g]  locking: %d  precession: %d  recession: %d  majority: %v",
		sm.NValid, sm.NNaN, sm.Mean, sm.Range.Min, sm.Range.Max, sm.Counts[Locking], sm.Counts[Precession], sm.Counts[Recession], sm.Majority)
}
