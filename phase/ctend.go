// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phase

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/goki/ki/kit"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Techniques are the statistics available for reducing a set of spike
// phases to one representative phase.  Mean and Median are ordinary
// arithmetic statistics: they do not account for the wrap-around of phase
// at 2pi, so spikes straddling the wrap are summarized poorly.
type Techniques int32

//go:generate stringer -type=Techniques

var KiT_Techniques = kit.Enums.AddEnum(TechniquesN, kit.NotBitFlag, nil)

func (ev Techniques) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Techniques) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }
func (ev Techniques) MarshalText() ([]byte, error)  { return []byte(ev.String()), nil }
func (ev *Techniques) UnmarshalText(b []byte) error { return ev.FromString(string(b)) }

// The central tendency techniques
const (
	// Mean is the arithmetic mean
	Mean Techniques = iota

	// Median is the middle value, or the mean of the two middle values
	Median

	// KDE is the mode of a Gaussian kernel density estimate whose bandwidth
	// is chosen by leave-one-out cross-validated likelihood
	KDE

	TechniquesN
)

// KDEParams control the density-mode estimate
type KDEParams struct {

	// number of candidate bandwidths, spaced logarithmically from 10^MinExp to 10^MaxExp
	NBandwidths int `def:"100" min:"1" yaml:"n_bandwidths"`

	// exponent of the smallest candidate bandwidth
	MinExp float64 `def:"-1" yaml:"min_exp"`

	// exponent of the largest candidate bandwidth
	MaxExp float64 `def:"1" yaml:"max_exp"`

	// number of evenly spaced points over [0, 2pi] at which the density is evaluated
	GridN int `def:"10000" min:"2" yaml:"grid_n"`

	// candidate bandwidths -- computed in Update
	Bandwidths []float64 `view:"-" json:"-" yaml:"-"`

	// evaluation grid -- computed in Update
	Grid []float64 `view:"-" json:"-" yaml:"-"`
}

func (kp *KDEParams) Defaults() {
	kp.NBandwidths = 100
	kp.MinExp = -1
	kp.MaxExp = 1
	kp.GridN = 10000
	kp.Update()
}

// Update must be called after any changes to parameters
func (kp *KDEParams) Update() {
	kp.Bandwidths = nil
	kp.Grid = nil
	if kp.NBandwidths >= 1 {
		kp.Bandwidths = make([]float64, kp.NBandwidths)
		if kp.NBandwidths == 1 {
			kp.Bandwidths[0] = kp.MinExp
		} else {
			floats.Span(kp.Bandwidths, kp.MinExp, kp.MaxExp)
		}
		for i, x := range kp.Bandwidths {
			kp.Bandwidths[i] = math.Pow(10, x)
		}
	}
	if kp.GridN >= 2 {
		kp.Grid = make([]float64, kp.GridN)
		floats.Span(kp.Grid, 0, 2*math.Pi)
	}
}

// Validate returns an error for parameters that give no candidate
// bandwidth or no evaluation grid
func (kp *KDEParams) Validate() error {
	var errs []error
	if kp.NBandwidths < 1 {
		errs = append(errs, fmt.Errorf("kde: n_bandwidths must be >= 1, got %d", kp.NBandwidths))
	}
	if kp.GridN < 2 {
		errs = append(errs, fmt.Errorf("kde: grid_n must be >= 2, got %d", kp.GridN))
	}
	if !(kp.MinExp <= kp.MaxExp) {
		errs = append(errs, fmt.Errorf("kde: min_exp %g must be <= max_exp %g", kp.MinExp, kp.MaxExp))
	}
	return errors.Join(errs...)
}

// CentralTendency returns one representative value of phases using
// technique.  A single value is returned as is for every technique.
// Returns false if phases is empty.  kp is only used for KDE, and must
// have been updated -- nil, or one with no bandwidths or grid, uses defaults.
func CentralTendency(phases []float64, tech Techniques, kp *KDEParams) (float64, bool) {
	switch len(phases) {
	case 0:
		return 0, false
	case 1:
		return phases[0], true
	}
	switch tech {
	case Median:
		return median(phases), true
	case KDE:
		if kp == nil || len(kp.Grid) == 0 || len(kp.Bandwidths) == 0 {
			kp = &KDEParams{}
			kp.Defaults()
		}
		return kdeMode(phases, kp), true
	default:
		return stat.Mean(phases, nil), true
	}
}

// median uses a sorted copy so the input order is left untouched
func median(vals []float64) float64 {
	s := make([]float64, len(vals))
	copy(s, vals)
	sort.Float64s(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return 0.5 * (s[n/2-1] + s[n/2])
}

// kdeLogDensity returns the log of the Gaussian kernel density at x for
// given samples and bandwidth, using lp as scratch of len(samples).
func kdeLogDensity(x float64, samples []float64, bw float64, lp []float64) float64 {
	for i, s := range samples {
		lp[i] = distuv.Normal{Mu: s, Sigma: bw}.LogProb(x)
	}
	return floats.LogSumExp(lp) - math.Log(float64(len(samples)))
}

// LOOBandwidth returns the candidate bandwidth maximizing the mean
// leave-one-out log likelihood of samples (len >= 2), the first in case of ties.
// Returns NaN if there are no candidates.
func LOOBandwidth(samples []float64, bws []float64) float64 {
	if len(bws) == 0 {
		return math.NaN()
	}
	n := len(samples)
	rest := make([]float64, n-1)
	lp := make([]float64, n-1)
	best := math.Inf(-1)
	bestBw := bws[0]
	for _, bw := range bws {
		ll := 0.0
		for k := 0; k < n; k++ {
			copy(rest, samples[:k])
			copy(rest[k:], samples[k+1:])
			ll += kdeLogDensity(samples[k], rest, bw, lp)
		}
		ll /= float64(n)
		if ll > best {
			best = ll
			bestBw = bw
		}
	}
	return bestBw
}

// kdeMode returns the grid point of maximum density of the kernel density
// estimate with cross-validated bandwidth.
func kdeMode(samples []float64, kp *KDEParams) float64 {
	bw := LOOBandwidth(samples, kp.Bandwidths)
	lp := make([]float64, len(samples))
	dens := make([]float64, len(kp.Grid))
	for i, x := range kp.Grid {
		dens[i] = kdeLogDensity(x, samples, bw, lp)
	}
	return kp.Grid[floats.MaxIdx(dens)]
}
