// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phase

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"

	"github.com/emer/etable/v2/etensor"
	"golang.org/x/sync/errgroup"
)

// ErrEmptyReference is returned when segmenting against an empty reference signal
var ErrEmptyReference = errors.New("phase: empty reference signal")

// ErrSpikeOutOfRange is returned when a logged spike step lies beyond the
// end of the reference signal
var ErrSpikeOutOfRange = errors.New("phase: spike step beyond reference signal")

// SpikeReader is a read-only view of per-cell spike step indices.
// It is satisfied by *saslif.SpikeLog.
type SpikeReader interface {
	// Shape returns the mesh dimensions
	Shape() (nx, ny int)

	// Spikes returns the stored spike steps of cell (i, j) in increasing order
	Spikes(i, j int) []int32

	// Depth returns the maximum number of stored spikes over all cells
	Depth() int
}

// Options control SegmentCycles
type Options struct {

	// statistic reducing the spike phases of each (cell, cycle)
	Technique Techniques `yaml:"technique"`

	// compute the nearest reference step for every valid (cell, cycle) phase
	IndexMap bool `yaml:"index_map"`

	// density-mode estimate parameters, used by the KDE technique
	KDE KDEParams `view:"inline" yaml:"kde"`

	// max number of cells reduced concurrently -- GOMAXPROCS if <= 0
	NThreads int `yaml:"n_threads"`
}

func (op *Options) Defaults() {
	op.Technique = Mean
	op.IndexMap = false
	op.KDE.Defaults()
}

// CycleBlock holds the representative phase of every (cell, cycle) as a
// tensor of shape [Nx, Ny, C].  Entries with no spikes hold the sentinel 0
// and are marked invalid in Valid, which has the same layout as Values.
type CycleBlock struct {
	etensor.Float64

	// whether each entry had at least one spike
	Valid []bool
}

// NewCycleBlock returns an all-invalid block for an nx x ny mesh over ncyc cycles
func NewCycleBlock(nx, ny, ncyc int) *CycleBlock {
	cb := &CycleBlock{}
	cb.SetShape([]int{nx, ny, ncyc}, nil, []string{"Axis1", "Axis2", "Cycle"})
	cb.Valid = make([]bool, nx*ny*ncyc)
	return cb
}

// NCycles returns the number of cycles C
func (cb *CycleBlock) NCycles() int { return cb.Dim(2) }

// Mesh returns the mesh dimensions
func (cb *CycleBlock) Mesh() (nx, ny int) { return cb.Dim(0), cb.Dim(1) }

// At returns the phase of cell (i, j) in cycle c, and false if the cell
// had no spikes in that cycle
func (cb *CycleBlock) At(i, j, c int) (float64, bool) {
	off := cb.Offset([]int{i, j, c})
	return cb.Values[off], cb.Valid[off]
}

// SetPhase stores a valid phase for cell (i, j) in cycle c
func (cb *CycleBlock) SetPhase(i, j, c int, ph float64) {
	off := cb.Offset([]int{i, j, c})
	cb.Values[off] = ph
	cb.Valid[off] = true
}

// CellPhases returns the per-cycle phases and validity of cell (i, j) as
// views into the block -- do not modify.
func (cb *CycleBlock) CellPhases(i, j int) ([]float64, []bool) {
	nc := cb.Dim(2)
	st := (i*cb.Dim(1) + j) * nc
	return cb.Values[st : st+nc : st+nc], cb.Valid[st : st+nc : st+nc]
}

// NValid returns the number of valid entries
func (cb *CycleBlock) NValid() int {
	n := 0
	for _, v := range cb.Valid {
		if v {
			n++
		}
	}
	return n
}

// Segmentation is the result of SegmentCycles
type Segmentation struct {

	// instantaneous phase of the reference at every step, in [0, 2pi)
	Phase []float64

	// steps starting each new cycle, strictly increasing, len = C-1
	Boundaries []int

	// representative phase of every (cell, cycle)
	Block *CycleBlock

	// nearest reference step of every valid (cell, cycle) phase, 0 where
	// invalid -- nil unless Options.IndexMap
	Index *etensor.Int
}

// NCycles returns the number of cycles C
func (sg *Segmentation) NCycles() int { return len(sg.Boundaries) + 1 }

// SegmentCycles computes the instantaneous phase of reference, splits it
// into cycles, and reduces the phases at the spikes of each cell in each
// cycle with opts.Technique.  Cycle c spans [b[c-1], b[c]), with cycle 0
// open at the start and the last cycle open at the end.
func SegmentCycles(reference []float64, spikes SpikeReader, opts *Options) (*Segmentation, error) {
	if len(reference) == 0 {
		return nil, ErrEmptyReference
	}
	ph := InstPhase(AnalyticSignal(reference))
	return SegmentPhase(ph, spikes, opts)
}

// SegmentPhase is SegmentCycles for an already computed instantaneous phase
// series.  The KDE bandwidths and grid are recomputed on a copy of
// opts.KDE, so opts is not modified.  Invalid KDE parameters are an error
// when the technique is KDE.
func SegmentPhase(ph []float64, spikes SpikeReader, opts *Options) (*Segmentation, error) {
	if len(ph) == 0 {
		return nil, ErrEmptyReference
	}
	if opts == nil {
		opts = &Options{}
		opts.Defaults()
	}
	kp := opts.KDE
	if opts.Technique == KDE {
		if err := kp.Validate(); err != nil {
			return nil, err
		}
		kp.Update()
	}
	sg := &Segmentation{Phase: ph}
	sg.Boundaries = CycleBoundaries(ph)
	ncyc := sg.NCycles()
	nx, ny := spikes.Shape()
	sg.Block = NewCycleBlock(nx, ny, ncyc)

	if spikes.Depth() > 0 {
		nthr := opts.NThreads
		if nthr <= 0 {
			nthr = runtime.GOMAXPROCS(0)
		}
		var eg errgroup.Group
		eg.SetLimit(nthr)
		for i := 0; i < nx; i++ {
			for j := 0; j < ny; j++ {
				eg.Go(func() error {
					return sg.reduceCell(i, j, spikes.Spikes(i, j), opts.Technique, &kp)
				})
			}
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	}
	if opts.IndexMap {
		sg.Index = sg.indexMap()
	}
	return sg, nil
}

// reduceCell fills the block entries of cell (i, j) from its spike steps,
// which are increasing, so each cycle is a contiguous run of spikes.
func (sg *Segmentation) reduceCell(i, j int, steps []int32, tech Techniques, kp *KDEParams) error {
	var phs []float64
	cur := -1
	flush := func() {
		if cur >= 0 {
			if v, ok := CentralTendency(phs, tech, kp); ok {
				sg.Block.SetPhase(i, j, cur, v)
			}
		}
		phs = phs[:0]
	}
	for _, s := range steps {
		if int(s) >= len(sg.Phase) || s < 0 {
			return fmt.Errorf("cell (%d,%d) step %d, reference has %d steps: %w", i, j, s, len(sg.Phase), ErrSpikeOutOfRange)
		}
		c := CycleOf(sg.Boundaries, int(s))
		if c != cur {
			flush()
			cur = c
		}
		phs = append(phs, sg.Phase[s])
	}
	flush()
	return nil
}

// indexMap locates, for every valid entry of cycle c with phase p, the step
// whose unwrapped reference phase is nearest to p + c*2pi.
func (sg *Segmentation) indexMap() *etensor.Int {
	nx, ny := sg.Block.Mesh()
	ncyc := sg.Block.NCycles()
	idx := etensor.NewInt([]int{nx, ny, ncyc}, nil, []string{"Axis1", "Axis2", "Cycle"})
	uw := Unwrap(sg.Phase)
	sorted := sort.Float64sAreSorted(uw)
	for off, ok := range sg.Block.Valid {
		if !ok {
			continue
		}
		c := off % ncyc
		v := sg.Block.Values[off] + float64(c)*2*math.Pi
		if sorted {
			idx.Values[off] = nearestSorted(uw, v)
		} else {
			idx.Values[off] = NearestIndex(uw, v)
		}
	}
	return idx
}

// nearestSorted is NearestIndex for a non-decreasing series
func nearestSorted(series []float64, v float64) int {
	k := sort.SearchFloat64s(series, v)
	switch {
	case k == 0:
		return 0
	case k == len(series):
		return len(series) - 1
	}
	// first of equally near values wins, as in NearestIndex
	lo := k - 1
	for lo > 0 && series[lo-1] == series[lo] {
		lo--
	}
	if math.Abs(v-series[lo]) <= math.Abs(series[k]-v) {
		return lo
	}
	return k
}
