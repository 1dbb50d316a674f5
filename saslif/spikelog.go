// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package saslif

import (
	"fmt"
	"unsafe"
)

// SpikeLog records, for every cell of an Nx x Ny mesh, the ordered time-step
// indices at which the cell started a spike.  Storage is a single arena of
// Nx*Ny fixed-size slots of capacity Cap.  Appends beyond capacity are not
// stored but are counted per cell in Dropped, so overflow is never silent.
// Entries within a slot are strictly increasing.
type SpikeLog struct {
	nx, ny int
	cap    int

	// arena of nx*ny*cap step indices, slot for cell idx at [idx*cap, (idx+1)*cap)
	steps []int32

	// number of stored entries per cell, <= cap
	occ []int32

	// number of spikes per cell that did not fit
	dropped []int32
}

// NewSpikeLog returns an empty log for an nx x ny mesh with given per-cell capacity
func NewSpikeLog(nx, ny, capacity int) *SpikeLog {
	n := nx * ny
	return &SpikeLog{
		nx:      nx,
		ny:      ny,
		cap:     capacity,
		steps:   make([]int32, n*capacity),
		occ:     make([]int32, n),
		dropped: make([]int32, n),
	}
}

// Shape returns the mesh dimensions
func (sl *SpikeLog) Shape() (nx, ny int) { return sl.nx, sl.ny }

// Cap returns the per-cell capacity
func (sl *SpikeLog) Cap() int { return sl.cap }

// Append records a spike at step for the cell with flat index idx (i*Ny + j).
// Returns false if the cell is at capacity, in which case the spike is
// counted as dropped.  Steps must be appended in increasing order.
func (sl *SpikeLog) Append(idx int, step int) bool {
	oc := int(sl.occ[idx])
	if oc >= sl.cap {
		sl.dropped[idx]++
		return false
	}
	sl.steps[idx*sl.cap+oc] = int32(step)
	sl.occ[idx]++
	return true
}

// Occupancy returns the number of stored spikes for cell (i, j)
func (sl *SpikeLog) Occupancy(i, j int) int { return int(sl.occ[i*sl.ny+j]) }

// Dropped returns the number of spikes of cell (i, j) that exceeded capacity
func (sl *SpikeLog) Dropped(i, j int) int { return int(sl.dropped[i*sl.ny+j]) }

// Spikes returns the stored spike steps for cell (i, j), in increasing order.
// The slice is a view into the log and must not be modified.
func (sl *SpikeLog) Spikes(i, j int) []int32 {
	idx := i*sl.ny + j
	st := idx * sl.cap
	return sl.steps[st : st+int(sl.occ[idx]) : st+int(sl.occ[idx])]
}

// Depth returns the maximum occupancy over all cells: beyond this entry
// index no cell has any stored spike.
func (sl *SpikeLog) Depth() int {
	mx := int32(0)
	for _, oc := range sl.occ {
		mx = max(mx, oc)
	}
	return int(mx)
}

// TotalSpikes returns the total number of stored spikes over all cells
func (sl *SpikeLog) TotalSpikes() int {
	n := 0
	for _, oc := range sl.occ {
		n += int(oc)
	}
	return n
}

// CapacityWarnings returns one warning per cell that dropped spikes
func (sl *SpikeLog) CapacityWarnings() []CapacityWarning {
	var cws []CapacityWarning
	for idx, dr := range sl.dropped {
		if dr > 0 {
			cws = append(cws, CapacityWarning{Cell: Cell{X: idx / sl.ny, Y: idx % sl.ny}, Dropped: int(dr)})
		}
	}
	return cws
}

// Equal returns true if both logs have the same shape and identical stored
// spikes and dropped counts for every cell.  Capacity is not compared.
func (sl *SpikeLog) Equal(ol *SpikeLog) bool {
	if sl.nx != ol.nx || sl.ny != ol.ny {
		return false
	}
	for i := 0; i < sl.nx; i++ {
		for j := 0; j < sl.ny; j++ {
			if sl.Dropped(i, j) != ol.Dropped(i, j) {
				return false
			}
			ss, os := sl.Spikes(i, j), ol.Spikes(i, j)
			if len(ss) != len(os) {
				return false
			}
			for k := range ss {
				if ss[k] != os[k] {
					return false
				}
			}
		}
	}
	return true
}

// SizeBytes returns the memory used by the log arena and counters
func (sl *SpikeLog) SizeBytes() int {
	return (len(sl.steps) + len(sl.occ) + len(sl.dropped)) * int(unsafe.Sizeof(int32(0)))
}

func (sl *SpikeLog) String() string {
	return fmt.Sprintf("SpikeLog: %d x %d cap: %d depth: %d total: %d", sl.nx, sl.ny, sl.cap, sl.Depth(), sl.TotalSpikes())
}
