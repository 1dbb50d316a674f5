// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package saslif

import (
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/goki/ki/kit"
)

// MeshState holds the per-cell state variables of a neuron mesh, each as a
// dense row-major slice of Nx * Ny values (cell (i, j) is at i*Ny + j).
// It is owned by a single run and discarded when the run ends.
type MeshState struct {

	// number of values along Axis 1
	Nx int

	// number of values along Axis 2
	Ny int

	// membrane potential in mV
	V []float32

	// spike-frequency adaptation current
	W []float32

	// Ornstein-Uhlenbeck noise current
	Xi []float32

	// steps spent in the current spike, in [0, RefractLen+1]
	Refract []int32

	// bit flags for binary state
	Flags []NeurFlags
}

// NewMeshState returns a state for an nx x ny mesh, initialized at rest
func NewMeshState(nx, ny int, restV float32) *MeshState {
	ms := &MeshState{Nx: nx, Ny: ny}
	n := nx * ny
	ms.V = make([]float32, n)
	ms.W = make([]float32, n)
	ms.Xi = make([]float32, n)
	ms.Refract = make([]int32, n)
	ms.Flags = make([]NeurFlags, n)
	ms.Init(restV)
	return ms
}

// Init resets every cell to rest with zero adaptation and noise
func (ms *MeshState) Init(restV float32) {
	for i := range ms.V {
		ms.InitCell(i, restV)
		ms.Flags[i] = 0
	}
}

// InitCell resets one cell to rest, leaving NeurDiverged untouched
func (ms *MeshState) InitCell(idx int, restV float32) {
	ms.V[idx] = restV
	ms.W[idx] = 0
	ms.Xi[idx] = 0
	ms.Refract[idx] = 0
	ms.Flags[idx].SetFlag(false, NeurSpiking)
}

// InitSpiking marks every cell resting at or above thr as spiking, one
// step into its refractory window, as if the spike started before step 0.
// Must be called after Init.
func (ms *MeshState) InitSpiking(thr float32) {
	for i, v := range ms.V {
		if !(v < thr) {
			ms.Refract[i] = 1
			ms.Flags[i].SetFlag(true, NeurSpiking)
		}
	}
}

// NCells returns the number of cells
func (ms *MeshState) NCells() int { return len(ms.V) }

// Idx returns the flat index of cell (i, j)
func (ms *MeshState) Idx(i, j int) int { return i*ms.Ny + j }

// CellAt returns the mesh coordinate of flat index idx
func (ms *MeshState) CellAt(idx int) Cell { return Cell{X: idx / ms.Ny, Y: idx % ms.Ny} }

// IsSpiking returns true if cell is above threshold or inside its refractory window
func (ms *MeshState) IsSpiking(idx int) bool { return ms.Flags[idx].HasFlag(NeurSpiking) }

// IsFinite returns false if any state value of cell is NaN or Inf
func (ms *MeshState) IsFinite(idx int) bool {
	for _, v := range [...]float32{ms.V[idx], ms.W[idx], ms.Xi[idx]} {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// SizeBytes returns the memory used by the state slices
func (ms *MeshState) SizeBytes() int {
	n := ms.NCells()
	return n * (3*int(unsafe.Sizeof(float32(0))) + int(unsafe.Sizeof(int32(0))) + int(unsafe.Sizeof(NeurFlags(0))))
}

// NeurFlags are bit-flags encoding relevant binary state for neurons
type NeurFlags int32

//go:generate stringer -type=NeurFlags

var KiT_NeurFlags = kit.Enums.AddEnum(NeurFlagsN, kit.BitFlag, nil)

func (ev NeurFlags) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *NeurFlags) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The neuron flags
const (
	// NeurSpiking means the neuron is above threshold or within its
	// refractory window following a threshold crossing
	NeurSpiking NeurFlags = iota

	// NeurDiverged means the neuron state became non-finite -- it has been
	// reset to rest and is no longer updated
	NeurDiverged

	NeurFlagsN
)

// HasFlag returns true if given flag bit is set
func (nf NeurFlags) HasFlag(f NeurFlags) bool {
	return nf&(1<<uint32(f)) != 0
}

// SetFlag sets or clears the given flag bits
func (nf *NeurFlags) SetFlag(on bool, f ...NeurFlags) {
	for _, fl := range f {
		if on {
			*nf |= 1 << uint32(fl)
		} else {
			*nf &^= 1 << uint32(fl)
		}
	}
}
