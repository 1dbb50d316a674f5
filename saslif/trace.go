// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package saslif

import (
	"github.com/emer/etable/v2/etensor"
)

// VoltageTrace is the membrane potential of every cell at every step,
// as a tensor of shape [Nx, Ny, NSteps].  Values for a cell are contiguous
// in time.
type VoltageTrace struct {
	etensor.Float32
}

// NewVoltageTrace returns a zeroed trace for an nx x ny mesh over nsteps
func NewVoltageTrace(nx, ny, nsteps int) *VoltageTrace {
	vt := &VoltageTrace{}
	vt.SetShape([]int{nx, ny, nsteps}, nil, []string{"Axis1", "Axis2", "Step"})
	return vt
}

// NSteps returns the number of time steps in the trace
func (vt *VoltageTrace) NSteps() int { return vt.Dim(2) }

// SetCell stores the voltage of flat cell index idx (i*Ny + j) at step
func (vt *VoltageTrace) SetCell(idx, step int, v float32) {
	vt.Values[idx*vt.Dim(2)+step] = v
}

// At returns the voltage of cell (i, j) at step
func (vt *VoltageTrace) At(i, j, step int) float32 {
	return vt.Value([]int{i, j, step})
}

// CellTrace returns the voltage time series of cell (i, j) as a view into
// the trace -- do not modify.
func (vt *VoltageTrace) CellTrace(i, j int) []float32 {
	nt := vt.Dim(2)
	st := (i*vt.Dim(1) + j) * nt
	return vt.Values[st : st+nt : st+nt]
}

// Equal returns true if both traces have the same shape and values
func (vt *VoltageTrace) Equal(ot *VoltageTrace) bool {
	if len(vt.Values) != len(ot.Values) {
		return false
	}
	for d := 0; d < 3; d++ {
		if vt.Dim(d) != ot.Dim(d) {
			return false
		}
	}
	for i, v := range vt.Values {
		if v != ot.Values[i] {
			return false
		}
	}
	return true
}
