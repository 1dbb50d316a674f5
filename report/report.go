// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report builds etable summary tables of a mesh run: one row per
// cell with its parameters, spike counts and regime, and per-cycle return
// map data (phase at cycle c vs. c+1) for probe cells.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/etensor"
	"github.com/emer/saslif/phase"
	"github.com/emer/saslif/rmq"
	"github.com/emer/saslif/saslif"
)

// LogPrec is the precision for saving float values in tables
const LogPrec = 6

// CellData are the inputs to a per-cell table -- RMQ may be nil
type CellData struct {
	Mesh   *saslif.ParameterMesh
	Spikes *saslif.SpikeLog
	Block  *phase.CycleBlock
	RMQ    *etensor.Float64

	// tolerance for classifying an RMQ value as Locking
	Tol float64
}

// ConfigCellTable configures dt with one row per mesh cell
func ConfigCellTable(dt *etable.Table, cd *CellData) {
	a1, a2 := cd.Mesh.Axis1(), cd.Mesh.Axis2()
	dt.SetMetaData("name", "MeshCells")
	dt.SetMetaData("desc", fmt.Sprintf("per-cell summary of %v", cd.Mesh))
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", strconv.Itoa(LogPrec))

	sch := etable.Schema{
		{Name: "X", Type: etensor.INT64, CellShape: nil, DimNames: nil},
		{Name: "Y", Type: etensor.INT64, CellShape: nil, DimNames: nil},
		{Name: a1.Name, Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: a2.Name, Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "Spikes", Type: etensor.INT64, CellShape: nil, DimNames: nil},
		{Name: "Dropped", Type: etensor.INT64, CellShape: nil, DimNames: nil},
		{Name: "ValidCycles", Type: etensor.INT64, CellShape: nil, DimNames: nil},
		{Name: "RMQ", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "Regime", Type: etensor.STRING, CellShape: nil, DimNames: nil},
	}
	dt.SetFromSchema(sch, cd.Mesh.NCells())
}

// CellTable returns a table with one row per mesh cell, in row-major order
func CellTable(cd *CellData) *etable.Table {
	dt := &etable.Table{}
	ConfigCellTable(dt, cd)
	a1, a2 := cd.Mesh.Axis1(), cd.Mesh.Axis2()
	nx, ny := cd.Mesh.Shape()
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			row := i*ny + j
			pr := cd.Mesh.Pair(i, j)
			dt.SetCellFloat("X", row, float64(i))
			dt.SetCellFloat("Y", row, float64(j))
			dt.SetCellFloat(a1.Name, row, float64(pr.X))
			dt.SetCellFloat(a2.Name, row, float64(pr.Y))
			if cd.Spikes != nil {
				dt.SetCellFloat("Spikes", row, float64(cd.Spikes.Occupancy(i, j)))
				dt.SetCellFloat("Dropped", row, float64(cd.Spikes.Dropped(i, j)))
			}
			if cd.Block != nil {
				_, vld := cd.Block.CellPhases(i, j)
				nv := 0
				for _, v := range vld {
					if v {
						nv++
					}
				}
				dt.SetCellFloat("ValidCycles", row, float64(nv))
			}
			rv := math.NaN()
			if cd.RMQ != nil {
				rv = cd.RMQ.Value([]int{i, j})
			}
			dt.SetCellFloat("RMQ", row, rv)
			dt.SetCellString("Regime", row, rmq.Classify(rv, cd.Tol).String())
		}
	}
	return dt
}

// ConfigReturnMap configures dt for return map rows of one cell
func ConfigReturnMap(dt *etable.Table, i, j, nrows int) {
	dt.SetMetaData("name", fmt.Sprintf("ReturnMap_%d_%d", i, j))
	dt.SetMetaData("desc", "phase at each cycle vs. phase at the next cycle")
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", strconv.Itoa(LogPrec))

	sch := etable.Schema{
		{Name: "Cycle", Type: etensor.INT64, CellShape: nil, DimNames: nil},
		{Name: "Phase", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "NextPhase", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
	}
	dt.SetFromSchema(sch, nrows)
}

// ReturnMap returns the (phase[c], phase[c+1]) pairs of cell (i, j) for
// every cycle c where both cycles are valid
func ReturnMap(cb *phase.CycleBlock, i, j int) *etable.Table {
	phs, vld := cb.CellPhases(i, j)
	var cycs []int
	for c := 0; c+1 < len(phs); c++ {
		if vld[c] && vld[c+1] {
			cycs = append(cycs, c)
		}
	}
	dt := &etable.Table{}
	ConfigReturnMap(dt, i, j, len(cycs))
	for row, c := range cycs {
		dt.SetCellFloat("Cycle", row, float64(c))
		dt.SetCellFloat("Phase", row, phs[c])
		dt.SetCellFloat("NextPhase", row, phs[c+1])
	}
	return dt
}

// WriteCSV writes dt with headers as comma-separated values
func WriteCSV(dt *etable.Table, w io.Writer) error {
	if err := dt.WriteCSV(w, etable.Comma, etable.Headers); err != nil {
		return fmt.Errorf("report: writing table %s: %w", dt.MetaData["name"], err)
	}
	return nil
}
