// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/emer/saslif/phase"
	"github.com/emer/saslif/rmq"
	"github.com/emer/saslif/saslif"
)

func testData() *CellData {
	mesh := saslif.NewParameterMesh(saslif.ForcingMesh).AddAxis(20, 50, 2, "").AddAxis(10, 30, 3, "")
	sl := saslif.NewSpikeLog(2, 3, 2)
	sl.Append(0, 10)
	sl.Append(0, 120)
	sl.Append(0, 220)
	sl.Append(4, 50)
	cb := phase.NewCycleBlock(2, 3, 3)
	cb.SetPhase(0, 0, 0, 1.0)
	cb.SetPhase(0, 0, 1, 1.2)
	cb.SetPhase(0, 0, 2, 1.1)
	cb.SetPhase(1, 1, 0, 3.0)
	return &CellData{Mesh: mesh, Spikes: sl, Block: cb, RMQ: rmq.Compute(cb, rmq.AllCycles), Tol: 0.01}
}

func TestCellTable(t *testing.T) {
	cd := testData()
	dt := CellTable(cd)
	if dt.Rows != 6 {
		t.Fatalf("rows: %v, want 6\n", dt.Rows)
	}
	if v := dt.CellFloat("theta_amplitude", 4); v != 50 {
		t.Errorf("theta_amplitude row 4: %v, want 50\n", v)
	}
	if v := dt.CellFloat("interference_amplitude", 4); v != 20 {
		t.Errorf("interference_amplitude row 4: %v, want 20\n", v)
	}
	if v := dt.CellFloat("Spikes", 0); v != 2 {
		t.Errorf("spikes row 0: %v, want 2\n", v)
	}
	if v := dt.CellFloat("Dropped", 0); v != 1 {
		t.Errorf("dropped row 0: %v, want 1\n", v)
	}
	if v := dt.CellFloat("ValidCycles", 0); v != 3 {
		t.Errorf("valid cycles row 0: %v, want 3\n", v)
	}
	// ((1.0-1.2) + (1.2-1.1)) / 2
	if v := dt.CellFloat("RMQ", 0); math.Abs(v - -0.05) > 1.0e-9 {
		t.Errorf("rmq row 0: %v, want -0.05\n", v)
	}
	if s := dt.CellString("Regime", 0); s != "Precession" {
		t.Errorf("regime row 0: %v, want Precession\n", s)
	}
	if s := dt.CellString("Regime", 4); s != "NoRegime" {
		t.Errorf("regime row 4: %v, want NoRegime\n", s)
	}
	var b bytes.Buffer
	if err := WriteCSV(dt, &b); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != 7 {
		t.Errorf("csv lines: %v, want 7\n%s", len(lines), b.String())
	}
}

func TestReturnMap(t *testing.T) {
	cd := testData()
	dt := ReturnMap(cd.Block, 0, 0)
	if dt.Rows != 2 {
		t.Fatalf("rows: %v, want 2\n", dt.Rows)
	}
	if dt.CellFloat("Phase", 1) != 1.2 || dt.CellFloat("NextPhase", 1) != 1.1 {
		t.Errorf("row 1: %v -> %v\n", dt.CellFloat("Phase", 1), dt.CellFloat("NextPhase", 1))
	}
	if ReturnMap(cd.Block, 1, 1).Rows != 0 {
		t.Errorf("single valid cycle should give an empty return map\n")
	}
}

func TestSymmetricIndices(t *testing.T) {
	vals := []float32{20, 25, 30, 34, 40, 45, 50}
	idx := SymmetricIndices(vals, 3)
	want := []int{0, 3, 6}
	for k := range want {
		if idx[k] != want[k] {
			t.Errorf("indices: %v, want %v\n", idx, want)
			break
		}
	}
	if SymmetricIndices(nil, 3) != nil {
		t.Errorf("empty axis should give nil\n")
	}
}
