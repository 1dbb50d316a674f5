// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package saslif

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
)

func TestAxisSpan(t *testing.T) {
	ax := NewAxis("theta_amplitude", 0, 40, 5)
	want := []float32{0, 10, 20, 30, 40}
	if ax.Len() != len(want) {
		t.Fatalf("len: %v, want %v\n", ax.Len(), len(want))
	}
	for i, w := range want {
		if dif := math32.Abs(ax.Values[i] - w); dif > difTol {
			t.Errorf("value %d: %v, want %v\n", i, ax.Values[i], w)
		}
	}
	if ax.Range.Min != 0 || ax.Range.Max != 40 {
		t.Errorf("range: %v\n", ax.Range)
	}
	one := NewAxis("x", 7, 9, 1)
	if one.Len() != 1 || one.Values[0] != 7 {
		t.Errorf("single value axis: %v\n", one.Values)
	}
}

func TestParameterMesh(t *testing.T) {
	pm := NewParameterMesh(AdaptMesh).AddAxis(0, 100, 3, "").AddAxis(2, 8, 4, "")
	if err := pm.Validate(); err != nil {
		t.Fatal(err)
	}
	if pm.Axis1().Name != "response_constant" || pm.Axis2().Name != "decay_constant" {
		t.Errorf("default names: %s, %s\n", pm.Axis1().Name, pm.Axis2().Name)
	}
	nx, ny := pm.Shape()
	if nx != 3 || ny != 4 || pm.NCells() != 12 {
		t.Errorf("shape: %d x %d\n", nx, ny)
	}
	pr := pm.Pair(2, 1)
	if pr.X != 100 || pr.Y != 4 {
		t.Errorf("pair (2,1): %v\n", pr)
	}
}

func TestParameterMeshValidate(t *testing.T) {
	tests := []struct {
		name string
		pm   *ParameterMesh
	}{
		{"no axes", NewParameterMesh(ForcingMesh)},
		{"one axis", NewParameterMesh(ForcingMesh).AddAxis(0, 1, 2, "")},
		{"three axes", NewParameterMesh(NoiseMesh).AddAxis(0, 1, 2, "").AddAxis(0, 1, 2, "").AddAxis(0, 1, 2, "")},
		{"empty axis", NewParameterMesh(NoiseMesh).AddAxis(0, 1, 2, "").AddAxis(0, 1, 0, "")},
		{"role mismatch", NewParameterMesh(NoiseMesh).AddAxis(0, 1, 2, "theta_amplitude").AddAxis(0, 1, 2, "")},
		{"bad role", &ParameterMesh{Role: MeshRolesN}},
	}
	for _, tt := range tests {
		if err := tt.pm.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got: %v\n", tt.name, err)
		}
	}
}

func TestMeshRolesString(t *testing.T) {
	for r := ForcingMesh; r < MeshRolesN; r++ {
		var fr MeshRoles
		if err := fr.FromString(r.String()); err != nil || fr != r {
			t.Errorf("FromString(%s): %v, %v\n", r, fr, err)
		}
	}
	var fr MeshRoles
	if err := fr.FromString("Bogus"); err == nil {
		t.Errorf("expected error for unknown role\n")
	}
}
