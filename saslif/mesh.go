// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package saslif

import (
	"fmt"

	"github.com/emer/etable/v2/minmax"
	"github.com/goki/ki/kit"
	"github.com/goki/mat32"
	"gonum.org/v1/gonum/floats"
)

// MeshRoles are the semantic roles of a ParameterMesh: which pair of
// SimParams values is swept along the two mesh axes.
type MeshRoles int32

//go:generate stringer -type=MeshRoles

var KiT_MeshRoles = kit.Enums.AddEnum(MeshRolesN, kit.NotBitFlag, nil)

func (ev MeshRoles) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *MeshRoles) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }
func (ev MeshRoles) MarshalText() ([]byte, error)  { return []byte(ev.String()), nil }
func (ev *MeshRoles) UnmarshalText(b []byte) error { return ev.FromString(string(b)) }

// The mesh roles
const (
	// ForcingMesh sweeps the theta amplitude (Axis 1) and the interference
	// amplitude (Axis 2).  Forcing is computed per cell on every step.
	ForcingMesh MeshRoles = iota

	// AdaptMesh sweeps the adaptation response constant (Axis 1) and decay
	// constant (Axis 2).  All cells share one forcing series.
	AdaptMesh

	// NoiseMesh sweeps the Ornstein-Uhlenbeck mean (Axis 1) and volatility
	// (Axis 2).  All cells share one forcing series.
	NoiseMesh

	MeshRolesN
)

// AxisNames returns the canonical names of the two swept parameters
func (ev MeshRoles) AxisNames() (string, string) {
	switch ev {
	case ForcingMesh:
		return "theta_amplitude", "interference_amplitude"
	case AdaptMesh:
		return "response_constant", "decay_constant"
	case NoiseMesh:
		return "ou_mu", "ou_sigma"
	}
	return "", ""
}

// Axis is one named, ordered set of values for a swept parameter
type Axis struct {

	// name of the swept parameter -- must match the mesh role when set
	Name string `yaml:"name"`

	// values swept along this axis, in order
	Values []float32 `yaml:"values"`

	// min and max of Values
	Range minmax.F32 `view:"inline" yaml:"-"`
}

// NewAxis returns an axis of n evenly spaced values from start to stop
// inclusive.  n == 1 gives the single value start.
func NewAxis(name string, start, stop float32, n int) Axis {
	ax := Axis{Name: name}
	if n <= 0 {
		return ax
	}
	if n == 1 {
		ax.SetValues([]float32{start})
		return ax
	}
	vals := make([]float64, n)
	floats.Span(vals, float64(start), float64(stop))
	fv := make([]float32, n)
	for i, v := range vals {
		fv[i] = float32(v)
	}
	ax.SetValues(fv)
	return ax
}

// SetValues sets the axis values and updates Range
func (ax *Axis) SetValues(vals []float32) {
	ax.Values = vals
	ax.UpdateRange()
}

// UpdateRange recomputes Range from Values
func (ax *Axis) UpdateRange() {
	if len(ax.Values) == 0 {
		ax.Range = minmax.F32{}
		return
	}
	ax.Range = minmax.F32{Min: ax.Values[0], Max: ax.Values[0]}
	for _, v := range ax.Values[1:] {
		ax.Range.Min = min(ax.Range.Min, v)
		ax.Range.Max = max(ax.Range.Max, v)
	}
}

// Len returns the number of values
func (ax *Axis) Len() int { return len(ax.Values) }

// ParameterMesh defines an Nx x Ny grid as the outer product of two axes,
// with a Role determining which SimParams values the axes replace.
type ParameterMesh struct {

	// which pair of parameters is swept
	Role MeshRoles `yaml:"role"`

	// swept axes -- exactly two are required to run
	Axes []Axis `yaml:"axes"`
}

// NewParameterMesh returns an empty mesh with the given role
func NewParameterMesh(role MeshRoles) *ParameterMesh {
	return &ParameterMesh{Role: role}
}

// AddAxis appends an axis of n values evenly spaced from start to stop.
// An empty name is replaced by the canonical name for the mesh role.
func (pm *ParameterMesh) AddAxis(start, stop float32, n int, name string) *ParameterMesh {
	if name == "" {
		n1, n2 := pm.Role.AxisNames()
		switch len(pm.Axes) {
		case 0:
			name = n1
		case 1:
			name = n2
		}
	}
	pm.Axes = append(pm.Axes, NewAxis(name, start, stop, n))
	return pm
}

// Axis1 returns the first axis -- mesh must be valid
func (pm *ParameterMesh) Axis1() *Axis { return &pm.Axes[0] }

// Axis2 returns the second axis -- mesh must be valid
func (pm *ParameterMesh) Axis2() *Axis { return &pm.Axes[1] }

// Shape returns the number of values along each axis -- mesh must be valid
func (pm *ParameterMesh) Shape() (nx, ny int) {
	return pm.Axes[0].Len(), pm.Axes[1].Len()
}

// NCells returns the total number of cells -- mesh must be valid
func (pm *ParameterMesh) NCells() int {
	nx, ny := pm.Shape()
	return nx * ny
}

// Pair returns the parameter pair for cell (i, j): X from Axis 1, Y from Axis 2
func (pm *ParameterMesh) Pair(i, j int) mat32.Vec2 {
	return mat32.Vec2{X: pm.Axes[0].Values[i], Y: pm.Axes[1].Values[j]}
}

// Validate returns a *ConfigError if the mesh does not have exactly two
// non-empty axes whose names, if given, match the role.
func (pm *ParameterMesh) Validate() error {
	if pm.Role < 0 || pm.Role >= MeshRolesN {
		return configErrorf("ParameterMesh.Role", "unknown role %d", pm.Role)
	}
	if len(pm.Axes) != 2 {
		return configErrorf("ParameterMesh.Axes", "must specify 2 parameter axes, but %d were specified", len(pm.Axes))
	}
	n1, n2 := pm.Role.AxisNames()
	for i, want := range []string{n1, n2} {
		ax := &pm.Axes[i]
		if ax.Len() == 0 {
			return configErrorf(fmt.Sprintf("ParameterMesh.Axes[%d]", i), "axis %q has no values", ax.Name)
		}
		if ax.Name != "" && ax.Name != want {
			return configErrorf(fmt.Sprintf("ParameterMesh.Axes[%d]", i), "name %q does not match %v role, expected %q", ax.Name, pm.Role, want)
		}
	}
	return nil
}

func (pm *ParameterMesh) String() string {
	if len(pm.Axes) != 2 {
		return fmt.Sprintf("%v mesh (%d axes)", pm.Role, len(pm.Axes))
	}
	a1, a2 := pm.Axis1(), pm.Axis2()
	return fmt.Sprintf("%v mesh %s [%g..%g] x %d, %s [%g..%g] x %d", pm.Role,
		a1.Name, a1.Range.Min, a1.Range.Max, a1.Len(), a2.Name, a2.Range.Min, a2.Range.Max, a2.Len())
}
