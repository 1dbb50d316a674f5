// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package saslif

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-5)

func TestSimParamsDefaults(t *testing.T) {
	sp := NewSimParams()
	if sp.Time.NSteps != 300000 {
		t.Errorf("NSteps: %v, want 300000\n", sp.Time.NSteps)
	}
	if sp.Spike.RefractLen != 200 {
		t.Errorf("RefractLen: %v, want 200\n", sp.Spike.RefractLen)
	}
	if sp.SpikeCap != DefaultSpikeCap {
		t.Errorf("SpikeCap: %v, want %v\n", sp.SpikeCap, DefaultSpikeCap)
	}
	if dif := math32.Abs(sp.Spike.VmDt - 0.001); dif > difTol {
		t.Errorf("VmDt: %v, want 0.001\n", sp.Spike.VmDt)
	}
	if dif := math32.Abs(sp.Noise.SqrtDtTau - math32.Sqrt(0.5)); dif > difTol {
		t.Errorf("SqrtDtTau: %v, want %v\n", sp.Noise.SqrtDtTau, math32.Sqrt(0.5))
	}
	if err := sp.Validate(); err != nil {
		t.Error(err)
	}
}

func TestSimParamsValidate(t *testing.T) {
	tests := []struct {
		name  string
		set   func(sp *SimParams)
		field string
	}{
		{"zero dt", func(sp *SimParams) { sp.Time.Dt = 0 }, "Time.Dt"},
		{"negative dt", func(sp *SimParams) { sp.Time.Dt = -0.1 }, "Time.Dt"},
		{"zero duration", func(sp *SimParams) { sp.Time.Duration = 0 }, "Time.Duration"},
		{"one step", func(sp *SimParams) { sp.Time.Duration = 0.015 }, "Time.Duration"},
		{"zero tau", func(sp *SimParams) { sp.Spike.Tau = 0 }, "Spike.Tau"},
		{"zero adapt tau", func(sp *SimParams) { sp.Adapt.Tau = 0 }, "Adapt.Tau"},
		{"zero noise tau", func(sp *SimParams) { sp.Noise.Tau = 0 }, "Noise.Tau"},
		{"zero cap", func(sp *SimParams) { sp.SpikeCap = 0 }, "SpikeCap"},
		{"zero check", func(sp *SimParams) { sp.CheckEvery = 0 }, "CheckEvery"},
	}
	for _, tt := range tests {
		sp := NewSimParams()
		tt.set(sp)
		sp.Update()
		err := sp.Validate()
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got: %v\n", tt.name, err)
			continue
		}
		var ce *ConfigError
		if !errors.As(err, &ce) || ce.Field != tt.field {
			t.Errorf("%s: expected field %s, got: %v\n", tt.name, tt.field, err)
		}
	}
}

func TestVmFmInputs(t *testing.T) {
	sp := NewSimParams()
	vm := sp.Spike.VmFmInputs(-75, 10, 0, 0)
	if dif := math32.Abs(vm - -74.99); dif > difTol {
		t.Errorf("vm: %v, want -74.99, dif: %v\n", vm, dif)
	}
	// at rest with no input nothing changes
	vm = sp.Spike.VmFmInputs(-75, 0, 0, 0)
	if vm != -75 {
		t.Errorf("vm: %v, want -75\n", vm)
	}
	// adaptation subtracts, noise adds
	vm = sp.Spike.VmFmInputs(-75, 0, 20, 5)
	if dif := math32.Abs(vm - -75.015); dif > difTol {
		t.Errorf("vm: %v, want -75.015, dif: %v\n", vm, dif)
	}
}

func TestWFmSpike(t *testing.T) {
	sp := NewSimParams()
	w := sp.Adapt.WFmSpike(0, true, 0.01, 50, 8)
	if dif := math32.Abs(w - 0.496); dif > difTol {
		t.Errorf("w spiking: %v, want 0.496, dif: %v\n", w, dif)
	}
	w = sp.Adapt.WFmSpike(1, false, 0.01, 50, 8)
	if dif := math32.Abs(w - 0.992); dif > difTol {
		t.Errorf("w decay: %v, want 0.992, dif: %v\n", w, dif)
	}
}

func TestXiFmRand(t *testing.T) {
	sp := NewSimParams()
	// zero volatility relaxes toward mu
	xi := sp.Noise.XiFmRand(0, 0.3, 0, 0.01, 1.7)
	if dif := math32.Abs(xi - 0.01*0.3/50); dif > difTol {
		t.Errorf("xi: %v, want %v\n", xi, 0.01*0.3/50)
	}
	xi = sp.Noise.XiFmRand(0, 0, 100, 0.01, 1)
	if dif := math32.Abs(xi - 100*math32.Sqrt(0.5)); dif > 1.0e-3 {
		t.Errorf("xi: %v, want %v\n", xi, 100*math32.Sqrt(0.5))
	}
}

func TestForcing(t *testing.T) {
	sp := NewSimParams()
	// quarter period of 10 Hz is 25 ms = 2500 steps
	th := sp.Forcing.ThetaSin(2500, sp.Time.Dt)
	if dif := math32.Abs(th - 1); dif > difTol {
		t.Errorf("theta at quarter period: %v, want 1\n", th)
	}
	if f := sp.Forcing.At(0, sp.Time.Dt, 35, 35); f != 0 {
		t.Errorf("forcing at 0: %v, want 0\n", f)
	}
	sp.Time.Duration = 10
	sp.Update()
	fs := ForcingSeries(sp)
	if len(fs) != sp.Time.NSteps {
		t.Fatalf("series len: %v, want %v\n", len(fs), sp.Time.NSteps)
	}
	for step, f := range fs {
		want := sp.Forcing.At(step, sp.Time.Dt, 35, 35)
		if f != want {
			t.Errorf("series step %d: %v, want %v\n", step, f, want)
			break
		}
	}
	rh := ThetaRhythm(sp)
	if len(rh) != sp.Time.NSteps || rh[0] != 0 {
		t.Errorf("theta rhythm len: %v first: %v\n", len(rh), rh[0])
	}
}

func TestNSteps(t *testing.T) {
	tests := []struct {
		dur, dt float32
		want    int
	}{
		{0.3, 0.1, 2},
		{2, 0.1, 20},
		{100, 0.1, 1000},
		{3000, 0.01, 300000},
		{0.015, 0.01, 1},
		{1, 0.3, 3},
	}
	for _, tt := range tests {
		if n := NSteps(tt.dur, tt.dt); n != tt.want {
			t.Errorf("NSteps(%v, %v): %v, want %v\n", tt.dur, tt.dt, n, tt.want)
		}
	}
	sp := NewSimParams()
	sp.Time.Dt = 0.1
	sp.Time.Duration = 0.3
	sp.Update()
	if sp.Time.NSteps != 2 || sp.Spike.RefractLen != 20 {
		t.Errorf("NSteps: %v RefractLen: %v, want 2 and 20\n", sp.Time.NSteps, sp.Spike.RefractLen)
	}
}
