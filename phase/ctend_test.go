// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phase

import (
	"math"
	"strings"
	"testing"
)

func TestCentralTendencyMean(t *testing.T) {
	v, ok := CentralTendency([]float64{0.1, 0.2, 0.3}, Mean, nil)
	if !ok || math.Abs(v-0.2) > difTol {
		t.Errorf("mean: %v, want 0.2\n", v)
	}
}

func TestCentralTendencySingle(t *testing.T) {
	for tech := Mean; tech < TechniquesN; tech++ {
		v, ok := CentralTendency([]float64{1.5}, tech, nil)
		if !ok || v != 1.5 {
			t.Errorf("%v of [1.5]: %v, want 1.5\n", tech, v)
		}
	}
}

func TestCentralTendencyEmpty(t *testing.T) {
	for tech := Mean; tech < TechniquesN; tech++ {
		if _, ok := CentralTendency(nil, tech, nil); ok {
			t.Errorf("%v of empty input should not be ok\n", tech)
		}
	}
}

func TestCentralTendencyMedian(t *testing.T) {
	in := []float64{3, 1, 2}
	v, _ := CentralTendency(in, Median, nil)
	if v != 2 {
		t.Errorf("odd median: %v, want 2\n", v)
	}
	if in[0] != 3 {
		t.Errorf("median modified its input: %v\n", in)
	}
	v, _ = CentralTendency([]float64{4, 1, 3, 2}, Median, nil)
	if v != 2.5 {
		t.Errorf("even median: %v, want 2.5\n", v)
	}
}

func TestCentralTendencyKDE(t *testing.T) {
	kp := &KDEParams{}
	kp.Defaults()
	if len(kp.Bandwidths) != 100 || math.Abs(kp.Bandwidths[0]-0.1) > difTol || math.Abs(kp.Bandwidths[99]-10) > 1.0e-9 {
		t.Errorf("bandwidths: %v .. %v\n", kp.Bandwidths[0], kp.Bandwidths[len(kp.Bandwidths)-1])
	}
	if kp.Grid[0] != 0 || math.Abs(kp.Grid[len(kp.Grid)-1]-2*math.Pi) > difTol {
		t.Errorf("grid: %v .. %v\n", kp.Grid[0], kp.Grid[len(kp.Grid)-1])
	}
	v, ok := CentralTendency([]float64{1.9, 1.95, 2.0, 2.05, 2.1}, KDE, kp)
	if !ok || math.Abs(v-2.0) > 0.01 {
		t.Errorf("symmetric cluster mode: %v, want 2.0\n", v)
	}
	// mode follows the dense cluster, unlike the mean
	in := []float64{1.0, 1.02, 0.98, 1.01, 4.5}
	mean, _ := CentralTendency(in, Mean, nil)
	v, _ = CentralTendency(in, KDE, kp)
	if v >= mean || math.Abs(v-1.0) > 0.2 {
		t.Errorf("bimodal mode: %v, want near 1.0 and below mean %v\n", v, mean)
	}
}

func TestLOOBandwidth(t *testing.T) {
	// tight samples prefer the smallest candidate, widely spread ones a larger one
	bws := []float64{0.1, 1, 10}
	if bw := LOOBandwidth([]float64{1.0, 1.01, 0.99, 1.02}, bws); bw != 0.1 {
		t.Errorf("tight samples bandwidth: %v, want 0.1\n", bw)
	}
	if bw := LOOBandwidth([]float64{0, 2, 4, 6}, bws); bw == 0.1 {
		t.Errorf("spread samples should not pick the smallest bandwidth\n")
	}
}

func TestTechniquesString(t *testing.T) {
	var tech Techniques
	if err := tech.FromString("KDE"); err != nil || tech != KDE {
		t.Errorf("FromString(KDE): %v %v\n", tech, err)
	}
	if Median.String() != "Median" {
		t.Errorf("String: %v\n", Median.String())
	}
}

func TestKDEParamsValidate(t *testing.T) {
	kp := &KDEParams{}
	kp.Defaults()
	if err := kp.Validate(); err != nil {
		t.Errorf("defaults should be valid: %v\n", err)
	}
	tests := []struct {
		nm   string
		edit func(kp *KDEParams)
	}{
		{"n_bandwidths", func(kp *KDEParams) { kp.NBandwidths = 0 }},
		{"grid_n", func(kp *KDEParams) { kp.GridN = 1 }},
		{"min_exp", func(kp *KDEParams) { kp.MinExp = 2 }},
		{"min_exp", func(kp *KDEParams) { kp.MaxExp = math.NaN() }},
	}
	for _, tt := range tests {
		kp := &KDEParams{}
		kp.Defaults()
		tt.edit(kp)
		err := kp.Validate()
		if err == nil || !strings.Contains(err.Error(), tt.nm) {
			t.Errorf("%s: got %v\n", tt.nm, err)
		}
	}
	if err := (&KDEParams{}).Validate(); err == nil {
		t.Errorf("zero KDEParams should be invalid\n")
	}
}

func TestCentralTendencyKDEEmptyParams(t *testing.T) {
	// no bandwidths falls back to the defaults instead of failing
	kp := &KDEParams{GridN: 100}
	kp.Update()
	v, ok := CentralTendency([]float64{1.9, 2.0, 2.1}, KDE, kp)
	if !ok || math.Abs(v-2.0) > 0.01 {
		t.Errorf("mode: %v, want 2.0\n", v)
	}
	if bw := LOOBandwidth([]float64{1, 2}, nil); !math.IsNaN(bw) {
		t.Errorf("no candidates: %v, want NaN\n", bw)
	}
}
