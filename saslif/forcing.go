// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package saslif

// ForcingSeries returns the two-oscillator forcing at every step, using the
// configured amplitudes.  This is the series shared by all cells when the
// mesh does not sweep the forcing amplitudes.
func ForcingSeries(sp *SimParams) []float32 {
	fs := make([]float32, sp.Time.NSteps)
	for step := range fs {
		fs[step] = sp.Forcing.At(step, sp.Time.Dt, sp.Forcing.ThetaAmp, sp.Forcing.InterfAmp)
	}
	return fs
}

// ThetaRhythm returns the unit-amplitude theta oscillation at every step.
// It is the reference signal for phase-cycle segmentation, and can be
// rebuilt from the parameters alone when decoding a stored spike log.
func ThetaRhythm(sp *SimParams) []float64 {
	th := make([]float64, sp.Time.NSteps)
	for step := range th {
		th[step] = oscSin64(sp.Forcing.ThetaFreq, step, sp.Time.Dt)
	}
	return th
}
