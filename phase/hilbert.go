// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package phase segments a reference oscillation into cycles and reduces the
spikes of every mesh cell within every cycle to one representative phase.

The instantaneous phase of the reference is taken from its analytic signal
(Hilbert transform), shifted so that phase 0 is the ascending zero-crossing
of a sine.  A cycle boundary is every step at which the phase wraps.  Each
(cell, cycle) phase is reduced with one of the Techniques: Mean, Median, or
KDE (mode of a Gaussian kernel density with cross-validated bandwidth).
*/
package phase

import (
	"gonum.org/v1/gonum/dsp/fourier"
)

// AnalyticSignal returns the analytic signal x + i*H(x) of real signal x,
// where H is the Hilbert transform, computed by zeroing the negative
// frequencies of the discrete Fourier transform.
func AnalyticSignal(x []float64) []complex128 {
	n := len(x)
	if n == 0 {
		return nil
	}
	fft := fourier.NewCmplxFFT(n)
	seq := make([]complex128, n)
	for i, v := range x {
		seq[i] = complex(v, 0)
	}
	coef := fft.Coefficients(nil, seq)
	// h = 1 at DC (and Nyquist for even n), 2 for positive, 0 for negative frequencies
	half := n / 2
	if n%2 == 0 {
		for k := 1; k < half; k++ {
			coef[k] *= 2
		}
		for k := half + 1; k < n; k++ {
			coef[k] = 0
		}
	} else {
		for k := 1; k <= half; k++ {
			coef[k] *= 2
		}
		for k := half + 1; k < n; k++ {
			coef[k] = 0
		}
	}
	as := fft.Sequence(nil, coef)
	norm := complex(1/float64(n), 0)
	for i := range as {
		as[i] *= norm
	}
	return as
}
