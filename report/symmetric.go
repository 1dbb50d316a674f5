// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// SymmetricIndices returns n indices into axis values, approximately evenly
// spaced and centrally symmetric about the middle of the axis range, for
// choosing probe cells.  Evenly spaced points over the range are rounded
// away from the center to whole numbers, and each is mapped to the index of
// the nearest axis value (the first in case of ties).
func SymmetricIndices(values []float32, n int) []int {
	if len(values) == 0 || n <= 0 {
		return nil
	}
	first, last := float64(values[0]), float64(values[len(values)-1])
	mid := (last-first)/2 + first
	pts := make([]float64, n)
	if n == 1 {
		pts[0] = first
	} else {
		floats.Span(pts, first, last)
	}
	vals := make([]float64, len(values))
	for i, v := range values {
		vals[i] = float64(v)
	}
	idxs := make([]int, n)
	for k, p := range pts {
		switch {
		case p < mid:
			p = math.Floor(p)
		case p > mid:
			p = math.Ceil(p)
		default:
			p = math.Trunc(p)
		}
		best := math.Inf(1)
		for i, v := range vals {
			if d := math.Abs(v - p); d < best {
				best = d
				idxs[k] = i
			}
		}
	}
	return idxs
}
