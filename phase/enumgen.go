// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phase

import (
	"errors"
	"strconv"
)

const _Techniques_name = "MeanMedianKDETechniquesN"

var _Techniques_index = [...]uint8{0, 4, 10, 13, 24}

func (i Techniques) String() string {
	if i < 0 || i >= Techniques(len(_Techniques_index)-1) {
		return "Techniques(" + strconv.FormatInt(int64(i), 10) + ")"
	}
	return _Techniques_name[_Techniques_index[i]:_Techniques_index[i+1]]
}

func (i *Techniques) FromString(s string) error {
	for j := 0; j < len(_Techniques_index)-1; j++ {
		if s == _Techniques_name[_Techniques_index[j]:_Techniques_index[j+1]] {
			*i = Techniques(j)
			return nil
		}
	}
	return errors.New("String: " + s + " is not a valid option for type: Techniques")
}
