// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rmq

import (
	"errors"
	"strconv"
)

const _Regimes_name = "NoRegimeLockingPrecessionRecessionRegimesN"

var _Regimes_index = [...]uint8{0, 8, 15, 25, 34, 42}

func (i Regimes) String() string {
	if i < 0 || i >= Regimes(len(_Regimes_index)-1) {
		return "Regimes(" + strconv.FormatInt(int64(i), 10) + ")"
	}
	return _Regimes_name[_Regimes_index[i]:_Regimes_index[i+1]]
}

func (i *Regimes) FromString(s string) error {
	for j := 0; j < len(_Regimes_index)-1; j++ {
		if s == _Regimes_name[_Regimes_index[j]:_Regimes_index[j+1]] {
			*i = Regimes(j)
			return nil
		}
	}
	return errors.New("String: " + s + " is not a valid option for type: Regimes")
}
