// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package saslif

import (
	"errors"
	"strconv"
)

const _MeshRoles_name = "ForcingMeshAdaptMeshNoiseMeshMeshRolesN"

var _MeshRoles_index = [...]uint8{0, 11, 20, 29, 39}

func (i MeshRoles) String() string {
	if i < 0 || i >= MeshRoles(len(_MeshRoles_index)-1) {
		return "MeshRoles(" + strconv.FormatInt(int64(i), 10) + ")"
	}
	return _MeshRoles_name[_MeshRoles_index[i]:_MeshRoles_index[i+1]]
}

func (i *MeshRoles) FromString(s string) error {
	for j := 0; j < len(_MeshRoles_index)-1; j++ {
		if s == _MeshRoles_name[_MeshRoles_index[j]:_MeshRoles_index[j+1]] {
			*i = MeshRoles(j)
			return nil
		}
	}
	return errors.New("String: " + s + " is not a valid option for type: MeshRoles")
}

const _NeurFlags_name = "NeurSpikingNeurDivergedNeurFlagsN"

var _NeurFlags_index = [...]uint8{0, 11, 23, 33}

func (i NeurFlags) String() string {
	if i < 0 || i >= NeurFlags(len(_NeurFlags_index)-1) {
		return "NeurFlags(" + strconv.FormatInt(int64(i), 10) + ")"
	}
	return _NeurFlags_name[_NeurFlags_index[i]:_NeurFlags_index[i+1]]
}

func (i *NeurFlags) FromString(s string) error {
	for j := 0; j < len(_NeurFlags_index)-1; j++ {
		if s == _NeurFlags_name[_NeurFlags_index[j]:_NeurFlags_index[j+1]] {
			*i = NeurFlags(j)
			return nil
		}
	}
	return errors.New("String: " + s + " is not a valid option for type: NeurFlags")
}
