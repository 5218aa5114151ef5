// Copyright (c) 2026, Lattice Works Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lattice

import "github.com/latticeworks/frep"

// DoubleGyroidNetwork builds the double-network gyroid lattice: two
// copies of the gyroid surface family instantiated at volume fractions
// 0.5 +/- vf/2 and combined as -(A_high - A_low).
func DoubleGyroidNetwork(space *frep.DesignSpace, cell UnitCell, vf float64) (*frep.Geometry, error) {
	g, err := frep.DoubleNetwork(space, func(vf float64) frep.Evaluable {
		return GyroidSurface{cell.WithVF(vf)}
	}, vf)
	if err != nil {
		return nil, err
	}
	return g.SetName("DoubleGyroidNetwork"), nil
}

// DoubleSchwarzPNetwork builds the double-network Schwarz Primitive
// lattice from the Schwarz P surface family.
func DoubleSchwarzPNetwork(space *frep.DesignSpace, cell UnitCell, vf float64) (*frep.Geometry, error) {
	g, err := frep.DoubleNetwork(space, func(vf float64) frep.Evaluable {
		return SchwarzPSurface{cell.WithVF(vf)}
	}, vf)
	if err != nil {
		return nil, err
	}
	return g.SetName("DoubleSchwarzPNetwork"), nil
}
