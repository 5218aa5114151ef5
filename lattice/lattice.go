// Copyright (c) 2026, Lattice Works Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lattice provides triply-periodic minimal surface (TPMS)
// primitives for infill and lattice structures: gyroid and Schwarz P
// families in network and surface (sheet) form, plus double-network
// composites. All primitives implement the frep.Evaluable capability
// and share a common unit-cell parametrization.
package lattice

import "math"

// UnitCell is the shared parametrization of all TPMS primitives:
// number of unit cells per length, length of one unit cell per axis,
// and the volume fraction controlling the solid/void proportion.
type UnitCell struct {
	// NX, NY, NZ are the number of unit cells per length on each axis.
	NX, NY, NZ float64

	// LX, LY, LZ are the unit cell lengths on each axis.
	LX, LY, LZ float64

	// VF is the volume fraction in (0, 1).
	VF float64
}

// Cell returns a UnitCell with n cells of length l on every axis at
// volume fraction vf.
func Cell(n, l, vf float64) UnitCell {
	return UnitCell{NX: n, NY: n, NZ: n, LX: l, LY: l, LZ: l, VF: vf}
}

// WithVF returns a copy of the cell at a different volume fraction.
// Used by double-network builders to re-parametrize a family.
func (u UnitCell) WithVF(vf float64) UnitCell {
	u.VF = vf
	return u
}

// k returns the per-axis angular frequencies 2*pi*n/l.
func (u UnitCell) k() (kx, ky, kz float64) {
	return 2 * math.Pi * u.NX / u.LX,
		2 * math.Pi * u.NY / u.LY,
		2 * math.Pi * u.NZ / u.LZ
}
