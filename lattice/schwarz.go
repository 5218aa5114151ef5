// Copyright (c) 2026, Lattice Works Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lattice

import "math"

// schwarzP is the level-set function of the Schwarz Primitive surface,
// cos(kx*x) + cos(ky*y) + cos(kz*z).
func schwarzP(kx, ky, kz, x, y, z float64) float64 {
	return math.Cos(kx*x) + math.Cos(ky*y) + math.Cos(kz*z)
}

// SchwarzPNetwork is the solid network phase of the Schwarz Primitive
// lattice.
type SchwarzPNetwork struct {
	UnitCell
}

// EvaluatePoint returns the field value at (x, y, z).
func (s SchwarzPNetwork) EvaluatePoint(x, y, z float64) float64 {
	kx, ky, kz := s.k()
	return schwarzP(kx, ky, kz, x, y, z) - networkThreshold(s.VF)
}

// SchwarzPSurface is the sheet phase of the Schwarz Primitive lattice.
type SchwarzPSurface struct {
	UnitCell
}

// EvaluatePoint returns the field value at (x, y, z).
func (s SchwarzPSurface) EvaluatePoint(x, y, z float64) float64 {
	kx, ky, kz := s.k()
	l := schwarzP(kx, ky, kz, x, y, z)
	t := surfaceThreshold(s.VF)
	return l*l - t*t
}
