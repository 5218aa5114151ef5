// Copyright (c) 2026, Lattice Works Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lattice

import "math"

// gyroid is the level-set function of the gyroid minimal surface,
// sin(kx*x)cos(ky*y) + sin(ky*y)cos(kz*z) + sin(kz*z)cos(kx*x).
func gyroid(kx, ky, kz, x, y, z float64) float64 {
	return math.Sin(kx*x)*math.Cos(ky*y) +
		math.Sin(ky*y)*math.Cos(kz*z) +
		math.Sin(kz*z)*math.Cos(kx*x)
}

// networkThreshold maps a volume fraction to the level-set offset of a
// network-phase TPMS. Linear approximation: vf = 0.5 sits on the
// minimal surface itself.
func networkThreshold(vf float64) float64 { return 1.1 * (2*vf - 1) }

// surfaceThreshold maps a volume fraction to the sheet half-width of a
// surface-phase TPMS. Linear approximation.
func surfaceThreshold(vf float64) float64 { return 1.4 * vf }

// GyroidNetwork is the solid network phase bounded by a gyroid surface
// offset according to the volume fraction.
type GyroidNetwork struct {
	UnitCell
}

// EvaluatePoint returns the field value at (x, y, z).
func (g GyroidNetwork) EvaluatePoint(x, y, z float64) float64 {
	kx, ky, kz := g.k()
	return gyroid(kx, ky, kz, x, y, z) - networkThreshold(g.VF)
}

// GyroidSurface is the sheet phase: a solid slab of thickness set by
// the volume fraction, centered on the gyroid minimal surface.
type GyroidSurface struct {
	UnitCell
}

// EvaluatePoint returns the field value at (x, y, z).
func (g GyroidSurface) EvaluatePoint(x, y, z float64) float64 {
	kx, ky, kz := g.k()
	l := gyroid(kx, ky, kz, x, y, z)
	t := surfaceThreshold(g.VF)
	return l*l - t*t
}
