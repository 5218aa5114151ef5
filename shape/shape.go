// Copyright (c) 2026, Lattice Works Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shape provides simple implicit primitives: sphere, box, and
// cylinder. Each implements the frep.Evaluable capability and declares
// its own bounding limits for design-space containment checks.
package shape

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Sphere is a sphere of radius R centered on the geometry position.
// Its field is x² + y² + z² - R².
type Sphere struct {
	R float64
}

// EvaluatePoint returns the field value at (x, y, z).
func (s Sphere) EvaluatePoint(x, y, z float64) float64 {
	return x*x + y*y + z*z - s.R*s.R
}

// Limits returns the axis-aligned bounds of the sphere at pos.
func (s Sphere) Limits(pos r3.Vec) (lo, hi r3.Vec) {
	d := r3.Vec{X: s.R, Y: s.R, Z: s.R}
	return r3.Sub(pos, d), r3.Add(pos, d)
}

// Box is an axis-aligned box with the given full side lengths, centered
// on the geometry position.
type Box struct {
	Size r3.Vec
}

// EvaluatePoint returns the field value at (x, y, z).
func (b Box) EvaluatePoint(x, y, z float64) float64 {
	dx := math.Abs(x) - b.Size.X/2
	dy := math.Abs(y) - b.Size.Y/2
	dz := math.Abs(z) - b.Size.Z/2
	return math.Max(dx, math.Max(dy, dz))
}

// Limits returns the axis-aligned bounds of the box at pos.
func (b Box) Limits(pos r3.Vec) (lo, hi r3.Vec) {
	h := r3.Scale(0.5, b.Size)
	return r3.Sub(pos, h), r3.Add(pos, h)
}

// Cylinder is a z-aligned cylinder of radius R and height H, centered
// on the geometry position.
type Cylinder struct {
	R, H float64
}

// EvaluatePoint returns the field value at (x, y, z).
func (c Cylinder) EvaluatePoint(x, y, z float64) float64 {
	return math.Max(x*x+y*y-c.R*c.R, math.Abs(z)-c.H/2)
}

// Limits returns the axis-aligned bounds of the cylinder at pos.
func (c Cylinder) Limits(pos r3.Vec) (lo, hi r3.Vec) {
	d := r3.Vec{X: c.R, Y: c.R, Z: c.H / 2}
	return r3.Sub(pos, d), r3.Add(pos, d)
}
