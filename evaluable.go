// Copyright (c) 2026, Lattice Works Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frep

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Evaluable is the capability shared by every primitive and composite
// shape: the scalar field value at a point. Negative values are inside
// the shape, positive outside, and the zero level set is the surface.
// Implementations must be pure functions of their inputs; all sampling
// state lives in [Geometry].
type Evaluable interface {
	EvaluatePoint(x, y, z float64) float64
}

// EvalFunc adapts an ordinary function to the [Evaluable] interface.
type EvalFunc func(x, y, z float64) float64

func (f EvalFunc) EvaluatePoint(x, y, z float64) float64 { return f(x, y, z) }

// Limiter is optionally implemented by shape functions that know their
// own spatial extent. Limits returns the axis-aligned bounds of the
// shape when placed at the given position; [Geometry.CompareLimits]
// warns when these fall outside the design space.
type Limiter interface {
	Limits(pos r3.Vec) (lo, hi r3.Vec)
}

// CoordSystem selects how a [Geometry] interprets incoming sample
// coordinates before delegating to its shape function.
type CoordSystem int32

const (
	// Cartesian passes (x, y, z) through unchanged.
	Cartesian CoordSystem = iota

	// Cylindrical interprets inputs as (r, theta, z) and converts to
	// cartesian via x = r*cos(theta), y = r*sin(theta).
	Cylindrical

	// Spherical interprets inputs as (r, theta, phi) with polar angle
	// theta and azimuth phi.
	Spherical
)

func (c CoordSystem) String() string {
	switch c {
	case Cartesian:
		return "cartesian"
	case Cylindrical:
		return "cylindrical"
	case Spherical:
		return "spherical"
	}
	return "invalid"
}

// Transform is a rigid transform (rotation about an axis through the
// origin followed by translation) applied to input coordinates before a
// shape function evaluates them.
type Transform struct {
	rot   r3.Rotation
	shift r3.Vec
}

// NewTransform returns a Transform rotating by angle radians about the
// given axis and then translating by shift.
func NewTransform(angle float64, axis, shift r3.Vec) *Transform {
	return &Transform{rot: r3.NewRotation(angle, axis), shift: shift}
}

// Apply transforms the point.
func (t *Transform) Apply(p r3.Vec) r3.Vec {
	return r3.Add(t.rot.Rotate(p), t.shift)
}
