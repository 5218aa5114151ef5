// Copyright (c) 2026, Lattice Works Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSphere(t *testing.T) {
	s := Sphere{R: 0.5}
	assert.Negative(t, s.EvaluatePoint(0, 0, 0))
	assert.Zero(t, s.EvaluatePoint(0.5, 0, 0))
	assert.Positive(t, s.EvaluatePoint(0.5, 0.5, 0))

	lo, hi := s.Limits(r3.Vec{X: 1})
	assert.Equal(t, r3.Vec{X: 0.5, Y: -0.5, Z: -0.5}, lo)
	assert.Equal(t, r3.Vec{X: 1.5, Y: 0.5, Z: 0.5}, hi)
}

func TestBox(t *testing.T) {
	b := Box{Size: r3.Vec{X: 2, Y: 1, Z: 1}}
	assert.Negative(t, b.EvaluatePoint(0, 0, 0))
	assert.Zero(t, b.EvaluatePoint(1, 0, 0))
	assert.Zero(t, b.EvaluatePoint(0, 0.5, 0))
	assert.Positive(t, b.EvaluatePoint(0, 0.6, 0))
	assert.Positive(t, b.EvaluatePoint(1.1, 0, 0))

	lo, hi := b.Limits(r3.Vec{})
	assert.Equal(t, r3.Vec{X: -1, Y: -0.5, Z: -0.5}, lo)
	assert.Equal(t, r3.Vec{X: 1, Y: 0.5, Z: 0.5}, hi)
}

func TestCylinder(t *testing.T) {
	c := Cylinder{R: 0.5, H: 2}
	assert.Negative(t, c.EvaluatePoint(0, 0, 0))
	assert.Zero(t, c.EvaluatePoint(0.5, 0, 0))
	assert.Zero(t, c.EvaluatePoint(0, 0, 1))
	assert.Positive(t, c.EvaluatePoint(0, 0, 1.5))
	assert.Positive(t, c.EvaluatePoint(0.6, 0, 0))

	lo, hi := c.Limits(r3.Vec{Z: 1})
	assert.Equal(t, r3.Vec{X: -0.5, Y: -0.5, Z: 0}, lo)
	assert.Equal(t, r3.Vec{X: 0.5, Y: 0.5, Z: 2}, hi)
}
