// Copyright (c) 2026, Lattice Works Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestNewValidation(t *testing.T) {
	step := r3.Vec{X: 0.1, Y: 0.1, Z: 0.1}
	_, err := New(1, 4, 4, step, r3.Vec{})
	assert.Error(t, err)
	_, err = New(4, 4, 4, r3.Vec{X: 0.1, Y: 0, Z: 0.1}, r3.Vec{})
	assert.Error(t, err)
	_, err = New(4, 4, 4, r3.Vec{X: 0.1, Y: 0.1, Z: -0.1}, r3.Vec{})
	assert.Error(t, err)

	f, err := New(3, 4, 5, step, r3.Vec{X: -1, Y: -1, Z: -1})
	require.NoError(t, err)
	nx, ny, nz := f.Size()
	assert.Equal(t, 3, nx)
	assert.Equal(t, 4, ny)
	assert.Equal(t, 5, nz)
	assert.Equal(t, 60, f.Len())
}

func TestIndexingAndPoint(t *testing.T) {
	f, err := New(3, 3, 3, r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}, r3.Vec{X: -0.5, Y: -0.5, Z: -0.5})
	require.NoError(t, err)
	f.Set(1, 2, 0, 42)
	assert.Equal(t, 42.0, f.At(1, 2, 0))
	assert.Equal(t, 42.0, f.Values[f.Index(1, 2, 0)])

	p := f.Point(2, 0, 1)
	assert.Equal(t, r3.Vec{X: 0.5, Y: -0.5, Z: 0}, p)

	b := f.Bounds()
	assert.Equal(t, r3.Vec{X: -0.5, Y: -0.5, Z: -0.5}, b.Min)
	assert.Equal(t, r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}, b.Max)
}

// fill samples fn at every lattice point.
func fill(f *Field, fn func(p r3.Vec) float64) {
	nx, ny, nz := f.Size()
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				f.Set(i, j, k, fn(f.Point(i, j, k)))
			}
		}
	}
}

func TestInterpLinearField(t *testing.T) {
	f, err := New(5, 5, 5, r3.Vec{X: 0.25, Y: 0.25, Z: 0.25}, r3.Vec{})
	require.NoError(t, err)
	lin := func(p r3.Vec) float64 { return 2*p.X - 3*p.Y + p.Z }
	fill(f, lin)

	// Trilinear interpolation reproduces a linear field everywhere.
	pts := []r3.Vec{
		{X: 0.1, Y: 0.2, Z: 0.3},
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 1},
		{X: 0.625, Y: 0.125, Z: 0.99},
	}
	for _, p := range pts {
		assert.InDelta(t, lin(p), f.Interp(p), 1e-12)
	}
	// Clamped outside the lattice.
	assert.InDelta(t, lin(r3.Vec{X: 1, Y: 0, Z: 0}), f.Interp(r3.Vec{X: 2, Y: 0, Z: 0}), 1e-12)
}

func TestGradientLinearField(t *testing.T) {
	f, err := New(6, 6, 6, r3.Vec{X: 0.2, Y: 0.2, Z: 0.2}, r3.Vec{X: -0.5, Y: -0.5, Z: -0.5})
	require.NoError(t, err)
	fill(f, func(p r3.Vec) float64 { return 2*p.X - 3*p.Y + 0.5*p.Z })

	grad := f.Gradient()
	want := [3]float64{2, -3, 0.5}
	for a := 0; a < 3; a++ {
		assert.True(t, f.SameShape(grad[a]))
		for _, v := range grad[a].Values {
			assert.InDelta(t, want[a], v, 1e-10)
		}
	}
}

func TestMinMaxAndCrossesLevel(t *testing.T) {
	f, err := New(2, 2, 2, r3.Vec{X: 1, Y: 1, Z: 1}, r3.Vec{})
	require.NoError(t, err)
	copy(f.Values, []float64{-1, 0, 2, 3, -0.5, 1, 1, 1})
	lo, hi := f.MinMax()
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 3.0, hi)
	assert.True(t, f.CrossesLevel(0))
	assert.True(t, f.CrossesLevel(-1))
	assert.False(t, f.CrossesLevel(4))
	assert.False(t, f.CrossesLevel(-2))
}

func TestMaximumMinimum(t *testing.T) {
	a, _ := New(2, 2, 2, r3.Vec{X: 1, Y: 1, Z: 1}, r3.Vec{})
	b, _ := New(2, 2, 2, r3.Vec{X: 1, Y: 1, Z: 1}, r3.Vec{})
	for i := range a.Values {
		a.Values[i] = float64(i)
		b.Values[i] = 3.5
	}
	mx, err := Maximum(a, b)
	require.NoError(t, err)
	mn, err := Minimum(a, b)
	require.NoError(t, err)
	for i := range mx.Values {
		assert.Equal(t, math.Max(float64(i), 3.5), mx.Values[i])
		assert.Equal(t, math.Min(float64(i), 3.5), mn.Values[i])
	}

	c, _ := New(2, 2, 3, r3.Vec{X: 1, Y: 1, Z: 1}, r3.Vec{})
	_, err = Maximum(a, c)
	assert.Error(t, err)
}
