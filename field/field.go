// Copyright (c) 2026, Lattice Works Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package field provides sampled 3D scalar fields over regular grids:
// flat float64 backing storage with row-major strides, per-axis sample
// spacing, trilinear interpolation, and central-difference gradients.
package field

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Field is a scalar field sampled on a regular 3D grid.
// Values are stored in a flat row-major slice with x as the outermost
// dimension: index = (i*ny + j)*nz + k for sample (i, j, k).
// Step holds the per-axis sample spacing and Origin the position of
// sample (0, 0, 0) in model space.
type Field struct {
	size   [3]int
	Values []float64
	Step   r3.Vec
	Origin r3.Vec
}

// New returns a zero-valued field with the given per-axis sample
// counts, spacing, and origin. All counts must be at least 2 and all
// steps strictly positive.
func New(nx, ny, nz int, step, origin r3.Vec) (*Field, error) {
	if nx < 2 || ny < 2 || nz < 2 {
		return nil, fmt.Errorf("field: sample counts must be at least 2, got %d x %d x %d", nx, ny, nz)
	}
	if step.X <= 0 || step.Y <= 0 || step.Z <= 0 {
		return nil, fmt.Errorf("field: step sizes must be strictly positive, got %v", step)
	}
	return &Field{
		size:   [3]int{nx, ny, nz},
		Values: make([]float64, nx*ny*nz),
		Step:   step,
		Origin: origin,
	}, nil
}

// Size returns the per-axis sample counts.
func (f *Field) Size() (nx, ny, nz int) {
	return f.size[0], f.size[1], f.size[2]
}

// Len returns the total number of samples.
func (f *Field) Len() int { return len(f.Values) }

// Index returns the flat index of sample (i, j, k).
func (f *Field) Index(i, j, k int) int {
	return (i*f.size[1]+j)*f.size[2] + k
}

// At returns the value at sample (i, j, k).
func (f *Field) At(i, j, k int) float64 { return f.Values[f.Index(i, j, k)] }

// Set sets the value at sample (i, j, k).
func (f *Field) Set(i, j, k int, v float64) { f.Values[f.Index(i, j, k)] = v }

// Point returns the model-space position of sample (i, j, k).
func (f *Field) Point(i, j, k int) r3.Vec {
	return r3.Vec{
		X: f.Origin.X + float64(i)*f.Step.X,
		Y: f.Origin.Y + float64(j)*f.Step.Y,
		Z: f.Origin.Z + float64(k)*f.Step.Z,
	}
}

// Bounds returns the model-space box spanned by the sample lattice.
func (f *Field) Bounds() r3.Box {
	return r3.Box{
		Min: f.Origin,
		Max: r3.Vec{
			X: f.Origin.X + float64(f.size[0]-1)*f.Step.X,
			Y: f.Origin.Y + float64(f.size[1]-1)*f.Step.Y,
			Z: f.Origin.Z + float64(f.size[2]-1)*f.Step.Z,
		},
	}
}

// Clone returns a deep copy of the field.
func (f *Field) Clone() *Field {
	c := &Field{size: f.size, Step: f.Step, Origin: f.Origin}
	c.Values = make([]float64, len(f.Values))
	copy(c.Values, f.Values)
	return c
}

// SameShape reports whether g has the same sample counts as f.
func (f *Field) SameShape(g *Field) bool { return f.size == g.size }

// MinMax returns the smallest and largest sample values.
func (f *Field) MinMax() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range f.Values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// CrossesLevel reports whether the field takes values on both sides of
// the given level, i.e. whether an isosurface at that level exists in
// the sampled data.
func (f *Field) CrossesLevel(level float64) bool {
	lo, hi := f.MinMax()
	return lo <= level && hi >= level
}

// Interp returns the trilinear interpolation of the field at model
// point p, clamped to the sample lattice.
func (f *Field) Interp(p r3.Vec) float64 {
	fx, i := f.cell(p.X, f.Origin.X, f.Step.X, f.size[0])
	fy, j := f.cell(p.Y, f.Origin.Y, f.Step.Y, f.size[1])
	fz, k := f.cell(p.Z, f.Origin.Z, f.Step.Z, f.size[2])

	c000 := f.At(i, j, k)
	c100 := f.At(i+1, j, k)
	c010 := f.At(i, j+1, k)
	c110 := f.At(i+1, j+1, k)
	c001 := f.At(i, j, k+1)
	c101 := f.At(i+1, j, k+1)
	c011 := f.At(i, j+1, k+1)
	c111 := f.At(i+1, j+1, k+1)

	c00 := c000 + (c100-c000)*fx
	c10 := c010 + (c110-c010)*fx
	c01 := c001 + (c101-c001)*fx
	c11 := c011 + (c111-c011)*fx
	c0 := c00 + (c10-c00)*fy
	c1 := c01 + (c11-c01)*fy
	return c0 + (c1-c0)*fz
}

// cell returns the fractional offset and lower sample index along one
// axis, clamped so that index+1 is always valid.
func (f *Field) cell(x, origin, step float64, n int) (frac float64, idx int) {
	t := (x - origin) / step
	if t <= 0 {
		return 0, 0
	}
	if t >= float64(n-1) {
		return 1, n - 2
	}
	idx = int(t)
	if idx > n-2 {
		idx = n - 2
	}
	return t - float64(idx), idx
}

// Gradient returns the numerical gradient of the field along each axis,
// computed with central differences in the interior and one-sided
// differences at the boundaries, divided by the sample spacing.
func (f *Field) Gradient() [3]*Field {
	nx, ny, nz := f.Size()
	var out [3]*Field
	for a := range out {
		g := &Field{size: f.size, Step: f.Step, Origin: f.Origin}
		g.Values = make([]float64, len(f.Values))
		out[a] = g
	}
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				out[0].Set(i, j, k, f.diff(i, j, k, 0))
				out[1].Set(i, j, k, f.diff(i, j, k, 1))
				out[2].Set(i, j, k, f.diff(i, j, k, 2))
			}
		}
	}
	return out
}

func (f *Field) diff(i, j, k, axis int) float64 {
	idx := [3]int{i, j, k}
	step := [3]float64{f.Step.X, f.Step.Y, f.Step.Z}[axis]
	lo, hi := idx, idx
	div := 2 * step
	if idx[axis] == 0 {
		div = step
	} else {
		lo[axis]--
	}
	if idx[axis] == f.size[axis]-1 {
		div = step
	} else {
		hi[axis]++
	}
	return (f.At(hi[0], hi[1], hi[2]) - f.At(lo[0], lo[1], lo[2])) / div
}

// Maximum returns the pointwise maximum of a and b, which must have the
// same shape. Used for half-space clipping of evaluated fields.
func Maximum(a, b *Field) (*Field, error) {
	if !a.SameShape(b) {
		return nil, fmt.Errorf("field: shape mismatch %v vs %v", a.size, b.size)
	}
	out := a.Clone()
	for i, v := range b.Values {
		if v > out.Values[i] {
			out.Values[i] = v
		}
	}
	return out, nil
}

// Minimum returns the pointwise minimum of a and b, which must have the
// same shape.
func Minimum(a, b *Field) (*Field, error) {
	if !a.SameShape(b) {
		return nil, fmt.Errorf("field: shape mismatch %v vs %v", a.size, b.size)
	}
	out := a.Clone()
	for i, v := range b.Values {
		if v < out.Values[i] {
			out.Values[i] = v
		}
	}
	return out, nil
}
