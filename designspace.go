// Copyright (c) 2026, Lattice Works Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frep

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/latticeworks/frep/field"
)

// DesignSpace is the bounded, discretized 3D domain over which scalar
// fields are sampled: per-axis bounds, sample counts, derived step
// sizes, and the three coordinate arrays forming the sampling lattice.
// A DesignSpace is immutable once constructed and is shared by
// reference among all Geometry objects built on it; geometries never
// mutate it.
type DesignSpace struct {
	lower, upper r3.Vec
	res          [3]int
	step         r3.Vec
	coords       *field.Coords
}

// NewDesignSpace constructs a design space spanning [lower, upper] with
// the given number of samples along every axis. Bounds must satisfy
// lower < upper per axis and res must be at least 2, giving strictly
// positive step sizes.
func NewDesignSpace(lower, upper r3.Vec, res int) (*DesignSpace, error) {
	return NewDesignSpaceRes(lower, upper, [3]int{res, res, res})
}

// NewDesignSpaceStep constructs a design space spanning [lower, upper]
// sampled at the given per-axis step size. The upper bound is included;
// sample counts are chosen so the lattice covers the full span.
func NewDesignSpaceStep(lower, upper r3.Vec, step float64) (*DesignSpace, error) {
	if step <= 0 {
		return nil, fmt.Errorf("%w: step size %g must be strictly positive", ErrConfiguration, step)
	}
	var res [3]int
	span := [3]float64{upper.X - lower.X, upper.Y - lower.Y, upper.Z - lower.Z}
	for a, s := range span {
		if s <= 0 {
			return nil, fmt.Errorf("%w: bounds %v .. %v not increasing on axis %d", ErrConfiguration, lower, upper, a)
		}
		res[a] = int(math.Round(s/step)) + 1
	}
	return NewDesignSpaceRes(lower, upper, res)
}

// NewDesignSpaceRes constructs a design space with per-axis sample
// counts.
func NewDesignSpaceRes(lower, upper r3.Vec, res [3]int) (*DesignSpace, error) {
	span := [3]float64{upper.X - lower.X, upper.Y - lower.Y, upper.Z - lower.Z}
	var step [3]float64
	for a, s := range span {
		if s <= 0 {
			return nil, fmt.Errorf("%w: bounds %v .. %v not increasing on axis %d", ErrConfiguration, lower, upper, a)
		}
		if res[a] < 2 {
			return nil, fmt.Errorf("%w: resolution %d on axis %d, need at least 2", ErrConfiguration, res[a], a)
		}
		step[a] = s / float64(res[a]-1)
	}
	stepv := r3.Vec{X: step[0], Y: step[1], Z: step[2]}
	xs := linspace(lower.X, upper.X, res[0])
	ys := linspace(lower.Y, upper.Y, res[1])
	zs := linspace(lower.Z, upper.Z, res[2])
	coords, err := field.Meshgrid(xs, ys, zs, stepv)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return &DesignSpace{lower: lower, upper: upper, res: res, step: stepv, coords: coords}, nil
}

func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	d := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*d
	}
	out[n-1] = hi
	return out
}

// Bounds returns the lower and upper corner of the domain.
func (ds *DesignSpace) Bounds() (lower, upper r3.Vec) { return ds.lower, ds.upper }

// Step returns the per-axis sample spacing.
func (ds *DesignSpace) Step() r3.Vec { return ds.step }

// Resolution returns the per-axis sample counts.
func (ds *DesignSpace) Resolution() [3]int { return ds.res }

// Coords returns the shared coordinate arrays of the sampling lattice.
// They are read-only; geometries needing a coordinate-system conversion
// must work on a Clone.
func (ds *DesignSpace) Coords() *field.Coords { return ds.coords }

// NewField returns a zero field with the shape, spacing, and origin of
// the sampling lattice.
func (ds *DesignSpace) NewField() *field.Field {
	f, err := field.New(ds.res[0], ds.res[1], ds.res[2], ds.step, ds.lower)
	if err != nil {
		// Unreachable: the constructor validated the same parameters.
		panic(err)
	}
	return f
}
