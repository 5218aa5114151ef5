// Copyright (c) 2026, Lattice Works Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Coords holds the three coordinate arrays forming a sampling lattice.
// All three fields always have identical shape. A Coords owned by a
// design space is shared read-only; geometry objects that convert
// coordinate systems work on their own Clone.
type Coords struct {
	X, Y, Z *Field
}

// Meshgrid builds the coordinate arrays for the cartesian product of
// the given per-axis sample positions, with x as the outermost
// dimension. step records the per-axis sample spacing.
func Meshgrid(xs, ys, zs []float64, step r3.Vec) (*Coords, error) {
	origin := r3.Vec{X: xs[0], Y: ys[0], Z: zs[0]}
	cx, err := New(len(xs), len(ys), len(zs), step, origin)
	if err != nil {
		return nil, err
	}
	cy, _ := New(len(xs), len(ys), len(zs), step, origin)
	cz, _ := New(len(xs), len(ys), len(zs), step, origin)
	for i, x := range xs {
		for j, y := range ys {
			for k, z := range zs {
				cx.Set(i, j, k, x)
				cy.Set(i, j, k, y)
				cz.Set(i, j, k, z)
			}
		}
	}
	return &Coords{X: cx, Y: cy, Z: cz}, nil
}

// Size returns the per-axis sample counts.
func (c *Coords) Size() (nx, ny, nz int) { return c.X.Size() }

// Clone returns a deep copy of the coordinate arrays.
func (c *Coords) Clone() *Coords {
	return &Coords{X: c.X.Clone(), Y: c.Y.Clone(), Z: c.Z.Clone()}
}

// ToCylindrical rewrites the coordinate arrays in place from cartesian
// (x, y, z) to cylindrical (r, theta, z), with r = sqrt(x²+y²) and
// theta = atan2(y, x). Atan2 is defined for every input except the
// origin, where it returns 0.
func (c *Coords) ToCylindrical() {
	for i, x := range c.X.Values {
		y := c.Y.Values[i]
		c.X.Values[i] = math.Hypot(x, y)
		c.Y.Values[i] = math.Atan2(y, x)
	}
}

// ToSpherical rewrites the coordinate arrays in place from cartesian
// (x, y, z) to spherical (r, theta, phi), with r = sqrt(x²+y²+z²),
// theta = atan2(sqrt(x²+y²), z) the polar angle, and phi = atan2(y, x)
// the azimuth.
func (c *Coords) ToSpherical() {
	for i, x := range c.X.Values {
		y := c.Y.Values[i]
		z := c.Z.Values[i]
		rxy := math.Hypot(x, y)
		c.X.Values[i] = math.Sqrt(x*x + y*y + z*z)
		c.Y.Values[i] = math.Atan2(rxy, z)
		c.Z.Values[i] = math.Atan2(y, x)
	}
}
