// Copyright (c) 2026, Lattice Works Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/latticeworks/frep/field"
	"github.com/latticeworks/frep/trimesh"
)

// ErrNoSurface is returned when the requested level does not cross the
// sampled field anywhere, so no isosurface exists.
var ErrNoSurface = errors.New("solver: no isosurface at requested level")

// Compile-time interface check.
var _ sdf.SDF3 = fieldSDF{}

// fieldSDF adapts a sampled field to the sdf.SDF3 interface by
// trilinear interpolation, shifted so the requested level sits at zero.
type fieldSDF struct {
	f     *field.Field
	level float64
}

func (s fieldSDF) Evaluate(p v3.Vec) float64 {
	return s.f.Interp(r3.Vec{X: p.X, Y: p.Y, Z: p.Z}) - s.level
}

func (s fieldSDF) BoundingBox() sdf.Box3 {
	b := s.f.Bounds()
	return sdf.Box3{
		Min: v3.Vec{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		Max: v3.Vec{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}
}

// Extract runs marching cubes over the sampled field at the given level
// and welds the result into an indexed mesh with per-vertex normals and
// per-vertex interpolated field values. Returns ErrNoSurface when the
// field never crosses the level.
func (k *Kernel) Extract(f *field.Field, level float64) (*trimesh.Mesh, error) {
	if !f.CrossesLevel(level) {
		lo, hi := f.MinMax()
		return nil, fmt.Errorf("%w: level %g outside field range [%g, %g]", ErrNoSurface, level, lo, hi)
	}
	cells := k.MeshCells
	if cells == 0 {
		nx, ny, nz := f.Size()
		cells = max(nx, max(ny, nz))
	}
	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(fieldSDF{f: f, level: level}, renderer)
	if len(triangles) == 0 {
		return nil, fmt.Errorf("%w: level %g", ErrNoSurface, level)
	}

	tris := make([]trimesh.Triangle, len(triangles))
	for i, tri := range triangles {
		for j := 0; j < 3; j++ {
			tris[i][j] = r3.Vec{X: tri[j].X, Y: tri[j].Y, Z: tri[j].Z}
		}
	}
	m := trimesh.FromTriangles(tris)
	if len(m.Faces) == 0 {
		return nil, fmt.Errorf("%w: level %g (all triangles degenerate)", ErrNoSurface, level)
	}
	m.ComputeNormals()
	m.Values = make([]float64, len(m.Verts))
	for i, v := range m.Verts {
		m.Values[i] = f.Interp(v)
	}
	return m, nil
}
