// Copyright (c) 2026, Lattice Works Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frep

import (
	"github.com/latticeworks/frep/field"
	"github.com/latticeworks/frep/solver"
	"github.com/latticeworks/frep/trimesh"
)

// Kernel is the set of external collaborators the engine delegates to:
// isosurface extraction, distance solving, and the mesh algorithms.
// [solver.Kernel] is the default implementation; alternatives can be
// swapped in for different extraction or simplification backends.
type Kernel interface {
	// Extract triangulates the isosurface of the sampled field at the
	// given level, returning vertices, faces, per-vertex normals, and
	// per-vertex field values. Errors when no isosurface crosses the
	// level.
	Extract(f *field.Field, level float64) (*trimesh.Mesh, error)

	// Distance converts the sampled field into a signed distance field
	// of identical shape. Errors on degenerate input (no zero contour).
	Distance(f *field.Field) (*field.Field, error)

	// Simplify reduces the mesh in place to at most target faces,
	// reporting whether the target was reached. A false report with a
	// nil error is a degraded-but-usable result.
	Simplify(m *trimesh.Mesh, target int) (bool, error)

	// Subdivide refines the mesh in place by divs subdivision rounds.
	Subdivide(m *trimesh.Mesh, divs int) error

	// Orient labels connected patches and re-orients all faces outward
	// so downstream solid operations see consistent winding.
	Orient(m *trimesh.Mesh) error

	// Tetrahedralize fills a closed surface mesh with tetrahedra.
	Tetrahedralize(m *trimesh.Mesh, opts solver.TetOptions) (*solver.TetMesh, error)
}

// Compile-time check that the default solver satisfies Kernel.
var _ Kernel = (*solver.Kernel)(nil)

// Renderer consumes an evaluated grid or extracted mesh for
// visualization. It is optional and not required for correctness.
type Renderer interface {
	RenderSurface(m *trimesh.Mesh) error
	RenderVolume(f *field.Field) error
}
