// Copyright (c) 2026, Lattice Works Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solver provides the default implementations of the external
// collaborators used by the geometry engine: marching-cubes isosurface
// extraction (via the sdfx render package over a trilinear field
// interpolant), a fast-marching signed-distance solver, mesh
// simplification / subdivision / orientation, and a body-centered-cubic
// tetrahedralizer with a Gmsh .msh writer.
package solver

import (
	"github.com/latticeworks/frep/field"
	"github.com/latticeworks/frep/trimesh"
)

// TetOptions configures tetrahedralization.
type TetOptions struct {
	// MaxIterations caps the resolution back-off rounds used when the
	// requested edge length would produce an excessive cell count.
	MaxIterations int `toml:"max_iterations"`

	// EdgeLengthRatio is the target tetrahedron edge length as a
	// fraction of the surface bounding-box diagonal.
	EdgeLengthRatio float64 `toml:"edge_length_ratio"`

	// Epsilon is the surface containment tolerance as a fraction of the
	// bounding-box diagonal.
	Epsilon float64 `toml:"epsilon"`
}

// DefaultTetOptions returns the standard tetrahedralization tolerances.
func DefaultTetOptions() TetOptions {
	return TetOptions{
		MaxIterations:   50,
		EdgeLengthRatio: 1.0 / 100,
		Epsilon:         1.0 / 1500,
	}
}

// Kernel is the default collaborator set. The zero value is usable.
type Kernel struct {
	// MeshCells overrides the marching-cubes resolution along the
	// longest axis. Zero uses the sample resolution of the input field.
	MeshCells int
}

// Default returns a Kernel with default settings.
func Default() *Kernel { return &Kernel{} }

// Simplify reduces the mesh in place to at most target faces, returning
// whether the target was reached.
func (k *Kernel) Simplify(m *trimesh.Mesh, target int) (bool, error) {
	return trimesh.Simplify(m, target)
}

// Subdivide refines the mesh in place by divs midpoint rounds.
func (k *Kernel) Subdivide(m *trimesh.Mesh, divs int) error {
	return trimesh.Subdivide(m, divs)
}

// Orient labels connected patches and re-orients all faces outward.
func (k *Kernel) Orient(m *trimesh.Mesh) error {
	labels := trimesh.Patches(m.Faces)
	trimesh.OrientOutward(m, labels)
	return nil
}

// Distance solves for the signed distance field of f's zero level set.
func (k *Kernel) Distance(f *field.Field) (*field.Field, error) {
	return FastMarching(f)
}

// Tetrahedralize fills the closed surface mesh with tetrahedra.
func (k *Kernel) Tetrahedralize(m *trimesh.Mesh, opts TetOptions) (*TetMesh, error) {
	return Tetrahedralize(m, opts)
}
