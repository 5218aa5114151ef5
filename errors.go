// Copyright (c) 2026, Lattice Works Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frep

import (
	"errors"
	"fmt"

	"github.com/latticeworks/frep/field"
	"github.com/latticeworks/frep/trimesh"
)

// ErrConfiguration indicates a missing or invalid design space or shape
// function. Configuration errors are raised immediately and never
// retried.
var ErrConfiguration = errors.New("frep: invalid configuration")

// InvalidArgumentError indicates an out-of-range argument to a pipeline
// operation, such as a decimation factor outside (0, 1).
type InvalidArgumentError struct {
	Op    string
	Arg   string
	Value any
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("frep: %s: invalid %s %v", e.Op, e.Arg, e.Value)
}

// NoIsosurfaceError indicates that isosurface extraction found no
// surface crossing the requested level. The mesh cache is left unset.
type NoIsosurfaceError struct {
	Level float64
	Err   error
}

func (e *NoIsosurfaceError) Error() string {
	return fmt.Sprintf("frep: no isosurface found at level %g: %v", e.Level, e.Err)
}

func (e *NoIsosurfaceError) Unwrap() error { return e.Err }

// NoMeshError indicates a mesh operation was requested before any
// surface was extracted. Call [Geometry.FindSurface] first.
type NoMeshError struct {
	Op string
}

func (e *NoMeshError) Error() string {
	return fmt.Sprintf("frep: %s: no mesh, call FindSurface first", e.Op)
}

// SolverError wraps a failure from an external collaborator (distance
// solver, simplifier, tetrahedralizer), preserving the offending field
// or mesh for diagnosis instead of swallowing it.
type SolverError struct {
	Op    string
	Field *field.Field
	Mesh  *trimesh.Mesh
	Err   error
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("frep: %s solver: %v", e.Op, e.Err)
}

func (e *SolverError) Unwrap() error { return e.Err }

// WriteVerificationError indicates an output file could not be reopened
// after writing.
type WriteVerificationError struct {
	Filename string
	Err      error
}

func (e *WriteVerificationError) Error() string {
	return fmt.Sprintf("frep: cannot verify written file %q: %v", e.Filename, e.Err)
}

func (e *WriteVerificationError) Unwrap() error { return e.Err }
