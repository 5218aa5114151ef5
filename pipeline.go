// Copyright (c) 2026, Lattice Works Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frep

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/core/base/errors"

	"github.com/latticeworks/frep/field"
	"github.com/latticeworks/frep/trimesh"
)

// Decimate reduces the cached mesh to approximately factor times its
// face count, with factor in (0, 1) exclusive. After simplification all
// faces are re-oriented outward per connected patch so downstream solid
// operations see consistent winding. If the simplifier could not reach
// the target the result is degraded but usable: a diagnostic is
// recorded and no error returned.
func (g *Geometry) Decimate(factor float64) error {
	if g.mesh == nil {
		return &NoMeshError{Op: "decimate"}
	}
	if factor <= 0 || factor >= 1 {
		return &InvalidArgumentError{Op: "decimate", Arg: "factor", Value: factor}
	}
	target := int(math.Round(float64(len(g.mesh.Faces)) * factor))
	if target < 1 {
		target = 1
	}
	slog.Debug("frep: decimating mesh", "geometry", g.name, "target", target)
	reached, err := g.kernel.Simplify(g.mesh, target)
	if err != nil {
		return &SolverError{Op: "simplify", Mesh: g.mesh, Err: err}
	}
	if err := g.kernel.Orient(g.mesh); err != nil {
		return &SolverError{Op: "orient", Mesh: g.mesh, Err: err}
	}
	if !reached {
		g.warn(Diagnostic{Op: "decimate", Message: "decimation did not reach target face count"})
	}
	return nil
}

// DecimateDefault decimates using the configured
// [Options.DecimateFactor].
func (g *Geometry) DecimateDefault() error {
	return g.Decimate(g.opts.DecimateFactor)
}

// Subdivide refines the cached mesh by the given number of subdivision
// rounds, increasing mesh resolution.
func (g *Geometry) Subdivide(divs int) error {
	if g.mesh == nil {
		return &NoMeshError{Op: "subdivide"}
	}
	if divs < 1 {
		return &InvalidArgumentError{Op: "subdivide", Arg: "divisions", Value: divs}
	}
	if err := g.kernel.Subdivide(g.mesh, divs); err != nil {
		return &SolverError{Op: "subdivide", Mesh: g.mesh, Err: err}
	}
	return nil
}

// Smooth alternates one subdivision round and one decimation by factor
// for the given number of iterations. This resample/simplify cycle is a
// smoothing heuristic, not a guaranteed-convergent filter: subdivision
// quadruples the face count each round while decimation reduces it by a
// constant factor, so the net resolution depends on both parameters.
func (g *Geometry) Smooth(iterations int, factor float64) error {
	if g.mesh == nil {
		return &NoMeshError{Op: "smooth"}
	}
	if iterations < 1 {
		return &InvalidArgumentError{Op: "smooth", Arg: "iterations", Value: iterations}
	}
	if factor <= 0 || factor >= 1 {
		return &InvalidArgumentError{Op: "smooth", Arg: "factor", Value: factor}
	}
	for i := 0; i < iterations; i++ {
		slog.Debug("frep: smoothing iteration", "geometry", g.name, "iteration", i)
		if err := g.Subdivide(1); err != nil {
			return err
		}
		if err := g.Decimate(factor); err != nil {
			return err
		}
	}
	return nil
}

// SmoothDefault smooths using the configured [Options.SmoothIterations]
// and [Options.SmoothFactor].
func (g *Geometry) SmoothDefault() error {
	return g.Smooth(g.opts.SmoothIterations, g.opts.SmoothFactor)
}

// meshFormats maps accepted format arguments to file extensions.
var meshFormats = map[string]string{
	"obj":  ".obj",
	".obj": ".obj",
	"stl":  ".stl",
	".stl": ".stl",
}

// SaveMesh writes the extracted mesh to a file in the given format
// ("obj" or "stl"), extracting the surface on demand if no mesh is
// cached. An empty filename uses the geometry name; a missing extension
// is appended. The written file is verified to be readable; failure to
// reopen it is a [*WriteVerificationError]. Returns the final path.
func (g *Geometry) SaveMesh(filename, format string) (string, error) {
	ext, ok := meshFormats[strings.ToLower(format)]
	if !ok {
		return "", &InvalidArgumentError{Op: "save-mesh", Arg: "format", Value: format}
	}
	if filename == "" {
		filename = g.name
	}
	if !strings.EqualFold(filepath.Ext(filename), ext) {
		filename += ext
	}
	if g.mesh == nil {
		if err := g.FindSurface(g.opts.Level); err != nil {
			return "", err
		}
	}
	slog.Debug("frep: saving mesh", "geometry", g.name, "file", filename)
	if err := trimesh.Save(filename, g.mesh); err != nil {
		return "", err
	}
	f, err := os.Open(filename)
	if err != nil {
		return "", &WriteVerificationError{Filename: filename, Err: err}
	}
	errors.Log(f.Close())
	return filename, nil
}

// SaveTetMesh tetrahedralizes the extracted surface and writes the
// volumetric mesh as a Gmsh .msh file, extracting the surface on demand
// if needed. Any filename extension other than .msh is treated as part
// of a bare name and .msh is appended. edgeLengthRatio and epsilon
// override the configured tolerances when positive.
func (g *Geometry) SaveTetMesh(filename string, edgeLengthRatio, epsilon float64) (string, error) {
	if filename == "" {
		filename = g.name
	}
	if !strings.EqualFold(filepath.Ext(filename), ".msh") {
		filename += ".msh"
	}
	if g.mesh == nil {
		if err := g.FindSurface(g.opts.Level); err != nil {
			return "", err
		}
	}
	opts := g.opts.Tet
	if edgeLengthRatio > 0 {
		opts.EdgeLengthRatio = edgeLengthRatio
	}
	if epsilon > 0 {
		opts.Epsilon = epsilon
	}
	slog.Debug("frep: tetrahedralizing", "geometry", g.name, "file", filename)
	tm, err := g.kernel.Tetrahedralize(g.mesh, opts)
	if err != nil {
		return "", &SolverError{Op: "tetrahedralize", Mesh: g.mesh, Err: err}
	}
	if err := tm.SaveMsh(filename); err != nil {
		return "", err
	}
	f, err := os.Open(filename)
	if err != nil {
		return "", &WriteVerificationError{Filename: filename, Err: err}
	}
	errors.Log(f.Close())
	return filename, nil
}

// ClipAxis selects the axis for preview clipping.
type ClipAxis int32

const (
	ClipNone ClipAxis = iota
	ClipX
	ClipY
	ClipZ
)

// PreviewOptions configures [Geometry.PreviewModel].
type PreviewOptions struct {
	// Mode is "surface" or "volume".
	Mode string

	// Level is the isosurface level for surface mode.
	Level float64

	// Clip cuts the evaluated field against an axis-aligned half-space
	// at ClipValue; FlipClip keeps the other side.
	Clip      ClipAxis
	ClipValue float64
	FlipClip  bool
}

// PreviewModel hands the evaluated grid or extracted mesh to a renderer
// for visualization, evaluating and extracting on demand. Clipping
// applies a pointwise maximum against an axis half-space to the field
// copy handed to the renderer; the cached grid is not modified.
func (g *Geometry) PreviewModel(r Renderer, opts PreviewOptions) error {
	if r == nil {
		return &InvalidArgumentError{Op: "preview", Arg: "renderer", Value: nil}
	}
	if opts.Mode != "surface" && opts.Mode != "volume" {
		return &InvalidArgumentError{Op: "preview", Arg: "mode", Value: opts.Mode}
	}
	g.CompareLimits()
	if err := g.EvaluateGrid(); err != nil {
		return err
	}
	fld := g.grid
	if opts.Clip != ClipNone {
		var err error
		fld, err = g.clipField(opts)
		if err != nil {
			return err
		}
	}
	if opts.Mode == "volume" {
		return r.RenderVolume(fld)
	}
	if opts.Clip != ClipNone {
		// Clipped surface: extract fresh from the clipped field without
		// touching the mesh cache.
		m, err := g.kernel.Extract(fld, opts.Level)
		if err != nil {
			return &NoIsosurfaceError{Level: opts.Level, Err: err}
		}
		return r.RenderSurface(m)
	}
	if g.mesh == nil {
		if err := g.FindSurface(opts.Level); err != nil {
			return err
		}
	}
	return r.RenderSurface(g.mesh)
}

// clipField returns the evaluated field clipped against the configured
// half-space: max(F, axis - value), or max(F, value - axis) when
// flipped.
func (g *Geometry) clipField(opts PreviewOptions) (*field.Field, error) {
	coords := g.activeCoords()
	var axis *field.Field
	switch opts.Clip {
	case ClipX:
		axis = coords.X
	case ClipY:
		axis = coords.Y
	case ClipZ:
		axis = coords.Z
	default:
		return nil, &InvalidArgumentError{Op: "preview", Arg: "clip axis", Value: opts.Clip}
	}
	plane := axis.Clone()
	for i, v := range plane.Values {
		if opts.FlipClip {
			plane.Values[i] = opts.ClipValue - v
		} else {
			plane.Values[i] = v - opts.ClipValue
		}
	}
	fld, err := field.Maximum(g.grid, plane)
	if err != nil {
		return nil, fmt.Errorf("frep: preview clip: %w", err)
	}
	return fld, nil
}
