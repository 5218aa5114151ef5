// Copyright (c) 2026, Lattice Works Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frep

import (
	"fmt"
	"log/slog"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/latticeworks/frep/field"
	"github.com/latticeworks/frep/solver"
	"github.com/latticeworks/frep/trimesh"
)

// State is the pipeline stage of a [Geometry]. SurfaceReady and
// DistanceReady are independent derivatives of GridReady: State records
// the most recent transition, while the Has* predicates are
// authoritative about which caches are populated.
type State int32

const (
	// Unevaluated means no cached artifacts exist.
	Unevaluated State = iota

	// GridReady means the scalar field cache is populated.
	GridReady

	// SurfaceReady means a mesh has been extracted from the grid.
	SurfaceReady

	// DistanceReady means the signed distance field has been solved.
	DistanceReady
)

func (s State) String() string {
	switch s {
	case Unevaluated:
		return "unevaluated"
	case GridReady:
		return "grid-ready"
	case SurfaceReady:
		return "surface-ready"
	case DistanceReady:
		return "distance-ready"
	}
	return "invalid"
}

// Diagnostic is a non-fatal warning raised by the pipeline, such as a
// shape extending beyond the design space or a decimation target not
// reached. Diagnostics accumulate on the Geometry and are also logged
// at Warn level; the pipeline continues.
type Diagnostic struct {
	Op      string
	Axis    string
	Message string
}

func (d Diagnostic) String() string {
	if d.Axis != "" {
		return fmt.Sprintf("%s [%s axis]: %s", d.Op, d.Axis, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Op, d.Message)
}

// Limits is a nullable per-axis bounding interval.
type Limits struct {
	Lo, Hi float64
}

// Geometry binds an [Evaluable] shape function to a [DesignSpace] and
// orchestrates the lazy pipeline: grid evaluation, isosurface
// extraction, distance solving, and mesh post-processing. Any mutation
// that changes the evaluable function (translation, coordinate-system
// conversion) invalidates all cached artifacts.
//
// Geometry itself implements [Evaluable], so geometries compose.
type Geometry struct {
	name      string
	space     *DesignSpace
	fn        Evaluable
	pos       r3.Vec
	coordSys  CoordSystem
	transform *Transform
	kernel    Kernel
	opts      Options

	// coords is a private copy of the coordinate arrays, created on the
	// first coordinate-system conversion. The design space's shared
	// arrays are never mutated.
	coords *field.Coords

	state  State
	grid   *field.Field
	grad   *[3]*field.Field
	dist   *field.Field
	mesh   *trimesh.Mesh
	limits [3]*Limits
	diags  []Diagnostic

	// dependents are composites built on this geometry. Invalidation
	// cascades to them, since their evaluable functions sample this one.
	dependents []*Geometry
}

// New returns a Geometry evaluating fn over the given design space.
// Both arguments are required.
func New(space *DesignSpace, fn Evaluable) (*Geometry, error) {
	if space == nil {
		return nil, fmt.Errorf("%w: no design space specified", ErrConfiguration)
	}
	if fn == nil {
		return nil, fmt.Errorf("%w: no shape function specified", ErrConfiguration)
	}
	g := &Geometry{
		name:   fmt.Sprintf("%T", fn),
		space:  space,
		fn:     fn,
		kernel: solver.Default(),
		opts:   DefaultOptions(),
	}
	if op, ok := fn.(*Geometry); ok {
		op.addDependent(g)
	}
	g.updateLimits()
	return g, nil
}

// addDependent registers a composite whose caches must be dropped when
// this geometry changes.
func (g *Geometry) addDependent(d *Geometry) {
	g.dependents = append(g.dependents, d)
}

// SetName sets the geometry name, used for default output filenames.
func (g *Geometry) SetName(name string) *Geometry { g.name = name; return g }

// SetKernel replaces the external collaborator set.
func (g *Geometry) SetKernel(k Kernel) *Geometry { g.kernel = k; return g }

// SetOptions replaces the pipeline options.
func (g *Geometry) SetOptions(opts Options) *Geometry { g.opts = opts; return g }

// SetTransform sets the rigid transform applied to input coordinates
// and invalidates cached artifacts.
func (g *Geometry) SetTransform(t *Transform) *Geometry {
	g.transform = t
	g.Invalidate()
	return g
}

// Name returns the geometry name.
func (g *Geometry) Name() string { return g.name }

// DesignSpace returns the shared design space.
func (g *Geometry) DesignSpace() *DesignSpace { return g.space }

// State returns the current pipeline stage.
func (g *Geometry) State() State { return g.state }

// Position returns the current position offset.
func (g *Geometry) Position() r3.Vec { return g.pos }

// CoordSys returns the active coordinate system.
func (g *Geometry) CoordSys() CoordSystem { return g.coordSys }

// Grid returns the cached evaluated field, or nil.
func (g *Geometry) Grid() *field.Field { return g.grid }

// Distance returns the cached signed distance field, or nil.
func (g *Geometry) Distance() *field.Field { return g.dist }

// Mesh returns the cached extracted mesh, or nil.
func (g *Geometry) Mesh() *trimesh.Mesh { return g.mesh }

// HasGrid reports whether the scalar field cache is populated.
func (g *Geometry) HasGrid() bool { return g.grid != nil }

// HasSurface reports whether a mesh has been extracted.
func (g *Geometry) HasSurface() bool { return g.mesh != nil }

// HasDistance reports whether the distance field cache is populated.
func (g *Geometry) HasDistance() bool { return g.dist != nil }

// Warnings returns the accumulated diagnostics.
func (g *Geometry) Warnings() []Diagnostic {
	return append([]Diagnostic(nil), g.diags...)
}

func (g *Geometry) warn(d Diagnostic) {
	g.diags = append(g.diags, d)
	slog.Warn("frep: "+d.Message, "geometry", g.name, "op", d.Op, "axis", d.Axis)
}

// EvaluatePoint evaluates the shape function at the given coordinates,
// applying the coordinate-system interpretation, the rigid transform,
// and the position offset. This makes Geometry itself an [Evaluable],
// so composites sample their operands at exactly their own grid points.
func (g *Geometry) EvaluatePoint(x, y, z float64) float64 {
	switch g.coordSys {
	case Cylindrical:
		// Inputs are (r, theta, z).
		x, y = x*math.Cos(y), x*math.Sin(y)
	case Spherical:
		// Inputs are (r, theta, phi).
		r, th, ph := x, y, z
		st := math.Sin(th)
		x = r * st * math.Cos(ph)
		y = r * st * math.Sin(ph)
		z = r * math.Cos(th)
	}
	if g.transform != nil {
		p := g.transform.Apply(r3.Vec{X: x, Y: y, Z: z})
		x, y, z = p.X, p.Y, p.Z
	}
	return g.fn.EvaluatePoint(x-g.pos.X, y-g.pos.Y, z-g.pos.Z)
}

// EvaluateGrid samples the shape function over every point of the
// coordinate arrays, caching the scalar field. It is idempotent: a
// second call without an intervening mutation is a no-op. Use
// [Geometry.ReevaluateGrid] to force.
func (g *Geometry) EvaluateGrid() error {
	if g.grid != nil {
		return nil
	}
	return g.ReevaluateGrid()
}

// ReevaluateGrid samples the shape function unconditionally, replacing
// the cached field. Evaluation is data parallel over the outer axis;
// the result is identical for any partitioning since each sample
// depends only on its coordinates.
func (g *Geometry) ReevaluateGrid() error {
	coords := g.activeCoords()
	f := g.space.NewField()
	nx, ny, nz := f.Size()

	var eg errgroup.Group
	workers := g.opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	eg.SetLimit(workers)
	for i := 0; i < nx; i++ {
		eg.Go(func() error {
			for j := 0; j < ny; j++ {
				for k := 0; k < nz; k++ {
					f.Set(i, j, k, g.EvaluatePoint(
						coords.X.At(i, j, k),
						coords.Y.At(i, j, k),
						coords.Z.At(i, j, k),
					))
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	g.grid = f
	g.grad = nil
	if g.state < GridReady {
		g.state = GridReady
	}
	slog.Debug("frep: grid evaluated", "geometry", g.name, "samples", f.Len())
	return nil
}

// Gradients returns the numerical gradient of the evaluated field along
// each axis, evaluating the grid first if needed. The gradient is a
// post-pass over the completed field and is cached until invalidation.
func (g *Geometry) Gradients() ([3]*field.Field, error) {
	if g.grad != nil {
		return *g.grad, nil
	}
	if err := g.EvaluateGrid(); err != nil {
		return [3]*field.Field{}, err
	}
	grad := g.grid.Gradient()
	g.grad = &grad
	return grad, nil
}

// FindSurface extracts the triangulated isosurface of the evaluated
// field at the given level, evaluating the grid first if needed. On
// success the mesh cache holds vertices, faces, per-vertex normals, and
// per-vertex field values. On failure the mesh cache is left unset and
// a [*NoIsosurfaceError] is returned.
func (g *Geometry) FindSurface(level float64) error {
	if err := g.EvaluateGrid(); err != nil {
		return err
	}
	slog.Debug("frep: extracting isosurface", "geometry", g.name, "level", level)
	m, err := g.kernel.Extract(g.grid, level)
	if err != nil {
		return &NoIsosurfaceError{Level: level, Err: err}
	}
	g.mesh = m
	g.state = SurfaceReady
	return nil
}

// EvaluateDistance converts the evaluated field into a true signed
// distance field, evaluating the grid first if needed. Solver failures
// are returned as a [*SolverError] carrying the offending field.
func (g *Geometry) EvaluateDistance() error {
	if err := g.EvaluateGrid(); err != nil {
		return err
	}
	slog.Debug("frep: evaluating distance field", "geometry", g.name)
	d, err := g.kernel.Distance(g.grid)
	if err != nil {
		return &SolverError{Op: "distance", Field: g.grid, Err: err}
	}
	g.dist = d
	g.state = DistanceReady
	return nil
}

// Translate shifts the geometry by (dx, dy, dz), recomputes its
// bounding limits, and invalidates all cached artifacts, since the
// evaluable function has changed.
func (g *Geometry) Translate(dx, dy, dz float64) {
	g.pos = r3.Add(g.pos, r3.Vec{X: dx, Y: dy, Z: dz})
	g.updateLimits()
	g.Invalidate()
}

// Invalidate drops all cached artifacts, returning to Unevaluated.
// Composites built on this geometry are invalidated too: their
// evaluable functions sample this one, so their caches are equally
// stale.
func (g *Geometry) Invalidate() {
	g.grid = nil
	g.grad = nil
	g.dist = nil
	g.mesh = nil
	g.state = Unevaluated
	for _, d := range g.dependents {
		d.Invalidate()
	}
}

// ConvertToCylindrical replaces this geometry's private copy of the
// coordinate arrays with their cylindrical form (r, theta, z) and
// re-evaluates the grid under the new coordinates. The design space's
// shared arrays are untouched, so sibling geometries are unaffected.
func (g *Geometry) ConvertToCylindrical() error {
	g.ensurePrivateCoords()
	g.coords.ToCylindrical()
	g.coordSys = Cylindrical
	g.Invalidate()
	return g.ReevaluateGrid()
}

// ConvertToSpherical replaces this geometry's private copy of the
// coordinate arrays with their spherical form (r, theta, phi) and
// re-evaluates the grid under the new coordinates.
func (g *Geometry) ConvertToSpherical() error {
	g.ensurePrivateCoords()
	g.coords.ToSpherical()
	g.coordSys = Spherical
	g.Invalidate()
	return g.ReevaluateGrid()
}

func (g *Geometry) ensurePrivateCoords() {
	if g.coords == nil {
		g.coords = g.space.Coords().Clone()
	}
}

func (g *Geometry) activeCoords() *field.Coords {
	if g.coords != nil {
		return g.coords
	}
	return g.space.Coords()
}

// SetLimits sets the bounding interval on the given axis (0 = x,
// 1 = y, 2 = z).
func (g *Geometry) SetLimits(axis int, lo, hi float64) *Geometry {
	g.limits[axis] = &Limits{Lo: lo, Hi: hi}
	return g
}

// updateLimits refreshes the bounding limits from the shape function
// when it knows its own extent.
func (g *Geometry) updateLimits() {
	lim, ok := g.fn.(Limiter)
	if !ok {
		return
	}
	lo, hi := lim.Limits(g.pos)
	g.limits[0] = &Limits{Lo: lo.X, Hi: hi.X}
	g.limits[1] = &Limits{Lo: lo.Y, Hi: hi.Y}
	g.limits[2] = &Limits{Lo: lo.Z, Hi: hi.Z}
}

// CompareLimits checks the recorded bounding limits against the design
// space bounds. A violation means the shape may be clipped by the grid;
// it is reported as a non-fatal diagnostic and the pipeline continues.
func (g *Geometry) CompareLimits() []Diagnostic {
	lower, upper := g.space.Bounds()
	lo := [3]float64{lower.X, lower.Y, lower.Z}
	hi := [3]float64{upper.X, upper.Y, upper.Z}
	axes := [3]string{"x", "y", "z"}
	var out []Diagnostic
	for a, lim := range g.limits {
		if lim == nil {
			continue
		}
		if lim.Lo < lo[a] || lim.Hi > hi[a] {
			d := Diagnostic{
				Op:      "compare-limits",
				Axis:    axes[a],
				Message: "design space does not fully enclose shape",
			}
			g.warn(d)
			out = append(out, d)
		}
	}
	return out
}
