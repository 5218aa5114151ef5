// Copyright (c) 2026, Lattice Works Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frep

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticeworks/frep/field"
	"github.com/latticeworks/frep/shape"
	"github.com/latticeworks/frep/trimesh"
)

// sphereGeometry returns a geometry with an extracted sphere surface.
func sphereGeometry(t *testing.T) *Geometry {
	t.Helper()
	g, err := New(testSpace(t), shape.Sphere{R: math.Sqrt(0.5)})
	require.NoError(t, err)
	require.NoError(t, g.FindSurface(0))
	return g
}

func TestDecimate(t *testing.T) {
	g := sphereGeometry(t)
	faces := g.Mesh().NumFaces()

	require.NoError(t, g.Decimate(0.5))
	assert.Less(t, g.Mesh().NumFaces(), faces)
	require.NoError(t, g.Mesh().Validate())
	// Decimation re-orients faces outward.
	assert.Positive(t, g.Mesh().SignedVolume())
}

func TestDecimateErrors(t *testing.T) {
	g, err := New(testSpace(t), shape.Sphere{R: 0.5})
	require.NoError(t, err)

	var nme *NoMeshError
	assert.ErrorAs(t, g.Decimate(0.5), &nme)

	require.NoError(t, g.FindSurface(0))
	var iae *InvalidArgumentError
	assert.ErrorAs(t, g.Decimate(0), &iae)
	assert.ErrorAs(t, g.Decimate(1), &iae)
	assert.ErrorAs(t, g.Decimate(-0.5), &iae)
	assert.ErrorAs(t, g.Decimate(1.5), &iae)
}

func TestSubdividePipeline(t *testing.T) {
	g := sphereGeometry(t)
	faces := g.Mesh().NumFaces()

	require.NoError(t, g.Subdivide(1))
	assert.Equal(t, 4*faces, g.Mesh().NumFaces())
	require.NoError(t, g.Mesh().Validate())

	var iae *InvalidArgumentError
	assert.ErrorAs(t, g.Subdivide(0), &iae)

	bare, err := New(testSpace(t), shape.Sphere{R: 0.5})
	require.NoError(t, err)
	var nme *NoMeshError
	assert.ErrorAs(t, bare.Subdivide(1), &nme)
}

func TestSmooth(t *testing.T) {
	g := sphereGeometry(t)

	var iae *InvalidArgumentError
	assert.ErrorAs(t, g.Smooth(0, 0.25), &iae)
	assert.ErrorAs(t, g.Smooth(1, 0), &iae)
	assert.ErrorAs(t, g.Smooth(1, 1), &iae)

	require.NoError(t, g.Smooth(1, 0.25))
	require.NoError(t, g.Mesh().Validate())
	assert.Positive(t, g.Mesh().NumFaces())

	bare, err := New(testSpace(t), shape.Sphere{R: 0.5})
	require.NoError(t, err)
	var nme *NoMeshError
	assert.ErrorAs(t, bare.Smooth(1, 0.25), &nme)
}

func TestDecimateDefault(t *testing.T) {
	g := sphereGeometry(t)
	faces := g.Mesh().NumFaces()

	opts := DefaultOptions()
	opts.DecimateFactor = 0.5
	g.SetOptions(opts)

	require.NoError(t, g.DecimateDefault())
	assert.Less(t, g.Mesh().NumFaces(), faces)

	// An out-of-range configured factor surfaces like an explicit one.
	opts.DecimateFactor = 0
	g.SetOptions(opts)
	var iae *InvalidArgumentError
	assert.ErrorAs(t, g.DecimateDefault(), &iae)
}

func TestSmoothDefault(t *testing.T) {
	g := sphereGeometry(t)
	opts := DefaultOptions()
	opts.SmoothIterations = 1
	opts.SmoothFactor = 0.25
	g.SetOptions(opts)

	require.NoError(t, g.SmoothDefault())
	require.NoError(t, g.Mesh().Validate())
	assert.Positive(t, g.Mesh().NumFaces())
}

func TestSaveMesh(t *testing.T) {
	dir := t.TempDir()
	g := sphereGeometry(t)
	want := g.Mesh().NumFaces()

	// Extension appended from the format.
	path, err := g.SaveMesh(filepath.Join(dir, "part"), "stl")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "part.stl"), path)
	m, err := trimesh.Open(path)
	require.NoError(t, err)
	assert.Equal(t, want, m.NumFaces())

	// Leading-dot format spelling and explicit extension.
	path, err = g.SaveMesh(filepath.Join(dir, "part.obj"), ".obj")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "part.obj"), path)
	m, err = trimesh.Open(path)
	require.NoError(t, err)
	assert.Equal(t, g.Mesh().Verts, m.Verts)

	var iae *InvalidArgumentError
	_, err = g.SaveMesh(filepath.Join(dir, "part"), "ply")
	assert.ErrorAs(t, err, &iae)
}

func TestSaveMeshExtractsOnDemand(t *testing.T) {
	dir := t.TempDir()
	g, err := New(testSpace(t), shape.Sphere{R: math.Sqrt(0.5)})
	require.NoError(t, err)
	require.False(t, g.HasSurface())

	// An empty filename falls back to the geometry name.
	g.SetName(filepath.Join(dir, "sphere"))
	path, err := g.SaveMesh("", "obj")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sphere.obj"), path)
	assert.True(t, g.HasSurface())

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestSaveMeshNoSurface(t *testing.T) {
	g, err := New(testSpace(t), shape.Sphere{R: 0.5})
	require.NoError(t, err)
	opts := DefaultOptions()
	opts.Level = 100
	g.SetOptions(opts)

	var nie *NoIsosurfaceError
	_, err = g.SaveMesh(filepath.Join(t.TempDir(), "part"), "stl")
	assert.ErrorAs(t, err, &nie)
}

func TestSaveTetMesh(t *testing.T) {
	dir := t.TempDir()
	g := sphereGeometry(t)

	// A non-.msh extension is treated as part of the name.
	path, err := g.SaveTetMesh(filepath.Join(dir, "part.stl"), 0.15, 0)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "part.stl.msh"), path)
	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, fi.Size())

	path, err = g.SaveTetMesh(filepath.Join(dir, "part.msh"), 0.15, 0)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "part.msh"), path)
}

type recordRenderer struct {
	surfaces []*trimesh.Mesh
	volumes  []*field.Field
}

func (r *recordRenderer) RenderSurface(m *trimesh.Mesh) error {
	r.surfaces = append(r.surfaces, m)
	return nil
}

func (r *recordRenderer) RenderVolume(f *field.Field) error {
	r.volumes = append(r.volumes, f)
	return nil
}

func TestPreviewModel(t *testing.T) {
	g, err := New(testSpace(t), shape.Sphere{R: math.Sqrt(0.5)})
	require.NoError(t, err)
	r := &recordRenderer{}

	var iae *InvalidArgumentError
	assert.ErrorAs(t, g.PreviewModel(nil, PreviewOptions{Mode: "volume"}), &iae)
	assert.ErrorAs(t, g.PreviewModel(r, PreviewOptions{Mode: "wireframe"}), &iae)

	require.NoError(t, g.PreviewModel(r, PreviewOptions{Mode: "volume"}))
	require.Len(t, r.volumes, 1)
	assert.Same(t, g.Grid(), r.volumes[0])

	require.NoError(t, g.PreviewModel(r, PreviewOptions{Mode: "surface"}))
	require.Len(t, r.surfaces, 1)
	assert.Same(t, g.Mesh(), r.surfaces[0])
}

func TestPreviewModelClipped(t *testing.T) {
	g, err := New(testSpace(t), shape.Sphere{R: math.Sqrt(0.5)})
	require.NoError(t, err)
	require.NoError(t, g.FindSurface(0))
	cached := g.Mesh()
	grid := append([]float64(nil), g.Grid().Values...)

	r := &recordRenderer{}
	opts := PreviewOptions{Mode: "surface", Clip: ClipZ, ClipValue: 0}
	require.NoError(t, g.PreviewModel(r, opts))
	require.Len(t, r.surfaces, 1)

	// The clipped preview is a fresh extraction below the plane; the
	// caches stay untouched.
	assert.NotSame(t, cached, r.surfaces[0])
	assert.Same(t, cached, g.Mesh())
	assert.Equal(t, grid, g.Grid().Values)
	for _, v := range r.surfaces[0].Verts {
		assert.LessOrEqual(t, v.Z, 0.1)
	}

	// Flipping keeps the other half-space.
	opts.FlipClip = true
	require.NoError(t, g.PreviewModel(r, opts))
	require.Len(t, r.surfaces, 2)
	for _, v := range r.surfaces[1].Verts {
		assert.GreaterOrEqual(t, v.Z, -0.1)
	}

	// Clipped volume rendering hands over the clipped field copy.
	opts = PreviewOptions{Mode: "volume", Clip: ClipX, ClipValue: 0.2}
	require.NoError(t, g.PreviewModel(r, opts))
	require.Len(t, r.volumes, 1)
	assert.NotSame(t, g.Grid(), r.volumes[0])
}
