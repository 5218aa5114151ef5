// Copyright (c) 2026, Lattice Works Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trimesh provides indexed triangle meshes: welding from
// triangle soup, vertex-clustering simplification, midpoint
// subdivision, connected-patch orientation, and OBJ/STL codecs.
package trimesh

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is an indexed triangle mesh. Verts and Faces are always both
// present or both empty. Normals and Values are optional per-vertex
// attributes; when present they have the same length as Verts.
type Mesh struct {
	Verts   []r3.Vec
	Faces   [][3]int
	Normals []r3.Vec
	Values  []float64
}

// NumVerts returns the number of vertices.
func (m *Mesh) NumVerts() int { return len(m.Verts) }

// NumFaces returns the number of faces.
func (m *Mesh) NumFaces() int { return len(m.Faces) }

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Verts: append([]r3.Vec(nil), m.Verts...),
		Faces: append([][3]int(nil), m.Faces...),
	}
	if m.Normals != nil {
		c.Normals = append([]r3.Vec(nil), m.Normals...)
	}
	if m.Values != nil {
		c.Values = append([]float64(nil), m.Values...)
	}
	return c
}

// Validate checks the structural invariants: every face index within
// [0, NumVerts), and per-vertex attribute lengths matching Verts.
func (m *Mesh) Validate() error {
	n := len(m.Verts)
	for fi, f := range m.Faces {
		for _, v := range f {
			if v < 0 || v >= n {
				return fmt.Errorf("trimesh: face %d references vertex %d of %d", fi, v, n)
			}
		}
	}
	if m.Normals != nil && len(m.Normals) != n {
		return fmt.Errorf("trimesh: %d normals for %d vertices", len(m.Normals), n)
	}
	if m.Values != nil && len(m.Values) != n {
		return fmt.Errorf("trimesh: %d values for %d vertices", len(m.Values), n)
	}
	return nil
}

// FaceNormal returns the (unnormalized) outward normal of face i under
// counter-clockwise winding.
func (m *Mesh) FaceNormal(i int) r3.Vec {
	f := m.Faces[i]
	a, b, c := m.Verts[f[0]], m.Verts[f[1]], m.Verts[f[2]]
	return r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
}

// ComputeNormals recomputes per-vertex normals as the normalized sum of
// adjacent face normals (area weighted by the cross-product magnitude).
func (m *Mesh) ComputeNormals() {
	m.Normals = make([]r3.Vec, len(m.Verts))
	for i := range m.Faces {
		n := m.FaceNormal(i)
		for _, v := range m.Faces[i] {
			m.Normals[v] = r3.Add(m.Normals[v], n)
		}
	}
	for i, n := range m.Normals {
		if l := r3.Norm(n); l > 0 {
			m.Normals[i] = r3.Scale(1/l, n)
		}
	}
}

// BBox returns the axis-aligned bounding box of the vertices.
func (m *Mesh) BBox() r3.Box {
	if len(m.Verts) == 0 {
		return r3.Box{}
	}
	b := r3.Box{Min: m.Verts[0], Max: m.Verts[0]}
	for _, v := range m.Verts[1:] {
		b.Min.X = math.Min(b.Min.X, v.X)
		b.Min.Y = math.Min(b.Min.Y, v.Y)
		b.Min.Z = math.Min(b.Min.Z, v.Z)
		b.Max.X = math.Max(b.Max.X, v.X)
		b.Max.Y = math.Max(b.Max.Y, v.Y)
		b.Max.Z = math.Max(b.Max.Z, v.Z)
	}
	return b
}

// SignedVolume returns the signed volume enclosed by the mesh using the
// divergence theorem. Positive for a closed mesh with outward winding.
func (m *Mesh) SignedVolume() float64 {
	var vol float64
	for _, f := range m.Faces {
		a, b, c := m.Verts[f[0]], m.Verts[f[1]], m.Verts[f[2]]
		vol += r3.Dot(a, r3.Cross(b, c))
	}
	return vol / 6
}

// Triangle is one triangle of an unindexed triangle soup.
type Triangle [3]r3.Vec

// weldScale quantizes vertex positions for welding, relative to the
// largest coordinate magnitude in the soup.
const weldEps = 1e-9

// FromTriangles welds a triangle soup into an indexed mesh, merging
// vertices that coincide within a relative tolerance. Degenerate
// triangles whose vertices weld together are dropped.
func FromTriangles(tris []Triangle) *Mesh {
	scale := 0.0
	for _, t := range tris {
		for _, v := range t {
			scale = math.Max(scale, math.Max(math.Abs(v.X), math.Max(math.Abs(v.Y), math.Abs(v.Z))))
		}
	}
	if scale == 0 {
		scale = 1
	}
	q := weldEps * scale

	type key [3]int64
	quant := func(v r3.Vec) key {
		return key{
			int64(math.Round(v.X / q)),
			int64(math.Round(v.Y / q)),
			int64(math.Round(v.Z / q)),
		}
	}
	m := &Mesh{}
	index := make(map[key]int, len(tris))
	for _, t := range tris {
		var f [3]int
		for i, v := range t {
			k := quant(v)
			vi, ok := index[k]
			if !ok {
				vi = len(m.Verts)
				index[k] = vi
				m.Verts = append(m.Verts, v)
			}
			f[i] = vi
		}
		if f[0] == f[1] || f[1] == f[2] || f[0] == f[2] {
			continue
		}
		m.Faces = append(m.Faces, f)
	}
	return m
}
