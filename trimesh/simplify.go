// Copyright (c) 2026, Lattice Works Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trimesh

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Simplify reduces the mesh in place to at most target faces using
// vertex clustering: vertices falling in the same spatial cell are
// collapsed to their centroid and degenerate faces dropped. The cell
// size grows geometrically until the face count reaches the target or
// the cell spans the whole bounding box. Returns whether the target was
// reached; a false return still leaves a usable, maximally reduced mesh.
func Simplify(m *Mesh, target int) (bool, error) {
	if target < 1 {
		return false, fmt.Errorf("trimesh: simplify target must be positive, got %d", target)
	}
	if len(m.Faces) <= target {
		return true, nil
	}
	bb := m.BBox()
	size := r3.Sub(bb.Max, bb.Min)
	diag := r3.Norm(size)
	if diag == 0 {
		return false, fmt.Errorf("trimesh: degenerate mesh bounds")
	}
	// Initial cell size guesses the edge length of a uniform remesh at
	// the target face count.
	h := diag * math.Sqrt(2/float64(target))
	for h < diag {
		c := cluster(m, bb, h)
		if len(c.Faces) <= target {
			*m = *c
			m.ComputeNormals()
			return true, nil
		}
		h *= 1.3
	}
	c := cluster(m, bb, h)
	*m = *c
	m.ComputeNormals()
	return len(m.Faces) <= target, nil
}

// cluster collapses vertices into cells of size h and rebuilds faces,
// dropping any that became degenerate.
func cluster(m *Mesh, bb r3.Box, h float64) *Mesh {
	type key [3]int32
	cellOf := func(v r3.Vec) key {
		return key{
			int32((v.X - bb.Min.X) / h),
			int32((v.Y - bb.Min.Y) / h),
			int32((v.Z - bb.Min.Z) / h),
		}
	}
	index := make(map[key]int)
	remap := make([]int, len(m.Verts))
	var verts []r3.Vec
	var values []float64
	var counts []int
	for vi, v := range m.Verts {
		k := cellOf(v)
		ci, ok := index[k]
		if !ok {
			ci = len(verts)
			index[k] = ci
			verts = append(verts, r3.Vec{})
			counts = append(counts, 0)
			if m.Values != nil {
				values = append(values, 0)
			}
		}
		verts[ci] = r3.Add(verts[ci], v)
		if m.Values != nil {
			values[ci] += m.Values[vi]
		}
		counts[ci]++
		remap[vi] = ci
	}
	for i := range verts {
		verts[i] = r3.Scale(1/float64(counts[i]), verts[i])
		if values != nil {
			values[i] /= float64(counts[i])
		}
	}
	out := &Mesh{Verts: verts, Values: values}
	seen := make(map[[3]int]bool, len(m.Faces))
	for _, f := range m.Faces {
		g := [3]int{remap[f[0]], remap[f[1]], remap[f[2]]}
		if g[0] == g[1] || g[1] == g[2] || g[0] == g[2] {
			continue
		}
		if seen[g] {
			continue
		}
		seen[g] = true
		out.Faces = append(out.Faces, g)
	}
	return out
}
