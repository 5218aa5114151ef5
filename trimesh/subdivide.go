// Copyright (c) 2026, Lattice Works Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trimesh

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Subdivide refines the mesh in place by the given number of midpoint
// subdivision rounds. Each round splits every face into four, inserting
// one vertex at each edge midpoint (shared between adjacent faces), so
// the face count quadruples per round.
func Subdivide(m *Mesh, divs int) error {
	if divs < 1 {
		return fmt.Errorf("trimesh: subdivision count must be at least 1, got %d", divs)
	}
	for d := 0; d < divs; d++ {
		subdivideOnce(m)
	}
	m.ComputeNormals()
	return nil
}

func subdivideOnce(m *Mesh) {
	type edge [2]int
	mids := make(map[edge]int)
	midpoint := func(a, b int) int {
		e := edge{min(a, b), max(a, b)}
		if vi, ok := mids[e]; ok {
			return vi
		}
		vi := len(m.Verts)
		mids[e] = vi
		m.Verts = append(m.Verts, r3.Scale(0.5, r3.Add(m.Verts[a], m.Verts[b])))
		if m.Values != nil {
			m.Values = append(m.Values, (m.Values[a]+m.Values[b])/2)
		}
		return vi
	}
	faces := make([][3]int, 0, 4*len(m.Faces))
	for _, f := range m.Faces {
		ab := midpoint(f[0], f[1])
		bc := midpoint(f[1], f[2])
		ca := midpoint(f[2], f[0])
		faces = append(faces,
			[3]int{f[0], ab, ca},
			[3]int{ab, f[1], bc},
			[3]int{ca, bc, f[2]},
			[3]int{ab, bc, ca},
		)
	}
	m.Faces = faces
}
