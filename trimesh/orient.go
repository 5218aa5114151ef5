// Copyright (c) 2026, Lattice Works Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trimesh

import "gonum.org/v1/gonum/spatial/r3"

// Patches labels each face with the id of its edge-connected patch.
// Two faces belong to the same patch when they share an (undirected)
// edge. Labels are dense, starting at 0.
func Patches(faces [][3]int) []int {
	adj := faceAdjacency(faces)
	labels := make([]int, len(faces))
	for i := range labels {
		labels[i] = -1
	}
	next := 0
	var stack []int
	for seed := range faces {
		if labels[seed] >= 0 {
			continue
		}
		labels[seed] = next
		stack = append(stack[:0], seed)
		for len(stack) > 0 {
			fi := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, nb := range adj[fi] {
				if labels[nb.face] < 0 {
					labels[nb.face] = next
					stack = append(stack, nb.face)
				}
			}
		}
		next++
	}
	return labels
}

// OrientOutward makes face winding consistent within each connected
// patch and flips whole patches whose enclosed signed volume is
// negative, so that every closed patch winds outward. The mesh is
// modified in place and normals recomputed.
func OrientOutward(m *Mesh, labels []int) {
	adj := faceAdjacency(m.Faces)
	visited := make([]bool, len(m.Faces))
	flipped := make([]bool, len(m.Faces))
	var stack []int
	for seed := range m.Faces {
		if visited[seed] {
			continue
		}
		visited[seed] = true
		stack = append(stack[:0], seed)
		for len(stack) > 0 {
			fi := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, nb := range adj[fi] {
				if visited[nb.face] {
					continue
				}
				visited[nb.face] = true
				// Consistently wound neighbors traverse a shared edge
				// in opposite directions. The adjacency flags were
				// computed from the input windings, so a face flipped
				// earlier in the traversal inverts its stored relation
				// to every still-unvisited neighbor.
				if nb.sameDir != flipped[fi] {
					flipFace(m, nb.face)
					flipped[nb.face] = true
				}
				stack = append(stack, nb.face)
			}
		}
	}
	// Flip inward-facing patches using their signed volume.
	npatch := 0
	for _, l := range labels {
		if l+1 > npatch {
			npatch = l + 1
		}
	}
	vols := make([]float64, npatch)
	for fi, f := range m.Faces {
		a, b, c := m.Verts[f[0]], m.Verts[f[1]], m.Verts[f[2]]
		vols[labels[fi]] += r3.Dot(a, r3.Cross(b, c))
	}
	for fi := range m.Faces {
		if vols[labels[fi]] < 0 {
			flipFace(m, fi)
		}
	}
	m.ComputeNormals()
}

func flipFace(m *Mesh, fi int) {
	m.Faces[fi][1], m.Faces[fi][2] = m.Faces[fi][2], m.Faces[fi][1]
}

type neighbor struct {
	face int
	// sameDir is true when the shared edge appears in the same
	// direction in both faces, meaning their windings disagree.
	sameDir bool
}

// faceAdjacency maps each face to its edge neighbors with relative
// winding direction.
func faceAdjacency(faces [][3]int) [][]neighbor {
	type dirEdge struct {
		a, b int
		face int
	}
	edges := make(map[[2]int][]dirEdge, 3*len(faces))
	for fi, f := range faces {
		for e := 0; e < 3; e++ {
			a, b := f[e], f[(e+1)%3]
			k := [2]int{min(a, b), max(a, b)}
			edges[k] = append(edges[k], dirEdge{a: a, b: b, face: fi})
		}
	}
	adj := make([][]neighbor, len(faces))
	for _, des := range edges {
		for i := 0; i < len(des); i++ {
			for j := i + 1; j < len(des); j++ {
				same := des[i].a == des[j].a
				adj[des[i].face] = append(adj[des[i].face], neighbor{face: des[j].face, sameDir: same})
				adj[des[j].face] = append(adj[des[j].face], neighbor{face: des[i].face, sameDir: same})
			}
		}
	}
	return adj
}
