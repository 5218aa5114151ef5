// Copyright (c) 2026, Lattice Works Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/latticeworks/frep/trimesh"
)

// TetMesh is a volumetric tetrahedral mesh.
type TetMesh struct {
	Nodes []r3.Vec
	Tets  [][4]int
}

// maxTetCells bounds the lattice cell count before the edge length is
// backed off.
const maxTetCells = 400000

// Tetrahedralize fills a closed, outward-oriented surface mesh with
// tetrahedra on a body-centered-cubic lattice: every lattice cell whose
// center lies inside the surface contributes twelve tetrahedra fanning
// from the cell center to its corner nodes, with corners shared between
// adjacent cells. The target edge length is EdgeLengthRatio times the
// bounding-box diagonal, backed off geometrically (up to MaxIterations
// rounds) when the cell count would be excessive. Epsilon sets the
// containment tolerance at the surface, also relative to the diagonal.
func Tetrahedralize(m *trimesh.Mesh, opts TetOptions) (*TetMesh, error) {
	if len(m.Faces) == 0 {
		return nil, fmt.Errorf("solver: cannot tetrahedralize empty mesh")
	}
	if opts.EdgeLengthRatio <= 0 || opts.EdgeLengthRatio >= 1 {
		return nil, fmt.Errorf("solver: edge length ratio must be in (0,1), got %g", opts.EdgeLengthRatio)
	}
	bb := m.BBox()
	size := r3.Sub(bb.Max, bb.Min)
	diag := r3.Norm(size)
	if diag == 0 {
		return nil, fmt.Errorf("solver: degenerate surface bounds")
	}
	res := opts.EdgeLengthRatio * diag
	div := cellDiv(size, res)
	for round := 0; div[0]*div[1]*div[2] > maxTetCells; round++ {
		if opts.MaxIterations > 0 && round >= opts.MaxIterations {
			return nil, fmt.Errorf("solver: cell count %d still excessive after %d back-off rounds",
				div[0]*div[1]*div[2], round)
		}
		res *= 1.26
		div = cellDiv(size, res)
	}

	inside := insideTester(m, opts.Epsilon*diag)
	tm := &TetMesh{}
	corner := make(map[[3]int]int)
	cornerNode := func(i, j, k int) int {
		key := [3]int{i, j, k}
		if ni, ok := corner[key]; ok {
			return ni
		}
		ni := len(tm.Nodes)
		corner[key] = ni
		tm.Nodes = append(tm.Nodes, r3.Vec{
			X: bb.Min.X + float64(i)*res,
			Y: bb.Min.Y + float64(j)*res,
			Z: bb.Min.Z + float64(k)*res,
		})
		return ni
	}

	for i := 0; i < div[0]; i++ {
		for j := 0; j < div[1]; j++ {
			for k := 0; k < div[2]; k++ {
				ctr := r3.Vec{
					X: bb.Min.X + (float64(i)+0.5)*res,
					Y: bb.Min.Y + (float64(j)+0.5)*res,
					Z: bb.Min.Z + (float64(k)+0.5)*res,
				}
				if !inside(ctr) {
					continue
				}
				// Corner ordering: 000 100 110 010 001 101 111 011.
				c := [8]int{
					cornerNode(i, j, k),
					cornerNode(i+1, j, k),
					cornerNode(i+1, j+1, k),
					cornerNode(i, j+1, k),
					cornerNode(i, j, k+1),
					cornerNode(i+1, j, k+1),
					cornerNode(i+1, j+1, k+1),
					cornerNode(i, j+1, k+1),
				}
				nc := len(tm.Nodes)
				tm.Nodes = append(tm.Nodes, ctr)
				tm.Tets = append(tm.Tets,
					// yz plane facing tetrahedra.
					[4]int{c[0], c[7], c[3], nc},
					[4]int{c[0], c[4], c[7], nc},
					[4]int{c[1], c[2], c[6], nc},
					[4]int{c[1], c[6], c[5], nc},
					// xz
					[4]int{c[0], c[5], c[4], nc},
					[4]int{c[0], c[1], c[5], nc},
					[4]int{c[3], c[7], c[6], nc},
					[4]int{c[3], c[6], c[2], nc},
					// xy
					[4]int{c[0], c[2], c[1], nc},
					[4]int{c[0], c[3], c[2], nc},
					[4]int{c[4], c[5], c[6], nc},
					[4]int{c[4], c[6], c[7], nc},
				)
			}
		}
	}
	if len(tm.Tets) == 0 {
		return nil, fmt.Errorf("solver: no lattice cell centers inside surface; edge length %g too coarse", res)
	}
	return tm, nil
}

func cellDiv(size r3.Vec, res float64) [3]int {
	return [3]int{
		int(math.Ceil(size.X/res)) + 1,
		int(math.Ceil(size.Y/res)) + 1,
		int(math.Ceil(size.Z/res)) + 1,
	}
}

// insideTester returns a parity ray-cast containment test against the
// surface triangles, casting along +x. Points within eps of a triangle
// plane crossing count as inside.
func insideTester(m *trimesh.Mesh, eps float64) func(p r3.Vec) bool {
	return func(p r3.Vec) bool {
		crossings := 0
		for fi := range m.Faces {
			f := m.Faces[fi]
			t, hit := rayTriangleX(p, m.Verts[f[0]], m.Verts[f[1]], m.Verts[f[2]])
			if !hit {
				continue
			}
			if math.Abs(t) <= eps {
				return true // on the surface within tolerance
			}
			if t > 0 {
				crossings++
			}
		}
		return crossings%2 == 1
	}
}

// rayTriangleX intersects the ray p + t*(1,0,0) with triangle (a,b,c)
// using Moller-Trumbore, returning the ray parameter.
func rayTriangleX(p, a, b, c r3.Vec) (t float64, ok bool) {
	const tiny = 1e-12
	e1 := r3.Sub(b, a)
	e2 := r3.Sub(c, a)
	dir := r3.Vec{X: 1}
	h := r3.Cross(dir, e2)
	det := r3.Dot(e1, h)
	if math.Abs(det) < tiny {
		return 0, false
	}
	inv := 1 / det
	s := r3.Sub(p, a)
	u := inv * r3.Dot(s, h)
	if u < 0 || u > 1 {
		return 0, false
	}
	q := r3.Cross(s, e1)
	v := inv * r3.Dot(dir, q)
	if v < 0 || u+v > 1 {
		return 0, false
	}
	return inv * r3.Dot(e2, q), true
}
