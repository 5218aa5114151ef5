// Copyright (c) 2026, Lattice Works Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// WriteMsh writes the tetrahedral mesh to w in Gmsh ASCII v2.2 format.
// Element type 4 is the linear tetrahedron; node and element ids are
// 1-based per the format.
func (tm *TetMesh) WriteMsh(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "$MeshFormat")
	fmt.Fprintln(bw, "2.2 0 8")
	fmt.Fprintln(bw, "$EndMeshFormat")
	fmt.Fprintln(bw, "$Nodes")
	fmt.Fprintln(bw, len(tm.Nodes))
	for i, n := range tm.Nodes {
		fmt.Fprintf(bw, "%d %g %g %g\n", i+1, n.X, n.Y, n.Z)
	}
	fmt.Fprintln(bw, "$EndNodes")
	fmt.Fprintln(bw, "$Elements")
	fmt.Fprintln(bw, len(tm.Tets))
	for i, t := range tm.Tets {
		if _, err := fmt.Fprintf(bw, "%d 4 2 0 1 %d %d %d %d\n",
			i+1, t[0]+1, t[1]+1, t[2]+1, t[3]+1); err != nil {
			return err
		}
	}
	fmt.Fprintln(bw, "$EndElements")
	return bw.Flush()
}

// SaveMsh writes the tetrahedral mesh to the named .msh file.
func (tm *TetMesh) SaveMsh(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return tm.WriteMsh(f)
}
