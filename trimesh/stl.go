// Copyright (c) 2026, Lattice Works Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trimesh

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/spatial/r3"
)

// Binary STL layout: 80-byte header, uint32 triangle count, then one
// 50-byte record per triangle (normal, three vertices as float32
// triplets, uint16 attribute count).

type stlHeader struct {
	_     [80]uint8
	Count uint32
}

type stlTriangle struct {
	Normal [3]float32
	Vertex [3][3]float32
	_      uint16
}

// WriteSTL writes the mesh to w in binary STL format.
func WriteSTL(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)
	h := stlHeader{Count: uint32(len(m.Faces))}
	if err := binary.Write(bw, binary.LittleEndian, &h); err != nil {
		return err
	}
	var t stlTriangle
	for fi, f := range m.Faces {
		n := m.FaceNormal(fi)
		if l := r3.Norm(n); l > 0 {
			n = r3.Scale(1/l, n)
		}
		t.Normal = [3]float32{float32(n.X), float32(n.Y), float32(n.Z)}
		for i, vi := range f {
			v := m.Verts[vi]
			t.Vertex[i] = [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
		}
		if err := binary.Write(bw, binary.LittleEndian, &t); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadSTL reads a binary STL file from r, welding the triangle soup
// into an indexed mesh.
func ReadSTL(r io.Reader) (*Mesh, error) {
	br := bufio.NewReader(r)
	var h stlHeader
	if err := binary.Read(br, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("trimesh: bad stl header: %w", err)
	}
	tris := make([]Triangle, 0, h.Count)
	var t stlTriangle
	for i := uint32(0); i < h.Count; i++ {
		if err := binary.Read(br, binary.LittleEndian, &t); err != nil {
			return nil, fmt.Errorf("trimesh: truncated stl at triangle %d: %w", i, err)
		}
		var tri Triangle
		for j := 0; j < 3; j++ {
			tri[j] = r3.Vec{
				X: float64(t.Vertex[j][0]),
				Y: float64(t.Vertex[j][1]),
				Z: float64(t.Vertex[j][2]),
			}
		}
		tris = append(tris, tri)
	}
	return FromTriangles(tris), nil
}

// SaveSTL writes the mesh to the named file in binary STL format.
func SaveSTL(filename string, m *Mesh) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteSTL(f, m)
}

// OpenSTL reads the named binary STL file.
func OpenSTL(filename string) (*Mesh, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSTL(f)
}
