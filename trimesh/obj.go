// Copyright (c) 2026, Lattice Works Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trimesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// WriteOBJ writes the mesh to w in Wavefront OBJ format. Face indices
// are 1-based per the format.
func WriteOBJ(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)
	for _, v := range m.Verts {
		if _, err := fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z); err != nil {
			return err
		}
	}
	for _, f := range m.Faces {
		if _, err := fmt.Fprintf(bw, "f %d %d %d\n", f[0]+1, f[1]+1, f[2]+1); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadOBJ reads a Wavefront OBJ mesh from r. Polygonal faces are
// fan-triangulated; texture and normal references on face elements are
// ignored.
func ReadOBJ(r io.Reader) (*Mesh, error) {
	m := &Mesh{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("trimesh: obj line %d: short vertex", line)
			}
			var v r3.Vec
			var err error
			if v.X, err = strconv.ParseFloat(fields[1], 64); err != nil {
				return nil, fmt.Errorf("trimesh: obj line %d: %w", line, err)
			}
			if v.Y, err = strconv.ParseFloat(fields[2], 64); err != nil {
				return nil, fmt.Errorf("trimesh: obj line %d: %w", line, err)
			}
			if v.Z, err = strconv.ParseFloat(fields[3], 64); err != nil {
				return nil, fmt.Errorf("trimesh: obj line %d: %w", line, err)
			}
			m.Verts = append(m.Verts, v)
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("trimesh: obj line %d: short face", line)
			}
			idx := make([]int, 0, len(fields)-1)
			for _, fe := range fields[1:] {
				s := fe
				if i := strings.IndexByte(s, '/'); i >= 0 {
					s = s[:i]
				}
				vi, err := strconv.Atoi(s)
				if err != nil {
					return nil, fmt.Errorf("trimesh: obj line %d: %w", line, err)
				}
				if vi < 0 {
					vi = len(m.Verts) + vi + 1
				}
				idx = append(idx, vi-1)
			}
			for i := 1; i < len(idx)-1; i++ {
				m.Faces = append(m.Faces, [3]int{idx[0], idx[i], idx[i+1]})
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// SaveOBJ writes the mesh to the named file in OBJ format.
func SaveOBJ(filename string, m *Mesh) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteOBJ(f, m)
}

// OpenOBJ reads the named OBJ file.
func OpenOBJ(filename string) (*Mesh, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadOBJ(f)
}
