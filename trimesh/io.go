// Copyright (c) 2026, Lattice Works Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trimesh

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Save writes the mesh to the named file, dispatching on the file
// extension. Supported: .obj, .stl.
func Save(filename string, m *Mesh) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".obj":
		return SaveOBJ(filename, m)
	case ".stl":
		return SaveSTL(filename, m)
	}
	return fmt.Errorf("trimesh: unsupported mesh format %q", filepath.Ext(filename))
}

// Open reads a mesh from the named file, dispatching on the file
// extension. Supported: .obj, .stl.
func Open(filename string) (*Mesh, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".obj":
		return OpenOBJ(filename)
	case ".stl":
		return OpenSTL(filename)
	}
	return nil, fmt.Errorf("trimesh: unsupported mesh format %q", filepath.Ext(filename))
}
