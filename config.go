// Copyright (c) 2026, Lattice Works Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frep

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/latticeworks/frep/solver"
)

// Options holds the tunable pipeline parameters. The zero value is not
// meaningful; start from [DefaultOptions].
type Options struct {
	// Workers bounds the goroutines used for grid evaluation.
	// Zero means one per available CPU.
	Workers int `toml:"workers"`

	// Level is the isosurface level used when extraction is triggered
	// implicitly (SaveMesh, SaveTetMesh, PreviewModel).
	Level float64 `toml:"level"`

	// DecimateFactor is the default face-count factor for Decimate.
	DecimateFactor float64 `toml:"decimate_factor"`

	// SmoothIterations and SmoothFactor are the defaults for Smooth.
	SmoothIterations int     `toml:"smooth_iterations"`
	SmoothFactor     float64 `toml:"smooth_factor"`

	// Tet holds the tetrahedralization tolerances.
	Tet solver.TetOptions `toml:"tet"`
}

// DefaultOptions returns the standard pipeline parameters.
func DefaultOptions() Options {
	return Options{
		Level:            0,
		DecimateFactor:   0.8,
		SmoothIterations: 3,
		SmoothFactor:     0.25,
		Tet:              solver.DefaultTetOptions(),
	}
}

// LoadOptions reads options from a TOML file, applying defaults for
// absent keys.
func LoadOptions(filename string) (Options, error) {
	opts := DefaultOptions()
	b, err := os.ReadFile(filename)
	if err != nil {
		return opts, err
	}
	if err := toml.Unmarshal(b, &opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// SaveOptions writes options to a TOML file.
func SaveOptions(filename string, opts Options) error {
	b, err := toml.Marshal(opts)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0666)
}
