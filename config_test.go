// Copyright (c) 2026, Lattice Works Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frep

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, 0.8, opts.DecimateFactor)
	assert.Equal(t, 3, opts.SmoothIterations)
	assert.Equal(t, 0.25, opts.SmoothFactor)
	assert.Equal(t, 50, opts.Tet.MaxIterations)
	assert.InDelta(t, 1.0/100, opts.Tet.EdgeLengthRatio, 1e-15)
	assert.InDelta(t, 1.0/1500, opts.Tet.Epsilon, 1e-15)
}

func TestOptionsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frep.toml")
	opts := DefaultOptions()
	opts.Workers = 4
	opts.Level = 0.1
	opts.Tet.EdgeLengthRatio = 0.05

	require.NoError(t, SaveOptions(path, opts))
	got, err := LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, opts, got)
}

func TestLoadOptionsPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frep.toml")
	require.NoError(t, os.WriteFile(path, []byte("decimate_factor = 0.5\n"), 0666))

	got, err := LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, got.DecimateFactor)
	// Absent keys keep their defaults.
	assert.Equal(t, 3, got.SmoothIterations)
	assert.Equal(t, 50, got.Tet.MaxIterations)
}

func TestLoadOptionsMissing(t *testing.T) {
	_, err := LoadOptions(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoadOptionsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frep.toml")
	require.NoError(t, os.WriteFile(path, []byte("decimate_factor = [oops\n"), 0666))
	_, err := LoadOptions(path)
	assert.Error(t, err)
}
