// Copyright (c) 2026, Lattice Works Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package frep is a functional-representation (F-Rep) geometry engine
// for implicit-surface lattice modeling. Shapes are scalar functions of
// space composed algebraically, sampled over a shared discretized
// design space, and turned into meshes by isosurface extraction.
//
// The central types are [DesignSpace], the immutable sampling domain,
// and [Geometry], which binds an [Evaluable] shape function to a design
// space and orchestrates the lazy pipeline: grid evaluation, isosurface
// extraction, signed-distance solving, and mesh post-processing. All
// cached artifacts are invalidated when the evaluable function changes
// (translation, coordinate-system conversion).
//
// Composition never materializes a symbolic expression: composites call
// their operands' EvaluatePoint per sample, so every sub-shape is
// sampled at exactly the composing object's grid points.
package frep
