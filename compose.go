// Copyright (c) 2026, Lattice Works Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frep

import (
	"fmt"
)

// Composition operators. A composite is an ordinary Geometry whose
// shape function combines its operands pointwise; nothing symbolic is
// materialized and no intermediate operand grids are cached. Operands
// are invoked through the [Evaluable] interface with the composite's
// own sample coordinates, so all sub-shapes are sampled at identical
// locations. Composites register as dependents of their operands:
// mutating an operand (Translate, SetTransform, coordinate conversion)
// invalidates the composite's caches along with the operand's own.

// Sub returns the pointwise algebraic difference A(p) - B(p). Both
// operands must share the same design space.
func Sub(a, b *Geometry) (*Geometry, error) {
	if err := sameSpace(a, b); err != nil {
		return nil, err
	}
	g, err := New(a.space, EvalFunc(func(x, y, z float64) float64 {
		return a.EvaluatePoint(x, y, z) - b.EvaluatePoint(x, y, z)
	}))
	if err != nil {
		return nil, err
	}
	a.addDependent(g)
	b.addDependent(g)
	return g.SetName(a.name + "-" + b.name), nil
}

// Negate returns the pointwise negation -A(p), flipping the
// inside/outside sign convention.
func Negate(a *Geometry) *Geometry {
	g, err := New(a.space, EvalFunc(func(x, y, z float64) float64 {
		return -a.EvaluatePoint(x, y, z)
	}))
	if err != nil {
		// Unreachable: a carries a valid space and function.
		panic(err)
	}
	a.addDependent(g)
	return g.SetName("neg-" + a.name)
}

// Union returns the Boolean solid union min(A(p), B(p)).
func Union(a, b *Geometry) (*Geometry, error) {
	if err := sameSpace(a, b); err != nil {
		return nil, err
	}
	g, err := New(a.space, EvalFunc(func(x, y, z float64) float64 {
		va, vb := a.EvaluatePoint(x, y, z), b.EvaluatePoint(x, y, z)
		if vb < va {
			return vb
		}
		return va
	}))
	if err != nil {
		return nil, err
	}
	a.addDependent(g)
	b.addDependent(g)
	return g.SetName(a.name + "|" + b.name), nil
}

// Intersect returns the Boolean solid intersection max(A(p), B(p)).
func Intersect(a, b *Geometry) (*Geometry, error) {
	if err := sameSpace(a, b); err != nil {
		return nil, err
	}
	g, err := New(a.space, EvalFunc(func(x, y, z float64) float64 {
		va, vb := a.EvaluatePoint(x, y, z), b.EvaluatePoint(x, y, z)
		if vb > va {
			return vb
		}
		return va
	}))
	if err != nil {
		return nil, err
	}
	a.addDependent(g)
	b.addDependent(g)
	return g.SetName(a.name + "&" + b.name), nil
}

// Difference returns the Boolean solid difference max(A(p), -B(p)):
// the part of A outside B.
func Difference(a, b *Geometry) (*Geometry, error) {
	if err := sameSpace(a, b); err != nil {
		return nil, err
	}
	g, err := New(a.space, EvalFunc(func(x, y, z float64) float64 {
		va, vb := a.EvaluatePoint(x, y, z), -b.EvaluatePoint(x, y, z)
		if vb > va {
			return vb
		}
		return va
	}))
	if err != nil {
		return nil, err
	}
	a.addDependent(g)
	b.addDependent(g)
	return g.SetName(a.name + "\\" + b.name), nil
}

// DoubleNetwork builds the compound double-network pattern: the same
// primitive family is instantiated at two volume fractions,
// vfHigh = 0.5 + vf/2 and vfLow = 0.5 - vf/2, and combined as
// -(A_high(p) - A_low(p)). The final negation flips the sign convention
// so the zero level set bounds the desired solid.
func DoubleNetwork(space *DesignSpace, family func(vf float64) Evaluable, vf float64) (*Geometry, error) {
	if family == nil {
		return nil, fmt.Errorf("%w: no primitive family specified", ErrConfiguration)
	}
	if vf <= 0 || vf >= 1 {
		return nil, &InvalidArgumentError{Op: "double-network", Arg: "volume fraction", Value: vf}
	}
	high := family(0.5 + vf/2)
	low := family(0.5 - vf/2)
	return New(space, EvalFunc(func(x, y, z float64) float64 {
		return -(high.EvaluatePoint(x, y, z) - low.EvaluatePoint(x, y, z))
	}))
}

func sameSpace(a, b *Geometry) error {
	if a.space != b.space {
		return fmt.Errorf("%w: operands bound to different design spaces", ErrConfiguration)
	}
	return nil
}
