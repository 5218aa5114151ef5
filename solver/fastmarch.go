// Copyright (c) 2026, Lattice Works Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"container/heap"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/latticeworks/frep/field"
)

// ErrNoZeroContour is returned when the input field has no zero
// crossing, so no distance field can be anchored.
var ErrNoZeroContour = errors.New("solver: field has no zero contour")

// FastMarching converts the sampled field into a signed distance field
// to its zero level set. Distances are seeded on grid points adjacent
// to sign changes (sub-cell interface position by linear interpolation)
// and propagated outward with a first-order upwind Eikonal update and a
// priority queue. The sign of the input field is preserved.
func FastMarching(f *field.Field) (*field.Field, error) {
	nx, ny, nz := f.Size()
	n := f.Len()
	if !f.CrossesLevel(0) {
		lo, hi := f.MinMax()
		return nil, fmt.Errorf("%w: field range [%g, %g]", ErrNoZeroContour, lo, hi)
	}
	h := [3]float64{f.Step.X, f.Step.Y, f.Step.Z}
	strides := [3]int{ny * nz, nz, 1}
	dims := [3]int{nx, ny, nz}

	dist := make([]float64, n)
	known := make([]bool, n)
	for i := range dist {
		dist[i] = math.Inf(1)
	}

	// Seed the narrow band at sign changes.
	q := &distHeap{}
	idxOf := func(i, j, k int) int { return (i*ny+j)*nz + k }
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				p := idxOf(i, j, k)
				fp := f.Values[p]
				if fp == 0 {
					dist[p] = 0
					continue
				}
				pos := [3]int{i, j, k}
				for a := 0; a < 3; a++ {
					if pos[a]+1 >= dims[a] {
						continue
					}
					qi := p + strides[a]
					fq := f.Values[qi]
					if fp*fq >= 0 {
						continue
					}
					dp := h[a] * math.Abs(fp) / (math.Abs(fp) + math.Abs(fq))
					dist[p] = math.Min(dist[p], dp)
					dist[qi] = math.Min(dist[qi], h[a]-dp)
				}
			}
		}
	}
	for p := 0; p < n; p++ {
		if !math.IsInf(dist[p], 1) {
			known[p] = true
			heap.Push(q, distItem{index: p, dist: dist[p]})
		}
	}

	// Upwind propagation.
	for q.Len() > 0 {
		it := heap.Pop(q).(distItem)
		p := it.index
		if it.dist > dist[p] {
			continue // stale entry
		}
		known[p] = true
		i := p / (ny * nz)
		j := (p / nz) % ny
		k := p % nz
		pos := [3]int{i, j, k}
		for a := 0; a < 3; a++ {
			for _, d := range [2]int{-1, 1} {
				np := pos
				np[a] += d
				if np[a] < 0 || np[a] >= dims[a] {
					continue
				}
				nb := idxOf(np[0], np[1], np[2])
				if known[nb] && dist[nb] <= dist[p] {
					continue
				}
				t := eikonalUpdate(dist, np, dims, strides, h)
				if t < dist[nb] {
					dist[nb] = t
					heap.Push(q, distItem{index: nb, dist: t})
				}
			}
		}
	}

	out := f.Clone()
	for p, v := range f.Values {
		if v < 0 {
			out.Values[p] = -dist[p]
		} else {
			out.Values[p] = dist[p]
		}
	}
	return out, nil
}

// eikonalUpdate solves the first-order upwind discretization of
// |grad T| = 1 at the given grid point, using the smallest neighbor
// value along each axis.
func eikonalUpdate(dist []float64, pos, dims, strides [3]int, h [3]float64) float64 {
	type term struct{ a, h float64 }
	terms := make([]term, 0, 3)
	p := pos[0]*strides[0] + pos[1]*strides[1] + pos[2]*strides[2]
	for a := 0; a < 3; a++ {
		best := math.Inf(1)
		if pos[a] > 0 {
			best = dist[p-strides[a]]
		}
		if pos[a]+1 < dims[a] {
			best = math.Min(best, dist[p+strides[a]])
		}
		if !math.IsInf(best, 1) {
			terms = append(terms, term{a: best, h: h[a]})
		}
	}
	if len(terms) == 0 {
		return math.Inf(1)
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i].a < terms[j].a })

	// Add upwind terms one at a time while they remain active.
	t := terms[0].a + terms[0].h
	for m := 2; m <= len(terms); m++ {
		if t <= terms[m-1].a {
			break
		}
		var sA, sB, sC float64
		for _, tm := range terms[:m] {
			w := 1 / (tm.h * tm.h)
			sA += w
			sB += tm.a * w
			sC += tm.a * tm.a * w
		}
		disc := sB*sB - sA*(sC-1)
		if disc < 0 {
			break
		}
		t = (sB + math.Sqrt(disc)) / sA
	}
	return t
}

type distItem struct {
	index int
	dist  float64
}

type distHeap []distItem

func (h distHeap) Len() int            { return len(h) }
func (h distHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h distHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *distHeap) Push(x any)         { *h = append(*h, x.(distItem)) }
func (h *distHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}
