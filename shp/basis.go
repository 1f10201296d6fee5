// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"fmt"
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// constants
const (
	INVMAP_TOL = 1.0e-10 // tolerance for inverse mapping function
	INVMAP_NIT = 25      // maximum number of iterations for inverse mapping
)

// Basis holds the curvilinear basis of a membrane surface at one point, for one
// configuration (reference or current). The same routine serves both
// configurations: only the nodal coordinates differ.
type Basis struct {
	Gcov [][]float64 // [2][3] covariant base vectors g_α = ∂x/∂r_α (tangent to parametric lines)
	Gcnt [][]float64 // [2][3] contravariant base vectors g^α = a^αβ g_β
	N    []float64   // [3] unit normal n = g_1 × g_2 / |g_1 × g_2|
	Amat [][]float64 // [2][2] surface metric a_αβ = g_α · g_β
	Ainv [][]float64 // [2][2] inverse metric a^αβ
	J    float64     // area Jacobian |g_1 × g_2| = sqrt(det(a)); strictly positive
}

// NewBasis allocates a new Basis structure
func NewBasis() (b *Basis) {
	b = new(Basis)
	b.Gcov = la.MatAlloc(2, 3)
	b.Gcnt = la.MatAlloc(2, 3)
	b.N = make([]float64, 3)
	b.Amat = la.MatAlloc(2, 2)
	b.Ainv = la.MatAlloc(2, 2)
	return
}

// CalcBasisAt computes the covariant/contravariant bases, surface metric and
// area Jacobian at natural coordinate r, from the nodal coordinates x of one
// configuration.
//  Input:
//   x[3][nverts] -- coordinates matrix (reference or current)
//   r[3]         -- natural coordinates
//  Output:
//   b -- basis data. Also fills the scratchpad (S, DSdR)
func (o *Shape) CalcBasisAt(b *Basis, x [][]float64, r []float64) (err error) {

	// shape functions and derivatives
	err = o.CalcAtR(r, true)
	if err != nil {
		return
	}

	// covariant base vectors: g_α := sum_m x_m * dS^m/dr_α
	for α := 0; α < 2; α++ {
		for i := 0; i < 3; i++ {
			b.Gcov[α][i] = 0
			for m := 0; m < o.Nverts; m++ {
				b.Gcov[α][i] += x[i][m] * o.DSdR[m][α]
			}
		}
	}

	// surface metric a_αβ = g_α · g_β
	for α := 0; α < 2; α++ {
		for β := 0; β < 2; β++ {
			b.Amat[α][β] = 0
			for i := 0; i < 3; i++ {
				b.Amat[α][β] += b.Gcov[α][i] * b.Gcov[β][i]
			}
		}
	}

	// area Jacobian
	det := b.Amat[0][0]*b.Amat[1][1] - b.Amat[0][1]*b.Amat[1][0]
	if det <= MINDET {
		return fmt.Errorf("%w: %q: det(a)=%g", ErrDegenerate, o.Type, det)
	}
	b.J = math.Sqrt(det)

	// inverse metric
	_, err = la.MatInv(b.Ainv, b.Amat, MINDET)
	if err != nil {
		return
	}

	// contravariant base vectors: g^α := a^αβ g_β
	for α := 0; α < 2; α++ {
		for i := 0; i < 3; i++ {
			b.Gcnt[α][i] = b.Ainv[α][0]*b.Gcov[0][i] + b.Ainv[α][1]*b.Gcov[1][i]
		}
	}

	// unit normal
	utl.Cross3d(b.N, b.Gcov[0], b.Gcov[1])
	for i := 0; i < 3; i++ {
		b.N[i] /= b.J
	}
	return
}

// CheckBiorthogonality returns the largest deviation from g_α·g^β == δ_αβ.
// Useful in verifications.
func (b *Basis) CheckBiorthogonality() (maxerr float64) {
	for α := 0; α < 2; α++ {
		for β := 0; β < 2; β++ {
			dot := 0.0
			for i := 0; i < 3; i++ {
				dot += b.Gcov[α][i] * b.Gcnt[β][i]
			}
			δ := 0.0
			if α == β {
				δ = 1.0
			}
			maxerr = utl.Max(maxerr, math.Abs(dot-δ))
		}
	}
	return
}

// InvMap computes the natural coordinates r corresponding to the real point y
// on the surface spanned by the nodal coordinates x, by Newton iterations on
// the tangential projection of the residual.
//  Input:
//   y[3]         -- real coordinates of point (assumed on or near the surface)
//   x[3][nverts] -- coordinates matrix
//  Output:
//   r[3] -- natural coordinates
func (o *Shape) InvMap(r, y []float64, x [][]float64) (err error) {

	b := NewBasis()
	e := make([]float64, 3)  // residual in real space
	p := make([]float64, 2)  // projected residual
	δr := make([]float64, 2) // corrector

	// first trial: centroid of reference domain
	r[0], r[1], r[2] = 0, 0, 0
	if o.Type == "tri3" || o.Type == "tri6" {
		r[0], r[1] = 1.0/3.0, 1.0/3.0
	}

	for it := 0; it < INVMAP_NIT; it++ {

		// bases and shape values at r
		err = o.CalcBasisAt(b, x, r)
		if err != nil {
			return
		}

		// residual: e = y - x * S
		for i := 0; i < 3; i++ {
			e[i] = y[i]
			for m := 0; m < o.Nverts; m++ {
				e[i] -= x[i][m] * o.S[m]
			}
		}

		// project onto covariant bases and solve metric system: a δr = p
		for α := 0; α < 2; α++ {
			p[α] = 0
			for i := 0; i < 3; i++ {
				p[α] += b.Gcov[α][i] * e[i]
			}
		}
		for α := 0; α < 2; α++ {
			δr[α] = b.Ainv[α][0]*p[0] + b.Ainv[α][1]*p[1]
		}
		r[0] += δr[0]
		r[1] += δr[1]

		// converged?
		if math.Sqrt(δr[0]*δr[0]+δr[1]*δr[1]) < INVMAP_TOL {
			return
		}
	}
	return chk.Err("InvMap: shape %q: Newton iterations did not converge for y=%v", o.Type, y)
}
