// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/num"
)

// HomogeneousKin builds the kinematics of an initially flat membrane under a
// homogeneous in-plane deformation gradient F = [[λ1, γ], [0, λ2]]; the
// reference metric is the identity
func HomogeneousKin(lam1, lam2, gam float64) (*Kinematics, error) {
	k := NewKinematics()
	if err := k.SetRef([][]float64{{1, 0}, {0, 1}}); err != nil {
		return nil, err
	}
	// a = Fᵀ F
	a := [][]float64{
		{lam1 * lam1, lam1 * gam},
		{lam1 * gam, gam*gam + lam2*lam2},
	}
	if err := k.SetCur(a); err != nil {
		return nil, err
	}
	return k, nil
}

// RandomF returns a random admissible in-plane deformation gradient; i.e. one
// with positive determinant and a positive-definite metric FᵀF
func RandomF(rnd *rand.Rand) [][]float64 {
	for {
		f := [][]float64{
			{0.7 + 0.9*rnd.Float64(), -0.3 + 0.6*rnd.Float64()},
			{-0.3 + 0.6*rnd.Float64(), 0.7 + 0.9*rnd.Float64()},
		}
		if f[0][0]*f[1][1]-f[0][1]*f[1][0] > 0.2 {
			return f
		}
	}
}

// RandomQ returns a random 3D rotation matrix (axis-angle, Rodrigues formula)
func RandomQ(rnd *rand.Rand) [][]float64 {
	u := []float64{rnd.NormFloat64(), rnd.NormFloat64(), rnd.NormFloat64()}
	den := math.Sqrt(u[0]*u[0] + u[1]*u[1] + u[2]*u[2])
	for i := 0; i < 3; i++ {
		u[i] /= den
	}
	θ := 2.0 * math.Pi * rnd.Float64()
	c, s := math.Cos(θ), math.Sin(θ)
	q := [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}
	for i := 0; i < 3; i++ {
		q[i][i] = c
		for j := 0; j < 3; j++ {
			q[i][j] += (1.0 - c) * u[i] * u[j]
		}
	}
	q[0][1] -= s * u[2]
	q[0][2] += s * u[1]
	q[1][0] += s * u[2]
	q[1][2] -= s * u[0]
	q[2][0] -= s * u[1]
	q[2][1] += s * u[0]
	return q
}

// CalcCauchy pushes the 2nd Piola-Kirchhoff components forward to the Cauchy
// stress in Cartesian coordinates:  σ = (1/J) S^αβ g_α ⊗ g_β
//  sig  -- [3][3] resulting Cauchy stress
//  gcov -- [2][3] covariant base vectors of the current configuration
func CalcCauchy(sig [][]float64, s *State, k *Kinematics, gcov [][]float64) {
	jac := k.AreaStretch() * s.Lam3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sig[i][j] = 0
			for α := 0; α < 2; α++ {
				for β := 0; β < 2; β++ {
					sig[i][j] += s.Sig[α][β] * gcov[α][i] * gcov[β][j] / jac
				}
			}
		}
	}
}

// CheckD compares the moduli of a membrane model against central finite
// differences of the stresses. The numerical derivative perturbs the current
// metric and re-solves the plane-stress condition, so it probes the condensed
// (total) derivative
func CheckD(tst *testing.T, mdl Membrane, k *Kinematics, D [][][][]float64, tol float64, verbose bool) {

	ktmp := NewKinematics()
	ktmp.SetRef(k.Acov)
	stmp := NewState()
	ctmp := [][]float64{{0, 0}, {0, 0}}

	// sval computes S^αβ for a metric with the (γ,δ) pair set to t
	sval := func(t float64, α, β, γ, δ int) float64 {
		ctmp[0][0], ctmp[0][1] = k.Ccov[0][0], k.Ccov[0][1]
		ctmp[1][0], ctmp[1][1] = k.Ccov[1][0], k.Ccov[1][1]
		ctmp[γ][δ] = t
		ctmp[δ][γ] = t
		stmp.Lam3 = 1
		if err := ktmp.SetCur(ctmp); err != nil {
			chk.Panic("SetCur failed: %v", err)
		}
		if err := mdl.Update(stmp, ktmp); err != nil {
			chk.Panic("Update failed: %v", err)
		}
		return stmp.Sig[α][β]
	}

	// a symmetric perturbation of the pair (γ,δ) with γ ≠ δ moves two
	// components of C, hence dS^αβ/dt = D^αβγδ; on the diagonal it moves
	// one and dS^αβ/dt = D^αβγδ/2
	for α := 0; α < 2; α++ {
		for β := 0; β < 2; β++ {
			for γ := 0; γ < 2; γ++ {
				for δ := γ; δ < 2; δ++ {
					dnum, _ := num.DerivCentral(func(t float64, args ...interface{}) float64 {
						return sval(t, α, β, γ, δ)
					}, k.Ccov[γ][δ], 1e-2)
					if γ == δ {
						dnum *= 2.0
					}
					name := io.Sf("D%d%d%d%d", α, β, γ, δ)
					if verbose {
						io.Pfgrey("%s: ana=%23.15e num=%23.15e\n", name, D[α][β][γ][δ], dnum)
					}
					chk.AnaNum(tst, name, tol, D[α][β][γ][δ], dnum, false)
				}
			}
		}
	}
}
