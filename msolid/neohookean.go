// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"fmt"
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// constants of the plane-stress iterations
const (
	PSTRESS_NIT = 15    // maximum number of iterations on the thickness stretch
	PSTRESS_TOL = 1e-11 // tolerance on |S³³|, relative to the shear modulus
)

// NeoHookean implements a compressible neo-Hookean membrane via the full
// three-dimensional constitutive tensor in the convected frame. The
// thickness direction is removed by static condensation after the
// plane-stress condition fixes the thickness stretch:
//  S^ij    = µ (G^ij - Cinv^ij) + λ ln(J) Cinv^ij
//  C^ijkl  = λ Cinv^ij Cinv^kl + (µ - λ ln(J)) (Cinv^ik Cinv^jl + Cinv^il Cinv^jk)
//  C~^αβγδ = C^αβγδ - C^αβ33 C^33γδ / C^3333
type NeoHookean struct {

	// parameters
	E   float64 // E: Young's modulus
	Nu  float64 // ν: Poisson's coefficient
	Lam float64 // λ: first Lamé parameter
	Mu  float64 // µ: shear modulus

	// auxiliary
	ci [][]float64     // Cinv: inverse right Cauchy-Green components [3][3]
	cc [][][][]float64 // C^ijkl: full moduli in the convected frame [3][3][3][3]
}

// add model to factory
func init() {
	allocators["nhk"] = func() Model { return new(NeoHookean) }
}

// Init initialises model
func (o *NeoHookean) Init(prms fun.Prms) (err error) {

	// parameters
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E = p.V
		case "nu":
			o.Nu = p.V
		case "lam":
			o.Lam = p.V
		case "mu":
			o.Mu = p.V
		}
	}

	// derived
	if o.Lam == 0 && o.Mu == 0 {
		if o.E <= 0 || o.Nu <= 0 || o.Nu >= 0.5 {
			return chk.Err("neo-Hookean model requires either {lam, mu} or {E, 0 < nu < 0.5}. prms=%v", prms)
		}
		o.Lam, o.Mu = CalcLamMu(o.E, o.Nu)
	}
	if o.Mu <= 0 {
		return chk.Err("neo-Hookean model requires a positive shear modulus. prms=%v", prms)
	}

	// auxiliary
	o.ci = la.MatAlloc(3, 3)
	o.cc = utl.Deep4alloc(3, 3, 3, 3)
	return
}

// GetPrms gets (an example) of parameters
func (o NeoHookean) GetPrms() fun.Prms {
	return []*fun.Prm{
		&fun.Prm{N: "E", V: 1500},
		&fun.Prm{N: "nu", V: 0.25},
	}
}

// InitIntVars initialises internal (secondary) variables
func (o NeoHookean) InitIntVars() (s *State, err error) {
	return NewState(), nil
}

// Update updates stresses for the current metrics
func (o *NeoHookean) Update(s *State, k *Kinematics) (err error) {

	// thickness stretch from the plane-stress condition
	s.Lam3, s.LnJ, err = calcLam3(s.Lam3, k.AreaStretch(), o.Lam, o.Mu)
	if err != nil {
		return
	}

	// contravariant in-plane 2nd Piola-Kirchhoff components
	for α := 0; α < 2; α++ {
		for β := 0; β < 2; β++ {
			s.Sig[α][β] = o.Mu*(k.Acnt[α][β]-k.Ccnt[α][β]) + o.Lam*s.LnJ*k.Ccnt[α][β]
		}
	}

	// strain energy: tr(C) in the mixed frame is C_ij G^ij
	trc := s.Lam3 * s.Lam3
	for α := 0; α < 2; α++ {
		for β := 0; β < 2; β++ {
			trc += k.Ccov[α][β] * k.Acnt[α][β]
		}
	}
	s.W = 0.5*o.Lam*s.LnJ*s.LnJ - o.Mu*s.LnJ + 0.5*o.Mu*(trc-3.0)
	return
}

// CalcD computes the condensed moduli consistent with Update
func (o *NeoHookean) CalcD(D [][][][]float64, s *State, k *Kinematics) (err error) {

	// inverse right Cauchy-Green components; the convected frame keeps the
	// thickness direction orthogonal to the surface
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			o.ci[i][j] = 0
		}
	}
	for α := 0; α < 2; α++ {
		for β := 0; β < 2; β++ {
			o.ci[α][β] = k.Ccnt[α][β]
		}
	}
	o.ci[2][2] = 1.0 / (s.Lam3 * s.Lam3)

	// full moduli
	coef := o.Mu - o.Lam*s.LnJ
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for m := 0; m < 3; m++ {
				for n := 0; n < 3; n++ {
					o.cc[i][j][m][n] = o.Lam*o.ci[i][j]*o.ci[m][n] + coef*(o.ci[i][m]*o.ci[j][n]+o.ci[i][n]*o.ci[j][m])
				}
			}
		}
	}

	// static condensation of the thickness direction
	c3333 := o.cc[2][2][2][2]
	for α := 0; α < 2; α++ {
		for β := 0; β < 2; β++ {
			for γ := 0; γ < 2; γ++ {
				for δ := 0; δ < 2; δ++ {
					D[α][β][γ][δ] = o.cc[α][β][γ][δ] - o.cc[α][β][2][2]*o.cc[2][2][γ][δ]/c3333
				}
			}
		}
	}
	return
}

// CalcLamMu computes the Lamé parameters from Young's modulus and Poisson's coefficient
func CalcLamMu(E, nu float64) (lam, mu float64) {
	lam = E * nu / ((1.0 + nu) * (1.0 - 2.0*nu))
	mu = E / (2.0 * (1.0 + nu))
	return
}

// calcLam3 solves the plane-stress condition S³³(λ3) = 0 by Newton's method:
//  S³³      = µ (1 - 1/λ3²) + λ ln(J) / λ3²
//  dS³³/dλ3 = C³³³³ λ3,  C³³³³ = (λ + 2 (µ - λ ln(J))) / λ3⁴
// with J = areaStretch * λ3. The previous converged stretch is the starting
// point; a non-positive iterate is reset to a small value once
func calcLam3(lam3Ini, areaStretch, lam, mu float64) (lam3, lnJ float64, err error) {
	lnA := math.Log(areaStretch)
	lam3 = lam3Ini
	reset := false
	for it := 0; it < PSTRESS_NIT; it++ {
		if lam3 <= 0 {
			if reset {
				return 0, 0, fmt.Errorf("%w: thickness stretch became non-positive", ErrNonPhysical)
			}
			lam3 = 1e-6
			reset = true
		}
		lnJ = lnA + math.Log(lam3)
		s33 := mu*(1.0-1.0/(lam3*lam3)) + lam*lnJ/(lam3*lam3)
		if math.Abs(s33) < PSTRESS_TOL*mu {
			return
		}
		c3333 := (lam + 2.0*(mu-lam*lnJ)) / math.Pow(lam3, 4)
		lam3 -= s33 / (c3333 * lam3)
	}
	return 0, 0, fmt.Errorf("%w: plane-stress iterations did not converge after %d steps", ErrNonPhysical, PSTRESS_NIT)
}
