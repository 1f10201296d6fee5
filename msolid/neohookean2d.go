// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// NeoHookean2D implements the same compressible neo-Hookean membrane as
// NeoHookean, with the thickness condensation carried out in closed form:
//  S^αβ    = µ A^αβ + (λ ln(J) - µ) ã^αβ
//  C~^αβγδ = (λ - λ²/(λ + 2µ - 2λ ln(J))) ã^αβ ã^γδ
//          + (µ - λ ln(J)) (ã^αγ ã^βδ + ã^αδ ã^βγ)
// Both models must produce identical stresses and moduli
type NeoHookean2D struct {

	// parameters
	E   float64 // E: Young's modulus
	Nu  float64 // ν: Poisson's coefficient
	Lam float64 // λ: first Lamé parameter
	Mu  float64 // µ: shear modulus
}

// add model to factory
func init() {
	allocators["nhk2d"] = func() Model { return new(NeoHookean2D) }
}

// Init initialises model
func (o *NeoHookean2D) Init(prms fun.Prms) (err error) {
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
	if o.Lam == 0 && o.Mu == 0 {
		if o.E <= 0 || o.Nu <= 0 || o.Nu >= 0.5 {
			return chk.Err("neo-Hookean model requires either {lam, mu} or {E, 0 < nu < 0.5}. prms=%v", prms)
		}
		o.Lam, o.Mu = CalcLamMu(o.E, o.Nu)
	}
	if o.Mu <= 0 {
		return chk.Err("neo-Hookean model requires a positive shear modulus. prms=%v", prms)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o NeoHookean2D) GetPrms() fun.Prms {
	return []*fun.Prm{
		&fun.Prm{N: "E", V: 1500},
		&fun.Prm{N: "nu", V: 0.25},
	}
}

// InitIntVars initialises internal (secondary) variables
func (o NeoHookean2D) InitIntVars() (s *State, err error) {
	return NewState(), nil
}

// Update updates stresses for the current metrics
func (o *NeoHookean2D) Update(s *State, k *Kinematics) (err error) {

	// thickness stretch from the plane-stress condition
	s.Lam3, s.LnJ, err = calcLam3(s.Lam3, k.AreaStretch(), o.Lam, o.Mu)
	if err != nil {
		return
	}

	// contravariant in-plane 2nd Piola-Kirchhoff components
	coef := o.Lam*s.LnJ - o.Mu
	for α := 0; α < 2; α++ {
		for β := 0; β < 2; β++ {
			s.Sig[α][β] = o.Mu*k.Acnt[α][β] + coef*k.Ccnt[α][β]
		}
	}

	// strain energy
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
func (o *NeoHookean2D) CalcD(D [][][][]float64, s *State, k *Kinematics) (err error) {
	c := k.Ccnt
	cf := o.Lam - o.Lam*o.Lam/(o.Lam+2.0*o.Mu-2.0*o.Lam*s.LnJ)
	cs := o.Mu - o.Lam*s.LnJ
	for α := 0; α < 2; α++ {
		for β := 0; β < 2; β++ {
			for γ := 0; γ < 2; γ++ {
				for δ := 0; δ < 2; δ++ {
					D[α][β][γ][δ] = cf*c[α][β]*c[γ][δ] + cs*(c[α][γ]*c[β][δ]+c[α][δ]*c[β][γ])
				}
			}
		}
	}
	return
}
