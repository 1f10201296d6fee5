// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import "github.com/cpmech/gosl/la"

// State holds the stress state at one integration point of a membrane,
// including the variables resolved by the plane-stress condition
type State struct {
	Sig  [][]float64 // S^αβ: contravariant in-plane 2nd Piola-Kirchhoff components [2][2]
	Lam3 float64     // λ3: thickness stretch satisfying S³³ = 0
	LnJ  float64     // log of volumetric ratio J = (ja/jA) λ3
	W    float64     // ψ: strain energy density per unit reference volume
}

// NewState allocates a state structure with the undeformed configuration
func NewState() *State {
	return &State{
		Sig:  la.MatAlloc(2, 2),
		Lam3: 1,
	}
}

// Set copies states
//  Note: 1) this and other states must have been pre-allocated with the same sizes
//        2) this method does not check for errors
func (o *State) Set(other *State) {
	la.MatCopy(o.Sig, 1, other.Sig)
	o.Lam3 = other.Lam3
	o.LnJ = other.LnJ
	o.W = other.W
}

// GetCopy returns a copy of this state
func (o *State) GetCopy() *State {
	other := NewState()
	other.Set(o)
	return other
}
