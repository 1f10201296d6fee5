// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"

	"github.com/cpmech/gosl/fun"
)

// InflatedSphere implements the solution for a thin spherical membrane of
// reference radius R and thickness h inflated by an internal pressure. The
// wall is in an equibiaxial state with stretch λ = r/R and the pressure
// follows from equilibrium of a hemispherical cap:
//
//   p = 2 (h/R) S1(λ) / λ
//
// where S1 is the in-plane principal second Piola-Kirchhoff stress of the
// plane-stress compressible neo-Hookean wall.
type InflatedSphere struct {

	// input
	λ float64 // first Lamé parameter
	µ float64 // shear modulus
	h float64 // reference wall thickness
	R float64 // reference radius

	// derived
	wall EquibiaxialSheet // plane-stress wall state
}

// Init initialises this structure
func (o *InflatedSphere) Init(prms fun.Prms) {

	// default values
	o.λ = 600
	o.µ = 600
	o.h = 0.01
	o.R = 1.0

	// parameters
	for _, p := range prms {
		switch p.N {
		case "lam":
			o.λ = p.V
		case "mu":
			o.µ = p.V
		case "h":
			o.h = p.V
		case "R":
			o.R = p.V
		}
	}

	// derived
	o.wall.Init(fun.Prms{
		&fun.Prm{N: "lam", V: o.λ},
		&fun.Prm{N: "mu", V: o.µ},
	})
}

// Pressure computes the inflation pressure corresponding to a given
// circumferential stretch λ
func (o *InflatedSphere) Pressure(lam float64) (p float64, err error) {
	_, sig1, err := o.wall.Solve(lam)
	if err != nil {
		return
	}
	p = 2.0 * (o.h / o.R) * sig1 / lam
	return
}

// PressureIncompressible computes the inflation pressure in the
// incompressible limit (λ → ∞ for the Lamé parameter):
//
//   p = 2 µ (h/R) (1/λ - 1/λ⁷)
func (o *InflatedSphere) PressureIncompressible(lam float64) (p float64) {
	return 2.0 * o.µ * (o.h / o.R) * (1.0/lam - math.Pow(lam, -7.0))
}
