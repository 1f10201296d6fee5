// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions
package ana

import (
	"math"

	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/num"
)

// UniaxialSheet implements the homogeneous solution for a compressible
// neo-Hookean sheet pulled along one in-plane direction with the other
// in-plane direction and the thickness left stress-free:
//
//   S1 = µ (1 - 1/λ1²) + λ ln(J)/λ1²
//   S2 = S3 = 0  with  λ2 = λ3  and  J = λ1 λ2²
//
// The principal stresses are second Piola-Kirchhoff values.
type UniaxialSheet struct {

	// input
	λ float64 // first Lamé parameter
	µ float64 // shear modulus

	// auxiliary
	λ1fx float64 // λ1 value to be passed to fx function
}

// Init initialises this structure
func (o *UniaxialSheet) Init(prms fun.Prms) {

	// default values
	o.λ = 600
	o.µ = 600

	// parameters
	for _, p := range prms {
		switch p.N {
		case "lam":
			o.λ = p.V
		case "mu":
			o.µ = p.V
		}
	}
}

// Solve computes the free transverse stretches and the axial stress
// corresponding to a given axial stretch λ1
func (o *UniaxialSheet) Solve(lam1 float64) (lam2, lam3, sig1 float64, err error) {
	var nls num.NlSolver
	defer nls.Clean()
	o.λ1fx = lam1
	res := []float64{1.0}
	nls.Init(1, o.fx_fun, nil, o.dfdx_fun, true, false, nil)
	err = nls.Solve(res, true)
	if err != nil {
		return
	}
	lam2, lam3 = res[0], res[0]
	lnJ := math.Log(lam1 * lam2 * lam3)
	sig1 = o.µ*(1.0-1.0/(lam1*lam1)) + o.λ*lnJ/(lam1*lam1)
	return
}

// fx_fun implements the transverse stress-free condition S2(λ2) λ2² = 0
func (o *UniaxialSheet) fx_fun(fx, x []float64) (err error) {
	λ2 := x[0]
	fx[0] = o.µ*(λ2*λ2-1.0) + o.λ*math.Log(o.λ1fx*λ2*λ2)
	return
}

// dfdx_fun is the derivative of fx_fun
func (o *UniaxialSheet) dfdx_fun(dfdx [][]float64, x []float64) (err error) {
	λ2 := x[0]
	dfdx[0][0] = 2.0*o.µ*λ2 + 2.0*o.λ/λ2
	return
}

// EquibiaxialSheet implements the homogeneous solution for a compressible
// neo-Hookean sheet stretched equally along both in-plane directions with
// the thickness left stress-free:
//
//   S1 = S2 = µ (1 - 1/λb²) + λ ln(J)/λb²
//   S3 = 0  with  J = λb² λ3
type EquibiaxialSheet struct {

	// input
	λ float64 // first Lamé parameter
	µ float64 // shear modulus

	// auxiliary
	λbfx float64 // λb value to be passed to fx function
}

// Init initialises this structure
func (o *EquibiaxialSheet) Init(prms fun.Prms) {

	// default values
	o.λ = 600
	o.µ = 600

	// parameters
	for _, p := range prms {
		switch p.N {
		case "lam":
			o.λ = p.V
		case "mu":
			o.µ = p.V
		}
	}
}

// Solve computes the free thickness stretch and the in-plane stress
// corresponding to a given biaxial stretch λb
func (o *EquibiaxialSheet) Solve(lamb float64) (lam3, sig1 float64, err error) {
	var nls num.NlSolver
	defer nls.Clean()
	o.λbfx = lamb
	res := []float64{1.0}
	nls.Init(1, o.fx_fun, nil, o.dfdx_fun, true, false, nil)
	err = nls.Solve(res, true)
	if err != nil {
		return
	}
	lam3 = res[0]
	lnJ := math.Log(lamb * lamb * lam3)
	sig1 = o.µ*(1.0-1.0/(lamb*lamb)) + o.λ*lnJ/(lamb*lamb)
	return
}

// fx_fun implements the thickness stress-free condition S3(λ3) λ3² = 0
func (o *EquibiaxialSheet) fx_fun(fx, x []float64) (err error) {
	λ3 := x[0]
	fx[0] = o.µ*(λ3*λ3-1.0) + o.λ*math.Log(o.λbfx*o.λbfx*λ3)
	return
}

// dfdx_fun is the derivative of fx_fun
func (o *EquibiaxialSheet) dfdx_fun(dfdx [][]float64, x []float64) (err error) {
	λ3 := x[0]
	dfdx[0][0] = 2.0*o.µ*λ3 + o.λ/λ3
	return
}
