// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// register shape
func init() {

	// tri3
	var tri3 Shape
	tri3.Type = "tri3"
	tri3.Func = Tri3
	tri3.InDom = TriInDom
	tri3.Gndim = 2
	tri3.Nverts = 3
	tri3.VtkCode = VTK_TRIANGLE
	tri3.NatCoords = [][]float64{
		{0, 1, 0},
		{0, 0, 1},
	}
	tri3.initScratchpad()
	factory["tri3"] = &tri3
}

// TriInDom tells whether r is inside the unit-triangle reference domain
func TriInDom(r []float64, tol float64) bool {
	if r[0] < -tol || r[1] < -tol {
		return false
	}
	return r[0]+r[1] <= 1.0+tol
}

// Tri3 calculates the shape functions (S) and derivatives of shape functions (dSdR) of tri3
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
//
//      s
//      |
//      2
//      | \
//      |   \
//      |     \
//      |       \
//      0---------1 ---- r
//
func Tri3(S []float64, dSdR [][]float64, r []float64, derivs bool) {

	S[0] = 1.0 - r[0] - r[1]
	S[1] = r[0]
	S[2] = r[1]

	if !derivs {
		return
	}

	dSdR[0][0] = -1.0
	dSdR[0][1] = -1.0
	dSdR[1][0] = 1.0
	dSdR[1][1] = 0.0
	dSdR[2][0] = 0.0
	dSdR[2][1] = 1.0
}
