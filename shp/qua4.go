// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// register shape
func init() {

	// qua4
	var qua4 Shape
	qua4.Type = "qua4"
	qua4.Func = Qua4
	qua4.InDom = QuaInDom
	qua4.Gndim = 2
	qua4.Nverts = 4
	qua4.VtkCode = VTK_QUAD
	qua4.NatCoords = [][]float64{
		{-1, 1, 1, -1},
		{-1, -1, 1, 1},
	}
	qua4.initScratchpad()
	factory["qua4"] = &qua4
}

// QuaInDom tells whether r is inside the [-1,1]x[-1,1] reference domain
func QuaInDom(r []float64, tol float64) bool {
	for i := 0; i < 2; i++ {
		if r[i] < -1.0-tol || r[i] > 1.0+tol {
			return false
		}
	}
	return true
}

// Qua4 calculates the shape functions (S) and derivatives of shape functions (dSdR) of qua4
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
//
//      3-----------2
//      |     s     |
//      |     |     |
//      |     +--r  |
//      |           |
//      |           |
//      0-----------1
//
func Qua4(S []float64, dSdR [][]float64, r []float64, derivs bool) {

	S[0] = (1.0 - r[0]) * (1.0 - r[1]) / 4.0
	S[1] = (1.0 + r[0]) * (1.0 - r[1]) / 4.0
	S[2] = (1.0 + r[0]) * (1.0 + r[1]) / 4.0
	S[3] = (1.0 - r[0]) * (1.0 + r[1]) / 4.0

	if !derivs {
		return
	}

	dSdR[0][0] = -(1.0 - r[1]) / 4.0
	dSdR[0][1] = -(1.0 - r[0]) / 4.0
	dSdR[1][0] = (1.0 - r[1]) / 4.0
	dSdR[1][1] = -(1.0 + r[0]) / 4.0
	dSdR[2][0] = (1.0 + r[1]) / 4.0
	dSdR[2][1] = (1.0 + r[0]) / 4.0
	dSdR[3][0] = -(1.0 + r[1]) / 4.0
	dSdR[3][1] = (1.0 - r[0]) / 4.0
}
