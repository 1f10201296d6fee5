// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// register shape
func init() {

	// tri6
	var tri6 Shape
	tri6.Type = "tri6"
	tri6.Func = Tri6
	tri6.InDom = TriInDom
	tri6.Gndim = 2
	tri6.Nverts = 6
	tri6.VtkCode = VTK_QUADRATIC_TRIANGLE
	tri6.NatCoords = [][]float64{
		{0, 1, 0, 0.5, 0.5, 0},
		{0, 0, 1, 0, 0.5, 0.5},
	}
	tri6.initScratchpad()
	factory["tri6"] = &tri6
}

// Tri6 calculates the shape functions (S) and derivatives of shape functions (dSdR) of tri6
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
//
//      s
//      |
//      2
//      | \
//      |   \
//      5     4
//      |       \
//      |         \
//      0-----3-----1 ---- r
//
func Tri6(S []float64, dSdR [][]float64, r []float64, derivs bool) {

	u := 1.0 - r[0] - r[1]
	S[0] = 2.0 * u * (u - 0.5)
	S[1] = 2.0 * r[0] * (r[0] - 0.5)
	S[2] = 2.0 * r[1] * (r[1] - 0.5)
	S[3] = 4.0 * r[0] * u
	S[4] = 4.0 * r[0] * r[1]
	S[5] = 4.0 * r[1] * u

	if !derivs {
		return
	}

	dSdR[0][0] = 4.0*r[0] + 4.0*r[1] - 3.0
	dSdR[0][1] = 4.0*r[0] + 4.0*r[1] - 3.0
	dSdR[1][0] = 4.0*r[0] - 1.0
	dSdR[1][1] = 0.0
	dSdR[2][0] = 0.0
	dSdR[2][1] = 4.0*r[1] - 1.0
	dSdR[3][0] = 4.0 - 8.0*r[0] - 4.0*r[1]
	dSdR[3][1] = -4.0 * r[0]
	dSdR[4][0] = 4.0 * r[1]
	dSdR[4][1] = 4.0 * r[0]
	dSdR[5][0] = -4.0 * r[1]
	dSdR[5][1] = 4.0 - 4.0*r[0] - 8.0*r[1]
}
