// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/num"
)

// CheckShape checks that shape functions evaluate to 1.0 @ nodes (Kronecker
// property) and that they sum to 1.0 everywhere they are sampled (partition of
// unity)
func CheckShape(tst *testing.T, shape *Shape, tol float64, verbose bool) {

	// Kronecker property: loop over all vertices
	errS := 0.0
	r := []float64{0, 0, 0}
	for n := 0; n < shape.Nverts; n++ {

		// natural coordinates @ vertex
		for i := 0; i < shape.Gndim; i++ {
			r[i] = shape.NatCoords[i][n]
		}

		// compute function
		shape.Func(shape.S, shape.DSdR, r, false)

		// check
		if verbose {
			io.Pf("S = %v\n", shape.S)
		}
		for m := 0; m < shape.Nverts; m++ {
			if n == m {
				errS += math.Abs(shape.S[m] - 1.0)
			} else {
				errS += math.Abs(shape.S[m])
			}
		}
	}
	if errS > tol {
		tst.Errorf("%s failed with err = %g\n", shape.Type, errS)
		return
	}

	// partition of unity: sample interior points
	for _, rr := range SamplePoints(shape.Type) {
		shape.Func(shape.S, shape.DSdR, rr, false)
		sum := 0.0
		for m := 0; m < shape.Nverts; m++ {
			sum += shape.S[m]
		}
		if math.Abs(sum-1.0) > tol {
			tst.Errorf("%s: sum(S) @ %v failed with err = %g\n", shape.Type, rr, math.Abs(sum-1.0))
			return
		}
	}
}

// CheckDSdR checks dSdR derivatives of shape structures against numerical
// differentiation
func CheckDSdR(tst *testing.T, shape *Shape, r []float64, tol float64, verbose bool) {

	// auxiliary
	r_tmp := make([]float64, len(r))
	S_tmp := make([]float64, shape.Nverts)

	// analytical
	shape.Func(shape.S, shape.DSdR, r, true)

	// numerical
	for n := 0; n < shape.Nverts; n++ {
		for i := 0; i < shape.Gndim; i++ {
			dSndRi, _ := num.DerivCentral(func(t float64, args ...interface{}) (Sn float64) {
				copy(r_tmp, r)
				r_tmp[i] = t
				shape.Func(S_tmp, nil, r_tmp, false)
				Sn = S_tmp[n]
				return
			}, r[i], 1e-1)
			if verbose {
				io.Pfgrey2("  dS%ddR%d @ %5.2f = %v (num: %v)\n", n, i, r, shape.DSdR[n][i], dSndRi)
			}
			if math.Abs(shape.DSdR[n][i]-dSndRi) > tol {
				tst.Errorf("%s: dS%ddR%d failed with err = %g\n", shape.Type, n, i, math.Abs(shape.DSdR[n][i]-dSndRi))
				return
			}
		}
	}
}

// SamplePoints returns a few interior natural coordinates of a shape type,
// for property checks
func SamplePoints(geoType string) [][]float64 {
	switch geoType {
	case "tri3", "tri6":
		return [][]float64{
			{1.0 / 3.0, 1.0 / 3.0, 0},
			{0.1, 0.2, 0},
			{0.5, 0.25, 0},
			{0.05, 0.9, 0},
		}
	}
	return [][]float64{
		{0, 0, 0},
		{-0.5, 0.3, 0},
		{0.9, -0.9, 0},
		{0.25, 0.75, 0},
	}
}
