// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_shape01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shape01. Kronecker property and partition of unity")

	for name, shape := range factory {

		io.Pfyel("------------------------------- %-6s-------------------------------\n", name)

		// check S
		tol := 1e-15
		CheckShape(tst, shape, tol, chk.Verbose)

		// check dSdR at a few interior points
		tol = 1e-9
		for _, r := range SamplePoints(name) {
			CheckDSdR(tst, shape, r, tol, chk.Verbose)
		}

		io.PfGreen("OK\n")
	}
}

func Test_shape02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shape02. out-of-domain coordinates are rejected")

	for name, r := range map[string][]float64{
		"tri3": {0.7, 0.7, 0},
		"tri6": {-0.1, 0.5, 0},
		"qua4": {1.2, 0, 0},
	} {
		shape, err := Get(name, 0)
		if err != nil {
			tst.Errorf("Get failed:\n%v", err)
			return
		}
		err = shape.CalcAtR(r, false)
		if !errors.Is(err, ErrOutOfDomain) {
			tst.Errorf("%s: expected out-of-domain error for r=%v; got %v\n", name, r, err)
			return
		}
	}
}

func Test_shape03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shape03. unavailable shape type")

	_, err := Get("hex8", 0)
	if !errors.Is(err, ErrShapeUnavailable) {
		tst.Errorf("expected shape-unavailable error; got %v\n", err)
	}
}

func Test_shape04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shape04. goroutine copies do not share scratchpads")

	a, err := Get("tri6", 1)
	if err != nil {
		tst.Errorf("Get failed:\n%v", err)
		return
	}
	b, err := Get("tri6", 2)
	if err != nil {
		tst.Errorf("Get failed:\n%v", err)
		return
	}
	a.CalcAtR([]float64{0.2, 0.3, 0}, true)
	Sa := make([]float64, len(a.S))
	copy(Sa, a.S)
	b.CalcAtR([]float64{0.6, 0.1, 0}, true)
	chk.Vector(tst, "S (copy a unchanged)", 1e-17, a.S, Sa)
}

func Test_shape05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shape05. basis biorthogonality and inverse mapping")

	// affine embedding of the natural coordinates into 3D; the out-of-plane
	// bump makes the surface curved for the quadratic shapes
	a1 := []float64{1.1, 0.2, 0.3}
	a2 := []float64{0.2, 1.3, -0.2}
	t0 := []float64{0.5, -0.25, 0.8}

	for name, shape := range factory {

		io.Pfyel("------------------------------- %-6s-------------------------------\n", name)

		// nodal coordinates: xa is flat, x carries the bump
		xa := make([][]float64, 3)
		x := make([][]float64, 3)
		for i := 0; i < 3; i++ {
			xa[i] = make([]float64, shape.Nverts)
			x[i] = make([]float64, shape.Nverts)
			for m := 0; m < shape.Nverts; m++ {
				r1, r2 := shape.NatCoords[0][m], shape.NatCoords[1][m]
				xa[i][m] = t0[i] + a1[i]*r1 + a2[i]*r2
				x[i][m] = xa[i][m]
				if i == 2 {
					x[i][m] += 0.1 * r1 * r2
				}
			}
		}

		// g_α · gᵅ == δ over the integration points
		b := NewBasis()
		ips, err := GetIps(name, 0)
		if err != nil {
			tst.Errorf("GetIps failed:\n%v", err)
			return
		}
		for _, ip := range ips {
			if err := shape.CalcBasisAt(b, x, ip.R); err != nil {
				tst.Errorf("CalcBasisAt failed:\n%v", err)
				return
			}
			chk.Scalar(tst, io.Sf("biorth @ %v", ip.R), 1e-14, b.CheckBiorthogonality(), 0)
		}

		// round trip on the flat element: natural -> real -> natural
		for _, rref := range SamplePoints(name) {
			y, err := shape.IpRealCoords(xa, Ipoint{R: rref})
			if err != nil {
				tst.Errorf("IpRealCoords failed:\n%v", err)
				return
			}
			rinv := make([]float64, 3)
			if err := shape.InvMap(rinv, y, xa); err != nil {
				tst.Errorf("InvMap failed:\n%v", err)
				return
			}
			io.Pforan("r=%v  y=%v  rinv=%v\n", rref[:2], y, rinv[:2])
			chk.Vector(tst, io.Sf("r @ %v", rref[:2]), 1e-9, rinv[:2], rref[:2])
		}

		io.PfGreen("OK\n")
	}
}

func Test_shape06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shape06. degenerate elements are flagged")

	// collinear vertices span a zero-area surface
	for name, shape := range factory {
		x := make([][]float64, 3)
		for i := 0; i < 3; i++ {
			x[i] = make([]float64, shape.Nverts)
			for m := 0; m < shape.Nverts; m++ {
				s := shape.NatCoords[0][m] + shape.NatCoords[1][m]
				x[i][m] = float64(i+1) * s
			}
		}
		b := NewBasis()
		err := shape.CalcBasisAt(b, x, SamplePoints(name)[0])
		if !errors.Is(err, ErrDegenerate) {
			tst.Errorf("%s: CalcBasisAt should have returned ErrDegenerate. err=%v\n", name, err)
			return
		}
		io.Pf("%-6s: %v\n", name, err)
	}
}
