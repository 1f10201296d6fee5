// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// S computes the principal second Piola-Kirchhoff stress of the
// compressible neo-Hookean model
func principalStress(lam, mu, lami, lnJ float64) float64 {
	return mu*(1.0-1.0/(lami*lami)) + lam*lnJ/(lami*lami)
}

func Test_uniax01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("uniax01. uniaxially stretched sheet")

	var sol UniaxialSheet
	sol.Init(fun.Prms{
		&fun.Prm{N: "lam", V: 600},
		&fun.Prm{N: "mu", V: 600},
	})

	// reference state
	lam2, lam3, sig1, err := sol.Solve(1.0)
	if err != nil {
		tst.Errorf("Solve failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "λ2(1)", 1e-10, lam2, 1.0)
	chk.Scalar(tst, "λ3(1)", 1e-10, lam3, 1.0)
	chk.Scalar(tst, "S1(1)", 1e-10, sig1, 0.0)

	// stretched states: transverse directions must be stress-free and
	// the axial stress must grow monotonically
	sigprev := 0.0
	for _, lam1 := range []float64{1.05, 1.2, 1.5, 2.0} {
		lam2, lam3, sig1, err = sol.Solve(lam1)
		if err != nil {
			tst.Errorf("Solve failed:\n%v", err)
			return
		}
		chk.Scalar(tst, io.Sf("λ2=λ3 @ %g", lam1), 1e-14, lam2, lam3)
		lnJ := math.Log(lam1 * lam2 * lam3)
		s2 := principalStress(600, 600, lam2, lnJ)
		s1 := principalStress(600, 600, lam1, lnJ)
		chk.Scalar(tst, io.Sf("S2 @ %g", lam1), 1e-8, s2, 0.0)
		chk.Scalar(tst, io.Sf("S1 @ %g", lam1), 1e-10, s1, sig1)
		if sig1 <= sigprev {
			tst.Errorf("S1 is not monotonic: S1(%g)=%g <= %g", lam1, sig1, sigprev)
			return
		}
		if lam2 >= 1.0 {
			tst.Errorf("transverse stretch must contract: λ2(%g)=%g", lam1, lam2)
			return
		}
		sigprev = sig1
	}
}

func Test_equibi01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("equibi01. equibiaxially stretched sheet")

	var sol EquibiaxialSheet
	sol.Init(fun.Prms{
		&fun.Prm{N: "lam", V: 600},
		&fun.Prm{N: "mu", V: 600},
	})

	// reference state
	lam3, sig1, err := sol.Solve(1.0)
	if err != nil {
		tst.Errorf("Solve failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "λ3(1)", 1e-10, lam3, 1.0)
	chk.Scalar(tst, "S1(1)", 1e-10, sig1, 0.0)

	// stretched states
	for _, lamb := range []float64{1.05, 1.2, 1.5} {
		lam3, sig1, err = sol.Solve(lamb)
		if err != nil {
			tst.Errorf("Solve failed:\n%v", err)
			return
		}
		lnJ := math.Log(lamb * lamb * lam3)
		s3 := principalStress(600, 600, lam3, lnJ)
		s1 := principalStress(600, 600, lamb, lnJ)
		chk.Scalar(tst, io.Sf("S3 @ %g", lamb), 1e-8, s3, 0.0)
		chk.Scalar(tst, io.Sf("S1 @ %g", lamb), 1e-10, s1, sig1)
		if lam3 >= 1.0 {
			tst.Errorf("thickness must contract: λ3(%g)=%g", lamb, lam3)
			return
		}
	}
}

func Test_sphere01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sphere01. inflated spherical membrane")

	// nearly incompressible wall: λ/µ = 1000
	var sol InflatedSphere
	sol.Init(fun.Prms{
		&fun.Prm{N: "lam", V: 600000},
		&fun.Prm{N: "mu", V: 600},
		&fun.Prm{N: "h", V: 0.01},
		&fun.Prm{N: "R", V: 1.0},
	})

	// reference state carries no pressure
	p, err := sol.Pressure(1.0)
	if err != nil {
		tst.Errorf("Pressure failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "p(1)", 1e-10, p, 0.0)
	chk.Scalar(tst, "pinc(1)", 1e-14, sol.PressureIncompressible(1.0), 0.0)

	// the compressible solution must approach the incompressible limit
	for _, lam := range []float64{1.1, 1.5, 2.0, 3.0} {
		p, err = sol.Pressure(lam)
		if err != nil {
			tst.Errorf("Pressure failed:\n%v", err)
			return
		}
		pinc := sol.PressureIncompressible(lam)
		if io.Verbose {
			io.Pf("λ=%4g  p=%13.8f  pinc=%13.8f\n", lam, p, pinc)
		}
		chk.Scalar(tst, io.Sf("p @ %g", lam), 0.01*pinc+1e-10, p, pinc)
	}
}
