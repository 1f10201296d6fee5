// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
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

func Test_state01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("state01")

	state0 := NewState()
	io.Pforan("state0 = %+v\n", state0)
	chk.Scalar(tst, "lam3", 1e-17, state0.Lam3, 1)
	chk.Matrix(tst, "sig", 1e-17, state0.Sig, [][]float64{{0, 0}, {0, 0}})

	state0.Sig[0][0] = 10.0
	state0.Sig[0][1] = 11.0
	state0.Sig[1][0] = 11.0
	state0.Sig[1][1] = 12.0
	state0.Lam3 = 0.9
	state0.LnJ = -0.05
	state0.W = 123.0

	state1 := NewState()
	state1.Set(state0)
	io.Pforan("state1 = %+v\n", state1)
	chk.Matrix(tst, "sig", 1e-17, state1.Sig, [][]float64{{10, 11}, {11, 12}})
	chk.Scalar(tst, "lam3", 1e-17, state1.Lam3, 0.9)
	chk.Scalar(tst, "lnJ", 1e-17, state1.LnJ, -0.05)

	state2 := state1.GetCopy()
	state1.Sig[0][0] = -1 // copies must not share memory
	io.Pforan("state2 = %+v\n", state2)
	chk.Matrix(tst, "sig", 1e-17, state2.Sig, [][]float64{{10, 11}, {11, 12}})
	chk.Scalar(tst, "W", 1e-17, state2.W, 123.0)
}

func Test_state02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("state02. kinematics from covariant metrics")

	k := NewKinematics()
	err := k.SetRef([][]float64{{1, 0}, {0, 1}})
	if err != nil {
		tst.Errorf("SetRef failed:\n%v", err)
		return
	}
	err = k.SetCur([][]float64{{4, 0}, {0, 1}})
	if err != nil {
		tst.Errorf("SetCur failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "jA", 1e-15, k.JA, 1)
	chk.Scalar(tst, "ja", 1e-15, k.Ja, 2)
	chk.Scalar(tst, "area stretch", 1e-15, k.AreaStretch(), 2)
	chk.Matrix(tst, "ccnt", 1e-15, k.Ccnt, [][]float64{{0.25, 0}, {0, 1}})

	// a metric with non-positive determinant is non-physical
	err = k.SetCur([][]float64{{1, 2}, {2, 1}})
	if err == nil {
		tst.Errorf("SetCur should have failed for indefinite metric\n")
		return
	}
	io.Pfgrey("err = %v\n", err)
}
