// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_model01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model01. allocation and model database")

	// unknown models
	if mdl, err := New("unknown"); mdl != nil || err == nil {
		tst.Errorf("New should have failed for unknown model. mdl=%v err=%v\n", mdl, err)
		return
	}
	if mdl := GetModel("sim", "mat", "unknown", true); mdl != nil {
		tst.Errorf("GetModel should have returned nil for unknown model\n")
		return
	}

	// the same simulation/material pair shares one instance
	ma := GetModel("modeldbtest", "rubber", "nhk", false)
	mb := GetModel("modeldbtest", "rubber", "nhk", false)
	if ma == nil || mb == nil {
		tst.Errorf("GetModel failed to allocate \"nhk\"\n")
		return
	}
	if ma != mb {
		tst.Errorf("GetModel must return the shared instance for the same key\n")
		return
	}

	// different keys and getnew allocations are independent
	mc := GetModel("modeldbtest", "rubber2", "nhk", false)
	md := GetModel("modeldbtest", "rubber", "nhk", true)
	if mc == ma || md == ma {
		tst.Errorf("GetModel must allocate new instances for new keys and getnew\n")
		return
	}
}
