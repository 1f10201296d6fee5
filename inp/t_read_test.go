// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
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

func Test_msh01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("msh01")

	msh, err := ReadMsh("data", "sheet.msh", 0)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	io.Pforan("%v\n", msh)
	io.Pfcyan("lims = [%g, %g, %g, %g, %g, %g]\n", msh.Xmin, msh.Xmax, msh.Ymin, msh.Ymax, msh.Zmin, msh.Zmax)
	chk.IntAssert(msh.Ndim, 3)
	chk.Scalar(tst, "xmin", 1e-17, msh.Xmin, 0)
	chk.Scalar(tst, "xmax", 1e-17, msh.Xmax, 1)
	chk.Scalar(tst, "ymax", 1e-17, msh.Ymax, 1)
	chk.Scalar(tst, "zmax", 1e-17, msh.Zmax, 0)
	chk.IntAssert(len(msh.Ctype2cells["qua4"]), 1)
	chk.IntAssert(len(msh.VertTag2verts[-2]), 1)
	chk.IntAssert(msh.Cells[0].Shp.Nverts, 4)

	// unknown shape type
	msh.Cells[0].Type = "hex8"
	if err := msh.Init(0); err == nil {
		tst.Errorf("Init should have failed for unavailable shape\n")
	}
}

func Test_mat01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mat01")

	mdb1, err := ReadMat("data", "membrane.mat")
	if err != nil {
		tst.Errorf("cannot read membrane.mat:\n%v", err)
		return
	}
	io.Pforan("membrane.mat just read:\n%v\n", mdb1)

	mat := mdb1.Get("rubber")
	if mat == nil {
		tst.Errorf("cannot find material \"rubber\"\n")
		return
	}
	if mat.Mdl == nil {
		tst.Errorf("model of \"rubber\" was not allocated\n")
		return
	}
	if mdb1.Get("steel") != nil {
		tst.Errorf("Get should have returned nil for unknown material\n")
		return
	}

	fn := "test_membrane.mat"
	io.WriteFileSD("/tmp/gomem/inp", fn, mdb1.String())

	mdb2, err := ReadMat("/tmp/gomem/inp/", fn)
	if err != nil {
		tst.Errorf("cannot read test_membrane.mat:\n%v", err)
		return
	}
	io.Pfblue2("\n%v\n", mdb2)
}

func Test_sim01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim01")

	sim := ReadSim("data/sheet.sim", "", true, 0)
	if sim == nil {
		tst.Errorf("test failed\n")
		return
	}
	if chk.Verbose {
		sim.GetInfo(os.Stdout)
		io.Pf("\n")
	}

	io.Pfyel("Ndim = %v\n", sim.Ndim)
	chk.IntAssert(sim.Ndim, 3)
	chk.IntAssert(sim.Solver.NmaxIt, 40)
	chk.Scalar(tst, "fbtol", 1e-17, sim.Solver.FbTol, 1e-10)
	if sim.Solver.Itol <= 0 {
		tst.Errorf("Itol was not computed\n")
		return
	}

	// element data by tag
	edat := sim.Regions[0].Etag2data(-1)
	if edat == nil {
		tst.Errorf("cannot find element data with tag -1\n")
		return
	}
	if edat.Mat != "rubber" || edat.Type != "membrane" {
		tst.Errorf("element data is incorrect: mat=%q type=%q\n", edat.Mat, edat.Type)
		return
	}

	// boundary conditions
	stg := sim.Stages[0]
	nbc := stg.GetNodeBc(-2)
	if nbc == nil {
		tst.Errorf("cannot find node bc with tag -2\n")
		return
	}
	chk.Strings(tst, "keys", nbc.Keys, []string{"ux", "uy", "uz"})
	fcn := sim.Functions.Get("pull")
	if fcn == nil {
		tst.Errorf("cannot find function \"pull\"\n")
		return
	}
	chk.Scalar(tst, "pull(1)", 1e-15, fcn.F(1, nil), 0.2)
	chk.Scalar(tst, "dt", 1e-17, stg.Control.Dt, 0.25)
	chk.Scalar(tst, "dtout", 1e-17, stg.Control.DtOut, 0.25)
}
