// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gomem/ana"
	"github.com/cpmech/gomem/inp"
	"github.com/cpmech/gomem/msolid"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

func Test_ptload01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ptload01. force-driven stretch. simulation built in code")

	// target stretch and corresponding edge force
	lam, mu := msolid.CalcLamMu(1500, 0.25)
	var sol ana.UniaxialSheet
	sol.Init(fun.Prms{
		&fun.Prm{N: "lam", V: lam},
		&fun.Prm{N: "mu", V: mu},
	})
	lam2, _, sig1, err := sol.Solve(1.2)
	if err != nil {
		tst.Errorf("analytical solution failed:\n%v", err)
		return
	}
	h := 0.1
	ftot := h * 1.2 * sig1 // total axial force pulling the right edge

	// simulation assembled in code: same sheet, loaded by nodal forces
	sim := new(inp.Simulation)
	sim.Data.Desc = "force-driven stretched sheet"
	sim.Data.Matfile = "membrane.mat"
	sim.Solver.SetDefault()
	sim.LinSol.SetDefault()
	sim.Solver.FbTol = 1e-10
	sim.Functions = inp.FuncsData{
		&inp.FuncData{Name: "load", Type: "lin", Prms: fun.Prms{&fun.Prm{N: "m", V: ftot / 2.0}}},
	}
	sim.Regions = []*inp.Region{{
		Mshfile: "sheet.msh",
		ElemsData: []*inp.ElemData{
			{Tag: -1, Mat: "rubber", Type: "membrane", Extra: "!thick:0.1"},
		},
	}}
	sim.Stages = []*inp.Stage{{
		NodeBcs: []*inp.NodeBc{
			{Tag: -1, Keys: []string{"ux", "uy", "uz"}, Funcs: []string{"zero", "zero", "zero"}},
			{Tag: -4, Keys: []string{"ux", "uz"}, Funcs: []string{"zero", "zero"}},
			{Tag: -2, Keys: []string{"fx", "uz"}, Funcs: []string{"load", "zero"}},
			{Tag: -3, Keys: []string{"fx", "uz"}, Funcs: []string{"load", "zero"}},
		},
		Control: inp.TimeControl{Tf: 1, Dt: 0.25},
	}}
	err = sim.Init("data", false, 0)
	if err != nil {
		tst.Errorf("Init failed:\n%v", err)
		return
	}

	// fem
	fem, err := NewFEMFromSim(sim, chk.Verbose)
	if err != nil {
		tst.Errorf("NewFEMFromSim failed:\n%v", err)
		return
	}

	// run simulation
	err = fem.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}

	// the force-driven run reproduces the displacement-driven solution
	dom := fem.Domains[0]
	u1 := dom.NodalDisplacements(1)
	u2 := dom.NodalDisplacements(2)
	u3 := dom.NodalDisplacements(3)
	io.Pforan("u1 = %v\nu2 = %v\nu3 = %v\n", u1, u2, u3)
	tolu := 1e-6
	chk.Scalar(tst, "ux @ 1", tolu, u1[0], 0.2)
	chk.Scalar(tst, "ux @ 2", tolu, u2[0], 0.2)
	chk.Scalar(tst, "uy @ 1", tolu, u1[1], 0.0)
	chk.Scalar(tst, "uy @ 2", tolu, u2[1], lam2-1.0)
	chk.Scalar(tst, "uy @ 3", tolu, u3[1], lam2-1.0)

	// reactions at the clamped edge balance the applied load
	sum := dom.SumReactions()
	io.Pforan("Σ reactions = %v\n", sum)
	chk.Scalar(tst, "Σfx", 1e-6, sum["ux"], -ftot)
}

func Test_rank01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rank01. stiffness rank vs quadrature order")

	// element stiffness at the stretched configuration, for growing nip
	ranks := make([]int, 0)
	for _, nip := range []int{1, 4, 9} {

		// fem
		fem := NewFEM("data/sheet.sim", io.Sf("nip%d", nip), true, false, false, chk.Verbose, 0)
		fem.Sim.Regions[0].ElemsData[0].Nip = nip
		err := fem.SetStage(0)
		if err != nil {
			tst.Errorf("SetStage failed:\n%v", err)
			return
		}
		err = fem.ZeroStage(0, true)
		if err != nil {
			tst.Errorf("ZeroStage failed:\n%v", err)
			return
		}

		// stretched configuration
		dom := fem.Domains[0]
		dom.Sol.T = 1
		dom.ApplyEssenBcs(1)
		err = dom.UpdateElems()
		if err != nil {
			tst.Errorf("UpdateElems failed:\n%v", err)
			return
		}
		err = dom.AssembleKb(true)
		if err != nil {
			tst.Errorf("AssembleKb failed:\n%v", err)
			return
		}

		// rank of the full element matrix
		e := dom.Elems[0].(*ElemMembrane)
		chk.IntAssert(len(e.IpsElem), nip)
		var tri la.Triplet
		tri.Init(e.Nu, e.Nu, e.Nu*e.Nu)
		for i := 0; i < e.Nu; i++ {
			for j := 0; j < e.Nu; j++ {
				tri.Put(i, j, e.K[i][j])
			}
		}
		rank := MatrixRank(&tri, 1e-12)
		io.Pforan("nip=%d rank=%d\n", nip, rank)
		ranks = append(ranks, rank)

		// rigid translations are always in the kernel
		if rank > e.Nu-3 {
			tst.Errorf("rank=%d must not exceed %d (translations in kernel)", rank, e.Nu-3)
			return
		}
		if rank < 1 {
			tst.Errorf("rank=%d must be positive at the stretched state", rank)
			return
		}
	}

	// richer quadrature never loses rank
	for i := 1; i < len(ranks); i++ {
		if ranks[i] < ranks[i-1] {
			tst.Errorf("rank decreased with quadrature order: %v", ranks)
			return
		}
	}
}
