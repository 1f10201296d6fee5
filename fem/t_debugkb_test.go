// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/num"
)

// testKb helps on checking element stiffness matrices against finite
// differences of the internal/external force vector. The constitutive
// response is hyperelastic, so perturbed states are recomputed from the
// perturbed primary variables alone
type testKb struct {

	// input (must)
	tst          *testing.T // testing structure
	eid          int        // element id
	tol          float64    // tolerance to compare K's
	step         float64    // step for finite differences
	verb         bool       // verbose: show results
	itmin, itmax int        // limits to consider test; -1 means all iterations

	// derived
	it    int       // current iteration
	fbtmp []float64 // auxiliary residual vector
	ybkp  []float64 // backup of primary variables
}

// membrane_DebugKb sets the debug callback to check the stiffness matrix of
// one membrane element
func membrane_DebugKb(fem *FEM, o *testKb) {
	fem.DebugKb = func(d *Domain, it int) {

		elem := d.Elems[o.eid]
		e, ok := elem.(*ElemMembrane)
		if !ok {
			io.Pfred("warning: eid=%d does not correspond to membrane element\n", o.eid)
			return
		}

		// skip?
		o.it = it
		if o.skip() {
			return
		}

		// backup and restore upon exit
		o.aux_backup(d)
		defer o.aux_restore(d)

		// check
		o.check("K", d, e, e.Umap, e.Umap, e.K)
	}
}

// skip skips the check based on the iteration number
func (o *testKb) skip() bool {
	if o.itmin >= 0 && o.it < o.itmin {
		return true
	}
	if o.itmax >= 0 && o.it > o.itmax {
		return true
	}
	if o.verb {
		io.PfYel("\nit=%2d\n", o.it)
	}
	return false
}

func (o *testKb) aux_backup(d *Domain) {
	o.fbtmp = make([]float64, d.Ny)
	o.ybkp = make([]float64, d.Ny)
	copy(o.ybkp, d.Sol.Y)
}

func (o *testKb) aux_restore(d *Domain) {
	copy(d.Sol.Y, o.ybkp)
	if err := d.UpdateElems(); err != nil {
		chk.Panic("cannot restore elements after numerical differentiation:\n%v", err)
	}
}

// check compares Kana against central differences of the residual
func (o *testKb) check(label string, d *Domain, e Elem, imap, jmap []int, Kana [][]float64) {
	if o.step < 1e-14 {
		o.step = 1e-6
	}
	var tmp float64
	for i, I := range imap {
		for j, J := range jmap {
			dnum, _ := num.DerivCentral(func(x float64, args ...interface{}) (res float64) {
				tmp, d.Sol.Y[J] = d.Sol.Y[J], x
				if err := e.Update(d.Sol); err != nil {
					chk.Panic("testKb: cannot update element: %v", err)
				}
				for k := 0; k < d.Ny; k++ {
					o.fbtmp[k] = 0
				}
				if err := e.AddToRhs(o.fbtmp, d.Sol); err != nil {
					chk.Panic("testKb: cannot compute residual: %v", err)
				}
				res = -o.fbtmp[I]
				d.Sol.Y[J] = tmp
				return res
			}, d.Sol.Y[J], o.step)
			chk.AnaNum(o.tst, io.Sf(label+"%3d%3d", i, j), o.tol, Kana[i][j], dnum, o.verb)
		}
	}
}

func Test_kb01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("kb01. stiffness matrix. uniaxial stretch")

	// fem
	fem := NewFEM("data/sheet.sim", "", true, false, false, chk.Verbose, 0)

	// set stiffness check
	membrane_DebugKb(fem, &testKb{
		tst: tst, eid: 0, tol: 1e-5, step: 1e-6, verb: chk.Verbose, itmin: 1, itmax: -1,
	})

	// run simulation
	err := fem.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}

	// without follower loads the element stiffness is symmetric
	e := fem.Domains[0].Elems[0].(*ElemMembrane)
	for i := 0; i < e.Nu; i++ {
		for j := i + 1; j < e.Nu; j++ {
			diff := e.K[i][j] - e.K[j][i]
			if diff > 1e-10 || diff < -1e-10 {
				tst.Errorf("K is not symmetric: K[%d][%d]-K[%d][%d] = %g", i, j, j, i, diff)
				return
			}
		}
	}
}

func Test_kb02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("kb02. stiffness matrix. follower pressure")

	// fem
	fem := NewFEM("data/press.sim", "", true, false, false, chk.Verbose, 0)

	// set stage and initial values
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

	// bend the patch out-of-plane so all stiffness terms are exercised
	dom := fem.Domains[0]
	dom.Sol.T = 1
	dom.ApplyEssenBcs(1)
	for _, nod := range dom.Nodes {
		eq := nod.GetEq("uz")
		dom.Sol.Y[eq] = 0.03 * float64(nod.Vert.Id+1)
	}
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

	// check the element stiffness, follower pressure terms included
	e := dom.Elems[0].(*ElemMembrane)
	kb := &testKb{tst: tst, eid: 0, tol: 1e-5, step: 1e-6, verb: chk.Verbose, itmin: -1, itmax: -1}
	kb.aux_backup(dom)
	kb.check("K", dom, e, e.Umap, e.Umap, e.K)
	kb.aux_restore(dom)
}
