// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

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

func get_nids_eqs(dom *Domain) (nids, eqs []int) {
	for _, nod := range dom.Nodes {
		nids = append(nids, nod.Vert.Id)
		for _, dof := range nod.Dofs {
			eqs = append(eqs, dof.Eq)
		}
	}
	return
}

func Test_init01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("init01. equation numbering. one element")

	// fem
	fem := NewFEM("data/sheet.sim", "", true, false, false, chk.Verbose, 0)

	// set stage
	err := fem.SetStage(0)
	if err != nil {
		tst.Errorf("SetStage failed:\n%v", err)
		return
	}

	// domain
	dom := fem.Domains[0]

	// sizes
	chk.IntAssert(len(dom.Nodes), 4)
	chk.IntAssert(len(dom.Elems), 1)
	chk.IntAssert(dom.Ny, 12)
	chk.IntAssert(dom.Nfree, 2)
	chk.IntAssert(dom.NnzKb, 144)

	// the only free dofs are uy @ vertices 2 and 3; they are numbered first
	nids, eqs := get_nids_eqs(dom)
	chk.Ints(tst, "nids", nids, []int{0, 1, 2, 3})
	chk.Ints(tst, "eqs", eqs, []int{2, 3, 4, 5, 6, 7, 8, 0, 9, 10, 1, 11})
	chk.IntAssert(dom.Vid2node[2].GetEq("uy"), 0)
	chk.IntAssert(dom.Vid2node[3].GetEq("uy"), 1)

	// force-to-displacement keys
	chk.IntAssert(len(dom.F2Y), 3)
	for fkey, ykey := range map[string]string{"fx": "ux", "fy": "uy", "fz": "uz"} {
		if dom.F2Y[fkey] != ykey {
			tst.Errorf("F2Y[%q] = %q is incorrect", fkey, dom.F2Y[fkey])
			return
		}
	}

	// prescribed dofs: all but the two free ones; bound to eliminated equations
	chk.IntAssert(len(dom.EssenBcs), 10)
	for _, eb := range dom.EssenBcs {
		if eb.Eq < dom.Nfree || eb.Eq >= dom.Ny {
			tst.Errorf("essential bc %q @ vertex %d has eq=%d out of the eliminated range", eb.Key, eb.Vid, eb.Eq)
			return
		}
	}

	// element assembly map follows the node/dof ordering
	e := dom.Elems[0].(*ElemMembrane)
	chk.Ints(tst, "Umap", e.Umap, []int{2, 3, 4, 5, 6, 7, 8, 0, 9, 10, 1, 11})
	chk.Scalar(tst, "thickness", 1e-15, e.Thickness, 0.1)
}

func Test_init02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("init02. natural conditions. triangular patch")

	// fem
	fem := NewFEM("data/press.sim", "", true, false, false, chk.Verbose, 0)

	// set stage
	err := fem.SetStage(0)
	if err != nil {
		tst.Errorf("SetStage failed:\n%v", err)
		return
	}

	// domain
	dom := fem.Domains[0]
	chk.IntAssert(len(dom.Nodes), 3)
	chk.IntAssert(dom.Ny, 9)
	chk.IntAssert(dom.Nfree, 3) // uz everywhere

	// follower pressure went to the element
	e := dom.Elems[0].(*ElemMembrane)
	chk.IntAssert(len(e.NatBcs), 1)
	if e.NatBcs[0].Key != "qn" {
		tst.Errorf("natural bc key %q is incorrect", e.NatBcs[0].Key)
	}
}
