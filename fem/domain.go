// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sync"

	"github.com/cpmech/gomem/inp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/la"
)

// Solution holds the solution data @ nodes.
// Equations are ordered with the free (unknown) ones first; the equations of
// prescribed dofs are numbered from Nfree to Ny-1 and are eliminated from the
// linear system
type Solution struct {
	T     float64   // current (pseudo) time == load factor
	Y     []float64 // [ny] dofs (solution variables)
	ΔY    []float64 // [ny] total increment accumulated over the current load step
	Nfree int       // number of free equations
}

// EssenBc holds one prescribed-displacement (essential) boundary condition,
// bound to one dof of one node
type EssenBc struct {
	Key string   // dof key; e.g. "ux"
	Eq  int      // equation number (>= Nfree)
	Fcn fun.Func // prescribed value as function of time
	Vid int      // vertex id
}

// PtLoad holds one concentrated (point) load, bound to one dof of one node
type PtLoad struct {
	Key string   // force key; e.g. "fx"
	Eq  int      // equation number of the corresponding displacement dof
	Fcn fun.Func // load value as function of time
	Vid int      // vertex id
}

// Domain holds all Nodes and Elements active during a stage in addition to
// the Solution at nodes
type Domain struct {

	// init: auxiliary variables
	Sim    *inp.Simulation // [from FEM] input data
	Reg    *inp.Region     // region data
	Msh    *inp.Mesh       // mesh data
	LinSol LinearSolver    // linear solver

	// stage: nodes and elements
	Nodes []*Node // active nodes
	Elems []Elem  // active elements

	// stage: auxiliary maps
	F2Y      map[string]string // converts f-keys to y-keys; e.g.: "fx" => "ux"
	Vid2node []*Node           // [nverts] VertexId => index in Nodes. Inactive vertices are 'nil'
	Cid2elem []Elem            // [ncells] CellId => index in Elems

	// stage: boundary conditions
	EssenBcs []*EssenBc // prescribed displacements
	PtLoads  []*PtLoad  // concentrated loads

	// stage: dimensions
	NnzKb int // estimate of the number of nonzeros in Kb matrix
	Ny    int // total number of dofs
	Nfree int // number of free (unknown) dofs

	// stage: solution and linear solver
	Sol      *Solution   // solution state
	Kb       *la.Triplet // Jacobian == dRdy (free block only)
	Fb       []float64   // [ny] residual == -fb; prescribed rows carry the reactions
	Wb       []float64   // [nfree] workspace: correction δy
	InitLSol bool        // flag telling that the linear solver needs initialisation

	// parallel assembly
	Nwkrs int           // number of assembly workers
	wkFb  [][]float64   // [nwkrs][ny] per-worker residual buffers
	wkKb  []*kbuffer    // [nwkrs] per-worker stiffness buffers

	// for divergence control
	bkpSol *Solution // backup solution
}

// kbuffer is a per-worker accumulation buffer for global stiffness entries.
// Entries are merged sequentially into the shared triplet after all workers
// join, keeping the assembly deterministic
type kbuffer struct {
	i, j []int
	v    []float64
}

// Put implements Kassem
func (o *kbuffer) Put(i, j int, v float64) {
	o.i = append(o.i, i)
	o.j = append(o.j, j)
	o.v = append(o.v, v)
}

func (o *kbuffer) reset() {
	o.i = o.i[:0]
	o.j = o.j[:0]
	o.v = o.v[:0]
}

// Clean cleans memory allocated by domain
func (o *Domain) Clean() {
	if o.LinSol != nil {
		o.LinSol.Clean()
	}
}

// NewDomains returns all domains of a simulation
func NewDomains(sim *inp.Simulation) (doms []*Domain, err error) {
	doms = make([]*Domain, len(sim.Regions))
	for i, reg := range sim.Regions {
		doms[i] = new(Domain)
		doms[i].Sim = sim
		doms[i].Reg = reg
		doms[i].Msh = reg.Msh
		doms[i].LinSol, err = GetLinSolver(sim.LinSol.Name)
		if err != nil {
			return nil, err
		}
		doms[i].Nwkrs = sim.Solver.Nwkrs
		if doms[i].Nwkrs < 1 {
			doms[i].Nwkrs = 1
		}
	}
	return
}

// SetStage sets nodes, equation numbers and auxiliary data for given stage
func (o *Domain) SetStage(stgidx int) (err error) {

	// pointer to stage structure
	stg := o.Sim.Stages[stgidx]

	// nodes and elements
	o.Nodes = make([]*Node, 0)
	o.Elems = make([]Elem, 0)

	// auxiliary maps
	o.F2Y = make(map[string]string)
	o.Vid2node = make([]*Node, len(o.Msh.Verts))
	o.Cid2elem = make([]Elem, len(o.Msh.Cells))

	// allocate nodes with dofs and elements ---------------------------------------------------------

	o.NnzKb = 0
	for _, cell := range o.Msh.Cells {

		// get element info
		info, err := GetElemInfo(cell, o.Reg, o.Sim)
		if err != nil {
			return chk.Err("get element information failed:\n%v", err)
		}
		chk.IntAssert(len(info.Dofs), len(cell.Verts))

		// store f-to-y information
		for ykey, fkey := range info.Y2F {
			o.F2Y[fkey] = ykey
		}

		// loop over nodes of this element
		var eNdof int
		for j, v := range cell.Verts {

			// new or existent node
			nod := o.Vid2node[v]
			if nod == nil {
				nod = NewNode(o.Msh.Verts[v])
				o.Vid2node[v] = nod
				o.Nodes = append(o.Nodes, nod)
			}

			// set dofs (equation numbers are assigned later)
			for _, ukey := range info.Dofs[j] {
				nod.AddDof(ukey)
				eNdof += 1
			}
		}
		o.NnzKb += eNdof * eNdof

		// allocate element
		ele, err := NewElem(cell, o.Reg, o.Sim)
		if err != nil {
			return chk.Err("new element failed:\n%v", err)
		}
		o.Cid2elem[cell.Id] = ele
		o.Elems = append(o.Elems, ele)
	}

	// essential bcs and point loads -----------------------------------------------------------------

	// collect prescribed dofs and point loads from vertex boundary conditions
	o.EssenBcs = make([]*EssenBc, 0)
	o.PtLoads = make([]*PtLoad, 0)
	prescribed := make(map[*Dof]bool)
	for _, nc := range stg.NodeBcs {
		verts, ok := o.Msh.VertTag2verts[nc.Tag]
		if !ok {
			return chk.Err("cannot find vertices with tag = %d to assign node boundary conditions", nc.Tag)
		}
		for _, v := range verts {
			nod := o.Vid2node[v.Id]
			if nod == nil { // skip inactive nodes
				continue
			}
			for j, key := range nc.Keys {
				fcn := o.Sim.Functions.Get(nc.Funcs[j])
				if fcn == nil {
					return chk.Err("cannot find function named %q", nc.Funcs[j])
				}
				if ykey, isforce := o.F2Y[key]; isforce {
					o.PtLoads = append(o.PtLoads, &PtLoad{key, -1, fcn, v.Id})
					if nod.GetDof(ykey) == nil {
						return chk.Err("cannot apply load %q at vertex %d: dof %q is not active", key, v.Id, ykey)
					}
				} else {
					dof := nod.GetDof(key)
					if dof == nil {
						return chk.Err("cannot prescribe %q at vertex %d: dof is not active", key, v.Id)
					}
					if !prescribed[dof] {
						prescribed[dof] = true
						o.EssenBcs = append(o.EssenBcs, &EssenBc{key, -1, fcn, v.Id})
					}
				}
			}
		}
	}

	// assign equation numbers: free dofs first, prescribed ones last --------------------------------

	eq := 0
	for _, nod := range o.Nodes {
		for _, dof := range nod.Dofs {
			if !prescribed[dof] {
				dof.Eq = eq
				eq += 1
			}
		}
	}
	o.Nfree = eq
	for _, nod := range o.Nodes {
		for _, dof := range nod.Dofs {
			if prescribed[dof] {
				dof.Eq = eq
				eq += 1
			}
		}
	}
	o.Ny = eq

	// bind equation numbers to boundary conditions
	for _, eb := range o.EssenBcs {
		eb.Eq = o.Vid2node[eb.Vid].GetEq(eb.Key)
	}
	for _, pl := range o.PtLoads {
		pl.Eq = o.Vid2node[pl.Vid].GetEq(o.F2Y[pl.Key])
	}

	// give equation numbers to elements
	for _, ele := range o.Elems {
		cell := o.Msh.Cells[ele.Id()]
		eqs := make([][]int, len(cell.Verts))
		for j, v := range cell.Verts {
			for _, dof := range o.Vid2node[v].Dofs {
				eqs[j] = append(eqs[j], dof.Eq)
			}
		}
		err = ele.SetEqs(eqs)
		if err != nil {
			return chk.Err("cannot set element equations:\n%v", err)
		}
	}

	// element conditions ----------------------------------------------------------------------------

	for _, ec := range stg.EleConds {
		cells, ok := o.Msh.CellTag2cells[ec.Tag]
		if !ok {
			return chk.Err("cannot find cells with tag = %d to assign conditions", ec.Tag)
		}
		for _, cell := range cells {
			e := o.Cid2elem[cell.Id]
			if e == nil {
				continue
			}
			for j, key := range ec.Keys {
				fcn := o.Sim.Functions.Get(ec.Funcs[j])
				if fcn == nil {
					return chk.Err("cannot find function named %q", ec.Funcs[j])
				}
				err = e.SetEleConds(key, fcn, ec.Extra)
				if err != nil {
					return
				}
			}
		}
	}

	// solution structure and linear system ----------------------------------------------------------

	o.Sol = new(Solution)
	o.Sol.Y = make([]float64, o.Ny)
	o.Sol.ΔY = make([]float64, o.Ny)
	o.Sol.Nfree = o.Nfree

	o.Kb = new(la.Triplet)
	o.Kb.Init(o.Nfree, o.Nfree, o.NnzKb)
	o.Fb = make([]float64, o.Ny)
	o.Wb = make([]float64, o.Nfree)
	o.InitLSol = true

	// per-worker assembly buffers
	if o.Nwkrs > len(o.Elems) {
		o.Nwkrs = len(o.Elems)
	}
	if o.Nwkrs > 1 {
		o.wkFb = la.MatAlloc(o.Nwkrs, o.Ny)
		o.wkKb = make([]*kbuffer, o.Nwkrs)
		for k := 0; k < o.Nwkrs; k++ {
			o.wkKb[k] = new(kbuffer)
		}
	}
	return
}

// SetIniVals sets/resets initial values at nodes and integration points
func (o *Domain) SetIniVals(stgidx int, zeroSol bool) (err error) {
	if zeroSol {
		o.Sol.Reset()
	}
	for _, e := range o.Elems {
		err = e.SetIniIvs(o.Sol)
		if err != nil {
			return chk.Err("cannot set initial internal variables:\n%v", err)
		}
	}
	o.Sol.T = 0
	return
}

// ApplyEssenBcs sets the prescribed values at time t into Y (and the
// corresponding entries of ΔY). Must be called before the iterations of each
// load step
func (o *Domain) ApplyEssenBcs(t float64) {
	for _, eb := range o.EssenBcs {
		val := eb.Fcn.F(t, nil)
		o.Sol.ΔY[eb.Eq] += val - o.Sol.Y[eb.Eq]
		o.Sol.Y[eb.Eq] = val
	}
}

// AssembleFb assembles the global residual vector Fb == -R and adds the point
// loads. When Nwkrs > 1, elements are partitioned into contiguous chunks and
// processed concurrently into per-worker buffers, merged sequentially
func (o *Domain) AssembleFb(t float64) (err error) {
	la.VecFill(o.Fb, 0)

	// element contributions
	if o.Nwkrs > 1 {
		err = o.foreachChunk(func(k, lo, hi int) error {
			la.VecFill(o.wkFb[k], 0)
			for _, e := range o.Elems[lo:hi] {
				if err := e.AddToRhs(o.wkFb[k], o.Sol); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return
		}
		for k := 0; k < o.Nwkrs; k++ {
			la.VecAdd(o.Fb, 1, o.wkFb[k])
		}
	} else {
		for _, e := range o.Elems {
			err = e.AddToRhs(o.Fb, o.Sol)
			if err != nil {
				return
			}
		}
	}

	// point loads
	for _, pl := range o.PtLoads {
		o.Fb[pl.Eq] += pl.Fcn.F(t, nil)
	}
	return
}

// AssembleKb assembles the global Jacobian matrix Kb (free block only). When
// Nwkrs > 1, per-worker buffers receive the element contributions and are
// merged sequentially into the triplet
func (o *Domain) AssembleKb(firstIt bool) (err error) {
	o.Kb.Start()

	if o.Nwkrs > 1 {
		err = o.foreachChunk(func(k, lo, hi int) error {
			o.wkKb[k].reset()
			for _, e := range o.Elems[lo:hi] {
				if err := e.AddToKb(o.wkKb[k], o.Sol, firstIt); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return
		}
		for k := 0; k < o.Nwkrs; k++ {
			buf := o.wkKb[k]
			for p := 0; p < len(buf.v); p++ {
				o.Kb.Put(buf.i[p], buf.j[p], buf.v[p])
			}
		}
		return
	}

	for _, e := range o.Elems {
		err = e.AddToKb(o.Kb, o.Sol, firstIt)
		if err != nil {
			return
		}
	}
	return
}

// UpdateElems updates the secondary variables of all elements from the
// current primary variables
func (o *Domain) UpdateElems() (err error) {
	if o.Nwkrs > 1 {
		return o.foreachChunk(func(k, lo, hi int) error {
			for _, e := range o.Elems[lo:hi] {
				if err := e.Update(o.Sol); err != nil {
					return err
				}
			}
			return nil
		})
	}
	for _, e := range o.Elems {
		err = e.Update(o.Sol)
		if err != nil {
			return
		}
	}
	return
}

// foreachChunk runs fcn over Nwkrs contiguous chunks of elements, one
// goroutine per chunk, and returns the first error found
func (o *Domain) foreachChunk(fcn func(k, lo, hi int) error) error {
	var wg sync.WaitGroup
	errs := make([]error, o.Nwkrs)
	n := len(o.Elems)
	for k := 0; k < o.Nwkrs; k++ {
		lo := k * n / o.Nwkrs
		hi := (k + 1) * n / o.Nwkrs
		wg.Add(1)
		go func(k, lo, hi int) {
			defer wg.Done()
			errs[k] = fcn(k, lo, hi)
		}(k, lo, hi)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// backup and restore //////////////////////////////////////////////////////////////////////////////

// Reset clears the solution vectors
func (o *Solution) Reset() {
	o.T = 0
	for i := 0; i < len(o.Y); i++ {
		o.Y[i] = 0
		o.ΔY[i] = 0
	}
}

// Backup saves a copy of the solution and of the internal variables
func (o *Domain) Backup() (err error) {
	if o.bkpSol == nil {
		o.bkpSol = new(Solution)
		o.bkpSol.Y = make([]float64, o.Ny)
		o.bkpSol.ΔY = make([]float64, o.Ny)
		o.bkpSol.Nfree = o.Nfree
	}
	o.bkpSol.T = o.Sol.T
	copy(o.bkpSol.Y, o.Sol.Y)
	copy(o.bkpSol.ΔY, o.Sol.ΔY)
	for _, e := range o.Elems {
		err = e.BackupIvs()
		if err != nil {
			return
		}
	}
	return
}

// Restore restores the solution and the internal variables from the backup
func (o *Domain) Restore() (err error) {
	o.Sol.T = o.bkpSol.T
	copy(o.Sol.Y, o.bkpSol.Y)
	copy(o.Sol.ΔY, o.bkpSol.ΔY)
	for _, e := range o.Elems {
		err = e.RestoreIvs()
		if err != nil {
			return
		}
	}
	return
}
