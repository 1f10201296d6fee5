// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gomem/inp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/la"
)

// Kassem accumulates global stiffness entries during assembly. *la.Triplet
// satisfies this interface; per-worker buffers used by the parallel assembly
// satisfy it as well
type Kassem interface {
	Put(i, j int, v float64)
}

// OutIpData is an auxiliary structure to transfer data from integration points (IP) to output routines.
type OutIpData struct {
	Eid  int                                    // id of element that owns this ip
	X    []float64                              // coordinates
	Calc func(sol *Solution) map[string]float64 // [nkeys] function to calculate secondary values
}

// NaturalBc holds a natural boundary condition applied over the surface of a
// membrane element; e.g. "qn" (follower pressure) or "qt" (dead transverse load)
type NaturalBc struct {
	Key   string   // key; e.g. "qn", "qt"
	Fcn   fun.Func // function of time
	Extra string   // extra information
}

// Elem defines what elements must calculate
type Elem interface {

	// information and initialisation
	Id() int                          // returns the cell Id
	SetEqs(eqs [][]int) (err error)   // set equations
	SetIniIvs(sol *Solution) error    // sets initial internal variables and the reference configuration
	BackupIvs() (err error)           // create copy of internal variables
	RestoreIvs() (err error)          // restore internal variables from copies

	// conditions (natural BCs and element's)
	SetEleConds(key string, f fun.Func, extra string) (err error) // set element conditions

	// called for each iteration
	AddToRhs(fb []float64, sol *Solution) (err error)         // adds -R to global residual vector fb
	AddToKb(Kb Kassem, sol *Solution, firstIt bool) (err error) // adds element K to global Jacobian matrix Kb
	Update(sol *Solution) (err error)                          // update secondary variables from the current primary ones

	// reading and writing of element data
	Encode(enc Encoder) (err error) // encodes internal variables
	Decode(dec Decoder) (err error) // decodes internal variables

	// output
	Ipoints() (coords [][]float64)   // returns the real coordinates of integration points [nip][3]
	OutIpsData() (data []*OutIpData) // returns data from all integration points for output
}

// Info holds all information required to set a simulation stage
type Info struct {
	Dofs [][]string        // solution variables PER NODE. ex for 3 nodes: [["ux","uy","uz"], ...]
	Y2F  map[string]string // maps "y" keys to "f" keys. ex: "ux" => "fx"
}

// GetElemInfo returns information about elements/formulations
func GetElemInfo(cell *inp.Cell, reg *inp.Region, sim *inp.Simulation) (info *Info, err error) {
	edat := reg.Etag2data(cell.Tag)
	if edat == nil {
		err = chk.Err("cannot get data for element {tag=%d, id=%d}", cell.Tag, cell.Id)
		return
	}
	infogetter, ok := infogetters[edat.Type]
	if !ok {
		err = chk.Err("cannot get info for element {type=%q, tag=%d, id=%d}", edat.Type, cell.Tag, cell.Id)
		return
	}
	info = infogetter(sim, cell, edat)
	if info == nil {
		err = chk.Err("info for element {type=%q, tag=%d, id=%d} is not available", edat.Type, cell.Tag, cell.Id)
	}
	return
}

// NewElem returns a new element from its type; e.g. "membrane"
func NewElem(cell *inp.Cell, reg *inp.Region, sim *inp.Simulation) (ele Elem, err error) {
	edat := reg.Etag2data(cell.Tag)
	if edat == nil {
		err = chk.Err("cannot get data for element {tag=%d, id=%d}", cell.Tag, cell.Id)
		return
	}
	allocator, ok := eallocators[edat.Type]
	if !ok {
		err = chk.Err("cannot get allocator for element {type=%q, tag=%d, id=%d}", edat.Type, cell.Tag, cell.Id)
		return
	}
	x := BuildCoordsMatrix(cell, reg.Msh)
	ele = allocator(sim, cell, edat, x)
	if ele == nil {
		err = chk.Err("element {type=%q, tag=%d, id=%d} is not available", edat.Type, cell.Tag, cell.Id)
	}
	return
}

// BuildCoordsMatrix returns the coordinate matrix of a particular Cell
func BuildCoordsMatrix(cell *inp.Cell, msh *inp.Mesh) (x [][]float64) {
	x = la.MatAlloc(msh.Ndim, len(cell.Verts))
	for i := 0; i < msh.Ndim; i++ {
		for j, v := range cell.Verts {
			x[i][j] = msh.Verts[v].C[i]
		}
	}
	return
}

// infogetters holds all available formulations/info; elemType => infogetter
var infogetters = make(map[string]func(sim *inp.Simulation, cell *inp.Cell, edat *inp.ElemData) *Info)

// eallocators holds all available elements; elemType => eallocator
var eallocators = make(map[string]func(sim *inp.Simulation, cell *inp.Cell, edat *inp.ElemData, x [][]float64) Elem)
