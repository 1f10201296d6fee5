// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the membrane finite element and the quasi-static
// nonlinear (Newton-Raphson) solution procedure with load-step bisection
package fem

import (
	"time"

	"github.com/cpmech/gomem/inp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// DebugKb_t defines a callback to debug the global Jacobian matrix
type DebugKb_t func(d *Domain, it int)

// FEM holds all data for a simulation using the finite element method. Each
// FEM value owns its domains, solution vectors and solver: two values never
// share mutable state, so runs are repeatable and independent
type FEM struct {
	Sim     *inp.Simulation // simulation data
	Summary *Summary        // summary structure
	Domains []*Domain       // all domains
	Solver  FEsolver        // finite element method solver; e.g. implicit
	DebugKb DebugKb_t       // debug Kb callback function
	ShowMsg bool            // show messages
}

// NewFEM returns a new FEM structure
//  Input:
//   simfilepath -- simulation (.sim) filename including full path
//   alias       -- word to be appended to simulation key; e.g. when running multiple FE solutions
//   erasePrev   -- erase previous results files
//   saveSummary -- save summary and output files
//   readSummary -- read summary of previous simulation
//   verbose     -- show messages
func NewFEM(simfilepath, alias string, erasePrev, saveSummary, readSummary, verbose bool, goroutineId int) (o *FEM) {

	// new FEM object
	o = new(FEM)

	// read input data
	o.Sim = inp.ReadSim(simfilepath, alias, erasePrev, goroutineId)
	if o.Sim == nil {
		chk.Panic("cannot read simulation input data")
	}
	o.ShowMsg = verbose

	// summary
	if saveSummary || readSummary {
		o.Summary = new(Summary)
	}
	if readSummary {
		err := o.Summary.Read(o.Sim.DirOut, o.Sim.Key, o.Sim.EncType)
		if err != nil {
			chk.Panic("cannot read summary:\n%v", err)
		}
	}

	// allocate domains and solver
	err := o.alloc()
	if err != nil {
		chk.Panic("cannot allocate domains and solver:\n%v", err)
	}
	return
}

// NewFEMFromSim returns a new FEM structure from a simulation assembled in
// code (see inp.Simulation.Init)
func NewFEMFromSim(sim *inp.Simulation, verbose bool) (o *FEM, err error) {
	o = new(FEM)
	o.Sim = sim
	o.ShowMsg = verbose
	err = o.alloc()
	return
}

// alloc allocates domains and solver
func (o *FEM) alloc() (err error) {

	// allocate domains
	o.Domains, err = NewDomains(o.Sim)
	if err != nil {
		return
	}

	// allocate solver
	alloc, ok := solverallocators[o.Sim.Solver.Type]
	if !ok {
		return chk.Err("cannot find solver type named %q", o.Sim.Solver.Type)
	}
	o.Solver = alloc(o.Domains, o.Summary, o.DebugKb, o.ShowMsg)
	return
}

// Run runs the FE simulation: all (non-skipped) stages in order
func (o *FEM) Run() (err error) {

	// exit commands
	cputime := time.Now()
	defer func() { err = o.onexit(cputime, err) }()

	// the solver needs the debug callback set after NewFEM
	o.passDebugKb()

	// loop over stages
	for stgidx, stg := range o.Sim.Stages {

		// skip stage?
		if stg.Skip {
			continue
		}

		// set stage
		err = o.SetStage(stgidx)
		if err != nil {
			return
		}

		// initialise solution vectors
		err = o.ZeroStage(stgidx, true)
		if err != nil {
			return
		}

		// message
		if o.ShowMsg {
			io.Pf("> Running FE solver (stage %d)\n", stgidx)
		}

		// time loop
		err = o.Solver.Run(stg)
		if err != nil {
			return
		}
	}
	return
}

// SetStage sets stage for all domains
func (o *FEM) SetStage(stgidx int) (err error) {
	if o.ShowMsg {
		io.Pf("> Setting stage %d\n", stgidx)
	}
	for _, d := range o.Domains {
		err = d.SetStage(stgidx)
		if err != nil {
			return
		}
	}
	return
}

// ZeroStage zeroes the solution variables and initialises the internal values
// in all domains for all nodes and all elements
func (o *FEM) ZeroStage(stgidx int, zeroSol bool) (err error) {
	for _, d := range o.Domains {
		err = d.SetIniVals(stgidx, zeroSol)
		if err != nil {
			return
		}
	}
	return
}

// SolveOneStage solves one stage that was already set
func (o *FEM) SolveOneStage(stgidx int, zerostage bool) (err error) {

	// exit commands
	cputime := time.Now()
	defer func() { err = o.onexit(cputime, err) }()

	// zero stage
	if zerostage {
		err = o.ZeroStage(stgidx, true)
		if err != nil {
			return
		}
	}

	// run
	o.passDebugKb()
	err = o.Solver.Run(o.Sim.Stages[stgidx])
	return
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////

// passDebugKb hands the debug callback to the implicit solver
func (o *FEM) passDebugKb() {
	if s, ok := o.Solver.(*SolverImplicit); ok {
		s.dbgKb = o.DebugKb
	}
}

// onexit cleans resources, prints the final message and saves the summary
func (o *FEM) onexit(cputime time.Time, prevErr error) (err error) {

	// clean resources
	for _, d := range o.Domains {
		d.Clean()
	}

	// show final message
	if o.ShowMsg {
		if prevErr == nil {
			io.PfGreen("> Success\n")
			io.Pf("> CPU time = %v\n", time.Now().Sub(cputime))
		} else {
			io.PfRed("> Failed\n")
		}
	}

	// save summary
	if o.Summary != nil {
		err = o.Summary.Save(o.Sim.DirOut, o.Sim.Key, o.Sim.EncType, false)
		if err != nil {
			return
		}
	}

	// keep the previous error, if any
	if prevErr != nil {
		err = prevErr
	}
	return
}
