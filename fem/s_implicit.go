// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"fmt"

	"github.com/cpmech/gomem/inp"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// solverState labels the states of the implicit solver state machine
type solverState int

const (
	stateInitialised solverState = iota
	stateIncrementing
	stateIterating
	stateConverged
	stateDiverged
	stateSolved
	stateFailed
)

// String returns the name of a solver state
func (s solverState) String() string {
	switch s {
	case stateInitialised:
		return "initialised"
	case stateIncrementing:
		return "incrementing"
	case stateIterating:
		return "iterating"
	case stateConverged:
		return "converged"
	case stateDiverged:
		return "diverged"
	case stateSolved:
		return "solved"
	case stateFailed:
		return "failed"
	}
	return "unknown"
}

// SolverImplicit solves the quasi-static FEM problem using an implicit
// (Newton-Raphson) procedure, organised as an explicit state machine:
//
//	initialised → incrementing → iterating → converged → incrementing ...
//	                      ↑            ↓          ↓
//	                      └──────── diverged   solved
//	                        (bisection retry)
//	                                   ↓
//	                                failed
//
// A diverged increment is retried with the step size halved (when DvgCtrl is
// on), bounded by NdvgMax retries and by DtMin
type SolverImplicit struct {
	doms    []*Domain
	sum     *Summary
	dbgKb   DebugKb_t
	showmsg bool
	state   solverState
}

// set factory
func init() {
	solverallocators["imp"] = func(doms []*Domain, sum *Summary, dbg DebugKb_t, showmsg bool) FEsolver {
		return &SolverImplicit{doms: doms, sum: sum, dbgKb: dbg, showmsg: showmsg}
	}
}

// Run solves one stage by stepping the load factor (pseudo time) from the
// current time to stg.Control.Tf
func (o *SolverImplicit) Run(stg *inp.Stage) (err error) {

	// auxiliary
	sv := &o.doms[0].Sim.Solver
	md := 1.0    // time step multiplier for the bisection retries
	ndiverg := 0 // number of consecutive diverged increments
	var cause error

	// time control
	t := o.doms[0].Sol.T
	tf := stg.Control.Tf
	tout := t + stg.Control.DtOut
	tidx := 0
	var Δt float64
	var lasttimestep bool

	// state machine loop
	o.state = stateInitialised
	for {
		switch o.state {

		case stateInitialised:
			o.state = stateIncrementing

		case stateIncrementing:

			// time increment
			lasttimestep = false
			Δt = stg.Control.DtFunc.F(t, nil) * md
			if t+Δt >= tf-1e-14 {
				Δt = tf - t
				lasttimestep = true
			}
			if Δt < sv.DtMin {
				if md < 1 {
					o.state = stateFailed
					cause = fmt.Errorf("%w: time step underflow: Δt=%g < %g", ErrRunFailed, Δt, sv.DtMin)
					continue
				}
				o.state = stateSolved
				continue
			}

			// backup solution in case the increment has to be retried
			if sv.DvgCtrl {
				for _, d := range o.doms {
					if err = d.Backup(); err != nil {
						return
					}
				}
			}

			// time update
			t += Δt
			for _, d := range o.doms {
				d.Sol.T = t
			}
			o.state = stateIterating

		case stateIterating:

			// run iterations for all domains
			diverged := false
			for _, d := range o.doms {
				var conv bool
				conv, err = o.iterate(t, d)
				if err != nil {
					// assembly/update errors (non-physical states, degenerate
					// elements, singular systems) feed the retry policy
					diverged = true
					cause = err
					err = nil
					break
				}
				if !conv {
					diverged = true
					cause = fmt.Errorf("%w: no convergence within %d iterations (t=%g)", ErrDiverged, sv.NmaxIt, t)
					break
				}
			}
			if diverged {
				o.state = stateDiverged
				continue
			}
			o.state = stateConverged

		case stateConverged:

			// reset divergence control
			ndiverg = 0
			md = 1.0

			// output
			if t >= tout-1e-14 || lasttimestep {
				if o.sum != nil {
					o.sum.OutTimes = append(o.sum.OutTimes, t)
					for _, d := range o.doms {
						if err = d.Save(tidx, o.showmsg); err != nil {
							return
						}
					}
				}
				tout += stg.Control.DtOut
				tidx += 1
			}

			// done?
			if lasttimestep {
				o.state = stateSolved
				continue
			}
			o.state = stateIncrementing

		case stateDiverged:

			// no divergence control: report the cause
			if !sv.DvgCtrl {
				if cause == nil {
					cause = ErrDiverged
				}
				return cause
			}

			// too many consecutive retries: give up, keeping the last
			// converged configuration
			ndiverg += 1
			if ndiverg >= sv.NdvgMax {
				for _, d := range o.doms {
					if err = d.Restore(); err != nil {
						return
					}
				}
				o.state = stateFailed
				cause = fmt.Errorf("%w: continuous divergence after %d retries: %v", ErrRunFailed, ndiverg, cause)
				continue
			}

			// bisection: restore and retry with half the step
			if o.showmsg {
				io.Pfred(". . . increment diverging (%2d) . . .\n", ndiverg)
			}
			for _, d := range o.doms {
				if err = d.Restore(); err != nil {
					return
				}
			}
			t -= Δt
			for _, d := range o.doms {
				d.Sol.T = t
			}
			md *= 0.5
			o.state = stateIncrementing

		case stateSolved:
			return nil

		case stateFailed:
			return cause
		}
	}
}

// iterate solves the nonlinear problem of one load increment for one domain
func (o *SolverImplicit) iterate(t float64, d *Domain) (converged bool, err error) {

	// auxiliary
	sv := &d.Sim.Solver

	// zero accumulated increments and apply the prescribed values at t
	la.VecFill(d.Sol.ΔY, 0)
	d.ApplyEssenBcs(t)

	// update secondary variables w.r.t the prescribed configuration, so the
	// first residual is consistent with Y
	err = d.UpdateElems()
	if err != nil {
		return
	}

	// auxiliary variables
	var it int
	var largFb, largFb0, Lδu float64
	var prevFb, prevLδu float64

	// message
	if sv.ShowR {
		io.Pf("\n%13s%4s%23s%23s\n", "t", "it", "largFb", "Lδu")
		defer func() {
			io.Pf("%13.6e%4d%23.15e%23.15e\n", t, it, largFb, Lδu)
		}()
	}

	// iterations
	for it = 0; it < sv.NmaxIt; it++ {

		// assemble residual vector (fb = -R); prescribed rows carry reactions
		err = d.AssembleFb(t)
		if err != nil {
			return
		}

		// everything prescribed: the state is fully determined by the
		// essential conditions applied above
		if d.Nfree == 0 {
			converged = true
			break
		}

		// largest absolute component of fb (free block)
		largFb = la.VecLargest(d.Fb[:d.Nfree], 1)

		// residual history
		if o.sum != nil {
			o.sum.Resids.Append(it == 0, largFb)
		}

		// check convergence on fb
		if it == 0 {
			largFb0 = largFb
		} else {
			if largFb < sv.FbTol*largFb0 { // converged on fb
				converged = true
				break
			}
			if largFb < sv.FbMin { // converged with smallest value of fb
				converged = true
				break
			}
		}

		// check divergence on fb
		if it > 1 && sv.DvgCtrl && largFb > prevFb {
			return false, nil
		}
		prevFb = largFb

		// assemble and factorise Jacobian matrix
		if it == 0 || !sv.CteTg {
			err = d.AssembleKb(it == 0)
			if err != nil {
				return
			}
			if o.dbgKb != nil {
				o.dbgKb(d, it)
			}
			if d.InitLSol {
				err = d.LinSol.Init(d.Kb, d.Sim.LinSol.Symmetric, d.Sim.LinSol.Verbose, d.Sim.LinSol.Timing)
				if err != nil {
					return
				}
				d.InitLSol = false
			}
			err = d.LinSol.Fact()
			if err != nil {
				return
			}
		}

		// solve for the correction δy
		err = d.LinSol.Solve(d.Wb, d.Fb[:d.Nfree])
		if err != nil {
			return
		}

		// update free primary variables
		for i := 0; i < d.Nfree; i++ {
			d.Sol.Y[i] += d.Wb[i]
			d.Sol.ΔY[i] += d.Wb[i]
		}

		// update secondary variables
		err = d.UpdateElems()
		if err != nil {
			return
		}

		// compute RMS norm of correction and check convergence on δu
		Lδu = la.VecRmsErr(d.Wb, sv.Atol, sv.Rtol, d.Sol.Y[:d.Nfree])

		// message
		if sv.ShowR {
			io.Pf("%13.6e%4d%23.15e%23.15e\n", t, it, largFb, Lδu)
		}

		// stop if converged on δu
		if Lδu < sv.Itol {
			converged = true
			break
		}

		// check divergence on δu
		if it > 1 && sv.DvgCtrl && Lδu > prevLδu {
			return false, nil
		}
		prevLδu = Lδu
	}

	// refresh residual so the prescribed rows carry up-to-date reactions
	if converged {
		err = d.AssembleFb(t)
		if err != nil {
			return
		}
		if o.sum != nil {
			o.sum.Iterations = append(o.sum.Iterations, it)
		}
	}
	return
}
