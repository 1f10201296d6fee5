// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"

	"github.com/cpmech/gomem/inp"
)

// errors of the nonlinear solution process
var (
	// ErrDiverged indicates a load increment whose Newton iterations did not
	// converge (residual or correction growing, or NmaxIt exhausted)
	ErrDiverged = errors.New("fem: iterations diverged")

	// ErrRunFailed indicates that the solver gave up: the bisection retries
	// were exhausted or the step size underflowed. The last converged
	// configuration is retained in the domains
	ErrRunFailed = errors.New("fem: run failed")
)

// FEsolver defines the interface for finite element solvers
type FEsolver interface {
	Run(stg *inp.Stage) error
}

// solverallocators holds all available solvers; solverType => allocator
var solverallocators = make(map[string]func(doms []*Domain, sum *Summary, dbg DebugKb_t, showmsg bool) FEsolver)
