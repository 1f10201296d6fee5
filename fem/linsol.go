// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"fmt"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"
)

// ErrSingular indicates a singular (or numerically rank-deficient) stiffness
// matrix; e.g. a membrane with insufficient constraints
var ErrSingular = errors.New("fem: stiffness matrix is singular")

// LinearSolver solves the linear system Kb * x = b assembled as a triplet.
// Init is called once per stage; Fact once per Jacobian assembly; Solve
// possibly many times per factorisation
type LinearSolver interface {
	Init(kb *la.Triplet, symmetric, verbose, timing bool) error
	Fact() error
	Solve(x, b []float64) error
	Clean()
}

// GetLinSolver returns a linear solver by name: "dense" (gonum LU; default)
// or "umfpack" (sparse)
func GetLinSolver(name string) (LinearSolver, error) {
	switch name {
	case "", "dense":
		return new(DenseSolver), nil
	case "umfpack":
		return new(SparseSolver), nil
	}
	return nil, chk.Err("cannot find linear solver named %q", name)
}

// DenseSolver factorises the assembled stiffness with a dense LU
// decomposition. Suited to the moderately sized systems of membrane analyses;
// handles the unsymmetric matrices caused by follower pressure loads
type DenseSolver struct {
	kb *la.Triplet
	a  *mat.Dense
	lu mat.LU
}

// Init stores the triplet reference
func (o *DenseSolver) Init(kb *la.Triplet, symmetric, verbose, timing bool) error {
	o.kb = kb
	return nil
}

// Fact converts the triplet to dense format and factorises it
func (o *DenseSolver) Fact() error {
	d := o.kb.ToMatrix(nil).ToDense()
	n := len(d)
	if o.a == nil {
		o.a = mat.NewDense(n, n, nil)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			o.a.Set(i, j, d[i][j])
		}
	}
	o.lu.Factorize(o.a)
	return nil
}

// Solve solves Kb * x = b using the last factorisation
func (o *DenseSolver) Solve(x, b []float64) error {
	n := len(x)
	xv := mat.NewVecDense(n, nil)
	bv := mat.NewVecDense(n, b)
	if err := o.lu.SolveVecTo(xv, false, bv); err != nil {
		return fmt.Errorf("%w: %v", ErrSingular, err)
	}
	for i := 0; i < n; i++ {
		x[i] = xv.AtVec(i)
	}
	return nil
}

// Clean releases resources
func (o *DenseSolver) Clean() {}

// SparseSolver wraps the sparse solver interface of gosl (umfpack)
type SparseSolver struct {
	kb          *la.Triplet
	ls          la.LinSol
	symmetric   bool
	verbose     bool
	timing      bool
	initialised bool
}

// Init stores the triplet reference and the solver options
func (o *SparseSolver) Init(kb *la.Triplet, symmetric, verbose, timing bool) error {
	o.kb = kb
	o.ls = la.GetSolver("umfpack")
	o.symmetric = symmetric
	o.verbose = verbose
	o.timing = timing
	return nil
}

// Fact performs the numeric factorisation. The symbolic analysis happens on
// the first call, after the triplet carries its definitive sparsity pattern
func (o *SparseSolver) Fact() error {
	if !o.initialised {
		if err := o.ls.InitR(o.kb, o.symmetric, o.verbose, o.timing); err != nil {
			return chk.Err("cannot initialise sparse solver:\n%v", err)
		}
		o.initialised = true
	}
	if err := o.ls.Fact(); err != nil {
		return fmt.Errorf("%w: %v", ErrSingular, err)
	}
	return nil
}

// Solve solves Kb * x = b using the last factorisation
func (o *SparseSolver) Solve(x, b []float64) error {
	return o.ls.SolveR(x, b, false)
}

// Clean releases resources
func (o *SparseSolver) Clean() {
	if o.initialised {
		o.ls.Clean()
	}
}

// MatrixRank returns the numerical rank of the assembled stiffness via a
// singular value decomposition: the number of singular values above
// tol * σ_max. Used in verifications
func MatrixRank(kb *la.Triplet, tol float64) int {
	d := kb.ToMatrix(nil).ToDense()
	n := len(d)
	if n == 0 {
		return 0
	}
	a := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a.Set(i, j, d[i][j])
		}
	}
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDNone) {
		return -1
	}
	vals := svd.Values(nil)
	rank := 0
	for _, v := range vals {
		if v > tol*vals[0] {
			rank += 1
		}
	}
	return rank
}
