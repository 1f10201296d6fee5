// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"fmt"
	"math"

	"github.com/cpmech/gosl/la"
)

// Kinematics holds the deformation measures of a membrane at one integration
// point. All components are expressed in the convected frame; Greek indices
// run over the two surface coordinates. The in-plane components of the right
// Cauchy-Green tensor coincide with the current surface metric
type Kinematics struct {
	Acov [][]float64 // A_αβ: covariant reference metric [2][2]
	Acnt [][]float64 // A^αβ: contravariant reference metric [2][2]
	Ccov [][]float64 // a_αβ: covariant current metric [2][2]
	Ccnt [][]float64 // ã^αβ: contravariant current metric [2][2]
	JA   float64     // jA: reference area jacobian = sqrt(det A)
	Ja   float64     // ja: current area jacobian = sqrt(det a)
}

// NewKinematics allocates a kinematics structure
func NewKinematics() *Kinematics {
	return &Kinematics{
		Acov: la.MatAlloc(2, 2),
		Acnt: la.MatAlloc(2, 2),
		Ccov: la.MatAlloc(2, 2),
		Ccnt: la.MatAlloc(2, 2),
	}
}

// SetRef copies the covariant reference metric and computes its inverse and
// the reference area jacobian
func (o *Kinematics) SetRef(metric [][]float64) error {
	return o.set(o.Acov, o.Acnt, &o.JA, metric)
}

// SetCur copies the covariant current metric and computes its inverse and
// the current area jacobian
func (o *Kinematics) SetCur(metric [][]float64) error {
	return o.set(o.Ccov, o.Ccnt, &o.Ja, metric)
}

// AreaStretch returns the ratio of current to reference differential areas
func (o *Kinematics) AreaStretch() float64 {
	return o.Ja / o.JA
}

// set copies cov, inverts it into cnt and stores the area jacobian in jac
func (o *Kinematics) set(cov, cnt [][]float64, jac *float64, metric [][]float64) error {
	la.MatCopy(cov, 1, metric)
	det := cov[0][0]*cov[1][1] - cov[0][1]*cov[1][0]
	if det < 1e-14 {
		return fmt.Errorf("%w: determinant of surface metric is non-positive (det=%g)", ErrNonPhysical, det)
	}
	cnt[0][0] = cov[1][1] / det
	cnt[1][1] = cov[0][0] / det
	cnt[0][1] = -cov[0][1] / det
	cnt[1][0] = -cov[1][0] / det
	*jac = math.Sqrt(det)
	return nil
}
