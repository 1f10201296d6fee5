// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msolid implements hyperelastic material models for thin membranes
// under plane stress. Stresses are second Piola-Kirchhoff components and
// moduli are the condensed tangent C^αβγδ = 2 ∂S^αβ/∂C_γδ, both expressed as
// contravariant components in the convected frame given by Kinematics.
package msolid

import (
	"errors"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// ErrNonPhysical indicates a deformation state outside the physical range of
// the material; e.g. a non-positive volumetric ratio or a thickness stretch
// that cannot satisfy the plane-stress condition
var ErrNonPhysical = errors.New("msolid: non-physical deformation state")

// Model defines the interface for membrane material models
type Model interface {
	Init(prms fun.Prms) error     // initialises model with parameters
	GetPrms() fun.Prms            // gets (an example) of parameters
	InitIntVars() (*State, error) // initialises AND allocates internal (secondary) variables
}

// Membrane defines hyperelastic models written in terms of the surface
// metrics of a membrane. Update solves the plane-stress condition S³³ = 0
// for the thickness stretch and stores stress and stretch in the state;
// CalcD computes the condensed moduli consistent with Update
type Membrane interface {
	Update(s *State, k *Kinematics) error                   // updates stresses for the current metrics
	CalcD(D [][][][]float64, s *State, k *Kinematics) error // computes D[2][2][2][2] = 2 ∂S/∂C after condensation
}

// New returns new membrane model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'msolid' database", name)
	}
	return allocator(), nil
}

// allocators holds all available material models; modelname => allocator
var allocators = map[string]func() Model{}

// _models holds pointers to all existent models; key = simfnk + "_" + matname
var _models = map[string]Model{}

// GetModel returns (existent or new) material model
//  simfnk    -- unique simulation filename key
//  matname   -- name of material
//  modelname -- model name
//  getnew    -- force a new allocation; i.e. do not use any model found in database
//  Note: returns nil on errors
func GetModel(simfnk, matname, modelname string, getnew bool) Model {

	// get new model, regardless of database
	if getnew {
		allocator, ok := allocators[modelname]
		if !ok {
			return nil
		}
		return allocator()
	}

	// search database
	key := simfnk + "_" + matname
	if model, ok := _models[key]; ok {
		return model
	}

	// if not found, get new
	allocator, ok := allocators[modelname]
	if !ok {
		return nil
	}
	model := allocator()
	_models[key] = model
	return model
}
