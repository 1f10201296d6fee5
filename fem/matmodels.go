// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gomem/inp"
	"github.com/cpmech/gomem/msolid"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// GetAndInitMembraneModel gets and initialises a membrane material model from
// the materials database. Each element gets its own allocation because the
// models carry scratchpads and assembly may run elements concurrently
func GetAndInitMembraneModel(mdb *inp.MatDb, matname, simfnk string) (mdl msolid.Model, mem msolid.Membrane, prms fun.Prms, err error) {

	// material data
	matdata := mdb.Get(matname)
	if matdata == nil {
		err = chk.Err("materials database failed on getting %q material", matname)
		return
	}

	// allocate and initialise model
	mdl = msolid.GetModel(simfnk, matname, matdata.Model, true)
	if mdl == nil {
		err = chk.Err("cannot find membrane model named %q", matdata.Model)
		return
	}
	err = mdl.Init(matdata.Prms)
	if err != nil {
		err = chk.Err("membrane model initialisation failed:\n%v", err)
		return
	}

	// membrane capability
	var ok bool
	mem, ok = mdl.(msolid.Membrane)
	if !ok {
		err = chk.Err("model %q does not implement the membrane stress update", matdata.Model)
		return
	}

	// results
	prms = matdata.Prms
	return
}
