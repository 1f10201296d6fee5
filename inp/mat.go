// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"path/filepath"

	"github.com/cpmech/gomem/msolid"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
)

// Material holds material data
type Material struct {

	// input
	Name  string   `json:"name"`  // name of material
	Model string   `json:"model"` // name of model; e.g. "nhk", "nhk2d"
	Extra string   `json:"extra"` // extra information about this material
	Prms  fun.Prms `json:"prms"`  // prms holds all model parameters for this material

	// derived
	Mdl msolid.Model // pointer to allocated model
}

// MatsData holds materials
type MatsData []*Material

// MatDb implements a database of materials
type MatDb struct {

	// input
	Functions FuncsData `json:"functions"` // all functions
	Materials MatsData  `json:"materials"` // all materials
}

// ReadMat reads all materials data from a .mat JSON file
func ReadMat(dir, fn string) (mdb *MatDb, err error) {

	// new database
	mdb = new(MatDb)

	// read file
	fnp := filepath.Join(dir, fn)
	b, err := io.ReadFile(fnp)
	if err != nil {
		return nil, chk.Err("ReadMat: cannot read materials file %q", fnp)
	}

	// decode
	if err = json.Unmarshal(b, mdb); err != nil {
		return nil, chk.Err("ReadMat: cannot unmarshal materials file %q:\n%v", fnp, err)
	}

	// allocate and initialise models
	if err = mdb.Init(); err != nil {
		return nil, err
	}
	return
}

// Init allocates the material models from the msolid factory and initialises
// them with their parameters. It is called by ReadMat after decoding and may
// be called directly on databases assembled in code
func (o *MatDb) Init() (err error) {
	for _, m := range o.Materials {
		m.Mdl, err = msolid.New(m.Model)
		if err != nil {
			return chk.Err("cannot allocate model %q for material %q:\n%v", m.Model, m.Name, err)
		}
		if err = m.Mdl.Init(m.Prms); err != nil {
			return chk.Err("cannot initialise model %q for material %q:\n%v", m.Model, m.Name, err)
		}
	}
	return
}

// Get returns a material
//  Note: returns nil if not found
func (o MatDb) Get(name string) *Material {
	for _, mat := range o.Materials {
		if mat.Name == name {
			return mat
		}
	}
	return nil
}

// String prints one material
func (o *Material) String() string {
	fun.G_extraindent = "  "
	fun.G_openbrackets = false
	return io.Sf("    {\n      \"name\"  : %q,\n      \"model\" : %q,\n      \"extra\" : %q,\n      \"prms\"  : [\n%v\n    }", o.Name, o.Model, o.Extra, o.Prms)
}

// String prints materials
func (o MatsData) String() string {
	l := "  \"materials\" : [\n"
	for i, m := range o {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("%v", m)
	}
	l += "\n  ]"
	return l
}

// String outputs all materials
func (o MatDb) String() string {
	return io.Sf("{\n%v,\n%v\n}", o.Functions, o.Materials)
}
