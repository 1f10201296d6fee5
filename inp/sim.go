// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from (.sim), (.msh) and (.mat)
// JSON files
package inp

import (
	"encoding/json"
	goio "io"
	"math"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Data holds global data for simulations
type Data struct {
	Desc    string `json:"desc"`    // description of simulation
	Matfile string `json:"matfile"` // materials file path
	DirOut  string `json:"dirout"`  // directory for output; e.g. /tmp/gomem
	Encoder string `json:"encoder"` // encoder name; e.g. "json"
	Debug   bool   `json:"debug"`   // activate debugging
}

// LinSolData holds data for linear solvers
type LinSolData struct {
	Name      string `json:"name"`      // "dense" or "umfpack"
	Symmetric bool   `json:"symmetric"` // use symmetric solver
	Verbose   bool   `json:"verbose"`   // verbose?
	Timing    bool   `json:"timing"`    // show timing statistics
}

// SolverData holds FEM solver data
type SolverData struct {

	// types
	Type  string `json:"type"`  // nonlinear solver type; e.g. "imp"
	Nwkrs int    `json:"nwkrs"` // number of goroutines for element assembly

	// nonlinear solver
	NmaxIt  int     `json:"nmaxit"`  // number of max iterations
	Atol    float64 `json:"atol"`    // absolute tolerance
	Rtol    float64 `json:"rtol"`    // relative tolerance
	FbTol   float64 `json:"fbtol"`   // tolerance for convergence on fb
	FbMin   float64 `json:"fbmin"`   // minimum value of fb
	DvgCtrl bool    `json:"dvgctrl"` // use divergence control
	NdvgMax int     `json:"ndvgmax"` // max number of continued divergence
	CteTg   bool    `json:"ctetg"`   // use constant tangent (modified Newton) during iterations
	ShowR   bool    `json:"showr"`   // show residual

	// time stepping
	DtMin float64 `json:"dtmin"` // smallest time step allowed by the bisection retries

	// constants
	Eps float64 `json:"eps"` // smallest number satisfying 1.0 + ϵ > 1.0

	// derived
	Itol float64 // iterations tolerance
}

// ElemData holds element data
type ElemData struct {
	Tag   int    `json:"tag"`   // tag of element
	Mat   string `json:"mat"`   // material name
	Type  string `json:"type"`  // type of element; e.g. "membrane"
	Nip   int    `json:"nip"`   // number of integration points; 0 => use default
	Extra string `json:"extra"` // extra flags (in keycode format); e.g. "!thick:0.2"
}

// Region holds region data
type Region struct {

	// input data
	Desc      string      `json:"desc"`      // description of region
	Mshfile   string      `json:"mshfile"`   // file path of file with mesh data
	ElemsData []*ElemData `json:"elemsdata"` // list of elements data
	AbsPath   bool        `json:"abspath"`   // mesh filename is given in absolute path

	// derived
	Msh      *Mesh       // the mesh
	etag2idx map[int]int // maps element tag to element index in ElemsData slice
}

// NodeBc holds node boundary condition
type NodeBc struct {
	Tag   int      `json:"tag"`   // tag of node
	Keys  []string `json:"keys"`  // key indicating type of bcs. ex: ux, uy, uz, fx, fy, fz
	Funcs []string `json:"funcs"` // name of function. ex: zero, load, myfunction1, etc.
	Extra string   `json:"extra"` // extra information
}

// EleCond holds element condition
type EleCond struct {
	Tag   int      `json:"tag"`   // tag of cell/element
	Keys  []string `json:"keys"`  // key indicating type of condition. ex: "qn" (follower pressure), "qt" (dead transverse load)
	Funcs []string `json:"funcs"` // name of function. ex: press, none
	Extra string   `json:"extra"` // extra information
}

// TimeControl holds data for defining the load stepping
type TimeControl struct {
	Tf    float64 `json:"tf"`    // final (pseudo) time
	Dt    float64 `json:"dt"`    // time step size (if constant)
	DtOut float64 `json:"dtout"` // time step size for output
	DtFcn string  `json:"dtfcn"` // time step size (function name)

	// derived
	DtFunc fun.Func // time step function
}

// Stage holds stage data
type Stage struct {

	// main
	Desc string `json:"desc"` // description of simulation stage
	Skip bool   `json:"skip"` // do not run stage

	// conditions
	EleConds []*EleCond `json:"eleconds"` // element conditions; e.g. follower pressure
	NodeBcs  []*NodeBc  `json:"nodebcs"`  // node boundary conditions

	// timecontrol
	Control TimeControl `json:"control"` // time control
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data      Data       `json:"data"`      // stores global simulation data
	Functions FuncsData  `json:"functions"` // stores all boundary condition functions
	Regions   []*Region  `json:"regions"`   // stores all regions
	LinSol    LinSolData `json:"linsol"`    // linear solver data
	Solver    SolverData `json:"solver"`    // FEM solver data
	Stages    []*Stage   `json:"stages"`    // stores all stages

	// derived
	GoroutineId int    // id of goroutine to avoid race problems
	DirOut      string // directory to save results
	Key         string // simulation key; e.g. mysim01.sim => mysim01 or mysim01-alias
	EncType     string // encoder type
	MatParams   *MatDb // materials' parameters
	Ndim        int    // space dimension
}

// Simulation //////////////////////////////////////////////////////////////////////////////////////

// ReadSim reads all simulation data from a .sim JSON file
//  Note: panics on errors; the input stage is fatal by design
func ReadSim(simfilepath, alias string, erasefiles bool, goroutineId int) *Simulation {

	// new sim
	var o Simulation

	// read file
	b, err := io.ReadFile(simfilepath)
	if err != nil {
		chk.Panic("ReadSim: cannot read simulation file %q", simfilepath)
	}

	// set default values
	o.Solver.SetDefault()
	o.LinSol.SetDefault()

	// decode
	err = json.Unmarshal(b, &o)
	if err != nil {
		chk.Panic("ReadSim: cannot unmarshal simulation file %q", simfilepath)
	}

	// input directory and filename key
	dir := filepath.Dir(simfilepath)
	fn := filepath.Base(simfilepath)
	dir = os.ExpandEnv(dir)
	o.Key = io.FnKey(fn)
	if alias != "" {
		o.Key += "-" + alias
	}

	// initialise derived data
	if err := o.Init(dir, erasefiles, goroutineId); err != nil {
		chk.Panic("ReadSim: cannot initialise simulation data:\n%v", err)
	}
	return &o
}

// Init computes the derived data of a simulation. It is called by ReadSim
// after decoding and may be called directly on simulations assembled in code.
// Meshes and materials are read from files unless already set
func (o *Simulation) Init(dir string, erasefiles bool, goroutineId int) (err error) {

	// goroutine and key
	o.GoroutineId = goroutineId
	if o.Key == "" {
		o.Key = "sim"
	}

	// output directory
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = "/tmp/gomem/" + o.Key
	}

	// encoder type
	o.EncType = o.Data.Encoder
	if o.EncType == "" {
		o.EncType = "json"
	}

	// create directory and erase previous simulation results
	if erasefiles {
		err = os.MkdirAll(o.DirOut, 0777)
		if err != nil {
			return chk.Err("cannot create directory for output results (%s): %v", o.DirOut, err)
		}
		io.RemoveAll(io.Sf("%s/%s*", o.DirOut, o.Key))
	}

	// set solver constants
	o.Solver.PostProcess()

	// read materials database
	if o.MatParams == nil {
		o.MatParams, err = ReadMat(dir, o.Data.Matfile)
		if err != nil {
			return chk.Err("cannot read materials database:\n%v", err)
		}
	} else {
		if err = o.MatParams.Init(); err != nil {
			return chk.Err("cannot initialise materials database:\n%v", err)
		}
	}

	// for all regions
	for i, reg := range o.Regions {

		// read mesh
		if reg.Msh == nil {
			ddir := dir
			if reg.AbsPath {
				ddir = ""
			}
			reg.Msh, err = ReadMsh(ddir, reg.Mshfile, goroutineId)
			if err != nil {
				return chk.Err("cannot read mesh file:\n%v", err)
			}
		}

		// dependent variables
		reg.etag2idx = make(map[int]int)
		for j, ed := range reg.ElemsData {
			reg.etag2idx[ed.Tag] = j
		}

		// space dimension
		if i == 0 {
			o.Ndim = reg.Msh.Ndim
		} else if reg.Msh.Ndim != o.Ndim {
			return chk.Err("Ndim value is inconsistent: %d != %d", reg.Msh.Ndim, o.Ndim)
		}
	}

	// for all stages
	for _, stg := range o.Stages {

		// fix Tf
		if stg.Control.Tf < 1e-14 {
			stg.Control.Tf = 1
		}

		// fix Dt
		if stg.Control.DtFcn == "" {
			if stg.Control.Dt < 1e-14 {
				stg.Control.Dt = 1
			}
			stg.Control.DtFunc = &fun.Cte{C: stg.Control.Dt}
		} else {
			stg.Control.DtFunc = o.Functions.Get(stg.Control.DtFcn)
			if stg.Control.DtFunc == nil {
				return chk.Err("cannot find DtFunc named %q", stg.Control.DtFcn)
			}
			stg.Control.Dt = stg.Control.DtFunc.F(0, nil)
		}

		// fix DtOut
		if stg.Control.DtOut < stg.Control.Dt {
			stg.Control.DtOut = stg.Control.Dt
		}
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// Etag2data returns the ElemData corresponding to element tag
//  Note: returns nil if not found
func (d *Region) Etag2data(etag int) *ElemData {
	idx, ok := d.etag2idx[etag]
	if !ok {
		return nil
	}
	return d.ElemsData[idx]
}

// GetInfo returns formatted information
func (o *Simulation) GetInfo(w goio.Writer) (err error) {
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return
}

// GetEleCond returns element condition structure by giving an elem tag
//  Note: returns nil if not found
func (o Stage) GetEleCond(elemtag int) *EleCond {
	for _, ec := range o.EleConds {
		if elemtag == ec.Tag {
			return ec
		}
	}
	return nil
}

// GetNodeBc returns node boundary condition structure by giving a node tag
//  Note: returns nil if not found
func (o Stage) GetNodeBc(nodetag int) *NodeBc {
	for _, nbc := range o.NodeBcs {
		if nodetag == nbc.Tag {
			return nbc
		}
	}
	return nil
}

// extra settings //////////////////////////////////////////////////////////////////////////////////

// SetDefault sets defaults values
func (o *LinSolData) SetDefault() {
	o.Name = "dense"
}

// SetDefault set defaults values
func (o *SolverData) SetDefault() {

	// types
	o.Type = "imp"
	o.Nwkrs = 1

	// nonlinear solver
	o.NmaxIt = 20
	o.Atol = 1e-6
	o.Rtol = 1e-6
	o.FbTol = 1e-8
	o.FbMin = 1e-14
	o.NdvgMax = 20

	// time stepping
	o.DtMin = 1e-8

	// constants
	o.Eps = 1e-16
}

// PostProcess performs a post-processing of the just read json file
func (o *SolverData) PostProcess() {
	o.Itol = utl.Max(10.0*o.Eps/o.Rtol, utl.Min(0.01, math.Sqrt(o.Rtol)))
}
