// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"os"
	"path"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Summary records the summary of results: output times, residual histories
// and iteration counts of converged load steps
type Summary struct {
	OutTimes   []float64    // [nOutTimes] output times
	Resids     utl.DblSlist // residual history; one sub-list per load increment
	Iterations []int        // number of iterations of each converged load step
	Dirout     string       // directory where results are stored
	Fnkey      string       // filename key of simulation
}

// Save saves the summary to disc
func (o *Summary) Save(dirout, fnkey, enctype string, verbose bool) (err error) {

	// set flags before saving
	o.Dirout = dirout
	o.Fnkey = fnkey

	// buffer and encoder
	var buf bytes.Buffer
	enc := GetEncoder(&buf, enctype)

	// encode summary
	err = enc.Encode(o)
	if err != nil {
		return chk.Err("cannot encode summary:\n%v", err)
	}

	// save file
	fn := out_sum_path(dirout, fnkey, enctype)
	return save_file(fn, &buf, verbose)
}

// Read reads a summary back
func (o *Summary) Read(dir, fnkey, enctype string) (err error) {

	// open file
	fn := out_sum_path(dir, fnkey, enctype)
	fil, err := os.Open(fn)
	if err != nil {
		return
	}
	defer func() { err = fil.Close() }()

	// decode summary
	dec := GetDecoder(fil, enctype)
	err = dec.Decode(o)
	if err != nil {
		return chk.Err("cannot decode summary:\n%v", err)
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func out_sum_path(dir, fnkey, enctype string) string {
	return path.Join(dir, io.Sf("%s_sum.%s", fnkey, enctype))
}
