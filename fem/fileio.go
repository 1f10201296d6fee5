// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	goio "io"
	"os"
	"path"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Encoder defines encoders; e.g. gob or json
type Encoder interface {
	Encode(e interface{}) error
}

// Decoder defines decoders; e.g. gob or json
type Decoder interface {
	Decode(e interface{}) error
}

// GetEncoder returns a new encoder
func GetEncoder(w goio.Writer, enctype string) Encoder {
	if enctype == "gob" {
		return gob.NewEncoder(w)
	}
	return json.NewEncoder(w)
}

// GetDecoder returns a new decoder
func GetDecoder(r goio.Reader, enctype string) Decoder {
	if enctype == "gob" {
		return gob.NewDecoder(r)
	}
	return json.NewDecoder(r)
}

// SaveSol saves the solution (o.Sol) to a file which name is set with tidx (time output index)
func (o *Domain) SaveSol(tidx int, verbose bool) (err error) {

	// buffer and encoder
	var buf bytes.Buffer
	enc := GetEncoder(&buf, o.Sim.EncType)

	// encode Sol
	err = enc.Encode(o.Sol.T)
	if err != nil {
		return chk.Err("cannot encode Domain.Sol.T:\n%v", err)
	}
	err = enc.Encode(o.Sol.Y)
	if err != nil {
		return chk.Err("cannot encode Domain.Sol.Y:\n%v", err)
	}

	// save file
	fn := out_nod_path(o.Sim.DirOut, o.Sim.Key, o.Sim.EncType, tidx)
	return save_file(fn, &buf, verbose)
}

// ReadSol reads the solution from a file which name is set with tidx (time output index)
func (o *Domain) ReadSol(dir, fnkey, enctype string, tidx int) (err error) {

	// open file
	fn := out_nod_path(dir, fnkey, enctype, tidx)
	fil, err := os.Open(fn)
	if err != nil {
		return
	}
	defer func() { err = fil.Close() }()

	// get decoder
	dec := GetDecoder(fil, enctype)

	// decode Sol
	err = dec.Decode(&o.Sol.T)
	if err != nil {
		return chk.Err("cannot decode Domain.Sol.T:\n%v", err)
	}
	err = dec.Decode(&o.Sol.Y)
	if err != nil {
		return chk.Err("cannot decode Domain.Sol.Y:\n%v", err)
	}
	return
}

// SaveIvs saves the elements' internal values to a file which name is set with tidx
func (o *Domain) SaveIvs(tidx int, verbose bool) (err error) {

	// buffer and encoder
	var buf bytes.Buffer
	enc := GetEncoder(&buf, o.Sim.EncType)

	// elements that go to file
	cids := make([]int, len(o.Elems))
	for i, e := range o.Elems {
		cids[i] = e.Id()
	}
	err = enc.Encode(cids)
	if err != nil {
		return chk.Err("cannot encode element ids:\n%v", err)
	}

	// encode internal variables
	for _, e := range o.Elems {
		err = e.Encode(enc)
		if err != nil {
			return
		}
	}

	// save file
	fn := out_ele_path(o.Sim.DirOut, o.Sim.Key, o.Sim.EncType, tidx)
	return save_file(fn, &buf, verbose)
}

// ReadIvs reads the elements' internal values from a file which name is set with tidx
func (o *Domain) ReadIvs(dir, fnkey, enctype string, tidx int) (err error) {

	// open file
	fn := out_ele_path(dir, fnkey, enctype, tidx)
	fil, err := os.Open(fn)
	if err != nil {
		return
	}
	defer func() { err = fil.Close() }()

	// decoder
	dec := GetDecoder(fil, enctype)

	// elements that are in file
	var cids []int
	err = dec.Decode(&cids)
	if err != nil {
		return chk.Err("cannot decode element ids:\n%v", err)
	}

	// decode internal variables
	for _, cid := range cids {
		elem := o.Cid2elem[cid]
		if elem == nil {
			return chk.Err("cannot find element with cid=%d", cid)
		}
		err = elem.Decode(dec)
		if err != nil {
			return chk.Err("cannot decode element:\n%v", err)
		}
	}
	return
}

// Save performs the output of the solution and of the internal values to files
func (o *Domain) Save(tidx int, verbose bool) (err error) {
	err = o.SaveSol(tidx, verbose)
	if err != nil {
		return
	}
	return o.SaveIvs(tidx, verbose)
}

// Read performs the inverse operation of Save()
func (o *Domain) Read(sum *Summary, tidx int) (err error) {
	err = o.ReadIvs(sum.Dirout, sum.Fnkey, o.Sim.EncType, tidx)
	if err != nil {
		return
	}
	return o.ReadSol(sum.Dirout, sum.Fnkey, o.Sim.EncType, tidx)
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func out_nod_path(dir, fnkey, enctype string, tidx int) string {
	return path.Join(dir, io.Sf("%s_nod_%010d.%s", fnkey, tidx, enctype))
}

func out_ele_path(dir, fnkey, enctype string, tidx int) string {
	return path.Join(dir, io.Sf("%s_ele_%010d.%s", fnkey, tidx, enctype))
}

func save_file(filename string, buf *bytes.Buffer, verbose bool) (err error) {
	err = os.MkdirAll(path.Dir(filename), 0777)
	if err != nil {
		return
	}
	fil, err := os.Create(filename)
	if err != nil {
		return
	}
	defer func() { err = fil.Close() }()
	_, err = fil.Write(buf.Bytes())
	if verbose {
		io.Pfblue2("file <%s> written\n", filename)
	}
	return
}
