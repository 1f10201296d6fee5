// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"path/filepath"

	"github.com/cpmech/gomem/shp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Vert holds vertex data. Membranes are surfaces embedded in 3D space;
// two-component input coordinates are padded with z = 0
type Vert struct {
	Id  int       // id
	Tag int       // tag
	C   []float64 // coordinates (size==2 or 3)
}

// Cell holds cell data
type Cell struct {

	// input data
	Id    int    // id
	Tag   int    // tag
	Type  string // geometry type (string); e.g. "tri3", "tri6", "qua4"
	Part  int    // partition id
	Verts []int  // vertices

	// derived
	Shp *shp.Shape // shape structure
}

// Mesh holds a surface mesh for membrane FE analyses
type Mesh struct {

	// from JSON
	Verts []*Vert // vertices
	Cells []*Cell // cells

	// derived
	FnamePath  string  // complete filename path
	Ndim       int     // space dimension (always 3)
	Xmin, Xmax float64 // min and max x-coordinate
	Ymin, Ymax float64 // min and max y-coordinate
	Zmin, Zmax float64 // min and max z-coordinate

	// derived: maps
	VertTag2verts map[int][]*Vert    // vertex tag => set of vertices
	CellTag2cells map[int][]*Cell    // cell tag => set of cells
	Ctype2cells   map[string][]*Cell // cell type => set of cells
}

// ReadMsh reads a mesh for membrane FE analyses
func ReadMsh(dir, fn string, goroutineId int) (*Mesh, error) {

	// new mesh
	var o Mesh

	// read file
	o.FnamePath = filepath.Join(dir, fn)
	b, err := io.ReadFile(o.FnamePath)
	if err != nil {
		return nil, chk.Err("ReadMsh: cannot read mesh file %q", o.FnamePath)
	}

	// decode
	if err := json.Unmarshal(b, &o); err != nil {
		return nil, chk.Err("ReadMsh: cannot unmarshal mesh file %q:\n%v", o.FnamePath, err)
	}

	// derived data
	if err := o.Init(goroutineId); err != nil {
		return nil, err
	}
	return &o, nil
}

// Init computes the derived data of a mesh. It is called by ReadMsh after
// decoding and may be called directly on meshes assembled in code
func (o *Mesh) Init(goroutineId int) error {

	// check
	if len(o.Verts) < 3 {
		return chk.Err("mesh %q needs at least 3 vertices. %d is invalid", o.FnamePath, len(o.Verts))
	}
	if len(o.Cells) < 1 {
		return chk.Err("mesh %q needs at least 1 cell. %d is invalid", o.FnamePath, len(o.Cells))
	}

	// vertex related derived data
	o.Ndim = 3
	o.VertTag2verts = make(map[int][]*Vert)
	for i, v := range o.Verts {

		// check vertex id
		if v.Id != i {
			return chk.Err("mesh %q has vertices with incorrect ids: %d != %d", o.FnamePath, v.Id, i)
		}

		// coordinates
		nd := len(v.C)
		if nd < 2 || nd > 3 {
			return chk.Err("mesh %q has vertices with incorrect number of coordinates: %d", o.FnamePath, nd)
		}
		if nd == 2 {
			v.C = append(v.C, 0)
		}

		// tags
		if v.Tag < 0 {
			verts := o.VertTag2verts[v.Tag]
			o.VertTag2verts[v.Tag] = append(verts, v)
		}

		// limits
		if i == 0 {
			o.Xmin, o.Xmax = v.C[0], v.C[0]
			o.Ymin, o.Ymax = v.C[1], v.C[1]
			o.Zmin, o.Zmax = v.C[2], v.C[2]
		}
		o.Xmin = utl.Min(o.Xmin, v.C[0])
		o.Xmax = utl.Max(o.Xmax, v.C[0])
		o.Ymin = utl.Min(o.Ymin, v.C[1])
		o.Ymax = utl.Max(o.Ymax, v.C[1])
		o.Zmin = utl.Min(o.Zmin, v.C[2])
		o.Zmax = utl.Max(o.Zmax, v.C[2])
	}

	// cell related derived data
	o.CellTag2cells = make(map[int][]*Cell)
	o.Ctype2cells = make(map[string][]*Cell)
	for i, c := range o.Cells {

		// check id and tag
		if c.Id != i {
			return chk.Err("mesh %q has cells with incorrect ids: %d != %d", o.FnamePath, c.Id, i)
		}
		if c.Tag >= 0 {
			return chk.Err("mesh %q has cells with incorrect tags: %d must be negative", o.FnamePath, c.Tag)
		}

		// tag => cells
		cells := o.CellTag2cells[c.Tag]
		o.CellTag2cells[c.Tag] = append(cells, c)

		// cell type => cells
		cells = o.Ctype2cells[c.Type]
		o.Ctype2cells[c.Type] = append(cells, c)

		// get shape structure
		var err error
		c.Shp, err = shp.Get(c.Type, goroutineId)
		if err != nil {
			return chk.Err("mesh %q has cell with unavailable shape:\n%v", o.FnamePath, err)
		}
		if len(c.Verts) != c.Shp.Nverts {
			return chk.Err("mesh %q has cell %d with incorrect number of vertices: %d != %d", o.FnamePath, c.Id, len(c.Verts), c.Shp.Nverts)
		}
	}
	return nil
}

// String returns a JSON representation of *Vert
func (o *Vert) String() string {
	l := io.Sf("{\"id\":%4d, \"tag\":%6d, \"c\":[", o.Id, o.Tag)
	for i, x := range o.C {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%23.15e", x)
	}
	l += "] }"
	return l
}

// String returns a JSON representation of *Cell
func (o *Cell) String() string {
	l := io.Sf("{\"id\":%d, \"tag\":%d, \"type\":%q, \"part\":%d, \"verts\":[", o.Id, o.Tag, o.Type, o.Part)
	for i, x := range o.Verts {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%d", x)
	}
	l += "] }"
	return l
}

// String returns a JSON representation of *Mesh
func (o Mesh) String() string {
	l := "{\n  \"verts\" : [\n"
	for i, x := range o.Verts {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("    %v", x)
	}
	l += "\n  ],\n  \"cells\" : [\n"
	for i, x := range o.Cells {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("    %v", x)
	}
	l += "\n  ]\n}"
	return l
}
