// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements shape functions, integration points and the
// curvilinear basis engine for membrane surface elements
package shp

import (
	"errors"
	"fmt"

	"github.com/cpmech/gosl/la"
)

// constants
const (
	MINDET = 1.0e-14 // minimum area Jacobian allowed for a surface element
	RTOL   = 1.0e-12 // tolerance when checking natural coordinates against the reference domain
)

// errors
var (
	// ErrShapeUnavailable indicates an unknown/unsupported element type
	ErrShapeUnavailable = errors.New("shape type is unavailable")

	// ErrOutOfDomain indicates natural coordinates outside the reference domain.
	// Policy: reject, do not clamp.
	ErrOutOfDomain = errors.New("natural coordinates are outside the reference domain")

	// ErrDegenerate indicates a non-positive area Jacobian (degenerate/inverted element)
	ErrDegenerate = errors.New("degenerate element: non-positive Jacobian")
)

// ShpFunc is the shape functions callback function
type ShpFunc func(S []float64, dSdR [][]float64, r []float64, derivs bool)

// InDomFunc tells whether natural coordinates are inside the reference domain
type InDomFunc func(r []float64, tol float64) bool

// Shape holds geometry data and a scratchpad with values at the last
// evaluated natural coordinate. Use GetCopy/Get(goroutineId>0) when sharing
// across goroutines.
type Shape struct {

	// geometry
	Type      string      // name; e.g. "tri3"
	Func      ShpFunc     // shape/derivs callback function
	InDom     InDomFunc   // reference-domain membership callback
	Gndim     int         // parametric dimension of shape (2 for membrane surfaces)
	Nverts    int         // number of vertices; e.g. "tri6" => 6
	VtkCode   int         // VTK code
	NatCoords [][]float64 // natural coordinates of vertices [gndim][nverts]

	// scratchpad: computed by CalcAtR
	S    []float64   // [nverts] shape function values
	DSdR [][]float64 // [nverts][gndim] derivatives of S w.r.t natural coordinates
}

// GetCopy returns a new copy of this shape structure with a fresh scratchpad
func (o Shape) GetCopy() *Shape {
	var p Shape
	p.Type = o.Type
	p.Func = o.Func
	p.InDom = o.InDom
	p.Gndim = o.Gndim
	p.Nverts = o.Nverts
	p.VtkCode = o.VtkCode
	p.NatCoords = la.MatClone(o.NatCoords)
	p.initScratchpad()
	return &p
}

// factory holds all Shapes available
var factory = make(map[string]*Shape)

// Get returns an existent Shape structure
//  Note: use goroutineId > 0 to get a private copy
func Get(geoType string, goroutineId int) (*Shape, error) {
	s, ok := factory[geoType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrShapeUnavailable, geoType)
	}
	if goroutineId > 0 {
		return s.GetCopy(), nil
	}
	return s, nil
}

// GetNverts returns the number of vertices of an element type; -1 if unknown
func GetNverts(geoType string) int {
	if s, ok := factory[geoType]; ok {
		return s.Nverts
	}
	return -1
}

// CalcAtR evaluates the shape functions (and derivatives) at natural coordinate r.
//  Output goes to the scratchpad: S and DSdR
func (o *Shape) CalcAtR(r []float64, derivs bool) (err error) {
	if !o.InDom(r, RTOL) {
		return fmt.Errorf("%w: %q: r=%v", ErrOutOfDomain, o.Type, r[:o.Gndim])
	}
	o.Func(o.S, o.DSdR, r, derivs)
	return
}

// IpRealCoords returns the real coordinates (y) of an integration point
//  x[ndim][nverts] -- coordinates matrix of element
func (o *Shape) IpRealCoords(x [][]float64, ip Ipoint) (y []float64, err error) {
	ndim := len(x)
	y = make([]float64, ndim)
	err = o.CalcAtR(ip.R, false)
	if err != nil {
		return
	}
	for i := 0; i < ndim; i++ {
		for m := 0; m < o.Nverts; m++ {
			y[i] += o.S[m] * x[i][m]
		}
	}
	return
}

// initScratchpad initialises the scratchpad
func (o *Shape) initScratchpad() {
	o.S = make([]float64, o.Nverts)
	o.DSdR = la.MatAlloc(o.Nverts, o.Gndim)
}
