// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// VTK cell codes
const (
	VTK_TRIANGLE           = 5
	VTK_QUAD               = 9
	VTK_QUADRATIC_TRIANGLE = 22
)

// Ipoint holds integration (quadrature) point data
type Ipoint struct {
	R []float64 // natural coordinates (len==3; last entry unused for surfaces)
	W float64   // weight
}

// triangle schemes; weights include the 1/2 reference-triangle area factor
var (
	// 1 point, degree 1
	ipsTri1 = []Ipoint{
		{[]float64{1.0 / 3.0, 1.0 / 3.0, 0}, 1.0 / 2.0},
	}

	// 3 points, degree 2
	ipsTri3 = []Ipoint{
		{[]float64{1.0 / 6.0, 1.0 / 6.0, 0}, 1.0 / 6.0},
		{[]float64{2.0 / 3.0, 1.0 / 6.0, 0}, 1.0 / 6.0},
		{[]float64{1.0 / 6.0, 2.0 / 3.0, 0}, 1.0 / 6.0},
	}

	// 4 points, degree 3
	ipsTri4 = []Ipoint{
		{[]float64{1.0 / 3.0, 1.0 / 3.0, 0}, -27.0 / 96.0},
		{[]float64{1.0 / 5.0, 1.0 / 5.0, 0}, 25.0 / 96.0},
		{[]float64{3.0 / 5.0, 1.0 / 5.0, 0}, 25.0 / 96.0},
		{[]float64{1.0 / 5.0, 3.0 / 5.0, 0}, 25.0 / 96.0},
	}

	// 7 points, degree 5
	ipsTri7 = []Ipoint{
		{[]float64{1.0 / 3.0, 1.0 / 3.0, 0}, 0.5 * 0.225},
		{[]float64{0.470142064105115, 0.470142064105115, 0}, 0.5 * 0.132394152788506},
		{[]float64{0.059715871789770, 0.470142064105115, 0}, 0.5 * 0.132394152788506},
		{[]float64{0.470142064105115, 0.059715871789770, 0}, 0.5 * 0.132394152788506},
		{[]float64{0.101286507323456, 0.101286507323456, 0}, 0.5 * 0.125939180544827},
		{[]float64{0.797426985353087, 0.101286507323456, 0}, 0.5 * 0.125939180544827},
		{[]float64{0.101286507323456, 0.797426985353087, 0}, 0.5 * 0.125939180544827},
	}
)

// gaussLegendre returns the 1D Gauss-Legendre points and weights for n = 1, 2 or 3
func gaussLegendre(n int) (x, w []float64) {
	switch n {
	case 1:
		return []float64{0}, []float64{2}
	case 2:
		a := 1.0 / math.Sqrt(3.0)
		return []float64{-a, a}, []float64{1, 1}
	case 3:
		a := math.Sqrt(3.0 / 5.0)
		return []float64{-a, 0, a}, []float64{5.0 / 9.0, 8.0 / 9.0, 5.0 / 9.0}
	}
	return
}

// quaIps builds the tensor-product Gauss-Legendre scheme with n x n points
func quaIps(n int) (ips []Ipoint) {
	x, w := gaussLegendre(n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			ips = append(ips, Ipoint{[]float64{x[i], x[j], 0}, w[i] * w[j]})
		}
	}
	return
}

// default number of integration points per element type
var defaultNips = map[string]int{
	"tri3": 1,
	"tri6": 3,
	"qua4": 4,
}

// GetIps returns the integration points of an element type.
//  nip -- number of integration points; 0 => use default
// The result is a pure function of (geoType, nip): deterministic and restartable.
func GetIps(geoType string, nip int) (ips []Ipoint, err error) {
	if nip == 0 {
		var ok bool
		if nip, ok = defaultNips[geoType]; !ok {
			return nil, chk.Err("cannot find default integration points for shape %q", geoType)
		}
	}
	switch geoType {
	case "tri3", "tri6":
		switch nip {
		case 1:
			return ipsTri1, nil
		case 3:
			return ipsTri3, nil
		case 4:
			return ipsTri4, nil
		case 7:
			return ipsTri7, nil
		}
	case "qua4":
		switch nip {
		case 1, 4, 9:
			n := 1
			for n*n < nip {
				n++
			}
			return quaIps(n), nil
		}
	default:
		return nil, chk.Err("cannot find integration points for shape %q", geoType)
	}
	return nil, chk.Err("number of integration points %d is invalid for shape %q", nip, geoType)
}
