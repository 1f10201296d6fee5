// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
)

// NodalDisplacements returns the displacement vector of one node
//  Note: returns nil if the vertex is inactive
func (o *Domain) NodalDisplacements(vid int) []float64 {
	nod := o.Vid2node[vid]
	if nod == nil {
		return nil
	}
	u := make([]float64, 3)
	for i, key := range []string{"ux", "uy", "uz"} {
		if eq := nod.GetEq(key); eq >= 0 {
			u[i] = o.Sol.Y[eq]
		}
	}
	return u
}

// Reactions returns the reaction forces at the prescribed dofs, mapped by
// vertex id and dof key. The residual must be up-to-date; i.e. this is meant
// to be called after a converged step
func (o *Domain) Reactions() map[int]map[string]float64 {
	res := make(map[int]map[string]float64)
	for _, eb := range o.EssenBcs {
		if _, ok := res[eb.Vid]; !ok {
			res[eb.Vid] = make(map[string]float64)
		}
		res[eb.Vid][eb.Key] = -o.Fb[eb.Eq]
	}
	return res
}

// SumReactions returns the sum of all reaction forces, per direction key
func (o *Domain) SumReactions() map[string]float64 {
	sum := map[string]float64{"ux": 0, "uy": 0, "uz": 0}
	for _, eb := range o.EssenBcs {
		sum[eb.Key] += -o.Fb[eb.Eq]
	}
	return sum
}

// IpsData collects the integration point data of all elements for output
func (o *Domain) IpsData() (data []*OutIpData) {
	for _, e := range o.Elems {
		data = append(data, e.OutIpsData()...)
	}
	return
}

// ElemValsAtIp returns the output values at one integration point of one element
func (o *Domain) ElemValsAtIp(cid, ipIdx int) (vals map[string]float64, err error) {
	e := o.Cid2elem[cid]
	if e == nil {
		return nil, chk.Err("cannot find element with cid=%d", cid)
	}
	data := e.OutIpsData()
	if ipIdx < 0 || ipIdx >= len(data) {
		return nil, chk.Err("ip index %d is out of range (nip=%d)", ipIdx, len(data))
	}
	return data[ipIdx].Calc(o.Sol), nil
}
