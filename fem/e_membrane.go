// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gomem/inp"
	"github.com/cpmech/gomem/msolid"
	"github.com/cpmech/gomem/shp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// ElemMembrane represents a thin hyperelastic membrane: a surface element
// embedded in 3D with displacements ux, uy, uz as primary variables. Stresses
// and moduli are contravariant components in the convected surface frame;
// integrals are weighted by the reference area Jacobian times the thickness
type ElemMembrane struct {

	// basic data
	Cell *inp.Cell   // the cell structure
	X    [][]float64 // matrix of nodal coordinates [3][nverts]
	Shp  *shp.Shape  // shape structure (private copy: assembly may run elements concurrently)
	Nu   int         // total number of unknowns == 3 * nverts
	Ndim int         // space dimension (always 3)

	// flags from "extra" data
	Thickness float64 // thickness of membrane (reference configuration)
	Debug     bool    // debugging flag

	// integration points
	IpsElem []shp.Ipoint // integration points of element

	// material model and internal variables
	Mdl msolid.Model    // material model
	Mem msolid.Membrane // membrane stress-update capability of Mdl

	// internal variables
	States    []*msolid.State // [nip] states
	StatesBkp []*msolid.State // [nip] backup states

	// problem variables
	Umap []int // assembly map (location array/element equations)

	// natural boundary conditions
	NatBcs []*NaturalBc

	// reference configuration. computed once by SetIniIvs
	refB []*shp.Basis         // [nip] reference bases
	kin  []*msolid.Kinematics // [nip] kinematics with reference metric pre-set

	// scratchpad. computed @ each ip
	xcur [][]float64     // [3][nverts] current nodal coordinates
	curB *shp.Basis      // current basis
	D    [][][][]float64 // [2][2][2][2] condensed tangent moduli
	K    [][]float64     // [nu][nu] stiffness matrix
	nda  []float64       // [3] current normal times current area jacobian = g_1 × g_2
}

// initialisation ///////////////////////////////////////////////////////////////////////////////////

// register element
func init() {

	// information allocator
	infogetters["membrane"] = func(sim *inp.Simulation, cell *inp.Cell, edat *inp.ElemData) *Info {

		// new info
		var info Info

		// number of nodes in element
		nverts := shp.GetNverts(cell.Type)
		if nverts < 0 {
			return nil
		}

		// solution variables
		ykeys := []string{"ux", "uy", "uz"}
		info.Dofs = make([][]string, nverts)
		for m := 0; m < nverts; m++ {
			info.Dofs[m] = ykeys
		}

		// maps
		info.Y2F = map[string]string{"ux": "fx", "uy": "fy", "uz": "fz"}
		return &info
	}

	// element allocator
	eallocators["membrane"] = func(sim *inp.Simulation, cell *inp.Cell, edat *inp.ElemData, x [][]float64) Elem {

		// basic data
		var o ElemMembrane
		o.Cell = cell
		o.X = x
		o.Shp = cell.Shp.GetCopy()
		o.Ndim = 3
		o.Nu = o.Ndim * o.Shp.Nverts

		// parse flags
		o.Thickness, o.Debug = GetMembraneFlags(edat.Extra)

		// integration points
		var err error
		o.IpsElem, err = shp.GetIps(cell.Type, edat.Nip)
		if err != nil {
			chk.Panic("cannot allocate integration points of membrane element with nip=%d:\n%v", edat.Nip, err)
		}
		nip := len(o.IpsElem)

		// model
		o.Mdl, o.Mem, _, err = GetAndInitMembraneModel(sim.MatParams, edat.Mat, sim.Key)
		if err != nil {
			chk.Panic("cannot get model for membrane element {tag=%d id=%d material=%q}:\n%v", cell.Tag, cell.Id, edat.Mat, err)
		}

		// reference configuration
		o.refB = make([]*shp.Basis, nip)
		o.kin = make([]*msolid.Kinematics, nip)
		for i := 0; i < nip; i++ {
			o.refB[i] = shp.NewBasis()
			o.kin[i] = msolid.NewKinematics()
		}

		// scratchpad. computed @ each ip
		o.xcur = la.MatAlloc(3, o.Shp.Nverts)
		o.curB = shp.NewBasis()
		o.D = utl.Deep4alloc(2, 2, 2, 2)
		o.K = la.MatAlloc(o.Nu, o.Nu)
		o.nda = make([]float64, 3)

		// return new element
		return &o
	}
}

// implementation ///////////////////////////////////////////////////////////////////////////////////

// Id returns the cell Id
func (o *ElemMembrane) Id() int { return o.Cell.Id }

// SetEqs sets equations
func (o *ElemMembrane) SetEqs(eqs [][]int) (err error) {
	o.Umap = make([]int, o.Nu)
	for m := 0; m < o.Shp.Nverts; m++ {
		for i := 0; i < o.Ndim; i++ {
			r := i + m*o.Ndim
			o.Umap[r] = eqs[m][i]
		}
	}
	return
}

// SetEleConds sets element conditions
func (o *ElemMembrane) SetEleConds(key string, f fun.Func, extra string) (err error) {
	switch key {
	case "qn", "qt":
		o.NatBcs = append(o.NatBcs, &NaturalBc{key, f, extra})
	default:
		return chk.Err("membrane element: cannot handle condition %q (tag=%d id=%d)", key, o.Cell.Tag, o.Cell.Id)
	}
	return
}

// SetIniIvs sets initial internal variables and computes the reference bases
// at all integration points
func (o *ElemMembrane) SetIniIvs(sol *Solution) (err error) {

	// reference bases and metrics
	for idx, ip := range o.IpsElem {
		err = o.Shp.CalcBasisAt(o.refB[idx], o.X, ip.R)
		if err != nil {
			return chk.Err("membrane element: reference basis failed (eid=%d, ip=%d):\n%v", o.Id(), idx, err)
		}
		err = o.kin[idx].SetRef(o.refB[idx].Amat)
		if err != nil {
			return
		}
	}

	// allocate states
	nip := len(o.IpsElem)
	o.States = make([]*msolid.State, nip)
	o.StatesBkp = make([]*msolid.State, nip)
	for i := 0; i < nip; i++ {
		o.States[i], err = o.Mdl.InitIntVars()
		if err != nil {
			return
		}
		o.StatesBkp[i] = o.States[i].GetCopy()
	}
	return
}

// AddToRhs adds -R to global residual vector fb
func (o *ElemMembrane) AddToRhs(fb []float64, sol *Solution) (err error) {

	// current configuration
	o.currentCoords(sol)

	// for each integration point
	nverts := o.Shp.Nverts
	for idx, ip := range o.IpsElem {

		// current basis (also fills the scratchpad S and DSdR)
		err = o.Shp.CalcBasisAt(o.curB, o.xcur, ip.R)
		if err != nil {
			return
		}

		// auxiliary
		coef := ip.W * o.refB[idx].J * o.Thickness
		G := o.Shp.DSdR
		gc := o.curB.Gcov
		σ := o.States[idx].Sig

		// internal forces: fi_mi = Σ S^αβ g_α[i] dS^m/dr_β
		for m := 0; m < nverts; m++ {
			for i := 0; i < o.Ndim; i++ {
				r := o.Umap[i+m*o.Ndim]
				for α := 0; α < 2; α++ {
					for β := 0; β < 2; β++ {
						fb[r] -= coef * σ[α][β] * gc[α][i] * G[m][β] // -fi
					}
				}
			}
		}
	}

	// external surface loads
	return o.add_surfloads_to_rhs(fb, sol)
}

// AddToKb adds element K to global Jacobian matrix Kb
func (o *ElemMembrane) AddToKb(Kb Kassem, sol *Solution, firstIt bool) (err error) {

	// zero K matrix
	la.MatFill(o.K, 0)

	// current configuration
	o.currentCoords(sol)

	// for each integration point
	nverts := o.Shp.Nverts
	for idx, ip := range o.IpsElem {

		// current basis and metric
		err = o.Shp.CalcBasisAt(o.curB, o.xcur, ip.R)
		if err != nil {
			return
		}
		err = o.kin[idx].SetCur(o.curB.Amat)
		if err != nil {
			return
		}

		// consistent tangent moduli
		err = o.Mem.CalcD(o.D, o.States[idx], o.kin[idx])
		if err != nil {
			return
		}

		// auxiliary
		coef := ip.W * o.refB[idx].J * o.Thickness
		G := o.Shp.DSdR
		gc := o.curB.Gcov
		σ := o.States[idx].Sig

		// material and geometric stiffness
		for m := 0; m < nverts; m++ {
			for i := 0; i < o.Ndim; i++ {
				r := i + m*o.Ndim
				for n := 0; n < nverts; n++ {
					for j := 0; j < o.Ndim; j++ {
						c := j + n*o.Ndim
						for α := 0; α < 2; α++ {
							for β := 0; β < 2; β++ {
								for γ := 0; γ < 2; γ++ {
									for δ := 0; δ < 2; δ++ {
										o.K[r][c] += coef * o.D[α][β][γ][δ] * gc[α][i] * G[m][β] * gc[γ][j] * G[n][δ]
									}
								}
							}
						}
						if i == j {
							for α := 0; α < 2; α++ {
								for β := 0; β < 2; β++ {
									o.K[r][c] += coef * σ[α][β] * G[m][β] * G[n][α]
								}
							}
						}
					}
				}
			}
		}

		// follower pressure stiffness
		err = o.add_surfloads_to_kb(idx, ip, sol)
		if err != nil {
			return
		}
	}

	// add K to global matrix. prescribed equations are eliminated
	for i, I := range o.Umap {
		if I >= sol.Nfree {
			continue
		}
		for j, J := range o.Umap {
			if J >= sol.Nfree {
				continue
			}
			Kb.Put(I, J, o.K[i][j])
		}
	}
	return
}

// Update updates secondary variables (stresses) from the current primary ones
func (o *ElemMembrane) Update(sol *Solution) (err error) {

	// current configuration
	o.currentCoords(sol)

	// for each integration point
	for idx, ip := range o.IpsElem {

		// current basis and metric
		err = o.Shp.CalcBasisAt(o.curB, o.xcur, ip.R)
		if err != nil {
			return
		}
		err = o.kin[idx].SetCur(o.curB.Amat)
		if err != nil {
			return
		}

		// stress update => solves plane-stress condition for thickness stretch
		err = o.Mem.Update(o.States[idx], o.kin[idx])
		if err != nil {
			return chk.Err("membrane element: stress update failed (eid=%d, ip=%d):\n%v", o.Id(), idx, err)
		}
	}
	return
}

// internal variables ///////////////////////////////////////////////////////////////////////////////

// BackupIvs creates copy of internal variables
func (o *ElemMembrane) BackupIvs() (err error) {
	for i, s := range o.StatesBkp {
		s.Set(o.States[i])
	}
	return
}

// RestoreIvs restores internal variables from copies
func (o *ElemMembrane) RestoreIvs() (err error) {
	for i, s := range o.States {
		s.Set(o.StatesBkp[i])
	}
	return
}

// writer ///////////////////////////////////////////////////////////////////////////////////////////

// Encode encodes internal variables
func (o *ElemMembrane) Encode(enc Encoder) (err error) {
	return enc.Encode(o.States)
}

// Decode decodes internal variables
func (o *ElemMembrane) Decode(dec Decoder) (err error) {
	err = dec.Decode(&o.States)
	if err != nil {
		return
	}
	return o.BackupIvs()
}

// output ///////////////////////////////////////////////////////////////////////////////////////////

// Ipoints returns the real coordinates of integration points [nip][3]
func (o *ElemMembrane) Ipoints() (coords [][]float64) {
	coords = la.MatAlloc(len(o.IpsElem), o.Ndim)
	for idx, ip := range o.IpsElem {
		y, err := o.Shp.IpRealCoords(o.X, ip)
		if err == nil {
			copy(coords[idx], y)
		}
	}
	return
}

// OutIpsData returns data from all integration points for output
func (o *ElemMembrane) OutIpsData() (data []*OutIpData) {
	keys := []string{"s00", "s01", "s11", "lam3", "lnJ", "W"}
	for idx, ip := range o.IpsElem {
		s := o.States[idx]
		x, _ := o.Shp.IpRealCoords(o.X, ip)
		calc := func(sol *Solution) map[string]float64 {
			return map[string]float64{
				keys[0]: s.Sig[0][0],
				keys[1]: s.Sig[0][1],
				keys[2]: s.Sig[1][1],
				keys[3]: s.Lam3,
				keys[4]: s.LnJ,
				keys[5]: s.W,
			}
		}
		data = append(data, &OutIpData{o.Id(), x, calc})
	}
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// currentCoords computes the current nodal coordinates: xcur = X + u
func (o *ElemMembrane) currentCoords(sol *Solution) {
	for m := 0; m < o.Shp.Nverts; m++ {
		for i := 0; i < o.Ndim; i++ {
			o.xcur[i][m] = o.X[i][m] + sol.Y[o.Umap[i+m*o.Ndim]]
		}
	}
}

// add_surfloads_to_rhs adds surface loads to rhs
//  "qn" -- follower pressure along the current normal: fe = ∫ p S^m (g_1 × g_2) dr
//  "qt" -- dead load along the reference normal, per unit reference area
func (o *ElemMembrane) add_surfloads_to_rhs(fb []float64, sol *Solution) (err error) {
	for _, load := range o.NatBcs {
		for idx, ip := range o.IpsElem {
			switch load.Key {
			case "qn":
				err = o.Shp.CalcBasisAt(o.curB, o.xcur, ip.R)
				if err != nil {
					return
				}
				utl.Cross3d(o.nda, o.curB.Gcov[0], o.curB.Gcov[1]) // n̂ da = g_1 × g_2 dr
				coef := ip.W * load.Fcn.F(sol.T, nil)
				for m := 0; m < o.Shp.Nverts; m++ {
					for i := 0; i < o.Ndim; i++ {
						r := o.Umap[i+m*o.Ndim]
						fb[r] += coef * o.Shp.S[m] * o.nda[i] // +fe
					}
				}
			case "qt":
				err = o.Shp.CalcAtR(ip.R, false)
				if err != nil {
					return
				}
				coef := ip.W * load.Fcn.F(sol.T, nil) * o.refB[idx].J
				for m := 0; m < o.Shp.Nverts; m++ {
					for i := 0; i < o.Ndim; i++ {
						r := o.Umap[i+m*o.Ndim]
						fb[r] += coef * o.Shp.S[m] * o.refB[idx].N[i] // +fe
					}
				}
			}
		}
	}
	return
}

// add_surfloads_to_kb adds the follower-pressure contribution to the element
// stiffness at one integration point. The load derivative is
//  ∂fe_mi/∂u_nj = p Σ_α ε_ijk-like terms from δ(g_1 × g_2); assembled below as
//  K -= p w [ S^m (dS^n/dr_1 g_2 - dS^n/dr_2 g_1) × ]_ij
func (o *ElemMembrane) add_surfloads_to_kb(idx int, ip shp.Ipoint, sol *Solution) (err error) {
	for _, load := range o.NatBcs {
		if load.Key != "qn" {
			continue
		}
		p := load.Fcn.F(sol.T, nil)
		coef := ip.W * p
		G := o.Shp.DSdR
		g1 := o.curB.Gcov[0]
		g2 := o.curB.Gcov[1]
		for m := 0; m < o.Shp.Nverts; m++ {
			for n := 0; n < o.Shp.Nverts; n++ {
				// δ(g_1 × g_2) = (dS^n/dr_1 δu_n) × g_2 + g_1 × (dS^n/dr_2 δu_n)
				// cross-product matrices give the antisymmetric coupling below
				a1 := coef * o.Shp.S[m] * G[n][0]
				a2 := coef * o.Shp.S[m] * G[n][1]
				// fe_mi += S^m [ (e_j × g_2)_i a1/coefS + (g_1 × e_j)_i ... ]: expand per component
				o.addCross(m, n, a1, g2, true)
				o.addCross(m, n, a2, g1, false)
			}
		}
	}
	return
}

// addCross accumulates a := s * [v ×] into the element stiffness block (m, n),
// with the sign chosen so that K holds ∂(internal-external)/∂u.
//  first==true:  contribution of (δg_1 × g_2) => +s * skew(v) with v = g_2
//  first==false: contribution of (g_1 × δg_2) => -s * skew(v) with v = g_1
func (o *ElemMembrane) addCross(m, n int, s float64, v []float64, first bool) {
	sign := 1.0
	if !first {
		sign = -1.0
	}
	// fe increment: δfe_i = sign * s * (δu × v)_i = sign * s * ε_ijk δu_j v_k
	// K = -∂fe/∂u  =>  K[r][c] -= sign * s * ε_ijk v_k (row i, col j)
	r0 := m * o.Ndim
	c0 := n * o.Ndim
	o.K[r0+0][c0+1] -= sign * s * v[2]
	o.K[r0+0][c0+2] += sign * s * v[1]
	o.K[r0+1][c0+0] += sign * s * v[2]
	o.K[r0+1][c0+2] -= sign * s * v[0]
	o.K[r0+2][c0+0] -= sign * s * v[1]
	o.K[r0+2][c0+1] += sign * s * v[0]
}
