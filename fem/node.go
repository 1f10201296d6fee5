// Copyright 2016 The Gomem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gomem/inp"

	"github.com/cpmech/gosl/io"
)

// Dof holds information about a degree-of-freedom == solution variable at a node.
// The equation number is assigned by the Domain after all prescribed values are
// known: free equations come first, prescribed (eliminated) equations last.
type Dof struct {
	Key string // name of this dof; e.g. "ux", "uy", "uz"
	Eq  int    // equation number
}

// String returns the string representation of this Dof
func (o *Dof) String() string {
	return io.Sf("{%q: %d}", o.Key, o.Eq)
}

// Node holds node dofs and point to a vertex
type Node struct {
	Dofs []*Dof    // degrees-of-freedom == solution variables
	Vert *inp.Vert // pointer to vertex
}

// NewNode allocates a new Node
func NewNode(v *inp.Vert) *Node {
	return &Node{nil, v}
}

// AddDof adds a new dof to node; ignores it if key is already present.
// The equation number is left unassigned (-1)
func (o *Node) AddDof(key string) {
	for _, dof := range o.Dofs {
		if dof.Key == key {
			return
		}
	}
	o.Dofs = append(o.Dofs, &Dof{key, -1})
}

// GetDof returns the dof structure for given dof name (key)
//  Note: returns nil if not found
func (o *Node) GetDof(key string) *Dof {
	for _, dof := range o.Dofs {
		if dof.Key == key {
			return dof
		}
	}
	return nil
}

// GetEq returns the equation number for given dof name (key)
//  Note: returns -1 if not found
func (o *Node) GetEq(key string) int {
	for _, dof := range o.Dofs {
		if dof.Key == key {
			return dof.Eq
		}
	}
	return -1
}

// String returns the string representation of this node
func (o *Node) String() string {
	l := io.Sf("{\"id\":%d, \"dofs\":[", o.Vert.Id)
	for i, dof := range o.Dofs {
		if i > 0 {
			l += ", "
		}
		l += dof.String()
	}
	l += "] }"
	return l
}
