/*
 * graph.go, part of govsepr.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package chemgraph exposes a Structure as a gonum undirected, weighted
// graph, and uses it to check connectivity and find rings.
package chemgraph

import (
	chem "github.com/rmera/govsepr"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
)

// Atom is a graph node wrapping an atom of the structure.
// Its graph ID is its index in the structure.
type Atom struct {
	*chem.Atom
	Index int
	Bonds []*Bond
}

// ID returns the graph identity of the node.
func (A *Atom) ID() int64 {
	return int64(A.Index)
}

// Bond is an undirected, weighted edge. The weight is the bond order.
type Bond struct {
	At1, At2 *Atom
	Order    int
}

func (B *Bond) Weight() float64 {
	return float64(B.Order)
}

func (B *Bond) From() graph.Node {
	return B.At1
}

func (B *Bond) To() graph.Node {
	return B.At2
}

// ReversedEdge returns a new bond with the ends swapped. The receiver is not modified.
func (B *Bond) ReversedEdge() graph.Edge {
	return &Bond{At1: B.At2, At2: B.At1, Order: B.Order}
}

// Topology implements the gonum graph.Undirected and graph.WeightedUndirected
// interfaces over a Structure.
type Topology struct {
	atoms []*Atom
	bonds map[[2]int64]*Bond
}

func key(id1, id2 int64) [2]int64 {
	if id1 > id2 {
		id1, id2 = id2, id1
	}
	return [2]int64{id1, id2}
}

// New builds the graph of s. It returns an error if some neighbor
// entry refers to an atom that is not in s.
func New(s chem.Structure) (*Topology, error) {
	T := &Topology{atoms: make([]*Atom, len(s)), bonds: make(map[[2]int64]*Bond)}
	index := make(map[uint32]int, len(s))
	for i, at := range s {
		T.atoms[i] = &Atom{Atom: at, Index: i}
		index[at.ID] = i
	}
	for i, at := range s {
		for _, id := range at.Partners() {
			j, ok := index[id]
			if !ok {
				return nil, chem.NewError(chem.Infeasible, "chemgraph.New", "%s (atom %d) is bonded to atom id %d, which is not in the structure", at.Name, i, id)
			}
			k := key(int64(i), int64(j))
			if _, ok := T.bonds[k]; ok {
				continue
			}
			b := &Bond{At1: T.atoms[i], At2: T.atoms[j], Order: at.Order(id)}
			T.bonds[k] = b
			T.atoms[i].Bonds = append(T.atoms[i].Bonds, b)
			T.atoms[j].Bonds = append(T.atoms[j].Bonds, b)
		}
	}
	return T, nil
}

// Len returns the number of nodes in the graph.
func (T *Topology) Len() int {
	return len(T.atoms)
}

// Node returns the node with the given ID, or nil.
func (T *Topology) Node(id int64) graph.Node {
	if id < 0 || id >= int64(len(T.atoms)) {
		return nil
	}
	return T.atoms[id]
}

// Nodes returns all the nodes, in structure order.
func (T *Topology) Nodes() graph.Nodes {
	nodes := make([]graph.Node, len(T.atoms))
	for i, v := range T.atoms {
		nodes[i] = v
	}
	return iterator.NewOrderedNodes(nodes)
}

// From returns the nodes bonded to the node with the given ID.
func (T *Topology) From(id int64) graph.Nodes {
	n := T.Node(id)
	if n == nil {
		return graph.Empty
	}
	at := n.(*Atom)
	ret := make([]graph.Node, 0, len(at.Bonds))
	for _, b := range at.Bonds {
		if b.At1.Index == at.Index {
			ret = append(ret, b.At2)
		} else {
			ret = append(ret, b.At1)
		}
	}
	return iterator.NewOrderedNodes(ret)
}

func (T *Topology) HasEdgeBetween(id1, id2 int64) bool {
	_, ok := T.bonds[key(id1, id2)]
	return ok
}

// bond returns the bond between the two nodes, oriented from id1 to id2, or nil.
func (T *Topology) bond(id1, id2 int64) *Bond {
	b, ok := T.bonds[key(id1, id2)]
	if !ok {
		return nil
	}
	if b.At1.ID() != id1 {
		return b.ReversedEdge().(*Bond)
	}
	return b
}

// Edge returns the bond between the two nodes, or an untyped nil.
func (T *Topology) Edge(id1, id2 int64) graph.Edge {
	if b := T.bond(id1, id2); b != nil {
		return b
	}
	return nil
}

func (T *Topology) EdgeBetween(id1, id2 int64) graph.Edge {
	return T.Edge(id1, id2)
}

func (T *Topology) WeightedEdge(id1, id2 int64) graph.WeightedEdge {
	if b := T.bond(id1, id2); b != nil {
		return b
	}
	return nil
}

func (T *Topology) WeightedEdgeBetween(id1, id2 int64) graph.WeightedEdge {
	return T.WeightedEdge(id1, id2)
}

// Weight returns the bond order between the two nodes. A node has
// weight 0 to itself.
func (T *Topology) Weight(id1, id2 int64) (w float64, ok bool) {
	if id1 == id2 {
		return 0.0, true
	}
	b := T.bond(id1, id2)
	if b == nil {
		return 0, false
	}
	return b.Weight(), true
}

// Bonds returns every bond of the graph once.
func (T *Topology) Bonds() []*Bond {
	ret := make([]*Bond, 0, len(T.bonds))
	for _, at := range T.atoms {
		for _, b := range at.Bonds {
			if b.At1.Index == at.Index {
				ret = append(ret, b)
			}
		}
	}
	return ret
}
