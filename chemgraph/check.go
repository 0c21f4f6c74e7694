/*
 * check.go, part of govsepr.
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

package chemgraph

import (
	"sort"

	chem "github.com/rmera/govsepr"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/graph/traverse"
)

// Check returns an error if a neighbor of some atom in s is not in s,
// if the neighbor lists are not symmetric, or if s is not a single connected
// molecule.
func Check(s chem.Structure) error {
	if err := s.CheckSymmetry(); err != nil {
		return chem.ErrDecorate(err, "Check")
	}
	T, err := New(s)
	if err != nil {
		return chem.ErrDecorate(err, "Check")
	}
	if c := topo.ConnectedComponents(T); len(c) > 1 {
		return chem.NewError(chem.Infeasible, "Check", "the structure has %d disconnected fragments", len(c))
	}
	return nil
}

// Components returns the connected fragments of s, each in structure order.
func Components(s chem.Structure) ([]chem.Structure, error) {
	T, err := New(s)
	if err != nil {
		return nil, chem.ErrDecorate(err, "Components")
	}
	comps := topo.ConnectedComponents(T)
	ret := make([]chem.Structure, 0, len(comps))
	for _, c := range comps {
		ret = append(ret, structure(s, c))
	}
	sort.Slice(ret, func(i, j int) bool { return s.Index(ret[i][0].ID) < s.Index(ret[j][0].ID) })
	return ret, nil
}

// Rings returns the rings of a cycle basis of s, smallest first. Each ring
// is given as its atoms in order around it.
func Rings(s chem.Structure) ([]chem.Structure, error) {
	T, err := New(s)
	if err != nil {
		return nil, chem.ErrDecorate(err, "Rings")
	}
	cycles := topo.UndirectedCyclesIn(T)
	ret := make([]chem.Structure, 0, len(cycles))
	for _, c := range cycles {
		//cycles come closed, with the first node repeated at the end.
		if len(c) > 1 && c[0].ID() == c[len(c)-1].ID() {
			c = c[:len(c)-1]
		}
		r := make(chem.Structure, len(c))
		for i, n := range c {
			r[i] = s[n.ID()]
		}
		ret = append(ret, r)
	}
	sort.SliceStable(ret, func(i, j int) bool { return len(ret[i]) < len(ret[j]) })
	return ret, nil
}

// RingSizes returns the number of atoms of each ring in s, smallest first.
func RingSizes(s chem.Structure) ([]int, error) {
	rings, err := Rings(s)
	if err != nil {
		return nil, chem.ErrDecorate(err, "RingSizes")
	}
	ret := make([]int, len(rings))
	for i, r := range rings {
		ret[i] = len(r)
	}
	return ret, nil
}

// Separation returns the number of bonds in the shortest path between the
// atoms with identities from and to, or -1 if they are not connected.
func Separation(s chem.Structure, from, to uint32) (int, error) {
	T, err := New(s)
	if err != nil {
		return -1, chem.ErrDecorate(err, "Separation")
	}
	i, j := s.Index(from), s.Index(to)
	if i < 0 || j < 0 {
		return -1, chem.NewError(chem.ParseFailure, "Separation", "atom not in the structure")
	}
	depth := -1
	var bf traverse.BreadthFirst
	bf.Walk(T, T.Node(int64(i)), func(n graph.Node, d int) bool {
		if n.ID() == int64(j) {
			depth = d
			return true
		}
		return false
	})
	return depth, nil
}

func structure(s chem.Structure, nodes []graph.Node) chem.Structure {
	idx := make([]int, len(nodes))
	for i, n := range nodes {
		idx[i] = int(n.ID())
	}
	sort.Ints(idx)
	ret := make(chem.Structure, len(idx))
	for i, v := range idx {
		ret[i] = s[v]
	}
	return ret
}
