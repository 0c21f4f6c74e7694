/*
 * structure.go, part of govsepr.
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

package chem

import (
	"fmt"
	"sort"

	v3 "github.com/rmera/govsepr/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Structure is an ordered list of bonded atoms. For inorganic species
// the atom 0 is the central atom.
type Structure []*Atom

// Len returns the number of atoms in S.
func (S Structure) Len() int {
	return len(S)
}

// Atom returns the ith atom of S.
func (S Structure) Atom(i int) *Atom {
	if i < 0 || i >= len(S) {
		panic(ErrIndexOutRange)
	}
	return S[i]
}

// Copy returns a deep copy of S. Atoms keep their identities.
func (S Structure) Copy() Structure {
	ret := make(Structure, len(S))
	for i, v := range S {
		ret[i] = v.Copy()
	}
	return ret
}

func (S Structure) indexes() map[uint32]int {
	ret := make(map[uint32]int, len(S))
	for i, v := range S {
		ret[v.ID] = i
	}
	return ret
}

// Index returns the position in S of the atom with identity id, or -1.
func (S Structure) Index(id uint32) int {
	for i, v := range S {
		if v.ID == id {
			return i
		}
	}
	return -1
}

// ByID returns the atom with identity id, or nil.
func (S Structure) ByID(id uint32) *Atom {
	if i := S.Index(id); i >= 0 {
		return S[i]
	}
	return nil
}

// CountElectrons returns the electrons in S: all the lone electrons plus one
// electron per bonded electron on each atom, so each shared pair counts twice, once per side.
func (S Structure) CountElectrons() int {
	var total int
	for _, v := range S {
		total += v.Lone + v.Bonded/2
	}
	return total
}

// TotalFormalCharge returns the sum of the absolute formal charges of the atoms in S.
func (S Structure) TotalFormalCharge() int {
	var total int
	for _, v := range S {
		fc := v.FormalCharge()
		if fc < 0 {
			fc = -fc
		}
		total += fc
	}
	return total
}

// NetCharge returns the sum of the formal charges of the atoms in S.
func (S Structure) NetCharge() int {
	var total int
	for _, v := range S {
		total += v.FormalCharge()
	}
	return total
}

// CheckSymmetry returns an error if some neighbor reference in S is not
// matched by the same number of references in the opposite direction.
func (S Structure) CheckSymmetry() error {
	idx := S.indexes()
	for _, at := range S {
		for _, id := range at.Partners() {
			j, ok := idx[id]
			if !ok {
				return NewError(Infeasible, "CheckSymmetry", "atom %d (%s) refers to missing atom %d", at.ID, at.Name, id)
			}
			if S[j].Order(at.ID) != at.Order(id) {
				return NewError(Infeasible, "CheckSymmetry", "bond %d-%d has order %d on one side and %d on the other", at.ID, id, at.Order(id), S[j].Order(at.ID))
			}
		}
	}
	return nil
}

// Positions returns the stick positions of S, or the van der Waals ones if vdw is true.
func (S Structure) Positions(vdw bool) *v3.Matrix {
	ret := v3.Zeros(len(S))
	for i, v := range S {
		if vdw {
			ret.SetVec(i, v.VdwPosition)
		} else {
			ret.SetVec(i, v.Position)
		}
	}
	return ret
}

// SetPositions puts the vectors in m as the stick or van der Waals positions of S.
func (S Structure) SetPositions(m *v3.Matrix, vdw bool) {
	if m.NVecs() != len(S) {
		panic(v3.ErrShape)
	}
	for i, v := range S {
		if vdw {
			v.VdwPosition = m.Vec(i)
		} else {
			v.Position = m.Vec(i)
		}
	}
}

// Center subtracts the unweighted centroid from the positions of S. The stick and
// van der Waals sets are centered independently. It returns the centroids removed.
func (S Structure) Center() (stick, vdw r3.Vec) {
	return S.center(func(m *v3.Matrix) r3.Vec { return m.Centroid() })
}

// CenterExtent is like Center but uses the middle of the bounding box of each set.
func (S Structure) CenterExtent() (stick, vdw r3.Vec) {
	return S.center(func(m *v3.Matrix) r3.Vec {
		min, max := m.Extent()
		return r3.Scale(0.5, r3.Add(min, max))
	})
}

func (S Structure) center(mid func(*v3.Matrix) r3.Vec) (r3.Vec, r3.Vec) {
	if len(S) == 0 {
		return r3.Vec{}, r3.Vec{}
	}
	var ret [2]r3.Vec
	for i, vdw := range []bool{false, true} {
		m := S.Positions(vdw)
		ret[i] = mid(m)
		m.SubVec(m, ret[i])
		S.SetPositions(m, vdw)
	}
	return ret[0], ret[1]
}

// Formula returns a Hill-ordered formula string for S.
func (S Structure) Formula() string {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, v := range S {
		if _, ok := counts[v.Symbol]; !ok {
			order = append(order, v.Symbol)
		}
		counts[v.Symbol]++
	}
	var ret string
	write := func(sym string) {
		n, ok := counts[sym]
		if !ok {
			return
		}
		ret += sym
		if n > 1 {
			ret += fmt.Sprintf("%d", n)
		}
		delete(counts, sym)
	}
	if _, ok := counts["C"]; ok {
		write("C")
		write("H")
	}
	sort.Strings(order)
	for _, v := range order {
		write(v)
	}
	return ret
}
