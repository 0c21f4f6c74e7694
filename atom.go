/*
 * atom.go, part of govsepr.
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
	"sort"
	"sync/atomic"

	"gonum.org/v1/gonum/spatial/r3"
)

var lastID atomic.Uint32

// NewID returns a process-unique atom identity. Identities are never reused.
func NewID() uint32 {
	return lastID.Add(1)
}

// Identity is the rotation that leaves every vector unchanged.
var Identity = r3.Rotation{Real: 1}

// Atom is one node in a Structure. Neighbors holds one entry per
// bonded electron pair, so a double bond appears twice.
type Atom struct {
	Element
	ID          uint32
	Bonded      int //bonded electrons
	Lone        int //lone electrons
	Neighbors   []uint32
	Position    r3.Vec //skeletal (stick) position
	VdwPosition r3.Vec //space-filling position
	Frame       r3.Rotation
	Cylinders   []Cylinder
}

// NewAtom returns an atom of element e with a fresh identity and the given electron counts.
func NewAtom(e Element, lone, bonded int) *Atom {
	return &Atom{Element: e, ID: NewID(), Lone: lone, Bonded: bonded, Frame: Identity}
}

// Copy returns a deep copy of A. The copy keeps A's identity.
func (A *Atom) Copy() *Atom {
	r := new(Atom)
	*r = *A
	r.Neighbors = append([]uint32(nil), A.Neighbors...)
	r.Cylinders = append([]Cylinder(nil), A.Cylinders...)
	return r
}

// FormalCharge returns the valence electrons minus half the bonded electrons
// minus the lone electrons of A.
func (A *Atom) FormalCharge() int {
	return A.Valence - A.Bonded/2 - A.Lone
}

// Stability returns how many electrons A lacks to reach its stable
// shell. It is negative for overfilled atoms and always 0 for exception species.
func (A *Atom) Stability() int {
	if A.Exception {
		return 0
	}
	return A.Target() - A.Bonded - A.Lone
}

// Valid returns false if A has negative electron counts or if it
// holds more electrons than its shell allows. Only periods 1 and 2 are
// limited, the rest can expand their octets.
func (A *Atom) Valid() bool {
	if A.Bonded < 0 || A.Lone < 0 {
		return false
	}
	switch A.Period {
	case 1:
		return A.Bonded+A.Lone <= 2
	case 2:
		return A.Bonded+A.Lone <= 8
	}
	return true
}

// Order returns the number of bonded pairs between A and the atom with the given id.
func (A *Atom) Order(id uint32) int {
	var n int
	for _, v := range A.Neighbors {
		if v == id {
			n++
		}
	}
	return n
}

// Partners returns the distinct neighbor identities of A, in order of first appearance.
func (A *Atom) Partners() []uint32 {
	ret := make([]uint32, 0, len(A.Neighbors))
	for _, v := range A.Neighbors {
		if !containsID(ret, v) {
			ret = append(ret, v)
		}
	}
	return ret
}

// SortedPartners returns the distinct neighbor identities of A in increasing order.
func (A *Atom) SortedPartners() []uint32 {
	ret := A.Partners()
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}

// Slot returns the index of the first entry for id in A's neighbor list, or -1.
func (A *Atom) Slot(id uint32) int {
	for i, v := range A.Neighbors {
		if v == id {
			return i
		}
	}
	return -1
}

// IsHydrogen returns true if A is a hydrogen atom.
func (A *Atom) IsHydrogen() bool {
	return A.AtomicNumber == 1
}

func containsID(s []uint32, id uint32) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}
