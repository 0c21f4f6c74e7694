/*
 * bonds.go, part of govsepr.
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
	"gonum.org/v1/gonum/spatial/r3"
)

// Edge is one bond of a Structure, regardless of its multiplicity.
type Edge struct {
	Index int
	At1   *Atom
	At2   *Atom
	Dist  float64 //in the stick frame
	Order int
}

// Cross returns the atom at the other end of the bond from origin.
func (B *Edge) Cross(origin *Atom) *Atom {
	if origin.ID == B.At1.ID {
		return B.At2
	}
	if origin.ID == B.At2.ID {
		return B.At1
	}
	panic("Trying to cross a bond: The origin atom given is not present in the bond!") //I think this got to be a programming error, so a panic is warranted.
}

// Bond forms a single bond between a and b: each gets two more bonded electrons,
// loses one lone electron, and records the other as neighbor.
// Both atoms need at least one lone electron; otherwise Bond returns false
// and leaves them untouched. It also returns false if either atom ends up
// invalid, in which case the atoms are modified anyway, so callers that want
// to try a bond should work on copies.
func Bond(a, b *Atom) bool {
	if a == nil || b == nil {
		panic(ErrNilAtom)
	}
	if a.Lone < 1 || b.Lone < 1 {
		return false
	}
	a.Neighbors = append(a.Neighbors, b.ID)
	b.Neighbors = append(b.Neighbors, a.ID)
	a.Bonded += 2
	a.Lone--
	b.Bonded += 2
	b.Lone--
	return a.Valid() && b.Valid()
}

// BondSafe forms a bond between a and b like Bond, but returns an Overbonding
// error naming the first offending atom if the bond is not possible.
func BondSafe(a, b *Atom) error {
	if a.Lone < 1 {
		return NewOverbondingError("BondSafe", a.Name)
	}
	if b.Lone < 1 {
		return NewOverbondingError("BondSafe", b.Name)
	}
	Bond(a, b)
	if a.Lone < 0 || a.Stability() < 0 || !a.Valid() {
		return NewOverbondingError("BondSafe", a.Name)
	}
	if b.Lone < 0 || b.Stability() < 0 || !b.Valid() {
		return NewOverbondingError("BondSafe", b.Name)
	}
	return nil
}

// AddBondPair adds one shared electron pair between a and b without
// touching their lone electrons. The electrons come from the budget.
func AddBondPair(a, b *Atom) {
	a.Neighbors = append(a.Neighbors, b.ID)
	b.Neighbors = append(b.Neighbors, a.ID)
	a.Bonded += 2
	b.Bonded += 2
}

// PromoteBond turns one lone pair of a and one of b into an extra bond
// between them. It returns false, and does nothing, if either lacks a lone pair.
func PromoteBond(a, b *Atom) bool {
	if a.Lone < 2 || b.Lone < 2 {
		return false
	}
	a.Lone -= 2
	b.Lone -= 2
	AddBondPair(a, b)
	return true
}

// Bonds returns one Edge per pair of bonded atoms in S, in atom order.
func (S Structure) Bonds() []*Edge {
	idx := S.indexes()
	ret := make([]*Edge, 0, len(S))
	for i, at := range S {
		for _, id := range at.Partners() {
			j, ok := idx[id]
			if !ok || j < i {
				continue
			}
			other := S[j]
			ret = append(ret, &Edge{
				Index: len(ret),
				At1:   at,
				At2:   other,
				Dist:  r3.Norm(r3.Sub(other.Position, at.Position)),
				Order: at.Order(id),
			})
		}
	}
	return ret
}
