/*
 * lewis.go, part of govsepr.
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

// Package lewis builds Lewis structures for inorganic species with a single
// central atom, minimizes their formal charges and places them in 3D
// following the VSEPR table.
package lewis

import (
	chem "github.com/rmera/govsepr"
)

// rebond runs this many scans at most, which allows up to triple bonds.
const rebondScans = 2

// Build constructs the Lewis structure for the elements, which must come as
// returned by ReadFormula. The first element is the central atom, and it is
// bonded once to each of the others. The charge pseudo-element only adds
// to the electron budget.
// It returns an Infeasible error if the electrons can't be arranged in stable shells.
func Build(elements []chem.Element) (chem.Structure, error) {
	if len(elements) == 0 || !elements[0].Known() {
		return nil, chem.NewError(chem.ParseFailure, "Build", "no atoms to build a structure from")
	}
	budget := Budget(elements)
	s := make(chem.Structure, 0, len(elements))
	for _, e := range elements {
		if !e.Known() {
			continue
		}
		s = append(s, chem.NewAtom(e, 0, 0))
	}
	central := s[0]
	for _, p := range s[1:] {
		chem.AddBondPair(central, p)
		budget -= 2
	}
	for _, p := range s[1:] {
		budget -= fill(p)
	}
	budget -= fill(central)
	if budget < 0 {
		budget = rebond(s, budget)
	}
	if budget > 0 && central.Period >= 3 {
		central.Lone += budget
		budget = 0
	}
	if (central.Stability() != 0 && central.Period < 3) || budget != 0 {
		return nil, chem.NewError(chem.Infeasible, "Build", "a Lewis structure is not possible for %s (%d electrons left)", s.Formula(), budget)
	}
	return s, nil
}

// fill adds lone pairs to a until it is stable, and returns the electrons used.
func fill(a *chem.Atom) int {
	var used int
	for a.Stability() > 0 {
		a.Lone += 2
		used += 2
	}
	return used
}

// rebond turns pairs of lone pairs, one on the central atom and one on a
// peripheral atom, into extra bonds until the budget is balanced, and returns
// the new budget.
func rebond(s chem.Structure, budget int) int {
	central := s[0]
	for scan := 0; scan < rebondScans; scan++ {
		for _, p := range s[1:] {
			if budget >= 0 {
				return budget
			}
			if chem.PromoteBond(p, central) {
				budget += 2
			}
		}
	}
	return budget
}
