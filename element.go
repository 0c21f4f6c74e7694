/*
 * element.go, part of govsepr.
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

import "image/color"

// Element contains the reference data for a chemical element.
// Radii are in Angstrom. Elements are passed around by value.
type Element struct {
	AtomicNumber      int
	Symbol            string
	Name              string
	Valence           int //valence electrons
	Period            int
	Exception         bool //can be stable with an incomplete octet
	Electronegativity float64
	AtomicRadius      float64
	VdwRadius         float64
	Covalent          [3]float64 //single, double and triple bond radii. 0 means not available.
	Color             color.RGBA
}

// UnknownElement is returned by searches for symbols that are not in a table.
var UnknownElement = Element{AtomicNumber: -1}

// Known returns true if e is a real element.
func (e Element) Known() bool {
	return e.AtomicNumber > 0
}

// Pseudo returns true if e is the synthetic element carrying a net charge.
func (e Element) Pseudo() bool {
	return e.AtomicNumber < 0 && e.Name == "" && e.Valence != 0
}

// ChargeElement returns the pseudo-element for a species with the given net charge.
// It only contributes -charge electrons to the budget.
func ChargeElement(charge int) Element {
	return Element{AtomicNumber: -1, Valence: -charge, Period: -1}
}

// Target returns the number of electrons e needs around it to be stable.
func (e Element) Target() int {
	if e.Period == 1 {
		return 2
	}
	return 8
}

// Capacity is the number of bonds e can form.
func (e Element) Capacity() int {
	c := e.Target() - e.Valence
	if c < 1 {
		return 1
	}
	return c
}

// CovalentRadius returns the covalent radius for the given bond order,
// or the single bond one if that order is not tabulated.
func (e Element) CovalentRadius(order int) float64 {
	if order > 3 {
		order = 3
	}
	if order >= 1 && e.Covalent[order-1] > 0 {
		return e.Covalent[order-1]
	}
	return e.Covalent[0]
}

// BondLength returns the sum of the covalent radii of a and b for the given bond order.
func BondLength(a, b Element, order int) float64 {
	return a.CovalentRadius(order) + b.CovalentRadius(order)
}
