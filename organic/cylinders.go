/*
 * cylinders.go, part of govsepr.
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

package organic

import (
	chem "github.com/rmera/govsepr"
	"github.com/rmera/govsepr/geometry"
	"gonum.org/v1/gonum/spatial/r3"
)

const maxDrawnOrder = 3

// Cylinders replaces the cylinders of every atom in s. Each bond is stored
// once, in the atom that comes first in s, with one cylinder per bonded pair
// up to a triple bond. width is the lateral spread of the cylinders of a
// multiple bond, and thinning scales the radius of bonds to hydrogen.
func Cylinders(s chem.Structure, width, thinning float64) {
	idx := make(map[uint32]int, len(s))
	for i, a := range s {
		idx[a.ID] = i
	}
	for i, a := range s {
		a.Cylinders = a.Cylinders[:0]
		for _, id := range a.SortedPartners() {
			j, ok := idx[id]
			if !ok || j < i {
				continue
			}
			other := s[j]
			dir := r3.Sub(other.Position, a.Position)
			length := r3.Norm(dir)
			if length == 0 {
				continue
			}
			order := a.Order(id)
			if order > maxDrawnOrder {
				order = maxDrawnOrder
			}
			scale := r3.Vec{X: 1, Y: 1, Z: 1}
			if a.IsHydrogen() || other.IsHydrogen() {
				scale.X, scale.Z = thinning, thinning
			}
			rot := geometry.AlignRotation(geometry.Up, dir)
			for k := 0; k < order; k++ {
				a.Cylinders = append(a.Cylinders, chem.Cylinder{
					From:     a.ID,
					To:       id,
					Order:    order,
					Slot:     k,
					Origin:   a.Position,
					Rotation: rot,
					Offset:   offset(order, k, width),
					Scale:    scale,
					Length:   length,
				})
			}
		}
	}
}

// offset returns the lateral displacement of the kth stick of a bond with
// the given order. The sticks are spread symmetrically around the bond axis.
func offset(order, k int, width float64) float64 {
	switch order {
	case 2:
		return width/3*float64(k+1) - width/2
	case 3:
		return width/2*float64(k) - width/2
	}
	return 0
}
