/*
 * position.go, part of govsepr.
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

package lewis

import (
	chem "github.com/rmera/govsepr"
	"github.com/rmera/govsepr/geometry"
	"gonum.org/v1/gonum/spatial/r3"
)

// Position puts the central atom of s at the origin and each peripheral atom
// along a direction of the VSEPR configuration for s, at bond from the center
// in the stick frame, and at the sum of the covalent radii for the bond order
// in the van der Waals frame. It returns the table index used.
func Position(s chem.Structure, table *geometry.Table, bond float64) (int, error) {
	if len(s) == 0 {
		return 0, chem.NewError(chem.ParseFailure, "Position", "empty structure")
	}
	central := s[0]
	index := geometry.Index(len(s), central.Lone/2)
	if index >= geometry.Domains {
		return 0, chem.NewError(chem.Infeasible, "Position", "%d electron domains around %s are more than the VSEPR table supports", index+1, central.Name)
	}
	central.Position = r3.Vec{}
	central.VdwPosition = r3.Vec{}
	central.Frame = geometry.Identity
	for j, p := range s[1:] {
		dir, err := table.Bonding(index, j)
		if err != nil {
			return 0, chem.NewError(chem.Infeasible, "Position", "%s", err.Error())
		}
		p.Position = r3.Scale(bond, dir)
		p.VdwPosition = r3.Scale(chem.BondLength(central.Element, p.Element, central.Order(p.ID)), dir)
		p.Frame = geometry.Identity
	}
	return index, nil
}
