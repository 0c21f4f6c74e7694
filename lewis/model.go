/*
 * model.go, part of govsepr.
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
)

// Model is a positioned inorganic structure plus what was learned building it.
type Model struct {
	Structure chem.Structure
	Budget    int  //valence electrons, charge included
	Index     int  //VSEPR table entry
	LonePairs int  //on the central atom
	Shape     string
	Optimized bool //the formal charge optimization changed the structure
}

// Predict runs the whole inorganic pipeline on formula: parsing, Lewis
// structure construction, formal charge optimization and positioning.
// bond is the length of the bonds in the stick frame.
func Predict(table chem.ElementSearcher, geo *geometry.Table, formula string, bond float64) (*Model, error) {
	elements, err := ReadFormula(table, formula)
	if err != nil {
		return nil, chem.ErrDecorate(err, "Predict")
	}
	s, err := Build(elements)
	if err != nil {
		return nil, chem.ErrDecorate(err, "Predict")
	}
	m := &Model{Budget: Budget(elements)}
	opt := OptimizeFormalCharge(s)
	m.Optimized = opt.TotalFormalCharge() < s.TotalFormalCharge()
	s = opt
	m.Index, err = Position(s, geo, bond)
	if err != nil {
		return nil, chem.ErrDecorate(err, "Predict")
	}
	m.Structure = s
	m.LonePairs = s[0].Lone / 2
	m.Shape = geometry.Shape(len(s)-1, m.LonePairs)
	return m, nil
}
