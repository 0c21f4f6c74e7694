/*
 * substituent.go, part of govsepr.
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

// Parent is the connection point of the parent chain.
const Parent = -1

// Substituent is a carbon fragment. The first atom of Components is the root,
// the one bonded to the parent chain. ConnectionPoint is the 1-based position
// on the parent chain where the root attaches, or Parent.
type Substituent struct {
	Components      chem.Structure
	ConnectionPoint int
	Ring            bool
}

// Root returns the atom of the substituent that bonds to the parent chain.
func (S Substituent) Root() *chem.Atom {
	return S.Components[0]
}

// Duplicate returns a deep copy of S in which every atom has a fresh identity.
// Neighbor entries pointing inside S are rewritten to the new identities,
// so the copy shares nothing with S.
func (S Substituent) Duplicate() Substituent {
	remap := make(map[uint32]uint32, len(S.Components))
	comps := make(chem.Structure, len(S.Components))
	for i, at := range S.Components {
		c := at.Copy()
		c.ID = chem.NewID()
		remap[at.ID] = c.ID
		comps[i] = c
	}
	for _, c := range comps {
		for j, id := range c.Neighbors {
			if n, ok := remap[id]; ok {
				c.Neighbors[j] = n
			}
		}
		for j := range c.Cylinders {
			cy := &c.Cylinders[j]
			if n, ok := remap[cy.From]; ok {
				cy.From = n
			}
			if n, ok := remap[cy.To]; ok {
				cy.To = n
			}
		}
	}
	return Substituent{Components: comps, ConnectionPoint: S.ConnectionPoint, Ring: S.Ring}
}

// chain builds n carbons bonded in sequence, closing the ring if asked, with
// extra additional bonds between the first two. The atoms are laid out on
// the xy plane and each gets a frame that matches its bonds with the
// tetrahedral template.
func (I *Interpreter) chain(n int, ring bool, extra int) (chem.Structure, error) {
	s := make(chem.Structure, n)
	for i := range s {
		s[i] = chem.NewAtom(I.carbon, I.carbon.Valence, 0)
		if i == 0 {
			continue
		}
		if err := chem.BondSafe(s[i], s[i-1]); err != nil {
			return nil, chem.ErrDecorate(err, "chain")
		}
	}
	if ring {
		if err := chem.BondSafe(s[0], s[n-1]); err != nil {
			return nil, chem.ErrDecorate(err, "chain")
		}
	}
	for i := 0; i < extra; i++ {
		if err := chem.BondSafe(s[0], s[1]); err != nil {
			return nil, chem.ErrDecorate(err, "chain")
		}
	}
	if err := I.layout(s, ring); err != nil {
		return nil, chem.ErrDecorate(err, "chain")
	}
	return s, nil
}

func (I *Interpreter) layout(s chem.Structure, ring bool) error {
	vdwBond := chem.BondLength(I.carbon, I.carbon, 1)
	var stick, vdw []r3.Vec
	if ring {
		stick = geometry.Polygon(len(s), I.opts.BondLength)
		vdw = geometry.Polygon(len(s), vdwBond)
	} else {
		for i := range s {
			stick = append(stick, geometry.ZigZag(i, I.opts.BondLength))
			vdw = append(vdw, geometry.ZigZag(i, vdwBond))
		}
	}
	template, err := I.geo.Directions(I.carbon.Capacity() - 1)
	if err != nil {
		return chem.NewError(chem.Infeasible, "layout", "%s", err.Error())
	}
	idx := make(map[uint32]int, len(s))
	for i, a := range s {
		idx[a.ID] = i
		a.Position = stick[i]
		a.VdwPosition = vdw[i]
	}
	for i, a := range s {
		dirs := make([]r3.Vec, 0, 2)
		for _, id := range a.Partners() {
			dirs = append(dirs, r3.Sub(s[idx[id]].Position, a.Position))
		}
		//open chain ends point to where the chain would continue.
		if len(dirs) < 2 && i == 0 {
			dirs = append(dirs, r3.Sub(geometry.ZigZag(-1, I.opts.BondLength), a.Position))
		}
		if len(dirs) < 2 {
			dirs = append(dirs, r3.Sub(geometry.ZigZag(i+1, I.opts.BondLength), a.Position))
		}
		a.Frame = geometry.Frame(template[0], template[1], dirs[0], dirs[1])
	}
	return nil
}
