/*
 * place.go, part of govsepr.
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
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	chem "github.com/rmera/govsepr"
	"github.com/rmera/govsepr/geometry"
	v3 "github.com/rmera/govsepr/v3"
)

// direction returns the world direction of the slot-th bond of a, given the
// VSEPR entry for its bond capacity and its frame.
func (I *Interpreter) direction(a *chem.Atom, slot int) (r3.Vec, error) {
	d, err := I.geo.Direction(a.Capacity()-1, slot)
	if err != nil {
		return r3.Vec{}, chem.NewError(chem.Infeasible, "direction", "%s: %s", a.Name, err.Error())
	}
	return a.Frame.Rotate(d), nil
}

// FillHydrogens bonds a hydrogen to every free bonding slot of the atoms in
// s, along the direction of the slot, and returns s with the hydrogens
// appended. Hydrogens are bonded to slots in order, after the existing neighbors.
func (I *Interpreter) FillHydrogens(s chem.Structure) (chem.Structure, error) {
	for _, a := range s[:len(s):len(s)] {
		if a.IsHydrogen() {
			continue
		}
		vdwBond := chem.BondLength(a.Element, I.hydrogen, 1)
		for slot := len(a.Neighbors); slot < a.Capacity(); slot++ {
			dir, err := I.direction(a, slot)
			if err != nil {
				return nil, chem.ErrDecorate(err, "FillHydrogens")
			}
			h := chem.NewAtom(I.hydrogen, I.hydrogen.Valence, 0)
			if err := chem.BondSafe(h, a); err != nil {
				return nil, chem.ErrDecorate(err, "FillHydrogens")
			}
			h.Position = r3.Add(a.Position, r3.Scale(I.opts.BondLength, dir))
			h.VdwPosition = r3.Add(a.VdwPosition, r3.Scale(vdwBond, dir))
			h.Frame = a.Frame
			s = append(s, h)
		}
	}
	return s, nil
}

// rolls is the number of orientations about the bond to the parent chain
// that Place tries for a substituent.
const rolls = 12

// anchor returns the stick position the root of sub takes when bonded to
// target, and the direction of that bond from target.
func (I *Interpreter) anchor(sub Substituent, target *chem.Atom) (r3.Vec, r3.Vec, error) {
	d, err := I.direction(target, target.Slot(sub.Root().ID))
	if err != nil {
		return r3.Vec{}, r3.Vec{}, chem.ErrDecorate(err, "anchor")
	}
	return r3.Add(target.Position, r3.Scale(I.opts.BondLength, d)), d, nil
}

// Place moves the already bonded substituent sub as a rigid body so its root
// sits at one bond length from target, along the direction of the target
// slot that holds the bond, and the root's own bond to target points back to it.
// The turn about that bond is picked among evenly spaced orientations, the
// first of them staggered with the first other bond of target, as the one
// that keeps the atoms of sub beyond the root farthest from the positions
// in around. The stick and van der Waals coordinates are moved independently,
// and the frames of the substituent atoms are rotated along.
func (I *Interpreter) Place(sub Substituent, target *chem.Atom, around []r3.Vec) error {
	root := sub.Root()
	stickTarget, d, err := I.anchor(sub, target)
	if err != nil {
		return chem.ErrDecorate(err, "Place")
	}
	rs := root.Slot(target.ID)
	u, err := I.direction(root, rs)
	if err != nil {
		return chem.ErrDecorate(err, "Place")
	}
	w, err := I.direction(root, otherSlot(rs))
	if err != nil {
		return chem.ErrDecorate(err, "Place")
	}
	e, err := I.direction(target, otherSlot(target.Slot(root.ID)))
	if err != nil {
		return chem.ErrDecorate(err, "Place")
	}
	axis := r3.Unit(d)
	//the part of e across the bond; w goes opposite to it in the staggered turn.
	across := r3.Unit(r3.Sub(e, r3.Scale(r3.Dot(e, axis), axis)))
	cos := r3.Cos(u, w)
	sin := math.Sqrt(math.Max(0, 1-cos*cos))

	stick := sub.Components.Positions(false)
	moved := v3.Zeros(stick.NVecs())
	R := geometry.Identity
	best := -1.0
	for k := 0; k < rolls; k++ {
		q := r3.Rotate(across, 2*math.Pi*float64(k)/rolls, axis)
		wp := r3.Sub(r3.Scale(-cos, axis), r3.Scale(sin, q))
		cand := geometry.Frame(u, w, r3.Scale(-1, axis), wp)
		moved.Transform(stick, cand, root.Position, stickTarget)
		if c := clearance(moved, around); c > best+1e-9 {
			best, R = c, cand
		}
	}
	vdwBond := chem.BondLength(root.Element, target.Element, 1)
	vdwTarget := r3.Add(target.VdwPosition, r3.Scale(vdwBond, d))
	stick.Transform(stick, R, root.Position, stickTarget)
	vdw := sub.Components.Positions(true)
	vdw.Transform(vdw, R, root.VdwPosition, vdwTarget)
	sub.Components.SetPositions(stick, false)
	sub.Components.SetPositions(vdw, true)
	for _, a := range sub.Components {
		a.Frame = geometry.Compose(R, a.Frame)
	}
	return nil
}

// otherSlot returns the first bonding slot that is not slot.
func otherSlot(slot int) int {
	if slot == 0 {
		return 1
	}
	return 0
}

// clearance returns the shortest distance between the vectors of m, except the
// first one, and the positions in around.
func clearance(m *v3.Matrix, around []r3.Vec) float64 {
	ret := math.Inf(1)
	for i := 1; i < m.NVecs(); i++ {
		v := m.Vec(i)
		for _, p := range around {
			ret = math.Min(ret, r3.Norm(r3.Sub(v, p)))
		}
	}
	return ret
}
