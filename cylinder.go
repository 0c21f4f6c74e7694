/*
 * cylinder.go, part of govsepr.
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
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Cylinder is the rigid transform that takes a unit stick, lying along
// the y axis from 0 to 1, to one of the sticks drawn for a bond.
// A bond of order n gets n cylinders, each with its own lateral Offset.
type Cylinder struct {
	From, To uint32
	Order    int
	Slot     int
	Origin   r3.Vec
	Rotation r3.Rotation //takes the y axis to the bond direction
	Offset   float64     //along the rotated x axis
	Scale    r3.Vec
	Length   float64
}

// Matrix returns the 4x4 model matrix for the cylinder, for column vectors.
// The unit stick is scaled, moved sideways by the offset, rotated and finally
// translated to the origin.
func (c Cylinder) Matrix() *mat.Dense {
	rot := c.Rotation.Mat()
	scale := [3]float64{c.Scale.X, c.Scale.Y * c.Length, c.Scale.Z}
	shift := r3.Add(c.Origin, c.Rotation.Rotate(r3.Vec{X: c.Offset}))
	m := mat.NewDense(4, 4, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.Set(i, j, rot.At(i, j)*scale[j])
		}
	}
	m.Set(0, 3, shift.X)
	m.Set(1, 3, shift.Y)
	m.Set(2, 3, shift.Z)
	m.Set(3, 3, 1)
	return m
}

// Ends returns the start and end points of the cylinder axis.
func (c Cylinder) Ends() (r3.Vec, r3.Vec) {
	start := r3.Add(c.Origin, c.Rotation.Rotate(r3.Vec{X: c.Offset}))
	end := r3.Add(start, c.Rotation.Rotate(r3.Vec{Y: c.Length * c.Scale.Y}))
	return start, end
}
