/*
 * align.go, part of govsepr.
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

package geometry

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

const appzero = 1e-9

// Identity is the rotation that does nothing.
var Identity = r3.Rotation{Real: 1}

// Up is the direction of the unit stick used for bond cylinders.
var Up = r3.Vec{Y: 1}

// AlignRotation returns the smallest rotation that takes the direction of from
// to the direction of to. Neither vector needs to be normalized, but
// both must be non-zero.
func AlignRotation(from, to r3.Vec) r3.Rotation {
	u := r3.Unit(from)
	v := r3.Unit(to)
	c := r3.Dot(u, v)
	if c > 1-appzero {
		return Identity
	}
	if c < -1+appzero {
		return r3.NewRotation(math.Pi, Perpendicular(u))
	}
	axis := r3.Cross(u, v)
	return r3.NewRotation(math.Acos(c), axis)
}

// Perpendicular returns a unit vector perpendicular to v.
func Perpendicular(v r3.Vec) r3.Vec {
	other := r3.Vec{X: 1}
	if math.Abs(r3.Unit(v).X) > 0.9 {
		other = r3.Vec{Y: 1}
	}
	return r3.Unit(r3.Cross(v, other))
}

// Compose returns the rotation that applies first and then second.
func Compose(second, first r3.Rotation) r3.Rotation {
	return r3.Rotation(quat.Mul(quat.Number(second), quat.Number(first)))
}

// Frame returns a rotation taking the template directions t0 and t1 as close
// as possible to d0 and d1. The bisector of the template pair goes exactly onto
// the bisector of the target pair and the two planes are made to coincide, so,
// when both pairs span the same angle, t0 goes to d0 and t1 to d1.
// Degenerate pairs fall back to aligning t0 with d0.
func Frame(t0, t1, d0, d1 r3.Vec) r3.Rotation {
	bt := r3.Add(r3.Unit(t0), r3.Unit(t1))
	bd := r3.Add(r3.Unit(d0), r3.Unit(d1))
	nt := r3.Cross(t0, t1)
	nd := r3.Cross(d0, d1)
	if r3.Norm(bt) < appzero || r3.Norm(bd) < appzero || r3.Norm(nt) < appzero || r3.Norm(nd) < appzero {
		return AlignRotation(t0, d0)
	}
	first := AlignRotation(bt, bd)
	axis := r3.Unit(bd)
	a := r3.Unit(project(first.Rotate(nt), axis))
	b := r3.Unit(project(nd, axis))
	angle := math.Atan2(r3.Dot(r3.Cross(a, b), axis), r3.Dot(a, b))
	if math.Abs(angle) < appzero {
		return first
	}
	return Compose(r3.NewRotation(angle, axis), first)
}

// removes from v its component along the unit vector axis.
func project(v, axis r3.Vec) r3.Vec {
	return r3.Sub(v, r3.Scale(r3.Dot(v, axis), axis))
}

// ZigZag returns the position of the ith atom of a zig-zag chain with
// bonds of the given length and tetrahedral angles, lying on the xy plane.
// Negative i and i beyond the chain end continue the pattern.
func ZigZag(i int, bond float64) r3.Vec {
	half := TetrahedralAngle / 2
	dx := bond * math.Sin(half)
	dy := bond * math.Cos(half)
	p := r3.Vec{X: float64(i) * dx}
	if i%2 != 0 {
		p.Y = dy
	}
	return p
}

// Polygon returns the vertices of a regular polygon with n sides of the given
// length, on the xy plane and centered on the origin.
func Polygon(n int, side float64) []r3.Vec {
	if n < 3 {
		return nil
	}
	radius := side / (2 * math.Sin(math.Pi/float64(n)))
	ret := make([]r3.Vec, n)
	for i := range ret {
		angle := 2 * math.Pi * float64(i) / float64(n)
		ret[i] = r3.Vec{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
	}
	return ret
}
