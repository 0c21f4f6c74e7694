/*
 * geometry.go, part of govsepr.
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

// Package geometry holds the VSEPR direction table and the small amount of
// rigid-body math needed to place atoms along its directions.
package geometry

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"
)

// Domains is the largest number of electron domains in the table.
const Domains = 6

// TetrahedralAngle is the H-C-H angle of methane, in radians.
var TetrahedralAngle = math.Acos(-1.0 / 3.0)

// Table holds, for 1 to 6 electron domains, the unit vectors pointing to each domain.
type Table struct {
	dirs  [Domains][]r3.Vec
	order [Domains][]int
}

var (
	vsepr     *Table
	vseprOnce sync.Once
)

// VSEPR returns the process-wide direction table. It is built on the first call.
func VSEPR() *Table {
	vseprOnce.Do(func() {
		vsepr = newTable()
	})
	return vsepr
}

func newTable() *Table {
	c30 := math.Cos(math.Pi / 6)
	s30 := math.Sin(math.Pi / 6)
	s45 := math.Sin(math.Pi / 4)
	t := new(Table)
	t.dirs[0] = []r3.Vec{{X: 1}}
	t.dirs[1] = []r3.Vec{{X: 1}, {X: -1}}
	t.dirs[2] = []r3.Vec{{X: c30, Y: -s30}, {X: -c30, Y: -s30}, {Y: 1}}
	h := 1 / math.Sqrt2
	tetra := []r3.Vec{{X: -1, Z: -h}, {Y: 1, Z: h}, {Y: -1, Z: h}, {X: 1, Z: -h}}
	for i, v := range tetra {
		tetra[i] = r3.Unit(r3.Rotate(v, math.Pi/2, r3.Vec{X: 1}))
	}
	t.dirs[3] = tetra
	t.dirs[4] = []r3.Vec{{Z: -1}, {X: -c30, Z: s30}, {Y: -1}, {X: c30, Z: s30}, {Y: 1}}
	t.dirs[5] = []r3.Vec{{X: s45, Z: -s45}, {X: s45, Z: s45}, {X: -s45, Z: s45}, {X: -s45, Z: -s45}, {Y: 1}, {Y: -1}}
	for i := range t.order {
		t.order[i] = make([]int, i+1)
		for j := range t.order[i] {
			t.order[i][j] = j
		}
	}
	//axial positions first, so lone pairs stay equatorial
	t.order[4] = []int{2, 4, 0, 1, 3}
	return t
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	return Domains
}

// Directions returns a copy of the directions for the entry index.
func (t *Table) Directions(index int) ([]r3.Vec, error) {
	if index < 0 || index >= Domains {
		return nil, fmt.Errorf("no VSEPR configuration for %d electron domains", index+1)
	}
	return append([]r3.Vec(nil), t.dirs[index]...), nil
}

// Direction returns the slot-th direction of the entry index.
func (t *Table) Direction(index, slot int) (r3.Vec, error) {
	if index < 0 || index >= Domains {
		return r3.Vec{}, fmt.Errorf("no VSEPR configuration for %d electron domains", index+1)
	}
	if slot < 0 || slot >= len(t.dirs[index]) {
		return r3.Vec{}, fmt.Errorf("VSEPR configuration %d has no slot %d", index, slot)
	}
	return t.dirs[index][slot], nil
}

// Bonding returns the direction for the nth bonded atom around a center
// with the entry index. Bonded atoms fill the slots in a fixed order that leaves
// lone pairs where they are better accommodated.
func (t *Table) Bonding(index, n int) (r3.Vec, error) {
	if index < 0 || index >= Domains {
		return r3.Vec{}, fmt.Errorf("no VSEPR configuration for %d electron domains", index+1)
	}
	if n < 0 || n >= len(t.order[index]) {
		return r3.Vec{}, fmt.Errorf("VSEPR configuration %d has no slot %d", index, n)
	}
	return t.dirs[index][t.order[index][n]], nil
}

// LonePairs returns the directions left for lone pairs when bonded atoms occupy
// the first bonded slots of the entry index.
func (t *Table) LonePairs(index, bonded int) []r3.Vec {
	if index < 0 || index >= Domains || bonded >= len(t.order[index]) {
		return nil
	}
	ret := make([]r3.Vec, 0, len(t.order[index])-bonded)
	for _, s := range t.order[index][bonded:] {
		ret = append(ret, t.dirs[index][s])
	}
	return ret
}

// Index returns the table entry for a central atom in a species with
// atoms atoms (central included) and lonePairs lone pairs on the central atom.
// Diatomic species ignore the lone pairs.
func Index(atoms, lonePairs int) int {
	if atoms > 2 {
		return atoms - 2 + lonePairs
	}
	if atoms < 2 {
		return 0
	}
	return atoms - 2
}

var shapes = map[[2]int]string{
	{1, 0}: "linear",
	{1, 1}: "linear",
	{1, 2}: "linear",
	{1, 3}: "linear",
	{2, 0}: "linear",
	{2, 1}: "bent",
	{2, 2}: "bent",
	{2, 3}: "linear",
	{3, 0}: "trigonal planar",
	{3, 1}: "trigonal pyramidal",
	{3, 2}: "T-shaped",
	{4, 0}: "tetrahedral",
	{4, 1}: "seesaw",
	{4, 2}: "square planar",
	{5, 0}: "trigonal bipyramidal",
	{5, 1}: "square pyramidal",
	{6, 0}: "octahedral",
}

// Shape returns the name of the molecular shape of a center with bonded
// neighbors and lonePairs lone pairs (the AXnEm notation).
func Shape(bonded, lonePairs int) string {
	if bonded == 0 {
		return "single atom"
	}
	if s, ok := shapes[[2]int{bonded, lonePairs}]; ok {
		return s
	}
	return fmt.Sprintf("AX%dE%d", bonded, lonePairs)
}

// ElectronGeometry returns the name of the arrangement of the entry index.
func ElectronGeometry(index int) string {
	names := [Domains]string{"single", "linear", "trigonal planar", "tetrahedral", "trigonal bipyramidal", "octahedral"}
	if index < 0 || index >= Domains {
		return "unknown"
	}
	return names[index]
}
