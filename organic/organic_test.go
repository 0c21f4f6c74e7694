/*
 * organic_test.go, part of govsepr.
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
	"errors"
	"math"
	"reflect"
	"testing"

	chem "github.com/rmera/govsepr"
	"github.com/rmera/govsepr/geometry"
	"gonum.org/v1/gonum/spatial/r3"
)

func interpreter(Te *testing.T) *Interpreter {
	Te.Helper()
	I, err := New(chem.DefaultTable(), geometry.VSEPR(), Options{})
	if err != nil {
		Te.Fatal(err)
	}
	return I
}

func TestTokenize(Te *testing.T) {
	cases := map[string][]string{
		"propane":                 {"propane"},
		"2-methylpropane":         {"2", "methyl", "propane"},
		"2,2-dimethylpropane":     {"2,2", "dimethyl", "propane"},
		"2-Methyl-3-ethylpentane": {"2", "methyl", "3", "ethyl", "pentane"},
		"2-cyclopropylbutane":     {"2", "cyclopropyl", "butane"},
		"2--methylpropane":        {"2", "", "methyl", "propane"},
		"methyl":                  {"methyl"},
	}
	for in, want := range cases {
		got := Tokenize(in)
		if !reflect.DeepEqual(got, want) {
			Te.Errorf("%q: got %q, expected %q", in, got, want)
		}
	}
}

func TestChainLength(Te *testing.T) {
	cases := []struct {
		name       string
		length     int
		multiplier int
	}{
		{"methyl", 1, 0},
		{"ethyl", 2, 0},
		{"propane", 3, 0},
		{"dimethyl", 1, 2},
		{"triethyl", 2, 3},
		{"tetrakispropyl", 3, 4},
		{"pentane", 5, 0},
		{"cyclohexane", 6, 0},
		{"decane", 10, 0},
		{"ylidene", 0, 0},
	}
	for _, c := range cases {
		l, m := ChainLength(c.name)
		if l != c.length || m != c.multiplier {
			Te.Errorf("%s: got %d/%d, expected %d/%d", c.name, l, m, c.length, c.multiplier)
		}
	}
}

func TestInterpretSubstituent(Te *testing.T) {
	I := interpreter(Te)
	subs, err := I.InterpretSubstituent("dimethyl", "2,3")
	if err != nil {
		Te.Fatal(err)
	}
	if len(subs) != 2 || subs[0].ConnectionPoint != 2 || subs[1].ConnectionPoint != 3 {
		Te.Fatalf("Wrong substituents: %v", subs)
	}
	if subs[0].Root().ID == subs[1].Root().ID {
		Te.Error("Duplicated substituents share identities")
	}
	subs, err = I.InterpretSubstituent("cyclopropyl", "1")
	if err != nil {
		Te.Fatal(err)
	}
	ring := subs[0].Components
	if len(ring) != 3 || !subs[0].Ring {
		Te.Fatalf("cyclopropyl should be a 3-carbon ring, got %d atoms", len(ring))
	}
	for _, a := range ring {
		if len(a.Partners()) != 2 {
			Te.Errorf("Ring carbon with %d partners", len(a.Partners()))
		}
	}
	p, err := I.InterpretSubstituent("propane", "")
	if err != nil {
		Te.Fatal(err)
	}
	if p[0].ConnectionPoint != Parent || len(p[0].Components) != 3 {
		Te.Errorf("Wrong parent chain: %d atoms, connection %d", len(p[0].Components), p[0].ConnectionPoint)
	}
}

func TestDuplicate(Te *testing.T) {
	I := interpreter(Te)
	subs, err := I.InterpretSubstituent("propyl", "1")
	if err != nil {
		Te.Fatal(err)
	}
	orig := subs[0]
	dup := orig.Duplicate()
	old := make(map[uint32]bool)
	for _, a := range orig.Components {
		old[a.ID] = true
	}
	fresh := make(map[uint32]bool)
	for i, a := range dup.Components {
		if old[a.ID] {
			Te.Errorf("Atom %d kept its identity", i)
		}
		fresh[a.ID] = true
		if a.Position != orig.Components[i].Position {
			Te.Errorf("Atom %d moved in the copy", i)
		}
	}
	for _, a := range dup.Components {
		for _, n := range a.Neighbors {
			if !fresh[n] {
				Te.Errorf("Neighbor %d of the copy points outside it", n)
			}
		}
	}
	dup.Components[0].Lone = 99
	if orig.Components[0].Lone == 99 {
		Te.Error("The copy shares atoms with the original")
	}
}

func checkMolecule(Te *testing.T, name string, s chem.Structure) {
	Te.Helper()
	for _, a := range s {
		if a.Stability() != 0 || a.Lone != 0 {
			Te.Errorf("%s: %s with %d bonded and %d lone electrons", name, a.Name, a.Bonded, a.Lone)
		}
	}
	if err := s.CheckSymmetry(); err != nil {
		Te.Errorf("%s: %s", name, err)
	}
	var c r3.Vec
	for _, a := range s {
		c = r3.Add(c, a.Position)
	}
	if r3.Norm(c)/float64(len(s)) > 1e-9 {
		Te.Errorf("%s is not centered: %v", name, r3.Scale(1/float64(len(s)), c))
	}
	for _, b := range s.Bonds() {
		if math.Abs(b.Dist-1) > 1e-6 {
			Te.Errorf("%s: %s-%s bond of length %f", name, b.At1.Symbol, b.At2.Symbol, b.Dist)
		}
	}
	//in bond length units. Staggered vicinal hydrogens are 1.0 apart.
	const closest = 0.6
	for i, a := range s {
		for _, b := range s[i+1:] {
			if a.Order(b.ID) > 0 {
				continue
			}
			if d := r3.Norm(r3.Sub(a.Position, b.Position)); d < closest {
				Te.Errorf("%s: %s %d and %s %d are %.3f apart", name, a.Symbol, a.ID, b.Symbol, b.ID, d)
			}
		}
	}
}

func TestInterpret(Te *testing.T) {
	I := interpreter(Te)
	cases := []struct {
		name    string
		atoms   int
		carbons int
		bonds   int
	}{
		{"methane", 5, 1, 4},
		{"propane", 11, 3, 10},
		{"2-methylpropane", 14, 4, 13},
		{"2,2-dimethylpropane", 17, 5, 16},
		{"2,3-dimethylbutane", 20, 6, 19},
		{"3-ethylpentane", 23, 7, 22},
		{"3-propylhexane", 29, 9, 28},
		{"4-ethyl-2-methylheptane", 32, 10, 31},
		{"2,4-dimethylpentane", 23, 7, 22},
		{"3,3-diethylpentane", 29, 9, 28},
		{"2-cyclohexylpropane", 27, 9, 27},
		{"cyclohexane", 18, 6, 18},
		{"2-cyclopropylbutane", 21, 7, 21},
		{"ethene", 6, 2, 5},
		{"ethyne", 4, 2, 3},
		{"Propane", 11, 3, 10},
	}
	for _, c := range cases {
		s, err := I.Interpret(c.name)
		if err != nil {
			Te.Errorf("%s: %s", c.name, err)
			continue
		}
		if len(s) != c.atoms {
			Te.Errorf("%s: %d atoms, expected %d", c.name, len(s), c.atoms)
			continue
		}
		var carbons int
		for _, a := range s {
			if a.Symbol == "C" {
				carbons++
			}
		}
		if carbons != c.carbons {
			Te.Errorf("%s: %d carbons, expected %d", c.name, carbons, c.carbons)
		}
		if b := len(s.Bonds()); b != c.bonds {
			Te.Errorf("%s: %d bonds, expected %d", c.name, b, c.bonds)
		}
		if c.name != "ethene" && c.name != "ethyne" {
			checkMolecule(Te, c.name, s)
		}
	}
	s, err := I.Interpret("ethene")
	if err != nil {
		Te.Fatal(err)
	}
	var c1, c2 *chem.Atom
	for _, a := range s {
		if a.Symbol == "C" {
			if c1 == nil {
				c1 = a
			} else {
				c2 = a
			}
		}
	}
	if c1.Order(c2.ID) != 2 {
		Te.Errorf("Ethene should have a double bond, got order %d", c1.Order(c2.ID))
	}
}

func TestPlacementAngles(Te *testing.T) {
	I := interpreter(Te)
	s, err := I.Interpret("2,2-dimethylpropane")
	if err != nil {
		Te.Fatal(err)
	}
	//the central carbon is the only one with four carbon partners.
	for _, a := range s {
		var carbons int
		for _, id := range a.Partners() {
			if s.ByID(id).Symbol == "C" {
				carbons++
			}
		}
		if a.Symbol != "C" || carbons != 4 {
			continue
		}
		var dirs []r3.Vec
		for _, id := range a.Partners() {
			dirs = append(dirs, r3.Sub(s.ByID(id).Position, a.Position))
		}
		for i := range dirs {
			for j := i + 1; j < len(dirs); j++ {
				angle := math.Acos(r3.Cos(dirs[i], dirs[j]))
				if math.Abs(angle-geometry.TetrahedralAngle) > 1e-6 {
					Te.Errorf("Angle of %f degrees around the central carbon", angle*180/math.Pi)
				}
			}
		}
		return
	}
	Te.Error("No carbon with four partners in neopentane")
}

func TestPlaceSeparatesCarbons(Te *testing.T) {
	I := interpreter(Te)
	//1,3 carbons are 1.633 bond lengths apart; nothing unbonded should be closer.
	for _, name := range []string{"3-ethylpentane", "3-propylhexane", "4-ethyl-2-methylheptane", "3,3-diethylpentane", "2-cyclohexylpropane"} {
		s, err := I.Interpret(name)
		if err != nil {
			Te.Errorf("%s: %s", name, err)
			continue
		}
		for i, a := range s {
			if a.Symbol != "C" {
				continue
			}
			for _, b := range s[i+1:] {
				if b.Symbol != "C" || a.Order(b.ID) > 0 {
					continue
				}
				if d := r3.Norm(r3.Sub(a.Position, b.Position)); d < 1.55 {
					Te.Errorf("%s: unbonded carbons %.3f apart", name, d)
				}
			}
		}
	}
}

func TestVdwPositions(Te *testing.T) {
	I := interpreter(Te)
	s, err := I.Interpret("2-methylpropane")
	if err != nil {
		Te.Fatal(err)
	}
	for _, a := range s {
		for _, id := range a.Partners() {
			b := s.ByID(id)
			want := chem.BondLength(a.Element, b.Element, 1)
			if d := r3.Norm(r3.Sub(a.VdwPosition, b.VdwPosition)); math.Abs(d-want) > 1e-6 {
				Te.Errorf("%s-%s van der Waals distance %f, expected %f", a.Symbol, b.Symbol, d, want)
			}
		}
	}
}

func TestCylinders(Te *testing.T) {
	I := interpreter(Te)
	s, err := I.Interpret("ethene")
	if err != nil {
		Te.Fatal(err)
	}
	var total, double, thin int
	for _, a := range s {
		for _, c := range a.Cylinders {
			total++
			if c.Order == 2 {
				double++
			}
			if c.Scale.X != 1 {
				thin++
			}
			start, end := c.Ends()
			if c.Order == 1 {
				if r3.Norm(r3.Sub(start, a.Position)) > 1e-9 || r3.Norm(r3.Sub(end, s.ByID(c.To).Position)) > 1e-6 {
					Te.Errorf("Single bond cylinder does not join its atoms: %v %v", start, end)
				}
			}
			m := c.Matrix()
			if r, cc := m.Dims(); r != 4 || cc != 4 || m.At(3, 3) != 1 {
				Te.Error("Malformed cylinder matrix")
			}
		}
	}
	if total != 6 || double != 2 || thin != 4 {
		Te.Errorf("Ethene should have 6 cylinders, 2 for the double bond and 4 thin ones, got %d, %d, %d", total, double, thin)
	}
}

func TestInterpretFailures(Te *testing.T) {
	I := interpreter(Te)
	for _, name := range []string{
		"",
		"methyl",
		"water",
		"x-methylpropane",
		"2x-methylpropane",
		"0-methylpropane",
		"5-methylpropane",
		"methylpropane",
		"2-propane",
		"2,3-methylbutane",
		"2-dimethylbutane",
		"cyclopropylbutane",
		"2--methylpropane",
		"cycloethane",
		"methene",
		"2-methylylbutane-",
	} {
		s, err := I.Interpret(name)
		if err == nil || s != nil {
			Te.Errorf("%q should fail", name)
			continue
		}
		if !chem.IsKind(err, chem.ParseFailure) {
			Te.Errorf("%q: wrong error kind %v (%s)", name, chem.KindOf(err), err)
		}
	}
	_, err := I.Interpret("2,2,2-trimethylpropane")
	if !chem.IsKind(err, chem.Overbonding) {
		Te.Fatalf("Too many substituents should overbond a carbon, got %v", err)
	}
	var ce *chem.CError
	if !errors.As(err, &ce) || ce.Atom() != "carbon" {
		Te.Errorf("The overbonded atom should be named, got %v", err)
	}
}

func TestIsOrganic(Te *testing.T) {
	for in, want := range map[string]bool{"propane": true, "Ethyne ": true, "2-methylbutene": true, "H2O": false, "SO4 2-": false} {
		if IsOrganic(in) != want {
			Te.Errorf("IsOrganic(%q) should be %v", in, want)
		}
	}
}
