/*
 * organic.go, part of govsepr.
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

// Package organic builds hydrocarbons from simple IUPAC names, such as
// "2,2-dimethylpropane" or "2-cyclopropylbutane". Alkane, alkene and alkyne
// parent chains are supported, with alkyl and cycloalkyl substituents.
package organic

import (
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	chem "github.com/rmera/govsepr"
	"github.com/rmera/govsepr/geometry"
)

// Options are the lengths and factors used to lay out and draw a molecule.
type Options struct {
	BondLength       float64 //stick-frame bond length
	StickSetWidth    float64 //lateral spread of the sticks of a multiple bond
	HydrogenThinning float64 //stick radius factor for bonds to hydrogen
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{BondLength: 1.0, StickSetWidth: 0.3, HydrogenThinning: 0.7}
}

// Interpreter turns organic names into positioned structures.
type Interpreter struct {
	table    chem.ElementSearcher
	geo      *geometry.Table
	opts     Options
	carbon   chem.Element
	hydrogen chem.Element
}

// New returns an interpreter that takes its elements from table and its
// directions from geo. Zero fields in opts take their default values.
func New(table chem.ElementSearcher, geo *geometry.Table, opts Options) (*Interpreter, error) {
	def := DefaultOptions()
	if opts.BondLength <= 0 {
		opts.BondLength = def.BondLength
	}
	if opts.StickSetWidth <= 0 {
		opts.StickSetWidth = def.StickSetWidth
	}
	if opts.HydrogenThinning <= 0 {
		opts.HydrogenThinning = def.HydrogenThinning
	}
	I := &Interpreter{table: table, geo: geo, opts: opts}
	I.carbon = table.Search("C")
	I.hydrogen = table.Search("H")
	if !I.carbon.Known() || !I.hydrogen.Known() {
		return nil, chem.NewError(chem.ParseFailure, "organic.New", "the element table lacks carbon or hydrogen")
	}
	return I, nil
}

// IsOrganic returns true if name looks like the name of a hydrocarbon,
// that is, if it ends in one of the parent chain suffixes.
func IsOrganic(name string) bool {
	_, ok := parentSuffix(strings.ToLower(strings.TrimSpace(name)))
	return ok
}

// Interpret builds the molecule named name. The substituents are bonded to
// the parent chain, every carbon is saturated with hydrogens, the
// substituents are moved to their places, the whole is centered, and the
// bond cylinders are computed. Substituent atoms come first in the result,
// followed by the parent chain and its hydrogens.
func (I *Interpreter) Interpret(name string) (chem.Structure, error) {
	subs, err := I.FindSubstituents(name)
	if err != nil {
		return nil, chem.ErrDecorate(err, "Interpret")
	}
	parent := subs[len(subs)-1]
	subs = subs[:len(subs)-1]
	chain := len(parent.Components)
	for _, s := range subs {
		if s.ConnectionPoint < 1 || s.ConnectionPoint > chain {
			return nil, chem.NewError(chem.ParseFailure, "Interpret", "locant %d out of a %d-carbon parent chain", s.ConnectionPoint, chain)
		}
		if err := chem.BondSafe(s.Root(), parent.Components[s.ConnectionPoint-1]); err != nil {
			return nil, chem.ErrDecorate(err, "Interpret")
		}
	}
	for i := range subs {
		if subs[i].Components, err = I.FillHydrogens(subs[i].Components); err != nil {
			return nil, chem.ErrDecorate(err, "Interpret")
		}
	}
	if parent.Components, err = I.FillHydrogens(parent.Components); err != nil {
		return nil, chem.ErrDecorate(err, "Interpret")
	}
	//roots of the substituents still to be placed are kept clear too.
	anchors := make([]r3.Vec, len(subs))
	for i, s := range subs {
		if anchors[i], _, err = I.anchor(s, parent.Components[s.ConnectionPoint-1]); err != nil {
			return nil, chem.ErrDecorate(err, "Interpret")
		}
	}
	var placed []r3.Vec
	for _, a := range parent.Components {
		placed = append(placed, a.Position)
	}
	for i, s := range subs {
		target := parent.Components[s.ConnectionPoint-1]
		around := make([]r3.Vec, 0, len(placed)+len(anchors))
		for _, p := range placed {
			if p != target.Position {
				around = append(around, p)
			}
		}
		around = append(around, anchors[i+1:]...)
		if err := I.Place(s, target, around); err != nil {
			return nil, chem.ErrDecorate(err, "Interpret")
		}
		for _, a := range s.Components {
			placed = append(placed, a.Position)
		}
	}
	var ret chem.Structure
	for _, s := range subs {
		ret = append(ret, s.Components...)
	}
	ret = append(ret, parent.Components...)
	ret.Center()
	Cylinders(ret, I.opts.StickSetWidth, I.opts.HydrogenThinning)
	return ret, nil
}

// FindSubstituents splits name into substituents and builds each of them.
// Each substituent name must be preceded by its locants. The parent chain
// is the last element of the returned slice.
func (I *Interpreter) FindSubstituents(name string) ([]Substituent, error) {
	tokens := Tokenize(name)
	last := len(tokens) - 1
	if tokens[last] == "" {
		return nil, chem.NewError(chem.ParseFailure, "FindSubstituents", "no parent chain in %q", name)
	}
	var subs []Substituent
	for i := last - 1; i >= 0; i-- {
		t := tokens[i]
		if hasDigit(t) {
			if hasDigit(tokens[i+1]) || i+1 == last {
				return nil, chem.NewError(chem.ParseFailure, "FindSubstituents", "locants %q are not followed by a substituent in %q", t, name)
			}
			continue
		}
		if i == 0 || !hasDigit(tokens[i-1]) {
			return nil, chem.NewError(chem.ParseFailure, "FindSubstituents", "substituent %q has no locants in %q", t, name)
		}
		s, err := I.InterpretSubstituent(t, tokens[i-1])
		if err != nil {
			return nil, chem.ErrDecorate(err, "FindSubstituents")
		}
		subs = append(subs, s...)
	}
	p, err := I.InterpretSubstituent(tokens[last], "")
	if err != nil {
		return nil, chem.ErrDecorate(err, "FindSubstituents")
	}
	return append(subs, p...), nil
}

// InterpretSubstituent builds the fragment called name. A parent chain name
// (ending in ane, ene or yne) takes no locants and gives one Substituent with
// the Parent connection point. Any other name must end in "yl" and gives one
// independent copy of the fragment per locant.
func (I *Interpreter) InterpretSubstituent(name, locants string) ([]Substituent, error) {
	if name == "" {
		return nil, chem.NewError(chem.ParseFailure, "InterpretSubstituent", "empty name")
	}
	length, multiplier := ChainLength(name)
	if length == 0 {
		return nil, chem.NewError(chem.ParseFailure, "InterpretSubstituent", "no chain length in %q", name)
	}
	ring := strings.Contains(name, "cyclo")
	if ring && length < 3 {
		return nil, chem.NewError(chem.ParseFailure, "InterpretSubstituent", "a ring needs at least 3 carbons, %q has %d", name, length)
	}
	suffix, isParent := parentSuffix(name)
	if isParent {
		if locants != "" || multiplier != 0 {
			return nil, chem.NewError(chem.ParseFailure, "InterpretSubstituent", "%q can only be a parent chain", name)
		}
		extra := parents[suffix]
		if extra > 0 && length < 2 {
			return nil, chem.NewError(chem.ParseFailure, "InterpretSubstituent", "%q needs at least two carbons", name)
		}
		s, err := I.chain(length, ring, extra)
		if err != nil {
			return nil, chem.ErrDecorate(err, "InterpretSubstituent")
		}
		return []Substituent{{Components: s, ConnectionPoint: Parent, Ring: ring}}, nil
	}
	if !strings.HasSuffix(name, "yl") {
		return nil, chem.NewError(chem.ParseFailure, "InterpretSubstituent", "unknown suffix in %q", name)
	}
	points, err := ParseLocants(locants)
	if err != nil {
		return nil, chem.ErrDecorate(err, "InterpretSubstituent")
	}
	expected := 1
	if multiplier > 0 {
		expected = multiplier
	}
	if len(points) != expected {
		return nil, chem.NewError(chem.ParseFailure, "InterpretSubstituent", "%q needs %d locants, got %q", name, expected, locants)
	}
	s, err := I.chain(length, ring, 0)
	if err != nil {
		return nil, chem.ErrDecorate(err, "InterpretSubstituent")
	}
	first := Substituent{Components: s, ConnectionPoint: points[0], Ring: ring}
	ret := []Substituent{first}
	for _, p := range points[1:] {
		d := first.Duplicate()
		d.ConnectionPoint = p
		ret = append(ret, d)
	}
	return ret, nil
}
