/*
 * formula.go, part of govsepr.
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
	"strconv"
	"strings"
	"unicode"

	chem "github.com/rmera/govsepr"
)

// ReadFormula parses an inorganic formula such as "SO4 2-" or "NH4 +" into
// a list of elements, one per atom, in the order they appear. A nonzero
// charge adds the charge pseudo-element at the end. If the formula starts
// with hydrogen and has more than two atoms, the first other element is moved
// to the front, so "H2O" is read as "OH2".
// Unknown symbols and malformed input return a ParseFailure error and no elements.
func ReadFormula(table chem.ElementSearcher, input string) ([]chem.Element, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return nil, chem.NewError(chem.ParseFailure, "ReadFormula", "empty formula")
	}
	if len(fields) > 2 {
		return nil, chem.NewError(chem.ParseFailure, "ReadFormula", "unexpected text after the charge in %q", input)
	}
	elements, err := readSymbols(table, fields[0])
	if err != nil {
		return nil, chem.ErrDecorate(err, "ReadFormula")
	}
	elements = centralFirst(elements)
	if len(fields) == 2 {
		charge, err := ReadCharge(fields[1])
		if err != nil {
			return nil, chem.ErrDecorate(err, "ReadFormula")
		}
		if charge != 0 {
			elements = append(elements, chem.ChargeElement(charge))
		}
	}
	return elements, nil
}

func readSymbols(table chem.ElementSearcher, formula string) ([]chem.Element, error) {
	r := []rune(formula)
	ret := make([]chem.Element, 0, len(r))
	for i := 0; i < len(r); {
		if !unicode.IsUpper(r[i]) {
			return nil, chem.NewError(chem.ParseFailure, "readSymbols", "unexpected character %q in formula %q", r[i], formula)
		}
		j := i + 1
		for j < len(r) && unicode.IsLower(r[j]) {
			j++
		}
		symbol := string(r[i:j])
		k := j
		for k < len(r) && unicode.IsDigit(r[k]) {
			k++
		}
		count := 1
		if k > j {
			var err error
			count, err = strconv.Atoi(string(r[j:k]))
			if err != nil || count < 1 {
				return nil, chem.NewError(chem.ParseFailure, "readSymbols", "bad count %q for %s in formula %q", string(r[j:k]), symbol, formula)
			}
		}
		e := table.Search(symbol)
		if !e.Known() {
			return nil, chem.NewError(chem.ParseFailure, "readSymbols", "unknown element symbol %q", symbol)
		}
		for n := 0; n < count; n++ {
			ret = append(ret, e)
		}
		i = k
	}
	return ret, nil
}

// ReadCharge parses a charge suffix: a magnitude followed by a sign ("2-", "1+")
// or a bare sign, meaning a magnitude of 1.
func ReadCharge(s string) (int, error) {
	if s == "" {
		return 0, chem.NewError(chem.ParseFailure, "ReadCharge", "empty charge")
	}
	sign := 1
	switch s[len(s)-1] {
	case '+':
	case '-':
		sign = -1
	default:
		return 0, chem.NewError(chem.ParseFailure, "ReadCharge", "charge %q does not end with a sign", s)
	}
	digits := s[:len(s)-1]
	if digits == "" {
		return sign, nil
	}
	for _, c := range digits {
		if !unicode.IsDigit(c) {
			return 0, chem.NewError(chem.ParseFailure, "ReadCharge", "malformed charge %q", s)
		}
	}
	m, err := strconv.Atoi(digits)
	if err != nil {
		return 0, chem.NewError(chem.ParseFailure, "ReadCharge", "malformed charge %q", s)
	}
	return sign * m, nil
}

// Hydrogen can't be a central atom, so, if the list starts with hydrogens, the first
// other element is brought to the front. Diatomics are left alone.
func centralFirst(elements []chem.Element) []chem.Element {
	if len(elements) <= 2 || elements[0].AtomicNumber != 1 {
		return elements
	}
	for i, v := range elements {
		if v.AtomicNumber != 1 {
			ret := make([]chem.Element, 0, len(elements))
			ret = append(ret, v)
			ret = append(ret, elements[:i]...)
			return append(ret, elements[i+1:]...)
		}
	}
	return elements
}

// Budget returns the number of valence electrons available in elements,
// including the ones given or taken by a charge pseudo-element.
func Budget(elements []chem.Element) int {
	var b int
	for _, v := range elements {
		b += v.Valence
	}
	return b
}
