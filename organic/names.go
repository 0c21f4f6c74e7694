/*
 * names.go, part of govsepr.
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
	"strconv"
	"strings"

	chem "github.com/rmera/govsepr"
)

// a numeric prefix of an IUPAC name. Multipliers (di, tri...) count
// substituents, the rest give the number of carbons in a chain.
type term struct {
	text       string
	value      int
	multiplier bool
}

var terms = []term{
	{"meth", 1, false},
	{"eth", 2, false},
	{"prop", 3, false},
	{"but", 4, false},
	{"pent", 5, false},
	{"hex", 6, false},
	{"hept", 7, false},
	{"oct", 8, false},
	{"non", 9, false},
	{"dec", 10, false},
	{"di", 2, true},
	{"tri", 3, true},
	{"tetr", 4, true},
	{"bis", 2, true},
	{"tris", 3, true},
	{"tetrakis", 4, true},
	{"pentakis", 5, true},
}

// Suffixes of parent chains, and the number of extra bonds each puts
// between the first two carbons.
var parents = map[string]int{
	"ane": 0,
	"ene": 1,
	"yne": 2,
}

// Tokenize lowercases name and splits it on hyphens, and right after every
// "yl" that is not followed by a hyphen. Empty tokens are kept so malformed
// names can be told apart.
func Tokenize(name string) []string {
	s := strings.ToLower(strings.TrimSpace(name))
	tokens := make([]string, 0, 4)
	var cur strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '-' {
			tokens = append(tokens, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteByte(c)
		if c == 'l' && i > 0 && s[i-1] == 'y' && i+1 < len(s) && s[i+1] != '-' {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	return append(tokens, cur.String())
}

// ChainLength scans name for numeric prefixes, taking the longest one that
// matches at each position. It returns the carbon count given by the last
// chain prefix found, and the value of the last multiplier, or 0 if there is none.
func ChainLength(name string) (length, multiplier int) {
	for i := 0; i < len(name); {
		best := -1
		for j, t := range terms {
			if strings.HasPrefix(name[i:], t.text) && (best < 0 || len(t.text) > len(terms[best].text)) {
				best = j
			}
		}
		if best < 0 {
			i++
			continue
		}
		if terms[best].multiplier {
			multiplier = terms[best].value
		} else {
			length = terms[best].value
		}
		i += len(terms[best].text)
	}
	return length, multiplier
}

// ParseLocants reads a comma-separated list of positive integers.
func ParseLocants(s string) ([]int, error) {
	if s == "" {
		return nil, chem.NewError(chem.ParseFailure, "ParseLocants", "empty locant list")
	}
	fields := strings.Split(s, ",")
	ret := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 1 {
			return nil, chem.NewError(chem.ParseFailure, "ParseLocants", "malformed locant %q in %q", f, s)
		}
		ret = append(ret, n)
	}
	return ret, nil
}

// parentSuffix returns the suffix of name that makes it a parent chain, if any.
func parentSuffix(name string) (string, bool) {
	for suf := range parents {
		if strings.HasSuffix(name, suf) {
			return suf, true
		}
	}
	return "", false
}

func hasDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}
