/*
 * report.go, part of govsepr.
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
	"fmt"
	"io"
	"strings"
)

// Report writes a table with one row per atom: atomic number, valence
// electrons, bonded pairs, lone pairs and formal charge, and the total
// formal charge at the end.
func Report(w io.Writer, S Structure) error {
	width := len("Name")
	for _, v := range S {
		if len(v.Name) > width {
			width = len(v.Name)
		}
	}
	rule := "+" + strings.Repeat("-", width+2) + "+-----+-----+-----+-----+-----+\n"
	var b strings.Builder
	b.WriteString(rule)
	fmt.Fprintf(&b, "| %-*s | AN  | VN  | BP  | LP  | FC  |\n", width, "Name")
	b.WriteString(rule)
	for _, v := range S {
		fmt.Fprintf(&b, "| %-*s | %-3d | %-3d | %-3d | %-3d | %-3s |\n", width, v.Name, v.AtomicNumber, v.Valence, v.Bonded/2, v.Lone/2, signed(v.FormalCharge()))
	}
	b.WriteString(rule)
	fmt.Fprintf(&b, "Total formal charge: %s\n", signed(S.NetCharge()))
	_, err := io.WriteString(w, b.String())
	return err
}

func signed(i int) string {
	if i > 0 {
		return fmt.Sprintf("+%d", i)
	}
	return fmt.Sprintf("%d", i)
}
