/*
 * doc.go, part of govsepr.
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

/*
Package chem is the main package of govsepr. It provides the atoms, bonds and
structures that the rest of the packages build, plus the periodic table they
are built from.

	**govsepr Capabilities**

	Reads a periodic table from CSV, either the one compiled in or a user file.

	Builds Lewis structures for inorganic formulas, with optional net charge
	("SO4 2-"), and lowers the formal charges by promoting lone pairs into
	multiple bonds (package lewis).

	Places the peripheral atoms of an inorganic species on the VSEPR arrangement
	selected by its number of electron domains (package geometry), and names the
	resulting molecular shape.

	Interprets IUPAC names of simple alkanes, alkenes and alkynes, including
	cycloalkanes and alkyl substituents, and builds their 3D structure with
	explicit hydrogens (package organic).

	Keeps two coordinate sets for every atom: a stick frame with uniform bond
	lengths, and a space-filling frame built from covalent radii. Bonds are
	also given as cylinder transforms for ball-and-stick rendering.

	Checks the bond graph of a result for symmetry and connectivity, and finds
	its rings (package chemgraph).

	Writes and reads XYZ files, optionally zstd or gzip compressed (package xyz),
	JSON lines (package chemjson), 2D projection plots (package chemplot) and
	ball-and-stick PNG pictures (package depict).

Errors returned by govsepr packages are *CError values. Their Kind tells a
parse failure, an infeasible structure and an overbonded atom apart, and
Decorate records the functions the error went through.
*/
package chem
