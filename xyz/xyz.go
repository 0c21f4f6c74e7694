/*
 * xyz.go, part of govsepr.
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

// Package xyz reads and writes structures in the XYZ format. Files ending
// in .zst or .gz are compressed and decompressed on the fly.
package xyz

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	chem "github.com/rmera/govsepr"
	"gonum.org/v1/gonum/spatial/r3"
)

// Write writes s to w in XYZ format, using the van der Waals coordinates
// if vdw is true, and the stick coordinates otherwise. comment goes in the
// second line, with newlines replaced by spaces.
func Write(w io.Writer, s chem.Structure, vdw bool, comment string) error {
	if _, err := fmt.Fprintf(w, "%-4d\n", len(s)); err != nil {
		return err
	}
	comment = strings.ReplaceAll(comment, "\n", " ")
	if _, err := fmt.Fprintf(w, "%s\n", comment); err != nil {
		return err
	}
	for _, at := range s {
		c := at.Position
		if vdw {
			c = at.VdwPosition
		}
		if _, err := fmt.Fprintf(w, "%-2s  %8.3f%8.3f%8.3f \n", at.Symbol, c.X, c.Y, c.Z); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile writes s to the file name, compressed according to its extension.
func WriteFile(name string, s chem.Structure, vdw bool, comment string) error {
	out, err := os.Create(name)
	if err != nil {
		return chem.NewError(chem.ParseFailure, "xyz.WriteFile", "%s", err.Error())
	}
	defer out.Close()
	bw := bufio.NewWriter(out)
	cw, err := compressor(bw, CompressionFor(name))
	if err != nil {
		return chem.NewError(chem.ParseFailure, "xyz.WriteFile", "%s", err.Error())
	}
	if err := Write(cw, s, vdw, comment); err != nil {
		cw.Close()
		return chem.NewError(chem.ParseFailure, "xyz.WriteFile", "%s", err.Error())
	}
	if err := cw.Close(); err != nil {
		return chem.NewError(chem.ParseFailure, "xyz.WriteFile", "%s", err.Error())
	}
	if err := bw.Flush(); err != nil {
		return chem.NewError(chem.ParseFailure, "xyz.WriteFile", "%s", err.Error())
	}
	return out.Close()
}

// Read reads one XYZ frame from r. The elements are looked up in table.
// The coordinates go in the stick positions of the returned atoms, which
// have no bonds. It also returns the comment line.
func Read(r io.Reader, table chem.ElementSearcher) (chem.Structure, string, error) {
	xyz := bufio.NewReader(r)
	line, err := xyz.ReadString('\n')
	if err != nil {
		return nil, "", chem.NewError(chem.ParseFailure, "xyz.Read", "ill formatted XYZ file: %s", err.Error())
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || natoms < 0 {
		return nil, "", chem.NewError(chem.ParseFailure, "xyz.Read", "ill formatted atom count %q", strings.TrimSpace(line))
	}
	comment, err := xyz.ReadString('\n')
	if err != nil && !(err == io.EOF && natoms == 0) {
		return nil, "", chem.NewError(chem.ParseFailure, "xyz.Read", "missing comment line")
	}
	s := make(chem.Structure, 0, natoms)
	for i := 0; i < natoms; i++ {
		line, err = xyz.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return nil, "", chem.NewError(chem.ParseFailure, "xyz.Read", "expected %d atoms, file ends after %d", natoms, i)
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, "", chem.NewError(chem.ParseFailure, "xyz.Read", "line %d ill formed", i+3)
		}
		e := table.Search(fields[0])
		if !e.Known() {
			return nil, "", chem.NewError(chem.ParseFailure, "xyz.Read", "unknown element %q in line %d", fields[0], i+3)
		}
		var c [3]float64
		for j := range c {
			c[j], err = strconv.ParseFloat(fields[j+1], 64)
			if err != nil {
				return nil, "", chem.NewError(chem.ParseFailure, "xyz.Read", "bad coordinate %q in line %d", fields[j+1], i+3)
			}
		}
		at := chem.NewAtom(e, e.Valence, 0)
		at.Position = r3.Vec{X: c[0], Y: c[1], Z: c[2]}
		at.VdwPosition = at.Position
		s = append(s, at)
	}
	return s, strings.TrimRight(comment, "\r\n"), nil
}

// ReadFile reads the first frame of the XYZ file name, decompressing it according to its extension.
func ReadFile(name string, table chem.ElementSearcher) (chem.Structure, string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, "", chem.NewError(chem.ParseFailure, "xyz.ReadFile", "%s", err.Error())
	}
	defer f.Close()
	r, err := decompressor(bufio.NewReader(f), CompressionFor(name))
	if err != nil {
		return nil, "", chem.NewError(chem.ParseFailure, "xyz.ReadFile", "%s", err.Error())
	}
	defer r.Close()
	s, comment, err := Read(r, table)
	return s, comment, chem.ErrDecorate(err, "xyz.ReadFile")
}
