/*
 * table.go, part of govsepr.
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
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
)

//go:embed data/elements.csv
var elementsCSV []byte

// The columns expected in a periodic table file, in order.
var tableColumns = []string{"number", "symbol", "name", "valence", "period", "electronegativity",
	"atomic_radius", "vdw_radius", "covalent_single", "covalent_double", "covalent_triple", "color"}

// Species that are stable with less than an octet.
var exceptionNames = map[string]bool{
	"beryllium": true,
	"boron":     true,
}

// Table is a read-only symbol to Element lookup.
// It is safe for concurrent use, as nothing modifies it after creation.
type Table struct {
	elements []Element
	symbols  map[string]int
}

var (
	defaultTable     *Table
	defaultTableOnce sync.Once
)

// DefaultTable returns the built-in periodic table. It is parsed only once.
func DefaultTable() *Table {
	defaultTableOnce.Do(func() {
		t, err := ReadTable(bytes.NewReader(elementsCSV))
		if err != nil {
			panic("govsepr: built-in element table is corrupted: " + err.Error())
		}
		defaultTable = t
	})
	return defaultTable
}

// ReadTableFile reads a periodic table from the CSV file fname.
func ReadTableFile(fname string) (*Table, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, NewError(ParseFailure, "ReadTableFile", "can't open table %s: %s", fname, err.Error())
	}
	defer f.Close()
	t, err := ReadTable(f)
	return t, ErrDecorate(err, "ReadTableFile")
}

// ReadTable reads a periodic table in CSV format from r. The first record
// must be a header with the columns number, symbol, name, valence, period,
// electronegativity, atomic_radius, vdw_radius, covalent_single, covalent_double,
// covalent_triple and color. Radii are given in pm, colors as RRGGBB.
func ReadTable(r io.Reader) (*Table, error) {
	c := csv.NewReader(r)
	c.TrimLeadingSpace = true
	c.Comment = '#'
	header, err := c.Read()
	if err != nil {
		return nil, NewError(ParseFailure, "ReadTable", "can't read table header: %s", err.Error())
	}
	if len(header) < len(tableColumns) {
		return nil, NewError(ParseFailure, "ReadTable", "table header has %d columns, %d needed", len(header), len(tableColumns))
	}
	for i, v := range tableColumns {
		if strings.ToLower(strings.TrimSpace(header[i])) != v {
			return nil, NewError(ParseFailure, "ReadTable", "column %d of the table header should be %s, not %s", i, v, header[i])
		}
	}
	t := &Table{symbols: make(map[string]int)}
	line := 1
	for {
		rec, err := c.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, NewError(ParseFailure, "ReadTable", "line %d: %s", line, err.Error())
		}
		e, err := parseElement(rec)
		if err != nil {
			return nil, NewError(ParseFailure, "ReadTable", "line %d: %s", line, err.Error())
		}
		if _, ok := t.symbols[e.Symbol]; ok {
			return nil, NewError(ParseFailure, "ReadTable", "line %d: symbol %s repeated", line, e.Symbol)
		}
		t.symbols[e.Symbol] = len(t.elements)
		t.elements = append(t.elements, e)
	}
	if len(t.elements) == 0 {
		return nil, NewError(ParseFailure, "ReadTable", "the table has no elements")
	}
	return t, nil
}

func parseElement(rec []string) (Element, error) {
	var e Element
	ints := make([]int, 3)
	for i, col := range []int{0, 3, 4} {
		v, err := strconv.Atoi(strings.TrimSpace(rec[col]))
		if err != nil {
			return e, fmt.Errorf("field %s: %w", tableColumns[col], err)
		}
		ints[i] = v
	}
	floats := make([]float64, 6)
	for i := range floats {
		col := i + 5
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[col]), 64)
		if err != nil {
			return e, fmt.Errorf("field %s: %w", tableColumns[col], err)
		}
		floats[i] = v
	}
	col, err := parseColor(rec[11])
	if err != nil {
		return e, err
	}
	if ints[0] < 1 || ints[2] < 1 {
		return e, fmt.Errorf("atomic number and period must be positive")
	}
	e = Element{
		AtomicNumber:      ints[0],
		Symbol:            strings.TrimSpace(rec[1]),
		Name:              strings.ToLower(strings.TrimSpace(rec[2])),
		Valence:           ints[1],
		Period:            ints[2],
		Electronegativity: floats[0],
		AtomicRadius:      floats[1] / 100,
		VdwRadius:         floats[2] / 100,
		Covalent:          [3]float64{floats[3] / 100, floats[4] / 100, floats[5] / 100},
		Color:             col,
	}
	e.Exception = exceptionNames[e.Name]
	if e.Symbol == "" {
		return e, fmt.Errorf("empty symbol")
	}
	return e, nil
}

func parseColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("bad color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// Search returns the element with the given symbol, or UnknownElement.
func (t *Table) Search(symbol string) Element {
	if i, ok := t.symbols[symbol]; ok {
		return t.elements[i]
	}
	return UnknownElement
}

// ByName returns the element with the given lowercase name, or UnknownElement.
func (t *Table) ByName(name string) Element {
	name = strings.ToLower(name)
	for _, v := range t.elements {
		if v.Name == name {
			return v
		}
	}
	return UnknownElement
}

// Len returns the number of elements in the table.
func (t *Table) Len() int {
	return len(t.elements)
}

// Elements returns a copy of the elements in the order they were read.
func (t *Table) Elements() []Element {
	ret := make([]Element, len(t.elements))
	copy(ret, t.elements)
	return ret
}
