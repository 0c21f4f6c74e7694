/*
 * xyz_test.go, part of govsepr.
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

package xyz

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	chem "github.com/rmera/govsepr"
	"github.com/rmera/govsepr/geometry"
	"github.com/rmera/govsepr/lewis"
	"github.com/rmera/govsepr/organic"
	"gonum.org/v1/gonum/spatial/r3"
)

func sameStructure(Te *testing.T, name string, orig, read chem.Structure, vdw bool) {
	Te.Helper()
	if len(orig) != len(read) {
		Te.Fatalf("%s: wrote %d atoms, read %d", name, len(orig), len(read))
	}
	for i := range orig {
		want := orig[i].Position
		if vdw {
			want = orig[i].VdwPosition
		}
		if orig[i].Symbol != read[i].Symbol {
			Te.Errorf("%s: atom %d is %s, read %s", name, i, orig[i].Symbol, read[i].Symbol)
		}
		if r3.Norm(r3.Sub(want, read[i].Position)) > 1e-3 {
			Te.Errorf("%s: atom %d at %v, read %v", name, i, want, read[i].Position)
		}
	}
}

func TestWriteRead(Te *testing.T) {
	m, err := lewis.Predict(chem.DefaultTable(), geometry.VSEPR(), "SF6", 1.0)
	if err != nil {
		Te.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, m.Structure, false, "sulfur\nhexafluoride"); err != nil {
		Te.Fatal(err)
	}
	lines := strings.Split(buf.String(), "\n")
	if strings.TrimSpace(lines[0]) != "7" || lines[1] != "sulfur hexafluoride" {
		Te.Errorf("Wrong header: %q %q", lines[0], lines[1])
	}
	s, comment, err := Read(&buf, chem.DefaultTable())
	if err != nil {
		Te.Fatal(err)
	}
	if comment != "sulfur hexafluoride" {
		Te.Errorf("Comment read as %q", comment)
	}
	sameStructure(Te, "SF6", m.Structure, s, false)
}

func TestCompressedFiles(Te *testing.T) {
	I, err := organic.New(chem.DefaultTable(), geometry.VSEPR(), organic.Options{})
	if err != nil {
		Te.Fatal(err)
	}
	mol, err := I.Interpret("2,2-dimethylpropane")
	if err != nil {
		Te.Fatal(err)
	}
	dir := Te.TempDir()
	for _, name := range []string{"neo.xyz", "neo.xyz.zst", "neo.xyz.gz"} {
		for _, vdw := range []bool{false, true} {
			fname := filepath.Join(dir, name)
			if err := WriteFile(fname, mol, vdw, "neopentane"); err != nil {
				Te.Fatal(err)
			}
			s, _, err := ReadFile(fname, chem.DefaultTable())
			if err != nil {
				Te.Fatalf("%s: %s", name, err)
			}
			sameStructure(Te, name, mol, s, vdw)
		}
	}
	if CompressionFor("a.XYZ.ZST") != Zstd || CompressionFor("a.gz") != Gzip || CompressionFor("a.xyz") != None {
		Te.Error("Wrong compression for file extensions")
	}
}

func TestReadFailures(Te *testing.T) {
	for _, in := range []string{
		"",
		"x\n\n",
		"2\n\nC 0 0 0\n",
		"1\n\nXx 0 0 0\n",
		"1\n\nC 0 a 0\n",
		"1\n\nC 0 0\n",
	} {
		if _, _, err := Read(strings.NewReader(in), chem.DefaultTable()); !chem.IsKind(err, chem.ParseFailure) {
			Te.Errorf("%q should fail to parse, got %v", in, err)
		}
	}
	s, _, err := Read(strings.NewReader("1\ncomment\nC 1.5 0 -2"), chem.DefaultTable())
	if err != nil || len(s) != 1 || math.Abs(s[0].Position.Z+2) > 1e-9 {
		Te.Errorf("A file without the final newline should be read: %v", err)
	}
}
