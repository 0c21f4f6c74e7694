/*
 * projection_test.go, part of govsepr.
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

package chemplot

import (
	"os"
	"path/filepath"
	"testing"

	chem "github.com/rmera/govsepr"
	"github.com/rmera/govsepr/geometry"
	"github.com/rmera/govsepr/lewis"
	"github.com/rmera/govsepr/organic"
)

func TestParsePlane(Te *testing.T) {
	for in, want := range map[string]Plane{"": XY, "xy": XY, "XZ": XZ, "yz": YZ} {
		got, err := ParsePlane(in)
		if err != nil || got != want {
			Te.Errorf("%q: got %v (%v), expected %v", in, got, err, want)
		}
	}
	if _, err := ParsePlane("zz"); err == nil {
		Te.Error("zz should not be a plane")
	}
}

func TestProjection(Te *testing.T) {
	m, err := lewis.Predict(chem.DefaultTable(), geometry.VSEPR(), "SF6", 1)
	if err != nil {
		Te.Fatal(err)
	}
	I, err := organic.New(chem.DefaultTable(), geometry.VSEPR(), organic.DefaultOptions())
	if err != nil {
		Te.Fatal(err)
	}
	propane, err := I.Interpret("2-methylpropane")
	if err != nil {
		Te.Fatal(err)
	}
	dir := Te.TempDir()
	cases := []struct {
		s     chem.Structure
		file  string
		plane Plane
		vdw   bool
	}{
		{m.Structure, "sf6.png", XY, false},
		{m.Structure, "sf6.svg", YZ, true},
		{propane, "isobutane.png", XZ, false},
	}
	for _, c := range cases {
		opts := DefaultOptions()
		opts.Plane = c.plane
		opts.Vdw = c.vdw
		name := filepath.Join(dir, c.file)
		if err := Projection(c.s, c.file, name, opts); err != nil {
			Te.Errorf("%s: %v", c.file, err)
			continue
		}
		info, err := os.Stat(name)
		if err != nil || info.Size() == 0 {
			Te.Errorf("%s: nothing written (%v)", c.file, err)
		}
	}
}

func TestPlotAxes(Te *testing.T) {
	m, err := lewis.Predict(chem.DefaultTable(), geometry.VSEPR(), "CO2", 1)
	if err != nil {
		Te.Fatal(err)
	}
	p, err := Plot(m.Structure, "CO2", DefaultOptions())
	if err != nil {
		Te.Fatal(err)
	}
	if p.X.Max-p.X.Min != p.Y.Max-p.Y.Min {
		Te.Errorf("axes should span the same range: x %v-%v y %v-%v", p.X.Min, p.X.Max, p.Y.Min, p.Y.Max)
	}
	if _, err := Plot(nil, "empty", DefaultOptions()); err == nil {
		Te.Error("an empty structure should not be plotted")
	}
}
