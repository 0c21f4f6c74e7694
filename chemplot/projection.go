/*
 * projection.go, part of govsepr.
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

// Package chemplot draws 2D projections of predicted structures with gonum/plot.
package chemplot

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	chem "github.com/rmera/govsepr"
)

// Plane is the pair of axes a structure is projected on.
type Plane int

const (
	XY Plane = iota
	XZ
	YZ
)

func (p Plane) String() string {
	return [...]string{"xy", "xz", "yz"}[p]
}

// ParsePlane returns the plane named by s ("xy", "xz" or "yz").
func ParsePlane(s string) (Plane, error) {
	switch strings.ToLower(s) {
	case "xy", "":
		return XY, nil
	case "xz":
		return XZ, nil
	case "yz":
		return YZ, nil
	}
	return XY, fmt.Errorf("chemplot: unknown plane %q", s)
}

func (p Plane) project(v r3.Vec) (float64, float64) {
	switch p {
	case XZ:
		return v.X, v.Z
	case YZ:
		return v.Y, v.Z
	}
	return v.X, v.Y
}

func (p Plane) labels() (string, string) {
	s := strings.ToUpper(p.String())
	return s[:1], s[1:]
}

// Options controls a projection plot.
type Options struct {
	Vdw           bool //use the space-filling positions
	Plane         Plane
	Width, Height int //pixels
	Labels        bool
}

// DefaultOptions returns a 512x512 labeled XY projection of the stick positions.
func DefaultOptions() Options {
	return Options{Width: 512, Height: 512, Labels: true}
}

// dpi of the PNG backend used by plot.Save.
const dpi = 96

func pixels(n int) vg.Length {
	return vg.Length(n) * vg.Inch / dpi
}

func basicPlot(title string, plane Plane) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text, p.Y.Label.Text = plane.labels()
	p.Add(plotter.NewGrid())
	return p
}

// Plot builds the projection of s. Atoms are drawn in their element colors,
// hydrogens as rings. Bonds are drawn as lines, with one color per bond order.
func Plot(s chem.Structure, title string, opts Options) (*plot.Plot, error) {
	if len(s) == 0 {
		return nil, chem.NewError(chem.Infeasible, "chemplot.Plot", "empty structure")
	}
	p := basicPlot(title, opts.Plane)
	pos := func(at *chem.Atom) r3.Vec {
		if opts.Vdw {
			return at.VdwPosition
		}
		return at.Position
	}
	for _, b := range s.Bonds() {
		pts := make(plotter.XYs, 2)
		pts[0].X, pts[0].Y = opts.Plane.project(pos(b.At1))
		pts[1].X, pts[1].Y = opts.Plane.project(pos(b.At2))
		l, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		r, g, bl := colors(b.Order-1, 3)
		l.LineStyle.Color = color.RGBA{R: r, G: g, B: bl, A: 255}
		l.LineStyle.Width = vg.Points(float64(b.Order))
		p.Add(l)
	}
	labels := plotter.XYLabels{XYs: make(plotter.XYs, len(s)), Labels: make([]string, len(s))}
	var lo, hi = math.Inf(1), math.Inf(-1)
	for i, at := range s {
		x, y := opts.Plane.project(pos(at))
		labels.XYs[i].X, labels.XYs[i].Y = x, y
		labels.Labels[i] = at.Symbol
		lo = math.Min(lo, math.Min(x, y))
		hi = math.Max(hi, math.Max(x, y))
		sc, err := plotter.NewScatter(plotter.XYs{{X: x, Y: y}})
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle.Color = atomColor(at)
		sc.GlyphStyle.Shape = shape(at)
		sc.GlyphStyle.Radius = vg.Points(3 + at.VdwRadius*2)
		p.Add(sc)
	}
	if opts.Labels {
		l, err := plotter.NewLabels(labels)
		if err != nil {
			return nil, err
		}
		p.Add(l)
	}
	//Same span on both axes, so angles are not distorted.
	pad := 0.15*(hi-lo) + 0.5
	p.X.Min, p.X.Max = lo-pad, hi+pad
	p.Y.Min, p.Y.Max = lo-pad, hi+pad
	return p, nil
}

// Projection plots s with opts and saves it to file. The format is taken
// from the file extension (png, svg, pdf...).
func Projection(s chem.Structure, title, file string, opts Options) error {
	p, err := Plot(s, title, opts)
	if err != nil {
		return chem.ErrDecorate(err, "chemplot.Projection")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		d := DefaultOptions()
		opts.Width, opts.Height = d.Width, d.Height
	}
	return p.Save(pixels(opts.Width), pixels(opts.Height), file)
}

func atomColor(at *chem.Atom) color.Color {
	if at.Color.A == 0 {
		return color.Gray{Y: 128}
	}
	return at.Color
}

func shape(at *chem.Atom) draw.GlyphDrawer {
	if at.IsHydrogen() {
		return draw.RingGlyph{}
	}
	return draw.CircleGlyph{}
}

// takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func iHVS2RGB(h, v, s float64) (uint8, uint8, uint8) {
	var i, f, p, q, t float64
	var r, g, b float64
	maxcolor := 255.0
	conversion := maxcolor * v
	if s == 0.0 {
		return uint8(conversion), uint8(conversion), uint8(conversion)
	}
	h = h / 60
	i = math.Floor(h)
	f = h - i
	p = v * (1 - s)
	q = v * (1 - s*f)
	t = v * (1 - s*(1-f))
	switch int(i) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default: //case 5
		r, g, b = v, p, q
	}
	return uint8(r * conversion), uint8(g * conversion), uint8(b * conversion)
}

// colors spreads steps hues over the spectrum, skipping the yellows.
func colors(key, steps int) (r, g, b uint8) {
	norm := 260.0 / float64(steps)
	hp := float64(key)*norm + 20.0
	var h float64
	if hp < 55 {
		h = hp - 20.0
	} else {
		h = hp + 20.0
	}
	return iHVS2RGB(h, 1, 1)
}
