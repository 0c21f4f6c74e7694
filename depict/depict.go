/*
 * depict.go, part of govsepr.
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

// Package depict draws ball-and-stick pictures of predicted structures.
// The structure is projected orthographically on the XY plane, after an
// optional tilt, and atoms are painted back to front.
package depict

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/fogleman/gg"
	"gonum.org/v1/gonum/spatial/r3"

	chem "github.com/rmera/govsepr"
)

// Options controls a depiction.
type Options struct {
	Width, Height int
	Vdw           bool    //use the space-filling positions
	Tilt          float64 //rotation about the x axis, radians
	Turn          float64 //rotation about the y axis, radians, applied before Tilt
	AtomScale     float64 //ball radius as a fraction of the van der Waals radius
	Labels        bool
	Background    color.Color
}

// DefaultOptions returns a 512x512 labeled depiction with a slight tilt.
func DefaultOptions() Options {
	return Options{
		Width:      512,
		Height:     512,
		Tilt:       math.Pi / 9,
		Turn:       math.Pi / 12,
		AtomScale:  0.3,
		Labels:     true,
		Background: color.White,
	}
}

type ball struct {
	at  *chem.Atom
	pos r3.Vec //view coordinates, before scaling
}

// Render draws s and returns the drawing context, so callers can add to it
// or encode it as they see fit. s is not modified.
func Render(s chem.Structure, opts Options) (*gg.Context, error) {
	if len(s) == 0 {
		return nil, chem.NewError(chem.Infeasible, "depict.Render", "empty structure")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		d := DefaultOptions()
		opts.Width, opts.Height = d.Width, d.Height
	}
	if opts.AtomScale <= 0 {
		opts.AtomScale = DefaultOptions().AtomScale
	}
	view := s.Copy()
	view.CenterExtent()
	rot := r3.NewRotation(opts.Tilt, r3.Vec{X: 1})
	turn := r3.NewRotation(opts.Turn, r3.Vec{Y: 1})
	balls := make([]ball, len(view))
	index := make(map[uint32]int, len(view))
	var extent float64
	for i, at := range view {
		p := at.Position
		if opts.Vdw {
			p = at.VdwPosition
		}
		p = rot.Rotate(turn.Rotate(p))
		balls[i] = ball{at: at, pos: p}
		index[at.ID] = i
		r := at.VdwRadius * opts.AtomScale
		extent = math.Max(extent, math.Max(math.Abs(p.X), math.Abs(p.Y))+r)
	}
	if extent == 0 {
		extent = 1
	}
	size := float64(min(opts.Width, opts.Height))
	scale := 0.45 * size / extent
	cx, cy := float64(opts.Width)/2, float64(opts.Height)/2
	screen := func(v r3.Vec) (float64, float64) {
		return cx + scale*v.X, cy - scale*v.Y
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	if opts.Background != nil {
		dc.SetColor(opts.Background)
		dc.Clear()
	}
	dc.SetLineWidth(math.Max(1, scale/25))
	dc.SetRGB(0.25, 0.25, 0.25)
	for _, b := range view.Bonds() {
		x1, y1 := screen(balls[index[b.At1.ID]].pos)
		x2, y2 := screen(balls[index[b.At2.ID]].pos)
		drawBond(dc, x1, y1, x2, y2, b.Order, scale/12)
	}

	sort.SliceStable(balls, func(i, j int) bool { return balls[i].pos.Z < balls[j].pos.Z })
	for _, b := range balls {
		x, y := screen(b.pos)
		r := math.Max(2, scale*b.at.VdwRadius*opts.AtomScale)
		dc.DrawCircle(x, y, r)
		dc.SetColor(ballColor(b.at))
		dc.FillPreserve()
		dc.SetRGB(0, 0, 0)
		dc.SetLineWidth(1)
		dc.Stroke()
		if opts.Labels && !b.at.IsHydrogen() {
			dc.SetColor(labelColor(ballColor(b.at)))
			dc.DrawStringAnchored(b.at.Symbol, x, y, 0.5, 0.5)
		}
	}
	return dc, nil
}

// Image renders s and returns the resulting image.
func Image(s chem.Structure, opts Options) (image.Image, error) {
	dc, err := Render(s, opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// Save renders s and writes it to file as PNG.
func Save(s chem.Structure, file string, opts Options) error {
	dc, err := Render(s, opts)
	if err != nil {
		return chem.ErrDecorate(err, "depict.Save")
	}
	return dc.SavePNG(file)
}

// drawBond draws order parallel lines between the two points, delta apart.
func drawBond(dc *gg.Context, x1, y1, x2, y2 float64, order int, delta float64) {
	rad := math.Atan2(y2-y1, x2-x1)
	dx := math.Sin(rad) * delta
	dy := -math.Cos(rad) * delta
	for k := 0; k < order; k++ {
		off := float64(k) - float64(order-1)/2
		dc.DrawLine(x1+off*dx, y1+off*dy, x2+off*dx, y2+off*dy)
	}
	dc.Stroke()
}

func ballColor(at *chem.Atom) color.Color {
	if at.Color.A == 0 {
		return color.RGBA{R: 200, G: 120, B: 200, A: 255}
	}
	return at.Color
}

// labelColor returns black or white, whichever reads better on c.
func labelColor(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	lum := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 0xffff
	if lum > 0.5 {
		return color.Black
	}
	return color.White
}
