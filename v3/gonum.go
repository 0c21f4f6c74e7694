/*
 * gonum.go, part of govsepr.
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

package v3

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Matrix is a set of vectors in 3D space.
// Within the package it is understood that a "vector" is a row vector, i.e. the
// cartesian coordinates of a point in 3D space.
type Matrix struct {
	*mat.Dense
}

// Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

// NewMatrix generates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 || l == 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d or empty", l, cols), []string{"NewMatrix"}}
	}
	return &Matrix{mat.NewDense(rows, cols, data)}, nil
}

// FromVecs returns a Matrix with one row per vector in vs.
func FromVecs(vs []r3.Vec) *Matrix {
	F := Zeros(len(vs))
	for i, v := range vs {
		F.SetVec(i, v)
	}
	return F
}

// NVecs returns the number of (row) vectors in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

// Vec returns the ith vector of F as an r3.Vec.
func (F *Matrix) Vec(i int) r3.Vec {
	if i >= F.NVecs() || i < 0 {
		panic(ErrIndexOutOfRange)
	}
	r := F.RawRowView(i)
	return r3.Vec{X: r[0], Y: r[1], Z: r[2]}
}

// SetVec puts v in the ith row of F.
func (F *Matrix) SetVec(i int, v r3.Vec) {
	if i >= F.NVecs() || i < 0 {
		panic(ErrIndexOutOfRange)
	}
	F.SetRow(i, []float64{v.X, v.Y, v.Z})
}

// Vecs returns all the vectors in F.
func (F *Matrix) Vecs() []r3.Vec {
	ret := make([]r3.Vec, F.NVecs())
	for i := range ret {
		ret[i] = F.Vec(i)
	}
	return ret
}

// VecView returns a view of the ith vector of the matrix.
// Changes in the view are reflected in F.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

// AddVec adds v to every vector of A, putting the result on the receiver.
func (F *Matrix) AddVec(A *Matrix, v r3.Vec) {
	F.shift(A, v, 1)
}

// SubVec subtracts v from every vector of A, putting the result on the receiver.
func (F *Matrix) SubVec(A *Matrix, v r3.Vec) {
	F.shift(A, v, -1)
}

func (F *Matrix) shift(A *Matrix, v r3.Vec, sign float64) {
	ar := A.NVecs()
	if F.NVecs() != ar {
		panic(ErrShape)
	}
	d := []float64{v.X * sign, v.Y * sign, v.Z * sign}
	for i := 0; i < ar; i++ {
		floats.AddTo(F.RawRowView(i), A.RawRowView(i), d)
	}
}

// Centroid returns the unweighted mean of the vectors in F.
func (F *Matrix) Centroid() r3.Vec {
	n := F.NVecs()
	if n == 0 {
		return r3.Vec{}
	}
	col := make([]float64, n)
	var c [3]float64
	for j := 0; j < 3; j++ {
		mat.Col(col, j, F)
		c[j] = floats.Sum(col) / float64(n)
	}
	return r3.Vec{X: c[0], Y: c[1], Z: c[2]}
}

// Extent returns the lowest and highest values found in F for each coordinate.
func (F *Matrix) Extent() (min, max r3.Vec) {
	n := F.NVecs()
	if n == 0 {
		return
	}
	col := make([]float64, n)
	var lo, hi [3]float64
	for j := 0; j < 3; j++ {
		mat.Col(col, j, F)
		lo[j] = floats.Min(col)
		hi[j] = floats.Max(col)
	}
	return r3.Vec{X: lo[0], Y: lo[1], Z: lo[2]}, r3.Vec{X: hi[0], Y: hi[1], Z: hi[2]}
}

// Rotate applies the rotation R to every vector of A and puts the result in the receiver.
// Vectors are rows, so this is A times the transpose of R's matrix.
func (F *Matrix) Rotate(A *Matrix, R r3.Rotation) {
	if F.NVecs() != A.NVecs() {
		panic(ErrShape)
	}
	F.Dense.Mul(A.Dense, R.Mat().T())
}

// Transform puts in the receiver the vectors of A rotated by R around origin and
// then translated so origin ends up at target.
func (F *Matrix) Transform(A *Matrix, R r3.Rotation, origin, target r3.Vec) {
	F.SubVec(A, origin)
	F.Rotate(F, R)
	F.AddVec(F, target)
}

// Distance returns the distance between the ith and jth vectors of F.
func (F *Matrix) Distance(i, j int) float64 {
	return r3.Norm(r3.Sub(F.Vec(i), F.Vec(j)))
}

// String returns a neatly formatted string representation of the Matrix.
func (F *Matrix) String() string {
	var b strings.Builder
	for i := 0; i < F.NVecs(); i++ {
		v := F.Vec(i)
		fmt.Fprintf(&b, "[%8.3f %8.3f %8.3f]\n", clean(v.X), clean(v.Y), clean(v.Z))
	}
	return b.String()
}

// avoids printing -0.000
func clean(f float64) float64 {
	if math.Abs(f) < appzero {
		return 0
	}
	return f
}

const appzero float64 = 0.0000005

//Errors

//the same as chem.Error but avoid circular import.
type Error struct {
	message string
	deco    []string
}

// Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// PanicMsg is a message used for panics, even though it does satisfy the error interface.
// for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix    = PanicMsg("govsepr/v3: A VecMatrix should have 3 columns")
	ErrShape           = PanicMsg("govsepr/v3: Dimension mismatch")
	ErrIndexOutOfRange = PanicMsg("govsepr/v3: index out of range")
)
