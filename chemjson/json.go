/*
 * json.go, part of govsepr.
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

package chemjson

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"strings"

	chem "github.com/rmera/govsepr"
	"github.com/rmera/govsepr/predict"
)

// Atom is a ready-to-serialize container for an atom.
type Atom struct {
	ID           uint32
	Name         string
	Symbol       string
	AtomicNumber int
	Valence      int
	Period       int
	Bonded       int
	Lone         int
	FormalCharge int
	Neighbors    []uint32
	Coords       []float64
	VdwCoords    []float64
	Cylinders    []Cylinder `json:",omitempty"`
}

// Cylinder is a bond stick, given as its 4x4 model matrix in row-major order.
type Cylinder struct {
	To     uint32
	Order  int
	Slot   int
	Matrix []float64
}

// Result is a ready-to-serialize container for a prediction.
type Result struct {
	IsError           bool //always false, so results and errors can share a stream
	ID                string
	Input             string
	Kind              string
	Formula           string
	Index             int
	Shape             string `json:",omitempty"`
	ElectronGeometry  string `json:",omitempty"`
	LonePairs         int
	Budget            int
	Optimized         bool
	TotalFormalCharge int
	Rings             []int `json:",omitempty"`
	Atoms             []Atom
}

// An easily JSON-serializable error type.
type Error struct {
	deco     []string
	IsError  bool
	Input    string
	Kind     string //parse failure, infeasible structure or overbonding
	Atom     string `json:",omitempty"` //the overbonded atom, if any
	Function string //which go function gave the error
	Trace    []string
	Message  string
}

// Error implements the error interface
func (J *Error) Error() string {
	return J.Message
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (J *Error) Decorate(dec string) []string {
	if dec == "" {
		return J.deco
	}
	J.deco = append(J.deco, dec)
	return J.deco
}

// Marshal serializes the error. Panics on failure.
func (J *Error) Marshal() []byte {
	ret, err2 := json.Marshal(J)
	if err2 != nil {
		panic(strings.Join([]string{J.Error(), err2.Error()}, " - "))
	}
	return ret
}

// NewError takes an error and the input that caused it, and creates a
// json-marshal-able error. The kind, atom and call trace are taken from
// err if it is a *chem.CError.
func NewError(input, function string, err error) *Error {
	jerr := &Error{IsError: true, Input: input, Function: function, Message: err.Error()}
	var ce *chem.CError
	if errors.As(err, &ce) {
		jerr.Kind = ce.Kind().String()
		jerr.Atom = ce.Atom()
		jerr.Trace = append([]string(nil), ce.Decorate("")...)
		if len(jerr.Trace) > 0 && function == "" {
			jerr.Function = jerr.Trace[0]
		}
	}
	return jerr
}

// NewAtom returns the serializable form of at.
func NewAtom(at *chem.Atom) Atom {
	ret := Atom{
		ID:           at.ID,
		Name:         at.Name,
		Symbol:       at.Symbol,
		AtomicNumber: at.AtomicNumber,
		Valence:      at.Valence,
		Period:       at.Period,
		Bonded:       at.Bonded,
		Lone:         at.Lone,
		FormalCharge: at.FormalCharge(),
		Neighbors:    append([]uint32{}, at.Neighbors...),
		Coords:       []float64{at.Position.X, at.Position.Y, at.Position.Z},
		VdwCoords:    []float64{at.VdwPosition.X, at.VdwPosition.Y, at.VdwPosition.Z},
	}
	for _, c := range at.Cylinders {
		ret.Cylinders = append(ret.Cylinders, Cylinder{To: c.To, Order: c.Order, Slot: c.Slot, Matrix: c.Matrix().RawMatrix().Data})
	}
	return ret
}

// NewResult returns the serializable form of r.
func NewResult(r *predict.Result) *Result {
	ret := &Result{
		ID:                r.ID.String(),
		Input:             r.Input,
		Kind:              string(r.Kind),
		Formula:           r.Formula,
		Index:             r.Index,
		Shape:             r.Shape,
		ElectronGeometry:  r.ElectronGeometry,
		LonePairs:         r.LonePairs,
		Budget:            r.Budget,
		Optimized:         r.Optimized,
		TotalFormalCharge: r.Structure.TotalFormalCharge(),
		Rings:             r.Rings,
		Atoms:             make([]Atom, 0, len(r.Structure)),
	}
	for _, at := range r.Structure {
		ret.Atoms = append(ret.Atoms, NewAtom(at))
	}
	return ret
}

// Encode marshals r and writes it to out as a single line.
func Encode(out io.Writer, r *predict.Result) *Error {
	enc := json.NewEncoder(out)
	if err := enc.Encode(NewResult(r)); err != nil {
		return NewError(r.Input, "chemjson.Encode", err)
	}
	return nil
}

// EncodeError writes the serializable form of err, caused by input, to out as a single line.
func EncodeError(out io.Writer, input string, err error) *Error {
	enc := json.NewEncoder(out)
	if err2 := enc.Encode(NewError(input, "", err)); err2 != nil {
		return NewError(input, "chemjson.EncodeError", err2)
	}
	return nil
}

// Request is one job sent by an external program.
type Request struct {
	Input string
}

// DecodeRequest reads one line from stdin and unmarshals it into a Request.
// It returns io.EOF, unwrapped, when there is nothing left to read.
func DecodeRequest(stdin *bufio.Reader) (*Request, error) {
	line, err := stdin.ReadBytes('\n')
	if err != nil && (err != io.EOF || len(strings.TrimSpace(string(line))) == 0) {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, NewError("", "DecodeRequest", err)
	}
	ret := new(Request)
	if err := json.Unmarshal(line, ret); err != nil {
		return nil, NewError(string(line), "DecodeRequest", err)
	}
	return ret, nil
}

// DecodeResult reads one line from stream. It returns the Result, or, if the
// line holds an encoded error, that error.
func DecodeResult(stream *bufio.Reader) (*Result, error) {
	line, err := stream.ReadBytes('\n')
	if err != nil && (err != io.EOF || len(line) == 0) {
		return nil, NewError("", "DecodeResult", err)
	}
	var head struct{ IsError bool }
	if err := json.Unmarshal(line, &head); err != nil {
		return nil, NewError("", "DecodeResult", err)
	}
	if head.IsError {
		jerr := new(Error)
		if err := json.Unmarshal(line, jerr); err != nil {
			return nil, NewError("", "DecodeResult", err)
		}
		return nil, jerr
	}
	ret := new(Result)
	if err := json.Unmarshal(line, ret); err != nil {
		return nil, NewError("", "DecodeResult", err)
	}
	return ret, nil
}
