/*
 * errors.go, part of govsepr.
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
	"errors"
	"fmt"
	"strings"
)

// ErrorKind tells apart the ways a request can fail.
type ErrorKind int

const (
	// ParseFailure covers unknown symbols, empty input and malformed names or locants.
	ParseFailure ErrorKind = iota + 1
	// Infeasible means the electrons could not be arranged into stable shells.
	Infeasible
	// Overbonding means a mandatory bond exceeded an atom's capacity.
	Overbonding
)

func (k ErrorKind) String() string {
	switch k {
	case ParseFailure:
		return "parse failure"
	case Infeasible:
		return "infeasible structure"
	case Overbonding:
		return "overbonding"
	}
	return "unknown error"
}

// CError is the error type returned by all packages in govsepr.
// The decoration slice keeps the chain of functions the error went through.
type CError struct {
	msg  string
	kind ErrorKind
	atom string
	deco []string
}

// NewError returns a CError of the given kind.
func NewError(kind ErrorKind, caller, format string, args ...interface{}) *CError {
	err := &CError{msg: fmt.Sprintf(format, args...), kind: kind}
	if caller != "" {
		err.deco = []string{caller}
	}
	return err
}

// NewOverbondingError returns an Overbonding error naming the offending atom.
func NewOverbondingError(caller, atomName string) *CError {
	err := NewError(Overbonding, caller, "Bond error: %s overbonded", atomName)
	err.atom = atomName
	return err
}

func (err *CError) Error() string { return err.msg }

// Kind returns the category of the error.
func (err *CError) Kind() ErrorKind { return err.kind }

// Atom returns the name of the atom that caused the error, if any.
func (err *CError) Atom() string { return err.atom }

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice. An empty dec only returns the current slice.
func (err *CError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// Trace returns the decorations, innermost first, joined by arrows.
func (err *CError) Trace() string {
	return strings.Join(err.deco, " <- ")
}

// ErrDecorate adds caller to the decorations of err if err implements
// the Error interface, and returns err unchanged otherwise.
func ErrDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	var e Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}

// IsKind reports whether err is a CError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *CError
	if errors.As(err, &e) {
		return e.kind == kind
	}
	return false
}

// KindOf returns the kind of err, or 0 if err is not a CError.
func KindOf(err error) ErrorKind {
	var e *CError
	if errors.As(err, &e) {
		return e.kind
	}
	return 0
}

// PanicMsg is the type of the messages used in panics caused by programming errors.
type PanicMsg string

const (
	ErrNilAtom       = PanicMsg("govsepr: nil atom given")
	ErrIndexOutRange = PanicMsg("govsepr: atom index out of range")
)
