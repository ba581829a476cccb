// seehuhn.de/go/fax - decoding CCITT Group 3 and Group 4 fax data
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package fax

import (
	"errors"
	"strconv"
)

var (
	// ErrSync indicates that a synchronisation code (EOL or the halves of
	// the end-of-facsimile-block marker) was expected but not found.
	ErrSync = errors.New("missing synchronisation code")

	// ErrInvalidCode indicates a bit sequence which is not a valid code word
	// in a place where a code word is required.
	ErrInvalidCode = errors.New("invalid code word")

	// ErrTruncated indicates that the input ended in the middle of a line.
	ErrTruncated = errors.New("unexpected end of data")

	// ErrExtension is returned when a Group 4 stream switches to an
	// extension mode.  Lines delivered before this error are valid, the
	// remaining input is not interpreted.
	ErrExtension = errors.New("extension mode not supported")

	// ErrInternal indicates a broken invariant inside the decoder.
	ErrInternal = errors.New("internal decoder error")
)

// errNoCode is returned by the table lookups when no code word matches.
// Depending on the context this is the normal end of a line.
var errNoCode = errors.New("no matching code word")

// errEndOfBlock signals that no mode code could be read at the start of a
// Group 4 line.
var errEndOfBlock = errors.New("end of block")

// MalformedError indicates that the input is not a valid CCITT fax stream.
type MalformedError struct {
	Pos int64 // bit offset of the problem in the input
	Err error
}

func (err *MalformedError) Error() string {
	middle := ""
	if err.Err != nil {
		middle = ": " + err.Err.Error()
	}
	return "malformed fax data" + middle + " (at bit " + strconv.FormatInt(err.Pos, 10) + ")"
}

func (err *MalformedError) Unwrap() error {
	return err.Err
}
