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
	"fmt"
	"io"

	"seehuhn.de/go/fax/internal/mh"
)

// rtcLength is the number of consecutive EOL codes which form the
// return-to-control sequence at the end of a Group 3 page.
const rtcLength = 6

// DecodeG3 decodes a one-dimensional Group 3 (ITU-T T.4, Modified Huffman)
// compressed image.  Every line, including the first, must be preceded by an
// EOL code, and the last line must be followed by one.  Decoding stops at the
// return-to-control sequence or at the end of the input.
//
// The function line is called once for every decoded line, with the
// positions where the pixel color changes.  Lines start white.  Since the
// line width is not known, the list contains the position after every run;
// the last entry is the length of the line.  The slice is reused for later
// lines and must not be retained.
//
// If an error is returned, the lines passed to line before the error are
// still valid.
func DecodeG3(r io.Reader, line func([]int)) error {
	return decodeLines(newG3Decoder(r, 0), line)
}

type g3Decoder struct {
	b       *bitReader
	maxRows int // 0 if unlimited
	row     int
	started bool
	err     error
	line    []int
}

func newG3Decoder(r io.Reader, maxRows int) *g3Decoder {
	return &g3Decoder{b: newBitReader(r), maxRows: maxRows}
}

func (d *g3Decoder) nextLine() ([]int, error) {
	if d.err != nil {
		return nil, d.err
	}

	if !d.started {
		d.started = true
		if err := d.b.expect(mh.EOL, "leading EOL"); err != nil {
			d.err = err
			return nil, err
		}
	}
	if d.endOfPage() || d.maxRows > 0 && d.row >= d.maxRows {
		d.err = io.EOF
		return nil, d.err
	}

	err := d.decodeLine()
	if err == nil {
		err = d.b.expect(mh.EOL, "EOL")
	}
	if err != nil {
		d.err = err
		return nil, err
	}
	d.row++
	return d.line, nil
}

// endOfPage is called after an EOL code has been read.  It consumes any
// further EOL codes and reports whether the return-to-control sequence has
// been seen or the input is exhausted.
func (d *g3Decoder) endOfPage() bool {
	for numEOL := 1; numEOL < rtcLength; numEOL++ {
		v, ok := d.b.peek(int(mh.EOL.Len))
		if !ok {
			// Too short to hold another line.
			return true
		}
		if v != uint32(mh.EOL.Bits) {
			return false
		}
		d.b.consume(int(mh.EOL.Len))
	}
	return true
}

func (d *g3Decoder) decodeLine() error {
	d.line = d.line[:0]

	a0 := 0
	color := White
	for {
		run, err := readRun(d.b, color)
		if err == errNoCode {
			return nil
		} else if err != nil {
			return err
		}
		a0 += run
		if a0 > maxColumns {
			return d.b.malformed(fmt.Errorf("%w: line longer than %d pixels", ErrInvalidCode, maxColumns))
		}
		if n := len(d.line); n > 0 && d.line[n-1] == a0 {
			d.line = d.line[:n-1]
		} else {
			d.line = append(d.line, a0)
		}
		color = color.Invert()
	}
}
