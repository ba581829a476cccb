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

import "io"

// Reader decodes CCITT fax data into packed rows of pixels.
//
// Every row starts on a byte boundary and uses one bit per pixel, most
// significant bit first.  Unused bits at the end of a row are zero.
type Reader struct {
	Params

	dec lineDecoder
	err error // Last decoding error, if any

	row  []byte // Current row, packed
	line []byte // Unread part of row

	// numRows is the number of complete rows delivered to the caller.
	numRows int
}

// NewReader creates a new CCITT fax decoder.
func NewReader(r io.Reader, p *Params) (*Reader, error) {
	pCopy := p.withDefaults()
	if err := pCopy.Validate(); err != nil {
		return nil, err
	}

	return &Reader{
		Params: pCopy,
		dec:    pCopy.newDecoder(r),
		row:    make([]byte, (pCopy.Columns+7)/8),
	}, nil
}

// Read decodes rows as needed and copies them into buf.
func (r *Reader) Read(buf []byte) (n int, err error) {
	for n < len(buf) {
		if len(r.line) == 0 {
			if r.err != nil || (r.MaxRows > 0 && r.numRows >= r.MaxRows) {
				break
			}
			r.decodeRow()
			continue
		}

		k := copy(buf[n:], r.line)
		r.line = r.line[k:]
		n += k
		if len(r.line) == 0 {
			r.numRows++
		}
	}

	if n > 0 || len(buf) == 0 {
		return n, nil
	}
	if r.err != nil {
		return 0, r.err
	}
	return 0, io.EOF
}

func (r *Reader) decodeRow() {
	changes, err := r.dec.nextLine()
	if err != nil {
		r.err = err
		return
	}
	r.fillRow(changes)
	r.line = r.row
}

// fillRow packs a line, given by its change positions, into r.row.
func (r *Reader) fillRow(changes []int) {
	clear(r.row)

	start := 0
	isWhite := true
	for _, pos := range changes {
		end := min(pos, r.Columns)
		r.fillRowBits(start, end, isWhite != r.BlackIs1)
		start = max(start, end)
		isWhite = !isWhite
	}
	r.fillRowBits(start, r.Columns, isWhite != r.BlackIs1)
}

// fillRowBits sets the bits from start (included) to end (excluded) in r.row,
// if fill is true.  The row is taken to be a stream of bits, MSB first.
func (r *Reader) fillRowBits(start, end int, fill bool) {
	if !fill {
		return
	}
	for pos := start; pos < end; pos++ {
		r.row[pos/8] |= 1 << (7 - pos%8)
	}
}
