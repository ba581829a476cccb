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

// Package faxtest generates CCITT fax streams for testing the decoders.
//
// The encoder works on unpacked pixel rows and follows the definitions of
// ITU-T T.4 and T.6 directly, independently of the decoder implementation.
package faxtest

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"seehuhn.de/go/fax/internal/mh"
)

const (
	white byte = 0
	black byte = 1
)

// Params selects the layout of the generated stream.
type Params struct {
	// K selects the coding scheme: negative values give Group 4 (T.6),
	// zero gives one-dimensional Group 3 (T.4) with EOL codes.
	K int

	// Columns is the width of the image in pixels.
	Columns int

	// EndOfBlock selects whether the end-of-facsimile-block marker (Group 4)
	// or the return-to-control sequence (Group 3) is written by Close.
	// Group 3 streams always end with at least one EOL code.
	EndOfBlock bool
}

// Writer encodes lines using CCITT fax compression.
type Writer struct {
	p      Params
	w      *bufio.Writer
	closed bool

	line    []byte // pixels of the current line, one byte per pixel
	refLine []byte // pixels of the previous line
	numRows int

	acc     uint32 // pending output, the low accBits bits are not yet written
	accBits int
}

// NewWriter creates a new CCITT fax encoder with the given parameters.
func NewWriter(w io.Writer, p *Params) (*Writer, error) {
	if p.K > 0 {
		return nil, errors.New("mixed 1D/2D coding is not supported")
	}
	if p.Columns < 1 {
		return nil, fmt.Errorf("invalid number of columns %d", p.Columns)
	}

	out := &Writer{
		w:       bufio.NewWriter(w),
		p:       *p,
		line:    make([]byte, p.Columns),
		refLine: make([]byte, p.Columns), // all white
	}
	return out, nil
}

// Encode returns the encoded form of the given lines.
func Encode(p *Params, lines ...[]int) ([]byte, error) {
	buf := &bytes.Buffer{}
	w, err := NewWriter(buf, p)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		err := w.WriteLine(line)
		if err != nil {
			return nil, err
		}
	}
	err = w.Close()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteLine encodes one line.  The line is given by the positions where the
// pixel color changes, starting with white.  The positions must be
// non-decreasing.  Positions at or beyond the line width are ignored.
func (w *Writer) WriteLine(changes []int) error {
	if w.closed {
		return errors.New("write after close")
	}

	w.line, w.refLine = w.refLine, w.line
	err := w.setPixels(changes)
	if err != nil {
		return err
	}

	if w.p.K < 0 {
		err = w.encode2DLine()
	} else {
		err = w.writeCode(mh.EOL)
		if err == nil {
			err = w.encode1DLine()
		}
	}
	if err != nil {
		return err
	}
	w.numRows++
	return nil
}

// Close finalizes the stream.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}

	numEOL := 0
	if w.p.K < 0 {
		if w.p.EndOfBlock {
			numEOL = 2
		}
	} else {
		numEOL = 1
		if w.p.EndOfBlock {
			numEOL = 6
		}
	}
	for range numEOL {
		if err := w.writeCode(mh.EOL); err != nil {
			return err
		}
	}

	if err := w.flush(); err != nil {
		return err
	}

	w.closed = true
	return nil
}

func (w *Writer) setPixels(changes []int) error {
	color := white
	k := 0
	for x := range w.p.Columns {
		for k < len(changes) && changes[k] <= x {
			if changes[k] < x {
				return fmt.Errorf("change positions out of order: %v", changes)
			}
			color ^= 1
			k++
		}
		w.line[x] = color
	}
	return nil
}

// writeCode appends the code word c to the output, most significant bit
// first.
func (w *Writer) writeCode(c mh.Code) error {
	w.acc = w.acc<<c.Len | uint32(c.Bits)
	w.accBits += int(c.Len)
	for w.accBits >= 8 {
		w.accBits -= 8
		if err := w.w.WriteByte(byte(w.acc >> w.accBits)); err != nil {
			return err
		}
	}
	return nil
}

// flush pads the last byte with zero bits and writes out all buffered data.
func (w *Writer) flush() error {
	if w.accBits > 0 {
		if err := w.w.WriteByte(byte(w.acc << (8 - w.accBits))); err != nil {
			return err
		}
		w.accBits = 0
	}
	return w.w.Flush()
}

func (w *Writer) encode1DLine() error {
	xpos := 0

	// The first run is white, possibly of length 0.
	runColor := white

	for xpos < w.p.Columns {
		runStart := xpos
		for xpos < w.p.Columns && w.line[xpos] == runColor {
			xpos++
		}
		if err := w.encode1DRun(xpos-runStart, runColor); err != nil {
			return err
		}
		runColor ^= 1
	}
	return nil
}

func (w *Writer) encode1DRun(runLength int, runColor byte) error {
	codes := whiteCodes
	if runColor == black {
		codes = blackCodes
	}

	for runLength > 2560 {
		if err := w.writeCode(codes[2560]); err != nil {
			return err
		}
		runLength -= 2560
	}

	if runLength >= 64 {
		makeup := runLength / 64 * 64
		if err := w.writeCode(codes[makeup]); err != nil {
			return err
		}
		runLength -= makeup
	}

	return w.writeCode(codes[runLength])
}

func (w *Writer) encode2DLine() error {
	a0 := -1
	a0Color := white

	for a0 < w.p.Columns {
		a1 := w.nextOther(w.line, a0+1, a0Color)
		a2 := w.nextOther(w.line, a1+1, a0Color^1)
		b1 := w.findB1(a0, a0Color)
		b2 := w.nextChange(w.refLine, b1+1)

		if b2 < a1 {
			if err := w.writeCode(modeCodes[mh.Pass]); err != nil {
				return err
			}
			a0 = b2
			continue
		}

		delta := a1 - b1
		if delta >= -3 && delta <= 3 {
			if err := w.writeCode(verticalCodes[delta+3]); err != nil {
				return err
			}
			a0 = a1
			a0Color ^= 1
			continue
		}

		if err := w.writeCode(modeCodes[mh.Horizontal]); err != nil {
			return err
		}
		if err := w.encode1DRun(a1-max(a0, 0), a0Color); err != nil {
			return err
		}
		if err := w.encode1DRun(a2-a1, a0Color^1); err != nil {
			return err
		}
		a0 = a2
	}
	return nil
}

// pixel returns the color of the pixel at column x.  Pixels to the left of
// the line are white.
func (w *Writer) pixel(line []byte, x int) byte {
	if x < 0 {
		return white
	}
	return line[x]
}

// nextOther returns the first column at or after start where the pixel color
// differs from col, or the line width if there is no such column.
func (w *Writer) nextOther(line []byte, start int, col byte) int {
	for x := max(start, 0); x < w.p.Columns; x++ {
		if line[x] != col {
			return x
		}
	}
	return w.p.Columns
}

// nextChange returns the first changing element at or after start.
func (w *Writer) nextChange(line []byte, start int) int {
	for x := max(start, 0); x < w.p.Columns; x++ {
		if line[x] != w.pixel(line, x-1) {
			return x
		}
	}
	return w.p.Columns
}

// findB1 returns the first changing element on the reference line to the
// right of a0, which has the color opposite to a0Color.
func (w *Writer) findB1(a0 int, a0Color byte) int {
	for x := a0 + 1; x < w.p.Columns; x++ {
		x = w.nextChange(w.refLine, x)
		if x < w.p.Columns && w.refLine[x] != a0Color {
			return x
		}
	}
	return w.p.Columns
}

var (
	whiteCodes = runCodes(mh.White)
	blackCodes = runCodes(mh.Black)
	modeCodes  = map[mh.Mode]mh.Code{}

	// verticalCodes[d+3] is the code for vertical mode with a1-b1 = d.
	verticalCodes [7]mh.Code
)

func init() {
	for _, m := range mh.Modes {
		modeCodes[m.Mode] = m.Code
		if m.Mode.IsVertical() {
			verticalCodes[m.Mode.Delta()+3] = m.Code
		}
	}
}

func runCodes(runs []mh.Run) map[int]mh.Code {
	res := make(map[int]mh.Code, len(runs))
	for _, r := range runs {
		res[r.Length] = r.Code
	}
	return res
}
