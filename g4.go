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
	"fmt"
	"io"

	"seehuhn.de/go/fax/internal/mh"
)

// DecodeG4 decodes a Group 4 (ITU-T T.6, MMR) compressed image of the given
// width.  The function line is called once for every decoded line, with the
// positions where the pixel color changes.  Lines start white.  The slice is
// reused for later lines and must not be retained.
//
// If height is positive, at most height lines are decoded.  Otherwise
// decoding continues until the end-of-facsimile-block marker, which then must
// be present.
//
// If an error is returned, the lines passed to line before the error are
// still valid.
func DecodeG4(r io.Reader, width, height int, line func([]int)) error {
	if width < 1 || width > maxColumns {
		return fmt.Errorf("invalid image width %d", width)
	}
	return decodeLines(newG4Decoder(r, width, max(height, 0)), line)
}

// lineDecoder produces the change positions of one line at a time.
// The returned slice is valid until the next call.  After the last line,
// io.EOF is returned.
type lineDecoder interface {
	nextLine() ([]int, error)
}

func decodeLines(d lineDecoder, line func([]int)) error {
	for {
		changes, err := d.nextLine()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		line(changes)
	}
}

type g4Decoder struct {
	b      *bitReader
	width  int
	height int // 0 if unknown
	row    int
	err    error

	ref []int // the previous line
	cur []int // the line being decoded

	finder changeFinder
}

func newG4Decoder(r io.Reader, width, height int) *g4Decoder {
	return &g4Decoder{
		b:      newBitReader(r),
		width:  width,
		height: height,
		finder: &transitions{},
	}
}

func (d *g4Decoder) nextLine() ([]int, error) {
	if d.err != nil {
		return nil, d.err
	}
	if d.height > 0 && d.row >= d.height {
		d.err = io.EOF
		return nil, d.err
	}

	// The line returned by the previous call becomes the reference line.
	d.ref, d.cur = d.cur, d.ref[:0]

	err := d.decodeLine()
	if err == errEndOfBlock {
		err = d.endOfBlock()
		if err == nil {
			err = io.EOF
		}
	}
	if err != nil {
		d.err = err
		return nil, err
	}
	d.row++
	return d.cur, nil
}

// decodeLine decodes one coding line into d.cur.
func (d *g4Decoder) decodeLine() error {
	d.finder.reset(d.ref, d.width)

	a0 := 0
	color := White
	startOfRow := true
	for a0 < d.width {
		mode, ok := modeTable.decode(d.b)
		if !ok {
			if startOfRow {
				return errEndOfBlock
			}
			return d.b.malformed(ErrInvalidCode)
		}

		switch {
		case mode == mh.Pass:
			_, b2, err := d.finder.find(a0, color, startOfRow)
			if err != nil {
				return err
			}
			a0 = b2

		case mode == mh.Horizontal:
			run1, err := readRun(d.b, color)
			if err != nil {
				return d.runError(err)
			}
			run2, err := readRun(d.b, color.Invert())
			if err != nil {
				return d.runError(err)
			}
			a1 := a0 + run1
			a2 := a1 + run2
			d.push(a1)
			d.push(a2)
			a0 = a2

		case mode.IsVertical():
			b1, _, err := d.finder.find(a0, color, startOfRow)
			if err != nil {
				return err
			}
			delta := mode.Delta()
			a1 := b1 + delta
			if a1 < a0 || a1 == a0 && !startOfRow {
				return d.b.malformed(fmt.Errorf("%w: vertical mode moves from %d to %d", ErrInvalidCode, a0, a1))
			}
			d.push(a1)
			color = color.Invert()
			a0 = a1
			if delta < 0 {
				d.finder.rewind(a1)
			}

		case mode == mh.Extension:
			tail, ok := d.b.peek(mh.ExtensionTailBits)
			if !ok {
				return d.b.malformed(ErrTruncated)
			}
			d.b.consume(mh.ExtensionTailBits)
			return fmt.Errorf("%w (code %03b, line %d)", ErrExtension, tail, d.row+1)
		}
		startOfRow = false
	}
	return nil
}

// push appends a change position to the current line.  Positions at or
// beyond the end of the line are dropped, and two changes at the same
// position cancel.
func (d *g4Decoder) push(pos int) {
	if pos >= d.width {
		return
	}
	if n := len(d.cur); n > 0 && d.cur[n-1] == pos {
		d.cur = d.cur[:n-1]
		return
	}
	d.cur = append(d.cur, pos)
}

// runError converts the error from reading a horizontal mode run.  Both runs
// of the horizontal mode are required.
func (d *g4Decoder) runError(err error) error {
	if errors.Is(err, errNoCode) {
		return d.b.malformed(ErrInvalidCode)
	}
	return err
}

// endOfBlock reads the end-of-facsimile-block marker.  If the number of lines
// is known in advance, the marker is optional.
func (d *g4Decoder) endOfBlock() error {
	if d.height > 0 {
		if v, ok := d.b.peek(int(mh.EOL.Len)); !ok || v != uint32(mh.EOL.Bits) {
			return nil
		}
	}
	for range 2 {
		err := d.b.expect(mh.EOL, "end-of-facsimile-block")
		if err != nil {
			return err
		}
	}
	return nil
}
