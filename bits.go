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
	"bufio"
	"fmt"
	"io"

	"seehuhn.de/go/fax/internal/mh"
)

// maxPeek is the largest number of bits which can be inspected at once.
const maxPeek = 16

// bitReader reads a byte stream as a sequence of bits, most significant bit
// first.
type bitReader struct {
	r         *bufio.Reader
	err       error  // first read error; no input is read after it
	current   uint32 // up to 4 bytes of input, valid bits MSB-aligned
	validBits int    // number of valid bits in current

	pos int64 // number of bits consumed so far
}

func newBitReader(r io.Reader) *bitReader {
	return &bitReader{r: bufio.NewReader(r)}
}

// fill reads input until at least n bits are available or the input is
// exhausted.
func (b *bitReader) fill(n int) {
	for b.validBits < n && b.err == nil {
		x, err := b.r.ReadByte()
		if err != nil {
			b.err = err
			return
		}
		b.current |= uint32(x) << (24 - b.validBits)
		b.validBits += 8
	}
}

// peek returns the next n bits, right-aligned, without consuming them.
// If fewer than n bits are left, the second return value is false.
func (b *bitReader) peek(n int) (uint32, bool) {
	if n > maxPeek {
		panic("invalid n")
	}
	b.fill(n)
	if b.validBits < n {
		return 0, false
	}
	return b.current >> (32 - n), true
}

// window returns the next maxPeek bits, right-aligned, together with the
// number of these bits which are backed by input.  Missing bits read as zero.
func (b *bitReader) window() (uint32, int) {
	b.fill(maxPeek)
	return b.current >> (32 - maxPeek), min(b.validBits, maxPeek)
}

// consume skips n bits.  The bits must have been peeked before.
func (b *bitReader) consume(n int) {
	n = min(n, b.validBits)
	b.current <<= n
	b.validBits -= n
	b.pos += int64(n)
}

// expect consumes the code c, if it comes next in the input.
// Otherwise an error is returned and no input is consumed.
func (b *bitReader) expect(c mh.Code, what string) error {
	v, ok := b.peek(int(c.Len))
	if !ok || v != uint32(c.Bits) {
		return b.malformed(fmt.Errorf("%w: %s", ErrSync, what))
	}
	b.consume(int(c.Len))
	return nil
}

// atEOF reports whether all input has been consumed.
func (b *bitReader) atEOF() bool {
	b.fill(1)
	return b.validBits == 0
}

// malformed wraps err into a MalformedError at the current position.
// Read errors other than io.EOF take precedence.  An invalid code word within
// the last maxPeek bits of the input is reported as ErrTruncated.
func (b *bitReader) malformed(err error) error {
	if b.err != nil && b.err != io.EOF {
		return b.err
	}
	if err == ErrInvalidCode {
		b.fill(maxPeek)
		if b.validBits < maxPeek {
			err = ErrTruncated
		}
	}
	return &MalformedError{Pos: b.pos, Err: err}
}
