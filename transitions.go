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

	"golang.org/x/exp/slices"
)

// changeFinder locates the changing elements b1 and b2 on the reference line.
//
// b1 is the first change position on the reference line to the right of a0
// where the reference line switches to the color opposite to color.  b2 is
// the next change position after b1.  Both are the line width if no such
// position exists.
type changeFinder interface {
	// reset starts a new coding line with the given reference line.
	reset(ref []int, width int)

	// find returns b1 and b2.  At the start of a row, a0 refers to the
	// imaginary pixel to the left of the line and a change at position 0
	// counts as being to the right of a0.
	find(a0 int, color Color, startOfRow bool) (b1, b2 int, err error)

	// rewind is called after a vertical mode with negative offset has
	// placed a1 to the left of the previous b1.
	rewind(a1 int)
}

// transitions finds b1 and b2 by scanning forward from the position of the
// previous b1.  Since a0 only moves to the right, except for the small steps
// back of the vertical modes, this takes amortised constant time per call.
type transitions struct {
	ref   []int
	width int

	// pos is the index of the last b1 returned.  No entry before pos can be
	// b1 for the current a0 and color.
	pos int
}

func (t *transitions) reset(ref []int, width int) {
	t.ref = ref
	t.width = width
	t.pos = 0
}

func (t *transitions) find(a0 int, color Color, startOfRow bool) (int, int, error) {
	if startOfRow && len(t.ref) > 0 && t.ref[0] == 0 {
		t.pos = 0
		return 0, t.at(1), nil
	}

	if t.pos > 0 {
		prev := t.pos - 1
		if t.ref[prev] > a0 && prev%2 == int(color) {
			return 0, 0, fmt.Errorf("%w: reference cursor at %d skipped position %d (a0=%d)",
				ErrInternal, t.pos, t.ref[prev], a0)
		}
	}

	for t.pos < len(t.ref) && t.ref[t.pos] <= a0 {
		t.pos++
	}
	i := t.pos
	if i%2 != int(color) {
		// Even entries switch to black, odd entries switch to white.
		i++
	}
	if i >= len(t.ref) {
		return t.width, t.width, nil
	}
	t.pos = i
	return t.ref[i], t.at(i + 1), nil
}

func (t *transitions) rewind(a1 int) {
	// first index with ref[i] > a1
	i, _ := slices.BinarySearch(t.ref[:t.pos], a1+1)
	t.pos = i
}

func (t *transitions) at(i int) int {
	if i < len(t.ref) {
		return t.ref[i]
	}
	return t.width
}

// rescan finds b1 and b2 by searching the reference line from the start on
// every call.  This is slow for long lines, but simple enough to serve as a
// check for transitions.
type rescan struct {
	ref   []int
	width int
}

func (s *rescan) reset(ref []int, width int) {
	s.ref = ref
	s.width = width
}

func (s *rescan) find(a0 int, color Color, startOfRow bool) (int, int, error) {
	if startOfRow && len(s.ref) > 0 && s.ref[0] == 0 {
		return 0, s.at(1), nil
	}
	for i := int(color); i < len(s.ref); i += 2 {
		if s.ref[i] > a0 {
			return s.ref[i], s.at(i + 1), nil
		}
	}
	return s.width, s.width, nil
}

func (s *rescan) rewind(int) {}

func (s *rescan) at(i int) int {
	if i < len(s.ref) {
		return s.ref[i]
	}
	return s.width
}
