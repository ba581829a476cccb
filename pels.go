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
	"iter"
	"strconv"
)

// Color is the color of a pixel.
type Color uint8

// These are the two pixel colors.  Every line starts white.
const (
	White Color = iota
	Black
)

// Invert returns the opposite color.
func (c Color) Invert() Color {
	return c ^ 1
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "Color(" + strconv.Itoa(int(c)) + ")"
}

// Pels returns the pixel colors of a line, given as a list of change
// positions.  The sequence contains exactly width colors (none, if width is
// negative).
//
// The line starts white, and the color flips at every change position.
// After the last change position the line is padded with the final color:
// white if the list has even length, black otherwise.  Change positions at or
// beyond width are cut off, and a position smaller than its predecessor
// contributes no pixels.
func Pels(line []int, width int) iter.Seq[Color] {
	return func(yield func(Color) bool) {
		count := 0
		emit := func(c Color, n int) bool {
			for ; n > 0 && count < width; n-- {
				if !yield(c) {
					return false
				}
				count++
			}
			return true
		}

		color := White
		last := 0
		for _, p := range line {
			if count >= width {
				return
			}
			if !emit(color, p-last) {
				return
			}
			last = p
			color = color.Invert()
		}
		emit(color, width-count)
	}
}
