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

package faxtest

import "math/rand/v2"

// Line returns the change positions for a line made of the given runs.
// The runs alternate between white and black, starting with white.
func Line(runs ...int) []int {
	var res []int
	pos := 0
	for _, run := range runs {
		pos += run
		res = append(res, pos)
	}
	return res
}

// RandomImage returns height random lines of the given width.  Most lines
// are small modifications of the line above, so that all two-dimensional
// coding modes occur.
func RandomImage(rng *rand.Rand, width, height int) [][]int {
	res := make([][]int, height)
	var prev []int
	for y := range res {
		var line []int
		if y == 0 || rng.IntN(4) == 0 {
			line = randomLine(rng, width)
		} else {
			line = perturb(rng, prev, width)
		}
		res[y] = line
		prev = line
	}
	return res
}

func randomLine(rng *rand.Rand, width int) []int {
	var line []int
	pos := 0
	for {
		if rng.IntN(8) == 0 {
			pos += rng.IntN(3000)
		} else {
			pos += rng.IntN(12)
		}
		if pos >= width {
			return line
		}
		if n := len(line); n > 0 && line[n-1] == pos {
			line = line[:n-1]
			continue
		}
		line = append(line, pos)
	}
}

func perturb(rng *rand.Rand, prev []int, width int) []int {
	line := make([]int, 0, len(prev))
	for _, p := range prev {
		if rng.IntN(10) == 0 {
			continue
		}
		q := p + rng.IntN(9) - 4
		if q < 0 || q >= width {
			continue
		}
		if n := len(line); n > 0 && q <= line[n-1] {
			continue
		}
		line = append(line, q)
	}
	return line
}
