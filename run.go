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

// readRun reads the run length for a run of the given color.  Makeup codes
// are added up until a terminating code is found.
//
// If no code word at all can be read, errNoCode is returned.  A makeup code
// which is not followed by a terminating code is a format error.
func readRun(b *bitReader, color Color) (int, error) {
	table := whiteTable
	if color == Black {
		table = blackTable
	}

	total := 0
	for first := true; ; first = false {
		n, ok := table.decode(b)
		if !ok {
			if first {
				return 0, errNoCode
			}
			return 0, b.malformed(ErrInvalidCode)
		}
		total += n
		if n < 64 {
			return total, nil
		}
	}
}
