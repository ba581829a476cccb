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

import "seehuhn.de/go/fax/internal/mh"

// The lookup tables are built once and never modified afterwards, so they
// can be shared between concurrent decoders.
var (
	modeTable  = newTable(modeCodes(), 7)
	whiteTable = newTable(runCodes(mh.White), 8, 4)
	blackTable = newTable(runCodes(mh.Black), 7, 6)
)

func modeCodes() []codeWord[mh.Mode] {
	res := make([]codeWord[mh.Mode], len(mh.Modes))
	for i, m := range mh.Modes {
		res[i] = codeWord[mh.Mode]{bits: m.Bits, len: m.Len, val: m.Mode}
	}
	return res
}

func runCodes(runs []mh.Run) []codeWord[int] {
	res := make([]codeWord[int], len(runs))
	for i, r := range runs {
		res[i] = codeWord[int]{bits: r.Bits, len: r.Len, val: r.Length}
	}
	return res
}
