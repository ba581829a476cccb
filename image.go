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
	"image"
	"image/color"
	"io"
)

// Palette maps the pixel colors to gray values.  The palette index of a
// pixel is its Color value.
var Palette = color.Palette{
	White: color.Gray{Y: 0xFF},
	Black: color.Gray{Y: 0x00},
}

// Decode decodes a complete CCITT fax image.
//
// If decoding fails part way, the rows decoded so far are returned together
// with the error.
func Decode(r io.Reader, p *Params) (*image.Paletted, error) {
	pCopy := p.withDefaults()
	if err := pCopy.Validate(); err != nil {
		return nil, err
	}

	width := pCopy.Columns
	var pix []uint8
	rows := 0
	err := decodeLines(pCopy.newDecoder(r), func(line []int) {
		for c := range Pels(line, width) {
			pix = append(pix, uint8(c))
		}
		rows++
	})

	img := &image.Paletted{
		Pix:     pix,
		Stride:  width,
		Rect:    image.Rect(0, 0, width, rows),
		Palette: Palette,
	}
	return img, err
}
