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

// Package fax decodes CCITT Group 3 and Group 4 compressed bilevel images,
// as used by fax machines, TIFF files and the PDF CCITTFaxDecode filter.
//
// The decoders report every line as the list of positions where the pixel
// color changes.  Lines start white, so a line with change positions
// [3 7] on an image of width 10 consists of 3 white, 4 black and 3 white
// pixels:
//
//	err := fax.DecodeG4(r, width, height, func(line []int) {
//	    for c := range fax.Pels(line, width) {
//	        ... use the pixel color c ...
//	    }
//	})
//
// DecodeG3 handles one-dimensional Group 3 data (ITU-T T.4, Modified
// Huffman) framed by EOL codes, DecodeG4 handles two-dimensional Group 4
// data (ITU-T T.6, MMR).  For whole images, Decode returns an
// [image.Paletted] and NewReader returns packed rows of pixels.
//
// Decoding is sequential.  The code tables are read-only, so independent
// images can be decoded concurrently.
package fax
