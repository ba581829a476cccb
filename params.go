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
)

// maxColumns is the largest supported line width.
const maxColumns = 1 << 20

// defaultColumns is the line width of a standard fax page.
const defaultColumns = 1728

// Params describes the layout of CCITT fax data, using the same conventions
// as the PDF CCITTFaxDecode filter.
type Params struct {
	// K selects the coding scheme.
	// Negative values select pure two-dimensional coding (Group 4, T.6),
	// zero selects one-dimensional coding (Group 3, T.4).
	// Mixed one- and two-dimensional coding (K > 0) is not supported.
	K int

	// Columns is the width of the image in pixels.
	// The value 0 is replaced by 1728.
	Columns int

	// MaxRows is the maximum number of rows to decode.
	// If this is 0, Group 4 data is decoded until the end-of-block marker
	// and Group 3 data until the return-to-control sequence.
	MaxRows int

	// BlackIs1 selects the bit value for black pixels in packed output.
	// If false, black pixels are 0 and white pixels are 1.
	BlackIs1 bool
}

// Validate checks the parameters for consistency.
// Columns must already have been replaced by its default, if needed.
func (p *Params) Validate() error {
	if p.K > 0 {
		return fmt.Errorf("K=%d: mixed 1D/2D coding is not supported", p.K)
	}
	if p.Columns < 1 || p.Columns > maxColumns {
		return errors.New("invalid Columns value")
	}
	if p.MaxRows < 0 {
		return fmt.Errorf("MaxRows must be non-negative, got %d", p.MaxRows)
	}
	return nil
}

// withDefaults returns a copy of p with default values filled in.
func (p *Params) withDefaults() Params {
	pCopy := *p
	if pCopy.Columns == 0 {
		pCopy.Columns = defaultColumns
	}
	return pCopy
}

func (p *Params) newDecoder(r io.Reader) lineDecoder {
	if p.K < 0 {
		return newG4Decoder(r, p.Columns, p.MaxRows)
	}
	return newG3Decoder(r, p.MaxRows)
}
