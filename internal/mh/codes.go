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

// Package mh holds the code words of the Modified Huffman run-length code
// (ITU-T T.4, tables 2 and 3) and of the two-dimensional mode codes (ITU-T
// T.6, table 1).
//
// The lists are plain data.  The decoder builds its lookup tables from them,
// and the test encoder uses them in the opposite direction.
package mh

// Code is a code word.  The Len least significant bits of Bits hold the code,
// most significant bit first.
type Code struct {
	Bits uint16
	Len  uint8
}

// Run is a run-length code word.  Lengths below 64 are terminating codes,
// larger lengths are makeup codes.
type Run struct {
	Code
	Length int
}

// Mode identifies a two-dimensional coding mode.
type Mode uint8

// The two-dimensional coding modes.
const (
	Pass Mode = iota
	Horizontal
	V0
	VR1
	VR2
	VR3
	VL1
	VL2
	VL3
	Extension
)

// Delta returns the offset a1-b1 of a vertical mode.
// The result is 0 for all other modes.
func (m Mode) Delta() int {
	switch m {
	case VR1:
		return 1
	case VR2:
		return 2
	case VR3:
		return 3
	case VL1:
		return -1
	case VL2:
		return -2
	case VL3:
		return -3
	}
	return 0
}

// IsVertical reports whether m is one of the seven vertical modes.
func (m Mode) IsVertical() bool {
	return m >= V0 && m <= VL3
}

// ModeCode is a code word for a two-dimensional coding mode.
type ModeCode struct {
	Code
	Mode Mode
}

// Modes lists the mode code words.  The extension code is followed by a
// three bit tail which is not part of the code word.
var Modes = []ModeCode{
	{Code{0b0001, 4}, Pass},
	{Code{0b001, 3}, Horizontal},
	{Code{0b1, 1}, V0},
	{Code{0b011, 3}, VR1},
	{Code{0b000011, 6}, VR2},
	{Code{0b0000011, 7}, VR3},
	{Code{0b010, 3}, VL1},
	{Code{0b000010, 6}, VL2},
	{Code{0b0000010, 7}, VL3},
	{Code{0b0000001, 7}, Extension},
}

// EOL is the end-of-line code.  Two consecutive EOL codes form the
// end-of-facsimile-block marker of Group 4 streams, six of them form the
// return-to-control sequence of Group 3 streams.
var EOL = Code{0b000000000001, 12}

// ExtensionTailBits is the length of the tail following the extension code.
const ExtensionTailBits = 3

// White lists the code words for white runs.
var White = []Run{
	{Code{0b00110101, 8}, 0},
	{Code{0b000111, 6}, 1},
	{Code{0b0111, 4}, 2},
	{Code{0b1000, 4}, 3},
	{Code{0b1011, 4}, 4},
	{Code{0b1100, 4}, 5},
	{Code{0b1110, 4}, 6},
	{Code{0b1111, 4}, 7},
	{Code{0b10011, 5}, 8},
	{Code{0b10100, 5}, 9},
	{Code{0b00111, 5}, 10},
	{Code{0b01000, 5}, 11},
	{Code{0b001000, 6}, 12},
	{Code{0b000011, 6}, 13},
	{Code{0b110100, 6}, 14},
	{Code{0b110101, 6}, 15},
	{Code{0b101010, 6}, 16},
	{Code{0b101011, 6}, 17},
	{Code{0b0100111, 7}, 18},
	{Code{0b0001100, 7}, 19},
	{Code{0b0001000, 7}, 20},
	{Code{0b0010111, 7}, 21},
	{Code{0b0000011, 7}, 22},
	{Code{0b0000100, 7}, 23},
	{Code{0b0101000, 7}, 24},
	{Code{0b0101011, 7}, 25},
	{Code{0b0010011, 7}, 26},
	{Code{0b0100100, 7}, 27},
	{Code{0b0011000, 7}, 28},
	{Code{0b00000010, 8}, 29},
	{Code{0b00000011, 8}, 30},
	{Code{0b00011010, 8}, 31},
	{Code{0b00011011, 8}, 32},
	{Code{0b00010010, 8}, 33},
	{Code{0b00010011, 8}, 34},
	{Code{0b00010100, 8}, 35},
	{Code{0b00010101, 8}, 36},
	{Code{0b00010110, 8}, 37},
	{Code{0b00010111, 8}, 38},
	{Code{0b00101000, 8}, 39},
	{Code{0b00101001, 8}, 40},
	{Code{0b00101010, 8}, 41},
	{Code{0b00101011, 8}, 42},
	{Code{0b00101100, 8}, 43},
	{Code{0b00101101, 8}, 44},
	{Code{0b00000100, 8}, 45},
	{Code{0b00000101, 8}, 46},
	{Code{0b00001010, 8}, 47},
	{Code{0b00001011, 8}, 48},
	{Code{0b01010010, 8}, 49},
	{Code{0b01010011, 8}, 50},
	{Code{0b01010100, 8}, 51},
	{Code{0b01010101, 8}, 52},
	{Code{0b00100100, 8}, 53},
	{Code{0b00100101, 8}, 54},
	{Code{0b01011000, 8}, 55},
	{Code{0b01011001, 8}, 56},
	{Code{0b01011010, 8}, 57},
	{Code{0b01011011, 8}, 58},
	{Code{0b01001010, 8}, 59},
	{Code{0b01001011, 8}, 60},
	{Code{0b00110010, 8}, 61},
	{Code{0b00110011, 8}, 62},
	{Code{0b00110100, 8}, 63},

	// makeup codes
	{Code{0b11011, 5}, 64},
	{Code{0b10010, 5}, 128},
	{Code{0b010111, 6}, 192},
	{Code{0b0110111, 7}, 256},
	{Code{0b00110110, 8}, 320},
	{Code{0b00110111, 8}, 384},
	{Code{0b01100100, 8}, 448},
	{Code{0b01100101, 8}, 512},
	{Code{0b01101000, 8}, 576},
	{Code{0b01100111, 8}, 640},
	{Code{0b011001100, 9}, 704},
	{Code{0b011001101, 9}, 768},
	{Code{0b011010010, 9}, 832},
	{Code{0b011010011, 9}, 896},
	{Code{0b011010100, 9}, 960},
	{Code{0b011010101, 9}, 1024},
	{Code{0b011010110, 9}, 1088},
	{Code{0b011010111, 9}, 1152},
	{Code{0b011011000, 9}, 1216},
	{Code{0b011011001, 9}, 1280},
	{Code{0b011011010, 9}, 1344},
	{Code{0b011011011, 9}, 1408},
	{Code{0b010011000, 9}, 1472},
	{Code{0b010011001, 9}, 1536},
	{Code{0b010011010, 9}, 1600},
	{Code{0b011000, 6}, 1664},
	{Code{0b010011011, 9}, 1728},

	// extended makeup codes, shared by both colors
	{Code{0b00000001000, 11}, 1792},
	{Code{0b00000001100, 11}, 1856},
	{Code{0b00000001101, 11}, 1920},
	{Code{0b000000010010, 12}, 1984},
	{Code{0b000000010011, 12}, 2048},
	{Code{0b000000010100, 12}, 2112},
	{Code{0b000000010101, 12}, 2176},
	{Code{0b000000010110, 12}, 2240},
	{Code{0b000000010111, 12}, 2304},
	{Code{0b000000011100, 12}, 2368},
	{Code{0b000000011101, 12}, 2432},
	{Code{0b000000011110, 12}, 2496},
	{Code{0b000000011111, 12}, 2560},
}

// Black lists the code words for black runs.
var Black = []Run{
	{Code{0b0000110111, 10}, 0},
	{Code{0b010, 3}, 1},
	{Code{0b11, 2}, 2},
	{Code{0b10, 2}, 3},
	{Code{0b011, 3}, 4},
	{Code{0b0011, 4}, 5},
	{Code{0b0010, 4}, 6},
	{Code{0b00011, 5}, 7},
	{Code{0b000101, 6}, 8},
	{Code{0b000100, 6}, 9},
	{Code{0b0000100, 7}, 10},
	{Code{0b0000101, 7}, 11},
	{Code{0b0000111, 7}, 12},
	{Code{0b00000100, 8}, 13},
	{Code{0b00000111, 8}, 14},
	{Code{0b000011000, 9}, 15},
	{Code{0b0000010111, 10}, 16},
	{Code{0b0000011000, 10}, 17},
	{Code{0b0000001000, 10}, 18},
	{Code{0b00001100111, 11}, 19},
	{Code{0b00001101000, 11}, 20},
	{Code{0b00001101100, 11}, 21},
	{Code{0b00000110111, 11}, 22},
	{Code{0b00000101000, 11}, 23},
	{Code{0b00000010111, 11}, 24},
	{Code{0b00000011000, 11}, 25},
	{Code{0b000011001010, 12}, 26},
	{Code{0b000011001011, 12}, 27},
	{Code{0b000011001100, 12}, 28},
	{Code{0b000011001101, 12}, 29},
	{Code{0b000001101000, 12}, 30},
	{Code{0b000001101001, 12}, 31},
	{Code{0b000001101010, 12}, 32},
	{Code{0b000001101011, 12}, 33},
	{Code{0b000011010010, 12}, 34},
	{Code{0b000011010011, 12}, 35},
	{Code{0b000011010100, 12}, 36},
	{Code{0b000011010101, 12}, 37},
	{Code{0b000011010110, 12}, 38},
	{Code{0b000011010111, 12}, 39},
	{Code{0b000001101100, 12}, 40},
	{Code{0b000001101101, 12}, 41},
	{Code{0b000011011010, 12}, 42},
	{Code{0b000011011011, 12}, 43},
	{Code{0b000001010100, 12}, 44},
	{Code{0b000001010101, 12}, 45},
	{Code{0b000001010110, 12}, 46},
	{Code{0b000001010111, 12}, 47},
	{Code{0b000001100100, 12}, 48},
	{Code{0b000001100101, 12}, 49},
	{Code{0b000001010010, 12}, 50},
	{Code{0b000001010011, 12}, 51},
	{Code{0b000000100100, 12}, 52},
	{Code{0b000000110111, 12}, 53},
	{Code{0b000000111000, 12}, 54},
	{Code{0b000000100111, 12}, 55},
	{Code{0b000000101000, 12}, 56},
	{Code{0b000001011000, 12}, 57},
	{Code{0b000001011001, 12}, 58},
	{Code{0b000000101011, 12}, 59},
	{Code{0b000000101100, 12}, 60},
	{Code{0b000001011010, 12}, 61},
	{Code{0b000001100110, 12}, 62},
	{Code{0b000001100111, 12}, 63},

	// makeup codes
	{Code{0b0000001111, 10}, 64},
	{Code{0b000011001000, 12}, 128},
	{Code{0b000011001001, 12}, 192},
	{Code{0b000001011011, 12}, 256},
	{Code{0b000000110011, 12}, 320},
	{Code{0b000000110100, 12}, 384},
	{Code{0b000000110101, 12}, 448},
	{Code{0b0000001101100, 13}, 512},
	{Code{0b0000001101101, 13}, 576},
	{Code{0b0000001001010, 13}, 640},
	{Code{0b0000001001011, 13}, 704},
	{Code{0b0000001001100, 13}, 768},
	{Code{0b0000001001101, 13}, 832},
	{Code{0b0000001110010, 13}, 896},
	{Code{0b0000001110011, 13}, 960},
	{Code{0b0000001110100, 13}, 1024},
	{Code{0b0000001110101, 13}, 1088},
	{Code{0b0000001110110, 13}, 1152},
	{Code{0b0000001110111, 13}, 1216},
	{Code{0b0000001010010, 13}, 1280},
	{Code{0b0000001010011, 13}, 1344},
	{Code{0b0000001010100, 13}, 1408},
	{Code{0b0000001010101, 13}, 1472},
	{Code{0b0000001011010, 13}, 1536},
	{Code{0b0000001011011, 13}, 1600},
	{Code{0b0000001100100, 13}, 1664},
	{Code{0b0000001100101, 13}, 1728},

	// extended makeup codes, shared by both colors
	{Code{0b00000001000, 11}, 1792},
	{Code{0b00000001100, 11}, 1856},
	{Code{0b00000001101, 11}, 1920},
	{Code{0b000000010010, 12}, 1984},
	{Code{0b000000010011, 12}, 2048},
	{Code{0b000000010100, 12}, 2112},
	{Code{0b000000010101, 12}, 2176},
	{Code{0b000000010110, 12}, 2240},
	{Code{0b000000010111, 12}, 2304},
	{Code{0b000000011100, 12}, 2368},
	{Code{0b000000011101, 12}, 2432},
	{Code{0b000000011110, 12}, 2496},
	{Code{0b000000011111, 12}, 2560},
}
