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
	"bytes"
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/fax/internal/faxtest"
)

// decodeG4With decodes Group 4 data using the given strategy for finding b1
// and b2, and returns copies of all decoded lines.
func decodeG4With(data []byte, width, height int, finder changeFinder) ([][]int, error) {
	d := newG4Decoder(bytes.NewReader(data), width, height)
	d.finder = finder
	var lines [][]int
	err := decodeLines(d, func(line []int) {
		lines = append(lines, slices.Clone(line))
	})
	return lines, err
}

func TestG4(t *testing.T) {
	cases := []struct {
		name   string
		bits   string
		width  int
		height int
		want   [][]int
	}{
		{
			name:   "white line, vertical",
			bits:   "1",
			width:  10,
			height: 1,
			want:   [][]int{{}},
		},
		{
			name:   "white line, pass",
			bits:   "0001",
			width:  10,
			height: 1,
			want:   [][]int{{}},
		},
		{
			name:   "repeated line",
			bits:   "001 1000 00011  1 1",
			width:  10,
			height: 2,
			want:   [][]int{{3}, {3}},
		},
		{
			name:   "horizontal",
			bits:   "001 1100 0011",
			width:  10,
			height: 1,
			want:   [][]int{{5}},
		},
		{
			name:   "line starting black",
			bits:   "001 00110101 011 1  1 1 1",
			width:  8,
			height: 2,
			want:   [][]int{{0, 4}, {0, 4}},
		},
		{
			name:   "pass over a black run",
			bits:   "001 0111 11 1  0001 1",
			width:  8,
			height: 2,
			want:   [][]int{{2, 4}, {}},
		},
		{
			name:   "vertical left",
			bits:   "001 1100 10  000010 1",
			width:  8,
			height: 2,
			want:   [][]int{{5}, {3}},
		},
		{
			name:   "end of block",
			bits:   "1  000000000001 000000000001",
			width:  10,
			height: 0,
			want:   [][]int{{}},
		},
		{
			name:   "optional end of block",
			bits:   "1  000000000001 000000000001",
			width:  10,
			height: 5,
			want:   [][]int{{}},
		},
		{
			name:   "empty image",
			bits:   "000000000001 000000000001",
			width:  10,
			height: 0,
			want:   nil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, finder := range []changeFinder{&transitions{}, &rescan{}} {
				got, err := decodeG4With(bitsOf(tc.bits), tc.width, tc.height, finder)
				if err != nil {
					t.Fatal(err)
				}
				if d := cmp.Diff(tc.want, got, cmpopts.EquateEmpty()); d != "" {
					t.Errorf("%T: unexpected lines (-want +got):\n%s", finder, d)
				}
			}
		})
	}
}

func TestG4Errors(t *testing.T) {
	cases := []struct {
		name     string
		bits     string
		width    int
		height   int
		numLines int
		want     error
	}{
		{
			name:     "missing end of block",
			bits:     "1",
			width:    10,
			numLines: 1,
			want:     ErrSync,
		},
		{
			name:     "broken end of block",
			bits:     "1  000000000001 000000000011",
			width:    10,
			numLines: 1,
			want:     ErrSync,
		},
		{
			name:     "extension",
			bits:     "1  0000001 111",
			width:    10,
			numLines: 1,
			want:     ErrExtension,
		},
		{
			name:     "vertical mode left of a0",
			bits:     "001 1100 010 1  1 0000010",
			width:    10,
			height:   2,
			numLines: 1,
			want:     ErrInvalidCode,
		},
		{
			name:     "vertical mode onto a0",
			bits:     "001 1100 010 1  1 010",
			width:    10,
			height:   2,
			numLines: 1,
			want:     ErrInvalidCode,
		},
		{
			name:   "truncated horizontal mode",
			bits:   "001 1100",
			width:  10,
			height: 1,
			want:   ErrTruncated,
		},
		{
			name:   "truncated line",
			bits:   "001 1100 0011",
			width:  20,
			height: 1,
			want:   ErrTruncated,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := decodeG4With(bitsOf(tc.bits), tc.width, tc.height, &transitions{})
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
			if len(got) != tc.numLines {
				t.Errorf("got %d lines, want %d", len(got), tc.numLines)
			}
		})
	}
}

func TestG4InvalidWidth(t *testing.T) {
	for _, width := range []int{0, -1, maxColumns + 1} {
		err := DecodeG4(bytes.NewReader(nil), width, 1, func([]int) {})
		if err == nil {
			t.Errorf("width %d accepted", width)
		}
	}
}

// TestFindChanges checks the b1/b2 rule at the boundaries of the reference
// line.
func TestFindChanges(t *testing.T) {
	const width = 20
	cases := []struct {
		ref        []int
		a0         int
		color      Color
		startOfRow bool
		b1, b2     int
	}{
		{nil, 0, White, true, width, width},
		{[]int{0, 5}, 0, White, true, 0, 5},
		{[]int{0}, 0, White, true, 0, width},
		{[]int{0, 5}, 0, White, false, width, width},
		{[]int{3, 5}, 0, White, true, 3, 5},
		{[]int{3, 5}, 3, White, false, width, width},
		{[]int{3, 5}, 3, Black, false, 5, width},
		{[]int{3, 5, 9}, 2, Black, false, 5, 9},
		{[]int{3, 5, 9, 12}, 6, White, false, 9, 12},
		{[]int{3, 5, 9, 12}, 9, White, false, width, width},
		{[]int{19}, 10, White, false, 19, width},
	}
	for _, tc := range cases {
		for _, finder := range []changeFinder{&transitions{}, &rescan{}} {
			finder.reset(tc.ref, width)
			b1, b2, err := finder.find(tc.a0, tc.color, tc.startOfRow)
			if err != nil {
				t.Fatal(err)
			}
			if b1 != tc.b1 || b2 != tc.b2 {
				t.Errorf("%T: ref=%v a0=%d %s: got b1=%d b2=%d, want %d %d",
					finder, tc.ref, tc.a0, tc.color, b1, b2, tc.b1, tc.b2)
			}
		}
	}
}

func TestTransitionsRewind(t *testing.T) {
	ref := []int{2, 4, 6, 8}
	tr := &transitions{}
	tr.reset(ref, 10)

	b1, _, err := tr.find(5, White, false)
	if err != nil || b1 != 6 {
		t.Fatalf("got b1=%d, %v", b1, err)
	}

	// VL3 places a1 at 3, to the left of the change at 4.
	tr.rewind(3)
	b1, b2, err := tr.find(3, Black, false)
	if err != nil {
		t.Fatal(err)
	}
	if b1 != 4 || b2 != 6 {
		t.Errorf("got b1=%d b2=%d, want 4 6", b1, b2)
	}
}

func TestTransitionsInvariant(t *testing.T) {
	tr := &transitions{}
	tr.reset([]int{2, 4, 6, 8}, 10)
	if _, _, err := tr.find(5, White, false); err != nil {
		t.Fatal(err)
	}
	// Moving a0 back without rewinding skips the candidate at 4.
	_, _, err := tr.find(3, Black, false)
	if !errors.Is(err, ErrInternal) {
		t.Errorf("expected ErrInternal, got %v", err)
	}
}

func TestG4RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	for _, width := range []int{1, 2, 7, 8, 100, 1728, 5000} {
		img := faxtest.RandomImage(rng, width, 40)
		data, err := faxtest.Encode(&faxtest.Params{K: -1, Columns: width, EndOfBlock: true}, img...)
		if err != nil {
			t.Fatal(err)
		}

		for _, height := range []int{0, len(img)} {
			for _, finder := range []changeFinder{&transitions{}, &rescan{}} {
				got, err := decodeG4With(data, width, height, finder)
				if err != nil {
					t.Fatalf("width %d, height %d, %T: %v", width, height, finder, err)
				}
				if d := cmp.Diff(img, got, cmpopts.EquateEmpty()); d != "" {
					t.Fatalf("width %d, height %d, %T: lines differ (-want +got):\n%s",
						width, height, finder, d)
				}
			}
		}
	}
}

// TestG4Truncated decodes all prefixes of a valid stream.  Decoding must not
// fail in unexpected ways, and all lines delivered must be correct.
func TestG4Truncated(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))
	const width = 50
	img := faxtest.RandomImage(rng, width, 10)
	data, err := faxtest.Encode(&faxtest.Params{K: -1, Columns: width, EndOfBlock: true}, img...)
	if err != nil {
		t.Fatal(err)
	}

	for n := range len(data) {
		for _, height := range []int{0, len(img)} {
			got, err := decodeG4With(data[:n], width, height, &transitions{})
			if height == 0 && err == nil {
				t.Errorf("%d bytes: missing error", n)
			}
			var mErr *MalformedError
			if err != nil && !errors.As(err, &mErr) {
				t.Errorf("%d bytes: unexpected error type %T: %v", n, err, err)
			}
			if len(got) > len(img) {
				t.Fatalf("%d bytes: too many lines", n)
			}
			if d := cmp.Diff(img[:len(got)], got, cmpopts.EquateEmpty()); d != "" {
				t.Errorf("%d bytes: wrong lines (-want +got):\n%s", n, d)
			}
		}
	}
}

func TestG4Deterministic(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 10))
	data := make([]byte, 200)
	for i := range data {
		data[i] = byte(rng.UintN(256))
	}
	first, err1 := decodeG4With(data, 64, 0, &transitions{})
	second, err2 := decodeG4With(data, 64, 0, &transitions{})
	if d := cmp.Diff(first, second); d != "" {
		t.Errorf("decoding is not deterministic:\n%s", d)
	}
	if (err1 == nil) != (err2 == nil) || err1 != nil && err1.Error() != err2.Error() {
		t.Errorf("different errors: %v, %v", err1, err2)
	}
}

// TestConcurrentDecode checks that independent decoders can run in parallel,
// sharing the code tables.
func TestConcurrentDecode(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))
	const width = 300
	img := faxtest.RandomImage(rng, width, 100)
	data, err := faxtest.Encode(&faxtest.Params{K: -1, Columns: width, EndOfBlock: true}, img...)
	if err != nil {
		t.Fatal(err)
	}

	results := make([][][]int, 8)
	g := &errgroup.Group{}
	for i := range results {
		g.Go(func() error {
			return DecodeG4(bytes.NewReader(data), width, 0, func(line []int) {
				results[i] = append(results[i], slices.Clone(line))
			})
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	for i, res := range results {
		if d := cmp.Diff(img, res, cmpopts.EquateEmpty()); d != "" {
			t.Errorf("decoder %d: lines differ (-want +got):\n%s", i, d)
		}
	}
}

func FuzzDecodeG4(f *testing.F) {
	rng := rand.New(rand.NewPCG(13, 14))
	for _, width := range []int{8, 100} {
		img := faxtest.RandomImage(rng, width, 5)
		data, err := faxtest.Encode(&faxtest.Params{K: -1, Columns: width, EndOfBlock: true}, img...)
		if err != nil {
			f.Fatal(err)
		}
		f.Add(data, width, 0)
	}
	f.Add(bitsOf("0000001 111"), 10, 1)

	f.Fuzz(func(t *testing.T, data []byte, width, height int) {
		width = 1 + abs(width%3000)
		height = abs(height % 100)

		var fast [][]int
		errFast := decodeLines(newG4Decoder(bytes.NewReader(data), width, height), func(line []int) {
			for i, pos := range line {
				if pos < 0 || pos >= width || i > 0 && pos <= line[i-1] {
					t.Fatalf("invalid line %v", line)
				}
			}
			fast = append(fast, slices.Clone(line))
		})
		slow, errSlow := decodeG4With(data, width, height, &rescan{})

		if d := cmp.Diff(slow, fast, cmpopts.EquateEmpty()); d != "" {
			t.Errorf("strategies disagree (-rescan +transitions):\n%s", d)
		}
		if (errFast == nil) != (errSlow == nil) {
			t.Errorf("strategies disagree: %v, %v", errSlow, errFast)
		}
	})
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
