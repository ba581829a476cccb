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
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// pelString renders a line as a string of '.' (white) and '#' (black).
func pelString(line []int, width int) string {
	var sb strings.Builder
	for c := range Pels(line, width) {
		if c == Black {
			sb.WriteByte('#')
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

func TestPels(t *testing.T) {
	cases := []struct {
		line  []int
		width int
		want  string
	}{
		{nil, 5, "....."},
		{[]int{}, 0, ""},
		{nil, -3, ""},
		{[]int{0}, 4, "####"},
		{[]int{2}, 5, "..###"},
		{[]int{2, 4}, 6, "..##.."},
		{[]int{0, 1, 2, 3}, 5, "#.#.."},
		{[]int{3, 3}, 5, "....."},     // a zero length black run
		{[]int{3, 8}, 5, "...##"},     // changes beyond the width are cut off
		{[]int{7, 9}, 5, "....."},     // changes beyond the width are cut off
		{[]int{4, 2, 5}, 6, "......"}, // backward steps produce no pixels
		{[]int{4, 2, 5}, 9, ".......##"},
		{[]int{5, 10}, 10, ".....#####"},
	}
	for _, tc := range cases {
		got := pelString(tc.line, tc.width)
		if got != tc.want {
			t.Errorf("Pels(%v, %d) = %q, want %q", tc.line, tc.width, got, tc.want)
		}
	}
}

// TestPelsChanges checks that the color changes exactly at the listed
// positions, for random strictly increasing lists.
func TestPelsChanges(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for range 200 {
		width := 1 + rng.IntN(100)
		var line []int
		for x := range width {
			if rng.IntN(5) == 0 {
				line = append(line, x)
			}
		}

		pels := slices.Collect(Pels(line, width))
		if len(pels) != width {
			t.Fatalf("got %d pixels, want %d", len(pels), width)
		}
		var changes []int
		prev := White
		for x, c := range pels {
			if c != prev {
				changes = append(changes, x)
				prev = c
			}
		}
		if d := cmp.Diff(line, changes); d != "" {
			t.Fatalf("width %d: change positions differ (-want +got):\n%s", width, d)
		}
	}
}

func TestPelsEarlyStop(t *testing.T) {
	n := 0
	for range Pels([]int{1, 2, 3}, 100) {
		n++
		if n == 10 {
			break
		}
	}
	if n != 10 {
		t.Errorf("got %d pixels", n)
	}
}

func TestColor(t *testing.T) {
	if White.Invert() != Black || Black.Invert() != White {
		t.Error("Invert is wrong")
	}
	if s := Black.String(); s != "black" {
		t.Errorf("Black.String() = %q", s)
	}
	if s := Color(7).String(); s != "Color(7)" {
		t.Errorf("Color(7).String() = %q", s)
	}
}

func FuzzPels(f *testing.F) {
	f.Add([]byte{3, 5, 7}, 10)
	f.Add([]byte{}, 0)
	f.Add([]byte{200, 1}, 17)
	f.Fuzz(func(t *testing.T, data []byte, width int) {
		width %= 5000
		line := make([]int, len(data))
		for i, b := range data {
			line[i] = int(b)
		}
		n := 0
		for range Pels(line, width) {
			n++
		}
		if n != max(width, 0) {
			t.Errorf("got %d pixels, want %d", n, max(width, 0))
		}
	})
}
