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

type nodeKind uint8

const (
	noMatch nodeKind = iota // the bits are not the start of any code word
	direct                  // a complete code word
	flat                    // all code words end within the next width bits
	nested                  // index by the next width bits, then continue
)

// node is one level of a prefix code lookup table.
//
// All code lengths stored in a table are absolute, i.e. they count from the
// first bit looked at by the root node.
type node[T any] struct {
	kind  nodeKind
	width uint8 // lookahead bits, for flat and nested nodes
	len   uint8 // code length, for direct nodes
	val   T

	slots    []slot[T] // flat nodes, indexed by the next width bits
	children []node[T] // nested nodes, indexed by the next width bits
}

// slot is an entry of a flat node.  Unused slots have len == 0.
type slot[T any] struct {
	val T
	len uint8
}

// codeWord is one entry of the input used to build a table.
type codeWord[T any] struct {
	bits uint16 // right-aligned
	len  uint8
	val  T
}

// newTable builds a lookup table for the given prefix-free code.  The
// strides give the lookahead width for each level of the table.
func newTable[T any](codes []codeWord[T], strides ...int) *node[T] {
	total := 0
	for _, s := range strides {
		total += s
	}
	if total > maxPeek {
		panic("fax: code table strides too long")
	}
	root := build(codes, 0, strides)
	return &root
}

func build[T any](codes []codeWord[T], skip int, strides []int) node[T] {
	if len(codes) == 0 {
		return node[T]{kind: noMatch}
	}
	if len(strides) == 0 {
		panic("fax: code table strides too short")
	}
	w := strides[0]

	short := true
	for _, c := range codes {
		if int(c.len) > skip+w {
			short = false
			break
		}
	}

	if short {
		slots := make([]slot[T], 1<<w)
		for _, c := range codes {
			first, count := codeRange(c, skip, w)
			for i := first; i < first+count; i++ {
				if slots[i].len != 0 {
					panic("fax: code is not prefix free")
				}
				slots[i] = slot[T]{val: c.val, len: c.len}
			}
		}
		return node[T]{kind: flat, width: uint8(w), slots: slots}
	}

	children := make([]node[T], 1<<w)
	groups := make([][]codeWord[T], 1<<w)
	for _, c := range codes {
		if int(c.len) <= skip+w {
			first, count := codeRange(c, skip, w)
			for i := first; i < first+count; i++ {
				if children[i].kind != noMatch {
					panic("fax: code is not prefix free")
				}
				children[i] = node[T]{kind: direct, len: c.len, val: c.val}
			}
			continue
		}
		idx := int(c.bits) >> (int(c.len) - skip - w) & (1<<w - 1)
		groups[idx] = append(groups[idx], c)
	}
	for i, g := range groups {
		if len(g) == 0 {
			continue
		}
		if children[i].kind != noMatch {
			panic("fax: code is not prefix free")
		}
		children[i] = build(g, skip+w, strides[1:])
	}
	return node[T]{kind: nested, width: uint8(w), children: children}
}

// codeRange returns the range of w-bit indices, after skipping skip bits,
// which start with the code word c.  The code must end within these w bits.
func codeRange[T any](c codeWord[T], skip, w int) (first, count int) {
	free := skip + w - int(c.len)
	tail := int(c.bits) & (1<<(int(c.len)-skip) - 1)
	return tail << free, 1 << free
}

// decode reads one code word from b.  If no code word matches, or if the
// input ends before the matching code word is complete, no input is consumed
// and ok is false.
func (n *node[T]) decode(b *bitReader) (val T, ok bool) {
	win, avail := b.window()
	if avail == 0 {
		return val, false
	}
	val, length, ok := n.lookup(win, avail, 0)
	if !ok {
		return val, false
	}
	b.consume(length)
	return val, true
}

// lookup matches the bits in win, starting after the first skip bits.
// The window holds maxPeek bits, of which avail are backed by input.
func (n *node[T]) lookup(win uint32, avail, skip int) (T, int, bool) {
	var zero T
	switch n.kind {
	case direct:
		if int(n.len) > avail {
			return zero, 0, false
		}
		return n.val, int(n.len), true
	case flat:
		s := &n.slots[n.index(win, skip)]
		if s.len == 0 || int(s.len) > avail {
			return zero, 0, false
		}
		return s.val, int(s.len), true
	case nested:
		child := &n.children[n.index(win, skip)]
		return child.lookup(win, avail, skip+int(n.width))
	}
	return zero, 0, false
}

func (n *node[T]) index(win uint32, skip int) int {
	w := int(n.width)
	return int(win>>(maxPeek-skip-w)) & (1<<w - 1)
}
