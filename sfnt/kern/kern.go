// seehuhn.de/go/ttf - read and subset TrueType and OpenType fonts
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
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

// Package kern has code for reading and writing the "kern" table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/kern
package kern

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/exp/slices"
	"golang.org/x/text/encoding/charmap"
	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/ttf/sfnt/fonterror"
	"seehuhn.de/go/ttf/sfnt/parser"
)

func tracer() tracing.Trace {
	return tracing.Select("ttf.tables")
}

// Info contains the kerning pairs from a "kern" table, indexed first by
// the left glyph and then by the right glyph.
// If the value for a glyph pair is greater than zero, the characters
// will be moved apart.  If the value is less than zero, the characters
// will be moved closer together.
type Info map[glyph.ID]map[glyph.ID]funit.Int16

// kernSubtableHeaderLen is the size of a format 0 subtable header.
const kernSubtableHeaderLen = 14

// Coverage flags of a kern subtable.
const (
	horizontal  = 0x01
	minimum     = 0x02
	crossStream = 0x04
	override    = 0x08
)

// Read decodes a "kern" table.  Only format 0 subtables with horizontal
// kerning values are used.  Subtables with other formats, minimum values
// or cross-stream kerning are skipped.
func Read(data []byte) (Info, error) {
	p := parser.New("kern", bytes.NewReader(data))

	version, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	if version != 0 {
		return nil, &fonterror.NotSupportedError{
			SubSystem: "sfnt/kern",
			Feature:   fmt.Sprintf("\"kern\" table version %d", version),
		}
	}

	nTables, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}

	res := make(Info)

	pos := p.Pos()
	for i := 0; i < int(nTables); i++ {
		if pos+kernSubtableHeaderLen > p.Size() {
			tracer().Infof("kern table truncated after %d of %d subtables", i, nTables)
			break
		}
		err := p.SeekPos(pos)
		if err != nil {
			return nil, err
		}
		buf, err := p.ReadBytes(6)
		if err != nil {
			return nil, err
		}
		subtableVersion := binary.BigEndian.Uint16(buf)
		length := int64(binary.BigEndian.Uint16(buf[2:]))
		format := buf[4]
		flags := buf[5]

		if length < 6 {
			tracer().Infof("invalid kern subtable length %d, ignoring remaining subtables", length)
			break
		}
		start := pos
		pos += length

		if subtableVersion != 0 || format != 0 ||
			flags&^override != horizontal {
			tracer().Infof("skipping kern subtable %d (format %d, coverage 0x%02x)",
				i, format, flags)
			continue
		}
		isOverride := flags&override != 0

		buf, err = p.ReadBytes(8)
		if err != nil {
			return nil, err
		}
		nPairs := int64(binary.BigEndian.Uint16(buf))
		size := kernSubtableHeaderLen + 6*nPairs

		// Large subtables overflow the 16 bit length field.
		if size&0xFFFF == length {
			pos = start + size
		} else if size > length {
			tracer().Infof("skipping kern subtable %d: %d pairs do not fit into %d bytes",
				i, nPairs, length)
			continue
		}
		if start+size > p.Size() {
			tracer().Infof("skipping truncated kern subtable %d", i)
			continue
		}

		for j := int64(0); j < nPairs; j++ {
			buf, err := p.ReadBytes(6)
			if err != nil {
				return nil, err
			}
			left := glyph.ID(binary.BigEndian.Uint16(buf))
			right := glyph.ID(binary.BigEndian.Uint16(buf[2:]))
			value := funit.Int16(binary.BigEndian.Uint16(buf[4:]))
			if isOverride {
				res.Set(left, right, value)
			} else {
				res.Set(left, right, res.Lookup(left, right)+value)
			}
		}
	}

	return res, nil
}

// Lookup returns the kerning value for the given glyph pair.
func (info Info) Lookup(left, right glyph.ID) funit.Int16 {
	return info[left][right]
}

// Set stores the kerning value for a glyph pair.
func (info Info) Set(left, right glyph.ID, value funit.Int16) {
	row := info[left]
	if row == nil {
		row = make(map[glyph.ID]funit.Int16)
		info[left] = row
	}
	row[right] = value
}

// Len returns the number of kerning pairs.
func (info Info) Len() int {
	n := 0
	for _, row := range info {
		n += len(row)
	}
	return n
}

// Encode converts the "kern" table to its binary representation.
// The table contains a single format 0 subtable with the pairs sorted
// by left and right glyph.  Pairs with value zero are omitted.
func (info Info) Encode() []byte {
	type pair struct {
		left, right glyph.ID
		value       funit.Int16
	}
	var pairs []pair
	for left, row := range info {
		for right, value := range row {
			if value != 0 {
				pairs = append(pairs, pair{left, right, value})
			}
		}
	}
	slices.SortFunc(pairs, func(a, b pair) int {
		if a.left != b.left {
			return int(a.left) - int(b.left)
		}
		return int(a.right) - int(b.right)
	})

	nPairs := len(pairs)
	headerLen := 4
	subHeaderLen := 14
	subTableLen := subHeaderLen + 6*nPairs
	buf := make([]byte, 0, headerLen+subTableLen)

	var entrySelector, searchRange, rangeShift int
	if nPairs > 0 {
		entrySelector = bits.Len(uint(nPairs)) - 1
		searchRange = 6 * (1 << entrySelector)
		rangeShift = 6 * (nPairs - 1<<entrySelector)
	}
	buf = append(buf,
		0, 0, // version
		0, 1, // numTables

		0, 0, // subtable version
		byte(subTableLen>>8), byte(subTableLen),
		0, horizontal, // coverage

		byte(nPairs>>8), byte(nPairs),
		byte(searchRange>>8), byte(searchRange),
		byte(entrySelector>>8), byte(entrySelector),
		byte(rangeShift>>8), byte(rangeShift),
	)
	for _, p := range pairs {
		buf = append(buf,
			byte(p.left>>8), byte(p.left),
			byte(p.right>>8), byte(p.right),
			byte(p.value>>8), byte(p.value),
		)
	}

	return buf
}

// WinAnsi derives a kerning table indexed by WinAnsi (Windows-1252)
// character codes.  The function codes must return the Unicode code
// points mapped to a glyph.  A glyph can contribute to several entries,
// and pairs where one of the glyphs has no WinAnsi code are dropped.
func (info Info) WinAnsi(codes func(glyph.ID) []rune) map[byte]map[byte]funit.Int16 {
	res := make(map[byte]map[byte]funit.Int16)
	for left, row := range info {
		leftCodes := winAnsiCodes(codes(left))
		if len(leftCodes) == 0 {
			continue
		}
		for right, value := range row {
			if value == 0 {
				continue
			}
			rightCodes := winAnsiCodes(codes(right))
			for _, l := range leftCodes {
				for _, r := range rightCodes {
					if res[l] == nil {
						res[l] = make(map[byte]funit.Int16)
					}
					res[l][r] = value
				}
			}
		}
	}
	return res
}

func winAnsiCodes(rr []rune) []byte {
	var res []byte
	for _, r := range rr {
		c, ok := charmap.Windows1252.EncodeRune(r)
		if ok {
			res = append(res, c)
		}
	}
	return res
}
