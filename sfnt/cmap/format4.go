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

package cmap

import (
	"encoding/binary"
	"math/bits"

	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/ttf/dijkstra"
	"seehuhn.de/go/ttf/sfnt/fonterror"
)

// Format4 represents a format 4 cmap subtable.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap#format-4-segment-mapping-to-delta-values
//
// Code 0xFFFF marks the end of the subtable and is never mapped.
type Format4 map[uint16]glyph.ID

// format4Header is the length of the fixed part of a format 4 subtable.
const format4Header = 14

func decodeFormat4(data []byte) (Format4, error) {
	if len(data) >= 4 {
		if length := int(binary.BigEndian.Uint16(data[2:])); length < len(data) {
			data = data[:length]
		}
	}
	data = data[:len(data)&^1]
	if len(data) < format4Header+2 {
		return nil, errMalformedSubtable
	}

	segCountX2 := int(binary.BigEndian.Uint16(data[6:]))
	if segCountX2%2 != 0 || format4Header+2+4*segCountX2 > len(data) {
		return nil, errMalformedSubtable
	}
	segCount := segCountX2 / 2

	words := make([]uint16, (len(data)-format4Header)/2)
	for i := range words {
		words[i] = binary.BigEndian.Uint16(data[format4Header+2*i:])
	}
	// words[segCount] is the reserved padding
	endCode := words[:segCount]
	startCode := words[segCount+1 : 2*segCount+1]
	idDelta := words[2*segCount+1 : 3*segCount+1]
	idRangeOffset := words[3*segCount+1 : 4*segCount+1]
	glyphIDArray := words[4*segCount+1:]

	cmap := Format4{}
	set := func(code uint32, gid glyph.ID) {
		if gid != 0 {
			cmap[uint16(code)] = gid
		}
	}

	var minStart uint32
	for k := 0; k < segCount; k++ {
		first := uint32(startCode[k])
		end := uint32(endCode[k]) + 1 // exclusive
		if first < minStart || end <= first {
			return nil, errMalformedSubtable
		}
		minStart = end
		end = min(end, 0xFFFF)

		delta := idDelta[k]
		if idRangeOffset[k] == 0 {
			for code := first; code < end; code++ {
				set(code, glyph.ID(uint16(code)+delta))
			}
			continue
		}

		// idRangeOffset counts bytes from the idRangeOffset entry itself
		base := int(idRangeOffset[k])/2 - (segCount - k)
		if base < 0 || base+int(end-first) > len(glyphIDArray) {
			if first == 0xFFFF {
				// some fonts have invalid data for the last segment
				continue
			}
			return nil, errMalformedSubtable
		}
		for code := first; code < end; code++ {
			if val := glyphIDArray[base+int(code-first)]; val != 0 {
				set(code, glyph.ID(val+delta))
			}
		}
	}
	return cmap, nil
}

// Lookup returns the glyph for code point r, or 0 if r is not mapped.
func (cmap Format4) Lookup(r rune) glyph.ID {
	if r < 0 || r >= 0xFFFF {
		return 0
	}
	return cmap[uint16(r)]
}

// CodeRange returns the smallest and largest code point in the subtable.
func (cmap Format4) CodeRange() (low, high rune) {
	first := true
	for c := range cmap {
		r := rune(c)
		if first || r < low {
			low = r
		}
		if first || r > high {
			high = r
		}
		first = false
	}
	return low, high
}

// Encode encodes the subtable into a byte slice.
// Segments are chosen to minimise the size of the subtable.
func (cmap Format4) Encode(language uint16) ([]byte, error) {
	segments, err := dijkstra.ShortestPath[uint32, *segment, int](segmentGraph(cmap), 0, 0x10000)
	if err != nil {
		return nil, err
	}
	segCount := len(segments)

	numValues := 0
	for _, s := range segments {
		if s.useValues {
			numValues += int(s.last-s.first) + 1
		}
	}
	length := format4Header + 2 + 8*segCount + 2*numValues
	if length > 0xFFFF {
		return nil, &fonterror.NotSupportedError{
			SubSystem: "sfnt/cmap",
			Feature:   "format 4 subtables longer than 64kB",
		}
	}

	sel := bits.Len(uint(segCount)) - 1
	searchRange := 2 << sel
	res := make([]byte, length)
	binary.BigEndian.PutUint16(res[0:], 4)
	binary.BigEndian.PutUint16(res[2:], uint16(length))
	binary.BigEndian.PutUint16(res[4:], language)
	binary.BigEndian.PutUint16(res[6:], uint16(2*segCount))
	binary.BigEndian.PutUint16(res[8:], uint16(searchRange))
	binary.BigEndian.PutUint16(res[10:], uint16(sel))
	binary.BigEndian.PutUint16(res[12:], uint16(2*segCount-searchRange))

	endCode := res[format4Header:]
	startCode := endCode[2*segCount+2:] // skip reservedPad
	idDelta := startCode[2*segCount:]
	idRangeOffset := idDelta[2*segCount:]
	glyphIDArray := idRangeOffset[2*segCount:]

	pos := 0 // index into glyphIDArray
	for i, s := range segments {
		binary.BigEndian.PutUint16(endCode[2*i:], s.last)
		binary.BigEndian.PutUint16(startCode[2*i:], s.first)
		binary.BigEndian.PutUint16(idDelta[2*i:], s.delta)
		if !s.useValues {
			continue
		}

		offs := 2 * (segCount - i + pos)
		if offs > 0xFFFF {
			return nil, &fonterror.NotSupportedError{
				SubSystem: "sfnt/cmap",
				Feature:   "this many mappings in a format 4 subtable",
			}
		}
		binary.BigEndian.PutUint16(idRangeOffset[2*i:], uint16(offs))
		for c := uint32(s.first); c <= uint32(s.last); c++ {
			binary.BigEndian.PutUint16(glyphIDArray[2*pos:], uint16(cmap[uint16(c)]))
			pos++
		}
	}
	return res, nil
}

// A segment maps the codes first, ..., last either by adding delta to the
// code, or through explicit glyph values.
type segment struct {
	first     uint16
	last      uint16
	delta     uint16
	useValues bool
}

// segmentGraph describes all possible ways to split a cmap into segments.
// Vertices are code points, and an edge from v to w is a segment covering
// the codes v, ..., w-1.  Edge lengths are counted in 16-bit words.
type segmentGraph map[uint16]glyph.ID

func (g segmentGraph) Edges(v uint32) []*segment {
	if v > 0xFFFF {
		return nil
	}

	// unmapped codes need no segment
	first := v
	for first < 0xFFFF && g[uint16(first)] == 0 {
		first++
	}

	// the final segment must map 0xFFFF to glyph 0
	if first == 0xFFFF {
		return []*segment{{first: 0xFFFF, last: 0xFFFF, delta: 1}}
	}

	deltaAt := func(c uint32) uint16 {
		return uint16(g[uint16(c)]) - uint16(c)
	}

	delta := deltaAt(first)
	end := first + 1
	for end < 0xFFFF && deltaAt(end) == delta {
		end++
	}
	res := []*segment{{first: uint16(first), last: uint16(end - 1), delta: delta}}
	if end-first >= 4 || first == 0xFFFE {
		return res
	}

	// Explicit glyph values.  The run ends before five consecutive codes
	// with a common delta, or five consecutive unmapped codes, since these
	// are cheaper as separate segments.
	runDelta := delta
	sameDelta := 1
	unmapped := 0
	for end = first + 1; end < 0xFFFF; end++ {
		gid := g[uint16(end)]
		if d := deltaAt(end); d == runDelta {
			sameDelta++
		} else {
			runDelta = d
			sameDelta = 1 + unmapped
		}
		if gid == 0 {
			unmapped++
		} else {
			unmapped = 0
		}
		if sameDelta == 5 || unmapped == 5 {
			return append(res, &segment{
				first:     uint16(first),
				last:      uint16(end - 5),
				useValues: true,
			})
		}
	}
	return append(res, &segment{
		first:     uint16(first),
		last:      uint16(end - uint32(unmapped) - 1),
		useValues: true,
	})
}

func (g segmentGraph) Length(e *segment) int {
	if e.useValues {
		return 4 + int(e.last-e.first) + 1
	}
	return 4
}

func (g segmentGraph) To(e *segment) uint32 {
	return uint32(e.last) + 1
}
