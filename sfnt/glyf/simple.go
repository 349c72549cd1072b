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

package glyf

import (
	"encoding/binary"

	"seehuhn.de/go/ttf/sfnt/fonterror"
)

// SimpleGlyph is a glyph made of contours.  The outline data is kept in
// encoded form.
type SimpleGlyph struct {
	NumContours int16
	Tail        []byte // glyph data after the glyph header
}

// point flags
const (
	onCurve      = 0x01
	xShortVector = 0x02
	yShortVector = 0x04
	repeatFlag   = 0x08
	xSameOrPos   = 0x10
	ySameOrPos   = 0x20
)

// simpleLayout gives the positions of the parts of a simple glyph.
type simpleLayout struct {
	numPoints  int
	instrStart int
	instrEnd   int
	end        int // end of the coordinate data
}

// layout scans the point flags to find the length of the glyph data.
func (g SimpleGlyph) layout() (*simpleLayout, error) {
	buf := g.Tail
	n := int(g.NumContours)
	if len(buf) < 2*n+2 {
		return nil, errInvalidGlyphData
	}

	res := &simpleLayout{
		numPoints:  int(binary.BigEndian.Uint16(buf[2*n-2:])) + 1,
		instrStart: 2*n + 2,
	}
	res.instrEnd = res.instrStart + int(binary.BigEndian.Uint16(buf[2*n:]))

	pos := res.instrEnd
	coordLen := 0
	for i := 0; i < res.numPoints; {
		if pos >= len(buf) {
			return nil, errInvalidGlyphData
		}
		flags := buf[pos]
		pos++
		count := 1
		if flags&repeatFlag != 0 {
			if pos >= len(buf) {
				return nil, errInvalidGlyphData
			}
			count += int(buf[pos])
			pos++
		}
		count = min(count, res.numPoints-i)
		i += count

		coordLen += count * (coordSize(flags, xShortVector, xSameOrPos) +
			coordSize(flags, yShortVector, ySameOrPos))
	}
	res.end = pos + coordLen
	if res.end > len(buf) {
		return nil, errInvalidGlyphData
	}
	return res, nil
}

// coordSize returns the number of bytes used to store one coordinate.
func coordSize(flags byte, short, same byte) int {
	switch {
	case flags&short != 0:
		return 1
	case flags&same != 0:
		return 0
	default:
		return 2
	}
}

// removePadding trims the glyph data to the length implied by the
// point flags.
func (g *SimpleGlyph) removePadding() error {
	if g.NumContours == 0 {
		g.Tail = nil
		return nil
	}
	l, err := g.layout()
	if err != nil {
		return err
	}
	g.Tail = g.Tail[:l.end]
	return nil
}

// NumPoints returns the number of points in the glyph outline.
func (g SimpleGlyph) NumPoints() int {
	n := int(g.NumContours)
	if n <= 0 || len(g.Tail) < 2*n {
		return 0
	}
	return int(binary.BigEndian.Uint16(g.Tail[2*n-2:])) + 1
}

// Instructions returns the TrueType hinting instructions of the glyph.
func (g SimpleGlyph) Instructions() []byte {
	if g.NumContours <= 0 {
		return nil
	}
	l, err := g.layout()
	if err != nil {
		return nil
	}
	return g.Tail[l.instrStart:l.instrEnd]
}

var errInvalidGlyphData = &fonterror.InvalidFontError{
	SubSystem: "sfnt/glyf",
	Reason:    "invalid glyph data",
}
