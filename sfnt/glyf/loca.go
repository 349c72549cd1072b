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
	"fmt"

	"seehuhn.de/go/ttf/sfnt/fonterror"
)

// decodeLoca returns the start offsets of all glyphs in the "glyf" table,
// followed by the end offset of the last glyph.
func decodeLoca(enc *Encoded) ([]int, error) {
	var width int
	var offset func(b []byte) int
	switch enc.LocaFormat {
	case 0:
		width = 2
		offset = func(b []byte) int { return 2 * int(binary.BigEndian.Uint16(b)) }
	case 1:
		width = 4
		offset = func(b []byte) int { return int(binary.BigEndian.Uint32(b)) }
	default:
		return nil, &fonterror.NotSupportedError{
			SubSystem: "sfnt/loca",
			Feature:   fmt.Sprintf("loca table format %d", enc.LocaFormat),
		}
	}

	data := enc.LocaData
	if len(data) < 2*width || len(data)%width != 0 {
		return nil, errLoca("invalid table length")
	}

	offs := make([]int, len(data)/width)
	prev := 0
	for i := range offs {
		pos := offset(data[i*width:])
		if pos < prev || pos > len(enc.GlyfData) {
			return nil, errLoca(fmt.Sprintf("invalid offset %d for glyph %d", pos, i))
		}
		offs[i] = pos
		prev = pos
	}
	return offs, nil
}

// encodeLoca writes the glyph offsets.  Short offsets are used if
// minFormat is 0 and all offsets fit.
func encodeLoca(offs []int, minFormat int16) ([]byte, int16) {
	if minFormat == 0 && offs[len(offs)-1] <= 2*0xFFFF {
		data := make([]byte, 2*len(offs))
		for i, pos := range offs {
			binary.BigEndian.PutUint16(data[2*i:], uint16(pos/2))
		}
		return data, 0
	}

	data := make([]byte, 4*len(offs))
	for i, pos := range offs {
		binary.BigEndian.PutUint32(data[4*i:], uint32(pos))
	}
	return data, 1
}

func errLoca(reason string) error {
	return &fonterror.InvalidFontError{
		SubSystem: "sfnt/loca",
		Reason:    reason,
	}
}
