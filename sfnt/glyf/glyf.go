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

// Package glyf implements reading and writing the "glyf" and "loca" tables.
// https://docs.microsoft.com/en-us/typography/opentype/spec/glyf
// https://docs.microsoft.com/en-us/typography/opentype/spec/loca
package glyf

import (
	"fmt"

	"seehuhn.de/go/sfnt/glyph"
)

// Glyphs contains the information from a "glyf" table.
// Empty glyphs are represented by nil.
type Glyphs []*Glyph

// Encoded represents the data of the "glyf" and "loca" tables.
type Encoded struct {
	GlyfData   []byte
	LocaData   []byte
	LocaFormat int16 // 0 for short offsets, 1 for long offsets
}

// Decode converts the data from the "glyf" and "loca" tables into a slice of
// Glyphs.  The loca format is given by the indexToLocFormat field of the
// "head" table.
func Decode(enc *Encoded) (Glyphs, error) {
	offs, err := decodeLoca(enc)
	if err != nil {
		return nil, err
	}

	gg := make(Glyphs, len(offs)-1)
	for i := range gg {
		gg[i], err = decodeGlyph(enc.GlyfData[offs[i]:offs[i+1]])
		if err != nil {
			return nil, fmt.Errorf("glyph %d: %w", i, err)
		}
	}
	return gg, nil
}

// Encode encodes the Glyphs into a "glyf" and "loca" table.
// Short loca offsets are used whenever possible.
func (gg Glyphs) Encode() *Encoded {
	return gg.EncodeFormat(0)
}

// EncodeFormat is like Encode, but always uses long loca offsets if
// minLocaFormat is 1.
func (gg Glyphs) EncodeFormat(minLocaFormat int16) *Encoded {
	offs := make([]int, 1, len(gg)+1)
	size := 0
	for _, g := range gg {
		size += g.encodeLen()
		offs = append(offs, size)
	}

	glyfData := make([]byte, 0, size)
	for _, g := range gg {
		glyfData = g.append(glyfData)
	}

	enc := &Encoded{GlyfData: glyfData}
	enc.LocaData, enc.LocaFormat = encodeLoca(offs, minLocaFormat)
	return enc
}

// Get returns the glyph with the given index, or nil if the index is out
// of range or the glyph is empty.
func (gg Glyphs) Get(gid glyph.ID) *Glyph {
	if int(gid) >= len(gg) {
		return nil
	}
	return gg[gid]
}
