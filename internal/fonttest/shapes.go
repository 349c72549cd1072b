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

package fonttest

import (
	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/ttf/sfnt/glyf"
)

// Rect returns a simple glyph whose outline is the given rectangle.
func Rect(llx, lly, urx, ury funit.Int16) *glyf.Glyph {
	var tail []byte
	put := func(x funit.Int16) {
		tail = append(tail, byte(uint16(x)>>8), byte(x))
	}
	put(3) // endPtsOfContours
	put(0) // instructionLength
	tail = append(tail, 1, 1, 1, 1)
	for _, dx := range []funit.Int16{llx, urx - llx, 0, llx - urx} {
		put(dx)
	}
	for _, dy := range []funit.Int16{lly, 0, ury - lly, 0} {
		put(dy)
	}
	return &glyf.Glyph{
		Rect16: funit.Rect16{LLx: llx, LLy: lly, URx: urx, URy: ury},
		Data:   glyf.SimpleGlyph{NumContours: 1, Tail: tail},
	}
}

// Composite returns a composite glyph made of the given components.
// All components are placed at the origin.
func Composite(bbox funit.Rect16, components ...glyph.ID) *glyf.Glyph {
	comps := make([]glyf.GlyphComponent, len(components))
	for i, gid := range components {
		flags := uint16(glyf.FlagArgsAreXYValues)
		if i < len(components)-1 {
			flags |= glyf.FlagMoreComponents
		}
		comps[i] = glyf.GlyphComponent{
			Flags:      flags,
			GlyphIndex: gid,
			Args:       []byte{0, 0},
		}
	}
	return &glyf.Glyph{
		Rect16: bbox,
		Data:   glyf.CompositeGlyph{Components: comps},
	}
}

// Minimal returns a font with three glyphs: .notdef, a simple glyph "A"
// and a composite glyph "AB" which uses "A" twice.
func Minimal() *Font {
	return &Font{
		UnitsPerEm:     1000,
		FamilyName:     "Minimal",
		FullName:       "Minimal Regular",
		PostScriptName: "Minimal-Regular",
		Glyphs: []Glyph{
			{Name: ".notdef", Width: 500, Outline: Rect(50, 0, 450, 700)},
			{Name: "A", Width: 600, Runes: []rune{'A'}, Outline: Rect(0, 0, 600, 700)},
			{
				Name:    "AB",
				Width:   1200,
				Outline: Composite(funit.Rect16{URx: 1200, URy: 700}, 1, 1),
			},
		},
	}
}

// FiveGlyphs returns a font with five glyphs, where glyph 4 is a
// composite of glyphs 1 and 3.  All glyphs except .notdef have the same
// advance width, so the "hmtx" table only stores two long metrics.
func FiveGlyphs() *Font {
	return &Font{
		UnitsPerEm:     1000,
		FamilyName:     "Five",
		FullName:       "Five Regular",
		PostScriptName: "Five-Regular",
		Glyphs: []Glyph{
			{Name: ".notdef", Width: 500, Outline: Rect(50, 0, 450, 700)},
			{Name: "A", Width: 600, Runes: []rune{'A'}, Outline: Rect(0, 0, 550, 700)},
			{Name: "B", Width: 600, Runes: []rune{'B'}, Outline: Rect(50, 0, 550, 700)},
			{Name: "C", Width: 600, Runes: []rune{'C'}, Outline: Rect(40, -10, 560, 710)},
			{
				Name:    "A_C",
				Width:   600,
				Runes:   []rune{0xE000},
				Outline: Composite(funit.Rect16{URx: 560, LLy: -10, URy: 710}, 1, 3),
			},
		},
	}
}
