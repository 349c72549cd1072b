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

package sfnt

import "seehuhn.de/go/sfnt/glyph"

// HasKerning reports whether kerning information has been read.
func (f *Font) HasKerning() bool {
	return f.Kern.Len() > 0
}

// Kerning returns the kerning adjustment for a pair of glyphs.
// A negative value moves the glyphs closer together.
func (f *Font) Kerning(left, right glyph.ID) int {
	return f.Convert(int(f.Kern.Lookup(left, right)))
}

// WinAnsiKerning returns the kerning pairs indexed by WinAnsi character
// codes.  A glyph with several WinAnsi codes contributes a pair for each
// code.  Pairs which round to zero are omitted.
func (f *Font) WinAnsiKerning() map[byte]map[byte]int {
	res := make(map[byte]map[byte]int)
	for left, row := range f.Kern.WinAnsi(f.GlyphToUnicode) {
		for right, value := range row {
			v := f.Convert(int(value))
			if v == 0 {
				continue
			}
			if res[left] == nil {
				res[left] = make(map[byte]int)
			}
			res[left][right] = v
		}
	}
	return res
}
