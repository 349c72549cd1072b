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

package subset

import (
	"golang.org/x/exp/slices"

	"seehuhn.de/go/ttf/sfnt"
	"seehuhn.de/go/ttf/widths"
)

const tagModulus = 26 * 26 * 26 * 26 * 26 * 26

// Tag returns a 6-letter tag (range AAAAAA to ZZZZZZ) which identifies the
// subset.  Subsets with the same glyphs from the same font have the same
// tag.  PDF files use the tag as a prefix of the font name, see FontName.
func (p *Plan) Tag() string {
	gg := slices.Clone(p.Glyphs)
	slices.Sort(gg)

	// mix all the information into a single uint32
	X := uint32(p.NumOrigGlyphs)
	for _, g := range gg {
		// 11 is the largest integer smaller than `1<<32 / tagModulus` which
		// is relatively prime to 26.
		X = (X*11 + uint32(g)) % tagModulus
	}

	// convert to a string of six capital letters
	var buf [6]byte
	for i := range buf {
		buf[i] = 'A' + byte(X%26)
		X /= 26
	}
	return string(buf[:])
}

// FontName returns the name of the subset font, consisting of the subset
// tag, a plus sign, and the PostScript name of the original font.
func (p *Plan) FontName(postScriptName string) string {
	return p.Tag() + "+" + postScriptName
}

// Widths returns the advance widths of the subset glyphs, in the
// compact form used for CIDFont dictionaries where CID equals the new
// glyph ID.
func (p *Plan) Widths(f *sfnt.Font) (dw int, runs []widths.Run) {
	ww := make([]int, len(p.Glyphs))
	for newGid, origGid := range p.Glyphs {
		ww[newGid] = f.Width(origGid)
	}
	return widths.Compress(ww)
}
