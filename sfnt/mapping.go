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

import (
	"golang.org/x/exp/slices"
	"golang.org/x/text/encoding/charmap"
	"seehuhn.de/go/sfnt/glyph"
)

// Mapping is one entry of the character map.
type Mapping struct {
	Unicode rune
	GID     glyph.ID
}

// BFRange describes a run of consecutive code points which are mapped to
// consecutive glyphs.
type BFRange struct {
	FirstUnicode rune
	LastUnicode  rune
	FirstGID     glyph.ID
}

func (f *Font) makeUnicodes() {
	f.unicodes = make([][]rune, f.NumGlyphs())
	privateUse := 0
	for code, gid := range f.CMap {
		r := rune(code)
		f.unicodes[gid] = append(f.unicodes[gid], r)
		if r >= 0xE000 && r <= 0xF8FF {
			privateUse++
		}
	}
	for _, rr := range f.unicodes {
		slices.Sort(rr)
	}
	if privateUse > 0 {
		tracer().Debugf("%d code points in the private use area", privateUse)
	}
}

// GlyphToUnicode returns the code points mapped to a glyph, in increasing
// order.  The caller may modify the returned slice.
func (f *Font) GlyphToUnicode(gid glyph.ID) []rune {
	if int(gid) >= len(f.unicodes) {
		return nil
	}
	return slices.Clone(f.unicodes[gid])
}

// UnicodeToGlyph returns the glyph for a code point.
func (f *Font) UnicodeToGlyph(r rune) (glyph.ID, bool) {
	gid := f.CMap.Lookup(r)
	return gid, gid != 0
}

// UnicodeMappings returns all entries of the character map, sorted by
// code point.
func (f *Font) UnicodeMappings() []Mapping {
	res := make([]Mapping, 0, len(f.CMap))
	for code, gid := range f.CMap {
		res = append(res, Mapping{Unicode: rune(code), GID: gid})
	}
	slices.SortFunc(res, func(a, b Mapping) int {
		return int(a.Unicode) - int(b.Unicode)
	})
	return res
}

// BFRanges returns the character map as a list of ranges, as used in the
// bfrange sections of PDF ToUnicode maps.
func (f *Font) BFRanges() []BFRange {
	var res []BFRange
	for _, m := range f.UnicodeMappings() {
		if n := len(res); n > 0 {
			last := &res[n-1]
			next := last.LastUnicode + 1
			nextGID := int(last.FirstGID) + int(next-last.FirstUnicode)
			if m.Unicode == next && int(m.GID) == nextGID {
				last.LastUnicode = m.Unicode
				continue
			}
		}
		res = append(res, BFRange{
			FirstUnicode: m.Unicode,
			LastUnicode:  m.Unicode,
			FirstGID:     m.GID,
		})
	}
	return res
}

// winAnsiRune returns the character at position c of the WinAnsi encoding.
// Unassigned positions show a bullet.
func winAnsiRune(c byte) rune {
	r := charmap.Windows1252.DecodeByte(c)
	if r == 0x7F || r >= 0x80 && r <= 0x9F {
		return '•'
	}
	return r
}

func (f *Font) makeAnsiWidths() {
	f.ansiWidths = make([]int, 256)
	w0 := f.Width(0)
	for i := range f.ansiWidths {
		f.ansiWidths[i] = w0
	}
	for c := 32; c < 256; c++ {
		gid := f.CMap.Lookup(winAnsiRune(byte(c)))
		if gid == 0 {
			continue
		}
		f.ansiWidths[c] = f.Width(gid)
		if f.firstChar == 0 {
			f.firstChar = byte(c)
		}
		f.lastChar = byte(c)
	}
}

// WinAnsiWidths returns the widths of the characters in the WinAnsi
// encoding, indexed by character code.  Characters which are not in the
// font have the width of glyph 0.
func (f *Font) WinAnsiWidths() []int {
	return slices.Clone(f.ansiWidths)
}

// FirstChar returns the lowest WinAnsi character code which is mapped to a
// glyph.  If no code is mapped, 0 is returned.
func (f *Font) FirstChar() byte {
	return f.firstChar
}

// LastChar returns the highest WinAnsi character code which is mapped to a
// glyph.  If no code is mapped, 0 is returned.
func (f *Font) LastChar() byte {
	return f.lastChar
}
