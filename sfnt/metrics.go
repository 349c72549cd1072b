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
	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt/glyph"
)

// FontMetrics is the interface used by layout code to query a font.
// All values are in units of 1/1000 of the em square.
type FontMetrics interface {
	PostScriptName() string
	Ascender() int
	Descender() int
	CapHeight() int
	XHeight() int
	FontBBox() [4]int
	Flags() int
	ItalicAngle() int
	Width(gid glyph.ID) int
	Widths() []int
	HasKerning() bool
	Kerning(left, right glyph.ID) int
	IsEmbeddable() bool
}

var _ FontMetrics = (*Font)(nil)

// Font descriptor flags, as returned by Flags.
const (
	FlagFixedPitch  = 1 << 0
	FlagSerif       = 1 << 1
	FlagNonsymbolic = 1 << 5
	FlagItalic      = 1 << 6
)

// Convert maps n font design units to 1/1000 of the em square, for a font
// with the given number of units per em.  Positive values are rounded down.
// Negative values are mapped like their absolute value and then negated,
// so that Convert(-n, upem) == -Convert(n, upem).
func Convert(n, unitsPerEm int) int {
	if n < 0 {
		return -((-1000 * n) / unitsPerEm)
	}
	return (n/unitsPerEm)*1000 + ((n%unitsPerEm)*1000)/unitsPerEm
}

// Convert maps n font design units to 1/1000 of the em square.
func (f *Font) Convert(n int) int {
	return Convert(n, int(f.Head.UnitsPerEm))
}

// Ascender returns the height of the ascender above the baseline.
func (f *Font) Ascender() int {
	return f.Convert(f.asc)
}

// Descender returns the depth of the descender below the baseline, as a
// negative number.
func (f *Font) Descender() int {
	return f.Convert(f.desc)
}

// CapHeight returns the height of capital letters.
func (f *Font) CapHeight() int {
	return f.Convert(f.capHeight)
}

// XHeight returns the height of lower case letters.
func (f *Font) XHeight() int {
	return f.Convert(f.xHeight)
}

// determineVerticalMetrics chooses the ascender, descender, cap height
// and x height of the font.
//
// The ascender and descender are taken from the OS/2 typographic values
// if these fit into the em square, otherwise from hhea.  If neither fits,
// the values are derived from the outlines of the letters "d" and "p".
// The cap height and x height are taken from the PCLT table, the outlines
// of "H" and "x", or the OS/2 table, in this order.
func (f *Font) determineVerticalMetrics() {
	upem := int(f.Head.UnitsPerEm)

	hheaAsc, hheaDesc := int(f.Hhea.Ascent), int(f.Hhea.Descent)
	var os2Asc, os2Desc int
	if f.OS2 != nil {
		os2Asc, os2Desc = int(f.OS2.TypoAscender), int(f.OS2.TypoDescender)
	}
	switch {
	case os2Asc > 0 && os2Asc-os2Desc <= upem:
		f.asc, f.desc = os2Asc, os2Desc
	case hheaAsc > 0 && hheaAsc-hheaDesc <= upem:
		f.asc, f.desc = hheaAsc, hheaDesc
	case os2Asc > 0:
		f.asc, f.desc = os2Asc, os2Desc
	default:
		f.asc, f.desc = hheaAsc, hheaDesc
	}

	if f.asc-f.desc > upem {
		tracer().Infof("ascender %d and descender %d exceed the em box, using glyph outlines",
			f.asc, f.desc)
		f.asc = int(f.letterBox('d').URy)
		f.desc = int(f.letterBox('p').LLy)
	}

	if f.PCLT != nil {
		f.capHeight = int(f.PCLT.CapHeight)
		f.xHeight = int(f.PCLT.XHeight)
	}
	if f.capHeight == 0 {
		f.capHeight = int(f.letterBox('H').URy)
	}
	if f.capHeight == 0 && f.OS2 != nil {
		f.capHeight = int(f.OS2.CapHeight)
	}
	if f.capHeight == 0 {
		tracer().Infof("cap height could not be determined")
	}
	if f.xHeight == 0 {
		f.xHeight = int(f.letterBox('x').URy)
	}
	if f.xHeight == 0 && f.OS2 != nil {
		f.xHeight = int(f.OS2.XHeight)
	}
	if f.xHeight == 0 {
		tracer().Infof("x height could not be determined")
	}
}

// letterBox returns the bounding box of the glyph for an ASCII letter.
// The glyph is found by its PostScript name, or via the character map if
// the font has no glyph names.
func (f *Font) letterBox(letter rune) funit.Rect16 {
	gid, ok := f.glyphByName(string(letter))
	if !ok {
		gid = f.CMap.Lookup(letter)
	}
	if gid == 0 || int(gid) >= len(f.Glyphs) || f.Glyphs[gid] == nil {
		return funit.Rect16{}
	}
	return f.Glyphs[gid].Rect16
}

func (f *Font) glyphByName(glyphName string) (glyph.ID, bool) {
	n := min(len(f.Post.Names), f.NumGlyphs())
	for i := 1; i < n; i++ {
		if f.Post.Names[i] == glyphName {
			return glyph.ID(i), true
		}
	}
	return 0, false
}

// FontBBox returns the bounding box of all glyphs, as
// [llx, lly, urx, ury].
func (f *Font) FontBBox() [4]int {
	b := f.Head.FontBBox
	return [4]int{
		f.Convert(int(b.LLx)),
		f.Convert(int(b.LLy)),
		f.Convert(int(b.URx)),
		f.Convert(int(b.URy)),
	}
}

// Flags returns the font descriptor flags of the font.  Fonts are
// assumed to have serifs unless the PCLT table says otherwise.
func (f *Font) Flags() int {
	flags := FlagNonsymbolic
	if f.Post.ItalicAngle != 0 {
		flags |= FlagItalic
	}
	if f.Post.IsFixedPitch {
		flags |= FlagFixedPitch
	}
	if f.PCLT == nil || f.PCLT.IsSerif() {
		flags |= FlagSerif
	}
	return flags
}

// ItalicAngle returns the italic angle in degrees, counterclockwise from
// the vertical.  Fractional degrees are truncated.
func (f *Font) ItalicAngle() int {
	return int(f.Post.ItalicAngle)
}

// UnderlinePosition returns the position of the underline, relative to
// the baseline.
func (f *Font) UnderlinePosition() int {
	return f.Convert(int(f.Post.UnderlinePosition))
}

// UnderlineThickness returns the thickness of the underline.
func (f *Font) UnderlineThickness() int {
	return f.Convert(int(f.Post.UnderlineThickness))
}

// Width returns the advance width of a glyph.
// Glyphs beyond the end of the hmtx table have width 0.
func (f *Font) Width(gid glyph.ID) int {
	if int(gid) >= len(f.Metrics.Width) {
		return 0
	}
	return f.Convert(int(f.Metrics.Width[gid]))
}

// Widths returns the advance widths of all glyphs, indexed by glyph ID.
func (f *Font) Widths() []int {
	res := make([]int, len(f.Metrics.Width))
	for i, w := range f.Metrics.Width {
		res[i] = f.Convert(int(w))
	}
	return res
}

// GlyphBBox returns the bounding box of a glyph, as [llx, lly, urx, ury].
// Empty glyphs, and all glyphs of CFF fonts, have a zero bounding box.
func (f *Font) GlyphBBox(gid glyph.ID) [4]int {
	if int(gid) >= len(f.Glyphs) || f.Glyphs[gid] == nil {
		return [4]int{}
	}
	b := f.Glyphs[gid].Rect16
	return [4]int{
		f.Convert(int(b.LLx)),
		f.Convert(int(b.LLy)),
		f.Convert(int(b.URx)),
		f.Convert(int(b.URy)),
	}
}
