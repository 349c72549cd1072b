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

// Package fonttest builds small synthetic sfnt fonts for use in tests.
package fonttest

import (
	"bytes"
	"encoding/binary"
	"time"

	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/ttf/sfnt/cmap"
	"seehuhn.de/go/ttf/sfnt/glyf"
	"seehuhn.de/go/ttf/sfnt/head"
	"seehuhn.de/go/ttf/sfnt/header"
	"seehuhn.de/go/ttf/sfnt/hmtx"
	"seehuhn.de/go/ttf/sfnt/kern"
	"seehuhn.de/go/ttf/sfnt/maxp"
	"seehuhn.de/go/ttf/sfnt/name"
	"seehuhn.de/go/ttf/sfnt/os2"
	"seehuhn.de/go/ttf/sfnt/pclt"
	"seehuhn.de/go/ttf/sfnt/post"
)

// Glyph describes one glyph of a test font.
type Glyph struct {
	Name    string
	Width   uint16
	Runes   []rune
	Outline *glyf.Glyph // nil for an empty glyph
}

// Font describes a test font.  Only UnitsPerEm and Glyphs are required.
type Font struct {
	ScalerType     uint32 // 0 means TrueType outlines
	UnitsPerEm     uint16
	FamilyName     string
	FullName       string
	PostScriptName string
	MacStyle       uint16
	Glyphs         []Glyph

	Ascent  funit.Int16 // hhea ascent
	Descent funit.Int16 // hhea descent, negative
	LineGap funit.Int16

	ItalicAngle  float64
	IsFixedPitch bool
	NoGlyphNames bool

	// Symbol selects a Windows symbol cmap subtable.  The glyph runes
	// are moved to the range U+F000 to U+F0FF.
	Symbol bool

	OS2  *os2.Info
	PCLT *pclt.Info
	Kern kern.Info

	// Extra holds additional tables.  A nil value removes a table.
	Extra map[string][]byte
}

// Tables returns the binary tables of the font.
func (f *Font) Tables() map[string][]byte {
	numGlyphs := len(f.Glyphs)
	tables := make(map[string][]byte)

	var bbox funit.Rect16
	first := true
	gg := make(glyf.Glyphs, numGlyphs)
	metrics := &hmtx.Metrics{
		Width: make([]uint16, numGlyphs),
		LSB:   make([]funit.Int16, numGlyphs),
	}
	var widthMax uint16
	for i, g := range f.Glyphs {
		gg[i] = g.Outline
		metrics.Width[i] = g.Width
		if g.Width > widthMax {
			widthMax = g.Width
		}
		if g.Outline == nil {
			continue
		}
		metrics.LSB[i] = g.Outline.LLx
		if first {
			bbox = g.Outline.Rect16
			first = false
		} else {
			bbox.LLx = min(bbox.LLx, g.Outline.LLx)
			bbox.LLy = min(bbox.LLy, g.Outline.LLy)
			bbox.URx = max(bbox.URx, g.Outline.URx)
			bbox.URy = max(bbox.URy, g.Outline.URy)
		}
	}

	isCFF := f.ScalerType == header.ScalerTypeCFF
	var locaFormat int16
	if !isCFF {
		enc := gg.Encode()
		tables["glyf"] = enc.GlyfData
		tables["loca"] = enc.LocaData
		locaFormat = enc.LocaFormat
	}

	created := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	headInfo := &head.Info{
		FontRevision:   0x00010000,
		UnitsPerEm:     f.UnitsPerEm,
		Created:        created,
		Modified:       created,
		FontBBox:       bbox,
		MacStyle:       f.MacStyle,
		LowestRecPPEM:  8,
		HasLongOffsets: locaFormat != 0,
	}
	tables["head"] = headInfo.Encode()

	hmtxData, numLong := metrics.Encode()
	tables["hmtx"] = hmtxData

	ascent, descent := f.Ascent, f.Descent
	if ascent == 0 && descent == 0 {
		ascent = bbox.URy
		descent = bbox.LLy
	}
	hheaInfo := &hmtx.Hhea{
		Ascent:              ascent,
		Descent:             descent,
		LineGap:             f.LineGap,
		AdvanceWidthMax:     widthMax,
		CaretSlopeRise:      1,
		NumOfLongHorMetrics: numLong,
	}
	tables["hhea"] = hheaInfo.Encode()

	maxpInfo := &maxp.Info{NumGlyphs: numGlyphs}
	if !isCFF {
		maxpInfo.TTF = &maxp.TTFInfo{
			MaxZones:             1,
			MaxComponentElements: 2,
			MaxComponentDepth:    1,
		}
	}
	tables["maxp"] = maxpInfo.Encode()

	postInfo := &post.Info{
		ItalicAngle:        f.ItalicAngle,
		UnderlinePosition:  -100,
		UnderlineThickness: 50,
		IsFixedPitch:       f.IsFixedPitch,
	}
	if !f.NoGlyphNames {
		postInfo.Names = make([]string, numGlyphs)
		for i, g := range f.Glyphs {
			postInfo.Names[i] = g.Name
		}
	}
	tables["post"] = postInfo.Encode()

	names := map[name.ID]string{
		name.Subfamily: "Regular",
	}
	if f.FamilyName != "" {
		names[name.Family] = f.FamilyName
	}
	if f.FullName != "" {
		names[name.Full] = f.FullName
	}
	if f.PostScriptName != "" {
		names[name.PostScript] = f.PostScriptName
	}
	tables["name"] = name.Encode(name.WindowsRecords(names))

	codes := cmap.Format4{}
	for i, g := range f.Glyphs {
		for _, r := range g.Runes {
			if f.Symbol {
				r += 0xF000
			}
			codes[uint16(r)] = glyph.ID(i)
		}
	}
	key := cmap.WindowsUnicode
	if f.Symbol {
		key = cmap.WindowsSymbol
	}
	sub, err := codes.Encode(0)
	if err != nil {
		panic(err)
	}
	tables["cmap"] = cmap.Table{key: sub}.Encode()

	if f.OS2 != nil {
		tables["OS/2"] = f.OS2.Encode()
	}
	if f.PCLT != nil {
		tables["PCLT"] = f.PCLT.Encode()
	}
	if f.Kern != nil {
		tables["kern"] = f.Kern.Encode()
	}

	for tag, data := range f.Extra {
		if data == nil {
			delete(tables, tag)
		} else {
			tables[tag] = data
		}
	}
	return tables
}

// Bytes returns the font as an sfnt file.
func (f *Font) Bytes() []byte {
	scalerType := f.ScalerType
	if scalerType == 0 {
		scalerType = header.ScalerTypeTrueType
	}
	buf := &bytes.Buffer{}
	_, err := header.Write(buf, scalerType, f.Tables())
	if err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// Collection combines sfnt files into a TrueType collection.
func Collection(fonts ...[]byte) []byte {
	headerLen := 12 + 4*len(fonts)
	res := make([]byte, headerLen)
	binary.BigEndian.PutUint32(res[0:], 0x74746366) // "ttcf"
	binary.BigEndian.PutUint32(res[4:], 0x00010000)
	binary.BigEndian.PutUint32(res[8:], uint32(len(fonts)))

	for i, data := range fonts {
		for len(res)%4 != 0 {
			res = append(res, 0)
		}
		base := uint32(len(res))
		binary.BigEndian.PutUint32(res[12+4*i:], base)

		start := len(res)
		res = append(res, data...)
		numTables := int(binary.BigEndian.Uint16(data[4:]))
		for j := 0; j < numTables; j++ {
			pos := start + 12 + 16*j + 8
			offs := binary.BigEndian.Uint32(res[pos:])
			binary.BigEndian.PutUint32(res[pos:], offs+base)
		}
	}
	return res
}
