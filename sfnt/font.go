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

// Package sfnt reads TrueType and OpenType font files and provides the
// metrics needed to lay out text and to embed the font in a document.
//
// All metrics returned by the methods of Font are in units of 1/1000 of
// the em square.  The decoded tables are available as exported fields,
// in font design units.
package sfnt

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/ttf/sfnt/cmap"
	"seehuhn.de/go/ttf/sfnt/fonterror"
	"seehuhn.de/go/ttf/sfnt/glyf"
	"seehuhn.de/go/ttf/sfnt/head"
	"seehuhn.de/go/ttf/sfnt/header"
	"seehuhn.de/go/ttf/sfnt/hmtx"
	"seehuhn.de/go/ttf/sfnt/kern"
	"seehuhn.de/go/ttf/sfnt/maxp"
	"seehuhn.de/go/ttf/sfnt/name"
	"seehuhn.de/go/ttf/sfnt/os2"
	"seehuhn.de/go/ttf/sfnt/parser"
	"seehuhn.de/go/ttf/sfnt/pclt"
	"seehuhn.de/go/ttf/sfnt/post"
)

// tracer traces with key 'ttf'
func tracer() tracing.Trace {
	return tracing.Select("ttf")
}

// Kind describes the outline format of a font.
type Kind int

// These are the supported outline formats.
const (
	TrueType    Kind = iota + 1 // glyf outlines
	OpenTypeCFF                 // CFF outlines
)

func (k Kind) String() string {
	switch k {
	case TrueType:
		return "TrueType"
	case OpenTypeCFF:
		return "OpenType/CFF"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Config controls how a font file is read.
type Config struct {
	// UseKerning enables reading the "kern" table.
	UseKerning bool

	// CollectionName selects a member of a TrueType collection, by full
	// name or PostScript name.  It is ignored for plain font files.
	CollectionName string
}

// Font is a decoded TrueType or OpenType font.
// A Font is not modified after Read returns, and can be used
// concurrently.
type Font struct {
	Kind Kind

	Header  *header.Info
	Head    *head.Info
	Hhea    *hmtx.Hhea
	Metrics *hmtx.Metrics
	Maxp    *maxp.Info
	Post    *post.Info
	Names   *name.Info
	OS2     *os2.Info  // nil if the font has no "OS/2" table
	PCLT    *pclt.Info // nil if the font has no usable "PCLT" table

	// CMap maps character codes to glyphs.  For symbol fonts this
	// includes the aliases of U+F020 to U+F0FF in the range U+0020 to
	// U+00FF.
	CMap     cmap.Format4
	IsSymbol bool

	Glyphs glyf.Glyphs // nil for CFF fonts
	Kern   kern.Info   // nil unless Config.UseKerning is set

	// Tables holds the raw data of every table in the font.
	Tables map[string][]byte

	asc, desc  int // font design units
	capHeight  int
	xHeight    int
	unicodes   [][]rune
	ansiWidths []int
	firstChar  byte
	lastChar   byte
}

// Open reads the font file with the given name.
func Open(fname string, cfg *Config) (*Font, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	font, err := Read(bytes.NewReader(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return font, nil
}

// Read decodes a font from r.  If cfg is nil, the default configuration
// is used.
//
// Structural damage to the font, missing mandatory tables, and unsupported
// character maps are reported as errors.  Problems with optional tables
// are logged and the table is ignored.
func Read(r parser.ReadSeekSizer, cfg *Config) (*Font, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	p := parser.New("header", r)
	info, err := header.Select(p, cfg.CollectionName)
	if err != nil {
		return nil, err
	}
	err = info.CheckMandatory()
	if err != nil {
		return nil, err
	}

	font := &Font{
		Kind:   TrueType,
		Header: info,
		Tables: make(map[string][]byte, len(info.Toc)),
	}
	if info.IsCFF() {
		font.Kind = OpenTypeCFF
	}
	for _, tag := range info.Names() {
		data, err := info.ReadTableBytes(p, tag)
		if err != nil {
			return nil, fmt.Errorf("%q table: %w", tag, err)
		}
		font.Tables[tag] = data
	}
	tracer().Debugf("%s font with tables %q", font.Kind, info.Names())

	font.Head, err = head.Read(font.Tables["head"])
	if err != nil {
		return nil, err
	}
	font.Maxp, err = maxp.Read(font.Tables["maxp"])
	if err != nil {
		return nil, err
	}
	numGlyphs := font.Maxp.NumGlyphs
	font.Hhea, err = hmtx.DecodeHhea(font.Tables["hhea"])
	if err != nil {
		return nil, err
	}
	font.Metrics, err = hmtx.DecodeHmtx(font.Tables["hmtx"],
		int(font.Hhea.NumOfLongHorMetrics), numGlyphs)
	if err != nil {
		return nil, err
	}
	font.Post, err = post.Read(font.Tables["post"])
	if err != nil {
		return nil, err
	}
	font.Names, err = name.Decode(font.Tables["name"])
	if err != nil {
		return nil, err
	}

	if data, ok := font.Tables["OS/2"]; ok {
		font.OS2, err = os2.Read(data)
		if err != nil {
			return nil, err
		}
	} else {
		tracer().Infof("no OS/2 table, assuming the font is embeddable")
	}

	if data, ok := font.Tables["PCLT"]; ok {
		font.PCLT, err = pclt.Read(data)
		if err != nil {
			tracer().Infof("ignoring PCLT table: %v", err)
			font.PCLT = nil
		}
	}

	subtables, err := cmap.Decode(font.Tables["cmap"])
	if err != nil {
		return nil, err
	}
	font.CMap, font.IsSymbol, err = subtables.Select()
	if err != nil {
		return nil, err
	}

	if font.Kind == TrueType {
		enc := &glyf.Encoded{
			GlyfData: font.Tables["glyf"],
			LocaData: font.Tables["loca"],
		}
		if font.Head.HasLongOffsets {
			enc.LocaFormat = 1
		}
		gg, err := glyf.Decode(enc)
		if err != nil {
			return nil, err
		}
		if len(gg) < numGlyphs {
			return nil, &fonterror.InvalidFontError{
				SubSystem: "sfnt",
				Reason: fmt.Sprintf("loca has %d glyphs, maxp has %d",
					len(gg), numGlyphs),
			}
		}
		font.Glyphs = gg[:numGlyphs]
	}

	for code, gid := range font.CMap {
		if int(gid) >= numGlyphs {
			return nil, &fonterror.InvalidFontError{
				SubSystem: "sfnt",
				Reason:    fmt.Sprintf("cmap maps U+%04X to invalid glyph %d", code, gid),
			}
		}
	}

	if data, ok := font.Tables["kern"]; ok && cfg.UseKerning {
		font.Kern, err = kern.Read(data)
		if err != nil {
			tracer().Infof("ignoring kern table: %v", err)
			font.Kern = nil
		}
	}

	font.makeUnicodes()
	font.makeAnsiWidths()
	font.determineVerticalMetrics()

	return font, nil
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int {
	return f.Maxp.NumGlyphs
}

// UnitsPerEm returns the number of font design units per em.
func (f *Font) UnitsPerEm() int {
	return int(f.Head.UnitsPerEm)
}

// GlyphName returns the PostScript name of a glyph, or the empty string if
// the font contains no glyph names.
func (f *Font) GlyphName(gid glyph.ID) string {
	if int(gid) >= len(f.Post.Names) {
		return ""
	}
	return f.Post.Names[gid]
}

// IsEmbeddable reports whether the license of the font permits embedding.
// Fonts without an OS/2 table are assumed to be embeddable.
func (f *Font) IsEmbeddable() bool {
	if f.OS2 == nil {
		return true
	}
	return f.OS2.IsEmbeddable()
}

// PostScriptName returns the PostScript name of the font.
// If the font has no PostScript name, the full name with white space
// removed is used instead.
func (f *Font) PostScriptName() string {
	if f.Names.PostScriptName != "" {
		return f.Names.PostScriptName
	}
	return removeSpace(f.Names.FullName)
}

// FullName returns the full name of the font.
func (f *Font) FullName() string {
	return f.Names.FullName
}

// FamilyNames returns the family names of the font.
func (f *Font) FamilyNames() []string {
	return f.Names.FamilyNames
}

// Subfamily returns the subfamily name, for example "Bold Italic".
func (f *Font) Subfamily() string {
	return f.Names.Subfamily
}

// Notice returns the copyright notice of the font.
func (f *Font) Notice() string {
	return f.Names.Notice
}

func removeSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
