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

package sfnt_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	xsfnt "golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/ttf/internal/fonttest"
	"seehuhn.de/go/ttf/sfnt"
	"seehuhn.de/go/ttf/sfnt/fonterror"
	"seehuhn.de/go/ttf/sfnt/header"
	"seehuhn.de/go/ttf/sfnt/kern"
	"seehuhn.de/go/ttf/sfnt/os2"
	"seehuhn.de/go/ttf/sfnt/pclt"
)

func read(t *testing.T, f *fonttest.Font, cfg *sfnt.Config) *sfnt.Font {
	t.Helper()
	res, err := sfnt.Read(bytes.NewReader(f.Bytes()), cfg)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestMinimal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ttf")
	defer teardown()

	f := read(t, fonttest.Minimal(), nil)
	if n := f.NumGlyphs(); n != 3 {
		t.Errorf("wrong number of glyphs: %d != 3", n)
	}
	if f.Kind != sfnt.TrueType {
		t.Errorf("wrong kind %s", f.Kind)
	}
	if got := f.PostScriptName(); got != "Minimal-Regular" {
		t.Errorf("wrong PostScript name %q", got)
	}
	if got := f.FullName(); got != "Minimal Regular" {
		t.Errorf("wrong full name %q", got)
	}
	if d := cmp.Diff([]int{500, 600, 1200}, f.Widths()); d != "" {
		t.Errorf("wrong widths (-want +got):\n%s", d)
	}
	if got := f.GlyphName(2); got != "AB" {
		t.Errorf("wrong glyph name %q", got)
	}
	if gid, ok := f.UnicodeToGlyph('A'); !ok || gid != 1 {
		t.Errorf("wrong glyph for 'A': %d %t", gid, ok)
	}
	if _, ok := f.UnicodeToGlyph('B'); ok {
		t.Error("unexpected glyph for 'B'")
	}
	if d := cmp.Diff([]rune{'A'}, f.GlyphToUnicode(1)); d != "" {
		t.Errorf("wrong code points (-want +got):\n%s", d)
	}
	if f.GlyphToUnicode(2) != nil {
		t.Error("composite glyph should have no code points")
	}
	if !f.IsEmbeddable() {
		t.Error("font without OS/2 table should be embeddable")
	}
	if d := cmp.Diff([4]int{0, 0, 1200, 700}, f.FontBBox()); d != "" {
		t.Errorf("wrong font bbox (-want +got):\n%s", d)
	}
}

func TestNoPostScriptName(t *testing.T) {
	fnt := fonttest.Minimal()
	fnt.PostScriptName = ""
	fnt.FullName = "Minimal Bold Italic"
	f := read(t, fnt, nil)
	if got := f.PostScriptName(); got != "MinimalBoldItalic" {
		t.Errorf("wrong PostScript name %q", got)
	}
}

func TestInheritedWidths(t *testing.T) {
	f := read(t, fonttest.FiveGlyphs(), nil)
	if n := f.Hhea.NumOfLongHorMetrics; n != 2 {
		t.Fatalf("wrong numberOfHMetrics %d", n)
	}
	if f.NumGlyphs() != 5 {
		t.Fatalf("wrong number of glyphs %d", f.NumGlyphs())
	}
	w1 := f.Width(1)
	for gid := glyph.ID(2); gid < 5; gid++ {
		if w := f.Width(gid); w != w1 {
			t.Errorf("glyph %d: width %d != %d", gid, w, w1)
		}
	}
	if f.Width(0) != 500 || w1 != 600 {
		t.Errorf("wrong widths %d %d", f.Width(0), w1)
	}
}

func TestEmbeddable(t *testing.T) {
	cases := []struct {
		fsType uint16
		want   bool
	}{
		{0x0000, true},
		{0x0002, false},
		{0x0004, true},
		{0x0008, true},
		{0x0102, false},
	}
	for _, c := range cases {
		fnt := fonttest.FiveGlyphs()
		fnt.OS2 = &os2.Info{
			Version:     4,
			WeightClass: 400,
			WidthClass:  5,
			FsType:      c.fsType,
		}
		f := read(t, fnt, nil)
		if got := f.IsEmbeddable(); got != c.want {
			t.Errorf("fsType 0x%04x: embeddable=%t, want %t", c.fsType, got, c.want)
		}
	}
}

func TestInvalidScalerType(t *testing.T) {
	data := fonttest.Minimal().Bytes()
	copy(data, []byte{0xDE, 0xAD, 0xBE, 0xEF})

	f, err := sfnt.Read(bytes.NewReader(data), nil)
	if err == nil {
		t.Fatal("malformed font accepted")
	}
	if f != nil {
		t.Error("partial font returned")
	}
	if !fonterror.IsInvalid(err) {
		t.Errorf("wrong error type: %v", err)
	}
}

func TestMissingTable(t *testing.T) {
	for _, tag := range []string{"cmap", "head", "loca", "post"} {
		fnt := fonttest.Minimal()
		fnt.Extra = map[string][]byte{tag: nil}
		_, err := sfnt.Read(bytes.NewReader(fnt.Bytes()), nil)
		if !header.IsMissing(err) {
			t.Errorf("%s: wrong error %v", tag, err)
		}
	}
}

func TestZeroUnitsPerEm(t *testing.T) {
	fnt := fonttest.Minimal()
	fnt.UnitsPerEm = 0
	_, err := sfnt.Read(bytes.NewReader(fnt.Bytes()), nil)
	if err == nil {
		t.Fatal("unitsPerEm=0 accepted")
	}
}

func TestCFF(t *testing.T) {
	fnt := fonttest.Minimal()
	fnt.ScalerType = header.ScalerTypeCFF
	fnt.Extra = map[string][]byte{"CFF ": {1, 0, 4, 1}}
	f := read(t, fnt, nil)
	if f.Kind != sfnt.OpenTypeCFF {
		t.Errorf("wrong kind %s", f.Kind)
	}
	if f.Glyphs != nil {
		t.Error("CFF font has glyf outlines")
	}
	if f.Maxp.TTF != nil {
		t.Error("CFF font has TrueType maxp fields")
	}
	if f.Width(1) != 600 {
		t.Errorf("wrong width %d", f.Width(1))
	}
}

func TestUnitConversion(t *testing.T) {
	cases := []struct {
		n, upem, want int
	}{
		{0, 2048, 0},
		{2048, 2048, 1000},
		{1000, 1000, 1000},
		{-1, 2048, 0},
		{-2, 2048, 0},
		{-2048, 2048, -1000},
		{1024, 2048, 500},
		{3, 2048, 1},
		{4096, 2048, 2000},
		{-3000, 1000, -3000},
	}
	for _, c := range cases {
		got := sfnt.Convert(c.n, c.upem)
		if got != c.want {
			t.Errorf("Convert(%d, %d) = %d, want %d", c.n, c.upem, got, c.want)
		}
	}

	for _, upem := range []int{16, 1000, 1024, 2048, 16384} {
		prev := sfnt.Convert(-3*upem, upem)
		for n := -3*upem + 1; n <= 3*upem; n++ {
			x := sfnt.Convert(n, upem)
			if x < prev {
				t.Fatalf("upem %d: Convert not monotonic at %d", upem, n)
			}
			prev = x
		}
		if sfnt.Convert(upem, upem) != 1000 {
			t.Errorf("upem %d: one em is not 1000", upem)
		}
	}
}

// letters returns a font with glyphs for the letters used to guess
// vertical metrics.
func letters() *fonttest.Font {
	return &fonttest.Font{
		UnitsPerEm:     1000,
		FamilyName:     "Letters",
		FullName:       "Letters Regular",
		PostScriptName: "Letters-Regular",
		Glyphs: []fonttest.Glyph{
			{Name: ".notdef", Width: 500, Outline: fonttest.Rect(50, 0, 450, 700)},
			{Name: "H", Width: 700, Runes: []rune{'H'}, Outline: fonttest.Rect(50, 0, 650, 690)},
			{Name: "d", Width: 550, Runes: []rune{'d'}, Outline: fonttest.Rect(40, -10, 510, 720)},
			{Name: "p", Width: 550, Runes: []rune{'p'}, Outline: fonttest.Rect(40, -210, 510, 480)},
			{Name: "x", Width: 500, Runes: []rune{'x'}, Outline: fonttest.Rect(10, 0, 490, 470)},
		},
	}
}

func TestAscenderDescender(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ttf")
	defer teardown()

	cases := []struct {
		name                string
		hheaAsc, hheaDesc   funit.Int16
		typoAsc, typoDesc   funit.Int16
		noOS2, noGlyphNames bool
		wantAsc, wantDesc   int
	}{
		{"typo", 900, -300, 800, -200, false, false, 800, -200},
		{"hhea", 750, -250, 900, -300, false, false, 750, -250},
		{"no OS/2", 750, -250, 0, 0, true, false, 750, -250},
		{"outlines", 1100, -300, 0, 0, true, false, 720, -210},
		{"outlines via OS/2", 1100, -300, 1000, -300, false, false, 720, -210},
		{"outlines via cmap", 1100, -300, 0, 0, true, true, 720, -210},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fnt := letters()
			fnt.Ascent = c.hheaAsc
			fnt.Descent = c.hheaDesc
			fnt.NoGlyphNames = c.noGlyphNames
			if !c.noOS2 {
				fnt.OS2 = &os2.Info{
					Version:       4,
					WeightClass:   400,
					WidthClass:    5,
					TypoAscender:  c.typoAsc,
					TypoDescender: c.typoDesc,
				}
			}
			data := fnt.Bytes()
			for i := 0; i < 2; i++ {
				f, err := sfnt.Read(bytes.NewReader(data), nil)
				if err != nil {
					t.Fatal(err)
				}
				if f.Ascender() != c.wantAsc || f.Descender() != c.wantDesc {
					t.Errorf("got %d/%d, want %d/%d",
						f.Ascender(), f.Descender(), c.wantAsc, c.wantDesc)
				}
			}
		})
	}
}

func TestCapAndXHeight(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ttf")
	defer teardown()

	f := read(t, letters(), nil)
	if f.CapHeight() != 690 || f.XHeight() != 470 {
		t.Errorf("from outlines: got %d/%d", f.CapHeight(), f.XHeight())
	}

	fnt := letters()
	fnt.NoGlyphNames = true
	f = read(t, fnt, nil)
	if f.CapHeight() != 690 || f.XHeight() != 470 {
		t.Errorf("from cmap: got %d/%d", f.CapHeight(), f.XHeight())
	}

	fnt = letters()
	fnt.PCLT = pcltInfo(700, 500, 0x80)
	f = read(t, fnt, nil)
	if f.CapHeight() != 700 || f.XHeight() != 500 {
		t.Errorf("from PCLT: got %d/%d", f.CapHeight(), f.XHeight())
	}

	fnt = fonttest.Minimal()
	fnt.OS2 = &os2.Info{Version: 4, WeightClass: 400, WidthClass: 5, CapHeight: 710, XHeight: 520}
	f = read(t, fnt, nil)
	if f.CapHeight() != 710 || f.XHeight() != 520 {
		t.Errorf("from OS/2: got %d/%d", f.CapHeight(), f.XHeight())
	}

	f = read(t, fonttest.Minimal(), nil)
	if f.CapHeight() != 0 || f.XHeight() != 0 {
		t.Errorf("no source: got %d/%d", f.CapHeight(), f.XHeight())
	}
}

func pcltInfo(capHeight, xHeight funit.Int16, serifStyle uint8) *pclt.Info {
	return &pclt.Info{
		FontNumber: 1,
		Pitch:      500,
		XHeight:    xHeight,
		CapHeight:  capHeight,
		Typeface:   "Letters",
		SerifStyle: serifStyle,
	}
}

func TestFlags(t *testing.T) {
	f := read(t, fonttest.Minimal(), nil)
	if got := f.Flags(); got != sfnt.FlagNonsymbolic|sfnt.FlagSerif {
		t.Errorf("wrong default flags %d", got)
	}
	if f.ItalicAngle() != 0 {
		t.Errorf("wrong italic angle %d", f.ItalicAngle())
	}

	fnt := fonttest.Minimal()
	fnt.ItalicAngle = -12.5
	fnt.IsFixedPitch = true
	fnt.PCLT = pcltInfo(0, 0, 0x40)
	f = read(t, fnt, nil)
	want := sfnt.FlagNonsymbolic | sfnt.FlagItalic | sfnt.FlagFixedPitch
	if got := f.Flags(); got != want {
		t.Errorf("wrong flags %d != %d", got, want)
	}
	if f.ItalicAngle() != -12 {
		t.Errorf("wrong italic angle %d", f.ItalicAngle())
	}
}

func TestSymbolFont(t *testing.T) {
	fnt := fonttest.FiveGlyphs()
	fnt.Symbol = true
	fnt.Glyphs[4].Runes = nil
	f := read(t, fnt, nil)
	if !f.IsSymbol {
		t.Fatal("symbol cmap not detected")
	}
	for _, r := range []rune{'B', 0xF042} {
		if gid, ok := f.UnicodeToGlyph(r); !ok || gid != 2 {
			t.Errorf("U+%04X: wrong glyph %d", r, gid)
		}
	}
	if w := f.WinAnsiWidths()['C']; w != 600 {
		t.Errorf("wrong width for 'C': %d", w)
	}
}

func TestWinAnsiWidths(t *testing.T) {
	fnt := fonttest.Minimal()
	fnt.Glyphs = append(fnt.Glyphs,
		fonttest.Glyph{Name: "Euro", Width: 650, Runes: []rune{'€'}, Outline: fonttest.Rect(0, 0, 600, 700)},
		fonttest.Glyph{Name: "bullet", Width: 350, Runes: []rune{'•'}, Outline: fonttest.Rect(50, 200, 300, 450)},
		fonttest.Glyph{Name: "space", Width: 250, Runes: []rune{' '}},
	)
	f := read(t, fnt, nil)
	ww := f.WinAnsiWidths()
	if len(ww) != 256 {
		t.Fatalf("wrong length %d", len(ww))
	}
	want := map[int]int{
		0x20: 250,
		'A':  600,
		'B':  500,
		0x80: 650,
		0x81: 350,
		0x95: 350,
		0xFF: 500,
		0x05: 500,
	}
	for c, w := range want {
		if ww[c] != w {
			t.Errorf("code 0x%02x: width %d != %d", c, ww[c], w)
		}
	}
	if f.FirstChar() != ' ' || f.LastChar() != 0x9D {
		t.Errorf("wrong char range %d...%d", f.FirstChar(), f.LastChar())
	}
}

func TestMappings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ttf")
	defer teardown()

	f := read(t, fonttest.FiveGlyphs(), nil)
	wantMap := []sfnt.Mapping{
		{Unicode: 'A', GID: 1},
		{Unicode: 'B', GID: 2},
		{Unicode: 'C', GID: 3},
		{Unicode: 0xE000, GID: 4},
	}
	if d := cmp.Diff(wantMap, f.UnicodeMappings()); d != "" {
		t.Errorf("wrong mappings (-want +got):\n%s", d)
	}
	wantRanges := []sfnt.BFRange{
		{FirstUnicode: 'A', LastUnicode: 'C', FirstGID: 1},
		{FirstUnicode: 0xE000, LastUnicode: 0xE000, FirstGID: 4},
	}
	if d := cmp.Diff(wantRanges, f.BFRanges()); d != "" {
		t.Errorf("wrong ranges (-want +got):\n%s", d)
	}

	rr := f.GlyphToUnicode(1)
	rr[0] = 'Z'
	if d := cmp.Diff([]rune{'A'}, f.GlyphToUnicode(1)); d != "" {
		t.Errorf("font data was modified (-want +got):\n%s", d)
	}
}

func TestKerning(t *testing.T) {
	fnt := fonttest.FiveGlyphs()
	fnt.Kern = kern.Info{
		1: {2: -50, 4: -30},
		3: {1: 20},
	}

	f := read(t, fnt, nil)
	if f.HasKerning() {
		t.Error("kerning read without UseKerning")
	}

	f = read(t, fnt, &sfnt.Config{UseKerning: true})
	if !f.HasKerning() {
		t.Fatal("kerning not read")
	}
	if k := f.Kerning(1, 2); k != -50 {
		t.Errorf("wrong kerning for 1,2: %d", k)
	}
	if k := f.Kerning(2, 1); k != 0 {
		t.Errorf("wrong kerning for 2,1: %d", k)
	}
	want := map[byte]map[byte]int{
		'A': {'B': -50},
		'C': {'A': 20},
	}
	if d := cmp.Diff(want, f.WinAnsiKerning()); d != "" {
		t.Errorf("wrong WinAnsi kerning (-want +got):\n%s", d)
	}
}

func TestCollection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ttf.tables")
	defer teardown()

	data := fonttest.Collection(fonttest.Minimal().Bytes(), fonttest.FiveGlyphs().Bytes())

	f, err := sfnt.Read(bytes.NewReader(data), &sfnt.Config{CollectionName: "Five Regular"})
	if err != nil {
		t.Fatal(err)
	}
	if f.NumGlyphs() != 5 {
		t.Errorf("wrong member selected: %d glyphs", f.NumGlyphs())
	}

	_, err = sfnt.Read(bytes.NewReader(data), nil)
	if !errors.Is(err, header.ErrAmbiguousCollection) {
		t.Errorf("wrong error %v", err)
	}

	_, err = sfnt.Read(bytes.NewReader(data), &sfnt.Config{CollectionName: "Six"})
	var notFound *header.NotFoundInCollectionError
	if !errors.As(err, &notFound) {
		t.Errorf("wrong error %v", err)
	}
}

func TestGoRegular(t *testing.T) {
	f, err := sfnt.Read(bytes.NewReader(goregular.TTF), &sfnt.Config{UseKerning: true})
	if fonterror.IsUnsupported(err) {
		t.Skip(err)
	} else if err != nil {
		t.Fatal(err)
	}
	ref, err := xsfnt.Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	buf := &xsfnt.Buffer{}

	if f.NumGlyphs() != ref.NumGlyphs() {
		t.Errorf("wrong number of glyphs: %d != %d", f.NumGlyphs(), ref.NumGlyphs())
	}
	if f.UnitsPerEm() != int(ref.UnitsPerEm()) {
		t.Errorf("wrong unitsPerEm: %d != %d", f.UnitsPerEm(), ref.UnitsPerEm())
	}
	psName, err := ref.Name(buf, xsfnt.NameIDPostScript)
	if err == nil && psName != f.PostScriptName() {
		t.Errorf("wrong PostScript name: %q != %q", f.PostScriptName(), psName)
	}

	ppem := fixed.I(f.UnitsPerEm())
	for _, r := range "AHdpxgé€ﬁ" {
		refGID, err := ref.GlyphIndex(buf, r)
		if err != nil {
			t.Fatal(err)
		}
		gid, _ := f.UnicodeToGlyph(r)
		if int(gid) != int(refGID) {
			t.Errorf("%q: glyph %d != %d", r, gid, refGID)
			continue
		}
		adv, err := ref.GlyphAdvance(buf, refGID, ppem, font.HintingNone)
		if err != nil {
			t.Fatal(err)
		}
		if int(f.Metrics.Width[gid]) != adv.Round() {
			t.Errorf("%q: width %d != %d", r, f.Metrics.Width[gid], adv.Round())
		}
	}

	if f.Ascender() <= 0 || f.Descender() >= 0 {
		t.Errorf("implausible ascender/descender %d/%d", f.Ascender(), f.Descender())
	}
	if f.CapHeight() <= f.XHeight() || f.XHeight() <= 0 {
		t.Errorf("implausible cap/x height %d/%d", f.CapHeight(), f.XHeight())
	}
}

func FuzzRead(f *testing.F) {
	f.Add(fonttest.Minimal().Bytes())
	fnt := fonttest.FiveGlyphs()
	fnt.Kern = kern.Info{1: {2: -50}}
	fnt.OS2 = &os2.Info{Version: 4, FsType: 8}
	f.Add(fnt.Bytes())

	f.Fuzz(func(t *testing.T, data []byte) {
		fnt, err := sfnt.Read(bytes.NewReader(data), &sfnt.Config{UseKerning: true})
		if err != nil {
			return
		}
		if fnt.NumGlyphs() < 1 {
			t.Error("font without glyphs")
		}
		if len(fnt.Widths()) < fnt.NumGlyphs() {
			t.Error("missing widths")
		}
		for _, m := range fnt.UnicodeMappings() {
			if int(m.GID) >= fnt.NumGlyphs() {
				t.Errorf("U+%04X mapped to invalid glyph %d", m.Unicode, m.GID)
			}
		}
	})
}
