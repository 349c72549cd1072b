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

// Ttfinfo prints information about a TrueType or OpenType font file.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"golang.org/x/exp/slices"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/ttf/cmd/internal/cli"
	"seehuhn.de/go/ttf/sfnt"
	"seehuhn.de/go/ttf/sfnt/glyf"
)

var (
	kernArg    = flag.Bool("kern", false, "show kerning pairs")
	ttcArg     = flag.String("ttc", "", "select the font `NAME` from a collection")
	glyphsArg  = flag.Bool("glyphs", false, "show per-glyph information")
	traceArg   = flag.String("trace", "Error", "trace level [Debug|Info|Error]")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile = flag.String("memprofile", "", "write memory profile to `file`")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "ttfinfo - show information about a font file\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", cli.Version("ttfinfo"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  ttfinfo [options] <font.ttf>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	cli.InitDisplay()
	if err := run(flag.Arg(0)); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func run(fname string) error {
	err := cli.SetupTracing(*traceArg)
	if err != nil {
		return err
	}
	stop, err := cli.StartProfile(*cpuprofile, *memprofile)
	if err != nil {
		return err
	}
	defer stop()

	cfg := &sfnt.Config{
		UseKerning:     *kernArg,
		CollectionName: *ttcArg,
	}
	f, err := sfnt.Open(fname, cfg)
	if err != nil {
		return err
	}

	showTables(f)
	showMetrics(f)
	if *glyphsArg {
		showGlyphs(f)
	}
	if *kernArg {
		showKerning(f)
	}
	return nil
}

func showTables(f *sfnt.Font) {
	pterm.DefaultSection.Println("Tables")
	data := [][]string{
		{"Tag", "Offset", "Length", "Checksum"},
	}
	for _, tag := range f.Header.Names() {
		rec := f.Header.Toc[tag]
		data = append(data, []string{
			fmt.Sprintf("%q", tag),
			fmt.Sprintf("%d", rec.Offset),
			fmt.Sprintf("%d", rec.Length),
			fmt.Sprintf("0x%08X", rec.Checksum),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func showMetrics(f *sfnt.Font) {
	pterm.DefaultSection.Println("Font")
	bbox := f.FontBBox()
	data := [][]string{
		{"Property", "Value"},
		{"kind", f.Kind.String()},
		{"PostScript name", f.PostScriptName()},
		{"full name", f.FullName()},
		{"family", strings.Join(f.FamilyNames(), ", ")},
		{"subfamily", f.Subfamily()},
		{"glyphs", fmt.Sprintf("%d", f.NumGlyphs())},
		{"units per em", fmt.Sprintf("%d", f.UnitsPerEm())},
		{"ascender", fmt.Sprintf("%d", f.Ascender())},
		{"descender", fmt.Sprintf("%d", f.Descender())},
		{"cap height", fmt.Sprintf("%d", f.CapHeight())},
		{"x height", fmt.Sprintf("%d", f.XHeight())},
		{"font bbox", fmt.Sprintf("%v", bbox)},
		{"italic angle", fmt.Sprintf("%d", f.ItalicAngle())},
		{"underline", fmt.Sprintf("%d / %d", f.UnderlinePosition(), f.UnderlineThickness())},
		{"flags", formatFlags(f.Flags())},
		{"embeddable", fmt.Sprintf("%t", f.IsEmbeddable())},
		{"symbol font", fmt.Sprintf("%t", f.IsSymbol)},
		{"WinAnsi range", fmt.Sprintf("%d-%d", f.FirstChar(), f.LastChar())},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()

	if notice := f.Notice(); notice != "" {
		pterm.Info.Println(notice)
	}
}

func formatFlags(flags int) string {
	var parts []string
	if flags&sfnt.FlagFixedPitch != 0 {
		parts = append(parts, "FixedPitch")
	}
	if flags&sfnt.FlagSerif != 0 {
		parts = append(parts, "Serif")
	}
	if flags&sfnt.FlagNonsymbolic != 0 {
		parts = append(parts, "Nonsymbolic")
	}
	if flags&sfnt.FlagItalic != 0 {
		parts = append(parts, "Italic")
	}
	return fmt.Sprintf("%d (%s)", flags, strings.Join(parts, " "))
}

func showGlyphs(f *sfnt.Font) {
	pterm.DefaultSection.Println("Glyphs")
	data := [][]string{
		{"GID", "Name", "Width", "BBox", "Unicode", "Points", "Instr", "Components"},
	}
	for i := 0; i < f.NumGlyphs(); i++ {
		gid := glyph.ID(i)

		var runes []string
		for _, r := range f.GlyphToUnicode(gid) {
			runes = append(runes, fmt.Sprintf("U+%04X", r))
		}
		g := f.Glyphs.Get(gid)
		var comps []string
		for _, c := range g.Components() {
			comps = append(comps, fmt.Sprintf("%d", c))
		}
		points, instr := outlineInfo(g)

		data = append(data, []string{
			fmt.Sprintf("%d", gid),
			f.GlyphName(gid),
			fmt.Sprintf("%d", f.Width(gid)),
			fmt.Sprintf("%v", f.GlyphBBox(gid)),
			strings.Join(runes, " "),
			points,
			instr,
			strings.Join(comps, " "),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// outlineInfo returns the number of points and the length of the
// hinting instructions of a glyph, formatted for display.
func outlineInfo(g *glyf.Glyph) (string, string) {
	if g == nil {
		return "", ""
	}
	switch d := g.Data.(type) {
	case glyf.SimpleGlyph:
		return fmt.Sprintf("%d", d.NumPoints()), fmt.Sprintf("%d", len(d.Instructions()))
	case glyf.CompositeGlyph:
		return "", fmt.Sprintf("%d", len(d.Instructions))
	}
	return "", ""
}

func showKerning(f *sfnt.Font) {
	pterm.DefaultSection.Println("Kerning")
	if !f.HasKerning() {
		pterm.Info.Println("no kerning information")
		return
	}

	data := [][]string{
		{"Left", "Right", "Adjustment"},
	}
	for _, left := range sortedGlyphs(f.Kern) {
		row := f.Kern[left]
		for _, right := range sortedGlyphs(row) {
			data = append(data, []string{
				glyphLabel(f, left),
				glyphLabel(f, right),
				fmt.Sprintf("%d", f.Kerning(left, right)),
			})
		}
	}
	pterm.Printf("%d kerning pairs\n", len(data)-1)
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func glyphLabel(f *sfnt.Font, gid glyph.ID) string {
	if name := f.GlyphName(gid); name != "" {
		return name
	}
	return fmt.Sprintf("%d", gid)
}

func sortedGlyphs[T any](m map[glyph.ID]T) []glyph.ID {
	keys := make([]glyph.ID, 0, len(m))
	for gid := range m {
		keys = append(keys, gid)
	}
	slices.Sort(keys)
	return keys
}
