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

// Ttfsubset writes a TrueType font which contains only the given glyphs.
// The font data goes to stdout unless -o is given, all messages go to
// stderr.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/ttf/cmd/internal/cli"
	"seehuhn.de/go/ttf/sfnt"
	"seehuhn.de/go/ttf/subset"
)

var (
	ttcArg         = flag.String("ttc", "", "select the font `NAME` from a collection")
	outArg         = flag.String("o", "", "write the subset to `file` instead of stdout")
	keepHintingArg = flag.Bool("keep-hinting", false, "keep the cvt, fpgm and prep tables")
	charsArg       = flag.String("chars", "", "include the glyphs for the characters in `TEXT`")
	glyphsArg      = flag.String("glyphs", "", "include the glyphs in `LIST`, e.g. 3,5-9")
	widthsArg      = flag.Bool("widths", false, "show the subset widths in CIDFont form")
	traceArg       = flag.String("trace", "Error", "trace level [Debug|Info|Error]")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "ttfsubset - write a subset of a TrueType font\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", cli.Version("ttfsubset"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  ttfsubset [options] <font.ttf>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  ttfsubset -chars \"Hello\" -o hello.ttf font.ttf\n")
		fmt.Fprintf(os.Stderr, "  ttfsubset -glyphs 1-20 font.ttf >small.ttf\n")
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, "ttfsubset:", err)
		os.Exit(1)
	}
}

func run(fname string) error {
	err := cli.SetupTracing(*traceArg)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if *outArg == "" && term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("refusing to write font data to a terminal, use -o")
	}

	f, err := sfnt.Open(fname, &sfnt.Config{
		UseKerning:     true,
		CollectionName: *ttcArg,
	})
	if err != nil {
		return err
	}

	required, err := parseGlyphList(*glyphsArg)
	if err != nil {
		return err
	}
	for _, r := range *charsArg {
		gid, ok := f.UnicodeToGlyph(r)
		if !ok {
			fmt.Fprintf(os.Stderr, "warning: no glyph for %q\n", r)
			continue
		}
		required = append(required, gid)
	}

	opt := subset.DefaultOptions()
	opt.KeepHinting = *keepHintingArg
	res, err := subset.Subset(f, required, opt)
	if err != nil {
		return err
	}

	if *outArg != "" {
		fd, err := os.Create(*outArg)
		if err != nil {
			return err
		}
		defer fd.Close()
		out = fd
	}
	_, err = out.Write(res.Data)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "%s: %d of %d glyphs, %d bytes\n",
		res.FontName(f.PostScriptName()), len(res.Glyphs), res.NumOrigGlyphs, len(res.Data))
	if *widthsArg {
		showWidths(res.Plan, f)
	}
	return nil
}

func showWidths(p *subset.Plan, f *sfnt.Font) {
	dw, runs := p.Widths(f)
	fmt.Fprintf(os.Stderr, "DW %d\n", dw)
	for _, r := range runs {
		if r.IsRange() {
			fmt.Fprintf(os.Stderr, "%d %d %d\n", r.First, r.Last, r.Widths[0])
			continue
		}
		parts := make([]string, len(r.Widths))
		for i, w := range r.Widths {
			parts[i] = strconv.Itoa(w)
		}
		fmt.Fprintf(os.Stderr, "%d [%s]\n", r.First, strings.Join(parts, " "))
	}
}

// parseGlyphList parses a comma-separated list of glyph IDs and ranges.
func parseGlyphList(list string) ([]glyph.ID, error) {
	var res []glyph.ID
	if list == "" {
		return res, nil
	}
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		lo, hi, isRange := strings.Cut(item, "-")
		first, err := strconv.ParseUint(lo, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid glyph %q", item)
		}
		last := first
		if isRange {
			last, err = strconv.ParseUint(hi, 10, 16)
			if err != nil || last < first {
				return nil, fmt.Errorf("invalid glyph range %q", item)
			}
		}
		for gid := first; gid <= last; gid++ {
			res = append(res, glyph.ID(gid))
		}
	}
	return res, nil
}
