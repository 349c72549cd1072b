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

package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/sfnt/glyph"
)

func TestParseGlyphList(t *testing.T) {
	cases := []struct {
		in   string
		want []glyph.ID
	}{
		{"", nil},
		{"7", []glyph.ID{7}},
		{"1, 3-5,9", []glyph.ID{1, 3, 4, 5, 9}},
		{"2-2", []glyph.ID{2}},
	}
	for _, c := range cases {
		got, err := parseGlyphList(c.in)
		if err != nil {
			t.Errorf("%q: %v", c.in, err)
			continue
		}
		if d := cmp.Diff(c.want, got); d != "" {
			t.Errorf("%q: %s", c.in, d)
		}
	}

	for _, in := range []string{"x", "5-3", "1-", "70000"} {
		_, err := parseGlyphList(in)
		if err == nil {
			t.Errorf("%q: expected error", in)
		}
	}
}
