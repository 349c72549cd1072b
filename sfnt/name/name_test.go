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

package name

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRoundTrip(t *testing.T) {
	records := []Record{
		{PlatformID: 1, EncodingID: 0, LanguageID: 0, NameID: Full, Value: "Test Sans Mac"},
		{PlatformID: 1, EncodingID: 0, LanguageID: 0, NameID: Family, Value: "Test Sans"},
		{PlatformID: 3, EncodingID: 1, LanguageID: 0x0407, NameID: Full, Value: "Test Sans Normal"},
		{PlatformID: 3, EncodingID: 1, LanguageID: 0x0409, NameID: Full, Value: "Test Sans Regular"},
		{PlatformID: 3, EncodingID: 1, LanguageID: 0x0409, NameID: Copyright, Value: "© 2026 nobody"},
		{PlatformID: 3, EncodingID: 1, LanguageID: 0x0409, NameID: Family, Value: "Test Sans"},
		{PlatformID: 3, EncodingID: 1, LanguageID: 0x0409, NameID: TypographicFamily, Value: "Test"},
		{PlatformID: 3, EncodingID: 1, LanguageID: 0x0409, NameID: Subfamily, Value: "Regular"},
		{PlatformID: 3, EncodingID: 1, LanguageID: 0x0409, NameID: PostScript, Value: "TestSans-Regular"},
		{PlatformID: 3, EncodingID: 10, LanguageID: 0x0409, NameID: PostScript, Value: "ignored"},
	}
	data := Encode(records)

	info, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}

	if info.FullName != "Test Sans Regular" {
		t.Errorf("wrong full name %q", info.FullName)
	}
	if info.PostScriptName != "TestSans-Regular" {
		t.Errorf("wrong PostScript name %q", info.PostScriptName)
	}
	if info.Subfamily != "Regular" {
		t.Errorf("wrong subfamily %q", info.Subfamily)
	}
	if info.Notice != "© 2026 nobody" {
		t.Errorf("wrong notice %q", info.Notice)
	}
	if d := cmp.Diff([]string{"Test", "Test Sans"}, info.FamilyNames); d != "" {
		t.Errorf("family names (-want +got):\n%s", d)
	}
	if len(info.Records) != 9 {
		t.Errorf("expected 9 records, got %d", len(info.Records))
	}
}

func TestMissingNames(t *testing.T) {
	info, err := Decode(Encode(nil))
	if err != nil {
		t.Fatal(err)
	}
	if info.FullName != "" || info.PostScriptName != "" || info.Subfamily != "" {
		t.Errorf("unexpected names: %#v", info)
	}
}

func TestMalformed(t *testing.T) {
	data := Encode(WindowsRecords(map[ID]string{Full: "abc"}))
	for _, cut := range []int{0, 5, 10, len(data) - 1} {
		_, err := Decode(data[:cut])
		if err == nil {
			t.Errorf("truncated at %d: expected error", cut)
		}
	}
}

func TestMatches(t *testing.T) {
	info := &Info{FullName: "Test Sans Bold", PostScriptName: "TestSans-Bold"}
	cases := []struct {
		in   string
		want bool
	}{
		{"Test Sans Bold", true},
		{"test  sans bold", true},
		{"TestSans-Bold", true},
		{"TestSans", false},
		{"", false},
	}
	for _, c := range cases {
		if got := info.Matches(c.in); got != c.want {
			t.Errorf("Matches(%q) = %t, want %t", c.in, got, c.want)
		}
	}
}
