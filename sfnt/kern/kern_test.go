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

package kern

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/ttf/sfnt/fonterror"
)

func subtable(format, flags byte, pairs ...uint16) []byte {
	n := len(pairs) / 3
	length := 14 + 6*n
	res := []byte{
		0, 0,
		byte(length >> 8), byte(length),
		format, flags,
		byte(n >> 8), byte(n),
		0, 0, 0, 0, 0, 0,
	}
	for _, x := range pairs {
		res = append(res, byte(x>>8), byte(x))
	}
	return res
}

func table(subtables ...[]byte) []byte {
	res := []byte{0, 0, 0, byte(len(subtables))}
	for _, s := range subtables {
		res = append(res, s...)
	}
	return res
}

func TestRead(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ttf.tables")
	defer teardown()

	minus10 := uint16(0xFFF6)
	data := table(
		subtable(0, horizontal, 1, 2, minus10, 3, 4, 20),
		subtable(0, horizontal|minimum, 1, 2, 500),
		subtable(0, horizontal|crossStream, 1, 2, 600),
		subtable(2, horizontal),
		subtable(0, 0, 5, 6, 700), // vertical
		subtable(0, horizontal, 1, 2, 5, 7, 8, 1),
		subtable(0, horizontal|override, 3, 4, 30),
	)
	info, err := Read(data)
	if err != nil {
		t.Fatal(err)
	}
	want := Info{
		1: {2: -5},
		3: {4: 30},
		7: {8: 1},
	}
	if d := cmp.Diff(want, info); d != "" {
		t.Errorf("wrong pairs (-want +got):\n%s", d)
	}
	if info.Len() != 3 {
		t.Errorf("wrong number of pairs %d", info.Len())
	}
	if info.Lookup(1, 2) != -5 || info.Lookup(2, 1) != 0 {
		t.Error("wrong lookup result")
	}
}

func TestRoundTrip(t *testing.T) {
	info := Info{
		10:    {11: -80, 12: 40, 13: 0},
		2:     {3: 7},
		65535: {1: -1},
	}
	data := info.Encode()
	info2, err := Read(data)
	if err != nil {
		t.Fatal(err)
	}
	delete(info[10], 13)
	if d := cmp.Diff(info, info2); d != "" {
		t.Errorf("round trip failed (-want +got):\n%s", d)
	}

	// pairs must be sorted for binary search
	prev := -1
	for i := 18; i < len(data); i += 6 {
		key := int(data[i])<<24 | int(data[i+1])<<16 | int(data[i+2])<<8 | int(data[i+3])
		if key <= prev {
			t.Errorf("pairs not sorted at offset %d", i)
		}
		prev = key
	}
}

func TestEmpty(t *testing.T) {
	data := Info{}.Encode()
	info, err := Read(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(info) != 0 {
		t.Errorf("unexpected pairs %v", info)
	}
}

func TestMalformed(t *testing.T) {
	_, err := Read([]byte{0, 1, 0, 0, 0, 0, 0, 0})
	if !fonterror.IsUnsupported(err) {
		t.Errorf("Apple kern table: got %v", err)
	}

	data := table(subtable(0, horizontal, 1, 2, 3, 4, 5, 6))
	info, err := Read(data[:len(data)-3])
	if err != nil || len(info) != 0 {
		t.Errorf("truncated subtable: got %v, %v", info, err)
	}

	_, err = Read([]byte{0, 0})
	if err == nil {
		t.Error("missing table count accepted")
	}
}

func TestBadSubtables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ttf.tables")
	defer teardown()

	minus50 := uint16(0xFFCE)
	valid := subtable(0, horizontal, 1, 2, minus50)

	// header claims 100 pairs, but the data ends after the header
	truncated := subtable(0, horizontal)
	truncated[7] = 100
	info, err := Read(table(valid, truncated))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(Info{1: {2: -50}}, info); d != "" {
		t.Errorf("truncated subtable (-want +got):\n%s", d)
	}

	// more pairs than the subtable length allows
	tooMany := subtable(0, horizontal, 5, 6, 70)
	tooMany[7] = 3
	info, err = Read(table(valid, tooMany, subtable(0, horizontal, 3, 4, 10)))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(Info{1: {2: -50}, 3: {4: 10}}, info); d != "" {
		t.Errorf("oversized subtable (-want +got):\n%s", d)
	}

	// a bad length ends the subtable list
	badLength := subtable(0, horizontal, 7, 8, 1)
	badLength[3] = 2
	info, err = Read(table(valid, badLength))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(Info{1: {2: -50}}, info); d != "" {
		t.Errorf("bad length (-want +got):\n%s", d)
	}
}

func TestLargeSubtable(t *testing.T) {
	info := Info{}
	for i := 0; i < 11000; i++ {
		info.Set(glyph.ID(i/100+1), glyph.ID(i%100+1), -1)
	}
	data := info.Encode()
	if len(data) <= 4+0xFFFF {
		t.Fatalf("test data too short: %d bytes", len(data))
	}
	info2, err := Read(data)
	if err != nil {
		t.Fatal(err)
	}
	if info2.Len() != 11000 {
		t.Errorf("wrong number of pairs %d", info2.Len())
	}
}

func TestWinAnsi(t *testing.T) {
	info := Info{
		1: {2: -50, 3: 20, 4: 0},
		5: {2: 10},
	}
	codes := map[glyph.ID][]rune{
		1: {'A', 0x0391}, // Greek Alpha has no WinAnsi code
		2: {'V', 'W'},
		3: {0x20AC}, // Euro sign, 0x80 in WinAnsi
		4: {'X'},
	}
	res := info.WinAnsi(func(gid glyph.ID) []rune { return codes[gid] })
	want := map[byte]map[byte]funit.Int16{
		'A': {'V': -50, 'W': -50, 0x80: 20},
	}
	if d := cmp.Diff(want, res); d != "" {
		t.Errorf("wrong WinAnsi table (-want +got):\n%s", d)
	}
}
