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

package pclt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRoundTrip(t *testing.T) {
	info := &Info{
		FontNumber:   0x80000001,
		Pitch:        600,
		XHeight:      512,
		Style:        0,
		TypeFamily:   4099,
		CapHeight:    1409,
		SymbolSet:    0,
		Typeface:     "Courier",
		StrokeWeight: 0,
		WidthType:    0,
		SerifStyle:   0x80 | 3,
	}
	data := info.Encode()
	if len(data) != tableLength {
		t.Fatalf("wrong length %d", len(data))
	}
	// xHeight lives at offset 10, capHeight at offset 16
	if data[10] != 0x02 || data[11] != 0x00 {
		t.Errorf("xHeight bytes % x", data[10:12])
	}
	if data[16] != 0x05 || data[17] != 0x81 {
		t.Errorf("capHeight bytes % x", data[16:18])
	}

	info2, err := Read(data)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(info, info2); d != "" {
		t.Errorf("round trip failed (-want +got):\n%s", d)
	}
}

func TestSerifStyle(t *testing.T) {
	cases := []struct {
		style uint8
		serif bool
	}{
		{0x00, true},
		{0x40, false},
		{0x41, false},
		{0x80, true},
		{0xC0, true},
	}
	for _, c := range cases {
		info := &Info{SerifStyle: c.style}
		if info.IsSerif() != c.serif {
			t.Errorf("0x%02x: got %t", c.style, info.IsSerif())
		}
	}
}

func TestMalformed(t *testing.T) {
	_, err := Read(make([]byte, 20))
	if err == nil {
		t.Error("short table accepted")
	}
	data := (&Info{}).Encode()
	data[1] = 2
	_, err = Read(data)
	if err == nil {
		t.Error("wrong version accepted")
	}
}
