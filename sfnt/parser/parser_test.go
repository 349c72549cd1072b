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

package parser

import (
	"bytes"
	"errors"
	"testing"
)

func TestReadIntegers(t *testing.T) {
	data := []byte{
		0xFF,
		0xFE,
		0x12, 0x34,
		0xFF, 0xFE,
		0x01, 0x02, 0x03, 0x04,
		0xFF, 0xFF, 0xFF, 0xFE,
	}
	p := New("test", bytes.NewReader(data))

	u8, err := p.ReadUint8()
	if err != nil || u8 != 0xFF {
		t.Fatalf("ReadUint8: %d %v", u8, err)
	}
	i8, err := p.ReadInt8()
	if err != nil || i8 != -2 {
		t.Fatalf("ReadInt8: %d %v", i8, err)
	}
	u16, err := p.ReadUint16()
	if err != nil || u16 != 0x1234 {
		t.Fatalf("ReadUint16: %x %v", u16, err)
	}
	i16, err := p.ReadInt16()
	if err != nil || i16 != -2 {
		t.Fatalf("ReadInt16: %d %v", i16, err)
	}
	u32, err := p.ReadUint32()
	if err != nil || u32 != 0x01020304 {
		t.Fatalf("ReadUint32: %x %v", u32, err)
	}
	i32, err := p.ReadInt32()
	if err != nil || i32 != -2 {
		t.Fatalf("ReadInt32: %d %v", i32, err)
	}
	if p.Pos() != int64(len(data)) {
		t.Errorf("wrong position %d", p.Pos())
	}
}

func TestTruncated(t *testing.T) {
	p := New("test", bytes.NewReader([]byte{1, 2, 3}))
	_, err := p.ReadUint16()
	if err != nil {
		t.Fatal(err)
	}
	_, err = p.ReadUint16()
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
	_, err = p.ReadUint32()
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
}

func TestSeek(t *testing.T) {
	data := make([]byte, 3000)
	for i := range data {
		data[i] = byte(i)
	}
	p := New("test", bytes.NewReader(data))

	for _, pos := range []int64{2000, 5, 1023, 2999, 0} {
		err := p.SeekPos(pos)
		if err != nil {
			t.Fatal(err)
		}
		c, err := p.ReadUint8()
		if err != nil {
			t.Fatal(err)
		}
		if c != byte(pos) {
			t.Errorf("at %d: got %d", pos, c)
		}
	}

	err := p.SeekPos(3000)
	if err != nil {
		t.Errorf("seek to end: %v", err)
	}
	err = p.SeekPos(3001)
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}

	err = p.SeekPos(2990)
	if err != nil {
		t.Fatal(err)
	}
	err = p.Discard(20)
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

func TestRead(t *testing.T) {
	data := make([]byte, 2500)
	for i := range data {
		data[i] = byte(i * 7)
	}
	p := New("test", bytes.NewReader(data))
	_ = p.Discard(10)
	buf := make([]byte, 2400)
	n, err := p.Read(buf)
	if err != nil || n != len(buf) {
		t.Fatalf("Read: %d %v", n, err)
	}
	if !bytes.Equal(buf, data[10:2410]) {
		t.Error("wrong data")
	}
}

func TestStrings(t *testing.T) {
	data := []byte{
		0, 'A', 0, 0xE9, // UTF-16BE "Aé"
		'A', 0x8E, // Mac Roman "Aé"
		3, 'a', 'b', 'c', // Pascal string
		'x', 'y', 0, // null-terminated
		'z', // unterminated
	}
	p := New("name", bytes.NewReader(data))

	s, err := p.ReadString(4, PlatformWindows)
	if err != nil || s != "Aé" {
		t.Errorf("windows string: %q %v", s, err)
	}
	s, err = p.ReadString(2, PlatformMacintosh)
	if err != nil || s != "Aé" {
		t.Errorf("mac string: %q %v", s, err)
	}
	s, err = p.ReadPascalString()
	if err != nil || s != "abc" {
		t.Errorf("pascal string: %q %v", s, err)
	}
	s, err = p.ReadNullTerminated()
	if err != nil || s != "xy" {
		t.Errorf("null-terminated string: %q %v", s, err)
	}
	_, err = p.ReadNullTerminated()
	if !errors.Is(err, ErrUnterminated) {
		t.Errorf("expected ErrUnterminated, got %v", err)
	}
}

func TestReadStringBounds(t *testing.T) {
	p := New("name", bytes.NewReader([]byte{0, 'A', 0, 'B'}))
	for _, n := range []int{-1, 5, 1 << 30} {
		_, err := p.ReadString(n, PlatformWindows)
		if !errors.Is(err, ErrTruncated) {
			t.Errorf("ReadString(%d): expected ErrTruncated, got %v", n, err)
		}
	}
	if p.Pos() != 0 {
		t.Errorf("position moved to %d", p.Pos())
	}
	s, err := p.ReadString(4, PlatformWindows)
	if err != nil || s != "AB" {
		t.Errorf("windows string: %q %v", s, err)
	}
}
