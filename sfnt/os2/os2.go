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

// Package os2 has code for reading and writing the "OS/2" table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/os2
package os2

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/ttf/sfnt/fonterror"
)

const (
	v0Length   = 68 // Apple version 0 tables end after usLastCharIndex
	v0MsLength = 78
	v2Length   = 96
)

// Info contains information from the "OS/2" table.
type Info struct {
	Version     uint16
	WeightClass uint16
	WidthClass  uint16
	FsType      uint16
	Selection   uint16

	AvgGlyphWidth int16

	TypoAscender  funit.Int16
	TypoDescender funit.Int16 // as a negative number
	TypoLineGap   funit.Int16
	WinAscent     funit.Int16
	WinDescent    funit.Int16 // as a positive number

	// XHeight and CapHeight are only present in version 2 and later.
	XHeight   funit.Int16
	CapHeight funit.Int16

	FamilyClass    int16
	Panose         [10]byte
	Vendor         string
	FirstCharIndex uint16
	LastCharIndex  uint16
}

// Permissions describes rights to embed and use a font.
type Permissions int

func (perm Permissions) String() string {
	switch perm {
	case PermInstall:
		return "can install"
	case PermEdit:
		return "can edit"
	case PermView:
		return "can view"
	case PermRestricted:
		return "restricted"
	default:
		return fmt.Sprintf("Permissions(%d)", perm)
	}
}

// The possible permission values.
const (
	PermInstall    Permissions = iota // bits 0-3 unset
	PermEdit                          // bit 3
	PermView                          // bit 2
	PermRestricted                    // bit 1
)

// Read decodes the "OS/2" table.
func Read(data []byte) (*Info, error) {
	if len(data) < v0Length {
		return nil, &fonterror.InvalidFontError{
			SubSystem: "sfnt/os2",
			Reason:    "table too short",
		}
	}
	r := bytes.NewReader(data)
	v0 := &v0Data{}
	_ = binary.Read(r, binary.BigEndian, v0)
	if v0.Version > 5 {
		return nil, &fonterror.NotSupportedError{
			SubSystem: "sfnt/os2",
			Feature:   fmt.Sprintf("table version %d", v0.Version),
		}
	}

	info := &Info{
		Version:        v0.Version,
		WeightClass:    v0.WeightClass,
		WidthClass:     v0.WidthClass,
		FsType:         v0.Type,
		Selection:      v0.Selection,
		AvgGlyphWidth:  v0.AvgCharWidth,
		FamilyClass:    v0.FamilyClass,
		Panose:         v0.Panose,
		Vendor:         string(v0.VendID[:]),
		FirstCharIndex: v0.FirstCharIndex,
		LastCharIndex:  v0.LastCharIndex,
	}

	if len(data) < v0MsLength {
		return info, nil
	}
	v0ms := &v0MsData{}
	_ = binary.Read(r, binary.BigEndian, v0ms)
	info.TypoAscender = v0ms.TypoAscender
	info.TypoDescender = v0ms.TypoDescender
	info.TypoLineGap = v0ms.TypoLineGap
	info.WinAscent = funit.Int16(v0ms.WinAscent)
	info.WinDescent = funit.Int16(v0ms.WinDescent)

	if len(data) < v0MsLength+8+4 {
		return info, nil
	}
	_, _ = r.Seek(8, 1) // ulCodePageRange1, ulCodePageRange2
	v2 := &v2Heights{}
	_ = binary.Read(r, binary.BigEndian, v2)
	info.XHeight = v2.XHeight
	info.CapHeight = v2.CapHeight

	return info, nil
}

// PermUse returns the embedding permissions from the fsType field.
func (info *Info) PermUse() Permissions {
	permBits := info.FsType
	if info.Version == 0 {
		permBits &= 0xF
	}
	switch {
	case permBits&8 != 0:
		return PermEdit
	case permBits&4 != 0:
		return PermView
	case permBits&2 != 0:
		return PermRestricted
	default:
		return PermInstall
	}
}

// IsEmbeddable returns false if the font uses restricted license
// embedding.
func (info *Info) IsEmbeddable() bool {
	return info.PermUse() != PermRestricted
}

// Encode converts the info to a version 4 "OS/2" table.
func (info *Info) Encode() []byte {
	vendor := [4]byte{' ', ' ', ' ', ' '}
	copy(vendor[:], info.Vendor)

	buf := &bytes.Buffer{}
	v0 := &v0Data{
		Version:        4,
		AvgCharWidth:   info.AvgGlyphWidth,
		WeightClass:    info.WeightClass,
		WidthClass:     info.WidthClass,
		Type:           info.FsType,
		FamilyClass:    info.FamilyClass,
		Panose:         info.Panose,
		VendID:         vendor,
		Selection:      info.Selection,
		FirstCharIndex: info.FirstCharIndex,
		LastCharIndex:  info.LastCharIndex,
	}
	_ = binary.Write(buf, binary.BigEndian, v0)

	v0ms := &v0MsData{
		TypoAscender:  info.TypoAscender,
		TypoDescender: info.TypoDescender,
		TypoLineGap:   info.TypoLineGap,
		WinAscent:     uint16(info.WinAscent),
		WinDescent:    uint16(info.WinDescent),
	}
	_ = binary.Write(buf, binary.BigEndian, v0ms)

	var codePageRange [8]byte
	buf.Write(codePageRange[:])

	v2 := &v2Heights{
		XHeight:   info.XHeight,
		CapHeight: info.CapHeight,
	}
	_ = binary.Write(buf, binary.BigEndian, v2)
	var tail [6]byte // usDefaultChar, usBreakChar, usMaxContext
	buf.Write(tail[:])

	return buf.Bytes()
}

type v0Data struct {
	Version            uint16
	AvgCharWidth       int16
	WeightClass        uint16
	WidthClass         uint16
	Type               uint16
	SubscriptXSize     int16
	SubscriptYSize     int16
	SubscriptXOffset   int16
	SubscriptYOffset   int16
	SuperscriptXSize   int16
	SuperscriptYSize   int16
	SuperscriptXOffset int16
	SuperscriptYOffset int16
	StrikeoutSize      int16
	StrikeoutPosition  int16
	FamilyClass        int16
	Panose             [10]byte
	UnicodeRange       [4]uint32
	VendID             [4]byte
	Selection          uint16
	FirstCharIndex     uint16
	LastCharIndex      uint16
}

type v0MsData struct {
	TypoAscender  funit.Int16
	TypoDescender funit.Int16
	TypoLineGap   funit.Int16
	WinAscent     uint16
	WinDescent    uint16 // positive
}

type v2Heights struct {
	XHeight   funit.Int16
	CapHeight funit.Int16
}
