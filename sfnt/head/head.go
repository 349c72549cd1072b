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

// Package head reads and writes the "head" table of sfnt fonts.
// https://docs.microsoft.com/en-us/typography/opentype/spec/head
package head

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/ttf/sfnt/fonterror"
)

const headLength = 54

// ErrInvalidUnitsPerEm is returned for fonts with a zero unitsPerEm value.
var ErrInvalidUnitsPerEm = errors.New("sfnt/head: unitsPerEm must be positive")

// Info represents the information in the "head" table.
type Info struct {
	FontRevision Version
	Flags        uint16
	UnitsPerEm   uint16 // font design units per em square
	Created      time.Time
	Modified     time.Time
	FontBBox     funit.Rect16
	MacStyle     uint16

	LowestRecPPEM     uint16 // smallest readable size in pixels
	FontDirectionHint int16
	HasLongOffsets    bool // 'loca' table uses 32 bit offsets
	GlyphDataFormat   int16
}

// Read decodes the binary representation of the head table.
func Read(data []byte) (*Info, error) {
	if len(data) < headLength {
		return nil, &fonterror.InvalidFontError{
			SubSystem: "sfnt/head",
			Reason:    "table too short",
		}
	}
	enc := &binaryHead{}
	_ = binary.Read(bytes.NewReader(data), binary.BigEndian, enc)

	if enc.Version>>16 != 1 {
		return nil, &fonterror.NotSupportedError{
			SubSystem: "sfnt/head",
			Feature:   fmt.Sprintf("table version 0x%08x", enc.Version),
		}
	}
	if enc.MagicNumber != 0x5F0F3CF5 {
		return nil, &fonterror.InvalidFontError{
			SubSystem: "sfnt/head",
			Reason:    fmt.Sprintf("invalid magic number %08x", enc.MagicNumber),
		}
	}
	if enc.UnitsPerEm == 0 {
		return nil, ErrInvalidUnitsPerEm
	}

	info := &Info{
		FontRevision: Version(enc.FontRevision),
		Flags:        enc.Flags,
		UnitsPerEm:   enc.UnitsPerEm,
		Created:      decodeTime(enc.Created),
		Modified:     decodeTime(enc.Modified),
		FontBBox: funit.Rect16{
			LLx: funit.Int16(enc.XMin),
			LLy: funit.Int16(enc.YMin),
			URx: funit.Int16(enc.XMax),
			URy: funit.Int16(enc.YMax),
		},
		MacStyle:          enc.MacStyle,
		LowestRecPPEM:     enc.LowestRecPPEM,
		FontDirectionHint: enc.FontDirectionHint,
		HasLongOffsets:    enc.IndexToLocFormat != 0,
		GlyphDataFormat:   enc.GlyphDataFormat,
	}
	return info, nil
}

// IsBold returns true if the bold bit in macStyle is set.
func (info *Info) IsBold() bool {
	return info.MacStyle&(1<<0) != 0
}

// IsItalic returns true if the italic bit in macStyle is set.
func (info *Info) IsItalic() bool {
	return info.MacStyle&(1<<1) != 0
}

// Encode returns the binary representation of the head table.
// The checksum adjustment is left as zero, it is filled in when the
// font file is written.
func (info *Info) Encode() []byte {
	enc := &binaryHead{
		Version:           0x00010000,
		FontRevision:      uint32(info.FontRevision),
		MagicNumber:       0x5F0F3CF5,
		Flags:             info.Flags,
		UnitsPerEm:        info.UnitsPerEm,
		Created:           encodeTime(info.Created),
		Modified:          encodeTime(info.Modified),
		XMin:              int16(info.FontBBox.LLx),
		YMin:              int16(info.FontBBox.LLy),
		XMax:              int16(info.FontBBox.URx),
		YMax:              int16(info.FontBBox.URy),
		MacStyle:          info.MacStyle,
		LowestRecPPEM:     info.LowestRecPPEM,
		FontDirectionHint: info.FontDirectionHint,
		GlyphDataFormat:   info.GlyphDataFormat,
	}
	if info.HasLongOffsets {
		enc.IndexToLocFormat = 1
	}

	buf := bytes.NewBuffer(make([]byte, 0, headLength))
	_ = binary.Write(buf, binary.BigEndian, enc)
	return buf.Bytes()
}

// ChecksumAdjustment extracts the checkSumAdjustment field from the
// binary representation of a head table.
func ChecksumAdjustment(data []byte) uint32 {
	if len(data) < 12 {
		return 0
	}
	return binary.BigEndian.Uint32(data[8:12])
}

type binaryHead struct {
	Version            uint32
	FontRevision       uint32
	CheckSumAdjustment uint32
	MagicNumber        uint32
	Flags              uint16
	UnitsPerEm         uint16
	Created            int64
	Modified           int64

	XMin int16
	YMin int16
	XMax int16
	YMax int16

	MacStyle uint16

	LowestRecPPEM     uint16
	FontDirectionHint int16

	IndexToLocFormat int16
	GlyphDataFormat  int16
}

// Version represents the font revision in 16.16 fixed point format.
type Version uint32

func (v Version) String() string {
	return fmt.Sprintf("%.03f", float32(v)/65536)
}
