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

// Package maxp reads and writes "maxp" tables.
// https://docs.microsoft.com/en-us/typography/opentype/spec/maxp
package maxp

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"seehuhn.de/go/ttf/sfnt/fonterror"
)

// Info contains information from the "maxp" table.
type Info struct {
	// NumGlyphs is the number of glyphs in the font, in the range 1, ..., 65535.
	NumGlyphs int

	// TTF contains the limits used by TrueType fonts.
	// This is nil for version 0.5 tables, as used by CFF-based fonts.
	TTF *TTFInfo
}

// TTFInfo contains TrueType-specific information from the "maxp" table.
type TTFInfo struct {
	MaxPoints             uint16
	MaxContours           uint16
	MaxCompositePoints    uint16
	MaxCompositeContours  uint16
	MaxZones              uint16
	MaxTwilightPoints     uint16
	MaxStorage            uint16
	MaxFunctionDefs       uint16
	MaxInstructionDefs    uint16
	MaxStackElements      uint16
	MaxSizeOfInstructions uint16
	MaxComponentElements  uint16
	MaxComponentDepth     uint16
}

const (
	version05 = 0x00005000 // CFF outlines, only numGlyphs
	version10 = 0x00010000 // TrueType outlines
)

// Read decodes the "maxp" table.
func Read(data []byte) (*Info, error) {
	if len(data) < 6 {
		return nil, errMalformed("table too short")
	}

	version := binary.BigEndian.Uint32(data)
	if version != version05 && version != version10 {
		return nil, &fonterror.NotSupportedError{
			SubSystem: "sfnt/maxp",
			Feature:   fmt.Sprintf("version 0x%08x", version),
		}
	}

	info := &Info{
		NumGlyphs: int(binary.BigEndian.Uint16(data[4:])),
	}
	if info.NumGlyphs == 0 {
		return nil, errMalformed("numGlyphs is zero")
	}
	if version == version05 {
		return info, nil
	}

	ttf := &TTFInfo{}
	err := binary.Read(bytes.NewReader(data[6:]), binary.BigEndian, ttf)
	if err != nil {
		return nil, errMalformed("table too short")
	}
	info.TTF = ttf
	return info, nil
}

// Encode encodes the "maxp" table.  A version 0.5 table is written if
// info.TTF is nil.
func (info *Info) Encode() []byte {
	if info.NumGlyphs < 1 || info.NumGlyphs > 0xFFFF {
		panic("sfnt/maxp: numGlyphs out of range")
	}

	buf := &bytes.Buffer{}
	version := uint32(version10)
	if info.TTF == nil {
		version = version05
	}
	_ = binary.Write(buf, binary.BigEndian, version)
	_ = binary.Write(buf, binary.BigEndian, uint16(info.NumGlyphs))
	if info.TTF != nil {
		_ = binary.Write(buf, binary.BigEndian, info.TTF)
	}
	return buf.Bytes()
}

func errMalformed(reason string) error {
	return &fonterror.InvalidFontError{
		SubSystem: "sfnt/maxp",
		Reason:    reason,
	}
}
