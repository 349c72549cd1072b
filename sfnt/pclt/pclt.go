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

// Package pclt reads and writes the "PCLT" table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/pclt
package pclt

import (
	"bytes"
	"encoding/binary"

	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/ttf/sfnt/fonterror"
)

const tableLength = 54

// Info contains the fields of the "PCLT" table which are used for
// font metrics.
type Info struct {
	FontNumber   uint32
	Pitch        uint16
	XHeight      funit.Int16
	Style        uint16
	TypeFamily   uint16
	CapHeight    funit.Int16
	SymbolSet    uint16
	Typeface     string
	StrokeWeight int8
	WidthType    int8
	SerifStyle   uint8
}

// Read decodes a "PCLT" table.
func Read(data []byte) (*Info, error) {
	if len(data) < tableLength {
		return nil, &fonterror.InvalidFontError{
			SubSystem: "sfnt/pclt",
			Reason:    "table too short",
		}
	}
	enc := &binaryPCLT{}
	_ = binary.Read(bytes.NewReader(data), binary.BigEndian, enc)
	if enc.Version>>16 != 1 {
		return nil, &fonterror.NotSupportedError{
			SubSystem: "sfnt/pclt",
			Feature:   "PCLT table version",
		}
	}
	info := &Info{
		FontNumber:   enc.FontNumber,
		Pitch:        enc.Pitch,
		XHeight:      enc.XHeight,
		Style:        enc.Style,
		TypeFamily:   enc.TypeFamily,
		CapHeight:    enc.CapHeight,
		SymbolSet:    enc.SymbolSet,
		Typeface:     string(bytes.TrimRight(enc.Typeface[:], "\x00 ")),
		StrokeWeight: enc.StrokeWeight,
		WidthType:    enc.WidthType,
		SerifStyle:   enc.SerifStyle,
	}
	return info, nil
}

// IsSerif reports whether the serif style bits mark the font as having
// serifs.  The top two bits of SerifStyle are 1 for sans serif and
// 2 for serif fonts.
func (info *Info) IsSerif() bool {
	return (info.SerifStyle>>6)&3 != 1
}

// Encode converts the info to a "PCLT" table.
func (info *Info) Encode() []byte {
	enc := &binaryPCLT{
		Version:      0x00010000,
		FontNumber:   info.FontNumber,
		Pitch:        info.Pitch,
		XHeight:      info.XHeight,
		Style:        info.Style,
		TypeFamily:   info.TypeFamily,
		CapHeight:    info.CapHeight,
		SymbolSet:    info.SymbolSet,
		StrokeWeight: info.StrokeWeight,
		WidthType:    info.WidthType,
		SerifStyle:   info.SerifStyle,
	}
	copy(enc.Typeface[:], info.Typeface)
	buf := bytes.NewBuffer(make([]byte, 0, tableLength))
	_ = binary.Write(buf, binary.BigEndian, enc)
	return buf.Bytes()
}

type binaryPCLT struct {
	Version             uint32
	FontNumber          uint32
	Pitch               uint16
	XHeight             funit.Int16
	Style               uint16
	TypeFamily          uint16
	CapHeight           funit.Int16
	SymbolSet           uint16
	Typeface            [16]byte
	CharacterComplement [8]byte
	FileName            [6]byte
	StrokeWeight        int8
	WidthType           int8
	SerifStyle          uint8
	Reserved            uint8
}
