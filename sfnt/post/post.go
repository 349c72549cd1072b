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

// Package post has code for reading and writing the "post" table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/post
package post

import (
	"bytes"
	"encoding/binary"
	"math"

	"golang.org/x/exp/slices"
	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/ttf/sfnt/fonterror"
	"seehuhn.de/go/ttf/sfnt/parser"
)

// Table format versions.
const (
	Format1 = 0x00010000
	Format2 = 0x00020000
	Format3 = 0x00030000
)

const postHeaderLength = 32

// Info contains information from the "post" table.
type Info struct {
	Format             uint32      // table version, as found in the file
	ItalicAngle        float64     // Italic angle in degrees
	UnderlinePosition  funit.Int16 // Underline position (negative)
	UnderlineThickness funit.Int16 // Underline thickness
	IsFixedPitch       bool

	// Names contains the glyph names, indexed by glyph ID.
	// This is nil if the table does not contain glyph names.
	Names []string
}

// Read decodes the "post" table.
// Unknown table versions are not an error, they give no glyph names.
func Read(data []byte) (*Info, error) {
	if len(data) < postHeaderLength {
		return nil, &fonterror.InvalidFontError{
			SubSystem: "sfnt/post",
			Reason:    "table too short",
		}
	}
	post := &postEnc{}
	_ = binary.Read(bytes.NewReader(data), binary.BigEndian, post)

	info := &Info{
		Format:             post.Version,
		ItalicAngle:        float64(post.ItalicAngle) / 65536,
		UnderlinePosition:  post.UnderlinePosition,
		UnderlineThickness: post.UnderlineThickness,
		IsFixedPitch:       post.IsFixedPitch != 0,
	}

	switch post.Version {
	case Format1:
		info.Names = slices.Clone(macRoman)

	case Format2:
		names, err := readNames(data)
		if err != nil {
			return nil, err
		}
		info.Names = names

	case Format3:
		// no glyph names

	default:
		tracer().Infof("unknown post table format 0x%08x, no glyph names", post.Version)
	}

	return info, nil
}

// readNames decodes the glyph names of a format 2 table.
// Indices below 258 refer to the standard Macintosh names,
// larger indices refer to the Pascal strings following the index array.
func readNames(data []byte) ([]string, error) {
	p := parser.New("post", bytes.NewReader(data))
	err := p.SeekPos(postHeaderLength)
	if err != nil {
		return nil, err
	}
	index, err := p.ReadUint16Slice()
	if err != nil {
		return nil, err
	}

	numCustom := 0
	for _, idx := range index {
		if k := int(idx) - len(macRoman) + 1; k > numCustom {
			numCustom = k
		}
	}
	custom := make([]string, 0, numCustom)
	for len(custom) < numCustom && p.Pos() < p.Size() {
		name, err := p.ReadPascalString()
		if err != nil {
			return nil, err
		}
		custom = append(custom, name)
	}

	names := make([]string, len(index))
	for i, idx := range index {
		if int(idx) < len(macRoman) {
			names[i] = macRoman[idx]
		} else if k := int(idx) - len(macRoman); k < len(custom) {
			names[i] = custom[k]
		}
	}
	return names, nil
}

// Encode encodes the "post" table.
// Tables without glyph names use format 3, the standard Macintosh glyph
// set uses format 1, and all other glyph lists use format 2.
func (info *Info) Encode() []byte {
	var version uint32
	if info.Names == nil {
		version = Format3
	} else if isMacRoman(info.Names) {
		version = Format1
	} else {
		version = Format2
	}

	header := &postEnc{
		Version:            version,
		ItalicAngle:        int32(math.Round(info.ItalicAngle * 65536)),
		UnderlinePosition:  info.UnderlinePosition,
		UnderlineThickness: info.UnderlineThickness,
	}
	if info.IsFixedPitch {
		header.IsFixedPitch = 1
	}
	buf := new(bytes.Buffer)
	_ = binary.Write(buf, binary.BigEndian, header)

	if version == Format2 {
		buf.Write(encodeNames(info.Names))
	}

	return buf.Bytes()
}

// encodeNames encodes the glyph name index and the string data of a
// format 2 table.  Names longer than 255 bytes are truncated.
func encodeNames(names []string) []byte {
	index := binary.BigEndian.AppendUint16(nil, uint16(len(names)))
	var stringData []byte
	custom := make(map[string]uint16)
	for _, name := range names {
		idx, isStandard := macRomanIndex[name]
		if !isStandard {
			name = name[:min(len(name), 255)]
			k, seen := custom[name]
			if !seen {
				k = uint16(len(macRoman) + len(custom))
				custom[name] = k
				stringData = append(stringData, byte(len(name)))
				stringData = append(stringData, name...)
			}
			idx = int(k)
		}
		index = binary.BigEndian.AppendUint16(index, uint16(idx))
	}
	return append(index, stringData...)
}

type postEnc struct {
	Version            uint32
	ItalicAngle        int32
	UnderlinePosition  funit.Int16
	UnderlineThickness funit.Int16
	IsFixedPitch       uint32
	MinMemType42       uint32
	MaxMemType42       uint32
	MinMemType1        uint32
	MaxMemType1        uint32
}
