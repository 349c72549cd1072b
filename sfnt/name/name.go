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

// Package name reads and writes the "name" table of sfnt fonts.
// https://docs.microsoft.com/en-us/typography/opentype/spec/name
package name

import (
	"bytes"
	"strings"

	"github.com/xdg-go/stringprep"
	"golang.org/x/exp/slices"

	"seehuhn.de/go/ttf/sfnt/fonterror"
	"seehuhn.de/go/ttf/sfnt/parser"
)

// ID identifies a string in the "name" table.
type ID uint16

// Name IDs which are used by this library.
const (
	Copyright         ID = 0
	Family            ID = 1
	Subfamily         ID = 2
	Full              ID = 4
	PostScript        ID = 6
	TypographicFamily ID = 16
)

// Windows language ID for US English.
const langEnUS = 0x0409

// Record is one decoded entry of the "name" table.
type Record struct {
	PlatformID uint16
	EncodingID uint16
	LanguageID uint16
	NameID     ID
	Value      string
}

// Info contains information from the "name" table.
type Info struct {
	Notice         string
	FamilyNames    []string
	Subfamily      string
	FullName       string
	PostScriptName string

	Records []Record
}

// Decode extracts information from the "name" table.
// Only Macintosh and Windows records with encoding IDs 0 or 1 are used.
// For most name IDs the first record wins; the full name prefers the
// Windows US English record.
func Decode(data []byte) (*Info, error) {
	if len(data) < 6 {
		return nil, errMalformedNames
	}
	version := uint16(data[0])<<8 | uint16(data[1])
	numRec := int(data[2])<<8 | int(data[3])
	storageOffset := int(data[4])<<8 | int(data[5])

	if version > 1 {
		return nil, errMalformedNames
	}

	recBase := 6
	endOfHeader := recBase + 12*numRec
	if endOfHeader > len(data) || storageOffset > len(data) {
		return nil, errMalformedNames
	}

	p := parser.New("name", bytes.NewReader(data))
	info := &Info{}
	for i := 0; i < numRec; i++ {
		pos := recBase + i*12
		platformID := uint16(data[pos])<<8 | uint16(data[pos+1])
		encodingID := uint16(data[pos+2])<<8 | uint16(data[pos+3])
		languageID := uint16(data[pos+4])<<8 | uint16(data[pos+5])
		nameID := ID(data[pos+6])<<8 | ID(data[pos+7])
		nameLen := int(data[pos+8])<<8 | int(data[pos+9])
		nameOffset := int(data[pos+10])<<8 | int(data[pos+11])

		if platformID != parser.PlatformMacintosh && platformID != parser.PlatformWindows {
			continue
		}
		if encodingID > 1 {
			continue
		}

		start := storageOffset + nameOffset
		if start+nameLen > len(data) {
			return nil, errMalformedNames
		}
		err := p.SeekPos(int64(start))
		if err != nil {
			return nil, err
		}
		val, err := p.ReadString(nameLen, platformID)
		if err != nil {
			return nil, err
		}

		info.Records = append(info.Records, Record{
			PlatformID: platformID,
			EncodingID: encodingID,
			LanguageID: languageID,
			NameID:     nameID,
			Value:      val,
		})

		switch nameID {
		case Copyright:
			if info.Notice == "" {
				info.Notice = val
			}
		case Family, TypographicFamily:
			if val != "" && !slices.Contains(info.FamilyNames, val) {
				info.FamilyNames = append(info.FamilyNames, val)
			}
		case Subfamily:
			if info.Subfamily == "" {
				info.Subfamily = val
			}
		case Full:
			if info.FullName == "" ||
				platformID == parser.PlatformWindows && languageID == langEnUS {
				info.FullName = val
			}
		case PostScript:
			if info.PostScriptName == "" {
				info.PostScriptName = val
			}
		}
	}
	slices.Sort(info.FamilyNames)

	return info, nil
}

// Matches reports whether the given name refers to this font.
// The full name and the PostScript name are compared after
// normalization.
func (info *Info) Matches(fontName string) bool {
	key := Normalize(fontName)
	if key == "" {
		return false
	}
	return key == Normalize(info.FullName) || key == Normalize(info.PostScriptName)
}

// Normalize maps a font name to a canonical form for lookups.
// The name is prepared with SASLprep, lower-cased and stripped of white
// space.
func Normalize(fontName string) string {
	prepped, err := stringprep.SASLprep.Prepare(fontName)
	if err != nil {
		prepped = fontName
	}
	return strings.ToLower(strings.Join(strings.Fields(prepped), ""))
}

var errMalformedNames = &fonterror.InvalidFontError{
	SubSystem: "sfnt/name",
	Reason:    "malformed name table",
}
