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
	"encoding/binary"

	"golang.org/x/exp/slices"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

const nameRecordLen = 12

// Encode converts a list of records into a binary "name" table.
// Windows and Unicode strings are stored as UTF-16BE, Macintosh strings
// as Mac OS Roman.  Identical strings are stored only once.
func Encode(records []Record) []byte {
	recs := slices.Clone(records)
	slices.SortStableFunc(recs, compareRecords)

	var pool []byte
	seen := make(map[string]uint16)

	startOfStrings := 6 + len(recs)*nameRecordLen
	res := make([]byte, 0, startOfStrings)
	res = binary.BigEndian.AppendUint16(res, 0) // format
	res = binary.BigEndian.AppendUint16(res, uint16(len(recs)))
	res = binary.BigEndian.AppendUint16(res, uint16(startOfStrings))
	for _, r := range recs {
		val := encodeString(r.Value, r.PlatformID)
		offs, ok := seen[string(val)]
		if !ok {
			offs = uint16(len(pool))
			seen[string(val)] = offs
			pool = append(pool, val...)
		}
		for _, x := range []uint16{r.PlatformID, r.EncodingID, r.LanguageID, uint16(r.NameID), uint16(len(val)), offs} {
			res = binary.BigEndian.AppendUint16(res, x)
		}
	}
	return append(res, pool...)
}

// compareRecords orders name records by platform, encoding, language
// and name ID, as required for the "name" table.
func compareRecords(a, b Record) int {
	ka := [4]uint16{a.PlatformID, a.EncodingID, a.LanguageID, uint16(a.NameID)}
	kb := [4]uint16{b.PlatformID, b.EncodingID, b.LanguageID, uint16(b.NameID)}
	for i := range ka {
		if ka[i] != kb[i] {
			return int(ka[i]) - int(kb[i])
		}
	}
	return 0
}

// WindowsRecords returns records for the given names, using the Windows
// platform with Unicode BMP encoding and US English.
func WindowsRecords(names map[ID]string) []Record {
	res := make([]Record, 0, len(names))
	for id, val := range names {
		res = append(res, Record{
			PlatformID: 3,
			EncodingID: 1,
			LanguageID: langEnUS,
			NameID:     id,
			Value:      val,
		})
	}
	return res
}

func encodeString(s string, platformID uint16) []byte {
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder()
	if platformID == 1 {
		enc = charmap.Macintosh.NewEncoder()
	}
	res, err := enc.Bytes([]byte(s))
	if err != nil {
		return nil
	}
	return res
}
