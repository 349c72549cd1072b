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

// Package cmap reads and writes "cmap" tables.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap
package cmap

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/exp/slices"

	"seehuhn.de/go/ttf/sfnt/fonterror"
)

func tracer() tracing.Trace {
	return tracing.Select("ttf.tables")
}

// Key selects a subtable of a cmap table.
type Key struct {
	PlatformID uint16 // Platform ID.
	EncodingID uint16 // Platform-specific encoding ID.
	Language   uint16
}

// The subtables which can be used for character lookup.
var (
	WindowsUnicode = Key{PlatformID: 3, EncodingID: 1}
	WindowsSymbol  = Key{PlatformID: 3, EncodingID: 0}
)

// Table contains all subtables from a cmap table.
type Table map[Key][]byte

// UnsupportedFormatError is returned if the selected subtable does not
// use format 4.
type UnsupportedFormatError struct {
	Key
	Format uint16
}

func (err *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("cmap: unsupported format %d for subtable (%d,%d)",
		err.Format, err.PlatformID, err.EncodingID)
}

// Decode returns all subtables of the given "cmap" table.
// The returned subtables are at least 10 bytes long and start with a
// known format number (0, 2, 4, 6, 8, 10, 12, 13 or 14).
// Subtables must either coincide or be disjoint.
func Decode(data []byte) (Table, error) {
	if len(data) < 4 || uint64(len(data)) > math.MaxUint32 {
		return nil, errMalformedTable
	}
	if version := binary.BigEndian.Uint16(data); version != 0 {
		return nil, &fonterror.NotSupportedError{
			SubSystem: "sfnt/cmap",
			Feature:   fmt.Sprintf("table version %d", version),
		}
	}
	numTables := int(binary.BigEndian.Uint16(data[2:]))
	headerLen := uint32(4 + 8*numTables)
	if uint32(len(data)) < headerLen {
		return nil, errMalformedTable
	}

	var used []span
	res := make(Table)
	for i := 0; i < numTables; i++ {
		rec := data[4+8*i:]
		key := Key{
			PlatformID: binary.BigEndian.Uint16(rec),
			EncodingID: binary.BigEndian.Uint16(rec[2:]),
		}
		if key.PlatformID > 4 {
			return nil, errMalformedTable
		}
		start := binary.BigEndian.Uint32(rec[4:])
		if start < headerLen {
			return nil, errMalformedTable
		}

		length, language, err := subtableHeader(data, start)
		if err != nil {
			return nil, err
		}
		if key.PlatformID == 1 {
			key.Language = language
		}

		used, err = addSpan(used, span{start, start + length})
		if err != nil {
			return nil, err
		}
		res[key] = data[start : start+length]
	}
	return res, nil
}

// subtableHeader returns the length and language of the subtable starting
// at offset start.
func subtableHeader(data []byte, start uint32) (length uint32, language uint16, err error) {
	const minLength = 10 // an empty format 6 subtable

	end := uint32(len(data))
	if end < minLength || start > end-minLength {
		return 0, 0, errMalformedTable
	}
	sub := data[start:]

	minLen := uint32(minLength)
	switch format := binary.BigEndian.Uint16(sub); format {
	case 0, 2, 4, 6:
		length = uint32(binary.BigEndian.Uint16(sub[2:]))
		language = binary.BigEndian.Uint16(sub[4:])
	case 8, 10, 12, 13:
		minLen = 12
		if start > end-minLen {
			return 0, 0, errMalformedTable
		}
		length = binary.BigEndian.Uint32(sub[4:])
		language = binary.BigEndian.Uint16(sub[10:])
	case 14:
		length = binary.BigEndian.Uint32(sub[2:])
	default:
		return 0, 0, errMalformedTable
	}
	if length < minLen || length > end-start {
		return 0, 0, errMalformedTable
	}
	return length, language, nil
}

// A span is a byte range [start, end) inside the cmap table.
type span struct {
	start, end uint32
}

// addSpan inserts s into the sorted list of spans.  Spans which coincide
// with an existing span are accepted, partial overlaps are an error.
func addSpan(spans []span, s span) ([]span, error) {
	idx, found := slices.BinarySearchFunc(spans, s.start, func(a span, start uint32) int {
		return cmpUint32(a.start, start)
	})
	if found {
		if spans[idx].end != s.end {
			return nil, errMalformedTable
		}
		return spans, nil
	}
	if idx > 0 && s.start < spans[idx-1].end ||
		idx < len(spans) && s.end > spans[idx].start {
		return nil, errMalformedTable
	}
	return slices.Insert(spans, idx, s), nil
}

func cmpUint32(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Encode converts the cmap table into binary form.
// Identical subtables are stored only once.
func (ss Table) Encode() []byte {
	keys := make([]Key, 0, len(ss))
	for key := range ss {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b Key) int {
		if a.PlatformID != b.PlatformID {
			return int(a.PlatformID) - int(b.PlatformID)
		}
		if a.EncodingID != b.EncodingID {
			return int(a.EncodingID) - int(b.EncodingID)
		}
		return int(a.Language) - int(b.Language)
	})

	headerLen := 4 + 8*len(keys)
	res := make([]byte, headerLen)
	binary.BigEndian.PutUint16(res[2:], uint16(len(keys)))

	offsets := make(map[string]uint32)
	for i, key := range keys {
		data := ss[key]
		offs, seen := offsets[string(data)]
		if !seen {
			offs = uint32(len(res))
			offsets[string(data)] = offs
			res = append(res, data...)
		}

		rec := res[4+8*i:]
		binary.BigEndian.PutUint16(rec, key.PlatformID)
		binary.BigEndian.PutUint16(rec[2:], key.EncodingID)
		binary.BigEndian.PutUint32(rec[4:], offs)
	}
	return res
}

// Get decodes the given format 4 subtable.
func (ss Table) Get(key Key) (Format4, error) {
	data, ok := ss[key]
	if !ok {
		return nil, errNoSubtable
	}
	format := binary.BigEndian.Uint16(data)
	if format != 4 {
		return nil, &UnsupportedFormatError{Key: key, Format: format}
	}
	return decodeFormat4(data)
}

// Select decodes the subtable used for character lookup.
// The Windows Unicode BMP subtable is used if present.  Otherwise the
// Windows symbol subtable is used, and symbol is set to true.
// In symbol fonts the glyphs mapped from U+F020 to U+F0FF are also made
// available at U+0020 to U+00FF.
func (ss Table) Select() (cmap Format4, symbol bool, err error) {
	key := WindowsUnicode
	if _, ok := ss[key]; !ok {
		key = WindowsSymbol
		symbol = true
	}
	if _, ok := ss[key]; !ok {
		return nil, false, &fonterror.NotSupportedError{
			SubSystem: "sfnt/cmap",
			Feature:   "fonts without a Windows Unicode or symbol subtable",
		}
	}
	tracer().Debugf("using cmap subtable (%d,%d)", key.PlatformID, key.EncodingID)

	cmap, err = ss.Get(key)
	if err != nil {
		return nil, false, err
	}
	if symbol {
		for c := uint16(0xF020); c <= 0xF0FF; c++ {
			gid, ok := cmap[c]
			if !ok {
				continue
			}
			if _, taken := cmap[c-0xF000]; !taken {
				cmap[c-0xF000] = gid
			}
		}
	}
	return cmap, symbol, nil
}

var (
	errMalformedTable = &fonterror.InvalidFontError{
		SubSystem: "sfnt/cmap",
		Reason:    "malformed table",
	}
	errMalformedSubtable = &fonterror.InvalidFontError{
		SubSystem: "sfnt/cmap",
		Reason:    "malformed subtable",
	}
	errNoSubtable = errors.New("cmap: no such subtable")
)
