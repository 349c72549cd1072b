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

package header

import (
	"encoding/binary"
	"io"
	"math/bits"
	"strings"

	"golang.org/x/exp/slices"
)

// Write writes an sfnt file containing the given tables and returns the
// number of bytes written.
//
// Tables where the data is nil are omitted, use a zero-length slice to
// write an empty table.  The checkSumAdjustment field of the "head"
// table is updated in place.
func Write(w io.Writer, scalerType uint32, tables map[string][]byte) (int64, error) {
	names := writeOrder(tables)

	head := tables["head"]
	hasHead := len(head) >= 12
	if hasHead {
		binary.BigEndian.PutUint32(head[8:12], 0)
	}

	dir := make([]dirEntry, len(names))
	pos := uint32(12 + 16*len(names))
	for i, name := range names {
		body := tables[name]
		dir[i] = dirEntry{
			name:     name,
			checksum: Checksum(body),
			offset:   pos,
			length:   uint32(len(body)),
		}
		pos += uint32(pad4(len(body)))
	}
	directory := encodeDirectory(scalerType, dir)

	if hasHead {
		total := Checksum(directory)
		for _, e := range dir {
			total += e.checksum
		}
		binary.BigEndian.PutUint32(head[8:12], 0xB1B0AFBA-total)
	}

	cw := &countingWriter{w: w}
	cw.write(directory)
	var zeros [3]byte
	for _, name := range names {
		body := tables[name]
		cw.write(body)
		cw.write(zeros[:pad4(len(body))-len(body)])
	}
	return cw.n, cw.err
}

// Checksum computes the table checksum, treating the data as a sequence
// of big-endian uint32 values padded with zeros.
func Checksum(data []byte) uint32 {
	var sum uint32
	for len(data) >= 4 {
		sum += binary.BigEndian.Uint32(data)
		data = data[4:]
	}
	if len(data) > 0 {
		var last [4]byte
		copy(last[:], data)
		sum += binary.BigEndian.Uint32(last[:])
	}
	return sum
}

type dirEntry struct {
	name     string
	checksum uint32
	offset   uint32
	length   uint32
}

// encodeDirectory returns the offset subtable followed by the table
// records, sorted by tag.
func encodeDirectory(scalerType uint32, dir []dirEntry) []byte {
	numTables := len(dir)
	sel := 0
	if numTables > 0 {
		sel = bits.Len(uint(numTables)) - 1
	}
	searchRange := 16 << sel
	rangeShift := 0
	if 16*numTables > searchRange {
		rangeShift = 16*numTables - searchRange
	}

	buf := make([]byte, 12+16*numTables)
	binary.BigEndian.PutUint32(buf[0:], scalerType)
	binary.BigEndian.PutUint16(buf[4:], uint16(numTables))
	binary.BigEndian.PutUint16(buf[6:], uint16(searchRange))
	binary.BigEndian.PutUint16(buf[8:], uint16(sel))
	binary.BigEndian.PutUint16(buf[10:], uint16(rangeShift))

	sorted := slices.Clone(dir)
	slices.SortFunc(sorted, func(a, b dirEntry) int {
		return strings.Compare(a.name, b.name)
	})
	for i, e := range sorted {
		rec := buf[12+16*i:]
		copy(rec[0:4], e.name)
		binary.BigEndian.PutUint32(rec[4:], e.checksum)
		binary.BigEndian.PutUint32(rec[8:], e.offset)
		binary.BigEndian.PutUint32(rec[12:], e.length)
	}
	return buf
}

// writeOrder returns the names of the tables to write, in the order
// recommended for TrueType fonts.  Unknown tables come last, sorted by
// name.  Names which are not valid table tags are dropped.
func writeOrder(tables map[string][]byte) []string {
	names := make([]string, 0, len(tables))
	for name, data := range tables {
		if data != nil && isTag(name) {
			names = append(names, name)
		}
	}
	rank := func(name string) int {
		if i := slices.Index(recommendedOrder, name); i >= 0 {
			return i
		}
		return len(recommendedOrder)
	}
	slices.SortFunc(names, func(a, b string) int {
		if ra, rb := rank(a), rank(b); ra != rb {
			return ra - rb
		}
		return strings.Compare(a, b)
	})
	return names
}

// https://docs.microsoft.com/en-us/typography/opentype/spec/recom#optimized-table-ordering
var recommendedOrder = []string{
	"head", "hhea", "maxp", "OS/2", "hmtx", "LTSH", "VDMX", "hdmx", "cmap",
	"fpgm", "prep", "cvt ", "loca", "glyf", "kern", "name", "post", "gasp",
	"PCLT", "DSIG",
}

func isTag(name string) bool {
	if len(name) != 4 {
		return false
	}
	for i := 0; i < 4; i++ {
		if name[i] < 32 || name[i] > 126 {
			return false
		}
	}
	return true
}

func pad4(n int) int {
	return (n + 3) &^ 3
}

// countingWriter remembers the first write error and the number of bytes
// written.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (cw *countingWriter) write(p []byte) {
	if cw.err != nil || len(p) == 0 {
		return
	}
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	cw.err = err
}
