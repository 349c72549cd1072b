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

package hmtx

import (
	"seehuhn.de/go/postscript/funit"
)

// Metrics contains the advance widths and left side bearings from the
// "hmtx" table.
type Metrics struct {
	Width []uint16
	LSB   []funit.Int16
}

// DecodeHmtx decodes the "hmtx" table.
//
// The table holds numHMetrics (advance width, lsb) pairs followed by
// left side bearings only.  Glyphs after the last pair inherit the last
// advance width.  The returned slices have max(numGlyphs, numHMetrics)
// entries, to tolerate fonts where the metrics count exceeds the glyph
// count.  Missing trailing side bearings are set to zero.
func DecodeHmtx(data []byte, numHMetrics, numGlyphs int) (*Metrics, error) {
	if numHMetrics == 0 && numGlyphs > 0 {
		return nil, errMalformed("no horizontal metrics")
	}
	if len(data) < 4*numHMetrics {
		return nil, errMalformed("hmtx table too short")
	}

	n := max(numGlyphs, numHMetrics)
	m := &Metrics{
		Width: make([]uint16, n),
		LSB:   make([]funit.Int16, n),
	}

	pos := 0
	var lastWidth uint16
	for i := 0; i < n; i++ {
		if i < numHMetrics {
			lastWidth = uint16(data[pos])<<8 | uint16(data[pos+1])
			pos += 2
		}
		m.Width[i] = lastWidth
		if pos+2 <= len(data) {
			m.LSB[i] = funit.Int16(int16(data[pos])<<8 | int16(data[pos+1]))
			pos += 2
		}
	}
	return m, nil
}

// Encode returns the binary "hmtx" table, together with the number of
// long horizontal metrics used.  Trailing runs of equal advance widths
// are stored once.
func (m *Metrics) Encode() ([]byte, uint16) {
	numGlyphs := len(m.Width)
	numLong := numGlyphs
	for numLong > 1 && m.Width[numLong-1] == m.Width[numLong-2] {
		numLong--
	}

	res := make([]byte, 0, 4*numLong+2*(numGlyphs-numLong))
	for i := 0; i < numGlyphs; i++ {
		if i < numLong {
			res = append(res, byte(m.Width[i]>>8), byte(m.Width[i]))
		}
		var lsb funit.Int16
		if i < len(m.LSB) {
			lsb = m.LSB[i]
		}
		res = append(res, byte(uint16(lsb)>>8), byte(lsb))
	}
	return res, uint16(numLong)
}
