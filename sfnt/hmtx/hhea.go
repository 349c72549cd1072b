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

// Package hmtx reads and writes the "hhea" and "hmtx" tables.
// https://docs.microsoft.com/en-us/typography/opentype/spec/hhea
// https://docs.microsoft.com/en-us/typography/opentype/spec/hmtx
package hmtx

import (
	"bytes"
	"encoding/binary"

	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/ttf/sfnt/fonterror"
)

const hheaLength = 36

// Hhea contains the information from the "hhea" table.
type Hhea struct {
	Ascent              funit.Int16
	Descent             funit.Int16 // negative
	LineGap             funit.Int16
	AdvanceWidthMax     uint16
	MinLeftSideBearing  funit.Int16
	MinRightSideBearing funit.Int16
	XMaxExtent          funit.Int16
	CaretSlopeRise      int16
	CaretSlopeRun       int16
	CaretOffset         int16
	NumOfLongHorMetrics uint16
}

// DecodeHhea decodes the binary representation of a "hhea" table.
func DecodeHhea(data []byte) (*Hhea, error) {
	if len(data) < hheaLength {
		return nil, errMalformed("hhea table too short")
	}
	enc := &binaryHhea{}
	_ = binary.Read(bytes.NewReader(data), binary.BigEndian, enc)
	if enc.Version>>16 != 1 {
		return nil, &fonterror.NotSupportedError{
			SubSystem: "sfnt/hhea",
			Feature:   "hhea table version",
		}
	}
	if enc.MetricDataFormat != 0 {
		return nil, &fonterror.NotSupportedError{
			SubSystem: "sfnt/hhea",
			Feature:   "metric data format",
		}
	}
	return &Hhea{
		Ascent:              funit.Int16(enc.Ascent),
		Descent:             funit.Int16(enc.Descent),
		LineGap:             funit.Int16(enc.LineGap),
		AdvanceWidthMax:     enc.AdvanceWidthMax,
		MinLeftSideBearing:  funit.Int16(enc.MinLeftSideBearing),
		MinRightSideBearing: funit.Int16(enc.MinRightSideBearing),
		XMaxExtent:          funit.Int16(enc.XMaxExtent),
		CaretSlopeRise:      enc.CaretSlopeRise,
		CaretSlopeRun:       enc.CaretSlopeRun,
		CaretOffset:         enc.CaretOffset,
		NumOfLongHorMetrics: enc.NumOfLongHorMetrics,
	}, nil
}

// Encode returns the binary representation of the "hhea" table.
func (h *Hhea) Encode() []byte {
	enc := &binaryHhea{
		Version:             0x00010000,
		Ascent:              int16(h.Ascent),
		Descent:             int16(h.Descent),
		LineGap:             int16(h.LineGap),
		AdvanceWidthMax:     h.AdvanceWidthMax,
		MinLeftSideBearing:  int16(h.MinLeftSideBearing),
		MinRightSideBearing: int16(h.MinRightSideBearing),
		XMaxExtent:          int16(h.XMaxExtent),
		CaretSlopeRise:      h.CaretSlopeRise,
		CaretSlopeRun:       h.CaretSlopeRun,
		CaretOffset:         h.CaretOffset,
		NumOfLongHorMetrics: h.NumOfLongHorMetrics,
	}
	buf := bytes.NewBuffer(make([]byte, 0, hheaLength))
	_ = binary.Write(buf, binary.BigEndian, enc)
	return buf.Bytes()
}

type binaryHhea struct {
	Version             uint32
	Ascent              int16
	Descent             int16
	LineGap             int16
	AdvanceWidthMax     uint16
	MinLeftSideBearing  int16
	MinRightSideBearing int16
	XMaxExtent          int16
	CaretSlopeRise      int16
	CaretSlopeRun       int16
	CaretOffset         int16
	_                   [4]int16
	MetricDataFormat    int16
	NumOfLongHorMetrics uint16
}

func errMalformed(reason string) error {
	return &fonterror.InvalidFontError{
		SubSystem: "sfnt/hmtx",
		Reason:    reason,
	}
}
