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

package glyf

import (
	"encoding/binary"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/ttf/sfnt/fonterror"
)

// Glyph represents a single glyph in a TrueType font.
type Glyph struct {
	funit.Rect16
	Data interface{} // either SimpleGlyph or CompositeGlyph
}

// CompositeGlyph is a composite glyph.
type CompositeGlyph struct {
	Components   []GlyphComponent
	Instructions []byte
}

// GlyphComponent is a single component of a composite glyph.
type GlyphComponent struct {
	Flags      uint16
	GlyphIndex glyph.ID
	Args       []byte
}

// Flags for composite glyph components.
const (
	FlagArg1And2AreWords   = 0x0001
	FlagArgsAreXYValues    = 0x0002
	FlagRoundXYToGrid      = 0x0004
	FlagWeHaveAScale       = 0x0008
	FlagMoreComponents     = 0x0020
	FlagWeHaveAnXAndYScale = 0x0040
	FlagWeHaveATwoByTwo    = 0x0080
	FlagWeHaveInstructions = 0x0100
	FlagUseMyMetrics       = 0x0200
)

// decodeGlyph decodes a single glyph.  Empty data gives a nil glyph.
// The returned glyph retains sub-slices of data.
func decodeGlyph(data []byte) (*Glyph, error) {
	if len(data) == 0 {
		return nil, nil
	} else if len(data) < glyphHeaderLen {
		return nil, &fonterror.InvalidFontError{
			SubSystem: "sfnt/glyf",
			Reason:    "incomplete glyph header",
		}
	}

	g := &Glyph{
		Rect16: funit.Rect16{
			LLx: funit.Int16(binary.BigEndian.Uint16(data[2:])),
			LLy: funit.Int16(binary.BigEndian.Uint16(data[4:])),
			URx: funit.Int16(binary.BigEndian.Uint16(data[6:])),
			URy: funit.Int16(binary.BigEndian.Uint16(data[8:])),
		},
	}

	numContours := int16(binary.BigEndian.Uint16(data))
	body := data[glyphHeaderLen:]
	if numContours >= 0 {
		simple := SimpleGlyph{NumContours: numContours, Tail: body}
		if err := simple.removePadding(); err != nil {
			return nil, err
		}
		g.Data = simple
	} else {
		comp, err := decodeGlyphComposite(body)
		if err != nil {
			return nil, err
		}
		g.Data = *comp
	}
	return g, nil
}

func decodeGlyphComposite(data []byte) (*CompositeGlyph, error) {
	res := &CompositeGlyph{}
	hasInstructions := false
	for more := true; more; {
		if len(data) < 4 {
			return nil, errIncompleteGlyph
		}
		flags := binary.BigEndian.Uint16(data)
		comp := GlyphComponent{
			Flags:      flags,
			GlyphIndex: glyph.ID(binary.BigEndian.Uint16(data[2:])),
		}
		data = data[4:]

		n := argsLen(flags)
		if len(data) < n {
			return nil, errIncompleteGlyph
		}
		comp.Args = data[:n]
		data = data[n:]
		res.Components = append(res.Components, comp)

		hasInstructions = hasInstructions || flags&FlagWeHaveInstructions != 0
		more = flags&FlagMoreComponents != 0
	}

	if hasInstructions && len(data) >= 2 {
		n := int(binary.BigEndian.Uint16(data))
		res.Instructions = data[2:min(2+n, len(data))]
	}
	return res, nil
}

// argsLen returns the number of bytes used for the arguments and the
// scale of a component.
func argsLen(flags uint16) int {
	n := 2
	if flags&FlagArg1And2AreWords != 0 {
		n = 4
	}
	switch {
	case flags&FlagWeHaveAScale != 0:
		n += 2
	case flags&FlagWeHaveAnXAndYScale != 0:
		n += 4
	case flags&FlagWeHaveATwoByTwo != 0:
		n += 8
	}
	return n
}

// Transform returns the transformation matrix which maps the component
// glyph into the coordinate system of the composite glyph.
// If the component is positioned by matching points, the translation
// part of the matrix is zero.
func (comp *GlyphComponent) Transform() matrix.Matrix {
	args := comp.Args
	xyValues := comp.Flags&FlagArgsAreXYValues != 0

	var e, f float64
	if comp.Flags&FlagArg1And2AreWords != 0 {
		if xyValues {
			e = float64(int16(binary.BigEndian.Uint16(args)))
			f = float64(int16(binary.BigEndian.Uint16(args[2:])))
		}
		args = args[4:]
	} else {
		if xyValues {
			e = float64(int8(args[0]))
			f = float64(int8(args[1]))
		}
		args = args[2:]
	}

	// scale values are stored in F2Dot14 format
	f2dot14 := func(i int) float64 {
		return float64(int16(binary.BigEndian.Uint16(args[2*i:]))) / (1 << 14)
	}
	switch {
	case comp.Flags&FlagWeHaveAScale != 0:
		s := f2dot14(0)
		return matrix.Matrix{s, 0, 0, s, e, f}
	case comp.Flags&FlagWeHaveAnXAndYScale != 0:
		return matrix.Matrix{f2dot14(0), 0, 0, f2dot14(1), e, f}
	case comp.Flags&FlagWeHaveATwoByTwo != 0:
		return matrix.Matrix{f2dot14(0), f2dot14(1), f2dot14(2), f2dot14(3), e, f}
	default:
		return matrix.Matrix{1, 0, 0, 1, e, f}
	}
}

// IsComposite reports whether the glyph is made up of other glyphs.
func (g *Glyph) IsComposite() bool {
	if g == nil {
		return false
	}
	_, ok := g.Data.(CompositeGlyph)
	return ok
}

func (g *Glyph) encodeLen() int {
	if g == nil {
		return 0
	}

	total := glyphHeaderLen
	switch d := g.Data.(type) {
	case SimpleGlyph:
		total += len(d.Tail)
	case CompositeGlyph:
		for _, comp := range d.Components {
			total += 4 + len(comp.Args)
		}
		if d.Instructions != nil {
			total += 2 + len(d.Instructions)
		}
	default:
		panic("unexpected glyph type")
	}
	return (total + glyfAlign - 1) / glyfAlign * glyfAlign
}

func (g *Glyph) append(buf []byte) []byte {
	if g == nil {
		return buf
	}
	start := len(buf)

	var numContours int16
	switch d := g.Data.(type) {
	case SimpleGlyph:
		numContours = d.NumContours
	case CompositeGlyph:
		numContours = -1
	default:
		panic("unexpected glyph type")
	}
	for _, x := range []int16{numContours, int16(g.LLx), int16(g.LLy), int16(g.URx), int16(g.URy)} {
		buf = binary.BigEndian.AppendUint16(buf, uint16(x))
	}

	switch d := g.Data.(type) {
	case SimpleGlyph:
		buf = append(buf, d.Tail...)
	case CompositeGlyph:
		last := len(d.Components) - 1
		for i, comp := range d.Components {
			flags := comp.Flags &^ FlagMoreComponents
			if i < last {
				flags |= FlagMoreComponents
			}
			buf = binary.BigEndian.AppendUint16(buf, flags)
			buf = binary.BigEndian.AppendUint16(buf, uint16(comp.GlyphIndex))
			buf = append(buf, comp.Args...)
		}
		if d.Instructions != nil {
			buf = binary.BigEndian.AppendUint16(buf, uint16(len(d.Instructions)))
			buf = append(buf, d.Instructions...)
		}
	}

	for (len(buf)-start)%glyfAlign != 0 {
		buf = append(buf, 0)
	}
	return buf
}

// Components returns the components of a composite glyph, or nil if the glyph
// is simple.
func (g *Glyph) Components() []glyph.ID {
	if g == nil {
		return nil
	}
	switch d := g.Data.(type) {
	case SimpleGlyph:
		return nil
	case CompositeGlyph:
		res := make([]glyph.ID, len(d.Components))
		for i, comp := range d.Components {
			res[i] = comp.GlyphIndex
		}
		return res
	default:
		panic("unexpected glyph type")
	}
}

// FixComponents changes the glyph component IDs of a composite glyph.
// The original glyph is not modified.
func (g *Glyph) FixComponents(newGid map[glyph.ID]glyph.ID) *Glyph {
	if g == nil {
		return nil
	}
	switch d := g.Data.(type) {
	case SimpleGlyph:
		return g
	case CompositeGlyph:
		d2 := CompositeGlyph{
			Components:   make([]GlyphComponent, len(d.Components)),
			Instructions: d.Instructions,
		}
		for i, c := range d.Components {
			d2.Components[i] = GlyphComponent{
				Flags:      c.Flags,
				GlyphIndex: newGid[c.GlyphIndex],
				Args:       c.Args,
			}
		}
		g2 := &Glyph{
			Rect16: g.Rect16,
			Data:   d2,
		}
		return g2
	default:
		panic("unexpected glyph type")
	}
}

const (
	glyphHeaderLen = 10
	glyfAlign      = 2
)

var errIncompleteGlyph = &fonterror.InvalidFontError{
	SubSystem: "sfnt/glyf",
	Reason:    "incomplete glyph",
}
