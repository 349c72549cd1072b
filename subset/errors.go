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

package subset

import (
	"errors"
	"fmt"
	"strings"

	"seehuhn.de/go/sfnt/glyph"
)

// GlyphIndexOutOfRangeError is returned when a requested glyph does not
// exist in the font.
type GlyphIndexOutOfRangeError struct {
	GID       glyph.ID
	NumGlyphs int
}

func (err *GlyphIndexOutOfRangeError) Error() string {
	return fmt.Sprintf("subset: glyph %d out of range (font has %d glyphs)",
		err.GID, err.NumGlyphs)
}

// TooLargeError is returned when the subset font would exceed the
// configured maximum size.
type TooLargeError struct {
	Size    int
	MaxSize int
}

func (err *TooLargeError) Error() string {
	return fmt.Sprintf("subset: font size %d exceeds limit %d", err.Size, err.MaxSize)
}

// CycleError is returned when composite glyphs refer to each other in a
// cycle.  Path lists the glyphs on the cycle, starting and ending with the
// same glyph.
type CycleError struct {
	Path []glyph.ID
}

func (err *CycleError) Error() string {
	parts := make([]string, len(err.Path))
	for i, gid := range err.Path {
		parts[i] = fmt.Sprint(gid)
	}
	return "subset: composite glyph cycle " + strings.Join(parts, " -> ")
}

// ErrTooDeep is returned when composite glyphs are nested more deeply than
// Options.MaxIterations allows.
var ErrTooDeep = errors.New("subset: composite glyphs nested too deeply")
