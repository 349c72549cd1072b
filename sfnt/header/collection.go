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
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"seehuhn.de/go/ttf/sfnt/name"
	"seehuhn.de/go/ttf/sfnt/parser"
)

// tracer traces with key 'ttf.tables'
func tracer() tracing.Trace {
	return tracing.Select("ttf.tables")
}

const collectionTag = 0x74746366 // "ttcf"

// ErrAmbiguousCollection is returned when a font collection is opened
// without naming the member font to use.
var ErrAmbiguousCollection = errors.New("sfnt/header: font collection requires a font name")

// NotFoundInCollectionError is returned when no member of a font
// collection has the requested name.
type NotFoundInCollectionError struct {
	Name string
}

func (err *NotFoundInCollectionError) Error() string {
	return fmt.Sprintf("sfnt/header: font %q not found in collection", err.Name)
}

// ReadCollection checks for a TrueType collection header.  If the file
// is a collection, the offsets of the member table directories are
// returned.  For a plain font file the result is nil.
func ReadCollection(p *parser.Parser) ([]int64, error) {
	p.SetTable("ttcf")
	err := p.SeekPos(0)
	if err != nil {
		return nil, err
	}
	tag, err := p.ReadUint32()
	if err != nil {
		return nil, err
	}
	if tag != collectionTag {
		return nil, nil
	}
	_, err = p.ReadUint32() // version
	if err != nil {
		return nil, err
	}
	numFonts, err := p.ReadUint32()
	if err != nil {
		return nil, err
	}
	if numFonts == 0 || int64(numFonts)*4 > p.Size() {
		return nil, errInvalid("invalid number of fonts in collection")
	}
	res := make([]int64, numFonts)
	for i := range res {
		offs, err := p.ReadUint32()
		if err != nil {
			return nil, err
		}
		res[i] = int64(offs)
	}
	return res, nil
}

// Select reads the table directory of a font file.  For collections,
// fontName selects the member whose full name or PostScript name matches.
// For plain font files, fontName is ignored.
func Select(p *parser.Parser, fontName string) (*Info, error) {
	offsets, err := ReadCollection(p)
	if err != nil {
		return nil, err
	}
	if offsets == nil {
		return ReadAt(p, 0)
	}
	if fontName == "" {
		return nil, ErrAmbiguousCollection
	}

	tracer().Debugf("font collection with %d members", len(offsets))
	for i, offs := range offsets {
		info, err := ReadAt(p, offs)
		if err != nil {
			return nil, err
		}
		data, err := info.ReadTableBytes(p, "name")
		if IsMissing(err) {
			continue
		} else if err != nil {
			return nil, err
		}
		names, err := name.Decode(data)
		if err != nil {
			return nil, err
		}
		tracer().Debugf("collection member %d: %q", i, names.FullName)
		if names.Matches(fontName) {
			return info, nil
		}
	}
	return nil, &NotFoundInCollectionError{Name: fontName}
}
