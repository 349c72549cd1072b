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

// Package header reads and writes the table directory of sfnt files.
// https://docs.microsoft.com/en-us/typography/opentype/spec/otff#table-directory
package header

import (
	"errors"
	"fmt"
	"sort"

	"seehuhn.de/go/ttf/sfnt/fonterror"
	"seehuhn.de/go/ttf/sfnt/parser"
)

// Scaler types found at the start of an sfnt file.
const (
	ScalerTypeTrueType = 0x00010000
	ScalerTypeCFF      = 0x4F54544F // "OTTO"
	ScalerTypeApple    = 0x74727565 // "true"
)

// Info contains the table directory of an sfnt font.
type Info struct {
	ScalerType uint32
	Toc        map[string]Record
}

// Record describes the location of one table.
type Record struct {
	Checksum uint32
	Offset   uint32
	Length   uint32
}

// Mandatory lists the tables which every font must contain.  TrueType
// fonts in addition need "glyf" and "loca".
var Mandatory = []string{"head", "hhea", "hmtx", "maxp", "name", "cmap", "post"}

// MandatoryGlyf lists the tables required for TrueType outlines.
var MandatoryGlyf = []string{"glyf", "loca"}

// MissingError indicates that a required table is not present.
type MissingError struct {
	Name string
}

func (err *MissingError) Error() string {
	return fmt.Sprintf("sfnt: missing %q table", err.Name)
}

// IsMissing returns true if err indicates a missing table.
func IsMissing(err error) bool {
	var missing *MissingError
	return errors.As(err, &missing)
}

// Read reads the table directory at the start of an sfnt file.
func Read(r parser.ReadSeekSizer) (*Info, error) {
	return ReadAt(parser.New("header", r), 0)
}

// ReadAt reads a table directory starting at the given file offset.
// For a font collection, the offsets of the members are found using
// ReadCollection.
func ReadAt(p *parser.Parser, offset int64) (*Info, error) {
	p.SetTable("header")
	err := p.SeekPos(offset)
	if err != nil {
		return nil, err
	}
	scalerType, err := p.ReadUint32()
	if err != nil {
		return nil, err
	}
	numTables, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	if scalerType != ScalerTypeTrueType &&
		scalerType != ScalerTypeCFF &&
		scalerType != ScalerTypeApple {
		return nil, &fonterror.InvalidFontError{
			SubSystem: "sfnt/header",
			Reason:    fmt.Sprintf("unknown scaler type 0x%08x", scalerType),
		}
	}
	if numTables > 280 {
		return nil, errInvalid("too many tables")
	}
	err = p.Discard(6) // searchRange, entrySelector, rangeShift
	if err != nil {
		return nil, err
	}

	info := &Info{
		ScalerType: scalerType,
		Toc:        make(map[string]Record, numTables),
	}
	type alloc struct {
		Start uint32
		End   uint32
	}
	var coverage []alloc
	fileSize := p.Size()
	for i := 0; i < int(numTables); i++ {
		buf, err := p.ReadBytes(16)
		if err != nil {
			return nil, err
		}
		name := string(buf[:4])
		rec := Record{
			Checksum: uint32(buf[4])<<24 | uint32(buf[5])<<16 | uint32(buf[6])<<8 | uint32(buf[7]),
			Offset:   uint32(buf[8])<<24 | uint32(buf[9])<<16 | uint32(buf[10])<<8 | uint32(buf[11]),
			Length:   uint32(buf[12])<<24 | uint32(buf[13])<<16 | uint32(buf[14])<<8 | uint32(buf[15]),
		}
		if _, dup := info.Toc[name]; dup {
			return nil, errInvalid(fmt.Sprintf("duplicate %q table", name))
		}
		if int64(rec.Offset)+int64(rec.Length) > fileSize {
			return nil, errInvalid(fmt.Sprintf("%q table extends beyond EOF", name))
		}
		info.Toc[name] = rec
		if rec.Length > 0 {
			coverage = append(coverage, alloc{
				Start: rec.Offset,
				End:   rec.Offset + rec.Length,
			})
		}
	}
	if len(info.Toc) == 0 {
		return nil, errInvalid("no tables found")
	}

	// perform some sanity checks
	sort.Slice(coverage, func(i, j int) bool {
		if coverage[i].Start != coverage[j].Start {
			return coverage[i].Start < coverage[j].Start
		}
		return coverage[i].End < coverage[j].End
	})
	if len(coverage) > 0 && coverage[0].Start < 12 {
		return nil, errInvalid("invalid table offset")
	}
	for i := 1; i < len(coverage); i++ {
		if coverage[i-1].End > coverage[i].Start {
			return nil, errInvalid("overlapping tables")
		}
	}

	return info, nil
}

// IsCFF returns true if the font contains CFF outlines.
func (info *Info) IsCFF() bool {
	_, hasCFF := info.Toc["CFF "]
	return info.ScalerType == ScalerTypeCFF || hasCFF
}

// Has returns true if all the given tables are present.
func (info *Info) Has(names ...string) bool {
	for _, name := range names {
		if _, ok := info.Toc[name]; !ok {
			return false
		}
	}
	return true
}

// Find returns the directory entry for a table.
// If the table is not present, a *MissingError is returned.
func (info *Info) Find(tableName string) (Record, error) {
	rec, ok := info.Toc[tableName]
	if !ok {
		return rec, &MissingError{Name: tableName}
	}
	return rec, nil
}

// CheckMandatory verifies that all tables required for the given outline
// type are present.
func (info *Info) CheckMandatory() error {
	for _, name := range Mandatory {
		if _, err := info.Find(name); err != nil {
			return err
		}
	}
	if info.IsCFF() {
		return nil
	}
	for _, name := range MandatoryGlyf {
		if _, err := info.Find(name); err != nil {
			return err
		}
	}
	return nil
}

// SeekTable positions p at the start of the given table, plus skip bytes.
func (info *Info) SeekTable(p *parser.Parser, tableName string, skip int64) (Record, error) {
	rec, err := info.Find(tableName)
	if err != nil {
		return rec, err
	}
	p.SetTable(tableName)
	err = p.SeekPos(int64(rec.Offset) + skip)
	return rec, err
}

// ReadTableBytes returns the contents of the given table.
func (info *Info) ReadTableBytes(p *parser.Parser, tableName string) ([]byte, error) {
	rec, err := info.SeekTable(p, tableName, 0)
	if err != nil {
		return nil, err
	}
	res := make([]byte, rec.Length)
	_, err = p.Read(res)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Names returns the table tags in alphabetical order.
func (info *Info) Names() []string {
	res := make([]string, 0, len(info.Toc))
	for name := range info.Toc {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

func errInvalid(reason string) error {
	return &fonterror.InvalidFontError{
		SubSystem: "sfnt/header",
		Reason:    reason,
	}
}
