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

package header_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/ttf/internal/fonttest"
	"seehuhn.de/go/ttf/sfnt/fonterror"
	"seehuhn.de/go/ttf/sfnt/header"
	"seehuhn.de/go/ttf/sfnt/parser"
)

func TestRoundTrip(t *testing.T) {
	tables := fonttest.Minimal().Tables()
	buf := &bytes.Buffer{}
	n, err := header.Write(buf, header.ScalerTypeTrueType, tables)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("wrong size %d != %d", n, buf.Len())
	}
	data := buf.Bytes()
	if len(data)%4 != 0 {
		t.Error("file not padded")
	}

	info, err := header.Read(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if info.ScalerType != header.ScalerTypeTrueType {
		t.Errorf("wrong scaler type 0x%08x", info.ScalerType)
	}
	if err := info.CheckMandatory(); err != nil {
		t.Error(err)
	}
	if info.IsCFF() {
		t.Error("TrueType font reported as CFF")
	}

	p := parser.New("test", bytes.NewReader(data))
	for tag, body := range tables {
		got, err := info.ReadTableBytes(p, tag)
		if err != nil {
			t.Fatal(err)
		}
		if tag == "head" {
			// the checksum adjustment was filled in
			if d := cmp.Diff(body[:8], got[:8]); d != "" {
				t.Errorf("head table differs:\n%s", d)
			}
			continue
		}
		if d := cmp.Diff(body, got); d != "" {
			t.Errorf("table %q differs:\n%s", tag, d)
		}
		if rec := info.Toc[tag]; rec.Checksum != header.Checksum(body) {
			t.Errorf("wrong checksum for %q", tag)
		}
		if rec := info.Toc[tag]; rec.Offset%4 != 0 {
			t.Errorf("table %q not aligned", tag)
		}
	}
}

func TestWholeFileChecksum(t *testing.T) {
	data := fonttest.FiveGlyphs().Bytes()
	if sum := header.Checksum(data); sum != 0xB1B0AFBA {
		t.Errorf("whole file checksum is 0x%08x", sum)
	}
}

func TestTableOrder(t *testing.T) {
	data := fonttest.Minimal().Bytes()
	info, err := header.Read(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if info.Toc["head"].Offset > info.Toc["glyf"].Offset {
		t.Error("head table should precede glyf")
	}

	// directory entries are sorted by tag
	numTables := int(binary.BigEndian.Uint16(data[4:]))
	for i := 1; i < numTables; i++ {
		prev := data[12+16*(i-1) : 12+16*(i-1)+4]
		this := data[12+16*i : 12+16*i+4]
		if bytes.Compare(prev, this) >= 0 {
			t.Errorf("directory not sorted: %q >= %q", prev, this)
		}
	}
}

func TestInvalidScalerType(t *testing.T) {
	data := fonttest.Minimal().Bytes()
	binary.BigEndian.PutUint32(data, 0xDEADBEEF)
	info, err := header.Read(bytes.NewReader(data))
	if info != nil {
		t.Error("partial result returned")
	}
	if !fonterror.IsInvalid(err) {
		t.Errorf("expected InvalidFontError, got %v", err)
	}
}

func TestMalformed(t *testing.T) {
	good := fonttest.Minimal().Bytes()

	// table extends beyond the end of file
	_, err := header.Read(bytes.NewReader(good[:len(good)-8]))
	if err == nil {
		t.Error("truncated file accepted")
	}

	// overlapping tables
	data := bytes.Clone(good)
	offs := binary.BigEndian.Uint32(data[12+8:])
	binary.BigEndian.PutUint32(data[12+16+8:], offs)
	_, err = header.Read(bytes.NewReader(data))
	if err == nil {
		t.Error("overlapping tables accepted")
	}

	// duplicate tags
	data = bytes.Clone(good)
	copy(data[12+16:12+16+4], data[12:12+4])
	_, err = header.Read(bytes.NewReader(data))
	if err == nil {
		t.Error("duplicate table accepted")
	}

	_, err = header.Read(bytes.NewReader(good[:5]))
	if !errors.Is(err, parser.ErrTruncated) {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
}

func TestMissing(t *testing.T) {
	font := fonttest.Minimal()
	font.Extra = map[string][]byte{"hmtx": nil}
	info, err := header.Read(bytes.NewReader(font.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	err = info.CheckMandatory()
	var missing *header.MissingError
	if !errors.As(err, &missing) || missing.Name != "hmtx" {
		t.Errorf("expected missing hmtx, got %v", err)
	}
	_, err = info.Find("kern")
	if !header.IsMissing(err) {
		t.Errorf("expected MissingError, got %v", err)
	}
	if info.Has("kern") || !info.Has("head", "cmap") {
		t.Error("Has() failed")
	}
}

func TestCollection(t *testing.T) {
	a := fonttest.Minimal()
	b := fonttest.FiveGlyphs()
	data := fonttest.Collection(a.Bytes(), b.Bytes())

	p := parser.New("test", bytes.NewReader(data))
	offsets, err := header.ReadCollection(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(offsets) != 2 {
		t.Fatalf("wrong number of members %d", len(offsets))
	}

	for _, fontName := range []string{"Five Regular", "five-regular", "FIVE REGULAR"} {
		info, err := header.Select(p, fontName)
		if err != nil {
			t.Fatal(err)
		}
		maxpData, err := info.ReadTableBytes(p, "maxp")
		if err != nil {
			t.Fatal(err)
		}
		if numGlyphs := int(maxpData[4])<<8 | int(maxpData[5]); numGlyphs != 5 {
			t.Errorf("%q: wrong member selected, %d glyphs", fontName, numGlyphs)
		}
	}

	_, err = header.Select(p, "")
	if !errors.Is(err, header.ErrAmbiguousCollection) {
		t.Errorf("expected ErrAmbiguousCollection, got %v", err)
	}

	_, err = header.Select(p, "Times New Roman")
	var notFound *header.NotFoundInCollectionError
	if !errors.As(err, &notFound) || notFound.Name != "Times New Roman" {
		t.Errorf("expected NotFoundInCollectionError, got %v", err)
	}
}

func TestPlainFileSelect(t *testing.T) {
	data := fonttest.Minimal().Bytes()
	p := parser.New("test", bytes.NewReader(data))
	offsets, err := header.ReadCollection(p)
	if err != nil || offsets != nil {
		t.Fatalf("plain font reported as collection: %v %v", offsets, err)
	}
	info, err := header.Select(p, "anything")
	if err != nil {
		t.Fatal(err)
	}
	if !info.Has("glyf") {
		t.Error("missing glyf table")
	}
}
