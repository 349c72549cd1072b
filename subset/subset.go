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

// Package subset reduces a TrueType font to the glyphs used in a document.
//
// The subset keeps glyph 0, the requested glyphs, and all glyphs these
// use as components.  Glyphs keep their relative order.  The tables
// which depend on glyph indices are rewritten, other tables are copied
// or dropped as configured in Options.
package subset

import (
	"bytes"

	"github.com/npillmayer/schuko/tracing"
	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/ttf/sfnt"
	"seehuhn.de/go/ttf/sfnt/cmap"
	"seehuhn.de/go/ttf/sfnt/fonterror"
	"seehuhn.de/go/ttf/sfnt/glyf"
	"seehuhn.de/go/ttf/sfnt/header"
	"seehuhn.de/go/ttf/sfnt/hmtx"
	"seehuhn.de/go/ttf/sfnt/kern"
)

// tracer traces with key 'ttf.subset'
func tracer() tracing.Trace {
	return tracing.Select("ttf.subset")
}

// Options controls which tables are included in a subset.
type Options struct {
	KeepCmap    bool // rebuild "cmap" for the kept glyphs
	KeepKern    bool // rebuild "kern" for the kept glyphs
	KeepName    bool // copy "name"
	KeepOS2     bool // copy "OS/2"
	KeepPCLT    bool // copy "PCLT"
	KeepHinting bool // copy "cvt ", "fpgm" and "prep"

	// MaxSize is the maximal size of the subset font in bytes.
	// If this is zero, 64 MiB is used.
	MaxSize int

	// MaxIterations limits the nesting depth of composite glyphs.
	// If this is zero, 64 is used.
	MaxIterations int
}

const (
	defaultMaxSize       = 64 << 20
	defaultMaxIterations = 64
)

// DefaultOptions returns the options used when nil is passed to Subset.
// All optional tables are kept.
func DefaultOptions() *Options {
	return &Options{
		KeepCmap:      true,
		KeepKern:      true,
		KeepName:      true,
		KeepOS2:       true,
		KeepPCLT:      true,
		KeepHinting:   true,
		MaxSize:       defaultMaxSize,
		MaxIterations: defaultMaxIterations,
	}
}

// Plan describes the glyphs of a subset.
type Plan struct {
	// Glyphs lists the original glyph IDs, indexed by new glyph ID.
	Glyphs []glyph.ID

	// NewGID maps original glyph IDs to new glyph IDs.
	NewGID map[glyph.ID]glyph.ID

	// NumOrigGlyphs is the number of glyphs in the original font.
	NumOrigGlyphs int
}

// NewPlan computes the glyphs to keep in a subset of f.
func NewPlan(f *sfnt.Font, required []glyph.ID, opt *Options) (*Plan, error) {
	if f.Kind != sfnt.TrueType {
		return nil, &fonterror.NotSupportedError{
			SubSystem: "subset",
			Feature:   "subsetting " + f.Kind.String() + " fonts",
		}
	}
	opt = fillDefaults(opt)

	retained, err := Closure(f.Glyphs, required, opt.MaxIterations)
	if err != nil {
		return nil, err
	}
	return &Plan{
		Glyphs:        retained,
		NewGID:        Remap(retained),
		NumOrigGlyphs: f.NumGlyphs(),
	}, nil
}

// Result is a subset font.
type Result struct {
	*Plan

	// Tables holds the tables of the subset font.
	Tables map[string][]byte

	// Data is the complete sfnt file.
	Data []byte
}

// Subset constructs a subset of f which contains the required glyphs.
// If opt is nil, DefaultOptions is used.
func Subset(f *sfnt.Font, required []glyph.ID, opt *Options) (*Result, error) {
	opt = fillDefaults(opt)
	plan, err := NewPlan(f, required, opt)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("subsetting %s: %d of %d glyphs",
		f.PostScriptName(), len(plan.Glyphs), plan.NumOrigGlyphs)

	s := &subsetter{font: f, plan: plan, tables: make(map[string][]byte)}
	s.writeGlyphs()
	s.writeMetrics()
	s.writePost()
	if opt.KeepCmap {
		err = s.writeCmap()
		if err != nil {
			return nil, err
		}
	}
	if opt.KeepKern {
		s.writeKern()
	}
	copied := []string{}
	if opt.KeepName {
		copied = append(copied, "name")
	}
	if opt.KeepOS2 {
		copied = append(copied, "OS/2")
	}
	if opt.KeepPCLT {
		copied = append(copied, "PCLT")
	}
	if opt.KeepHinting {
		copied = append(copied, "cvt ", "fpgm", "prep")
	}
	for _, tag := range copied {
		if data, ok := f.Tables[tag]; ok {
			s.tables[tag] = data
		}
	}

	size := 12
	for _, data := range s.tables {
		size += 16 + 4*((len(data)+3)/4)
	}
	if size > opt.MaxSize {
		return nil, &TooLargeError{Size: size, MaxSize: opt.MaxSize}
	}

	scalerType := f.Header.ScalerType
	if scalerType != header.ScalerTypeApple {
		scalerType = header.ScalerTypeTrueType
	}
	buf := bytes.NewBuffer(make([]byte, 0, size))
	_, err = header.Write(buf, scalerType, s.tables)
	if err != nil {
		return nil, err
	}

	return &Result{
		Plan:   plan,
		Tables: s.tables,
		Data:   buf.Bytes(),
	}, nil
}

func fillDefaults(opt *Options) *Options {
	if opt == nil {
		return DefaultOptions()
	}
	res := *opt
	if res.MaxSize <= 0 {
		res.MaxSize = defaultMaxSize
	}
	if res.MaxIterations <= 0 {
		res.MaxIterations = defaultMaxIterations
	}
	return &res
}

type subsetter struct {
	font   *sfnt.Font
	plan   *Plan
	tables map[string][]byte
}

// writeGlyphs writes the "glyf", "loca", "head" and "maxp" tables.
// Long loca offsets are kept if the original font uses them.
func (s *subsetter) writeGlyphs() {
	f := s.font
	gg := make(glyf.Glyphs, len(s.plan.Glyphs))
	for i, gid := range s.plan.Glyphs {
		gg[i] = f.Glyphs[gid].FixComponents(s.plan.NewGID)
	}
	var minFormat int16
	if f.Head.HasLongOffsets {
		minFormat = 1
	}
	enc := gg.EncodeFormat(minFormat)
	s.tables["glyf"] = enc.GlyfData
	s.tables["loca"] = enc.LocaData

	headInfo := *f.Head
	headInfo.HasLongOffsets = enc.LocaFormat == 1
	s.tables["head"] = headInfo.Encode()

	maxpInfo := *f.Maxp
	maxpInfo.NumGlyphs = len(gg)
	s.tables["maxp"] = maxpInfo.Encode()
}

// writeMetrics writes the "hmtx" and "hhea" tables.
func (s *subsetter) writeMetrics() {
	f := s.font
	n := len(s.plan.Glyphs)
	m := &hmtx.Metrics{
		Width: make([]uint16, n),
		LSB:   make([]funit.Int16, n),
	}
	for i, gid := range s.plan.Glyphs {
		m.Width[i] = f.Metrics.Width[gid]
		m.LSB[i] = f.Metrics.LSB[gid]
	}
	data, numLong := m.Encode()
	s.tables["hmtx"] = data

	hhea := *f.Hhea
	hhea.NumOfLongHorMetrics = numLong
	s.tables["hhea"] = hhea.Encode()
}

// writePost writes the "post" table.  Glyph names are kept if the original
// font has a name for every glyph.
func (s *subsetter) writePost() {
	f := s.font
	info := *f.Post
	info.Names = nil
	if len(f.Post.Names) >= f.NumGlyphs() {
		info.Names = make([]string, len(s.plan.Glyphs))
		for i, gid := range s.plan.Glyphs {
			info.Names[i] = f.Post.Names[gid]
		}
	}
	s.tables["post"] = info.Encode()
}

// writeCmap rebuilds the Windows subtables of the "cmap" table.
func (s *subsetter) writeCmap() error {
	orig, err := cmap.Decode(s.font.Tables["cmap"])
	if err != nil {
		return err
	}
	res := cmap.Table{}
	for _, key := range []cmap.Key{cmap.WindowsUnicode, cmap.WindowsSymbol} {
		sub, err := orig.Get(key)
		if err != nil {
			continue
		}
		newSub := cmap.Format4{}
		for code, gid := range sub {
			if newGID, ok := s.plan.NewGID[gid]; ok && newGID != 0 {
				newSub[code] = newGID
			}
		}
		data, err := newSub.Encode(key.Language)
		if err != nil {
			return err
		}
		res[key] = data
	}
	if len(res) > 0 {
		s.tables["cmap"] = res.Encode()
	}
	return nil
}

// writeKern rewrites the kerning pairs between kept glyphs.
func (s *subsetter) writeKern() {
	data, ok := s.font.Tables["kern"]
	if !ok {
		return
	}
	orig, err := kern.Read(data)
	if err != nil {
		tracer().Infof("dropping kern table: %v", err)
		return
	}
	res := kern.Info{}
	for left, row := range orig {
		newLeft, ok := s.plan.NewGID[left]
		if !ok {
			continue
		}
		for right, value := range row {
			if newRight, ok := s.plan.NewGID[right]; ok {
				res.Set(newLeft, newRight, value)
			}
		}
	}
	if res.Len() > 0 {
		s.tables["kern"] = res.Encode()
	}
}
