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

// Package gofont provides access to the Go font family.
package gofont

import (
	"bytes"
	"fmt"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/gofont/gosmallcapsitalic"

	"seehuhn.de/go/ttf/lazy"
	"seehuhn.de/go/ttf/loader"
	"seehuhn.de/go/ttf/sfnt"
)

// Font identifies individual fonts in the Go font family.
type Font int

// Constants for the available fonts in the Go font family.
const (
	Regular         Font = iota // Go Regular
	Bold                        // Go Semi Bold
	BoldItalic                  // Go Semi Bold Italic
	Italic                      // Go Italic
	Medium                      // Go Medium Regular
	MediumItalic                // Go Medium Italic
	Smallcaps                   // Go Smallcaps Regular
	SmallcapsItalic             // Go Smallcaps Italic
	Mono                        // Go Mono Regular
	MonoBold                    // Go Mono Semi Bold
	MonoBoldItalic              // Go Mono Semi Bold Italic
	MonoItalic                  // Go Mono Italic
)

// ID returns the identifier of the font, as used by Resolver.
func (f Font) ID() string {
	if int(f) < 0 || int(f) >= len(ids) {
		return fmt.Sprintf("Go-%d", int(f))
	}
	return ids[f]
}

func (f Font) String() string {
	return f.ID()
}

// Read decodes the font.
func (f Font) Read(cfg *sfnt.Config) (*sfnt.Font, error) {
	data, ok := ttf[f]
	if !ok {
		return nil, fmt.Errorf("gofont: unknown font %d", f)
	}

	info, err := sfnt.Read(bytes.NewReader(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("gofont: %w", err)
	}
	return info, nil
}

// Lazy returns a version of the font which is decoded on first use.
func (f Font) Lazy(cfg *sfnt.Config) *lazy.Font {
	lazyCfg := lazy.Config{
		Resolver: Resolver,
		ID:       f.ID(),
		FailFast: true,
	}
	if cfg != nil {
		lazyCfg.Font = *cfg
	}
	return lazy.New(lazyCfg)
}

// Resolver serves the font files of the Go font family, using the
// identifiers returned by Font.ID.
var Resolver = func() loader.Memory {
	res := make(loader.Memory, len(ttf))
	for f, data := range ttf {
		res[f.ID()] = data
	}
	return res
}()

var ids = []string{
	Regular:         "Go-Regular",
	Bold:            "Go-Bold",
	BoldItalic:      "Go-BoldItalic",
	Italic:          "Go-Italic",
	Medium:          "Go-Medium",
	MediumItalic:    "Go-MediumItalic",
	Smallcaps:       "Go-Smallcaps",
	SmallcapsItalic: "Go-SmallcapsItalic",
	Mono:            "Go-Mono",
	MonoBold:        "Go-Mono-Bold",
	MonoBoldItalic:  "Go-Mono-BoldItalic",
	MonoItalic:      "Go-Mono-Italic",
}

var ttf = map[Font][]byte{
	Bold:            gobold.TTF,
	BoldItalic:      gobolditalic.TTF,
	Italic:          goitalic.TTF,
	Medium:          gomedium.TTF,
	MediumItalic:    gomediumitalic.TTF,
	Regular:         goregular.TTF,
	Smallcaps:       gosmallcaps.TTF,
	SmallcapsItalic: gosmallcapsitalic.TTF,
	Mono:            gomono.TTF,
	MonoBold:        gomonobold.TTF,
	MonoBoldItalic:  gomonobolditalic.TTF,
	MonoItalic:      gomonoitalic.TTF,
}

// All contains all the Go font family fonts available in this package.
var All = []Font{
	Bold,
	BoldItalic,
	Italic,
	Medium,
	MediumItalic,
	Regular,
	Smallcaps,
	SmallcapsItalic,
	Mono,
	MonoBold,
	MonoBoldItalic,
	MonoItalic,
}

// Gopher is the Unicode code point for the gopher symbol in the Go fonts.
const Gopher = ''
