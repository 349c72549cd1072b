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

// Package lazy provides fonts which are only read when they are first used.
//
// A Font starts out unloaded, holding only the font identifier and the
// configuration.  The first call to Load reads the font through a
// loader.Resolver.  After a successful load the decoded font is kept for
// the lifetime of the Font.  A failed load is not remembered; the next
// call tries again.
package lazy

import (
	"fmt"
	"sync"

	"github.com/npillmayer/schuko/tracing"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/ttf/loader"
	"seehuhn.de/go/ttf/sfnt"
	"seehuhn.de/go/ttf/subset"
)

// tracer traces with key 'ttf'
func tracer() tracing.Trace {
	return tracing.Select("ttf")
}

// Config describes a lazily loaded font.
type Config struct {
	// Resolver is used to open the font file.
	Resolver loader.Resolver

	// ID identifies the font file for the Resolver.
	ID string

	// Font controls how the font file is read.
	Font sfnt.Config

	// EmbedPath is the name under which the font is embedded in the
	// output.  If this is empty, ID is used.
	EmbedPath string

	// FailFast makes Load return the underlying error when the font
	// cannot be read.  Otherwise the error is logged and Load returns a
	// *NotLoadedError.
	FailFast bool
}

// NotLoadedError is returned by Load if the font could not be read and
// Config.FailFast is not set.
type NotLoadedError struct {
	ID  string
	Err error
}

func (err *NotLoadedError) Error() string {
	return fmt.Sprintf("font %q not loaded: %v", err.ID, err.Err)
}

func (err *NotLoadedError) Unwrap() error {
	return err.Err
}

type state interface {
	isState()
}

// unloaded is the initial state of a Font.
type unloaded struct {
	cfg Config
}

// loaded is the final state of a Font.
type loaded struct {
	cfg  Config
	font *sfnt.Font
}

func (unloaded) isState() {}
func (loaded) isState()   {}

// Font is a font which is read on first use.
// It is safe to use a Font concurrently from multiple goroutines.
type Font struct {
	mu    sync.Mutex
	state state
}

// New returns a font which is read on first use.  New does not access
// the font file.
func New(cfg Config) *Font {
	return &Font{state: unloaded{cfg: cfg}}
}

// Load returns the decoded font, reading the font file if needed.
// Concurrent calls read the file at most once.
func (f *Font) Load() (*sfnt.Font, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch s := f.state.(type) {
	case loaded:
		return s.font, nil
	case unloaded:
		font, err := read(&s.cfg)
		if err != nil {
			if s.cfg.FailFast {
				return nil, err
			}
			tracer().Errorf("cannot load font %q: %v", s.cfg.ID, err)
			return nil, &NotLoadedError{ID: s.cfg.ID, Err: err}
		}
		tracer().Debugf("loaded font %q (%s)", s.cfg.ID, font.PostScriptName())
		f.state = loaded{cfg: s.cfg, font: font}
		return font, nil
	default:
		panic("unexpected state")
	}
}

func read(cfg *Config) (*sfnt.Font, error) {
	if cfg.Resolver == nil {
		return nil, fmt.Errorf("font %q: no resolver", cfg.ID)
	}
	r, err := loader.ReadAll(cfg.Resolver, cfg.ID)
	if err != nil {
		return nil, err
	}
	fontCfg := cfg.Font
	return sfnt.Read(r, &fontCfg)
}

// Metrics returns the metrics of the font, reading the font file if
// needed.
func (f *Font) Metrics() (sfnt.FontMetrics, error) {
	font, err := f.Load()
	if err != nil {
		return nil, err
	}
	return font, nil
}

// IsLoaded reports whether the font has been read.
func (f *Font) IsLoaded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.state.(loaded)
	return ok
}

// EmbedPath returns the name under which the font is embedded.
func (f *Font) EmbedPath() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	var cfg Config
	switch s := f.state.(type) {
	case loaded:
		cfg = s.cfg
	case unloaded:
		cfg = s.cfg
	}
	if cfg.EmbedPath != "" {
		return cfg.EmbedPath
	}
	return cfg.ID
}

// Subset reads the font if needed, and returns a subset containing the
// given glyphs.
func (f *Font) Subset(required []glyph.ID, opt *subset.Options) (*subset.Result, error) {
	font, err := f.Load()
	if err != nil {
		return nil, err
	}
	return subset.Subset(font, required, opt)
}
