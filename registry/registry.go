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

// Package registry keeps track of the fonts available to an application.
//
// A Registry stores font records in a slice and maps normalized font names
// to indices in this slice.  Fonts are added while the application starts
// up.  After Freeze has been called the registry is read-only and can be
// shared between goroutines without further coordination by the caller.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/exp/slices"

	"seehuhn.de/go/ttf/gofont"
	"seehuhn.de/go/ttf/lazy"
	"seehuhn.de/go/ttf/sfnt"
	"seehuhn.de/go/ttf/sfnt/name"
)

// tracer traces with key 'ttf'
func tracer() tracing.Trace {
	return tracing.Select("ttf")
}

// ErrFrozen is returned when a font is added after Freeze has been called.
var ErrFrozen = errors.New("registry is frozen")

// DuplicateError is returned when a font name is already in use.
type DuplicateError struct {
	Name string
}

func (err *DuplicateError) Error() string {
	return fmt.Sprintf("font %q already registered", err.Name)
}

// UnknownFontError is returned by Metrics when no font of the given name
// has been registered.
type UnknownFontError struct {
	Name string
}

func (err *UnknownFontError) Error() string {
	return fmt.Sprintf("font %q not registered", err.Name)
}

// Record describes one registered font.  Exactly one of Font and Lazy is
// set.
type Record struct {
	// Name is the name under which the font was registered.
	Name string

	// Font is the decoded font, for fonts which were read before they
	// were registered.
	Font *sfnt.Font

	// Lazy is used for fonts which are read on first use.
	Lazy *lazy.Font
}

// Metrics returns the metrics of the font.  For lazily loaded fonts this
// reads the font file if needed.
func (rec *Record) Metrics() (sfnt.FontMetrics, error) {
	if rec.Font != nil {
		return rec.Font, nil
	}
	return rec.Lazy.Metrics()
}

// Registry is a collection of fonts, indexed by name.
// The zero value is an empty registry, ready to use.
type Registry struct {
	mu      sync.RWMutex
	records []Record
	index   map[string]int
	frozen  bool
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{}
}

// AddFont registers a decoded font under its PostScript name and its full
// name.
func (r *Registry) AddFont(f *sfnt.Font) error {
	psName := f.PostScriptName()
	if psName == "" {
		return errors.New("font has no name")
	}
	names := []string{psName}
	if full := f.FullName(); full != "" {
		names = append(names, full)
	}
	return r.add(Record{Name: psName, Font: f}, names)
}

// AddLazy registers a lazily loaded font under the given names.  The font
// file is not accessed.
func (r *Registry) AddLazy(f *lazy.Font, names ...string) error {
	if len(names) == 0 {
		return errors.New("no font names given")
	}
	return r.add(Record{Name: names[0], Lazy: f}, names)
}

func (r *Registry) add(rec Record, names []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return ErrFrozen
	}
	if r.index == nil {
		r.index = make(map[string]int)
	}

	keys := make([]string, 0, len(names))
	for _, n := range names {
		key := name.Normalize(n)
		if key == "" {
			return fmt.Errorf("invalid font name %q", n)
		}
		if _, exists := r.index[key]; exists {
			return &DuplicateError{Name: n}
		}
		if !slices.Contains(keys, key) {
			keys = append(keys, key)
		}
	}

	idx := len(r.records)
	r.records = append(r.records, rec)
	for _, key := range keys {
		r.index[key] = idx
	}
	tracer().Debugf("registered font %q", rec.Name)
	return nil
}

// AddGoFonts registers all fonts of the Go font family.  The fonts are
// read on first use.
func (r *Registry) AddGoFonts(cfg *sfnt.Config) error {
	for _, f := range gofont.All {
		err := r.AddLazy(f.Lazy(cfg), f.ID())
		if err != nil {
			return err
		}
	}
	return nil
}

// Freeze makes the registry read-only.  Further calls to AddFont, AddLazy
// and AddGoFonts return ErrFrozen.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// IsFrozen reports whether Freeze has been called.
func (r *Registry) IsFrozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Lookup returns the record for the font with the given name.
// Names are compared after normalization, see [name.Normalize].
func (r *Registry) Lookup(fontName string) (*Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.index[name.Normalize(fontName)]
	if !ok {
		return nil, false
	}
	return &r.records[idx], true
}

// Get returns the i'th registered font, in order of registration.
func (r *Registry) Get(i int) *Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return &r.records[i]
}

// Metrics returns the metrics of the font with the given name.
func (r *Registry) Metrics(fontName string) (sfnt.FontMetrics, error) {
	rec, ok := r.Lookup(fontName)
	if !ok {
		return nil, &UnknownFontError{Name: fontName}
	}
	return rec.Metrics()
}

// Len returns the number of registered fonts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// Names returns the names of all registered fonts, in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]string, len(r.records))
	for i := range r.records {
		res[i] = r.records[i].Name
	}
	slices.Sort(res)
	return res
}
