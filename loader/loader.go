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

// Package loader locates font files.
//
// A Resolver maps a font identifier, for example a file name or a font
// name, to the data of a font file.  The sfnt reader and the lazy font
// wrapper only see the Resolver interface, so fonts can be loaded from the
// file system, from embedded data, or from a font map.
package loader

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"

	"seehuhn.de/go/ttf/sfnt/name"
)

// Resolver opens font files.  If id is not known, the returned error
// wraps fs.ErrNotExist.  The caller must close the returned reader.
type Resolver interface {
	Open(id string) (io.ReadCloser, error)
}

// ReadAll opens the font file id and returns its contents.
// The result can be passed to sfnt.Read using bytes.NewReader.
func ReadAll(r Resolver, id string) (*bytes.Reader, error) {
	fd, err := r.Open(id)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(fd)
	closeErr := fd.Close()
	if err != nil {
		return nil, err
	}
	if closeErr != nil {
		return nil, closeErr
	}
	return bytes.NewReader(data), nil
}

// FS resolves font identifiers as paths in a file system.
type FS struct {
	FS fs.FS
}

// Open implements the Resolver interface.
func (r FS) Open(id string) (io.ReadCloser, error) {
	return r.FS.Open(id)
}

// Dir returns a resolver which looks up font files in the given
// directory.  Identifiers are slash-separated paths relative to dir.
func Dir(dir string) Resolver {
	return FS{FS: os.DirFS(dir)}
}

// Memory serves font files from memory, indexed by identifier.
type Memory map[string][]byte

// Open implements the Resolver interface.
func (m Memory) Open(id string) (io.ReadCloser, error) {
	data, ok := m[id]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: id, Err: fs.ErrNotExist}
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Map resolves font names using a font map.  Names are compared after
// normalization with name.Normalize, so that "Go Regular" and "goregular"
// refer to the same font.
//
// It is safe to use a Map concurrently from multiple goroutines.
type Map struct {
	sync.RWMutex
	lookup map[string]string

	// Base is used to open the font files.  If Base is nil, paths refer to
	// the operating system's file system.
	Base fs.FS
}

// NewMap creates an empty font map.
func NewMap(base fs.FS) *Map {
	return &Map{
		lookup: make(map[string]string),
		Base:   base,
	}
}

// Open implements the Resolver interface.
func (m *Map) Open(fontName string) (io.ReadCloser, error) {
	m.RLock()
	fname, ok := m.lookup[name.Normalize(fontName)]
	m.RUnlock()
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: fontName, Err: fs.ErrNotExist}
	}

	if m.Base != nil {
		return m.Base.Open(fname)
	}
	return os.Open(fname)
}

// AddFontMap reads a font map from r and adds it to m.  A font map
// consists of lines of the form
//
//	<name> <path>
//
// where <name> is the name of the font and <path> is the path to the font
// file.  The name must not contain spaces, the path may.  Lines starting
// with '#' or '%' are ignored.
//
// Any previous mapping for <name> is overwritten.
func (m *Map) AddFontMap(r io.Reader) error {
	lines := bufio.NewScanner(r)
	lineNo := 0
	for lines.Scan() {
		lineNo++
		line := strings.TrimSpace(lines.Text())
		if len(line) == 0 || line[0] == '#' || line[0] == '%' {
			continue
		}

		parts := strings.SplitN(line, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
			return fmt.Errorf("font map line %d: invalid line %q", lineNo, line)
		}
		m.AddFont(parts[0], strings.TrimSpace(parts[1]))
	}
	return lines.Err()
}

// AddFont adds a font to the map.  Any previous mapping for the same
// name is overwritten.
func (m *Map) AddFont(fontName, fname string) {
	key := name.Normalize(fontName)
	m.Lock()
	if m.lookup == nil {
		m.lookup = make(map[string]string)
	}
	m.lookup[key] = fname
	m.Unlock()
}

// Len returns the number of fonts in the map.
func (m *Map) Len() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.lookup)
}
