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
	"fmt"

	"golang.org/x/exp/slices"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/ttf/sfnt/fonterror"
	"seehuhn.de/go/ttf/sfnt/glyf"
)

// Closure returns the glyphs which must be kept in a subset containing the
// required glyphs.  The result always contains glyph 0 and all glyphs used
// as components of kept composite glyphs, in increasing order.
//
// Each round of the computation adds the components of the glyphs added in
// the previous round.  If more than maxIterations rounds are needed,
// ErrTooDeep is returned.
func Closure(gg glyf.Glyphs, required []glyph.ID, maxIterations int) ([]glyph.ID, error) {
	numGlyphs := len(gg)
	keep := map[glyph.ID]bool{0: true}
	todo := []glyph.ID{0}
	for _, gid := range required {
		if int(gid) >= numGlyphs {
			return nil, &GlyphIndexOutOfRangeError{GID: gid, NumGlyphs: numGlyphs}
		}
		if !keep[gid] {
			keep[gid] = true
			todo = append(todo, gid)
		}
	}

	for round := 0; len(todo) > 0; round++ {
		if round > maxIterations {
			return nil, ErrTooDeep
		}
		var next []glyph.ID
		for _, gid := range todo {
			for _, comp := range gg[gid].Components() {
				if int(comp) >= numGlyphs {
					return nil, &fonterror.InvalidFontError{
						SubSystem: "subset",
						Reason: fmt.Sprintf("glyph %d uses missing component %d",
							gid, comp),
					}
				}
				if !keep[comp] {
					keep[comp] = true
					next = append(next, comp)
				}
			}
		}
		todo = next
	}

	res := make([]glyph.ID, 0, len(keep))
	for gid := range keep {
		res = append(res, gid)
	}
	slices.Sort(res)

	err := checkCycles(gg, res)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("closure of %d glyphs has %d glyphs", len(required), len(res))
	return res, nil
}

// checkCycles verifies that no composite glyph in gids uses itself,
// directly or indirectly.
func checkCycles(gg glyf.Glyphs, gids []glyph.ID) error {
	const (
		unvisited = iota
		active
		done
	)
	state := make(map[glyph.ID]int, len(gids))
	var path []glyph.ID
	var visit func(gid glyph.ID) error
	visit = func(gid glyph.ID) error {
		switch state[gid] {
		case done:
			return nil
		case active:
			start := slices.Index(path, gid)
			cycle := append(slices.Clone(path[start:]), gid)
			return &CycleError{Path: cycle}
		}
		state[gid] = active
		path = append(path, gid)
		for _, comp := range gg[gid].Components() {
			err := visit(comp)
			if err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		state[gid] = done
		return nil
	}
	for _, gid := range gids {
		if !gg[gid].IsComposite() {
			continue
		}
		err := visit(gid)
		if err != nil {
			return err
		}
	}
	return nil
}

// Remap assigns new glyph IDs to the glyphs of a subset.  The glyphs keep
// their relative order, so glyph 0 stays at position 0.
func Remap(retained []glyph.ID) map[glyph.ID]glyph.ID {
	sorted := slices.Clone(retained)
	slices.Sort(sorted)
	newGID := make(map[glyph.ID]glyph.ID, len(sorted))
	for i, gid := range sorted {
		newGID[gid] = glyph.ID(i)
	}
	return newGID
}
