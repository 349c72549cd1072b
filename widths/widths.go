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

// Package widths encodes glyph advance widths in the compact form used
// by the W array of a PDF CIDFont, for fonts embedded with an identity
// mapping from CIDs to glyph IDs.
package widths

import (
	"seehuhn.de/go/dag"
	"seehuhn.de/go/sfnt/glyph"
)

// Run describes the widths of a consecutive range of glyphs.
//
// If Widths has a single element and Last > First, all glyphs in the range
// share this width.  Otherwise Widths lists the widths of the glyphs
// First, First+1, ..., Last.
type Run struct {
	First  glyph.ID
	Last   glyph.ID
	Widths []int
}

// IsRange reports whether all glyphs in the run share one width.
func (r Run) IsRange() bool {
	return len(r.Widths) == 1 && r.Last > r.First
}

// maxArray limits the length of array runs, to keep the graph small.
const maxArray = 512

// Compress chooses a default width and a short list of runs which
// together describe the widths ww, indexed by glyph ID.  Glyphs whose
// width equals the default width are not covered by any run.
func Compress(ww []int) (dw int, runs []Run) {
	if len(ww) == 0 {
		return 0, nil
	}

	dw = mostFrequent(ww)
	g := wwGraph{ww: ww, dw: dw}
	ee, err := dag.ShortestPath[wwEdge, int](g, len(ww))
	if err != nil {
		panic(err)
	}

	pos := 0
	for _, e := range ee {
		switch {
		case e > 0:
			runs = append(runs, Run{
				First:  glyph.ID(pos),
				Last:   glyph.ID(pos + int(e) - 1),
				Widths: []int{ww[pos]},
			})
		case e < 0:
			n := int(-e)
			runs = append(runs, Run{
				First:  glyph.ID(pos),
				Last:   glyph.ID(pos + n - 1),
				Widths: append([]int(nil), ww[pos:pos+n]...),
			})
		}
		pos = g.To(pos, e)
	}
	return dw, runs
}

// Expand is the inverse of Compress.  It returns the widths of the first
// n glyphs.
func Expand(dw int, runs []Run, n int) []int {
	ww := make([]int, n)
	for i := range ww {
		ww[i] = dw
	}
	for _, r := range runs {
		for gid := int(r.First); gid <= int(r.Last) && gid < n; gid++ {
			if r.IsRange() {
				ww[gid] = r.Widths[0]
			} else {
				ww[gid] = r.Widths[gid-int(r.First)]
			}
		}
	}
	return ww
}

type wwGraph struct {
	ww []int
	dw int
}

// A wwEdge encodes how the widths starting at a glyph are written:
//
//	e=0: the glyph has the default width, no entry is needed
//	e>0: the next e glyphs have the same width, encode as a range
//	e<0: encode the next -e widths as an array
type wwEdge int32

func (g wwGraph) AppendEdges(ee []wwEdge, v int) []wwEdge {
	ww := g.ww
	if ww[v] == g.dw {
		return append(ee, 0)
	}

	n := len(ww)

	i := v + 1
	for i < n && ww[i] == ww[v] {
		i++
	}
	if i > v+1 {
		ee = append(ee, wwEdge(i-v))
	}

	for i = v + 1; i <= n && i-v <= maxArray; i++ {
		ee = append(ee, wwEdge(v-i))
	}
	return ee
}

// Length estimates the number of bytes needed to write an edge,
// assuming three digit numbers.
func (g wwGraph) Length(v int, e wwEdge) int {
	switch {
	case e == 0:
		return 0
	case e > 0:
		// "%d %d %d\n"
		return 12
	default:
		// "%d [%d ... %d]\n"
		return 6 + 4*int(-e)
	}
}

func (g wwGraph) To(v int, e wwEdge) int {
	switch {
	case e == 0:
		return v + 1
	case e > 0:
		return v + int(e)
	default:
		return v - int(e)
	}
}

func mostFrequent(ww []int) int {
	hist := make(map[int]int)
	for _, w := range ww {
		hist[w]++
	}

	bestCount := 0
	bestVal := 0
	for w, count := range hist {
		if count > bestCount || (count == bestCount && w < bestVal) {
			bestCount = count
			bestVal = w
		}
	}
	return bestVal
}
