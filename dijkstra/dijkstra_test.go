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

package dijkstra

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type edge struct {
	from, to int
}

// intervals has vertices 0, ..., n and an edge (i, j) for every i < j.
type intervals struct {
	n    int
	cost func(i, j int) int
}

func (g intervals) Edges(v int) []edge {
	var res []edge
	for j := v + 1; j <= g.n; j++ {
		res = append(res, edge{v, j})
	}
	return res
}

func (g intervals) Length(e edge) int {
	return g.cost(e.from, e.to)
}

func (g intervals) To(e edge) int {
	return e.to
}

func TestShortestPath(t *testing.T) {
	// one step costs 10, two steps cost 1 and longer steps are expensive
	g := intervals{
		n: 6,
		cost: func(i, j int) int {
			switch j - i {
			case 1:
				return 10
			case 2:
				return 1
			default:
				return 100
			}
		},
	}
	path, err := ShortestPath[int, edge, int](g, 0, 6)
	if err != nil {
		t.Fatal(err)
	}
	want := []edge{{0, 2}, {2, 4}, {4, 6}}
	if d := cmp.Diff(want, path, cmp.AllowUnexported(edge{})); d != "" {
		t.Errorf("wrong path (-want +got):\n%s", d)
	}
}

func TestEmptyPath(t *testing.T) {
	g := intervals{n: 3, cost: func(i, j int) int { return 1 }}
	path, err := ShortestPath[int, edge, int](g, 3, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(path) != 0 {
		t.Errorf("unexpected path %v", path)
	}
}

func TestNoPath(t *testing.T) {
	g := intervals{n: 3, cost: func(i, j int) int { return 1 }}
	_, err := ShortestPath[int, edge, int](g, 3, 0)
	if err != ErrNoPath {
		t.Errorf("got %v, want ErrNoPath", err)
	}
}
