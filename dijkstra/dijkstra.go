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

// Package dijkstra finds shortest paths in directed graphs with
// non-negative edge lengths.
// https://en.wikipedia.org/wiki/Dijkstra%27s_algorithm
package dijkstra

import (
	"container/heap"
	"errors"
)

// ErrNoPath is returned if the end vertex cannot be reached.
var ErrNoPath = errors.New("dijkstra: no path")

// Length is the type of edge lengths.
type Length interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~float64
}

// Graph describes a directed graph with vertices of type V and edges
// of type E.
type Graph[V comparable, E any, L Length] interface {
	// Edges returns the edges leaving v.
	Edges(v V) []E

	// Length returns the (non-negative) length of e.
	Length(e E) L

	// To returns the end vertex of e.
	To(e E) V
}

// ShortestPath returns the edges of a shortest path from start to end.
func ShortestPath[V comparable, E any, L Length](g Graph[V, E, L], start, end V) ([]E, error) {
	type visit struct {
		dist L
		via  E
		from V
	}
	best := map[V]*visit{start: {}}
	done := map[V]bool{}

	q := &queue[V, L]{}
	heap.Push(q, &item[V, L]{v: start})
	for q.Len() > 0 {
		it := heap.Pop(q).(*item[V, L])
		v := it.v
		if done[v] {
			continue
		}
		done[v] = true
		if v == end {
			break
		}

		for _, e := range g.Edges(v) {
			w := g.To(e)
			if done[w] {
				continue
			}
			d := it.dist + g.Length(e)
			if b, seen := best[w]; seen && b.dist <= d {
				continue
			}
			best[w] = &visit{dist: d, via: e, from: v}
			heap.Push(q, &item[V, L]{v: w, dist: d})
		}
	}

	if !done[end] {
		return nil, ErrNoPath
	}

	var path []E
	for v := end; v != start; {
		b := best[v]
		path = append(path, b.via)
		v = b.from
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

type item[V any, L Length] struct {
	v    V
	dist L
}

type queue[V any, L Length] []*item[V, L]

func (q queue[V, L]) Len() int           { return len(q) }
func (q queue[V, L]) Less(i, j int) bool { return q[i].dist < q[j].dist }
func (q queue[V, L]) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *queue[V, L]) Push(x any) {
	*q = append(*q, x.(*item[V, L]))
}

func (q *queue[V, L]) Pop() any {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[:n-1]
	return x
}
