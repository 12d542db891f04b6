/*
 * Copyright 2020 Dennis Kuhnert
 * Copyright 2020 Ivanov Nikita
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

// Package kdtree is a static k-d tree over indexed points. Nearest neighbour
// search is exact for any distance bounded below by the per-axis difference,
// which holds for every Minkowski metric.
package kdtree

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var ErrEmpty = errors.New("tree is empty")

type DistanceFn func(vec, vec1 []float64) (float64, error)

// Neighbor is a point index with its distance to the query.
type Neighbor struct {
	Index    int
	Distance float64
}

type node struct {
	idx         int
	axis        int
	left, right *node
}

type Tree struct {
	root   *node
	points [][]float64
	dims   int
	distFn DistanceFn
}

func New(distFn DistanceFn) *Tree {
	return &Tree{distFn: distFn}
}

// Build replaces the tree content. Neighbours are reported by their position
// in points. The slices are kept, not copied.
func (t *Tree) Build(points ...[]float64) error {
	t.root, t.points, t.dims = nil, nil, 0
	if len(points) == 0 {
		return nil
	}
	dims := len(points[0])
	if dims == 0 {
		return fmt.Errorf("points have no dimensions")
	}
	for i, p := range points {
		if len(p) != dims {
			return fmt.Errorf("point %d has %d dimensions, expected %d", i, len(p), dims)
		}
	}
	idx := make([]int, len(points))
	for i := range idx {
		idx[i] = i
	}
	t.points, t.dims = points, dims
	t.root = t.build(idx, 0)
	return nil
}

func (t *Tree) build(idx []int, depth int) *node {
	if len(idx) == 0 {
		return nil
	}
	axis := depth % t.dims
	sort.SliceStable(idx, func(i, j int) bool {
		return t.points[idx[i]][axis] < t.points[idx[j]][axis]
	})
	mid := len(idx) / 2
	return &node{
		idx:   idx[mid],
		axis:  axis,
		left:  t.build(idx[:mid], depth+1),
		right: t.build(idx[mid+1:], depth+1),
	}
}

func (t *Tree) Len() int {
	return len(t.points)
}

func (t *Tree) Dimensions() int {
	return t.dims
}

// KNN returns the k points closest to q ordered by distance, then by index.
func (t *Tree) KNN(q []float64, k int) ([]Neighbor, error) {
	if t.root == nil {
		return nil, ErrEmpty
	}
	if k < 1 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}
	if len(q) != t.dims {
		return nil, fmt.Errorf("query has %d dimensions, expected %d", len(q), t.dims)
	}
	s := &search{q: q, k: k, best: make([]Neighbor, 0, k)}
	if err := t.knn(t.root, s); err != nil {
		return nil, err
	}
	return s.best, nil
}

type search struct {
	q    []float64
	k    int
	best []Neighbor
}

func (t *Tree) knn(n *node, s *search) error {
	if n == nil {
		return nil
	}
	distance, err := t.distFn(s.q, t.points[n.idx])
	if err != nil {
		return fmt.Errorf("compute knn error: %w", err)
	}
	s.offer(Neighbor{Index: n.idx, Distance: distance})

	diff := s.q[n.axis] - t.points[n.idx][n.axis]
	near, far := n.left, n.right
	if diff >= 0 {
		near, far = n.right, n.left
	}
	if err := t.knn(near, s); err != nil {
		return err
	}
	// Equal bounds are visited so that ties resolve by index.
	if len(s.best) < s.k || math.Abs(diff) <= s.best[len(s.best)-1].Distance {
		return t.knn(far, s)
	}
	return nil
}

func (s *search) offer(n Neighbor) {
	pos := sort.Search(len(s.best), func(i int) bool {
		b := s.best[i]
		return b.Distance > n.Distance || (b.Distance == n.Distance && b.Index > n.Index)
	})
	if pos >= s.k {
		return
	}
	if len(s.best) < s.k {
		s.best = append(s.best, Neighbor{})
	}
	copy(s.best[pos+1:], s.best[pos:len(s.best)-1])
	s.best[pos] = n
}
