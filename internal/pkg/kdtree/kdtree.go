// Package kdtree implements a two-dimensional k-d tree for nearest neighbour lookups.
//
// The tree is unbalanced: points are inserted one at a time and the split axis
// alternates with depth (x at even depth, y at odd depth), so insertion order
// determines the shape of the tree.
package kdtree

import (
	"errors"
	"math"
)

// ErrEmpty is returned by Nearest when the tree holds no points.
var ErrEmpty = errors.New("kdtree: tree is empty")

const noChild int32 = -1

// Point is a location in the plane.
type Point struct {
	X float64
	Y float64
}

// DistanceSq returns the squared euclidean distance between p and (x, y).
func (p Point) DistanceSq(x, y float64) float64 {
	dx := p.X - x
	dy := p.Y - y
	return dx*dx + dy*dy
}

type node struct {
	point Point
	left  int32
	right int32
	axis  uint8
}

// coord returns the node's coordinate on its split axis and the matching coordinate of (x, y).
func (n *node) coord(x, y float64) (float64, float64) {
	if n.axis == 0 {
		return n.point.X, x
	}
	return n.point.Y, y
}

// Tree is a 2-d tree stored in a node arena; child links are arena indices.
type Tree struct {
	nodes []node
}

// New builds a tree by inserting points in the given order.
func New(points []Point) *Tree {
	t := &Tree{nodes: make([]node, 0, len(points))}
	for _, p := range points {
		t.Insert(p)
	}
	return t
}

// Len returns the number of distinct points in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Points returns the indexed points in insertion order.
func (t *Tree) Points() []Point {
	out := make([]Point, len(t.nodes))
	for i := range t.nodes {
		out[i] = t.nodes[i].point
	}
	return out
}

// Insert adds p to the tree. Inserting a point that is already present is a no-op.
func (t *Tree) Insert(p Point) {
	if len(t.nodes) == 0 {
		t.nodes = append(t.nodes, node{point: p, left: noChild, right: noChild})
		return
	}

	cur := int32(0)
	for {
		n := &t.nodes[cur]
		if n.point == p {
			return
		}

		split, value := n.coord(p.X, p.Y)
		next := &n.right
		if split >= value {
			next = &n.left
		}
		if *next != noChild {
			cur = *next
			continue
		}

		idx := int32(len(t.nodes))
		*next = idx
		axis := (n.axis + 1) % 2
		t.nodes = append(t.nodes, node{point: p, left: noChild, right: noChild, axis: axis})
		return
	}
}

type pending struct {
	idx   int32
	bound float64 // squared distance from the query to the parent's split line
}

// Nearest returns the indexed point closest to (x, y).
//
// The near side of every split is searched first; the far side is only visited
// while the squared distance to the split line is smaller than the best squared
// distance found so far. If several points are equally close, the first one
// reached wins.
func (t *Tree) Nearest(x, y float64) (Point, error) {
	if len(t.nodes) == 0 {
		return Point{}, ErrEmpty
	}

	best := t.nodes[0].point
	bestDist := math.Inf(1)

	stack := make([]pending, 0, 64)
	stack = append(stack, pending{idx: 0})

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.bound >= bestDist {
			continue
		}

		n := &t.nodes[top.idx]
		if d := n.point.DistanceSq(x, y); d < bestDist {
			bestDist = d
			best = n.point
		}

		split, value := n.coord(x, y)
		near, far := n.right, n.left
		if split >= value {
			near, far = n.left, n.right
		}

		// far is pushed first so the near side is popped first
		if far != noChild {
			delta := split - value
			stack = append(stack, pending{idx: far, bound: delta * delta})
		}
		if near != noChild {
			stack = append(stack, pending{idx: near})
		}
	}

	return best, nil
}
