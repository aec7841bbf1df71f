// Package trie implements a string-keyed prefix tree that ranks keys by how often
// they are read.
//
// Every successful Get increments the key's score. KeysWithPrefix returns the
// highest scored keys under a prefix using a best-first search bounded by the best
// score stored at every node. A Trie is not safe for concurrent use.
package trie

import (
	"errors"
	"sort"

	"github.com/geoquery-service/internal/pkg/pqueue"
)

// ErrNotFound is returned when a key or prefix is not present.
var ErrNotFound = errors.New("trie: not found")

const root int32 = 0

type edge struct {
	char  rune
	child int32
}

type node struct {
	edges    []edge // sorted by char
	terminal bool
	key      string
	score    int
	best     int // max of own score (if terminal) and the best of every child
}

// Trie maps strings to values of type V. Nodes live in an arena and are
// addressed by index; pruned nodes are reused through a free list.
type Trie[V any] struct {
	nodes  []node
	values map[int32]V
	free   []int32
	size   int
}

// New returns an empty trie.
func New[V any]() *Trie[V] {
	t := &Trie[V]{}
	t.Clear()
	return t
}

// Clear removes every key.
func (t *Trie[V]) Clear() {
	t.nodes = []node{{}}
	t.values = make(map[int32]V)
	t.free = nil
	t.size = 0
}

// Len returns the number of distinct keys.
func (t *Trie[V]) Len() int { return t.size }

func (t *Trie[V]) alloc() int32 {
	if n := len(t.free); n > 0 {
		idx := t.free[n-1]
		t.free = t.free[:n-1]
		t.nodes[idx] = node{}
		return idx
	}
	t.nodes = append(t.nodes, node{})
	return int32(len(t.nodes) - 1)
}

func (t *Trie[V]) release(idx int32) {
	delete(t.values, idx)
	t.nodes[idx] = node{}
	t.free = append(t.free, idx)
}

// find returns the position of char in the node's edges and whether it is present.
func (n *node) find(char rune) (int, bool) {
	i := sort.Search(len(n.edges), func(i int) bool { return n.edges[i].char >= char })
	return i, i < len(n.edges) && n.edges[i].char == char
}

func (t *Trie[V]) child(idx int32, char rune) (int32, bool) {
	n := &t.nodes[idx]
	i, ok := n.find(char)
	if !ok {
		return 0, false
	}
	return n.edges[i].child, true
}

// walk follows s from the root and returns the visited node indices, root first.
func (t *Trie[V]) walk(s string) ([]int32, bool) {
	path := make([]int32, 1, len(s)+1)
	path[0] = root
	cur := root
	for _, char := range s {
		next, ok := t.child(cur, char)
		if !ok {
			return path, false
		}
		cur = next
		path = append(path, cur)
	}
	return path, true
}

// lookup returns the path to the terminal node for key.
func (t *Trie[V]) lookup(key string) ([]int32, error) {
	path, ok := t.walk(key)
	if !ok || !t.nodes[path[len(path)-1]].terminal {
		return nil, ErrNotFound
	}
	return path, nil
}

// fixPath restores best on every node of path, deepest first.
func (t *Trie[V]) fixPath(path []int32) {
	for i := len(path) - 1; i >= 0; i-- {
		n := &t.nodes[path[i]]
		best := 0
		if n.terminal {
			best = n.score
		}
		for _, e := range n.edges {
			if b := t.nodes[e.child].best; b > best {
				best = b
			}
		}
		n.best = best
	}
}

// Put associates v with key. Overwriting an existing key keeps its score.
func (t *Trie[V]) Put(key string, v V) {
	cur := root
	for _, char := range key {
		i, ok := t.nodes[cur].find(char)
		if ok {
			cur = t.nodes[cur].edges[i].child
			continue
		}
		next := t.alloc()
		n := &t.nodes[cur]
		n.edges = append(n.edges, edge{})
		copy(n.edges[i+1:], n.edges[i:])
		n.edges[i] = edge{char: char, child: next}
		cur = next
	}

	n := &t.nodes[cur]
	if !n.terminal {
		n.terminal = true
		n.key = key
		t.size++
	}
	t.values[cur] = v
}

// Get returns the value for key and counts the access towards its score.
func (t *Trie[V]) Get(key string) (V, error) {
	path, err := t.lookup(key)
	if err != nil {
		var zero V
		return zero, err
	}
	last := path[len(path)-1]
	t.nodes[last].score++
	t.fixPath(path)
	return t.values[last], nil
}

// Peek returns the value for key without changing its score.
func (t *Trie[V]) Peek(key string) (V, error) {
	path, err := t.lookup(key)
	if err != nil {
		var zero V
		return zero, err
	}
	return t.values[path[len(path)-1]], nil
}

// ContainsKey reports whether key is present.
func (t *Trie[V]) ContainsKey(key string) bool {
	_, err := t.lookup(key)
	return err == nil
}

// Score returns the access count of key.
func (t *Trie[V]) Score(key string) (int, error) {
	path, err := t.lookup(key)
	if err != nil {
		return 0, err
	}
	return t.nodes[path[len(path)-1]].score, nil
}

// Remove deletes key and returns its value. Nodes left without children that
// do not terminate another key are pruned.
func (t *Trie[V]) Remove(key string) (V, error) {
	path, err := t.lookup(key)
	if err != nil {
		var zero V
		return zero, err
	}

	last := path[len(path)-1]
	v := t.values[last]
	delete(t.values, last)
	n := &t.nodes[last]
	n.terminal = false
	n.key = ""
	n.score = 0
	t.size--

	// prune from the bottom while the node is an empty non-root leaf
	for len(path) > 1 {
		idx := path[len(path)-1]
		cur := &t.nodes[idx]
		if cur.terminal || len(cur.edges) > 0 {
			break
		}
		parent := &t.nodes[path[len(path)-2]]
		for i, e := range parent.edges {
			if e.child == idx {
				parent.edges = append(parent.edges[:i], parent.edges[i+1:]...)
				break
			}
		}
		t.release(idx)
		path = path[:len(path)-1]
	}

	t.fixPath(path)
	return v, nil
}

// KeysWithPrefix returns up to limit keys starting with prefix, highest score
// first. Keys with equal scores are returned in the order the search reaches
// them: nodes with equal best are expanded in insertion order of the frontier,
// and children are pushed in character order.
func (t *Trie[V]) KeysWithPrefix(prefix string, limit int) ([]string, error) {
	path, ok := t.walk(prefix)
	if !ok {
		return nil, ErrNotFound
	}

	ranked := pqueue.TopK[int32, string](path[len(path)-1], limit,
		func(idx int32) float64 { return float64(t.nodes[idx].best) },
		func(idx int32, push func(int32)) {
			for _, e := range t.nodes[idx].edges {
				push(e.child)
			}
		},
		func(idx int32) (string, float64, bool) {
			n := &t.nodes[idx]
			return n.key, float64(n.score), n.terminal
		},
	)

	keys := make([]string, len(ranked))
	for i, r := range ranked {
		keys[i] = r.Item
	}
	return keys, nil
}

// AllKeysWithPrefix returns every key starting with prefix, highest score first.
func (t *Trie[V]) AllKeysWithPrefix(prefix string) ([]string, error) {
	return t.KeysWithPrefix(prefix, t.size)
}

// Keys returns every key in lexicographic order.
func (t *Trie[V]) Keys() []string {
	keys := make([]string, 0, t.size)
	stack := []int32{root}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.nodes[idx]
		if n.terminal {
			keys = append(keys, n.key)
		}
		for i := len(n.edges) - 1; i >= 0; i-- {
			stack = append(stack, n.edges[i].child)
		}
	}
	return keys
}
