// Package pqueue provides an indexed binary min-heap with O(1) membership test
// and O(log n) priority updates, plus a bounded best-first ranking routine built on it.
package pqueue

import "errors"

var (
	// ErrDuplicateItem is returned by Add when the item is already queued.
	ErrDuplicateItem = errors.New("pqueue: item already present")
	// ErrEmpty is returned by Peek and Pop on an empty queue.
	ErrEmpty = errors.New("pqueue: queue is empty")
	// ErrNotFound is returned by ChangePriority when the item is not queued.
	ErrNotFound = errors.New("pqueue: item not found")
)

// TieBreak decides the order of entries with equal priority.
type TieBreak int

const (
	// FirstIn serves the entry added earlier first.
	FirstIn TieBreak = iota
	// LastIn serves the entry added later first.
	LastIn
)

// Option configures a Queue.
type Option func(*options)

type options struct {
	tieBreak TieBreak
	capacity int
}

// WithTieBreak sets the ordering among equal priorities. Default is FirstIn.
func WithTieBreak(tb TieBreak) Option {
	return func(o *options) { o.tieBreak = tb }
}

// WithCapacity preallocates room for n items.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

type entry[T comparable] struct {
	item     T
	priority float64
	pos      int
	seq      uint64
}

// Queue is an indexed min-priority queue over comparable items.
//
// Every queued item owns exactly one entry; entry.pos always equals the entry's
// slot in heap. Queue is not safe for concurrent use.
type Queue[T comparable] struct {
	heap     []*entry[T]
	index    map[T]*entry[T]
	seq      uint64
	tieBreak TieBreak
}

// New creates an empty queue.
func New[T comparable](opts ...Option) *Queue[T] {
	o := options{tieBreak: FirstIn}
	for _, opt := range opts {
		opt(&o)
	}
	return &Queue[T]{
		heap:     make([]*entry[T], 0, o.capacity),
		index:    make(map[T]*entry[T], o.capacity),
		tieBreak: o.tieBreak,
	}
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int { return len(q.heap) }

// Contains reports whether item is queued.
func (q *Queue[T]) Contains(item T) bool {
	_, ok := q.index[item]
	return ok
}

// Priority returns the current priority of item.
func (q *Queue[T]) Priority(item T) (float64, bool) {
	e, ok := q.index[item]
	if !ok {
		return 0, false
	}
	return e.priority, true
}

// Add queues item with the given priority.
func (q *Queue[T]) Add(item T, priority float64) error {
	if _, ok := q.index[item]; ok {
		return ErrDuplicateItem
	}
	e := &entry[T]{item: item, priority: priority, pos: len(q.heap), seq: q.seq}
	q.seq++
	q.heap = append(q.heap, e)
	q.index[item] = e
	q.swim(e.pos)
	return nil
}

// Peek returns the item with the smallest priority without removing it.
func (q *Queue[T]) Peek() (T, error) {
	if len(q.heap) == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return q.heap[0].item, nil
}

// PeekPriority returns the smallest priority in the queue.
func (q *Queue[T]) PeekPriority() (float64, error) {
	if len(q.heap) == 0 {
		return 0, ErrEmpty
	}
	return q.heap[0].priority, nil
}

// Pop removes and returns the item with the smallest priority.
func (q *Queue[T]) Pop() (T, error) {
	n := len(q.heap)
	if n == 0 {
		var zero T
		return zero, ErrEmpty
	}
	root := q.heap[0]
	q.swap(0, n-1)
	q.heap[n-1] = nil
	q.heap = q.heap[:n-1]
	delete(q.index, root.item)
	if len(q.heap) > 0 {
		q.sink(0)
	}
	return root.item, nil
}

// ChangePriority updates the priority of a queued item and restores heap order.
func (q *Queue[T]) ChangePriority(item T, priority float64) error {
	e, ok := q.index[item]
	if !ok {
		return ErrNotFound
	}
	e.priority = priority
	q.sink(e.pos)
	q.swim(e.pos)
	return nil
}

// less orders by priority, then by insertion sequence according to the tie-break policy.
func (q *Queue[T]) less(i, j int) bool {
	a, b := q.heap[i], q.heap[j]
	if a.priority != b.priority {
		return a.priority < b.priority
	}
	if q.tieBreak == LastIn {
		return a.seq > b.seq
	}
	return a.seq < b.seq
}

// swap is the only place where entry positions change.
func (q *Queue[T]) swap(i, j int) {
	q.heap[i], q.heap[j] = q.heap[j], q.heap[i]
	q.heap[i].pos = i
	q.heap[j].pos = j
}

func (q *Queue[T]) swim(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !q.less(i, p) {
			return
		}
		q.swap(i, p)
		i = p
	}
}

func (q *Queue[T]) sink(i int) {
	n := len(q.heap)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		smaller := l
		if r := l + 1; r < n && q.less(r, l) {
			smaller = r
		}
		if !q.less(smaller, i) {
			return
		}
		q.swap(i, smaller)
		i = smaller
	}
}
