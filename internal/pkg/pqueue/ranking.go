package pqueue

// Ranked is an item with the score it was kept with.
type Ranked[R comparable] struct {
	Item  R
	Score float64
}

// Bounded keeps at most limit items with the highest scores seen so far.
// Among equal scores the earlier offered item is kept.
type Bounded[R comparable] struct {
	q     *Queue[R]
	limit int
}

// NewBounded creates a bounded set holding at most limit items.
func NewBounded[R comparable](limit int) *Bounded[R] {
	capacity := limit
	if capacity > 1024 {
		capacity = 1024
	}
	return &Bounded[R]{
		q:     New[R](WithTieBreak(LastIn), WithCapacity(capacity+1)),
		limit: limit,
	}
}

// Len returns the number of kept items.
func (b *Bounded[R]) Len() int { return b.q.Len() }

// Full reports whether the set holds limit items.
func (b *Bounded[R]) Full() bool { return b.q.Len() >= b.limit }

// Min returns the lowest kept score.
func (b *Bounded[R]) Min() (float64, error) { return b.q.PeekPriority() }

// Offer adds item and evicts the lowest scored member if the limit is exceeded.
// Offering an item that is already kept updates its score.
func (b *Bounded[R]) Offer(item R, score float64) {
	if b.limit < 1 {
		return
	}
	if b.q.Contains(item) {
		_ = b.q.ChangePriority(item, score)
		return
	}
	_ = b.q.Add(item, score)
	if b.q.Len() > b.limit {
		_, _ = b.q.Pop()
	}
}

// Drain empties the set and returns its members, highest score first.
func (b *Bounded[R]) Drain() []Ranked[R] {
	out := make([]Ranked[R], b.q.Len())
	for i := len(out) - 1; i >= 0; i-- {
		score, _ := b.q.PeekPriority()
		item, _ := b.q.Pop()
		out[i] = Ranked[R]{Item: item, Score: score}
	}
	return out
}

// TopK runs a best-first branch-and-bound search from root and returns up to limit
// results ordered by score, highest first.
//
// bound must return an upper bound of every score reachable from a node, expand
// yields the children of a node and emit reports whether a node is itself a result.
// Nodes are expanded in decreasing bound order; the search stops once limit results
// are kept and no remaining node can beat the lowest of them. Results with equal score
// keep the order in which they were reached.
func TopK[N comparable, R comparable](
	root N,
	limit int,
	bound func(N) float64,
	expand func(N, func(N)),
	emit func(N) (R, float64, bool),
) []Ranked[R] {
	if limit < 1 {
		return nil
	}

	frontier := New[N]()
	kept := NewBounded[R](limit)
	_ = frontier.Add(root, -bound(root))

	push := func(child N) {
		if !frontier.Contains(child) {
			_ = frontier.Add(child, -bound(child))
		}
	}

	for frontier.Len() > 0 {
		node, _ := frontier.Pop()
		if kept.Full() {
			lowest, _ := kept.Min()
			if bound(node) <= lowest {
				break
			}
		}
		if item, score, ok := emit(node); ok {
			kept.Offer(item, score)
		}
		expand(node, push)
	}

	return kept.Drain()
}
