// Package astar computes shortest paths with the A* algorithm under a wall-clock budget.
package astar

import (
	"time"

	"github.com/geoquery-service/internal/pkg/pqueue"
)

// Outcome is the terminal state of a solver run.
type Outcome int

const (
	Solved Outcome = iota
	Unsolvable
	Timeout
)

func (o Outcome) String() string {
	switch o {
	case Solved:
		return "SOLVED"
	case Unsolvable:
		return "UNSOLVABLE"
	case Timeout:
		return "TIMEOUT"
	default:
		return "UNKNOWN"
	}
}

// Solver holds the state and result of one A* run.
type Solver[V comparable] struct {
	graph  Graph[V]
	start  V
	goal   V
	distTo map[V]float64
	edgeTo map[V]V
	fringe *pqueue.Queue[V]

	explored int
	elapsed  time.Duration
}

// Solve searches a path from start to goal, expanding vertices until the goal is the
// best fringe vertex, the fringe runs empty, or timeout elapses. The timeout is checked
// between expansions only.
func Solve[V comparable](g Graph[V], start, goal V, timeout time.Duration) *Solver[V] {
	began := time.Now()

	s := &Solver[V]{
		graph:  g,
		start:  start,
		goal:   goal,
		distTo: map[V]float64{start: 0},
		edgeTo: make(map[V]V),
		fringe: pqueue.New[V](),
	}
	_ = s.fringe.Add(start, s.heuristic(start))

	for time.Since(began) < timeout && s.fringe.Len() > 0 {
		best, _ := s.fringe.Peek()
		if best == goal {
			break
		}
		p, _ := s.fringe.Pop()
		s.explored++
		for _, e := range g.Neighbors(p) {
			s.relax(e)
		}
	}

	s.elapsed = time.Since(began)
	return s
}

func (s *Solver[V]) relax(e Edge[V]) {
	candidate := s.distTo[e.From] + e.Weight
	if known, ok := s.distTo[e.To]; ok && candidate >= known {
		return
	}
	s.distTo[e.To] = candidate
	s.edgeTo[e.To] = e.From

	priority := candidate + s.heuristic(e.To)
	if s.fringe.Contains(e.To) {
		_ = s.fringe.ChangePriority(e.To, priority)
		return
	}
	_ = s.fringe.Add(e.To, priority)
}

func (s *Solver[V]) heuristic(v V) float64 {
	return s.graph.EstimatedDistanceToGoal(v, s.goal)
}

// Outcome derives the terminal state from the final fringe.
func (s *Solver[V]) Outcome() Outcome {
	best, err := s.fringe.Peek()
	switch {
	case err != nil:
		return Unsolvable
	case best == s.goal:
		return Solved
	default:
		return Timeout
	}
}

// Solution returns the vertices from start to goal. It is empty unless the run was solved.
func (s *Solver[V]) Solution() []V {
	if s.Outcome() != Solved {
		return []V{}
	}
	path := []V{s.goal}
	for v := s.goal; v != s.start; {
		v = s.edgeTo[v]
		path = append(path, v)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// SolutionWeight returns the total weight of the solution. It is only meaningful
// when the outcome is Solved.
func (s *Solver[V]) SolutionWeight() float64 {
	return s.distTo[s.goal]
}

// NumStatesExplored returns how many vertices were dequeued.
func (s *Solver[V]) NumStatesExplored() int { return s.explored }

// ExplorationTime returns the wall-clock time spent in Solve.
func (s *Solver[V]) ExplorationTime() time.Duration { return s.elapsed }
