package astar

// Edge is a directed, weighted edge. Weights must be non-negative.
type Edge[V comparable] struct {
	From   V
	To     V
	Weight float64
}

// Graph is the capability the solver needs from a graph.
//
// EstimatedDistanceToGoal must be non-negative. For Solve to return a shortest
// path it must also be admissible (never overestimate) and consistent; this is
// not checked.
type Graph[V comparable] interface {
	Neighbors(v V) []Edge[V]
	EstimatedDistanceToGoal(v, goal V) float64
}
