package domain

// RouteOutcome - итог поиска маршрута
type RouteOutcome string

const (
	RouteSolved     RouteOutcome = "SOLVED"
	RouteUnsolvable RouteOutcome = "UNSOLVABLE"
	RouteTimeout    RouteOutcome = "TIMEOUT"
)

// Cacheable сообщает, можно ли сохранить результат в кеш.
// TIMEOUT зависит от нагрузки и не кешируется
func (o RouteOutcome) Cacheable() bool {
	return o == RouteSolved || o == RouteUnsolvable
}

// Route - результат поиска маршрута между двумя узлами графа
type Route struct {
	Outcome        RouteOutcome `json:"outcome"`
	StartNodeID    int64        `json:"start_node_id"`
	GoalNodeID     int64        `json:"goal_node_id"`
	NodeIDs        []int64      `json:"node_ids"`
	Points         []Point      `json:"points"`
	DistanceMeters float64      `json:"distance_meters"`
	ExploredStates int          `json:"explored_states"`
	ElapsedMs      float64      `json:"elapsed_ms"`
}
