// Package streetmap combines the road graph, the nearest-node index and the
// ranked name index built from one map extract.
package streetmap

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/geoquery-service/internal/domain"
	"github.com/geoquery-service/internal/pkg/astar"
	"github.com/geoquery-service/internal/pkg/kdtree"
	"github.com/geoquery-service/internal/pkg/trie"
	"github.com/geoquery-service/internal/pkg/utils"
)

var (
	ErrEmpty            = errors.New("streetmap: no routable nodes")
	ErrNodeNotFound     = errors.New("streetmap: node not found")
	ErrLocationNotFound = errors.New("streetmap: location not found")
)

// StreetMap is safe for concurrent use. The graph and the spatial index are
// immutable after Build; the name index is guarded by a mutex because reads
// update popularity scores.
type StreetMap struct {
	nodes  map[int64]domain.Node
	adj    map[int64][]astar.Edge[int64]
	edges  int
	ways   int
	refLat float64

	tree     *kdtree.Tree
	pointIDs map[kdtree.Point]int64

	mu      sync.Mutex
	names   *trie.Trie[[]domain.Location]
	display map[string]string
	named   int

	source   string
	coverage domain.BoundingBox
	loadedAt time.Time
	logger   *zap.Logger
}

// Build indexes data. Way segments referencing unknown nodes are skipped.
func Build(data *domain.MapData, logger *zap.Logger) *StreetMap {
	sm := &StreetMap{
		nodes:    make(map[int64]domain.Node, len(data.Nodes)),
		adj:      make(map[int64][]astar.Edge[int64]),
		pointIDs: make(map[kdtree.Point]int64),
		names:    trie.New[[]domain.Location](),
		display:  make(map[string]string),
		source:   data.Source,
		loadedAt: time.Now().UTC(),
		logger:   logger,
	}

	for i, n := range data.Nodes {
		sm.nodes[n.ID] = n
		sm.coverage.Extend(n.Lat, n.Lon, i == 0)
	}
	sm.refLat = sm.coverage.Center().Lat

	skipped := 0
	for _, w := range data.Ways {
		linked := false
		for i := 1; i < len(w.NodeIDs); i++ {
			from, okFrom := sm.nodes[w.NodeIDs[i-1]]
			to, okTo := sm.nodes[w.NodeIDs[i]]
			if !okFrom || !okTo {
				skipped++
				continue
			}
			if from.ID == to.ID {
				continue
			}
			sm.connect(from, to)
			if !w.Oneway {
				sm.connect(to, from)
			}
			linked = true
		}
		if linked {
			sm.ways++
		}
	}

	sm.indexPoints(data.Nodes)
	sm.indexNames(data.Nodes)

	logger.Info("Street map built",
		zap.String("source", sm.source),
		zap.Int("nodes", len(sm.nodes)),
		zap.Int("routable_nodes", sm.tree.Len()),
		zap.Int("edges", sm.edges),
		zap.Int("ways", sm.ways),
		zap.Int("skipped_segments", skipped),
		zap.Int("distinct_names", sm.names.Len()),
	)

	return sm
}

func (sm *StreetMap) connect(from, to domain.Node) {
	w := utils.HaversineMeters(from.Lat, from.Lon, to.Lat, to.Lon)
	sm.adj[from.ID] = append(sm.adj[from.ID], astar.Edge[int64]{From: from.ID, To: to.ID, Weight: w})
	if _, ok := sm.adj[to.ID]; !ok {
		sm.adj[to.ID] = nil
	}
	sm.edges++
}

// indexPoints inserts every node touched by an edge, in input order.
// Nodes sharing a position resolve to the first one.
func (sm *StreetMap) indexPoints(nodes []domain.Node) {
	points := make([]kdtree.Point, 0, len(sm.adj))
	for _, n := range nodes {
		if _, ok := sm.adj[n.ID]; !ok {
			continue
		}
		p := sm.project(n.Lat, n.Lon)
		if _, dup := sm.pointIDs[p]; dup {
			continue
		}
		sm.pointIDs[p] = n.ID
		points = append(points, p)
	}
	sm.tree = kdtree.New(points)
}

func (sm *StreetMap) indexNames(nodes []domain.Node) {
	for _, n := range nodes {
		if n.Name == "" {
			continue
		}
		cleaned := utils.CleanName(n.Name)
		if cleaned == "" {
			continue
		}
		loc := domain.Location{ID: n.ID, Name: n.Name, Lat: n.Lat, Lon: n.Lon}
		existing, err := sm.names.Peek(cleaned)
		if err != nil {
			sm.display[cleaned] = n.Name
		}
		sm.names.Put(cleaned, append(existing, loc))
		sm.named++
	}
}

func (sm *StreetMap) project(lat, lon float64) kdtree.Point {
	x, y := utils.Project(lat, lon, sm.refLat)
	return kdtree.Point{X: x, Y: y}
}

// Neighbors returns the outgoing edges of v.
func (sm *StreetMap) Neighbors(v int64) []astar.Edge[int64] {
	return sm.adj[v]
}

// EstimatedDistanceToGoal is the great-circle distance in metres, which never
// exceeds the length of any path between the two nodes.
func (sm *StreetMap) EstimatedDistanceToGoal(v, goal int64) float64 {
	a, okA := sm.nodes[v]
	b, okB := sm.nodes[goal]
	if !okA || !okB {
		return 0
	}
	return utils.HaversineMeters(a.Lat, a.Lon, b.Lat, b.Lon)
}

// Node returns the node with the given id.
func (sm *StreetMap) Node(id int64) (domain.Node, bool) {
	n, ok := sm.nodes[id]
	return n, ok
}

// Closest returns the id of the routable node nearest to (lat, lon).
func (sm *StreetMap) Closest(lat, lon float64) (int64, error) {
	p := sm.project(lat, lon)
	nearest, err := sm.tree.Nearest(p.X, p.Y)
	if err != nil {
		return 0, ErrEmpty
	}
	return sm.pointIDs[nearest], nil
}

// Route searches the shortest path between two nodes within timeout.
// Unreachable goals and exhausted budgets are reported through Outcome.
func (sm *StreetMap) Route(start, goal int64, timeout time.Duration) (*domain.Route, error) {
	if _, ok := sm.nodes[start]; !ok {
		return nil, ErrNodeNotFound
	}
	if _, ok := sm.nodes[goal]; !ok {
		return nil, ErrNodeNotFound
	}

	solver := astar.Solve[int64](sm, start, goal, timeout)

	route := &domain.Route{
		Outcome:        domain.RouteOutcome(solver.Outcome().String()),
		StartNodeID:    start,
		GoalNodeID:     goal,
		NodeIDs:        solver.Solution(),
		ExploredStates: solver.NumStatesExplored(),
		ElapsedMs:      float64(solver.ExplorationTime().Microseconds()) / 1000,
	}
	route.Points = make([]domain.Point, len(route.NodeIDs))
	for i, id := range route.NodeIDs {
		n := sm.nodes[id]
		route.Points[i] = domain.Point{Lat: n.Lat, Lon: n.Lon}
	}
	if route.Outcome == domain.RouteSolved {
		route.DistanceMeters = solver.SolutionWeight()
	}

	return route, nil
}

// LocationsByPrefix returns up to limit display names whose cleaned form starts
// with the cleaned prefix, most popular first. A prefix that cleans to nothing
// matches no names.
func (sm *StreetMap) LocationsByPrefix(prefix string, limit int) []string {
	cleaned := utils.CleanName(prefix)
	if cleaned == "" {
		return []string{}
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	keys, err := sm.names.KeysWithPrefix(cleaned, limit)
	if err != nil {
		return []string{}
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = sm.display[k]
	}
	return names
}

// Locations returns every location whose cleaned name equals the cleaned name
// and counts the lookup towards its popularity.
func (sm *StreetMap) Locations(name string) ([]domain.Location, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	locs, err := sm.names.Get(utils.CleanName(name))
	if err != nil {
		return nil, ErrLocationNotFound
	}
	return append([]domain.Location(nil), locs...), nil
}

// PeekLocations is Locations without the popularity update.
func (sm *StreetMap) PeekLocations(name string) ([]domain.Location, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	locs, err := sm.names.Peek(utils.CleanName(name))
	if err != nil {
		return nil, ErrLocationNotFound
	}
	return append([]domain.Location(nil), locs...), nil
}

// RecordHit counts one selection of name.
func (sm *StreetMap) RecordHit(name string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, err := sm.names.Get(utils.CleanName(name)); err != nil {
		return ErrLocationNotFound
	}
	return nil
}

// Popularity returns how often name has been selected.
func (sm *StreetMap) Popularity(name string) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	score, err := sm.names.Score(utils.CleanName(name))
	if err != nil {
		return 0
	}
	return score
}

// Stats describes the loaded map.
func (sm *StreetMap) Stats() domain.Statistics {
	sm.mu.Lock()
	distinct := sm.names.Len()
	sm.mu.Unlock()

	return domain.Statistics{
		Nodes:          len(sm.nodes),
		RoutableNodes:  sm.tree.Len(),
		Edges:          sm.edges,
		Ways:           sm.ways,
		NamedLocations: sm.named,
		DistinctNames:  distinct,
		Coverage:       sm.coverage,
		Source:         sm.source,
		LoadedAt:       sm.loadedAt,
	}
}
