package postgresosm

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/geoquery-service/internal/domain"
	"github.com/geoquery-service/internal/domain/repository"
	pkgerrors "github.com/geoquery-service/internal/pkg/errors"
)

type mapRepository struct {
	db       *sqlx.DB
	logger   *zap.Logger
	highways []string
}

// NewMapRepository создает репозиторий дорожного графа для OSM базы данных.
// highways - значения тега highway, которые попадают в граф
func NewMapRepository(db *DB, highways []string) repository.MapRepository {
	return &mapRepository{
		db:       db.DB,
		logger:   db.logger,
		highways: highways,
	}
}

type wayRow struct {
	ID      int64         `db:"id"`
	Nodes   pq.Int64Array `db:"nodes"`
	Name    string        `db:"name"`
	Highway string        `db:"highway"`
	Oneway  string        `db:"oneway"`
}

type nodeRow struct {
	ID   int64   `db:"id"`
	Lat  float64 `db:"lat"`
	Lon  float64 `db:"lon"`
	Name string  `db:"name"`
}

// LoadMap загружает дороги и именованные точки параллельно, затем
// координаты всех узлов дорог пачками
func (r *mapRepository) LoadMap(ctx context.Context) (*domain.MapData, error) {
	var (
		ways  []domain.Way
		named []nodeRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ways, err = r.loadWays(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		named, err = r.loadNamedPoints(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		r.logger.Error("failed to load osm map", zap.Error(err))
		return nil, pkgerrors.ErrDatabaseError
	}

	coords, err := r.loadNodeCoords(ctx, referencedNodeIDs(ways))
	if err != nil {
		r.logger.Error("failed to load osm node coordinates", zap.Error(err))
		return nil, pkgerrors.ErrDatabaseError
	}

	nodes := mergeNodes(coords, named)

	r.logger.Info("OSM map loaded",
		zap.Int("ways", len(ways)),
		zap.Int("nodes", len(nodes)),
		zap.Int("named_points", len(named)),
	)

	return &domain.MapData{Nodes: nodes, Ways: ways, Source: "postgres"}, nil
}

func (r *mapRepository) loadWays(ctx context.Context) ([]domain.Way, error) {
	query := fmt.Sprintf(`
		SELECT
			l.osm_id AS id,
			w.nodes,
			COALESCE(l.name, '') AS name,
			l.highway,
			COALESCE(l.oneway, '') AS oneway
		FROM %s l
		JOIN %s w ON w.id = l.osm_id
		WHERE l.osm_id > 0
		  AND l.highway = ANY($1)
		ORDER BY l.osm_id
	`, planetLineTable, planetWaysTable)

	var rows []wayRow
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(r.highways)); err != nil {
		return nil, fmt.Errorf("select ways: %w", err)
	}

	ways := make([]domain.Way, 0, len(rows))
	for _, row := range rows {
		oneway, reverse := parseOneway(row.Oneway)
		ids := []int64(row.Nodes)
		if reverse {
			reverseIDs(ids)
		}
		ways = append(ways, domain.Way{
			ID:      row.ID,
			NodeIDs: ids,
			Name:    row.Name,
			Highway: row.Highway,
			Oneway:  oneway,
		})
	}
	return ways, nil
}

func (r *mapRepository) loadNamedPoints(ctx context.Context) ([]nodeRow, error) {
	query := fmt.Sprintf(`
		SELECT
			osm_id AS id,
			ST_Y(ST_Transform(way, 4326)) AS lat,
			ST_X(ST_Transform(way, 4326)) AS lon,
			name
		FROM %s
		WHERE osm_id > 0
		  AND name IS NOT NULL AND name <> ''
		ORDER BY osm_id
	`, planetPointTable)

	var rows []nodeRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select named points: %w", err)
	}
	return rows, nil
}

func (r *mapRepository) loadNodeCoords(ctx context.Context, ids []int64) ([]nodeRow, error) {
	query := fmt.Sprintf(`
		SELECT id, lat::float8 / %g AS lat, lon::float8 / %g AS lon, '' AS name
		FROM %s
		WHERE id = ANY($1)
	`, coordScale, coordScale, planetNodesTable)

	var (
		mu  sync.Mutex
		out = make([]nodeRow, 0, len(ids))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(nodeQueryParallelism)
	for _, chunk := range chunkIDs(ids, nodeChunkSize) {
		g.Go(func() error {
			var rows []nodeRow
			if err := r.db.SelectContext(gctx, &rows, query, pq.Array(chunk)); err != nil {
				return fmt.Errorf("select nodes: %w", err)
			}
			mu.Lock()
			out = append(out, rows...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// referencedNodeIDs возвращает уникальные идентификаторы узлов всех дорог по возрастанию
func referencedNodeIDs(ways []domain.Way) []int64 {
	seen := make(map[int64]struct{})
	for _, w := range ways {
		for _, id := range w.NodeIDs {
			seen[id] = struct{}{}
		}
	}
	ids := make([]int64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// mergeNodes объединяет узлы дорог с именованными точками. Имя точки
// переносится на узел дороги с тем же идентификатором, остальные точки
// добавляются как отдельные узлы. Результат упорядочен по идентификатору
func mergeNodes(coords, named []nodeRow) []domain.Node {
	byID := make(map[int64]domain.Node, len(coords)+len(named))
	for _, c := range coords {
		byID[c.ID] = domain.Node{ID: c.ID, Lat: c.Lat, Lon: c.Lon}
	}
	for _, p := range named {
		if n, ok := byID[p.ID]; ok {
			n.Name = p.Name
			byID[p.ID] = n
			continue
		}
		byID[p.ID] = domain.Node{ID: p.ID, Lat: p.Lat, Lon: p.Lon, Name: p.Name}
	}

	nodes := make([]domain.Node, 0, len(byID))
	for _, n := range byID {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	return nodes
}
