// Package osmpbf loads the road graph from an OpenStreetMap .pbf extract.
package osmpbf

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"

	"github.com/geoquery-service/internal/domain"
	"github.com/geoquery-service/internal/domain/repository"
)

type mapRepository struct {
	path     string
	highways map[string]struct{}
	logger   *zap.Logger
}

// NewMapRepository создает загрузчик графа из файла .pbf
func NewMapRepository(path string, highways []string, logger *zap.Logger) repository.MapRepository {
	set := make(map[string]struct{}, len(highways))
	for _, h := range highways {
		set[h] = struct{}{}
	}
	return &mapRepository{path: path, highways: set, logger: logger}
}

// LoadMap читает файл в два прохода: сначала дороги, затем узлы,
// на которые они ссылаются, и именованные точки
func (r *mapRepository) LoadMap(ctx context.Context) (*domain.MapData, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open pbf: %w", err)
	}
	defer file.Close()

	ways, referenced, err := r.scanWays(ctx, file)
	if err != nil {
		return nil, err
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind pbf: %w", err)
	}

	nodes, err := r.scanNodes(ctx, file, referenced)
	if err != nil {
		return nil, err
	}

	r.logger.Info("PBF map loaded",
		zap.String("path", r.path),
		zap.Int("ways", len(ways)),
		zap.Int("nodes", len(nodes)),
	)

	return &domain.MapData{Nodes: nodes, Ways: ways, Source: "pbf"}, nil
}

func (r *mapRepository) scanWays(ctx context.Context, file io.Reader) ([]domain.Way, map[int64]struct{}, error) {
	scanner := osmpbf.New(ctx, file, runtime.GOMAXPROCS(-1))
	defer scanner.Close()
	scanner.SkipNodes = true
	scanner.SkipRelations = true

	var ways []domain.Way
	referenced := make(map[int64]struct{})
	for scanner.Scan() {
		w, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		way, ok := r.convertWay(w)
		if !ok {
			continue
		}
		for _, id := range way.NodeIDs {
			referenced[id] = struct{}{}
		}
		ways = append(ways, way)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("scan ways: %w", err)
	}
	return ways, referenced, nil
}

func (r *mapRepository) scanNodes(ctx context.Context, file io.Reader, referenced map[int64]struct{}) ([]domain.Node, error) {
	scanner := osmpbf.New(ctx, file, runtime.GOMAXPROCS(-1))
	defer scanner.Close()
	scanner.SkipWays = true
	scanner.SkipRelations = true

	nodes := make([]domain.Node, 0, len(referenced))
	for scanner.Scan() {
		n, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if node, keep := convertNode(n, referenced); keep {
			nodes = append(nodes, node)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan nodes: %w", err)
	}
	return nodes, nil
}

// convertWay оставляет только дороги с подходящим тегом highway и хотя бы двумя узлами
func (r *mapRepository) convertWay(w *osm.Way) (domain.Way, bool) {
	highway := w.Tags.Find("highway")
	if _, ok := r.highways[highway]; !ok || len(w.Nodes) < 2 {
		return domain.Way{}, false
	}

	refs := w.Nodes.NodeIDs()
	ids := make([]int64, len(refs))
	for i, ref := range refs {
		ids[i] = int64(ref)
	}

	oneway := false
	switch strings.ToLower(w.Tags.Find("oneway")) {
	case "yes", "true", "1":
		oneway = true
	case "-1", "reverse":
		oneway = true
		for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
			ids[i], ids[j] = ids[j], ids[i]
		}
	}
	if w.Tags.Find("junction") == "roundabout" {
		oneway = true
	}

	return domain.Way{
		ID:      int64(w.ID),
		NodeIDs: ids,
		Name:    w.Tags.Find("name"),
		Highway: highway,
		Oneway:  oneway,
	}, true
}

// convertNode оставляет узлы дорог и именованные точки
func convertNode(n *osm.Node, referenced map[int64]struct{}) (domain.Node, bool) {
	id := int64(n.ID)
	name := n.Tags.Find("name")
	if _, ok := referenced[id]; !ok && name == "" {
		return domain.Node{}, false
	}
	return domain.Node{ID: id, Lat: n.Lat, Lon: n.Lon, Name: name}, true
}
