package repository

import (
	"context"

	"github.com/geoquery-service/internal/domain"
)

// MapRepository - источник дорожного графа (osm2pgsql база или .pbf выгрузка)
type MapRepository interface {
	// LoadMap загружает узлы и пригодные для маршрутизации дороги
	LoadMap(ctx context.Context) (*domain.MapData, error)
}
