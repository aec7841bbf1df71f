package domain

import "time"

type Point struct {
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`
}

type BoundingBox struct {
	MinLat float64 `json:"min_lat" db:"min_lat"`
	MinLon float64 `json:"min_lon" db:"min_lon"`
	MaxLat float64 `json:"max_lat" db:"max_lat"`
	MaxLon float64 `json:"max_lon" db:"max_lon"`
}

// Extend расширяет рамку до точки. Нулевая рамка принимает координаты первой точки
func (b *BoundingBox) Extend(lat, lon float64, first bool) {
	if first {
		*b = BoundingBox{MinLat: lat, MinLon: lon, MaxLat: lat, MaxLon: lon}
		return
	}
	b.MinLat = min(b.MinLat, lat)
	b.MinLon = min(b.MinLon, lon)
	b.MaxLat = max(b.MaxLat, lat)
	b.MaxLon = max(b.MaxLon, lon)
}

// Center центр рамки
func (b BoundingBox) Center() Point {
	return Point{Lat: (b.MinLat + b.MaxLat) / 2, Lon: (b.MinLon + b.MaxLon) / 2}
}

// Statistics представляет статистику загруженного дорожного графа
type Statistics struct {
	Nodes          int         `json:"nodes"`
	RoutableNodes  int         `json:"routable_nodes"`
	Edges          int         `json:"edges"`
	Ways           int         `json:"ways"`
	NamedLocations int         `json:"named_locations"`
	DistinctNames  int         `json:"distinct_names"`
	Coverage       BoundingBox `json:"coverage"`
	Source         string      `json:"source"`
	LoadedAt       time.Time   `json:"loaded_at"`
}
