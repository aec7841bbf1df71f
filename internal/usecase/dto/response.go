package dto

import "github.com/geoquery-service/internal/domain"

// NearestResponse - ближайший узел графа
type NearestResponse struct {
	NodeID         int64        `json:"node_id"`
	Point          domain.Point `json:"point"`
	DistanceMeters float64      `json:"distance_meters"`
}

// RouteResponse - результат поиска маршрута. TIMEOUT и UNSOLVABLE являются
// штатными исходами и возвращаются без ошибки
type RouteResponse struct {
	domain.Route
	Cached bool `json:"cached"`
}

// AutocompleteResponse - названия в порядке популярности
type AutocompleteResponse struct {
	Query string   `json:"query"`
	Names []string `json:"names"`
	Total int      `json:"total"`
}

// LocationsResponse - все локации с одинаковым очищенным названием
type LocationsResponse struct {
	Name      string            `json:"name"`
	Locations []domain.Location `json:"locations"`
	Total     int               `json:"total"`
}
