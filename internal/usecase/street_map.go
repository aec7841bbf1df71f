package usecase

import (
	"time"

	"github.com/geoquery-service/internal/domain"
)

// StreetMap - то, что use case'ы используют из построенного дорожного графа
type StreetMap interface {
	Closest(lat, lon float64) (int64, error)
	Node(id int64) (domain.Node, bool)
	Route(start, goal int64, timeout time.Duration) (*domain.Route, error)
	LocationsByPrefix(prefix string, limit int) []string
	Locations(name string) ([]domain.Location, error)
	PeekLocations(name string) ([]domain.Location, error)
	RecordHit(name string) error
	Stats() domain.Statistics
}
