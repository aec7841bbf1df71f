package dto

// Point - координаты точки
type Point struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

// NearestRequest - запрос ближайшего узла дорожного графа
type NearestRequest struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

// RouteRequest - запрос маршрута между двумя точками
type RouteRequest struct {
	Start *Point `json:"start" validate:"required"`
	End   *Point `json:"end" validate:"required"`
}

// AutocompleteRequest - запрос автодополнения названий
type AutocompleteRequest struct {
	Query string `json:"q" validate:"required,max=100"`
	Limit int    `json:"limit" validate:"omitempty,min=1"`
}

// LocationsRequest - запрос локаций по названию
type LocationsRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}
