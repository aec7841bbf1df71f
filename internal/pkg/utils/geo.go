package utils

import "math"

const (
	earthRadiusKm     = 6371.0
	earthRadiusMeters = earthRadiusKm * 1000
)

func toRadians(deg float64) float64 { return deg * math.Pi / 180.0 }

// HaversineDistance вычисляет расстояние между двумя точками в километрах
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// HaversineMeters - то же расстояние в метрах, используется как вес рёбер графа
func HaversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	return HaversineDistance(lat1, lon1, lat2, lon2) * 1000
}

// Project - равнопрямоугольная проекция в метрах относительно опорной широты.
// На масштабе города ближайшая точка в проекции совпадает с ближайшей на сфере
func Project(lat, lon, refLat float64) (x, y float64) {
	x = toRadians(lon) * math.Cos(toRadians(refLat)) * earthRadiusMeters
	y = toRadians(lat) * earthRadiusMeters
	return x, y
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
