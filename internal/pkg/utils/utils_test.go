package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoquery-service/internal/pkg/errors"
)

func TestCleanName(t *testing.T) {
	cases := map[string]string{
		"Top Dog":             "top dog",
		"Peet's Coffee & Tea": "peets coffee  tea",
		"7-Eleven":            "eleven",
		"Café":                "caf",
		"":                    "",
	}
	for in, want := range cases {
		assert.Equal(t, want, CleanName(in), in)
	}
}

func TestHaversine(t *testing.T) {
	// Berkeley to Oakland, about 7.5 km
	km := HaversineDistance(37.8716, -122.2727, 37.8044, -122.2712)
	assert.InDelta(t, 7.47, km, 0.05)
	assert.InDelta(t, km*1000, HaversineMeters(37.8716, -122.2727, 37.8044, -122.2712), 1e-6)
	assert.Zero(t, HaversineDistance(10, 10, 10, 10))
}

func TestProject_PreservesLocalDistances(t *testing.T) {
	lat1, lon1 := 37.8716, -122.2727
	lat2, lon2 := 37.8750, -122.2600

	x1, y1 := Project(lat1, lon1, 37.87)
	x2, y2 := Project(lat2, lon2, 37.87)
	planar := (x1-x2)*(x1-x2) + (y1-y2)*(y1-y2)

	meters := HaversineMeters(lat1, lon1, lat2, lon2)
	assert.InEpsilon(t, meters*meters, planar, 0.01)
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, ValidateCoordinates(0, 0))
	assert.True(t, ValidateCoordinates(-90, 180))
	assert.False(t, ValidateCoordinates(91, 0))
	assert.False(t, ValidateCoordinates(0, -181))
}

func TestSendError(t *testing.T) {
	app := fiber.New()
	app.Get("/known", func(c *fiber.Ctx) error {
		return SendError(c, fmt.Errorf("wrapped: %w", errors.ErrLocationNotFound))
	})
	app.Get("/unknown", func(c *fiber.Ctx) error {
		return SendError(c, io.EOF)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/known", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var body map[string]map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "LOCATION_NOT_FOUND", body["error"]["code"])

	resp, err = app.Test(httptest.NewRequest("GET", "/unknown", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
