package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoquery-service/internal/domain"
)

func TestCompressedCodec(t *testing.T) {
	route := &domain.Route{
		Outcome:     domain.RouteSolved,
		StartNodeID: 1,
		GoalNodeID:  3,
		NodeIDs:     make([]int64, 500),
		Points:      make([]domain.Point, 500),
	}

	data, err := marshalCompressed(route)
	require.NoError(t, err)

	var got domain.Route
	require.NoError(t, unmarshalCompressed(data, &got))
	assert.Equal(t, *route, got)

	assert.Error(t, unmarshalCompressed([]byte("not zstd"), &got))
}

func TestRouteKey(t *testing.T) {
	assert.Equal(t, "route:1:-3", routeKey(1, -3))
}
