package georoute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bilboko-doinuak/models"
)

func TestHaversine(t *testing.T) {
	// 0.001° of latitude is roughly 111.2 meters anywhere on the globe.
	d := Haversine(43.0, -2.96, 43.001, -2.96)
	assert.InDelta(t, 111.2, d, 1.0)

	assert.Zero(t, Haversine(43.27, -2.96, 43.27, -2.96))
}

func TestNearestVertex(t *testing.T) {
	geometry := []models.LatLng{
		{43.270, -2.960},
		{43.271, -2.960},
		{43.272, -2.960},
	}
	assert.Equal(t, 0, NearestVertex(models.LatLng{43.2701, -2.960}, geometry))
	assert.Equal(t, 2, NearestVertex(models.LatLng{43.2725, -2.960}, geometry))
}

// straightRoute is ten vertices heading north, ~111 m apart.
func straightRoute() *models.Route {
	geometry := make([]models.LatLng, 10)
	for i := range geometry {
		geometry[i] = models.LatLng{43.270 + float64(i)*0.001, -2.960}
	}
	return &models.Route{ID: "test", Geometry: geometry}
}

func point(id string, lat, lng float64) models.SoundPoint {
	return models.SoundPoint{ID: id, Latitude: lat, Longitude: lng}
}

func TestOrderAlongRouteByRawCoordinate(t *testing.T) {
	route := straightRoute()
	points := []models.SoundPoint{
		point("far", 43.2781, -2.960),  // near vertex 8
		point("near", 43.2701, -2.960), // near vertex 0
		point("mid", 43.2742, -2.960),  // near vertex 4
	}

	ordered := OrderAlongRoute(points, route)
	require.Len(t, ordered, 3)
	assert.Equal(t, "near", ordered[0].ID)
	assert.Equal(t, "mid", ordered[1].ID)
	assert.Equal(t, "far", ordered[2].ID)
}

func TestOrderAlongRouteUsesApproachSegment(t *testing.T) {
	route := straightRoute()
	// The point itself sits beside vertex 1, but its street connector joins
	// the route at the far end: the connector must win.
	setBack := point("set-back", 43.2710, -2.9601)
	route.ApproachSegments = []models.ApproachSegment{
		{From: models.LatLng{43.2710, -2.9601}, To: models.LatLng{43.279, -2.960}},
	}
	other := point("roadside", 43.2731, -2.960) // near vertex 3

	ordered := OrderAlongRoute([]models.SoundPoint{setBack, other}, route)
	assert.Equal(t, "roadside", ordered[0].ID)
	assert.Equal(t, "set-back", ordered[1].ID)
}

func TestOrderAlongRouteIgnoresDistantSegments(t *testing.T) {
	route := straightRoute()
	// Segment origin is ~200 m from the point, outside the match radius, so
	// the raw coordinate is used and the point stays first.
	route.ApproachSegments = []models.ApproachSegment{
		{From: models.LatLng{43.2728, -2.960}, To: models.LatLng{43.279, -2.960}},
	}
	points := []models.SoundPoint{
		point("a", 43.2710, -2.960),
		point("b", 43.2745, -2.960),
	}

	ordered := OrderAlongRoute(points, route)
	assert.Equal(t, "a", ordered[0].ID)
	assert.Equal(t, "b", ordered[1].ID)
}

func TestOrderAlongRouteTiesKeepInputOrder(t *testing.T) {
	route := straightRoute()
	points := []models.SoundPoint{
		point("first", 43.2740, -2.9601),
		point("second", 43.2740, -2.9599),
	}

	ordered := OrderAlongRoute(points, route)
	assert.Equal(t, "first", ordered[0].ID)
	assert.Equal(t, "second", ordered[1].ID)
}

func TestOrderAlongRouteNilRoute(t *testing.T) {
	points := []models.SoundPoint{point("b", 1, 1), point("a", 0, 0)}

	ordered := OrderAlongRoute(points, nil)
	require.Len(t, ordered, 2)
	assert.Equal(t, "b", ordered[0].ID)
	assert.Equal(t, "a", ordered[1].ID)

	// The result is a copy, not the caller's slice.
	ordered[0] = point("x", 9, 9)
	assert.Equal(t, "b", points[0].ID)
}
