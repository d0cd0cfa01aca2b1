package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContent(t *testing.T) *ContentService {
	t.Helper()
	s, err := NewContentService(nil)
	require.NoError(t, err)
	return s
}

func pointIDs(points []LocalizedSoundPoint) []string {
	ids := make([]string, len(points))
	for i, p := range points {
		ids[i] = p.ID
	}
	return ids
}

func TestSoundPointsLocalization(t *testing.T) {
	s := newTestContent(t)

	es := s.SoundPoints("es", "", "")
	eu := s.SoundPoints("eu", "", "")
	require.NotEmpty(t, es)
	require.Equal(t, len(es), len(eu))

	first, err := s.SoundPoint("fuente-plaza-levante", "es")
	require.NoError(t, err)
	assert.Equal(t, "Fuente de la Plaza Levante", first.Title)

	firstEU, err := s.SoundPoint("fuente-plaza-levante", "eu")
	require.NoError(t, err)
	assert.Equal(t, "Levante Plazako iturria", firstEU.Title)
}

func TestSoundPointBySlug(t *testing.T) {
	s := newTestContent(t)

	p, err := s.SoundPoint("fuente-de-la-plaza-levante", "es")
	require.NoError(t, err)
	assert.Equal(t, "fuente-plaza-levante", p.ID)

	_, err = s.SoundPoint("no-such-point", "es")
	assert.Error(t, err)
}

func TestSoundPointsSearchIsAccentInsensitive(t *testing.T) {
	s := newTestContent(t)

	// "trafico" without the accent must still match "Tráfico en el puente".
	got := s.SoundPoints("es", "trafico", "")
	assert.Contains(t, pointIDs(got), "zubia-trafikoa")

	// Basque titles are searched too.
	got = s.SoundPoints("es", "kanpaiak", "")
	assert.Equal(t, []string{"eliza-kanpaiak"}, pointIDs(got))

	assert.Empty(t, s.SoundPoints("es", "zzzznothing", ""))
}

func TestSoundPointsCategoryFilter(t *testing.T) {
	s := newTestContent(t)

	nature := s.SoundPoints("es", "", "nature")
	assert.ElementsMatch(t, []string{"parque-txoriak", "haizea-itsasadarra"}, pointIDs(nature))

	for _, p := range nature {
		assert.Equal(t, "nature", p.Category)
	}
}

func TestRoutes(t *testing.T) {
	s := newTestContent(t)

	routes := s.Routes("eu")
	require.Len(t, routes, 2)

	ibaia, err := s.Route("ibaia", "eu")
	require.NoError(t, err)
	assert.Equal(t, "Itsasadarraren ibilbidea", ibaia.Name)
	assert.Equal(t, 4, ibaia.PointCount)
	assert.NotEmpty(t, ibaia.Geometry)

	bySlug, err := s.Route("ruta-de-la-ria", "es")
	require.NoError(t, err)
	assert.Equal(t, "ibaia", bySlug.ID)

	_, err = s.Route("no-such-route", "es")
	assert.Error(t, err)
}

func TestRoutePointsWalkingOrder(t *testing.T) {
	s := newTestContent(t)

	ibaia, err := s.RoutePoints("ibaia", "es")
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"fuente-plaza-levante", "parque-txoriak", "frontoia", "zubia-trafikoa"},
		pointIDs(ibaia))

	// The park route visits the shared bridge point mid-route, between the
	// market and the old fountain.
	parkea, err := s.RoutePoints("parkea", "es")
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"txakurrak-parkea", "merkatua", "zubia-trafikoa", "iturria-parkea"},
		pointIDs(parkea))
}

func TestSoundExists(t *testing.T) {
	s := newTestContent(t)
	assert.True(t, s.SoundExists("frontoia"))
	assert.False(t, s.SoundExists("frontoia-2"))
}

func TestCollectionProgress(t *testing.T) {
	s := newTestContent(t)

	overall := s.CollectionProgress([]string{"fuente-plaza-levante", "parque-txoriak"}, "es")
	assert.Equal(t, 10, overall.TotalSounds)
	assert.Equal(t, 2, overall.TotalUnlocked)
	assert.Equal(t, 20, overall.Percentage)
	require.Len(t, overall.Categories, len(CollectionCategories))

	byID := map[string]CollectionProgress{}
	for _, c := range overall.Categories {
		byID[c.Category.ID] = c
	}

	urban := byID["urban"]
	assert.Equal(t, 3, urban.Total)
	assert.Equal(t, 1, urban.Unlocked)
	assert.Equal(t, 33, urban.Percentage)

	animals := byID["animals"]
	assert.Equal(t, 1, animals.Total)
	assert.Zero(t, animals.Unlocked)
	assert.Zero(t, animals.Percentage)
}

func TestCollectionProgressEmpty(t *testing.T) {
	s := newTestContent(t)

	overall := s.CollectionProgress(nil, "eu")
	assert.Zero(t, overall.TotalUnlocked)
	assert.Zero(t, overall.Percentage)
	for _, c := range overall.Categories {
		assert.Zero(t, c.Unlocked)
	}
}
