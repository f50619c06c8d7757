package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/route-engine/internal/domain"
	"github.com/route-engine/internal/usecase"
)

var (
	equatorOrigin      = domain.Coordinate{Latitude: 0, Longitude: 0}
	equatorDestination = domain.Coordinate{Latitude: 0, Longitude: 0.1}
)

func TestScorePOIs_Factors(t *testing.T) {
	t.Run("rated preferred POI on the line", func(t *testing.T) {
		poi := newPOI("a", 0, 0.05, domain.CategoryMuseum, ptrFloat64(5))

		scored := usecase.ScorePOIs([]*domain.POI{poi}, equatorOrigin, equatorDestination,
			[]domain.POICategory{domain.CategoryMuseum})
		require.Len(t, scored, 1)

		// rating 0.25 + uniqueness 0 + proximity 0.25 + clustering 0 + preference 0.15
		assert.InDelta(t, 0.65, scored[0].Score, 1e-6)
		assert.InDelta(t, 0, scored[0].DistanceFromLine, 1e-6)
		assert.InDelta(t, 0, scored[0].DetourEstimate, 1e-3)
	})

	t.Run("unrated POI far from the line", func(t *testing.T) {
		poi := newPOI("a", 0.05, 0.05, domain.CategoryPark, nil)

		scored := usecase.ScorePOIs([]*domain.POI{poi}, equatorOrigin, equatorDestination,
			[]domain.POICategory{domain.CategoryMuseum})
		require.Len(t, scored, 1)

		// rating 0.5*0.25 + preference 0.3*0.15; proximity is zero beyond 30% of the direct distance
		assert.InDelta(t, 0.17, scored[0].Score, 1e-6)
		assert.Greater(t, scored[0].DistanceFromLine, 5000.0)
		assert.Greater(t, scored[0].DetourEstimate, 0.0)
	})

	t.Run("rare categories and clusters score higher", func(t *testing.T) {
		museum1 := newPOI("m1", 0, 0.050, domain.CategoryMuseum, nil)
		museum2 := newPOI("m2", 0, 0.051, domain.CategoryMuseum, nil)
		park := newPOI("p", 0, 0.052, domain.CategoryPark, nil)
		lonely := newPOI("l", 0, 0.090, domain.CategoryMuseum, nil)

		scored := usecase.ScorePOIs([]*domain.POI{museum1, museum2, lonely, park},
			equatorOrigin, equatorDestination, nil)
		require.Len(t, scored, 4)

		byID := make(map[string]domain.ScoredPOI)
		for _, s := range scored {
			byID[s.POI.ID] = s
		}
		// park: uniqueness 1-1/4, two neighbours within 1 km
		assert.InDelta(t, 0.125+0.2*0.75+0.25+0.15*(2.0/3)+0.045, byID["p"].Score, 1e-6)
		// museum: uniqueness 1-3/4
		assert.InDelta(t, 0.125+0.2*0.25+0.25+0.15*(2.0/3)+0.045, byID["m1"].Score, 1e-6)
		assert.InDelta(t, 0.125+0.2*0.25+0.25+0.045, byID["l"].Score, 1e-6)
		assert.Equal(t, "p", scored[0].POI.ID)
		assert.Equal(t, "l", scored[3].POI.ID)
	})
}

func TestScorePOIs_StableOrder(t *testing.T) {
	first := newPOI("first", 0, 0.05, domain.CategoryMuseum, nil)
	second := newPOI("second", 0, 0.05, domain.CategoryMuseum, nil)

	scored := usecase.ScorePOIs([]*domain.POI{first, second}, equatorOrigin, equatorDestination, nil)
	assert.Equal(t, "first", scored[0].POI.ID)
	assert.Equal(t, "second", scored[1].POI.ID)

	scored = usecase.ScorePOIs([]*domain.POI{second, first}, equatorOrigin, equatorDestination, nil)
	assert.Equal(t, "second", scored[0].POI.ID)
}

func TestScorePOIs_Empty(t *testing.T) {
	assert.Empty(t, usecase.ScorePOIs(nil, equatorOrigin, equatorDestination, nil))
}
