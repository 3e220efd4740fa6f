package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tripmitra/api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMapViewAssemblesOverlaysAndBounds(t *testing.T) {
	north := &models.Destination{
		ID:             primitive.NewObjectID(),
		Name:           "Manali",
		GeoCoords:      models.GeoCoords{Latitude: 32.2, Longitude: 77.2},
		SafetyGradient: models.SafetyHigh,
	}
	south := &models.Destination{
		ID:             primitive.NewObjectID(),
		Name:           "Kovalam",
		GeoCoords:      models.GeoCoords{Latitude: 8.4, Longitude: 76.9},
		SafetyGradient: models.SafetyLow,
	}
	facility := &models.Facility{
		ID:          primitive.NewObjectID(),
		Type:        models.FacilityHospital,
		Name:        "District Hospital",
		Coordinates: models.GeoCoords{Latitude: 8.5, Longitude: 76.95},
		Verified:    true,
		Rating:      4.2,
	}

	ms := NewMapService(
		&fakeDestinationRepo{destinations: []*models.Destination{north, south}},
		&fakeFacilityRepo{facilities: []*models.Facility{facility}},
	)

	data, err := ms.MapView(context.Background(), models.DestinationFilter{}, nil, "")
	require.NoError(t, err)

	require.Len(t, data.SafetyOverlay, 2)
	assert.Equal(t, "#10b981", data.SafetyOverlay[0].Color)
	assert.Equal(t, "#ef4444", data.SafetyOverlay[1].Color)
	assert.Equal(t, 0.3, data.SafetyOverlay[0].Opacity)

	require.Len(t, data.FacilityMarkers, 1)
	assert.Equal(t, []float64{76.95, 8.5}, data.FacilityMarkers[0].Coordinates)

	require.NotNil(t, data.Bounds)
	assert.Equal(t, 32.2, data.Bounds.North)
	assert.Equal(t, 8.4, data.Bounds.South)
	assert.Equal(t, 77.2, data.Bounds.East)
	assert.Equal(t, 76.9, data.Bounds.West)
}

func TestMapViewEmpty(t *testing.T) {
	ms := NewMapService(&fakeDestinationRepo{}, &fakeFacilityRepo{})

	data, err := ms.MapView(context.Background(), models.DestinationFilter{}, nil, "")
	require.NoError(t, err)

	assert.Empty(t, data.Destinations)
	assert.Nil(t, data.Bounds)
}
