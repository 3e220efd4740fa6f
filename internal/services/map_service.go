package services

import (
	"context"

	"github.com/tripmitra/api/internal/models"
)

// SafetyOverlay is one translucent rectangle drawn around a destination,
// colored by its safety gradient.
type SafetyOverlay struct {
	Coordinates [][]float64           `json:"coordinates"`
	SafetyLevel models.SafetyGradient `json:"safetyLevel"`
	Color       string                `json:"color"`
	Opacity     float64               `json:"opacity"`
}

// FacilityMarker is a map pin for one facility.
type FacilityMarker struct {
	ID          string              `json:"id"`
	Type        models.FacilityType `json:"type"`
	Coordinates []float64           `json:"coordinates"`
	Name        string              `json:"name"`
	Verified    bool                `json:"verified"`
	Rating      float64             `json:"rating"`
}

type MapData struct {
	Destinations    []*models.Destination `json:"destinations"`
	SafetyOverlay   []SafetyOverlay       `json:"safetyOverlay"`
	FacilityMarkers []FacilityMarker      `json:"facilityMarkers"`
	Bounds          *models.MapBounds     `json:"bounds"`
}

type MapService struct {
	destinationRepo models.DestinationRepo
	facilityRepo    models.FacilityRepo
}

func NewMapService(destinationRepo models.DestinationRepo, facilityRepo models.FacilityRepo) *MapService {
	return &MapService{
		destinationRepo: destinationRepo,
		facilityRepo:    facilityRepo,
	}
}

func gradientColor(gradient models.SafetyGradient) string {
	switch gradient {
	case models.SafetyHigh:
		return "#10b981"
	case models.SafetyMedium:
		return "#f59e0b"
	default:
		return "#ef4444"
	}
}

// MapView assembles the destinations in view, their safety overlays, the
// facility markers and the overall bounds.
func (ms *MapService) MapView(ctx context.Context, filter models.DestinationFilter, bounds *models.MapBounds, facilityType models.FacilityType) (*MapData, error) {
	destinations, err := ms.destinationRepo.MapDestinations(ctx, filter, bounds)
	if err != nil {
		return nil, err
	}
	if destinations == nil {
		destinations = []*models.Destination{}
	}

	facilities, err := ms.facilityRepo.ListFacilities(ctx, models.FacilityFilter{Type: facilityType}, 0)
	if err != nil {
		return nil, err
	}

	overlays := make([]SafetyOverlay, 0, len(destinations))
	for _, d := range destinations {
		overlays = append(overlays, SafetyOverlay{
			Coordinates: [][]float64{
				{d.GeoCoords.Longitude - 0.1, d.GeoCoords.Latitude - 0.1},
				{d.GeoCoords.Longitude + 0.1, d.GeoCoords.Latitude + 0.1},
			},
			SafetyLevel: d.SafetyGradient,
			Color:       gradientColor(d.SafetyGradient),
			Opacity:     0.3,
		})
	}

	markers := make([]FacilityMarker, 0, len(facilities))
	for _, f := range facilities {
		markers = append(markers, FacilityMarker{
			ID:          f.ID.Hex(),
			Type:        f.Type,
			Coordinates: []float64{f.Coordinates.Longitude, f.Coordinates.Latitude},
			Name:        f.Name,
			Verified:    f.Verified,
			Rating:      f.Rating,
		})
	}

	var overall *models.MapBounds
	if len(destinations) > 0 {
		overall = &models.MapBounds{
			North: destinations[0].GeoCoords.Latitude,
			South: destinations[0].GeoCoords.Latitude,
			East:  destinations[0].GeoCoords.Longitude,
			West:  destinations[0].GeoCoords.Longitude,
		}
		for _, d := range destinations[1:] {
			if d.GeoCoords.Latitude > overall.North {
				overall.North = d.GeoCoords.Latitude
			}
			if d.GeoCoords.Latitude < overall.South {
				overall.South = d.GeoCoords.Latitude
			}
			if d.GeoCoords.Longitude > overall.East {
				overall.East = d.GeoCoords.Longitude
			}
			if d.GeoCoords.Longitude < overall.West {
				overall.West = d.GeoCoords.Longitude
			}
		}
	}

	return &MapData{
		Destinations:    destinations,
		SafetyOverlay:   overlays,
		FacilityMarkers: markers,
		Bounds:          overall,
	}, nil
}
