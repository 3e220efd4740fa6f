package services

import (
	"context"
	"time"

	"github.com/tripmitra/api/internal/models"
)

const (
	AnalyticsOverview     = "overview"
	AnalyticsDestinations = "destinations"
	AnalyticsFacilities   = "facilities"
	AnalyticsUsers        = "users"
	AnalyticsAll          = "all"
)

type OverviewAnalytics struct {
	TotalDestinations int64  `json:"totalDestinations"`
	TotalFacilities   int64  `json:"totalFacilities"`
	TotalUsers        int64  `json:"totalUsers"`
	RecentQueries     int64  `json:"recentQueries"`
	Timeframe         string `json:"timeframe"`
}

type DestinationAnalytics struct {
	ByRegion []models.GroupCount   `json:"byRegion"`
	BySafety []models.GroupCount   `json:"bySafety"`
	TopRated []*models.Destination `json:"topRated"`
}

type FacilityAnalytics struct {
	ByType       []models.GroupCount `json:"byType"`
	Verification []models.GroupCount `json:"verification"`
	TopRated     []*models.Facility  `json:"topRated"`
}

type UserAnalytics struct {
	ByRegion       []models.GroupCount   `json:"byRegion"`
	MostActive     []models.UserActivity `json:"mostActive"`
	PopularQueries []models.GroupCount   `json:"popularQueries"`
}

type AnalyticsReport struct {
	Overview     *OverviewAnalytics    `json:"overview,omitempty"`
	Destinations *DestinationAnalytics `json:"destinations,omitempty"`
	Facilities   *FacilityAnalytics    `json:"facilities,omitempty"`
	Users        *UserAnalytics        `json:"users,omitempty"`
}

type AnalyticsService struct {
	destinationRepo models.DestinationRepo
	facilityRepo    models.FacilityRepo
	userRepo        models.UserRepo
	historyRepo     models.QueryHistoryRepo
}

func NewAnalyticsService(destinationRepo models.DestinationRepo, facilityRepo models.FacilityRepo, userRepo models.UserRepo, historyRepo models.QueryHistoryRepo) *AnalyticsService {
	return &AnalyticsService{
		destinationRepo: destinationRepo,
		facilityRepo:    facilityRepo,
		userRepo:        userRepo,
		historyRepo:     historyRepo,
	}
}

// TimeframeCutoff maps a timeframe token to its start date. Anything other
// than 7d, 30d or 90d means a year.
func TimeframeCutoff(timeframe string, now time.Time) time.Time {
	days := 365
	switch timeframe {
	case "7d":
		days = 7
	case "30d":
		days = 30
	case "90d":
		days = 90
	}
	return now.Add(-time.Duration(days) * 24 * time.Hour)
}

// Report assembles the requested analytics sections. The timeframe cutoff
// applies only to the query-history groupings; destination, facility and
// user-preference groupings always scan the whole collection.
func (as *AnalyticsService) Report(ctx context.Context, timeframe, reportType string) (*AnalyticsReport, error) {
	if timeframe == "" {
		timeframe = "30d"
	}
	if reportType == "" {
		reportType = AnalyticsOverview
	}
	cutoff := TimeframeCutoff(timeframe, time.Now().UTC())

	report := &AnalyticsReport{}

	if reportType == AnalyticsOverview || reportType == AnalyticsAll {
		totalDestinations, err := as.destinationRepo.CountDestinations(ctx)
		if err != nil {
			return nil, err
		}
		totalFacilities, err := as.facilityRepo.CountFacilities(ctx)
		if err != nil {
			return nil, err
		}
		totalUsers, err := as.userRepo.CountUsers(ctx)
		if err != nil {
			return nil, err
		}
		recentQueries, err := as.historyRepo.CountQueriesSince(ctx, cutoff)
		if err != nil {
			return nil, err
		}
		report.Overview = &OverviewAnalytics{
			TotalDestinations: totalDestinations,
			TotalFacilities:   totalFacilities,
			TotalUsers:        totalUsers,
			RecentQueries:     recentQueries,
			Timeframe:         timeframe,
		}
	}

	if reportType == AnalyticsDestinations || reportType == AnalyticsAll {
		byRegion, err := as.destinationRepo.CountDestinationsByRegion(ctx)
		if err != nil {
			return nil, err
		}
		bySafety, err := as.destinationRepo.CountDestinationsByGradient(ctx)
		if err != nil {
			return nil, err
		}
		topRated, err := as.destinationRepo.TopDestinationsBySafety(ctx, 10)
		if err != nil {
			return nil, err
		}
		report.Destinations = &DestinationAnalytics{
			ByRegion: byRegion,
			BySafety: bySafety,
			TopRated: topRated,
		}
	}

	if reportType == AnalyticsFacilities || reportType == AnalyticsAll {
		byType, err := as.facilityRepo.CountFacilitiesByType(ctx)
		if err != nil {
			return nil, err
		}
		verification, err := as.facilityRepo.CountFacilitiesByVerified(ctx)
		if err != nil {
			return nil, err
		}
		topRated, err := as.facilityRepo.TopVerifiedFacilitiesByRating(ctx, 10)
		if err != nil {
			return nil, err
		}
		report.Facilities = &FacilityAnalytics{
			ByType:       byType,
			Verification: verification,
			TopRated:     topRated,
		}
	}

	if reportType == AnalyticsUsers || reportType == AnalyticsAll {
		byRegion, err := as.userRepo.CountUsersByPreferenceRegion(ctx)
		if err != nil {
			return nil, err
		}
		mostActive, err := as.historyRepo.MostActiveUsersSince(ctx, cutoff, 10)
		if err != nil {
			return nil, err
		}
		popularQueries, err := as.historyRepo.PopularQueriesSince(ctx, cutoff, 10)
		if err != nil {
			return nil, err
		}
		report.Users = &UserAnalytics{
			ByRegion:       byRegion,
			MostActive:     mostActive,
			PopularQueries: popularQueries,
		}
	}

	return report, nil
}
