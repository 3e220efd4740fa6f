package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tripmitra/api/internal/models"
)

func TestTimeframeCutoff(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, now.AddDate(0, 0, -7), TimeframeCutoff("7d", now))
	assert.Equal(t, now.AddDate(0, 0, -30), TimeframeCutoff("30d", now))
	assert.Equal(t, now.AddDate(0, 0, -90), TimeframeCutoff("90d", now))

	// anything unrecognized falls back to a year
	assert.Equal(t, now.AddDate(0, 0, -365), TimeframeCutoff("1y", now))
	assert.Equal(t, now.AddDate(0, 0, -365), TimeframeCutoff("", now))
}

type statsDestinationRepo struct {
	models.DestinationRepo
	byRegion []models.GroupCount
}

func (f *statsDestinationRepo) CountDestinations(ctx context.Context) (int64, error) {
	return 12, nil
}

func (f *statsDestinationRepo) CountDestinationsByRegion(ctx context.Context) ([]models.GroupCount, error) {
	return f.byRegion, nil
}

func (f *statsDestinationRepo) CountDestinationsByGradient(ctx context.Context) ([]models.GroupCount, error) {
	return []models.GroupCount{{Key: "medium", Count: 9}, {Key: "high", Count: 3}}, nil
}

func (f *statsDestinationRepo) TopDestinationsBySafety(ctx context.Context, limit int) ([]*models.Destination, error) {
	return []*models.Destination{{Name: "Munnar", SafetyScore: 9.1}}, nil
}

type statsFacilityRepo struct {
	models.FacilityRepo
}

func (f *statsFacilityRepo) CountFacilities(ctx context.Context) (int64, error) {
	return 30, nil
}

func (f *statsFacilityRepo) CountFacilitiesByType(ctx context.Context) ([]models.GroupCount, error) {
	return []models.GroupCount{{Key: "hospital", Count: 8}}, nil
}

func (f *statsFacilityRepo) CountFacilitiesByVerified(ctx context.Context) ([]models.GroupCount, error) {
	return []models.GroupCount{{Key: "true", Count: 10}, {Key: "false", Count: 20}}, nil
}

func (f *statsFacilityRepo) TopVerifiedFacilitiesByRating(ctx context.Context, limit int) ([]*models.Facility, error) {
	return nil, nil
}

type statsUserRepo struct {
	models.UserRepo
}

func (f *statsUserRepo) CountUsers(ctx context.Context) (int64, error) {
	return 5, nil
}

func (f *statsUserRepo) CountUsersByPreferenceRegion(ctx context.Context) ([]models.GroupCount, error) {
	return []models.GroupCount{{Key: "north", Count: 4}}, nil
}

// statsHistoryRepo records the cutoff each aggregation receives.
type statsHistoryRepo struct {
	models.QueryHistoryRepo
	since []time.Time
}

func (f *statsHistoryRepo) CountQueriesSince(ctx context.Context, since time.Time) (int64, error) {
	f.since = append(f.since, since)
	return 4, nil
}

func (f *statsHistoryRepo) MostActiveUsersSince(ctx context.Context, since time.Time, limit int) ([]models.UserActivity, error) {
	f.since = append(f.since, since)
	return []models.UserActivity{{UserID: "user-1", QueryCount: 3}}, nil
}

func (f *statsHistoryRepo) PopularQueriesSince(ctx context.Context, since time.Time, limit int) ([]models.GroupCount, error) {
	f.since = append(f.since, since)
	return []models.GroupCount{{Key: "beaches in goa", Count: 2}}, nil
}

func TestReportAppliesCutoffToHistoryAggregationsOnly(t *testing.T) {
	history := &statsHistoryRepo{}
	destinations := &statsDestinationRepo{byRegion: []models.GroupCount{{Key: "south", Count: 7}}}
	svc := NewAnalyticsService(destinations, &statsFacilityRepo{}, &statsUserRepo{}, history)

	report, err := svc.Report(context.Background(), "90d", AnalyticsAll)
	require.NoError(t, err)

	require.NotNil(t, report.Overview)
	assert.Equal(t, int64(4), report.Overview.RecentQueries)
	assert.Equal(t, "90d", report.Overview.Timeframe)
	assert.Equal(t, int64(12), report.Overview.TotalDestinations)
	assert.Equal(t, int64(30), report.Overview.TotalFacilities)
	assert.Equal(t, int64(5), report.Overview.TotalUsers)

	// every history aggregation saw the same 90 day cutoff
	require.Len(t, history.since, 3)
	expected := TimeframeCutoff("90d", time.Now().UTC())
	for _, since := range history.since {
		assert.Equal(t, history.since[0], since)
		assert.WithinDuration(t, expected, since, time.Minute)
	}

	require.NotNil(t, report.Users)
	assert.Equal(t, []models.UserActivity{{UserID: "user-1", QueryCount: 3}}, report.Users.MostActive)
	assert.Equal(t, []models.GroupCount{{Key: "beaches in goa", Count: 2}}, report.Users.PopularQueries)
}

func TestReportDestinationGroupingsIgnoreTimeframe(t *testing.T) {
	byRegion := []models.GroupCount{{Key: "north", Count: 3}, {Key: "south", Count: 9}}

	build := func(timeframe string) (*AnalyticsReport, *statsHistoryRepo) {
		history := &statsHistoryRepo{}
		svc := NewAnalyticsService(&statsDestinationRepo{byRegion: byRegion}, &statsFacilityRepo{}, &statsUserRepo{}, history)
		report, err := svc.Report(context.Background(), timeframe, AnalyticsDestinations)
		require.NoError(t, err)
		return report, history
	}

	weekly, weeklyHistory := build("7d")
	quarterly, quarterlyHistory := build("90d")

	require.NotNil(t, weekly.Destinations)
	assert.Equal(t, weekly.Destinations, quarterly.Destinations)
	assert.Equal(t, byRegion, weekly.Destinations.ByRegion)

	// destination groupings never touch the query-history repo
	assert.Empty(t, weeklyHistory.since)
	assert.Empty(t, quarterlyHistory.since)
	assert.Nil(t, weekly.Overview)
	assert.Nil(t, weekly.Users)
}

func TestReportDefaultsTimeframeAndType(t *testing.T) {
	history := &statsHistoryRepo{}
	svc := NewAnalyticsService(&statsDestinationRepo{}, &statsFacilityRepo{}, &statsUserRepo{}, history)

	report, err := svc.Report(context.Background(), "", "")
	require.NoError(t, err)

	require.NotNil(t, report.Overview)
	assert.Equal(t, "30d", report.Overview.Timeframe)
	assert.Nil(t, report.Destinations)
	assert.Nil(t, report.Facilities)
	assert.Nil(t, report.Users)
}
