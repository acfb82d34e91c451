package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/govlead/academy-api/internal/models"
)

type mockEnrollmentCounter struct {
	count int
}

func (m *mockEnrollmentCounter) CountByUser(ctx context.Context, userID int64) (int, error) {
	return m.count, nil
}

type mockProgressAggregator struct {
	minutes int
	recent  *models.Course
}

func (m *mockProgressAggregator) SumCompletedMinutes(ctx context.Context, userID int64) (int, error) {
	return m.minutes, nil
}

func (m *mockProgressAggregator) RecentCourse(ctx context.Context, userID int64) (*models.Course, error) {
	return m.recent, nil
}

func TestDashboardServiceStatsRoundsHours(t *testing.T) {
	// Two lessons of 40 and 50 minutes round to 2 hours.
	svc := NewDashboardService(&mockEnrollmentCounter{count: 2}, &mockProgressAggregator{minutes: 90}, nil, 0, nil)

	stats, cached, err := svc.Stats(context.Background(), 1)
	require.NoError(t, err)
	require.False(t, cached)
	require.Equal(t, 2, stats.EnrolledCount)
	require.Equal(t, 2, stats.HoursCompleted)
}

func TestDashboardServiceStatsRoundsDown(t *testing.T) {
	svc := NewDashboardService(&mockEnrollmentCounter{}, &mockProgressAggregator{minutes: 80}, nil, 0, nil)

	stats, _, err := svc.Stats(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 1, stats.HoursCompleted)
}

func TestDashboardServiceStatsEmpty(t *testing.T) {
	svc := NewDashboardService(&mockEnrollmentCounter{}, &mockProgressAggregator{}, nil, 0, nil)

	stats, _, err := svc.Stats(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 0, stats.EnrolledCount)
	require.Equal(t, 0, stats.HoursCompleted)
	require.Nil(t, stats.RecentCourse)
	require.Equal(t, "Foundation", stats.RoadmapStage)
}

func TestDashboardServiceStatsPlaceholders(t *testing.T) {
	svc := NewDashboardService(&mockEnrollmentCounter{count: 1}, &mockProgressAggregator{}, nil, 0, nil)

	stats, _, err := svc.Stats(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 5, stats.Streak)
	require.Equal(t, 0, stats.Certificates)
}

func TestDashboardServiceRoadmapStageAdvances(t *testing.T) {
	recent := &models.Course{ID: 3, Title: "Strategic Scaling"}
	svc := NewDashboardService(&mockEnrollmentCounter{count: 4}, &mockProgressAggregator{minutes: 30, recent: recent}, nil, 0, nil)

	stats, _, err := svc.Stats(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "Strategy", stats.RoadmapStage)
	require.Equal(t, recent, stats.RecentCourse)
}
