package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/govlead/academy-api/internal/models"
	appErrors "github.com/govlead/academy-api/pkg/errors"
)

// Stand-in values for metrics with no backing data model yet. Real
// streak and certificate tracking would need their own tables.
const (
	placeholderStreak       = 5
	placeholderCertificates = 0
)

const minutesPerHour = 60

type enrollmentCounter interface {
	CountByUser(ctx context.Context, userID int64) (int, error)
}

type progressAggregator interface {
	SumCompletedMinutes(ctx context.Context, userID int64) (int, error)
	RecentCourse(ctx context.Context, userID int64) (*models.Course, error)
}

// DashboardService composes a user's learning dashboard.
type DashboardService struct {
	enrollments enrollmentCounter
	progress    progressAggregator
	cache       *CacheService
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewDashboardService constructs DashboardService.
func NewDashboardService(enrollments enrollmentCounter, progress progressAggregator, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *DashboardService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{enrollments: enrollments, progress: progress, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// Stats aggregates the user's dashboard payload and indicates cache
// utilisation.
func (s *DashboardService) Stats(ctx context.Context, userID int64) (*models.DashboardStats, bool, error) {
	key := dashboardCacheKey(userID)
	var cached models.DashboardStats
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, true, nil
	}

	enrolledCount, err := s.enrollments.CountByUser(ctx, userID)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count enrollments")
	}

	minutes, err := s.progress.SumCompletedMinutes(ctx, userID)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sum completed time")
	}

	recent, err := s.progress.RecentCourse(ctx, userID)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load recent course")
	}

	stats := &models.DashboardStats{
		EnrolledCount:  enrolledCount,
		HoursCompleted: int(math.Round(float64(minutes) / minutesPerHour)),
		Streak:         placeholderStreak,
		Certificates:   placeholderCertificates,
		RecentCourse:   recent,
		RoadmapStage:   roadmapStage(enrolledCount),
	}

	if err := s.cache.Set(ctx, key, stats, s.cacheTTL); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.Int64("user_id", userID), zap.Error(err))
	}
	return stats, false, nil
}

func roadmapStage(enrolledCount int) string {
	if enrolledCount > 3 {
		return "Strategy"
	}
	return "Foundation"
}

func dashboardCacheKey(userID int64) string {
	return fmt.Sprintf("dash:user:%d", userID)
}
