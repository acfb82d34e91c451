package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/govlead/academy-api/internal/models"
	"github.com/govlead/academy-api/pkg/database"
	appErrors "github.com/govlead/academy-api/pkg/errors"
)

type enrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	ListCoursesByUser(ctx context.Context, userID int64) ([]models.Course, error)
}

// EnrollmentService orchestrates course enrollment.
type EnrollmentService struct {
	repo    enrollmentRepository
	courses courseReader
	cache   *CacheService
	logger  *zap.Logger
}

// NewEnrollmentService constructs EnrollmentService.
func NewEnrollmentService(repo enrollmentRepository, courses courseReader, cache *CacheService, logger *zap.Logger) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, courses: courses, cache: cache, logger: logger}
}

// Enroll grants the user access to a course. Enrolling twice surfaces
// as a user-facing already-enrolled condition, not a system error.
func (s *EnrollmentService) Enroll(ctx context.Context, userID, courseID int64) (*models.Enrollment, error) {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	enrollment := &models.Enrollment{UserID: userID, CourseID: courseID}
	if err := s.repo.Create(ctx, enrollment); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "already enrolled")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enroll")
	}

	s.cache.Invalidate(ctx, dashboardCacheKey(userID))
	return enrollment, nil
}

// MyCourses returns the user's enrolled courses.
func (s *EnrollmentService) MyCourses(ctx context.Context, userID int64) ([]models.Course, error) {
	courses, err := s.repo.ListCoursesByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrolled courses")
	}
	return courses, nil
}
