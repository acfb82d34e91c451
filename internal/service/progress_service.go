package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/govlead/academy-api/internal/models"
	appErrors "github.com/govlead/academy-api/pkg/errors"
)

type progressWriter interface {
	Upsert(ctx context.Context, progress *models.UserProgress) error
}

// ProgressRequest reports watch progress for a lesson.
type ProgressRequest struct {
	Completed          bool `json:"completed"`
	ProgressPercentage int  `json:"progress_percentage" validate:"gte=0,lte=100"`
}

// ProgressService records per-lesson watch progress.
type ProgressService struct {
	repo      progressWriter
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProgressService constructs ProgressService.
func NewProgressService(repo progressWriter, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ProgressService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgressService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// Report upserts the user's progress row for a lesson. Last write wins:
// a later report with a lower percentage overwrites a higher one.
func (s *ProgressService) Report(ctx context.Context, userID, lessonID int64, req ProgressRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid progress payload")
	}

	progress := &models.UserProgress{
		UserID:             userID,
		LessonID:           lessonID,
		Completed:          req.Completed,
		ProgressPercentage: req.ProgressPercentage,
	}
	if err := s.repo.Upsert(ctx, progress); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record progress")
	}

	s.cache.Invalidate(ctx, dashboardCacheKey(userID))
	return nil
}
