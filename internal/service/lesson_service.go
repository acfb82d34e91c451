package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/govlead/academy-api/internal/models"
	appErrors "github.com/govlead/academy-api/pkg/errors"
)

type moduleRepository interface {
	GetOrCreateDefault(ctx context.Context, courseID int64) (*models.Module, error)
}

type lessonRepository interface {
	ListByModule(ctx context.Context, moduleID int64) ([]models.Lesson, error)
	CountByModule(ctx context.Context, moduleID int64) (int, error)
	Create(ctx context.Context, lesson *models.Lesson) error
}

type courseReader interface {
	FindByID(ctx context.Context, id int64) (*models.Course, error)
}

// LessonRequest carries lesson creation payloads.
type LessonRequest struct {
	Title           string  `json:"title" validate:"required"`
	VideoURL        string  `json:"video_url"`
	Duration        int     `json:"duration" validate:"gte=0"`
	ContentMarkdown *string `json:"content_markdown"`
}

// LessonService orchestrates lesson management, including the lazy
// creation of a course's default module.
type LessonService struct {
	modules   moduleRepository
	lessons   lessonRepository
	courses   courseReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLessonService constructs LessonService.
func NewLessonService(modules moduleRepository, lessons lessonRepository, courses courseReader, validate *validator.Validate, logger *zap.Logger) *LessonService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LessonService{modules: modules, lessons: lessons, courses: courses, validator: validate, logger: logger}
}

// ListByCourse returns a course's lessons in display order, creating the
// default module first when the course has none.
func (s *LessonService) ListByCourse(ctx context.Context, courseID int64) ([]models.Lesson, error) {
	module, err := s.resolveModule(ctx, courseID)
	if err != nil {
		return nil, err
	}
	lessons, err := s.lessons.ListByModule(ctx, module.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list lessons")
	}
	return lessons, nil
}

// Create appends a lesson to the course's default module. The new
// lesson's order index is the module's current lesson count.
func (s *LessonService) Create(ctx context.Context, courseID int64, req LessonRequest) (*models.Lesson, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid lesson payload")
	}

	module, err := s.resolveModule(ctx, courseID)
	if err != nil {
		return nil, err
	}

	count, err := s.lessons.CountByModule(ctx, module.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count lessons")
	}

	lesson := &models.Lesson{
		ModuleID:        module.ID,
		Title:           req.Title,
		VideoURL:        req.VideoURL,
		Duration:        req.Duration,
		OrderIndex:      count,
		ContentMarkdown: req.ContentMarkdown,
	}
	if err := s.lessons.Create(ctx, lesson); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create lesson")
	}
	return lesson, nil
}

func (s *LessonService) resolveModule(ctx context.Context, courseID int64) (*models.Module, error) {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	module, err := s.modules.GetOrCreateDefault(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve module")
	}
	return module, nil
}
