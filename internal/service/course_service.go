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

type courseRepository interface {
	ListPublished(ctx context.Context) ([]models.Course, error)
	ListAll(ctx context.Context) ([]models.Course, error)
	FindByID(ctx context.Context, id int64) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	DeleteCascade(ctx context.Context, id int64) error
}

// CourseRequest carries course creation and update payloads.
type CourseRequest struct {
	Title            string                  `json:"title" validate:"required"`
	Description      string                  `json:"description"`
	CategoryID       int64                   `json:"category_id"`
	Difficulty       string                  `json:"difficulty"`
	ThumbnailURL     string                  `json:"thumbnail_url"`
	Status           models.CourseStatus     `json:"status"`
	IsPaid           bool                    `json:"is_paid"`
	Price            float64                 `json:"price" validate:"gte=0"`
	LearningOutcomes models.LearningOutcomes `json:"learning_outcomes"`
}

// CourseService orchestrates course management.
type CourseService struct {
	repo      courseRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs CourseService.
func NewCourseService(repo courseRepository, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, validator: validate, logger: logger}
}

// ListPublished returns the public catalog.
func (s *CourseService) ListPublished(ctx context.Context) ([]models.Course, error) {
	courses, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, nil
}

// ListAll returns every course for admin consumption.
func (s *CourseService) ListAll(ctx context.Context) ([]models.Course, error) {
	courses, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, nil
}

// Get returns a single course.
func (s *CourseService) Get(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}

// Create validates and persists a new course.
func (s *CourseService) Create(ctx context.Context, req CourseRequest) (*models.Course, error) {
	if err := s.validatePayload(req); err != nil {
		return nil, err
	}
	course := courseFromRequest(req)
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}
	return course, nil
}

// Update overwrites a course's fields.
func (s *CourseService) Update(ctx context.Context, id int64, req CourseRequest) (*models.Course, error) {
	if err := s.validatePayload(req); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	course := courseFromRequest(req)
	course.ID = id
	if err := s.repo.Update(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course")
	}
	return course, nil
}

// Delete removes a course and its modules, lessons and lesson-scoped
// activity in one transaction.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course")
	}
	return nil
}

func (s *CourseService) validatePayload(req CourseRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	if req.Status != "" && !req.Status.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "unknown course status")
	}
	// Publishing requires a thumbnail; the catalog renders broken cards
	// without one.
	if req.Status == models.CoursePublished && req.ThumbnailURL == "" {
		return appErrors.Clone(appErrors.ErrValidation, "published courses require a thumbnail")
	}
	return nil
}

func courseFromRequest(req CourseRequest) *models.Course {
	status := req.Status
	if status == "" {
		status = models.CourseDraft
	}
	outcomes := req.LearningOutcomes
	if outcomes == nil {
		outcomes = models.LearningOutcomes{}
	}
	return &models.Course{
		Title:            req.Title,
		Description:      req.Description,
		CategoryID:       req.CategoryID,
		Difficulty:       req.Difficulty,
		ThumbnailURL:     req.ThumbnailURL,
		Status:           status,
		IsPaid:           req.IsPaid,
		Price:            req.Price,
		LearningOutcomes: outcomes,
	}
}
