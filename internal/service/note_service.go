package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/govlead/academy-api/internal/models"
	appErrors "github.com/govlead/academy-api/pkg/errors"
)

type noteRepository interface {
	ListByUserAndLesson(ctx context.Context, userID, lessonID int64) ([]models.Note, error)
	Create(ctx context.Context, note *models.Note) error
}

// NoteRequest creates a note on a lesson.
type NoteRequest struct {
	Content string `json:"content" validate:"required"`
}

// NoteService manages per-lesson user notes.
type NoteService struct {
	repo      noteRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewNoteService constructs NoteService.
func NewNoteService(repo noteRepository, validate *validator.Validate, logger *zap.Logger) *NoteService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoteService{repo: repo, validator: validate, logger: logger}
}

// List returns the caller's notes for a lesson, oldest first.
func (s *NoteService) List(ctx context.Context, userID, lessonID int64) ([]models.Note, error) {
	notes, err := s.repo.ListByUserAndLesson(ctx, userID, lessonID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notes")
	}
	return notes, nil
}

// Create appends a note to a lesson for the caller.
func (s *NoteService) Create(ctx context.Context, userID, lessonID int64, req NoteRequest) (*models.Note, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "note content is required")
	}

	note := &models.Note{UserID: userID, LessonID: lessonID, Content: req.Content}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create note")
	}
	return note, nil
}
