package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/govlead/academy-api/internal/models"
	"github.com/govlead/academy-api/pkg/database"
	appErrors "github.com/govlead/academy-api/pkg/errors"
)

type profileRepository interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	GetProfile(ctx context.Context, id int64) (*models.Profile, error)
	UpdateProfile(ctx context.Context, id int64, upd models.ProfileUpdate, resetVerified bool) error
}

// ProfileUpdateResult reports the applied update.
type ProfileUpdateResult struct {
	Profile      *models.Profile `json:"profile"`
	EmailChanged bool            `json:"emailChanged"`
}

// ProfileService manages a user's own profile.
type ProfileService struct {
	repo      profileRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProfileService constructs ProfileService.
func NewProfileService(repo profileRepository, validate *validator.Validate, logger *zap.Logger) *ProfileService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{repo: repo, validator: validate, logger: logger}
}

// Get returns the caller's profile.
func (s *ProfileService) Get(ctx context.Context, userID int64) (*models.Profile, error) {
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load profile")
	}
	return profile, nil
}

// Update applies a partial profile mutation. Omitted fields keep their
// stored values. An email change flips email_verified off in the same
// update; resubmitting the current email leaves it untouched.
func (s *ProfileService) Update(ctx context.Context, userID int64, upd models.ProfileUpdate) (*ProfileUpdateResult, error) {
	if err := s.validator.Struct(upd); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid profile payload")
	}

	current, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}

	resetVerified := upd.Email != nil && *upd.Email != current.Email

	if err := s.repo.UpdateProfile(ctx, userID, upd, resetVerified); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "email already in use")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update profile")
	}

	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load profile")
	}
	return &ProfileUpdateResult{Profile: profile, EmailChanged: resetVerified}, nil
}
