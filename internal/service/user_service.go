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

type adminUserRepository interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	ListSummaries(ctx context.Context) ([]models.UserSummary, error)
	UpdateRole(ctx context.Context, id int64, role models.UserRole) error
	UpdateSubscription(ctx context.Context, id int64, status models.SubscriptionStatus) error
	DeleteCascade(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*models.AdminStats, error)
}

// UpdateRoleRequest changes a user's role.
type UpdateRoleRequest struct {
	Role models.UserRole `json:"role" validate:"required"`
}

// UpdateSubscriptionRequest changes a user's subscription tier.
type UpdateSubscriptionRequest struct {
	Status models.SubscriptionStatus `json:"status" validate:"required"`
}

// UserService orchestrates admin user management.
type UserService struct {
	repo      adminUserRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs UserService.
func NewUserService(repo adminUserRepository, validate *validator.Validate, logger *zap.Logger) *UserService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, validator: validate, logger: logger}
}

// List returns every user in the admin projection.
func (s *UserService) List(ctx context.Context) ([]models.UserSummary, error) {
	users, err := s.repo.ListSummaries(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}
	return users, nil
}

// UpdateRole changes the target user's role.
func (s *UserService) UpdateRole(ctx context.Context, id int64, req UpdateRoleRequest) error {
	if err := s.validator.Struct(req); err != nil || !req.Role.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "role must be user or admin")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	if err := s.repo.UpdateRole(ctx, id, req.Role); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update role")
	}
	return nil
}

// UpdateSubscription changes the target user's subscription tier.
func (s *UserService) UpdateSubscription(ctx context.Context, id int64, req UpdateSubscriptionRequest) error {
	if err := s.validator.Struct(req); err != nil || !req.Status.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "status must be free or premium")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	if err := s.repo.UpdateSubscription(ctx, id, req.Status); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update subscription")
	}
	return nil
}

// Delete removes a user and all rows keyed on their id. Self-deletion is
// rejected before any read or mutation.
func (s *UserService) Delete(ctx context.Context, callerID, targetID int64) error {
	if callerID == targetID {
		return appErrors.Clone(appErrors.ErrConflict, "cannot delete your own account")
	}

	if _, err := s.repo.FindByID(ctx, targetID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}

	if err := s.repo.DeleteCascade(ctx, targetID); err != nil {
		// Admin-only surface, so the underlying cause goes in the message.
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status,
			"failed to delete user and related data: "+err.Error())
	}

	s.logger.Info("user deleted",
		zap.Int64("target_id", targetID),
		zap.Int64("deleted_by", callerID))
	return nil
}

// Stats returns platform-wide counters for the admin overview.
func (s *UserService) Stats(ctx context.Context) (*models.AdminStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load stats")
	}
	return stats, nil
}
