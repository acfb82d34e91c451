package service

import (
	"context"

	"go.uber.org/zap"

	appErrors "github.com/govlead/academy-api/pkg/errors"
)

type bookmarkRepository interface {
	ListCourseIDs(ctx context.Context, userID int64) ([]int64, error)
	Add(ctx context.Context, userID, courseID int64) error
	Remove(ctx context.Context, userID, courseID int64) error
}

// BookmarkService manages the caller's saved courses.
type BookmarkService struct {
	repo   bookmarkRepository
	logger *zap.Logger
}

// NewBookmarkService constructs BookmarkService.
func NewBookmarkService(repo bookmarkRepository, logger *zap.Logger) *BookmarkService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookmarkService{repo: repo, logger: logger}
}

// List returns the IDs of the caller's bookmarked courses.
func (s *BookmarkService) List(ctx context.Context, userID int64) ([]int64, error) {
	ids, err := s.repo.ListCourseIDs(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list bookmarks")
	}
	return ids, nil
}

// Add bookmarks a course. Bookmarking twice is a no-op.
func (s *BookmarkService) Add(ctx context.Context, userID, courseID int64) error {
	if err := s.repo.Add(ctx, userID, courseID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to add bookmark")
	}
	return nil
}

// Remove deletes a bookmark. Removing an absent bookmark is a no-op.
func (s *BookmarkService) Remove(ctx context.Context, userID, courseID int64) error {
	if err := s.repo.Remove(ctx, userID, courseID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove bookmark")
	}
	return nil
}
